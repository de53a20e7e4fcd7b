package handler

import (
	"context"
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/dentix/clinic-server/internal/logger"
	"github.com/dentix/clinic-server/internal/model"
)

// OdontogramService defines patient chart and X-ray operations.
type OdontogramService interface {
	CreatePatient(ctx context.Context, patient model.Patient) (model.Patient, error)
	GetPatient(ctx context.Context, id uuid.UUID) (model.Patient, error)
	ListPatients(ctx context.Context) ([]model.Patient, error)
	CreateChart(ctx context.Context, patientID uuid.UUID) (model.Odontogram, error)
	ListCharts(ctx context.Context, patientID uuid.UUID) ([]model.Odontogram, error)
	RecordTooth(ctx context.Context, odontogramID uuid.UUID, tooth int, surface, condition, note string) (model.ToothRecord, error)
	ListTeeth(ctx context.Context, odontogramID uuid.UUID) ([]model.ToothRecord, error)
	AttachXray(ctx context.Context, odontogramID uuid.UUID, fileName, contentType string, data io.Reader) (model.XrayAttachment, error)
	OpenXray(ctx context.Context, attachmentID uuid.UUID) (model.XrayAttachment, io.ReadCloser, error)
	ListXrays(ctx context.Context, odontogramID uuid.UUID) ([]model.XrayAttachment, error)
}

// Odontogram handles patient and dental chart endpoints.
type Odontogram struct {
	service OdontogramService
	logger  *logger.Logger
}

// NewOdontogram creates a new Odontogram handler.
func NewOdontogram(service OdontogramService, logger *logger.Logger) *Odontogram {
	return &Odontogram{
		service: service,
		logger:  logger,
	}
}

type patientRequest struct {
	Name     string `json:"name"`
	LastName string `json:"lastname"`
	DNI      string `json:"dni"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

func patientResponse(p model.Patient) fiber.Map {
	return fiber.Map{
		"id":       p.ID,
		"name":     p.Name,
		"lastname": p.LastName,
		"dni":      p.DNI,
		"email":    p.Email,
		"phone":    p.Phone,
	}
}

// CreatePatient registers a patient.
func (h *Odontogram) CreatePatient(c *fiber.Ctx) error {
	var body patientRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	patient, err := h.service.CreatePatient(c.UserContext(), model.Patient{
		Name:     body.Name,
		LastName: body.LastName,
		DNI:      body.DNI,
		Email:    body.Email,
		Phone:    body.Phone,
	})
	if err != nil {
		return handleError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(patientResponse(patient))
}

// GetPatient returns a patient record.
func (h *Odontogram) GetPatient(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid patient id")
	}

	patient, err := h.service.GetPatient(c.UserContext(), id)
	if err != nil {
		return handleError(c, err)
	}

	return c.JSON(patientResponse(patient))
}

// ListPatients returns all patients.
func (h *Odontogram) ListPatients(c *fiber.Ctx) error {
	patients, err := h.service.ListPatients(c.UserContext())
	if err != nil {
		return handleError(c, err)
	}

	resp := make([]fiber.Map, 0, len(patients))
	for _, p := range patients {
		resp = append(resp, patientResponse(p))
	}

	return c.JSON(resp)
}

// CreateChart opens a new odontogram for a patient.
func (h *Odontogram) CreateChart(c *fiber.Ctx) error {
	patientID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid patient id")
	}

	chart, err := h.service.CreateChart(c.UserContext(), patientID)
	if err != nil {
		return handleError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":         chart.ID,
		"patient_id": chart.PatientID,
	})
}

// ListCharts returns the odontograms of a patient.
func (h *Odontogram) ListCharts(c *fiber.Ctx) error {
	patientID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid patient id")
	}

	charts, err := h.service.ListCharts(c.UserContext(), patientID)
	if err != nil {
		return handleError(c, err)
	}

	resp := make([]fiber.Map, 0, len(charts))
	for _, chart := range charts {
		resp = append(resp, fiber.Map{
			"id":         chart.ID,
			"patient_id": chart.PatientID,
			"created_at": chart.CreatedAt,
		})
	}

	return c.JSON(resp)
}

type toothRequest struct {
	Tooth     int    `json:"tooth"`
	Surface   string `json:"surface"`
	Condition string `json:"condition"`
	Note      string `json:"note"`
}

// RecordTooth notes a tooth condition on a chart.
func (h *Odontogram) RecordTooth(c *fiber.Ctx) error {
	odontogramID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid odontogram id")
	}

	var body toothRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	record, err := h.service.RecordTooth(c.UserContext(), odontogramID, body.Tooth, body.Surface, body.Condition, body.Note)
	if err != nil {
		return handleError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":        record.ID,
		"tooth":     record.Tooth,
		"surface":   record.Surface,
		"condition": record.Condition,
		"note":      record.Note,
	})
}

// ListTeeth returns the tooth records of a chart.
func (h *Odontogram) ListTeeth(c *fiber.Ctx) error {
	odontogramID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid odontogram id")
	}

	records, err := h.service.ListTeeth(c.UserContext(), odontogramID)
	if err != nil {
		return handleError(c, err)
	}

	resp := make([]fiber.Map, 0, len(records))
	for _, record := range records {
		resp = append(resp, fiber.Map{
			"id":        record.ID,
			"tooth":     record.Tooth,
			"surface":   record.Surface,
			"condition": record.Condition,
			"note":      record.Note,
		})
	}

	return c.JSON(resp)
}

// AttachXray accepts a multipart image upload for a chart.
func (h *Odontogram) AttachXray(c *fiber.Ctx) error {
	odontogramID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid odontogram id")
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "missing image file")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "unreadable image file")
	}
	defer file.Close()

	attachment, err := h.service.AttachXray(
		c.UserContext(),
		odontogramID,
		fileHeader.Filename,
		fileHeader.Header.Get(fiber.HeaderContentType),
		file,
	)
	if err != nil {
		return handleError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":        attachment.ID,
		"file_name": attachment.FileName,
	})
}

// ListXrays returns the attachments of a chart.
func (h *Odontogram) ListXrays(c *fiber.Ctx) error {
	odontogramID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid odontogram id")
	}

	attachments, err := h.service.ListXrays(c.UserContext(), odontogramID)
	if err != nil {
		return handleError(c, err)
	}

	resp := make([]fiber.Map, 0, len(attachments))
	for _, a := range attachments {
		resp = append(resp, fiber.Map{
			"id":           a.ID,
			"file_name":    a.FileName,
			"content_type": a.ContentType,
			"created_at":   a.CreatedAt,
		})
	}

	return c.JSON(resp)
}

// DownloadXray streams the image data of an attachment.
func (h *Odontogram) DownloadXray(c *fiber.Ctx) error {
	attachmentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid attachment id")
	}

	attachment, reader, err := h.service.OpenXray(c.UserContext(), attachmentID)
	if err != nil {
		return handleError(c, err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return handleError(c, err)
	}

	c.Set(fiber.HeaderContentType, attachment.ContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+attachment.FileName+`"`)

	return c.Send(data)
}
