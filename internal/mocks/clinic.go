package mocks

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/dentix/clinic-server/internal/model"
)

// PatientStore is a mock of model.PatientStore.
type PatientStore struct {
	mock.Mock
}

func (m *PatientStore) Create(ctx context.Context, patient model.Patient) (model.Patient, error) {
	args := m.Called(ctx, patient)
	return args.Get(0).(model.Patient), args.Error(1)
}

func (m *PatientStore) GetByID(ctx context.Context, id uuid.UUID) (model.Patient, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Patient), args.Error(1)
}

func (m *PatientStore) List(ctx context.Context) ([]model.Patient, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Patient), args.Error(1)
}

// OdontogramStore is a mock of model.OdontogramStore.
type OdontogramStore struct {
	mock.Mock
}

func (m *OdontogramStore) Create(ctx context.Context, odontogram model.Odontogram) (model.Odontogram, error) {
	args := m.Called(ctx, odontogram)
	return args.Get(0).(model.Odontogram), args.Error(1)
}

func (m *OdontogramStore) GetByID(ctx context.Context, id uuid.UUID) (model.Odontogram, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Odontogram), args.Error(1)
}

func (m *OdontogramStore) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]model.Odontogram, error) {
	args := m.Called(ctx, patientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Odontogram), args.Error(1)
}

func (m *OdontogramStore) AddToothRecord(ctx context.Context, record model.ToothRecord) (model.ToothRecord, error) {
	args := m.Called(ctx, record)
	return args.Get(0).(model.ToothRecord), args.Error(1)
}

func (m *OdontogramStore) ListToothRecords(ctx context.Context, odontogramID uuid.UUID) ([]model.ToothRecord, error) {
	args := m.Called(ctx, odontogramID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ToothRecord), args.Error(1)
}

func (m *OdontogramStore) AddAttachment(ctx context.Context, attachment model.XrayAttachment) (model.XrayAttachment, error) {
	args := m.Called(ctx, attachment)
	return args.Get(0).(model.XrayAttachment), args.Error(1)
}

func (m *OdontogramStore) ListAttachments(ctx context.Context, odontogramID uuid.UUID) ([]model.XrayAttachment, error) {
	args := m.Called(ctx, odontogramID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.XrayAttachment), args.Error(1)
}

func (m *OdontogramStore) GetAttachment(ctx context.Context, id uuid.UUID) (model.XrayAttachment, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.XrayAttachment), args.Error(1)
}

// SpecialistStore is a mock of model.SpecialistStore.
type SpecialistStore struct {
	mock.Mock
}

func (m *SpecialistStore) Create(ctx context.Context, specialist model.Specialist) (model.Specialist, error) {
	args := m.Called(ctx, specialist)
	return args.Get(0).(model.Specialist), args.Error(1)
}

func (m *SpecialistStore) GetByID(ctx context.Context, id uuid.UUID) (model.Specialist, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Specialist), args.Error(1)
}

func (m *SpecialistStore) List(ctx context.Context) ([]model.Specialist, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Specialist), args.Error(1)
}

func (m *SpecialistStore) Update(ctx context.Context, specialist model.Specialist) (model.Specialist, error) {
	args := m.Called(ctx, specialist)
	return args.Get(0).(model.Specialist), args.Error(1)
}

func (m *SpecialistStore) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	args := m.Called(ctx, id, active)
	return args.Error(0)
}

// SpecialtyStore is a mock of model.SpecialtyStore.
type SpecialtyStore struct {
	mock.Mock
}

func (m *SpecialtyStore) GetByName(ctx context.Context, name string) (model.Specialty, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(model.Specialty), args.Error(1)
}

func (m *SpecialtyStore) List(ctx context.Context) ([]model.Specialty, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Specialty), args.Error(1)
}

// Storage is a mock of model.Storage.
type Storage struct {
	mock.Mock
}

func (m *Storage) Upload(ctx context.Context, key string, reader io.Reader) error {
	args := m.Called(ctx, key, reader)
	return args.Error(0)
}

func (m *Storage) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}

func (m *Storage) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *Storage) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}
