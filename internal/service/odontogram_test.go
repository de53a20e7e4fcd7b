package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dentix/clinic-server/internal/logger"
	"github.com/dentix/clinic-server/internal/mocks"
	"github.com/dentix/clinic-server/internal/model"
)

func newOdontogramFixture() (*Odontogram, *mocks.PatientStore, *mocks.OdontogramStore, *mocks.Storage) {
	patients := &mocks.PatientStore{}
	charts := &mocks.OdontogramStore{}
	store := &mocks.Storage{}
	return NewOdontogram(patients, charts, store, logger.New(0)), patients, charts, store
}

func TestOdontogram_CreateChart(t *testing.T) {
	s, patients, charts, _ := newOdontogramFixture()

	patientID := uuid.New()
	patients.On("GetByID", mock.Anything, patientID).Return(model.Patient{ID: patientID}, nil)
	charts.On("Create", mock.Anything, mock.MatchedBy(func(o model.Odontogram) bool {
		return o.PatientID == patientID
	})).Return(model.Odontogram{ID: uuid.New(), PatientID: patientID}, nil)

	chart, err := s.CreateChart(context.Background(), patientID)
	require.NoError(t, err)
	assert.Equal(t, patientID, chart.PatientID)
}

func TestOdontogram_CreateChart_UnknownPatient(t *testing.T) {
	s, patients, charts, _ := newOdontogramFixture()

	patientID := uuid.New()
	patients.On("GetByID", mock.Anything, patientID).Return(model.Patient{}, model.ErrNotFound)

	_, err := s.CreateChart(context.Background(), patientID)
	require.ErrorIs(t, err, model.ErrNotFound)
	charts.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestOdontogram_RecordTooth(t *testing.T) {
	s, _, charts, _ := newOdontogramFixture()

	chartID := uuid.New()
	charts.On("GetByID", mock.Anything, chartID).Return(model.Odontogram{ID: chartID}, nil)
	charts.On("AddToothRecord", mock.Anything, mock.MatchedBy(func(r model.ToothRecord) bool {
		return r.Tooth == 16 && r.Condition == "caries"
	})).Return(model.ToothRecord{Tooth: 16, Condition: "caries"}, nil)

	record, err := s.RecordTooth(context.Background(), chartID, 16, "occlusal", "caries", "deep lesion")
	require.NoError(t, err)
	assert.Equal(t, 16, record.Tooth)
}

func TestOdontogram_RecordTooth_OutOfRange(t *testing.T) {
	s, _, charts, _ := newOdontogramFixture()

	for _, tooth := range []int{0, 10, 49, 99} {
		_, err := s.RecordTooth(context.Background(), uuid.New(), tooth, "", "caries", "")
		require.Error(t, err, "tooth %d", tooth)
	}
	charts.AssertNotCalled(t, "AddToothRecord", mock.Anything, mock.Anything)
}

func TestOdontogram_RecordTooth_UnknownCondition(t *testing.T) {
	s, _, charts, _ := newOdontogramFixture()

	_, err := s.RecordTooth(context.Background(), uuid.New(), 16, "", "sparkling", "")
	require.Error(t, err)
	charts.AssertNotCalled(t, "AddToothRecord", mock.Anything, mock.Anything)
}

func TestOdontogram_AttachXray(t *testing.T) {
	s, _, charts, store := newOdontogramFixture()

	chartID := uuid.New()
	charts.On("GetByID", mock.Anything, chartID).Return(model.Odontogram{ID: chartID}, nil)
	store.On("Upload", mock.Anything, mock.MatchedBy(func(key string) bool {
		return strings.HasPrefix(key, "odontograms/"+chartID.String()+"/")
	}), mock.Anything).Return(nil)
	charts.On("AddAttachment", mock.Anything, mock.MatchedBy(func(a model.XrayAttachment) bool {
		return a.OdontogramID == chartID && a.FileName == "pano.png"
	})).Return(model.XrayAttachment{ID: uuid.New(), OdontogramID: chartID, FileName: "pano.png"}, nil)

	attachment, err := s.AttachXray(context.Background(), chartID, "pano.png", "image/png", strings.NewReader("img"))
	require.NoError(t, err)
	assert.Equal(t, "pano.png", attachment.FileName)
	store.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestOdontogram_AttachXray_UploadFails(t *testing.T) {
	s, _, charts, store := newOdontogramFixture()

	chartID := uuid.New()
	charts.On("GetByID", mock.Anything, chartID).Return(model.Odontogram{ID: chartID}, nil)
	store.On("Upload", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("bucket gone"))

	_, err := s.AttachXray(context.Background(), chartID, "pano.png", "image/png", strings.NewReader("img"))
	require.Error(t, err)
	charts.AssertNotCalled(t, "AddAttachment", mock.Anything, mock.Anything)
}

func TestOdontogram_AttachXray_RecordFailureDeletesBlob(t *testing.T) {
	s, _, charts, store := newOdontogramFixture()

	chartID := uuid.New()
	charts.On("GetByID", mock.Anything, chartID).Return(model.Odontogram{ID: chartID}, nil)
	store.On("Upload", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	charts.On("AddAttachment", mock.Anything, mock.Anything).
		Return(model.XrayAttachment{}, errors.New("constraint violation"))
	store.On("Delete", mock.Anything, mock.MatchedBy(func(key string) bool {
		return strings.HasPrefix(key, "odontograms/"+chartID.String()+"/")
	})).Return(nil)

	_, err := s.AttachXray(context.Background(), chartID, "pano.png", "image/png", strings.NewReader("img"))
	require.Error(t, err)
	store.AssertExpectations(t)
}
