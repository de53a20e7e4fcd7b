package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dentix/clinic-server/internal/logger"
	"github.com/dentix/clinic-server/internal/mocks"
	"github.com/dentix/clinic-server/internal/model"
)

func TestSettings_RegistrationSnapshot(t *testing.T) {
	store := &mocks.SettingsStore{}
	store.On("Get", mock.Anything, model.SettingTermsShow).Return("true", nil)
	store.On("Get", mock.Anything, model.SettingRegEmailConfirmation).Return("false", nil)
	store.On("Get", mock.Anything, model.SettingLanguageDefault).Return("es", nil)

	s := NewSettings(store, logger.New(0))

	flags, err := s.RegistrationSnapshot(context.Background())
	require.NoError(t, err)
	assert.True(t, flags.TermsRequired)
	assert.False(t, flags.EmailConfirmationRequired)
	assert.Equal(t, "es", flags.DefaultLanguage)
}

func TestSettings_RegistrationSnapshot_MissingKeysFallBack(t *testing.T) {
	store := &mocks.SettingsStore{}
	store.On("Get", mock.Anything, mock.Anything).Return("", model.ErrNotFound)

	s := NewSettings(store, logger.New(0))

	flags, err := s.RegistrationSnapshot(context.Background())
	require.NoError(t, err)
	assert.False(t, flags.TermsRequired)
	assert.True(t, flags.EmailConfirmationRequired)
	assert.Equal(t, "en", flags.DefaultLanguage)
}

func TestSettings_RegistrationSnapshot_NumericTruthy(t *testing.T) {
	store := &mocks.SettingsStore{}
	store.On("Get", mock.Anything, model.SettingTermsShow).Return("1", nil)
	store.On("Get", mock.Anything, model.SettingRegEmailConfirmation).Return("0", nil)
	store.On("Get", mock.Anything, model.SettingLanguageDefault).Return("en", nil)

	s := NewSettings(store, logger.New(0))

	flags, err := s.RegistrationSnapshot(context.Background())
	require.NoError(t, err)
	assert.True(t, flags.TermsRequired)
	assert.False(t, flags.EmailConfirmationRequired)
}

func TestSettings_RegistrationSnapshot_StoreError(t *testing.T) {
	store := &mocks.SettingsStore{}
	store.On("Get", mock.Anything, model.SettingTermsShow).Return("", errors.New("connection reset"))

	s := NewSettings(store, logger.New(0))

	_, err := s.RegistrationSnapshot(context.Background())
	require.Error(t, err)
}

func TestSettings_Set(t *testing.T) {
	store := &mocks.SettingsStore{}
	store.On("Set", mock.Anything, model.SettingTermsShow, "true").Return(nil)

	s := NewSettings(store, logger.New(0))

	require.NoError(t, s.Set(context.Background(), model.SettingTermsShow, "true"))
	store.AssertExpectations(t)
}
