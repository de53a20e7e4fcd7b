package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/dentix/clinic-server/internal/logger"
	"github.com/dentix/clinic-server/internal/model"
)

// Settings reads runtime settings and materializes per-request
// snapshots so no workflow sees a torn read of the flags.
type Settings struct {
	store  model.SettingsStore
	logger *logger.Logger
}

func NewSettings(store model.SettingsStore, logger *logger.Logger) *Settings {
	return &Settings{
		store:  store,
		logger: logger,
	}
}

// Get returns the raw value of a setting.
func (s *Settings) Get(ctx context.Context, key string) (string, error) {
	return s.store.Get(ctx, key)
}

// Set updates a setting value.
func (s *Settings) Set(ctx context.Context, key, value string) error {
	return s.store.Set(ctx, key, value)
}

// RegistrationSnapshot reads the registration flags once. Missing keys
// fall back to safe defaults rather than failing the request.
func (s *Settings) RegistrationSnapshot(ctx context.Context) (model.RegistrationSettings, error) {
	terms, err := s.boolSetting(ctx, model.SettingTermsShow, false)
	if err != nil {
		return model.RegistrationSettings{}, err
	}

	confirmation, err := s.boolSetting(ctx, model.SettingRegEmailConfirmation, true)
	if err != nil {
		return model.RegistrationSettings{}, err
	}

	lang, err := s.store.Get(ctx, model.SettingLanguageDefault)
	if errors.Is(err, model.ErrNotFound) {
		lang = "en"
	} else if err != nil {
		return model.RegistrationSettings{}, fmt.Errorf("failed to read default language: %w", err)
	}

	return model.RegistrationSettings{
		TermsRequired:             terms,
		EmailConfirmationRequired: confirmation,
		DefaultLanguage:           lang,
	}, nil
}

func (s *Settings) boolSetting(ctx context.Context, key string, fallback bool) (bool, error) {
	value, err := s.store.Get(ctx, key)
	if errors.Is(err, model.ErrNotFound) {
		return fallback, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read setting %s: %w", key, err)
	}
	return value == "true" || value == "1", nil
}
