package model

import "context"

// Setting keys used by the registration workflow. Values are seeded by
// migration and editable at runtime.
const (
	SettingTermsShow            = "terms_and_conditions_show"
	SettingRegEmailConfirmation = "reg_email_confirmation"
	SettingLanguageDefault      = "language_default"
)

// SettingsStore provides read/write access to runtime settings.
type SettingsStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// RegistrationSettings is an immutable per-request snapshot of the
// feature flags the registration workflow depends on. It is read once
// at the start of a call and never re-read mid-flight.
type RegistrationSettings struct {
	TermsRequired             bool
	EmailConfirmationRequired bool
	DefaultLanguage           string
}
