package core

import (
	"github.com/go-playground/validator/v10"
)

// Settings is the global, read-only input to every scheduling computation.
type Settings struct {
	LoanPeriodDays int `json:"loanPeriodDays" validate:"min=1"`
	MaxRenewals    int `json:"maxRenewals" validate:"min=0"`
}

var settingsValidator = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the settings against their documented bounds.
func (s Settings) Validate() error {
	return settingsValidator.Struct(s)
}

// DefaultSettings returns the fallback configuration used when the remote
// store has no settings record yet.
func DefaultSettings() Settings {
	return Settings{
		LoanPeriodDays: 14,
		MaxRenewals:    2,
	}
}
