package session

import (
	"github.com/go-playground/validator/v10"
	"github.com/jonathan/interview-coach/internal/types"
)

// Config is read once when a session starts and never changes afterwards
type Config struct {
	MaxQuestions              int     `validate:"min=1,max=50"`
	EarlyTerminationThreshold float64 `validate:"min=0,max=100"`
	TimePerQuestion           int     `validate:"min=1"`
	PassingThreshold          float64 `validate:"min=0,max=100"`
}

// DefaultConfig returns the default session configuration
func DefaultConfig() Config {
	return Config{
		MaxQuestions:              5,
		EarlyTerminationThreshold: 40,
		TimePerQuestion:           types.DefaultTimePerQuestion,
		PassingThreshold:          60,
	}
}

var configValidator = validator.New()

// Validate checks that every field is in range
func (c Config) Validate() error {
	if err := configValidator.Struct(c); err != nil {
		return &ConfigError{Message: "field out of range", Cause: err}
	}
	return nil
}
