package session

import (
	"errors"
	"fmt"
)

// ErrConcluded is returned when an answer is submitted after Conclude
var ErrConcluded = errors.New("interview already concluded")

// NoActiveQuestionError is returned when an answer is submitted but no question is being asked,
// either because every question was answered or because the interview terminated early.
// The session stays usable for Conclude.
type NoActiveQuestionError struct {
	SessionID  string
	Index      int
	Total      int
	Terminated bool
}

func (e *NoActiveQuestionError) Error() string {
	if e.Terminated {
		return fmt.Sprintf("no active question: session %s terminated early after %d of %d questions", e.SessionID, e.Index, e.Total)
	}
	return fmt.Sprintf("no active question: session %s answered all %d questions", e.SessionID, e.Total)
}

// ConfigError represents an invalid session configuration
type ConfigError struct {
	Message string
	Cause   error
}

func (e *ConfigError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid session config: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("invalid session config: %s", e.Message)
}

func (e *ConfigError) Unwrap() error {
	return e.Cause
}
