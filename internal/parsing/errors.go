package parsing

import "fmt"

// Documents named in extraction errors
const (
	DocumentResume = "resume"
	DocumentJob    = "job description"
)

// APICallError is returned when the model could not be reached or refused to answer while
// extracting a profile. Pipeline callers fall back to keyword analysis on it.
type APICallError struct {
	Document string
	Message  string
	Cause    error
}

func (e *APICallError) Error() string {
	return describe(e.Document, "model call failed", e.Message, e.Cause)
}

func (e *APICallError) Unwrap() error {
	return e.Cause
}

// ParseError is returned when the model answered with something that is not the profile JSON
type ParseError struct {
	Document string
	Message  string
	Cause    error
}

func (e *ParseError) Error() string {
	return describe(e.Document, "unreadable model reply", e.Message, e.Cause)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// ValidationError is returned for empty input text, for replies that break the profile
// schema, and for extracted profiles that fail their own Validate check.
// Field names the offending JSON path or profile field when one is known.
type ValidationError struct {
	Document string
	Field    string
	Message  string
	Cause    error
}

func (e *ValidationError) Error() string {
	kind := "invalid profile"
	if e.Field != "" {
		kind = "invalid field " + e.Field
	}
	return describe(e.Document, kind, e.Message, nil)
}

func (e *ValidationError) Unwrap() error {
	return e.Cause
}

// describe renders "<document>: <kind>: <message>[: <cause>]"
func describe(document, kind, message string, cause error) string {
	if document == "" {
		document = "extraction"
	}
	msg := fmt.Sprintf("%s: %s: %s", document, kind, message)
	if cause != nil {
		msg += ": " + cause.Error()
	}
	return msg
}
