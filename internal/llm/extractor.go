package llm

import (
	"context"
	"encoding/json"
	"fmt"
)

// ResponseError is returned when a model reply cannot be decoded
type ResponseError struct {
	Message string
	Raw     string
	Cause   error
}

func (e *ResponseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *ResponseError) Unwrap() error {
	return e.Cause
}

// GenerateInto asks client for JSON and decodes the cleaned reply into out.
// It returns the cleaned JSON alongside any decode error so callers can validate or log it.
func GenerateInto(ctx context.Context, client Client, prompt string, tier ModelTier, out any) (string, error) {
	raw, err := client.GenerateJSON(ctx, prompt, tier)
	if err != nil {
		return "", err
	}

	cleaned := CleanJSONBlock(raw)
	if cleaned == "" {
		return "", &ResponseError{Message: "empty JSON response", Raw: raw}
	}

	if err := json.Unmarshal([]byte(cleaned), out); err != nil {
		return cleaned, &ResponseError{Message: "failed to decode JSON response", Raw: raw, Cause: err}
	}
	return cleaned, nil
}
