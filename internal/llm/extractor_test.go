package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateInto_DecodesFencedJSON(t *testing.T) {
	stub := &stubClient{reply: "```json\n{\"title\": \"Backend Engineer\", \"technologies\": [\"Go\"]}\n```"}

	var out struct {
		Title        string   `json:"title"`
		Technologies []string `json:"technologies"`
	}
	cleaned, err := GenerateInto(context.Background(), stub, "prompt", TierStandard, &out)

	require.NoError(t, err)
	assert.Equal(t, "Backend Engineer", out.Title)
	assert.Equal(t, []string{"Go"}, out.Technologies)
	assert.Contains(t, cleaned, `"title"`)
}

func TestGenerateInto_DecodeFailure(t *testing.T) {
	stub := &stubClient{reply: "{\"title\": 42}"}

	var out struct {
		Title string `json:"title"`
	}
	_, err := GenerateInto(context.Background(), stub, "prompt", TierStandard, &out)

	var respErr *ResponseError
	require.True(t, errors.As(err, &respErr))
	assert.Equal(t, "{\"title\": 42}", respErr.Raw)
}

func TestGenerateInto_ClientError(t *testing.T) {
	stub := &stubClient{err: errors.New("unavailable")}

	var out map[string]any
	_, err := GenerateInto(context.Background(), stub, "prompt", TierStandard, &out)
	assert.EqualError(t, err, "unavailable")
}
