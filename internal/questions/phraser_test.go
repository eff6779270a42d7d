package questions

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/jonathan/interview-coach/internal/llm"
	"github.com/jonathan/interview-coach/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapPhraser struct {
	replies map[string]string
}

func (p mapPhraser) Phrase(_ context.Context, q types.InterviewQuestion) (string, error) {
	reply, ok := p.replies[q.ID]
	if !ok {
		return "", errors.New("no reply")
	}
	return reply, nil
}

func TestRephrase_ReplacesTextAndKeepsTemplateOnError(t *testing.T) {
	questions := New(WithSeed(2)).Generate(testCandidate(), testJob(), 3)
	original := make([]string, len(questions))
	for i, q := range questions {
		original[i] = q.Text
	}

	phraser := mapPhraser{replies: map[string]string{
		questions[0].ID: "  \"How would you describe Go to a new teammate?\" ",
		questions[2].ID: strings.Repeat("too long ", 100),
	}}

	out := Rephrase(context.Background(), phraser, questions, nil)

	require.Len(t, out, 3)
	assert.Equal(t, "How would you describe Go to a new teammate?", out[0].Text)
	assert.Equal(t, original[1], out[1].Text)
	assert.Equal(t, original[2], out[2].Text)

	// Input slice is untouched and metadata is preserved
	assert.Equal(t, original[0], questions[0].Text)
	assert.Equal(t, questions[0].ID, out[0].ID)
	assert.Equal(t, questions[0].Difficulty, out[0].Difficulty)
}

func TestRephrase_NilPhraserCopies(t *testing.T) {
	questions := New(WithSeed(2)).Generate(testCandidate(), testJob(), 2)
	out := Rephrase(context.Background(), nil, questions, nil)
	assert.Equal(t, questions, out)
}

type recordingClient struct {
	mu      sync.Mutex
	prompts []string
	reply   string
	err     error
}

func (c *recordingClient) GenerateContent(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.prompts = append(c.prompts, prompt)
	return c.reply, c.err
}

func (c *recordingClient) GenerateJSON(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	return c.GenerateContent(ctx, prompt, tier)
}

func (c *recordingClient) GetModel(_ llm.ModelTier) string { return "recording" }

func (c *recordingClient) Close() error { return nil }

func TestLLMPhraser_BuildsPromptFromQuestion(t *testing.T) {
	client := &recordingClient{reply: "Tell us how you'd use Go here."}
	phraser := NewLLMPhraser(client, "Backend Engineer")

	q := types.InterviewQuestion{
		ID:         "Q_technical_easy_1",
		Text:       "What is Go and how would you explain it to a junior developer?",
		Difficulty: types.DifficultyEasy,
		SkillArea:  types.SkillAreaTechnical,
		Topic:      "Go",
	}

	text, err := phraser.Phrase(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, "Tell us how you'd use Go here.", text)

	require.Len(t, client.prompts, 1)
	assert.Contains(t, client.prompts[0], "Backend Engineer")
	assert.Contains(t, client.prompts[0], q.Text)
	assert.Contains(t, client.prompts[0], "easy")
	assert.NotContains(t, client.prompts[0], "{{.")
}

func TestLLMPhraser_ErrorKeepsTemplate(t *testing.T) {
	client := &recordingClient{err: errors.New("quota")}
	questions := New(WithSeed(4)).Generate(testCandidate(), testJob(), 2)

	out := Rephrase(context.Background(), NewLLMPhraser(client, "SRE"), questions, nil)

	assert.Equal(t, questions[0].Text, out[0].Text)
	assert.Equal(t, questions[1].Text, out[1].Text)
}
