package questions

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonathan/interview-coach/internal/llm"
	"github.com/jonathan/interview-coach/internal/prompts"
	"github.com/jonathan/interview-coach/internal/types"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// maxPhrasedLength bounds externally generated question text
const maxPhrasedLength = 600

// rephraseConcurrency bounds in-flight phrasing calls
const rephraseConcurrency = 4

// Phraser is an external source of question text
type Phraser interface {
	Phrase(ctx context.Context, question types.InterviewQuestion) (string, error)
}

// Rephrase returns a copy of questions with each text replaced by the phraser's output.
// A question keeps its template text when the phraser fails or returns nothing usable,
// so the result is always index-aligned with the input.
func Rephrase(ctx context.Context, phraser Phraser, questions []types.InterviewQuestion, logger *zap.Logger) []types.InterviewQuestion {
	if logger == nil {
		logger = zap.NewNop()
	}

	out := make([]types.InterviewQuestion, len(questions))
	for i, q := range questions {
		out[i] = q.Clone()
	}
	if phraser == nil {
		return out
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(rephraseConcurrency)

	for i := range out {
		g.Go(func() error {
			text, err := phraser.Phrase(gctx, out[i])
			if err != nil {
				logger.Warn("keeping template question text",
					zap.String("question_id", out[i].ID),
					zap.Error(err),
				)
				return nil
			}
			if text = sanitizePhrased(text); text != "" {
				out[i].Text = text
			}
			return nil
		})
	}
	_ = g.Wait()

	return out
}

// sanitizePhrased trims quoting and bounds the length of generated question text
func sanitizePhrased(text string) string {
	text = strings.TrimSpace(text)
	text = strings.Trim(text, "\"'`")
	text = strings.TrimSpace(text)
	if len(text) > maxPhrasedLength {
		return ""
	}
	return text
}

// LLMPhraser asks an LLM to reword template questions for a specific job
type LLMPhraser struct {
	client   llm.Client
	jobTitle string
}

// NewLLMPhraser creates a phraser that tailors questions to jobTitle
func NewLLMPhraser(client llm.Client, jobTitle string) *LLMPhraser {
	return &LLMPhraser{client: client, jobTitle: jobTitle}
}

// Phrase rewrites one question's text while keeping its intent and difficulty
func (p *LLMPhraser) Phrase(ctx context.Context, question types.InterviewQuestion) (string, error) {
	if p.client == nil {
		return "", fmt.Errorf("no LLM client configured")
	}

	template, err := prompts.Get("interview.json", "phrase-question")
	if err != nil {
		return "", fmt.Errorf("failed to load phrasing prompt: %w", err)
	}

	prompt := prompts.Format(template, map[string]string{
		"JobTitle":   p.jobTitle,
		"SkillArea":  question.SkillArea.Label(),
		"Difficulty": question.Difficulty.String(),
		"Topic":      question.Topic,
		"Question":   question.Text,
	})

	text, err := p.client.GenerateContent(ctx, prompt, llm.TierLite)
	if err != nil {
		return "", fmt.Errorf("failed to phrase question %s: %w", question.ID, err)
	}
	return text, nil
}
