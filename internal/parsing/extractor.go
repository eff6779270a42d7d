package parsing

import (
	"context"
	"errors"
	"strings"

	"github.com/jonathan/interview-coach/internal/llm"
	"github.com/jonathan/interview-coach/internal/prompts"
	"github.com/jonathan/interview-coach/internal/schemas"
	"github.com/jonathan/interview-coach/internal/types"
	"go.uber.org/zap"
)

// maxPromptText bounds how much document text is sent to the model
const maxPromptText = 20000

// LLMExtractor extracts profiles through a language model.
// Replies are schema-checked, normalized and validated before they are returned.
type LLMExtractor struct {
	client llm.Client
	logger *zap.Logger
}

// NewLLMExtractor creates an extractor over client. A nil logger disables logging.
func NewLLMExtractor(client llm.Client, logger *zap.Logger) *LLMExtractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LLMExtractor{client: client, logger: logger}
}

// ExtractCandidate extracts a candidate profile from résumé text
func (e *LLMExtractor) ExtractCandidate(ctx context.Context, text, nameHint string) (*types.CandidateProfile, error) {
	if strings.TrimSpace(text) == "" {
		return nil, &ValidationError{Document: DocumentResume, Field: "text", Message: "text is empty"}
	}

	prompt, err := buildPrompt(DocumentResume, "extract-candidate", map[string]string{
		"Name": nameHint,
		"Text": truncateRunes(text, maxPromptText),
	})
	if err != nil {
		return nil, err
	}

	var profile types.CandidateProfile
	if err := e.generate(ctx, DocumentResume, prompt, schemas.Candidate, &profile); err != nil {
		return nil, err
	}

	NormalizeCandidate(&profile)
	if err := profile.Validate(); err != nil {
		return nil, &ValidationError{Document: DocumentResume, Message: err.Error(), Cause: err}
	}

	e.logger.Info("extracted candidate profile",
		zap.String("candidate", profile.Name),
		zap.Int("skills", len(profile.Skills)),
		zap.Int("technologies", len(profile.Technologies)),
	)
	return &profile, nil
}

// ExtractJob extracts job requirements from job-description text
func (e *LLMExtractor) ExtractJob(ctx context.Context, text, titleHint string) (*types.JobRequirement, error) {
	if strings.TrimSpace(text) == "" {
		return nil, &ValidationError{Document: DocumentJob, Field: "text", Message: "text is empty"}
	}

	prompt, err := buildPrompt(DocumentJob, "extract-job", map[string]string{
		"Title": titleHint,
		"Text":  truncateRunes(text, maxPromptText),
	})
	if err != nil {
		return nil, err
	}

	var job types.JobRequirement
	if err := e.generate(ctx, DocumentJob, prompt, schemas.Job, &job); err != nil {
		return nil, err
	}

	NormalizeJob(&job)
	job.RequiredSkills = limit(job.RequiredSkills, maxRequiredSkills)
	job.PreferredSkills = limit(job.PreferredSkills, maxPreferredSkills)
	job.Technologies = limit(job.Technologies, maxJobTechnologies)
	job.Responsibilities = limit(job.Responsibilities, maxResponsibilities)
	job.NiceToHave = limit(job.NiceToHave, maxNiceToHave)
	job.Description = truncateRunes(job.Description, maxDescriptionLength)

	if err := job.Validate(); err != nil {
		return nil, &ValidationError{Document: DocumentJob, Message: err.Error(), Cause: err}
	}

	e.logger.Info("extracted job requirement",
		zap.String("title", job.Title),
		zap.Int("required_skills", len(job.RequiredSkills)),
		zap.Int("technologies", len(job.Technologies)),
	)
	return &job, nil
}

func (e *LLMExtractor) generate(ctx context.Context, document, prompt, schema string, out any) error {
	raw, err := llm.GenerateInto(ctx, e.client, prompt, llm.TierStandard, out)
	if err != nil {
		var respErr *llm.ResponseError
		if errors.As(err, &respErr) {
			return &ParseError{Document: document, Message: "reply is not valid JSON", Cause: err}
		}
		return &APICallError{Document: document, Message: "generation failed", Cause: err}
	}

	if err := schemas.Validate(schema, []byte(raw)); err != nil {
		var schemaErr *schemas.ValidationError
		if errors.As(err, &schemaErr) && len(schemaErr.Errors) > 0 {
			first := schemaErr.Errors[0]
			return &ValidationError{Document: document, Field: first.Field, Message: first.Message, Cause: err}
		}
		return &ValidationError{Document: document, Message: "schema check failed", Cause: err}
	}
	return nil
}

func buildPrompt(document, key string, data map[string]string) (string, error) {
	template, err := prompts.Get(prompts.InterviewFile, key)
	if err != nil {
		return "", &APICallError{Document: document, Message: "prompt " + key + " unavailable", Cause: err}
	}
	return prompts.Format(template, data), nil
}
