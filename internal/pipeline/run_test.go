package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/jonathan/interview-coach/internal/fetch"
	"github.com/jonathan/interview-coach/internal/ingestion"
	"github.com/jonathan/interview-coach/internal/llm"
	"github.com/jonathan/interview-coach/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const resumeText = `Ada Lovelace
ada@example.com

SUMMARY
Backend engineer with 6 years of experience building Python and Go services.

SKILLS
- Python, Go, PostgreSQL, Docker
- Leadership, mentoring`

const jobText = `Backend Engineer

Requirements:
- Python
- Redis
- PostgreSQL

Responsibilities:
- Build and operate backend services`

// routingClient answers extraction and phrasing prompts with canned replies
type routingClient struct {
	mu        sync.Mutex
	candidate string
	job       string
	phrased   string
	err       error
	calls     int
}

func (c *routingClient) GenerateContent(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	return c.GenerateJSON(ctx, prompt, tier)
}

func (c *routingClient) GenerateJSON(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	if c.err != nil {
		return "", c.err
	}
	switch {
	case strings.HasPrefix(prompt, "Extract structured information about the candidate"):
		return c.candidate, nil
	case strings.HasPrefix(prompt, "Extract structured requirements"):
		return c.job, nil
	default:
		return c.phrased, nil
	}
}

func (c *routingClient) GetModel(llm.ModelTier) string { return "fake-model" }

func (c *routingClient) Close() error { return nil }

type stubFetcher struct {
	text string
}

func (s stubFetcher) Text(_ context.Context, url string) (*fetch.Result, error) {
	return &fetch.Result{URL: url, Text: s.text, Platform: fetch.DetectPlatform(url)}, nil
}

func writeSources(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	resume := filepath.Join(dir, "resume.txt")
	job := filepath.Join(dir, "job.txt")
	require.NoError(t, os.WriteFile(resume, []byte(resumeText), 0o644))
	require.NoError(t, os.WriteFile(job, []byte(jobText), 0o644))
	return resume, job
}

func TestPrepare_KeywordAnalysis(t *testing.T) {
	resume, job := writeSources(t)

	var mu sync.Mutex
	var steps []string
	prepared, err := Prepare(context.Background(), Options{
		ResumeSource:  resume,
		JobSource:     job,
		CandidateName: "Ada Lovelace",
		JobTitle:      "Backend Engineer",
		Config:        session.DefaultConfig(),
		Seed:          7,
		Rephrase:      true,
		OnProgress: func(e ProgressEvent) {
			mu.Lock()
			steps = append(steps, e.Step)
			mu.Unlock()
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "Ada Lovelace", prepared.Candidate.Name)
	assert.Equal(t, "Backend Engineer", prepared.JobRequirement.Title)
	assert.Contains(t, prepared.Candidate.Technologies, "Python")
	assert.Contains(t, prepared.JobRequirement.SkillGaps, "Required technology: Redis")
	assert.Len(t, prepared.Questions, 5)

	current, ok := prepared.Session.CurrentQuestion()
	require.True(t, ok)
	assert.Equal(t, prepared.Questions[0].ID, current.ID)

	assert.ElementsMatch(t, []string{StepIngestResume, StepIngestJob}, steps[:2])
	assert.Equal(t, []string{StepExtract, StepSkillGaps, StepGenerate, StepSessionReady}, steps[2:])
}

func TestPrepare_SeedIsDeterministic(t *testing.T) {
	resume, job := writeSources(t)
	opts := Options{ResumeSource: resume, JobSource: job, Config: session.DefaultConfig(), Seed: 11}

	first, err := Prepare(context.Background(), opts)
	require.NoError(t, err)
	second, err := Prepare(context.Background(), opts)
	require.NoError(t, err)

	require.Len(t, second.Questions, len(first.Questions))
	for i := range first.Questions {
		assert.Equal(t, first.Questions[i].Text, second.Questions[i].Text)
	}
}

func TestPrepare_ModelExtractionAndRephrase(t *testing.T) {
	resume, job := writeSources(t)
	client := &routingClient{
		candidate: `{"name": "Ada L.", "years_of_experience": 6, "skills": ["leadership"], "technologies": ["python", "redis"]}`,
		job:       `{"title": "Senior Backend Engineer", "required_skills": ["Python"], "technologies": ["Redis", "Kafka"], "experience_level": "senior"}`,
		phrased:   "\"Tell me how you would use Kafka here?\"",
	}

	prepared, err := Prepare(context.Background(), Options{
		ResumeSource: resume,
		JobSource:    job,
		Config:       session.DefaultConfig(),
		Seed:         3,
		Client:       client,
		Rephrase:     true,
	})
	require.NoError(t, err)

	assert.Equal(t, "Ada L.", prepared.Candidate.Name)
	assert.Equal(t, "Senior Backend Engineer", prepared.JobRequirement.Title)
	assert.Equal(t, []string{"Required technology: Kafka"}, prepared.JobRequirement.SkillGaps)
	for _, q := range prepared.Questions {
		assert.Equal(t, "Tell me how you would use Kafka here?", q.Text)
	}
	assert.Equal(t, 2+len(prepared.Questions), client.calls)
}

func TestPrepare_ModelFailureFallsBack(t *testing.T) {
	resume, job := writeSources(t)
	client := &routingClient{err: errors.New("quota exceeded")}

	prepared, err := Prepare(context.Background(), Options{
		ResumeSource:  resume,
		JobSource:     job,
		CandidateName: "Ada Lovelace",
		Config:        session.DefaultConfig(),
		Seed:          5,
		Client:        client,
		Rephrase:      true,
	})
	require.NoError(t, err)

	assert.Equal(t, "Ada Lovelace", prepared.Candidate.Name)
	assert.Contains(t, prepared.Candidate.Technologies, "Python")
	assert.Len(t, prepared.Questions, 5)
	for _, q := range prepared.Questions {
		assert.NotEmpty(t, q.Text)
	}
}

func TestPrepare_URLSource(t *testing.T) {
	resume, _ := writeSources(t)

	prepared, err := Prepare(context.Background(), Options{
		ResumeSource: resume,
		JobSource:    "https://jobs.lever.co/acme/123",
		Config:       session.DefaultConfig(),
		Seed:         1,
		Fetcher:      stubFetcher{text: jobText},
	})
	require.NoError(t, err)

	assert.Equal(t, "lever", prepared.Job.Metadata.Platform)
	assert.Equal(t, ingestion.KindJob, prepared.Job.Kind)
}

func TestPrepare_MissingSource(t *testing.T) {
	_, job := writeSources(t)

	_, err := Prepare(context.Background(), Options{
		ResumeSource: filepath.Join(t.TempDir(), "missing.txt"),
		JobSource:    job,
		Config:       session.DefaultConfig(),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "resume ingestion failed")
}

func TestPrepare_InvalidConfig(t *testing.T) {
	resume, job := writeSources(t)
	cfg := session.DefaultConfig()
	cfg.MaxQuestions = 0

	_, err := Prepare(context.Background(), Options{ResumeSource: resume, JobSource: job, Config: cfg})

	var cfgErr *session.ConfigError
	assert.True(t, errors.As(err, &cfgErr))
}
