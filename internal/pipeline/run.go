// Package pipeline prepares mock interviews from résumé and job-description sources and
// replays recorded interview transcripts.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/interview-coach/internal/fetch"
	"github.com/jonathan/interview-coach/internal/ingestion"
	"github.com/jonathan/interview-coach/internal/llm"
	"github.com/jonathan/interview-coach/internal/parsing"
	"github.com/jonathan/interview-coach/internal/questions"
	"github.com/jonathan/interview-coach/internal/session"
	"github.com/jonathan/interview-coach/internal/types"
)

// Progress steps
const (
	StepIngestResume  = "ingest_resume"
	StepIngestJob     = "ingest_job"
	StepExtract       = "extract_profiles"
	StepSkillGaps     = "skill_gaps"
	StepGenerate      = "generate_questions"
	StepRephrase      = "rephrase_questions"
	StepSessionReady  = "session_ready"
	CategoryIngestion = "ingestion"
	CategoryAnalysis  = "analysis"
	CategoryQuestions = "questions"
)

// ProgressEvent represents a progress update during preparation
type ProgressEvent struct {
	Step     string `json:"step"`
	Category string `json:"category"`
	Message  string `json:"message"`
	Content  any    `json:"content,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// Options holds the inputs for preparing an interview
type Options struct {
	// ResumeSource and JobSource are file paths or http(s) URLs
	ResumeSource string
	JobSource    string
	// CandidateName and JobTitle are used when extraction finds none
	CandidateName string
	JobTitle      string

	Config session.Config
	// Seed fixes question selection; zero picks a random seed
	Seed uint64
	// Client enables model-based extraction and rephrasing; nil uses keyword analysis only
	Client   llm.Client
	Rephrase bool
	// Fetcher retrieves URL sources; nil uses a default fetch.Fetcher
	Fetcher    ingestion.TextFetcher
	Logger     *zap.Logger
	OnProgress ProgressCallback
	// SessionOptions are passed through to session.New
	SessionOptions []session.Option
}

// Profiles holds the ingested documents and the profiles extracted from them
type Profiles struct {
	Resume    *ingestion.Document
	Job       *ingestion.Document
	Candidate types.CandidateProfile
	// JobRequirement carries the candidate's skill gaps
	JobRequirement types.JobRequirement
}

// Prepared is a ready-to-run interview
type Prepared struct {
	Profiles
	Questions []types.InterviewQuestion
	Session   *session.Session
}

// emitProgress calls the progress callback if configured
func emitProgress(opts *Options, step, category, message string, content any) {
	if opts.OnProgress != nil {
		opts.OnProgress(ProgressEvent{
			Step:     step,
			Category: category,
			Message:  message,
			Content:  content,
		})
	}
}

func (o *Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

// Analyze ingests both sources concurrently, extracts the candidate and job profiles and
// records the candidate's skill gaps on the job requirement.
func Analyze(ctx context.Context, opts Options) (*Profiles, error) {
	logger := opts.logger()
	fetcher := opts.Fetcher
	if fetcher == nil {
		fetcher = fetch.NewFetcher(fetch.WithLogger(logger))
	}

	var out Profiles
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		doc, err := ingestion.Load(gctx, fetcher, opts.ResumeSource, ingestion.KindResume)
		if err != nil {
			return fmt.Errorf("resume ingestion failed: %w", err)
		}
		out.Resume = doc
		emitProgress(&opts, StepIngestResume, CategoryIngestion,
			fmt.Sprintf("Ingested résumé from %s (%d bytes)", opts.ResumeSource, doc.Metadata.Bytes), doc.Metadata)
		return nil
	})

	g.Go(func() error {
		doc, err := ingestion.Load(gctx, fetcher, opts.JobSource, ingestion.KindJob)
		if err != nil {
			return fmt.Errorf("job ingestion failed: %w", err)
		}
		out.Job = doc
		emitProgress(&opts, StepIngestJob, CategoryIngestion,
			fmt.Sprintf("Ingested job description from %s (%d bytes)", opts.JobSource, doc.Metadata.Bytes), doc.Metadata)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	out.Candidate, out.JobRequirement = extractProfiles(ctx, &opts, out.Resume.Text, out.Job.Text)
	emitProgress(&opts, StepExtract, CategoryAnalysis,
		fmt.Sprintf("Extracted profiles for %s applying to %s", out.Candidate.Name, out.JobRequirement.Title), nil)

	out.JobRequirement.SkillGaps = parsing.IdentifySkillGaps(out.Candidate, out.JobRequirement)
	emitProgress(&opts, StepSkillGaps, CategoryAnalysis,
		fmt.Sprintf("Identified %d skill gaps", len(out.JobRequirement.SkillGaps)), out.JobRequirement.SkillGaps)

	logger.Info("analyzed sources",
		zap.String("candidate", out.Candidate.Name),
		zap.String("job", out.JobRequirement.Title),
		zap.Int("skill_gaps", len(out.JobRequirement.SkillGaps)),
	)
	return &out, nil
}

// extractProfiles runs both extractions concurrently. Model extraction falls back to the
// keyword analyzers on any failure, so it never fails.
func extractProfiles(ctx context.Context, opts *Options, resumeText, jobText string) (types.CandidateProfile, types.JobRequirement) {
	logger := opts.logger()
	var candidate types.CandidateProfile
	var job types.JobRequirement

	var g errgroup.Group
	g.Go(func() error {
		if opts.Client != nil {
			extracted, err := parsing.NewLLMExtractor(opts.Client, logger).ExtractCandidate(ctx, resumeText, opts.CandidateName)
			if err == nil {
				candidate = *extracted
				return nil
			}
			logger.Warn("model extraction failed, using keyword analysis", zap.String("kind", "resume"), zap.Error(err))
		}
		candidate = parsing.NewResumeAnalyzer(logger).Analyze(resumeText, opts.CandidateName)
		return nil
	})
	g.Go(func() error {
		if opts.Client != nil {
			extracted, err := parsing.NewLLMExtractor(opts.Client, logger).ExtractJob(ctx, jobText, opts.JobTitle)
			if err == nil {
				job = *extracted
				return nil
			}
			logger.Warn("model extraction failed, using keyword analysis", zap.String("kind", "job"), zap.Error(err))
		}
		job = parsing.NewJobAnalyzer(logger).Analyze(jobText, opts.JobTitle)
		return nil
	})
	_ = g.Wait()

	if candidate.Name == "" && opts.CandidateName != "" {
		candidate.Name = opts.CandidateName
	}
	if job.Title == "" && opts.JobTitle != "" {
		job.Title = opts.JobTitle
	}
	return candidate, job
}

// Prepare analyzes the sources, generates the question set and builds a session whose
// adapter shares the question generator.
func Prepare(ctx context.Context, opts Options) (*Prepared, error) {
	if err := opts.Config.Validate(); err != nil {
		return nil, err
	}
	logger := opts.logger()

	profiles, err := Analyze(ctx, opts)
	if err != nil {
		return nil, err
	}

	genOpts := []questions.Option{
		questions.WithBaseTimeLimit(opts.Config.TimePerQuestion),
		questions.WithLogger(logger),
	}
	if opts.Seed != 0 {
		genOpts = append(genOpts, questions.WithSeed(opts.Seed))
	}
	gen := questions.New(genOpts...)

	qs := gen.Generate(profiles.Candidate, profiles.JobRequirement, opts.Config.MaxQuestions)
	emitProgress(&opts, StepGenerate, CategoryQuestions, fmt.Sprintf("Generated %d questions", len(qs)), nil)

	if opts.Rephrase && opts.Client != nil {
		start := time.Now()
		phraser := questions.NewLLMPhraser(opts.Client, profiles.JobRequirement.Title)
		qs = questions.Rephrase(ctx, phraser, qs, logger)
		emitProgress(&opts, StepRephrase, CategoryQuestions,
			fmt.Sprintf("Rephrased questions in %s", time.Since(start).Round(time.Millisecond)), nil)
	}

	sessOpts := append([]session.Option{
		session.WithLogger(logger),
		session.WithAdapter(gen),
	}, opts.SessionOptions...)
	sess, err := session.New(opts.Config, profiles.Candidate, profiles.JobRequirement, qs, sessOpts...)
	if err != nil {
		return nil, err
	}
	emitProgress(&opts, StepSessionReady, CategoryQuestions, fmt.Sprintf("Session %s ready", sess.ID()), nil)

	return &Prepared{Profiles: *profiles, Questions: qs, Session: sess}, nil
}
