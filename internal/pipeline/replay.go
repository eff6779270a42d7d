package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/interview-coach/internal/questions"
	"github.com/jonathan/interview-coach/internal/schemas"
	"github.com/jonathan/interview-coach/internal/session"
	"github.com/jonathan/interview-coach/internal/types"
)

// DefaultReplayConcurrency bounds how many transcripts are replayed at once
const DefaultReplayConcurrency = 4

// Transcript is a recorded interview: the profiles, optionally the exact questions asked,
// and the answers in order
type Transcript struct {
	SessionID string                    `json:"session_id,omitempty"`
	Seed      uint64                    `json:"seed,omitempty"`
	Candidate types.CandidateProfile    `json:"candidate"`
	Job       types.JobRequirement      `json:"job"`
	Questions []types.InterviewQuestion `json:"questions,omitempty"`
	Answers   []RecordedAnswer          `json:"answers"`

	// Source names the file the transcript was loaded from
	Source string `json:"-"`
}

// RecordedAnswer is one answer and the seconds it took
type RecordedAnswer struct {
	Answer    string `json:"answer"`
	TimeTaken int    `json:"time_taken"`
}

// ReplayResult is the outcome of replaying one transcript
type ReplayResult struct {
	Source   string               `json:"source,omitempty"`
	Summary  session.Summary      `json:"summary"`
	Score    types.InterviewScore `json:"score"`
	Snapshot session.Snapshot     `json:"-"`
	// Unused counts answers left over after the session ended
	Unused int    `json:"unused_answers,omitempty"`
	Error  string `json:"error,omitempty"`
}

// ParseTranscript validates data against the transcript schema and decodes it
func ParseTranscript(data []byte) (*Transcript, error) {
	if err := schemas.Validate(schemas.Transcript, data); err != nil {
		return nil, err
	}
	var t Transcript
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("failed to decode transcript: %w", err)
	}
	return &t, nil
}

// LoadTranscript reads and parses a transcript file
func LoadTranscript(path string) (*Transcript, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read transcript %s: %w", path, err)
	}
	t, err := ParseTranscript(data)
	if err != nil {
		return nil, fmt.Errorf("transcript %s: %w", path, err)
	}
	t.Source = path
	return t, nil
}

// Replay runs every transcript through its own session, at most limit at a time, and
// returns results index-aligned with transcripts. A transcript that cannot be replayed gets
// a result with Error set; only cancellation of ctx fails the whole replay.
func Replay(ctx context.Context, transcripts []*Transcript, cfg session.Config, limit int, logger *zap.Logger) ([]ReplayResult, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if limit <= 0 {
		limit = DefaultReplayConcurrency
	}

	results := make([]ReplayResult, len(transcripts))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, t := range transcripts {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := replayOne(gctx, t, cfg, logger)
			if err != nil {
				if ctxErr := gctx.Err(); ctxErr != nil {
					return ctxErr
				}
				logger.Warn("transcript replay failed", zap.String("source", t.Source), zap.Error(err))
				res = ReplayResult{Source: t.Source, Error: err.Error()}
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func replayOne(ctx context.Context, t *Transcript, cfg session.Config, logger *zap.Logger) (ReplayResult, error) {
	if len(t.Answers) == 0 {
		return ReplayResult{}, errors.New("transcript has no answers")
	}

	genOpts := []questions.Option{
		questions.WithSeed(t.Seed),
		questions.WithBaseTimeLimit(cfg.TimePerQuestion),
		questions.WithLogger(logger),
	}

	var (
		gen *questions.Generator
		qs  []types.InterviewQuestion
	)
	if len(t.Questions) == 0 {
		gen = questions.New(genOpts...)
		qs = gen.Generate(t.Candidate, t.Job, cfg.MaxQuestions)
	} else {
		qs = make([]types.InterviewQuestion, len(t.Questions))
		for i, q := range t.Questions {
			qs[i] = q.Clone()
			if qs[i].TimeLimit <= 0 {
				qs[i].TimeLimit = types.TimeLimitFor(q.Difficulty, cfg.TimePerQuestion)
			}
		}
		// adapted questions are numbered after the recorded ones
		gen = questions.New(append(genOpts, questions.WithStartID(questions.HighestIDNumber(qs)))...)
	}

	opts := []session.Option{session.WithLogger(logger), session.WithAdapter(gen)}
	if t.SessionID != "" {
		opts = append(opts, session.WithID(t.SessionID))
	}
	sess, err := session.New(cfg, t.Candidate, t.Job, qs, opts...)
	if err != nil {
		return ReplayResult{}, err
	}

	used := 0
	for _, a := range t.Answers {
		if err := ctx.Err(); err != nil {
			return ReplayResult{}, err
		}
		if _, ok := sess.CurrentQuestion(); !ok {
			break
		}
		if _, err := sess.SubmitAnswer(a.Answer, a.TimeTaken); err != nil {
			return ReplayResult{}, err
		}
		used++
	}

	score := sess.Conclude()
	return ReplayResult{
		Source:   t.Source,
		Summary:  sess.Summary(),
		Score:    score,
		Snapshot: sess.Snapshot(),
		Unused:   len(t.Answers) - used,
	}, nil
}
