// Package session owns the state of one mock interview and drives the
// question, answer, evaluate, adapt loop until the interview ends.
package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/interview-coach/internal/evaluation"
	"github.com/jonathan/interview-coach/internal/questions"
	"github.com/jonathan/interview-coach/internal/scoring"
	"github.com/jonathan/interview-coach/internal/types"
	"go.uber.org/zap"
)

// recentWindow is how many of the latest scores the early-termination check averages
const recentWindow = 3

// minEvaluationsForTermination is the number of answers required before early termination can trigger
const minEvaluationsForTermination = 2

// Status describes where a session is in its lifecycle
type Status string

// Session statuses
const (
	StatusInProgress Status = "In Progress"
	StatusTerminated Status = "Terminated"
	StatusCompleted  Status = "Completed"
	StatusConcluded  Status = "Concluded"
)

// Evaluator scores one answer
type Evaluator interface {
	Evaluate(question types.InterviewQuestion, answer string, timeTaken int) types.AnswerEvaluation
}

// Adapter produces the replacement for the next question from the latest score
type Adapter interface {
	Adapt(previousScore float64, next types.InterviewQuestion) types.InterviewQuestion
}

// Scorer aggregates the full evaluation history
type Scorer interface {
	Score(evaluations []types.AnswerEvaluation, job types.JobRequirement, candidate types.CandidateProfile,
		questions []types.InterviewQuestion, earlyTerminated bool) types.InterviewScore
}

// Session is one interview. All methods are safe for concurrent use; mutating calls are serialized.
// Sessions share no mutable state with each other.
type Session struct {
	mu sync.Mutex

	id        string
	cfg       Config
	candidate types.CandidateProfile
	job       types.JobRequirement

	questions   []types.InterviewQuestion
	evaluations []types.AnswerEvaluation
	index       int
	terminated  bool
	concluded   bool
	startedAt   time.Time
	endedAt     time.Time
	warnings    []string

	clock     func() time.Time
	logger    *zap.Logger
	evaluator Evaluator
	adapter   Adapter
	scorer    Scorer
}

// Option configures a Session
type Option func(*Session)

// WithClock overrides the wall clock used for start/end timestamps
func WithClock(clock func() time.Time) Option {
	return func(s *Session) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithEvaluator replaces the answer evaluator
func WithEvaluator(e Evaluator) Option {
	return func(s *Session) {
		if e != nil {
			s.evaluator = e
		}
	}
}

// WithAdapter replaces the difficulty adapter
func WithAdapter(a Adapter) Option {
	return func(s *Session) {
		if a != nil {
			s.adapter = a
		}
	}
}

// WithScorer replaces the interview scorer
func WithScorer(sc Scorer) Option {
	return func(s *Session) {
		if sc != nil {
			s.scorer = sc
		}
	}
}

// WithID sets the session id instead of generating one
func WithID(id string) Option {
	return func(s *Session) {
		if id != "" {
			s.id = id
		}
	}
}

// New starts a session over the given questions. Inputs are copied; the caller keeps ownership of its values.
func New(cfg Config, candidate types.CandidateProfile, job types.JobRequirement, qs []types.InterviewQuestion, opts ...Option) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Session{
		id:        uuid.NewString(),
		cfg:       cfg,
		candidate: candidate.Clone(),
		job:       job.Clone(),
		questions: make([]types.InterviewQuestion, len(qs)),
		clock:     time.Now,
		logger:    zap.NewNop(),
		evaluator: evaluation.New(),
	}
	for i, q := range qs {
		s.questions[i] = q.Clone()
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.adapter == nil {
		s.adapter = questions.New(
			questions.WithBaseTimeLimit(cfg.TimePerQuestion),
			questions.WithStartID(questions.HighestIDNumber(s.questions)),
			questions.WithLogger(s.logger),
		)
	}
	if s.scorer == nil {
		s.scorer = scoring.New(scoring.WithLogger(s.logger))
	}

	s.logger = s.logger.With(zap.String("session_id", s.id))
	s.startedAt = s.clock()
	s.warnings = inputWarnings(s.candidate, s.job, s.questions)

	for _, w := range s.warnings {
		s.logger.Warn("malformed interview input", zap.String("warning", w))
	}
	s.logger.Info("interview started",
		zap.String("candidate", s.candidate.Name),
		zap.String("position", s.job.Title),
		zap.Int("questions", len(s.questions)),
	)

	return s, nil
}

// ID returns the session id
func (s *Session) ID() string {
	return s.id
}

// CurrentQuestion returns the question being asked.
// It reports false once every question is answered, after early termination, or after Conclude.
func (s *Session) CurrentQuestion() (types.InterviewQuestion, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.hasActiveQuestion() {
		return types.InterviewQuestion{}, false
	}
	return s.questions[s.index].Clone(), true
}

// Position returns the 1-based number of the current question and the total.
// Once the questions are exhausted the position stays at the total.
func (s *Session) Position() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return min(s.index+1, len(s.questions)), len(s.questions)
}

// Result is the outcome of one submitted answer
type Result struct {
	Evaluation types.AnswerEvaluation
	// NextQuestion is set when the interview continues
	NextQuestion *types.InterviewQuestion
	Continues    bool
	Terminated   bool
}

// SubmitAnswer evaluates an answer to the current question, records it, checks for early
// termination, adapts the next question to the score and advances.
// timeTaken is the answer time reported by the caller, in seconds.
func (s *Session) SubmitAnswer(answer string, timeTaken int) (*Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.concluded {
		return nil, ErrConcluded
	}
	if !s.hasActiveQuestion() {
		return nil, &NoActiveQuestionError{
			SessionID:  s.id,
			Index:      s.index,
			Total:      len(s.questions),
			Terminated: s.terminated,
		}
	}

	question := s.questions[s.index]
	eval := s.evaluator.Evaluate(question, answer, timeTaken)
	s.evaluations = append(s.evaluations, eval)

	s.logger.Info("answer evaluated",
		zap.String("question_id", question.ID),
		zap.Float64("overall", eval.Overall),
		zap.Int("time_taken", timeTaken),
	)

	if !s.terminated && s.shouldTerminate() {
		s.terminated = true
		s.logger.Warn("interview terminated early",
			zap.Float64("threshold", s.cfg.EarlyTerminationThreshold),
			zap.Int("answered", len(s.evaluations)),
		)
	}

	// Only questions after the current index may be replaced
	next := s.index + 1
	if next < len(s.questions) && !s.terminated {
		s.questions[next] = s.adapter.Adapt(eval.Overall, s.questions[next])
	}
	s.index++

	result := &Result{Evaluation: eval, Terminated: s.terminated}
	if s.hasActiveQuestion() {
		q := s.questions[s.index].Clone()
		result.NextQuestion = &q
		result.Continues = true
	}
	return result, nil
}

// Conclude freezes the end time on the first call and scores the interview.
// It is idempotent: every call recomputes the score from the same frozen history.
func (s *Session) Conclude() types.InterviewScore {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.concluded {
		s.concluded = true
		s.endedAt = s.clock()
		s.logger.Info("interview concluded",
			zap.Int("answered", len(s.evaluations)),
			zap.Bool("early_termination", s.terminated),
			zap.String("duration", s.durationLocked()),
		)
	}

	return s.scorer.Score(
		cloneEvaluations(s.evaluations),
		s.job.Clone(),
		s.candidate.Clone(),
		cloneQuestions(s.questions),
		s.terminated,
	)
}

// Summary is a point-in-time view of progress
type Summary struct {
	SessionID         string   `json:"session_id"`
	QuestionsAsked    int      `json:"questions_asked"`
	QuestionsAnswered int      `json:"questions_answered"`
	TotalQuestions    int      `json:"total_questions"`
	CurrentAverage    float64  `json:"current_average_score"`
	Status            Status   `json:"status"`
	Duration          string   `json:"interview_duration"`
	Passed            bool     `json:"passed"`
	Warnings          []string `json:"warnings,omitempty"`
}

// Summary reports progress so far
func (s *Session) Summary() Summary {
	s.mu.Lock()
	defer s.mu.Unlock()

	scores := make([]float64, len(s.evaluations))
	for i, e := range s.evaluations {
		scores[i] = e.Overall
	}
	avg := types.Round2(types.Mean(scores))

	return Summary{
		SessionID:         s.id,
		QuestionsAsked:    s.index,
		QuestionsAnswered: len(s.evaluations),
		TotalQuestions:    len(s.questions),
		CurrentAverage:    avg,
		Status:            s.statusLocked(),
		Duration:          s.durationLocked(),
		Passed:            len(scores) > 0 && avg >= s.cfg.PassingThreshold,
		Warnings:          append([]string(nil), s.warnings...),
	}
}

// Snapshot is a copy of the full session state for reporting
type Snapshot struct {
	ID          string
	Candidate   types.CandidateProfile
	Job         types.JobRequirement
	Questions   []types.InterviewQuestion
	Evaluations []types.AnswerEvaluation
	Terminated  bool
	Concluded   bool
	StartedAt   time.Time
	EndedAt     time.Time
	Duration    string
}

// Snapshot returns a copy of the session state
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Snapshot{
		ID:          s.id,
		Candidate:   s.candidate.Clone(),
		Job:         s.job.Clone(),
		Questions:   cloneQuestions(s.questions),
		Evaluations: cloneEvaluations(s.evaluations),
		Terminated:  s.terminated,
		Concluded:   s.concluded,
		StartedAt:   s.startedAt,
		EndedAt:     s.endedAt,
		Duration:    s.durationLocked(),
	}
}

// Terminated reports whether early termination has triggered
func (s *Session) Terminated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.terminated
}

func (s *Session) hasActiveQuestion() bool {
	return !s.concluded && !s.terminated && s.index < len(s.questions)
}

// shouldTerminate averages the last up-to-three scores once at least two answers exist
func (s *Session) shouldTerminate() bool {
	if len(s.evaluations) < minEvaluationsForTermination {
		return false
	}

	recent := s.evaluations[max(0, len(s.evaluations)-recentWindow):]
	total := 0.0
	for _, e := range recent {
		total += e.Overall
	}
	return total/float64(len(recent)) < s.cfg.EarlyTerminationThreshold
}

func (s *Session) statusLocked() Status {
	switch {
	case s.concluded:
		return StatusConcluded
	case s.terminated:
		return StatusTerminated
	case s.index >= len(s.questions):
		return StatusCompleted
	default:
		return StatusInProgress
	}
}

// durationLocked formats elapsed time as m:ss, measured to the end time once concluded
func (s *Session) durationLocked() string {
	end := s.endedAt
	if end.IsZero() {
		end = s.clock()
	}
	return FormatDuration(end.Sub(s.startedAt))
}

// FormatDuration renders d as minutes:seconds
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d / time.Second)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

// inputWarnings lists the gaps in the inputs that will degrade scores toward their base values
func inputWarnings(candidate types.CandidateProfile, job types.JobRequirement, qs []types.InterviewQuestion) []string {
	var warnings []string
	if job.Title == "" {
		warnings = append(warnings, "job requirement has no title")
	}
	if len(job.RequiredSkills) == 0 {
		warnings = append(warnings, "job requirement lists no required skills; role fit skill term is omitted")
	}
	if len(job.Technologies) == 0 {
		warnings = append(warnings, "job requirement lists no technologies; role fit technology term is omitted")
	}
	if len(candidate.Technologies) == 0 {
		warnings = append(warnings, "candidate profile lists no technologies")
	}
	if len(qs) == 0 {
		warnings = append(warnings, "interview has no questions")
	}
	return warnings
}

func cloneQuestions(qs []types.InterviewQuestion) []types.InterviewQuestion {
	out := make([]types.InterviewQuestion, len(qs))
	for i, q := range qs {
		out[i] = q.Clone()
	}
	return out
}

func cloneEvaluations(evals []types.AnswerEvaluation) []types.AnswerEvaluation {
	out := make([]types.AnswerEvaluation, len(evals))
	for i, e := range evals {
		out[i] = e
		out[i].Strengths = append([]string(nil), e.Strengths...)
		out[i].AreasForImprovement = append([]string(nil), e.AreasForImprovement...)
		out[i].KeyPointsCovered = append([]string(nil), e.KeyPointsCovered...)
		out[i].MissedConcepts = append([]string(nil), e.MissedConcepts...)
	}
	return out
}
