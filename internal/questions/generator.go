// Package questions generates interview question sets and adapts the difficulty
// of upcoming questions to the candidate's measured performance.
package questions

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/jonathan/interview-coach/internal/types"
	"go.uber.org/zap"
)

// Score thresholds for the difficulty adapter
const (
	HarderThreshold = 80.0
	EasierThreshold = 50.0
)

// Generator builds question sets from a candidate and a job.
// It is safe for concurrent use; ids are unique across every call on the same Generator.
type Generator struct {
	mu            sync.Mutex
	rng           *rand.Rand
	counter       int
	baseTimeLimit int
	logger        *zap.Logger
}

// Option configures a Generator
type Option func(*Generator)

// WithSeed makes template and topic selection deterministic
func WithSeed(seed uint64) Option {
	return func(g *Generator) {
		g.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
}

// WithBaseTimeLimit sets the per-question time budget for easy questions, in seconds.
// Medium and hard questions get 1.5x and 2x.
func WithBaseTimeLimit(seconds int) Option {
	return func(g *Generator) {
		g.baseTimeLimit = seconds
	}
}

// WithStartID makes the first id this Generator assigns n+1.
// Use it when adapting questions that another Generator numbered.
func WithStartID(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.counter = n
		}
	}
}

// HighestIDNumber returns the largest numeric suffix among the question ids, or 0 if none has one
func HighestIDNumber(qs []types.InterviewQuestion) int {
	highest := 0
	for _, q := range qs {
		i := strings.LastIndexByte(q.ID, '_')
		if i < 0 {
			continue
		}
		if n, err := strconv.Atoi(q.ID[i+1:]); err == nil && n > highest {
			highest = n
		}
	}
	return highest
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(g *Generator) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// New creates a Generator
func New(opts ...Option) *Generator {
	g := &Generator{
		baseTimeLimit: types.DefaultTimePerQuestion,
		logger:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		seed := uint64(time.Now().UnixNano())
		g.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
	return g
}

// Generate produces count questions spread evenly across the skill areas,
// ordered by area and ramping from easy to hard over the whole sequence.
func (g *Generator) Generate(candidate types.CandidateProfile, job types.JobRequirement, count int) []types.InterviewQuestion {
	if count <= 0 {
		return []types.InterviewQuestion{}
	}

	distribution := Distribute(count)
	progression := DifficultyProgression(count)
	topics := topicPool(candidate, job)

	g.mu.Lock()
	defer g.mu.Unlock()

	questions := make([]types.InterviewQuestion, 0, count)
	for _, area := range types.AllSkillAreas() {
		for i := 0; i < distribution[area]; i++ {
			difficulty := progression[len(questions)]
			topic := topics[g.rng.IntN(len(topics))]
			related := g.relatedConcept(job.Technologies, topic)
			questions = append(questions, g.build(area, difficulty, topic, related, ExpectedConcepts(area, topic)))
		}
	}

	g.logger.Debug("generated questions",
		zap.Int("count", len(questions)),
		zap.Strings("topics", topics),
	)

	return questions
}

// Adapt returns the replacement for next given the score of the answer just submitted.
// The replacement keeps the skill area, question type, topic and expected concepts;
// its text, id, ideal points and time limit are regenerated at the new difficulty.
func (g *Generator) Adapt(previousScore float64, next types.InterviewQuestion) types.InterviewQuestion {
	difficulty := NextDifficulty(previousScore, next.Difficulty)
	if !difficulty.Valid() {
		difficulty = types.DifficultyMedium
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	topic := next.Topic
	if topic == "" {
		topic = DefaultTopic
	}
	concepts := next.ExpectedConcepts
	if len(concepts) == 0 {
		concepts = ExpectedConcepts(next.SkillArea, topic)
	}

	adapted := g.build(next.SkillArea, difficulty, topic, g.relatedConcept(nil, topic), concepts)
	if next.QuestionType != "" {
		adapted.QuestionType = next.QuestionType
	}

	g.logger.Debug("adapted question",
		zap.String("from_id", next.ID),
		zap.String("to_id", adapted.ID),
		zap.Float64("previous_score", previousScore),
		zap.Stringer("from", next.Difficulty),
		zap.Stringer("to", difficulty),
	)

	return adapted
}

// NextDifficulty is the adapter's transition table: one step harder at 80 and above,
// one step easier below 50, otherwise unchanged. Steps saturate at easy and hard.
func NextDifficulty(previousScore float64, current types.Difficulty) types.Difficulty {
	switch {
	case previousScore >= HarderThreshold:
		return current.Harder()
	case previousScore < EasierThreshold:
		return current.Easier()
	default:
		return current
	}
}

// Distribute splits count across the skill areas in enumeration order,
// giving the remainder to the first areas.
func Distribute(count int) map[types.SkillArea]int {
	areas := types.AllSkillAreas()
	out := make(map[types.SkillArea]int, len(areas))
	if count <= 0 {
		return out
	}

	per := count / len(areas)
	remainder := count % len(areas)
	for i, area := range areas {
		out[area] = per
		if i < remainder {
			out[area]++
		}
	}
	return out
}

// DifficultyProgression assigns a difficulty to each position: the first 30% easy,
// the next 40% medium, the rest hard, by ratio index/(count-1).
func DifficultyProgression(count int) []types.Difficulty {
	if count <= 0 {
		return nil
	}

	out := make([]types.Difficulty, count)
	denominator := float64(max(count-1, 1))
	for i := range out {
		ratio := float64(i) / denominator
		switch {
		case ratio < 0.3:
			out[i] = types.DifficultyEasy
		case ratio < 0.7:
			out[i] = types.DifficultyMedium
		default:
			out[i] = types.DifficultyHard
		}
	}
	return out
}

// build creates one question. Caller must hold g.mu.
func (g *Generator) build(area types.SkillArea, difficulty types.Difficulty, topic, related string, concepts []string) types.InterviewQuestion {
	g.counter++

	return types.InterviewQuestion{
		ID:                fmt.Sprintf("Q_%s_%s_%d", area, difficulty, g.counter),
		Text:              g.fillTemplate(area, difficulty, topic, related),
		Difficulty:        difficulty,
		SkillArea:         area,
		QuestionType:      QuestionType(area),
		Topic:             topic,
		ExpectedConcepts:  append([]string(nil), concepts...),
		IdealAnswerPoints: IdealAnswerPoints(area),
		TimeLimit:         types.TimeLimitFor(difficulty, g.baseTimeLimit),
	}
}

// fillTemplate picks a template for the slot and substitutes its placeholders. Caller must hold g.mu.
func (g *Generator) fillTemplate(area types.SkillArea, difficulty types.Difficulty, topic, related string) string {
	templates := templateBank[area][difficulty]
	if len(templates) == 0 {
		templates = templateBank[types.SkillAreaTechnical][difficulty]
	}
	template := templates[g.rng.IntN(len(templates))]

	replacer := strings.NewReplacer(
		"{concept}", topic,
		"{related_concept}", related,
		"{problem}", g.pick(problems),
		"{system}", g.pick(systems),
		"{tradeoff1}", g.pick(tradeoffPrimary),
		"{tradeoff2}", g.pick(tradeoffSecondary),
	)
	return replacer.Replace(template)
}

// relatedConcept picks a second technology for comparison templates, preferring the job's stack
func (g *Generator) relatedConcept(jobTechnologies []string, topic string) string {
	pool := make([]string, 0, len(jobTechnologies))
	for _, tech := range jobTechnologies {
		if !strings.EqualFold(tech, topic) {
			pool = append(pool, tech)
		}
	}
	if len(pool) == 0 {
		for _, tech := range relatedConcepts {
			if !strings.EqualFold(tech, topic) {
				pool = append(pool, tech)
			}
		}
	}
	if len(pool) == 0 {
		return topic
	}
	return g.pick(pool)
}

func (g *Generator) pick(values []string) string {
	return values[g.rng.IntN(len(values))]
}

// topicPool returns the technologies questions are built around: those shared by job and
// candidate, else the job's first three, else the default topic
func topicPool(candidate types.CandidateProfile, job types.JobRequirement) []string {
	held := make(map[string]bool, len(candidate.Technologies))
	for _, tech := range candidate.Technologies {
		held[strings.ToLower(strings.TrimSpace(tech))] = true
	}

	var common []string
	for _, tech := range job.Technologies {
		if held[strings.ToLower(strings.TrimSpace(tech))] {
			common = append(common, tech)
		}
	}
	if len(common) > 0 {
		return common
	}

	var fallback []string
	for _, tech := range job.Technologies {
		if strings.TrimSpace(tech) != "" {
			fallback = append(fallback, tech)
		}
		if len(fallback) == 3 {
			break
		}
	}
	if len(fallback) > 0 {
		return fallback
	}

	return []string{DefaultTopic}
}
