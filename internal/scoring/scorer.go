// Package scoring aggregates per-answer evaluations into the final interview score:
// skill-area scores, the weighted overall score, role fit, readiness verdicts and feedback.
package scoring

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jonathan/interview-coach/internal/types"
	"go.uber.org/zap"
)

// SkillWeights are the contributions of each skill area to the overall score
var SkillWeights = map[types.SkillArea]float64{
	types.SkillAreaTechnical:      0.30,
	types.SkillAreaProblemSolving: 0.25,
	types.SkillAreaBehavioral:     0.15,
	types.SkillAreaCommunication:  0.15,
	types.SkillAreaSystemDesign:   0.15,
}

// Verdict thresholds
const (
	strongThreshold  = 75.0
	averageThreshold = 60.0

	readyThreshold            = 75.0
	needsDevelopmentThreshold = 55.0

	weakAreaThreshold     = 60.0
	strongAreaLine        = 75.0
	needsImprovementLine  = 50.0
	slowAnswerThreshold   = 50.0
	behavioralFailScore   = 50.0
	consistencySpread     = 20.0
	earlyTerminationRatio = 0.9
)

// Feedback and verdict lines
const (
	NoDataWeakness        = "No data to evaluate"
	CompleteInterviewHint = "Complete the interview to get evaluation"
	ConsistencyStrength   = "Consistent performance across questions"
	TimeManagementHint    = "Practice time management - many answers went over time"
	STARHint              = "Prepare stronger behavioral examples - use STAR method"
)

const (
	maxStrengths  = 5
	maxWeaknesses = 4
	topPhrases    = 3
	weakAreaLimit = 2
	learnLimit    = 3
)

// Scorer computes InterviewScores. It holds no per-interview state.
type Scorer struct {
	logger *zap.Logger
}

// Option configures a Scorer
type Option func(*Scorer)

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(s *Scorer) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates a Scorer
func New(opts ...Option) *Scorer {
	s := &Scorer{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Score aggregates evaluations into the final interview score.
// With no evaluations it returns ZeroScore.
func (s *Scorer) Score(
	evaluations []types.AnswerEvaluation,
	job types.JobRequirement,
	candidate types.CandidateProfile,
	questions []types.InterviewQuestion,
	earlyTerminated bool,
) types.InterviewScore {
	if len(evaluations) == 0 {
		s.logger.Info("no evaluations to score")
		return ZeroScore()
	}

	areaScores := SkillAreaScores(evaluations, questions)
	overall := OverallScore(areaScores)
	roleFit := RoleFit(candidate, job, areaScores)

	questionScores := make([]float64, len(evaluations))
	for i, e := range evaluations {
		questionScores[i] = e.Overall
	}

	score := types.InterviewScore{
		Overall:              overall,
		SkillAreaScores:      areaScores,
		QuestionScores:       questionScores,
		Strengths:            overallStrengths(evaluations, areaScores),
		Weaknesses:           overallWeaknesses(evaluations, areaScores),
		Readiness:            Readiness(overall),
		HiringReadiness:      HiringReadiness(overall, roleFit),
		ActionableFeedback:   actionableFeedback(evaluations, areaScores, job),
		RoleFit:              roleFit,
		TimeManagement:       TimeManagement(evaluations),
		Adaptability:         Adaptability(evaluations),
		TechnicalDepth:       areaScores[types.SkillAreaTechnical].Score,
		CommunicationQuality: areaScores[types.SkillAreaCommunication].Score,
		CompletionPercentage: CompletionPercentage(len(evaluations), len(questions), earlyTerminated),
	}

	s.logger.Info("interview scored",
		zap.Float64("overall", score.Overall),
		zap.Float64("role_fit", score.RoleFit),
		zap.String("readiness", string(score.Readiness)),
		zap.String("hiring_readiness", string(score.HiringReadiness)),
		zap.Int("evaluations", len(evaluations)),
	)

	return score
}

// ZeroScore is the result for an interview with no answers
func ZeroScore() types.InterviewScore {
	return types.InterviewScore{
		SkillAreaScores:    map[types.SkillArea]types.SkillAreaScore{},
		QuestionScores:     []float64{},
		Strengths:          []string{},
		Weaknesses:         []string{NoDataWeakness},
		Readiness:          types.ReadinessNeedsImprovement,
		HiringReadiness:    types.HiringNotReady,
		ActionableFeedback: []string{CompleteInterviewHint},
	}
}

// SkillAreaScores groups evaluations by the skill area of their question and averages each group.
// Every area is present in the result; areas without evaluations score 0 with zero questions asked.
// Evaluations whose question id is unknown are ignored here.
func SkillAreaScores(evaluations []types.AnswerEvaluation, questions []types.InterviewQuestion) map[types.SkillArea]types.SkillAreaScore {
	areaByID := make(map[string]types.SkillArea, len(questions))
	for _, q := range questions {
		areaByID[q.ID] = q.SkillArea
	}

	grouped := make(map[types.SkillArea][]float64)
	for _, e := range evaluations {
		if area, ok := areaByID[e.QuestionID]; ok {
			grouped[area] = append(grouped[area], e.Overall)
		}
	}

	out := make(map[types.SkillArea]types.SkillAreaScore, len(types.AllSkillAreas()))
	for _, area := range types.AllSkillAreas() {
		scores := grouped[area]
		avg := types.Round2(types.ClampScore(types.Mean(scores)))
		out[area] = types.SkillAreaScore{
			SkillArea:          area,
			Score:              avg,
			QuestionsAsked:     len(scores),
			AveragePerformance: avg,
		}
	}
	return out
}

// OverallScore is the weighted mean of the areas that have data.
// Areas without evaluations contribute to neither numerator nor denominator.
func OverallScore(areaScores map[types.SkillArea]types.SkillAreaScore) float64 {
	total, weight := 0.0, 0.0
	for _, area := range types.AllSkillAreas() {
		score, ok := areaScores[area]
		if !ok || !score.HasData() {
			continue
		}
		total += score.Score * SkillWeights[area]
		weight += SkillWeights[area]
	}
	if weight == 0 {
		return 0
	}
	return types.Round2(types.ClampScore(total / weight))
}

// TimeManagement is the mean time-efficiency sub-score across all evaluations
func TimeManagement(evaluations []types.AnswerEvaluation) float64 {
	values := make([]float64, len(evaluations))
	for i, e := range evaluations {
		values[i] = e.TimeEfficiency
	}
	return types.Round2(types.ClampScore(types.Mean(values)))
}

// Adaptability rewards improvement between the first and second half of the interview.
// Fewer than two evaluations yields the neutral 50.
func Adaptability(evaluations []types.AnswerEvaluation) float64 {
	if len(evaluations) < 2 {
		return 50
	}

	scores := make([]float64, len(evaluations))
	for i, e := range evaluations {
		scores[i] = e.Overall
	}

	mid := len(scores) / 2
	first := types.Mean(scores[:mid])
	second := types.Mean(scores[mid:])

	improvement := (second - first) / max(first, 1)
	return types.Round2(types.ClampScore(50 + improvement*25))
}

// CompletionPercentage is answered/total as a percentage, reduced by 10% after early termination
func CompletionPercentage(answered, total int, earlyTerminated bool) float64 {
	if total <= 0 {
		return 0
	}
	pct := float64(answered) / float64(total) * 100
	if earlyTerminated {
		pct *= earlyTerminationRatio
	}
	return types.Round2(types.ClampScore(pct))
}

// Readiness maps the overall score onto a readiness category
func Readiness(overall float64) types.ReadinessCategory {
	switch {
	case overall >= strongThreshold:
		return types.ReadinessStrong
	case overall >= averageThreshold:
		return types.ReadinessAverage
	default:
		return types.ReadinessNeedsImprovement
	}
}

// HiringReadiness combines overall score (60%) and role fit (40%) into a hiring verdict
func HiringReadiness(overall, roleFit float64) types.HiringReadiness {
	combined := overall*0.6 + roleFit*0.4
	switch {
	case combined >= readyThreshold:
		return types.HiringReady
	case combined >= needsDevelopmentThreshold:
		return types.HiringNeedsDevelopment
	default:
		return types.HiringNotReady
	}
}

// RoleFit estimates alignment between candidate and job.
// Skill overlap is worth 30, technology overlap 25, experience adequacy 20
// and the technical interview score 25. Overlaps with an empty job set contribute nothing.
func RoleFit(candidate types.CandidateProfile, job types.JobRequirement, areaScores map[types.SkillArea]types.SkillAreaScore) float64 {
	fit := 0.0

	fit += overlapFraction(candidate.Skills, job.RequiredSkills) * 30
	fit += overlapFraction(candidate.Technologies, job.Technologies) * 25
	fit += experienceFactor(candidate.YearsOfExperience, job.ExperienceLevel) * 20

	if technical, ok := areaScores[types.SkillAreaTechnical]; ok {
		fit += technical.Score / 100 * 25
	}

	return types.Round2(types.ClampScore(fit))
}

// experienceFactor is 1.0 for an adequate match, 0.5 for under two years against a non-entry role,
// and 0.7 for under five years against a senior role
func experienceFactor(years int, level types.ExperienceLevel) float64 {
	switch {
	case years < 2 && level != types.ExperienceEntry:
		return 0.5
	case years < 5 && level == types.ExperienceSenior:
		return 0.7
	default:
		return 1.0
	}
}

// overlapFraction is |have ∩ want| / |want| over lowercased sets, 0 when want is empty
func overlapFraction(have, want []string) float64 {
	wantSet := lowerSet(want)
	if len(wantSet) == 0 {
		return 0
	}
	haveSet := lowerSet(have)

	matched := 0
	for item := range wantSet {
		if haveSet[item] {
			matched++
		}
	}
	return float64(matched) / float64(len(wantSet))
}

func lowerSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		if v = strings.ToLower(strings.TrimSpace(v)); v != "" {
			set[v] = true
		}
	}
	return set
}

// actionableFeedback builds the improvement suggestions
func actionableFeedback(evaluations []types.AnswerEvaluation, areaScores map[types.SkillArea]types.SkillAreaScore, job types.JobRequirement) []string {
	feedback := make([]string, 0)

	// Two weakest areas with data, enumeration order on ties
	scored := areasWithData(areaScores)
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score < scored[j].Score
	})
	for _, area := range scored[:min(weakAreaLimit, len(scored))] {
		if area.Score < weakAreaThreshold {
			feedback = append(feedback, fmt.Sprintf("Improve %s skills - focus on this area for next interview", area.SkillArea))
		}
	}

	// Recurring gaps in content
	var improvements []string
	for _, e := range evaluations {
		improvements = append(improvements, e.AreasForImprovement...)
	}
	for _, phrase := range mostCommon(improvements, topPhrases) {
		lower := strings.ToLower(phrase.value)
		if strings.Contains(lower, "missing") || strings.Contains(lower, "incomplete") {
			feedback = append(feedback, "Work on: "+phrase.value)
		}
	}

	// Job technologies no answer mentioned
	var missed []string
	for _, tech := range job.Technologies {
		if tech = strings.TrimSpace(tech); tech != "" && !mentioned(tech, evaluations) {
			missed = append(missed, tech)
		}
	}
	if len(missed) > 0 {
		feedback = append(feedback, "Learn more about: "+strings.Join(missed[:min(learnLimit, len(missed))], ", "))
	}

	slow := 0
	for _, e := range evaluations {
		if e.TimeEfficiency < slowAnswerThreshold {
			slow++
		}
	}
	if slow >= 2 {
		feedback = append(feedback, TimeManagementHint)
	}

	for _, e := range evaluations {
		if strings.Contains(strings.ToLower(e.QuestionID), "behavioral") && e.Overall < behavioralFailScore {
			feedback = append(feedback, STARHint)
			break
		}
	}

	return feedback
}

func mentioned(tech string, evaluations []types.AnswerEvaluation) bool {
	lower := strings.ToLower(tech)
	for _, e := range evaluations {
		if strings.Contains(strings.ToLower(e.AnswerText), lower) {
			return true
		}
	}
	return false
}

func overallStrengths(evaluations []types.AnswerEvaluation, areaScores map[types.SkillArea]types.SkillAreaScore) []string {
	strengths := make([]string, 0, maxStrengths)

	var strong []string
	for _, area := range areasWithData(areaScores) {
		if area.Score >= strongAreaLine {
			strong = append(strong, string(area.SkillArea))
		}
	}
	if len(strong) > 0 {
		strengths = append(strengths, "Strong performance in: "+strings.Join(strong, ", "))
	}

	var all []string
	for _, e := range evaluations {
		all = append(all, e.Strengths...)
	}
	for _, phrase := range mostCommon(all, topPhrases) {
		if phrase.count >= 2 {
			strengths = append(strengths, phrase.value)
		}
	}

	lo, hi := evaluations[0].Overall, evaluations[0].Overall
	for _, e := range evaluations[1:] {
		lo = min(lo, e.Overall)
		hi = max(hi, e.Overall)
	}
	if hi-lo < consistencySpread {
		strengths = append(strengths, ConsistencyStrength)
	}

	return strengths[:min(maxStrengths, len(strengths))]
}

func overallWeaknesses(evaluations []types.AnswerEvaluation, areaScores map[types.SkillArea]types.SkillAreaScore) []string {
	weaknesses := make([]string, 0, maxWeaknesses)

	var weak []string
	for _, area := range areasWithData(areaScores) {
		if area.Score < needsImprovementLine {
			weak = append(weak, string(area.SkillArea))
		}
	}
	if len(weak) > 0 {
		weaknesses = append(weaknesses, "Needs improvement in: "+strings.Join(weak, ", "))
	}

	var all []string
	for _, e := range evaluations {
		all = append(all, e.AreasForImprovement...)
	}
	for _, phrase := range mostCommon(all, topPhrases) {
		weaknesses = append(weaknesses, phrase.value)
	}

	return weaknesses[:min(maxWeaknesses, len(weaknesses))]
}

// areasWithData returns the scored areas in enumeration order
func areasWithData(areaScores map[types.SkillArea]types.SkillAreaScore) []types.SkillAreaScore {
	out := make([]types.SkillAreaScore, 0, len(areaScores))
	for _, area := range types.AllSkillAreas() {
		if score, ok := areaScores[area]; ok && score.HasData() {
			out = append(out, score)
		}
	}
	return out
}

type phraseCount struct {
	value string
	count int
}

// mostCommon returns up to n values by descending frequency; ties keep first-occurrence order
func mostCommon(values []string, n int) []phraseCount {
	index := make(map[string]int)
	var counts []phraseCount
	for _, v := range values {
		if i, ok := index[v]; ok {
			counts[i].count++
			continue
		}
		index[v] = len(counts)
		counts = append(counts, phraseCount{value: v, count: 1})
	}

	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].count > counts[j].count
	})
	return counts[:min(n, len(counts))]
}
