// Package evaluation scores a single free-text interview answer along five heuristic dimensions.
package evaluation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/interview-coach/internal/types"
)

// Evaluator scores answers. It holds no state, so one instance can be shared by any number of sessions.
type Evaluator struct{}

// New creates an Evaluator
func New() *Evaluator {
	return &Evaluator{}
}

// Evaluate scores answer against question. timeTaken is the caller-reported answer time in seconds.
func (e *Evaluator) Evaluate(question types.InterviewQuestion, answer string, timeTaken int) types.AnswerEvaluation {
	lower := strings.ToLower(answer)

	accuracy := scoreAccuracy(question, answer, lower)
	clarity := scoreClarity(answer, lower)
	depth := scoreDepth(question, answer, lower)
	relevance := scoreRelevance(question, answer, lower)
	timeEfficiency := ScoreTimeEfficiency(timeTaken, question.TimeLimit)

	overall := OverallScore(accuracy, clarity, depth, relevance, timeEfficiency)

	return types.AnswerEvaluation{
		QuestionID:          question.ID,
		AnswerText:          answer,
		TimeTaken:           timeTaken,
		Accuracy:            accuracy,
		Clarity:             clarity,
		Depth:               depth,
		Relevance:           relevance,
		TimeEfficiency:      timeEfficiency,
		Overall:             overall,
		Feedback:            buildFeedback(accuracy, clarity, depth, relevance, timeEfficiency),
		Strengths:           identifyStrengths(question, answer, lower),
		AreasForImprovement: identifyWeaknesses(question, answer, lower),
		KeyPointsCovered:    keyPointsCovered(question, lower),
		MissedConcepts:      missedConcepts(question, lower),
	}
}

// OverallScore combines the five dimension scores with the fixed weights, rounded to two decimals
func OverallScore(accuracy, clarity, depth, relevance, timeEfficiency float64) float64 {
	score := accuracy*accuracyWeight +
		clarity*clarityWeight +
		depth*depthWeight +
		relevance*relevanceWeight +
		timeEfficiency*timeEfficiencyWeight
	return types.Round2(types.ClampScore(score))
}

// scoreAccuracy rewards coverage of the expected concepts and, for technical questions, correctness language
func scoreAccuracy(question types.InterviewQuestion, answer, lower string) float64 {
	if utf8.RuneCountInString(strings.TrimSpace(answer)) < minAccuracyChars {
		return 0
	}

	score := baseScore

	if len(question.ExpectedConcepts) > 0 {
		found := 0
		for _, concept := range question.ExpectedConcepts {
			if strings.Contains(lower, strings.ToLower(concept)) {
				found++
			}
		}
		score += float64(found) / float64(len(question.ExpectedConcepts)) * conceptCoveragePoints
	}

	if question.SkillArea == types.SkillAreaTechnical {
		matches := countPhrases(lower, CorrectnessPhrases)
		score += min(float64(matches)*correctnessPhrasePoints, correctnessPhraseCap)
	}

	return types.ClampScore(score)
}

// scoreClarity looks at sentence length and signposting versus hedging
func scoreClarity(answer, lower string) float64 {
	if isBlank(answer) {
		return 0
	}

	parts := sentences(answer)
	if len(parts) == 0 {
		return noSentenceClarity
	}

	score := baseScore

	totalWords := 0
	for _, s := range parts {
		totalWords += len(strings.Fields(s))
	}
	avg := float64(totalWords) / float64(len(parts))

	switch {
	case avg >= 15 && avg <= 25:
		score += sentenceLengthBonus
	case avg > 35:
		score -= longSentencePenalty
	case avg < 5:
		score -= choppySentencePenalty
	}

	score += min(float64(countPhrases(lower, ClarityPhrases))*clarityPhrasePoints, clarityPhraseCap)
	score -= min(float64(countPhrases(lower, HedgingPhrases))*hedgingPhrasePenalty, hedgingPhraseCap)

	return types.ClampScore(score)
}

// scoreDepth compares answer length to the difficulty's expectation and rewards elaboration
func scoreDepth(question types.InterviewQuestion, answer, lower string) float64 {
	if isBlank(answer) {
		return 0
	}

	score := baseScore

	wordCount := float64(len(strings.Fields(answer)))
	expected := float64(question.Difficulty.ExpectedWords())

	switch {
	case wordCount >= expected:
		score += 20
	case wordCount >= expected*0.7:
		score += 10
	case wordCount >= expected*0.4:
		score += 5
	default:
		score -= 10
	}

	score += min(float64(countPhrases(lower, DepthPhrases))*depthPhrasePoints, depthPhraseCap)

	covered := 0
	for _, point := range question.IdealAnswerPoints {
		if pointCovered(point, lower) {
			covered++
		}
	}
	score += min(float64(covered)*idealPointPoints, idealPointCap)

	return types.ClampScore(score)
}

// scoreRelevance measures how much of the question the answer addresses.
// The overlap is deliberately one-sided: the denominator is the question's word set.
func scoreRelevance(question types.InterviewQuestion, answer, lower string) float64 {
	if isBlank(answer) {
		return 0
	}

	score := baseScore

	questionWords := significantWords(question.Text)
	answerWords := significantWords(answer)

	overlap := 0
	for word := range questionWords {
		if answerWords[word] {
			overlap++
		}
	}
	score += float64(overlap) / float64(max(len(questionWords), 1)) * questionOverlapPoints

	if len(question.IdealAnswerPoints) > 0 {
		covered := 0
		for _, point := range question.IdealAnswerPoints {
			if pointCovered(point, lower) {
				covered++
			}
		}
		score += float64(covered) / float64(len(question.IdealAnswerPoints)) * idealCoveragePoints
	}

	return types.ClampScore(score)
}

// ScoreTimeEfficiency scores the reported answer time against the question's limit.
// The optimal window is 70-90% of the limit. Faster answers ramp up from 50;
// overtime is penalised linearly down to 0.
func ScoreTimeEfficiency(timeTaken, timeLimit int) float64 {
	if timeTaken <= 0 || timeLimit <= 0 {
		return 0
	}

	t := float64(timeTaken)
	limit := float64(timeLimit)
	lower := limit * 0.7
	upper := limit * 0.9

	switch {
	case t >= lower && t <= upper:
		return 100
	case t < lower:
		return types.ClampScore(max(50+(t/lower-0.5)*100, 50))
	default:
		overtimeRatio := (t - limit) / limit
		return types.ClampScore(max(100-overtimeRatio*50, 0))
	}
}

// buildFeedback renders one banded line per aspect
func buildFeedback(accuracy, clarity, depth, relevance, timeEfficiency float64) string {
	aspects := []struct {
		name  string
		score float64
	}{
		{"Accuracy", accuracy},
		{"Clarity", clarity},
		{"Depth", depth},
		{"Relevance", relevance},
		{"Time Management", timeEfficiency},
	}

	lines := make([]string, 0, len(aspects))
	for _, aspect := range aspects {
		lines = append(lines, fmt.Sprintf("%s: %s", aspect.name, band(aspect.score)))
	}
	return strings.Join(lines, "\n")
}

// band maps a score onto its feedback band
func band(score float64) string {
	switch {
	case score >= 80:
		return bandExcellent
	case score >= 60:
		return bandGood
	case score >= 40:
		return bandFair
	default:
		return bandNeedsWork
	}
}

func identifyStrengths(question types.InterviewQuestion, answer, lower string) []string {
	strengths := make([]string, 0, 4)

	if utf8.RuneCountInString(answer) > comprehensiveChars {
		strengths = append(strengths, StrengthComprehensive)
	}
	if containsAny(lower, ExamplePhrases) {
		strengths = append(strengths, StrengthExamples)
	}
	for _, concept := range question.ExpectedConcepts {
		if concept != "" && strings.Contains(lower, strings.ToLower(concept)) {
			strengths = append(strengths, StrengthKeyConcepts)
			break
		}
	}
	if len(sentences(answer)) >= 3 {
		strengths = append(strengths, StrengthStructured)
	}

	return strengths
}

func identifyWeaknesses(question types.InterviewQuestion, answer, lower string) []string {
	weaknesses := make([]string, 0, 4)

	if utf8.RuneCountInString(answer) < briefChars {
		weaknesses = append(weaknesses, WeaknessTooBrief)
	}
	if containsAny(lower, UncertaintyPhrases) {
		weaknesses = append(weaknesses, WeaknessUncertain)
	}
	if missing := missedConcepts(question, lower); len(missing) > 0 {
		weaknesses = append(weaknesses, WeaknessMissingPrefix+strings.Join(missing[:min(2, len(missing))], ", "))
	}
	if len(sentences(answer)) < 2 {
		weaknesses = append(weaknesses, WeaknessPoorlyStructure)
	}

	return weaknesses
}

// keyPointsCovered returns the ideal answer points touched by the answer, in question order
func keyPointsCovered(question types.InterviewQuestion, lower string) []string {
	covered := make([]string, 0, len(question.IdealAnswerPoints))
	for _, point := range question.IdealAnswerPoints {
		if pointCovered(point, lower) {
			covered = append(covered, point)
		}
	}
	return covered
}

// missedConcepts returns the expected concepts absent from the answer, in question order
func missedConcepts(question types.InterviewQuestion, lower string) []string {
	missed := make([]string, 0, len(question.ExpectedConcepts))
	for _, concept := range question.ExpectedConcepts {
		if !strings.Contains(lower, strings.ToLower(concept)) {
			missed = append(missed, concept)
		}
	}
	return missed
}

// pointCovered reports whether any word of an ideal answer point appears in the lowercased answer
func pointCovered(point, lower string) bool {
	for _, word := range strings.Fields(strings.ToLower(point)) {
		if strings.Contains(lower, word) {
			return true
		}
	}
	return false
}

// sentences splits on periods and drops empty segments
func sentences(answer string) []string {
	var out []string
	for _, part := range strings.Split(answer, ".") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// significantWords returns the lowercased whitespace tokens longer than three characters
func significantWords(text string) map[string]bool {
	words := make(map[string]bool)
	for _, word := range strings.Fields(text) {
		if utf8.RuneCountInString(word) >= minOverlapWordLength {
			words[strings.ToLower(word)] = true
		}
	}
	return words
}

// countPhrases counts the distinct phrases present in the lowercased text
func countPhrases(lower string, phrases []string) int {
	count := 0
	for _, phrase := range phrases {
		if strings.Contains(lower, phrase) {
			count++
		}
	}
	return count
}

func containsAny(lower string, phrases []string) bool {
	return countPhrases(lower, phrases) > 0
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
