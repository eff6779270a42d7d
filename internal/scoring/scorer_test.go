package scoring

import (
	"testing"

	"github.com/jonathan/interview-coach/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fiveQuestions() []types.InterviewQuestion {
	return []types.InterviewQuestion{
		{ID: "Q_technical_easy_1", SkillArea: types.SkillAreaTechnical, Difficulty: types.DifficultyEasy},
		{ID: "Q_problem_solving_easy_2", SkillArea: types.SkillAreaProblemSolving, Difficulty: types.DifficultyEasy},
		{ID: "Q_communication_medium_3", SkillArea: types.SkillAreaCommunication, Difficulty: types.DifficultyMedium},
		{ID: "Q_behavioral_medium_4", SkillArea: types.SkillAreaBehavioral, Difficulty: types.DifficultyMedium},
		{ID: "Q_system_design_hard_5", SkillArea: types.SkillAreaSystemDesign, Difficulty: types.DifficultyHard},
	}
}

func evaluationsFor(questions []types.InterviewQuestion, scores ...float64) []types.AnswerEvaluation {
	out := make([]types.AnswerEvaluation, len(scores))
	for i, s := range scores {
		out[i] = types.AnswerEvaluation{
			QuestionID:     questions[i].ID,
			Overall:        s,
			TimeEfficiency: 100,
		}
	}
	return out
}

func TestScore_EmptyReturnsZeroSentinel(t *testing.T) {
	score := New().Score(nil, types.JobRequirement{}, types.CandidateProfile{}, fiveQuestions(), false)

	assert.Equal(t, 0.0, score.Overall)
	assert.Equal(t, []string{NoDataWeakness}, score.Weaknesses)
	assert.Equal(t, []string{CompleteInterviewHint}, score.ActionableFeedback)
	assert.Equal(t, types.ReadinessNeedsImprovement, score.Readiness)
	assert.Equal(t, types.HiringNotReady, score.HiringReadiness)
	assert.Empty(t, score.SkillAreaScores)
	assert.Empty(t, score.QuestionScores)
	assert.Equal(t, 0.0, score.Adaptability)
	assert.Equal(t, 0.0, score.RoleFit)
	assert.Equal(t, 0.0, score.CompletionPercentage)
}

func TestScore_HighConsistentInterview(t *testing.T) {
	questions := fiveQuestions()
	evaluations := evaluationsFor(questions, 90, 85, 88, 92, 95)

	score := New().Score(evaluations, types.JobRequirement{Title: "Engineer"}, types.CandidateProfile{Name: "Ada", YearsOfExperience: 6}, questions, false)

	// (90*.30 + 85*.25 + 88*.15 + 92*.15 + 95*.15) / 1.0
	assert.InDelta(t, 89.5, score.Overall, 0.01)
	assert.Equal(t, types.ReadinessStrong, score.Readiness)
	assert.Equal(t, []float64{90, 85, 88, 92, 95}, score.QuestionScores)

	// first half 87.5, second half 91.67: mildly positive trend
	assert.InDelta(t, 51.19, score.Adaptability, 0.01)
	assert.Greater(t, score.Adaptability, 50.0)
	assert.LessOrEqual(t, score.Adaptability, 100.0)

	assert.Contains(t, score.Strengths, ConsistencyStrength)
	assert.Equal(t, "Strong performance in: technical, problem_solving, communication, behavioral, system_design", score.Strengths[0])
	assert.Equal(t, 100.0, score.CompletionPercentage)
	assert.Equal(t, 90.0, score.TechnicalDepth)
	assert.Equal(t, 88.0, score.CommunicationQuality)
	assert.Equal(t, 100.0, score.TimeManagement)
}

func TestSkillAreaScores_AllAreasPresent(t *testing.T) {
	questions := fiveQuestions()
	evaluations := evaluationsFor(questions, 70, 60)
	evaluations = append(evaluations, types.AnswerEvaluation{QuestionID: "Q_unknown_9", Overall: 10})

	areas := SkillAreaScores(evaluations, questions)

	require.Len(t, areas, 5)
	assert.Equal(t, 70.0, areas[types.SkillAreaTechnical].Score)
	assert.Equal(t, 1, areas[types.SkillAreaTechnical].QuestionsAsked)
	assert.Equal(t, areas[types.SkillAreaTechnical].Score, areas[types.SkillAreaTechnical].AveragePerformance)
	assert.False(t, areas[types.SkillAreaBehavioral].HasData())
	assert.Equal(t, 0.0, areas[types.SkillAreaBehavioral].Score)
}

func TestScore_UnmatchedEvaluationKeptInQuestionScores(t *testing.T) {
	questions := fiveQuestions()
	evaluations := evaluationsFor(questions, 80)
	evaluations = append(evaluations, types.AnswerEvaluation{QuestionID: "Q_unknown_9", Overall: 10, TimeEfficiency: 100})

	score := New().Score(evaluations, types.JobRequirement{}, types.CandidateProfile{}, questions, false)

	assert.Equal(t, []float64{80, 10}, score.QuestionScores)
	// Only the technical area has data, so it alone defines the overall score
	assert.InDelta(t, 80.0, score.Overall, 0.001)
}

func TestOverallScore_ExcludesAreasWithoutData(t *testing.T) {
	areas := map[types.SkillArea]types.SkillAreaScore{
		types.SkillAreaTechnical:    {SkillArea: types.SkillAreaTechnical, Score: 80, QuestionsAsked: 1},
		types.SkillAreaBehavioral:   {SkillArea: types.SkillAreaBehavioral, Score: 40, QuestionsAsked: 1},
		types.SkillAreaSystemDesign: {SkillArea: types.SkillAreaSystemDesign},
	}

	// (80*.30 + 40*.15) / .45
	assert.InDelta(t, 66.67, OverallScore(areas), 0.01)
	assert.Equal(t, 0.0, OverallScore(nil))
}

func TestRoleFit_SkillOverlapScenario(t *testing.T) {
	candidate := types.CandidateProfile{Name: "Ada", Skills: []string{"Python", "AWS"}, YearsOfExperience: 5}
	job := types.JobRequirement{Title: "Engineer", RequiredSkills: []string{"python", "Go"}, ExperienceLevel: types.ExperienceMid}

	// 0.5 * 30 for skills, no technology term, full experience factor
	assert.InDelta(t, 35.0, RoleFit(candidate, job, nil), 0.001)

	areas := map[types.SkillArea]types.SkillAreaScore{
		types.SkillAreaTechnical: {SkillArea: types.SkillAreaTechnical, Score: 80, QuestionsAsked: 1},
	}
	assert.InDelta(t, 55.0, RoleFit(candidate, job, areas), 0.001)
}

func TestRoleFit_MonotonicInOverlap(t *testing.T) {
	job := types.JobRequirement{
		Title:          "Engineer",
		RequiredSkills: []string{"Go", "Python", "SQL", "Leadership"},
		Technologies:   []string{"Docker", "Kubernetes", "AWS"},
	}

	skills := []string{}
	previous := -1.0
	for _, skill := range append(job.RequiredSkills, job.Technologies...) {
		skills = append(skills, skill)
		candidate := types.CandidateProfile{Name: "Ada", Skills: skills, Technologies: skills, YearsOfExperience: 3}
		fit := RoleFit(candidate, job, nil)
		assert.GreaterOrEqual(t, fit, previous)
		assert.LessOrEqual(t, fit, 100.0)
		previous = fit
	}
}

func TestExperienceFactor(t *testing.T) {
	assert.Equal(t, 0.5, experienceFactor(1, types.ExperienceMid))
	assert.Equal(t, 0.5, experienceFactor(0, types.ExperienceSenior))
	assert.Equal(t, 1.0, experienceFactor(1, types.ExperienceEntry))
	assert.Equal(t, 0.7, experienceFactor(3, types.ExperienceSenior))
	assert.Equal(t, 1.0, experienceFactor(3, types.ExperienceMid))
	assert.Equal(t, 1.0, experienceFactor(8, types.ExperienceSenior))
}

func TestAdaptability(t *testing.T) {
	questions := fiveQuestions()

	assert.Equal(t, 50.0, Adaptability(nil))
	assert.Equal(t, 50.0, Adaptability(evaluationsFor(questions, 70)))
	assert.Equal(t, 50.0, Adaptability(evaluationsFor(questions, 70, 70)))
	assert.Equal(t, 100.0, Adaptability(evaluationsFor(questions, 10, 100)))
	assert.Equal(t, 25.0, Adaptability(evaluationsFor(questions, 80, 0)))
}

func TestCompletionPercentage(t *testing.T) {
	assert.Equal(t, 60.0, CompletionPercentage(3, 5, false))
	assert.Equal(t, 54.0, CompletionPercentage(3, 5, true))
	assert.Equal(t, 0.0, CompletionPercentage(3, 0, false))
}

func TestVerdicts(t *testing.T) {
	assert.Equal(t, types.ReadinessStrong, Readiness(75))
	assert.Equal(t, types.ReadinessAverage, Readiness(60))
	assert.Equal(t, types.ReadinessNeedsImprovement, Readiness(59.99))

	assert.Equal(t, types.HiringReady, HiringReadiness(80, 70))            // 76
	assert.Equal(t, types.HiringNeedsDevelopment, HiringReadiness(60, 50)) // 56
	assert.Equal(t, types.HiringNotReady, HiringReadiness(50, 50))         // 50
}

func TestActionableFeedback(t *testing.T) {
	questions := fiveQuestions()
	evaluations := []types.AnswerEvaluation{
		{
			QuestionID:          questions[0].ID,
			AnswerText:          "I used Docker heavily",
			Overall:             40,
			TimeEfficiency:      30,
			AreasForImprovement: []string{"Missing key concepts: Go, Architecture", "Answer too brief - consider providing more detail"},
		},
		{
			QuestionID:          questions[1].ID,
			AnswerText:          "Something about sorting",
			Overall:             55,
			TimeEfficiency:      40,
			AreasForImprovement: []string{"Missing key concepts: Go, Architecture"},
		},
		{
			QuestionID:     questions[3].ID,
			AnswerText:     "A story",
			Overall:        45,
			TimeEfficiency: 90,
		},
	}
	job := types.JobRequirement{Title: "Engineer", Technologies: []string{"Go", "Docker", "Kubernetes", "Terraform", "AWS"}}

	score := New().Score(evaluations, job, types.CandidateProfile{Name: "Ada", YearsOfExperience: 4}, questions, false)

	assert.Equal(t, []string{
		"Improve technical skills - focus on this area for next interview",
		"Improve behavioral skills - focus on this area for next interview",
		"Work on: Missing key concepts: Go, Architecture",
		"Learn more about: Go, Kubernetes, Terraform",
		TimeManagementHint,
		STARHint,
	}, score.ActionableFeedback)

	assert.Equal(t, "Needs improvement in: technical, behavioral", score.Weaknesses[0])
	assert.Equal(t, "Missing key concepts: Go, Architecture", score.Weaknesses[1])
	assert.LessOrEqual(t, len(score.Weaknesses), 4)
}

func TestActionableFeedback_WeakAreaTiesUseEnumerationOrder(t *testing.T) {
	areas := map[types.SkillArea]types.SkillAreaScore{
		types.SkillAreaSystemDesign:   {SkillArea: types.SkillAreaSystemDesign, Score: 30, QuestionsAsked: 1},
		types.SkillAreaCommunication:  {SkillArea: types.SkillAreaCommunication, Score: 30, QuestionsAsked: 1},
		types.SkillAreaProblemSolving: {SkillArea: types.SkillAreaProblemSolving, Score: 30, QuestionsAsked: 1},
	}

	feedback := actionableFeedback(nil, areas, types.JobRequirement{})

	assert.Equal(t, []string{
		"Improve problem_solving skills - focus on this area for next interview",
		"Improve communication skills - focus on this area for next interview",
	}, feedback)
}

func TestStrengths_RecurringAndCapped(t *testing.T) {
	questions := fiveQuestions()
	evaluations := evaluationsFor(questions, 80, 82, 79, 81, 85)
	for i := range evaluations {
		evaluations[i].Strengths = []string{"Provided specific examples", "Well-structured response"}
	}
	evaluations[0].Strengths = append(evaluations[0].Strengths, "Comprehensive answer with good detail")

	strengths := overallStrengths(evaluations, SkillAreaScores(evaluations, questions))

	assert.Equal(t, []string{
		"Strong performance in: technical, problem_solving, communication, behavioral, system_design",
		"Provided specific examples",
		"Well-structured response",
		ConsistencyStrength,
	}, strengths)
}

func TestMostCommon_TiesKeepFirstOccurrence(t *testing.T) {
	counts := mostCommon([]string{"b", "a", "c", "a", "b", "d"}, 3)

	require.Len(t, counts, 3)
	assert.Equal(t, "b", counts[0].value)
	assert.Equal(t, "a", counts[1].value)
	assert.Equal(t, "c", counts[2].value)
	assert.Equal(t, 2, counts[0].count)
}

func TestScore_OutputsBounded(t *testing.T) {
	questions := fiveQuestions()
	evaluations := evaluationsFor(questions, 100, 100, 100, 100, 100)
	candidate := types.CandidateProfile{Name: "Ada", Skills: []string{"Go"}, Technologies: []string{"Go"}, YearsOfExperience: 10}
	job := types.JobRequirement{Title: "Engineer", RequiredSkills: []string{"Go"}, Technologies: []string{"Go"}}

	score := New().Score(evaluations, job, candidate, questions, true)

	for _, v := range []float64{score.Overall, score.RoleFit, score.TimeManagement, score.Adaptability, score.CompletionPercentage, score.TechnicalDepth} {
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 100.0)
	}
	assert.Equal(t, 100.0, score.RoleFit)
	assert.Equal(t, 90.0, score.CompletionPercentage)
	assert.Equal(t, types.HiringReady, score.HiringReadiness)
}
