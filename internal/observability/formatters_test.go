package observability

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/jonathan/interview-coach/internal/session"
	"github.com/jonathan/interview-coach/internal/types"
	"github.com/stretchr/testify/assert"
)

func sampleSnapshot() session.Snapshot {
	return session.Snapshot{
		ID:        "s-1",
		Candidate: types.CandidateProfile{Name: "Ada Lovelace"},
		Job:       types.JobRequirement{Title: "Backend Engineer"},
		Evaluations: []types.AnswerEvaluation{
			{QuestionID: "q1", Overall: 72.5, Accuracy: 80, Clarity: 70, Depth: 65.25, Relevance: 75},
			{QuestionID: "q2", Overall: 41, Accuracy: 40, Clarity: 45, Depth: 35, Relevance: 50},
		},
		StartedAt: time.Date(2024, 5, 6, 14, 3, 9, 0, time.UTC),
		Duration:  "12:04",
	}
}

func sampleScore() types.InterviewScore {
	return types.InterviewScore{
		Overall: 56.75,
		SkillAreaScores: map[types.SkillArea]types.SkillAreaScore{
			types.SkillAreaTechnical:      {SkillArea: types.SkillAreaTechnical, Score: 72.5, QuestionsAsked: 1},
			types.SkillAreaProblemSolving: {SkillArea: types.SkillAreaProblemSolving, Score: 41, QuestionsAsked: 1},
		},
		Strengths:            []string{"Strong technical knowledge"},
		Weaknesses:           []string{"Needs more depth"},
		Readiness:            types.ReadinessAverage,
		HiringReadiness:      types.HiringNeedsDevelopment,
		ActionableFeedback:   []string{"Practice system design"},
		RoleFit:              61.2,
		TimeManagement:       90,
		Adaptability:         50,
		TechnicalDepth:       50.13,
		CommunicationQuality: 57.5,
		CompletionPercentage: 40,
	}
}

func TestReport(t *testing.T) {
	report := Report(sampleSnapshot(), sampleScore())
	rule := strings.Repeat("=", 80)

	assert.True(t, strings.HasPrefix(report, rule+"\nMOCK INTERVIEW REPORT\n"+rule+"\n"))
	assert.True(t, strings.HasSuffix(report, "\n"+rule))
	assert.Contains(t, report, "Candidate: Ada Lovelace\n")
	assert.Contains(t, report, "Position: Backend Engineer\n")
	assert.Contains(t, report, "Interview Date: 2024-05-06 14:03:09\n")
	assert.Contains(t, report, "Duration: 12:04\n")
	assert.Contains(t, report, "Final Score: 56.75/100\n")
	assert.Contains(t, report, "Readiness Category: Average\n")
	assert.Contains(t, report, "Hiring Readiness: Needs Development\n")
	assert.Contains(t, report, "Estimated Role Fit: 61.2%\n")
	assert.Contains(t, report, "Completion: 40%\n")
	assert.Contains(t, report, "  technical: 72.5/100 (1 questions)\n  problem solving: 41/100 (1 questions)\n")
	assert.Contains(t, report, "Technical Depth: 50.13/100\n")
	assert.Contains(t, report, "  ✓ Strong technical knowledge\n")
	assert.Contains(t, report, "  ✗ Needs more depth\n")
	assert.Contains(t, report, "  • Practice system design\n")
	assert.Contains(t, report, "\nQuestion 1: 72.5/100\n  Accuracy: 80 | Clarity: 70 | Depth: 65.25 | Relevance: 75\n")
	assert.Contains(t, report, "\nQuestion 2: 41/100\n")
	assert.NotContains(t, report, "system design:")
}

func TestReport_SectionOrder(t *testing.T) {
	report := Report(sampleSnapshot(), sampleScore())

	sections := []string{
		"OVERALL PERFORMANCE", "SKILL AREA BREAKDOWN", "COMPONENT SCORES", "STRENGTHS",
		"AREAS FOR IMPROVEMENT", "ACTIONABLE FEEDBACK", "INDIVIDUAL QUESTION SCORES",
	}
	last := -1
	for _, s := range sections {
		idx := strings.Index(report, s)
		assert.Greater(t, idx, last, s)
		last = idx
	}
}

func TestReport_NoEvaluations(t *testing.T) {
	snap := sampleSnapshot()
	snap.Evaluations = nil

	assert.Equal(t, NoDataMessage, Report(snap, sampleScore()))
}

func TestPrintReport(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintReport(sampleSnapshot(), sampleScore())

	assert.Equal(t, Report(sampleSnapshot(), sampleScore())+"\n", buf.String())
}

func TestPrintCandidate(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintCandidate(&types.CandidateProfile{
		Name:              "Ada Lovelace",
		Email:             "ada@example.com",
		YearsOfExperience: 6,
		Skills:            []string{"Python", "Go", "SQL", "Docker", "Redis", "Kafka", "Terraform"},
	})
	output := buf.String()

	assert.Contains(t, output, "CANDIDATE PROFILE")
	assert.Contains(t, output, "Ada Lovelace")
	assert.Contains(t, output, "6 years")
	assert.Contains(t, output, "Python, Go, SQL, Docker, Redis ... and 2 more")
	assert.NotContains(t, output, "Technologies:")
}

func TestPrintCandidate_Nil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintCandidate(nil)
	NewPrinter(&buf).PrintJob(nil)

	assert.Empty(t, buf.String())
}

func TestPrintJob(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintJob(&types.JobRequirement{
		Title:           "Backend Engineer",
		ExperienceLevel: types.ExperienceSenior,
		RequiredSkills:  []string{"Python"},
		SkillGaps:       []string{"Required technology: Redis"},
	})
	output := buf.String()

	assert.Contains(t, output, "JOB REQUIREMENTS")
	assert.Contains(t, output, "Level:  senior")
	assert.Contains(t, output, "Required technology: Redis")
}

func TestPrintQuestion(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintQuestion(types.InterviewQuestion{
		Text:       "How would you design a rate limiter?",
		Difficulty: types.DifficultyHard,
		SkillArea:  types.SkillAreaSystemDesign,
		TimeLimit:  270,
	}, 2, 5)
	output := buf.String()

	assert.Contains(t, output, "QUESTION 2 OF 5")
	assert.Contains(t, output, "Area: system design  |  Difficulty: hard  |  Time limit: 4:30")
	assert.Contains(t, output, "How would you design a rate limiter?")
}

func TestPrintEvaluation(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintEvaluation(types.AnswerEvaluation{
		Overall:             64.5,
		Accuracy:            70,
		Feedback:            "Good answer.",
		Strengths:           []string{"Clear structure"},
		AreasForImprovement: []string{"Add examples"},
	})
	output := buf.String()

	assert.Contains(t, output, "Overall: 64.5/100")
	assert.Contains(t, output, "✓ Clear structure")
	assert.Contains(t, output, "✗ Add examples")
	assert.NotContains(t, output, "Missed concepts")
}

func TestPrintSummary(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintSummary(session.Summary{
		SessionID:         "s-1",
		Status:            session.StatusTerminated,
		QuestionsAnswered: 2,
		TotalQuestions:    5,
		CurrentAverage:    32.5,
		Duration:          "3:07",
		Warnings:          []string{"job has no title"},
	})
	output := buf.String()

	assert.Contains(t, output, "Status:    Terminated")
	assert.Contains(t, output, "Answered:  2 of 5")
	assert.Contains(t, output, "⚠ job has no title")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "résum...", truncate("résumé text", 8))
}

func TestWrap(t *testing.T) {
	assert.Equal(t, "one two\nthree", wrap("one two three", 8))
	assert.Equal(t, "", wrap("   ", 8))
}
