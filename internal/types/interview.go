package types

// InterviewQuestion is a single generated question. Questions are values: the
// difficulty adapter replaces a future question wholesale instead of editing it.
type InterviewQuestion struct {
	ID                string     `json:"id"`
	Text              string     `json:"question_text"`
	Difficulty        Difficulty `json:"difficulty"`
	SkillArea         SkillArea  `json:"skill_area"`
	QuestionType      string     `json:"question_type"`
	Topic             string     `json:"topic"`
	ExpectedConcepts  []string   `json:"expected_concepts"`
	IdealAnswerPoints []string   `json:"ideal_answer_points"`
	TimeLimit         int        `json:"time_limit"` // seconds
}

// Clone returns a copy that shares no slices with q
func (q InterviewQuestion) Clone() InterviewQuestion {
	out := q
	out.ExpectedConcepts = cloneStrings(q.ExpectedConcepts)
	out.IdealAnswerPoints = cloneStrings(q.IdealAnswerPoints)
	return out
}

// AnswerEvaluation is the scored result for one answered question. It is created once and never mutated.
type AnswerEvaluation struct {
	QuestionID          string   `json:"question_id"`
	AnswerText          string   `json:"answer_text"`
	TimeTaken           int      `json:"time_taken"` // seconds
	Accuracy            float64  `json:"accuracy_score"`
	Clarity             float64  `json:"clarity_score"`
	Depth               float64  `json:"depth_score"`
	Relevance           float64  `json:"relevance_score"`
	TimeEfficiency      float64  `json:"time_efficiency_score"`
	Overall             float64  `json:"overall_score"`
	Feedback            string   `json:"feedback"`
	Strengths           []string `json:"strengths"`
	AreasForImprovement []string `json:"areas_for_improvement"`
	KeyPointsCovered    []string `json:"key_points_covered"`
	MissedConcepts      []string `json:"missed_concepts"`
}

// SkillAreaScore aggregates the evaluations of one skill area.
// AveragePerformance is kept as an alias of Score and always holds the same value.
type SkillAreaScore struct {
	SkillArea          SkillArea `json:"skill_area"`
	Score              float64   `json:"score"`
	QuestionsAsked     int       `json:"questions_asked"`
	AveragePerformance float64   `json:"average_performance"`
}

// HasData reports whether any evaluation contributed to the area
func (s SkillAreaScore) HasData() bool {
	return s.QuestionsAsked > 0
}

// ReadinessCategory is the verdict derived from the overall score alone
type ReadinessCategory string

// Readiness categories
const (
	ReadinessStrong           ReadinessCategory = "Strong"
	ReadinessAverage          ReadinessCategory = "Average"
	ReadinessNeedsImprovement ReadinessCategory = "Needs Improvement"
)

// HiringReadiness is the verdict derived from the overall score and role fit
type HiringReadiness string

// Hiring readiness indicators
const (
	HiringReady            HiringReadiness = "Ready"
	HiringNeedsDevelopment HiringReadiness = "Needs Development"
	HiringNotReady         HiringReadiness = "Not Ready"
)

// InterviewScore is the final result computed once at conclusion from the full evaluation history
type InterviewScore struct {
	Overall              float64                      `json:"total_score"`
	SkillAreaScores      map[SkillArea]SkillAreaScore `json:"skill_area_scores"`
	QuestionScores       []float64                    `json:"question_scores"`
	Strengths            []string                     `json:"strengths"`
	Weaknesses           []string                     `json:"weaknesses"`
	Readiness            ReadinessCategory            `json:"readiness_category"`
	HiringReadiness      HiringReadiness              `json:"hiring_readiness_indicator"`
	ActionableFeedback   []string                     `json:"actionable_feedback"`
	RoleFit              float64                      `json:"estimated_role_fit"`
	TimeManagement       float64                      `json:"time_management_score"`
	Adaptability         float64                      `json:"adaptability_score"`
	TechnicalDepth       float64                      `json:"technical_depth"`
	CommunicationQuality float64                      `json:"communication_quality"`
	CompletionPercentage float64                      `json:"interview_completion_percentage"`
}
