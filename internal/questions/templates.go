package questions

import "github.com/jonathan/interview-coach/internal/types"

// templateBank holds the question templates per skill area and difficulty.
// Placeholders: {concept}, {related_concept}, {problem}, {system}, {tradeoff1}, {tradeoff2}.
var templateBank = map[types.SkillArea]map[types.Difficulty][]string{
	types.SkillAreaTechnical: {
		types.DifficultyEasy: {
			"What is {concept} and how would you explain it to a junior developer?",
			"Can you describe the key features of {concept}?",
			"What are the main differences between {concept} and {related_concept}?",
		},
		types.DifficultyMedium: {
			"How would you implement {concept} in a real-world scenario?",
			"What are the pros and cons of using {concept}?",
			"Can you walk us through a situation where you used {concept}?",
		},
		types.DifficultyHard: {
			"Design a system that uses {concept} to solve {problem}.",
			"What are the performance implications of {concept}?",
			"How would you optimize {concept} for handling large-scale data?",
			"What edge cases might you encounter with {concept}?",
		},
	},
	types.SkillAreaProblemSolving: {
		types.DifficultyEasy: {
			"Walk me through your approach to solving a {problem}.",
			"What debugging techniques do you typically use?",
			"How do you approach learning a new technology?",
		},
		types.DifficultyMedium: {
			"Design an algorithm to solve {problem}. What's the time complexity?",
			"How would you optimize this solution for performance?",
			"Can you think of edge cases for this problem?",
		},
		types.DifficultyHard: {
			"Design a scalable solution for {problem} that handles millions of operations.",
			"How would you balance {tradeoff1} vs {tradeoff2} in this solution?",
			"What would be your strategy for this complex problem?",
		},
	},
	types.SkillAreaBehavioral: {
		types.DifficultyEasy: {
			"Tell me about a time when you successfully completed a project.",
			"How do you handle feedback from colleagues?",
			"Describe your ideal work environment.",
		},
		types.DifficultyMedium: {
			"Tell me about a conflict with a team member and how you resolved it.",
			"Share an experience where you had to learn quickly.",
			"Describe a time when you took initiative on a project.",
		},
		types.DifficultyHard: {
			"Tell me about your biggest failure and what you learned from it.",
			"Describe a time when you had to make a difficult decision.",
			"Share an experience where you influenced a major decision.",
		},
	},
	types.SkillAreaCommunication: {
		types.DifficultyEasy: {
			"How would you explain {concept} to a non-technical stakeholder?",
			"Tell me about a time you documented your work.",
		},
		types.DifficultyMedium: {
			"How do you handle presenting complex ideas to different audiences?",
			"Describe your approach to technical documentation.",
		},
		types.DifficultyHard: {
			"Tell me about a time you had to convince stakeholders of a technical decision.",
			"How do you handle disagreement with senior team members?",
		},
	},
	types.SkillAreaSystemDesign: {
		types.DifficultyEasy: {
			"Describe the architecture of a {system}.",
			"What are the components needed for {system}?",
		},
		types.DifficultyMedium: {
			"Design a scalable {system} for 1M concurrent users.",
			"How would you handle data consistency in {system}?",
		},
		types.DifficultyHard: {
			"Design a global {system} across multiple regions with disaster recovery.",
			"How would you optimize {system} for both latency and throughput?",
		},
	},
}

// Vocabularies used to fill template placeholders
var (
	problems = []string{
		"Data Processing",
		"Performance Optimization",
		"Scalability",
		"Reliability",
		"Security",
		"Resource Management",
	}

	systems = []string{
		"URL Shortener",
		"Social Media Feed",
		"Chat System",
		"Video Streaming Platform",
		"E-commerce Platform",
		"Real-time Analytics",
		"Recommendation Engine",
	}

	tradeoffPrimary   = []string{"latency", "throughput", "consistency"}
	tradeoffSecondary = []string{"availability", "partition tolerance", "cost"}

	// relatedConcepts backs {related_concept} when a question is regenerated without job context
	relatedConcepts = []string{"Python", "Java", "Go", "JavaScript", "SQL", "Docker", "Kubernetes"}
)

// DefaultTopic is used when neither the job nor the candidate names a technology
const DefaultTopic = "Python"

var questionTypes = map[types.SkillArea]string{
	types.SkillAreaTechnical:      "technical",
	types.SkillAreaProblemSolving: "problem-solving",
	types.SkillAreaCommunication:  "communication",
	types.SkillAreaBehavioral:     "behavioral",
	types.SkillAreaSystemDesign:   "scenario-based",
}

// QuestionType returns the question type label for a skill area
func QuestionType(area types.SkillArea) string {
	if t, ok := questionTypes[area]; ok {
		return t
	}
	return "technical"
}

// ExpectedConcepts returns the concepts an answer in the given area should touch.
// Technical questions lead with their topic.
func ExpectedConcepts(area types.SkillArea, topic string) []string {
	switch area {
	case types.SkillAreaTechnical:
		return []string{topic, "Architecture", "Implementation", "Best Practices"}
	case types.SkillAreaProblemSolving:
		return []string{"Algorithm", "Complexity Analysis", "Optimization", "Edge Cases"}
	case types.SkillAreaBehavioral:
		return []string{"Teamwork", "Communication", "Problem Resolution", "Initiative"}
	case types.SkillAreaSystemDesign:
		return []string{"Scalability", "Reliability", "Performance", "Cost"}
	default:
		return []string{"Clarity", "Depth", "Relevance", "Examples"}
	}
}

// IdealAnswerPoints returns the points a strong answer in the given area covers
func IdealAnswerPoints(area types.SkillArea) []string {
	switch area {
	case types.SkillAreaTechnical:
		return []string{
			"Clear definition", "Use cases", "Advantages and disadvantages",
			"Examples", "Best practices", "Common pitfalls",
		}
	case types.SkillAreaProblemSolving:
		return []string{
			"Understand the problem", "Propose approach", "Discuss complexity",
			"Consider edge cases", "Explain optimization", "Code or pseudocode",
		}
	case types.SkillAreaBehavioral:
		return []string{
			"Specific situation", "Your role", "Actions taken",
			"Results", "Lessons learned", "Apply to current role",
		}
	case types.SkillAreaSystemDesign:
		return []string{
			"Requirements analysis", "Architecture design", "Technology choices",
			"Scalability plan", "Failure handling", "Cost optimization",
		}
	default:
		return []string{
			"Direct answer", "Supporting examples", "Clear explanation",
			"Relevant details", "Thoughtful conclusion",
		}
	}
}
