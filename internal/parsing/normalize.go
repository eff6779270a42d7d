package parsing

import (
	"strings"

	"github.com/jonathan/interview-coach/internal/types"
)

// skillNormalizations maps common skill name variants to canonical names
var skillNormalizations = map[string]string{
	"golang":        "Go",
	"go lang":       "Go",
	"javascript":    "JavaScript",
	"js":            "JavaScript",
	"typescript":    "TypeScript",
	"ts":            "TypeScript",
	"k8s":           "Kubernetes",
	"kubernetes":    "Kubernetes",
	"react.js":      "React",
	"reactjs":       "React",
	"vue.js":        "Vue",
	"vuejs":         "Vue",
	"node.js":       "Node.js",
	"nodejs":        "Node.js",
	"next.js":       "NextJS",
	"nextjs":        "NextJS",
	"nest.js":       "NestJS",
	"nestjs":        "NestJS",
	"postgres":      "PostgreSQL",
	"postgresql":    "PostgreSQL",
	"mysql":         "MySQL",
	"mongodb":       "MongoDB",
	"mongo":         "MongoDB",
	"dynamodb":      "DynamoDB",
	"elasticsearch": "Elasticsearch",
	"graphql":       "GraphQL",
	"fastapi":       "FastAPI",
	"aws":           "AWS",
	"gcp":           "GCP",
	"sql":           "SQL",
	"php":           "PHP",
	"rest":          "REST",
	"ci/cd":         "CI/CD",
	"devops":        "DevOps",
	"c++":           "C++",
	"c#":            "C#",
}

// NormalizeSkillName normalizes a skill name to its canonical form
func NormalizeSkillName(skillName string) string {
	normalized := strings.TrimSpace(skillName)
	if normalized == "" {
		return ""
	}

	lower := strings.ToLower(normalized)
	if canonical, ok := skillNormalizations[lower]; ok {
		return canonical
	}

	// All-caps single words that aren't known acronyms get title case
	if normalized == strings.ToUpper(normalized) && normalized != lower && !strings.Contains(lower, " ") {
		return strings.ToUpper(normalized[:1]) + strings.ToLower(normalized[1:])
	}

	// Mixed case is taken as intentional
	if normalized != lower {
		return normalized
	}

	// All lowercase single word: capitalize the first letter
	if !strings.Contains(normalized, " ") {
		return strings.ToUpper(normalized[:1]) + normalized[1:]
	}

	return normalized
}

// NormalizeSkills canonicalizes each name and drops empties and case-insensitive duplicates, keeping the first spelling
func NormalizeSkills(skills []string) []string {
	if len(skills) == 0 {
		return skills
	}

	out := make([]string, 0, len(skills))
	seen := make(map[string]bool, len(skills))
	for _, s := range skills {
		n := NormalizeSkillName(s)
		if n == "" {
			continue
		}
		key := strings.ToLower(n)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, n)
	}
	return out
}

// NormalizeCandidate canonicalizes the skill and technology lists of a profile in place
func NormalizeCandidate(c *types.CandidateProfile) {
	c.Skills = NormalizeSkills(c.Skills)
	c.Technologies = NormalizeSkills(c.Technologies)
	c.Name = strings.TrimSpace(c.Name)
}

// NormalizeJob canonicalizes the skill lists of a job requirement in place and resolves its experience level
func NormalizeJob(j *types.JobRequirement) {
	j.RequiredSkills = NormalizeSkills(j.RequiredSkills)
	j.PreferredSkills = NormalizeSkills(j.PreferredSkills)
	j.Technologies = NormalizeSkills(j.Technologies)
	j.Title = strings.TrimSpace(j.Title)
	j.ExperienceLevel = types.ParseExperienceLevel(string(j.ExperienceLevel))
}
