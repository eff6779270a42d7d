package parsing

import (
	"slices"
	"strings"
)

// resumeTechnologies are the technology terms recognized in résumés, grouped by category
var resumeTechnologies = [][]string{
	{"Python", "Java", "JavaScript", "TypeScript", "C++", "C#", "Go", "Rust", "Ruby", "PHP", "Swift", "Kotlin"},
	{"React", "Vue", "Angular", "Django", "Flask", "FastAPI", "Spring", "Express", "NextJS", "NestJS"},
	{"MySQL", "PostgreSQL", "MongoDB", "Redis", "Cassandra", "DynamoDB", "Elasticsearch"},
	{"AWS", "Azure", "GCP", "Kubernetes", "Docker"},
	{"Git", "Jenkins", "CI/CD"},
}

// softSkills are the non-technical skills recognized in résumés
var softSkills = []string{
	"Communication", "Leadership", "Problem Solving", "Teamwork",
	"Time Management", "Adaptability", "Critical Thinking",
}

// resumeSkillGroups is everything a résumé can list as a skill
var resumeSkillGroups = append(append([][]string{}, resumeTechnologies...), softSkills)

// jobKeywords are the skill terms recognized in job descriptions, grouped by category
var jobKeywords = [][]string{
	{"Python", "Java", "JavaScript", "TypeScript", "C++", "C#", "Go", "Rust", "Ruby", "PHP", "Swift", "Kotlin", "SQL"},
	{"React", "Vue", "Angular", "Django", "Flask", "FastAPI", "Spring", "Express", "NextJS", "NestJS", "Rails"},
	{"MySQL", "PostgreSQL", "MongoDB", "Redis", "Cassandra", "DynamoDB", "Elasticsearch", "Oracle"},
	{"AWS", "Azure", "GCP", "Kubernetes", "Docker", "Lambda"},
	{"Git", "Jenkins", "CI/CD", "Terraform"},
	{"Agile", "Scrum", "Kanban", "DevOps", "REST", "GraphQL"},
}

var certificationKeywords = []string{
	"certified", "certification", "certifications", "certificate", "certificates",
	"credential", "credentials", "pmp", "cka", "ckad", "cissp", "csm",
}

var certificationHeaders = map[string]bool{
	"certifications":              true,
	"certification":               true,
	"certificates":                true,
	"licenses and certifications": true,
	"licenses & certifications":   true,
}

var cloudTechnologies = []string{"AWS", "Azure", "GCP", "Kubernetes"}

// findTerms returns the terms of every group that occur in text as whole words, sorted and deduplicated
func findTerms(text string, groups ...[]string) []string {
	lower := strings.ToLower(text)
	seen := make(map[string]bool)
	var found []string
	for _, group := range groups {
		for _, term := range group {
			if seen[term] || !containsTerm(lower, strings.ToLower(term)) {
				continue
			}
			seen[term] = true
			found = append(found, term)
		}
	}
	slices.Sort(found)
	return found
}

// containsTerm reports whether term occurs in lower with no letter or digit directly on either side.
// Both arguments must already be lowercase.
func containsTerm(lower, term string) bool {
	if term == "" {
		return false
	}
	for start := 0; start < len(lower); {
		i := strings.Index(lower[start:], term)
		if i < 0 {
			return false
		}
		i += start
		end := i + len(term)
		if isBoundary(lower, i-1) && isBoundary(lower, end) {
			return true
		}
		start = i + 1
	}
	return false
}

func isBoundary(s string, idx int) bool {
	if idx < 0 || idx >= len(s) {
		return true
	}
	c := s[idx]
	return !(c >= 'a' && c <= 'z' || c >= '0' && c <= '9')
}

func containsAnyTerm(lower string, terms []string) bool {
	for _, t := range terms {
		if containsTerm(lower, t) {
			return true
		}
	}
	return false
}
