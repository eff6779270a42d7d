// Package parsing turns résumé and job-description text into CandidateProfile and JobRequirement
// records, either with keyword analyzers or through LLM extraction.
package parsing

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/jonathan/interview-coach/internal/types"
	"go.uber.org/zap"
)

const (
	maxCertifications = 5
	maxSummaryLength  = 200
	summaryFallback   = 3
	// larger year counts are almost always calendar years or typos
	maxPlausibleYears = 60
)

var (
	projectPattern   = regexp.MustCompile(`(?i)(?:project|built|developed|created):\s*([^\n]+)`)
	degreePattern    = regexp.MustCompile(`\b(B\.?S\.?|B\.?A\.?|M\.?S\.?|M\.?A\.?|Ph\.?D\.?)\s+(?:in\s+)?([^\n]+)`)
	yearsPattern     = regexp.MustCompile(`(?i)(\d+)\s*\+?\s*years?\b`)
	emailPattern     = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	phonePattern     = regexp.MustCompile(`(?:\+?1[-.\s]?)?\(?[0-9]{3}\)?[-.\s]?[0-9]{3}[-.\s]?[0-9]{4}`)
	summaryPattern   = regexp.MustCompile(`(?im)^[ \t]*(?:PROFESSIONAL\s+SUMMARY|SUMMARY|OBJECTIVE|ABOUT(?:\s+ME)?)[ \t]*:?[ \t]*\n?[ \t]*([^\n]{0,200})`)
	leadershipSkills = []string{"Leadership", "Communication"}
)

// Derived strength labels
const (
	StrengthDiverseStack = "Strong technical foundation with diverse tech stack"
	StrengthDelivery     = "Proven project delivery experience"
	StrengthSoftSkills   = "Strong soft skills and communication"
	StrengthCloud        = "Cloud infrastructure expertise"
)

// ResumeAnalyzer extracts a CandidateProfile from résumé text with keyword tables and patterns
type ResumeAnalyzer struct {
	logger *zap.Logger
}

// NewResumeAnalyzer creates a ResumeAnalyzer. A nil logger disables logging.
func NewResumeAnalyzer(logger *zap.Logger) *ResumeAnalyzer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ResumeAnalyzer{logger: logger}
}

// Analyze builds a candidate profile from raw résumé text
func (a *ResumeAnalyzer) Analyze(text, name string) types.CandidateProfile {
	if strings.TrimSpace(name) == "" {
		name = "Unknown"
	}

	skills := findTerms(text, resumeSkillGroups...)
	technologies := findTerms(text, resumeTechnologies...)
	projects := extractProjects(text)

	profile := types.CandidateProfile{
		Name:              name,
		Email:             emailPattern.FindString(text),
		Phone:             phonePattern.FindString(text),
		YearsOfExperience: extractYears(text),
		Skills:            skills,
		Technologies:      technologies,
		Projects:          projects,
		Education:         extractEducation(text),
		Certifications:    extractCertifications(text),
		Summary:           extractSummary(text),
		Strengths:         identifyStrengths(skills, technologies, projects),
	}

	a.logger.Info("analyzed resume",
		zap.String("candidate", name),
		zap.Int("skills", len(profile.Skills)),
		zap.Int("technologies", len(profile.Technologies)),
		zap.Int("years_of_experience", profile.YearsOfExperience),
	)
	return profile
}

func extractProjects(text string) []types.Project {
	var projects []types.Project
	for _, m := range projectPattern.FindAllStringSubmatch(text, -1) {
		name := strings.TrimSpace(m[1])
		if name == "" {
			continue
		}
		projects = append(projects, types.Project{Name: name, Description: name})
	}
	return projects
}

func extractEducation(text string) []types.Education {
	var education []types.Education
	for _, m := range degreePattern.FindAllStringSubmatch(text, -1) {
		education = append(education, types.Education{
			Degree: strings.TrimSpace(m[1]),
			Field:  strings.TrimSpace(m[2]),
		})
	}
	return education
}

func extractCertifications(text string) []string {
	var certs []string
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		lower := strings.ToLower(trimmed)
		if certificationHeaders[strings.TrimRight(lower, ": ")] {
			continue
		}
		if containsAnyTerm(lower, certificationKeywords) {
			certs = append(certs, strings.TrimSpace(strings.TrimLeft(trimmed, "•-*")))
		}
		if len(certs) == maxCertifications {
			break
		}
	}
	return certs
}

// extractYears returns the largest "N years" figure in the text, or 0
func extractYears(text string) int {
	years := 0
	for _, m := range yearsPattern.FindAllStringSubmatch(text, -1) {
		n, err := strconv.Atoi(m[1])
		if err != nil || n > maxPlausibleYears {
			continue
		}
		years = max(years, n)
	}
	return years
}

func extractSummary(text string) string {
	if m := summaryPattern.FindStringSubmatch(text); m != nil {
		if s := strings.TrimSpace(m[1]); s != "" {
			return s
		}
	}

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
			if len(lines) == summaryFallback {
				break
			}
		}
	}
	return truncateRunes(strings.Join(lines, " "), maxSummaryLength)
}

func identifyStrengths(skills, technologies []string, projects []types.Project) []string {
	var strengths []string
	if len(technologies) >= 5 {
		strengths = append(strengths, StrengthDiverseStack)
	}
	if len(projects) >= 3 {
		strengths = append(strengths, StrengthDelivery)
	}
	if anyOf(skills, leadershipSkills) {
		strengths = append(strengths, StrengthSoftSkills)
	}
	if anyOf(technologies, cloudTechnologies) {
		strengths = append(strengths, StrengthCloud)
	}
	return strengths
}

func anyOf(have, want []string) bool {
	for _, h := range have {
		for _, w := range want {
			if h == w {
				return true
			}
		}
	}
	return false
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return strings.TrimSpace(string(r[:n]))
}
