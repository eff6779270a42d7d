package parsing

import (
	"fmt"
	"strings"

	"github.com/jonathan/interview-coach/internal/types"
	"go.uber.org/zap"
)

const (
	maxRequiredSkills    = 10
	maxPreferredSkills   = 5
	maxJobTechnologies   = 15
	maxResponsibilities  = 8
	maxNiceToHave        = 5
	maxDescriptionLength = 300
	descriptionScanLines = 10
	minDescriptionLine   = 20
	minResponsibility    = 10
	maxHeaderWords       = 5
	maxBareHeaderWords   = 3
)

type sectionKind int

const (
	sectionNone sectionKind = iota
	sectionRequired
	sectionPreferred
	sectionResponsibilities
	sectionOther
)

// sectionHeaders are checked in order; the first match wins, so "preferred qualifications" is a preferred section
var sectionHeaders = []struct {
	kind     sectionKind
	keywords []string
}{
	{sectionPreferred, []string{"preferred", "nice to have", "nice-to-have", "bonus", "plus", "additional"}},
	{sectionRequired, []string{"requirements", "requirement", "must have", "must-have", "qualifications", "qualification"}},
	{sectionResponsibilities, []string{"responsibilities", "responsibility", "duties", "what you'll do", "what you will do"}},
}

var (
	entryLevelPhrases  = []string{"entry level", "entry-level", "junior", "0-2 years"}
	midLevelPhrases    = []string{"mid-level", "mid level", "2-5 years", "intermediate"}
	seniorLevelPhrases = []string{"senior", "5+ years", "10+ years", "lead", "principal"}

	responsibilityVerbs = []string{
		"develop", "design", "implement", "manage", "lead",
		"architect", "maintain", "collaborate", "improve",
	}
)

// DefaultJobTitle is used when the caller supplies no title
const DefaultJobTitle = "Tech Role"

// JobAnalyzer extracts a JobRequirement from job-description text with keyword tables and section detection
type JobAnalyzer struct {
	logger *zap.Logger
}

// NewJobAnalyzer creates a JobAnalyzer. A nil logger disables logging.
func NewJobAnalyzer(logger *zap.Logger) *JobAnalyzer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &JobAnalyzer{logger: logger}
}

// Analyze builds a job requirement from raw job-description text
func (a *JobAnalyzer) Analyze(text, title string) types.JobRequirement {
	if strings.TrimSpace(title) == "" {
		title = DefaultJobTitle
	}

	sections := splitSections(text)

	requiredText := strings.Join(sections[sectionRequired], "\n")
	if requiredText == "" {
		requiredText = text
	}
	required := limit(findTerms(requiredText, jobKeywords...), maxRequiredSkills)

	job := types.JobRequirement{
		Title:            title,
		RequiredSkills:   required,
		PreferredSkills:  limit(without(findTerms(strings.Join(sections[sectionPreferred], "\n"), jobKeywords...), required), maxPreferredSkills),
		Technologies:     limit(findTerms(text, jobKeywords...), maxJobTechnologies),
		ExperienceLevel:  extractExperienceLevel(text),
		Responsibilities: extractResponsibilities(text, sections[sectionResponsibilities]),
		NiceToHave:       limit(bulletItems(sections[sectionPreferred]), maxNiceToHave),
		Description:      extractDescription(text),
	}

	a.logger.Info("analyzed job description",
		zap.String("title", title),
		zap.Int("required_skills", len(job.RequiredSkills)),
		zap.Int("technologies", len(job.Technologies)),
		zap.String("experience_level", string(job.ExperienceLevel)),
	)
	return job
}

// IdentifySkillGaps lists the job's required skills and technologies the candidate does not have,
// in the job's order. Matching is case-insensitive after normalization.
func IdentifySkillGaps(candidate types.CandidateProfile, job types.JobRequirement) []string {
	have := make(map[string]bool)
	for _, s := range append(append([]string{}, candidate.Skills...), candidate.Technologies...) {
		have[skillKey(s)] = true
	}
	haveTech := make(map[string]bool)
	for _, t := range candidate.Technologies {
		haveTech[skillKey(t)] = true
	}

	var gaps []string
	seen := make(map[string]bool)
	for _, s := range job.RequiredSkills {
		if key := skillKey(s); key != "" && !have[key] && !seen["skill:"+key] {
			seen["skill:"+key] = true
			gaps = append(gaps, fmt.Sprintf("Required skill: %s", s))
		}
	}
	for _, t := range job.Technologies {
		if key := skillKey(t); key != "" && !haveTech[key] && !seen["tech:"+key] {
			seen["tech:"+key] = true
			gaps = append(gaps, fmt.Sprintf("Required technology: %s", t))
		}
	}
	return gaps
}

func skillKey(s string) string {
	return strings.ToLower(NormalizeSkillName(s))
}

// splitSections groups the lines under each recognized header. Header lines may carry content after a colon.
func splitSections(text string) map[sectionKind][]string {
	sections := make(map[sectionKind][]string)
	current := sectionNone
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if kind, rest, ok := parseHeader(trimmed); ok {
			current = kind
			if rest != "" && kind != sectionOther {
				sections[kind] = append(sections[kind], rest)
			}
			continue
		}
		if current != sectionNone && current != sectionOther {
			sections[current] = append(sections[current], trimmed)
		}
	}
	return sections
}

// parseHeader recognizes short lines such as "Requirements:" or "Nice to have: Kafka".
// Unrecognized short lines ending in a colon close the current section.
func parseHeader(line string) (sectionKind, string, bool) {
	if isBullet(line) {
		return sectionNone, "", false
	}

	head, rest, hasColon := strings.Cut(line, ":")
	head = strings.TrimSpace(head)
	if len(strings.Fields(head)) > maxHeaderWords {
		return sectionNone, "", false
	}

	lower := strings.ToLower(head)
	for _, h := range sectionHeaders {
		for _, kw := range h.keywords {
			if !containsTerm(lower, kw) {
				continue
			}
			if !hasColon && len(strings.Fields(head)) > maxBareHeaderWords {
				return sectionNone, "", false
			}
			return h.kind, strings.TrimSpace(rest), true
		}
	}
	if hasColon && strings.TrimSpace(rest) == "" {
		return sectionOther, "", true
	}
	return sectionNone, "", false
}

func isBullet(line string) bool {
	if line == "" {
		return false
	}
	switch {
	case strings.HasPrefix(line, "-"), strings.HasPrefix(line, "*"), strings.HasPrefix(line, "•"):
		return true
	}
	i := 0
	for i < len(line) && line[i] >= '0' && line[i] <= '9' {
		i++
	}
	return i > 0 && i < len(line) && (line[i] == '.' || line[i] == ')')
}

// stripBullet removes a leading bullet or list number
func stripBullet(line string) string {
	return strings.TrimSpace(strings.TrimLeft(line, "•-*0123456789.) \t"))
}

func bulletItems(lines []string) []string {
	var items []string
	for _, line := range lines {
		if !isBullet(line) {
			continue
		}
		if item := stripBullet(line); item != "" {
			items = append(items, item)
		}
	}
	return items
}

func extractExperienceLevel(text string) types.ExperienceLevel {
	lower := strings.ToLower(text)
	switch {
	case containsAnyTerm(lower, entryLevelPhrases):
		return types.ExperienceEntry
	case containsAnyTerm(lower, midLevelPhrases):
		return types.ExperienceMid
	case containsAnyTerm(lower, seniorLevelPhrases):
		return types.ExperienceSenior
	default:
		return types.ExperienceMid
	}
}

// extractResponsibilities prefers the bullets of a responsibilities section and falls back to
// lines with a word built on a responsibility verb ("develops", "leading")
func extractResponsibilities(text string, section []string) []string {
	items := bulletItems(section)
	if len(items) == 0 {
		for _, line := range strings.Split(text, "\n") {
			lower := strings.ToLower(line)
			if !containsAnyPrefix(lower, responsibilityVerbs) {
				continue
			}
			if cleaned := stripBullet(line); len(cleaned) > minResponsibility {
				items = append(items, cleaned)
			}
		}
	}
	return limit(items, maxResponsibilities)
}

// containsAnyPrefix reports whether a word in lower starts with one of the stems
func containsAnyPrefix(lower string, stems []string) bool {
	for _, word := range strings.FieldsFunc(lower, func(r rune) bool { return !(r >= 'a' && r <= 'z') }) {
		for _, stem := range stems {
			if strings.HasPrefix(word, stem) {
				return true
			}
		}
	}
	return false
}

func extractDescription(text string) string {
	lines := strings.Split(text, "\n")
	var parts []string
	for _, line := range lines[:min(len(lines), descriptionScanLines)] {
		if trimmed := strings.TrimSpace(line); len(trimmed) > minDescriptionLine {
			parts = append(parts, trimmed)
		}
	}
	return truncateRunes(strings.Join(parts, " "), maxDescriptionLength)
}

func limit(values []string, n int) []string {
	if len(values) > n {
		return values[:n]
	}
	return values
}

func without(values, exclude []string) []string {
	drop := make(map[string]bool, len(exclude))
	for _, e := range exclude {
		drop[e] = true
	}
	var out []string
	for _, v := range values {
		if !drop[v] {
			out = append(out, v)
		}
	}
	return out
}
