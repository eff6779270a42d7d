package types

import (
	"encoding/json"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ExperienceLevel is the seniority band a job posting targets
type ExperienceLevel string

// Experience levels
const (
	ExperienceEntry  ExperienceLevel = "entry"
	ExperienceMid    ExperienceLevel = "mid"
	ExperienceSenior ExperienceLevel = "senior"
)

// ParseExperienceLevel maps free-form level names onto the three bands.
// Unknown or empty values default to mid.
func ParseExperienceLevel(s string) ExperienceLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "entry", "entry_level", "entry-level", "junior":
		return ExperienceEntry
	case "senior", "senior_level", "senior-level", "lead", "principal", "staff":
		return ExperienceSenior
	default:
		return ExperienceMid
	}
}

// UnmarshalJSON accepts any spelling ParseExperienceLevel understands
func (l *ExperienceLevel) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*l = ParseExperienceLevel(s)
	return nil
}

// Project is a project record from a résumé
type Project struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Education is a degree record from a résumé
type Education struct {
	Degree string `json:"degree"`
	Field  string `json:"field,omitempty"`
}

// CandidateProfile is the structured view of a résumé. The interview core only reads it.
type CandidateProfile struct {
	Name              string      `json:"name" validate:"required"`
	Email             string      `json:"email,omitempty" validate:"omitempty,email"`
	Phone             string      `json:"phone,omitempty"`
	YearsOfExperience int         `json:"years_of_experience" validate:"min=0"`
	Skills            []string    `json:"skills"`
	Technologies      []string    `json:"technologies"`
	Projects          []Project   `json:"projects,omitempty"`
	Education         []Education `json:"education,omitempty"`
	Certifications    []string    `json:"certifications,omitempty"`
	Summary           string      `json:"summary,omitempty"`
	Strengths         []string    `json:"strengths,omitempty"`
}

// JobRequirement is the structured view of a job description.
// SkillGaps is filled in by the caller before questions are generated.
type JobRequirement struct {
	Title            string          `json:"title" validate:"required"`
	RequiredSkills   []string        `json:"required_skills"`
	PreferredSkills  []string        `json:"preferred_skills,omitempty"`
	Technologies     []string        `json:"technologies"`
	ExperienceLevel  ExperienceLevel `json:"experience_level" validate:"omitempty,oneof=entry mid senior"`
	Responsibilities []string        `json:"responsibilities,omitempty"`
	NiceToHave       []string        `json:"nice_to_have,omitempty"`
	Description      string          `json:"description,omitempty"`
	SkillGaps        []string        `json:"skill_gaps,omitempty"`
}

var profileValidator = validator.New()

// Validate checks the candidate profile's structural constraints
func (c *CandidateProfile) Validate() error {
	return profileValidator.Struct(c)
}

// Validate checks the job requirement's structural constraints
func (j *JobRequirement) Validate() error {
	return profileValidator.Struct(j)
}

// Clone returns a deep copy so callers can hand the profile to a session without sharing slices
func (c CandidateProfile) Clone() CandidateProfile {
	out := c
	out.Skills = cloneStrings(c.Skills)
	out.Technologies = cloneStrings(c.Technologies)
	out.Certifications = cloneStrings(c.Certifications)
	out.Strengths = cloneStrings(c.Strengths)
	if c.Projects != nil {
		out.Projects = append([]Project(nil), c.Projects...)
	}
	if c.Education != nil {
		out.Education = append([]Education(nil), c.Education...)
	}
	return out
}

// Clone returns a deep copy of the job requirement
func (j JobRequirement) Clone() JobRequirement {
	out := j
	out.RequiredSkills = cloneStrings(j.RequiredSkills)
	out.PreferredSkills = cloneStrings(j.PreferredSkills)
	out.Technologies = cloneStrings(j.Technologies)
	out.Responsibilities = cloneStrings(j.Responsibilities)
	out.NiceToHave = cloneStrings(j.NiceToHave)
	out.SkillGaps = cloneStrings(j.SkillGaps)
	return out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return append([]string(nil), in...)
}
