package types

import (
	"encoding/json"
	"fmt"
	"strings"
)

// SkillArea buckets questions and scores into one of five fixed categories
type SkillArea string

// Skill areas in enumeration order
const (
	SkillAreaTechnical      SkillArea = "technical"
	SkillAreaProblemSolving SkillArea = "problem_solving"
	SkillAreaCommunication  SkillArea = "communication"
	SkillAreaBehavioral     SkillArea = "behavioral"
	SkillAreaSystemDesign   SkillArea = "system_design"
)

// AllSkillAreas returns the skill areas in enumeration order.
// Question distribution assigns remainders to the first areas of this list.
func AllSkillAreas() []SkillArea {
	return []SkillArea{
		SkillAreaTechnical,
		SkillAreaProblemSolving,
		SkillAreaCommunication,
		SkillAreaBehavioral,
		SkillAreaSystemDesign,
	}
}

// Valid reports whether a is one of the five defined areas
func (a SkillArea) Valid() bool {
	switch a {
	case SkillAreaTechnical, SkillAreaProblemSolving, SkillAreaCommunication,
		SkillAreaBehavioral, SkillAreaSystemDesign:
		return true
	}
	return false
}

// Index returns the position of the area in enumeration order, or -1 if invalid
func (a SkillArea) Index() int {
	for i, area := range AllSkillAreas() {
		if area == a {
			return i
		}
	}
	return -1
}

// Label returns a human-readable name for the area
func (a SkillArea) Label() string {
	switch a {
	case SkillAreaProblemSolving:
		return "problem solving"
	case SkillAreaSystemDesign:
		return "system design"
	default:
		return string(a)
	}
}

// ParseSkillArea parses a skill area name. Hyphens and spaces are accepted in place of underscores.
func ParseSkillArea(s string) (SkillArea, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	normalized = strings.NewReplacer("-", "_", " ", "_").Replace(normalized)
	area := SkillArea(normalized)
	if !area.Valid() {
		return "", fmt.Errorf("unknown skill area %q", s)
	}
	return area, nil
}

// MarshalJSON encodes the area as its name
func (a SkillArea) MarshalJSON() ([]byte, error) {
	if !a.Valid() {
		return nil, fmt.Errorf("cannot marshal invalid skill area %q", string(a))
	}
	return json.Marshal(string(a))
}

// UnmarshalJSON rejects names outside the closed set
func (a *SkillArea) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("skill area must be a string: %w", err)
	}
	parsed, err := ParseSkillArea(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
