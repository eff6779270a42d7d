// Package types provides type definitions for structured data used throughout the interview-coach system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Difficulty is the level of an interview question. Levels are totally ordered: easy < medium < hard.
type Difficulty int

// Difficulty levels in ascending order
const (
	DifficultyEasy Difficulty = iota
	DifficultyMedium
	DifficultyHard
)

var difficultyNames = [...]string{"easy", "medium", "hard"}

// AllDifficulties returns every difficulty level in ascending order
func AllDifficulties() []Difficulty {
	return []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}
}

// String returns the lowercase name of the difficulty
func (d Difficulty) String() string {
	if !d.Valid() {
		return fmt.Sprintf("difficulty(%d)", int(d))
	}
	return difficultyNames[d]
}

// Valid reports whether d is one of the defined levels
func (d Difficulty) Valid() bool {
	return d >= DifficultyEasy && d <= DifficultyHard
}

// Rank returns the position of the difficulty in the total order (0 for easy)
func (d Difficulty) Rank() int {
	return int(d)
}

// Less reports whether d is strictly easier than other
func (d Difficulty) Less(other Difficulty) bool {
	return d < other
}

// Harder returns the next level up; hard stays hard.
func (d Difficulty) Harder() Difficulty {
	if d >= DifficultyHard {
		return DifficultyHard
	}
	return d + 1
}

// Easier returns the next level down; easy stays easy.
func (d Difficulty) Easier() Difficulty {
	if d <= DifficultyEasy {
		return DifficultyEasy
	}
	return d - 1
}

// ExpectedWords returns the answer length, in words, that a thorough answer at this level is expected to reach
func (d Difficulty) ExpectedWords() int {
	switch d {
	case DifficultyEasy:
		return 100
	case DifficultyHard:
		return 300
	default:
		return 200
	}
}

// ParseDifficulty parses a difficulty name (case-insensitive)
func ParseDifficulty(s string) (Difficulty, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	for i, name := range difficultyNames {
		if name == normalized {
			return Difficulty(i), nil
		}
	}
	return DifficultyEasy, fmt.Errorf("unknown difficulty %q", s)
}

// MarshalJSON encodes the difficulty as its name
func (d Difficulty) MarshalJSON() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("cannot marshal invalid difficulty %d", int(d))
	}
	return json.Marshal(d.String())
}

// UnmarshalJSON decodes a difficulty from its name
func (d *Difficulty) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("difficulty must be a string: %w", err)
	}
	parsed, err := ParseDifficulty(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// TimeLimitFor returns the answer time budget in seconds for a difficulty.
// The base budget applies to easy questions; medium gets 1.5x and hard 2x,
// so the default base of 120 yields 120/180/240.
func TimeLimitFor(d Difficulty, baseSeconds int) int {
	if baseSeconds <= 0 {
		baseSeconds = DefaultTimePerQuestion
	}
	switch d {
	case DifficultyMedium:
		return baseSeconds * 3 / 2
	case DifficultyHard:
		return baseSeconds * 2
	default:
		return baseSeconds
	}
}

// DefaultTimePerQuestion is the base answer budget in seconds for an easy question
const DefaultTimePerQuestion = 120
