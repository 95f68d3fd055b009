package domain

import "strings"

// Difficulty is the internal difficulty enum of a problem.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// ValidDifficulties is the set of accepted internal difficulty values.
var ValidDifficulties = map[Difficulty]bool{
	DifficultyEasy:   true,
	DifficultyMedium: true,
	DifficultyHard:   true,
}

// difficultyLabels maps source-language labels to the internal enum.
var difficultyLabels = map[string]Difficulty{
	"简单":     DifficultyEasy,
	"中等":     DifficultyMedium,
	"困难":     DifficultyHard,
	"easy":   DifficultyEasy,
	"medium": DifficultyMedium,
	"hard":   DifficultyHard,
}

// ParseDifficulty maps a difficulty label to the internal enum.
// Unrecognized labels map to DifficultyEasy.
func ParseDifficulty(label string) Difficulty {
	if d, ok := difficultyLabels[strings.ToLower(strings.TrimSpace(label))]; ok {
		return d
	}
	return DifficultyEasy
}

// ControlKind is the kind of a form control.
type ControlKind string

const (
	ControlTextarea ControlKind = "textarea"
	ControlInput    ControlKind = "input"
	ControlSelect   ControlKind = "select"
	ControlCheckbox ControlKind = "checkbox"
)

// CheckedValue is the value a checkbox control holds when checked.
const CheckedValue = "on"
