package domain

import "strings"

// StepType identifies the kind of browser interaction a step represents
type StepType string

const (
	StepNavigation StepType = "navigation"
	StepClick      StepType = "click"
	StepInput      StepType = "input"
	StepAssertion  StepType = "assertion"
)

// StepTypes lists every known step type in display order
var StepTypes = []StepType{StepNavigation, StepClick, StepInput, StepAssertion}

// Glyph keys resolved by presentation layers
const (
	GlyphArrowUpRight = "arrow-up-right"
	GlyphMousePointer = "mouse-pointer"
	GlyphKeyboard     = "keyboard"
	GlyphEye          = "eye"
)

// Glyph returns the icon key for the step type. Unknown types map to "".
func (t StepType) Glyph() string {
	switch t {
	case StepNavigation:
		return GlyphArrowUpRight
	case StepClick:
		return GlyphMousePointer
	case StepInput:
		return GlyphKeyboard
	case StepAssertion:
		return GlyphEye
	default:
		return ""
	}
}

// Valid reports whether t is one of the known step types
func (t StepType) Valid() bool {
	return t.Glyph() != ""
}

// ParseStepType converts a string to a StepType, case-insensitively.
// The second return is false for unknown input.
func ParseStepType(s string) (StepType, bool) {
	t := StepType(strings.ToLower(strings.TrimSpace(s)))
	return t, t.Valid()
}

// Step is one recorded browser interaction
type Step struct {
	ID          int      `json:"id"`
	Type        StepType `json:"type"`
	Target      string   `json:"target,omitempty"`
	Value       string   `json:"value,omitempty"`    // Input payload, already masked for secrets
	Expected    string   `json:"expected,omitempty"` // Assertion only
	Description string   `json:"description"`
}
