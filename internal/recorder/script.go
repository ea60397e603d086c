package recorder

import "github.com/testspark/testspark/internal/domain"

// Script returns the step templates emitted, one per tick, for a recording
// of url. Template IDs are ignored; the recorder numbers steps itself.
type Script func(url string) []domain.Step

// LoginScript is the built-in simulated capture of a login flow
func LoginScript(url string) []domain.Step {
	return []domain.Step{
		{Type: domain.StepNavigation, Target: url, Description: "Navigate to URL"},
		{Type: domain.StepClick, Target: ".login-button", Description: "Click on Login button"},
		{Type: domain.StepInput, Target: "#username", Value: "testuser", Description: "Enter username"},
		{Type: domain.StepInput, Target: "#password", Value: "********", Description: "Enter password"},
		{Type: domain.StepClick, Target: `button[type="submit"]`, Description: "Click Submit"},
		{Type: domain.StepAssertion, Target: ".welcome-message", Expected: "Welcome back", Description: "Assert welcome message"},
	}
}
