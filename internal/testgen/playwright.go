// Package testgen derives runnable test scripts from recorded sessions.
package testgen

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/testspark/testspark/internal/domain"
)

// Playwright renders a session as a Playwright test and writes it to W
type Playwright struct {
	W io.Writer
}

// Generate implements recorder.Generator
func (p *Playwright) Generate(ctx context.Context, session domain.Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := io.WriteString(p.W, Script(session))
	return err
}

// Script returns the Playwright source for a session
func Script(session domain.Session) string {
	var b strings.Builder
	b.WriteString("import { test, expect } from '@playwright/test';\n\n")
	fmt.Fprintf(&b, "test('%s', async ({ page }) => {\n", escapeJS(testName(session)))
	for _, step := range session.Steps {
		b.WriteString(actionLine(step))
	}
	b.WriteString("});\n")
	return b.String()
}

func testName(session domain.Session) string {
	if strings.TrimSpace(session.Name) != "" {
		return session.Name
	}
	if session.URL != "" {
		return session.URL
	}
	return "recorded flow"
}

// actionLine renders one step. Masked values are emitted as a placeholder
// comment so secrets are never written into scripts.
func actionLine(s domain.Step) string {
	target := escapeJS(s.Target)
	switch s.Type {
	case domain.StepNavigation:
		return fmt.Sprintf("  await page.goto('%s');\n", target)
	case domain.StepClick:
		return fmt.Sprintf("  await page.click('%s');\n", target)
	case domain.StepInput:
		if isMasked(s.Value) {
			return fmt.Sprintf("  await page.fill('%s', process.env.TESTSPARK_SECRET ?? ''); // masked\n", target)
		}
		return fmt.Sprintf("  await page.fill('%s', '%s');\n", target, escapeJS(s.Value))
	case domain.StepAssertion:
		return fmt.Sprintf("  await expect(page.locator('%s')).toContainText('%s');\n", target, escapeJS(s.Expected))
	default:
		return fmt.Sprintf("  // unsupported step %d: %s\n", s.ID, s.Type)
	}
}

func isMasked(v string) bool {
	return v != "" && strings.Trim(v, "*") == ""
}

func escapeJS(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `'`, `\'`, "\n", `\n`, "\r", `\r`)
	return r.Replace(s)
}
