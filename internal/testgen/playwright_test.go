package testgen

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testspark/testspark/internal/domain"
	"github.com/testspark/testspark/internal/recorder"
)

var _ recorder.Generator = (*Playwright)(nil)

func loginSession() domain.Session {
	steps := recorder.LoginScript("https://x.test")
	for i := range steps {
		steps[i].ID = i + 1
	}
	return domain.Session{Name: "Login", URL: "https://x.test", Steps: steps}
}

func TestScript(t *testing.T) {
	script := Script(loginSession())

	assert.True(t, strings.HasPrefix(script, "import { test, expect } from '@playwright/test';"))
	assert.Contains(t, script, "test('Login', async ({ page }) => {")
	assert.Contains(t, script, "await page.goto('https://x.test');")
	assert.Contains(t, script, "await page.click('.login-button');")
	assert.Contains(t, script, "await page.fill('#username', 'testuser');")
	assert.Contains(t, script, "process.env.TESTSPARK_SECRET")
	assert.NotContains(t, script, "********")
	assert.Contains(t, script, `await page.click('button[type="submit"]');`)
	assert.Contains(t, script, "toContainText('Welcome back')")
	assert.True(t, strings.HasSuffix(script, "});\n"))
}

func TestScriptEscapesQuotes(t *testing.T) {
	script := Script(domain.Session{
		Name:  "it's",
		Steps: []domain.Step{{ID: 1, Type: domain.StepInput, Target: "#q", Value: `a'b`}},
	})
	assert.Contains(t, script, `test('it\'s'`)
	assert.Contains(t, script, `'a\'b'`)
}

func TestScriptFallsBackToURLName(t *testing.T) {
	assert.Contains(t, Script(domain.Session{URL: "https://x.test"}), "test('https://x.test'")
	assert.Contains(t, Script(domain.Session{}), "test('recorded flow'")
}

func TestGenerateWrites(t *testing.T) {
	buf := &bytes.Buffer{}
	g := &Playwright{W: buf}
	require.NoError(t, g.Generate(context.Background(), loginSession()))
	assert.Contains(t, buf.String(), "page.goto")
}

func TestGenerateHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	buf := &bytes.Buffer{}
	require.ErrorIs(t, (&Playwright{W: buf}).Generate(ctx, loginSession()), context.Canceled)
	assert.Zero(t, buf.Len())
}
