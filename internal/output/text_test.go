package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testspark/testspark/internal/domain"
	"github.com/testspark/testspark/internal/flow"
)

var textSteps = []domain.Step{
	{ID: 1, Type: domain.StepNavigation, Target: "https://x.test", Description: "Navigate to URL"},
	{ID: 3, Type: domain.StepInput, Target: "#username", Value: "testuser", Description: "Enter username"},
	{ID: 6, Type: domain.StepAssertion, Target: ".welcome-message", Expected: "Welcome back", Description: "Assert welcome message"},
}

func TestSymbol(t *testing.T) {
	assert.Equal(t, "⌨", Symbol(domain.GlyphKeyboard))
	assert.Equal(t, " ", Symbol("unknown"))
}

func TestWriteSteps(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, NewTextWriter(buf).WriteSteps(textSteps))

	out := buf.String()
	assert.Contains(t, out, "Navigate to URL")
	assert.Contains(t, out, "#username")
	assert.Contains(t, out, `"testuser"`)
	assert.Contains(t, out, `expect "Welcome back"`)
}

func TestWriteStepLine(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, NewTextWriter(buf).WriteStep(textSteps[1]))
	assert.Contains(t, buf.String(), `input #username "testuser"`)
}

func TestWriteProjects(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, NewTextWriter(buf).WriteProjects([]domain.Project{
		{ID: 1, Name: "E-Commerce Platform", TestCount: 24, PassRate: 92, LastRun: "2 hours ago", Status: domain.ProjectStable},
	}))

	out := buf.String()
	assert.Contains(t, out, "E-Commerce Platform")
	assert.Contains(t, out, "92%")
	assert.Contains(t, out, "stable")
}

func TestWriteFlow(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, NewTextWriter(buf).WriteFlow(flow.Project(textSteps)))

	out := buf.String()
	assert.Contains(t, out, "[1] ↗ Navigate to URL")
	assert.Contains(t, out, "▼")
	assert.Contains(t, out, "[6] ◉ Assert welcome message")

	buf.Reset()
	require.NoError(t, NewTextWriter(buf).WriteFlow(flow.Project(nil)))
	assert.Equal(t, "(no steps)\n", buf.String())
}

func TestTextNotice(t *testing.T) {
	buf := &bytes.Buffer{}
	NewTextWriter(buf).Notify(domain.Success("Recording completed"))
	assert.Equal(t, "[success] Recording completed\n", buf.String())
}
