// Package output writes recorder events as NDJSON or human-readable text.
package output

import (
	"encoding/json"
	"io"
	"sync"
	"time"

	"github.com/testspark/testspark/internal/domain"
	"github.com/testspark/testspark/internal/flow"
)

// SchemaVersion is stamped on every NDJSON line
const SchemaVersion = 1

// NDJSONWriter writes one JSON object per line
type NDJSONWriter struct {
	mu      sync.Mutex
	encoder *json.Encoder
}

// NewNDJSONWriter creates a writer over w
func NewNDJSONWriter(w io.Writer) *NDJSONWriter {
	return &NDJSONWriter{encoder: json.NewEncoder(w)}
}

func (w *NDJSONWriter) write(v any) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.encoder.Encode(v)
}

// StepOutput is a recorded step line
type StepOutput struct {
	Type          string          `json:"type"` // "step"
	SchemaVersion int             `json:"schemaVersion"`
	Session       string          `json:"session,omitempty"`
	ID            int             `json:"id"`
	StepType      domain.StepType `json:"step_type"`
	Target        string          `json:"target,omitempty"`
	Value         string          `json:"value,omitempty"`
	Expected      string          `json:"expected,omitempty"`
	Description   string          `json:"description"`
	Glyph         string          `json:"glyph,omitempty"`
}

// NoticeOutput is a user-visible notice line
type NoticeOutput struct {
	Type          string          `json:"type"` // "notice"
	SchemaVersion int             `json:"schemaVersion"`
	Severity      domain.Severity `json:"severity"`
	Message       string          `json:"message"`
	Timestamp     string          `json:"timestamp"`
}

// FlowOutput is a projected flow diagram line
type FlowOutput struct {
	Type          string      `json:"type"` // "flow"
	SchemaVersion int         `json:"schemaVersion"`
	Session       string      `json:"session,omitempty"`
	Nodes         []flow.Node `json:"nodes"`
	Edges         []flow.Edge `json:"edges"`
}

// ProjectOutput is a dashboard project line
type ProjectOutput struct {
	Type          string `json:"type"` // "project"
	SchemaVersion int    `json:"schemaVersion"`
	domain.Project
}

// GeneratedTestOutput carries a derived test script
type GeneratedTestOutput struct {
	Type          string `json:"type"` // "generated_test"
	SchemaVersion int    `json:"schemaVersion"`
	Session       string `json:"session,omitempty"`
	Framework     string `json:"framework"`
	Source        string `json:"source"`
}

// ErrorOutput is a machine-readable failure
type ErrorOutput struct {
	Type          string `json:"type"` // "error"
	SchemaVersion int    `json:"schemaVersion"`
	Code          string `json:"code"`
	Message       string `json:"message"`
	Hint          string `json:"hint,omitempty"`
}

// WriteStep writes a recorded step
func (w *NDJSONWriter) WriteStep(session string, step domain.Step) error {
	return w.write(&StepOutput{
		Type:          "step",
		SchemaVersion: SchemaVersion,
		Session:       session,
		ID:            step.ID,
		StepType:      step.Type,
		Target:        step.Target,
		Value:         step.Value,
		Expected:      step.Expected,
		Description:   step.Description,
		Glyph:         step.Type.Glyph(),
	})
}

// WriteNotice writes a user-visible notice
func (w *NDJSONWriter) WriteNotice(n domain.Notice) error {
	return w.write(&NoticeOutput{
		Type:          "notice",
		SchemaVersion: SchemaVersion,
		Severity:      n.Severity,
		Message:       n.Message,
		Timestamp:     time.Now().UTC().Format(time.RFC3339Nano),
	})
}

// Notify lets the writer act as a notification sink
func (w *NDJSONWriter) Notify(n domain.Notice) {
	_ = w.WriteNotice(n)
}

// WriteSession writes a session lifecycle event
func (w *NDJSONWriter) WriteSession(s domain.Session) error {
	return w.write(domain.NewSessionEvent(s))
}

// WriteFlow writes a projected flow graph
func (w *NDJSONWriter) WriteFlow(session string, g flow.Graph) error {
	return w.write(&FlowOutput{
		Type:          "flow",
		SchemaVersion: SchemaVersion,
		Session:       session,
		Nodes:         g.Nodes,
		Edges:         g.Edges,
	})
}

// WriteProject writes a dashboard project
func (w *NDJSONWriter) WriteProject(p domain.Project) error {
	return w.write(&ProjectOutput{Type: "project", SchemaVersion: SchemaVersion, Project: p})
}

// WriteGeneratedTest writes a derived test script
func (w *NDJSONWriter) WriteGeneratedTest(session, framework, source string) error {
	return w.write(&GeneratedTestOutput{
		Type:          "generated_test",
		SchemaVersion: SchemaVersion,
		Session:       session,
		Framework:     framework,
		Source:        source,
	})
}

// WriteError writes an error with an optional hint
func (w *NDJSONWriter) WriteError(code, message string, hint ...string) error {
	out := &ErrorOutput{
		Type:          "error",
		SchemaVersion: SchemaVersion,
		Code:          code,
		Message:       message,
	}
	if len(hint) > 0 {
		out.Hint = hint[0]
	}
	return w.write(out)
}
