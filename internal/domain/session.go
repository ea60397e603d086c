package domain

import "time"

// SessionState is the recorder lifecycle state
type SessionState string

const (
	StateIdle      SessionState = "idle"
	StateRecording SessionState = "recording"
	StateReviewing SessionState = "reviewing"
)

// View selects which recorder pane is active
type View string

const (
	ViewRecorder View = "recorder"
	ViewSteps    View = "steps"
)

// Session is a point-in-time copy of a recording session
type Session struct {
	ID          string       `json:"id,omitempty"` // Assigned on each start
	URL         string       `json:"url"`
	Name        string       `json:"name"`
	State       SessionState `json:"state"`
	ActiveView  View         `json:"active_view"`
	Steps       []Step       `json:"steps"`
	Emitted     int          `json:"emitted"`   // Scripted ticks consumed
	Remaining   int          `json:"remaining"` // Scripted ticks left
	StartedAt   time.Time    `json:"started_at,omitzero"`
	CompletedAt time.Time    `json:"completed_at,omitzero"`
}

// IsRecording reports whether steps may still be appended
func (s Session) IsRecording() bool {
	return s.State == StateRecording
}

// LastStep returns the most recently recorded step
func (s Session) LastStep() (Step, bool) {
	if len(s.Steps) == 0 {
		return Step{}, false
	}
	return s.Steps[len(s.Steps)-1], true
}

// SessionEvent is emitted on recorder lifecycle transitions
type SessionEvent struct {
	Type          string       `json:"type"`          // "session"
	SchemaVersion int          `json:"schemaVersion"` // 1
	Session       string       `json:"session"`       // Session id
	Name          string       `json:"name"`
	URL           string       `json:"url"`
	State         SessionState `json:"state"`
	StepCount     int          `json:"step_count"`
	Timestamp     string       `json:"timestamp"` // ISO8601 timestamp
}

// NewSessionEvent creates a SessionEvent from a snapshot
func NewSessionEvent(s Session) *SessionEvent {
	return &SessionEvent{
		Type:          "session",
		SchemaVersion: 1,
		Session:       s.ID,
		Name:          s.Name,
		URL:           s.URL,
		State:         s.State,
		StepCount:     len(s.Steps),
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
	}
}
