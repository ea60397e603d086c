// Package recorder holds the step recording state machine.
//
// A Recorder moves through idle, recording and reviewing. While recording, a
// scheduled task appends one scripted step per tick until the script runs
// out. Stop, Save and Start bump a generation counter under the lock, and
// every tick re-checks it, so no step can land after one of them returns.
package recorder

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/testspark/testspark/internal/domain"
	"github.com/testspark/testspark/internal/notify"
	"github.com/testspark/testspark/internal/schedule"
	"go.uber.org/zap"
)

// DefaultInterval is the pause between scripted steps
const DefaultInterval = 1500 * time.Millisecond

// Generator derives a test case from a recorded session
type Generator interface {
	Generate(ctx context.Context, session domain.Session) error
}

// Options configures a Recorder. Zero values pick the defaults.
type Options struct {
	Interval  time.Duration
	AutoStop  bool // Stop automatically once the script is exhausted
	Clock     clock.Clock
	Notifier  notify.Sink
	Logger    *zap.Logger
	Generator Generator
	Script    Script
}

// Recorder owns one recording session
type Recorder struct {
	interval  time.Duration
	autoStop  bool
	clock     clock.Clock
	notifier  notify.Sink
	log       *zap.Logger
	generator Generator
	script    Script

	mu      sync.Mutex
	session domain.Session
	pending []domain.Step // Script templates not yet emitted
	nextID  int
	gen     uint64
	task    *schedule.Task
	halted  chan struct{} // Closed when emission ends for the current session

	changes chan struct{}
}

// New creates an idle Recorder
func New(opts Options) *Recorder {
	r := &Recorder{
		interval:  opts.Interval,
		autoStop:  opts.AutoStop,
		clock:     opts.Clock,
		notifier:  opts.Notifier,
		log:       opts.Logger,
		generator: opts.Generator,
		script:    opts.Script,
		changes:   make(chan struct{}, 1),
	}
	if r.interval <= 0 {
		r.interval = DefaultInterval
	}
	if r.clock == nil {
		r.clock = clock.New()
	}
	if r.notifier == nil {
		r.notifier = notify.Discard
	}
	if r.log == nil {
		r.log = zap.NewNop()
	}
	if r.script == nil {
		r.script = LoginScript
	}
	r.session = emptySession()
	return r
}

func emptySession() domain.Session {
	return domain.Session{
		State:      domain.StateIdle,
		ActiveView: domain.ViewRecorder,
		Steps:      []domain.Step{},
	}
}

// Snapshot returns a copy of the current session
func (r *Recorder) Snapshot() domain.Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshotLocked()
}

func (r *Recorder) snapshotLocked() domain.Session {
	s := r.session
	s.Steps = make([]domain.Step, len(r.session.Steps))
	copy(s.Steps, r.session.Steps)
	return s
}

// Changes fires after every mutation. Signals coalesce; readers should call
// Snapshot after receiving one.
func (r *Recorder) Changes() <-chan struct{} {
	return r.changes
}

// SetURL sets the target site of the next recording
func (r *Recorder) SetURL(url string) error {
	return r.setField("url", func(s *domain.Session) { s.URL = url })
}

// SetName sets the name of the next recording
func (r *Recorder) SetName(name string) error {
	return r.setField("name", func(s *domain.Session) { s.Name = name })
}

func (r *Recorder) setField(field string, apply func(*domain.Session)) error {
	r.mu.Lock()
	if r.session.State == domain.StateRecording {
		r.mu.Unlock()
		return fmt.Errorf("set %s: %w", field, ErrSessionLocked)
	}
	apply(&r.session)
	r.mu.Unlock()
	r.signal()
	return nil
}

// SetView switches the active pane. The steps pane needs recorded steps or a
// finished recording.
func (r *Recorder) SetView(v domain.View) error {
	r.mu.Lock()
	switch v {
	case domain.ViewRecorder:
	case domain.ViewSteps:
		if len(r.session.Steps) == 0 && r.session.State != domain.StateReviewing {
			r.mu.Unlock()
			return fmt.Errorf("set view %s: no steps recorded: %w", v, ErrInvalidTransition)
		}
	default:
		r.mu.Unlock()
		return fmt.Errorf("set view %q: unknown view: %w", v, ErrInvalidTransition)
	}
	r.session.ActiveView = v
	r.mu.Unlock()
	r.signal()
	return nil
}

// Start validates the session and begins scripted step emission
func (r *Recorder) Start() error {
	r.mu.Lock()
	if r.session.State == domain.StateRecording {
		r.mu.Unlock()
		return fmt.Errorf("start: already recording: %w", ErrInvalidTransition)
	}
	if err := r.validateStartLocked(); err != nil {
		r.mu.Unlock()
		r.notify(domain.Error(err.Message))
		return err
	}

	r.gen++
	gen := r.gen
	r.closeHaltedLocked()

	r.session.ID = uuid.NewString()
	r.session.State = domain.StateRecording
	r.session.ActiveView = domain.ViewRecorder
	r.session.Steps = []domain.Step{}
	r.session.Emitted = 0
	r.session.StartedAt = r.clock.Now()
	r.session.CompletedAt = time.Time{}
	r.pending = r.script(r.session.URL)
	r.session.Remaining = len(r.pending)
	r.nextID = 1
	r.halted = make(chan struct{})

	if len(r.pending) == 0 {
		r.closeHaltedLocked()
	} else {
		r.task = schedule.Every(r.clock, r.interval, func() bool { return r.tick(gen) })
	}

	r.log.Debug("recording started",
		zap.String("session_id", r.session.ID),
		zap.String("url", r.session.URL),
		zap.Int("scripted", r.session.Remaining),
		zap.Duration("interval", r.interval))
	r.mu.Unlock()

	r.signal()
	r.notify(domain.Info("Recording started"))
	return nil
}

func (r *Recorder) validateStartLocked() *ValidationError {
	if strings.TrimSpace(r.session.URL) == "" {
		return &ValidationError{Field: "url", Message: "Please enter a URL to record"}
	}
	if strings.TrimSpace(r.session.Name) == "" {
		return &ValidationError{Field: "name", Message: "Please enter a name for this recording"}
	}
	return nil
}

// tick appends the next scripted step. It returns false once nothing is left
// to emit for gen.
func (r *Recorder) tick(gen uint64) bool {
	r.mu.Lock()
	if gen != r.gen || r.session.State != domain.StateRecording || len(r.pending) == 0 {
		r.mu.Unlock()
		return false
	}

	step := r.pending[0]
	r.pending = r.pending[1:]
	step.ID = r.nextID
	r.nextID++
	r.session.Steps = append(r.session.Steps, step)
	r.session.Emitted++
	r.session.Remaining = len(r.pending)

	r.log.Debug("step recorded",
		zap.String("session_id", r.session.ID),
		zap.Int("step_id", step.ID),
		zap.String("type", string(step.Type)))

	more := len(r.pending) > 0
	var notices []domain.Notice
	if !more {
		r.closeHaltedLocked()
		r.log.Debug("script exhausted", zap.String("session_id", r.session.ID), zap.Int("steps", len(r.session.Steps)))
		if r.autoStop {
			notices = append(notices, r.stopLocked())
		}
	}
	r.mu.Unlock()

	r.signal()
	for _, n := range notices {
		r.notify(n)
	}
	return more
}

// Stop ends the recording and opens the steps pane for review
func (r *Recorder) Stop() error {
	r.mu.Lock()
	if r.session.State != domain.StateRecording {
		state := r.session.State
		r.mu.Unlock()
		return fmt.Errorf("stop: not recording (state %s): %w", state, ErrInvalidTransition)
	}
	n := r.stopLocked()
	r.mu.Unlock()

	r.signal()
	r.notify(n)
	return nil
}

func (r *Recorder) stopLocked() domain.Notice {
	r.gen++
	r.task.Cancel()
	r.task = nil
	r.pending = nil
	r.closeHaltedLocked()

	r.session.State = domain.StateReviewing
	r.session.ActiveView = domain.ViewSteps
	r.session.Remaining = 0
	r.session.CompletedAt = r.clock.Now()

	r.log.Debug("recording stopped", zap.String("session_id", r.session.ID), zap.Int("steps", len(r.session.Steps)))
	return domain.Success("Recording completed")
}

// DeleteStep removes the step with the given id from a stopped recording.
// It reports false when no step matches.
func (r *Recorder) DeleteStep(id int) (bool, error) {
	r.mu.Lock()
	if r.session.State != domain.StateReviewing {
		state := r.session.State
		r.mu.Unlock()
		return false, fmt.Errorf("delete step %d: steps are not editable (state %s): %w", id, state, ErrInvalidTransition)
	}
	kept := lo.Reject(r.session.Steps, func(s domain.Step, _ int) bool { return s.ID == id })
	if len(kept) == len(r.session.Steps) {
		r.mu.Unlock()
		return false, nil
	}
	r.session.Steps = kept
	r.log.Debug("step removed", zap.String("session_id", r.session.ID), zap.Int("step_id", id))
	r.mu.Unlock()

	r.signal()
	r.notify(domain.Info("Step removed"))
	return true, nil
}

// Save reports the recording as saved and resets to an empty idle session.
// Nothing is persisted.
func (r *Recorder) Save() error {
	r.mu.Lock()
	if len(r.session.Steps) == 0 {
		r.mu.Unlock()
		err := &ValidationError{Field: "steps", Message: "No steps to save"}
		r.notify(domain.Error(err.Message))
		return err
	}
	if r.session.State == domain.StateRecording {
		r.mu.Unlock()
		return fmt.Errorf("save: stop recording first: %w", ErrInvalidTransition)
	}
	name := r.session.Name
	r.log.Debug("recording saved", zap.String("session_id", r.session.ID), zap.Int("steps", len(r.session.Steps)))

	r.gen++
	r.closeHaltedLocked()
	r.pending = nil
	r.session = emptySession()
	r.mu.Unlock()

	r.signal()
	r.notify(domain.Success(fmt.Sprintf(`Recording "%s" saved successfully`, name)))
	return nil
}

// GenerateDerivedTest hands the recorded steps to the configured Generator
func (r *Recorder) GenerateDerivedTest(ctx context.Context) error {
	snap := r.Snapshot()
	if len(snap.Steps) == 0 {
		err := &ValidationError{Field: "steps", Message: "No steps to generate a test from"}
		r.notify(domain.Error(err.Message))
		return err
	}
	if r.generator != nil {
		if err := r.generator.Generate(ctx, snap); err != nil {
			r.notify(domain.Error("Test generation failed"))
			return fmt.Errorf("generate test: %w", err)
		}
	}
	r.log.Debug("derived test generated", zap.String("session_id", snap.ID), zap.Int("steps", len(snap.Steps)))
	r.notify(domain.Success("AI generated test case created"))
	return nil
}

// Wait blocks until scripted emission has ended or ctx is done
func (r *Recorder) Wait(ctx context.Context) error {
	r.mu.Lock()
	halted := r.halted
	r.mu.Unlock()
	if halted == nil {
		return nil
	}
	select {
	case <-halted:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close cancels any scheduled emission without changing the session and
// waits for the emission goroutine to exit.
func (r *Recorder) Close() {
	r.mu.Lock()
	r.gen++
	task := r.task
	task.Cancel()
	r.task = nil
	r.closeHaltedLocked()
	r.mu.Unlock()

	// A tick blocked on the lock sees the new generation and returns
	if task != nil {
		<-task.Done()
	}
}

func (r *Recorder) closeHaltedLocked() {
	if r.halted != nil {
		close(r.halted)
		r.halted = nil
	}
}

func (r *Recorder) signal() {
	select {
	case r.changes <- struct{}{}:
	default:
	}
}

func (r *Recorder) notify(n domain.Notice) {
	r.notifier.Notify(n)
}
