package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testspark/testspark/internal/domain"
	"github.com/testspark/testspark/internal/flow"
	"github.com/testspark/testspark/internal/recorder"
)

const testInterval = time.Second

type fixture struct {
	rec    *recorder.Recorder
	clock  *clock.Mock
	toasts *Toasts
}

func newFixture(t *testing.T) (*fixture, Model) {
	t.Helper()
	f := &fixture{clock: clock.NewMock(), toasts: NewToasts()}
	f.rec = recorder.New(recorder.Options{
		Interval: testInterval,
		Clock:    f.clock,
		Notifier: f.toasts,
	})
	t.Cleanup(f.rec.Close)
	return f, New(f.rec, f.toasts)
}

func send(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m
}

func typed(s string) tea.Msg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func keyMsg(t tea.KeyType) tea.Msg {
	return tea.KeyMsg{Type: t}
}

// record fills the form, starts recording and waits for n scripted steps
func (f *fixture) record(t *testing.T, m Model, n int) Model {
	t.Helper()
	m = send(t, m, typed("Login Flow"), keyMsg(tea.KeyDown), typed("https://shop.test"), keyMsg(tea.KeyEnter))
	require.True(t, f.rec.Snapshot().IsRecording())
	for i := 1; i <= n; i++ {
		f.clock.Add(testInterval)
		require.Eventually(t, func() bool {
			return len(f.rec.Snapshot().Steps) == i
		}, time.Second, time.Millisecond)
	}
	return send(t, m, changedMsg{})
}

// drain feeds every queued notice into the model
func (f *fixture) drain(t *testing.T, m Model) Model {
	t.Helper()
	for {
		select {
		case n := <-f.toasts.ch:
			m = send(t, m, noticeMsg{notice: n})
		default:
			return m
		}
	}
}

func TestTypingEditsSession(t *testing.T) {
	f, m := newFixture(t)

	m = send(t, m, typed("Login Flow"), keyMsg(tea.KeyDown), typed("https://shop.test"))

	s := f.rec.Snapshot()
	assert.Equal(t, "Login Flow", s.Name)
	assert.Equal(t, "https://shop.test", s.URL)
	assert.Equal(t, fieldURL, m.focus)
}

func TestStartWithoutURLShowsError(t *testing.T) {
	f, m := newFixture(t)

	m = send(t, m, typed("Login Flow"), keyMsg(tea.KeyEnter))
	m = f.drain(t, m)

	assert.False(t, f.rec.Snapshot().IsRecording())
	require.Len(t, m.active, 1)
	assert.Equal(t, domain.Error("Please enter a URL to record"), m.active[0].notice)
	assert.Contains(t, m.View(), "Please enter a URL to record")
}

func TestRecordingStatus(t *testing.T) {
	f, m := newFixture(t)

	m = send(t, m, typed("Login Flow"), keyMsg(tea.KeyDown), typed("https://shop.test"), keyMsg(tea.KeyEnter))
	view := m.View()
	assert.Contains(t, view, "Waiting for browser interactions...")
	assert.Contains(t, view, "Recording https://shop.test")
	assert.Contains(t, view, "Stop Recording")
	assert.True(t, f.rec.Snapshot().IsRecording())
}

func TestLatestStepShown(t *testing.T) {
	f, m := newFixture(t)
	m = f.record(t, m, 2)

	view := m.View()
	assert.Contains(t, view, "2 steps recorded")
	assert.Contains(t, view, "Latest: ")
	assert.Contains(t, view, "Click on Login button")
}

func TestInputsLockedWhileRecording(t *testing.T) {
	f, m := newFixture(t)
	m = f.record(t, m, 1)

	m = send(t, m, typed("xyz"))
	assert.Equal(t, "https://shop.test", f.rec.Snapshot().URL)
	assert.Equal(t, "https://shop.test", m.urlInput.Value())
}

func TestStopSwitchesToSteps(t *testing.T) {
	f, m := newFixture(t)
	m = f.record(t, m, 3)

	m = send(t, m, keyMsg(tea.KeyEnter))
	m = f.drain(t, m)

	s := f.rec.Snapshot()
	assert.Equal(t, domain.StateReviewing, s.State)
	assert.Equal(t, domain.ViewSteps, m.session.ActiveView)
	assert.Contains(t, m.View(), "Enter username")
	assert.Contains(t, m.View(), "Recording completed")
}

func TestSwitchTabNeedsSteps(t *testing.T) {
	f, m := newFixture(t)

	m = send(t, m, keyMsg(tea.KeyTab))

	assert.Equal(t, domain.ViewRecorder, f.rec.Snapshot().ActiveView)
	require.Len(t, m.active, 1)
	assert.Equal(t, domain.SeverityInfo, m.active[0].notice.Severity)
}

func TestDeleteSelectedStep(t *testing.T) {
	f, m := newFixture(t)
	m = f.record(t, m, 3)
	m = send(t, m, keyMsg(tea.KeyEnter))

	m = send(t, m, typed("j"), typed("d"))

	steps := f.rec.Snapshot().Steps
	require.Len(t, steps, 2)
	assert.Equal(t, 1, steps[0].ID)
	assert.Equal(t, 3, steps[1].ID)
	assert.Equal(t, 1, m.cursor)

	// Cursor clamps when the last entry goes away
	m = send(t, m, typed("d"))
	assert.Len(t, f.rec.Snapshot().Steps, 1)
	assert.Equal(t, 0, m.cursor)
}

func TestEnterInStepsPaneDoesNotRestart(t *testing.T) {
	f, m := newFixture(t)
	m = f.record(t, m, 2)
	m = send(t, m, keyMsg(tea.KeyEnter))

	send(t, m, keyMsg(tea.KeyEnter))

	s := f.rec.Snapshot()
	assert.Equal(t, domain.StateReviewing, s.State)
	assert.Len(t, s.Steps, 2)
}

func TestSaveResetsForm(t *testing.T) {
	f, m := newFixture(t)
	m = f.record(t, m, 1)
	m = send(t, m, keyMsg(tea.KeyEnter))

	m = send(t, m, typed("s"))
	m = f.drain(t, m)

	s := f.rec.Snapshot()
	assert.Equal(t, domain.StateIdle, s.State)
	assert.Equal(t, domain.ViewRecorder, m.session.ActiveView)
	assert.Empty(t, m.nameInput.Value())
	assert.Empty(t, m.urlInput.Value())
	assert.True(t, m.nameInput.Focused())
	assert.Contains(t, m.View(), `Recording "Login Flow" saved successfully`)
}

func TestFlowToggle(t *testing.T) {
	f, m := newFixture(t)
	m = f.record(t, m, 3)
	m = send(t, m, keyMsg(tea.KeyEnter))

	m = send(t, m, typed("f"))

	assert.True(t, m.flowMode)
	view := m.View()
	assert.Contains(t, view, "▼")
	assert.Contains(t, view, "Navigate to URL")
}

func TestToastExpiry(t *testing.T) {
	_, m := newFixture(t)

	m = send(t, m, noticeMsg{notice: domain.Info("one")}, noticeMsg{notice: domain.Info("two")})
	require.Len(t, m.active, 2)

	m = send(t, m, toastExpiredMsg{id: m.active[0].id})
	require.Len(t, m.active, 1)
	assert.Equal(t, "two", m.active[0].notice.Message)
}

func TestToastStackIsCapped(t *testing.T) {
	_, m := newFixture(t)

	for _, msg := range []string{"a", "b", "c", "d"} {
		m = send(t, m, noticeMsg{notice: domain.Info(msg)})
	}

	require.Len(t, m.active, maxToasts)
	assert.Equal(t, "b", m.active[0].notice.Message)
}

func TestToastsDropWhenFull(t *testing.T) {
	toasts := NewToasts()
	for range cap(toasts.ch) + 5 {
		toasts.Notify(domain.Info("x"))
	}
	assert.Len(t, toasts.ch, cap(toasts.ch))
}

func TestRenderFlow(t *testing.T) {
	assert.Empty(t, renderFlow(flow.Project(nil)))

	steps := recorder.LoginScript("https://shop.test")
	for i := range steps {
		steps[i].ID = i + 1
	}
	out := renderFlow(flow.Project(steps))
	assert.Contains(t, out, "Navigate to URL")
	assert.Contains(t, out, "Assert welcome message")
	assert.Equal(t, 5, strings.Count(out, "▼"))
	assert.Less(t, strings.Index(out, "Navigate to URL"), strings.Index(out, "Assert welcome message"))
}
