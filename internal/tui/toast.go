package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/testspark/testspark/internal/domain"
)

// toastTTL matches how long a notice stays on screen
const toastTTL = 5 * time.Second

// maxToasts caps the visible stack; the oldest toast drops first
const maxToasts = 3

// Toasts is a notification sink that feeds notices into the UI loop.
// Notices that arrive while the buffer is full are dropped.
type Toasts struct {
	ch chan domain.Notice
}

// NewToasts creates a sink with room for a burst of notices
func NewToasts() *Toasts {
	return &Toasts{ch: make(chan domain.Notice, 32)}
}

// Notify implements notify.Sink
func (t *Toasts) Notify(n domain.Notice) {
	select {
	case t.ch <- n:
	default:
	}
}

type toast struct {
	id     int
	notice domain.Notice
}

type noticeMsg struct {
	notice domain.Notice
}

type toastExpiredMsg struct {
	id int
}

func waitForNotice(t *Toasts) tea.Cmd {
	return func() tea.Msg {
		return noticeMsg{notice: <-t.ch}
	}
}

func expireToast(id int) tea.Cmd {
	return tea.Tick(toastTTL, func(time.Time) tea.Msg {
		return toastExpiredMsg{id: id}
	})
}
