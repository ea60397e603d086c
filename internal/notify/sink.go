// Package notify delivers user-visible notices to one or more sinks.
package notify

import (
	"sync"

	"github.com/testspark/testspark/internal/domain"
	"go.uber.org/zap"
)

// Sink accepts user-visible notices
type Sink interface {
	Notify(n domain.Notice)
}

// Func adapts a plain function to a Sink
type Func func(n domain.Notice)

func (f Func) Notify(n domain.Notice) { f(n) }

// Discard drops every notice
var Discard Sink = Func(func(domain.Notice) {})

// Multi fans a notice out to every non-nil sink in order
func Multi(sinks ...Sink) Sink {
	var live []Sink
	for _, s := range sinks {
		if s != nil {
			live = append(live, s)
		}
	}
	return Func(func(n domain.Notice) {
		for _, s := range live {
			s.Notify(n)
		}
	})
}

// Memory keeps every notice it receives
type Memory struct {
	mu      sync.Mutex
	notices []domain.Notice
}

func (m *Memory) Notify(n domain.Notice) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notices = append(m.notices, n)
}

// Notices returns a copy of the received notices
func (m *Memory) Notices() []domain.Notice {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Notice, len(m.notices))
	copy(out, m.notices)
	return out
}

// Logger mirrors notices into zap: errors at warn level, the rest at info.
func Logger(l *zap.Logger) Sink {
	if l == nil {
		return Discard
	}
	return Func(func(n domain.Notice) {
		if n.Severity == domain.SeverityError {
			l.Warn(n.Message, zap.String("severity", string(n.Severity)))
			return
		}
		l.Info(n.Message, zap.String("severity", string(n.Severity)))
	})
}
