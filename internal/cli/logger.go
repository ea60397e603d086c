package cli

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// agentLogger wraps zap for verbose debug with recording context
type agentLogger struct {
	base      *zap.Logger
	sugared   *zap.SugaredLogger
	sessionFn func() string
}

func newAgentLogger(globals *Globals, sessionFn func() string) *agentLogger {
	if globals == nil || !globals.Verbose {
		return &agentLogger{base: zap.NewNop()}
	}
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "timestamp"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder

	sink := zapcore.AddSync(os.Stderr)
	if globals.Stderr != nil {
		sink = zapcore.AddSync(globals.Stderr)
	}
	core := zapcore.NewCore(zapcore.NewJSONEncoder(cfg), sink, zap.DebugLevel)
	logger := zap.New(core).Named("testspark")
	return &agentLogger{
		base:      logger,
		sugared:   logger.Sugar(),
		sessionFn: sessionFn,
	}
}

// withSession returns a logger that stamps every line with the current
// recording session id
func (l *agentLogger) withSession(sessionFn func() string) *agentLogger {
	return &agentLogger{base: l.base, sugared: l.sugared, sessionFn: sessionFn}
}

func (l *agentLogger) Zap() *zap.Logger {
	return l.base
}

func (l *agentLogger) Debug(format string, args ...interface{}) {
	if l.sugared == nil {
		return
	}
	session := ""
	if l.sessionFn != nil {
		session = l.sessionFn()
	}
	l.sugared.With("session_id", session).Debugf(format, args...)
}
