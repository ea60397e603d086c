package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/testspark/testspark/internal/domain"
	"github.com/testspark/testspark/internal/recorder"
)

// signalContext returns a context cancelled on SIGINT or SIGTERM
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case <-sigCh:
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigCh)
	}()
	return ctx, cancel
}

// parseInterval accepts any positive Go duration
func parseInterval(s string) (time.Duration, error) {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid interval: %q", s)
	}
	return d, nil
}

// recordingClock picks the clock for a headless recording. Instant runs use
// a mock that drive advances itself.
func recordingClock(instant bool) (clock.Clock, *clock.Mock) {
	if instant {
		m := clock.NewMock()
		return m, m
	}
	return clock.New(), nil
}

// drive follows a started recording, calling onStep once per new step in
// order. It returns after limit steps (0 for no limit), once the script is
// exhausted or the recording stops, or when ctx ends. With a mock clock it
// advances time by interval whenever it would otherwise wait.
func drive(ctx context.Context, rec *recorder.Recorder, mock *clock.Mock, interval time.Duration, limit int, onStep func(domain.Step) error) (int, error) {
	seen := 0
	for {
		s := rec.Snapshot()
		for _, step := range s.Steps[min(seen, len(s.Steps)):] {
			if limit > 0 && seen >= limit {
				break
			}
			if err := onStep(step); err != nil {
				return seen, err
			}
			seen++
		}
		if !s.IsRecording() || s.Remaining == 0 || (limit > 0 && seen >= limit) {
			return seen, nil
		}

		if mock != nil {
			mock.Add(interval)
		}
		select {
		case <-ctx.Done():
			return seen, ctx.Err()
		case <-rec.Changes():
		}
	}
}
