package schedule

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/require"
)

const interval = 1500 * time.Millisecond

func TestEveryTicksUntilFuncHalts(t *testing.T) {
	mock := clock.NewMock()
	var calls atomic.Int32

	task := Every(mock, interval, func() bool {
		return calls.Add(1) < 3
	})

	for i := 1; i <= 3; i++ {
		mock.Add(interval)
		want := int32(i)
		require.Eventually(t, func() bool { return calls.Load() == want }, time.Second, time.Millisecond)
	}

	select {
	case <-task.Done():
	case <-time.After(time.Second):
		t.Fatalf("task did not exit after tick func returned false")
	}

	mock.Add(interval)
	require.Equal(t, int32(3), calls.Load())
}

func TestCancelStopsFurtherTicks(t *testing.T) {
	mock := clock.NewMock()
	var calls atomic.Int32

	task := Every(mock, interval, func() bool {
		calls.Add(1)
		return true
	})

	mock.Add(interval)
	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, time.Millisecond)

	task.Cancel()
	task.Cancel()
	<-task.Done()

	mock.Add(interval)
	mock.Add(interval)
	require.Equal(t, int32(1), calls.Load())
}

func TestCancelNilTask(t *testing.T) {
	var task *Task
	require.NotPanics(t, task.Cancel)
}
