package sched

import (
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arif/checkin/pkg/store"
)

type fakeNotifier struct {
	mu        sync.Mutex
	delivered []string
}

func (f *fakeNotifier) Deliver(title, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.delivered = append(f.delivered, title+": "+body)
}

func (f *fakeNotifier) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.delivered)
}

func setupWorker(t *testing.T) (*Worker, *fakeNotifier, *TimerQueue) {
	t.Helper()
	s, err := store.NewStore(filepath.Join(t.TempDir(), store.DocumentName))
	require.NoError(t, err)
	q := NewTimerQueue()
	t.Cleanup(q.Stop)
	n := &fakeNotifier{}
	return NewWorker(s, q, n), n, q
}

func TestScheduleEnqueuesSingleOccurrence(t *testing.T) {
	w, n, q := setupWorker(t)

	w.Schedule()
	assert.True(t, q.Pending(CheckInWorkName))

	// Re-scheduling replaces, it never stacks
	w.Schedule()
	w.Schedule()
	assert.True(t, q.Pending(CheckInWorkName))
	assert.Equal(t, 0, n.count())
}

func TestFireDeliversAndReArms(t *testing.T) {
	w, n, q := setupWorker(t)

	w.fire()

	assert.Equal(t, 1, n.count())
	assert.True(t, q.Pending(CheckInWorkName), "firing must enqueue the next occurrence")

	// A second firing keeps the chain going
	w.fire()
	assert.Equal(t, 2, n.count())
	assert.True(t, q.Pending(CheckInWorkName))
}

func TestScheduleDelayRespectsStoredWindow(t *testing.T) {
	s, err := store.NewStore(filepath.Join(t.TempDir(), store.DocumentName))
	require.NoError(t, err)
	require.NoError(t, s.SetActiveWindow(600, 660))

	q := NewTimerQueue()
	t.Cleanup(q.Stop)
	w := NewWorker(s, q, &fakeNotifier{})

	// Pin the clock before the window so the draw lands today
	now := time.Date(2024, time.June, 15, 6, 0, 0, 0, time.Local)
	w.now = func() time.Time { return now }

	w.Schedule()
	require.True(t, q.Pending(CheckInWorkName))

	startMin, endMin, err := s.ActiveWindow()
	require.NoError(t, err)
	assert.Equal(t, 600, startMin)
	assert.Equal(t, 660, endMin)
}

func TestNotifyNow(t *testing.T) {
	w, n, q := setupWorker(t)

	w.NotifyNow(store.Goal{Title: "Run a 5k"})

	assert.Equal(t, 1, n.count())
	n.mu.Lock()
	assert.Contains(t, n.delivered[0], "Run a 5k")
	n.mu.Unlock()
	// A one-off notification never touches the schedule
	assert.False(t, q.Pending(CheckInWorkName))
}
