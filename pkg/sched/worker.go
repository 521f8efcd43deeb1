package sched

import (
	"math/rand"
	"time"

	"github.com/arif/checkin/pkg/store"
)

// CheckInWorkName is the unique job name of the recurring check-in. One
// fixed name means the queue's replace semantics guarantee a single pending
// occurrence no matter how often scheduling is re-triggered.
const CheckInWorkName = "daily-checkin"

const (
	checkInTitle = "Daily check-in"
	checkInBody  = "Add a quick note for today."
)

// Worker is the self-perpetuating reminder loop. Each firing delivers the
// check-in notification, reads the current active window from the store so
// edits take effect on the very next cycle, and enqueues the following
// occurrence under CheckInWorkName.
type Worker struct {
	store    *store.Store
	queue    *TimerQueue
	notifier Notifier
	rng      *rand.Rand
	now      func() time.Time
}

// NewWorker wires the loop together. It does not schedule anything until
// Schedule is called.
func NewWorker(s *store.Store, q *TimerQueue, n Notifier) *Worker {
	return &Worker{
		store:    s,
		queue:    q,
		notifier: n,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		now:      time.Now,
	}
}

// Schedule enqueues the next occurrence, replacing any pending one. Calling
// it at startup is safe: a relaunch re-arms the loop without ever creating
// a duplicate timer.
func (w *Worker) Schedule() {
	startMin, endMin, err := w.store.ActiveWindow()
	if err != nil {
		startMin, endMin = store.DefaultWindowStartMin, store.DefaultWindowEndMin
	}
	delay := NextDelay(startMin, endMin, w.now(), w.rng)
	w.queue.EnqueueUnique(CheckInWorkName, delay, w.fire)
}

// fire runs one occurrence: deliver, then immediately re-arm. Delivery
// problems (notifications disabled, helper missing) never break the chain,
// so a revoked permission self-heals once re-granted.
func (w *Worker) fire() {
	w.notifier.Deliver(checkInTitle, checkInBody)
	w.Schedule()
}

// NotifyNow sends a one-off check-in notification for the given goal,
// bypassing the schedule. Used by the "test notification" action.
func (w *Worker) NotifyNow(g store.Goal) {
	w.notifier.Deliver(checkInTitle, g.Title)
}
