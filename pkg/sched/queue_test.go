package sched

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnqueueUniqueFires(t *testing.T) {
	q := NewTimerQueue()
	defer q.Stop()

	fired := make(chan struct{})
	q.EnqueueUnique("job", 10*time.Millisecond, func() { close(fired) })
	assert.True(t, q.Pending("job"))

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("job never fired")
	}
	assert.False(t, q.Pending("job"))
}

func TestEnqueueUniqueReplaces(t *testing.T) {
	q := NewTimerQueue()
	defer q.Stop()

	fired := make(chan string, 2)
	q.EnqueueUnique("job", time.Hour, func() { fired <- "first" })
	q.EnqueueUnique("job", 10*time.Millisecond, func() { fired <- "second" })

	select {
	case got := <-fired:
		assert.Equal(t, "second", got)
	case <-time.After(2 * time.Second):
		t.Fatal("replacement job never fired")
	}

	// The superseded job must stay dead
	select {
	case got := <-fired:
		t.Fatalf("superseded job fired: %s", got)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestSeparateNamesCoexist(t *testing.T) {
	q := NewTimerQueue()
	defer q.Stop()

	fired := make(chan string, 2)
	q.EnqueueUnique("a", 10*time.Millisecond, func() { fired <- "a" })
	q.EnqueueUnique("b", 10*time.Millisecond, func() { fired <- "b" })

	got := map[string]bool{}
	for i := 0; i < 2; i++ {
		select {
		case name := <-fired:
			got[name] = true
		case <-time.After(2 * time.Second):
			t.Fatal("jobs under distinct names did not both fire")
		}
	}
	assert.True(t, got["a"])
	assert.True(t, got["b"])
}

func TestCancel(t *testing.T) {
	q := NewTimerQueue()
	defer q.Stop()

	q.EnqueueUnique("job", 20*time.Millisecond, func() {
		t.Error("cancelled job fired")
	})
	require.True(t, q.Cancel("job"))
	assert.False(t, q.Pending("job"))
	assert.False(t, q.Cancel("job"))

	time.Sleep(100 * time.Millisecond)
}

func TestStop(t *testing.T) {
	q := NewTimerQueue()

	q.EnqueueUnique("a", 20*time.Millisecond, func() { t.Error("a fired after Stop") })
	q.EnqueueUnique("b", 20*time.Millisecond, func() { t.Error("b fired after Stop") })
	q.Stop()

	assert.False(t, q.Pending("a"))
	assert.False(t, q.Pending("b"))
	time.Sleep(100 * time.Millisecond)
}
