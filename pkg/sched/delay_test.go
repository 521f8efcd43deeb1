package sched

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func minuteOf(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

func TestNextDelayStrictlyPositive(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	now := time.Date(2024, time.June, 15, 12, 0, 0, 0, time.Local)

	for i := 0; i < 500; i++ {
		d := NextDelay(540, 1260, now, rng)
		assert.Greater(t, d, time.Duration(0))
	}
}

func TestNextDelayLandsInsideWindowToday(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	// Well before the window opens
	now := time.Date(2024, time.June, 15, 6, 0, 0, 0, time.Local)

	for i := 0; i < 200; i++ {
		fire := now.Add(NextDelay(540, 1260, now, rng))
		assert.Equal(t, now.Day(), fire.Day(), "fire time should stay today")
		m := minuteOf(fire)
		assert.GreaterOrEqual(t, m, 540)
		assert.LessOrEqual(t, m, 1260)
	}
}

func TestNextDelayRollsToTomorrow(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	// After the window has closed
	now := time.Date(2024, time.June, 15, 22, 30, 0, 0, time.Local)

	for i := 0; i < 200; i++ {
		fire := now.Add(NextDelay(540, 1260, now, rng))
		assert.Equal(t, 16, fire.Day())
		m := minuteOf(fire)
		assert.GreaterOrEqual(t, m, 540)
		assert.LessOrEqual(t, m, 1260)
	}
}

func TestNextDelayDegenerateWindow(t *testing.T) {
	now := time.Date(2024, time.June, 15, 6, 0, 0, 0, time.Local)

	// An empty or inverted window behaves as [start, start+60]
	a := rand.New(rand.NewSource(7))
	b := rand.New(rand.NewSource(7))
	assert.Equal(t, NextDelay(600, 600, now, a), NextDelay(600, 660, now, b))

	c := rand.New(rand.NewSource(7))
	d := rand.New(rand.NewSource(7))
	assert.Equal(t, NextDelay(600, 300, now, c), NextDelay(600, 660, now, d))
}

func TestNextDelayDegenerateWindowAtEndOfDay(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	now := time.Date(2024, time.June, 15, 6, 0, 0, 0, time.Local)

	// start+60 would overflow the day, so the end caps at the last minute
	for i := 0; i < 100; i++ {
		fire := now.Add(NextDelay(1430, 1430, now, rng))
		m := minuteOf(fire)
		assert.GreaterOrEqual(t, m, 1430)
		assert.LessOrEqual(t, m, 1439)
	}
}

func TestNextDelayClampsOutOfRangeBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	now := time.Date(2024, time.June, 15, 0, 0, 30, 0, time.Local)

	for i := 0; i < 200; i++ {
		fire := now.Add(NextDelay(-100, 5000, now, rng))
		m := minuteOf(fire)
		assert.GreaterOrEqual(t, m, 0)
		assert.LessOrEqual(t, m, 1439)
	}
}
