// Package sched implements the randomized recurring reminder: a uniform
// random fire time drawn from a daily minute-of-day window, a unique-name
// one-shot timer queue, and the self-rescheduling check-in worker.
package sched

import (
	"math/rand"
	"time"

	"github.com/arif/checkin/pkg/store"
)

// fallbackWindowMin is the width of the window substituted when the
// configured one is empty or inverted, so the loop never stalls.
const fallbackWindowMin = 60

// NextDelay computes how long to wait until the next reminder. A random
// minute is drawn uniformly from [startMin, endMin] (both inclusive, both
// clamped into the day); if endMin <= startMin the effective end becomes
// min(startMin+60, 1439). A candidate at that minute today that is not in
// the future is pushed to tomorrow, which covers both "window already
// passed" and windows spanning midnight. The result is strictly positive.
func NextDelay(startMin, endMin int, now time.Time, rng *rand.Rand) time.Duration {
	start := clampMinute(startMin)
	end := clampMinute(endMin)
	if end <= start {
		end = clampMinute(start + fallbackWindowMin)
	}

	randomMinute := start + rng.Intn(end-start+1)

	candidate := time.Date(now.Year(), now.Month(), now.Day(),
		randomMinute/60, randomMinute%60, 0, 0, now.Location())
	if !candidate.After(now) {
		candidate = candidate.AddDate(0, 0, 1)
	}

	return candidate.Sub(now)
}

func clampMinute(m int) int {
	if m < 0 {
		return 0
	}
	if m > store.MaxMinuteOfDay {
		return store.MaxMinuteOfDay
	}
	return m
}
