package scheduler

import (
	"slices"

	"github.com/kihana2077/countdown/internal/model"
)

// Tracker decides which reminder thresholds are eligible to fire for a
// record at its current days-left value. The firing policy lives here so
// it can change without touching the scan loop.
type Tracker interface {
	Eligible(cd *model.Countdown, daysLeft int) []int
}

// ExactTracker fires a threshold only when days-left equals it exactly.
// A scan skipped over the exact day (scheduler downtime) permanently
// misses that threshold; use CatchUpTracker to close that gap.
type ExactTracker struct {
	thresholds []int
}

// NewExactTracker creates an exact-match tracker for the given thresholds.
func NewExactTracker(thresholds []int) *ExactTracker {
	return &ExactTracker{thresholds: normalize(thresholds)}
}

// Eligible returns the thresholds matching days-left exactly that have
// not fired yet.
func (t *ExactTracker) Eligible(cd *model.Countdown, daysLeft int) []int {
	var out []int
	for _, th := range t.thresholds {
		if daysLeft == th && !cd.WasNotified(th) {
			out = append(out, th)
		}
	}
	return out
}

// CatchUpTracker fires every unfired threshold at or above days-left,
// so a reminder missed during downtime still fires on the next scan.
// Expired records never fire.
type CatchUpTracker struct {
	thresholds []int
}

// NewCatchUpTracker creates a catch-up tracker for the given thresholds.
func NewCatchUpTracker(thresholds []int) *CatchUpTracker {
	return &CatchUpTracker{thresholds: normalize(thresholds)}
}

// Eligible returns the unfired thresholds with days-left at or below them.
func (t *CatchUpTracker) Eligible(cd *model.Countdown, daysLeft int) []int {
	if daysLeft < 0 {
		return nil
	}
	var out []int
	for _, th := range t.thresholds {
		if daysLeft <= th && !cd.WasNotified(th) {
			out = append(out, th)
		}
	}
	return out
}

// normalize sorts thresholds descending and drops duplicates and
// negatives, so firing order is largest-first regardless of config order.
func normalize(thresholds []int) []int {
	out := make([]int, 0, len(thresholds))
	for _, th := range thresholds {
		if th >= 0 && !slices.Contains(out, th) {
			out = append(out, th)
		}
	}
	slices.SortFunc(out, func(a, b int) int { return b - a })
	return out
}
