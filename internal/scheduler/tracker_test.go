package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kihana2077/countdown/internal/model"
)

func TestExactTracker(t *testing.T) {
	tracker := NewExactTracker([]int{7, 3, 1})

	tests := []struct {
		name     string
		daysLeft int
		notified []int
		want     []int
	}{
		{"exact_hit", 7, nil, []int{7}},
		{"no_range_match", 6, nil, nil},
		{"already_fired", 7, []int{7}, nil},
		{"lower_threshold", 3, []int{7}, []int{3}},
		{"zero_days", 0, nil, nil},
		{"expired", -1, nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cd := &model.Countdown{NotifiedThresholds: tt.notified}
			assert.Equal(t, tt.want, tracker.Eligible(cd, tt.daysLeft))
		})
	}
}

func TestExactTrackerUnorderedConfig(t *testing.T) {
	// Threshold order in config does not matter.
	tracker := NewExactTracker([]int{1, 7, 3, 7})

	cd := &model.Countdown{}
	assert.Equal(t, []int{3}, tracker.Eligible(cd, 3))
}

func TestCatchUpTracker(t *testing.T) {
	tracker := NewCatchUpTracker([]int{7, 3, 1})

	tests := []struct {
		name     string
		daysLeft int
		notified []int
		want     []int
	}{
		{"missed_window", 5, nil, []int{7}},
		{"multiple_missed", 2, nil, []int{7, 3}},
		{"all_missed", 0, nil, []int{7, 3, 1}},
		{"partially_fired", 2, []int{7}, []int{3}},
		{"expired_never_fires", -1, nil, nil},
		{"above_all", 10, nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cd := &model.Countdown{NotifiedThresholds: tt.notified}
			assert.Equal(t, tt.want, tracker.Eligible(cd, tt.daysLeft))
		})
	}
}
