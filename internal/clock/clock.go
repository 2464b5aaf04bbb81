// Package clock supplies the current calendar date.
// Injected everywhere a "today" is needed so time-dependent logic is testable.
package clock

import (
	"time"

	"github.com/kihana2077/countdown/internal/model"
)

// Clock supplies the current calendar date.
type Clock interface {
	Today() model.Date
}

// System is a Clock backed by the wall clock.
type System struct{}

// Today returns the current local calendar date.
func (System) Today() model.Date {
	return model.DateOf(time.Now())
}

// Fixed is a Clock pinned to a single date, for tests.
type Fixed struct {
	Date model.Date
}

// Today returns the pinned date.
func (f Fixed) Today() model.Date {
	return f.Date
}

// At returns a Fixed clock pinned to the given ISO date string.
// Panics on a malformed date; intended for test setup only.
func At(iso string) Fixed {
	d, err := model.ParseDate(iso)
	if err != nil {
		panic(err)
	}
	return Fixed{Date: d}
}
