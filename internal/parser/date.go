// Package parser turns user-supplied date strings into calendar dates.
package parser

import (
	"strings"
	"time"

	"github.com/markusmobius/go-dateparser"

	"github.com/kihana2077/countdown/internal/clock"
	errs "github.com/kihana2077/countdown/internal/errors"
	"github.com/kihana2077/countdown/internal/model"
)

// DefaultFormats is the ordered list of accepted date layouts.
// Layouts without a year component are completed with the current year.
var DefaultFormats = []string{
	"2006-01-02",
	"2006/01/02",
	"2006年1月2日",
	"01-02",
	"1月2日",
}

// DateParser parses date strings against an ordered list of layouts,
// first match wins. An optional natural-language fallback handles inputs
// no layout accepts.
type DateParser struct {
	formats []string
	clock   clock.Clock
	natural bool
}

// Option configures a DateParser.
type Option func(*DateParser)

// WithFormats replaces the accepted layout list.
func WithFormats(formats []string) Option {
	return func(p *DateParser) {
		if len(formats) > 0 {
			p.formats = formats
		}
	}
}

// WithNaturalLanguage enables the natural-language fallback.
func WithNaturalLanguage() Option {
	return func(p *DateParser) {
		p.natural = true
	}
}

// NewDateParser creates a parser with the default layouts.
func NewDateParser(clk clock.Clock, opts ...Option) *DateParser {
	p := &DateParser{
		formats: DefaultFormats,
		clock:   clk,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse converts input to a calendar date. Returns ErrInvalidDate when
// no layout (and no fallback) accepts the input.
func (p *DateParser) Parse(input string) (model.Date, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return model.Date{}, errs.ErrInvalidDate
	}

	for _, layout := range p.formats {
		t, err := time.Parse(layout, input)
		if err != nil {
			continue
		}
		// Layouts like "01-02" carry no year; complete with the current one.
		if t.Year() == 0 {
			today := p.clock.Today()
			t = time.Date(today.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		}
		return model.DateOf(t), nil
	}

	if p.natural {
		if d, ok := p.parseNatural(input); ok {
			return d, nil
		}
	}

	return model.Date{}, errs.Wrapf(errs.ErrInvalidDate, "unrecognized date %q", input)
}

// parseNatural runs the natural-language parser against the input.
func (p *DateParser) parseNatural(input string) (model.Date, bool) {
	cfg := &dateparser.Configuration{
		CurrentTime: p.clock.Today().Time,
	}
	result, err := dateparser.Parse(cfg, input)
	if err != nil {
		return model.Date{}, false
	}
	return model.DateOf(result.Time), true
}
