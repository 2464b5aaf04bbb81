package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kihana2077/countdown/internal/clock"
	errs "github.com/kihana2077/countdown/internal/errors"
)

func TestParseFormats(t *testing.T) {
	p := NewDateParser(clock.At("2026-06-01"))

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"iso", "2026-12-31", "2026-12-31"},
		{"slash", "2026/12/31", "2026-12-31"},
		{"slash_unpadded", "2026/1/2", "2026-01-02"},
		{"localized_full", "2026年12月31日", "2026-12-31"},
		{"month_day", "12-31", "2026-12-31"},
		{"localized_month_day", "12月31日", "2026-12-31"},
		{"whitespace", "  2026-12-31  ", "2026-12-31"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := p.Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.String())
		})
	}
}

func TestParseInvalid(t *testing.T) {
	p := NewDateParser(clock.At("2026-06-01"))

	for _, input := range []string{"", "tomorrow", "31-12-2026", "2026-13-01", "abc"} {
		t.Run(input, func(t *testing.T) {
			_, err := p.Parse(input)
			require.Error(t, err)
			assert.True(t, errs.Is(err, errs.ErrInvalidDate))
		})
	}
}

func TestParseFirstMatchWins(t *testing.T) {
	// A custom format list changes what an ambiguous input means.
	p := NewDateParser(clock.At("2026-06-01"), WithFormats([]string{"02-01"}))

	d, err := p.Parse("31-12")
	require.NoError(t, err)
	assert.Equal(t, "2026-12-31", d.String())
}

func TestParseYearCompletion(t *testing.T) {
	// Month-day inputs take the current year from the clock.
	p := NewDateParser(clock.At("2031-02-01"))

	d, err := p.Parse("06-15")
	require.NoError(t, err)
	assert.Equal(t, "2031-06-15", d.String())
}

func TestParseNaturalFallback(t *testing.T) {
	strict := NewDateParser(clock.At("2026-06-01"))
	_, err := strict.Parse("in 3 days")
	assert.Error(t, err)

	natural := NewDateParser(clock.At("2026-06-01"), WithNaturalLanguage())
	d, err := natural.Parse("in 3 days")
	require.NoError(t, err)
	assert.Equal(t, "2026-06-04", d.String())
}
