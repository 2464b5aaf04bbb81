// Package config provides centralized configuration for Countdown.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// MatchMode selects how name lookups match records.
type MatchMode string

const (
	// MatchExact requires an exact name match.
	MatchExact MatchMode = "exact"
	// MatchSubstring matches any record whose name contains the query.
	MatchSubstring MatchMode = "substring"
)

// Config holds all runtime configuration for the store, scheduler and CLI.
type Config struct {
	// Store configuration.
	Store StoreConfig

	// Reminder scheduler configuration.
	Reminder ReminderConfig

	// Parser configuration.
	Parser ParserConfig

	// OwnerKey identifies whose countdown set CLI commands operate on.
	// Default: "default"
	OwnerKey string

	// WebhookURL is the delivery endpoint for reminder notifications.
	// Empty means reminders are logged instead of delivered.
	WebhookURL string
}

// StoreConfig holds record store configuration.
type StoreConfig struct {
	// MaxPerOwner is the maximum active countdowns per owner.
	// Default: 50
	MaxPerOwner int

	// NameMatch is the matching policy for delete/find by name.
	// Default: MatchExact
	NameMatch MatchMode

	// GCInterval is how often the value-log garbage collector runs.
	// Default: 10m
	GCInterval time.Duration
}

// ReminderConfig holds reminder scheduler configuration.
type ReminderConfig struct {
	// Thresholds are the day counts at which reminders fire.
	// Default: [7, 3, 1]
	Thresholds []int

	// MessageTemplate renders reminder text. Placeholders: {name},
	// {days}, {date}.
	// Default: "Reminder: {days} day(s) until {name}"
	MessageTemplate string

	// ScanInterval is the time between scheduler scans.
	// Default: 1h
	ScanInterval time.Duration

	// ScanBackoff is the retry delay after a failed scan.
	// Default: 5m
	ScanBackoff time.Duration

	// CatchUp fires a reminder on the first scan where days-left is at
	// or below an unfired threshold, instead of requiring an exact match.
	// Default: false
	CatchUp bool
}

// ParserConfig holds date parsing configuration.
type ParserConfig struct {
	// Formats is the ordered list of accepted date layouts, tried in
	// order with first match winning. See parser.DefaultFormats.
	Formats []string

	// NaturalLanguage enables the natural-language fallback parser for
	// inputs no layout accepts.
	// Default: false
	NaturalLanguage bool
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Store: StoreConfig{
			MaxPerOwner: 50,
			NameMatch:   MatchExact,
			GCInterval:  10 * time.Minute,
		},
		Reminder: ReminderConfig{
			Thresholds:      []int{7, 3, 1},
			MessageTemplate: "Reminder: {days} day(s) until {name}",
			ScanInterval:    time.Hour,
			ScanBackoff:     5 * time.Minute,
		},
		Parser:   ParserConfig{},
		OwnerKey: "default",
	}
}

// Load returns the default configuration with environment overrides applied.
func Load() *Config {
	cfg := Default()
	cfg.loadFromEnv()
	return cfg
}

// loadFromEnv loads configuration overrides from COUNTDOWN_* variables.
func (c *Config) loadFromEnv() {
	if v := os.Getenv("COUNTDOWN_MAX_PER_OWNER"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Store.MaxPerOwner = n
		}
	}
	if v := os.Getenv("COUNTDOWN_NAME_MATCH"); v != "" {
		switch MatchMode(v) {
		case MatchExact, MatchSubstring:
			c.Store.NameMatch = MatchMode(v)
		}
	}
	if v := os.Getenv("COUNTDOWN_GC_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.Store.GCInterval = d
		}
	}
	if v := os.Getenv("COUNTDOWN_THRESHOLDS"); v != "" {
		if ts := parseIntList(v); len(ts) > 0 {
			c.Reminder.Thresholds = ts
		}
	}
	if v := os.Getenv("COUNTDOWN_MESSAGE_TEMPLATE"); v != "" {
		c.Reminder.MessageTemplate = v
	}
	if v := os.Getenv("COUNTDOWN_SCAN_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.Reminder.ScanInterval = d
		}
	}
	if v := os.Getenv("COUNTDOWN_SCAN_BACKOFF"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.Reminder.ScanBackoff = d
		}
	}
	if v := os.Getenv("COUNTDOWN_CATCH_UP"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Reminder.CatchUp = b
		}
	}
	if v := os.Getenv("COUNTDOWN_DATE_FORMATS"); v != "" {
		var formats []string
		for _, f := range strings.Split(v, ",") {
			if f = strings.TrimSpace(f); f != "" {
				formats = append(formats, f)
			}
		}
		c.Parser.Formats = formats
	}
	if v := os.Getenv("COUNTDOWN_NATURAL_DATES"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Parser.NaturalLanguage = b
		}
	}
	if v := os.Getenv("COUNTDOWN_OWNER"); v != "" {
		c.OwnerKey = v
	}
	if v := os.Getenv("COUNTDOWN_WEBHOOK_URL"); v != "" {
		c.WebhookURL = v
	}
}

// parseIntList parses a comma-separated list of positive integers.
func parseIntList(s string) []int {
	var out []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return nil
		}
		out = append(out, n)
	}
	return out
}
