// Package model defines the domain models for Countdown.
package model

// Model is the interface that all database models must implement.
type Model interface {
	// SetKey sets the database key for this model.
	SetKey(key string)
	// GetKey returns the database key for this model.
	GetKey() string
}

// PrefixCountdown is the database key prefix for countdown records.
const PrefixCountdown = "countdown"
