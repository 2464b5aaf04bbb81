package model

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
)

// Countdown represents a named countdown event belonging to one owner.
type Countdown struct {
	Key                string `json:"key"`
	ID                 int    `json:"id"`
	OwnerKey           string `json:"owner_key"`
	Name               string `json:"name"`
	TargetDate         Date   `json:"target_date"`
	CreatedDate        Date   `json:"created_date"`
	Remark             string `json:"remark,omitempty"`
	NotifiedThresholds []int  `json:"notified_thresholds"`
}

// SetKey sets the database key for this countdown.
func (c *Countdown) SetKey(key string) {
	c.Key = key
}

// GetKey returns the database key for this countdown.
func (c *Countdown) GetKey() string {
	if c.Key == "" {
		c.Key = CountdownKey(c.OwnerKey, c.ID)
	}
	return c.Key
}

// CountdownKey builds the database key for an owner's countdown by id.
// The owner segment is escaped so composite owner keys containing the
// key separator cannot collide with another owner's prefix. IDs are
// zero-padded so prefix iteration yields records in id order.
func CountdownKey(ownerKey string, id int) string {
	return fmt.Sprintf("%s:%s:%08d", PrefixCountdown, url.QueryEscape(ownerKey), id)
}

// CountdownPrefix returns the key prefix covering one owner's records.
func CountdownPrefix(ownerKey string) string {
	return fmt.Sprintf("%s:%s:", PrefixCountdown, url.QueryEscape(ownerKey))
}

// NewCountdown creates a countdown with its created date set.
func NewCountdown(ownerKey, name string, target, created Date, remark string) *Countdown {
	return &Countdown{
		OwnerKey:    ownerKey,
		Name:        name,
		TargetDate:  target,
		CreatedDate: created,
		Remark:      remark,
	}
}

// Validate rejects records with missing or malformed required fields.
// Called on every record loaded from the store so schema drift surfaces
// at load time, not at use time.
func (c *Countdown) Validate() error {
	if c.OwnerKey == "" {
		return errors.New("countdown has empty owner key")
	}
	if c.Name == "" {
		return errors.New("countdown has empty name")
	}
	if c.ID <= 0 {
		return fmt.Errorf("countdown %q has invalid id %d", c.Name, c.ID)
	}
	if c.TargetDate.IsZero() {
		return fmt.Errorf("countdown %q has no target date", c.Name)
	}
	return nil
}

// DaysLeft returns the whole calendar days from today until the target date.
func (c *Countdown) DaysLeft(today Date) int {
	return today.DaysUntil(c.TargetDate)
}

// WasNotified reports whether a reminder already fired for the threshold.
func (c *Countdown) WasNotified(threshold int) bool {
	return slices.Contains(c.NotifiedThresholds, threshold)
}

// MarkNotified records that a reminder fired for the threshold.
// Idempotent: marking the same threshold twice is a no-op.
func (c *Countdown) MarkNotified(threshold int) {
	if !c.WasNotified(threshold) {
		c.NotifiedThresholds = append(c.NotifiedThresholds, threshold)
	}
}

// Status renders the remaining-time status for a days-left value.
func Status(daysLeft int) string {
	if daysLeft < 0 {
		return "expired"
	}
	return fmt.Sprintf("remaining %d days", daysLeft)
}

// SortCountdowns orders records by target date ascending, ties by id.
func SortCountdowns(records []*Countdown) {
	slices.SortFunc(records, func(a, b *Countdown) int {
		if !a.TargetDate.Equal(b.TargetDate.Time) {
			if a.TargetDate.Before(b.TargetDate) {
				return -1
			}
			return 1
		}
		return a.ID - b.ID
	})
}
