// Package scheduler drives the periodic reminder scan.
package scheduler

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/kihana2077/countdown/internal/clock"
	"github.com/kihana2077/countdown/internal/config"
	"github.com/kihana2077/countdown/internal/logging"
	"github.com/kihana2077/countdown/internal/notify"
	"github.com/kihana2077/countdown/internal/storage"
)

// Scheduler periodically scans all countdown records and fires reminders
// for records whose days-left matches an unfired threshold.
//
// The loop alternates between idle (waiting for the next tick) and one
// scanning pass. A failed scan is retried after the backoff interval
// instead of the full scan interval; the loop exits only on context
// cancellation.
type Scheduler struct {
	repo     *storage.CountdownRepo
	notifier notify.Notifier
	clock    clock.Clock
	tracker  Tracker
	cfg      config.ReminderConfig
}

// New creates a scheduler. The tracker is chosen from the config's
// catch-up setting.
func New(repo *storage.CountdownRepo, notifier notify.Notifier, clk clock.Clock, cfg config.ReminderConfig) *Scheduler {
	var tracker Tracker
	if cfg.CatchUp {
		tracker = NewCatchUpTracker(cfg.Thresholds)
	} else {
		tracker = NewExactTracker(cfg.Thresholds)
	}
	return &Scheduler{
		repo:     repo,
		notifier: notifier,
		clock:    clk,
		tracker:  tracker,
		cfg:      cfg,
	}
}

// SetTracker overrides the firing policy.
func (s *Scheduler) SetTracker(t Tracker) {
	s.tracker = t
}

// Run executes the scan loop until ctx is cancelled. The first scan runs
// immediately; later scans follow the configured interval, or the backoff
// interval after a failure.
func (s *Scheduler) Run(ctx context.Context) error {
	logging.Info("scheduler started",
		"interval", s.cfg.ScanInterval.String(),
		"backoff", s.cfg.ScanBackoff.String(),
	)

	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			logging.Info("scheduler stopped")
			return nil
		case <-timer.C:
		}

		next := s.cfg.ScanInterval
		if err := s.Scan(ctx); err != nil {
			logging.Error("scan failed, backing off",
				logging.KeyError, err,
				"retry_in", s.cfg.ScanBackoff.String(),
			)
			next = s.cfg.ScanBackoff
		}
		timer.Reset(next)
	}
}

// Scan runs one pass over all records. Per-record failures are logged and
// skipped; only a store-level failure makes the whole scan fail.
func (s *Scheduler) Scan(ctx context.Context) error {
	start := time.Now()
	log := logging.With(logging.KeyScanID, uuid.New().String())

	records, err := s.repo.AllRecords()
	if err != nil {
		return err
	}

	today := s.clock.Today()
	fired := 0

	for _, rec := range records {
		if ctx.Err() != nil {
			break
		}

		daysLeft := rec.DaysLeft(today)
		for _, threshold := range s.tracker.Eligible(rec, daysLeft) {
			// Mark before delivery so a retry cannot fire twice. A mark on
			// a concurrently deleted record is a no-op and the reminder
			// still goes out once.
			if err := s.repo.MarkNotified(rec.OwnerKey, rec.ID, threshold); err != nil {
				log.Error("failed to mark threshold",
					logging.KeyOwner, rec.OwnerKey,
					logging.KeyCountdown, rec.ID,
					logging.KeyThreshold, threshold,
					logging.KeyDaysLeft, daysLeft,
					logging.KeyError, err,
				)
				continue
			}

			n := notify.BuildReminder(s.cfg.MessageTemplate, rec, daysLeft)
			if err := s.notifier.Notify(ctx, n); err != nil {
				// Accepted trade-off: the threshold stays marked, so a
				// failed delivery is a silent miss rather than a
				// duplicate risk.
				log.Error("delivery failed",
					logging.KeyOwner, rec.OwnerKey,
					logging.KeyCountdown, rec.ID,
					logging.KeyThreshold, threshold,
					logging.KeyDaysLeft, daysLeft,
					logging.KeyError, err,
				)
				continue
			}
			fired++
		}
	}

	log.Info("scan complete",
		logging.KeyCount, len(records),
		"fired", fired,
		logging.KeyDuration, time.Since(start).Milliseconds(),
	)
	return nil
}
