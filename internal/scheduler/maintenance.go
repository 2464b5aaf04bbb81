package scheduler

import (
	"fmt"
	"time"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/robfig/cron/v3"

	errs "github.com/kihana2077/countdown/internal/errors"
	"github.com/kihana2077/countdown/internal/logging"
	"github.com/kihana2077/countdown/internal/storage"
)

// Maintenance runs periodic housekeeping jobs alongside the scan loop,
// currently Badger value-log garbage collection.
type Maintenance struct {
	cron *cron.Cron
	db   *storage.DB
}

// NewMaintenance creates the maintenance schedule.
func NewMaintenance(db *storage.DB) *Maintenance {
	return &Maintenance{
		cron: cron.New(),
		db:   db,
	}
}

// Start schedules the GC job at the given interval and starts the cron.
func (m *Maintenance) Start(gcInterval time.Duration) error {
	spec := fmt.Sprintf("@every %s", gcInterval)
	_, err := m.cron.AddFunc(spec, m.runGC)
	if err != nil {
		return errs.Wrap(err, "failed to schedule GC job")
	}
	m.cron.Start()
	return nil
}

// Stop stops the cron and waits for running jobs to finish.
func (m *Maintenance) Stop() {
	if m.cron != nil {
		ctx := m.cron.Stop()
		<-ctx.Done()
	}
}

// runGC performs one GC round. ErrNoRewrite just means nothing to collect.
func (m *Maintenance) runGC() {
	if err := m.db.RunGC(); err != nil && err != badger.ErrNoRewrite {
		logging.Warn("value log GC failed", logging.KeyError, err)
	}
}
