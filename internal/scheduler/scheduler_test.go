package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kihana2077/countdown/internal/clock"
	"github.com/kihana2077/countdown/internal/config"
	"github.com/kihana2077/countdown/internal/model"
	"github.com/kihana2077/countdown/internal/notify"
	"github.com/kihana2077/countdown/internal/storage"
)

// recordingNotifier captures delivered notifications.
type recordingNotifier struct {
	mu   sync.Mutex
	sent []*model.Notification
}

func (r *recordingNotifier) Notify(_ context.Context, n *model.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, n)
	return nil
}

func (r *recordingNotifier) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sent)
}

func setupRepo(t *testing.T, today string) *storage.CountdownRepo {
	t.Helper()
	db, err := storage.Open(storage.Options{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return storage.NewCountdownRepo(db, clock.At(today), config.Default().Store)
}

func reminderConfig() config.ReminderConfig {
	cfg := config.Default().Reminder
	cfg.Thresholds = []int{7, 3, 1}
	return cfg
}

func mustDate(t *testing.T, iso string) model.Date {
	t.Helper()
	d, err := model.ParseDate(iso)
	require.NoError(t, err)
	return d
}

func TestScanFiresThresholdOnce(t *testing.T) {
	repo := setupRepo(t, "2026-06-01")
	_, err := repo.Create("owner1", "exam", mustDate(t, "2026-06-08"), "")
	require.NoError(t, err)

	notifier := &recordingNotifier{}
	sched := New(repo, notifier, clock.At("2026-06-01"), reminderConfig())

	// First scan: daysLeft=7 matches threshold 7.
	require.NoError(t, sched.Scan(context.Background()))
	require.Equal(t, 1, notifier.count())
	assert.Equal(t, "owner1", notifier.sent[0].OwnerKey)
	assert.Equal(t, "Reminder: 7 day(s) until exam", notifier.sent[0].Message)

	records, err := repo.List("owner1")
	require.NoError(t, err)
	assert.Equal(t, []int{7}, records[0].NotifiedThresholds)

	// Second scan at the same date: already marked, nothing fires.
	require.NoError(t, sched.Scan(context.Background()))
	assert.Equal(t, 1, notifier.count())

	// Repeated scans at the same date stay silent.
	for i := 0; i < 5; i++ {
		require.NoError(t, sched.Scan(context.Background()))
	}
	assert.Equal(t, 1, notifier.count())
}

func TestScanExactMatchOnly(t *testing.T) {
	repo := setupRepo(t, "2026-06-01")
	_, err := repo.Create("owner1", "exam", mustDate(t, "2026-06-08"), "")
	require.NoError(t, err)

	notifier := &recordingNotifier{}

	// Next day the record sits at daysLeft=6, which is not a threshold.
	sched := New(repo, notifier, clock.At("2026-06-02"), reminderConfig())
	require.NoError(t, sched.Scan(context.Background()))
	assert.Equal(t, 0, notifier.count())
}

func TestScanRendersCustomTemplate(t *testing.T) {
	repo := setupRepo(t, "2026-06-01")
	_, err := repo.Create("owner1", "launch", mustDate(t, "2026-06-04"), "")
	require.NoError(t, err)

	cfg := reminderConfig()
	cfg.MessageTemplate = "{name} arrives on {date}, {days} days out"

	notifier := &recordingNotifier{}
	sched := New(repo, notifier, clock.At("2026-06-01"), cfg)

	require.NoError(t, sched.Scan(context.Background()))
	require.Equal(t, 1, notifier.count())
	assert.Equal(t, "launch arrives on 2026-06-04, 3 days out", notifier.sent[0].Message)
}

func TestScanIsolatesDeliveryFailure(t *testing.T) {
	repo := setupRepo(t, "2026-06-01")
	_, err := repo.Create("owner1", "first", mustDate(t, "2026-06-08"), "")
	require.NoError(t, err)
	_, err = repo.Create("owner2", "second", mustDate(t, "2026-06-08"), "")
	require.NoError(t, err)

	var delivered []string
	notifier := notify.Func(func(_ context.Context, n *model.Notification) error {
		if n.OwnerKey == "owner1" {
			return errors.New("transport down")
		}
		delivered = append(delivered, n.OwnerKey)
		return nil
	})

	sched := New(repo, notifier, clock.At("2026-06-01"), reminderConfig())

	// One failing delivery must not abort the scan.
	require.NoError(t, sched.Scan(context.Background()))
	assert.Equal(t, []string{"owner2"}, delivered)

	// The failed record stays marked: a delivery failure is a silent
	// miss, not a duplicate risk.
	records, err := repo.List("owner1")
	require.NoError(t, err)
	assert.Equal(t, []int{7}, records[0].NotifiedThresholds)
}

func TestScanSurvivesConcurrentDelete(t *testing.T) {
	repo := setupRepo(t, "2026-06-01")
	a, err := repo.Create("owner1", "kept", mustDate(t, "2026-06-08"), "")
	require.NoError(t, err)
	b, err := repo.Create("owner1", "doomed", mustDate(t, "2026-06-08"), "")
	require.NoError(t, err)

	// Delete the other record mid-scan, from inside a delivery callback.
	notifier := notify.Func(func(_ context.Context, n *model.Notification) error {
		_, err := repo.DeleteByID("owner1", b.ID)
		return err
	})

	sched := New(repo, notifier, clock.At("2026-06-01"), reminderConfig())
	require.NoError(t, sched.Scan(context.Background()))

	records, err := repo.List("owner1")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, a.ID, records[0].ID)
}

func TestCatchUpConfigSelectsTracker(t *testing.T) {
	repo := setupRepo(t, "2026-06-01")
	// daysLeft=5: between thresholds 7 and 3.
	_, err := repo.Create("owner1", "missed", mustDate(t, "2026-06-06"), "")
	require.NoError(t, err)

	cfg := reminderConfig()
	cfg.CatchUp = true

	notifier := &recordingNotifier{}
	sched := New(repo, notifier, clock.At("2026-06-01"), cfg)

	require.NoError(t, sched.Scan(context.Background()))
	assert.Equal(t, 1, notifier.count())

	records, err := repo.List("owner1")
	require.NoError(t, err)
	assert.Equal(t, []int{7}, records[0].NotifiedThresholds)
}

func TestRunStopsOnCancel(t *testing.T) {
	repo := setupRepo(t, "2026-06-01")
	_, err := repo.Create("owner1", "exam", mustDate(t, "2026-06-08"), "")
	require.NoError(t, err)

	cfg := reminderConfig()
	cfg.ScanInterval = 10 * time.Millisecond
	cfg.ScanBackoff = 10 * time.Millisecond

	notifier := &recordingNotifier{}
	sched := New(repo, notifier, clock.At("2026-06-01"), cfg)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- sched.Run(ctx)
	}()

	// Let several ticks elapse, then stop.
	time.Sleep(60 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop after cancellation")
	}

	// Multiple ticks ran but the threshold fired exactly once.
	assert.Equal(t, 1, notifier.count())
}
