package commands

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kihana2077/countdown/internal/clock"
	"github.com/kihana2077/countdown/internal/config"
	errs "github.com/kihana2077/countdown/internal/errors"
	"github.com/kihana2077/countdown/internal/parser"
	"github.com/kihana2077/countdown/internal/storage"
)

func setupHandler(t *testing.T, today string) *Handler {
	t.Helper()

	db, err := storage.Open(storage.Options{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	clk := clock.At(today)
	cfg := config.Default()
	repo := storage.NewCountdownRepo(db, clk, cfg.Store)
	return NewHandler(repo, parser.NewDateParser(clk), clk, cfg.Store.MaxPerOwner)
}

func TestAddListDeleteScenario(t *testing.T) {
	h := setupHandler(t, "2026-06-01")

	msg, err := h.Add("owner1", "生日", "2099-12-31", "")
	require.NoError(t, err)
	assert.Contains(t, msg, "Added countdown #1: 生日")
	assert.Contains(t, msg, "2099-12-31")

	msg, err = h.List("owner1")
	require.NoError(t, err)
	assert.Contains(t, msg, "生日")
	assert.Contains(t, msg, "remaining")

	msg, err = h.Delete("owner1", "生日")
	require.NoError(t, err)
	assert.Contains(t, msg, "Deleted")

	msg, err = h.List("owner1")
	require.NoError(t, err)
	assert.Contains(t, msg, "No countdowns yet")
}

func TestAddInvalidDate(t *testing.T) {
	h := setupHandler(t, "2026-06-01")

	msg, err := h.Add("owner1", "exam", "not-a-date", "")
	require.NoError(t, err)
	assert.Contains(t, msg, "Invalid date")

	// The store stays untouched.
	list, err := h.List("owner1")
	require.NoError(t, err)
	assert.Contains(t, list, "No countdowns yet")
}

func TestAddPastDate(t *testing.T) {
	h := setupHandler(t, "2026-06-01")

	msg, err := h.Add("owner1", "yesterday", "2026-05-31", "")
	require.NoError(t, err)
	assert.Contains(t, msg, "cannot be in the past")
}

func TestAddCapacityMessage(t *testing.T) {
	h := setupHandler(t, "2026-06-01")

	for i := 0; i < 50; i++ {
		_, err := h.Add("owner1", fmt.Sprintf("event %d", i), "2026-07-01", "")
		require.NoError(t, err)
	}

	msg, err := h.Add("owner1", "overflow", "2026-07-01", "")
	require.NoError(t, err)
	assert.Contains(t, msg, "limit reached (50)")
}

func TestAddWithRemark(t *testing.T) {
	h := setupHandler(t, "2026-06-01")

	msg, err := h.Add("owner1", "Birthday", "12-31", "cake day")
	require.NoError(t, err)
	assert.Contains(t, msg, "Target date: 2026-12-31")
	assert.Contains(t, msg, "Remark: cake day")
}

func TestDeleteMiss(t *testing.T) {
	h := setupHandler(t, "2026-06-01")

	msg, err := h.Delete("owner1", "nothing")
	require.NoError(t, err)
	assert.Contains(t, msg, "No countdown matching")
}

func TestFindAndDescribe(t *testing.T) {
	h := setupHandler(t, "2026-06-01")

	_, err := h.Add("owner1", "exam", "2026-06-08", "")
	require.NoError(t, err)

	msg, err := h.FindAndDescribe("owner1", "exam")
	require.NoError(t, err)
	assert.Contains(t, msg, `"exam" is on 2026-06-08`)
	assert.Contains(t, msg, "remaining 7 days")

	msg, err = h.FindAndDescribe("owner1", "unknown")
	require.NoError(t, err)
	assert.Contains(t, msg, "No countdown named")
}

func TestFindAndDescribeByID(t *testing.T) {
	h := setupHandler(t, "2026-06-01")

	_, err := h.Add("owner1", "exam", "2026-06-08", "")
	require.NoError(t, err)

	msg, err := h.FindAndDescribe("owner1", "1")
	require.NoError(t, err)
	assert.Contains(t, msg, `"exam" is on 2026-06-08`)

	msg, err = h.FindAndDescribe("owner1", "42")
	require.NoError(t, err)
	assert.Contains(t, msg, "No countdown named")
}

func TestStoreFailureSurfacesAsSystemError(t *testing.T) {
	db, err := storage.Open(storage.Options{InMemory: true})
	require.NoError(t, err)

	clk := clock.At("2026-06-01")
	cfg := config.Default()
	repo := storage.NewCountdownRepo(db, clk, cfg.Store)
	h := NewHandler(repo, parser.NewDateParser(clk), clk, cfg.Store.MaxPerOwner)

	require.NoError(t, db.Close())

	_, err = h.List("owner1")
	require.Error(t, err)

	var se *errs.SystemError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "list", se.Op)
	assert.True(t, errs.Is(err, errs.ErrStoreUnavailable))
}

func TestOwnersAreIsolated(t *testing.T) {
	h := setupHandler(t, "2026-06-01")

	_, err := h.Add("owner1", "private", "2026-07-01", "")
	require.NoError(t, err)

	msg, err := h.List("owner2")
	require.NoError(t, err)
	assert.Contains(t, msg, "No countdowns yet")
}

func TestRecent(t *testing.T) {
	h := setupHandler(t, "2026-06-01")

	_, err := h.Add("owner1", "soon", "2026-06-10", "")
	require.NoError(t, err)
	_, err = h.Add("owner1", "far", "2026-09-01", "")
	require.NoError(t, err)

	msg, err := h.Recent("owner1", 30)
	require.NoError(t, err)
	assert.Contains(t, msg, "soon")
	assert.NotContains(t, msg, "far")

	msg, err = h.Recent("owner1", 0)
	require.NoError(t, err)
	assert.Contains(t, msg, "greater than zero")

	msg, err = h.Recent("owner1", 2)
	require.NoError(t, err)
	assert.Contains(t, msg, "No countdowns within")
}
