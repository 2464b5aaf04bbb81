// Package commands implements the user-facing command surface.
// A dispatch layer (CLI, chat bridge) calls these methods with an owner
// key and raw arguments and gets back a rendered user message.
package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kihana2077/countdown/internal/clock"
	errs "github.com/kihana2077/countdown/internal/errors"
	"github.com/kihana2077/countdown/internal/logging"
	"github.com/kihana2077/countdown/internal/model"
	"github.com/kihana2077/countdown/internal/parser"
	"github.com/kihana2077/countdown/internal/storage"
)

// DefaultRecentDays is the window for Recent when none is given.
const DefaultRecentDays = 30

// Handler executes countdown commands on behalf of an owner.
type Handler struct {
	repo   *storage.CountdownRepo
	parser *parser.DateParser
	clock  clock.Clock
	limit  int
}

// NewHandler creates a command handler.
func NewHandler(repo *storage.CountdownRepo, dateParser *parser.DateParser, clk clock.Clock, maxPerOwner int) *Handler {
	return &Handler{
		repo:   repo,
		parser: dateParser,
		clock:  clk,
		limit:  maxPerOwner,
	}
}

// Add creates a countdown and returns a user message.
// Validation failures (bad date, past date, capacity) come back as
// messages with a nil error; only store failures return an error.
func (h *Handler) Add(ownerKey, name, dateString, remark string) (string, error) {
	target, err := h.parser.Parse(dateString)
	if err != nil {
		return fmt.Sprintf("Invalid date %q. Use YYYY-MM-DD (e.g. 2025-12-31).", dateString), nil
	}

	record, err := h.repo.Create(ownerKey, name, target, remark)
	switch {
	case err == nil:
	case errs.Is(err, errs.ErrPastDate):
		return "The target date cannot be in the past.", nil
	case errs.Is(err, errs.ErrCapacityExceeded):
		return fmt.Sprintf("Countdown limit reached (%d). Delete one first.", h.limit), nil
	case errs.IsUserError(err):
		ue, _ := errs.AsUserError(err)
		return fmt.Sprintf("%s. %s.", ue.Message, ue.Suggestion), nil
	default:
		logging.Error("add failed", logging.KeyOwner, ownerKey, logging.KeyError, err)
		return "", systemErr("add", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Added countdown #%d: %s\n", record.ID, record.Name)
	fmt.Fprintf(&b, "Target date: %s", record.TargetDate)
	if record.Remark != "" {
		fmt.Fprintf(&b, "\nRemark: %s", record.Remark)
	}
	return b.String(), nil
}

// Delete removes a countdown by id or name and reports the outcome.
func (h *Handler) Delete(ownerKey, idOrName string) (string, error) {
	removed, err := h.repo.Delete(ownerKey, idOrName)
	if err != nil {
		logging.Error("delete failed", logging.KeyOwner, ownerKey, logging.KeyError, err)
		return "", systemErr("delete", err)
	}
	if !removed {
		return fmt.Sprintf("No countdown matching %q was found.", idOrName), nil
	}
	return fmt.Sprintf("Deleted countdown %q.", idOrName), nil
}

// List renders the owner's countdowns sorted by target date.
func (h *Handler) List(ownerKey string) (string, error) {
	records, err := h.repo.List(ownerKey)
	if err != nil {
		logging.Error("list failed", logging.KeyOwner, ownerKey, logging.KeyError, err)
		return "", systemErr("list", err)
	}

	if len(records) == 0 {
		return "No countdowns yet. Add one with: countdown add NAME DATE", nil
	}

	today := h.clock.Today()
	var b strings.Builder
	b.WriteString("Your countdowns:\n")
	for _, rec := range records {
		daysLeft := rec.DaysLeft(today)
		fmt.Fprintf(&b, "%d. %s\n   Date: %s | %s\n", rec.ID, rec.Name, rec.TargetDate, model.Status(daysLeft))
		if rec.Remark != "" {
			fmt.Fprintf(&b, "   Remark: %s\n", rec.Remark)
		}
	}
	b.WriteString("\nDelete with: countdown delete ID")
	return b.String(), nil
}

// FindAndDescribe looks up one countdown by id or name and describes it.
func (h *Handler) FindAndDescribe(ownerKey, name string) (string, error) {
	record, err := h.lookup(ownerKey, name)
	if err != nil {
		if errs.Is(err, errs.ErrNotFound) {
			return fmt.Sprintf("No countdown named %q was found. Add one with: countdown add NAME DATE", name), nil
		}
		logging.Error("find failed", logging.KeyOwner, ownerKey, logging.KeyError, err)
		return "", systemErr("find", err)
	}

	daysLeft := record.DaysLeft(h.clock.Today())

	var b strings.Builder
	if daysLeft >= 0 {
		fmt.Fprintf(&b, "%q is on %s, %s.", record.Name, record.TargetDate, model.Status(daysLeft))
	} else {
		fmt.Fprintf(&b, "%q was on %s, %d day(s) ago.", record.Name, record.TargetDate, -daysLeft)
	}
	if record.Remark != "" {
		fmt.Fprintf(&b, "\nRemark: %s", record.Remark)
	}
	return b.String(), nil
}

// lookup resolves a query to a record. Digits address an id, anything
// else goes through name matching.
func (h *Handler) lookup(ownerKey, query string) (*model.Countdown, error) {
	if id, err := strconv.Atoi(strings.TrimSpace(query)); err == nil && id > 0 {
		return h.repo.Get(ownerKey, id)
	}
	return h.repo.FindByName(ownerKey, query)
}

// systemErr classifies a store failure for the dispatch layer.
func systemErr(op string, err error) error {
	return errs.NewSystemError(op, "store operation failed", err)
}

// Recent renders countdowns due within the next N days.
func (h *Handler) Recent(ownerKey string, days int) (string, error) {
	if days <= 0 {
		return "The day window must be greater than zero.", nil
	}

	records, err := h.repo.List(ownerKey)
	if err != nil {
		logging.Error("recent failed", logging.KeyOwner, ownerKey, logging.KeyError, err)
		return "", systemErr("recent", err)
	}

	today := h.clock.Today()
	var b strings.Builder
	count := 0
	for _, rec := range records {
		daysLeft := rec.DaysLeft(today)
		if daysLeft < 0 || daysLeft > days {
			continue
		}
		if count == 0 {
			fmt.Fprintf(&b, "Countdowns within %d days:\n", days)
		}
		count++
		fmt.Fprintf(&b, "%s: %s (%s)\n", rec.Name, rec.TargetDate, model.Status(daysLeft))
	}

	if count == 0 {
		return fmt.Sprintf("No countdowns within the next %d days.", days), nil
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

// Help returns the command usage summary.
func (h *Handler) Help() string {
	return strings.TrimSpace(`
Countdown commands:
  countdown add NAME DATE [REMARK]   add a countdown (date: YYYY-MM-DD)
  countdown list                     list all countdowns
  countdown delete ID_OR_NAME        delete a countdown
  countdown query ID_OR_NAME         show one countdown
  countdown recent [DAYS]            countdowns within the next DAYS days
  countdown daemon                   run the reminder scheduler
`)
}
