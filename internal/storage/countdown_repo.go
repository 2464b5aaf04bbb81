package storage

import (
	"encoding/json"
	"strconv"
	"strings"
	"sync"

	badger "github.com/dgraph-io/badger/v4"

	"github.com/kihana2077/countdown/internal/clock"
	"github.com/kihana2077/countdown/internal/config"
	errs "github.com/kihana2077/countdown/internal/errors"
	"github.com/kihana2077/countdown/internal/model"
)

// CountdownRepo is the authoritative store for countdown records.
//
// All mutations are serialized by a repo-level mutex and applied inside a
// single Badger transaction, so id assignment, capacity checks and
// read-modify-write updates are atomic with respect to concurrent commands
// and scheduler marks.
type CountdownRepo struct {
	db          *DB
	clock       clock.Clock
	maxPerOwner int
	nameMatch   config.MatchMode

	mu sync.Mutex
}

// NewCountdownRepo creates a countdown repository.
func NewCountdownRepo(db *DB, clk clock.Clock, cfg config.StoreConfig) *CountdownRepo {
	return &CountdownRepo{
		db:          db,
		clock:       clk,
		maxPerOwner: cfg.MaxPerOwner,
		nameMatch:   cfg.NameMatch,
	}
}

// Create validates and persists a new countdown for the owner.
// Fails with ErrPastDate when target is before today, and with
// ErrCapacityExceeded when the owner already holds the configured maximum.
// The new record gets the owner's next unused id (max existing + 1).
func (r *CountdownRepo) Create(ownerKey, name string, target model.Date, remark string) (*model.Countdown, error) {
	if ownerKey == "" {
		return nil, errs.NewUserError("owner key is required", "provide a non-empty owner")
	}
	if strings.TrimSpace(name) == "" {
		return nil, errs.NewUserError("countdown name is required", "provide a non-empty name")
	}

	today := r.clock.Today()
	if target.Before(today) {
		return nil, errs.Wrapf(errs.ErrPastDate, "target %s is before today %s", target, today)
	}

	record := model.NewCountdown(ownerKey, name, target, today, remark)

	r.mu.Lock()
	defer r.mu.Unlock()

	err := r.db.Badger().Update(func(txn *badger.Txn) error {
		count, maxID := ownerStats(txn, ownerKey)
		if count >= r.maxPerOwner {
			return errs.Wrapf(errs.ErrCapacityExceeded, "owner %s already holds %d countdowns", ownerKey, count)
		}

		record.ID = maxID + 1
		record.SetKey(model.CountdownKey(ownerKey, record.ID))

		data, err := json.Marshal(record)
		if err != nil {
			return err
		}
		return txn.Set([]byte(record.GetKey()), data)
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

// Delete removes a record addressed by id or by name.
// A string of digits is treated as an id; anything else is matched by name
// per the configured matching policy. Returns whether a record was removed.
func (r *CountdownRepo) Delete(ownerKey, idOrName string) (bool, error) {
	if id, err := strconv.Atoi(strings.TrimSpace(idOrName)); err == nil && id > 0 {
		return r.DeleteByID(ownerKey, id)
	}

	record, err := r.FindByName(ownerKey, idOrName)
	if err != nil {
		if errs.Is(err, errs.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return r.DeleteByID(ownerKey, record.ID)
}

// DeleteByID removes the owner's record with the given id.
// Returns false without error when no such record exists.
func (r *CountdownRepo) DeleteByID(ownerKey string, id int) (bool, error) {
	key := []byte(model.CountdownKey(ownerKey, id))

	r.mu.Lock()
	defer r.mu.Unlock()

	removed := false
	err := r.db.Badger().Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(key); err != nil {
			if errs.Is(err, badger.ErrKeyNotFound) {
				return nil
			}
			return err
		}
		removed = true
		return txn.Delete(key)
	})
	return removed, err
}

// List returns the owner's records sorted by target date ascending,
// ties broken by id. Unknown owners yield an empty slice.
func (r *CountdownRepo) List(ownerKey string) ([]*model.Countdown, error) {
	records, err := r.loadPrefix(model.CountdownPrefix(ownerKey))
	if err != nil {
		return nil, err
	}

	// The escaped key prefix already separates owners; the exact filter
	// guarantees a stray key can never leak another owner's records.
	owned := make([]*model.Countdown, 0, len(records))
	for _, rec := range records {
		if rec.OwnerKey == ownerKey {
			owned = append(owned, rec)
		}
	}
	model.SortCountdowns(owned)
	return owned, nil
}

// Get returns the owner's record with the given id, or ErrNotFound.
func (r *CountdownRepo) Get(ownerKey string, id int) (*model.Countdown, error) {
	record := &model.Countdown{}
	err := r.db.Get(model.CountdownKey(ownerKey, id), record)
	if err != nil {
		if IsErrKeyNotFound(err) {
			return nil, errs.ErrNotFound
		}
		return nil, errs.Wrap(errs.ErrStoreUnavailable, err.Error())
	}
	if err := record.Validate(); err != nil {
		return nil, errs.Wrap(err, "corrupt record in store")
	}
	return record, nil
}

// FindByName returns the first record matching name per the configured
// policy, scanning in display (target date) order. ErrNotFound on miss.
func (r *CountdownRepo) FindByName(ownerKey, name string) (*model.Countdown, error) {
	records, err := r.List(ownerKey)
	if err != nil {
		return nil, err
	}

	for _, rec := range records {
		if r.nameMatches(rec.Name, name) {
			return rec, nil
		}
	}
	return nil, errs.ErrNotFound
}

// nameMatches applies the configured matching policy.
func (r *CountdownRepo) nameMatches(recordName, query string) bool {
	if r.nameMatch == config.MatchSubstring {
		return strings.Contains(recordName, query)
	}
	return recordName == query
}

// MarkNotified idempotently adds threshold to the record's fired set.
// A missing record is a silent no-op: the scheduler may race a delete,
// and marking a record that is gone must not fail the scan.
func (r *CountdownRepo) MarkNotified(ownerKey string, id, threshold int) error {
	key := []byte(model.CountdownKey(ownerKey, id))

	r.mu.Lock()
	defer r.mu.Unlock()

	return r.db.Badger().Update(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			if errs.Is(err, badger.ErrKeyNotFound) {
				return nil
			}
			return err
		}

		var record model.Countdown
		err = item.Value(func(val []byte) error {
			return json.Unmarshal(val, &record)
		})
		if err != nil {
			return err
		}

		if record.WasNotified(threshold) {
			return nil
		}
		record.MarkNotified(threshold)
		record.SetKey(string(key))

		data, err := json.Marshal(&record)
		if err != nil {
			return err
		}
		return txn.Set(key, data)
	})
}

// AllRecords returns every countdown across all owners, for scheduler scans.
// The result is a snapshot; the caller must not assume records still exist
// by the time it acts on them.
func (r *CountdownRepo) AllRecords() ([]*model.Countdown, error) {
	return r.loadPrefix(model.PrefixCountdown + ":")
}

// loadPrefix loads and validates every record under a key prefix.
func (r *CountdownRepo) loadPrefix(prefix string) ([]*model.Countdown, error) {
	records, err := GetAllByPrefix(r.db, prefix, func() *model.Countdown {
		return &model.Countdown{}
	})
	if err != nil {
		return nil, errs.Wrap(errs.ErrStoreUnavailable, err.Error())
	}

	for _, rec := range records {
		if err := rec.Validate(); err != nil {
			return nil, errs.Wrap(err, "corrupt record in store")
		}
	}
	return records, nil
}

// ownerStats counts an owner's records and finds the highest assigned id.
func ownerStats(txn *badger.Txn, ownerKey string) (count, maxID int) {
	opts := badger.DefaultIteratorOptions
	opts.PrefetchValues = false
	it := txn.NewIterator(opts)
	defer it.Close()

	prefix := []byte(model.CountdownPrefix(ownerKey))
	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		count++
		key := string(it.Item().Key())
		if idx := strings.LastIndex(key, ":"); idx >= 0 {
			if id, convErr := strconv.Atoi(key[idx+1:]); convErr == nil && id > maxID {
				maxID = id
			}
		}
	}
	return count, maxID
}
