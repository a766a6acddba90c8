// Package prefs persists the user's dashboard preferences in a local Badger
// store: the refetch interval and whether the notification panel is open.
package prefs

import (
	"path/filepath"
	"strconv"
	"time"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/pkg/errors"

	"github.com/DenserMeerkat/fr-frontend-next/pkg/logger"
	"github.com/DenserMeerkat/fr-frontend-next/pkg/querycache"
)

const (
	keyRefetchInterval = "prefs/refetch_interval"
	keyNotifPanelOpen  = "prefs/notif_panel_open"
)

// Store wraps a Badger DB dedicated to preferences.
type Store struct {
	db *badger.DB
}

// Open creates or reopens the preference store under dataDir.
func Open(dataDir string) (*Store, error) {
	opts := badger.DefaultOptions(filepath.Join(dataDir, "prefs"))
	opts.Logger = nil
	db, err := badger.Open(opts)
	if err != nil {
		return nil, errors.Wrap(err, "open preference store")
	}
	return &Store{db: db}, nil
}

// Close flushes and closes the underlying DB.
func (s *Store) Close() error {
	return s.db.Close()
}

// RefetchInterval returns the stored interval. Missing, unreadable, or
// unsupported values fall back to the default.
func (s *Store) RefetchInterval() time.Duration {
	raw, err := s.get(keyRefetchInterval)
	if err != nil {
		return querycache.DefaultInterval
	}
	d, err := time.ParseDuration(raw)
	if err != nil || !querycache.IsAllowedInterval(d) {
		logger.Warnf("[prefs] stored interval %q unusable, using default", raw)
		return querycache.DefaultInterval
	}
	return d
}

// SetRefetchInterval stores d. Unsupported intervals are rejected.
func (s *Store) SetRefetchInterval(d time.Duration) error {
	if !querycache.IsAllowedInterval(d) {
		return errors.Errorf("unsupported refetch interval %s", d)
	}
	return s.set(keyRefetchInterval, d.String())
}

// NotifPanelOpen returns the stored panel flag, false when absent or
// unreadable.
func (s *Store) NotifPanelOpen() bool {
	raw, err := s.get(keyNotifPanelOpen)
	if err != nil {
		return false
	}
	open, err := strconv.ParseBool(raw)
	if err != nil {
		logger.Warnf("[prefs] stored panel flag %q unusable, using default", raw)
		return false
	}
	return open
}

// SetNotifPanelOpen stores the panel flag.
func (s *Store) SetNotifPanelOpen(open bool) error {
	return s.set(keyNotifPanelOpen, strconv.FormatBool(open))
}

func (s *Store) get(key string) (string, error) {
	var out string
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			out = string(val)
			return nil
		})
	})
	return out, err
}

func (s *Store) set(key, value string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), []byte(value))
	})
	return errors.Wrapf(err, "store %s", key)
}
