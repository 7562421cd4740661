package state

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

const (
	// stateDirPerm is the permission mode for the state directory (~/.wanderplan/).
	stateDirPerm = fs.FileMode(0o700)

	// stateFilePerm is the permission mode for the state database file.
	stateFilePerm = fs.FileMode(0o600)

	// stateOpenTimeout is the maximum time to wait for the bolt database lock.
	stateOpenTimeout = 5 * time.Second

	// autoSyncInterval is how stale the last successful sync may get
	// before an automatic sync is considered due.
	autoSyncInterval = 24 * time.Hour
)

var (
	appBucket  = []byte("app")
	syncKey    = []byte("sync")
	sessionKey = []byte("session")
)

// Status records the outcome of the most recent sync attempt.
type Status string

const (
	StatusNever      Status = "never"
	StatusInProgress Status = "in_progress"
	StatusSuccess    Status = "success"
	StatusFailed     Status = "failed"
)

// SyncState is the persisted process-wide sync record.
type SyncState struct {
	LastSync   int64  `json:"last_sync"` // unix milliseconds, 0 = never
	Status     Status `json:"status"`
	Trips      int    `json:"trips"`
	Activities int    `json:"activities"`

	AutoSync    bool `json:"auto_sync"`
	SyncOnLogin bool `json:"sync_on_login"`
}

// Session caches the authenticated account between runs so a restore
// can be launched without re-entering credentials.
type Session struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Token  string `json:"token"`
}

// Tracker wraps a bbolt database holding the persisted sync state.
type Tracker struct {
	db *bolt.DB
}

// Load opens the state database at ~/.wanderplan/sync-state.db, creating
// it if it does not exist.
func Load() (*Tracker, error) {
	return LoadAt(dbPath())
}

// LoadAt opens a state database at the given path, creating it if it
// does not exist. Useful for tests that need an isolated database.
func LoadAt(path string) (*Tracker, error) {
	if err := os.MkdirAll(filepath.Dir(path), stateDirPerm); err != nil {
		return nil, fmt.Errorf("creating state directory: %w", err)
	}

	db, err := bolt.Open(path, stateFilePerm, &bolt.Options{Timeout: stateOpenTimeout})
	if err != nil {
		return nil, fmt.Errorf("opening state db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(appBucket)

		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing state db: %w", err)
	}

	return &Tracker{db: db}, nil
}

// Close closes the database.
func (t *Tracker) Close() error {
	return t.db.Close()
}

// Get returns the current sync state. A fresh database reports
// StatusNever with automatic sync enabled.
func (t *Tracker) Get() (SyncState, error) {
	st := SyncState{Status: StatusNever, AutoSync: true, SyncOnLogin: true}
	err := t.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(appBucket).Get(syncKey)
		if v == nil {
			return nil
		}

		return json.Unmarshal(v, &st)
	})

	return st, err
}

func (t *Tracker) put(st SyncState) error {
	return t.db.Update(func(tx *bolt.Tx) error {
		data, err := json.Marshal(st)
		if err != nil {
			return err
		}

		return tx.Bucket(appBucket).Put(syncKey, data)
	})
}

// RecordSyncStarted marks a sync as in progress without touching the
// last success timestamp or counts.
func (t *Tracker) RecordSyncStarted() error {
	st, err := t.Get()
	if err != nil {
		return err
	}

	st.Status = StatusInProgress

	return t.put(st)
}

// RecordSuccessfulSync stores the outcome of a completed sync run.
func (t *Tracker) RecordSuccessfulSync(trips, activities int) error {
	st, err := t.Get()
	if err != nil {
		return err
	}

	st.LastSync = time.Now().UnixMilli()
	st.Status = StatusSuccess
	st.Trips = trips
	st.Activities = activities

	return t.put(st)
}

// RecordFailedSync marks the last attempt as failed. Counts from the
// previous successful run are preserved.
func (t *Tracker) RecordFailedSync() error {
	st, err := t.Get()
	if err != nil {
		return err
	}

	st.Status = StatusFailed

	return t.put(st)
}

// SetAutoSync toggles the automatic-sync preference.
func (t *Tracker) SetAutoSync(enabled bool) error {
	st, err := t.Get()
	if err != nil {
		return err
	}

	st.AutoSync = enabled

	return t.put(st)
}

// SetSyncOnLogin toggles the sync-on-login preference.
func (t *Tracker) SetSyncOnLogin(enabled bool) error {
	st, err := t.Get()
	if err != nil {
		return err
	}

	st.SyncOnLogin = enabled

	return t.put(st)
}

// IsSyncNeeded reports whether a time-based automatic sync is due:
// automatic sync is enabled and the last successful sync is either
// absent, older than 24 hours, or was followed by a failure.
func (t *Tracker) IsSyncNeeded(now time.Time) (bool, error) {
	st, err := t.Get()
	if err != nil {
		return false, err
	}

	if !st.AutoSync {
		return false, nil
	}

	if st.Status == StatusFailed {
		return true, nil
	}

	if st.LastSync == 0 {
		return true, nil
	}

	return now.Sub(time.UnixMilli(st.LastSync)) > autoSyncInterval, nil
}

// Session returns the cached account session, or nil when none is stored.
func (t *Tracker) Session() (*Session, error) {
	var s *Session

	err := t.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(appBucket).Get(sessionKey)
		if v == nil {
			return nil
		}

		s = &Session{}

		return json.Unmarshal(v, s)
	})

	return s, err
}

// SetSession persists the account session.
func (t *Tracker) SetSession(s Session) error {
	return t.db.Update(func(tx *bolt.Tx) error {
		data, err := json.Marshal(s)
		if err != nil {
			return err
		}

		return tx.Bucket(appBucket).Put(sessionKey, data)
	})
}

// ClearSession removes the cached account session.
func (t *Tracker) ClearSession() error {
	return t.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(appBucket).Delete(sessionKey)
	})
}

func dbPath() string {
	dir, err := os.UserHomeDir()
	if err != nil {
		// Fail loudly rather than silently writing to the current directory
		// where the database (containing the session token) might end up
		// with wrong permissions or inside a source-controlled tree.
		fmt.Fprintf(os.Stderr, "fatal: cannot determine home directory: %v\n", err)
		os.Exit(1)
	}

	return filepath.Join(dir, ".wanderplan", "sync-state.db")
}
