// Package syncer reconciles the local relational store with the cloud
// document store: push walks local trips up to the cloud, restore pulls
// the cloud's trips down over the local state.
package syncer

import (
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/Perth00/wanderplan-sync/internal/account"
	"github.com/Perth00/wanderplan-sync/internal/asset"
	"github.com/Perth00/wanderplan-sync/internal/cloud"
	"github.com/Perth00/wanderplan-sync/internal/state"
	"github.com/Perth00/wanderplan-sync/internal/store"
)

const (
	// expenseTimeout bounds a single budget-entry upload; a hung entry
	// fails alone instead of stalling the trip.
	expenseTimeout = 30 * time.Second

	// activityWorkers caps the concurrent image-migrate/upsert workers
	// per trip. Image decode is the heavy part, so this also bounds
	// decoder memory.
	activityWorkers = 4
)

// ProgressFunc receives coarse-grained progress: a 0..100 percentage
// and a short human-readable message. Implementations must be safe to
// call from the sync goroutine.
type ProgressFunc func(percent int, message string)

// Result reports how many entities a completed run synchronized.
// Partial failures reduce the counts rather than failing the run.
type Result struct {
	Trips      int
	Activities int
}

// Syncer drives push and restore for one account. Construct it once
// with its collaborators; there is no hidden global state.
type Syncer struct {
	store    *store.Store
	docs     cloud.DocStore
	migrator *asset.Migrator
	tracker  *state.Tracker
	provider account.Provider
	logger   *slog.Logger

	// flights serializes pushes per account so two UI triggers cannot
	// race each other through the duplicate-detection window.
	flights singleflight.Group
}

// New creates a Syncer.
func New(
	st *store.Store,
	docs cloud.DocStore,
	migrator *asset.Migrator,
	tracker *state.Tracker,
	provider account.Provider,
	logger *slog.Logger,
) *Syncer {
	return &Syncer{
		store:    st,
		docs:     docs,
		migrator: migrator,
		tracker:  tracker,
		provider: provider,
		logger:   logger,
	}
}

// report invokes progress if set.
func report(progress ProgressFunc, percent int, message string) {
	if progress != nil {
		progress(percent, message)
	}
}
