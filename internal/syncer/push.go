package syncer

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/Perth00/wanderplan-sync/internal/account"
	"github.com/Perth00/wanderplan-sync/internal/cloud"
	"github.com/Perth00/wanderplan-sync/internal/model"
)

// Progress milestones for a push run. Trips are scaled across the
// range between the probe and the summary so the bar stays monotonic.
const (
	pushProbePct   = 5
	pushTripsEnd   = 90
	pushSummaryPct = 95
	pushDonePct    = 100
)

// Push uploads every local trip, its activities and its budget entries
// to the cloud store, reporting coarse progress along the way.
//
// Per-trip, per-activity and per-expense failures are isolated: they
// are logged, excluded from the counts and the batch continues. Only
// a missing account or a failed connectivity probe aborts the run.
// Pushes for the same account are single-flighted; a second trigger
// while one is in flight joins the running push instead of racing it.
func (s *Syncer) Push(ctx context.Context, progress ProgressFunc) (Result, error) {
	if err := account.Verify(s.provider); err != nil {
		return Result{}, err
	}

	v, err, _ := s.flights.Do(s.provider.Email(), func() (any, error) {
		return s.push(ctx, progress)
	})
	if err != nil {
		return Result{}, err
	}

	return v.(Result), nil
}

func (s *Syncer) push(ctx context.Context, progress ProgressFunc) (Result, error) {
	email := s.provider.Email()

	if err := s.tracker.RecordSyncStarted(); err != nil {
		return Result{}, fmt.Errorf("recording sync start: %w", err)
	}

	report(progress, 0, "Checking connection")

	if err := s.docs.Ping(ctx); err != nil {
		s.recordFailure()
		return Result{}, err
	}

	trips, err := s.store.AllTrips(ctx)
	if err != nil {
		s.recordFailure()
		return Result{}, fmt.Errorf("loading local trips: %w", err)
	}

	report(progress, pushProbePct, fmt.Sprintf("Syncing %d trips", len(trips)))

	var result Result

	for i, trip := range trips {
		report(progress, tripPercent(i, len(trips)),
			fmt.Sprintf("Syncing trip %d of %d: %s", i+1, len(trips), trip.Title))

		activities, err := s.pushTrip(ctx, email, trip)
		if err != nil {
			// One bad trip does not fail the batch.
			s.logger.Error("trip sync failed",
				slog.String("title", trip.Title),
				slog.Any("error", err),
			)

			continue
		}

		result.Trips++
		result.Activities += activities
	}

	report(progress, pushSummaryPct, "Writing sync summary")

	summary := cloud.SummaryDoc{
		TripsSynced:      result.Trips,
		ActivitiesSynced: result.Activities,
		SyncedAt:         millisNow(),
		Platform:         cloud.Platform,
	}
	if err := s.docs.PutSummary(ctx, email, summary); err != nil {
		// The summary is bookkeeping; its failure does not undo the push.
		s.logger.Warn("writing sync summary failed", slog.Any("error", err))
	}

	if err := s.tracker.RecordSuccessfulSync(result.Trips, result.Activities); err != nil {
		s.logger.Warn("recording sync state failed", slog.Any("error", err))
	}

	report(progress, pushDonePct, "Sync complete")

	s.logger.Info("push complete",
		slog.Int("trips", result.Trips),
		slog.Int("activities", result.Activities),
	)

	return result, nil
}

// pushTrip uploads one trip and everything it owns. Returns the number
// of activities that synced.
func (s *Syncer) pushTrip(ctx context.Context, email string, trip model.Trip) (int, error) {
	tripCloudID, err := s.upsertTrip(ctx, email, trip)
	if err != nil {
		return 0, err
	}

	activities, err := s.store.ActivitiesForTrip(ctx, trip.ID)
	if err != nil {
		return 0, fmt.Errorf("loading activities: %w", err)
	}

	synced := s.pushActivities(ctx, email, tripCloudID, trip, activities)

	s.pushExpenses(ctx, email, tripCloudID, trip)

	return synced, nil
}

// pushActivities fans the trip's activities out over a bounded worker
// group and joins before returning, so a failure in any worker can
// never leave the trip waiting on a completion signal that will not
// come. Individual failures are logged and excluded from the count.
func (s *Syncer) pushActivities(ctx context.Context, email, tripCloudID string, trip model.Trip, activities []model.Activity) int {
	var synced atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(activityWorkers)

	for _, a := range activities {
		a := a
		g.Go(func() error {
			imageURL := s.resolveImage(gctx, a)

			if err := s.upsertActivity(gctx, email, tripCloudID, trip, a, imageURL); err != nil {
				s.logger.Error("activity sync failed",
					slog.String("title", a.Title),
					slog.Any("error", err),
				)

				return nil
			}

			synced.Add(1)

			return nil
		})
	}

	// Workers always return nil; the join is what matters.
	_ = g.Wait()

	return int(synced.Load())
}

// resolveImage migrates the activity's image reference to a remote URL.
// Every failure degrades to "no image" rather than failing the
// activity. A fresh migration is persisted locally so the next push
// passes the remote URL straight through.
func (s *Syncer) resolveImage(ctx context.Context, a model.Activity) string {
	ref := a.LocalImageRef
	if ref == "" {
		return a.ImageURL
	}

	url, err := s.migrator.MigrateActivityImage(ctx, ref, a.Title)
	if err != nil {
		s.logger.Warn("image migration failed, syncing without image",
			slog.String("activity", a.Title),
			slog.Any("error", err),
		)

		return ""
	}

	if err := s.store.SetActivityImageURL(ctx, a.ID, url); err != nil {
		s.logger.Warn("recording migrated image url failed", slog.Any("error", err))
	}

	return url
}

// pushExpenses uploads the trip's budget entries sequentially. Budget
// failures are swallowed: they are logged and the trip still counts as
// synced.
func (s *Syncer) pushExpenses(ctx context.Context, email, tripCloudID string, trip model.Trip) {
	expenses, err := s.store.ExpensesForTrip(ctx, trip.ID)
	if err != nil {
		s.logger.Warn("loading expenses failed",
			slog.String("trip", trip.Title),
			slog.Any("error", err),
		)

		return
	}

	for _, e := range expenses {
		if err := s.upsertExpense(ctx, email, tripCloudID, e); err != nil {
			s.logger.Warn("expense sync failed",
				slog.String("title", e.Title),
				slog.Any("error", err),
			)
		}
	}
}

func (s *Syncer) recordFailure() {
	if err := s.tracker.RecordFailedSync(); err != nil {
		s.logger.Warn("recording failed sync failed", slog.Any("error", err))
	}
}

// tripPercent scales trip index i of n into the push progress range.
func tripPercent(i, n int) int {
	if n == 0 {
		return pushTripsEnd
	}

	return pushProbePct + (pushTripsEnd-pushProbePct)*i/n
}
