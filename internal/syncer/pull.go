package syncer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Perth00/wanderplan-sync/internal/account"
	"github.com/Perth00/wanderplan-sync/internal/cloud"
	"github.com/Perth00/wanderplan-sync/internal/model"
)

// Restore replaces the local dataset with the account's cloud trips.
// The cloud is authoritative: local trips and activities are cleared
// and reinserted from the downloaded documents, inside one local
// transaction so a crash cannot leave the store half-cleared.
//
// Restore is best-effort, not transactional against the cloud: a
// document that fails to convert or insert is logged and skipped, and
// the restore continues with the next one. An account with no cloud
// data reports zero/zero success.
func (s *Syncer) Restore(ctx context.Context, progress ProgressFunc) (Result, error) {
	if err := account.Verify(s.provider); err != nil {
		return Result{}, err
	}

	email := s.provider.Email()

	report(progress, 0, "Fetching cloud trips")

	tripDocs, err := s.docs.ListTrips(ctx, email)
	if err != nil {
		return Result{}, fmt.Errorf("listing cloud trips: %w", err)
	}

	if len(tripDocs) == 0 {
		report(progress, 100, "No cloud data to restore")
		return Result{}, nil
	}

	backups := make([]model.TripBackup, 0, len(tripDocs))

	for i, doc := range tripDocs {
		report(progress, 10+80*i/len(tripDocs),
			fmt.Sprintf("Downloading trip %d of %d", i+1, len(tripDocs)))

		backups = append(backups, s.downloadTrip(ctx, email, doc))
	}

	report(progress, 90, "Rebuilding local database")

	res, err := s.store.RestoreAll(ctx, backups)
	if err != nil {
		return Result{}, fmt.Errorf("rebuilding local store: %w", err)
	}

	if res.Skipped > 0 {
		s.logger.Warn("restore skipped records", slog.Int("skipped", res.Skipped))
	}

	report(progress, 100, "Restore complete")

	s.logger.Info("restore complete",
		slog.Int("trips", res.Trips),
		slog.Int("activities", res.Activities),
		slog.Int("expenses", res.Expenses),
	)

	return Result{Trips: res.Trips, Activities: res.Activities}, nil
}

// downloadTrip converts one cloud trip document and its children into
// a backup bundle. Conversion is tolerant by construction; listing
// failures for children degrade to an empty list so the trip itself
// still restores.
func (s *Syncer) downloadTrip(ctx context.Context, email string, doc cloud.Document) model.TripBackup {
	backup := model.TripBackup{Trip: cloud.ParseTrip(doc)}

	activityDocs, err := s.docs.ListActivities(ctx, email, doc.ID)
	if err != nil {
		s.logger.Warn("listing cloud activities failed, restoring trip without them",
			slog.String("trip", backup.Trip.Title),
			slog.Any("error", err),
		)
	}

	for _, ad := range activityDocs {
		backup.Activities = append(backup.Activities, cloud.ParseActivity(ad))
	}

	expenseDocs, err := s.docs.ListExpenses(ctx, email, doc.ID)
	if err != nil {
		s.logger.Warn("listing cloud expenses failed, restoring trip without them",
			slog.String("trip", backup.Trip.Title),
			slog.Any("error", err),
		)
	}

	for _, ed := range expenseDocs {
		backup.Expenses = append(backup.Expenses, cloud.ParseExpense(ed))
	}

	return backup
}
