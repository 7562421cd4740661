package store

import (
	"context"
	"fmt"

	"github.com/Perth00/wanderplan-sync/internal/model"
)

// RestoreResult reports what a RestoreAll call inserted.
type RestoreResult struct {
	Trips      int
	Activities int
	Expenses   int
	Skipped    int
}

// RestoreAll replaces the entire local dataset with the given cloud
// backups inside a single transaction, so a crash mid-restore cannot
// leave the store half-cleared.
//
// Trips are inserted one at a time: each trip needs its freshly
// assigned local id before its activities and expenses can be inserted
// with the correct foreign key. Individual insert failures are skipped
// and counted rather than failing the restore (a bad trip also skips
// its children, which have no valid parent row).
func (s *Store) RestoreAll(ctx context.Context, backups []model.TripBackup) (RestoreResult, error) {
	var res RestoreResult

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return res, fmt.Errorf("beginning restore transaction: %w", err)
	}
	defer tx.Rollback()

	// Cloud is authoritative on restore: clear everything first.
	// Activities and expenses go with their trips via the cascade.
	if _, err := tx.ExecContext(ctx, "DELETE FROM trips"); err != nil {
		return res, fmt.Errorf("clearing local trips: %w", err)
	}

	for _, b := range backups {
		t := b.Trip

		r, err := tx.ExecContext(ctx, insertTripSQL,
			t.CloudID, t.Title, t.Destination,
			millis(t.StartDate), millis(t.EndDate), t.Budget,
			millis(t.CreatedAt), millis(t.UpdatedAt), t.Synced,
		)
		if err != nil {
			res.Skipped += 1 + len(b.Activities) + len(b.Expenses)
			continue
		}

		tripID, err := r.LastInsertId()
		if err != nil {
			res.Skipped += 1 + len(b.Activities) + len(b.Expenses)
			continue
		}

		res.Trips++

		for _, a := range b.Activities {
			_, err := tx.ExecContext(ctx, insertActivitySQL,
				tripID, a.CloudID, a.Title, a.Description, a.Location, millis(a.DateTime),
				a.LocalImageRef, a.ImageURL, a.Latitude, a.Longitude,
				millis(a.CreatedAt), millis(a.UpdatedAt), a.Synced,
			)
			if err != nil {
				res.Skipped++
				continue
			}

			res.Activities++
		}

		for _, e := range b.Expenses {
			id := e.ID
			if id == "" {
				id = model.NewExpenseID()
			}

			_, err := tx.ExecContext(ctx, insertExpenseSQL,
				id, tripID, e.CloudID, e.Title, e.Amount, string(e.Category),
				millis(e.Timestamp), e.Note, e.Synced,
			)
			if err != nil {
				res.Skipped++
				continue
			}

			res.Expenses++
		}
	}

	if err := tx.Commit(); err != nil {
		return RestoreResult{}, fmt.Errorf("committing restore: %w", err)
	}

	return res, nil
}
