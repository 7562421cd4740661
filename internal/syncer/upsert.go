package syncer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Perth00/wanderplan-sync/internal/cloud"
	syncerrors "github.com/Perth00/wanderplan-sync/internal/errors"
	"github.com/Perth00/wanderplan-sync/internal/model"
)

// upsertActivity creates or updates the cloud document for one
// activity, deciding by a natural-key existence check: an activity with
// the same title and instant under the same trip is the same activity,
// regardless of which sync run uploaded it first. This guards repeated
// pushes against duplicating rows; it is deliberately not a
// full-content diff.
//
// A failed existence check falls back to create, and the local row is
// (re)linked to whichever document the branch lands on.
func (s *Syncer) upsertActivity(ctx context.Context, email, tripCloudID string, trip model.Trip, a model.Activity, imageURL string) error {
	docID, err := s.docs.FindActivity(ctx, email, tripCloudID, a.Title, a.DateTime.UnixMilli())

	switch {
	case err == nil:
		fields := map[string]any{
			"description": a.Description,
			"location":    a.Location,
			"timeString":  a.TimeLabel(),
			"updatedAt":   a.UpdatedAt.UnixMilli(),
		}
		// Only overwrite the stored image URL when migration actually
		// produced one; an empty result must not erase a previous upload.
		if imageURL != "" {
			fields["imageUrl"] = imageURL
		}

		if err := s.docs.UpdateActivity(ctx, email, tripCloudID, docID, fields); err != nil {
			return fmt.Errorf("updating activity %q: %w", a.Title, err)
		}

	case errors.Is(err, syncerrors.ErrDocNotFound):
		docID, err = s.docs.CreateActivity(ctx, email, tripCloudID, cloud.NewActivityDoc(a, trip.StartDate, imageURL))
		if err != nil {
			return fmt.Errorf("creating activity %q: %w", a.Title, err)
		}

	default:
		// The existence check itself failed; create rather than lose
		// the activity. A later run's natural-key match will converge
		// onto one of the documents.
		s.logger.Warn("activity existence check failed, creating",
			slog.String("title", a.Title),
			slog.Any("error", err),
		)

		docID, err = s.docs.CreateActivity(ctx, email, tripCloudID, cloud.NewActivityDoc(a, trip.StartDate, imageURL))
		if err != nil {
			return fmt.Errorf("creating activity %q: %w", a.Title, err)
		}
	}

	if err := s.store.LinkActivityCloudID(ctx, a.ID, docID); err != nil {
		return err
	}

	return nil
}

// upsertExpense applies the same natural-key discipline to budget
// entries, keyed on (title, timestamp) within the trip.
func (s *Syncer) upsertExpense(ctx context.Context, email, tripCloudID string, e model.Expense) error {
	ctx, cancel := context.WithTimeout(ctx, expenseTimeout)
	defer cancel()

	doc := cloud.NewExpenseDoc(e)

	docID, err := s.docs.FindExpense(ctx, email, tripCloudID, e.Title, e.Timestamp.UnixMilli())

	switch {
	case err == nil:
		if err := s.docs.UpdateExpense(ctx, email, tripCloudID, docID, doc); err != nil {
			return fmt.Errorf("updating expense %q: %w", e.Title, err)
		}

	case errors.Is(err, syncerrors.ErrDocNotFound):
		docID, err = s.docs.CreateExpense(ctx, email, tripCloudID, doc)
		if err != nil {
			return fmt.Errorf("creating expense %q: %w", e.Title, err)
		}

	default:
		s.logger.Warn("expense existence check failed, creating",
			slog.String("title", e.Title),
			slog.Any("error", err),
		)

		docID, err = s.docs.CreateExpense(ctx, email, tripCloudID, doc)
		if err != nil {
			return fmt.Errorf("creating expense %q: %w", e.Title, err)
		}
	}

	return s.store.LinkExpenseCloudID(ctx, e.ID, docID)
}

// upsertTrip pushes a trip's scalar fields. A trip already linked to a
// cloud document is updated in place, keeping the cloud id stable; an
// unlinked trip is created fresh and linked. When the linked document
// has vanished remotely, the trip is recreated and relinked rather
// than failed.
func (s *Syncer) upsertTrip(ctx context.Context, email string, trip model.Trip) (string, error) {
	doc := cloud.NewTripDoc(trip)

	if trip.CloudID != "" {
		err := s.docs.UpdateTrip(ctx, email, trip.CloudID, doc)
		if err == nil {
			return trip.CloudID, nil
		}

		if !errors.Is(err, syncerrors.ErrDocNotFound) {
			return "", fmt.Errorf("updating trip %q: %w", trip.Title, err)
		}

		s.logger.Warn("linked trip document missing remotely, recreating",
			slog.String("title", trip.Title),
			slog.String("cloud_id", trip.CloudID),
		)
	}

	docID, err := s.docs.CreateTrip(ctx, email, doc)
	if err != nil {
		return "", fmt.Errorf("creating trip %q: %w", trip.Title, err)
	}

	if err := s.store.LinkTripCloudID(ctx, trip.ID, docID); err != nil {
		return "", err
	}

	return docID, nil
}

// millisNow returns the current instant in epoch milliseconds.
func millisNow() int64 {
	return time.Now().UnixMilli()
}
