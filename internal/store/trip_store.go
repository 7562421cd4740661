package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Perth00/wanderplan-sync/internal/model"
)

// tripRow mirrors the trips table. Timestamps are epoch milliseconds.
type tripRow struct {
	ID          int64   `db:"id"`
	CloudID     string  `db:"cloud_id"`
	Title       string  `db:"title"`
	Destination string  `db:"destination"`
	StartDate   int64   `db:"start_date"`
	EndDate     int64   `db:"end_date"`
	Budget      float64 `db:"budget"`
	CreatedAt   int64   `db:"created_at"`
	UpdatedAt   int64   `db:"updated_at"`
	Synced      bool    `db:"synced"`
}

func (r tripRow) toModel() model.Trip {
	return model.Trip{
		ID:          r.ID,
		CloudID:     r.CloudID,
		Title:       r.Title,
		Destination: r.Destination,
		StartDate:   fromMillis(r.StartDate),
		EndDate:     fromMillis(r.EndDate),
		Budget:      r.Budget,
		CreatedAt:   fromMillis(r.CreatedAt),
		UpdatedAt:   fromMillis(r.UpdatedAt),
		Synced:      r.Synced,
	}
}

const insertTripSQL = `
	INSERT INTO trips (cloud_id, title, destination, start_date, end_date, budget, created_at, updated_at, synced)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

// CreateTrip inserts a trip and assigns its local identifier.
// Creation and update timestamps are set when zero.
func (s *Store) CreateTrip(ctx context.Context, t *model.Trip) error {
	if err := t.Validate(); err != nil {
		return err
	}

	now := time.Now()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}

	if t.UpdatedAt.IsZero() {
		t.UpdatedAt = now
	}

	res, err := s.db.ExecContext(ctx, insertTripSQL,
		t.CloudID, t.Title, t.Destination,
		millis(t.StartDate), millis(t.EndDate), t.Budget,
		millis(t.CreatedAt), millis(t.UpdatedAt), t.Synced,
	)
	if err != nil {
		return fmt.Errorf("inserting trip: %w", err)
	}

	t.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading trip id: %w", err)
	}

	return nil
}

// GetTrip returns a trip by its local identifier.
func (s *Store) GetTrip(ctx context.Context, id int64) (*model.Trip, error) {
	var r tripRow

	err := s.db.GetContext(ctx, &r, "SELECT * FROM trips WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("trip %d not found", id)
	}

	if err != nil {
		return nil, fmt.Errorf("loading trip %d: %w", id, err)
	}

	t := r.toModel()

	return &t, nil
}

// AllTrips returns every trip in natural row order. Push walks this
// list sequentially so progress stays monotonic.
func (s *Store) AllTrips(ctx context.Context) ([]model.Trip, error) {
	var rows []tripRow
	if err := s.db.SelectContext(ctx, &rows, "SELECT * FROM trips ORDER BY id"); err != nil {
		return nil, fmt.Errorf("loading trips: %w", err)
	}

	trips := make([]model.Trip, 0, len(rows))
	for _, r := range rows {
		trips = append(trips, r.toModel())
	}

	return trips, nil
}

// UnsyncedTrips returns trips whose synced flag is unset.
func (s *Store) UnsyncedTrips(ctx context.Context) ([]model.Trip, error) {
	var rows []tripRow
	if err := s.db.SelectContext(ctx, &rows, "SELECT * FROM trips WHERE synced = 0 ORDER BY id"); err != nil {
		return nil, fmt.Errorf("loading unsynced trips: %w", err)
	}

	trips := make([]model.Trip, 0, len(rows))
	for _, r := range rows {
		trips = append(trips, r.toModel())
	}

	return trips, nil
}

// UpdateTrip rewrites a trip's user-editable fields and clears the
// synced flag so the next push uploads the change. The cloud id is
// deliberately not touched here; linkage goes through LinkTripCloudID.
func (s *Store) UpdateTrip(ctx context.Context, t *model.Trip) error {
	if err := t.Validate(); err != nil {
		return err
	}

	t.UpdatedAt = time.Now()
	t.Synced = false

	_, err := s.db.ExecContext(ctx, `
		UPDATE trips
		SET title = ?, destination = ?, start_date = ?, end_date = ?, budget = ?, updated_at = ?, synced = 0
		WHERE id = ?`,
		t.Title, t.Destination, millis(t.StartDate), millis(t.EndDate), t.Budget, millis(t.UpdatedAt), t.ID,
	)
	if err != nil {
		return fmt.Errorf("updating trip %d: %w", t.ID, err)
	}

	return nil
}

// DeleteTrip removes a trip. Owned activities and expenses go with it
// via the foreign-key cascade.
func (s *Store) DeleteTrip(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM trips WHERE id = ?", id); err != nil {
		return fmt.Errorf("deleting trip %d: %w", id, err)
	}

	return nil
}

// LinkTripCloudID persists the cloud document id for a local trip and
// marks the row synced. Idempotent; calling it again with a different
// cloud id overwrites the mapping (the upsert resolver uses this when
// it discovers an existing remote document).
func (s *Store) LinkTripCloudID(ctx context.Context, id int64, cloudID string) error {
	_, err := s.db.ExecContext(ctx,
		"UPDATE trips SET cloud_id = ?, synced = 1 WHERE id = ?", cloudID, id)
	if err != nil {
		return fmt.Errorf("linking trip %d to cloud doc %s: %w", id, cloudID, err)
	}

	return nil
}
