package store

import (
	"context"
	"fmt"
	"time"

	"github.com/Perth00/wanderplan-sync/internal/model"
)

type activityRow struct {
	ID            int64   `db:"id"`
	TripID        int64   `db:"trip_id"`
	CloudID       string  `db:"cloud_id"`
	Title         string  `db:"title"`
	Description   string  `db:"description"`
	Location      string  `db:"location"`
	DateTime      int64   `db:"date_time"`
	LocalImageRef string  `db:"local_image_ref"`
	ImageURL      string  `db:"image_url"`
	Latitude      float64 `db:"latitude"`
	Longitude     float64 `db:"longitude"`
	CreatedAt     int64   `db:"created_at"`
	UpdatedAt     int64   `db:"updated_at"`
	Synced        bool    `db:"synced"`
}

func (r activityRow) toModel() model.Activity {
	return model.Activity{
		ID:            r.ID,
		TripID:        r.TripID,
		CloudID:       r.CloudID,
		Title:         r.Title,
		Description:   r.Description,
		Location:      r.Location,
		DateTime:      fromMillis(r.DateTime),
		LocalImageRef: r.LocalImageRef,
		ImageURL:      r.ImageURL,
		Latitude:      r.Latitude,
		Longitude:     r.Longitude,
		CreatedAt:     fromMillis(r.CreatedAt),
		UpdatedAt:     fromMillis(r.UpdatedAt),
		Synced:        r.Synced,
	}
}

const insertActivitySQL = `
	INSERT INTO activities (trip_id, cloud_id, title, description, location, date_time,
		local_image_ref, image_url, latitude, longitude, created_at, updated_at, synced)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

// CreateActivity inserts an activity and assigns its local identifier.
func (s *Store) CreateActivity(ctx context.Context, a *model.Activity) error {
	now := time.Now()
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}

	if a.UpdatedAt.IsZero() {
		a.UpdatedAt = now
	}

	res, err := s.db.ExecContext(ctx, insertActivitySQL,
		a.TripID, a.CloudID, a.Title, a.Description, a.Location, millis(a.DateTime),
		a.LocalImageRef, a.ImageURL, a.Latitude, a.Longitude,
		millis(a.CreatedAt), millis(a.UpdatedAt), a.Synced,
	)
	if err != nil {
		return fmt.Errorf("inserting activity: %w", err)
	}

	a.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading activity id: %w", err)
	}

	return nil
}

// ActivitiesForTrip returns a trip's activities ordered by date.
func (s *Store) ActivitiesForTrip(ctx context.Context, tripID int64) ([]model.Activity, error) {
	var rows []activityRow

	err := s.db.SelectContext(ctx, &rows,
		"SELECT * FROM activities WHERE trip_id = ? ORDER BY date_time, id", tripID)
	if err != nil {
		return nil, fmt.Errorf("loading activities for trip %d: %w", tripID, err)
	}

	activities := make([]model.Activity, 0, len(rows))
	for _, r := range rows {
		activities = append(activities, r.toModel())
	}

	return activities, nil
}

// UnsyncedActivities returns activities whose synced flag is unset.
func (s *Store) UnsyncedActivities(ctx context.Context) ([]model.Activity, error) {
	var rows []activityRow

	err := s.db.SelectContext(ctx, &rows,
		"SELECT * FROM activities WHERE synced = 0 ORDER BY trip_id, date_time, id")
	if err != nil {
		return nil, fmt.Errorf("loading unsynced activities: %w", err)
	}

	activities := make([]model.Activity, 0, len(rows))
	for _, r := range rows {
		activities = append(activities, r.toModel())
	}

	return activities, nil
}

// UpdateActivity rewrites an activity's user-editable fields and clears
// the synced flag.
func (s *Store) UpdateActivity(ctx context.Context, a *model.Activity) error {
	a.UpdatedAt = time.Now()
	a.Synced = false

	_, err := s.db.ExecContext(ctx, `
		UPDATE activities
		SET title = ?, description = ?, location = ?, date_time = ?,
			local_image_ref = ?, image_url = ?, latitude = ?, longitude = ?,
			updated_at = ?, synced = 0
		WHERE id = ?`,
		a.Title, a.Description, a.Location, millis(a.DateTime),
		a.LocalImageRef, a.ImageURL, a.Latitude, a.Longitude,
		millis(a.UpdatedAt), a.ID,
	)
	if err != nil {
		return fmt.Errorf("updating activity %d: %w", a.ID, err)
	}

	return nil
}

// DeleteActivity removes a single activity.
func (s *Store) DeleteActivity(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM activities WHERE id = ?", id); err != nil {
		return fmt.Errorf("deleting activity %d: %w", id, err)
	}

	return nil
}

// SetActivityImageURL records the migrated remote image URL for an
// activity, clearing the local reference per the exclusivity rule.
func (s *Store) SetActivityImageURL(ctx context.Context, id int64, url string) error {
	_, err := s.db.ExecContext(ctx,
		"UPDATE activities SET image_url = ?, local_image_ref = '' WHERE id = ?", url, id)
	if err != nil {
		return fmt.Errorf("recording image url for activity %d: %w", id, err)
	}

	return nil
}

// LinkActivityCloudID persists the cloud document id for a local
// activity and marks the row synced. Same idempotence and overwrite
// semantics as LinkTripCloudID.
func (s *Store) LinkActivityCloudID(ctx context.Context, id int64, cloudID string) error {
	_, err := s.db.ExecContext(ctx,
		"UPDATE activities SET cloud_id = ?, synced = 1 WHERE id = ?", cloudID, id)
	if err != nil {
		return fmt.Errorf("linking activity %d to cloud doc %s: %w", id, cloudID, err)
	}

	return nil
}
