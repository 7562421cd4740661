package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Perth00/wanderplan-sync/internal/model"
)

func newStore(t *testing.T) *Store {
	t.Helper()

	s, err := New(filepath.Join(t.TempDir(), "wanderplan.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	return s
}

func newTrip(title string) *model.Trip {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	return &model.Trip{
		Title:       title,
		Destination: "Paris, France",
		StartDate:   start,
		EndDate:     start.Add(5 * 24 * time.Hour),
		Budget:      500,
	}
}

func TestCreateAndGetTrip(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	trip := newTrip("Paris Adventure")
	require.NoError(t, s.CreateTrip(ctx, trip))
	require.NotZero(t, trip.ID)

	got, err := s.GetTrip(ctx, trip.ID)
	require.NoError(t, err)

	assert.Equal(t, "Paris Adventure", got.Title)
	assert.Equal(t, "Paris, France", got.Destination)
	assert.True(t, got.StartDate.Equal(trip.StartDate))
	assert.False(t, got.Synced)
	assert.Empty(t, got.CloudID)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestCreateTripRejectsInvertedDates(t *testing.T) {
	s := newStore(t)

	trip := newTrip("Backwards")
	trip.EndDate = trip.StartDate.Add(-time.Hour)

	assert.Error(t, s.CreateTrip(context.Background(), trip))
}

func TestGetTripNotFound(t *testing.T) {
	s := newStore(t)

	_, err := s.GetTrip(context.Background(), 999)
	assert.ErrorContains(t, err, "not found")
}

func TestAllTripsNaturalOrder(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	for _, title := range []string{"First", "Second", "Third"} {
		require.NoError(t, s.CreateTrip(ctx, newTrip(title)))
	}

	trips, err := s.AllTrips(ctx)
	require.NoError(t, err)
	require.Len(t, trips, 3)

	assert.Equal(t, "First", trips[0].Title)
	assert.Equal(t, "Second", trips[1].Title)
	assert.Equal(t, "Third", trips[2].Title)
}

func TestUpdateTripClearsSyncedFlag(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	trip := newTrip("Paris Adventure")
	require.NoError(t, s.CreateTrip(ctx, trip))
	require.NoError(t, s.LinkTripCloudID(ctx, trip.ID, "cloud-1"))

	trip.Destination = "Lyon, France"
	require.NoError(t, s.UpdateTrip(ctx, trip))

	got, err := s.GetTrip(ctx, trip.ID)
	require.NoError(t, err)

	assert.Equal(t, "Lyon, France", got.Destination)
	assert.False(t, got.Synced)
	// Cloud linkage survives edits: only the mapper rewrites it.
	assert.Equal(t, "cloud-1", got.CloudID)
}

func TestLinkTripCloudID(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	trip := newTrip("Paris Adventure")
	require.NoError(t, s.CreateTrip(ctx, trip))

	require.NoError(t, s.LinkTripCloudID(ctx, trip.ID, "cloud-1"))

	got, err := s.GetTrip(ctx, trip.ID)
	require.NoError(t, err)
	assert.Equal(t, "cloud-1", got.CloudID)
	assert.True(t, got.Synced)

	// Idempotent re-link.
	require.NoError(t, s.LinkTripCloudID(ctx, trip.ID, "cloud-1"))

	got, err = s.GetTrip(ctx, trip.ID)
	require.NoError(t, err)
	assert.Equal(t, "cloud-1", got.CloudID)

	// Remap overwrites, for when the upsert resolver finds the real doc.
	require.NoError(t, s.LinkTripCloudID(ctx, trip.ID, "cloud-2"))

	got, err = s.GetTrip(ctx, trip.ID)
	require.NoError(t, err)
	assert.Equal(t, "cloud-2", got.CloudID)
}

func TestCascadeDelete(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	trip := newTrip("Paris Adventure")
	require.NoError(t, s.CreateTrip(ctx, trip))

	a := &model.Activity{TripID: trip.ID, Title: "Visit Eiffel Tower", DateTime: trip.StartDate.Add(2 * time.Hour)}
	require.NoError(t, s.CreateActivity(ctx, a))

	e := &model.Expense{TripID: trip.ID, Title: "Hotel", Amount: 150, Category: model.CategoryHotel}
	require.NoError(t, s.CreateExpense(ctx, e))

	require.NoError(t, s.DeleteTrip(ctx, trip.ID))

	activities, err := s.ActivitiesForTrip(ctx, trip.ID)
	require.NoError(t, err)
	assert.Empty(t, activities)

	expenses, err := s.ExpensesForTrip(ctx, trip.ID)
	require.NoError(t, err)
	assert.Empty(t, expenses)
}

func TestActivityRoundTrip(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	trip := newTrip("Paris Adventure")
	require.NoError(t, s.CreateTrip(ctx, trip))

	a := &model.Activity{
		TripID:      trip.ID,
		Title:       "Visit Eiffel Tower",
		Description: "Go early",
		Location:    "Champ de Mars",
		DateTime:    trip.StartDate.Add(2 * time.Hour),
		Latitude:    48.8584,
		Longitude:   2.2945,
	}
	a.SetLocalImage("content://gallery/42")
	require.NoError(t, s.CreateActivity(ctx, a))
	require.NotZero(t, a.ID)

	activities, err := s.ActivitiesForTrip(ctx, trip.ID)
	require.NoError(t, err)
	require.Len(t, activities, 1)

	got := activities[0]
	assert.Equal(t, "Visit Eiffel Tower", got.Title)
	assert.Equal(t, "content://gallery/42", got.LocalImageRef)
	assert.Empty(t, got.ImageURL)
	assert.Equal(t, 1, got.DayNumber(trip.StartDate))
	assert.InDelta(t, 48.8584, got.Latitude, 0.0001)
}

func TestSetActivityImageURL(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	trip := newTrip("Paris Adventure")
	require.NoError(t, s.CreateTrip(ctx, trip))

	a := &model.Activity{TripID: trip.ID, Title: "Louvre", DateTime: trip.StartDate}
	a.SetLocalImage("content://gallery/7")
	require.NoError(t, s.CreateActivity(ctx, a))

	url := "https://blobs.example.com/activity_images/louvre_1735722000000.jpg"
	require.NoError(t, s.SetActivityImageURL(ctx, a.ID, url))

	activities, err := s.ActivitiesForTrip(ctx, trip.ID)
	require.NoError(t, err)
	require.Len(t, activities, 1)

	assert.Equal(t, url, activities[0].ImageURL)
	assert.Empty(t, activities[0].LocalImageRef, "local ref must be cleared when a remote URL is set")
}

func TestUnsyncedQueries(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	t1 := newTrip("Synced")
	t2 := newTrip("Pending")
	require.NoError(t, s.CreateTrip(ctx, t1))
	require.NoError(t, s.CreateTrip(ctx, t2))
	require.NoError(t, s.LinkTripCloudID(ctx, t1.ID, "cloud-1"))

	trips, err := s.UnsyncedTrips(ctx)
	require.NoError(t, err)
	require.Len(t, trips, 1)
	assert.Equal(t, "Pending", trips[0].Title)

	a1 := &model.Activity{TripID: t1.ID, Title: "Done", DateTime: t1.StartDate}
	a2 := &model.Activity{TripID: t2.ID, Title: "Todo", DateTime: t2.StartDate}
	require.NoError(t, s.CreateActivity(ctx, a1))
	require.NoError(t, s.CreateActivity(ctx, a2))
	require.NoError(t, s.LinkActivityCloudID(ctx, a1.ID, "cloud-a1"))

	activities, err := s.UnsyncedActivities(ctx)
	require.NoError(t, err)
	require.Len(t, activities, 1)
	assert.Equal(t, "Todo", activities[0].Title)
}

func TestExpenseDefaults(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	trip := newTrip("Paris Adventure")
	require.NoError(t, s.CreateTrip(ctx, trip))

	e := &model.Expense{TripID: trip.ID, Title: "Dinner", Amount: 45, Category: "nonsense"}
	require.NoError(t, s.CreateExpense(ctx, e))

	assert.NotEmpty(t, e.ID)

	expenses, err := s.ExpensesForTrip(ctx, trip.ID)
	require.NoError(t, err)
	require.Len(t, expenses, 1)

	assert.Equal(t, model.CategoryOther, expenses[0].Category)
	assert.False(t, expenses[0].Timestamp.IsZero())
}

func TestRestoreAllReplacesLocalState(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	stale := newTrip("Stale Local Trip")
	require.NoError(t, s.CreateTrip(ctx, stale))
	require.NoError(t, s.CreateActivity(ctx, &model.Activity{TripID: stale.ID, Title: "Old", DateTime: stale.StartDate}))

	start := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	backups := []model.TripBackup{
		{
			Trip: model.Trip{CloudID: "cloud-1", Title: "Tokyo", Destination: "Tokyo, Japan",
				StartDate: start, EndDate: start.Add(7 * 24 * time.Hour), Synced: true},
			Activities: []model.Activity{
				{CloudID: "cloud-a1", Title: "Shibuya Crossing", DateTime: start.Add(3 * time.Hour), Synced: true},
				{CloudID: "cloud-a2", Title: "Senso-ji", DateTime: start.Add(26 * time.Hour), Synced: true},
			},
			Expenses: []model.Expense{
				{CloudID: "cloud-e1", Title: "Ramen", Amount: 12, Category: model.CategoryFood, Timestamp: start},
			},
		},
		{
			Trip: model.Trip{CloudID: "cloud-2", Title: "Kyoto", Destination: "Kyoto, Japan",
				StartDate: start, EndDate: start.Add(2 * 24 * time.Hour), Synced: true},
		},
	}

	res, err := s.RestoreAll(ctx, backups)
	require.NoError(t, err)

	assert.Equal(t, 2, res.Trips)
	assert.Equal(t, 2, res.Activities)
	assert.Equal(t, 1, res.Expenses)
	assert.Zero(t, res.Skipped)

	trips, err := s.AllTrips(ctx)
	require.NoError(t, err)
	require.Len(t, trips, 2, "stale local trips must be gone")

	assert.Equal(t, "Tokyo", trips[0].Title)
	assert.True(t, trips[0].Synced)

	// Activities were remapped onto the freshly assigned trip id.
	activities, err := s.ActivitiesForTrip(ctx, trips[0].ID)
	require.NoError(t, err)
	require.Len(t, activities, 2)
	assert.Equal(t, "Shibuya Crossing", activities[0].Title)
}

func TestRestoreAllIdempotent(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	start := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	backups := []model.TripBackup{
		{
			Trip: model.Trip{CloudID: "cloud-1", Title: "Tokyo", StartDate: start, EndDate: start, Synced: true},
			Activities: []model.Activity{
				{CloudID: "cloud-a1", Title: "Shibuya Crossing", DateTime: start, Synced: true},
			},
		},
	}

	for i := 0; i < 2; i++ {
		_, err := s.RestoreAll(ctx, backups)
		require.NoError(t, err)
	}

	trips, err := s.AllTrips(ctx)
	require.NoError(t, err)
	assert.Len(t, trips, 1, "restore twice must not duplicate rows")

	activities, err := s.ActivitiesForTrip(ctx, trips[0].ID)
	require.NoError(t, err)
	assert.Len(t, activities, 1)
}

func TestRestoreAllSkipsBadExpenses(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	start := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	backups := []model.TripBackup{
		{
			Trip: model.Trip{CloudID: "cloud-1", Title: "Tokyo", StartDate: start, EndDate: start, Synced: true},
			Expenses: []model.Expense{
				{ID: "dup", Title: "Ramen", Amount: 12, Category: model.CategoryFood, Timestamp: start},
				{ID: "dup", Title: "Duplicate key", Amount: 9, Category: model.CategoryFood, Timestamp: start},
			},
		},
	}

	res, err := s.RestoreAll(ctx, backups)
	require.NoError(t, err)

	assert.Equal(t, 1, res.Trips)
	assert.Equal(t, 1, res.Expenses)
	assert.Equal(t, 1, res.Skipped, "second insert with the same primary key is skipped, not fatal")
}
