package syncer

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/Perth00/wanderplan-sync/internal/account"
	"github.com/Perth00/wanderplan-sync/internal/cloud"
	syncerrors "github.com/Perth00/wanderplan-sync/internal/errors"
	"github.com/Perth00/wanderplan-sync/internal/model"
)

func tripDocument(id, title string, start time.Time) cloud.Document {
	raw := fmt.Sprintf(`{
		"title": %q,
		"destination": "Paris, France",
		"startDate": %d,
		"endDate": %d,
		"budget": 500
	}`, title, start.UnixMilli(), start.Add(5*24*time.Hour).UnixMilli())

	return cloud.Document{ID: id, Raw: []byte(raw)}
}

func activityDocument(id, title string, at time.Time) cloud.Document {
	raw := fmt.Sprintf(`{
		"title": %q,
		"description": "booked ahead",
		"dateTime": %d,
		"imageUrl": "https://blobs.example.com/activity_images/x.jpg"
	}`, title, at.UnixMilli())

	return cloud.Document{ID: id, Raw: []byte(raw)}
}

func expenseDocument(id, title string, amount float64, at time.Time) cloud.Document {
	raw := fmt.Sprintf(`{
		"title": %q,
		"amount": %v,
		"category": "food",
		"timestamp": %d
	}`, title, amount, at.UnixMilli())

	return cloud.Document{ID: id, Raw: []byte(raw)}
}

func TestRestoreRequiresAuthentication(t *testing.T) {
	ctrl := gomock.NewController(t)
	env := newTestEnv(t, ctrl)
	env.syncer.provider = account.Static{}

	_, err := env.syncer.Restore(context.Background(), nil)
	assert.ErrorIs(t, err, syncerrors.ErrNotAuthenticated)
}

func TestRestoreEmptyCloudLeavesLocalDataAlone(t *testing.T) {
	ctrl := gomock.NewController(t)
	env := newTestEnv(t, ctrl)
	ctx := context.Background()

	seedTrip(t, env.store, "Paris Adventure")

	env.docs.EXPECT().ListTrips(gomock.Any(), testEmail).Return(nil, nil)

	var progress progressRecorder

	result, err := env.syncer.Restore(ctx, progress.fn())
	require.NoError(t, err)

	assert.Equal(t, Result{}, result, "an empty cloud reports zero/zero success")
	progress.assertTerminalAndMonotonic(t)

	trips, err := env.store.AllTrips(ctx)
	require.NoError(t, err)
	assert.Len(t, trips, 1, "nothing is cleared when there is nothing to restore")
}

func TestRestoreListFailureIsFatal(t *testing.T) {
	ctrl := gomock.NewController(t)
	env := newTestEnv(t, ctrl)

	env.docs.EXPECT().ListTrips(gomock.Any(), testEmail).
		Return(nil, syncerrors.ErrCloudUnreachable)

	_, err := env.syncer.Restore(context.Background(), nil)
	assert.ErrorIs(t, err, syncerrors.ErrCloudUnreachable)
}

func TestRestoreReplacesLocalState(t *testing.T) {
	ctrl := gomock.NewController(t)
	env := newTestEnv(t, ctrl)
	ctx := context.Background()

	// Stale local data that the cloud must overwrite.
	stale := seedTrip(t, env.store, "Stale Local Trip")
	require.NoError(t, env.store.CreateActivity(ctx, &model.Activity{
		TripID: stale.ID, Title: "Stale Activity", DateTime: stale.StartDate,
	}))

	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	env.docs.EXPECT().ListTrips(gomock.Any(), testEmail).Return([]cloud.Document{
		tripDocument("trip-cloud-1", "Paris Adventure", start),
		tripDocument("trip-cloud-2", "Tokyo Week", start.AddDate(0, 1, 0)),
	}, nil)

	env.docs.EXPECT().ListActivities(gomock.Any(), testEmail, "trip-cloud-1").Return([]cloud.Document{
		activityDocument("act-1", "Visit Eiffel Tower", start.Add(2*time.Hour)),
		activityDocument("act-2", "Louvre", start.Add(26*time.Hour)),
	}, nil)
	env.docs.EXPECT().ListExpenses(gomock.Any(), testEmail, "trip-cloud-1").Return([]cloud.Document{
		expenseDocument("exp-1", "Hotel", 150, start),
	}, nil)

	env.docs.EXPECT().ListActivities(gomock.Any(), testEmail, "trip-cloud-2").Return(nil, nil)
	env.docs.EXPECT().ListExpenses(gomock.Any(), testEmail, "trip-cloud-2").Return(nil, nil)

	var progress progressRecorder

	result, err := env.syncer.Restore(ctx, progress.fn())
	require.NoError(t, err)

	assert.Equal(t, Result{Trips: 2, Activities: 2}, result)
	progress.assertTerminalAndMonotonic(t)

	trips, err := env.store.AllTrips(ctx)
	require.NoError(t, err)
	require.Len(t, trips, 2)

	paris := trips[0]
	assert.Equal(t, "Paris Adventure", paris.Title)
	assert.Equal(t, "trip-cloud-1", paris.CloudID)
	assert.True(t, paris.Synced, "restored rows arrive already synced")

	activities, err := env.store.ActivitiesForTrip(ctx, paris.ID)
	require.NoError(t, err)
	require.Len(t, activities, 2)
	assert.Equal(t, "Visit Eiffel Tower", activities[0].Title)
	assert.Equal(t, "https://blobs.example.com/activity_images/x.jpg", activities[0].ImageURL)
	assert.Empty(t, activities[0].LocalImageRef)

	expenses, err := env.store.ExpensesForTrip(ctx, paris.ID)
	require.NoError(t, err)
	require.Len(t, expenses, 1)
	assert.Equal(t, "Hotel", expenses[0].Title)
	assert.InDelta(t, 150, expenses[0].Amount, 0.001)

	// The stale rows are gone, including the cascade-owned activity.
	for _, trip := range trips {
		assert.NotEqual(t, "Stale Local Trip", trip.Title)
	}
}

func TestRestoreIsIdempotent(t *testing.T) {
	ctrl := gomock.NewController(t)
	env := newTestEnv(t, ctrl)
	ctx := context.Background()

	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	env.docs.EXPECT().ListTrips(gomock.Any(), testEmail).Return([]cloud.Document{
		tripDocument("trip-cloud-1", "Paris Adventure", start),
	}, nil).Times(2)
	env.docs.EXPECT().ListActivities(gomock.Any(), testEmail, "trip-cloud-1").Return([]cloud.Document{
		activityDocument("act-1", "Visit Eiffel Tower", start.Add(2*time.Hour)),
	}, nil).Times(2)
	env.docs.EXPECT().ListExpenses(gomock.Any(), testEmail, "trip-cloud-1").Return(nil, nil).Times(2)

	for i := 0; i < 2; i++ {
		result, err := env.syncer.Restore(ctx, nil)
		require.NoError(t, err)
		assert.Equal(t, Result{Trips: 1, Activities: 1}, result)
	}

	trips, err := env.store.AllTrips(ctx)
	require.NoError(t, err)
	assert.Len(t, trips, 1, "restoring twice never duplicates rows")
}

func TestRestoreSurvivesChildListFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	env := newTestEnv(t, ctrl)
	ctx := context.Background()

	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	env.docs.EXPECT().ListTrips(gomock.Any(), testEmail).Return([]cloud.Document{
		tripDocument("trip-cloud-1", "Paris Adventure", start),
	}, nil)
	env.docs.EXPECT().ListActivities(gomock.Any(), testEmail, "trip-cloud-1").
		Return(nil, syncerrors.ErrCloudUnreachable)
	env.docs.EXPECT().ListExpenses(gomock.Any(), testEmail, "trip-cloud-1").Return(nil, nil)

	result, err := env.syncer.Restore(ctx, nil)
	require.NoError(t, err)

	assert.Equal(t, Result{Trips: 1}, result, "the trip restores without its activities")
}

func TestRestoreToleratesMalformedDocument(t *testing.T) {
	ctrl := gomock.NewController(t)
	env := newTestEnv(t, ctrl)
	ctx := context.Background()

	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	env.docs.EXPECT().ListTrips(gomock.Any(), testEmail).Return([]cloud.Document{
		tripDocument("trip-cloud-1", "Paris Adventure", start),
		{ID: "trip-cloud-2", Raw: []byte(`{"title": 12, "startDate": "not a number"`)},
	}, nil)
	env.docs.EXPECT().ListActivities(gomock.Any(), testEmail, gomock.Any()).Return(nil, nil).Times(2)
	env.docs.EXPECT().ListExpenses(gomock.Any(), testEmail, gomock.Any()).Return(nil, nil).Times(2)

	result, err := env.syncer.Restore(ctx, nil)
	require.NoError(t, err, "a malformed document never aborts the restore")

	assert.Equal(t, 2, result.Trips, "the malformed document degrades to zero values")
}
