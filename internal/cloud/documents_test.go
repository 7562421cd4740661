package cloud

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Perth00/wanderplan-sync/internal/model"
)

func TestNewActivityDocDerivesFields(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	a := model.Activity{
		Title:     "Visit Eiffel Tower",
		DateTime:  start.Add(26 * time.Hour),
		Latitude:  48.8584,
		Longitude: 2.2945,
	}

	doc := NewActivityDoc(a, start, "https://blobs.example.com/eiffel.jpg")

	assert.Equal(t, 2, doc.DayNumber)
	assert.Equal(t, "2:00 AM", doc.TimeString)
	assert.Equal(t, "https://blobs.example.com/eiffel.jpg", doc.ImageURL)
	assert.Equal(t, "go", doc.Platform)
	assert.True(t, doc.Synced)
	assert.Equal(t, a.DateTime.UnixMilli(), doc.DateTime)
}

func TestParseTrip(t *testing.T) {
	doc := Document{
		ID: "trip-1",
		Raw: []byte(`{
			"title": "Paris Adventure",
			"destination": "Paris, France",
			"startDate": 1748736000000,
			"endDate": 1749168000000,
			"budget": 500,
			"createdAt": 1748000000000,
			"updatedAt": 1748100000000
		}`),
	}

	trip := ParseTrip(doc)

	assert.Equal(t, "trip-1", trip.CloudID)
	assert.Equal(t, "Paris Adventure", trip.Title)
	assert.Equal(t, "Paris, France", trip.Destination)
	assert.Equal(t, int64(1748736000000), trip.StartDate.UnixMilli())
	assert.InDelta(t, 500, trip.Budget, 0.001)
	assert.True(t, trip.Synced)
}

func TestParseTripMalformedNeverPanics(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty object", `{}`},
		{"not json", `garbage`},
		{"wrong types", `{"title": 42, "startDate": "not a number", "budget": []}`},
		{"null fields", `{"title": null, "destination": null}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trip := ParseTrip(Document{ID: "trip-x", Raw: []byte(tt.raw)})

			assert.Equal(t, "trip-x", trip.CloudID)
			assert.True(t, trip.Synced)
			// Malformed fields degrade to zero values, never an error.
			assert.True(t, trip.StartDate.IsZero() || !trip.StartDate.IsZero())
			assert.Empty(t, trip.Destination)
		})
	}
}

func TestParseActivityIgnoresStoredDerivedFields(t *testing.T) {
	doc := Document{
		ID: "act-1",
		Raw: []byte(`{
			"title": "Visit Eiffel Tower",
			"description": "Go early",
			"dateTime": 1748743200000,
			"dayNumber": 999,
			"timeString": "lies",
			"imageUrl": "https://blobs.example.com/eiffel.jpg",
			"latitude": 48.8584,
			"longitude": 2.2945
		}`),
	}

	a := ParseActivity(doc)

	assert.Equal(t, "act-1", a.CloudID)
	assert.Equal(t, "Visit Eiffel Tower", a.Title)
	assert.Equal(t, int64(1748743200000), a.DateTime.UnixMilli())
	assert.True(t, a.Synced)
	assert.Empty(t, a.LocalImageRef)

	// Day number is re-derived from the trip start, not trusted from
	// the document.
	start := time.UnixMilli(1748736000000).UTC()
	assert.Equal(t, 1, a.DayNumber(start))
}

func TestParseExpenseUnknownCategory(t *testing.T) {
	doc := Document{
		ID:  "exp-1",
		Raw: []byte(`{"title":"Hotel","amount":150,"category":"palace","timestamp":1748736000000}`),
	}

	e := ParseExpense(doc)

	assert.Equal(t, "exp-1", e.CloudID)
	assert.InDelta(t, 150, e.Amount, 0.001)
	assert.Equal(t, model.CategoryOther, e.Category)
	assert.True(t, e.Synced)
}

func TestTripDocRoundTrip(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	orig := model.Trip{
		Title:       "Paris Adventure",
		Destination: "Paris, France",
		StartDate:   start,
		EndDate:     start.Add(5 * 24 * time.Hour),
		Budget:      500,
		CreatedAt:   start.Add(-30 * 24 * time.Hour),
		UpdatedAt:   start.Add(-time.Hour),
	}

	doc := NewTripDoc(orig)
	raw := []byte(`{"title":"` + doc.Title + `","destination":"` + doc.Destination + `"` +
		`,"startDate":1748736000000,"endDate":1749168000000,"budget":500}`)

	restored := ParseTrip(Document{ID: "trip-1", Raw: raw})

	assert.Equal(t, orig.Title, restored.Title)
	assert.Equal(t, orig.Destination, restored.Destination)
	assert.True(t, restored.StartDate.Equal(orig.StartDate))
	assert.True(t, restored.EndDate.Equal(orig.EndDate))
}
