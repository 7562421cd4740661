package cloud

import (
	"time"

	"github.com/tidwall/gjson"

	"github.com/Perth00/wanderplan-sync/internal/model"
)

// Platform is the platform tag written into every uploaded document.
const Platform = "go"

// TripDoc is the wire shape of a trip document under
// accounts/{email}/trips/{id}.
type TripDoc struct {
	Title       string  `json:"title"`
	Destination string  `json:"destination"`
	StartDate   int64   `json:"startDate"`
	EndDate     int64   `json:"endDate"`
	Budget      float64 `json:"budget"`
	CreatedAt   int64   `json:"createdAt"`
	UpdatedAt   int64   `json:"updatedAt"`
}

// ActivityDoc is the wire shape of an activity document under
// accounts/{email}/trips/{tripID}/activities/{id}.
type ActivityDoc struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Location    string  `json:"location"`
	DateTime    int64   `json:"dateTime"`
	DayNumber   int     `json:"dayNumber"`
	TimeString  string  `json:"timeString"`
	ImageURL    string  `json:"imageUrl"`
	CreatedAt   int64   `json:"createdAt"`
	UpdatedAt   int64   `json:"updatedAt"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Platform    string  `json:"platform"`
	Synced      bool    `json:"synced"`
}

// ExpenseDoc is the wire shape of a budget entry under
// accounts/{email}/trips/{tripID}/expenses/{id}.
type ExpenseDoc struct {
	Title     string  `json:"title"`
	Amount    float64 `json:"amount"`
	Category  string  `json:"category"`
	Timestamp int64   `json:"timestamp"`
	Note      string  `json:"note"`
	Platform  string  `json:"platform"`
}

// SummaryDoc is the per-account sync summary written after a push.
type SummaryDoc struct {
	TripsSynced      int    `json:"tripsSynced"`
	ActivitiesSynced int    `json:"activitiesSynced"`
	SyncedAt         int64  `json:"syncedAt"`
	Platform         string `json:"platform"`
}

// Document is a raw cloud document: its key plus undecoded field JSON.
// Pull-side conversion parses Raw tolerantly, so a malformed document
// degrades to zero values instead of failing the restore.
type Document struct {
	ID  string
	Raw []byte
}

// NewTripDoc serializes a trip's scalar fields to the document shape.
func NewTripDoc(t model.Trip) TripDoc {
	return TripDoc{
		Title:       t.Title,
		Destination: t.Destination,
		StartDate:   t.StartDate.UnixMilli(),
		EndDate:     t.EndDate.UnixMilli(),
		Budget:      t.Budget,
		CreatedAt:   t.CreatedAt.UnixMilli(),
		UpdatedAt:   t.UpdatedAt.UnixMilli(),
	}
}

// NewActivityDoc serializes an activity, deriving the day number and
// time label from the owning trip's start instant. imageURL is the
// migrated remote URL, or empty when migration was skipped or failed.
func NewActivityDoc(a model.Activity, tripStart time.Time, imageURL string) ActivityDoc {
	return ActivityDoc{
		Title:       a.Title,
		Description: a.Description,
		Location:    a.Location,
		DateTime:    a.DateTime.UnixMilli(),
		DayNumber:   a.DayNumber(tripStart),
		TimeString:  a.TimeLabel(),
		ImageURL:    imageURL,
		CreatedAt:   a.CreatedAt.UnixMilli(),
		UpdatedAt:   a.UpdatedAt.UnixMilli(),
		Latitude:    a.Latitude,
		Longitude:   a.Longitude,
		Platform:    Platform,
		Synced:      true,
	}
}

// NewExpenseDoc serializes a budget entry.
func NewExpenseDoc(e model.Expense) ExpenseDoc {
	return ExpenseDoc{
		Title:     e.Title,
		Amount:    e.Amount,
		Category:  string(e.Category),
		Timestamp: e.Timestamp.UnixMilli(),
		Note:      e.Note,
		Platform:  Platform,
	}
}

// ParseTrip converts a raw trip document back into a local trip value.
// Missing or malformed fields default to empty string / zero; parsing
// never fails. The result is tagged as already synced and carries the
// document key as its cloud id.
func ParseTrip(doc Document) model.Trip {
	fields := gjson.ParseBytes(doc.Raw)

	return model.Trip{
		CloudID:     doc.ID,
		Title:       fields.Get("title").String(),
		Destination: fields.Get("destination").String(),
		StartDate:   msTime(fields.Get("startDate")),
		EndDate:     msTime(fields.Get("endDate")),
		Budget:      fields.Get("budget").Float(),
		CreatedAt:   msTime(fields.Get("createdAt")),
		UpdatedAt:   msTime(fields.Get("updatedAt")),
		Synced:      true,
	}
}

// ParseActivity converts a raw activity document back into a local
// activity value with the same tolerance as ParseTrip. The stored
// dayNumber and timeString are ignored; both are re-derived locally.
func ParseActivity(doc Document) model.Activity {
	fields := gjson.ParseBytes(doc.Raw)

	return model.Activity{
		CloudID:     doc.ID,
		Title:       fields.Get("title").String(),
		Description: fields.Get("description").String(),
		Location:    fields.Get("location").String(),
		DateTime:    msTime(fields.Get("dateTime")),
		ImageURL:    fields.Get("imageUrl").String(),
		Latitude:    fields.Get("latitude").Float(),
		Longitude:   fields.Get("longitude").Float(),
		CreatedAt:   msTime(fields.Get("createdAt")),
		UpdatedAt:   msTime(fields.Get("updatedAt")),
		Synced:      true,
	}
}

// ParseExpense converts a raw expense document back into a local
// budget entry. Unknown categories degrade to "other".
func ParseExpense(doc Document) model.Expense {
	fields := gjson.ParseBytes(doc.Raw)

	category := model.Category(fields.Get("category").String())
	if !category.Valid() {
		category = model.CategoryOther
	}

	return model.Expense{
		CloudID:   doc.ID,
		Title:     fields.Get("title").String(),
		Amount:    fields.Get("amount").Float(),
		Category:  category,
		Timestamp: msTime(fields.Get("timestamp")),
		Synced:    true,
		Note:      fields.Get("note").String(),
	}
}

func msTime(r gjson.Result) time.Time {
	ms := r.Int()
	if ms == 0 {
		return time.Time{}
	}

	return time.UnixMilli(ms).UTC()
}
