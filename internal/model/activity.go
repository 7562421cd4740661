package model

import "time"

// millisPerDay is the day-number bucket size in epoch milliseconds.
const millisPerDay = 24 * 60 * 60 * 1000

// Activity is a dated item belonging to a trip. Rows cascade-delete
// with their owning trip.
//
// LocalImageRef and ImageURL are mutually exclusive: LocalImageRef
// points at a not-yet-uploaded device image, ImageURL at the migrated
// remote copy. Use SetLocalImage / SetRemoteImage rather than writing
// the fields directly.
type Activity struct {
	ID            int64     `db:"id"`
	TripID        int64     `db:"trip_id"`
	CloudID       string    `db:"cloud_id"`
	Title         string    `db:"title"`
	Description   string    `db:"description"`
	Location      string    `db:"location"`
	DateTime      time.Time `db:"date_time"`
	LocalImageRef string    `db:"local_image_ref"`
	ImageURL      string    `db:"image_url"`
	Latitude      float64   `db:"latitude"`
	Longitude     float64   `db:"longitude"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
	Synced        bool      `db:"synced"`
}

// DayNumber returns the 1-based day offset of the activity from the
// trip's start instant. An activity at the exact start instant is day 1.
// Always derived, never stored independently.
func (a *Activity) DayNumber(tripStart time.Time) int {
	diff := a.DateTime.UnixMilli() - tripStart.UnixMilli()

	return int(diff/millisPerDay) + 1
}

// TimeLabel returns the human-readable clock label shown next to the
// activity, e.g. "2:30 PM".
func (a *Activity) TimeLabel() string {
	return a.DateTime.Format("3:04 PM")
}

// SetLocalImage points the activity at a device-local image and clears
// any remote URL.
func (a *Activity) SetLocalImage(ref string) {
	a.LocalImageRef = ref
	a.ImageURL = ""
}

// SetRemoteImage points the activity at an uploaded image and clears
// any local reference.
func (a *Activity) SetRemoteImage(url string) {
	a.ImageURL = url
	a.LocalImageRef = ""
}

// HasLocalImage reports whether the activity still references a
// not-yet-migrated device image.
func (a *Activity) HasLocalImage() bool {
	return a.LocalImageRef != ""
}
