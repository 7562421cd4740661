package model

import (
	"time"

	"github.com/google/uuid"
)

// Category buckets an expense for budget breakdowns.
type Category string

const (
	CategoryFood       Category = "food"
	CategoryTransport  Category = "transport"
	CategoryHotel      Category = "hotel"
	CategoryActivities Category = "activities"
	CategoryShopping   Category = "shopping"
	CategoryOther      Category = "other"
)

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryFood, CategoryTransport, CategoryHotel,
		CategoryActivities, CategoryShopping, CategoryOther:
		return true
	}

	return false
}

// Expense is a budget entry under a trip. The local ID is a generated
// string rather than a rowid so entries created offline on different
// devices cannot collide.
type Expense struct {
	ID        string    `db:"id"`
	TripID    int64     `db:"trip_id"`
	CloudID   string    `db:"cloud_id"`
	Title     string    `db:"title"`
	Amount    float64   `db:"amount"`
	Category  Category  `db:"category"`
	Timestamp time.Time `db:"timestamp"`
	Note      string    `db:"note"`
	Synced    bool      `db:"synced"`
}

// NewExpenseID generates a collision-safe local expense identifier.
func NewExpenseID() string {
	return uuid.NewString()
}
