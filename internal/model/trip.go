package model

import (
	"fmt"
	"time"
)

// Trip is a locally stored trip. CloudID is empty until the first
// successful push assigns the remote document key; it is never
// reassigned afterwards.
type Trip struct {
	ID          int64     `db:"id"`
	CloudID     string    `db:"cloud_id"`
	Title       string    `db:"title"`
	Destination string    `db:"destination"`
	StartDate   time.Time `db:"start_date"`
	EndDate     time.Time `db:"end_date"`
	Budget      float64   `db:"budget"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
	Synced      bool      `db:"synced"`
}

// Validate checks the start/end ordering.
func (t *Trip) Validate() error {
	if t.EndDate.Before(t.StartDate) {
		return fmt.Errorf("trip %q: end date %s precedes start date %s",
			t.Title, t.EndDate.Format(time.DateOnly), t.StartDate.Format(time.DateOnly))
	}

	return nil
}

// DurationDays returns the trip length in whole days, inclusive of the
// start day. A trip starting and ending on the same instant lasts one day.
func (t *Trip) DurationDays() int {
	return int(t.EndDate.Sub(t.StartDate)/(24*time.Hour)) + 1
}

// RemainingBudget returns the budget left after the given expenses.
func (t *Trip) RemainingBudget(expenses []Expense) float64 {
	remaining := t.Budget
	for _, e := range expenses {
		remaining -= e.Amount
	}

	return remaining
}
