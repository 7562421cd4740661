package store

import (
	"context"
	"fmt"
	"time"

	"github.com/Perth00/wanderplan-sync/internal/model"
)

type expenseRow struct {
	ID        string  `db:"id"`
	TripID    int64   `db:"trip_id"`
	CloudID   string  `db:"cloud_id"`
	Title     string  `db:"title"`
	Amount    float64 `db:"amount"`
	Category  string  `db:"category"`
	Timestamp int64   `db:"timestamp"`
	Note      string  `db:"note"`
	Synced    bool    `db:"synced"`
}

func (r expenseRow) toModel() model.Expense {
	return model.Expense{
		ID:        r.ID,
		TripID:    r.TripID,
		CloudID:   r.CloudID,
		Title:     r.Title,
		Amount:    r.Amount,
		Category:  model.Category(r.Category),
		Timestamp: fromMillis(r.Timestamp),
		Note:      r.Note,
		Synced:    r.Synced,
	}
}

const insertExpenseSQL = `
	INSERT INTO expenses (id, trip_id, cloud_id, title, amount, category, timestamp, note, synced)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

// CreateExpense inserts a budget entry, generating its string id when
// empty and defaulting the category to "other".
func (s *Store) CreateExpense(ctx context.Context, e *model.Expense) error {
	if e.ID == "" {
		e.ID = model.NewExpenseID()
	}

	if !e.Category.Valid() {
		e.Category = model.CategoryOther
	}

	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}

	_, err := s.db.ExecContext(ctx, insertExpenseSQL,
		e.ID, e.TripID, e.CloudID, e.Title, e.Amount, string(e.Category),
		millis(e.Timestamp), e.Note, e.Synced,
	)
	if err != nil {
		return fmt.Errorf("inserting expense: %w", err)
	}

	return nil
}

// ExpensesForTrip returns a trip's budget entries ordered by time.
func (s *Store) ExpensesForTrip(ctx context.Context, tripID int64) ([]model.Expense, error) {
	var rows []expenseRow

	err := s.db.SelectContext(ctx, &rows,
		"SELECT * FROM expenses WHERE trip_id = ? ORDER BY timestamp, id", tripID)
	if err != nil {
		return nil, fmt.Errorf("loading expenses for trip %d: %w", tripID, err)
	}

	expenses := make([]model.Expense, 0, len(rows))
	for _, r := range rows {
		expenses = append(expenses, r.toModel())
	}

	return expenses, nil
}

// DeleteExpense removes a budget entry.
func (s *Store) DeleteExpense(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM expenses WHERE id = ?", id); err != nil {
		return fmt.Errorf("deleting expense %s: %w", id, err)
	}

	return nil
}

// LinkExpenseCloudID persists the cloud document id for an expense and
// marks the row synced.
func (s *Store) LinkExpenseCloudID(ctx context.Context, id, cloudID string) error {
	_, err := s.db.ExecContext(ctx,
		"UPDATE expenses SET cloud_id = ?, synced = 1 WHERE id = ?", cloudID, id)
	if err != nil {
		return fmt.Errorf("linking expense %s to cloud doc %s: %w", id, cloudID, err)
	}

	return nil
}
