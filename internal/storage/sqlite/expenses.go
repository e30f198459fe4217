package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/tripsplit/internal/models"
	"github.com/mmynk/tripsplit/internal/storage"
)

// CreateExpense appends an expense to the history.
func (s *SQLiteStore) CreateExpense(ctx context.Context, expense *models.Expense) error {
	// Generate ID if not set
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().Unix()
	}

	rec, err := storage.EncodeExpense(*expense)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO expenses (id, title, location, amount, paid_by, distribution, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Title, rec.Location, string(rec.Amount),
		string(rec.PaidBy), string(rec.Distribution), rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	return nil
}

// ListExpenses retrieves the full history in recording order.
// Rows are decoded with defaults, so a damaged row never fails the listing.
func (s *SQLiteStore) ListExpenses(ctx context.Context) ([]models.Expense, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, location, amount, paid_by, distribution, created_at
		 FROM expenses ORDER BY seq`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []models.Expense
	for rows.Next() {
		var (
			rec                  storage.ExpenseRecord
			amount               string
			paidBy, distribution sql.NullString
		)
		if err := rows.Scan(&rec.ID, &rec.Title, &rec.Location, &amount,
			&paidBy, &distribution, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}

		rec.Amount = json.RawMessage(amount)
		if paidBy.Valid {
			rec.PaidBy = json.RawMessage(paidBy.String)
		}
		if distribution.Valid {
			rec.Distribution = json.RawMessage(distribution.String)
		}

		expenses = append(expenses, storage.DecodeExpense(rec))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	return expenses, nil
}
