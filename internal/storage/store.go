// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/tripsplit/internal/models"
)

// ErrMemberExists is returned when registering a name that is already a member.
var ErrMemberExists = errors.New("member already exists")

// Store defines the interface for ledger storage operations.
// This abstraction allows swapping storage backends (SQLite, snapshot files, etc.)
// without changing the service layer.
type Store interface {
	// AddMember registers a new member.
	// Returns ErrMemberExists if the name is already registered.
	AddMember(ctx context.Context, member *models.Member) error

	// ListMembers returns all members in registration order.
	ListMembers(ctx context.Context) ([]models.Member, error)

	// CreateExpense appends an expense to the history.
	// The expense.ID and expense.CreatedAt fields are populated by the store when empty.
	CreateExpense(ctx context.Context, expense *models.Expense) error

	// ListExpenses returns the full history in the order it was recorded.
	ListExpenses(ctx context.Context) ([]models.Expense, error)

	// ClearAll removes every member and every expense together.
	ClearAll(ctx context.Context) error

	// Close releases any resources held by the store.
	Close() error
}
