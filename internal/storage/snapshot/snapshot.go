// Package snapshot reads and writes the JSON layout the browser version of the
// ledger keeps in localStorage:
//
//	{"users": ["Alice", "Bob"], "expenses": [{"title": ..., "paid_by": ..., ...}]}
//
// It is used to move a ledger between a browser and a tripsplit store.
package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/mmynk/tripsplit/internal/models"
	"github.com/mmynk/tripsplit/internal/storage"
)

// Snapshot is the on-disk layout.
type Snapshot struct {
	Users    []string                `json:"users"`
	Expenses []storage.ExpenseRecord `json:"expenses"`
}

// Decode reads a snapshot. Expense records are parsed with defaults, so only a
// structurally invalid document is an error.
func Decode(r io.Reader) ([]string, []models.Expense, error) {
	var snap Snapshot
	if err := json.NewDecoder(r).Decode(&snap); err != nil {
		return nil, nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}

	expenses := make([]models.Expense, len(snap.Expenses))
	for i, rec := range snap.Expenses {
		expenses[i] = storage.DecodeExpense(rec)
	}
	return snap.Users, expenses, nil
}

// Encode writes members and expenses as an indented snapshot.
func Encode(w io.Writer, members []string, expenses []models.Expense) error {
	snap := Snapshot{
		Users:    members,
		Expenses: make([]storage.ExpenseRecord, len(expenses)),
	}
	if snap.Users == nil {
		snap.Users = []string{}
	}
	for i, exp := range expenses {
		rec, err := storage.EncodeExpense(exp)
		if err != nil {
			return err
		}
		snap.Expenses[i] = rec
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return nil
}

// ImportResult counts what Import wrote.
type ImportResult struct {
	Members  int
	Expenses int
}

// Import appends a snapshot to store. Members already registered are skipped;
// expenses are always appended in snapshot order.
func Import(ctx context.Context, store storage.Store, r io.Reader) (ImportResult, error) {
	var res ImportResult

	members, expenses, err := Decode(r)
	if err != nil {
		return res, err
	}

	for _, name := range members {
		err := store.AddMember(ctx, &models.Member{Name: name})
		if errors.Is(err, storage.ErrMemberExists) {
			slog.Debug("Skipping existing member", "name", name)
			continue
		}
		if err != nil {
			return res, fmt.Errorf("failed to import member %q: %w", name, err)
		}
		res.Members++
	}

	for i := range expenses {
		if err := store.CreateExpense(ctx, &expenses[i]); err != nil {
			return res, fmt.Errorf("failed to import expense %q: %w", expenses[i].Title, err)
		}
		res.Expenses++
	}

	return res, nil
}

// Export writes the whole store as a snapshot.
func Export(ctx context.Context, store storage.Store, w io.Writer) error {
	members, err := store.ListMembers(ctx)
	if err != nil {
		return err
	}
	expenses, err := store.ListExpenses(ctx)
	if err != nil {
		return err
	}
	return Encode(w, models.MemberNames(members), expenses)
}
