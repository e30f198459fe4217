package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"

	"github.com/mmynk/tripsplit/internal/models"
	"github.com/mmynk/tripsplit/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "nested", "test.db")
	store, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func amt(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestSQLiteStore(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("AddMember keeps registration order", func(t *testing.T) {
		for _, name := range []string{"Charlie", "Alice", "Bob"} {
			if err := store.AddMember(ctx, &models.Member{Name: name}); err != nil {
				t.Fatalf("AddMember(%s) failed: %v", name, err)
			}
		}

		members, err := store.ListMembers(ctx)
		if err != nil {
			t.Fatalf("ListMembers failed: %v", err)
		}
		got := models.MemberNames(members)
		if diff := cmp.Diff([]string{"Charlie", "Alice", "Bob"}, got); diff != "" {
			t.Errorf("members mismatch (-want +got):\n%s", diff)
		}
		for _, m := range members {
			if m.CreatedAt == 0 {
				t.Errorf("Expected CreatedAt to be set for %s", m.Name)
			}
		}
	})

	t.Run("AddMember rejects duplicates", func(t *testing.T) {
		err := store.AddMember(ctx, &models.Member{Name: "Alice"})
		if !errors.Is(err, storage.ErrMemberExists) {
			t.Errorf("Expected ErrMemberExists, got %v", err)
		}
	})

	t.Run("CreateExpense generates ID and timestamp", func(t *testing.T) {
		exp := &models.Expense{
			Title:        "Dinner",
			Location:     "Goa",
			Amount:       amt("30"),
			PaidBy:       models.Shares{{Member: "Alice", Amount: amt("30")}},
			Distribution: models.Shares{{Member: "Alice", Amount: amt("10")}, {Member: "Bob", Amount: amt("10")}, {Member: "Charlie", Amount: amt("10")}},
		}
		if err := store.CreateExpense(ctx, exp); err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}
		if exp.ID == "" {
			t.Error("Expected expense ID to be generated")
		}
		if exp.CreatedAt == 0 {
			t.Error("Expected CreatedAt to be set")
		}
	})

	t.Run("ListExpenses returns history in order with share order intact", func(t *testing.T) {
		second := &models.Expense{
			Title:    "Taxi",
			Location: "Panaji",
			Amount:   amt("100.50"),
			PaidBy: models.Shares{
				{Member: "Charlie", Amount: amt("60.25")},
				{Member: "Alice", Amount: amt("40.25")},
			},
			Distribution: models.Shares{
				{Member: "Bob", Amount: amt("50.25")},
				{Member: "Alice", Amount: amt("50.25")},
			},
			CreatedAt: 1700000000,
		}
		if err := store.CreateExpense(ctx, second); err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}

		expenses, err := store.ListExpenses(ctx)
		if err != nil {
			t.Fatalf("ListExpenses failed: %v", err)
		}
		if len(expenses) != 2 {
			t.Fatalf("Expected 2 expenses, got %d", len(expenses))
		}
		if expenses[0].Title != "Dinner" || expenses[1].Title != "Taxi" {
			t.Errorf("Unexpected order: %s, %s", expenses[0].Title, expenses[1].Title)
		}
		if diff := cmp.Diff(*second, expenses[1]); diff != "" {
			t.Errorf("expense mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("ClearAll removes members and expenses", func(t *testing.T) {
		if err := store.ClearAll(ctx); err != nil {
			t.Fatalf("ClearAll failed: %v", err)
		}
		members, err := store.ListMembers(ctx)
		if err != nil {
			t.Fatalf("ListMembers failed: %v", err)
		}
		expenses, err := store.ListExpenses(ctx)
		if err != nil {
			t.Fatalf("ListExpenses failed: %v", err)
		}
		if len(members) != 0 || len(expenses) != 0 {
			t.Errorf("Expected empty store, got %d members and %d expenses", len(members), len(expenses))
		}

		// Names can be registered again after a wipe.
		if err := store.AddMember(ctx, &models.Member{Name: "Alice"}); err != nil {
			t.Errorf("AddMember after ClearAll failed: %v", err)
		}
	})
}

func TestListExpenses_DamagedRows(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.db.ExecContext(ctx,
		`INSERT INTO expenses (id, title, location, amount, paid_by, distribution, created_at) VALUES
		 ('e1', 'Legacy', 'Old', '40', '"Alice"', '{"Alice": 20, "Bob": 20}', 10),
		 ('e2', 'Broken', 'Old', 'abc', NULL, NULL, 20),
		 ('e3', 'Partial', 'Old', '10', '{"Bob": "x", "Alice": 10}', 'null', 30)`,
	)
	if err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	expenses, err := store.ListExpenses(ctx)
	if err != nil {
		t.Fatalf("ListExpenses failed: %v", err)
	}

	want := []models.Expense{
		{
			ID: "e1", Title: "Legacy", Location: "Old", Amount: amt("40"),
			PaidBy:       models.Shares{{Member: "Alice", Amount: amt("40")}},
			Distribution: models.Shares{{Member: "Alice", Amount: amt("20")}, {Member: "Bob", Amount: amt("20")}},
			CreatedAt:    10,
		},
		{
			ID: "e2", Title: "Broken", Location: "Old", Amount: decimal.Zero,
			PaidBy: models.Shares{}, Distribution: models.Shares{},
			CreatedAt: 20,
		},
		{
			ID: "e3", Title: "Partial", Location: "Old", Amount: amt("10"),
			PaidBy:       models.Shares{{Member: "Alice", Amount: amt("10")}},
			Distribution: models.Shares{},
			CreatedAt:    30,
		},
	}
	if diff := cmp.Diff(want, expenses); diff != "" {
		t.Errorf("expenses mismatch (-want +got):\n%s", diff)
	}
}
