// Package service holds the application layer: input validation, the ledger
// operations built on the settlement engine, and the Connect RPC adapter.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mmynk/tripsplit/internal/calculator"
	"github.com/mmynk/tripsplit/internal/metrics"
	"github.com/mmynk/tripsplit/internal/models"
	"github.com/mmynk/tripsplit/internal/storage"
)

// ExpenseInput is an expense as entered by a user, before validation.
type ExpenseInput struct {
	Title        string
	Location     string
	Amount       decimal.Decimal
	PaidBy       models.Shares
	Distribution models.Shares

	// SplitEvenly replaces Distribution with an even split across all members.
	SplitEvenly bool
}

// Ledger owns the member set and expense history through a Store and answers
// summary queries by recomputing everything from that history.
type Ledger struct {
	store   storage.Store
	metrics *metrics.Metrics
}

// NewLedger creates a Ledger. m may be nil.
func NewLedger(store storage.Store, m *metrics.Metrics) *Ledger {
	return &Ledger{store: store, metrics: m}
}

// AddMember registers a new member.
func (l *Ledger) AddMember(ctx context.Context, name string) (models.Member, error) {
	members, err := l.memberNames(ctx)
	if err != nil {
		return models.Member{}, err
	}

	name, err = validateMemberName(name, members)
	if err != nil {
		return models.Member{}, err
	}

	member := models.Member{Name: name}
	if err := l.store.AddMember(ctx, &member); err != nil {
		return models.Member{}, err
	}

	l.metrics.MemberRegistered()
	slog.Info("Member added", "name", name)
	return member, nil
}

// Members returns all members in registration order.
func (l *Ledger) Members(ctx context.Context) ([]models.Member, error) {
	return l.store.ListMembers(ctx)
}

// AddExpense validates in and appends it to the history.
func (l *Ledger) AddExpense(ctx context.Context, in ExpenseInput) (models.Expense, error) {
	members, err := l.memberNames(ctx)
	if err != nil {
		return models.Expense{}, err
	}

	exp := models.Expense{
		Title:        strings.TrimSpace(in.Title),
		Location:     strings.TrimSpace(in.Location),
		Amount:       in.Amount,
		PaidBy:       in.PaidBy,
		Distribution: in.Distribution,
	}

	if in.SplitEvenly {
		if len(members) == 0 {
			return models.Expense{}, ErrNoMembers
		}
		if !in.Amount.IsPositive() {
			return models.Expense{}, fmt.Errorf("%w: total must be positive, got %s", ErrInvalidAmount, in.Amount.String())
		}
		exp.Distribution, err = calculator.EvenSplit(in.Amount, members)
		if err != nil {
			return models.Expense{}, fmt.Errorf("%w: %v", ErrInvalidAmount, err)
		}
	}

	if err := validateExpense(&exp, members); err != nil {
		slog.Debug("Expense rejected", "title", exp.Title, "error", err)
		return models.Expense{}, err
	}

	if err := l.store.CreateExpense(ctx, &exp); err != nil {
		return models.Expense{}, err
	}

	l.metrics.ExpenseRecorded()
	slog.Info("Expense recorded",
		"expense_id", exp.ID,
		"amount", exp.Amount.String(),
		"payers", len(exp.PaidBy),
		"shares", len(exp.Distribution),
	)
	return exp, nil
}

// Expenses returns the full history in recording order.
func (l *Ledger) Expenses(ctx context.Context) ([]models.Expense, error) {
	return l.store.ListExpenses(ctx)
}

// Summary recomputes balances and settlements from the whole history.
// Balances that do not sum to zero are logged and still settled; the plan's
// Residual then reports what could not be matched.
func (l *Ledger) Summary(ctx context.Context) (models.Summary, error) {
	members, err := l.memberNames(ctx)
	if err != nil {
		return models.Summary{}, err
	}
	history, err := l.store.ListExpenses(ctx)
	if err != nil {
		return models.Summary{}, err
	}

	summary := calculator.Summarize(history, members)

	balanced := true
	if err := calculator.CheckZeroSum(summary.Balances); err != nil {
		balanced = false
		slog.Warn("Ledger is unbalanced, settlement is partial",
			"error", err,
			"residual", summary.Plan.Residual.String(),
		)
	}
	l.metrics.PlanComputed(len(summary.Plan.Transfers), balanced)

	slog.Debug("Summary computed",
		"expenses", summary.ExpenseCount,
		"members", len(summary.Balances),
		"transfers", len(summary.Plan.Transfers),
	)
	return summary, nil
}

// Clear deletes every member and expense.
func (l *Ledger) Clear(ctx context.Context) error {
	if err := l.store.ClearAll(ctx); err != nil {
		return err
	}
	slog.Info("All expense history deleted")
	return nil
}

func (l *Ledger) memberNames(ctx context.Context) ([]string, error) {
	members, err := l.store.ListMembers(ctx)
	if err != nil {
		return nil, err
	}
	return models.MemberNames(members), nil
}
