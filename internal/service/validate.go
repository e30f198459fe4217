package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mmynk/tripsplit/internal/calculator"
	"github.com/mmynk/tripsplit/internal/models"
	"github.com/mmynk/tripsplit/internal/storage"
)

var (
	ErrEmptyField    = errors.New("required field is empty")
	ErrInvalidAmount = errors.New("invalid amount")
	ErrNoMembers     = errors.New("add members first")
	ErrUnknownMember = errors.New("unknown member")
	ErrTotalMismatch = errors.New("shares do not add up to the total")

	// ErrMemberExists is the storage error, re-exported for callers of this package.
	ErrMemberExists = storage.ErrMemberExists
)

// validateMemberName trims name and checks it is non-empty and not registered yet.
func validateMemberName(name string, existing []string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: member name", ErrEmptyField)
	}
	for _, m := range existing {
		if m == name {
			return "", fmt.Errorf("%w: %s", ErrMemberExists, name)
		}
	}
	return name, nil
}

// validateExpense checks an expense before it is stored. members is the
// current member set.
func validateExpense(exp *models.Expense, members []string) error {
	if exp.Title == "" {
		return fmt.Errorf("%w: title", ErrEmptyField)
	}
	if exp.Location == "" {
		return fmt.Errorf("%w: location", ErrEmptyField)
	}
	if !exp.Amount.IsPositive() {
		return fmt.Errorf("%w: total must be positive, got %s", ErrInvalidAmount, exp.Amount.String())
	}
	if len(members) == 0 {
		return ErrNoMembers
	}

	registered := make(map[string]bool, len(members))
	for _, m := range members {
		registered[m] = true
	}

	if len(exp.PaidBy) == 0 {
		return fmt.Errorf("%w: paid by", ErrEmptyField)
	}
	for _, sh := range exp.PaidBy {
		if !registered[sh.Member] {
			return fmt.Errorf("%w: payer %q", ErrUnknownMember, sh.Member)
		}
		if sh.Amount.IsNegative() {
			return fmt.Errorf("%w: %s paid %s", ErrInvalidAmount, sh.Member, sh.Amount.String())
		}
	}
	if err := checkTotal("paid", exp.PaidBy, exp.Amount); err != nil {
		return err
	}

	for _, sh := range exp.Distribution {
		if sh.Amount.IsNegative() {
			return fmt.Errorf("%w: %s owes %s", ErrInvalidAmount, sh.Member, sh.Amount.String())
		}
		if !sh.Amount.IsZero() && !registered[sh.Member] {
			return fmt.Errorf("%w: %q owes a share", ErrUnknownMember, sh.Member)
		}
	}
	return checkTotal("owed", exp.Distribution, exp.Amount)
}

func checkTotal(what string, shares models.Shares, amount decimal.Decimal) error {
	sum := shares.Sum()
	if sum.Sub(amount).Abs().GreaterThan(calculator.Tolerance) {
		return fmt.Errorf("%w: total %s (%s) ≠ total amount (%s)",
			ErrTotalMismatch, what, sum.String(), amount.String())
	}
	return nil
}
