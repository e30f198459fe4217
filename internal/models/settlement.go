package models

import "github.com/shopspring/decimal"

// NetBalance is one member's position across the whole expense history.
// It is recomputed from scratch on every query.
type NetBalance struct {
	Member string

	// Paid is the sum of the member's PaidBy contributions.
	Paid decimal.Decimal

	// Owed is the sum of the member's Distribution shares.
	Owed decimal.Decimal

	// Balance is Paid - Owed. Positive = should receive money, negative = owes money.
	Balance decimal.Decimal
}

// Settlement is a transfer instruction from a debtor to a creditor.
type Settlement struct {
	From   string          // Member who pays
	To     string          // Member who receives
	Amount decimal.Decimal // Always positive
}

// SettlementPlan is the output of the settlement solver.
type SettlementPlan struct {
	// Transfers are the instructions, in the order they were matched.
	Transfers []Settlement

	// Settled is true when no transfer is needed. This is the
	// "all settled up" state and is equivalent to len(Transfers) == 0.
	Settled bool

	// Residual is the absolute balance left unmatched once one side ran out.
	// It is zero (within rounding) whenever the input balances sum to zero.
	Residual decimal.Decimal
}

// Summary is everything the presentation layer needs for one ledger view.
type Summary struct {
	// ExpenseCount is the number of expenses in the history.
	ExpenseCount int

	// TotalExpense is the sum of every PaidBy contribution.
	TotalExpense decimal.Decimal

	Balances []NetBalance
	Plan     SettlementPlan
}
