// Package calculator implements the settlement engine: aggregating an expense
// history into per-member balances and turning balances into transfers.
//
// Everything here is a pure function of its arguments. Inputs are never
// mutated and no state is kept between calls.
package calculator

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mmynk/tripsplit/internal/models"
)

var (
	// Tolerance is the largest difference treated as equal when comparing
	// declared totals with their share sums.
	Tolerance = decimal.RequireFromString("0.01")

	// ErrUnbalanced is returned by CheckZeroSum when balances do not net to zero.
	ErrUnbalanced = errors.New("balances do not sum to zero")
)

// Aggregate computes every member's paid, owed and net balance across history.
//
// The result has one entry per name in the union of members and every name
// found in PaidBy or Distribution. Order is members first, then other names in
// the order they are first seen while walking history. Members without any
// activity appear with zero totals.
//
// Algorithm:
// - For each expense: every PaidBy share adds to paid, every Distribution share adds to owed
// - Aggregate: balance = paid - owed
func Aggregate(history []models.Expense, members []string) []models.NetBalance {
	order := newOrderedSet(len(members))
	for _, m := range members {
		order.add(m)
	}

	paid := make(map[string]decimal.Decimal)
	owed := make(map[string]decimal.Decimal)

	for _, exp := range history {
		// nil shares contribute nothing
		for _, sh := range exp.PaidBy {
			order.add(sh.Member)
			paid[sh.Member] = paid[sh.Member].Add(sh.Amount)
		}
		for _, sh := range exp.Distribution {
			order.add(sh.Member)
			owed[sh.Member] = owed[sh.Member].Add(sh.Amount)
		}
	}

	balances := make([]models.NetBalance, 0, order.len())
	for _, name := range order.items() {
		p, o := paid[name], owed[name]
		balances = append(balances, models.NetBalance{
			Member:  name,
			Paid:    p,
			Owed:    o,
			Balance: p.Sub(o),
		})
	}
	return balances
}

// TotalExpense returns the sum of every PaidBy contribution in history.
func TotalExpense(history []models.Expense) decimal.Decimal {
	total := decimal.Zero
	for _, exp := range history {
		total = total.Add(exp.PaidBy.Sum())
	}
	return total
}

// CheckZeroSum reports ErrUnbalanced when balances do not sum to zero within
// Tolerance. Settle does not call it; callers that want strict correctness do.
func CheckZeroSum(balances []models.NetBalance) error {
	total := decimal.Zero
	for _, b := range balances {
		total = total.Add(b.Balance)
	}
	if total.Abs().GreaterThan(Tolerance) {
		return fmt.Errorf("%w: net total %s", ErrUnbalanced, total.String())
	}
	return nil
}

// orderedSet keeps strings in first-insertion order.
type orderedSet struct {
	index map[string]int
	keys  []string
}

func newOrderedSet(capacity int) *orderedSet {
	return &orderedSet{
		index: make(map[string]int, capacity),
		keys:  make([]string, 0, capacity),
	}
}

func (s *orderedSet) add(key string) {
	if _, ok := s.index[key]; ok {
		return
	}
	s.index[key] = len(s.keys)
	s.keys = append(s.keys, key)
}

func (s *orderedSet) len() int { return len(s.keys) }

func (s *orderedSet) items() []string { return s.keys }
