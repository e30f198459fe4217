package calculator

import (
	"slices"

	"github.com/shopspring/decimal"

	"github.com/mmynk/tripsplit/internal/models"
)

var (
	// settledEpsilon: balances within this of zero are already settled.
	settledEpsilon = decimal.RequireFromString("0.005")

	// transferFloor: a transfer at or below this amount is never emitted.
	// Tighter than settledEpsilon so no zero-amount transfers are produced.
	transferFloor = decimal.RequireFromString("0.009")

	// advanceEpsilon: a cursor moves on once its remaining balance is within this of zero.
	advanceEpsilon = decimal.RequireFromString("0.01")
)

// party is a working copy of one side of a match.
type party struct {
	member    string
	remaining decimal.Decimal // debtors negative, creditors positive
}

// Settle computes transfers that bring every balance to zero.
//
// Debtors are ordered by largest debt first and creditors by largest credit
// first; equal balances keep their input order. The two lists are then walked
// greedily, each step moving min(credit, |debt|) from the current debtor to
// the current creditor.
//
// When no transfer is needed the plan is Settled. If balances do not sum to
// zero the walk still terminates and the unmatched amount is reported in
// Residual.
func Settle(balances []models.NetBalance) models.SettlementPlan {
	var debtors, creditors []party
	for _, b := range balances {
		switch {
		case b.Balance.LessThan(settledEpsilon.Neg()):
			debtors = append(debtors, party{member: b.Member, remaining: b.Balance})
		case b.Balance.GreaterThan(settledEpsilon):
			creditors = append(creditors, party{member: b.Member, remaining: b.Balance})
		}
	}

	slices.SortStableFunc(debtors, func(a, b party) int { return a.remaining.Cmp(b.remaining) })
	slices.SortStableFunc(creditors, func(a, b party) int { return b.remaining.Cmp(a.remaining) })

	var transfers []models.Settlement
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		debtor, creditor := &debtors[i], &creditors[j]

		amount := decimal.Min(creditor.remaining, debtor.remaining.Neg())
		if amount.LessThanOrEqual(transferFloor) {
			break
		}

		transfers = append(transfers, models.Settlement{
			From:   debtor.member,
			To:     creditor.member,
			Amount: amount,
		})
		creditor.remaining = creditor.remaining.Sub(amount)
		debtor.remaining = debtor.remaining.Add(amount)

		if debtor.remaining.Abs().LessThan(advanceEpsilon) {
			i++
		}
		if creditor.remaining.Abs().LessThan(advanceEpsilon) {
			j++
		}
	}

	return models.SettlementPlan{
		Transfers: transfers,
		Settled:   len(transfers) == 0,
		Residual:  residual(debtors[min(i, len(debtors)):], creditors[min(j, len(creditors)):]),
	}
}

// residual is the larger of the outstanding debt and outstanding credit.
func residual(debtors, creditors []party) decimal.Decimal {
	debt, credit := decimal.Zero, decimal.Zero
	for _, d := range debtors {
		debt = debt.Add(d.remaining.Neg())
	}
	for _, c := range creditors {
		credit = credit.Add(c.remaining)
	}
	return decimal.Max(debt, credit)
}

// ApplySettlements returns a copy of balances with every transfer in plan applied.
// The payer's balance rises and the receiver's falls by each amount.
func ApplySettlements(balances []models.NetBalance, plan models.SettlementPlan) []models.NetBalance {
	out := slices.Clone(balances)
	index := make(map[string]int, len(out))
	for i, b := range out {
		index[b.Member] = i
	}
	for _, t := range plan.Transfers {
		if i, ok := index[t.From]; ok {
			out[i].Balance = out[i].Balance.Add(t.Amount)
		}
		if i, ok := index[t.To]; ok {
			out[i].Balance = out[i].Balance.Sub(t.Amount)
		}
	}
	return out
}

// Summarize aggregates history and settles the resulting balances in one call.
func Summarize(history []models.Expense, members []string) models.Summary {
	balances := Aggregate(history, members)
	return models.Summary{
		ExpenseCount: len(history),
		TotalExpense: TotalExpense(history),
		Balances:     balances,
		Plan:         Settle(balances),
	}
}
