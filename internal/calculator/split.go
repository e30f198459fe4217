package calculator

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mmynk/tripsplit/internal/models"
)

// centPlaces is the precision even splits are cut at.
const centPlaces = 2

// EvenSplit divides amount equally among members.
// Each share is truncated to whole cents; the leftover cents go one by one to
// the first members so the shares always add up to amount exactly.
func EvenSplit(amount decimal.Decimal, members []string) (models.Shares, error) {
	if len(members) == 0 {
		return nil, fmt.Errorf("must have at least one member")
	}
	if !amount.IsPositive() {
		return nil, fmt.Errorf("amount must be positive, got %s", amount.String())
	}

	count := decimal.NewFromInt(int64(len(members)))
	base := amount.Div(count).Truncate(centPlaces)
	leftover := amount.Sub(base.Mul(count))

	cent := decimal.New(1, -centPlaces)
	shares := make(models.Shares, len(members))
	for i, m := range members {
		share := base
		if leftover.GreaterThanOrEqual(cent) {
			share = share.Add(cent)
			leftover = leftover.Sub(cent)
		}
		shares[i] = models.Share{Member: m, Amount: share}
	}
	// Sub-cent remainder (amount had more than two decimals) goes to the first member.
	if !leftover.IsZero() {
		shares[0].Amount = shares[0].Amount.Add(leftover)
	}
	return shares, nil
}
