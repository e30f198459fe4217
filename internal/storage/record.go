package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/tripsplit/internal/models"
)

// ExpenseRecord is the persisted layout of an expense. It matches the
// browser localStorage layout, so PaidBy may hold either a shares object or a
// single payer name.
type ExpenseRecord struct {
	ID           string          `json:"id,omitempty"`
	Title        string          `json:"title"`
	Location     string          `json:"location"`
	Amount       json.RawMessage `json:"amount"`
	PaidBy       json.RawMessage `json:"paid_by"`
	Distribution json.RawMessage `json:"distribution"`
	Date         string          `json:"date,omitempty"`
	CreatedAt    int64           `json:"created_at,omitempty"`
}

// EncodeExpense converts an expense into its persisted layout.
func EncodeExpense(exp models.Expense) (ExpenseRecord, error) {
	paidBy, err := json.Marshal(exp.PaidBy)
	if err != nil {
		return ExpenseRecord{}, fmt.Errorf("failed to encode paid_by: %w", err)
	}
	distribution, err := json.Marshal(exp.Distribution)
	if err != nil {
		return ExpenseRecord{}, fmt.Errorf("failed to encode distribution: %w", err)
	}
	rec := ExpenseRecord{
		ID:           exp.ID,
		Title:        exp.Title,
		Location:     exp.Location,
		Amount:       json.RawMessage(exp.Amount.String()),
		PaidBy:       paidBy,
		Distribution: distribution,
		CreatedAt:    exp.CreatedAt,
	}
	if exp.CreatedAt != 0 {
		rec.Date = time.Unix(exp.CreatedAt, 0).UTC().Format(time.RFC3339)
	}
	return rec, nil
}

// DecodeExpense parses a persisted record with defaults. It never fails:
//   - a missing or non-numeric amount becomes zero
//   - missing or null paid_by / distribution become empty shares
//   - a paid_by string (single payer) becomes {payer: amount}
//   - share entries with non-numeric amounts are skipped
//   - created_at falls back to the ISO "date" field
//
// Every substitution is logged at warn level.
func DecodeExpense(rec ExpenseRecord) models.Expense {
	exp := models.Expense{
		ID:        rec.ID,
		Title:     rec.Title,
		Location:  rec.Location,
		CreatedAt: rec.CreatedAt,
	}

	if amount, err := parseAmount(rec.Amount); err != nil {
		slog.Warn("Expense record has invalid amount, using 0", "expense_id", rec.ID, "error", err)
	} else {
		exp.Amount = amount
	}

	exp.PaidBy = decodePaidBy(rec, exp.Amount)
	exp.Distribution = decodeShares(rec.ID, "distribution", rec.Distribution)

	if exp.CreatedAt == 0 && rec.Date != "" {
		if ts, err := time.Parse(time.RFC3339Nano, rec.Date); err == nil {
			exp.CreatedAt = ts.Unix()
		} else {
			slog.Warn("Expense record has unparseable date", "expense_id", rec.ID, "date", rec.Date)
		}
	}

	return exp
}

func decodePaidBy(rec ExpenseRecord, amount decimal.Decimal) models.Shares {
	raw := bytes.TrimSpace(rec.PaidBy)
	if len(raw) > 0 && raw[0] == '"' {
		var payer string
		if err := json.Unmarshal(raw, &payer); err != nil || payer == "" {
			slog.Warn("Expense record has invalid payer", "expense_id", rec.ID)
			return models.Shares{}
		}
		return models.Shares{{Member: payer, Amount: amount}}
	}
	return decodeShares(rec.ID, "paid_by", raw)
}

func decodeShares(expenseID, field string, raw json.RawMessage) models.Shares {
	shares, skipped := models.DecodeSharesLenient(raw)
	if len(skipped) > 0 {
		slog.Warn("Expense record has invalid share amounts",
			"expense_id", expenseID,
			"field", field,
			"members", skipped,
		)
	}
	return shares
}

func parseAmount(raw json.RawMessage) (decimal.Decimal, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return decimal.Zero, fmt.Errorf("missing amount")
	}
	var amount decimal.Decimal
	if err := amount.UnmarshalJSON(raw); err != nil {
		return decimal.Zero, err
	}
	return amount, nil
}
