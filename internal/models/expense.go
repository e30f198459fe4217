package models

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Expense represents a shared cost. Expenses are immutable once stored;
// history only grows, or is cleared as a whole.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// Title and Location are free-text labels supplied by the user.
	Title    string
	Location string

	// Amount is the total cost of the expense.
	Amount decimal.Decimal

	// PaidBy records how much each member actually paid.
	// A single payer is just a one-entry list.
	PaidBy Shares

	// Distribution records how much each member is responsible for.
	Distribution Shares

	// CreatedAt is the Unix timestamp when the expense was recorded.
	// Informational only.
	CreatedAt int64
}

// Share is one member's amount within a PaidBy or Distribution list.
type Share struct {
	Member string          `json:"member"`
	Amount decimal.Decimal `json:"amount"`
}

// Shares is an insertion-ordered member → amount mapping.
//
// A member may appear more than once; consumers add the amounts together.
// JSON encoding is an object whose key order is kept on both encode and decode.
type Shares []Share

// Sum returns the total of all amounts.
func (s Shares) Sum() decimal.Decimal {
	total := decimal.Zero
	for _, sh := range s {
		total = total.Add(sh.Amount)
	}
	return total
}

// Get returns the combined amount for member, and whether it appeared at all.
func (s Shares) Get(member string) (decimal.Decimal, bool) {
	total := decimal.Zero
	found := false
	for _, sh := range s {
		if sh.Member == member {
			total = total.Add(sh.Amount)
			found = true
		}
	}
	return total, found
}

// Members returns member names in first-seen order, without duplicates.
func (s Shares) Members() []string {
	seen := make(map[string]bool, len(s))
	var names []string
	for _, sh := range s {
		if !seen[sh.Member] {
			seen[sh.Member] = true
			names = append(names, sh.Member)
		}
	}
	return names
}

// MarshalJSON encodes the shares as an ordered JSON object of numbers.
func (s Shares) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, sh := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(sh.Member)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.WriteString(sh.Amount.String())
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON accepts an object ({"A": 10}), an array of
// {"member": ..., "amount": ...}, or null. Any invalid amount is an error.
func (s *Shares) UnmarshalJSON(data []byte) error {
	shares, skipped, err := decodeShares(data, false)
	if err != nil {
		return err
	}
	if len(skipped) > 0 {
		return fmt.Errorf("invalid amount for %q", skipped[0])
	}
	*s = shares
	return nil
}

// DecodeSharesLenient decodes shares like UnmarshalJSON but skips entries
// whose amount is not a number, returning their member names. Malformed
// structure (neither object, array nor null) yields empty shares.
func DecodeSharesLenient(data []byte) (Shares, []string) {
	shares, skipped, err := decodeShares(data, true)
	if err != nil {
		return Shares{}, skipped
	}
	return shares, skipped
}

func decodeShares(data []byte, lenient bool) (Shares, []string, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return Shares{}, nil, nil
	}

	switch data[0] {
	case '[':
		var raw []struct {
			Member string          `json:"member"`
			Amount json.RawMessage `json:"amount"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, nil, fmt.Errorf("failed to decode shares: %w", err)
		}
		shares := make(Shares, 0, len(raw))
		var skipped []string
		for _, r := range raw {
			amount, err := decodeAmount(r.Amount)
			if err != nil {
				if !lenient {
					return nil, nil, fmt.Errorf("invalid amount for %q: %w", r.Member, err)
				}
				skipped = append(skipped, r.Member)
				continue
			}
			shares = append(shares, Share{Member: r.Member, Amount: amount})
		}
		return shares, skipped, nil

	case '{':
		dec := json.NewDecoder(bytes.NewReader(data))
		if _, err := dec.Token(); err != nil { // opening brace
			return nil, nil, fmt.Errorf("failed to decode shares: %w", err)
		}
		shares := Shares{}
		var skipped []string
		for dec.More() {
			tok, err := dec.Token()
			if err != nil {
				return nil, nil, fmt.Errorf("failed to decode shares: %w", err)
			}
			member, ok := tok.(string)
			if !ok {
				return nil, nil, fmt.Errorf("unexpected share key %v", tok)
			}
			var raw json.RawMessage
			if err := dec.Decode(&raw); err != nil {
				return nil, nil, fmt.Errorf("failed to decode share for %q: %w", member, err)
			}
			amount, err := decodeAmount(raw)
			if err != nil {
				if !lenient {
					return nil, nil, fmt.Errorf("invalid amount for %q: %w", member, err)
				}
				skipped = append(skipped, member)
				continue
			}
			shares = append(shares, Share{Member: member, Amount: amount})
		}
		return shares, skipped, nil
	}

	return nil, nil, fmt.Errorf("shares must be an object or an array")
}

// decodeAmount reads a JSON number or numeric string.
func decodeAmount(raw json.RawMessage) (decimal.Decimal, error) {
	var d decimal.Decimal
	if len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return d, fmt.Errorf("missing amount")
	}
	if err := d.UnmarshalJSON(raw); err != nil {
		return d, err
	}
	return d, nil
}
