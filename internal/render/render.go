// Package render turns ledger results into text for people.
//
// This is the only place amounts are rounded, and the only place member names,
// titles and locations are escaped. Everything upstream treats them as opaque.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"github.com/mmynk/tripsplit/internal/models"
)

const (
	// DefaultCurrency is used when no currency is configured.
	DefaultCurrency = "INR"

	// SettledStatement is shown in place of transfers when nothing is owed.
	SettledStatement = "All settled up ✅"

	// EmptyHistory is shown instead of a summary when no expense exists yet.
	EmptyHistory = "🗒️ No expenses yet. Add one above!"
)

// Amount formats value in the currency's display format, rounded to its minor unit.
func Amount(value decimal.Decimal, currency string) string {
	if currency == "" {
		currency = DefaultCurrency
	}
	// money.New never returns a nil currency, even for unknown codes.
	cur := money.New(0, currency).Currency()
	minor := value.Shift(int32(cur.Fraction)).Round(0).IntPart()
	return cur.Formatter().Format(minor)
}

// Statement formats one transfer, e.g. "B ➡️ ₹10.00 ➡️ A".
// Names are written as given; escape them first for markup outputs.
func Statement(s models.Settlement, currency string) string {
	return fmt.Sprintf("%s ➡️ %s ➡️ %s", s.From, Amount(s.Amount, currency), s.To)
}

// Statements formats a whole plan. A settled plan yields the single settled statement.
func Statements(plan models.SettlementPlan, currency string) []string {
	if plan.Settled {
		return []string{SettledStatement}
	}
	out := make([]string, len(plan.Transfers))
	for i, t := range plan.Transfers {
		out[i] = Statement(t, currency)
	}
	return out
}

// Markdown writes the summary as a markdown document.
func Markdown(w io.Writer, summary models.Summary, currency string) error {
	var b strings.Builder

	if summary.ExpenseCount == 0 {
		b.WriteString(EmptyHistory + "\n")
		_, err := io.WriteString(w, b.String())
		return err
	}

	fmt.Fprintf(&b, "### 💰 Total Expense: %s\n\n", Amount(summary.TotalExpense, currency))

	b.WriteString("### 📊 Contributions\n\n")
	for _, bal := range summary.Balances {
		fmt.Fprintf(&b, "- **%s**: Paid %s, Owes %s, Net: %s\n",
			EscapeMarkdown(bal.Member),
			Amount(bal.Paid, currency),
			Amount(bal.Owed, currency),
			Amount(bal.Balance, currency),
		)
	}

	b.WriteString("\n### 🔁 Settlements\n\n")
	if summary.Plan.Settled {
		b.WriteString("- " + SettledStatement + "\n")
	}
	for _, t := range summary.Plan.Transfers {
		escaped := models.Settlement{From: EscapeMarkdown(t.From), To: EscapeMarkdown(t.To), Amount: t.Amount}
		b.WriteString("- " + Statement(escaped, currency) + "\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// Expenses writes the history as a markdown table.
func Expenses(w io.Writer, expenses []models.Expense, currency string) error {
	var b strings.Builder

	if len(expenses) == 0 {
		b.WriteString(EmptyHistory + "\n")
		_, err := io.WriteString(w, b.String())
		return err
	}

	b.WriteString("| # | Title | Location | Amount | Paid by | Owed by |\n")
	b.WriteString("|---|---|---|---:|---|---|\n")
	for i, exp := range expenses {
		fmt.Fprintf(&b, "| %d | %s | %s | %s | %s | %s |\n",
			i+1,
			EscapeMarkdown(exp.Title),
			EscapeMarkdown(exp.Location),
			Amount(exp.Amount, currency),
			sharesCell(exp.PaidBy, currency),
			sharesCell(exp.Distribution, currency),
		)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func sharesCell(shares models.Shares, currency string) string {
	parts := make([]string, 0, len(shares))
	for _, sh := range shares {
		if sh.Amount.IsZero() {
			continue
		}
		parts = append(parts, EscapeMarkdown(sh.Member)+" "+Amount(sh.Amount, currency))
	}
	return strings.Join(parts, ", ")
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`, "`", "\\`", `*`, `\*`, `_`, `\_`, `{`, `\{`, `}`, `\}`,
	`[`, `\[`, `]`, `\]`, `(`, `\(`, `)`, `\)`, `#`, `\#`,
	`!`, `\!`, `|`, `\|`, `<`, `\<`, `>`, `\>`, `~`, `\~`,
)

// EscapeMarkdown backslash-escapes the markdown characters that act inline.
// Output never starts a line with user text, so block markers like "-" are left alone.
func EscapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}
