package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"

	"github.com/mmynk/tripsplit/internal/render"
	"github.com/mmynk/tripsplit/internal/service"
)

// addExpenseCmd holds the flags for the 'add-expense' subcommand.
type addExpenseCmd struct {
	title    string
	location string
	amount   string
	paid     string
	owed     string
	split    bool
}

func (*addExpenseCmd) Name() string     { return "add-expense" }
func (*addExpenseCmd) Synopsis() string { return "record a shared expense" }
func (*addExpenseCmd) Usage() string {
	return `tripsplit add-expense -title <title> -location <place> -amount <total> -paid <payers> (-owed <shares> | -split)

  Records an expense. Payers and shares are "Name=amount" lists separated by
  commas, e.g. -paid "Alice=60,Bob=40". A single payer may omit the amount.
  -split divides the total evenly across all members.
`
}

func (c *addExpenseCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.title, "title", "", "what the expense was for")
	f.StringVar(&c.location, "location", "", "where it happened")
	f.StringVar(&c.amount, "amount", "", "total amount")
	f.StringVar(&c.paid, "paid", "", "who paid, as Name=amount pairs")
	f.StringVar(&c.owed, "owed", "", "who owes, as Name=amount pairs")
	f.BoolVar(&c.split, "split", false, "split the total evenly across all members")
}

func (c *addExpenseCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	amount, err := decimal.NewFromString(strings.TrimSpace(c.amount))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing amount %q: %v\n", c.amount, err)
		return subcommands.ExitUsageError
	}
	paid, err := parseShares(c.paid, amount)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing -paid: %v\n", err)
		return subcommands.ExitUsageError
	}
	owed, err := parseShares(c.owed, amount)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing -owed: %v\n", err)
		return subcommands.ExitUsageError
	}
	if c.split && len(owed) > 0 {
		fmt.Fprintln(os.Stderr, "Error: -owed and -split are mutually exclusive")
		return subcommands.ExitUsageError
	}

	ledger, store, err := openLedger()
	if err != nil {
		return fail("Error opening database: %v", err)
	}
	defer store.Close()

	exp, err := ledger.AddExpense(ctx, service.ExpenseInput{
		Title:        c.title,
		Location:     c.location,
		Amount:       amount,
		PaidBy:       paid,
		Distribution: owed,
		SplitEvenly:  c.split,
	})
	if err != nil {
		return fail("Error recording expense: %v", err)
	}

	fmt.Printf("Recorded %q (%s)\n", exp.Title, render.Amount(exp.Amount, currency()))
	return subcommands.ExitSuccess
}

// historyCmd prints the expense history.
type historyCmd struct{}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "display the expense history" }
func (*historyCmd) Usage() string {
	return `tripsplit history

  Displays every recorded expense in recording order.
`
}

func (*historyCmd) SetFlags(*flag.FlagSet) {}

func (*historyCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, store, err := openLedger()
	if err != nil {
		return fail("Error opening database: %v", err)
	}
	defer store.Close()

	expenses, err := ledger.Expenses(ctx)
	if err != nil {
		return fail("Error listing expenses: %v", err)
	}

	var b strings.Builder
	if err := render.Expenses(&b, expenses, currency()); err != nil {
		return fail("Error rendering history: %v", err)
	}
	printMarkdown(b.String())
	return subcommands.ExitSuccess
}

// summaryCmd prints balances and the settlement plan.
type summaryCmd struct{}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display balances and who owes whom" }
func (*summaryCmd) Usage() string {
	return `tripsplit summary

  Displays the total expense, each member's contribution and the transfers
  that settle every balance.
`
}

func (*summaryCmd) SetFlags(*flag.FlagSet) {}

func (*summaryCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, store, err := openLedger()
	if err != nil {
		return fail("Error opening database: %v", err)
	}
	defer store.Close()

	summary, err := ledger.Summary(ctx)
	if err != nil {
		return fail("Error computing summary: %v", err)
	}

	var b strings.Builder
	if err := render.Markdown(&b, summary, currency()); err != nil {
		return fail("Error rendering summary: %v", err)
	}
	printMarkdown(b.String())
	return subcommands.ExitSuccess
}

// clearCmd wipes members and history.
type clearCmd struct {
	yes bool
}

func (*clearCmd) Name() string     { return "clear" }
func (*clearCmd) Synopsis() string { return "delete all members and expenses" }
func (*clearCmd) Usage() string {
	return `tripsplit clear -yes

  Deletes every member and expense. There is no undo; export first if unsure.
`
}

func (c *clearCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.yes, "yes", false, "confirm the deletion")
}

func (c *clearCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if !c.yes {
		fmt.Fprintln(os.Stderr, "Refusing to clear without -yes")
		return subcommands.ExitUsageError
	}

	ledger, store, err := openLedger()
	if err != nil {
		return fail("Error opening database: %v", err)
	}
	defer store.Close()

	if err := ledger.Clear(ctx); err != nil {
		return fail("Error clearing history: %v", err)
	}
	fmt.Println("History cleared.")
	return subcommands.ExitSuccess
}
