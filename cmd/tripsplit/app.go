package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"

	"github.com/mmynk/tripsplit/internal/config"
	"github.com/mmynk/tripsplit/internal/models"
	"github.com/mmynk/tripsplit/internal/service"
	"github.com/mmynk/tripsplit/internal/storage/sqlite"
)

// register adds every ledger subcommand to c.
func register(c *subcommands.Commander) {
	c.Register(&addMemberCmd{}, "members")
	c.Register(&membersCmd{}, "members")

	c.Register(&addExpenseCmd{}, "expenses")
	c.Register(&historyCmd{}, "expenses")
	c.Register(&summaryCmd{}, "expenses")
	c.Register(&clearCmd{}, "expenses")

	c.Register(&importCmd{}, "snapshots")
	c.Register(&exportCmd{}, "snapshots")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var cfg *config.Config

var (
	dbFlag       = flag.String("db", "", "SQLite database file (overrides DB_PATH)")
	currencyFlag = flag.String("currency", "", "ISO 4217 display currency (overrides CURRENCY)")
	plainFlag    = flag.Bool("plain", false, "print raw markdown instead of styled terminal output")
)

func dbPath() string {
	if *dbFlag != "" {
		return *dbFlag
	}
	return cfg.DBPath
}

func currency() string {
	if *currencyFlag != "" {
		return strings.ToUpper(*currencyFlag)
	}
	return cfg.Currency
}

// openLedger opens the configured database. Callers must close the returned store.
func openLedger() (*service.Ledger, *sqlite.SQLiteStore, error) {
	store, err := sqlite.New(dbPath())
	if err != nil {
		return nil, nil, err
	}
	return service.NewLedger(store, nil), store, nil
}

// printMarkdown renders md for the terminal, or prints it as is with -plain.
func printMarkdown(md string) {
	if *plainFlag {
		fmt.Print(md)
		return
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		fmt.Print(md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}

// parseShares reads a "Name=amount,Name=amount" list. An entry without an
// amount takes the whole total, which is only allowed for a single entry.
func parseShares(s string, total decimal.Decimal) (models.Shares, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	entries := strings.Split(s, ",")
	shares := make(models.Shares, 0, len(entries))
	for _, entry := range entries {
		name, value, hasValue := strings.Cut(entry, "=")
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("empty member name in %q", entry)
		}

		if !hasValue {
			if len(entries) > 1 {
				return nil, fmt.Errorf("missing amount for %q", name)
			}
			shares = append(shares, models.Share{Member: name, Amount: total})
			continue
		}

		amount, err := decimal.NewFromString(strings.TrimSpace(value))
		if err != nil {
			return nil, fmt.Errorf("invalid amount for %q: %w", name, err)
		}
		shares = append(shares, models.Share{Member: name, Amount: amount})
	}
	return shares, nil
}

func fail(format string, args ...any) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	return subcommands.ExitFailure
}
