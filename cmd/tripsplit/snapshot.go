package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/google/subcommands"

	"github.com/mmynk/tripsplit/internal/storage/snapshot"
)

// importCmd appends a snapshot file to the database.
type importCmd struct{}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "import members and expenses from a snapshot" }
func (*importCmd) Usage() string {
	return `tripsplit import <file>

  Appends the members and expenses of a JSON snapshot, as written by export
  or dumped from the browser version. Use "-" to read stdin.
`
}

func (*importCmd) SetFlags(*flag.FlagSet) {}

func (*importCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: exactly one snapshot file is required")
		return subcommands.ExitUsageError
	}

	var r io.Reader = os.Stdin
	if name := f.Arg(0); name != "-" {
		file, err := os.Open(name)
		if err != nil {
			return fail("Error opening snapshot: %v", err)
		}
		defer file.Close()
		r = file
	}

	_, store, err := openLedger()
	if err != nil {
		return fail("Error opening database: %v", err)
	}
	defer store.Close()

	res, err := snapshot.Import(ctx, store, r)
	if err != nil {
		return fail("Error importing snapshot: %v", err)
	}
	fmt.Printf("Imported %d members and %d expenses\n", res.Members, res.Expenses)
	return subcommands.ExitSuccess
}

// exportCmd writes the database as a snapshot.
type exportCmd struct {
	output string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export members and expenses as a snapshot" }
func (*exportCmd) Usage() string {
	return `tripsplit export [-o <file>]

  Writes every member and expense as a JSON snapshot, to stdout by default.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "", "output file (default stdout)")
}

func (c *exportCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	_, store, err := openLedger()
	if err != nil {
		return fail("Error opening database: %v", err)
	}
	defer store.Close()

	var w io.Writer = os.Stdout
	if c.output != "" {
		file, err := os.Create(c.output)
		if err != nil {
			return fail("Error creating %q: %v", c.output, err)
		}
		defer file.Close()
		w = file
	}

	if err := snapshot.Export(ctx, store, w); err != nil {
		return fail("Error exporting snapshot: %v", err)
	}
	return subcommands.ExitSuccess
}
