package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

// addMemberCmd registers one or more members.
type addMemberCmd struct{}

func (*addMemberCmd) Name() string     { return "add-member" }
func (*addMemberCmd) Synopsis() string { return "register trip members" }
func (*addMemberCmd) Usage() string {
	return `tripsplit add-member <name>...

  Registers each name as a member. Names must be unique.
`
}

func (*addMemberCmd) SetFlags(*flag.FlagSet) {}

func (*addMemberCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: at least one member name is required")
		return subcommands.ExitUsageError
	}

	ledger, store, err := openLedger()
	if err != nil {
		return fail("Error opening database: %v", err)
	}
	defer store.Close()

	for _, name := range f.Args() {
		member, err := ledger.AddMember(ctx, name)
		if err != nil {
			return fail("Error adding member %q: %v", name, err)
		}
		fmt.Printf("Added %s\n", member.Name)
	}
	return subcommands.ExitSuccess
}

// membersCmd lists the registered members.
type membersCmd struct{}

func (*membersCmd) Name() string     { return "members" }
func (*membersCmd) Synopsis() string { return "list trip members" }
func (*membersCmd) Usage() string {
	return `tripsplit members

  Lists members in registration order.
`
}

func (*membersCmd) SetFlags(*flag.FlagSet) {}

func (*membersCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, store, err := openLedger()
	if err != nil {
		return fail("Error opening database: %v", err)
	}
	defer store.Close()

	members, err := ledger.Members(ctx)
	if err != nil {
		return fail("Error listing members: %v", err)
	}
	if len(members) == 0 {
		fmt.Println("No members yet.")
		return subcommands.ExitSuccess
	}
	for _, m := range members {
		fmt.Println(m.Name)
	}
	return subcommands.ExitSuccess
}
