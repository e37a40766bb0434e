// Command capgains computes capital gains from brokerage transaction exports,
// matching sales against purchases first in first out and adjusting the cost
// basis of wash sale replacement lots.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path"

	"github.com/etnz/capgains/cmd"
	"github.com/google/subcommands"
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "help")
	commander.Register(commander.FlagsCommand(), "help")
	commander.Register(commander.CommandsCommand(), "help")
	cmd.Register(commander)

	// exits when the shell asks for completions (COMP_LINE is set).
	cmd.Completion(commander).Complete("capgains")

	flag.Parse()
	if err := cmd.Setup(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(int(subcommands.ExitUsageError))
	}
	os.Exit(int(commander.Execute(context.Background())))
}
