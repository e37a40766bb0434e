// Package cmd implements the CLI application computing capital gains.
package cmd

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/etnz/capgains/config"
	"github.com/etnz/capgains/logger"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	Verbose    = flag.Bool("v", false, "verbose output: debug logs in a human readable format")
	configFile = flag.String("config", "", "configuration file (default: capgains.yaml in the current directory or $HOME)")
)

// stdout receives the command outputs.
var stdout io.Writer = os.Stdout

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&gainsCmd{}, "")
	c.Register(&convertCmd{}, "files")
	c.Register(&ledgerCmd{}, "files")
	c.Register(&topicCmd{}, "help")
}

// Setup loads the configuration and initializes the logger. It must be called
// after the global flags are parsed, and before any subcommand is executed.
func Setup() error {
	if err := config.LoadConfig(*configFile); err != nil {
		return err
	}
	level, pretty := config.AppConfig.Log.Level, config.AppConfig.Log.Pretty
	if *Verbose {
		level, pretty = "debug", true
	}
	logger.Init(os.Stderr, level, pretty)
	logger.L().Debug().Str("config", *configFile).Msg("configuration loaded")
	return nil
}

// argsPredictor is implemented by commands whose arguments can be completed.
type argsPredictor interface {
	predictArgs() complete.Predictor
}

// Completion returns the shell completion of the registered commands and flags.
func Completion(c *subcommands.Commander) *complete.Command {
	root := &complete.Command{
		Sub:   map[string]*complete.Command{},
		Flags: predictFlags(flag.CommandLine),
	}
	c.VisitCommands(func(_ *subcommands.CommandGroup, cmd subcommands.Command) {
		fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
		cmd.SetFlags(fs)
		sub := &complete.Command{Flags: predictFlags(fs)}
		if p, ok := cmd.(argsPredictor); ok {
			sub.Args = p.predictArgs()
		}
		root.Sub[cmd.Name()] = sub
	})
	return root
}

func predictFlags(fs *flag.FlagSet) map[string]complete.Predictor {
	flags := map[string]complete.Predictor{}
	fs.VisitAll(func(f *flag.Flag) {
		if b, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
			flags[f.Name] = predict.Nothing
			return
		}
		flags[f.Name] = predict.Something
	})
	return flags
}

// ledgerFiles predicts the files Load can read.
var ledgerFiles = predict.Or(predict.Files("*.csv"), predict.Files("*.jsonl"))

// usageError prints an error for a misused command.
func usageError(format string, args ...any) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	return subcommands.ExitUsageError
}

// failure prints an error for a command that could not complete.
func failure(format string, args ...any) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	return subcommands.ExitFailure
}
