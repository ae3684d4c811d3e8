package cmd

import (
	"flag"

	"github.com/etnz/performance/docs"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// periods are the standard period names accepted by -p.
var periods = predict.Set{"day", "week", "month", "quarter", "year"}

// Complete serves shell completion for the registered commands.
//
// When the program is run by the shell completion (COMP_LINE set) it prints
// the candidates and exits. COMP_INSTALL=1 and COMP_UNINSTALL=1 install and
// uninstall the completion in the user's shell. Otherwise it does nothing.
func Complete(name string, c *subcommands.Commander) {
	complete.Complete(name, completionTree(c))
}

// completionTree describes the commands and their flags for completion.
func completionTree(c *subcommands.Commander) *complete.Command {
	root := &complete.Command{
		Sub:   make(map[string]*complete.Command),
		Flags: flagPredictors(flag.CommandLine),
	}
	root.Flags["config"] = predict.Files("*.toml")
	root.Flags["ledger-file"] = predict.Files("*.jsonl")

	c.VisitCommands(func(_ *subcommands.CommandGroup, cmd subcommands.Command) {
		fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
		cmd.SetFlags(fs)
		sub := &complete.Command{Flags: flagPredictors(fs)}
		if _, ok := sub.Flags["p"]; ok {
			sub.Flags["p"] = periods
		}
		if cmd.Name() == "topic" {
			if topics, err := docs.GetAllTopics(); err == nil {
				sub.Args = predict.Set(topics)
			}
		}
		root.Sub[cmd.Name()] = sub
	})
	return root
}

// flagPredictors predicts nothing after boolean flags, and something after the others.
func flagPredictors(fs *flag.FlagSet) map[string]complete.Predictor {
	flags := make(map[string]complete.Predictor)
	fs.VisitAll(func(f *flag.Flag) {
		if b, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
			flags[f.Name] = predict.Nothing
			return
		}
		flags[f.Name] = predict.Something
	})
	return flags
}
