// Command inv records purchases and sales of a single item and costs every
// sale first in, first out.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/inventory/cmd"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	name := path.Base(os.Args[0])
	completion().Complete(name)

	commander := subcommands.NewCommander(flag.CommandLine, name)
	cmd.Register(commander)
	flag.Parse()

	if sub := flag.Arg(0); sub != "" && !cmd.IsCommand(sub) {
		if found, code := cmd.RunExtension(sub, flag.Args()[1:]); found {
			os.Exit(code)
		}
	}
	os.Exit(int(commander.Execute(context.Background())))
}

// completion describes the command line for shell completion.
// Install it with COMP_INSTALL=1 inv.
func completion() *complete.Command {
	c := &complete.Command{
		Sub: map[string]*complete.Command{
			"help":     {},
			"flags":    {},
			"commands": {},
		},
		Flags: map[string]complete.Predictor{
			"config":   predict.Files("*.yaml"),
			"store":    predict.Dirs("*"),
			"key":      predict.Nothing,
			"currency": predict.Set{"USD", "EUR", "GBP", "JPY", "CHF"},
		},
	}
	for sub, flags := range cmd.Commands() {
		sc := &complete.Command{Flags: map[string]complete.Predictor{}}
		for _, f := range flags {
			sc.Flags[f] = predict.Nothing
		}
		switch sub {
		case "export":
			sc.Flags["o"] = predict.Files("*.xlsx")
		case "query":
			sc.Args = predict.Set{"$.currentStock", "$.purchaseTrack", "$.transactions", "$.purchases"}
		}
		c.Sub[sub] = sc
	}
	return c
}
