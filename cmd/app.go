// Package cmd implements the CLI application to manage an inventory.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/inventory"
	"github.com/etnz/inventory/config"
	"github.com/etnz/inventory/store"
	"github.com/google/subcommands"
)

// commands lists the subcommands by group.
var commands = []struct {
	group string
	cmd   subcommands.Command
}{
	{"transactions", &buyCmd{}},
	{"transactions", &sellCmd{}},
	{"transactions", &editCmd{}},
	{"reports", &logCmd{}},
	{"reports", &lotsCmd{}},
	{"reports", &exportCmd{}},
	{"maintenance", &recalcCmd{}},
	{"maintenance", &queryCmd{}},
	{"maintenance", &resetCmd{}},
	{"help", &topicCmd{}},
}

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(c.HelpCommand(), "")
	c.Register(c.FlagsCommand(), "")
	c.Register(c.CommandsCommand(), "")
	for _, e := range commands {
		c.Register(e.cmd, e.group)
	}
}

// IsCommand reports whether name is a subcommand registered by Register.
func IsCommand(name string) bool {
	switch name {
	case "help", "flags", "commands":
		return true
	}
	for _, e := range commands {
		if e.cmd.Name() == name {
			return true
		}
	}
	return false
}

// Commands returns the names of the subcommands registered by Register, and their flags.
func Commands() map[string][]string {
	m := make(map[string][]string, len(commands))
	for _, e := range commands {
		var names []string
		fs := flag.NewFlagSet(e.cmd.Name(), flag.ContinueOnError)
		e.cmd.SetFlags(fs)
		fs.VisitAll(func(f *flag.Flag) { names = append(names, f.Name) })
		m[e.cmd.Name()] = names
	}
	return m
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	configFile    = flag.String("config", "", "Path to a YAML configuration file. Defaults to $"+EnvConfig+".")
	storeLocation = flag.String("store", "", "Location of the store: a folder, memory:, redis://... or postgres://... Overrides the configuration.")
	storeKey      = flag.String("key", "", "Key of the ledger in the store. Overrides the configuration.")
	currency      = flag.String("currency", "", "Currency of a new ledger. Overrides the configuration.")
)

// settings returns the configuration with the global flags applied.
func settings() (config.Config, error) {
	path := *configFile
	if path == "" {
		path = os.Getenv(EnvConfig)
	}
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}
	if *storeLocation != "" {
		cfg.Store = *storeLocation
	}
	if *storeKey != "" {
		cfg.Key = *storeKey
	}
	if *currency != "" {
		cfg.Currency = *currency
	}
	return cfg, cfg.Validate()
}

// workspace is an open store and the ledger loaded from it.
type workspace struct {
	cfg    config.Config
	store  store.Store
	ledger *inventory.Ledger
}

// openWorkspace opens the configured store and loads the ledger. The caller must Close it.
func openWorkspace(ctx context.Context) (*workspace, error) {
	cfg, err := settings()
	if err != nil {
		return nil, err
	}
	s, err := store.Open(ctx, cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("could not open store %q: %w", cfg.Store, err)
	}
	return &workspace{
		cfg:    cfg,
		store:  s,
		ledger: store.Load(ctx, s, cfg.Key, cfg.Currency),
	}, nil
}

// save persists the ledger.
func (w *workspace) save(ctx context.Context) error {
	return store.Save(ctx, w.store, w.cfg.Key, w.ledger)
}

func (w *workspace) Close() error { return w.store.Close() }

// printMarkdown renders markdown for the terminal, or prints it as is if it cannot.
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(0))
	if err == nil {
		var out string
		if out, err = r.Render(md); err == nil {
			fmt.Print(out)
			return
		}
	}
	fmt.Print(md)
}
