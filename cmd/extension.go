package cmd

import (
	"errors"
	"fmt"
	"log"
	"os"
	"os/exec"
)

// Environment variables read by the configuration and passed to extensions.
const (
	EnvConfig   = "INVENTORY_CONFIG"
	EnvStore    = "INVENTORY_STORE"
	EnvKey      = "INVENTORY_KEY"
	EnvCurrency = "INVENTORY_CURRENCY"
)

// RunExtension attempts to find and execute an external inv-<subcommand> binary.
// It returns (true, exitCode) if an extension was found and executed,
// and (false, 0) if no extension was found.
//
// The extension receives the resolved settings in its environment, so that
// it works on the same ledger.
func RunExtension(subcommand string, args []string) (bool, int) {
	externalCmdName := "inv-" + subcommand

	lp, err := exec.LookPath(externalCmdName)
	if err != nil {
		log.Printf("External command %q not found in PATH: %v", externalCmdName, err)
		return false, 0
	}

	cmd := exec.Command(lp, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	cmd.Env = os.Environ()
	if cfg, err := settings(); err != nil {
		log.Printf("warning, %q runs without settings: %v", externalCmdName, err)
	} else {
		cmd.Env = append(cmd.Env,
			EnvStore+"="+cfg.Store,
			EnvKey+"="+cfg.Key,
			EnvCurrency+"="+cfg.Currency,
		)
	}

	if err := cmd.Run(); err != nil {
		var exitError *exec.ExitError
		if errors.As(err, &exitError) {
			return true, exitError.ExitCode()
		}
		fmt.Fprintf(os.Stderr, "Error executing external command %q: %v\n", externalCmdName, err)
		return true, 1
	}
	return true, 0
}
