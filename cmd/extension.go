package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"

	"github.com/etnz/performance/config"
	"github.com/google/subcommands"
)

// Environment passed to extensions, on top of the current one.
const (
	EnvConfigFile = "PERF_CONFIG"
	EnvVerbose    = "PERF_VERBOSE"
)

// IsRegistered reports whether the commander knows a subcommand by that name.
func IsRegistered(c *subcommands.Commander, name string) bool {
	found := false
	c.VisitCommands(func(g *subcommands.CommandGroup, cmd subcommands.Command) {
		found = found || cmd.Name() == name
	})
	return found
}

// RunExtension attempts to find and execute an external perf-<subcommand> binary.
// It returns (true, exitCode) if an extension was found and executed,
// and (false, 0) if no extension was found.
//
// Global flags are passed as environment variables: the same PERF_* variables
// the configuration reads, so that extensions can call config.LoadConfig.
func RunExtension(subcommand string, args []string) (bool, int) {
	externalCmdName := "perf-" + subcommand

	lp, err := exec.LookPath(externalCmdName)
	if err != nil {
		logger().Debug().Str("extension", externalCmdName).Err(err).Msg("extension not found")
		return false, 0
	}

	cmd := exec.Command(lp, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	cmd.Env = os.Environ()
	cmd.Env = append(cmd.Env, EnvConfigFile+"="+*configFile)
	if *ledgerFile != "" {
		cmd.Env = append(cmd.Env, config.EnvLedger+"="+*ledgerFile)
	}
	if *defaultCurrency != "" {
		cmd.Env = append(cmd.Env, config.EnvCurrency+"="+*defaultCurrency)
	}
	cmd.Env = append(cmd.Env, EnvVerbose+"="+strconv.FormatBool(*Verbose))

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
