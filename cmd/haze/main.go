// Command haze explores hash labyrinths from the command line.
//
//	haze explore [--config haze.yaml] [--runs 10] [--mode bfs|dfs|meander] ...
//	haze verify  [--samples 10000]
//
// Configuration comes from defaults, an optional YAML file and HAZE_
// environment variables (see package config); flags override all three.
//
// Exit codes: 0 success, 1 failed exploration or verification
// (including a consistency violation), 2 invalid configuration or usage.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"

	"github.com/katalvlaran/haze/config"
)

// Process exit codes.
const (
	exitOK     = 0
	exitFailed = 1
	exitUsage  = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tty := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	err := newRootCmd(os.Stdout, os.Stderr, tty).ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "haze:", err)
	}
	stop()
	os.Exit(exitCode(err))
}

// exitCode maps a command error to a process exit code.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, config.ErrConfiguration), errors.Is(err, errUsage):
		return exitUsage
	default:
		return exitFailed
	}
}
