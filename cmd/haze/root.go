package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/haze/config"
)

// errUsage marks flag and argument mistakes.
var errUsage = errors.New("usage")

// app is the state shared by all subcommands.
type app struct {
	out    io.Writer
	errOut io.Writer
	tty    bool

	cfgPath   string
	logLevel  string
	logFormat string

	cfg config.Config
	log *slog.Logger
}

func newRootCmd(out, errOut io.Writer, tty bool) *cobra.Command {
	a := &app{out: out, errOut: errOut, tty: tty}

	root := &cobra.Command{
		Use:   "haze",
		Short: "Explore hash labyrinths section by section",
		Long: `haze explores labyrinths whose rooms ("sections") are rings of 32-bit
seeds. Walking through a doorway mixes the seeds with a hash; walking back
through the same doorway must lead home. haze counts what it finds and stops
at the first doorway that does not.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd)
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", errUsage, err)
	})

	pf := root.PersistentFlags()
	pf.StringVarP(&a.cfgPath, "config", "c", "", "YAML configuration file")
	pf.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.StringVar(&a.logFormat, "log-format", "", "log format: text or json")

	root.AddCommand(newExploreCmd(a), newVerifyCmd(a))

	return root
}

// load reads the configuration and applies the persistent flags.
// Subcommands apply their own flags and call validate afterwards.
func (a *app) load(cmd *cobra.Command) error {
	cfg, err := config.Load(a.cfgPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Log.Level = a.logLevel
	}
	if cmd.Flags().Changed("log-format") {
		cfg.Log.Format = a.logFormat
	}
	a.cfg = cfg

	return a.validate()
}

// validate re-checks the configuration after flag overrides and rebuilds the logger.
func (a *app) validate() error {
	if err := a.cfg.Validate(); err != nil {
		return err
	}
	a.log = a.cfg.Logger(a.errOut)

	return nil
}
