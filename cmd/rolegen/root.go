package main

import (
	"github.com/spf13/cobra"

	"github.com/kittclouds/rolegen/internal/config"
	"github.com/kittclouds/rolegen/internal/logging"
)

// version is set at build time via -ldflags.
var version = "dev"

// app carries settings resolved from the environment and persistent flags.
type app struct {
	cfg config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "rolegen",
		Short:         "Generate rolelists from role scripts",
		Long:          "rolegen fills every slot of a role script with a role drawn from a catalog,\nhonouring global filters, modifiers and weight changers.",
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}
	root.Version = version

	f := root.PersistentFlags()
	f.String("catalog", "", "Catalog file (YAML or JSON); env ROLEGEN_CATALOG")
	f.String("db", "", "SQLite catalog path; env ROLEGEN_DB")
	f.String("log-level", "", "Log level (debug, info, warn, error); env ROLEGEN_LOG_LEVEL")
	f.String("log-format", "", "Log format (text, json); env ROLEGEN_LOG_FORMAT")

	root.AddCommand(a.generateCmd())
	root.AddCommand(a.checkCmd())
	root.AddCommand(a.importCmd())
	root.AddCommand(a.rolesCmd())
	return root
}

// setup loads the environment, applies explicitly set flags over it and
// configures logging.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	override := func(name string, dst *string) {
		if flags.Changed(name) {
			*dst, _ = flags.GetString(name)
		}
	}
	override("catalog", &cfg.Catalog)
	override("db", &cfg.DB)
	override("log-level", &cfg.LogLevel)
	override("log-format", &cfg.LogFormat)

	lvl, err := cfg.Level()
	if err != nil {
		return err
	}
	logging.Init(lvl, cfg.LogFormat, cmd.ErrOrStderr())

	a.cfg = cfg
	return nil
}
