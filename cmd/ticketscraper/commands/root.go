package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

type globalFlags struct {
	settings    string
	logLevel    string
	output      string
	format      string
	metricsAddr string
	statePath   string
	envFile     string
}

var global globalFlags

var rootCmd = &cobra.Command{
	Use:           "ticketscraper",
	Short:         "ticketscraper collects events and venues from the Ticketmaster Discovery API.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&global.settings, "settings", "", "YAML settings file.")
	pf.StringVar(&global.logLevel, "log-level", "", "Overrides logging.level (debug, info, warn, error).")
	pf.StringVarP(&global.output, "output", "o", "", "Overrides output.path, empty writes to stdout.")
	pf.StringVar(&global.format, "format", "", "Overrides output.format (jsonl, table).")
	pf.StringVar(&global.metricsAddr, "metrics-addr", "", "Overrides metrics.addr, e.g. :9090.")
	pf.StringVar(&global.statePath, "state", "", "Overrides state.path, the resume checkpoint.")
	pf.StringVar(&global.envFile, "env-file", ".env", "dotenv file loaded before the run.")
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
