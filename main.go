// handconv rewrites poker hand histories so every amount reads as if the
// hand was played at 0.5/1 stakes.
//
// Two modes:
//  1. convert: local files (or stdin) to an output directory (or stdout)
//  2. job: converts the hand files of a job, uploads the results to GCS or S3
//     and reports progress to the orchestrator API

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/zetsnotdead/hand-converter/config"
	"github.com/zetsnotdead/hand-converter/converter"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// globalFlags are shared by every subcommand
type globalFlags struct {
	configPath  string
	envFile     string
	logLevel    string
	workers     int
	summaryPots bool
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}
	root := &cobra.Command{
		Use:           "handconv",
		Short:         "Normalize poker hand histories to 0.5/1 stakes",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&g.configPath, "config", "", "path to a YAML config file (default ./"+config.DefaultConfigPath+" if present)")
	pf.StringVar(&g.envFile, "env-file", "", "path to a .env file (default ./.env if present)")
	pf.StringVar(&g.logLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.IntVarP(&g.workers, "workers", "w", 0, "number of hands converted in parallel")
	pf.BoolVar(&g.summaryPots, "summary-pots", false, "also rescale pot and winnings lines in the summary")

	root.AddCommand(newConvertCmd(g), newJobCmd(g))
	return root
}

// load resolves the configuration with the global flags applied on top of o
func (g *globalFlags) load(o config.Overrides) (config.Config, error) {
	o.LogLevel = g.logLevel
	o.Workers = g.workers
	o.SummaryPots = g.summaryPots
	return config.Load(config.LoadOptions{
		ConfigPath: g.configPath,
		EnvFile:    g.envFile,
		Overrides:  o,
	})
}

func newLogger(level string) *log.Logger {
	lvl, err := log.ParseLevel(strings.ToLower(level))
	if err != nil {
		lvl = log.InfoLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Level:           lvl,
	})
}

func newConverter(cfg config.Config) *converter.Converter {
	return converter.New(converter.Options{SummaryPots: cfg.SummaryPots})
}
