package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/stemerlini/fusion-plots/config"
	"github.com/stemerlini/fusion-plots/interfaces"
	"github.com/stemerlini/fusion-plots/logging"
	"github.com/stemerlini/fusion-plots/nistparser"
	"github.com/stemerlini/fusion-plots/nistparser/entities"
)

// rootOptions holds the persistent flags and the configuration resolved
// from them before any subcommand runs
type rootOptions struct {
	url      string
	file     string
	logLevel string
	logDir   string
	envFile  string

	cfg    *config.Config
	parser interfaces.Parser
}

// NewRootCmd builds the fusion-plots command tree
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "fusion-plots",
		Short: "fusion-plots parses NIST isotope data and computes nuclear binding energies.",
		Long: "fusion-plots reads the NIST atomic weights and isotopic compositions table, " +
			"either from the NIST web service (--url) or from a saved text dump (--file), " +
			"and derives the binding energy of every isotope.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if err := logging.Close(); err != nil {
				fmt.Fprintln(os.Stderr, "failed to close log file:", err)
			}
		},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "welcome to use fusion-plots, use `fusion-plots -h` for help")
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.url, "url", "", "NIST query URL to fetch (line-stream format)")
	flags.StringVar(&opts.file, "file", "", "NIST text dump to read (tag = value records)")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn or error")
	flags.StringVar(&opts.logDir, "log-dir", "", "directory for the rotated log file")
	flags.StringVar(&opts.envFile, "env-file", ".env", "env file loaded before reading the environment")

	rootCmd.AddCommand(
		newParseCmd(opts),
		newEnergyCmd(opts),
		newQualityCmd(opts),
		newPlotCmd(opts),
		newServeCmd(opts),
		newVersionCmd(),
	)

	return rootCmd
}

// Execute runs the root command and exits non-zero on failure
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads the configuration, applies flag overrides and starts logging
func (o *rootOptions) setup(cmd *cobra.Command) error {
	if err := config.LoadDotEnv(o.envFile); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// A source given on the command line replaces the configured ones
	flags := cmd.Flags()
	if flags.Changed("url") || flags.Changed("file") {
		cfg.NistURL, cfg.NistFile = o.url, o.file
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}
	if flags.Changed("log-dir") {
		cfg.LogDir = o.logDir
	}
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	o.cfg = cfg

	logging.InitLogger(cfg.LogDir, cfg.LogLevel)

	if o.parser == nil {
		o.parser = nistparser.NewNistParser(nistparser.NewDownloader(cfg.FetchTimeout))
	}
	return nil
}

// source returns the configured NIST sources
func (o *rootOptions) source() interfaces.Source {
	return interfaces.Source{URL: o.cfg.NistURL, File: o.cfg.NistFile}
}

// load parses every configured source into one fresh table
func (o *rootOptions) load(ctx context.Context) (*entities.NuclideTable, error) {
	table, warnings, err := o.parser.Load(ctx, o.source())
	if err != nil {
		return nil, err
	}
	if warnings > 0 {
		logging.Warn("NIST data has inconsistent records", "warnings", warnings)
	}
	return table, nil
}
