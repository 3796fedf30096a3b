package main

import (
	"errors"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vdobler/posthist"
	"github.com/vdobler/posthist/internal/config"
	"github.com/vdobler/posthist/internal/logging"
)

// app holds the state shared by all commands of one invocation.
type app struct {
	configPath string
	inputPath  string
	verbose    bool

	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "posthist",
		Short: "Histograms of regression posterior samples",
		Long: `posthist reads a CSV file of posterior samples and draws histograms
of selected columns onto one figure. Panels go into the cells of a grid
or at explicit fractions of the figure, possibly overlapping.

Run without a subcommand to render the figure.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if a.logger != nil {
				return nil
			}
			logger, err := logging.New(a.verbose)
			if err != nil {
				return err
			}
			a.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "posthist.yaml", "configuration file")
	root.PersistentFlags().StringVarP(&a.inputPath, "input", "i", "", "input CSV file (overrides input_path)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log every panel")

	render := newRenderCmd(a)
	root.RunE = render.RunE
	root.Flags().AddFlagSet(render.Flags())
	root.AddCommand(render, newSummaryCmd(a), newShowCmd(a))
	return root
}

// loadConfig reads .env (if present) and the configuration file and
// applies the command line overrides.
func (a *app) loadConfig() (*config.Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return nil, err
	}
	if a.inputPath != "" {
		cfg.InputPath = a.inputPath
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadTable loads the configured input file.
func (a *app) loadTable(cfg *config.Config) (*posthist.Table, error) {
	opts, err := cfg.LoadOptions()
	if err != nil {
		return nil, err
	}
	table, err := posthist.LoadTable(cfg.InputPath, opts)
	if err != nil {
		return nil, err
	}
	a.logger.Info("loaded table",
		zap.String("path", cfg.InputPath),
		zap.Int("rows", table.N),
		zap.Strings("columns", table.Names()))
	return table, nil
}
