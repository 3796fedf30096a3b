package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vdobler/posthist"
)

func newRenderCmd(a *app) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Draw the configured histograms and save them as PNG",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			if output != "" {
				cfg.OutputPath = output
			}
			table, err := a.loadTable(cfg)
			if err != nil {
				return err
			}
			specs, err := cfg.PanelSpecs()
			if err != nil {
				return err
			}
			w, h, err := cfg.FigureSize()
			if err != nil {
				return err
			}

			opts := posthist.DefaultFigureOptions()
			opts.Width, opts.Height = w, h
			opts.Logger = a.logger
			fig, err := posthist.RenderPanels(table, cfg.Grid.Rows, cfg.Grid.Cols, specs, opts)
			if err != nil {
				return err
			}
			files, err := fig.Save(cfg.OutputPath)
			if err != nil {
				return err
			}
			a.logger.Info("saved figure",
				zap.Strings("files", files),
				zap.Int("panels", len(fig.Panels)))
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output PNG file (overrides output_path)")
	return cmd
}
