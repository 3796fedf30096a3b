package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vdobler/posthist"
	"github.com/vdobler/posthist/internal/config"
	"github.com/vdobler/posthist/stat"
)

func newSummaryCmd(a *app) *cobra.Command {
	var output, detailed string
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Write percentiles and mean of the configured columns as CSV",
		Long: `summary writes one row per statistic (prc_0.05 ... prc_0.95, mean)
and one column per configured parameter. Use --output - for stdout.

With --detailed (or hyperposterior_path in the configuration) the
percentiles 0.01 ... 0.98 are written to a second file, one row per
percentile.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			if output != "" {
				cfg.SummaryPath = output
			}
			if detailed != "" {
				cfg.HyperposteriorPath = detailed
			}
			table, err := a.loadTable(cfg)
			if err != nil {
				return err
			}

			summaries, err := a.summarize(table, cfg, nil)
			if err != nil {
				return err
			}
			err = a.writeCSV(cmd, cfg.SummaryPath, func(w io.Writer) error {
				return writeSummary(w, cfg.Columns, summaries)
			})
			if err != nil {
				return err
			}

			if cfg.HyperposteriorPath == "" {
				return nil
			}
			detail, err := a.summarize(table, cfg, stat.DetailedProbs())
			if err != nil {
				return err
			}
			return a.writeCSV(cmd, cfg.HyperposteriorPath, func(w io.Writer) error {
				return writeHyperposterior(w, cfg.Columns, detail)
			})
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output CSV file (overrides summary_path)")
	cmd.Flags().StringVar(&detailed, "detailed", "", "detailed percentile CSV file (overrides hyperposterior_path)")
	return cmd
}

// summarize computes the statistics at probs of every configured column.
func (a *app) summarize(table *posthist.Table, cfg *config.Config, probs []float64) ([]stat.Summary, error) {
	summaries := make([]stat.Summary, len(cfg.Columns))
	for i, name := range cfg.Columns {
		col, err := table.Column(name)
		if err != nil {
			return nil, err
		}
		values, err := col.Floats()
		if err != nil {
			return nil, err
		}
		summaries[i], err = stat.Summarize(values, probs)
		if errors.Is(err, stat.ErrNoData) {
			return nil, fmt.Errorf("%w: column %q has no non-null values", posthist.ErrEmptyData, name)
		}
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", name, err)
		}
		a.logger.Debug("summarized column",
			zap.String("column", name),
			zap.Int("values", col.NonNull()),
			zap.Int("nulls", col.Len()-col.NonNull()),
			zap.Int("probs", len(summaries[i].Probs)))
	}
	return summaries, nil
}

// writeCSV creates path and fills it with write. The path "-" means
// the command's output.
func (a *app) writeCSV(cmd *cobra.Command, path string, write func(io.Writer) error) error {
	if path == "-" {
		return write(cmd.OutOrStdout())
	}
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(out); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	a.logger.Info("saved summary", zap.String("path", path))
	return nil
}

func formatFloat(x float64) string { return strconv.FormatFloat(x, 'g', -1, 64) }

func writeSummary(w io.Writer, columns []string, summaries []stat.Summary) error {
	cw := csv.NewWriter(w)

	header := append([]string{""}, columns...)
	if err := cw.Write(header); err != nil {
		return err
	}
	for j, p := range stat.DefaultProbs {
		row := []string{fmt.Sprintf("prc_%.2f", p)}
		for _, s := range summaries {
			row = append(row, formatFloat(s.Quantiles[j]))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	row := []string{"mean"}
	for _, s := range summaries {
		row = append(row, formatFloat(s.Mean))
	}
	if err := cw.Write(row); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

// writeHyperposterior writes one row per percentile, indexed by "prc".
func writeHyperposterior(w io.Writer, columns []string, summaries []stat.Summary) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(append([]string{"prc"}, columns...)); err != nil {
		return err
	}
	if len(summaries) > 0 {
		for j, p := range summaries[0].Probs {
			row := []string{formatFloat(p)}
			for _, s := range summaries {
				row = append(row, formatFloat(s.Quantiles[j]))
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}
