// Package config holds the configuration of the posthist command.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"gonum.org/v1/plot/vg"
	"gopkg.in/yaml.v3"

	"github.com/vdobler/posthist"
	"github.com/vdobler/posthist/stat"
)

// Config describes one posthist run: what to read, which columns to
// plot and where each panel goes.
type Config struct {
	InputPath   string `yaml:"input_path"`
	OutputPath  string `yaml:"output_path"`
	SummaryPath string `yaml:"summary_path"`

	// HyperposteriorPath receives the detailed percentile table of the
	// summary command. Empty skips it.
	HyperposteriorPath string `yaml:"hyperposterior_path,omitempty"`

	// Input layout
	Delimiter   string `yaml:"delimiter"`
	DecimalMark string `yaml:"decimal_mark"`
	Missing     string `yaml:"missing"`
	NoHeader    bool   `yaml:"no_header,omitempty"`

	// Figure
	Grid   GridConfig `yaml:"grid"`
	Width  string     `yaml:"width"`  // vg length like "10in" or "25cm"
	Height string     `yaml:"height"` // vg length

	// Histograms. Columns[i], BinCounts[i] and Panels[i] describe
	// panel i. Missing bin counts use the default, missing panels
	// are placed into the next grid cell.
	Columns   []string      `yaml:"columns"`
	BinCounts []int         `yaml:"bin_counts"`
	Density   bool          `yaml:"density"`
	Panels    []PanelConfig `yaml:"panels"`
}

// GridConfig is the logical grid shape.
type GridConfig struct {
	Rows int `yaml:"rows"`
	Cols int `yaml:"cols"`
}

// PanelConfig places one panel and optionally labels it.
type PanelConfig struct {
	Mode    string  `yaml:"mode"` // grid_next or explicit_extent
	Left    float64 `yaml:"left,omitempty"`
	Bottom  float64 `yaml:"bottom,omitempty"`
	Right   float64 `yaml:"right,omitempty"`
	Top     float64 `yaml:"top,omitempty"`
	Overlay bool    `yaml:"overlay,omitempty"`

	Title  string `yaml:"title,omitempty"`
	XLabel string `yaml:"x_label,omitempty"`
	YLabel string `yaml:"y_label,omitempty"`
	Fill   string `yaml:"fill,omitempty"`
}

// DefaultConfig returns the configuration of the classic three panel
// hyper-parameter figure.
func DefaultConfig() *Config {
	return &Config{
		InputPath:   "posterior_raw.csv",
		OutputPath:  "posterior_hist.png",
		SummaryPath: "posterior_summary.csv",
		Delimiter:   ",",
		DecimalMark: ".",
		Missing:     "NA",
		Grid:        GridConfig{Rows: 1, Cols: 3},
		Width:       "10in",
		Height:      "4in",
		Columns:     []string{"dc_0", "phi_0", "tau_0"},
		BinCounts:   []int{30, 30, 30},
		Panels: []PanelConfig{
			{Mode: "grid_next"},
			{Mode: "grid_next"},
			{Mode: "explicit_extent", Left: 0.8, Right: 1.0, Bottom: 0.0, Top: 1.0, Overlay: true},
		},
	}
}

// Load loads configuration from a YAML file. Fields not set in the file
// keep their defaults; a missing file yields the defaults. A file that
// sets columns starts from empty bin counts and panels, so unlisted
// panels get the default bin count and grid_next placement.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var keys map[string]interface{}
	if err := yaml.Unmarshal(data, &keys); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if _, ok := keys["columns"]; ok {
		// Default bin counts and panels belong to the default columns.
		cfg.BinCounts = nil
		cfg.Panels = nil
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides replaces paths by POSTHIST_INPUT, POSTHIST_OUTPUT,
// POSTHIST_SUMMARY and POSTHIST_HYPERPOSTERIOR if set.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("POSTHIST_INPUT"); v != "" {
		c.InputPath = v
	}
	if v := os.Getenv("POSTHIST_OUTPUT"); v != "" {
		c.OutputPath = v
	}
	if v := os.Getenv("POSTHIST_SUMMARY"); v != "" {
		c.SummaryPath = v
	}
	if v := os.Getenv("POSTHIST_HYPERPOSTERIOR"); v != "" {
		c.HyperposteriorPath = v
	}
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if c.InputPath == "" {
		return fmt.Errorf("input_path is empty")
	}
	if _, err := c.LoadOptions(); err != nil {
		return err
	}
	if c.Grid.Rows < 1 || c.Grid.Cols < 1 {
		return fmt.Errorf("%w: grid %dx%d, need at least 1x1",
			posthist.ErrGeometry, c.Grid.Rows, c.Grid.Cols)
	}
	if _, _, err := c.FigureSize(); err != nil {
		return err
	}
	if len(c.Columns) == 0 {
		return fmt.Errorf("no columns to plot")
	}
	if len(c.BinCounts) > len(c.Columns) {
		return fmt.Errorf("%d bin counts for %d columns", len(c.BinCounts), len(c.Columns))
	}
	for i, n := range c.BinCounts {
		if n < 0 {
			return fmt.Errorf("bin_counts[%d] = %d is negative", i, n)
		}
	}
	if len(c.Panels) > len(c.Columns) {
		return fmt.Errorf("%d panels for %d columns", len(c.Panels), len(c.Columns))
	}
	_, err := c.PanelSpecs()
	return err
}

// LoadOptions returns the input layout.
func (c *Config) LoadOptions() (posthist.LoadOptions, error) {
	opts := posthist.LoadOptions{
		MissingMarker: c.Missing,
		HasHeader:     !c.NoHeader,
	}
	var err error
	if opts.Delimiter, err = singleRune("delimiter", c.Delimiter); err != nil {
		return opts, err
	}
	if opts.DecimalMark, err = singleRune("decimal_mark", c.DecimalMark); err != nil {
		return opts, err
	}
	return opts, nil
}

func singleRune(name, s string) (rune, error) {
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("%s must be a single character, got %q", name, s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}

// FigureSize parses Width and Height.
func (c *Config) FigureSize() (w, h vg.Length, err error) {
	if w, err = vg.ParseLength(c.Width); err != nil {
		return 0, 0, fmt.Errorf("width: %w", err)
	}
	if h, err = vg.ParseLength(c.Height); err != nil {
		return 0, 0, fmt.Errorf("height: %w", err)
	}
	return w, h, nil
}

// PanelSpecs pairs the configured columns with their bin counts and
// panel placements. Extents are checked when the panel is drawn.
func (c *Config) PanelSpecs() ([]posthist.PanelSpec, error) {
	specs := make([]posthist.PanelSpec, len(c.Columns))
	for i, column := range c.Columns {
		spec := posthist.PanelSpec{
			Hist: posthist.HistogramSpec{
				Column:  column,
				Bins:    stat.DefaultNumBins,
				Density: c.Density,
			},
		}
		if i < len(c.BinCounts) && c.BinCounts[i] > 0 {
			spec.Hist.Bins = c.BinCounts[i]
		}
		if i < len(c.Panels) {
			pc := c.Panels[i]
			placement, err := posthist.ParsePlacement(pc.Mode)
			if err != nil {
				return nil, fmt.Errorf("panels[%d]: %w", i, err)
			}
			spec.Placement = placement
			spec.Extent = posthist.Extent{Left: pc.Left, Bottom: pc.Bottom, Right: pc.Right, Top: pc.Top}
			spec.Overlay = pc.Overlay
			spec.Hist.Title = pc.Title
			spec.Hist.XLabel = pc.XLabel
			spec.Hist.YLabel = pc.YLabel
			spec.Hist.Fill = pc.Fill
		}
		specs[i] = spec
	}
	return specs, nil
}
