package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/vg"

	"github.com/vdobler/posthist"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	specs, err := cfg.PanelSpecs()
	require.NoError(t, err)
	require.Len(t, specs, 3)
	assert.Equal(t, posthist.GridNext, specs[0].Placement)
	assert.Equal(t, posthist.GridNext, specs[1].Placement)
	assert.Equal(t, posthist.ExplicitExtent, specs[2].Placement)
	assert.True(t, specs[2].Overlay)
	assert.Equal(t, posthist.Extent{Left: 0.8, Bottom: 0, Right: 1, Top: 1}, specs[2].Extent)
	assert.Equal(t, "tau_0", specs[2].Hist.Column)
	assert.Equal(t, 30, specs[2].Hist.Bins)

	w, h, err := cfg.FigureSize()
	require.NoError(t, err)
	assert.Equal(t, 10*vg.Inch, w)
	assert.Equal(t, 4*vg.Inch, h)
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "posthist.yaml")
	cfg := DefaultConfig()
	cfg.InputPath = "draws.csv"
	cfg.Delimiter = ";"
	cfg.DecimalMark = ","
	cfg.Grid = GridConfig{Rows: 2, Cols: 2}
	cfg.Panels[0].Title = "none"
	cfg.Panels[1].Fill = "red"
	cfg.HyperposteriorPath = "hyper.csv"
	require.NoError(t, cfg.Save(path))

	got, err := Load(path)
	require.NoError(t, err)
	if diff := cmp.Diff(cfg, got); diff != "" {
		t.Errorf("Load(Save(cfg)) mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "posthist.yaml")
	yml := `
columns: [a, b]
bin_counts: [5]
density: true
panels:
  - mode: explicit_extent
    left: 0.1
    bottom: 0.2
    right: 0.5
    top: 0.9
    x_label: alpha
`
	require.NoError(t, os.WriteFile(path, []byte(yml), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "posterior_raw.csv", cfg.InputPath)
	assert.Equal(t, GridConfig{Rows: 1, Cols: 3}, cfg.Grid)

	specs, err := cfg.PanelSpecs()
	require.NoError(t, err)
	want := []posthist.PanelSpec{
		{
			Placement: posthist.ExplicitExtent,
			Extent:    posthist.Extent{Left: 0.1, Bottom: 0.2, Right: 0.5, Top: 0.9},
			Hist:      posthist.HistogramSpec{Column: "a", Bins: 5, Density: true, XLabel: "alpha"},
		},
		{
			Placement: posthist.GridNext,
			Hist:      posthist.HistogramSpec{Column: "b", Bins: 30, Density: true},
		},
	}
	assert.Equal(t, want, specs)
}

func TestLoadColumnsOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "posthist.yaml")
	yml := "grid: {rows: 2, cols: 2}\ncolumns: [a, b, c, d]\n"
	require.NoError(t, os.WriteFile(path, []byte(yml), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	assert.Empty(t, cfg.BinCounts)
	assert.Empty(t, cfg.Panels)

	specs, err := cfg.PanelSpecs()
	require.NoError(t, err)
	require.Len(t, specs, 4)
	for i, spec := range specs {
		assert.Equal(t, posthist.GridNext, spec.Placement, "panel %d", i)
		assert.False(t, spec.Overlay, "panel %d", i)
		assert.Equal(t, 30, spec.Hist.Bins, "panel %d", i)
	}

	require.NoError(t, os.WriteFile(path, []byte("columns: [dc_0]\n"), 0644))
	cfg, err = Load(path)
	require.NoError(t, err)
	assert.NoError(t, cfg.Validate())
}

func TestLoadKeepsDefaultsWithoutColumns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "posthist.yaml")
	require.NoError(t, os.WriteFile(path, []byte("input_path: draws.csv\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	want := DefaultConfig()
	want.InputPath = "draws.csv"
	assert.Equal(t, want, cfg)
}

func TestLoadBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "posthist.yaml")
	require.NoError(t, os.WriteFile(path, []byte("grid: [1, 2\n"), 0644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("POSTHIST_INPUT", "in.csv")
	t.Setenv("POSTHIST_OUTPUT", "out.png")
	t.Setenv("POSTHIST_SUMMARY", "sum.csv")
	t.Setenv("POSTHIST_HYPERPOSTERIOR", "hyp.csv")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "in.csv", cfg.InputPath)
	assert.Equal(t, "out.png", cfg.OutputPath)
	assert.Equal(t, "sum.csv", cfg.SummaryPath)
	assert.Equal(t, "hyp.csv", cfg.HyperposteriorPath)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		modify   func(*Config)
		geometry bool
	}{
		{"no input", func(c *Config) { c.InputPath = "" }, false},
		{"long delimiter", func(c *Config) { c.Delimiter = ";;" }, false},
		{"empty decimal mark", func(c *Config) { c.DecimalMark = "" }, false},
		{"zero rows", func(c *Config) { c.Grid.Rows = 0 }, true},
		{"negative cols", func(c *Config) { c.Grid.Cols = -2 }, true},
		{"bad width", func(c *Config) { c.Width = "wide" }, false},
		{"no columns", func(c *Config) { c.Columns = nil; c.BinCounts = nil; c.Panels = nil }, false},
		{"too many bin counts", func(c *Config) { c.BinCounts = append(c.BinCounts, 10) }, false},
		{"negative bins", func(c *Config) { c.BinCounts[1] = -1 }, false},
		{"too many panels", func(c *Config) { c.Panels = append(c.Panels, PanelConfig{}) }, false},
		{"unknown mode", func(c *Config) { c.Panels[0].Mode = "somewhere" }, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.modify(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Equal(t, tc.geometry, posthist.ErrorKind(err) == "GeometryError", "error %v", err)
		})
	}
}

func TestLoadOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Delimiter = "\t"
	cfg.DecimalMark = ","
	cfg.Missing = "-"
	cfg.NoHeader = true
	opts, err := cfg.LoadOptions()
	require.NoError(t, err)
	assert.Equal(t, posthist.LoadOptions{
		Delimiter:     '\t',
		DecimalMark:   ',',
		MissingMarker: "-",
		HasHeader:     false,
	}, opts)
}
