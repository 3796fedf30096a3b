package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vdobler/posthist"
)

const draws = `dc_0,phi_0,tau_0,lp__
1.0,0.5,2.0,-10
2.0,NA,2.5,-11
3.0,0.7,NA,-9
4.0,0.9,3.5,-12
`

// setup writes draws and a configuration into a fresh directory and
// returns the path of the configuration.
func setup(t *testing.T, extra string) string {
	t.Helper()
	dir := t.TempDir()
	input := filepath.Join(dir, "posterior_raw.csv")
	require.NoError(t, os.WriteFile(input, []byte(draws), 0644))

	cfg := fmt.Sprintf(`input_path: %s
output_path: %s
summary_path: %s
grid: {rows: 1, cols: 3}
width: 6in
height: 2in
columns: [dc_0, phi_0, tau_0]
bin_counts: [4, 3]
%s`, input, filepath.Join(dir, "hist.png"), filepath.Join(dir, "summary.csv"), extra)
	path := filepath.Join(dir, "posthist.yaml")
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0644))
	return path
}

func run(args ...string) (string, error) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRender(t *testing.T) {
	cfgPath := setup(t, `panels:
  - mode: grid_next
  - mode: grid_next
  - {mode: explicit_extent, left: 0.8, right: 1, bottom: 0, top: 1, overlay: true}
`)
	dir := filepath.Dir(cfgPath)

	for _, args := range [][]string{
		{"--config", cfgPath},
		{"render", "--config", cfgPath, "--output", filepath.Join(dir, "other.png")},
	} {
		_, err := run(args...)
		require.NoError(t, err, "args %v", args)
	}
	for _, name := range []string{"hist.png", "other.png"} {
		data, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG")), name)
	}
}

func TestRenderInputFlag(t *testing.T) {
	cfgPath := setup(t, "")
	dir := filepath.Dir(cfgPath)
	_, err := run("--config", cfgPath, "--input", filepath.Join(dir, "posterior_raw.csv"))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "hist.png"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "hist-2.png"))
	assert.True(t, os.IsNotExist(err), "all panels fit the first page")
}

// parseRows splits CSV output into its header and the float cells of
// each row, keyed by the row label.
func parseRows(t *testing.T, out string) (string, map[string][]float64) {
	t.Helper()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	rows := make(map[string][]float64)
	for _, line := range lines[1:] {
		cells := strings.Split(line, ",")
		for _, cell := range cells[1:] {
			x, err := strconv.ParseFloat(cell, 64)
			require.NoError(t, err, line)
			rows[cells[0]] = append(rows[cells[0]], x)
		}
	}
	return lines[0], rows
}

func TestSummary(t *testing.T) {
	cfgPath := setup(t, "")
	out, err := run("summary", "--config", cfgPath, "--output", "-")
	require.NoError(t, err)

	header, rows := parseRows(t, out)
	assert.Equal(t, ",dc_0,phi_0,tau_0", header)
	require.Len(t, rows, 6)

	// Linear interpolation between order statistics.
	want := map[string][]float64{
		"prc_0.05": {1.15, 0.52, 2.05},
		"prc_0.25": {1.75, 0.6, 2.25},
		"prc_0.50": {2.5, 0.7, 2.5},
		"prc_0.75": {3.25, 0.8, 3.0},
		"prc_0.95": {3.85, 0.88, 3.4},
		"mean":     {2.5, 0.7, 8.0 / 3},
	}
	for label, values := range want {
		assert.InDeltaSlice(t, values, rows[label], 1e-9, label)
	}
}

func TestSummaryDetailed(t *testing.T) {
	cfgPath := setup(t, "")
	detailed := filepath.Join(filepath.Dir(cfgPath), "hyperposterior.csv")
	_, err := run("summary", "--config", cfgPath, "--detailed", detailed)
	require.NoError(t, err)

	data, err := os.ReadFile(detailed)
	require.NoError(t, err)
	header, rows := parseRows(t, string(data))
	assert.Equal(t, "prc,dc_0,phi_0,tau_0", header)
	require.Len(t, rows, 98)
	assert.InDeltaSlice(t, []float64{1.03, 0.504, 2.01}, rows["0.01"], 1e-9)
	assert.InDeltaSlice(t, []float64{2.5, 0.7, 2.5}, rows["0.5"], 1e-9)
	assert.InDeltaSlice(t, []float64{3.94, 0.892, 3.46}, rows["0.98"], 1e-9)
	assert.NotContains(t, rows, "0.99")

	_, err = os.Stat(filepath.Join(filepath.Dir(cfgPath), "summary.csv"))
	assert.NoError(t, err, "the regular summary is written as well")
}

func TestSummaryFile(t *testing.T) {
	cfgPath := setup(t, "")
	_, err := run("summary", "--config", cfgPath)
	require.NoError(t, err)
	data, err := os.ReadFile(filepath.Join(filepath.Dir(cfgPath), "summary.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "prc_0.95,")
}

func TestShow(t *testing.T) {
	cfgPath := setup(t, "")
	out, err := run("show", "--config", cfgPath)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, `Table "posterior_raw.csv", 4 rows`, lines[0])
	assert.Equal(t, []string{"row", "dc_0", "phi_0", "tau_0", "lp__"}, strings.Fields(lines[1]))
	assert.Equal(t, "NA", strings.Fields(lines[3])[2])
}

func TestErrors(t *testing.T) {
	tests := []struct {
		name  string
		extra string
		args  func(cfgPath string) []string
		kind  string
	}{
		{
			name: "missing input",
			args: func(cfgPath string) []string {
				return []string{"--config", cfgPath, "--input", filepath.Join(filepath.Dir(cfgPath), "nope.csv")}
			},
			kind: "PathError",
		},
		{
			name:  "bad extent",
			extra: "panels: [{mode: explicit_extent, left: 0.5, right: 0.2, top: 1}]\n",
			args:  func(cfgPath string) []string { return []string{"--config", cfgPath} },
			kind:  "GeometryError",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfgPath := setup(t, tc.extra)
			_, err := run(tc.args(cfgPath)...)
			require.Error(t, err)
			assert.Equal(t, tc.kind, posthist.ErrorKind(err), "error %v", err)
		})
	}
}

func TestUnknownColumn(t *testing.T) {
	cfgPath := setup(t, "")
	cfg, err := os.ReadFile(cfgPath)
	require.NoError(t, err)
	cfg = bytes.Replace(cfg, []byte("tau_0]"), []byte("sigma]"), 1)
	require.NoError(t, os.WriteFile(cfgPath, cfg, 0644))

	for _, args := range [][]string{
		{"--config", cfgPath},
		{"summary", "--config", cfgPath, "--output", "-"},
	} {
		_, err := run(args...)
		require.Error(t, err)
		assert.Equal(t, "ColumnNotFoundError", posthist.ErrorKind(err), "args %v", args)
	}
}
