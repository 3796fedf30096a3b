package posthist

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/vdobler/posthist/stat"
)

// None suppresses a title or axis label when used as its text.
const None = "none"

// Placement selects how a panel finds its region on the figure.
type Placement int

const (
	// GridNext places the panel into the next free grid cell.
	GridNext Placement = iota

	// ExplicitExtent places the panel at the Extent of its PanelSpec.
	ExplicitExtent
)

func (p Placement) String() string {
	switch p {
	case GridNext:
		return "grid_next"
	case ExplicitExtent:
		return "explicit_extent"
	}
	return fmt.Sprintf("Placement(%d)", int(p))
}

// ParsePlacement is the inverse of Placement.String. The empty string
// means GridNext.
func ParsePlacement(s string) (Placement, error) {
	switch s {
	case "", "grid_next":
		return GridNext, nil
	case "explicit_extent":
		return ExplicitExtent, nil
	}
	return 0, fmt.Errorf("unknown panel placement %q", s)
}

// HistogramSpec describes the histogram drawn in one panel.
type HistogramSpec struct {
	// Column is the name of the table column to plot.
	Column string

	// Bins is the number of bins. Zero means stat.DefaultNumBins.
	Bins int

	// Density normalizes the bars to a total area of 1.
	Density bool

	// Title, XLabel and YLabel default to the column name, the column
	// name and "count" or "density". None suppresses them.
	Title, XLabel, YLabel string

	// Fill overrides the fill colour of the theme.
	Fill string
}

func (hs HistogramSpec) labels() (title, x, y string) {
	dflt := func(s, d string) string {
		switch s {
		case "":
			return d
		case None:
			return ""
		}
		return s
	}
	yDefault := "count"
	if hs.Density {
		yDefault = "density"
	}
	return dflt(hs.Title, hs.Column), dflt(hs.XLabel, hs.Column), dflt(hs.YLabel, yDefault)
}

// PanelSpec pairs a placement with the histogram to draw.
type PanelSpec struct {
	Placement Placement

	// Extent and Overlay are used for ExplicitExtent placement only.
	// An overlay panel is drawn on top of the existing content; other
	// panels clear their own rectangle first.
	Extent  Extent
	Overlay bool

	Hist HistogramSpec
}

// FigureState is the lifecycle state of a Figure.
type FigureState int

const (
	Empty FigureState = iota
	HasPanels
)

func (s FigureState) String() string {
	if s == HasPanels {
		return "HAS_PANELS"
	}
	return "EMPTY"
}

// Panel is one drawn histogram.
type Panel struct {
	// Page is the page of the figure the panel is on, starting at 0.
	Page int

	// Cell is the grid cell used or -1 for explicit extents.
	Cell int

	Extent  Extent
	Overlay bool
	Spec    HistogramSpec
	Hist    stat.Histogram

	// Plot is the composed panel, ready to be drawn.
	Plot *plot.Plot
}

// FigureOptions configure a new Figure.
type FigureOptions struct {
	Width, Height vg.Length

	Theme Theme

	// Logger receives a debug record per panel. Nil disables logging.
	Logger *zap.Logger
}

// DefaultFigureOptions returns a 10in x 4in figure with the default theme.
func DefaultFigureOptions() FigureOptions {
	return FigureOptions{
		Width:  10 * vg.Inch,
		Height: 4 * vg.Inch,
		Theme:  DefaultTheme,
	}
}

// Figure is a drawing surface split into a logical grid of Rows x Cols
// cells. Panels are added by Draw and rendered to images on demand.
//
// A Figure is not safe for concurrent use.
type Figure struct {
	Rows, Cols    int
	Width, Height vg.Length

	// Panels are the drawn panels in drawing order.
	Panels []*Panel

	theme Theme
	log   *zap.Logger
	next  int // number of grid cells used so far
	page  int // page of the most recent panel
}

// NewFigure creates an empty figure with a rows x cols grid.
func NewFigure(rows, cols int, opts FigureOptions) (*Figure, error) {
	if rows < 1 || cols < 1 {
		return nil, fmt.Errorf("%w: grid shape %dx%d, need at least 1x1", ErrGeometry, rows, cols)
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("%w: figure size %v x %v", ErrGeometry, opts.Width, opts.Height)
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Figure{
		Rows:   rows,
		Cols:   cols,
		Width:  opts.Width,
		Height: opts.Height,
		theme:  opts.Theme,
		log:    log,
	}, nil
}

// State reports whether any panel has been drawn.
func (f *Figure) State() FigureState {
	if len(f.Panels) == 0 {
		return Empty
	}
	return HasPanels
}

// Pages returns the number of pages of f. An empty figure has one page.
func (f *Figure) Pages() int {
	pages := 1
	for _, p := range f.Panels {
		if p.Page+1 > pages {
			pages = p.Page + 1
		}
	}
	return pages
}

func (f *Figure) warnf(format string, args ...interface{}) {
	f.log.Warn(fmt.Sprintf(format, args...))
}

// Draw adds a histogram panel of t to f. A failing Draw leaves f unchanged.
//
// Errors: ErrGeometry for an invalid extent, ErrColumnNotFound for an
// unknown column, ErrEmptyData if the column has no non-null values and
// ErrFormat if it holds strings.
func (f *Figure) Draw(t *Table, spec PanelSpec) error {
	panel := &Panel{
		Spec:    spec.Hist,
		Overlay: spec.Overlay,
		Cell:    -1,
	}

	// Select the region.
	switch spec.Placement {
	case GridNext:
		cells := f.Rows * f.Cols
		panel.Page = f.next / cells
		panel.Cell = f.next % cells
		panel.Extent = cellExtent(panel.Cell, f.Rows, f.Cols)
		panel.Overlay = false
	case ExplicitExtent:
		if err := spec.Extent.Validate(); err != nil {
			return fmt.Errorf("panel %d (%s): %w", len(f.Panels)+1, spec.Hist.Column, err)
		}
		panel.Page = f.page
		panel.Extent = spec.Extent
	default:
		return fmt.Errorf("panel %d: unknown placement %s", len(f.Panels)+1, spec.Placement)
	}

	if spec.Hist.Bins < 0 {
		return fmt.Errorf("panel %d (%s): invalid bin count %d", len(f.Panels)+1, spec.Hist.Column, spec.Hist.Bins)
	}

	// Extract and bin the values.
	col, err := t.Column(spec.Hist.Column)
	if err != nil {
		return err
	}
	values, err := col.Floats()
	if err != nil {
		return err
	}
	hist, err := stat.Bin(values, &stat.BinOptions{NumBins: spec.Hist.Bins})
	if errors.Is(err, stat.ErrNoData) {
		return fmt.Errorf("%w: column %q has no non-null values", ErrEmptyData, col.Name)
	}
	if err != nil {
		return fmt.Errorf("%w: column %q: %v", ErrFormat, col.Name, err)
	}
	panel.Hist = hist

	// Compose the plot.
	p := plot.New()
	title, xlabel, ylabel := spec.Hist.labels()
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Y.Label.Text = ylabel
	if panel.Overlay {
		p.BackgroundColor = nil
	}
	bar := f.theme.bar(spec.Hist.Density, AesMapping{"fill": spec.Hist.Fill})
	p.Add(bar.Plotter(hist))
	panel.Plot = p

	for _, other := range f.Panels {
		if other.Page == panel.Page && other.Extent.Overlaps(panel.Extent) && !panel.Overlay {
			f.warnf("Panel %d (%s) at %s hides part of panel %q at %s",
				len(f.Panels)+1, spec.Hist.Column, panel.Extent, other.Spec.Column, other.Extent)
		}
	}

	// Commit.
	if spec.Placement == GridNext {
		f.next++
	}
	f.page = panel.Page
	f.Panels = append(f.Panels, panel)
	if ce := f.log.Check(zap.DebugLevel, "drew panel"); ce != nil {
		ce.Write(
			zap.Int("panel", len(f.Panels)),
			zap.String("column", col.Name),
			zap.Stringer("placement", spec.Placement),
			zap.Stringer("extent", panel.Extent),
			zap.Bool("overlay", panel.Overlay),
			zap.Int("page", panel.Page),
			zap.Int64("values", hist.N),
			zap.Array("bins", binsField(hist.Binned())),
		)
	}
	return nil
}

// binsField logs one object per bin.
type binsField []stat.BinnedData

func (bs binsField) MarshalLogArray(enc zapcore.ArrayEncoder) error {
	for _, b := range bs {
		err := enc.AppendObject(zapcore.ObjectMarshalerFunc(func(oe zapcore.ObjectEncoder) error {
			oe.AddFloat64("lo", b.Lo)
			oe.AddFloat64("hi", b.Hi)
			oe.AddInt64("count", b.Count)
			oe.AddFloat64("density", b.Density)
			return nil
		}))
		if err != nil {
			return err
		}
	}
	return nil
}

// Render draws all panels in order onto one image per page.
func (f *Figure) Render() []*vgimg.Canvas {
	pages := make([]*vgimg.Canvas, f.Pages())
	for i := range pages {
		pages[i] = vgimg.New(f.Width, f.Height)
	}
	for _, p := range f.Panels {
		dc := draw.New(pages[p.Page])
		p.Plot.Draw(p.Extent.crop(dc))
	}
	return pages
}

// WriteTo renders f and writes the first page as PNG to w.
func (f *Figure) WriteTo(w io.Writer) (int64, error) {
	return vgimg.PngCanvas{Canvas: f.Render()[0]}.WriteTo(w)
}

// Save renders f and writes each page as PNG. The first page goes to
// path, page n > 1 to path with "-n" inserted before the extension.
// Save returns the names of the written files.
func (f *Figure) Save(path string) ([]string, error) {
	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)
	var files []string
	for i, c := range f.Render() {
		name := path
		if i > 0 {
			name = fmt.Sprintf("%s-%d%s", base, i+1, ext)
		}
		if err := savePNG(c, name); err != nil {
			return files, err
		}
		files = append(files, name)
	}
	return files, nil
}

func savePNG(c *vgimg.Canvas, name string) error {
	out, err := os.Create(name)
	if err != nil {
		return err
	}
	if _, err := (vgimg.PngCanvas{Canvas: c}).WriteTo(out); err != nil {
		out.Close()
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return out.Close()
}

// RenderPanels creates a rows x cols figure and draws the panels in the
// given order. The first failing panel aborts the remaining ones.
func RenderPanels(t *Table, rows, cols int, specs []PanelSpec, opts FigureOptions) (*Figure, error) {
	fig, err := NewFigure(rows, cols, opts)
	if err != nil {
		return nil, err
	}
	for _, spec := range specs {
		if err := fig.Draw(t, spec); err != nil {
			return nil, err
		}
	}
	return fig, nil
}
