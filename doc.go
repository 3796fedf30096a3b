// Package posthist draws histograms of posterior samples.
//
//
// Tables
//
// Samples are read from delimited text files: the first row names the
// columns, every further row is one draw. LoadTable trims each field,
// turns the missing-value marker (by default "NA") into a null cell and
// parses numbers; everything else is kept as a string:
//     a,b,c
//     1.0,2.0,NA
//     2.0,NA,5.0
// yields column b = [2.0, null, ...].
//
//
// Figures and Panels
//
// A Figure is split into a logical grid of rows x cols cells. Each call
// to Draw adds one histogram panel, placed either into the next grid
// cell (row-major, a new page starts when the grid is full) or at an
// explicit extent given in fractions of the figure:
//     fig.Draw(table, PanelSpec{
//         Placement: ExplicitExtent,
//         Extent:    Extent{Left: 0.8, Bottom: 0, Right: 1, Top: 1},
//         Overlay:   true,
//         Hist:      HistogramSpec{Column: "tau_0", Bins: 20},
//     })
// Extents may overlap earlier panels. Overlay panels are drawn with a
// transparent background.
//
//
// Errors
//
// All errors wrap one of ErrPath, ErrFormat, ErrColumnNotFound,
// ErrEmptyData or ErrGeometry; ErrorKind names them.
package posthist
