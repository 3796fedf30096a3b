package posthist

import (
	"fmt"

	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Extent is a rectangle in normalized figure coordinates: (0,0) is the
// lower left and (1,1) the upper right corner of the figure.
type Extent struct {
	Left, Bottom, Right, Top float64
}

// FullExtent covers the whole figure.
var FullExtent = Extent{Left: 0, Bottom: 0, Right: 1, Top: 1}

func (e Extent) String() string {
	return fmt.Sprintf("[%g,%g]x[%g,%g]", e.Left, e.Right, e.Bottom, e.Top)
}

// Validate checks 0 <= Left < Right <= 1 and 0 <= Bottom < Top <= 1.
func (e Extent) Validate() error {
	in := func(x float64) bool { return x >= 0 && x <= 1 }
	if !in(e.Left) || !in(e.Right) || !in(e.Bottom) || !in(e.Top) {
		return fmt.Errorf("%w: extent %s outside the unit square", ErrGeometry, e)
	}
	if e.Left >= e.Right {
		return fmt.Errorf("%w: extent %s has left >= right", ErrGeometry, e)
	}
	if e.Bottom >= e.Top {
		return fmt.Errorf("%w: extent %s has bottom >= top", ErrGeometry, e)
	}
	return nil
}

// Overlaps reports whether e and o share a region of positive area.
func (e Extent) Overlaps(o Extent) bool {
	return e.Left < o.Right && o.Left < e.Right &&
		e.Bottom < o.Top && o.Bottom < e.Top
}

// cellExtent returns the extent of grid cell n (row-major, first row on
// top) of a rows x cols grid.
func cellExtent(n, rows, cols int) Extent {
	r, c := n/cols, n%cols
	return Extent{
		Left:   float64(c) / float64(cols),
		Right:  float64(c+1) / float64(cols),
		Bottom: 1 - float64(r+1)/float64(rows),
		Top:    1 - float64(r)/float64(rows),
	}
}

// crop returns the part of c covered by e.
func (e Extent) crop(c draw.Canvas) draw.Canvas {
	size := c.Rectangle.Size()
	x := func(f float64) vg.Length { return c.Rectangle.Min.X + vg.Length(f)*size.X }
	y := func(f float64) vg.Length { return c.Rectangle.Min.Y + vg.Length(f)*size.Y }
	return draw.Canvas{
		Canvas: c.Canvas,
		Rectangle: vg.Rectangle{
			Min: vg.Point{X: x(e.Left), Y: y(e.Bottom)},
			Max: vg.Point{X: x(e.Right), Y: y(e.Top)},
		},
	}
}
