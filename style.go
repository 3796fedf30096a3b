package posthist

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gonum.org/v1/plot/vg"
)

// String2Float parses s as a float, optionally given in percent like
// "40%", and clamps it to [low, high]. Unparsable input yields 0.5.
func String2Float(s string, low, high float64) float64 {
	factor := 1.0
	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, "%") {
		s = s[:len(s)-1]
		factor = 100
	}
	value, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0.5
	}
	value /= factor

	if value < low {
		return low
	} else if value > high {
		return high
	}
	return value
}

// Set alpha to a in color c. TODO: handle case if c has alpha.
func SetAlpha(c color.Color, a float64) color.Color {
	r, g, b, _ := c.RGBA()
	r >>= 8
	g >>= 8
	b >>= 8
	a *= float64(0xff)
	return color.NRGBA{uint8(r), uint8(g), uint8(b), uint8(a)}
}

// -------------------------------------------------------------------------
// Lines

type LineType int

const (
	BlankLine LineType = iota
	SolidLine
	DashedLine
	DottedLine
	DotDashLine
	LongdashLine
	TwodashLine
)

func String2LineType(s string) LineType {
	n, err := strconv.Atoi(s)
	if err == nil {
		return LineType(n % (int(TwodashLine) + 1))
	}
	switch s {
	case "blank":
		return BlankLine
	case "solid":
		return SolidLine
	case "dashed":
		return DashedLine
	case "dotted":
		return DottedLine
	case "dotdash":
		return DotDashLine
	case "longdash":
		return LongdashLine
	case "twodash":
		return TwodashLine
	default:
		return BlankLine
	}
}

// Dashes returns the dash pattern drawing lt.
func (lt LineType) Dashes() []vg.Length {
	p := vg.Points
	switch lt {
	case DashedLine:
		return []vg.Length{p(4), p(2)}
	case DottedLine:
		return []vg.Length{p(1), p(2)}
	case DotDashLine:
		return []vg.Length{p(1), p(2), p(4), p(2)}
	case LongdashLine:
		return []vg.Length{p(8), p(2)}
	case TwodashLine:
		return []vg.Length{p(6), p(2), p(3), p(2)}
	}
	return nil
}

// -------------------------------------------------------------------------
// Colors

var BuiltinColors = map[string]color.RGBA{
	"red":       {0xff, 0x00, 0x00, 0xff},
	"green":     {0x00, 0xff, 0x00, 0xff},
	"blue":      {0x00, 0x00, 0xff, 0xff},
	"cyan":      {0x00, 0xff, 0xff, 0xff},
	"magenta":   {0xff, 0x00, 0xff, 0xff},
	"yellow":    {0xff, 0xff, 0x00, 0xff},
	"white":     {0xff, 0xff, 0xff, 0xff},
	"gray20":    {0x33, 0x33, 0x33, 0xff},
	"gray40":    {0x66, 0x66, 0x66, 0xff},
	"gray50":    {0x7f, 0x7f, 0x7f, 0xff},
	"gray":      {0x7f, 0x7f, 0x7f, 0xff},
	"gray60":    {0x99, 0x99, 0x99, 0xff},
	"gray80":    {0xcc, 0xcc, 0xcc, 0xff},
	"black":     {0x00, 0x00, 0x00, 0xff},
	"steelblue": {0x46, 0x82, 0xb4, 0xff},
}

// String2Color parses "#rrggbb", "#rrggbbaa" or one of the BuiltinColors.
// Anything else yields a conspicuous translucent pink.
func String2Color(s string) color.Color {
	if strings.HasPrefix(s, "#") && len(s) >= 7 {
		var r, g, b, a uint8
		fmt.Sscanf(s[1:3], "%2x", &r)
		fmt.Sscanf(s[3:5], "%2x", &g)
		fmt.Sscanf(s[5:7], "%2x", &b)
		a = 0xff
		if len(s) >= 9 {
			fmt.Sscanf(s[7:9], "%2x", &a)
		}
		return color.NRGBA{r, g, b, a}
	}
	if col, ok := BuiltinColors[s]; ok {
		return col
	}

	return color.NRGBA{0xaa, 0x66, 0x77, 0x7f}
}
