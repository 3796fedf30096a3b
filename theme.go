package posthist

import (
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/vdobler/posthist/geom"
)

// AesMapping holds fixed aesthetics like "fill" or "linetype" as
// strings, parsed with the String2... functions.
type AesMapping map[string]string

// MergeStyles merges the set values of all styles. Earlier styles take
// precedence over later ones.
func MergeStyles(styles ...AesMapping) AesMapping {
	merged := make(AesMapping)
	for i := len(styles) - 1; i >= 0; i-- {
		for k, v := range styles[i] {
			if v == "" {
				continue
			}
			merged[k] = v
		}
	}
	return merged
}

type Theme struct {
	BarStyle AesMapping
}

var DefaultTheme = Theme{
	BarStyle: AesMapping{
		"linetype": "solid",
		"size":     "0.5",
		"color":    "gray20",
		"fill":     "steelblue",
		"alpha":    "0.8",
	},
}

// bar builds the bar geom for a panel from the merged style.
func (th Theme) bar(density bool, style AesMapping) geom.Bar {
	am := MergeStyles(style, th.BarStyle, DefaultTheme.BarStyle)
	b := geom.Bar{
		Density: density,
		Fill:    SetAlpha(String2Color(am["fill"]), String2Float(am["alpha"], 0, 1)),
	}
	if lt := String2LineType(am["linetype"]); lt != BlankLine {
		b.Line = draw.LineStyle{
			Color:  String2Color(am["color"]),
			Width:  vg.Points(String2Float(am["size"], 0, 10)),
			Dashes: lt.Dashes(),
		}
	}
	return b
}
