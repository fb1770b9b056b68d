package main

import (
	"math"

	"github.com/gdamore/tcell/v2"
)

// counter-clockwise from +Y, matching the heading convention
var arrows = [8]rune{'↑', '↖', '←', '↙', '↓', '↘', '→', '↗'}

func headingGlyph(heading float64) rune {
	if math.IsNaN(heading) || math.IsInf(heading, 0) {
		return '•'
	}
	i := int(math.Round(heading/(math.Pi/4))) % 8
	if i < 0 {
		i += 8
	}
	return arrows[i]
}

// sizeColor makes bigger boids brighter.
func sizeColor(size float64) tcell.Color {
	switch {
	case size < 0.6:
		return tcell.ColorTeal
	case size < 1.0:
		return tcell.ColorAqua
	default:
		return tcell.ColorWhite
	}
}
