package main

import (
	"math"
	"testing"
)

func TestHeadingGlyph(t *testing.T) {
	tests := []struct {
		heading float64
		want    rune
	}{
		{0, '↑'},
		{math.Pi / 2, '←'},
		{-math.Pi / 2, '→'},
		{math.Pi, '↓'},
		{-math.Pi + 0.1, '↓'},
		{math.Pi / 4, '↖'},
		{-math.Pi / 4, '↗'},
		{-3 * math.Pi / 4, '↘'},
		{0.3, '↑'},
		{math.NaN(), '•'},
	}
	for _, tt := range tests {
		if got := headingGlyph(tt.heading); got != tt.want {
			t.Errorf("headingGlyph(%v) = %q; want %q", tt.heading, got, tt.want)
		}
	}
}
