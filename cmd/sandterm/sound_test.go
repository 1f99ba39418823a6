package main

import (
	"image/color"
	"math"
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestToneFreq(t *testing.T) {
	tests := []struct {
		hue  float64
		want float64
	}{
		{0, 220},
		{33, 440},
		{66, 220}, // wraps
		{-33, 440},
		{99, 440},
	}

	for _, tt := range tests {
		if got := toneFreq(tt.hue); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("toneFreq(%v) = %v, want %v", tt.hue, got, tt.want)
		}
	}
}

func TestToTcell(t *testing.T) {
	got := toTcell(color.RGBA{R: 255, G: 128, B: 0, A: 255})
	if want := tcell.NewRGBColor(255, 128, 0); got != want {
		t.Errorf("toTcell = %v, want %v", got, want)
	}
}
