package main

import (
	"image/color"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate    = beep.SampleRate(44100)
	clickDuration = 30 * time.Millisecond
	clickInterval = 80 * time.Millisecond

	// Tone range mapped over the red to yellow hue band.
	baseFreq = 220.0
	freqSpan = 440.0
	hueBand  = 66.0
)

// clicker plays a short tone for pours, pitched by the current hue.
type clicker struct {
	last time.Time
}

func newClicker() (*clicker, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return nil, err
	}
	return &clicker{}, nil
}

// Click plays a tone unless one was played within clickInterval.
func (c *clicker) Click(hue float64) {
	now := time.Now()
	if now.Sub(c.last) < clickInterval {
		return
	}
	c.last = now

	sine, err := generators.SineTone(sampleRate, toneFreq(hue))
	if err != nil {
		return
	}
	quiet := &effects.Volume{Streamer: beep.Take(sampleRate.N(clickDuration), sine), Base: 2, Volume: -3}
	speaker.Play(quiet)
}

func (c *clicker) Close() {
	speaker.Close()
}

// toneFreq maps a hue onto the tone range. Hues outside the band wrap.
func toneFreq(hue float64) float64 {
	h := hue
	for h < 0 {
		h += hueBand
	}
	for h >= hueBand {
		h -= hueBand
	}
	return baseFreq + freqSpan*h/hueBand
}

func toTcell(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
