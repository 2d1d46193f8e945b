package render

import (
	"fmt"
	"sort"

	"github.com/lucasb-eyer/go-colorful"
)

// Palette maps a noise level 0..255 to RGB.
type Palette struct {
	Name string
	lut  [256][3]uint8
}

// PaletteChannels samples R, G and B at separate frequencies instead of
// looking up a color table.
const PaletteChannels = "channels"

// DefaultPalette is grayscale.
const DefaultPalette = "gray"

type stop struct {
	pos float64
	hex string
}

var paletteStops = map[string][]stop{
	"heat": {
		{0, "#000000"}, {0.35, "#7a0000"}, {0.65, "#ff6a00"}, {0.9, "#ffd84a"}, {1, "#ffffff"},
	},
	"ocean": {
		{0, "#02041a"}, {0.4, "#0a3d7a"}, {0.7, "#1f9bbf"}, {1, "#d8f6ff"},
	},
	"terrain": {
		{0, "#0b2a6b"}, {0.45, "#2e7fc0"}, {0.5, "#e8d9a0"}, {0.6, "#4f9a3a"}, {0.8, "#6b5a3a"}, {1, "#ffffff"},
	},
}

// PaletteNames lists every accepted palette name.
func PaletteNames() []string {
	names := []string{DefaultPalette, PaletteChannels}
	for name := range paletteStops {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewPalette builds the lookup table for name. The channels mode keeps a
// grayscale table for callers that only need a single channel.
func NewPalette(name string) (*Palette, error) {
	p := &Palette{Name: name}
	switch name {
	case "", DefaultPalette, PaletteChannels:
		if name == "" {
			p.Name = DefaultPalette
		}
		for i := range p.lut {
			v := uint8(i)
			p.lut[i] = [3]uint8{v, v, v}
		}
		return p, nil
	}

	stops, ok := paletteStops[name]
	if !ok {
		return nil, fmt.Errorf("render: unknown palette %q (available: %v)", name, PaletteNames())
	}

	colors := make([]colorful.Color, len(stops))
	for i, s := range stops {
		c, err := colorful.Hex(s.hex)
		if err != nil {
			return nil, fmt.Errorf("render: palette %s: %w", name, err)
		}
		colors[i] = c
	}

	for i := range p.lut {
		t := float64(i) / 255
		j := 0
		for j < len(stops)-2 && t > stops[j+1].pos {
			j++
		}
		span := stops[j+1].pos - stops[j].pos
		local := 0.0
		if span > 0 {
			local = (t - stops[j].pos) / span
		}
		r, g, b := colors[j].BlendLab(colors[j+1], clamp01(local)).Clamped().RGB255()
		p.lut[i] = [3]uint8{r, g, b}
	}
	return p, nil
}

// RGB returns the color for level.
func (p *Palette) RGB(level uint8) (r, g, b uint8) {
	c := p.lut[level]
	return c[0], c[1], c[2]
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
