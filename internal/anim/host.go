package anim

import (
	"time"

	"github.com/san-kum/perlinlab/internal/render"
	"github.com/san-kum/perlinlab/internal/rng"
)

// Host is the drawing surface the driver paints onto.
type Host interface {
	// CreateCanvas allocates a surface registered under name.
	CreateCanvas(name string, width, height int) error
	// WritePixels paints a full RGBA buffer onto the named surface.
	WritePixels(name string, pix []byte) error
}

// Logger is an optional diagnostic hook.
type Logger interface {
	Log(msg string)
}

// Titler is an optional hook for display headings.
type Titler interface {
	CreateHeading(text string)
}

// PixelRetainer is implemented by hosts that keep written buffers past the
// WritePixels call. The driver then never reuses those buffers.
type PixelRetainer interface {
	RetainsPixels() bool
}

// Observer is notified after every frame reaches the host.
type Observer interface {
	OnFrame(f *render.Frame, elapsed time.Duration)
}

// SeedObserver is notified after every field rebuild.
type SeedObserver interface {
	OnSeed(seed rng.Seed)
}
