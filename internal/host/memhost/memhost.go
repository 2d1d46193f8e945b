// Package memhost is an in-memory drawing host. It keeps every canvas, the
// last buffer written to it, and all diagnostics, which makes it the host of
// choice for tests, benchmarks and scripted runs.
package memhost

import (
	"errors"
	"fmt"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/san-kum/perlinlab/internal/render"
)

var (
	ErrCanvasExists  = errors.New("memhost: canvas already exists")
	ErrUnknownCanvas = errors.New("memhost: unknown canvas")
	ErrPixelCount    = errors.New("memhost: pixel buffer size mismatch")
)

type Canvas struct {
	Name   string
	Width  int
	Height int
	Pix    []byte
	Writes int
}

type Host struct {
	canvases map[string]*Canvas
	Logs     []string
	Headings []string
	logger   *log.Logger
}

func New() *Host {
	return &Host{canvases: make(map[string]*Canvas)}
}

// WithLogger forwards Log calls to l as well as recording them.
func (h *Host) WithLogger(l *log.Logger) *Host {
	h.logger = l
	return h
}

func (h *Host) CreateCanvas(name string, width, height int) error {
	if err := render.CheckDimensions(width, height); err != nil {
		return err
	}
	if _, ok := h.canvases[name]; ok {
		return fmt.Errorf("%w: %s", ErrCanvasExists, name)
	}
	h.canvases[name] = &Canvas{Name: name, Width: width, Height: height}
	return nil
}

func (h *Host) WritePixels(name string, pix []byte) error {
	c, ok := h.canvases[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCanvas, name)
	}
	if len(pix) != c.Width*c.Height*4 {
		return fmt.Errorf("%w: %s wants %d bytes, got %d", ErrPixelCount, name, c.Width*c.Height*4, len(pix))
	}
	c.Pix = pix
	c.Writes++
	return nil
}

// RetainsPixels reports that written buffers are kept, so callers must not
// reuse them.
func (h *Host) RetainsPixels() bool { return true }

func (h *Host) Log(msg string) {
	h.Logs = append(h.Logs, msg)
	if h.logger != nil {
		h.logger.Info(msg)
	}
}

func (h *Host) CreateHeading(text string) {
	h.Headings = append(h.Headings, text)
}

func (h *Host) Canvas(name string) (*Canvas, bool) {
	c, ok := h.canvases[name]
	return c, ok
}

func (h *Host) Names() []string {
	names := make([]string, 0, len(h.canvases))
	for name := range h.canvases {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
