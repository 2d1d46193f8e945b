package term

import (
	"errors"
	"fmt"

	"github.com/san-kum/perlinlab/internal/render"
)

var ErrUnknownCanvas = errors.New("term: unknown canvas")

const DefaultLogLines = 6

type surface struct {
	title         string
	width, height int
	pix           []byte
}

// Host keeps a private copy of every canvas and renders it on demand. Written
// buffers are copied, so the driver is free to reuse them.
type Host struct {
	surfaces map[string]*surface
	order    []string
	pending  string
	logs     []string
	logCap   int
}

func NewHost(logLines int) *Host {
	if logLines <= 0 {
		logLines = DefaultLogLines
	}
	return &Host{surfaces: make(map[string]*surface), logCap: logLines}
}

func (h *Host) CreateCanvas(name string, width, height int) error {
	if err := render.CheckDimensions(width, height); err != nil {
		return err
	}
	if _, ok := h.surfaces[name]; !ok {
		h.order = append(h.order, name)
	}
	h.surfaces[name] = &surface{
		title:  h.pending,
		width:  width,
		height: height,
		pix:    make([]byte, width*height*4),
	}
	h.pending = ""
	return nil
}

func (h *Host) WritePixels(name string, pix []byte) error {
	s, ok := h.surfaces[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCanvas, name)
	}
	if len(pix) != len(s.pix) {
		return fmt.Errorf("term: canvas %s wants %d bytes, got %d", name, len(s.pix), len(pix))
	}
	copy(s.pix, pix)
	return nil
}

// CreateHeading titles the next canvas created.
func (h *Host) CreateHeading(text string) { h.pending = text }

// Log keeps the most recent lines for the status panel.
func (h *Host) Log(msg string) {
	h.logs = append(h.logs, msg)
	if len(h.logs) > h.logCap {
		h.logs = h.logs[len(h.logs)-h.logCap:]
	}
}

func (h *Host) Logs() []string { return h.logs }

func (h *Host) Names() []string { return h.order }

func (h *Host) Title(name string) string {
	if s, ok := h.surfaces[name]; ok {
		return s.title
	}
	return ""
}

// Render draws the named canvas as half-block text.
func (h *Host) Render(name string) (string, error) {
	s, ok := h.surfaces[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownCanvas, name)
	}
	return BlitString(s.pix, s.width, s.height), nil
}

// Pixels exposes the stored copy of a canvas.
func (h *Host) Pixels(name string) []byte {
	if s, ok := h.surfaces[name]; ok {
		return s.pix
	}
	return nil
}
