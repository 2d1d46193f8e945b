//go:build js
// +build js

// Package web is the browser drawing host. Canvases are DOM elements painted
// with putImageData, diagnostics go to the console and ticks come from
// setInterval.
package web

import (
	"fmt"
	"time"

	"github.com/gopherjs/gopherjs/js"
	"github.com/san-kum/perlinlab/internal/anim"
	"github.com/san-kum/perlinlab/internal/render"
)

type canvas struct {
	el     *js.Object
	ctx    *js.Object
	img    *js.Object
	width  int
	height int
}

type Host struct {
	doc      *js.Object
	parent   *js.Object
	canvases map[string]*canvas
	interval *js.Object
}

// New appends canvases and headings to parent, or to document.body when
// parent is nil.
func New(parent *js.Object) *Host {
	doc := js.Global.Get("document")
	if parent == nil || parent == js.Undefined {
		parent = doc.Get("body")
	}
	return &Host{doc: doc, parent: parent, canvases: make(map[string]*canvas)}
}

func (h *Host) CreateCanvas(name string, width, height int) error {
	if err := render.CheckDimensions(width, height); err != nil {
		return err
	}
	el := h.doc.Call("createElement", "canvas")
	el.Set("id", name)
	el.Set("width", width)
	el.Set("height", height)
	h.parent.Call("appendChild", el)

	ctx := el.Call("getContext", "2d")
	h.canvases[name] = &canvas{
		el:     el,
		ctx:    ctx,
		img:    ctx.Call("createImageData", width, height),
		width:  width,
		height: height,
	}
	return nil
}

// WritePixels copies pix into the canvas image data.
func (h *Host) WritePixels(name string, pix []byte) error {
	c, ok := h.canvases[name]
	if !ok {
		return fmt.Errorf("web: unknown canvas %s", name)
	}
	if len(pix) != c.width*c.height*4 {
		return fmt.Errorf("web: canvas %s wants %d bytes, got %d", name, c.width*c.height*4, len(pix))
	}
	c.img.Get("data").Call("set", pix)
	c.ctx.Call("putImageData", c.img, 0, 0)
	return nil
}

func (h *Host) Log(msg string) {
	js.Global.Get("console").Call("log", "[perlinlab] "+msg)
}

func (h *Host) CreateHeading(text string) {
	el := h.doc.Call("createElement", "h2")
	el.Set("textContent", text)
	h.parent.Call("appendChild", el)
}

// Start ticks d every interval until Stop.
func (h *Host) Start(d *anim.Driver, interval time.Duration) {
	h.Stop()
	h.interval = js.Global.Call("setInterval", func() {
		if err := d.Tick(); err != nil {
			h.Log(err.Error())
		}
	}, interval.Milliseconds())
}

func (h *Host) Stop() {
	if h.interval != nil {
		js.Global.Call("clearInterval", h.interval)
		h.interval = nil
	}
}

// Expose publishes the driver on window.perlinlab.
func (h *Host) Expose(d *anim.Driver, interval time.Duration) {
	js.Global.Set("perlinlab", map[string]interface{}{
		"setSeed": func(raw string) string {
			seed, err := d.ChangeSeed(raw)
			if err != nil {
				h.Log(err.Error())
			}
			return seed.String()
		},
		"resetCanvas": func() {
			if err := d.ResetCanvas(); err != nil {
				h.Log(err.Error())
			}
		},
		"tick": func() {
			if err := d.Tick(); err != nil {
				h.Log(err.Error())
			}
		},
		"start": func() { h.Start(d, interval) },
		"stop":  func() { h.Stop() },
		"seed":  func() string { return d.Seed().String() },
		"time":  func() float64 { return d.Time() },
	})
}
