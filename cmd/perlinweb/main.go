//go:build js
// +build js

package main

import (
	"time"

	"github.com/gopherjs/gopherjs/js"
	"github.com/san-kum/perlinlab/internal/anim"
	"github.com/san-kum/perlinlab/internal/config"
	"github.com/san-kum/perlinlab/internal/host/web"
)

func main() {
	cfg := config.DefaultConfig()
	cfg.Gallery = true
	if p := js.Global.Get("location").Get("hash").String(); len(p) > 1 {
		if preset := config.GetPreset(p[1:]); preset != nil {
			preset.Gallery = true
			cfg = preset
		}
	}

	host := web.New(nil)
	gen, r, err := cfg.Build()
	if err != nil {
		host.Log(err.Error())
	}
	if gen == nil {
		return
	}

	d, err := anim.New(host, gen, r, cfg.AnimConfig())
	if err != nil {
		host.Log(err.Error())
		return
	}
	if err := d.ResetCanvas(); err != nil {
		host.Log(err.Error())
	}

	interval := time.Second / time.Duration(cfg.FPS)
	host.Expose(d, interval)
	host.Start(d, interval)
}
