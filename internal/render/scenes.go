package render

import (
	"math"

	"github.com/san-kum/perlinlab/internal/noise"
	"github.com/san-kum/perlinlab/internal/rng"
)

// Scene is a static illustration redrawn whenever the seed or canvas resets.
type Scene struct {
	Name  string
	Title string
	Draw  func(r *Raster, g *noise.Generator)
}

// Gallery returns the static scenes in display order.
func Gallery() []Scene {
	return []Scene{
		{Name: "rand", Title: "Random placement", Draw: DrawScatter},
		{Name: "1d", Title: "1D Perlin noise", Draw: DrawLine1D},
		{Name: "1d_t", Title: "Tangent values t1 and t2 on [1, 2]", Draw: DrawTangents},
		{Name: "2d_b", Title: "2D Perlin noise (image)", Draw: DrawStill},
		{Name: "2d_k", Title: "2D Perlin noise (circle)", Draw: DrawCircle},
	}
}

// DrawScatter plots one raw random height per column.
func DrawScatter(r *Raster, g *noise.Generator) {
	r.Fill(Background)
	s := rng.NewStream(g.Seed())
	for x := 0; x < r.Width; x++ {
		y := int(s.Float64() * float64(r.Height))
		r.Set(x, y, Black)
	}
}

// DrawLine1D plots 1D noise, two lattice cells per 256 pixels.
func DrawLine1D(r *Raster, g *noise.Generator) {
	r.Fill(Background)
	l := g.Line()
	for x := 0; x < r.Width; x++ {
		v := l.Sample(float64(x) / 128)
		y := r.Height - 1 - int((v+1)/2*float64(r.Height-1))
		r.Set(x, y, Black)
	}
}

// DrawTangents shows the two gradient lines blended inside one lattice cell.
func DrawTangents(r *Raster, g *noise.Generator) {
	r.Fill(Background)
	s := rng.NewStream(g.Seed())
	const p1, p2 = 1.0, 2.0
	g1 := s.Float64()*2 - 1
	g2 := s.Float64()*2 - 1

	h := float64(r.Height)
	for x := 0; x < r.Width; x++ {
		xv := float64(x)/float64(r.Width) + p1
		t1 := h - (g1*(xv-p1)*h/2 + h/2)
		t2 := h - (g2*(xv-p2)*h/2 + h/2)
		r.Set(x, int(t1), Black)
		r.Set(x, int(t2), Red)
	}
}

// DrawStill renders the field once at a fixed 1/32 scale.
func DrawStill(r *Raster, g *noise.Generator) {
	for y := 0; y < r.Height; y++ {
		for x := 0; x < r.Width; x++ {
			l := Level(g.Sample(float64(x)/32, float64(y)/32))
			r.Set(x, y, RGB(l, l, l))
		}
	}
}

// Circle geometry on a 256 pixel reference canvas.
const (
	circleRef    = 256.0
	circleCenter = 100.0
	circleRadius = 128.0
)

// CircleGeometry returns the outline centre and maximum radius for a w by h
// raster. At 256x256 the centre is (100,100) and the radius 128, so part of
// the outline may leave the canvas.
func CircleGeometry(w, h int) (cx, cy, maxR float64) {
	sx, sy := float64(w)/circleRef, float64(h)/circleRef
	return circleCenter * sx, circleCenter * sy, circleRadius * math.Min(sx, sy)
}

// DrawCircle draws a closed outline whose radius follows noise sampled
// around a unit circle.
func DrawCircle(r *Raster, g *noise.Generator) {
	r.Fill(Background)
	cx, cy, maxR := CircleGeometry(r.Width, r.Height)

	const points = 1440
	var px, py int
	for i := 0; i <= points; i++ {
		a := float64(i%points) / 4 * math.Pi / 180
		c, s := math.Cos(a), math.Sin(a)
		rad := (g.Sample(c+1, s+1) + 1) / 2 * maxR
		x, y := int(c*rad+cx), int(s*rad+cy)
		if i > 0 {
			r.DrawLine(px, py, x, y, Black)
		}
		px, py = x, y
	}
}
