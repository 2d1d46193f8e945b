package render

// Color is a straight RGBA color.
type Color struct {
	R, G, B, A uint8
}

func RGB(r, g, b uint8) Color { return Color{R: r, G: g, B: b, A: 255} }

var (
	Black      = RGB(0, 0, 0)
	Red        = RGB(255, 0, 0)
	Background = RGB(120, 120, 120)
)

// Raster is a mutable RGBA surface.
type Raster struct {
	Width, Height int
	Pix           []byte
}

func NewRaster(w, h int) (*Raster, error) {
	if err := CheckDimensions(w, h); err != nil {
		return nil, err
	}
	return &Raster{Width: w, Height: h, Pix: make([]byte, w*h*4)}, nil
}

// Fill paints every pixel with c.
func (r *Raster) Fill(c Color) {
	for i := 0; i < len(r.Pix); i += 4 {
		r.Pix[i] = c.R
		r.Pix[i+1] = c.G
		r.Pix[i+2] = c.B
		r.Pix[i+3] = c.A
	}
}

// Set paints one pixel. Out of range coordinates are ignored.
func (r *Raster) Set(x, y int, c Color) {
	if x < 0 || y < 0 || x >= r.Width || y >= r.Height {
		return
	}
	i := (y*r.Width + x) * 4
	r.Pix[i] = c.R
	r.Pix[i+1] = c.G
	r.Pix[i+2] = c.B
	r.Pix[i+3] = c.A
}

func (r *Raster) At(x, y int) Color {
	if x < 0 || y < 0 || x >= r.Width || y >= r.Height {
		return Color{}
	}
	i := (y*r.Width + x) * 4
	return Color{R: r.Pix[i], G: r.Pix[i+1], B: r.Pix[i+2], A: r.Pix[i+3]}
}

// DrawLine draws a line using Bresenham's algorithm
func (r *Raster) DrawLine(x0, y0, x1, y1 int, c Color) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		r.Set(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
