package metrics

import (
	"math"
	"time"

	"github.com/san-kum/perlinlab/internal/render"
)

// FrameStats accumulates luminance and timing over observed frames.
type FrameStats struct {
	name    string
	frames  int
	sum     float64
	min     float64
	max     float64
	elapsed time.Duration
}

func NewFrameStats() *FrameStats {
	s := &FrameStats{name: "luminance"}
	s.Reset()
	return s
}

func (s *FrameStats) Name() string { return s.name }

func (s *FrameStats) OnFrame(f *render.Frame, elapsed time.Duration) {
	if f == nil || len(f.Pix) == 0 {
		return
	}
	mean := Luminance(f.Pix)
	s.sum += mean
	s.min = math.Min(s.min, mean)
	s.max = math.Max(s.max, mean)
	s.elapsed += elapsed
	s.frames++
}

// Value is the mean frame luminance in [0, 255].
func (s *FrameStats) Value() float64 {
	if s.frames == 0 {
		return 0
	}
	return s.sum / float64(s.frames)
}

func (s *FrameStats) Frames() int { return s.frames }

func (s *FrameStats) Range() (lo, hi float64) {
	if s.frames == 0 {
		return 0, 0
	}
	return s.min, s.max
}

// MeanRenderTime is the average time spent rendering one frame.
func (s *FrameStats) MeanRenderTime() time.Duration {
	if s.frames == 0 {
		return 0
	}
	return s.elapsed / time.Duration(s.frames)
}

func (s *FrameStats) Reset() {
	s.frames = 0
	s.sum = 0
	s.min = math.Inf(1)
	s.max = math.Inf(-1)
	s.elapsed = 0
}

// Luminance returns the mean Rec. 601 luma of an RGBA buffer.
func Luminance(pix []byte) float64 {
	n := len(pix) / 4
	if n == 0 {
		return 0
	}
	var total float64
	for i := 0; i+3 < len(pix); i += 4 {
		total += 0.299*float64(pix[i]) + 0.587*float64(pix[i+1]) + 0.114*float64(pix[i+2])
	}
	return total / float64(n)
}
