package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/san-kum/perlinlab/internal/render"
	"github.com/san-kum/perlinlab/internal/rng"
)

const namespace = "perlinlab"

// Collector exports animation counters to Prometheus.
type Collector struct {
	Frames        prometheus.Counter
	RenderSeconds prometheus.Histogram
	SeedChanges   prometheus.Counter
	TimeOffset    prometheus.Gauge
}

func NewCollector() *Collector {
	return &Collector{
		Frames: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "frames_total",
			Help:      "Frames rendered and handed to the host.",
		}),
		RenderSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "render_duration_seconds",
			Help:      "Time spent rendering one frame.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 14),
		}),
		SeedChanges: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "seed_changes_total",
			Help:      "Gradient field rebuilds.",
		}),
		TimeOffset: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "time_offset",
			Help:      "Time offset of the most recent frame.",
		}),
	}
}

func (c *Collector) Register(reg prometheus.Registerer) error {
	for _, col := range []prometheus.Collector{c.Frames, c.RenderSeconds, c.SeedChanges, c.TimeOffset} {
		if err := reg.Register(col); err != nil {
			return err
		}
	}
	return nil
}

func (c *Collector) OnFrame(f *render.Frame, elapsed time.Duration) {
	c.Frames.Inc()
	c.RenderSeconds.Observe(elapsed.Seconds())
	c.TimeOffset.Set(f.Time)
}

func (c *Collector) OnSeed(seed rng.Seed) {
	c.SeedChanges.Inc()
	c.TimeOffset.Set(0)
}

// Handler serves the registry in the Prometheus text format.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
