package anim_test

import (
	"bytes"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/perlinlab/internal/anim"
	"github.com/san-kum/perlinlab/internal/host/memhost"
	"github.com/san-kum/perlinlab/internal/metrics"
	"github.com/san-kum/perlinlab/internal/noise"
	"github.com/san-kum/perlinlab/internal/render"
	"github.com/san-kum/perlinlab/internal/rng"
)

func newDriver(host anim.Host, cfg anim.Config) (*anim.Driver, error) {
	gen, err := noise.NewGenerator(noise.NewRegistry(), rng.DefaultSeed, noise.DefaultOptions())
	Expect(err).NotTo(HaveOccurred())
	r, err := render.New(gen, render.DefaultOptions())
	Expect(err).NotTo(HaveOccurred())
	return anim.New(host, gen, r, cfg)
}

func smallConfig() anim.Config {
	cfg := anim.DefaultConfig()
	cfg.Width, cfg.Height = 8, 6
	return cfg
}

// copyingHost paints by copying, like a real surface.
type copyingHost struct {
	canvases map[string][]byte
	writes   int
}

func (h *copyingHost) CreateCanvas(name string, w, hgt int) error {
	h.canvases[name] = make([]byte, w*hgt*4)
	return nil
}

func (h *copyingHost) WritePixels(name string, pix []byte) error {
	copy(h.canvases[name], pix)
	h.writes++
	return nil
}

var _ = Describe("Driver", func() {
	var (
		host   *memhost.Host
		driver *anim.Driver
		cfg    anim.Config
	)

	BeforeEach(func() {
		host = memhost.New()
		cfg = smallConfig()
		var err error
		driver, err = newDriver(host, cfg)
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("construction", func() {
		It("registers the animation canvas and heading", func() {
			Expect(host.Names()).To(ConsistOf("2d"))
			Expect(host.Headings).To(ContainElement(cfg.Title))
			c, ok := host.Canvas("2d")
			Expect(ok).To(BeTrue())
			Expect(c.Width).To(Equal(8))
			Expect(c.Height).To(Equal(6))
		})

		It("starts idle at time zero", func() {
			Expect(driver.Phase()).To(Equal(anim.Idle))
			Expect(driver.Time()).To(BeZero())
			Expect(driver.Seed()).To(Equal(rng.DefaultSeed))
		})

		DescribeTable("rejects invalid dimensions",
			func(w, h int) {
				bad := smallConfig()
				bad.Width, bad.Height = w, h
				other := memhost.New()
				d, err := newDriver(other, bad)
				Expect(err).To(MatchError(render.ErrInvalidDimensions))
				Expect(d).To(BeNil())
				Expect(other.Names()).To(BeEmpty())
				Expect(other.Logs).NotTo(BeEmpty())
			},
			Entry("zero width", 0, 4),
			Entry("zero height", 4, 0),
			Entry("negative", -2, -2),
		)

		It("defaults a non-positive step", func() {
			c := smallConfig()
			c.Step = 0
			d, err := newDriver(memhost.New(), c)
			Expect(err).NotTo(HaveOccurred())
			Expect(d.Config().Step).To(Equal(anim.DefaultStep))
		})
	})

	Describe("Tick", func() {
		It("moves to running and advances time by one step", func() {
			Expect(driver.Tick()).To(Succeed())
			Expect(driver.Phase()).To(Equal(anim.Running))
			Expect(driver.Time()).To(BeNumerically("~", cfg.Step, 1e-12))

			Expect(driver.Tick()).To(Succeed())
			Expect(driver.Time()).To(BeNumerically("~", 2*cfg.Step, 1e-12))
			Expect(driver.Frames()).To(Equal(2))
		})

		It("writes a full opaque RGBA frame", func() {
			Expect(driver.Tick()).To(Succeed())
			c, _ := host.Canvas("2d")
			Expect(c.Pix).To(HaveLen(8 * 6 * 4))
			for i := 3; i < len(c.Pix); i += 4 {
				Expect(c.Pix[i]).To(Equal(byte(255)))
			}
		})

		It("hands a fresh buffer to a retaining host each tick", func() {
			Expect(driver.Tick()).To(Succeed())
			c, _ := host.Canvas("2d")
			first := c.Pix
			snapshot := append([]byte(nil), first...)

			Expect(driver.Tick()).To(Succeed())
			Expect(first).To(Equal(snapshot))
		})
	})

	Describe("SetSeed", func() {
		BeforeEach(func() {
			Expect(driver.Tick()).To(Succeed())
			Expect(driver.Tick()).To(Succeed())
		})

		It("rebuilds, resets time and returns to idle", func() {
			seed, err := driver.SetSeed("42")
			Expect(err).NotTo(HaveOccurred())
			Expect(seed).To(Equal(rng.Seed(42)))
			Expect(driver.Seed()).To(Equal(rng.Seed(42)))
			Expect(driver.Time()).To(BeZero())
			Expect(driver.Phase()).To(Equal(anim.Idle))
		})

		It("clears the canvas", func() {
			_, err := driver.SetSeed("42")
			Expect(err).NotTo(HaveOccurred())
			c, _ := host.Canvas("2d")
			Expect(bytes.Count(c.Pix, []byte{0})).To(Equal(len(c.Pix)))
		})

		It("falls back to the default seed with a diagnostic", func() {
			seed, err := driver.SetSeed("\xff\xfe")
			Expect(err).NotTo(HaveOccurred())
			Expect(seed).To(Equal(rng.DefaultSeed))
			Expect(host.Logs).To(ContainElement(ContainSubstring("invalid seed")))
		})

		It("reproduces frames after a seed round trip", func() {
			_, _ = driver.SetSeed("42")
			Expect(driver.Tick()).To(Succeed())
			c, _ := host.Canvas("2d")
			first := append([]byte(nil), c.Pix...)

			_, _ = driver.SetSeed("43")
			Expect(driver.Tick()).To(Succeed())
			c, _ = host.Canvas("2d")
			Expect(c.Pix).NotTo(Equal(first))

			_, _ = driver.SetSeed("42")
			Expect(driver.Tick()).To(Succeed())
			c, _ = host.Canvas("2d")
			Expect(c.Pix).To(Equal(first))
		})
	})

	Describe("ResetCanvas", func() {
		It("paints the frame at time zero immediately", func() {
			Expect(driver.Tick()).To(Succeed())
			Expect(driver.ResetCanvas()).To(Succeed())
			Expect(driver.Time()).To(BeZero())

			gen, _ := noise.NewGenerator(noise.NewRegistry(), rng.DefaultSeed, noise.DefaultOptions())
			r, _ := render.New(gen, render.DefaultOptions())
			want, err := r.Render(8, 6, 0)
			Expect(err).NotTo(HaveOccurred())

			c, _ := host.Canvas("2d")
			Expect(c.Pix).To(Equal(want.Pix))
		})

		It("keeps the current phase", func() {
			Expect(driver.Tick()).To(Succeed())
			Expect(driver.ResetCanvas()).To(Succeed())
			Expect(driver.Phase()).To(Equal(anim.Running))
		})
	})

	Describe("Redraw", func() {
		It("repaints without advancing time", func() {
			Expect(driver.Tick()).To(Succeed())
			c, _ := host.Canvas("2d")
			before := append([]byte(nil), c.Pix...)

			Expect(driver.Renderer().SetPalette("heat")).To(Succeed())
			Expect(driver.Redraw()).To(Succeed())
			Expect(driver.Time()).To(BeNumerically("~", cfg.Step, 1e-12))
			c, _ = host.Canvas("2d")
			Expect(c.Pix).NotTo(Equal(before))
		})
	})

	Describe("gallery", func() {
		It("creates and redraws every scene canvas", func() {
			c := smallConfig()
			c.Gallery = true
			c.GallerySize = 32
			gh := memhost.New()
			d, err := newDriver(gh, c)
			Expect(err).NotTo(HaveOccurred())
			Expect(gh.Names()).To(HaveLen(len(render.Gallery()) + 1))

			Expect(d.ResetCanvas()).To(Succeed())
			for _, s := range d.Scenes() {
				sc, ok := gh.Canvas(s.Name)
				Expect(ok).To(BeTrue())
				Expect(sc.Writes).To(Equal(1))
				Expect(sc.Pix).To(HaveLen(32 * 32 * 4))
			}
		})
	})

	Describe("ChangeSeed", func() {
		It("repaints the gallery and the first frame for the new field", func() {
			c := smallConfig()
			c.Gallery = true
			c.GallerySize = 32
			gh := memhost.New()
			d, err := newDriver(gh, c)
			Expect(err).NotTo(HaveOccurred())
			Expect(d.ResetCanvas()).To(Succeed())
			Expect(d.Tick()).To(Succeed())

			sc, _ := gh.Canvas("2d_b")
			before := append([]byte(nil), sc.Pix...)

			seed, err := d.ChangeSeed("999")
			Expect(err).NotTo(HaveOccurred())
			Expect(seed).To(Equal(rng.Seed(999)))
			Expect(d.Time()).To(BeZero())
			Expect(d.Phase()).To(Equal(anim.Idle))

			sc, _ = gh.Canvas("2d_b")
			Expect(sc.Writes).To(Equal(2))
			Expect(sc.Pix).NotTo(Equal(before))

			main, _ := gh.Canvas("2d")
			Expect(bytes.Count(main.Pix, []byte{0})).To(BeNumerically("<", len(main.Pix)))
		})
	})

	Describe("observers", func() {
		It("sees every frame and seed change", func() {
			stats := metrics.NewFrameStats()
			col := metrics.NewCollector()
			driver.AddObserver(stats)
			driver.AddObserver(col)

			Expect(driver.Tick()).To(Succeed())
			Expect(driver.Tick()).To(Succeed())
			_, _ = driver.SetSeed("7")

			Expect(stats.Frames()).To(Equal(2))
			Expect(stats.MeanRenderTime()).To(BeNumerically(">=", time.Duration(0)))
		})
	})

	Describe("hosts without optional hooks", func() {
		It("runs against a copying host", func() {
			h := &copyingHost{canvases: map[string][]byte{}}
			d, err := newDriver(h, smallConfig())
			Expect(err).NotTo(HaveOccurred())

			Expect(d.Tick()).To(Succeed())
			first := append([]byte(nil), h.canvases["2d"]...)
			Expect(d.Tick()).To(Succeed())
			Expect(h.canvases["2d"]).NotTo(Equal(first))

			_, err = d.SetSeed("\xff")
			Expect(err).NotTo(HaveOccurred())
			Expect(h.writes).To(Equal(3))
		})
	})
})
