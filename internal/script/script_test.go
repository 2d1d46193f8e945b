package script_test

import (
	"context"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/perlinlab/internal/anim"
	"github.com/san-kum/perlinlab/internal/config"
	"github.com/san-kum/perlinlab/internal/rng"
	"github.com/san-kum/perlinlab/internal/script"
)

const scenarioYAML = `
name: round-trip
description: seed, animate, reseed
steps:
  - seed: "42"
    reset: true
    ticks: 3
  - seed: "43"
    ticks: 3
  - seed: "42"
    ticks: 3
`

func smallConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Width, cfg.Height = 16, 12
	return cfg
}

func seed(s string) *string { return &s }

var _ = Describe("Scenario", func() {
	var ctx context.Context

	BeforeEach(func() {
		ctx = context.Background()
	})

	Describe("Parse", func() {
		It("reads steps in order", func() {
			sc, err := script.Parse([]byte(scenarioYAML))
			Expect(err).NotTo(HaveOccurred())
			Expect(sc.Name).To(Equal("round-trip"))
			Expect(sc.Steps).To(HaveLen(3))
			Expect(*sc.Steps[1].Seed).To(Equal("43"))
			Expect(sc.Steps[0].Reset).To(BeTrue())
		})

		It("keeps an explicit empty seed", func() {
			sc, err := script.Parse([]byte("steps:\n  - seed: \"\"\n"))
			Expect(err).NotTo(HaveOccurred())
			Expect(sc.Steps[0].Seed).NotTo(BeNil())
			Expect(*sc.Steps[0].Seed).To(BeEmpty())
		})

		DescribeTable("rejects malformed scenarios",
			func(doc string, target error) {
				_, err := script.Parse([]byte(doc))
				Expect(err).To(HaveOccurred())
				if target != nil {
					Expect(err).To(MatchError(target))
				}
			},
			Entry("empty step", "steps:\n  - {}\n", script.ErrEmptyStep),
			Entry("unknown preset", "preset: nope\nsteps:\n  - ticks: 1\n", script.ErrUnknownPreset),
			Entry("negative ticks", "steps:\n  - ticks: -1\n", nil),
			Entry("bad checksum", "steps:\n  - ticks: 1\n    expect: xyz\n", nil),
			Entry("bad yaml", "steps: [", nil),
		)

		It("loads from disk", func() {
			path := filepath.Join(GinkgoT().TempDir(), "s.yaml")
			Expect(os.WriteFile(path, []byte(scenarioYAML), 0644)).To(Succeed())
			sc, err := script.Load(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(sc.Steps).To(HaveLen(3))
		})
	})

	Describe("Run", func() {
		It("reproduces a frame after a seed round trip", func() {
			sc, err := script.Parse([]byte(scenarioYAML))
			Expect(err).NotTo(HaveOccurred())

			res, err := script.Run(ctx, sc, smallConfig(), nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Steps).To(HaveLen(3))

			Expect(res.Steps[0].Seed).To(Equal(rng.Seed(42)))
			Expect(res.Steps[1].Seed).To(Equal(rng.Seed(43)))
			Expect(res.Steps[0].Checksum).NotTo(Equal(res.Steps[1].Checksum))
			Expect(res.Steps[2].Checksum).To(Equal(res.Steps[0].Checksum))
			Expect(res.Checksum()).To(Equal(res.Steps[2].Checksum))
		})

		It("is deterministic across runs", func() {
			sc, _ := script.Parse([]byte(scenarioYAML))
			a, err := script.Run(ctx, sc, smallConfig(), nil)
			Expect(err).NotTo(HaveOccurred())
			b, err := script.Run(ctx, sc, smallConfig(), nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(a.Checksum()).To(Equal(b.Checksum()))
		})

		It("leaves a cleared canvas after a bare seed change", func() {
			cfg := smallConfig()
			sc := &script.Scenario{Steps: []script.Step{{Ticks: 2}, {Seed: seed("9")}}}
			res, err := script.Run(ctx, sc, cfg, nil)
			Expect(err).NotTo(HaveOccurred())

			last := res.Steps[1]
			Expect(last.Phase).To(Equal(anim.Idle))
			Expect(last.Time).To(BeZero())
			Expect(last.Checksum).To(Equal(xxhash.Sum64(make([]byte, cfg.Width*cfg.Height*4))))
			Expect(last.Luminance).To(BeZero())
		})

		It("tracks time and frames", func() {
			cfg := smallConfig()
			sc := &script.Scenario{Steps: []script.Step{{Ticks: 4}, {Reset: true}}}
			res, err := script.Run(ctx, sc, cfg, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Steps[0].Time).To(BeNumerically("~", 4*cfg.Step, 1e-12))
			Expect(res.Steps[0].Phase).To(Equal(anim.Running))
			Expect(res.Steps[1].Time).To(BeZero())
			Expect(res.Steps[1].Frames).To(Equal(5))
		})

		It("fails on a pinned checksum that does not match", func() {
			sc := &script.Scenario{Steps: []script.Step{{Ticks: 1, Expect: "0000000000000001"}}}
			res, err := script.Run(ctx, sc, smallConfig(), nil)
			Expect(err).To(MatchError(script.ErrChecksumMismatch))
			Expect(res.Steps).To(HaveLen(1))
		})

		It("accepts a pinned checksum that matches", func() {
			sc := &script.Scenario{Steps: []script.Step{{Seed: seed("1"), Ticks: 2}}}
			first, err := script.Run(ctx, sc, smallConfig(), nil)
			Expect(err).NotTo(HaveOccurred())

			sc.Steps[0].Expect = script.FormatChecksum(first.Checksum())
			_, err = script.Run(ctx, sc, smallConfig(), nil)
			Expect(err).NotTo(HaveOccurred())
		})

		It("applies palette and scale changes", func() {
			base := &script.Scenario{Steps: []script.Step{{Reset: true}}}
			styled := &script.Scenario{Steps: []script.Step{{Palette: "heat", Scale: 0.1, Reset: true}}}
			a, err := script.Run(ctx, base, smallConfig(), nil)
			Expect(err).NotTo(HaveOccurred())
			b, err := script.Run(ctx, styled, smallConfig(), nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(a.Checksum()).NotTo(Equal(b.Checksum()))
		})

		It("rejects an unknown palette", func() {
			sc := &script.Scenario{Steps: []script.Step{{Palette: "sepia"}}}
			_, err := script.Run(ctx, sc, smallConfig(), nil)
			Expect(err).To(HaveOccurred())
		})

		It("stops when the context is cancelled", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()
			sc := &script.Scenario{Steps: []script.Step{{Ticks: 1}}}
			res, err := script.Run(cctx, sc, smallConfig(), nil)
			Expect(err).To(MatchError(context.Canceled))
			Expect(res.Steps).To(BeEmpty())
		})

		It("uses the scenario preset", func() {
			sc := &script.Scenario{Preset: "fine", Steps: []script.Step{{Ticks: 1}}}
			res, err := script.Run(ctx, sc, nil, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Steps[0].Time).To(BeNumerically("~", config.GetPreset("fine").Step, 1e-12))
		})
	})

	Describe("SweepSeeds", func() {
		It("reports one distinct fingerprint per seed", func() {
			res, err := script.SweepSeeds(ctx, smallConfig(), []string{"1", "2", "3"}, 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(res).To(HaveLen(3))
			Expect(res[0].Seed).To(Equal(rng.Seed(1)))
			Expect(res[0].Checksum).NotTo(Equal(res[1].Checksum))
			Expect(res[1].Checksum).NotTo(Equal(res[2].Checksum))
			for _, r := range res {
				Expect(r.Luminance).To(BeNumerically(">", 0))
			}
		})
	})
})
