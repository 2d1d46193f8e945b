package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/guptarohit/asciigraph"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/san-kum/perlinlab/internal/analysis"
	"github.com/san-kum/perlinlab/internal/anim"
	"github.com/san-kum/perlinlab/internal/config"
	"github.com/san-kum/perlinlab/internal/host/memhost"
	"github.com/san-kum/perlinlab/internal/host/term"
	"github.com/san-kum/perlinlab/internal/logging"
	"github.com/san-kum/perlinlab/internal/metrics"
	"github.com/san-kum/perlinlab/internal/noise"
	"github.com/san-kum/perlinlab/internal/render"
	"github.com/san-kum/perlinlab/internal/rng"
	"github.com/san-kum/perlinlab/internal/script"
	"github.com/spf13/cobra"
)

var (
	configFile  string
	preset      string
	seed        string
	engine      string
	width       int
	height      int
	scale       float64
	step        float64
	palette     string
	octaves     int
	frameRate   int
	gallery     bool
	logLevel    string
	metricsAddr string
	// frame / plot / spectrum
	ticks           int
	plotSamples     int
	spectrumSamples int
	rowY            float64
	oneD            bool
	// sweep
	sweepTicks int
)

var logger *log.Logger

func main() {
	rootCmd := &cobra.Command{
		Use:   "perlinlab",
		Short: "seedable perlin noise lab",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			logger, err = logging.New(os.Stderr, logLevel)
			return err
		},
		RunE:          runLive,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.StringVar(&seed, "seed", rng.DefaultSeed.String(), "seed (integer or any string)")
	pf.StringVar(&engine, "engine", noise.EnginePerlin, "noise engine")
	pf.IntVar(&width, "width", config.DefaultWidth, "canvas width in pixels")
	pf.IntVar(&height, "height", config.DefaultHeight, "canvas height in pixels")
	pf.Float64Var(&scale, "scale", config.DefaultScale, "noise units per pixel")
	pf.Float64Var(&step, "step", config.DefaultStep, "time advanced per tick")
	pf.StringVar(&palette, "palette", render.DefaultPalette, "palette ("+strings.Join(render.PaletteNames(), ", ")+")")
	pf.IntVar(&octaves, "octaves", config.DefaultOctaves, "fractal octaves")
	pf.IntVar(&frameRate, "fps", config.DefaultFPS, "frame rate")
	pf.BoolVar(&gallery, "gallery", false, "draw the gallery canvases")
	pf.StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	pf.StringVar(&metricsAddr, "metrics-addr", "", "serve prometheus metrics on this address")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "animate noise in the terminal",
		RunE:  runLive,
	}

	frameCmd := &cobra.Command{
		Use:   "frame",
		Short: "print one frame as truecolor half-blocks",
		RunE:  runFrame,
	}
	frameCmd.Flags().IntVar(&ticks, "ticks", 0, "ticks to advance before printing")

	plotCmd := &cobra.Command{
		Use:   "plot",
		Short: "plot a slice of noise",
		RunE:  runPlot,
	}
	plotCmd.Flags().IntVar(&plotSamples, "samples", 256, "number of samples")
	plotCmd.Flags().Float64Var(&rowY, "y", 0.5, "row to slice (2d)")
	plotCmd.Flags().BoolVar(&oneD, "1d", false, "plot 1d noise instead of a 2d row")

	sampleCmd := &cobra.Command{
		Use:   "sample [x] [y]",
		Short: "evaluate noise at a point",
		Args:  cobra.ExactArgs(2),
		RunE:  runSample,
	}

	spectrumCmd := &cobra.Command{
		Use:   "spectrum",
		Short: "statistics and power spectrum of a noise row",
		RunE:  runSpectrum,
	}
	spectrumCmd.Flags().IntVar(&spectrumSamples, "samples", 1024, "number of samples")
	spectrumCmd.Flags().Float64Var(&rowY, "y", 0.5, "row to slice")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark frame rendering",
		RunE:  runBench,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tENGINE\tPALETTE\tSCALE\tSTEP\tOCTAVES")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%s\t%s\t%.4f\t%.3f\t%d\n",
					name, p.Engine, p.Palette, p.Scale, p.Step, p.Fractal.Octaves)
			}
			return w.Flush()
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "manage config files",
	}
	configInitCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the effective configuration to a yaml file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "perlinlab.yaml"
			if len(args) > 0 {
				path = args[0]
			}
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := config.Save(path, cfg); err != nil {
				return err
			}
			logger.Info("config written", "path", path)
			return nil
		},
	}
	configCmd.AddCommand(configInitCmd)

	scriptCmd := &cobra.Command{
		Use:   "script [file]",
		Short: "replay a yaml scenario and print frame checksums",
		Args:  cobra.ExactArgs(1),
		RunE:  runScript,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep [seed...]",
		Short: "fingerprint several seeds",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runSweep,
	}
	sweepCmd.Flags().IntVar(&sweepTicks, "ticks", 1, "ticks per seed")

	rootCmd.AddCommand(liveCmd, frameCmd, plotCmd, sampleCmd, spectrumCmd, benchCmd, presetsCmd, configCmd, scriptCmd, sweepCmd)

	if err := rootCmd.Execute(); err != nil {
		if logger != nil {
			logger.Error(err)
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

// loadConfig layers defaults, preset, config file and explicitly set flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("engine") {
		cfg.Engine = engine
	}
	if flags.Changed("width") {
		cfg.Width = width
	}
	if flags.Changed("height") {
		cfg.Height = height
	}
	if flags.Changed("scale") {
		cfg.Scale = scale
	}
	if flags.Changed("step") {
		cfg.Step = step
	}
	if flags.Changed("palette") {
		cfg.Palette = palette
	}
	if flags.Changed("octaves") {
		cfg.Fractal.Octaves = octaves
	}
	if flags.Changed("fps") {
		cfg.FPS = frameRate
	}
	if flags.Changed("gallery") {
		cfg.Gallery = gallery
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if flags.Changed("metrics-addr") {
		cfg.MetricsAddr = metricsAddr
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if !flags.Changed("log-level") && cfg.LogLevel != "" {
		if lvl, err := log.ParseLevel(cfg.LogLevel); err == nil {
			logger.SetLevel(lvl)
		}
	}
	return cfg, nil
}

// build assembles generator and renderer, reporting a rejected seed.
func build(cfg *config.Config) (*noise.Generator, *render.Renderer, error) {
	gen, r, err := cfg.Build()
	if errors.Is(err, rng.ErrInvalidSeed) {
		logger.Warn("invalid seed, using default", "err", err, "seed", rng.DefaultSeed)
		err = nil
	}
	return gen, r, err
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	gen, r, err := build(cfg)
	if err != nil {
		return err
	}

	host := term.NewHost(term.DefaultLogLines)
	d, err := anim.New(host, gen, r, cfg.AnimConfig())
	if err != nil {
		return err
	}

	if cfg.MetricsAddr != "" {
		srv, err := serveMetrics(cfg.MetricsAddr, d)
		if err != nil {
			return err
		}
		defer srv.Close()
	}

	m, err := term.NewModel(d, host, cfg.FPS)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

// serveMetrics registers a collector on d and serves it in the background.
func serveMetrics(addr string, d *anim.Driver) (*http.Server, error) {
	reg := prometheus.NewRegistry()
	col := metrics.NewCollector()
	if err := col.Register(reg); err != nil {
		return nil, err
	}
	d.AddObserver(col)

	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler(reg))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", "addr", addr, "err", err)
		}
	}()
	logger.Debug("serving metrics", "addr", addr)
	return srv, nil
}

func runFrame(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	gen, r, err := build(cfg)
	if err != nil {
		return err
	}

	ac := cfg.AnimConfig()
	ac.Gallery = false
	host := memhost.New().WithLogger(logger)
	d, err := anim.New(host, gen, r, ac)
	if err != nil {
		return err
	}
	if err := d.ResetCanvas(); err != nil {
		return err
	}
	for i := 0; i < ticks; i++ {
		if err := d.Tick(); err != nil {
			return err
		}
	}

	c, _ := host.Canvas(ac.Canvas)
	fmt.Print(term.BlitString(c.Pix, c.Width, c.Height))
	logger.Debug("frame", "seed", d.Seed(), "t", d.Time(), "palette", r.Options().Palette)
	return nil
}

func runPlot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	gen, _, err := build(cfg)
	if err != nil {
		return err
	}

	if plotSamples <= 0 {
		return fmt.Errorf("nothing to plot: %d samples", plotSamples)
	}

	var data []float64
	var caption string
	if oneD {
		data = analysis.Line1D(gen.Line(), 1.0/128, plotSamples)
		caption = fmt.Sprintf("1d noise, seed %s", gen.Seed())
	} else {
		data = analysis.Row(gen, rowY, cfg.Scale, plotSamples)
		caption = fmt.Sprintf("%s row y=%.2f, seed %s", gen.Engine(), rowY, gen.Seed())
	}
	graph := asciigraph.Plot(data,
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption(caption),
	)
	fmt.Println(graph)
	return nil
}

func runSample(cmd *cobra.Command, args []string) error {
	x, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("x: %w", err)
	}
	y, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("y: %w", err)
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	gen, _, err := build(cfg)
	if err != nil {
		return err
	}

	v := gen.Sample(x, y)
	fmt.Printf("seed %s engine %s\n", gen.Seed(), gen.Engine())
	fmt.Printf("noise(%g, %g) = %.6f (level %d)\n", x, y, v, render.Level(v))
	return nil
}

func runSpectrum(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	gen, _, err := build(cfg)
	if err != nil {
		return err
	}
	if spectrumSamples < 2 {
		return fmt.Errorf("need at least 2 samples, got %d", spectrumSamples)
	}

	row := analysis.Row(gen, rowY, cfg.Scale, spectrumSamples)
	st := analysis.Summarize(row)
	ps := analysis.PowerSpectrum(row)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SAMPLES\tMIN\tMAX\tMEAN\tSTDDEV\tPEAK BIN")
	fmt.Fprintf(w, "%d\t%.4f\t%.4f\t%.4f\t%.4f\t%d\n", st.N, st.Min, st.Max, st.Mean, st.StdDev, analysis.PeakBin(ps))
	if err := w.Flush(); err != nil {
		return err
	}

	hist := analysis.Histogram(row, 16)
	counts := make([]float64, len(hist))
	for i, c := range hist {
		counts[i] = float64(c)
	}
	fmt.Println()
	fmt.Println(asciigraph.Plot(counts, asciigraph.Height(6), asciigraph.Caption("histogram over [-1, 1]")))
	fmt.Println()
	fmt.Println(asciigraph.Plot(ps, asciigraph.Height(10), asciigraph.Width(80), asciigraph.Caption("power spectrum")))
	return nil
}

func runBench(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	sizes := []int{64, 128, 256, 512}
	const frames = 20

	fmt.Printf("benchmarking %d frames per size\n\n", frames)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ENGINE\tSIZE\tTIME\tFRAMES/SEC\tMPIX/SEC")

	for _, name := range noise.NewRegistry().Names() {
		ec := *cfg
		ec.Engine = name
		gen, r, err := build(&ec)
		if err != nil {
			return err
		}
		for _, size := range sizes {
			stats := metrics.NewFrameStats()
			host := memhost.New()
			ac := ec.AnimConfig()
			ac.Width, ac.Height, ac.Gallery = size, size, false
			d, err := anim.New(host, gen, r, ac)
			if err != nil {
				return err
			}
			d.AddObserver(stats)

			start := time.Now()
			for i := 0; i < frames; i++ {
				if err := d.Tick(); err != nil {
					return err
				}
			}
			elapsed := time.Since(start)

			fps := float64(frames) / elapsed.Seconds()
			mpix := fps * float64(size*size) / 1e6
			fmt.Fprintf(w, "%s\t%dx%d\t%v\t%.1f\t%.2f\n",
				name, size, size, stats.MeanRenderTime(), fps, mpix)
		}
	}
	return w.Flush()
}

func runScript(cmd *cobra.Command, args []string) error {
	sc, err := script.Load(args[0])
	if err != nil {
		return err
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Info("running scenario", "name", sc.Name, "steps", len(sc.Steps))
	res, err := script.Run(ctx, sc, cfg, logger)
	if res != nil {
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "STEP\tSEED\tPHASE\tTIME\tFRAMES\tLUMA\tCHECKSUM")
		for _, s := range res.Steps {
			fmt.Fprintf(w, "%d\t%s\t%s\t%.3f\t%d\t%.1f\t%s\n",
				s.Index, s.Seed, s.Phase, s.Time, s.Frames, s.Luminance, script.FormatChecksum(s.Checksum))
		}
		if ferr := w.Flush(); ferr != nil && err == nil {
			err = ferr
		}
	}
	return err
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, err := script.SweepSeeds(ctx, cfg, args, sweepTicks)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INPUT\tSEED\tLUMA\tCHECKSUM")
	for i, r := range results {
		fmt.Fprintf(w, "%q\t%s\t%.1f\t%s\n", args[i], r.Seed, r.Luminance, script.FormatChecksum(r.Checksum))
	}
	if ferr := w.Flush(); ferr != nil && err == nil {
		err = ferr
	}
	return err
}
