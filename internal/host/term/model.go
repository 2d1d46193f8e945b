package term

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/perlinlab/internal/anim"
	"github.com/san-kum/perlinlab/internal/metrics"
	"github.com/san-kum/perlinlab/internal/render"
)

const (
	historyCapacity = 120
	zoomFactor      = 1.25
	galleryColumns  = 3
)

type TickMsg time.Time

// Model drives an anim.Driver from bubbletea ticks and shows the term Host.
type Model struct {
	driver      *anim.Driver
	host        *Host
	stats       *metrics.FrameStats
	interval    time.Duration
	running     bool
	editing     bool
	input       string
	showGallery bool
	palettes    []string
	lumHistory  []float64
	err         error
}

// NewModel paints the first frame at time zero and returns a model ticking
// at fps frames per second.
func NewModel(d *anim.Driver, h *Host, fps int) (Model, error) {
	if fps <= 0 {
		fps = 30
	}
	stats := metrics.NewFrameStats()
	d.AddObserver(stats)
	if err := d.ResetCanvas(); err != nil {
		return Model{}, err
	}
	return Model{
		driver:     d,
		host:       h,
		stats:      stats,
		interval:   time.Second / time.Duration(fps),
		running:    true,
		palettes:   render.PaletteNames(),
		lumHistory: make([]float64, 0, historyCapacity),
	}, nil
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd { return m.tick() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.editing {
			return m.updateInput(msg), nil
		}
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.err = m.driver.ResetCanvas()
		case "s":
			m.editing = true
			m.input = ""
		case "p":
			m.cyclePalette()
		case "+", "=":
			m.zoom(1 / zoomFactor)
		case "-", "_":
			m.zoom(zoomFactor)
		case "g":
			if len(m.driver.Scenes()) > 0 {
				m.showGallery = !m.showGallery
			}
		}
	case TickMsg:
		if m.running {
			if err := m.driver.Tick(); err != nil {
				m.err = err
			} else {
				m.record()
			}
		}
		return m, m.tick()
	}
	return m, nil
}

func (m Model) updateInput(msg tea.KeyMsg) Model {
	switch msg.Type {
	case tea.KeyEnter:
		m.editing = false
		_, m.err = m.driver.ChangeSeed(m.input)
		m.lumHistory = m.lumHistory[:0]
	case tea.KeyEsc:
		m.editing = false
	case tea.KeyBackspace:
		if r := []rune(m.input); len(r) > 0 {
			m.input = string(r[:len(r)-1])
		}
	case tea.KeySpace:
		m.input += " "
	case tea.KeyRunes:
		m.input += string(msg.Runes)
	}
	return m
}

func (m *Model) cyclePalette() {
	cur := m.driver.Renderer().Options().Palette
	next := m.palettes[0]
	for i, name := range m.palettes {
		if name == cur {
			next = m.palettes[(i+1)%len(m.palettes)]
			break
		}
	}
	if m.err = m.driver.Renderer().SetPalette(next); m.err == nil {
		m.err = m.driver.Redraw()
	}
}

func (m *Model) zoom(factor float64) {
	r := m.driver.Renderer()
	r.SetScale(r.Options().Scale * factor)
	m.err = m.driver.Redraw()
}

func (m *Model) record() {
	m.lumHistory = append(m.lumHistory, m.stats.Value())
	if len(m.lumHistory) > historyCapacity {
		m.lumHistory = m.lumHistory[1:]
	}
}

func (m Model) View() string {
	var main string
	if m.showGallery {
		main = m.galleryView()
	} else {
		canvas, err := m.host.Render(m.driver.Config().Canvas)
		if err != nil {
			canvas = err.Error()
		}
		main = canvasStyle.Render(canvas)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, main, statsStyle.Render(m.statsView()))
}

func (m Model) statsView() string {
	d := m.driver
	opts := d.Renderer().Options()

	var s strings.Builder
	s.WriteString(headerStyle.Render(d.Config().Title) + "\n")
	if m.running {
		s.WriteString(statusRunning.Render(strings.ToUpper(d.Phase().String())) + "\n\n")
	} else {
		s.WriteString(statusPaused.Render("PAUSED") + "\n\n")
	}

	row := func(label, value string) {
		s.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("Seed", d.Seed().String())
	row("Engine", d.Generator().Engine())
	row("Time", fmt.Sprintf("%.2f", d.Time()))
	row("Frames", fmt.Sprintf("%d", d.Frames()))
	row("Palette", opts.Palette)
	row("Scale", fmt.Sprintf("1/%.1f", 1/opts.Scale))
	row("Render", m.stats.MeanRenderTime().Round(time.Microsecond).String())

	if len(m.lumHistory) > 1 {
		chart := asciigraph.Plot(m.lumHistory, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Luminance"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}

	if m.editing {
		s.WriteString("\n" + inputStyle.Render("seed> "+m.input+"_") + "\n")
	}
	if m.err != nil {
		s.WriteString("\n" + statusPaused.Render(m.err.Error()) + "\n")
	}
	for _, line := range m.host.Logs() {
		s.WriteString(logStyle.Render(line) + "\n")
	}

	s.WriteString(helpStyle.Render("SP:Pause R:Reset S:Seed Q:Quit\nP:Palette +/-:Zoom G:Gallery"))
	return s.String()
}

func (m Model) galleryView() string {
	var rows, cells []string
	for _, sc := range m.driver.Scenes() {
		img, err := m.host.Render(sc.Name)
		if err != nil {
			img = err.Error()
		}
		cells = append(cells, canvasStyle.Render(galleryTitle.Render(sc.Title)+"\n"+img))
		if len(cells) == galleryColumns {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
			cells = nil
		}
	}
	if len(cells) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// Running reports whether ticks advance the animation.
func (m Model) Running() bool { return m.running }

func (m Model) Editing() bool { return m.editing }

func (m Model) Err() error { return m.err }
