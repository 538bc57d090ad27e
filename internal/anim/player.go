// Package anim plays a rendered frame sequence in the terminal. The
// player owns a single renderer and steps it through its keys at a fixed
// rate, with pause, scrubbing and theme controls.
package anim

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/layerplot/internal/data"
	"github.com/san-kum/layerplot/internal/plot"
	"github.com/san-kum/layerplot/internal/style"
)

const historyCapacity = 600

var (
	figureStyle = lipgloss.NewStyle().Padding(1, 2)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

type TickMsg time.Time

// Model steps a renderer through its frame keys.
type Model struct {
	renderer plot.Renderer
	keys     []data.Key
	idx      int
	fps      int
	title    string

	running  bool
	showHelp bool
	view     string
	history  []float64
	err      error
}

// NewModel builds a player over an already constructed renderer. The
// first frame is drawn on Init.
func NewModel(r plot.Renderer, title string, fps int) Model {
	if fps <= 0 {
		fps = 30
	}
	return Model{
		renderer: r,
		keys:     sequenceKeys(r),
		idx:      -1,
		fps:      fps,
		title:    title,
		running:  true,
		history:  make([]float64, 0, historyCapacity),
	}
}

func sequenceKeys(r plot.Renderer) []data.Key {
	if seq := r.Sequence(); seq != nil {
		return seq.Keys()
	}
	return nil
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "n", "]":
			m.running = false
			m.step(1)
		case "p", "[":
			m.running = false
			m.step(-1)
		case "r":
			m.idx = -1
			m.history = m.history[:0]
			m.step(1)
		case "t":
			names := style.ThemeNames()
			for i, name := range names {
				if name == style.CurrentTheme.Name {
					style.SetTheme(names[(i+1)%len(names)])
					break
				}
			}
			m.redraw()
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running {
			m.step(1)
		}
		return m, m.tick()
	}
	return m, nil
}

// step moves the play head by dir frames, wrapping at either end.
func (m *Model) step(dir int) {
	if len(m.keys) == 0 {
		return
	}
	m.idx = (m.idx + dir + len(m.keys)) % len(m.keys)
	key := m.keys[m.idx]
	if m.idx == 0 && m.err == nil && dir > 0 {
		// first frame comes from Render, later ones from Update
		if _, err := m.renderer.Render(nil); err != nil && !errors.Is(err, plot.ErrAlreadyRendered) {
			m.err = err
			return
		}
	}
	if err := m.renderer.Update(key, nil); err != nil {
		m.err = err
		return
	}
	m.record(key)
	m.redraw()
}

func (m *Model) redraw() {
	if fig := m.renderer.Handles().Figure; fig != nil {
		m.view = fig.Render()
	}
}

// record tracks the frame's vertical midpoint for the progress chart.
func (m *Model) record(key data.Key) {
	seq := m.renderer.Sequence()
	if seq == nil {
		return
	}
	frame, ok := seq.Get(key)
	if !ok || frame == nil {
		return
	}
	lo, hi := frame.Range(1)
	if math.IsNaN(lo) || math.IsNaN(hi) {
		return
	}
	m.history = append(m.history, (lo+hi)/2)
	if len(m.history) > historyCapacity {
		m.history = m.history[1:]
	}
}

func (m Model) View() string {
	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.title)) + "\n")

	status := "PLAYING"
	if !m.running {
		status = "PAUSED"
	}
	frame := m.idx + 1
	if frame < 1 {
		frame = 1
	}
	s.WriteString(statusStyle.Render(fmt.Sprintf("%s  frame %d/%d  theme %s",
		status, frame, len(m.keys), style.CurrentTheme.Name)) + "\n")

	if m.err != nil {
		s.WriteString(errStyle.Render("error: "+m.err.Error()) + "\n")
		return s.String()
	}
	s.WriteString(figureStyle.Render(m.view) + "\n")

	if len(m.history) > 1 {
		chart := asciigraph.Plot(m.history,
			asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("y midpoint"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}

	if m.showHelp {
		s.WriteString(helpStyle.Render(strings.Join([]string{
			"space  pause/resume",
			"n/]    next frame",
			"p/[    previous frame",
			"r      restart",
			"t      cycle themes",
			"q      quit",
		}, "\n")))
	} else {
		s.WriteString(helpStyle.Render("SP:Pause N/P:Step R:Restart T:Theme ?:Help Q:Quit"))
	}
	return s.String()
}

// Run starts the player on the alternate screen and blocks until quit.
func Run(r plot.Renderer, title string, fps int) error {
	p := tea.NewProgram(NewModel(r, title, fps), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
