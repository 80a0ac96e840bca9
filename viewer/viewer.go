package viewer

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/livemapsbm/livemapsbm/compute"
	"github.com/livemapsbm/livemapsbm/types"
)

// frameDelay is the fixed pacing between logical ticks. Playback is a
// round-robin over frame indexes, not a wall-clock reconstruction of the
// original message timing.
const frameDelay = 20 * time.Millisecond

// backgroundColor matches the map's neutral gray backdrop.
var backgroundColor = types.Color{R: 158.0 / 255.0, G: 158.0 / 255.0, B: 158.0 / 255.0, A: 1.0}

type tickMsg time.Time

// Model is the bubbletea program driving frame-indexed playback of the
// accumulated vehicle histories.
type Model struct {
	handler *compute.VehicleHandler
	canvas  *Canvas
	frame   int
	bound   int
}

// NewModel returns a playback model. bound is the frame index at which
// playback wraps back to zero; callers usually derive it from the
// longest vehicle timeline.
func NewModel(handler *compute.VehicleHandler, bound int) Model {
	if bound < 1 {
		bound = 1
	}
	return Model{
		handler: handler,
		canvas:  NewCanvas(80, 24),
		bound:   bound,
	}
}

// Init schedules the first tick.
func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(frameDelay, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update advances one frame per tick, clearing the canvas and drawing
// every vehicle that has a record at the current index.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.canvas.Resize(msg.Width, msg.Height)
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}
		return m, nil
	case tickMsg:
		m.canvas.Clear(backgroundColor)
		m.handler.Render(m.canvas, m.frame)
		m.frame++
		if m.frame >= m.bound {
			m.frame = 0
		}
		return m, tick()
	}
	return m, nil
}

// View renders the current frame.
func (m Model) View() string {
	return m.canvas.View()
}

// Run plays back the vehicle histories until the user quits.
func Run(handler *compute.VehicleHandler, bound int) error {
	_, err := tea.NewProgram(NewModel(handler, bound), tea.WithAltScreen()).Run()
	return err
}
