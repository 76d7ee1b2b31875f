// Package tui is the terminal front end: a bubbletea program that maps key
// presses to simulation commands and draws one frame per tick from the
// simulation's snapshot. It never mutates simulation state directly beyond
// the documented command surface.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jonathandrl24/Multiplayer-Snake-Game/game"
)

// framesPerSecond is the render/input cadence. The simulation's own step
// rate comes from the difficulty preset; Advance catches up independently of
// this value.
const framesPerSecond = 30

// flashDuration is how long burst notifications stay on the status line.
const flashDuration = 900 * time.Millisecond

type frameMsg time.Time

func frameTick() tea.Cmd {
	return tea.Tick(time.Second/framesPerSecond, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// Model drives the game loop: one frameMsg per frame advances the
// simulation by the elapsed wall time and refreshes the rendered snapshot.
type Model struct {
	sim  *game.Simulation
	snap game.Snapshot

	lastFrame  time.Time
	termWidth  int
	termHeight int

	flash      string
	flashUntil time.Time
}

// New returns a model wrapping sim. The caller owns the simulation; the
// model is its only driver once the program runs.
func New(sim *game.Simulation) Model {
	return Model{
		sim:  sim,
		snap: sim.Snapshot(),
	}
}

func (m Model) Init() tea.Cmd {
	return frameTick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
		m.termHeight = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case frameMsg:
		now := time.Time(msg)
		dt := 0.0
		if !m.lastFrame.IsZero() {
			dt = now.Sub(m.lastFrame).Seconds()
		}
		m.lastFrame = now

		m.sim.Advance(dt)
		m.snap = m.sim.Snapshot()
		m.noteEffects(now)
		return m, frameTick()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	// Global keys work in every state.
	switch key {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "1", "2", "3", "4":
		m.sim.SetDifficulty(int(key[0] - '0'))
		return m, nil
	}

	switch m.snap.State {
	case game.StateMenu:
		if key == "enter" || key == " " {
			m.sim.Start()
		}

	case game.StatePlaying:
		if d, ok := directionKey(key); ok {
			m.sim.RequestPlayerDirection(d)
			break
		}
		switch key {
		case "p":
			m.sim.Pause()
		case "r":
			m.sim.Restart()
		}

	case game.StatePaused:
		switch key {
		case "p", " ":
			m.sim.Resume()
		case "r":
			m.sim.Restart()
		}

	case game.StateOver:
		if key == "r" || key == " " || key == "enter" {
			m.sim.Restart()
		}
	}
	return m, nil
}

func directionKey(key string) (game.Direction, bool) {
	switch key {
	case "up", "w":
		return game.Up, true
	case "down", "s":
		return game.Down, true
	case "left", "a":
		return game.Left, true
	case "right", "d":
		return game.Right, true
	default:
		return game.Up, false
	}
}

// noteEffects turns drained burst notifications into a short status-line
// flash. Rendering the particles themselves happens in View from the
// snapshot's particle list.
func (m *Model) noteEffects(now time.Time) {
	for _, e := range m.snap.Effects {
		switch e.Kind {
		case game.EffectFoodBurst:
			m.flash = "FOOD!"
		case game.EffectDeathBurst:
			m.flash = "CRASH!"
		}
		m.flashUntil = now.Add(flashDuration)
	}
	if m.flash != "" && now.After(m.flashUntil) {
		m.flash = ""
	}
}
