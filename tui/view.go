package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jonathandrl24/Multiplayer-Snake-Game/game"
)

var (
	playerStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("48"))
	playerHeadStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("84")).Bold(true)
	aiStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("204"))
	aiHeadStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("211")).Bold(true)
	foodStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("221")).Bold(true)
	dimStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	overlayStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Bold(true)
	flashStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("221")).Bold(true)

	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("147"))
	boardStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("60"))
)

func particleStyle(t game.Tint) lipgloss.Style {
	switch t {
	case game.TintPlayer:
		return playerStyle
	case game.TintAI:
		return aiStyle
	default:
		return foodStyle
	}
}

func (m Model) View() string {
	cfg := m.sim.Config()

	if m.termWidth > 0 && (m.termWidth < cfg.Cols+2 || m.termHeight < cfg.Rows+4) {
		return dimStyle.Render(fmt.Sprintf(
			"terminal too small: need at least %dx%d, have %dx%d",
			cfg.Cols+2, cfg.Rows+4, m.termWidth, m.termHeight))
	}

	var b strings.Builder
	b.WriteString(renderHeader(m.snap))
	b.WriteString("\n")
	b.WriteString(boardStyle.Render(renderBoard(cfg, m.snap)))
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func renderHeader(snap game.Snapshot) string {
	diff := game.Difficulties[snap.Difficulty]
	return headerStyle.Render(fmt.Sprintf(
		" SNAKE DUEL   you %d   ai %d   best %d   %s   round %d",
		snap.Player.Score, snap.AI.Score, snap.HighScore,
		diff.Label, snap.RoundsPlayed+1))
}

// renderBoard paints the grid one styled character per cell: particles under
// everything, then food, bodies, and heads on top, with the state overlay
// text written into the middle rows last.
func renderBoard(cfg game.Config, snap game.Snapshot) string {
	grid := make([][]string, cfg.Rows)
	for y := range grid {
		grid[y] = make([]string, cfg.Cols)
		for x := range grid[y] {
			grid[y][x] = " "
		}
	}

	put := func(p game.Point, s string) {
		if p.X >= 0 && p.X < cfg.Cols && p.Y >= 0 && p.Y < cfg.Rows {
			grid[p.Y][p.X] = s
		}
	}

	for _, pt := range snap.Particles {
		cell := game.Point{X: int(pt.X), Y: int(pt.Y)}
		ch := "·"
		if pt.Size > 1 {
			ch = "•"
		}
		put(cell, particleStyle(pt.Tint).Render(ch))
	}

	put(snap.Food, foodStyle.Render("●"))

	for i := len(snap.Player.Body) - 1; i >= 1; i-- {
		put(snap.Player.Body[i], playerStyle.Render("█"))
	}
	for i := len(snap.AI.Body) - 1; i >= 1; i-- {
		put(snap.AI.Body[i], aiStyle.Render("█"))
	}
	if len(snap.Player.Body) > 0 {
		put(snap.Player.Body[0], playerHeadStyle.Render("█"))
	}
	if len(snap.AI.Body) > 0 {
		put(snap.AI.Body[0], aiHeadStyle.Render("█"))
	}

	writeOverlay(grid, cfg, overlayLines(snap))

	rows := make([]string, cfg.Rows)
	for y := range grid {
		rows[y] = strings.Join(grid[y], "")
	}
	return strings.Join(rows, "\n")
}

func overlayLines(snap game.Snapshot) []string {
	switch snap.State {
	case game.StateMenu:
		lines := []string{
			"S N A K E   D U E L",
			"",
			"you against the machine",
			"",
			"press ENTER to start",
			"",
		}
		for level := 1; level <= 4; level++ {
			marker := "  "
			if level == snap.Difficulty {
				marker = "> "
			}
			lines = append(lines, fmt.Sprintf("%s%d  %s", marker, level, game.Difficulties[level].Label))
		}
		return lines
	case game.StatePaused:
		return []string{"P A U S E D", "", "press P to resume"}
	case game.StateOver:
		return []string{
			"G A M E   O V E R",
			"",
			outcomeLine(snap),
			fmt.Sprintf("you %d · ai %d · best %d", snap.Player.Score, snap.AI.Score, snap.HighScore),
			"",
			"press R to play again",
		}
	default:
		return nil
	}
}

func outcomeLine(snap game.Snapshot) string {
	switch {
	case !snap.Player.Alive && !snap.AI.Alive:
		return "double knockout"
	case !snap.Player.Alive:
		return "the machine wins"
	default:
		return "you win"
	}
}

func writeOverlay(grid [][]string, cfg game.Config, lines []string) {
	if len(lines) == 0 {
		return
	}
	top := (cfg.Rows - len(lines)) / 2
	for i, line := range lines {
		y := top + i
		if y < 0 || y >= cfg.Rows {
			continue
		}
		x := (cfg.Cols - len(line)) / 2
		for j, r := range line {
			if x+j < 0 || x+j >= cfg.Cols {
				continue
			}
			grid[y][x+j] = overlayStyle.Render(string(r))
		}
	}
}

func (m Model) renderFooter() string {
	var help string
	switch m.snap.State {
	case game.StateMenu:
		help = " 1-4 difficulty · ENTER start · q quit"
	case game.StatePlaying:
		help = " arrows/wasd move · p pause · r restart · 1-4 difficulty · q quit"
	case game.StatePaused:
		help = " p resume · r restart · q quit"
	case game.StateOver:
		help = " r play again · 1-4 difficulty · q quit"
	}
	line := dimStyle.Render(help)
	if m.flash != "" {
		line += "   " + flashStyle.Render(m.flash)
	}
	return line
}
