// Command snake runs the player-vs-AI snake duel in the terminal.
//
// The simulation, AI, and TUI are wired here: the AI decision function is
// handed to the simulation as a plain function value, and the bubbletea
// program owns the frame loop. Logs go to a file so they never corrupt the
// alternate screen; pass -record to keep parquet replays of finished rounds.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jonathandrl24/Multiplayer-Snake-Game/ai"
	"github.com/jonathandrl24/Multiplayer-Snake-Game/game"
	"github.com/jonathandrl24/Multiplayer-Snake-Game/logging"
	"github.com/jonathandrl24/Multiplayer-Snake-Game/store"
	"github.com/jonathandrl24/Multiplayer-Snake-Game/tui"
)

func main() {
	cols := flag.Int("cols", 60, "Board width in cells")
	rows := flag.Int("rows", 40, "Board height in cells")
	seed := flag.Int64("seed", 0, "RNG seed; 0 seeds from the clock")
	record := flag.Bool("record", false, "Record finished rounds to parquet replay files")
	recordDir := flag.String("record-dir", "data/replays", "Directory for replay batch files")
	flushRounds := flag.Int("record-flush-rounds", 5, "Finished rounds to buffer per replay flush")
	logPath := flag.String("log", "snake.log", "Log file path")
	flag.Parse()

	logFile, err := logging.SetupFile(*logPath, slog.LevelInfo)
	if err != nil {
		fmt.Fprintf(os.Stderr, "setup logging: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()

	cfg := game.DefaultConfig()
	cfg.Cols = *cols
	cfg.Rows = *rows

	s := *seed
	if s == 0 {
		s = time.Now().UnixNano()
	}
	// Separate streams for the simulation (food, particles) and the AI's
	// mistake rolls keep a given seed reproducible regardless of how often
	// either side draws.
	simRNG := rand.New(rand.NewSource(s))
	aiRNG := rand.New(rand.NewSource(s + 1))

	sim := game.NewSimulation(cfg, ai.New(aiRNG), simRNG)

	var rec *store.Recorder
	if *record {
		rec = store.NewRecorder(*recordDir, cfg, *flushRounds)
		sim.OnStep = rec.Observe
	}

	slog.Info("starting game",
		"cols", cfg.Cols, "rows", cfg.Rows, "seed", s, "record", *record)

	p := tea.NewProgram(tui.New(sim), tea.WithAltScreen())
	_, runErr := p.Run()

	if rec != nil {
		rec.Close()
	}
	if runErr != nil {
		slog.Error("program failed", "err", runErr)
		fmt.Fprintf(os.Stderr, "error: %v\n", runErr)
		os.Exit(1)
	}

	snap := sim.Snapshot()
	slog.Info("session over", "high_score", snap.HighScore, "rounds", snap.RoundsPlayed)
	fmt.Printf("best score %d over %d rounds\n", snap.HighScore, snap.RoundsPlayed)
}
