// Package store records finished game ticks to parquet replay files and
// reads them back. One TickRow per simulation step; one round is the run of
// rows sharing a round_id. Files are written into a tmp/ subdirectory and
// renamed into place so readers never observe a partial file.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"

	"github.com/jonathandrl24/Multiplayer-Snake-Game/game"
)

// ReplaySnake is one snake's state within a TickRow.
type ReplaySnake struct {
	Name    string  `parquet:"name,dict"`
	Alive   bool    `parquet:"alive"`
	Score   int32   `parquet:"score"`
	Heading string  `parquet:"heading,dict"`
	BodyX   []int32 `parquet:"body_x"`
	BodyY   []int32 `parquet:"body_y"`
}

// TickRow is a single (round, tick) snapshot. Body coordinates are stored as
// parallel column arrays, which compresses far better than nested points.
type TickRow struct {
	RoundID    string        `parquet:"round_id,dict"`
	Tick       int32         `parquet:"tick"`
	Cols       int32         `parquet:"cols"`
	Rows       int32         `parquet:"rows"`
	Difficulty int32         `parquet:"difficulty"`
	State      string        `parquet:"state,dict"`
	FoodX      int32         `parquet:"food_x"`
	FoodY      int32         `parquet:"food_y"`
	Snakes     []ReplaySnake `parquet:"snakes"`
}

// RowFromSnapshot flattens one simulation snapshot into a TickRow.
func RowFromSnapshot(roundID string, cfg game.Config, snap game.Snapshot) TickRow {
	return TickRow{
		RoundID:    roundID,
		Tick:       int32(snap.Tick),
		Cols:       int32(cfg.Cols),
		Rows:       int32(cfg.Rows),
		Difficulty: int32(snap.Difficulty),
		State:      snap.State.String(),
		FoodX:      int32(snap.Food.X),
		FoodY:      int32(snap.Food.Y),
		Snakes: []ReplaySnake{
			replaySnake("player", snap.Player),
			replaySnake("ai", snap.AI),
		},
	}
}

func replaySnake(name string, s game.SnakeSnapshot) ReplaySnake {
	xs := make([]int32, len(s.Body))
	ys := make([]int32, len(s.Body))
	for i, p := range s.Body {
		xs[i] = int32(p.X)
		ys[i] = int32(p.Y)
	}
	return ReplaySnake{
		Name:    name,
		Alive:   s.Alive,
		Score:   int32(s.Score),
		Heading: s.Heading.String(),
		BodyX:   xs,
		BodyY:   ys,
	}
}

// WriteReplayParquet writes rows to outPath via a tmp file and atomic rename.
func WriteReplayParquet(outPath string, rows []TickRow) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	tmpPath := outPath + ".tmp"
	_ = os.Remove(tmpPath)

	if err := parquet.WriteFile(tmpPath, rows,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
		parquet.KeyValueMetadata("schema", "replay_tick_v1"),
	); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write parquet: %w", err)
	}

	if err := os.Rename(tmpPath, outPath); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename parquet: %w", err)
	}
	return nil
}

// WriteReplayBatchAtomic writes rows as a new batch file in outDir, staging
// it under outDir/tmp first. The final path is returned.
func WriteReplayBatchAtomic(outDir string, rows []TickRow) (string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	tmpDir := filepath.Join(outDir, "tmp")
	if err := os.MkdirAll(tmpDir, 0o755); err != nil {
		return "", fmt.Errorf("create tmp dir: %w", err)
	}

	name := fmt.Sprintf("replay_%d.parquet", time.Now().UnixNano())
	finalPath := filepath.Join(outDir, name)
	tmpPath := filepath.Join(tmpDir, name+".tmp")
	_ = os.Remove(tmpPath)

	if err := parquet.WriteFile(tmpPath, rows,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
		parquet.KeyValueMetadata("schema", "replay_tick_v1"),
	); err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("write parquet: %w", err)
	}

	if err := os.Rename(tmpPath, finalPath); err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("rename parquet: %w", err)
	}
	return finalPath, nil
}

// ReadReplayFile loads every tick row from one replay batch file.
func ReadReplayFile(path string) ([]TickRow, error) {
	rows, err := parquet.ReadFile[TickRow](path)
	if err != nil {
		return nil, fmt.Errorf("read parquet %s: %w", path, err)
	}
	return rows, nil
}
