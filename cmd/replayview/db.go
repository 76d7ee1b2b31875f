package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"
)

// DBCache maintains a DuckDB connection over the replay parquet files,
// reopened periodically so freshly flushed batches become visible.
type DBCache struct {
	roots       []string
	refreshRate time.Duration

	mu          sync.Mutex
	db          *sql.DB
	lastRefresh time.Time
}

func NewDBCache(roots []string, refreshRate time.Duration) *DBCache {
	return &DBCache{roots: roots, refreshRate: refreshRate}
}

// Get returns the cached connection, refreshing it if stale.
func (c *DBCache) Get() (*sql.DB, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.db != nil && time.Since(c.lastRefresh) < c.refreshRate {
		return c.db, nil
	}
	return c.refreshLocked()
}

func (c *DBCache) refreshLocked() (*sql.DB, error) {
	start := time.Now()
	newDB, err := openDuckDBWithGlobs(c.roots)
	if err != nil {
		return nil, err
	}
	if c.db != nil {
		_ = c.db.Close()
	}
	c.db = newDB
	c.lastRefresh = time.Now()
	slog.Debug("db cache refreshed", "took", time.Since(start))
	return c.db, nil
}

func (c *DBCache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.db == nil {
		return nil
	}
	err := c.db.Close()
	c.db = nil
	return err
}

// openDuckDBWithGlobs opens an in-memory DuckDB with a `ticks` view over
// every parquet file under the roots. Glob matching is far faster than
// enumerating files ourselves, and skips the tmp/ staging files because
// those carry a .tmp suffix.
func openDuckDBWithGlobs(roots []string) (*sql.DB, error) {
	db, err := sql.Open("duckdb", ":memory:")
	if err != nil {
		return nil, err
	}
	_, _ = db.Exec("PRAGMA threads=4")

	globs := make([]string, 0, len(roots))
	for _, root := range roots {
		root = strings.TrimSpace(root)
		if root == "" {
			continue
		}
		glob := filepath.Join(root, "**", "*.parquet")
		globs = append(globs, "'"+escapeSQLString(glob)+"'")
	}

	if len(globs) == 0 {
		_, err := db.Exec(`CREATE OR REPLACE VIEW ticks AS
			SELECT
				NULL::VARCHAR AS round_id,
				NULL::INTEGER AS tick,
				NULL::INTEGER AS cols,
				NULL::INTEGER AS rows,
				NULL::INTEGER AS difficulty,
				NULL::VARCHAR AS state,
				NULL::INTEGER AS food_x,
				NULL::INTEGER AS food_y,
				NULL AS snakes
			WHERE false`)
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("create empty view: %w", err)
		}
		return db, nil
	}

	sqlText := `CREATE OR REPLACE VIEW ticks AS
		SELECT * FROM read_parquet([` + strings.Join(globs, ",") + `], union_by_name=true)`
	if _, err := db.Exec(sqlText); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create ticks view: %w", err)
	}
	return db, nil
}

func escapeSQLString(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

// queryRounds builds one summary per recorded round from its last tick row
// plus a per-round tick count.
func queryRounds(ctx context.Context, db *sql.DB) ([]RoundSummary, error) {
	counts := map[string]int64{}
	rows, err := db.QueryContext(ctx,
		`SELECT round_id, COUNT(*) FROM ticks GROUP BY round_id`)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var id string
		var n int64
		if err := rows.Scan(&id, &n); err != nil {
			rows.Close()
			return nil, err
		}
		counts[id] = n
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	last, err := db.QueryContext(ctx,
		`SELECT round_id, tick, cols, rows, difficulty, state, snakes
		 FROM ticks
		 QUALIFY tick = MAX(tick) OVER (PARTITION BY round_id)`)
	if err != nil {
		return nil, err
	}
	defer last.Close()

	out := make([]RoundSummary, 0, len(counts))
	for last.Next() {
		var s RoundSummary
		var snakesAny any
		if err := last.Scan(&s.RoundID, new(int32), &s.Cols, &s.Rows, &s.Difficulty, &s.FinalState, &snakesAny); err != nil {
			return nil, err
		}
		s.Ticks = counts[s.RoundID]
		snakes := asFrameSnakes(snakesAny)
		for _, sn := range snakes {
			switch sn.Name {
			case "player":
				s.PlayerScore = sn.Score
			case "ai":
				s.AIScore = sn.Score
			}
		}
		s.Outcome = outcomeOf(snakes, s.FinalState)
		out = append(out, s)
	}
	if err := last.Err(); err != nil {
		return nil, err
	}

	sort.Slice(out, func(i, j int) bool { return out[i].RoundID < out[j].RoundID })
	return out, nil
}

func outcomeOf(snakes []FrameSnake, finalState string) string {
	if finalState != "over" {
		return "abandoned"
	}
	var playerAlive, aiAlive bool
	for _, sn := range snakes {
		switch sn.Name {
		case "player":
			playerAlive = sn.Alive
		case "ai":
			aiAlive = sn.Alive
		}
	}
	switch {
	case !playerAlive && !aiAlive:
		return "draw"
	case !playerAlive:
		return "ai"
	default:
		return "player"
	}
}

// queryFrames loads every tick of one round in order.
func queryFrames(ctx context.Context, db *sql.DB, roundID string) ([]Frame, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT round_id, tick, cols, rows, difficulty, state, food_x, food_y, snakes
		 FROM ticks
		 WHERE round_id = ?
		 ORDER BY tick ASC`, roundID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	frames := make([]Frame, 0, 256)
	for rows.Next() {
		var f Frame
		var snakesAny any
		if err := rows.Scan(&f.RoundID, &f.Tick, &f.Cols, &f.Rows, &f.Difficulty,
			&f.State, &f.Food.X, &f.Food.Y, &snakesAny); err != nil {
			return nil, err
		}
		f.Snakes = asFrameSnakes(snakesAny)
		frames = append(frames, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return frames, nil
}
