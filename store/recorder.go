package store

import (
	"log/slog"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/jonathandrl24/Multiplayer-Snake-Game/game"
)

// Recorder buffers per-tick snapshots off the simulation goroutine and
// flushes them to parquet batch files, one batch per flushRounds finished
// rounds. Observe is safe to install as the simulation's OnStep hook: it
// never blocks, dropping snapshots instead if the writer falls behind.
type Recorder struct {
	cfg         game.Config
	outDir      string
	flushRounds int

	ch      chan game.Snapshot
	done    chan struct{}
	dropped atomic.Int64
}

// NewRecorder starts the background writer. flushRounds <= 0 defaults to 1
// (flush after every round).
func NewRecorder(outDir string, cfg game.Config, flushRounds int) *Recorder {
	if flushRounds <= 0 {
		flushRounds = 1
	}
	r := &Recorder{
		cfg:         cfg,
		outDir:      outDir,
		flushRounds: flushRounds,
		ch:          make(chan game.Snapshot, 256),
		done:        make(chan struct{}),
	}
	go r.run()
	return r
}

// Observe enqueues one snapshot without blocking the simulation.
func (r *Recorder) Observe(snap game.Snapshot) {
	select {
	case r.ch <- snap:
	default:
		r.dropped.Add(1)
	}
}

// Dropped reports how many snapshots were discarded because the writer was
// behind.
func (r *Recorder) Dropped() int64 {
	return r.dropped.Load()
}

// Close stops intake, flushes whatever is buffered, and waits for the writer
// to finish. The Recorder must not be observed after Close.
func (r *Recorder) Close() {
	close(r.ch)
	<-r.done
}

func (r *Recorder) run() {
	defer close(r.done)

	var rows []TickRow
	var roundID string
	pendingRounds := 0

	flush := func() {
		if len(rows) == 0 {
			return
		}
		path, err := WriteReplayBatchAtomic(r.outDir, rows)
		if err != nil {
			slog.Error("replay flush failed", "rounds", pendingRounds, "rows", len(rows), "err", err)
		} else {
			slog.Info("replay flush ok", "path", path, "rounds", pendingRounds, "rows", len(rows))
		}
		rows = rows[:0]
		pendingRounds = 0
	}

	for snap := range r.ch {
		// Tick 1 is the first step of a fresh round, whether it follows a
		// game over or a mid-round restart.
		if snap.Tick == 1 || roundID == "" {
			roundID = uuid.NewString()
		}
		rows = append(rows, RowFromSnapshot(roundID, r.cfg, snap))

		if snap.State == game.StateOver {
			pendingRounds++
			roundID = ""
			if pendingRounds >= r.flushRounds {
				flush()
			}
		}
	}

	if len(rows) > 0 {
		pendingRounds++
		flush()
	}
	if n := r.dropped.Load(); n > 0 {
		slog.Warn("recorder dropped snapshots", "count", n)
	}
}
