// Package game implements the simulation core for the player-vs-AI snake
// duel: grid geometry, the two snake entities, food spawning, particle
// bursts, and the round state machine that advances everything one tick at
// a time.
//
// The package is UI-agnostic and single-owner: one goroutine drives a
// Simulation through its command methods and Advance, and everything handed
// outward (View, Snapshot) is a deep copy the caller may keep but must not
// expect to mutate the live state through.
//
// Coordinates are screen-style: (0,0) is the top-left cell and Up decreases Y.
package game

// Point is a grid cell coordinate.
type Point struct {
	X int
	Y int
}

// Add returns the cell one step from p in direction d.
func (p Point) Add(d Direction) Point {
	dx, dy := d.Delta()
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// Manhattan returns the L1 distance between two cells.
func (p Point) Manhattan(q Point) int {
	return abs(p.X-q.X) + abs(p.Y-q.Y)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// SnakeView is a read-only copy of one snake, as handed to the AI.
type SnakeView struct {
	Body    []Point // head-first
	Heading Direction
}

// Head returns the head cell. Body is never empty for a live view.
func (v SnakeView) Head() Point {
	return v.Body[0]
}

// Occupies reports whether any body cell (head included) sits on p.
func (v SnakeView) Occupies(p Point) bool {
	for _, b := range v.Body {
		if b == p {
			return true
		}
	}
	return false
}

// View is the pre-move snapshot the AI decision procedure consumes each tick.
type View struct {
	Cols   int
	Rows   int
	AI     SnakeView
	Player SnakeView
	Food   Point
}

// InBounds reports whether p lies on the board.
func (v View) InBounds(p Point) bool {
	return p.X >= 0 && p.X < v.Cols && p.Y >= 0 && p.Y < v.Rows
}

// Decider chooses the AI snake's direction for the coming step from a
// pre-move view of the board. Implementations must not retain or mutate the
// view. The simulation calls through this function type so the AI package
// can depend on these plain value types without a cycle back into the
// simulation.
type Decider func(v View, mistakeChance float64) Direction

// SnakeSnapshot is the renderer-facing copy of one snake.
type SnakeSnapshot struct {
	Body        []Point
	Heading     Direction
	Score       int
	Alive       bool
	GrowPending int
}

// Snapshot captures the complete simulation state for one rendered frame.
// Everything in it is copied; the renderer never sees live state.
type Snapshot struct {
	State        RoundState
	Difficulty   int
	Tick         uint64
	Player       SnakeSnapshot
	AI           SnakeSnapshot
	Food         Point
	HighScore    int
	RoundsPlayed int
	Particles    []Particle
	// Effects holds the burst notifications emitted since the previous
	// snapshot was taken.
	Effects []Effect
}

func snapshotSnake(s *Snake) SnakeSnapshot {
	body := make([]Point, len(s.Body))
	copy(body, s.Body)
	return SnakeSnapshot{
		Body:        body,
		Heading:     s.Heading,
		Score:       s.Score,
		Alive:       s.Alive,
		GrowPending: s.growPending,
	}
}
