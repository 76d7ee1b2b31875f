package game

import (
	"math/rand"
	"strings"
	"testing"
)

func newTestSim(t *testing.T, cols, rows int, seed int64) *Simulation {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Cols = cols
	cfg.Rows = rows
	return NewSimulation(cfg, nil, rand.New(rand.NewSource(seed)))
}

// dumpBoard renders the grid for failure messages: P/p player head/body,
// A/a AI head/body, F food.
func dumpBoard(s *Simulation) string {
	var b strings.Builder
	for y := 0; y < s.cfg.Rows; y++ {
		for x := 0; x < s.cfg.Cols; x++ {
			p := Point{X: x, Y: y}
			switch {
			case s.player.HeadAt(p):
				b.WriteByte('P')
			case s.player.Occupies(p):
				b.WriteByte('p')
			case s.ai.HeadAt(p):
				b.WriteByte('A')
			case s.ai.Occupies(p):
				b.WriteByte('a')
			case s.food == p:
				b.WriteByte('F')
			default:
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func TestHeadOnCollisionKillsBoth(t *testing.T) {
	// 8x4 board puts the spawns at (2,2) heading right and (6,2) heading
	// left; with the default keep-heading decider the heads meet at (4,2)
	// on the second step.
	s := newTestSim(t, 8, 4, 1)
	s.Start()
	s.food = Point{X: 0, Y: 0}

	s.gameStep()
	s.gameStep()

	if s.player.Alive || s.ai.Alive {
		t.Fatalf("both snakes should be dead after head-on:\n%s", dumpBoard(s))
	}
	if s.state != StateOver {
		t.Fatalf("state = %v, want over", s.state)
	}
	if s.roundsPlayed != 1 {
		t.Fatalf("rounds played = %d, want 1", s.roundsPlayed)
	}

	var deaths int
	tints := map[Tint]bool{}
	for _, e := range s.effects {
		if e.Kind == EffectDeathBurst {
			deaths++
			tints[e.Tint] = true
		}
	}
	if deaths != 2 || !tints[TintPlayer] || !tints[TintAI] {
		t.Fatalf("effects = %+v, want one death burst per snake", s.effects)
	}
	if want := 2 * s.cfg.DeathBurstCount; len(s.particles) != want {
		t.Fatalf("particles = %d, want %d", len(s.particles), want)
	}
}

func TestPlayerIntoAIBodyDiesAlone(t *testing.T) {
	s := newTestSim(t, 8, 6, 1)
	s.Start()
	s.food = Point{X: 0, Y: 0}

	// AI runs down a column the player is about to cross.
	s.ai = &Snake{
		Body:    []Point{{X: 4, Y: 3}, {X: 4, Y: 2}, {X: 4, Y: 1}},
		Heading: Down,
		next:    Down,
		Alive:   true,
	}
	s.player = &Snake{
		Body:    []Point{{X: 3, Y: 2}},
		Heading: Right,
		next:    Right,
		Alive:   true,
	}

	s.gameStep()

	if s.player.Alive {
		t.Fatalf("player should die crossing the AI body:\n%s", dumpBoard(s))
	}
	if !s.ai.Alive {
		t.Fatalf("AI should survive:\n%s", dumpBoard(s))
	}
	if s.state != StateOver {
		t.Fatalf("state = %v, want over", s.state)
	}
	if len(s.effects) != 1 || s.effects[0].Tint != TintPlayer {
		t.Fatalf("effects = %+v, want a single player death burst", s.effects)
	}
}

func TestFoodPickupScoresAndRespawns(t *testing.T) {
	s := newTestSim(t, 10, 10, 1)
	s.Start()
	s.food = Point{X: 3, Y: 5}
	s.player = NewSnake(Point{X: 2, Y: 5}, Right)
	s.ai = NewSnake(Point{X: 8, Y: 1}, Left)

	s.gameStep()

	if s.player.Score != 1 {
		t.Fatalf("player score = %d, want 1", s.player.Score)
	}
	if s.player.GrowPending() != s.cfg.GrowOnEat {
		t.Fatalf("grow pending = %d, want %d", s.player.GrowPending(), s.cfg.GrowOnEat)
	}
	if s.food == (Point{X: 3, Y: 5}) {
		t.Fatal("food should respawn elsewhere after pickup")
	}
	if s.player.Occupies(s.food) || s.ai.Occupies(s.food) {
		t.Fatalf("food respawned on a snake:\n%s", dumpBoard(s))
	}
	if len(s.effects) != 1 || s.effects[0].Kind != EffectFoodBurst {
		t.Fatalf("effects = %+v, want a single food burst", s.effects)
	}
	if len(s.particles) != s.cfg.FoodBurstCount {
		t.Fatalf("particles = %d, want %d", len(s.particles), s.cfg.FoodBurstCount)
	}
}

func TestRestartKeepsSessionStats(t *testing.T) {
	s := newTestSim(t, 20, 20, 1)
	s.Start()
	s.player.Score = 5
	s.tick = 42

	s.Restart()

	if s.state != StatePlaying {
		t.Fatalf("state = %v, want playing", s.state)
	}
	if s.highScore != 5 {
		t.Fatalf("high score = %d, want 5 carried across restart", s.highScore)
	}
	if s.player.Score != 0 {
		t.Fatalf("player score = %d, want 0 after restart", s.player.Score)
	}
	if s.tick != 0 {
		t.Fatalf("tick = %d, want 0 after restart", s.tick)
	}
	if len(s.player.Body) != 1 || len(s.ai.Body) != 1 {
		t.Fatal("snakes should respawn as single cells")
	}
}

func TestAdvanceCatchesUpMissedSteps(t *testing.T) {
	s := newTestSim(t, 60, 40, 1)
	s.SetDifficulty(1) // 8 steps per second
	s.Start()
	s.food = Point{X: 0, Y: 0}

	s.Advance(1.0)

	if s.tick != 8 {
		t.Fatalf("tick = %d after one second at EASY, want 8", s.tick)
	}
}

func TestCommandsIgnoredOutsideTheirStates(t *testing.T) {
	s := newTestSim(t, 20, 20, 1)

	s.Pause()
	s.Resume()
	if s.state != StateMenu {
		t.Fatalf("state = %v, pause/resume should be no-ops in the menu", s.state)
	}

	s.RequestPlayerDirection(Down)
	if s.player.next != Right {
		t.Fatal("direction request should be ignored in the menu")
	}

	s.SetDifficulty(7)
	if s.difficulty != 2 {
		t.Fatalf("difficulty = %d, unknown levels should be ignored", s.difficulty)
	}
	s.SetDifficulty(3)
	if s.difficulty != 3 {
		t.Fatalf("difficulty = %d, want 3", s.difficulty)
	}

	s.Start()
	if s.state != StatePlaying {
		t.Fatalf("state = %v, want playing after start", s.state)
	}
	s.Start()
	if s.state != StatePlaying {
		t.Fatal("start should be a no-op while playing")
	}
}

func TestParticlesAgeWhilePaused(t *testing.T) {
	s := newTestSim(t, 20, 20, 1)
	s.Start()
	s.burst(Point{X: 5, Y: 5}, TintFood, 12)
	s.Pause()

	for i := 0; i < 100; i++ {
		s.Advance(0.05)
	}

	if len(s.particles) != 0 {
		t.Fatalf("particles = %d, bursts should finish aging while paused", len(s.particles))
	}
	if s.tick != 0 {
		t.Fatalf("tick = %d, grid must not advance while paused", s.tick)
	}
}

func TestSnapshotDrainsEffectsOnce(t *testing.T) {
	s := newTestSim(t, 20, 20, 1)
	s.Start()
	s.burst(Point{X: 5, Y: 5}, TintFood, 12)

	first := s.Snapshot()
	if len(first.Effects) != 1 {
		t.Fatalf("first snapshot effects = %d, want 1", len(first.Effects))
	}
	second := s.Snapshot()
	if len(second.Effects) != 0 {
		t.Fatalf("second snapshot effects = %d, want 0", len(second.Effects))
	}
}

func TestPlaceFoodRejectsOccupiedAndOffBoard(t *testing.T) {
	s := newTestSim(t, 20, 20, 1)
	s.Start()

	if s.PlaceFood(Point{X: -1, Y: 0}) {
		t.Fatal("off-board placement should be rejected")
	}
	if s.PlaceFood(s.player.Head()) {
		t.Fatal("placement on a snake should be rejected")
	}
	if !s.PlaceFood(Point{X: 1, Y: 1}) {
		t.Fatal("placement on a free cell should succeed")
	}
	if s.food != (Point{X: 1, Y: 1}) {
		t.Fatalf("food = %v, want (1,1)", s.food)
	}
}

func TestSpawnFoodNeverLandsOnSnakes(t *testing.T) {
	s := newTestSim(t, 6, 6, 1)
	s.Start()
	s.player = &Snake{
		Body:    []Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}, {X: 3, Y: 0}},
		Heading: Left, next: Left, Alive: true,
	}
	s.ai = &Snake{
		Body:    []Point{{X: 0, Y: 5}, {X: 1, Y: 5}, {X: 2, Y: 5}, {X: 3, Y: 5}},
		Heading: Left, next: Left, Alive: true,
	}

	for i := 0; i < 200; i++ {
		p, ok := s.spawnFood()
		if !ok {
			t.Fatal("spawn should succeed with free cells available")
		}
		if s.player.Occupies(p) || s.ai.Occupies(p) {
			t.Fatalf("spawned food on a snake at %v", p)
		}
	}
}

func TestSpawnFoodFullBoard(t *testing.T) {
	s := newTestSim(t, 2, 2, 1)
	s.Start()
	s.player = &Snake{
		Body:    []Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}},
		Heading: Up, next: Up, Alive: true,
	}
	s.ai = NewSnake(Point{X: 0, Y: 0}, Right) // overlaps, board still full

	if _, ok := s.spawnFood(); ok {
		t.Fatal("spawn should report no free cell on a full board")
	}
}
