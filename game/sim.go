package game

import (
	"math/rand"
	"time"
)

// RoundState is the lifecycle state of the current round.
type RoundState uint8

const (
	StateMenu RoundState = iota
	StatePlaying
	StatePaused
	StateOver
)

func (r RoundState) String() string {
	switch r {
	case StateMenu:
		return "menu"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateOver:
		return "over"
	default:
		return "unknown"
	}
}

// Simulation owns the whole duel: both snakes, the food, the particle pool,
// the difficulty setting, and the round state machine. It is constructed
// once per session and driven from a single goroutine; commands arriving in
// a state where they make no sense are silent no-ops.
type Simulation struct {
	// OnStep, when set, is invoked after every completed game step with a
	// copied snapshot. Used by the replay recorder; the callback must not
	// block for long since it runs on the simulation's goroutine.
	OnStep func(Snapshot)

	cfg    Config
	rng    *rand.Rand
	decide Decider

	state      RoundState
	difficulty int
	tick       uint64
	stepTimer  float64

	player *Snake
	ai     *Snake
	food   Point

	particles []Particle
	effects   []Effect

	highScore    int
	roundsPlayed int
}

// NewSimulation builds a session-long simulation in the Menu state at NORMAL
// difficulty. A nil rng is seeded from the clock; a nil decider keeps the AI
// on its current heading (useful for pure movement tests).
func NewSimulation(cfg Config, decide Decider, rng *rand.Rand) *Simulation {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if decide == nil {
		decide = func(v View, _ float64) Direction { return v.AI.Heading }
	}
	s := &Simulation{
		cfg:        cfg,
		rng:        rng,
		decide:     decide,
		state:      StateMenu,
		difficulty: 2,
	}
	s.resetRound()
	return s
}

// Config returns the fixed tuning values of this simulation.
func (s *Simulation) Config() Config {
	return s.cfg
}

// State returns the current round state.
func (s *Simulation) State() RoundState {
	return s.state
}

// CurrentDifficulty returns the active preset.
func (s *Simulation) CurrentDifficulty() Difficulty {
	return Difficulties[s.difficulty]
}

// SetDifficulty switches presets. Levels outside the fixed table are
// ignored. Accepted in every state; a mid-round change takes effect on the
// next step interval computation.
func (s *Simulation) SetDifficulty(level int) {
	if _, ok := Difficulties[level]; ok {
		s.difficulty = level
	}
}

// Start begins the first round from the menu.
func (s *Simulation) Start() {
	if s.state == StateMenu {
		s.resetRound()
		s.state = StatePlaying
	}
}

// Pause suspends a running round.
func (s *Simulation) Pause() {
	if s.state == StatePlaying {
		s.state = StatePaused
	}
}

// Resume continues a paused round.
func (s *Simulation) Resume() {
	if s.state == StatePaused {
		s.state = StatePlaying
	}
}

// Restart abandons the current round and starts a fresh one. The session
// high score and round counter survive.
func (s *Simulation) Restart() {
	if s.state == StatePlaying || s.state == StatePaused || s.state == StateOver {
		s.noteHighScore()
		s.resetRound()
		s.state = StatePlaying
	}
}

// RequestPlayerDirection queues the player's next heading. Only meaningful
// while playing; reversals are dropped by the snake itself.
func (s *Simulation) RequestPlayerDirection(d Direction) {
	if s.state == StatePlaying {
		s.player.RequestDirection(d)
	}
}

// PlaceFood moves the food to p, replacing the randomly spawned one. It
// reports false and leaves the food alone if p is off the board or occupied
// by either snake. Intended for scripted demos and deterministic tests.
func (s *Simulation) PlaceFood(p Point) bool {
	if p.X < 0 || p.X >= s.cfg.Cols || p.Y < 0 || p.Y >= s.cfg.Rows {
		return false
	}
	if s.player.Occupies(p) || s.ai.Occupies(p) {
		return false
	}
	s.food = p
	return true
}

// Advance moves the simulation forward by dt seconds of wall time.
//
// Particles age every frame in every state so bursts finish animating on
// the pause and game-over screens. Grid logic only runs while playing: the
// step timer accumulates dt and fires one discrete game step per elapsed
// step interval, catching up with multiple steps after a slow frame.
func (s *Simulation) Advance(dt float64) {
	s.updateParticles()
	if s.state != StatePlaying {
		return
	}

	interval := 1.0 / s.CurrentDifficulty().StepsPerSecond
	s.stepTimer += dt
	for s.stepTimer >= interval {
		s.stepTimer -= interval
		s.gameStep()
		if s.state != StatePlaying {
			break
		}
	}
}

// gameStep advances the grid by one tick. The phase order is load-bearing:
// AI decision on the pre-move state, both snakes move, cross-collision on
// the post-move state, food pickup, round-end check.
func (s *Simulation) gameStep() {
	s.tick++

	d := s.decide(s.view(), s.CurrentDifficulty().MistakeChance)
	s.ai.RequestDirection(d)

	s.player.Step(s.cfg.Cols, s.cfg.Rows)
	s.ai.Step(s.cfg.Cols, s.cfg.Rows)

	if s.player.Alive && s.ai.Alive {
		ph, ah := s.player.Head(), s.ai.Head()
		switch {
		case ph == ah:
			s.player.Kill()
			s.ai.Kill()
		case s.ai.Occupies(ph) && ph != s.ai.Head():
			s.player.Kill()
		case s.player.Occupies(ah) && ah != s.player.Head():
			s.ai.Kill()
		}
	}

	for _, sn := range []*Snake{s.player, s.ai} {
		if sn.Alive && sn.HeadAt(s.food) {
			sn.Eat(s.cfg.GrowOnEat)
			s.burst(s.food, TintFood, s.cfg.FoodBurstCount)
			if p, ok := s.spawnFood(); ok {
				s.food = p
			}
			// Only one snake eats per tick.
			break
		}
	}

	if !s.player.Alive || !s.ai.Alive {
		// Burst at every dead head, not just one of them.
		if !s.player.Alive {
			s.burst(s.player.Head(), TintPlayer, s.cfg.DeathBurstCount)
		}
		if !s.ai.Alive {
			s.burst(s.ai.Head(), TintAI, s.cfg.DeathBurstCount)
		}
		s.noteHighScore()
		s.roundsPlayed++
		s.state = StateOver
	}

	if s.OnStep != nil {
		s.OnStep(s.makeSnapshot(false))
	}
}

// view builds the read-only pre-move snapshot handed to the AI.
func (s *Simulation) view() View {
	return View{
		Cols:   s.cfg.Cols,
		Rows:   s.cfg.Rows,
		AI:     s.ai.view(),
		Player: s.player.view(),
		Food:   s.food,
	}
}

// Snapshot copies the complete state for one rendered frame and drains the
// pending effect notifications.
func (s *Simulation) Snapshot() Snapshot {
	return s.makeSnapshot(true)
}

func (s *Simulation) makeSnapshot(drainEffects bool) Snapshot {
	snap := Snapshot{
		State:        s.state,
		Difficulty:   s.difficulty,
		Tick:         s.tick,
		Player:       snapshotSnake(s.player),
		AI:           snapshotSnake(s.ai),
		Food:         s.food,
		HighScore:    s.highScore,
		RoundsPlayed: s.roundsPlayed,
	}
	if len(s.particles) > 0 {
		snap.Particles = make([]Particle, len(s.particles))
		copy(snap.Particles, s.particles)
	}
	if drainEffects && len(s.effects) > 0 {
		snap.Effects = s.effects
		s.effects = nil
	}
	return snap
}

func (s *Simulation) noteHighScore() {
	if s.player != nil && s.player.Score > s.highScore {
		s.highScore = s.player.Score
	}
}

func (s *Simulation) resetRound() {
	s.player = NewSnake(Point{X: s.cfg.Cols / 4, Y: s.cfg.Rows / 2}, Right)
	s.ai = NewSnake(Point{X: 3 * s.cfg.Cols / 4, Y: s.cfg.Rows / 2}, Left)
	if p, ok := s.spawnFood(); ok {
		s.food = p
	}
	s.particles = nil
	s.effects = nil
	s.stepTimer = 0
	s.tick = 0
}
