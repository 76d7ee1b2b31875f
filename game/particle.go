package game

import "math"

// EffectKind labels a burst notification.
type EffectKind uint8

const (
	EffectFoodBurst EffectKind = iota
	EffectDeathBurst
)

// Tint tells the renderer which palette entry a particle or burst belongs
// to; the simulation knows nothing about actual colors.
type Tint uint8

const (
	TintFood Tint = iota
	TintPlayer
	TintAI
)

// Effect is a one-shot notification that a burst happened this tick. The
// particles themselves are spawned alongside; the effect exists so renderers
// can react discretely (flash a message, play a sound) without diffing
// particle lists.
type Effect struct {
	Kind  EffectKind
	Cell  Point
	Tint  Tint
	Count int
}

// Particle is a decorative fragment in cell-space float coordinates. The
// simulation ages them every Advance call in every round state so bursts
// finish playing out on the pause and game-over screens.
type Particle struct {
	X, Y   float64
	VX, VY float64
	Life   float64
	Decay  float64
	Size   int
	Tint   Tint
}

// Alive reports whether the particle still has life left.
func (p Particle) Alive() bool {
	return p.Life > 0
}

func (s *Simulation) burst(cell Point, tint Tint, count int) {
	s.effects = append(s.effects, Effect{
		Kind:  burstKind(tint),
		Cell:  cell,
		Tint:  tint,
		Count: count,
	})

	cx := float64(cell.X) + 0.5
	cy := float64(cell.Y) + 0.5
	for i := 0; i < count; i++ {
		angle := s.rng.Float64() * 2 * math.Pi
		speed := 0.15 + s.rng.Float64()*0.30
		s.particles = append(s.particles, Particle{
			X:     cx,
			Y:     cy,
			VX:    math.Cos(angle) * speed,
			VY:    math.Sin(angle) * speed,
			Life:  1.0,
			Decay: 0.03 + s.rng.Float64()*0.04,
			Size:  1 + s.rng.Intn(2),
			Tint:  tint,
		})
	}
}

func burstKind(tint Tint) EffectKind {
	if tint == TintFood {
		return EffectFoodBurst
	}
	return EffectDeathBurst
}

func (s *Simulation) updateParticles() {
	live := s.particles[:0]
	for i := range s.particles {
		p := &s.particles[i]
		p.X += p.VX
		p.Y += p.VY
		p.VX *= 0.90
		p.VY *= 0.90
		p.Life -= p.Decay
		if p.Alive() {
			live = append(live, *p)
		}
	}
	s.particles = live
}
