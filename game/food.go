// food.go implements food placement for the duel board.

package game

// maxFoodTries bounds the rejection-sampling phase of spawnFood before we
// fall back to enumerating free cells.
const maxFoodTries = 128

// spawnFood picks a uniformly random cell not occupied by either snake.
//
// Rejection sampling is effectively instant while the board is mostly empty,
// which is always the case in practice. The enumeration fallback guards the
// pathological near-full board so the spawn can never spin forever; ok is
// false only when there is no free cell at all.
func (s *Simulation) spawnFood() (Point, bool) {
	for i := 0; i < maxFoodTries; i++ {
		p := Point{X: s.rng.Intn(s.cfg.Cols), Y: s.rng.Intn(s.cfg.Rows)}
		if !s.player.Occupies(p) && !s.ai.Occupies(p) {
			return p, true
		}
	}

	free := make([]Point, 0, s.cfg.Cols*s.cfg.Rows)
	for y := 0; y < s.cfg.Rows; y++ {
		for x := 0; x < s.cfg.Cols; x++ {
			p := Point{X: x, Y: y}
			if !s.player.Occupies(p) && !s.ai.Occupies(p) {
				free = append(free, p)
			}
		}
	}
	if len(free) == 0 {
		return Point{}, false
	}
	return free[s.rng.Intn(len(free))], true
}
