// Package ai implements the computer snake's per-tick decision procedure.
//
// The strategy, in order:
//
//  1. With probability mistakeChance, move randomly among the legal
//     directions. This is the difficulty knob: easier presets make the AI
//     fumble more often.
//  2. Otherwise run a breadth-first search from the AI head to the food,
//     treating only the AI's own body as blocked, and take the first step of
//     the shortest path found.
//  3. If the food is unreachable, fall back to the legal direction that
//     minimizes Manhattan distance to the food after the move.
//
// The opposing snake is intentionally not an obstacle in the search: the
// board it will occupy next tick is unknown at decision time, and the
// simulation resolves cross-snake collisions after both snakes have moved.
//
// Everything here is a pure function of the pre-move board view plus a
// random source, which keeps it trivially safe to call from anywhere the
// view is stable.
package ai

import (
	"math/rand"

	"github.com/jonathandrl24/Multiplayer-Snake-Game/game"
)

// New wraps Decide and rng into a game.Decider for the simulation.
func New(rng *rand.Rand) game.Decider {
	return func(v game.View, mistakeChance float64) game.Direction {
		return Decide(rng, v, mistakeChance)
	}
}

// Decide returns the direction the AI snake should take this tick.
func Decide(rng *rand.Rand, v game.View, mistakeChance float64) game.Direction {
	if rng.Float64() < mistakeChance {
		return randomLegal(rng, v)
	}
	if d, ok := pathToFood(v); ok {
		return d
	}
	return nearestLegal(v)
}

// isLegal reports whether d is immediately survivable: not a reversal, stays
// on the board, and does not land on the AI's own body.
func isLegal(v game.View, d game.Direction) bool {
	if d.IsOpposite(v.AI.Heading) {
		return false
	}
	n := v.AI.Head().Add(d)
	return v.InBounds(n) && !v.AI.Occupies(n)
}

// legalDirs collects the legal directions in scan order.
func legalDirs(v game.View) []game.Direction {
	out := make([]game.Direction, 0, 3)
	for _, d := range game.ScanOrder {
		if isLegal(v, d) {
			out = append(out, d)
		}
	}
	return out
}

// randomLegal picks uniformly among the legal directions. With nowhere legal
// to go the current heading is returned unchanged; the snake is boxed in and
// no choice can save it.
func randomLegal(rng *rand.Rand, v game.View) game.Direction {
	legal := legalDirs(v)
	if len(legal) == 0 {
		return v.AI.Heading
	}
	return legal[rng.Intn(len(legal))]
}

type pathNode struct {
	p     game.Point
	first game.Direction
}

// pathToFood runs a breadth-first search from the AI head to the food over
// the board with the AI's own body blocked, and returns the first direction
// of the shortest path. Neighbors expand in game.ScanOrder, which makes the
// winner among equal-length paths deterministic.
func pathToFood(v game.View) (game.Direction, bool) {
	idx := func(p game.Point) int { return p.Y*v.Cols + p.X }

	blocked := make([]bool, v.Cols*v.Rows)
	for _, b := range v.AI.Body {
		blocked[idx(b)] = true
	}
	visited := make([]bool, v.Cols*v.Rows)

	head := v.AI.Head()
	visited[idx(head)] = true

	// A cell is claimed by the first direction that reaches it, so testing
	// for the food at enqueue time returns the same answer as testing at
	// dequeue time.
	queue := make([]pathNode, 0, 64)
	for _, d := range game.ScanOrder {
		n := head.Add(d)
		if !v.InBounds(n) || blocked[idx(n)] || visited[idx(n)] {
			continue
		}
		if n == v.Food {
			return d, true
		}
		visited[idx(n)] = true
		queue = append(queue, pathNode{p: n, first: d})
	}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, d := range game.ScanOrder {
			n := cur.p.Add(d)
			if !v.InBounds(n) || blocked[idx(n)] || visited[idx(n)] {
				continue
			}
			if n == v.Food {
				return cur.first, true
			}
			visited[idx(n)] = true
			queue = append(queue, pathNode{p: n, first: cur.first})
		}
	}

	return 0, false
}

// nearestLegal is the no-path fallback: the legal direction whose resulting
// head position is closest to the food by Manhattan distance. Ties keep the
// earliest candidate in scan order. With no legal direction at all the
// current heading is returned unchanged.
func nearestLegal(v game.View) game.Direction {
	best := v.AI.Heading
	bestDist := -1
	for _, d := range game.ScanOrder {
		if !isLegal(v, d) {
			continue
		}
		dist := v.AI.Head().Add(d).Manhattan(v.Food)
		if bestDist < 0 || dist < bestDist {
			best, bestDist = d, dist
		}
	}
	return best
}
