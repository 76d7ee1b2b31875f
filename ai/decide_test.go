package ai

import (
	"math/rand"
	"testing"

	"github.com/jonathandrl24/Multiplayer-Snake-Game/game"
)

func openView(cols, rows int, head game.Point, heading game.Direction, food game.Point) game.View {
	return game.View{
		Cols: cols,
		Rows: rows,
		AI:   game.SnakeView{Body: []game.Point{head}, Heading: heading},
		Food: food,
	}
}

func TestPathAdjacentFood(t *testing.T) {
	cases := []struct {
		food game.Point
		want game.Direction
	}{
		{game.Point{X: 6, Y: 5}, game.Right},
		{game.Point{X: 5, Y: 6}, game.Down},
		{game.Point{X: 5, Y: 4}, game.Up},
	}
	for _, tc := range cases {
		v := openView(12, 12, game.Point{X: 5, Y: 5}, game.Right, tc.food)
		got, ok := pathToFood(v)
		if !ok || got != tc.want {
			t.Errorf("pathToFood(food=%v) = %v, %v; want %v, true", tc.food, got, ok, tc.want)
		}
	}
}

func TestPathTieBreakFollowsScanOrder(t *testing.T) {
	// Diagonal food leaves two equally short first steps; the enumeration
	// order right, left, down, up decides the winner.
	cases := []struct {
		food game.Point
		want game.Direction
	}{
		{game.Point{X: 7, Y: 7}, game.Right}, // right or down
		{game.Point{X: 3, Y: 3}, game.Left},  // left or up
		{game.Point{X: 3, Y: 7}, game.Left},  // left or down
	}
	for _, tc := range cases {
		v := openView(12, 12, game.Point{X: 5, Y: 5}, game.Up, tc.food)
		got, ok := pathToFood(v)
		if !ok || got != tc.want {
			t.Errorf("pathToFood(food=%v) = %v, %v; want %v, true", tc.food, got, ok, tc.want)
		}
	}
}

func TestDecideApproachesFoodEveryStep(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	head := game.Point{X: 10, Y: 10}
	heading := game.Right
	food := game.Point{X: 3, Y: 14}

	for step := 0; head != food; step++ {
		if step > 30 {
			t.Fatal("AI failed to reach the food on an open board")
		}
		v := openView(20, 20, head, heading, food)
		before := head.Manhattan(food)

		d := Decide(rng, v, 0)
		head = head.Add(d)
		heading = d

		if after := head.Manhattan(food); after != before-1 {
			t.Fatalf("step %d moved %v: distance %d -> %d, want strictly closer", step, d, before, after)
		}
	}
}

func TestMistakeUniformOverLegalDirections(t *testing.T) {
	// Neck at (9,10) blocks left both as a reversal and as a body cell, so
	// the legal set is right, down, up.
	v := game.View{
		Cols: 20,
		Rows: 20,
		AI: game.SnakeView{
			Body:    []game.Point{{X: 10, Y: 10}, {X: 9, Y: 10}},
			Heading: game.Right,
		},
		Food: game.Point{X: 0, Y: 0},
	}

	rng := rand.New(rand.NewSource(7))
	counts := map[game.Direction]int{}
	const trials = 3000
	for i := 0; i < trials; i++ {
		counts[Decide(rng, v, 1.0)]++
	}

	if counts[game.Left] != 0 {
		t.Fatalf("chose the reversal %d times, want never", counts[game.Left])
	}
	for _, d := range []game.Direction{game.Right, game.Down, game.Up} {
		if counts[d] < 800 || counts[d] > 1200 {
			t.Fatalf("direction %v chosen %d/%d times, want roughly uniform", d, counts[d], trials)
		}
	}
}

func TestUnreachableFoodFallsBackToScanOrder(t *testing.T) {
	// The body walls off the (0,0) corner, so the food is unreachable and
	// the Manhattan fallback decides. Right and down both leave distance 4;
	// scan order keeps right.
	v := game.View{
		Cols: 6,
		Rows: 6,
		AI: game.SnakeView{
			Body:    []game.Point{{X: 3, Y: 0}, {X: 2, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}},
			Heading: game.Right,
		},
		Food: game.Point{X: 0, Y: 0},
	}

	if _, ok := pathToFood(v); ok {
		t.Fatal("food behind the body wall should be unreachable")
	}
	if got := Decide(rand.New(rand.NewSource(1)), v, 0); got != game.Right {
		t.Fatalf("Decide = %v, want right on the distance tie", got)
	}
}

func TestUnreachableFoodMinimizesDistance(t *testing.T) {
	// Same walled-off corner, but left gets strictly closer than the other
	// legal directions.
	v := game.View{
		Cols: 6,
		Rows: 6,
		AI: game.SnakeView{
			Body: []game.Point{
				{X: 3, Y: 1}, {X: 3, Y: 0}, {X: 2, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1},
			},
			Heading: game.Down,
		},
		Food: game.Point{X: 0, Y: 0},
	}

	if got := Decide(rand.New(rand.NewSource(1)), v, 0); got != game.Left {
		t.Fatalf("Decide = %v, want left as the closest legal direction", got)
	}
}

func TestBoxedInKeepsHeading(t *testing.T) {
	// A 1x1 board leaves no legal move at all; both the mistake path and
	// the fallback return the current heading unchanged.
	v := openView(1, 1, game.Point{X: 0, Y: 0}, game.Down, game.Point{X: 0, Y: 0})

	if got := Decide(rand.New(rand.NewSource(1)), v, 0); got != game.Down {
		t.Fatalf("Decide = %v, want the unchanged heading", got)
	}
	if got := Decide(rand.New(rand.NewSource(1)), v, 1.0); got != game.Down {
		t.Fatalf("Decide(mistake=1) = %v, want the unchanged heading", got)
	}
}
