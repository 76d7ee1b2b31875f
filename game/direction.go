package game

// Direction is one of the four unit directions a snake can travel.
type Direction uint8

const (
	Up Direction = iota
	Down
	Left
	Right
)

// ScanOrder is the fixed neighbor enumeration order used everywhere a
// direction choice needs a deterministic tie-break (AI path search and its
// distance fallback).
var ScanOrder = [4]Direction{Right, Left, Down, Up}

// Delta returns the (dx, dy) offset of one step in this direction.
// Up decreases Y.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case Up:
		return 0, -1
	case Down:
		return 0, 1
	case Left:
		return -1, 0
	case Right:
		return 1, 0
	default:
		return 0, 0
	}
}

// Opposite returns the reversed direction.
func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	default:
		return Left
	}
}

// IsOpposite reports whether o is the exact reverse of d.
func (d Direction) IsOpposite(o Direction) bool {
	return d.Opposite() == o
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}

// ParseDirection maps a direction name back to its value. Unknown names
// report ok=false.
func ParseDirection(s string) (Direction, bool) {
	switch s {
	case "up":
		return Up, true
	case "down":
		return Down, true
	case "left":
		return Left, true
	case "right":
		return Right, true
	default:
		return Up, false
	}
}
