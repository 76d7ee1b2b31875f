package game

// Snake is one competitor: an ordered body (head first), its committed and
// requested headings, pending growth, and its score. It owns its own
// movement and self-collision rules; cross-snake collisions are the
// simulation's job.
type Snake struct {
	Body    []Point
	Heading Direction
	Alive   bool
	Score   int

	next        Direction
	growPending int
}

// NewSnake returns a single-cell snake at start, heading dir.
func NewSnake(start Point, dir Direction) *Snake {
	return &Snake{
		Body:    []Point{start},
		Heading: dir,
		next:    dir,
		Alive:   true,
	}
}

// Head returns the head cell.
func (s *Snake) Head() Point {
	return s.Body[0]
}

// GrowPending returns the number of growth credits left to consume.
func (s *Snake) GrowPending() int {
	return s.growPending
}

// RequestDirection queues a heading change for the next step. A request that
// would reverse the current heading is dropped silently: that is input
// debouncing, not an error.
func (s *Snake) RequestDirection(d Direction) {
	if !d.IsOpposite(s.Heading) {
		s.next = d
	}
}

// Step commits the queued heading and advances one cell on a cols x rows
// board. It reports false and marks the snake dead if the new head leaves
// the board or lands anywhere on the pre-move body. The about-to-vacate tail
// cell is deliberately included in that check, so moving into the current
// tail position is fatal too.
//
// On success the head is prepended; a growth credit is consumed instead of
// popping the tail, so eating extends the body over the following steps.
func (s *Snake) Step(cols, rows int) bool {
	s.Heading = s.next
	head := s.Head().Add(s.Heading)

	if head.X < 0 || head.X >= cols || head.Y < 0 || head.Y >= rows {
		s.Alive = false
		return false
	}
	for _, b := range s.Body {
		if b == head {
			s.Alive = false
			return false
		}
	}

	s.Body = append([]Point{head}, s.Body...)
	if s.growPending > 0 {
		s.growPending--
	} else {
		s.Body = s.Body[:len(s.Body)-1]
	}
	return true
}

// Eat scores one food item and credits grow steps of future growth.
func (s *Snake) Eat(grow int) {
	s.Score++
	s.growPending += grow
}

// Kill marks the snake dead. Idempotent.
func (s *Snake) Kill() {
	s.Alive = false
}

// Occupies reports whether any body cell sits on p.
func (s *Snake) Occupies(p Point) bool {
	for _, b := range s.Body {
		if b == p {
			return true
		}
	}
	return false
}

// HeadAt reports whether the head sits on p.
func (s *Snake) HeadAt(p Point) bool {
	return s.Head() == p
}

func (s *Snake) view() SnakeView {
	body := make([]Point, len(s.Body))
	copy(body, s.Body)
	return SnakeView{Body: body, Heading: s.Heading}
}
