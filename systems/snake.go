package systems

// Point is an integer grid cell.
type Point struct {
	X, Y int
}

// Add returns p translated by d.
func (p Point) Add(d Point) Point {
	return Point{X: p.X + d.X, Y: p.Y + d.Y}
}

// InBounds reports whether p lies inside a square grid of the given size.
func (p Point) InBounds(size int) bool {
	return p.X >= 0 && p.X < size && p.Y >= 0 && p.Y < size
}

// Direction is a snake heading. Undecided is the initial state before the
// first decision and moves nowhere.
type Direction uint8

const (
	Undecided Direction = iota
	North
	South
	West
	East
)

// Delta returns the one-cell displacement for the direction.
func (d Direction) Delta() Point {
	switch d {
	case North:
		return Point{Y: -1}
	case South:
		return Point{Y: 1}
	case West:
		return Point{X: -1}
	case East:
		return Point{X: 1}
	}
	return Point{}
}

// Opposite returns the reverse heading. Undecided has no opposite.
func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	case West:
		return East
	case East:
		return West
	}
	return Undecided
}

// Vertical reports whether d is North or South.
func (d Direction) Vertical() bool {
	return d == North || d == South
}

func (d Direction) String() string {
	switch d {
	case North:
		return "N"
	case South:
		return "S"
	case West:
		return "W"
	case East:
		return "E"
	}
	return "undecided"
}

// Status is the outcome of a movement step.
type Status uint8

const (
	Alive Status = iota
	Dead
)

func (s Status) String() string {
	if s == Dead {
		return "dead"
	}
	return "alive"
}

// Snake is an ordered body of grid cells; Body[0] is the head.
type Snake struct {
	Body    []Point
	Heading Direction
}

// NewSnake creates a snake of the given length with its head at head and the
// rest of the body trailing east of it. The heading starts Undecided.
func NewSnake(head Point, length int) *Snake {
	if length < 1 {
		length = 1
	}
	body := make([]Point, length)
	for i := range body {
		body[i] = Point{X: head.X + i, Y: head.Y}
	}
	return &Snake{Body: body, Heading: Undecided}
}

// Head returns the head cell.
func (s *Snake) Head() Point {
	return s.Body[0]
}

// Tail returns the last body cell.
func (s *Snake) Tail() Point {
	return s.Body[len(s.Body)-1]
}

// Len returns the body length.
func (s *Snake) Len() int {
	return len(s.Body)
}

// Occupies reports whether any segment covers p.
func (s *Snake) Occupies(p Point) bool {
	for _, part := range s.Body {
		if part == p {
			return true
		}
	}
	return false
}

// Step moves the snake one cell in dir on a grid of the given size.
// Leaving the grid or entering any current segment (including the tail) is fatal;
// a fatal step leaves the body untouched. Undecided is a no-op that stays Alive.
func (s *Snake) Step(dir Direction, gridSize int) Status {
	if dir == Undecided {
		return Alive
	}
	s.Heading = dir

	candidate := s.Head().Add(dir.Delta())
	if !candidate.InBounds(gridSize) {
		return Dead
	}
	if s.Occupies(candidate) {
		return Dead
	}

	for i := len(s.Body) - 1; i > 0; i-- {
		s.Body[i] = s.Body[i-1]
	}
	s.Body[0] = candidate
	return Alive
}

// Grow appends a duplicate of the tail cell. The duplicate separates on the
// next successful step.
func (s *Snake) Grow() {
	s.Body = append(s.Body, s.Tail())
}

// Steer applies a manual heading override. Overrides on the same axis as the
// current heading are rejected, so the snake can never reverse into itself.
// Before the first heading, a direction pointing into the neck is rejected.
// Returns whether the heading changed.
func (s *Snake) Steer(dir Direction) bool {
	if dir == Undecided || dir == s.Heading {
		return false
	}
	if s.Heading != Undecided && dir.Vertical() == s.Heading.Vertical() {
		return false
	}
	if s.Heading == Undecided && len(s.Body) > 1 && s.Head().Add(dir.Delta()) == s.Body[1] {
		return false
	}
	s.Heading = dir
	return true
}

// CopyBody returns a copy of the body safe to hand to readers.
func (s *Snake) CopyBody() []Point {
	body := make([]Point, len(s.Body))
	copy(body, s.Body)
	return body
}
