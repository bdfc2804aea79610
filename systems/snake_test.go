package systems

import (
	"reflect"
	"testing"
)

func TestNewSnake(t *testing.T) {
	s := NewSnake(Point{X: 13, Y: 13}, 3)

	want := []Point{{13, 13}, {14, 13}, {15, 13}}
	if !reflect.DeepEqual(s.Body, want) {
		t.Errorf("Body = %v, want %v", s.Body, want)
	}
	if s.Heading != Undecided {
		t.Errorf("Heading = %v, want undecided", s.Heading)
	}
	if s.Head() != (Point{13, 13}) || s.Tail() != (Point{15, 13}) {
		t.Errorf("Head/Tail = %v/%v", s.Head(), s.Tail())
	}
}

func TestStepMovesBody(t *testing.T) {
	s := &Snake{Body: []Point{{5, 5}, {6, 5}, {7, 5}}, Heading: West}

	if got := s.Step(West, 20); got != Alive {
		t.Fatalf("Step = %v, want alive", got)
	}
	want := []Point{{4, 5}, {5, 5}, {6, 5}}
	if !reflect.DeepEqual(s.Body, want) {
		t.Errorf("Body = %v, want %v", s.Body, want)
	}
}

func TestStepOutOfBounds(t *testing.T) {
	const size = 20
	tests := []struct {
		name string
		head Point
		dir  Direction
	}{
		{"north edge", Point{3, 0}, North},
		{"south edge", Point{3, size - 1}, South},
		{"west edge", Point{0, 7}, West},
		{"east edge", Point{size - 1, 7}, East},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Snake{Body: []Point{tt.head}}
			if got := s.Step(tt.dir, size); got != Dead {
				t.Errorf("Step(%v) from %v = %v, want dead", tt.dir, tt.head, got)
			}
			if s.Head() != tt.head {
				t.Errorf("head moved to %v on fatal step", s.Head())
			}
		})
	}
}

func TestStepSelfCollision(t *testing.T) {
	tests := []struct {
		name string
		body []Point
		dir  Direction
	}{
		// Reversing onto the neck.
		{"reverse into neck", []Point{{5, 5}, {6, 5}}, East},
		// Loop shape: moving south from (5,5) hits (5,6).
		{"loop", []Point{{5, 5}, {4, 5}, {4, 6}, {5, 6}, {6, 6}}, South},
		// The tail counts even though it would move away this tick.
		{"tail", []Point{{5, 5}, {5, 4}, {6, 4}, {6, 5}}, East},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Snake{Body: append([]Point(nil), tt.body...)}
			if got := s.Step(tt.dir, 20); got != Dead {
				t.Errorf("Step(%v) = %v, want dead", tt.dir, got)
			}
		})
	}
}

func TestStepUndecidedIsNoop(t *testing.T) {
	s := NewSnake(Point{5, 5}, 3)
	before := s.CopyBody()

	if got := s.Step(Undecided, 20); got != Alive {
		t.Fatalf("Step(undecided) = %v, want alive", got)
	}
	if !reflect.DeepEqual(s.Body, before) {
		t.Errorf("Body changed to %v", s.Body)
	}
	if s.Heading != Undecided {
		t.Errorf("Heading = %v, want undecided", s.Heading)
	}
}

func TestGrow(t *testing.T) {
	s := &Snake{Body: []Point{{5, 5}, {6, 5}, {7, 5}}}
	s.Step(West, 20)
	before := s.CopyBody()

	s.Grow()

	if s.Len() != len(before)+1 {
		t.Fatalf("Len = %d, want %d", s.Len(), len(before)+1)
	}
	if !reflect.DeepEqual(s.Body[:len(before)], before) {
		t.Errorf("existing segments changed: %v", s.Body)
	}
	want := []Point{{4, 5}, {5, 5}, {6, 5}, {6, 5}}
	if !reflect.DeepEqual(s.Body, want) {
		t.Errorf("Body = %v, want %v", s.Body, want)
	}

	// The duplicate separates on the next step.
	if s.Step(North, 20) != Alive {
		t.Fatal("step after growth died")
	}
	want = []Point{{4, 4}, {4, 5}, {5, 5}, {6, 5}}
	if !reflect.DeepEqual(s.Body, want) {
		t.Errorf("Body after step = %v, want %v", s.Body, want)
	}
}

func TestSteer(t *testing.T) {
	tests := []struct {
		heading Direction
		dir     Direction
		ok      bool
	}{
		{Undecided, North, true},
		{Undecided, West, true},
		{Undecided, East, false}, // body trails east, so east is the neck
		{Undecided, Undecided, false},
		{North, South, false},
		{North, North, false},
		{North, West, true},
		{East, West, false},
		{East, South, true},
		{West, East, false},
		{South, East, true},
	}

	for _, tt := range tests {
		s := NewSnake(Point{5, 5}, 3)
		s.Heading = tt.heading
		got := s.Steer(tt.dir)
		if got != tt.ok {
			t.Errorf("heading %v steer %v = %v, want %v", tt.heading, tt.dir, got, tt.ok)
		}
		want := tt.heading
		if tt.ok {
			want = tt.dir
		}
		if s.Heading != want {
			t.Errorf("heading %v steer %v: Heading = %v, want %v", tt.heading, tt.dir, s.Heading, want)
		}
	}
}

func TestDirectionOpposite(t *testing.T) {
	for _, d := range []Direction{North, South, West, East} {
		if d.Opposite().Opposite() != d {
			t.Errorf("%v opposite round trip failed", d)
		}
		if d.Delta().Add(d.Opposite().Delta()) != (Point{}) {
			t.Errorf("%v deltas do not cancel", d)
		}
	}
	if Undecided.Opposite() != Undecided {
		t.Error("undecided should have no opposite")
	}
}
