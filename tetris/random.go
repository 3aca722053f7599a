package tetris

import "math/rand"

// Source decides the shape, color and initial spin of every generated
// piece. It is an interface so tests can inject a deterministic sequence.
type Source interface {
	NextShape() Shape
	NextColor() Color
	// NextRotations returns how many times the fresh piece is turned
	// before it starts falling. Zero when spawn spin is disabled.
	NextRotations() int
}

type randomSource struct {
	rnd    *rand.Rand
	shapes []Shape
	spin   bool
}

// NewSource builds a seedable Source drawing uniformly from the given
// shape set and the fixed color palette. With spin enabled each piece
// starts with up to three random rotations.
func NewSource(seed int64, shapes []Shape, spin bool) Source {
	if len(shapes) == 0 {
		shapes = PlayableShapes
	}
	return &randomSource{
		rnd:    rand.New(rand.NewSource(seed)),
		shapes: shapes,
		spin:   spin,
	}
}

func (s *randomSource) NextShape() Shape {
	return s.shapes[s.rnd.Intn(len(s.shapes))]
}

func (s *randomSource) NextColor() Color {
	return Palette[s.rnd.Intn(len(Palette))]
}

func (s *randomSource) NextRotations() int {
	if !s.spin {
		return 0
	}
	return s.rnd.Intn(4)
}
