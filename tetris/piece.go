package tetris

import "math"

// Shape identifies a piece's layout.
type Shape string

const (
	Long   Shape = "I"
	Square Shape = "O"
	Tee    Shape = "T"
	Ell    Shape = "L"
)

// PlayableShapes is the full set the generator may draw from.
var PlayableShapes = []Shape{Long, Square, Tee, Ell}

// Color is a symbolic piece color. Purely cosmetic; the terminal layer
// maps it to an ANSI sequence.
type Color string

const (
	Cyan    Color = "cyan"
	Blue    Color = "blue"
	Orange  Color = "orange"
	Yellow  Color = "yellow"
	Green   Color = "green"
	Red     Color = "red"
	Magenta Color = "magenta"
	White   Color = "white"
)

// Palette is the set of colors the generator assigns to new pieces.
var Palette = []Color{Cyan, Blue, Orange, Yellow, Green, Red, Magenta}

// Piece is a rigid group of blocks, either falling under player control or
// settled into the stack. MinY and MaxY are recomputed after every
// committed vertical move or rotation; row matching and the death check
// depend on them being current.
type Piece struct {
	Blocks []Block
	Shape  Shape
	Color  Color
	MinY   float64
	MaxY   float64

	// pivot indexes the block the piece rotates around.
	pivot int
}

var shapeMap = map[Shape]func() *Piece{
	Long:   newLong,
	Square: newSquare,
	Tee:    newTee,
	Ell:    newEll,
}

/*
.	Spawn Location (columns -60 > 50, top row y = 90)

90	. . . . . . O . . . . .

80	. . . . . . P . . . . .

70	. . . . . . O . . . . .

60	. . . . . . O . . . . .
*/
func newLong() *Piece {
	p := &Piece{
		Blocks: []Block{
			newBlock(0, SpawnTop),
			newBlock(0, 80),
			newBlock(0, 70),
			newBlock(0, 60),
		},
		Shape: Long,
		Color: White,
		pivot: 1,
	}
	p.refreshBounds()
	return p
}

/*
.	Spawn Location

90	. . . . . . O O . . . .

80	. . . . . . O O . . . .
*/
func newSquare() *Piece {
	p := &Piece{
		Blocks: []Block{
			newBlock(0, SpawnTop),
			newBlock(10, SpawnTop),
			newBlock(0, 80),
			newBlock(10, 80),
		},
		Shape: Square,
		Color: White,
	}
	p.refreshBounds()
	return p
}

/*
.	Spawn Location

90	. . . . . . O . . . . .

80	. . . . . O P O . . . .
*/
func newTee() *Piece {
	p := &Piece{
		Blocks: []Block{
			newBlock(0, 80),
			newBlock(-10, 80),
			newBlock(10, 80),
			newBlock(0, SpawnTop),
		},
		Shape: Tee,
		Color: White,
	}
	p.refreshBounds()
	return p
}

/*
.	Spawn Location

90	. . . . . . O . . . . .

80	. . . . . . P . . . . .

70	. . . . . . O O . . . .
*/
func newEll() *Piece {
	p := &Piece{
		Blocks: []Block{
			newBlock(0, SpawnTop),
			newBlock(0, 80),
			newBlock(0, 70),
			newBlock(10, 70),
		},
		Shape: Ell,
		Color: White,
		pivot: 1,
	}
	p.refreshBounds()
	return p
}

// wholeLine builds a full-width row of blocks at y. It is only a scanning
// template for row-completion checks, never a playable or settled piece.
func wholeLine(y float64) *Piece {
	p := &Piece{Shape: "line", Color: White}
	for x := LeftWall; x <= RightWall; x += Step {
		p.Blocks = append(p.Blocks, newBlock(x, y))
	}
	p.refreshBounds()
	return p
}

func (p *Piece) refreshBounds() {
	// a settled piece may lose every block to row clears. Degenerate bounds
	// keep an empty skeleton from ever matching a row or the death band.
	p.MinY = math.Inf(1)
	p.MaxY = math.Inf(-1)
	for _, b := range p.Blocks {
		p.MinY = math.Min(p.MinY, b.Y)
		p.MaxY = math.Max(p.MaxY, b.Y)
	}
}

func (p *Piece) copy() *Piece {
	if p == nil {
		return nil
	}
	c := *p
	c.Blocks = make([]Block, len(p.Blocks))
	copy(c.Blocks, p.Blocks)
	return &c
}

// moveLeft shifts the piece one step left. A move that would cross the
// left wall is silently absorbed.
func (p *Piece) moveLeft() {
	for _, b := range p.Blocks {
		if b.X <= LeftWall {
			return
		}
	}
	for i := range p.Blocks {
		p.Blocks[i].X -= Step
	}
}

// moveRight shifts the piece one step right, absorbed at the right wall.
func (p *Piece) moveRight() {
	for _, b := range p.Blocks {
		if b.X >= RightWall {
			return
		}
	}
	for i := range p.Blocks {
		p.Blocks[i].X += Step
	}
}

// moveDown shifts the piece one step down, absorbed at the floor.
func (p *Piece) moveDown() {
	for _, b := range p.Blocks {
		if b.Y <= Floor {
			return
		}
	}
	for i := range p.Blocks {
		p.Blocks[i].Y -= Step
	}
	p.refreshBounds()
}

// rotate turns the piece 90 degrees clockwise around its pivot block.
// Pure lattice arithmetic, so four rotations always restore the original
// positions. The square has full symmetry and doesn't rotate. Legality
// (bounds, stack collisions) is the caller's concern: the board always
// rotates a trial copy first.
func (p *Piece) rotate() {
	if p.Shape == Square {
		return
	}
	px, py := p.Blocks[p.pivot].X, p.Blocks[p.pivot].Y
	for i := range p.Blocks {
		dx, dy := p.Blocks[i].X-px, p.Blocks[i].Y-py
		p.Blocks[i].X = px + dy
		p.Blocks[i].Y = py - dx
	}
	p.refreshBounds()
}

// isBlocked reports whether any of this piece's blocks occupies the given
// cell.
func (p *Piece) isBlocked(b Block) bool {
	for _, ours := range p.Blocks {
		if ours.Equals(b) {
			return true
		}
	}
	return false
}

// outOfBounds reports whether any block lies outside the well. The upper
// limit is the ceiling, not the spawn row: a rotation that would lift a
// block into the death band is illegal.
func (p *Piece) outOfBounds() bool {
	for _, b := range p.Blocks {
		if b.X < LeftWall || b.X > RightWall || b.Y < Floor || b.Y > Ceiling {
			return true
		}
	}
	return false
}
