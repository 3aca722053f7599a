package tetris

import (
	"reflect"
	"testing"
)

func TestMoveStaysInBounds(t *testing.T) {
	tests := []struct {
		name string
		move func(p *Piece)
	}{
		{"left", func(p *Piece) { p.moveLeft() }},
		{"right", func(p *Piece) { p.moveRight() }},
		{"down", func(p *Piece) { p.moveDown() }},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			for shape, factory := range shapeMap {
				p := factory()
				// far more repetitions than the well is wide or tall
				for n := 0; n < 30; n++ {
					tt.move(p)
				}
				for _, b := range p.Blocks {
					if b.X < LeftWall || b.X > RightWall || b.Y < Floor {
						t.Errorf("%v: block escaped the well at (%v, %v)", shape, b.X, b.Y)
					}
				}
			}
		})
	}
}

func TestMoveAbsorbedAtWall(t *testing.T) {
	p := newLong()
	for n := 0; n < 6; n++ {
		p.moveLeft()
	}
	want := p.copy()
	p.moveLeft()
	if !reflect.DeepEqual(p.Blocks, want.Blocks) {
		t.Errorf("move at the wall should be a no-op, got %v", p.Blocks)
	}
}

func TestMoveDownRefreshesBounds(t *testing.T) {
	p := newLong()
	p.moveDown()
	if p.MinY != 50 || p.MaxY != 80 {
		t.Errorf("wanted bounds (50, 80), got (%v, %v)", p.MinY, p.MaxY)
	}
}

func TestRotateFourTimesRestoresPiece(t *testing.T) {
	for shape, factory := range shapeMap {
		factory := factory
		t.Run(string(shape), func(t *testing.T) {
			t.Parallel()
			p := factory()
			want := p.copy()
			for n := 0; n < 4; n++ {
				p.rotate()
			}
			if !reflect.DeepEqual(p.Blocks, want.Blocks) {
				t.Errorf("wanted %v, got %v", want.Blocks, p.Blocks)
			}
		})
	}
}

func TestRotateSquareIsNoop(t *testing.T) {
	p := newSquare()
	want := p.copy()
	p.rotate()
	if !reflect.DeepEqual(p.Blocks, want.Blocks) {
		t.Errorf("wanted %v, got %v", want.Blocks, p.Blocks)
	}
}

func TestRotateStaysOnLattice(t *testing.T) {
	for shape, factory := range shapeMap {
		p := factory()
		p.rotate()
		for _, b := range p.Blocks {
			if int(b.X)%int(Step) != 0 || int(b.Y)%int(Step) != 0 {
				t.Errorf("%v: block off the lattice at (%v, %v)", shape, b.X, b.Y)
			}
		}
	}
}

func TestIsBlockedSymmetry(t *testing.T) {
	// a settled tee sits right under a falling long piece. The trial
	// down-move of the long piece must be blocked by the tee, and every
	// overlapping trial block must report blocked from the tee's side.
	settled := newTee()
	for settled.MinY > Floor {
		settled.moveDown()
	}
	falling := newLong()
	for falling.MinY > settled.MaxY+Step {
		falling.moveDown()
	}

	trial := falling.copy()
	trial.moveDown()
	var overlap bool
	for _, b := range trial.Blocks {
		if settled.isBlocked(b) {
			overlap = true
		}
	}
	if !overlap {
		t.Fatal("expected the trial move to overlap the settled piece")
	}
}

func TestOutOfBounds(t *testing.T) {
	tests := []struct {
		name  string
		setup func(p *Piece)
		want  bool
	}{
		{
			// factories spawn the top row above the ceiling, so a fresh
			// piece is out of bounds until gravity pulls it one step down.
			name:  "fresh spawn touches the death band",
			setup: func(p *Piece) {},
			want:  true,
		},
		{
			name:  "one step down is inside",
			setup: func(p *Piece) { p.moveDown() },
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newLong()
			tt.setup(p)
			if got := p.outOfBounds(); got != tt.want {
				t.Errorf("wanted outOfBounds() == %v, got %v", tt.want, got)
			}
		})
	}
}

func TestWholeLine(t *testing.T) {
	line := wholeLine(-40)
	if len(line.Blocks) != Columns {
		t.Fatalf("wanted %d blocks, got %d", Columns, len(line.Blocks))
	}
	for i, b := range line.Blocks {
		if b.Y != -40 {
			t.Errorf("block %d not on the requested row: %v", i, b.Y)
		}
	}
	if line.Blocks[0].X != LeftWall || line.Blocks[len(line.Blocks)-1].X != RightWall {
		t.Errorf("line doesn't span the well: %v > %v", line.Blocks[0].X, line.Blocks[len(line.Blocks)-1].X)
	}
}

func TestEmptyPieceBounds(t *testing.T) {
	p := newSquare()
	p.Blocks = nil
	p.refreshBounds()
	if p.MaxY >= Ceiling {
		t.Error("an empty skeleton must never reach the death band")
	}
	if p.isBlocked(newBlock(0, 0)) {
		t.Error("an empty skeleton must not block anything")
	}
}
