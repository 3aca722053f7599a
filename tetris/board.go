package tetris

import "sync"

// State is the board's session state. Only Playing runs the simulation;
// Paused and GameOver freeze it but still render.
type State string

const (
	Playing  State = "playing"
	Paused   State = "paused"
	GameOver State = "gameover"
)

// RowBonus is the score awarded per cleared row.
const RowBonus = 1000

// Board owns the falling piece and the settled stack and drives gravity,
// locking, row clears and the death check. The active piece never overlaps
// a settled block outside a trial check: every intent is applied to a copy
// first and committed only when legal.
type Board struct {
	Current *Piece
	Settled []*Piece

	Score     uint64
	Highscore uint64

	state             State
	src               Source
	gravityAfterClear bool

	mu sync.RWMutex
}

// BoardOptions configures a new board.
type BoardOptions struct {
	Source Source
	// GravityAfterClear shifts settled blocks above a cleared row down one
	// step. Off reproduces the legacy behavior where they keep their y.
	GravityAfterClear bool
}

func NewBoard(o BoardOptions) *Board {
	src := o.Source
	if src == nil {
		src = NewSource(1, PlayableShapes, false)
	}
	b := &Board{
		state:             Playing,
		src:               src,
		gravityAfterClear: o.GravityAfterClear,
	}
	b.spawn()
	return b
}

func (b *Board) State() State { return b.state }

// Tick runs one simulation step: gravity/lock, row clears, highscore,
// death check. A no-op unless the board is playing.
func (b *Board) Tick() {
	if b.state != Playing {
		return
	}
	b.handlePiece()
	b.rowClear()
	if b.Score > b.Highscore {
		b.Highscore = b.Score
	}
	if b.isDead() {
		b.state = GameOver
	}
}

// handlePiece applies gravity. The piece locks when it rests on the floor
// or when the step down would land it on the stack; otherwise it falls one
// step.
func (b *Board) handlePiece() {
	if b.Current.MinY == Floor {
		b.lock()
		return
	}
	trial := b.Current.copy()
	trial.moveDown()
	if b.collides(trial) {
		b.lock()
		return
	}
	b.Current.moveDown()
}

func (b *Board) lock() {
	b.Settled = append(b.Settled, b.Current)
	b.spawn()
}

func (b *Board) spawn() {
	p := shapeMap[b.src.NextShape()]()
	p.Color = b.src.NextColor()
	// spawn spin ignores the ceiling (the spawn row already sits above it)
	// but never overlaps the stack.
	for i := 0; i < b.src.NextRotations(); i++ {
		trial := p.copy()
		trial.rotate()
		if b.collides(trial) {
			break
		}
		p.rotate()
	}
	b.Current = p
}

// collides reports whether any block of p occupies a settled cell.
func (b *Board) collides(p *Piece) bool {
	for _, settled := range b.Settled {
		for _, block := range p.Blocks {
			if settled.isBlocked(block) {
				return true
			}
		}
	}
	return false
}

// rowClear removes every fully occupied row from the settled stack and
// scores it. A row is complete when each cell of the full-width template
// line matches some settled block. Cleared blocks are removed from their
// piece; the piece object stays even when it ends up empty.
func (b *Board) rowClear() {
	var cleared []float64
	for y := Floor; y <= Ceiling; y += Step {
		if b.rowComplete(y) {
			cleared = append(cleared, y)
		}
	}
	if len(cleared) == 0 {
		return
	}
	for _, y := range cleared {
		b.deleteRow(y)
	}
	if b.gravityAfterClear {
		b.compact(cleared)
	}
	b.Score += RowBonus * uint64(len(cleared))
}

func (b *Board) rowComplete(y float64) bool {
	line := wholeLine(y)
	for _, cell := range line.Blocks {
		matched := false
		for _, settled := range b.Settled {
			if settled.isBlocked(cell) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	return true
}

func (b *Board) deleteRow(y float64) {
	for _, settled := range b.Settled {
		kept := settled.Blocks[:0]
		for _, block := range settled.Blocks {
			if block.Y != y {
				kept = append(kept, block)
			}
		}
		settled.Blocks = kept
		settled.refreshBounds()
	}
}

// compact drops every settled block one step for each cleared row below it.
func (b *Board) compact(cleared []float64) {
	for _, settled := range b.Settled {
		for i := range settled.Blocks {
			var below int
			for _, y := range cleared {
				if y < settled.Blocks[i].Y {
					below++
				}
			}
			settled.Blocks[i].Y -= Step * float64(below)
		}
		settled.refreshBounds()
	}
}

// isDead reports whether the stack reached the death band.
func (b *Board) isDead() bool {
	for _, settled := range b.Settled {
		if settled.MaxY >= Ceiling {
			return true
		}
	}
	return false
}

// MoveCurrentLeft, MoveCurrentRight, RotateCurrent and SoftDrop apply a
// player intent with the trial-then-commit protocol: clone, transform,
// commit only when the clone stays in bounds and clear of the stack.
// Illegal intents are absorbed, never errors.

func (b *Board) MoveCurrentLeft() {
	if b.state != Playing {
		return
	}
	trial := b.Current.copy()
	trial.moveLeft()
	if trial.outOfBounds() || b.collides(trial) {
		return
	}
	b.Current.moveLeft()
}

func (b *Board) MoveCurrentRight() {
	if b.state != Playing {
		return
	}
	trial := b.Current.copy()
	trial.moveRight()
	if trial.outOfBounds() || b.collides(trial) {
		return
	}
	b.Current.moveRight()
}

func (b *Board) RotateCurrent() {
	if b.state != Playing {
		return
	}
	trial := b.Current.copy()
	trial.rotate()
	if trial.outOfBounds() || b.collides(trial) {
		return
	}
	b.Current.rotate()
}

func (b *Board) SoftDrop() {
	if b.state != Playing {
		return
	}
	trial := b.Current.copy()
	trial.moveDown()
	if b.collides(trial) {
		return
	}
	b.Current.moveDown()
}

// TogglePause flips between playing and paused. Ignored once the game is
// over.
func (b *Board) TogglePause() {
	switch b.state {
	case Playing:
		b.state = Paused
	case Paused:
		b.state = Playing
	}
}

// Restart resets the board for a new life: fresh highscore from the store,
// zero score, empty stack, new falling piece. Only valid from game over.
func (b *Board) Restart(highscore uint64) {
	if b.state != GameOver {
		return
	}
	b.Highscore = highscore
	b.Score = 0
	b.Settled = nil
	b.spawn()
	b.state = Playing
}
