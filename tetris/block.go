package tetris

// Playfield geometry. The well spans 12 columns and 18 visible rows on a
// lattice with a 10 unit step. Rows at or above the ceiling belong to the
// death band: a settled block ending up there finishes the game.
const (
	Step      = 10.0
	LeftWall  = -60.0
	RightWall = 50.0
	Floor     = -90.0
	Ceiling   = 80.0
	SpawnTop  = 90.0

	Columns = 12
	Rows    = 18
)

// Block is the unit cell every piece is made of. All coordinates stay on
// the Step lattice, so exact float comparison is safe.
type Block struct {
	X, Y          float64
	Width, Height float64
}

func newBlock(x, y float64) Block {
	return Block{X: x, Y: y, Width: Step, Height: Step}
}

// Equals is the collision predicate: two blocks collide iff they occupy
// the same cell with the same size.
func (b Block) Equals(o Block) bool {
	return b.X == o.X && b.Y == o.Y && b.Width == o.Width && b.Height == o.Height
}
