package tetris

import "time"

// Action is a player intent, independent of any physical key binding.
type Action string

const (
	MoveLeft    Action = "left"    // Moves the falling piece one step left.
	MoveRight   Action = "right"   // Moves the falling piece one step right.
	SoftDrop    Action = "down"    // Moves the falling piece one step down.
	Rotate      Action = "rotate"  // Rotates the falling piece clockwise.
	TogglePause Action = "pause"   // Toggles between playing and paused.
	Restart     Action = "restart" // Starts a new life after game over.
	Quit        Action = "quit"    // Ends the session.
)

// Ticker abstracts the gravity clock so tests can drive ticks manually.
type Ticker interface {
	C() <-chan time.Time
	Reset(time.Duration)
	Stop()
}

type wrappedTicker struct {
	ticker *time.Ticker
}

func newWrappedTicker(d time.Duration) *wrappedTicker {
	return &wrappedTicker{ticker: time.NewTicker(d)}
}

func (t *wrappedTicker) C() <-chan time.Time   { return t.ticker.C }
func (t *wrappedTicker) Stop()                 { t.ticker.Stop() }
func (t *wrappedTicker) Reset(d time.Duration) { t.ticker.Reset(d) }

// ScoreStore persists the highscore. The game touches it only on restart;
// the caller handles startup and shutdown persistence.
type ScoreStore interface {
	Load() (uint64, error)
	Save(uint64) error
}

type nullStore struct{}

func (nullStore) Load() (uint64, error) { return 0, nil }
func (nullStore) Save(uint64) error     { return nil }

// PieceView is a render-ready copy of one piece's blocks and color.
type PieceView struct {
	Blocks []Block
	Color  Color
}

// Snapshot is the read-only state the render boundary consumes.
type Snapshot struct {
	Score     uint64
	Highscore uint64
	Paused    bool
	GameOver  bool
	Current   PieceView
	Settled   []PieceView
}

// Game ties the gravity ticker and player intents to the board. Intents
// and ticks are serialized on one loop, so a key press observed in a poll
// window is fully processed before the next gravity step.
type Game struct {
	// UpdateCh signals that the state changed and a re-render is due.
	UpdateCh chan bool
	// DoneCh signals that the quit intent was processed.
	DoneCh chan bool

	actionCh chan Action
	board    *Board
	ticker   Ticker
	store    ScoreStore
	interval time.Duration
}

// GameOptions configures a session.
type GameOptions struct {
	// Interval is the gravity cadence. Defaults to 150ms.
	Interval time.Duration
	Store    ScoreStore
	Board    BoardOptions
	// Highscore seeds the board's persisted highscore.
	Highscore uint64
}

func NewGame(o GameOptions) *Game {
	return NewConfigurableGame(o, newWrappedTicker(1*time.Hour))
}

func NewConfigurableGame(o GameOptions, ticker Ticker) *Game {
	if o.Interval <= 0 {
		o.Interval = 150 * time.Millisecond
	}
	store := o.Store
	if store == nil {
		store = nullStore{}
	}
	board := NewBoard(o.Board)
	board.Highscore = o.Highscore
	return &Game{
		UpdateCh: make(chan bool),
		DoneCh:   make(chan bool, 1),
		actionCh: make(chan Action),
		board:    board,
		ticker:   ticker,
		store:    store,
		interval: o.Interval,
	}
}

func (g *Game) Start() {
	g.ticker.Reset(g.interval)
	go g.listen()
}

// Action queues a player intent for the game loop.
func (g *Game) Action(a Action) {
	g.actionCh <- a
}

// Read returns a copy of the current state that's safe to read while the
// game loop keeps mutating the board.
func (g *Game) Read() *Snapshot {
	g.board.mu.RLock()
	defer g.board.mu.RUnlock()
	s := &Snapshot{
		Score:     g.board.Score,
		Highscore: g.board.Highscore,
		Paused:    g.board.state == Paused,
		GameOver:  g.board.state == GameOver,
		Current:   pieceView(g.board.Current),
	}
	for _, settled := range g.board.Settled {
		s.Settled = append(s.Settled, pieceView(settled))
	}
	return s
}

func pieceView(p *Piece) PieceView {
	v := PieceView{Color: p.Color, Blocks: make([]Block, len(p.Blocks))}
	copy(v.Blocks, p.Blocks)
	return v
}

func (g *Game) listen() {
	for {
		select {
		case <-g.ticker.C():
			g.board.mu.Lock()
			g.board.Tick()
			g.board.mu.Unlock()
		case a := <-g.actionCh:
			g.board.mu.Lock()
			if a == Quit {
				g.board.mu.Unlock()
				g.ticker.Stop()
				g.DoneCh <- true
				return
			}
			g.apply(a)
			g.board.mu.Unlock()
		}
		g.UpdateCh <- true
	}
}

func (g *Game) apply(a Action) {
	switch a {
	case MoveLeft:
		g.board.MoveCurrentLeft()
	case MoveRight:
		g.board.MoveCurrentRight()
	case SoftDrop:
		g.board.SoftDrop()
	case Rotate:
		g.board.RotateCurrent()
	case TogglePause:
		g.board.TogglePause()
	case Restart:
		g.restart()
	}
}

// restart persists the highscore, reloads it from the store and resets the
// board. Only meaningful once the game is over; ignored otherwise.
func (g *Game) restart() {
	if g.board.state != GameOver {
		return
	}
	// a persistence failure mid-session is not fatal: the in-memory
	// highscore survives and is saved again at shutdown.
	_ = g.store.Save(g.board.Highscore)
	highscore, err := g.store.Load()
	if err != nil {
		highscore = g.board.Highscore
	}
	g.board.Restart(highscore)
}
