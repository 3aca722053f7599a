// Package terminal renders the game into an ANSI terminal and translates
// key presses into the core's intents.
package terminal

import (
	_ "embed"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"
	"text/template"

	"github.com/eiannone/keyboard"

	"tetris/tetris"
)

const (
	// ASCII colors.
	Cyan    = "36"
	Blue    = "34"
	Orange  = "38;5;214"
	Yellow  = "33"
	Green   = "32"
	Red     = "31"
	Magenta = "35"
	White   = "37"

	resetPos = "\033[H" // Reset cursor position to 0,0
)

//go:embed "layout.tmpl"
var layout string

var colorMap = map[tetris.Color]string{
	tetris.Cyan:    Cyan,
	tetris.Blue:    Blue,
	tetris.Orange:  Orange,
	tetris.Yellow:  Yellow,
	tetris.Green:   Green,
	tetris.Red:     Red,
	tetris.Magenta: Magenta,
	tetris.White:   White,
}

type Terminal struct {
	writer       io.Writer
	game         *tetris.Game
	template     *template.Template
	logger       *slog.Logger
	keysEventsCh <-chan keyboard.KeyEvent
}

type Options struct {
	Writer io.Writer
	Logger *slog.Logger
	Game   *tetris.Game
}

func New(o *Options) *Terminal {
	tp, err := loadTemplate()
	if err != nil {
		log.Fatalf("unable to load template: %v\n", err)
	}
	kc, err := keyboard.GetKeys(20)
	if err != nil {
		log.Fatalf("unable to open keyboard: %v\n", err)
	}
	var w io.Writer = os.Stdout
	if o.Writer != nil {
		w = o.Writer
	}
	return &Terminal{
		writer:       w,
		game:         o.Game,
		template:     tp,
		logger:       o.Logger,
		keysEventsCh: kc,
	}
}

// Start renders until the quit intent is processed by the game loop.
func (t *Terminal) Start() {
	t.renderGame(t.game.Read())
	t.game.Start()
	go t.listenKB()
	for {
		select {
		case <-t.game.UpdateCh:
			t.renderGame(t.game.Read())
		case <-t.game.DoneCh:
			return
		}
	}
}

func (t *Terminal) listenKB() {
	for {
		event, ok := <-t.keysEventsCh
		if !ok {
			t.logger.Error("Keyboard events channel closed unexpectedly")
			t.game.Action(tetris.Quit)
			return
		}
		if event.Err != nil {
			t.logger.Error("keysEvents error", slog.String("error", event.Err.Error()))
			t.game.Action(tetris.Quit)
			return
		}
		a, ok := actionFor(event)
		if !ok {
			continue
		}
		t.game.Action(a)
		if a == tetris.Quit {
			return
		}
	}
}

// actionFor maps a key event to a player intent.
func actionFor(event keyboard.KeyEvent) (tetris.Action, bool) {
	switch {
	case event.Key == keyboard.KeyArrowLeft || event.Rune == 'a':
		return tetris.MoveLeft, true
	case event.Key == keyboard.KeyArrowRight || event.Rune == 'd':
		return tetris.MoveRight, true
	case event.Key == keyboard.KeyArrowDown || event.Rune == 's':
		return tetris.SoftDrop, true
	case event.Key == keyboard.KeyArrowUp || event.Rune == 'w':
		return tetris.Rotate, true
	case event.Key == keyboard.KeyEsc:
		return tetris.TogglePause, true
	case event.Key == keyboard.KeyEnter:
		return tetris.Restart, true
	case event.Key == keyboard.KeyCtrlC || event.Rune == 'q':
		return tetris.Quit, true
	}
	return "", false
}

func (t *Terminal) renderGame(s *tetris.Snapshot) {
	fmt.Fprint(t.writer, resetPos)
	if err := t.template.Execute(t.writer, s); err != nil {
		t.logger.Error("Unable to execute template", slog.String("error", err.Error()))
	}
	switch {
	case s.GameOver:
		fmt.Fprint(t.writer, "\033[9;3H+----------------------+")
		fmt.Fprint(t.writer, "\033[10;3H|       you died       |")
		fmt.Fprintf(t.writer, "\033[11;3H|%s|", center(fmt.Sprintf("score %d", s.Score), 22))
		fmt.Fprint(t.writer, "\033[12;3H|   enter to restart   |")
		fmt.Fprint(t.writer, "\033[13;3H+----------------------+")
	case s.Paused:
		fmt.Fprint(t.writer, "\033[10;3H+----------------------+")
		fmt.Fprint(t.writer, "\033[11;3H|        paused        |")
		fmt.Fprint(t.writer, "\033[12;3H+----------------------+")
	}
}

func center(s string, width int) string {
	if len(s) >= width {
		return s[:width]
	}
	left := (width - len(s)) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-len(s)-left)
}

func loadTemplate() (*template.Template, error) {
	funcMap := template.FuncMap{
		"playfield": playfield,
	}

	// we use the console raw so new lines don't automatically transform into
	// carriage return. to fix that we add a carriage return to every new
	// line in the layout.
	layout = strings.ReplaceAll(layout, "\n", "\r\n")
	layout = strings.ReplaceAll(layout, "Terminal Tetris", "\033[1mTerminal Tetris\033[0m")
	return template.New("layout").Funcs(funcMap).Parse(layout)
}

// playfield projects the snapshot onto the visible well: 18 rows top to
// bottom, 12 columns left to right, one two-character cell per block.
// Blocks above the ceiling (the spawn row) are clipped.
func playfield(s *tetris.Snapshot) [tetris.Rows][tetris.Columns]string {
	rendered := [tetris.Rows][tetris.Columns]string{}
	for y := range rendered {
		for x := range rendered[y] {
			rendered[y][x] = "  "
		}
	}
	for _, piece := range s.Settled {
		paint(&rendered, piece)
	}
	paint(&rendered, s.Current)
	return rendered
}

func paint(rendered *[tetris.Rows][tetris.Columns]string, piece tetris.PieceView) {
	for _, b := range piece.Blocks {
		row, col, ok := cellFor(b)
		if !ok {
			continue
		}
		rendered[row][col] = fmt.Sprintf("\x1b[7m\x1b[%sm[]\x1b[0m", colorMap[piece.Color])
	}
}

// cellFor maps a block's world coordinates to its cell in the rendered
// well. ok is false for blocks outside the visible rows.
func cellFor(b tetris.Block) (row, col int, ok bool) {
	row = int((tetris.Ceiling - b.Y) / tetris.Step)
	col = int((b.X - tetris.LeftWall) / tetris.Step)
	if row < 0 || row >= tetris.Rows || col < 0 || col >= tetris.Columns {
		return 0, 0, false
	}
	return row, col, true
}
