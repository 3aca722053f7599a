package terminal

import (
	"bytes"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/eiannone/keyboard"

	"tetris/tetris"
)

func block(x, y float64) tetris.Block {
	return tetris.Block{X: x, Y: y, Width: tetris.Step, Height: tetris.Step}
}

func TestCellFor(t *testing.T) {
	tests := []struct {
		name     string
		block    tetris.Block
		row, col int
		ok       bool
	}{
		{"top left", block(tetris.LeftWall, tetris.Ceiling), 0, 0, true},
		{"bottom right", block(tetris.RightWall, tetris.Floor), 17, 11, true},
		{"center", block(0, 0), 8, 6, true},
		{"spawn row is clipped", block(0, tetris.SpawnTop), 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row, col, ok := cellFor(tt.block)
			if ok != tt.ok || row != tt.row || col != tt.col {
				t.Errorf("wanted (%d, %d, %v), got (%d, %d, %v)", tt.row, tt.col, tt.ok, row, col, ok)
			}
		})
	}
}

func TestPlayfield(t *testing.T) {
	s := &tetris.Snapshot{
		Current: tetris.PieceView{
			Color:  tetris.Blue,
			Blocks: []tetris.Block{block(0, tetris.Ceiling), block(0, 70)},
		},
		Settled: []tetris.PieceView{{
			Color:  tetris.Red,
			Blocks: []tetris.Block{block(tetris.LeftWall, tetris.Floor)},
		}},
	}
	got := playfield(s)

	blueCell := "\x1b[7m\x1b[34m[]\x1b[0m"
	redCell := "\x1b[7m\x1b[31m[]\x1b[0m"
	if got[0][6] != blueCell || got[1][6] != blueCell {
		t.Errorf("wanted the falling piece at rows 0-1 col 6, got %q and %q", got[0][6], got[1][6])
	}
	if got[17][0] != redCell {
		t.Errorf("wanted the settled block at row 17 col 0, got %q", got[17][0])
	}
	if got[0][0] != "  " {
		t.Errorf("wanted an empty cell, got %q", got[0][0])
	}
}

func TestRenderOverlays(t *testing.T) {
	tests := []struct {
		name     string
		snapshot *tetris.Snapshot
		want     []string
		absent   []string
	}{
		{
			name:     "playing",
			snapshot: &tetris.Snapshot{Score: 3000, Highscore: 9000},
			want:     []string{"3000", "9000"},
			absent:   []string{"paused", "you died"},
		},
		{
			name:     "paused",
			snapshot: &tetris.Snapshot{Paused: true},
			want:     []string{"paused"},
			absent:   []string{"you died"},
		},
		{
			name:     "game over",
			snapshot: &tetris.Snapshot{GameOver: true, Score: 2000},
			want:     []string{"you died", "score 2000", "enter to restart"},
			absent:   []string{"paused"},
		},
	}

	tmpl, err := loadTemplate()
	if err != nil {
		t.Fatal(err)
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			term := &Terminal{
				writer:   &buf,
				template: tmpl,
				logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
			}
			term.renderGame(tt.snapshot)
			out := buf.String()
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("wanted output to contain %q", want)
				}
			}
			for _, absent := range tt.absent {
				if strings.Contains(out, absent) {
					t.Errorf("wanted output to not contain %q", absent)
				}
			}
		})
	}
}

func TestActionFor(t *testing.T) {
	tests := []struct {
		name   string
		event  keyboard.KeyEvent
		want   tetris.Action
		wantOK bool
	}{
		{"left arrow", keyboard.KeyEvent{Key: keyboard.KeyArrowLeft}, tetris.MoveLeft, true},
		{"a", keyboard.KeyEvent{Rune: 'a'}, tetris.MoveLeft, true},
		{"right arrow", keyboard.KeyEvent{Key: keyboard.KeyArrowRight}, tetris.MoveRight, true},
		{"d", keyboard.KeyEvent{Rune: 'd'}, tetris.MoveRight, true},
		{"down arrow", keyboard.KeyEvent{Key: keyboard.KeyArrowDown}, tetris.SoftDrop, true},
		{"s", keyboard.KeyEvent{Rune: 's'}, tetris.SoftDrop, true},
		{"up arrow", keyboard.KeyEvent{Key: keyboard.KeyArrowUp}, tetris.Rotate, true},
		{"w", keyboard.KeyEvent{Rune: 'w'}, tetris.Rotate, true},
		{"esc", keyboard.KeyEvent{Key: keyboard.KeyEsc}, tetris.TogglePause, true},
		{"enter", keyboard.KeyEvent{Key: keyboard.KeyEnter}, tetris.Restart, true},
		{"q", keyboard.KeyEvent{Rune: 'q'}, tetris.Quit, true},
		{"ctrl-c", keyboard.KeyEvent{Key: keyboard.KeyCtrlC}, tetris.Quit, true},
		{"unbound", keyboard.KeyEvent{Rune: 'x'}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := actionFor(tt.event)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("wanted (%v, %v), got (%v, %v)", tt.want, tt.wantOK, got, ok)
			}
		})
	}
}

func TestCenter(t *testing.T) {
	if got := center("ab", 6); got != "  ab  " {
		t.Errorf("wanted %q, got %q", "  ab  ", got)
	}
	if got := center("abcdefgh", 4); got != "abcd" {
		t.Errorf("wanted %q, got %q", "abcd", got)
	}
}
