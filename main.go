package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"golang.org/x/term"

	"tetris/config"
	"tetris/highscore"
	"tetris/terminal"
	"tetris/tetris"
)

const (
	hideCursor = "\033[2J\033[?25l" // also clear screen
	showCursor = "\033[?25h"

	configPath = "tetris.toml"
	logPath    = "tetris.log"
)

func main() {
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatal(err)
	}
	shapes, err := cfg.ShapeSet()
	if err != nil {
		log.Fatal(err)
	}

	// stdout belongs to the game while the console is raw, so diagnostics
	// go to a file.
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.Fatal(err)
	}
	defer logFile.Close()
	logger := slog.New(slog.NewTextHandler(logFile, nil))

	store := &highscore.File{Path: cfg.Game.HighscorePath}
	if _, err := os.Stat(store.Path); os.IsNotExist(err) {
		if err := store.Save(0); err != nil {
			log.Fatal(err)
		}
	}
	score, err := store.Load()
	if err != nil {
		logger.Warn("unable to load highscore, starting from zero", slog.String("error", err.Error()))
	}

	game := tetris.NewGame(tetris.GameOptions{
		Interval:  cfg.Interval(),
		Store:     store,
		Highscore: score,
		Board: tetris.BoardOptions{
			Source:            tetris.NewSource(seed(), shapes, cfg.Game.SpawnRotations),
			GravityAfterClear: cfg.Game.GravityAfterClear,
		},
	})

	restore := startRawConsole()
	t := terminal.New(&terminal.Options{Logger: logger, Game: game})
	t.Start()
	restore()

	if err := store.Save(game.Read().Highscore); err != nil {
		log.Fatalf("unable to save highscore: %v", err)
	}
}

func seed() int64 { return time.Now().UnixNano() }

func startRawConsole() func() {
	fmt.Print(hideCursor)
	oldState, err := term.MakeRaw(int(os.Stdin.Fd()))
	if err != nil {
		log.Fatalf("Error setting terminal to raw mode: %v", err)
	}

	return func() {
		if err := term.Restore(int(os.Stdin.Fd()), oldState); err != nil {
			log.Fatalf("unable to restore the terminal original state: %v", err)
		}
		fmt.Print(showCursor)
	}
}
