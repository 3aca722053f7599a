// Package config loads the game's TOML configuration. A missing file
// yields the defaults; a malformed or invalid file is an error.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/BurntSushi/toml"

	"tetris/tetris"
)

type Config struct {
	Game Game `toml:"game"`
}

type Game struct {
	// TickMillis is the gravity cadence in milliseconds.
	TickMillis int `toml:"tick_millis"`
	// HighscorePath is the 8-byte highscore file location.
	HighscorePath string `toml:"highscore_path"`
	// Shapes restricts which pieces the generator draws. Defaults to all.
	Shapes []string `toml:"shapes"`
	// SpawnRotations gives each new piece up to three random turns.
	SpawnRotations bool `toml:"spawn_rotations"`
	// GravityAfterClear drops settled blocks above a cleared row.
	GravityAfterClear bool `toml:"gravity_after_clear"`
}

func Default() *Config {
	return &Config{
		Game: Game{
			TickMillis:        150,
			HighscorePath:     "Highscore.bin",
			Shapes:            shapeNames(tetris.PlayableShapes),
			GravityAfterClear: true,
		},
	}
}

// Load reads the config at path, falling back to defaults when the file
// doesn't exist. Fields absent from the file keep their default value.
func Load(path string) (*Config, error) {
	c := Default()
	if _, err := toml.DecodeFile(path, c); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return c, nil
		}
		return nil, fmt.Errorf("loading config %q: %w", path, err)
	}
	if err := c.validate(); err != nil {
		return nil, fmt.Errorf("invalid config %q: %w", path, err)
	}
	return c, nil
}

func (c *Config) validate() error {
	if c.Game.TickMillis <= 0 {
		return errors.New("tick_millis must be positive")
	}
	if c.Game.HighscorePath == "" {
		return errors.New("highscore_path must not be empty")
	}
	if len(c.Game.Shapes) == 0 {
		return errors.New("shapes must not be empty")
	}
	if _, err := c.ShapeSet(); err != nil {
		return err
	}
	return nil
}

// Interval returns the gravity cadence as a duration.
func (c *Config) Interval() time.Duration {
	return time.Duration(c.Game.TickMillis) * time.Millisecond
}

// ShapeSet resolves the configured shape names against the playable set.
func (c *Config) ShapeSet() ([]tetris.Shape, error) {
	var shapes []tetris.Shape
	for _, name := range c.Game.Shapes {
		s := tetris.Shape(name)
		if !playable(s) {
			return nil, fmt.Errorf("unknown shape %q", name)
		}
		shapes = append(shapes, s)
	}
	return shapes, nil
}

func playable(s tetris.Shape) bool {
	for _, p := range tetris.PlayableShapes {
		if s == p {
			return true
		}
	}
	return false
}

func shapeNames(shapes []tetris.Shape) []string {
	names := make([]string, len(shapes))
	for i, s := range shapes {
		names[i] = string(s)
	}
	return names
}
