// Package highscore persists the highscore as a single unsigned 64-bit
// little-endian integer in an 8-byte file.
package highscore

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
)

const size = 8

// Save truncates the file at path and writes n.
func Save(path string, n uint64) error {
	var buf [size]byte
	binary.LittleEndian.PutUint64(buf[:], n)
	if err := os.WriteFile(path, buf[:], 0o644); err != nil {
		return fmt.Errorf("saving highscore: %w", err)
	}
	return nil
}

// Read returns the stored highscore. It fails when the file is absent or
// holds fewer than 8 bytes.
func Read(path string) (uint64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("reading highscore: %w", err)
	}
	defer f.Close()
	var buf [size]byte
	if _, err := io.ReadFull(f, buf[:]); err != nil {
		return 0, fmt.Errorf("reading highscore: %w", err)
	}
	return binary.LittleEndian.Uint64(buf[:]), nil
}

// File is a score store bound to one path. A missing or truncated file
// loads as zero; only real I/O failures surface.
type File struct {
	Path string
}

func (f *File) Save(n uint64) error { return Save(f.Path, n) }

func (f *File) Load() (uint64, error) {
	n, err := Read(f.Path)
	if errors.Is(err, fs.ErrNotExist) || errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return n, nil
}
