package level

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strconv"
	"strings"
)

// ErrLevelNotFound is returned when no grid text exists for a level number.
var ErrLevelNotFound = errors.New("level not found")

//go:embed levels/*.txt
var builtinFS embed.FS

// Source provides grid text by level number.
type Source interface {
	Text(n int) (string, error)
}

// FileName returns the conventional file name for level n.
func FileName(n int) string {
	return fmt.Sprintf("level%d.txt", n)
}

// FSSource reads level<N>.txt files from a file system.
type FSSource struct {
	fsys fs.FS
	name string
}

// NewFSSource creates a source over fsys. Name is used in error messages.
func NewFSSource(fsys fs.FS, name string) *FSSource {
	return &FSSource{fsys: fsys, name: name}
}

// Dir returns a source reading level files from a directory on disk.
func Dir(dir string) *FSSource {
	return NewFSSource(os.DirFS(dir), dir)
}

// Builtin returns the level pack compiled into the binary.
func Builtin() *FSSource {
	sub, err := fs.Sub(builtinFS, "levels")
	if err != nil {
		// The embed pattern guarantees the directory exists
		panic(fmt.Sprintf("level: builtin pack: %v", err))
	}
	return NewFSSource(sub, "builtin")
}

// Name returns a human-readable name of the source.
func (s *FSSource) Name() string {
	return s.name
}

// Text returns the grid text of level n.
func (s *FSSource) Text(n int) (string, error) {
	file := FileName(n)
	data, err := fs.ReadFile(s.fsys, file)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("level: %w: %s in %s", ErrLevelNotFound, file, s.name)
		}
		return "", fmt.Errorf("level: reading %s: %w", file, err)
	}
	return string(data), nil
}

// Numbers lists the level numbers available in the source, sorted ascending.
func (s *FSSource) Numbers() ([]int, error) {
	matches, err := fs.Glob(s.fsys, "level*.txt")
	if err != nil {
		return nil, fmt.Errorf("level: listing %s: %w", s.name, err)
	}

	var numbers []int
	for _, m := range matches {
		digits := strings.TrimSuffix(strings.TrimPrefix(path.Base(m), "level"), ".txt")
		n, err := strconv.Atoi(digits)
		if err != nil || n < 1 {
			continue
		}
		numbers = append(numbers, n)
	}
	sort.Ints(numbers)
	return numbers, nil
}

// Load fetches and parses level n from src.
func Load(src Source, n int) (Layout, error) {
	text, err := src.Text(n)
	if err != nil {
		return Layout{}, err
	}
	return Parse(text), nil
}
