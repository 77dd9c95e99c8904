// Package level turns text grids into entity placements for the tilt maze.
//
// Grid characters:
//
//	'w' = wall
//	'b' = black hole (hazard)
//	's' = succulent (pickup)
//	'p' = portal (exit)
//
// Any other character, including spaces and padding, places nothing.
package level

import "strings"

// Kind identifies what an entity is.
type Kind int

const (
	KindWall Kind = iota
	KindBlackHole
	KindSucculent
	KindPortal
	KindPlayer // Never produced by the parser; spawned by the world
)

// String returns the lowercase kind name.
func (k Kind) String() string {
	switch k {
	case KindWall:
		return "wall"
	case KindBlackHole:
		return "blackhole"
	case KindSucculent:
		return "succulent"
	case KindPortal:
		return "portal"
	case KindPlayer:
		return "player"
	default:
		return "unknown"
	}
}

// KindForRune maps a grid character to its entity kind.
func KindForRune(r rune) (Kind, bool) {
	switch r {
	case 'w':
		return KindWall, true
	case 'b':
		return KindBlackHole, true
	case 's':
		return KindSucculent, true
	case 'p':
		return KindPortal, true
	}
	return 0, false
}

// Placement is one parsed entity. Row 0 is the bottom of the playable area.
type Placement struct {
	Kind Kind
	Row  int
	Col  int
}

// Layout is the parsed form of a level grid.
type Layout struct {
	Placements []Placement
	Pickups    int // Number of succulents, seeds the remaining-pickup counter
	Rows       int // Number of text lines, including empty ones
	Cols       int // Length of the longest line in characters
}

// Count returns how many placements have the given kind.
func (l Layout) Count(kind Kind) int {
	n := 0
	for _, p := range l.Placements {
		if p.Kind == kind {
			n++
		}
	}
	return n
}

// Parse scans a level grid. Lines are split on '\n' only and enumerated in
// reverse, so the first text line becomes the highest row. A trailing newline
// therefore yields an empty bottom row. Parsing never fails: unknown
// characters are skipped.
func Parse(text string) Layout {
	lines := strings.Split(text, "\n")

	layout := Layout{Rows: len(lines)}
	for i := len(lines) - 1; i >= 0; i-- {
		row := len(lines) - 1 - i

		col := 0
		for _, r := range lines[i] {
			if kind, ok := KindForRune(r); ok {
				layout.Placements = append(layout.Placements, Placement{Kind: kind, Row: row, Col: col})
				if kind == KindSucculent {
					layout.Pickups++
				}
			}
			col++
		}
		if col > layout.Cols {
			layout.Cols = col
		}
	}

	return layout
}
