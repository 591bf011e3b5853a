package model

import (
	"sort"

	"github.com/pkg/errors"
)

// Pattern is a rectangular 0/1 template; rows run top to bottom, 1 marks a live cell
type Pattern [][]uint8

// Width returns the number of columns in the template
func (p Pattern) Width() int {
	if len(p) == 0 {
		return 0
	}
	return len(p[0])
}

// Height returns the number of rows in the template
func (p Pattern) Height() int {
	return len(p)
}

// Validate checks that the template is non-empty and every row has the same length
func (p Pattern) Validate() error {
	if len(p) == 0 || len(p[0]) == 0 {
		return errors.Wrap(ErrInvalidPattern, "[Validate] empty template")
	}
	for i, row := range p {
		if len(row) != len(p[0]) {
			return errors.Wrapf(ErrInvalidPattern, "[Validate] row %d has %d columns, want %d", i, len(row), len(p[0]))
		}
	}
	return nil
}

// Patterns is the library of named still lifes, oscillators, spaceships and methuselahs
var Patterns = map[string]Pattern{
	"glider": {
		{0, 1, 0},
		{0, 0, 1},
		{1, 1, 1},
	},
	"f-pentomino": {
		{0, 1, 1},
		{1, 1, 0},
		{0, 1, 0},
	},
	"diehard": {
		{0, 0, 0, 0, 0, 0, 1, 0},
		{1, 1, 0, 0, 0, 0, 0, 0},
		{0, 1, 0, 0, 0, 1, 1, 1},
	},
	"blinker": {
		{1, 1, 1},
	},
	"block": {
		{1, 1},
		{1, 1},
	},
	"beehive": {
		{0, 1, 1, 0},
		{1, 0, 0, 1},
		{0, 1, 1, 0},
	},
	"toad": {
		{0, 1, 1, 1},
		{1, 1, 1, 0},
	},
	"beacon": {
		{1, 1, 0, 0},
		{1, 1, 0, 0},
		{0, 0, 1, 1},
		{0, 0, 1, 1},
	},
	"lwss": {
		{0, 1, 0, 0, 1},
		{1, 0, 0, 0, 0},
		{1, 0, 0, 0, 1},
		{1, 1, 1, 1, 0},
	},
	"acorn": {
		{0, 1, 0, 0, 0, 0, 0},
		{0, 0, 0, 1, 0, 0, 0},
		{1, 1, 0, 0, 1, 1, 1},
	},
}

// LookupPattern returns the named pattern from the library
func LookupPattern(name string) (Pattern, error) {
	p, ok := Patterns[name]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownPattern, "[LookupPattern] %q", name)
	}
	return p, nil
}

// PatternNames returns the library's pattern names in sorted order
func PatternNames() []string {
	names := make([]string, 0, len(Patterns))
	for name := range Patterns {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// StampPattern clears the padded rectangle whose top-left corner is (originX, originY)
// and writes p inside it, inset by padding on every side. Writes that fall off a
// non-wrapping board are skipped.
func (g *Grid) StampPattern(p Pattern, originX, originY, padding int) error {
	if !g.ready {
		return errors.Wrap(ErrNotInitialized, "[StampPattern]")
	}
	if err := p.Validate(); err != nil {
		return errors.Wrap(err, "[StampPattern]")
	}
	if padding < 0 {
		return errors.Wrapf(ErrInvalidPattern, "[StampPattern] negative padding %d", padding)
	}

	w, h := p.Width(), p.Height()
	for j := range h + 2*padding {
		for i := range w + 2*padding {
			c, ok := g.Cell(originX+i, originY+j)
			if !ok {
				continue
			}
			px, py := i-padding, j-padding
			c.alive = px >= 0 && px < w && py >= 0 && py < h && p[py][px] != 0
		}
	}
	g.recount()
	return nil
}

// StampNamed stamps a pattern from the library
func (g *Grid) StampNamed(name string, originX, originY, padding int) error {
	p, err := LookupPattern(name)
	if err != nil {
		return err
	}
	return g.StampPattern(p, originX, originY, padding)
}
