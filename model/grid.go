package model

import (
	"crypto/md5"
	"fmt"
	"math/rand/v2"

	"github.com/pkg/errors"
)

const historySize = 5

// Grid represents the game board. The zero value is uninitialized; call Init or use NewGrid.
type Grid struct {
	width  int
	height int
	wraps  bool
	cells  [][]*Cell // indexed [x][y]
	ready  bool

	generation int
	population int

	history []string // Store recent grid states for cycle detection
}

// NewGrid creates a ready grid with the specified dimensions and edge policy
func NewGrid(width, height int, wraps bool) (*Grid, error) {
	g := &Grid{}
	if err := g.Init(width, height, wraps); err != nil {
		return nil, err
	}
	return g, nil
}

// Init builds width*height dead cells and links each one to its neighbors.
// Calling it again replaces every cell, so Cell pointers taken earlier go stale.
func (g *Grid) Init(width, height int, wraps bool) error {
	if width <= 0 || height <= 0 {
		return errors.Wrapf(ErrInvalidDimensions, "[Init] got %dx%d", width, height)
	}

	g.width = width
	g.height = height
	g.wraps = wraps
	g.generation = 0
	g.population = 0
	g.history = nil

	g.cells = make([][]*Cell, width)
	for x := range width {
		g.cells[x] = make([]*Cell, height)
		for y := range height {
			g.cells[x][y] = &Cell{}
		}
	}
	g.ready = true

	// Neighbors can only be resolved once every cell exists
	return g.ForEachCell(func(c *Cell, x, y int) {
		for _, d := range Directions {
			dx, dy := d.Offset()
			if n, ok := g.Cell(x+dx, y+dy); ok {
				c.link(d, n)
			}
		}
	})
}

// Width returns the width of the grid
func (g *Grid) Width() int {
	return g.width
}

// Height returns the height of the grid
func (g *Grid) Height() int {
	return g.height
}

// Wraps reports whether coordinates wrap around the edges
func (g *Grid) Wraps() bool {
	return g.wraps
}

// Generation returns the number of ticks applied since Init or the last Reset
func (g *Grid) Generation() int {
	return g.generation
}

// Population returns the number of living cells
func (g *Grid) Population() int {
	return g.population
}

// Ready reports whether Init has completed
func (g *Grid) Ready() bool {
	return g.ready
}

// Cell looks up the cell at (x, y). On a wrapping grid every coordinate resolves;
// otherwise coordinates off the board report false.
func (g *Grid) Cell(x, y int) (*Cell, bool) {
	if !g.ready {
		return nil, false
	}
	if g.wraps {
		x = mod(x, g.width)
		y = mod(y, g.height)
	}
	if x < 0 || x >= g.width || y < 0 || y >= g.height {
		return nil, false
	}
	return g.cells[x][y], true
}

// Alive returns the state of the cell at (x, y); absent cells read as dead
func (g *Grid) Alive(x, y int) bool {
	c, ok := g.Cell(x, y)
	return ok && c.alive
}

// ForEachCell visits every cell once in row-major order: row 0 left to right, then row 1, ...
func (g *Grid) ForEachCell(fn func(c *Cell, x, y int)) error {
	if !g.ready {
		return errors.Wrap(ErrNotInitialized, "[ForEachCell]")
	}
	for y := range g.height {
		for x := range g.width {
			fn(g.cells[x][y], x, y)
		}
	}
	return nil
}

// Tick advances the board by one generation. Every cell computes its next state
// before any cell commits, so the result does not depend on visiting order.
func (g *Grid) Tick() error {
	if !g.ready {
		return errors.Wrap(ErrNotInitialized, "[Tick]")
	}
	g.generation++

	_ = g.ForEachCell(func(c *Cell, _, _ int) {
		c.ComputeNextState()
	})

	population := 0
	_ = g.ForEachCell(func(c *Cell, _, _ int) {
		c.Commit()
		if c.alive {
			population++
		}
	})
	g.population = population
	return nil
}

// Randomize sets every cell alive with probability one half. A nil rng uses the global source.
func (g *Grid) Randomize(rng *rand.Rand) error {
	return g.RandomizeDensity(rng, 0.5)
}

// RandomizeDensity sets every cell alive with probability density
func (g *Grid) RandomizeDensity(rng *rand.Rand, density float64) error {
	if !g.ready {
		return errors.Wrap(ErrNotInitialized, "[RandomizeDensity]")
	}
	_ = g.ForEachCell(func(c *Cell, _, _ int) {
		c.alive = randFloat(rng) < density
	})
	g.recount()
	return nil
}

// Reset zeroes the generation counter. When clear is set every cell is killed as well.
func (g *Grid) Reset(clear bool) error {
	if !g.ready {
		return errors.Wrap(ErrNotInitialized, "[Reset]")
	}
	g.generation = 0
	g.history = nil
	if clear {
		_ = g.ForEachCell(func(c *Cell, _, _ int) {
			c.alive = false
		})
		g.population = 0
	}
	return nil
}

// CountLivingCells walks the board and returns the total number of living cells
func (g *Grid) CountLivingCells() (count int) {
	_ = g.ForEachCell(func(c *Cell, _, _ int) {
		if c.alive {
			count++
		}
	})
	return
}

func (g *Grid) recount() {
	g.population = g.CountLivingCells()
}

// Hash returns an MD5 digest of the current board state
func (g *Grid) Hash() string {
	h := md5.New()
	_ = g.ForEachCell(func(c *Cell, _, _ int) {
		if c.alive {
			h.Write([]byte{1})
		} else {
			h.Write([]byte{0})
		}
	})
	return fmt.Sprintf("%x", h.Sum(nil))
}

// UpdateHistory adds current state to history and maintains size
func (g *Grid) UpdateHistory() {
	g.history = append(g.history, g.Hash())
	if len(g.history) > historySize {
		g.history = g.history[1:]
	}
}

// IsStagnant reports whether the current state matches one of the last three recorded,
// i.e. the board is a still life or a period 2 or 3 oscillator
func (g *Grid) IsStagnant() bool {
	if len(g.history) < 3 {
		return false
	}

	current := g.Hash()
	for i := 1; i <= 3; i++ {
		if g.history[len(g.history)-i] == current {
			return true
		}
	}
	return false
}

// InjectRandomLife brings count random cells to life to break stagnation
func (g *Grid) InjectRandomLife(rng *rand.Rand, count int) error {
	if !g.ready {
		return errors.Wrap(ErrNotInitialized, "[InjectRandomLife]")
	}
	for range count {
		g.cells[randIntN(rng, g.width)][randIntN(rng, g.height)].alive = true
	}
	g.recount()
	return nil
}

// mod is the mathematical modulo: the result is always in [0, n)
func mod(a, n int) int {
	return (a%n + n) % n
}

func randFloat(rng *rand.Rand) float64 {
	if rng == nil {
		return rand.Float64()
	}
	return rng.Float64()
}

func randIntN(rng *rand.Rand, n int) int {
	if rng == nil {
		return rand.IntN(n)
	}
	return rng.IntN(n)
}
