package model

import "github.com/sheikhrachel/go-life/rules"

// Direction is one of the eight compass points a neighbor can sit at
type Direction int

const (
	North Direction = iota
	NorthEast
	East
	SouthEast
	South
	SouthWest
	West
	NorthWest

	numDirections
)

// Directions lists every compass direction in clockwise order starting at North
var Directions = [numDirections]Direction{
	North, NorthEast, East, SouthEast, South, SouthWest, West, NorthWest,
}

// Screen coordinates: y grows downwards, so North is y-1.
var directionOffsets = [numDirections][2]int{
	North:     {0, -1},
	NorthEast: {1, -1},
	East:      {1, 0},
	SouthEast: {1, 1},
	South:     {0, 1},
	SouthWest: {-1, 1},
	West:      {-1, 0},
	NorthWest: {-1, -1},
}

var directionNames = [numDirections]string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}

// Offset returns the (dx, dy) step that leads from a cell to its neighbor in this direction
func (d Direction) Offset() (dx, dy int) {
	return directionOffsets[d][0], directionOffsets[d][1]
}

func (d Direction) String() string {
	if d < 0 || d >= numDirections {
		return "?"
	}
	return directionNames[d]
}

// Cell is a single unit of the board. Neighbor pointers are lookup-only;
// the Grid owns every Cell.
type Cell struct {
	alive        bool
	pendingAlive bool
	neighbors    [numDirections]*Cell
}

// Alive reports the current state of the cell
func (c *Cell) Alive() bool {
	return c.alive
}

// PendingAlive reports the state staged for the next generation
func (c *Cell) PendingAlive() bool {
	return c.pendingAlive
}

// SetAlive overrides the current state directly, bypassing the rules
func (c *Cell) SetAlive(alive bool) {
	c.alive = alive
}

// Neighbor returns the neighbor in direction d, or false if there is none
func (c *Cell) Neighbor(d Direction) (*Cell, bool) {
	if d < 0 || d >= numDirections {
		return nil, false
	}
	n := c.neighbors[d]
	return n, n != nil
}

// NeighborCount returns how many directions resolve to a neighbor
func (c *Cell) NeighborCount() (count int) {
	for _, n := range c.neighbors {
		if n != nil {
			count++
		}
	}
	return
}

// LiveNeighbors counts the neighbors that are currently alive
func (c *Cell) LiveNeighbors() (count int) {
	for _, n := range c.neighbors {
		if n != nil && n.alive {
			count++
		}
	}
	return
}

// ComputeNextState stages the next generation's state from the current neighbor census.
// It never touches the current state.
func (c *Cell) ComputeNextState() {
	c.pendingAlive = rules.ApplyConwayRules(c.LiveNeighbors(), c.alive)
}

// Commit moves the cell to its staged state
func (c *Cell) Commit() {
	c.alive = c.pendingAlive
}

func (c *Cell) link(d Direction, n *Cell) {
	if n == c {
		return
	}
	c.neighbors[d] = n
}
