package model

import "testing"

// cellWithNeighbors builds a cell whose first n neighbor slots hold live cells
func cellWithNeighbors(alive bool, n int) *Cell {
	c := &Cell{alive: alive}
	for i := 0; i < n; i++ {
		c.neighbors[Directions[i]] = &Cell{alive: true}
	}
	return c
}

func TestCellStartsDead(t *testing.T) {
	var c Cell
	if c.Alive() || c.PendingAlive() {
		t.Fatal("new cell should be dead")
	}
	if c.NeighborCount() != 0 {
		t.Fatalf("new cell has %d neighbors, want 0", c.NeighborCount())
	}
}

func TestCellTransitionTable(t *testing.T) {
	tests := []struct {
		name      string
		alive     bool
		neighbors int
		want      bool
	}{
		{"alive 0 under-population", true, 0, false},
		{"alive 1 under-population", true, 1, false},
		{"alive 2 stable", true, 2, true},
		{"alive 3 stable", true, 3, true},
		{"alive 4 over-population", true, 4, false},
		{"alive 5 over-population", true, 5, false},
		{"alive 8 over-population", true, 8, false},
		{"dead 0 stays dead", false, 0, false},
		{"dead 2 stays dead", false, 2, false},
		{"dead 3 reproduction", false, 3, true},
		{"dead 4 stays dead", false, 4, false},
		{"dead 8 stays dead", false, 8, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := cellWithNeighbors(tt.alive, tt.neighbors)
			c.ComputeNextState()
			if c.Alive() != tt.alive {
				t.Fatal("ComputeNextState changed the current state")
			}
			if c.PendingAlive() != tt.want {
				t.Fatalf("PendingAlive() = %v, want %v", c.PendingAlive(), tt.want)
			}
			c.Commit()
			if c.Alive() != tt.want {
				t.Fatalf("after Commit Alive() = %v, want %v", c.Alive(), tt.want)
			}
		})
	}
}

func TestCellDeadStaysDeadClearsStalePending(t *testing.T) {
	c := cellWithNeighbors(false, 1)
	c.pendingAlive = true
	c.ComputeNextState()
	if c.PendingAlive() {
		t.Fatal("dead cell with one neighbor kept a stale pending state")
	}
}

func TestCellIgnoresDeadAndMissingNeighbors(t *testing.T) {
	c := &Cell{}
	c.neighbors[North] = &Cell{alive: true}
	c.neighbors[East] = &Cell{alive: true}
	c.neighbors[South] = &Cell{}
	c.neighbors[West] = &Cell{alive: true}

	if got := c.LiveNeighbors(); got != 3 {
		t.Fatalf("LiveNeighbors() = %d, want 3", got)
	}
	if got := c.NeighborCount(); got != 4 {
		t.Fatalf("NeighborCount() = %d, want 4", got)
	}
	if _, ok := c.Neighbor(NorthEast); ok {
		t.Fatal("NorthEast should be absent")
	}
}

func TestCellSetAliveBypassesRules(t *testing.T) {
	c := cellWithNeighbors(false, 0)
	c.SetAlive(true)
	if !c.Alive() {
		t.Fatal("SetAlive(true) did not take effect")
	}
	if c.PendingAlive() {
		t.Fatal("SetAlive should not stage a pending state")
	}
}

func TestCellLinkSkipsSelf(t *testing.T) {
	c := &Cell{}
	c.link(North, c)
	if c.NeighborCount() != 0 {
		t.Fatal("cell linked to itself")
	}
}

func TestDirectionOffsets(t *testing.T) {
	seen := map[[2]int]bool{}
	for _, d := range Directions {
		dx, dy := d.Offset()
		if dx == 0 && dy == 0 {
			t.Fatalf("%v has a zero offset", d)
		}
		seen[[2]int{dx, dy}] = true
	}
	if len(seen) != 8 {
		t.Fatalf("got %d distinct offsets, want 8", len(seen))
	}
	if North.String() != "N" || NorthWest.String() != "NW" {
		t.Fatalf("unexpected direction names %v %v", North, NorthWest)
	}
}
