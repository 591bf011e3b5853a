package rules

/*
ApplyConwayRules applies Conway's Game of Life rules to determine the next state of a cell.

	alive with fewer than 2 live neighbors dies (under-population)
	alive with 2 or 3 live neighbors stays alive
	alive with 4 or more live neighbors dies (over-population)
	dead with exactly 3 live neighbors becomes alive (reproduction)
	dead with any other count stays dead
*/
func ApplyConwayRules(neighbors int, alive bool) bool {
	if alive {
		return neighbors >= 2 && neighbors < 4
	}
	return neighbors == 3
}
