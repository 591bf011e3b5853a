package main

import (
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-life/driver"
	"github.com/sheikhrachel/go-life/model"
	"github.com/sheikhrachel/go-life/utils"
)

const periodicRefresh = 200

// game carries the state the frame callback needs between generations
type game struct {
	config      utils.Config
	rng         *rand.Rand
	renderer    *model.TerminalRenderer
	stats       *utils.Stats
	logger      *slog.Logger
	out         io.Writer
	clearScreen bool

	totalGenerations int
	stagnantCount    int
	restarts         int
	lastFrameTime    time.Time
}

// initializeGame sets up the initial game state
func initializeGame(config utils.Config, out io.Writer, logger *slog.Logger) (*model.Grid, *game, error) {
	grid, err := model.NewGrid(config.Width, config.Height, config.Wraps)
	if err != nil {
		return nil, nil, errors.Wrap(err, "[initializeGame] failed to create grid")
	}

	seed := config.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	logger.Debug("seeding grid", "seed", seed, "pattern", config.Pattern)

	gm := &game{
		config:        config,
		rng:           rand.New(rand.NewPCG(seed, 0)),
		renderer:      &model.TerminalRenderer{},
		stats:         utils.NewStats(),
		logger:        logger,
		out:           out,
		lastFrameTime: time.Now(),
	}
	if err := gm.seed(grid); err != nil {
		return nil, nil, err
	}
	return grid, gm, nil
}

// seed stamps the configured pattern in the middle of the board, or fills it at random.
// With a random background the pattern is stamped over random cells.
func (gm *game) seed(grid *model.Grid) error {
	if gm.config.Pattern == "" || gm.config.RandomBackground {
		if err := grid.RandomizeDensity(gm.rng, gm.config.RandomDensity); err != nil {
			return err
		}
	}
	if gm.config.Pattern == "" {
		return nil
	}

	p, err := model.LookupPattern(gm.config.Pattern)
	if err != nil {
		return err
	}
	x := (grid.Width()-p.Width())/2 - gm.config.Padding
	y := (grid.Height()-p.Height())/2 - gm.config.Padding
	return grid.StampPattern(p, x, y, gm.config.Padding)
}

// displayGameInfo shows the initial game information
func displayGameInfo(out io.Writer, config utils.Config, grid *model.Grid) {
	seeding := "random"
	switch {
	case config.Pattern != "" && config.RandomBackground:
		seeding = config.Pattern + " over random"
	case config.Pattern != "":
		seeding = config.Pattern
	}
	fmt.Fprintf(out, "Grid: %dx%d | Wraps: %v | Seed: %s | Initial living cells: %d\n",
		grid.Width(), grid.Height(), grid.Wraps(), seeding, grid.Population())
	fmt.Fprintln(out, "Press Ctrl+C to exit gracefully")
	fmt.Fprintln(out)
}

// updateGameState updates the game state and returns status information
func (gm *game) updateGameState(grid *model.Grid) (int, string, bool) {
	livingCells := grid.Population()

	frameDuration := time.Since(gm.lastFrameTime)
	gm.stats.Update(gm.totalGenerations, livingCells, grid.Width()*grid.Height(), frameDuration)

	// Compare against earlier states before recording this one
	isStagnant := grid.IsStagnant()
	grid.UpdateHistory()

	status := "Active"
	if isStagnant {
		status = "Stagnant"
	}
	if livingCells == 0 {
		status = "Extinct"
	}

	return livingCells, status, isStagnant
}

// displayGameStatus shows the current game status
func (gm *game) displayGameStatus(grid *model.Grid, status string) {
	fmt.Fprintf(gm.out, "Gen: %d | Living: %d | Density: %.1f%% | Status: %s\n",
		gm.totalGenerations, gm.stats.Population, gm.stats.Density, status)
	fmt.Fprintf(gm.out, "Performance: %.1f gen/sec | Avg Pop: %.1f | Runtime: %.1fs\n",
		gm.stats.GenerationsPerSecond, gm.stats.AveragePopulation, gm.stats.Runtime().Seconds())

	// Show time since last restart
	if gm.totalGenerations > grid.Generation() {
		fmt.Fprintf(gm.out, "Generations since restart: %d\n", grid.Generation())
	}
	fmt.Fprintln(gm.out)
}

// checkRestartConditions determines if the game should restart
func checkRestartConditions(livingCells, stagnantCount, generation int, config utils.Config) (bool, string) {
	if livingCells == 0 {
		return true, "extinction"
	}
	if config.StagnationThreshold > 0 && stagnantCount >= config.StagnationThreshold {
		return true, "stagnation detected"
	}
	if generation > 0 && generation%periodicRefresh == 0 {
		return true, "periodic refresh"
	}
	return false, ""
}

// restartGame clears the board in place and seeds it again
func (gm *game) restartGame(grid *model.Grid) error {
	if err := grid.Reset(true); err != nil {
		return errors.Wrap(err, "[restartGame]")
	}
	if err := gm.seed(grid); err != nil {
		return errors.Wrap(err, "[restartGame]")
	}
	gm.restarts++
	gm.stagnantCount = 0
	fmt.Fprintf(gm.out, "New patterns loaded! Living cells: %d\n", grid.Population())
	return nil
}

// frame draws the board, handles restarts and stops the driver at the generation limit.
// The driver ticks the grid right after it returns.
func (gm *game) frame(grid *model.Grid) error {
	frameStart := time.Now()
	if gm.clearScreen {
		if err := gm.renderer.Clear(); err != nil {
			gm.logger.Debug("clear screen failed", "err", err)
		}
	}

	livingCells, status, isStagnant := gm.updateGameState(grid)
	gm.lastFrameTime = frameStart

	if isStagnant {
		gm.stagnantCount++
	} else {
		gm.stagnantCount = 0
	}

	gm.displayGameStatus(grid, status)
	if err := gm.renderer.Display(gm.out, grid); err != nil {
		return err
	}

	if gm.config.MaxGenerations > 0 && gm.totalGenerations >= gm.config.MaxGenerations {
		fmt.Fprintf(gm.out, "\nReached maximum generations limit (%d)\n", gm.config.MaxGenerations)
		return driver.ErrStop
	}

	shouldRestart, reason := checkRestartConditions(livingCells, gm.stagnantCount, grid.Generation(), gm.config)
	switch {
	case shouldRestart && gm.config.AutoRestart:
		gm.logger.Info("restarting", "reason", reason, "generation", gm.totalGenerations)
		if err := gm.restartGame(grid); err != nil {
			return err
		}
	case gm.stagnantCount >= 2 && gm.stagnantCount < gm.config.StagnationThreshold:
		// Inject some life to try to break the stagnation
		if err := grid.InjectRandomLife(gm.rng, gm.config.InjectionCount); err != nil {
			return err
		}
	}

	gm.totalGenerations++
	return nil
}

// displayFinalStats prints the summary shown on shutdown
func (gm *game) displayFinalStats() {
	fmt.Fprintf(gm.out, "Final stats: %d generations in %.1f seconds (%d restarts)\n",
		gm.totalGenerations, gm.stats.Runtime().Seconds(), gm.restarts)
	fmt.Fprintf(gm.out, "Average: %.1f gen/sec, %.1f avg population\n",
		gm.stats.GenerationsPerSecond, gm.stats.AveragePopulation)
}
