package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/sheikhrachel/go-life/driver"
	"github.com/sheikhrachel/go-life/model"
	"github.com/sheikhrachel/go-life/utils"
)

var version = "0.2.0-dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "go-life",
		Short: "Conway's Game of Life in the terminal",
		Long: `go-life runs Conway's Game of Life on a wrapping or bounded grid,
seeded at random or from a named pattern, and draws every generation
to the terminal.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON")

	rootCmd.AddCommand(
		newRunCmd(),
		newPatternsCmd(),
		newVersionCmd(),
	)
	return rootCmd
}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the simulation until interrupted or the generation limit is hit",
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := loadRunConfig(cmd)
			if err != nil {
				return err
			}
			logger := utils.NewLogger(config.LogLevel, cmd.ErrOrStderr())
			out := cmd.OutOrStdout()

			grid, gm, err := initializeGame(config, out, logger)
			if err != nil {
				return err
			}
			gm.clearScreen, _ = cmd.Flags().GetBool("clear")
			displayGameInfo(out, config, grid)

			// Handle Ctrl+C gracefully
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			d := driver.New(grid, driver.WithFrame(gm.frame), driver.WithLogger(logger))
			if err := d.Run(ctx, config.Rate); err != nil {
				return err
			}
			runErr := d.Wait()
			if ctx.Err() != nil {
				fmt.Fprintln(out, "\nShutting down gracefully...")
			}
			gm.displayFinalStats()
			return runErr
		},
	}

	defaults := utils.DefaultConfig()
	cmd.Flags().String("config", "", "Path to a JSON or YAML config file")
	cmd.Flags().Int("width", defaults.Width, "Grid width in cells")
	cmd.Flags().Int("height", defaults.Height, "Grid height in cells")
	cmd.Flags().Bool("wrap", defaults.Wraps, "Wrap coordinates around the edges")
	cmd.Flags().Int("rate", defaults.Rate, "Generations per second")
	cmd.Flags().String("pattern", "", "Seed with a named pattern instead of random cells")
	cmd.Flags().Int("padding", defaults.Padding, "Dead border cleared around the pattern")
	cmd.Flags().Bool("random-background", defaults.RandomBackground, "Stamp the pattern over randomly seeded cells")
	cmd.Flags().Float64("density", defaults.RandomDensity, "Probability a cell starts alive when seeding at random")
	cmd.Flags().Uint64("seed", 0, "Random seed (0 picks one)")
	cmd.Flags().Int("generations", defaults.MaxGenerations, "Stop after this many generations (0 runs forever)")
	cmd.Flags().Bool("auto-restart", defaults.AutoRestart, "Reseed on extinction or stagnation")
	cmd.Flags().String("log-level", defaults.LogLevel, "Log level: debug, info, warn, error")
	cmd.Flags().Bool("clear", true, "Clear the terminal before each frame")
	return cmd
}

// loadRunConfig layers explicitly set flags over the config file over the defaults
func loadRunConfig(cmd *cobra.Command) (utils.Config, error) {
	config := utils.DefaultConfig()
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		var err error
		if config, err = utils.LoadConfig(path); err != nil {
			return config, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("width") {
		config.Width, _ = flags.GetInt("width")
	}
	if flags.Changed("height") {
		config.Height, _ = flags.GetInt("height")
	}
	if flags.Changed("wrap") {
		config.Wraps, _ = flags.GetBool("wrap")
	}
	if flags.Changed("rate") {
		config.Rate, _ = flags.GetInt("rate")
	}
	if flags.Changed("pattern") {
		config.Pattern, _ = flags.GetString("pattern")
	}
	if flags.Changed("padding") {
		config.Padding, _ = flags.GetInt("padding")
	}
	if flags.Changed("random-background") {
		config.RandomBackground, _ = flags.GetBool("random-background")
	}
	if flags.Changed("density") {
		config.RandomDensity, _ = flags.GetFloat64("density")
	}
	if flags.Changed("seed") {
		config.Seed, _ = flags.GetUint64("seed")
	}
	if flags.Changed("generations") {
		config.MaxGenerations, _ = flags.GetInt("generations")
	}
	if flags.Changed("auto-restart") {
		config.AutoRestart, _ = flags.GetBool("auto-restart")
	}
	if flags.Changed("log-level") {
		config.LogLevel, _ = flags.GetString("log-level")
	}

	if err := config.Validate(); err != nil {
		return config, errors.Wrap(err, "[loadRunConfig]")
	}
	return config, nil
}

func newPatternsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "patterns",
		Short: "List the built-in patterns",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				// []uint8 rows would encode as base64, so widen them
				rows := make(map[string][][]int, len(model.Patterns))
				for name, p := range model.Patterns {
					for _, row := range p {
						r := make([]int, len(row))
						for i, v := range row {
							r[i] = int(v)
						}
						rows[name] = append(rows[name], r)
					}
				}
				return json.NewEncoder(out).Encode(rows)
			}
			for _, name := range model.PatternNames() {
				p := model.Patterns[name]
				fmt.Fprintf(out, "%-12s %dx%d\n", name, p.Width(), p.Height())
			}
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]string{"version": version})
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "go-life version %s\n", version)
			}
		},
	}
}
