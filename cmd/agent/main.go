// Command agent plays tile match boards locally, without a server or a real
// screen. The play command drives the full observe-solve-execute cycle
// against a simulated board, which makes it the fastest way to exercise a
// profile or a level layout. The roi command helps calibrate a profile's
// board region from two corner points.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/tilebot/tilebot/game/engine"
	"github.com/tilebot/tilebot/game/runner"
	"github.com/tilebot/tilebot/game/sim"
	"github.com/tilebot/tilebot/game/vision"
	"github.com/urfave/cli/v3"
)

func main() {
	cmd := &cli.Command{
		Name:  "agent",
		Usage: "Local tile match bot agent",
		Commands: []*cli.Command{
			playCommand(),
			roiCommand(),
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func playCommand() *cli.Command {
	return &cli.Command{
		Name:  "play",
		Usage: "Play a simulated board to completion",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "level",
				Usage: "Path to a level JSON file (omit to generate one)",
			},
			&cli.StringFlag{
				Name:  "profile",
				Usage: "Path to a bot profile JSON file (omit for defaults)",
			},
			&cli.IntFlag{
				Name:  "rows",
				Value: 8,
				Usage: "Rows for a generated level",
			},
			&cli.IntFlag{
				Name:  "cols",
				Value: 10,
				Usage: "Columns for a generated level",
			},
			&cli.IntFlag{
				Name:  "classes",
				Value: 12,
				Usage: "Tile classes for a generated level",
			},
			&cli.IntFlag{
				Name:  "seed",
				Value: 1,
				Usage: "Seed for a generated level",
			},
			&cli.IntFlag{
				Name:  "max-cycles",
				Value: 2000,
				Usage: "Cycle limit before giving up (0 = unbounded)",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Log every cycle",
			},
		},
		Action: runPlay,
	}
}

func runPlay(ctx context.Context, cmd *cli.Command) error {
	var level *sim.Level
	var err error

	if path := cmd.String("level"); path != "" {
		level, err = sim.LoadLevel(path)
	} else {
		level, err = sim.Generate(
			int(cmd.Int("rows")),
			int(cmd.Int("cols")),
			int(cmd.Int("classes")),
			int64(cmd.Int("seed")),
		)
	}
	if err != nil {
		return err
	}

	var cfg *engine.BotConfig
	if path := cmd.String("profile"); path != "" {
		cfg, err = engine.LoadBotConfig(path)
		if err != nil {
			return err
		}
	} else {
		cfg = engine.DefaultBotConfig()
	}

	// The simulation settles instantly, and the profile must match the
	// level's grid.
	cfg.Rows = level.Rows
	cfg.Cols = level.Cols
	cfg.PostClickWaitMs = 0

	eng, err := engine.NewEngine(cfg)
	if err != nil {
		return err
	}

	game, err := sim.NewGame(level)
	if err != nil {
		return err
	}

	opts := []runner.Option{
		runner.WithMaxCycles(int(cmd.Int("max-cycles"))),
	}
	if cmd.Bool("verbose") {
		opts = append(opts, runner.WithLogger(log.New(os.Stderr, "", log.LstdFlags)))
	}

	log.Printf("Playing %s (%dx%d, %d tiles)", level.Name, level.Rows, level.Cols, game.Remaining())

	sum, err := runner.New(eng, game, game, opts...).Run(ctx)
	if err != nil {
		return err
	}

	log.Printf("Cycles: %d, Moves: %d, Failures: %d, Rescans: %d",
		sum.Cycles, sum.Moves, sum.Failures, sum.Rescans)

	if sum.Cleared {
		log.Printf("🎉 Board cleared in %d moves", sum.Moves)
		return nil
	}

	log.Printf("Board not cleared (%s), %d tiles remain", sum.StopReason, game.Remaining())
	os.Exit(1)
	return nil
}

func roiCommand() *cli.Command {
	return &cli.Command{
		Name:  "roi",
		Usage: "Compute a board region and cell centers from two corner points",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "x1", Required: true, Usage: "First corner X"},
			&cli.IntFlag{Name: "y1", Required: true, Usage: "First corner Y"},
			&cli.IntFlag{Name: "x2", Required: true, Usage: "Second corner X"},
			&cli.IntFlag{Name: "y2", Required: true, Usage: "Second corner Y"},
			&cli.IntFlag{Name: "rows", Value: 8, Usage: "Grid rows"},
			&cli.IntFlag{Name: "cols", Value: 10, Usage: "Grid columns"},
		},
		Action: runROI,
	}
}

func runROI(ctx context.Context, cmd *cli.Command) error {
	a := vision.Point{X: int(cmd.Int("x1")), Y: int(cmd.Int("y1"))}
	b := vision.Point{X: int(cmd.Int("x2")), Y: int(cmd.Int("y2"))}

	region, err := vision.RegionFromCorners(a, b)
	if err != nil {
		return err
	}

	cfg := engine.DefaultBotConfig()
	cfg.BoardX = region.X
	cfg.BoardY = region.Y
	cfg.BoardW = region.W
	cfg.BoardH = region.H
	cfg.Rows = int(cmd.Int("rows"))
	cfg.Cols = int(cmd.Int("cols"))

	fmt.Printf("Region: x=%d y=%d w=%d h=%d\n", region.X, region.Y, region.W, region.H)
	fmt.Printf("Grid: %dx%d\n\n", cfg.Rows, cfg.Cols)
	fmt.Println("Cell centers:")

	for row := 0; row < cfg.Rows; row++ {
		for col := 0; col < cfg.Cols; col++ {
			center, err := vision.CellCenter(engine.Cell{Row: row, Col: col}, cfg)
			if err != nil {
				return err
			}
			fmt.Printf("(%4d,%4d) ", center.X, center.Y)
		}
		fmt.Println()
	}

	fmt.Printf("\nProfile fragment:\n")
	fmt.Printf("  \"board_x\": %d,\n  \"board_y\": %d,\n  \"board_w\": %d,\n  \"board_h\": %d,\n  \"rows\": %d,\n  \"cols\": %d\n",
		region.X, region.Y, region.W, region.H, cfg.Rows, cfg.Cols)

	return nil
}
