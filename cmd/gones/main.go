// Command gones runs an iNES ROM in an SDL2 window, or in headless mode
// for automated runs.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/urfave/cli"

	"github.com/nesquik/corenes/internal/console"
	"github.com/nesquik/corenes/internal/display"
	"github.com/nesquik/corenes/internal/ines"
	"github.com/nesquik/corenes/internal/logger"
)

func main() {
	app := cli.NewApp()
	app.Name = "gones"
	app.Usage = "run an iNES ROM"
	app.UsageText = "gones [options] <rom-file>"
	app.Flags = []cli.Flag{
		cli.StringFlag{Name: "log-level", Value: "off", Usage: "off, error, info, debug, trace"},
		cli.BoolFlag{Name: "headless", Usage: "run without a window, for scripted test runs"},
		cli.IntFlag{Name: "frames", Value: 600, Usage: "frame count for --headless"},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(ctx *cli.Context) error {
	if ctx.NArg() < 1 {
		return cli.NewExitError("a ROM path is required", 1)
	}
	romPath := ctx.Args().Get(0)

	f, err := os.Open(romPath)
	if err != nil {
		return fmt.Errorf("gones: %w", err)
	}
	defer f.Close()

	cart, err := ines.Load(f)
	if err != nil {
		return fmt.Errorf("gones: %w", err)
	}

	level := parseLevel(ctx.String("log-level"))
	tracer := logger.New(level, os.Stderr)

	c, err := console.New(cart, console.Options{SampleRate: 48000, Tracer: tracer})
	if err != nil {
		return fmt.Errorf("gones: %w", err)
	}

	if ctx.Bool("headless") {
		frames := ctx.Int("frames")
		for i := 0; i < frames; i++ {
			c.StepFrame()
		}
		return nil
	}

	win, err := display.Open(c)
	if err != nil {
		return fmt.Errorf("gones: opening display: %w", err)
	}
	defer win.Close()

	win.Run()
	return nil
}

func parseLevel(s string) logger.Level {
	switch s {
	case "error":
		return logger.LevelError
	case "info":
		return logger.LevelInfo
	case "debug":
		return logger.LevelDebug
	case "trace":
		return logger.LevelTrace
	default:
		return logger.LevelOff
	}
}
