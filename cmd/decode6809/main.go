package main

import (
	"fmt"
	"os"
	"sort"
	"strconv"

	"gopkg.in/urfave/cli.v2"

	"decoder6809/capture"
	"decoder6809/cpu"
	"decoder6809/debugger"
	"decoder6809/memory"
	"decoder6809/trace"
)

func main() {
	app := &cli.App{
		Name:    "decode6809",
		Usage:   "decode a captured 6809/6309 bus trace into disassembly and emulated state",
		Version: "v0.0.1",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "in",
				Aliases: []string{"i"},
				Usage:   "capture file (- for stdin)",
				Value:   "-",
			},
			&cli.StringFlag{
				Name:    "variant",
				Aliases: []string{"v"},
				Usage:   "CPU variant: 6809, 6809e, 6309, 6309e",
				Value:   "6809",
			},
			&cli.StringFlag{
				Name:  "trigger-start",
				Usage: "PC address (hex) that arms output",
			},
			&cli.StringFlag{
				Name:  "trigger-stop",
				Usage: "PC address (hex) that disarms output",
			},
			&cli.BoolFlag{
				Name:  "skip-int",
				Usage: "emulate interrupt entries silently",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "launch the interactive step debugger instead of printing a trace",
			},
		},
		Action: run,
	}

	sort.Sort(cli.FlagsByName(app.Flags))
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	variant, err := parseVariant(c.String("variant"))
	if err != nil {
		cli.ShowAppHelp(c)
		return cli.Exit(err.Error(), 86)
	}

	in := os.Stdin
	if path := c.String("in"); path != "-" && path != "" {
		f, err := os.Open(path)
		if err != nil {
			return cli.Exit(err.Error(), 1)
		}
		defer f.Close()
		in = f
	}

	cfg := trace.DefaultConfig(variant)
	cfg.TriggerSkipInt = c.Bool("skip-int")
	if s := c.String("trigger-start"); s != "" {
		pc, err := strconv.ParseUint(s, 16, 16)
		if err != nil {
			return cli.Exit(fmt.Sprintf("bad trigger-start: %v", err), 86)
		}
		cfg.TriggerStart = cpu.Known(uint16(pc))
	}
	if s := c.String("trigger-stop"); s != "" {
		pc, err := strconv.ParseUint(s, 16, 16)
		if err != nil {
			return cli.Exit(fmt.Sprintf("bad trigger-stop: %v", err), 86)
		}
		cfg.TriggerStop = cpu.Known(uint16(pc))
	}

	reader := capture.NewReader(in)
	mem := memory.NewRAM()
	drv := trace.NewDriver(cfg, reader, os.Stdout, mem)

	if c.Bool("debug") {
		return debugger.Run(drv)
	}
	if err := drv.Run(); err != nil {
		return cli.Exit(err.Error(), 1)
	}
	if reader.Err() != nil {
		return cli.Exit(reader.Err().Error(), 1)
	}
	return nil
}

func parseVariant(s string) (cpu.CPUVariant, error) {
	switch s {
	case "6809":
		return cpu.CPU6809, nil
	case "6809e":
		return cpu.CPU6809E, nil
	case "6309":
		return cpu.CPU6309, nil
	case "6309e":
		return cpu.CPU6309E, nil
	}
	return 0, fmt.Errorf("unknown CPU variant %q", s)
}
