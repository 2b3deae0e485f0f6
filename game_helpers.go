package main

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/sheikhrachel/go-gol-duel/input"
	"github.com/sheikhrachel/go-gol-duel/model"
	"github.com/sheikhrachel/go-gol-duel/rules"
	"github.com/sheikhrachel/go-gol-duel/sim"
	"github.com/sheikhrachel/go-gol-duel/utils"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

type cliOptions struct {
	configFile string
	logLevel   string
	strategy   string
	wrap       bool
	gridFile   string
}

// parseArgs parses flags and the single positional grid file
func parseArgs(args []string, stderr io.Writer) (cliOptions, error) {
	var opts cliOptions

	fs := flag.NewFlagSet("go-gol-duel", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.configFile, "config", "", "Path to a JSON or YAML configuration file")
	fs.StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	fs.StringVar(&opts.strategy, "strategy", "", "Evolution strategy: sequential, parallel, bounded")
	fs.BoolVar(&opts.wrap, "wrap", false, "Wrap neighbor counting around the grid edges")
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "Usage:  go-gol-duel [flags] <gridfile>")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return opts, flag.ErrHelp
	}
	opts.gridFile = fs.Arg(0)
	return opts, nil
}

// loadConfig resolves the config file (if any) and applies flag overrides
func loadConfig(opts cliOptions) (utils.Config, error) {
	config := utils.DefaultConfig()
	if opts.configFile != "" {
		var err error
		if config, err = utils.LoadConfig(opts.configFile); err != nil {
			return config, err
		}
	}
	if opts.logLevel != "" {
		config.LogLevel = opts.logLevel
	}
	if opts.strategy != "" {
		config.Strategy = opts.strategy
	}
	if opts.wrap {
		config.Topology = model.Toroidal.String()
	}
	return config, config.Validate()
}

// displayScenario logs what was loaded, including the decoded rule tables
func displayScenario(logger *log.Logger, gridFile string, sc input.Scenario) {
	logger.Info("File opened for input", "file", gridFile)
	logger.Info("Iterations", "count", sc.Generations)
	for k := range sc.Birth {
		logger.Debug("Rule table", "k", k, "birth", sc.Birth[k], "survival", sc.Survival[k])
	}
	logger.Info("Rules decoded", "birth", "B"+sc.Birth.String(), "survival", "S"+sc.Survival.String(), "effective", sc.Rules)
	logger.Info("Grid loaded from file",
		"rows", sc.Grid.Rows(),
		"cols", sc.Grid.Cols(),
		"species_a", sc.Grid.Population(rules.SpeciesA),
		"species_b", sc.Grid.Population(rules.SpeciesB),
	)
}

// run is the whole CLI: load, simulate, render. It returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts, err := parseArgs(args, stderr)
	if err != nil {
		return exitUsage
	}

	config, err := loadConfig(opts)
	if err != nil {
		utils.NewLogger("error", stderr).Error("Invalid configuration", "err", err)
		return exitError
	}
	logger := utils.NewLogger(config.LogLevel, stderr)

	topology, err := config.GridTopology()
	if err != nil {
		logger.Error("Invalid configuration", "err", err)
		return exitError
	}
	engine, err := config.Engine()
	if err != nil {
		logger.Error("Invalid configuration", "err", err)
		return exitError
	}

	sc, err := input.LoadFile(opts.gridFile, config.Rows, config.Cols, topology)
	if err != nil {
		logger.Error("Unable to load grid file", "file", opts.gridFile, "err", err)
		return exitError
	}
	displayScenario(logger, opts.gridFile, sc)

	renderer := model.NewTextRenderer(stdout, config.EmptyGlyph)
	runner := sim.NewRunner(engine, logger)
	if err = runner.Stream(ctx, sc.Grid, sc.Rules, sc.Generations, renderer.Display); err != nil {
		logger.Error("Simulation failed", "err", err)
		return exitError
	}
	return exitOK
}
