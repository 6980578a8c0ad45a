package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/cardroomlabs/holdemcore/internal/config"
	"github.com/cardroomlabs/holdemcore/internal/simulator"
)

var version = "dev"

type CLI struct {
	Config   string `short:"c" default:"holdemcore.hcl" help:"Path to HCL configuration file"`
	LogLevel string `short:"l" help:"Log level (overrides config)"`

	Simulate SimulateCmd `cmd:"" help:"Play hands against scripted policies and report the results"`
	Version  VersionCmd  `cmd:"" help:"Print the version"`
}

type SimulateCmd struct {
	Table   string `default:"main" help:"Table from the config to take blinds and buy-in from"`
	Hands   int    `default:"10000" help:"Number of hands to simulate"`
	Players int    `default:"6" help:"Players per table (2-10)"`
	Stack   int    `help:"Starting stack per player (default: table buy-in)"`
	Policy  string `default:"random" enum:"random,call,fold,aggressor" help:"Seat policy"`
	Seed    int64  `default:"1" help:"RNG seed"`
	Workers int    `default:"4" help:"Parallel workers"`
}

type VersionCmd struct{}

type runEnv struct {
	logger *log.Logger
	cfg    *config.Config
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("holdemcore"),
		kong.Description("Texas hold'em hand engine"))

	cfg, err := config.Load(cli.Config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading config: %v\n", err)
		ctx.Exit(1)
	}
	if cli.LogLevel != "" {
		cfg.Host.LogLevel = cli.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		ctx.Exit(1)
	}

	level, err := log.ParseLevel(cfg.Host.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid log level %q: %v\n", cfg.Host.LogLevel, err)
		ctx.Exit(1)
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Level:           level,
	})

	ctx.FatalIfErrorf(ctx.Run(&runEnv{logger: logger, cfg: cfg}))
}

func (c *SimulateCmd) Run(env *runEnv) error {
	if c.Players < 2 || c.Players > 10 {
		return fmt.Errorf("players must be between 2 and 10, got %d", c.Players)
	}
	table := env.cfg.Table(c.Table)
	if table == nil {
		return fmt.Errorf("no table %q in config", c.Table)
	}
	stack := c.Stack
	if stack == 0 {
		stack = table.BuyIn
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	sim := simulator.New(simulator.Config{
		Hands:      c.Hands,
		Players:    c.Players,
		Stack:      stack,
		SmallBlind: table.SmallBlind,
		BigBlind:   table.BigBlind,
		Policy:     c.Policy,
		Seed:       c.Seed,
		Workers:    c.Workers,
		Logger:     env.logger,
	})

	results, err := sim.Run(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("hands played:   %d\n", results.HandsPlayed)
	fmt.Printf("showdowns:      %d\n", results.Showdowns)
	fmt.Printf("fold wins:      %d\n", results.FoldWins)
	fmt.Printf("actions taken:  %d\n", results.ActionsTotal)
	fmt.Printf("chips awarded:  %d\n", results.ChipsAwarded)
	for seat := 0; seat < c.Players; seat++ {
		fmt.Printf("seat %d pots:    %d\n", seat, results.WinsBySeat[seat])
	}
	return nil
}

func (c *VersionCmd) Run(*runEnv) error {
	fmt.Println("holdemcore", version)
	return nil
}
