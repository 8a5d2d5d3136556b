package main

import (
	"connectfour/engine"
	"connectfour/experiments"
	"connectfour/experiments/metrics"
	"connectfour/game"
	"connectfour/gamemaster"
	"connectfour/meta"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file")
	mode := flag.String("mode", "play", "One of play, serve or experiment")
	depth := flag.Int("depth", 0, "Search depth in plies (overrides config)")
	heuristic := flag.String("heuristic", "", "Evaluation strategy: placement or lines (overrides config)")
	selection := flag.String("selection", "", "Move selection: greedy or minimax (overrides config)")
	seed := flag.Uint64("seed", 0, "Seed for the planner tie-breaks (0 picks one from the clock)")
	opponent := flag.String("opponent", metrics.Random, "Opponent in play mode: random or computer")
	rounds := flag.Int("rounds", 0, "Rounds to play (overrides config)")
	addr := flag.String("addr", "", "Address to serve on (overrides config)")
	experiment := flag.String("experiment", "depth", "Experiment preset: depth, heuristic or selection")
	flag.Parse()

	config, err := meta.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *depth > 0 {
		config.Search.Depth = *depth
	}
	if *heuristic != "" {
		config.Search.Heuristic = *heuristic
	}
	if *selection != "" {
		config.Search.Selection = *selection
	}
	if *seed != 0 {
		config.Search.Seed = *seed
	}
	if *rounds > 0 {
		config.Host.Rounds = *rounds
	}
	if *addr != "" {
		config.Host.Addr = *addr
	}
	setupLogging(config.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch *mode {
	case "play":
		err = play(ctx, config, *opponent)
	case "serve":
		err = serve(ctx, config)
	case "experiment":
		_, err = experiments.RunPreset(ctx, *experiment, config.Lab.Games, config.Lab.Parallel,
			experiments.WithOutputDir(config.Lab.OutputDir))
	default:
		err = fmt.Errorf("unknown mode %q", *mode)
	}
	if err != nil {
		log.Fatal().Err(err).Str("mode", *mode).Msg("failed")
	}
}

func setupLogging(level string) {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	parsed, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		parsed = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(parsed)
}

func agentConfig(config meta.Config) metrics.AgentConfig {
	return metrics.AgentConfig{
		ID:        1,
		Kind:      metrics.Computer,
		Depth:     config.Search.Depth,
		Heuristic: config.Search.Heuristic,
		Selection: config.Search.Selection,
		Seed:      seedOf(config),
	}
}

func seedOf(config meta.Config) uint64 {
	if config.Search.Seed != 0 {
		return config.Search.Seed
	}
	return uint64(time.Now().UnixNano())
}

// play pits the configured computer against a local opponent and prints
// every finished board.
func play(ctx context.Context, config meta.Config, opponent string) error {
	computer, err := experiments.NewAgent(agentConfig(config), 0)
	if err != nil {
		return err
	}
	other := agentConfig(config)
	other.ID, other.Kind = 2, opponent
	challenger, err := experiments.NewAgent(other, 1)
	if err != nil {
		return err
	}

	e := engine.LocalEngine(computer, challenger, engine.WithTick(config.Host.Tick))
	wins := map[game.Cell]int{}
	starting := game.PlayerA
	for round := 1; round <= config.Host.Rounds; round++ {
		result := e.PlayRound(ctx, starting)
		if result.Err != nil {
			return fmt.Errorf("round %d: %w", round, result.Err)
		}
		wins[result.Winner]++
		fmt.Printf("Round %d (starting %s, winner %s):\n%s\n", round, starting, result.Winner, e.Board.String())
		starting = starting.Opponent()
	}
	log.Info().
		Int("computer", wins[game.PlayerA]).
		Int(opponent, wins[game.PlayerB]).
		Int("draws", wins[game.Empty]).
		Msg("match over")
	return nil
}

func serve(ctx context.Context, config meta.Config) error {
	options, err := experiments.PlannerOptions(agentConfig(config), seedOf(config))
	if err != nil {
		return err
	}
	host := gamemaster.NewHost(config.Host.Rounds, options...)
	host.Tick = config.Host.Tick
	log.Info().Str("addr", config.Host.Addr).Int("rounds", config.Host.Rounds).Msg("hosting matches")
	return gamemaster.ListenAndServe(ctx, config.Host.Addr, host)
}
