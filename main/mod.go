package main

import (
	"connectfour/communication"
	"connectfour/communication/client"
	"connectfour/experiments"
	"connectfour/experiments/metrics"
	"connectfour/meta"
	"connectfour/searcher"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Joins a host as the participant and plays its planner until the host hangs up.
func main() {
	configPath := flag.String("config", "", "Path to a YAML config file")
	url := flag.String("url", "", "Host websocket URL (overrides config)")
	depth := flag.Int("depth", 0, "Search depth in plies (overrides config)")
	selection := flag.String("selection", "", "Move selection: greedy or minimax (overrides config)")
	flag.Parse()

	config, err := meta.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *url != "" {
		config.Client.URL = *url
	}
	if *depth > 0 {
		config.Search.Depth = *depth
	}
	if *selection != "" {
		config.Search.Selection = *selection
	}

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	if level, err := zerolog.ParseLevel(config.LogLevel); err == nil && config.LogLevel != "" {
		zerolog.SetGlobalLevel(level)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	seed := config.Search.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	options, err := experiments.PlannerOptions(metrics.AgentConfig{
		Kind:      metrics.Computer,
		Depth:     config.Search.Depth,
		Heuristic: config.Search.Heuristic,
		Selection: config.Search.Selection,
	}, seed)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid search settings")
	}

	conn, err := client.Dial(ctx, config.Client.URL, config.Client.HandshakeTimeout)
	if err != nil {
		log.Fatal().Err(err).Str("url", config.Client.URL).Msg("failed to join host")
	}
	defer conn.Close()
	go func() {
		if err := conn.KeepAlive(ctx, communication.IdlePingInterval); err != nil {
			log.Debug().Err(err).Msg("heartbeat stopped")
		}
	}()

	summary, err := client.NewClient(conn, searcher.NewPlanner(options...)).Run(ctx)
	log.Info().
		Int("rounds", summary.Rounds).
		Int("wins", summary.Wins).
		Int("losses", summary.Losses).
		Int("draws", summary.Draws).
		Int("errors", summary.Errors).
		Msg("session over")
	if err != nil {
		log.Error().Err(err).Msg("session ended abnormally")
		os.Exit(1)
	}
}
