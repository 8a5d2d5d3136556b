package experiments

import (
	"connectfour/engine"
	"connectfour/experiments/metrics"
	"connectfour/game"
	"connectfour/player"
	"connectfour/searcher"
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const (
	OutputDir   = "experiments"
	DefaultTick = 100 * time.Microsecond
)

type Option func(r *runner)

type runner struct {
	outputDir string
	tick      time.Duration
}

// WithOutputDir changes where the experiment folders are created.
func WithOutputDir(dir string) Option {
	return func(r *runner) {
		if dir != "" {
			r.outputDir = dir
		}
	}
}

// Results of one experiment, in game order.
type Results struct {
	Dir   string
	Games []metrics.GameRecord
	Moves []metrics.MoveRecord
}

type played struct {
	game  metrics.GameRecord
	moves []metrics.MoveRecord
}

// Run plays games rounds of every matchup, at most parallel at a time, and
// stores the agent configs and records as CSV files. Agent1 of a matchup sits
// in seat A; the starting seat alternates between games.
func Run(ctx context.Context, name string, matchUps [][2]metrics.AgentConfig, games, parallel int, options ...Option) (Results, error) {
	r := &runner{outputDir: OutputDir, tick: DefaultTick}
	for _, option := range options {
		option(r)
	}
	if games < 1 || parallel < 1 {
		return Results{}, fmt.Errorf("need at least one game and one worker, got %d and %d", games, parallel)
	}

	log.Info().Msgf("starting %s experiment...", name)

	records := make([]played, len(matchUps)*games)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)
	for mi, matchUp := range matchUps {
		for i := 0; i < games; i++ {
			id := mi*games + i + 1
			g.Go(func() error {
				record, err := r.runGame(ctx, id, matchUp[0], matchUp[1], i)
				if err != nil {
					return fmt.Errorf("matchup %d game %d: %w", mi+1, i+1, err)
				}
				records[id-1] = record
				log.Info().Msgf("completed matchup %d of %d game %d of %d with winner: %q", mi+1, len(matchUps), i+1, games, record.game.Winner)
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return Results{}, err
	}

	log.Info().Msgf("completed %s experiment", name)

	results := Results{}
	for _, record := range records {
		results.Games = append(results.Games, record.game)
		results.Moves = append(results.Moves, record.moves...)
	}
	dir, err := store(r.outputDir, name, configsOf(matchUps), results)
	if err != nil {
		return Results{}, err
	}
	results.Dir = dir
	return results, nil
}

// runGame plays a single round between two fresh agents.
func (r *runner) runGame(ctx context.Context, id int, config1, config2 metrics.AgentConfig, index int) (played, error) {
	agent1, err := NewAgent(config1, uint64(index))
	if err != nil {
		return played{}, err
	}
	agent2, err := NewAgent(config2, uint64(index))
	if err != nil {
		return played{}, err
	}
	starting := game.PlayerA
	if index%2 == 1 {
		starting = game.PlayerB
	}

	e := engine.LocalEngine(agent1, agent2, engine.WithTick(r.tick))
	startTime := time.Now()
	result := e.PlayRound(ctx, starting)
	if result.Err != nil {
		return played{}, result.Err
	}

	winner := ""
	if result.Winner.Valid() {
		winner = result.Winner.String()
	}
	record := played{
		game: metrics.GameRecord{
			ID:     id,
			Agent1: config1.ID,
			Agent2: config2.ID,
			GameMetric: metrics.GameMetric{
				Starting:   starting.String(),
				Winner:     winner,
				StartTime:  startTime,
				EndTime:    startTime.Add(result.Duration),
				Duration:   result.Duration,
				TotalMoves: len(result.Moves),
			},
		},
	}
	for _, mm := range result.MoveMetrics {
		record.moves = append(record.moves, metrics.MoveRecord{Game: id, MoveMetric: mm})
	}
	return record, nil
}

// NewAgent builds the agent a config describes. offset varies the seed
// between games of the same matchup.
func NewAgent(config metrics.AgentConfig, offset uint64) (engine.Agent, error) {
	seed := config.Seed + offset
	switch config.Kind {
	case metrics.Random:
		return player.NewRandom(seed), nil
	case metrics.Computer, "":
		planner, err := NewPlanner(config, seed)
		if err != nil {
			return nil, err
		}
		return player.NewComputer(planner), nil
	default:
		return nil, fmt.Errorf("unknown agent kind %q", config.Kind)
	}
}

func NewPlanner(config metrics.AgentConfig, seed uint64) (*searcher.Planner, error) {
	options, err := PlannerOptions(config, seed)
	if err != nil {
		return nil, err
	}
	return searcher.NewPlanner(options...), nil
}

// PlannerOptions translates the search part of a config into planner options.
func PlannerOptions(config metrics.AgentConfig, seed uint64) ([]searcher.Option, error) {
	options := []searcher.Option{searcher.WithSeed(seed), searcher.WithMetrics()}

	if config.Depth > 0 {
		options = append(options, searcher.WithDepth(config.Depth))
	}
	if config.Heuristic != "" {
		evaluate, ok := game.LookupEvaluation(config.Heuristic)
		if !ok {
			return nil, fmt.Errorf("unknown heuristic %q", config.Heuristic)
		}
		options = append(options, searcher.WithEvaluationFn(evaluate))
	}
	selection, ok := searcher.ParseSelection(config.Selection)
	if !ok {
		return nil, fmt.Errorf("unknown selection %q", config.Selection)
	}
	options = append(options, searcher.WithSelection(selection))

	return options, nil
}

func configsOf(matchUps [][2]metrics.AgentConfig) []metrics.AgentConfig {
	seen := map[int]bool{}
	configs := []metrics.AgentConfig{}
	for _, matchUp := range matchUps {
		for _, config := range matchUp {
			if !seen[config.ID] {
				seen[config.ID] = true
				configs = append(configs, config)
			}
		}
	}
	return configs
}

func store(root, name string, configs []metrics.AgentConfig, results Results) (string, error) {
	// Store experiment metadata
	writer, err := metrics.NewWriter(root, name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}

	err = writer.WriteAgentConfigs(configs)
	if err != nil {
		return "", fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	// Store experiment results
	err = writer.WriteGameRecords(results.Games)
	if err != nil {
		return "", fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	err = writer.WriteMoveRecords(results.Moves)
	if err != nil {
		return "", fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msg("stored move records")
	return writer.Dir(), nil
}
