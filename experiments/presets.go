package experiments

import (
	"connectfour/experiments/metrics"
	"context"
	"fmt"
)

// Preset experiments, selectable by name from the command line.
var presets = map[string]func(ctx context.Context, games, parallel int, options ...Option) (Results, error){
	"depth":     RunDepthExperiment,
	"heuristic": RunHeuristicExperiment,
	"selection": RunSelectionExperiment,
}

// RunPreset runs the preset experiment registered under name.
func RunPreset(ctx context.Context, name string, games, parallel int, options ...Option) (Results, error) {
	run, ok := presets[name]
	if !ok {
		return Results{}, fmt.Errorf("unknown experiment %q", name)
	}
	return run(ctx, games, parallel, options...)
}

// RunDepthExperiment plays computers of increasing depth against a random
// player and against the shallowest computer.
func RunDepthExperiment(ctx context.Context, games, parallel int, options ...Option) (Results, error) {
	configs := []metrics.AgentConfig{
		{ID: 1, Kind: metrics.Random},
		{ID: 2, Kind: metrics.Computer, Depth: 1, Heuristic: "placement", Selection: "greedy"},
		{ID: 3, Kind: metrics.Computer, Depth: 2, Heuristic: "placement", Selection: "greedy"},
		{ID: 4, Kind: metrics.Computer, Depth: 4, Heuristic: "placement", Selection: "greedy"},
		{ID: 5, Kind: metrics.Computer, Depth: 6, Heuristic: "placement", Selection: "greedy"},
	}
	matchUps := [][2]metrics.AgentConfig{}
	for _, config := range configs[1:] {
		matchUps = append(matchUps, [2]metrics.AgentConfig{config, configs[0]})
	}
	for _, config := range configs[2:] {
		matchUps = append(matchUps, [2]metrics.AgentConfig{config, configs[1]})
	}
	return Run(ctx, "depth", matchUps, games, parallel, options...)
}

// RunHeuristicExperiment compares the evaluation strategies at equal depth.
func RunHeuristicExperiment(ctx context.Context, games, parallel int, options ...Option) (Results, error) {
	placement := metrics.AgentConfig{ID: 1, Kind: metrics.Computer, Depth: 4, Heuristic: "placement", Selection: "greedy"}
	lines := metrics.AgentConfig{ID: 2, Kind: metrics.Computer, Depth: 4, Heuristic: "lines", Selection: "greedy"}
	matchUps := [][2]metrics.AgentConfig{
		{placement, lines},
		{lines, placement},
	}
	return Run(ctx, "heuristic", matchUps, games, parallel, options...)
}

// RunSelectionExperiment compares greedy and minimax move selection over the
// same tree depth.
func RunSelectionExperiment(ctx context.Context, games, parallel int, options ...Option) (Results, error) {
	greedy := metrics.AgentConfig{ID: 1, Kind: metrics.Computer, Depth: 4, Heuristic: "placement", Selection: "greedy"}
	minimax := metrics.AgentConfig{ID: 2, Kind: metrics.Computer, Depth: 4, Heuristic: "placement", Selection: "minimax"}
	matchUps := [][2]metrics.AgentConfig{
		{greedy, minimax},
		{minimax, greedy},
	}
	return Run(ctx, "selection", matchUps, games, parallel, options...)
}
