package engine

import (
	"connectfour/experiments/metrics"
	"connectfour/game"
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

const DefaultTick = time.Millisecond

type Option func(e *Engine)

// WithTick sets how often the engine polls its agents.
func WithTick(tick time.Duration) Option {
	return func(e *Engine) {
		if tick > 0 {
			e.tick = tick
		}
	}
}

// Engine owns the authoritative board and referees rounds between two agents.
type Engine struct {
	Board  game.Board
	agents [2]Agent // seated as PlayerA, PlayerB
	tick   time.Duration
}

type RoundResult struct {
	Starting    game.Cell
	Winner      game.Cell // Empty unless someone won
	Draw        bool
	Win         game.Win
	Moves       []game.Move
	MoveMetrics []metrics.MoveMetric
	Err         error
	Duration    time.Duration
}

func LocalEngine(a, b Agent, options ...Option) *Engine {
	if a == nil || b == nil {
		panic("need two agents")
	}
	e := &Engine{
		agents: [2]Agent{a, b},
		tick:   DefaultTick,
	}
	for _, option := range options {
		option(e)
	}
	return e
}

func (e *Engine) agent(seat game.Cell) Agent {
	if seat == game.PlayerB {
		return e.agents[1]
	}
	return e.agents[0]
}

// PlayRound resets the board and plays one round opened by starting. Agent
// failures and illegal moves end the round with Err set; both agents are told
// the round ended either way.
func (e *Engine) PlayRound(ctx context.Context, starting game.Cell) RoundResult {
	result := RoundResult{Starting: starting}
	startTime := time.Now()
	e.Board.Reset()

	ticker := time.NewTicker(e.tick)
	defer ticker.Stop()

	result.Err = e.play(ctx, ticker, starting, &result)
	for _, agent := range e.agents {
		agent.RoundEnd()
	}
	result.Duration = time.Since(startTime)

	switch {
	case result.Err != nil:
		log.Error().Err(result.Err).Int("moves", len(result.Moves)).Msg("round aborted")
	case result.Draw:
		log.Info().Int("moves", len(result.Moves)).Msg("round drawn")
	default:
		log.Info().Str("winner", result.Winner.String()).Str("kind", result.Win.Kind.String()).Int("moves", len(result.Moves)).Msg("round won")
	}
	return result
}

func (e *Engine) play(ctx context.Context, ticker *time.Ticker, starting game.Cell, result *RoundResult) error {
	if !starting.Valid() {
		return fmt.Errorf("invalid starting player %d", starting)
	}
	for _, seat := range []game.Cell{game.PlayerA, game.PlayerB} {
		agent := e.agent(seat)
		if err := e.await(ctx, ticker, idle(agent)); err != nil {
			return err
		}
		if err := agent.RoundStart(seat, starting); err != nil {
			return fmt.Errorf("agent %s failed to start round: %w", seat, err)
		}
	}
	log.Debug().Str("starting", starting.String()).Msg("round started")

	mover := starting
	for step := 1; step <= MaxMoves; step++ {
		agent, other := e.agent(mover), e.agent(mover.Opponent())

		column, err := e.requestMove(ctx, ticker, agent)
		if err != nil {
			return fmt.Errorf("agent %s failed to move: %w", mover, err)
		}
		if metered, ok := agent.(Metered); ok {
			result.MoveMetrics = append(result.MoveMetrics, metrics.MoveMetric{
				Step:         step,
				Player:       mover.String(),
				Column:       column,
				SearchMetric: metered.LastMetric(),
			})
		}

		row, ok := e.Board.Drop(mover, column)
		if !ok {
			return fmt.Errorf("%w: column %d by %s", ErrIllegalMove, column, mover)
		}
		move := game.Move{Player: mover, Column: column, Row: row}
		result.Moves = append(result.Moves, move)
		log.Debug().Int("step", step).Str("move", move.String()).Msg("move played")

		if win := e.Board.CheckForWinIncremental(mover, move.Cell()); win.Found {
			result.Winner = mover
			result.Win = win
			return nil
		}
		if e.Board.CheckForStalemate() {
			result.Draw = true
			return nil
		}

		if err := e.await(ctx, ticker, idle(other)); err != nil {
			return err
		}
		if err := other.OpponentMoved(column); err != nil {
			return fmt.Errorf("agent %s rejected move %s: %w", mover.Opponent(), move, err)
		}
		mover = mover.Opponent()
	}
	return ErrMoveLimit
}

func (e *Engine) requestMove(ctx context.Context, ticker *time.Ticker, agent Agent) (int, error) {
	if err := e.await(ctx, ticker, idle(agent)); err != nil {
		return -1, err
	}

	column, reported := -1, false
	var chosenErr error
	err := agent.RequestMove(func(c int, err error) {
		column, chosenErr, reported = c, err, true
	})
	if err != nil {
		return -1, err
	}
	if err := e.await(ctx, ticker, func() bool { return reported }); err != nil {
		return -1, err
	}
	return column, chosenErr
}

// await ticks both agents until done holds or ctx ends.
func (e *Engine) await(ctx context.Context, ticker *time.Ticker, done func() bool) error {
	for {
		for _, agent := range e.agents {
			agent.Tick()
		}
		if done() {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func idle(agent Agent) func() bool {
	return func() bool { return !agent.Busy() }
}
