package engine

import (
	"connectfour/experiments/metrics"
	"connectfour/game"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// scripted plays a fixed list of columns, reporting each one a tick after
// it was requested.
type scripted struct {
	columns    []int
	next       int
	pending    func(int, error)
	seat       game.Cell
	starting   game.Cell
	opponent   []int
	ended      int
	silent     bool
	chooseErr  error
	notifyErr  error
	requestErr error
}

func (s *scripted) RoundStart(seat, starting game.Cell) error {
	s.seat, s.starting = seat, starting
	s.next, s.opponent = 0, nil
	return nil
}

func (s *scripted) RoundEnd() {
	s.ended++
}

func (s *scripted) OpponentMoved(column int) error {
	if s.notifyErr != nil {
		return s.notifyErr
	}
	s.opponent = append(s.opponent, column)
	return nil
}

func (s *scripted) RequestMove(onChosen func(int, error)) error {
	if s.requestErr != nil {
		return s.requestErr
	}
	s.pending = onChosen
	return nil
}

func (s *scripted) Tick() {
	if s.pending == nil || s.silent {
		return
	}
	onChosen := s.pending
	s.pending = nil
	if s.chooseErr != nil {
		onChosen(-1, s.chooseErr)
		return
	}
	column := s.columns[s.next]
	s.next++
	onChosen(column, nil)
}

func (s *scripted) Busy() bool {
	return s.pending != nil
}

type metered struct {
	scripted
}

func (m *metered) LastMetric() metrics.SearchMetric {
	return metrics.SearchMetric{Horizon: 4, Created: m.next}
}

func playRound(t *testing.T, a, b Agent, starting game.Cell) RoundResult {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return LocalEngine(a, b).PlayRound(ctx, starting)
}

func TestPlayRound(t *testing.T) {
	t.Run("vertical win", func(t *testing.T) {
		a := &scripted{columns: []int{0, 0, 0, 0}}
		b := &scripted{columns: []int{1, 1, 1}}

		result := playRound(t, a, b, game.PlayerA)

		require.NoError(t, result.Err)
		require.Equal(t, game.PlayerA, result.Winner)
		require.False(t, result.Draw)
		require.Equal(t, game.Vertical, result.Win.Kind)
		require.Len(t, result.Moves, 7)
		require.Equal(t, []int{0, 0, 0}, b.opponent, "Loser should hear every move before its own")
		require.Equal(t, []int{1, 1, 1}, a.opponent)
		require.Equal(t, game.PlayerA, a.seat)
		require.Equal(t, game.PlayerB, b.seat)
		require.Equal(t, 1, a.ended)
		require.Equal(t, 1, b.ended)
	})

	t.Run("second seat can start", func(t *testing.T) {
		a := &scripted{columns: []int{5, 5, 5}}
		b := &scripted{columns: []int{0, 1, 2, 3}}

		result := playRound(t, a, b, game.PlayerB)

		require.NoError(t, result.Err)
		require.Equal(t, game.PlayerB, result.Winner)
		require.Equal(t, game.Horizontal, result.Win.Kind)
		require.Equal(t, game.Point{X: 0, Y: 5}, result.Win.Start)
		require.Equal(t, game.Point{X: 3, Y: 5}, result.Win.End)
		require.Equal(t, game.PlayerB, a.starting)
		require.Equal(t, game.Move{Player: game.PlayerB, Column: 0, Row: 5}, result.Moves[0])
	})

	t.Run("full board without a run is a draw", func(t *testing.T) {
		sequence := []int{2}
		for _, column := range []int{0, 1, 4, 5} {
			for i := 0; i < game.Height; i++ {
				sequence = append(sequence, column)
			}
		}
		for i := 1; i < game.Height; i++ {
			sequence = append(sequence, 2)
		}
		for _, column := range []int{3, 6} {
			for i := 0; i < game.Height; i++ {
				sequence = append(sequence, column)
			}
		}
		a, b := &scripted{}, &scripted{}
		for i, column := range sequence {
			if i%2 == 0 {
				a.columns = append(a.columns, column)
			} else {
				b.columns = append(b.columns, column)
			}
		}

		result := playRound(t, a, b, game.PlayerA)

		require.NoError(t, result.Err)
		require.True(t, result.Draw)
		require.Equal(t, game.Empty, result.Winner)
		require.Len(t, result.Moves, MaxMoves)
	})

	t.Run("illegal column ends the round", func(t *testing.T) {
		a := &scripted{columns: []int{9}}
		b := &scripted{}

		result := playRound(t, a, b, game.PlayerA)

		require.ErrorIs(t, result.Err, ErrIllegalMove)
		require.Empty(t, result.Moves)
		require.Equal(t, 1, a.ended)
		require.Equal(t, 1, b.ended)
	})

	t.Run("failed selection ends the round", func(t *testing.T) {
		failure := errors.New("no candidates")
		a := &scripted{chooseErr: failure}

		result := playRound(t, a, &scripted{}, game.PlayerA)

		require.ErrorIs(t, result.Err, failure)
	})

	t.Run("rejected request ends the round", func(t *testing.T) {
		failure := errors.New("busy")
		a := &scripted{requestErr: failure}

		result := playRound(t, a, &scripted{}, game.PlayerA)

		require.ErrorIs(t, result.Err, failure)
	})

	t.Run("desync ends the round", func(t *testing.T) {
		failure := errors.New("desync")
		a := &scripted{columns: []int{3}}
		b := &scripted{notifyErr: failure}

		result := playRound(t, a, b, game.PlayerA)

		require.ErrorIs(t, result.Err, failure)
		require.Len(t, result.Moves, 1, "Move should be on the board before the notification")
	})

	t.Run("cancelled context aborts", func(t *testing.T) {
		a := &scripted{silent: true}
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		result := LocalEngine(a, &scripted{}).PlayRound(ctx, game.PlayerA)

		require.ErrorIs(t, result.Err, context.DeadlineExceeded)
		require.Equal(t, 1, a.ended)
	})

	t.Run("metered agents report move metrics", func(t *testing.T) {
		a := &metered{scripted{columns: []int{0, 0, 0, 0}}}
		b := &scripted{columns: []int{1, 1, 1}}

		result := playRound(t, a, b, game.PlayerA)

		require.NoError(t, result.Err)
		require.Len(t, result.MoveMetrics, 4, "Only the metered agent should be measured")
		require.Equal(t, 1, result.MoveMetrics[0].Step)
		require.Equal(t, 7, result.MoveMetrics[3].Step)
		require.Equal(t, "A", result.MoveMetrics[0].Player)
		require.Equal(t, 4, result.MoveMetrics[3].Horizon)
	})

	t.Run("board is reset between rounds", func(t *testing.T) {
		a := &scripted{columns: []int{0, 0, 0, 0}}
		b := &scripted{columns: []int{1, 1, 1}}
		e := LocalEngine(a, b)

		first := e.PlayRound(context.Background(), game.PlayerA)
		second := e.PlayRound(context.Background(), game.PlayerA)

		require.Equal(t, first.Winner, second.Winner)
		require.Equal(t, 7, e.Board.Count())
	})

	t.Run("missing agent panics", func(t *testing.T) {
		require.Panics(t, func() { LocalEngine(&scripted{}, nil) })
	})
}
