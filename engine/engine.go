package engine

import (
	"connectfour/experiments/metrics"
	"connectfour/game"
	"errors"
)

// A round cannot outlast the board
const MaxMoves = game.Width * game.Height

var (
	// ErrIllegalMove is returned when an agent picks a column the board rejects.
	ErrIllegalMove = errors.New("illegal move")
	// ErrMoveLimit is returned when a round runs past MaxMoves.
	ErrMoveLimit = errors.New("move limit reached")
)

// Agent is one participant in a round. Notifications may start background
// work; the engine ticks every agent on each loop iteration and waits for
// Busy to clear before notifying it again.
type Agent interface {
	// RoundStart seats the agent for a new round that starting opens
	RoundStart(seat game.Cell, starting game.Cell) error
	RoundEnd()
	// OpponentMoved reports the column the other seat just played
	OpponentMoved(column int) error
	// RequestMove asks for the agent's next column, reported through onChosen
	// from within a later Tick
	RequestMove(onChosen func(column int, err error)) error
	Tick()
	Busy() bool
}

// Metered is implemented by agents that measure their own move search.
type Metered interface {
	LastMetric() metrics.SearchMetric
}
