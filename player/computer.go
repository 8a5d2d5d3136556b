package player

import (
	"connectfour/experiments/metrics"
	"connectfour/game"
	"connectfour/searcher"
)

// Computer seats a planner at the table.
type Computer struct {
	planner *searcher.Planner
	seat    game.Cell
	metric  metrics.SearchMetric
}

func NewComputer(planner *searcher.Planner) *Computer {
	if planner == nil {
		panic("computer needs a planner")
	}
	return &Computer{planner: planner}
}

func (c *Computer) RoundStart(seat, starting game.Cell) error {
	c.seat = seat
	return c.planner.NotifyRoundStart(starting)
}

func (c *Computer) RoundEnd() {
	c.planner.NotifyRoundEnd()
}

func (c *Computer) OpponentMoved(column int) error {
	return c.planner.NotifyOpponentMove(column)
}

func (c *Computer) RequestMove(onChosen func(column int, err error)) error {
	return c.planner.RequestComputerMove(func(column int, err error) {
		c.metric = c.planner.LastMetric()
		onChosen(column, err)
	})
}

func (c *Computer) Tick() {
	c.planner.Tick()
}

func (c *Computer) Busy() bool {
	return c.planner.Busy()
}

// LastMetric returns the search metrics of the last reported move.
func (c *Computer) LastMetric() metrics.SearchMetric {
	return c.metric
}

func (c *Computer) Seat() game.Cell {
	return c.seat
}

func (c *Computer) String() string {
	return c.planner.String()
}
