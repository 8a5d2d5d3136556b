package player

import (
	"connectfour/game"
	"fmt"

	"golang.org/x/exp/rand"
)

// Random plays a uniformly random legal column. It keeps its own copy of the
// board, updated from its moves and the opponent's.
type Random struct {
	board   game.Board
	seat    game.Cell
	rand    *rand.Rand
	pending func()
}

func NewRandom(seed uint64) *Random {
	return &Random{rand: rand.New(rand.NewSource(seed))}
}

func (r *Random) RoundStart(seat, starting game.Cell) error {
	if !seat.Valid() || !starting.Valid() {
		return fmt.Errorf("invalid seat %d or starting player %d", seat, starting)
	}
	r.board.Reset()
	r.seat = seat
	r.pending = nil
	return nil
}

func (r *Random) RoundEnd() {
	r.pending = nil
}

func (r *Random) OpponentMoved(column int) error {
	if _, ok := r.board.Drop(r.seat.Opponent(), column); !ok {
		return fmt.Errorf("opponent move into column %d does not fit the board", column)
	}
	return nil
}

// RequestMove picks and plays a column right away; it is reported on the next Tick.
func (r *Random) RequestMove(onChosen func(column int, err error)) error {
	legal := r.board.LegalColumns()
	if len(legal) == 0 {
		return fmt.Errorf("no legal column left")
	}
	column := legal[r.rand.Intn(len(legal))]
	r.board.Drop(r.seat, column)
	r.pending = func() { onChosen(column, nil) }
	return nil
}

func (r *Random) Tick() {
	if r.pending == nil {
		return
	}
	pending := r.pending
	r.pending = nil
	pending()
}

func (r *Random) Busy() bool {
	return false
}

func (r *Random) String() string {
	return r.board.String()
}
