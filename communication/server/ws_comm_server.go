package server

import (
	"connectfour/communication"
	"connectfour/engine"
	"connectfour/game"
	"connectfour/task"
	"errors"
	"fmt"
	"net/http"
	"sync/atomic"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

var (
	// ErrRemote wraps errors reported by the participant itself.
	ErrRemote = errors.New("participant reported an error")
	// ErrReading is returned when a reply from an abandoned request is still
	// being read; the connection allows a single reader.
	ErrReading = errors.New("previous move request still reading the connection")
)

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// Accept upgrades an HTTP request to a match connection.
func Accept(w http.ResponseWriter, r *http.Request) (*communication.Conn, error) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to upgrade connection: %w", err)
	}
	return communication.NewConn(conn), nil
}

// Remote is an engine.Agent played by the other end of a connection.
// Notifications are sent as they happen; move replies are awaited on a
// background worker and reported on Tick. At most one worker reads from the
// connection at a time, even across rounds.
type Remote struct {
	comm    communication.Communicator
	tasks   *task.Queue
	round   uint64
	waiting bool
	reading atomic.Bool
}

func NewRemote(comm communication.Communicator) *Remote {
	return &Remote{comm: comm, tasks: task.NewQueue(1)}
}

func (r *Remote) RoundStart(seat, starting game.Cell) error {
	return r.comm.Send(communication.Message{Type: communication.RoundStart, Seat: seat, Starting: starting})
}

// RoundEnd drops any reply still owed for this round. The outcome is sent by
// Announce, once the engine has it.
func (r *Remote) RoundEnd() {
	r.round++
	r.waiting = false
}

func (r *Remote) OpponentMoved(column int) error {
	return r.comm.Send(communication.Message{Type: communication.Move, Column: column})
}

func (r *Remote) RequestMove(onChosen func(column int, err error)) error {
	if r.reading.Load() {
		return ErrReading
	}
	if err := r.comm.Send(communication.Message{Type: communication.RequestMove}); err != nil {
		return err
	}

	var column int
	r.waiting = true
	r.reading.Store(true)
	r.tasks.RunAsync(task.Tag(r.round), func() error {
		defer r.reading.Store(false)
		var err error
		column, err = r.awaitMove()
		return err
	}, func(err error) {
		r.waiting = false
		onChosen(column, err)
	})
	return nil
}

func (r *Remote) awaitMove() (int, error) {
	for {
		msg, err := r.comm.Receive()
		if err != nil {
			return -1, fmt.Errorf("failed to receive move: %w", err)
		}
		switch msg.Type {
		case communication.Move:
			return msg.Column, nil
		case communication.Error:
			return -1, fmt.Errorf("%w: %s", ErrRemote, msg.Error)
		default:
			log.Warn().Str("message", msg.String()).Msg("ignoring message while waiting for a move")
		}
	}
}

func (r *Remote) Tick() {
	r.tasks.Drain(func(tag task.Tag) bool {
		return uint64(tag) == r.round
	})
}

func (r *Remote) Busy() bool {
	return r.waiting
}

// Announce tells the participant how the round ended, including the last
// column played so it can follow a winning move it was never notified of.
func (r *Remote) Announce(result engine.RoundResult) error {
	msg := communication.Message{Type: communication.RoundEnd, Column: -1, Winner: result.Winner}
	if n := len(result.Moves); n > 0 {
		msg.Column = result.Moves[n-1].Column
	}
	if result.Err != nil {
		msg.Error = result.Err.Error()
	}
	return r.comm.Send(msg)
}
