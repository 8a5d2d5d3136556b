package client

import (
	"connectfour/communication"
	"connectfour/game"
	"connectfour/searcher"
	"context"
	"fmt"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const DefaultTick = time.Millisecond

// Dial opens a match connection to a host.
func Dial(ctx context.Context, url string, handshakeTimeout time.Duration) (*communication.Conn, error) {
	dialer := websocket.Dialer{
		HandshakeTimeout: handshakeTimeout,
	}
	conn, _, err := dialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to connect: %w", err)
	}
	return communication.NewConn(conn), nil
}

// Summary counts the rounds a client took part in, from its own seat.
type Summary struct {
	Rounds int
	Wins   int
	Losses int
	Draws  int
	Errors int
}

// Client plays a planner against a host over a Communicator.
type Client struct {
	comm    communication.Communicator
	planner *searcher.Planner
	tick    time.Duration
	seat    game.Cell
	summary Summary
}

func NewClient(comm communication.Communicator, planner *searcher.Planner) *Client {
	return &Client{comm: comm, planner: planner, tick: DefaultTick}
}

type incoming struct {
	msg communication.Message
	err error
}

// Run answers the host until it hangs up or ctx ends. Messages are applied
// in order, each one once the planner is idle.
func (c *Client) Run(ctx context.Context) (Summary, error) {
	messages := make(chan incoming, 16)
	go func() {
		for {
			msg, err := c.comm.Receive()
			select {
			case messages <- incoming{msg: msg, err: err}:
			case <-ctx.Done():
				return
			}
			if err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(c.tick)
	defer ticker.Stop()

	queue := []communication.Message{}
	var hangup error
	closed := false
	for {
		c.planner.Tick()
		for len(queue) > 0 && !c.planner.Busy() {
			c.handle(queue[0])
			queue = queue[1:]
		}
		if closed && len(queue) == 0 {
			if communication.IsNormalClose(hangup) {
				return c.summary, nil
			}
			return c.summary, fmt.Errorf("connection lost: %w", hangup)
		}

		select {
		case <-ctx.Done():
			return c.summary, ctx.Err()
		case in := <-messages:
			if in.err != nil {
				closed, hangup = true, in.err
				continue
			}
			log.Debug().Str("message", in.msg.String()).Msg("received")
			queue = append(queue, in.msg)
		case <-ticker.C:
		}
	}
}

func (c *Client) handle(msg communication.Message) {
	switch msg.Type {
	case communication.RoundStart:
		c.seat = msg.Seat
		c.report(c.planner.NotifyRoundStart(msg.Starting))
	case communication.Move:
		c.report(c.planner.NotifyOpponentMove(msg.Column))
	case communication.RequestMove:
		err := c.planner.RequestComputerMove(func(column int, err error) {
			if err != nil {
				c.report(err)
				return
			}
			c.send(communication.Message{Type: communication.Move, Column: column})
		})
		c.report(err)
	case communication.RoundEnd:
		c.roundEnded(msg)
		c.planner.NotifyRoundEnd()
	case communication.Error:
		log.Warn().Str("error", msg.Error).Msg("host reported an error")
	default:
		log.Warn().Str("type", string(msg.Type)).Msg("ignoring unknown message")
	}
}

func (c *Client) roundEnded(msg communication.Message) {
	c.summary.Rounds++
	switch {
	case msg.Error != "":
		c.summary.Errors++
		log.Warn().Str("error", msg.Error).Msg("round aborted by host")
	case msg.Winner == c.seat:
		c.summary.Wins++
	case msg.Winner.Valid():
		c.summary.Losses++
	default:
		c.summary.Draws++
	}
	log.Info().Str("winner", msg.Winner.String()).Str("seat", c.seat.String()).Int("round", c.summary.Rounds).Msg("round ended")
}

// report forwards a local failure to the host, which ends the round.
func (c *Client) report(err error) {
	if err == nil {
		return
	}
	log.Error().Err(err).Msg("planner failed")
	c.send(communication.Message{Type: communication.Error, Error: err.Error()})
}

func (c *Client) send(msg communication.Message) {
	if err := c.comm.Send(msg); err != nil {
		log.Error().Err(err).Str("message", msg.String()).Msg("failed to send")
	}
}
