package communication

import (
	"connectfour/game"
	"fmt"
)

type MessageType string

const (
	// Host to participant
	RoundStart  MessageType = "round_start"
	RoundEnd    MessageType = "round_end"
	RequestMove MessageType = "request_move"
	// Both directions
	Move  MessageType = "move"
	Error MessageType = "error"
	Ping  MessageType = "ping"
)

// Message is the single JSON frame exchanged over a match connection. Column
// is only meaningful for move and round_end messages.
type Message struct {
	Type     MessageType `json:"type"`
	Column   int         `json:"column"`
	Seat     game.Cell   `json:"seat,omitempty"`
	Starting game.Cell   `json:"starting,omitempty"`
	Winner   game.Cell   `json:"winner,omitempty"`
	Error    string      `json:"error,omitempty"`
}

func (m Message) String() string {
	switch m.Type {
	case RoundStart:
		return fmt.Sprintf("%s(seat=%s, starting=%s)", m.Type, m.Seat, m.Starting)
	case Move:
		return fmt.Sprintf("%s(%d)", m.Type, m.Column)
	case RoundEnd:
		return fmt.Sprintf("%s(winner=%s)", m.Type, m.Winner)
	case Error:
		return fmt.Sprintf("%s(%s)", m.Type, m.Error)
	default:
		return string(m.Type)
	}
}

// Communicator is an interface that abstracts the communication mechanism.
type Communicator interface {
	Send(msg Message) error
	// Receive blocks until the next message other than a ping arrives
	Receive() (Message, error)
	Close() error
}
