package gamemaster

import (
	"connectfour/communication"
	"connectfour/communication/client"
	"connectfour/engine"
	"connectfour/game"
	"connectfour/searcher"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

func dialHost(t *testing.T, host http.Handler) (*client.Client, func()) {
	t.Helper()
	srv := httptest.NewServer(host)
	url := "ws" + strings.TrimPrefix(srv.URL, "http")

	conn, err := client.Dial(context.Background(), url, time.Second)
	require.NoError(t, err)
	c := client.NewClient(conn, searcher.NewPlanner(searcher.WithDepth(2), searcher.WithSeed(2)))
	return c, func() {
		conn.Close()
		srv.Close()
	}
}

func TestHost(t *testing.T) {
	t.Run("plays every round against a remote planner", func(t *testing.T) {
		c, closeAll := dialHost(t, NewHost(3, searcher.WithDepth(2), searcher.WithSeed(1)))
		defer closeAll()
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		summary, err := c.Run(ctx)

		require.NoError(t, err, "Host should hang up cleanly after the last round")
		require.Equal(t, 3, summary.Rounds)
		require.Zero(t, summary.Errors)
		require.Equal(t, 3, summary.Wins+summary.Losses+summary.Draws)
	})

	t.Run("rejects plain HTTP requests", func(t *testing.T) {
		srv := httptest.NewServer(NewHost(1))
		defer srv.Close()

		resp, err := http.Get(srv.URL)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("needs at least one round", func(t *testing.T) {
		require.Panics(t, func() { NewHost(0) })
	})
}

func TestListenAndServe(t *testing.T) {
	t.Run("stops when the context ends", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() { done <- ListenAndServe(ctx, "127.0.0.1:0", NewHost(1)) }()

		cancel()
		select {
		case err := <-done:
			require.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Fatal("server did not shut down")
		}
	})
}

// pipe is one end of an in-memory Communicator pair.
type pipe struct {
	in     <-chan communication.Message
	out    chan<- communication.Message
	closed chan struct{}
	peer   *pipe
}

func newPipe() (*pipe, *pipe) {
	ab, ba := make(chan communication.Message, 16), make(chan communication.Message, 16)
	a := &pipe{in: ba, out: ab, closed: make(chan struct{})}
	b := &pipe{in: ab, out: ba, closed: make(chan struct{}), peer: a}
	a.peer = b
	return a, b
}

func (p *pipe) Send(msg communication.Message) error {
	p.out <- msg
	return nil
}

func (p *pipe) Receive() (communication.Message, error) {
	select {
	case msg := <-p.in:
		return msg, nil
	case <-p.peer.closed:
		select {
		case msg := <-p.in:
			return msg, nil
		default:
		}
		return communication.Message{}, &websocket.CloseError{Code: websocket.CloseNormalClosure}
	}
}

func (p *pipe) Close() error {
	close(p.closed)
	return nil
}

func TestHostPlay(t *testing.T) {
	t.Run("alternates the starting player", func(t *testing.T) {
		hostEnd, participantEnd := newPipe()
		c := client.NewClient(participantEnd, searcher.NewPlanner(searcher.WithDepth(2), searcher.WithSeed(4)))
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		played := make(chan []engine.RoundResult, 1)
		go func() {
			defer hostEnd.Close()
			played <- NewHost(3, searcher.WithDepth(3), searcher.WithSeed(5)).Play(ctx, hostEnd)
		}()
		summary, err := c.Run(ctx)
		results := <-played

		require.NoError(t, err)
		require.Len(t, results, 3)
		require.Equal(t, game.PlayerA, results[0].Starting)
		require.Equal(t, game.PlayerB, results[1].Starting)
		require.Equal(t, game.PlayerA, results[2].Starting)
		for _, result := range results {
			require.NoError(t, result.Err)
		}

		hostWins := 0
		for _, result := range results {
			if result.Winner == game.PlayerA {
				hostWins++
			}
		}
		require.Equal(t, hostWins, summary.Losses, "Both ends should agree on the outcome")
	})
}
