package gamemaster

import (
	"connectfour/communication"
	"connectfour/communication/server"
	"connectfour/engine"
	"connectfour/game"
	"connectfour/player"
	"connectfour/searcher"
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

// Host plays every participant that connects against its own planner, for a
// fixed number of rounds, alternating who starts.
type Host struct {
	Rounds  int
	Tick    time.Duration
	options []searcher.Option
}

func NewHost(rounds int, options ...searcher.Option) *Host {
	if rounds < 1 {
		panic("Host must play at least one round")
	}
	return &Host{Rounds: rounds, Tick: engine.DefaultTick, options: options}
}

func (h *Host) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := server.Accept(w, r)
	if err != nil {
		log.Warn().Err(err).Str("remote", r.RemoteAddr).Msg("rejected connection")
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	go func() {
		if err := conn.KeepAlive(ctx, communication.IdlePingInterval); err != nil {
			log.Debug().Err(err).Msg("heartbeat stopped")
		}
	}()

	log.Info().Str("remote", r.RemoteAddr).Int("rounds", h.Rounds).Msg("participant connected")
	results := h.Play(ctx, conn)
	log.Info().Str("remote", r.RemoteAddr).Int("played", len(results)).Msg("participant done")
}

// Play runs the rounds over comm, with the host's computer in seat A and the
// participant in seat B. It stops early when a round fails.
func (h *Host) Play(ctx context.Context, comm communication.Communicator) []engine.RoundResult {
	remote := server.NewRemote(comm)
	computer := player.NewComputer(searcher.NewPlanner(h.options...))
	e := engine.LocalEngine(computer, remote, engine.WithTick(h.Tick))

	results := []engine.RoundResult{}
	starting := game.PlayerA
	for round := 1; round <= h.Rounds; round++ {
		result := e.PlayRound(ctx, starting)
		results = append(results, result)

		if err := remote.Announce(result); err != nil {
			log.Error().Err(err).Int("round", round).Msg("failed to announce round result")
			break
		}
		if result.Err != nil {
			log.Warn().Err(result.Err).Int("round", round).Msg("stopping after failed round")
			break
		}
		starting = starting.Opponent()
	}
	return results
}
