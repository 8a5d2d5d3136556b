package game

import "github.com/rs/zerolog/log"

// Position is a board snapshot, the move that produced it and the move's score
// for Move.Player.
type Position struct {
	Board Board
	Move  Move
	Score int
	// Stop is set when nothing should be expanded below this position
	Stop bool
	// Won is set when Move completed a winning run
	Won bool
}

// NewPosition returns the empty-board position that starts a round.
func NewPosition() *Position {
	return &Position{Move: NoMove}
}

func (p *Position) Clone() *Position {
	clone := *p
	return &clone
}

// ApplyMove drops a token for player into column and scores it with evaluate
// (EvaluatePlacement when nil). It returns true when expansion must stop below
// this position: the column is now full, the move won, or the board is full.
func (p *Position) ApplyMove(player Cell, column int, evaluate Evaluate) bool {
	row, ok := p.Board.Drop(player, column)
	if !ok {
		log.Error().Int("column", column).Str("player", player.String()).Msg("position rejected move")
		p.Stop = true
		return true
	}
	p.Move = Move{Player: player, Column: column, Row: row}
	return p.score(evaluate)
}

// Reassign hands the placed token to player and scores it again, keeping the
// rest of the snapshot. It returns the same stop signal as ApplyMove.
func (p *Position) Reassign(player Cell, evaluate Evaluate) bool {
	if p.Move == NoMove || !player.Valid() {
		return p.Stop
	}
	p.Board.set(p.Move.Column, p.Move.Row, player)
	p.Move.Player = player
	return p.score(evaluate)
}

func (p *Position) score(evaluate Evaluate) bool {
	if evaluate == nil {
		evaluate = EvaluatePlacement
	}
	at := p.Move.Cell()
	p.Score = evaluate(&p.Board, p.Move.Player, at)
	p.Won = p.Board.CheckForWinIncremental(p.Move.Player, at).Found
	p.Stop = p.Won || p.Move.Row == 0 || p.Board.CheckForStalemate()
	return p.Stop
}
