package game

import "fmt"

// Move records a single drop. Row is derived when the token lands.
type Move struct {
	Player Cell `json:"player"`
	Column int  `json:"column"`
	Row    int  `json:"row"`
}

// NoMove marks a position that was not produced by a drop (the empty-board root).
var NoMove = Move{Player: Empty, Column: -1, Row: -1}

// Cell returns the board coordinates the move landed on.
func (m Move) Cell() Point {
	return Point{X: m.Column, Y: m.Row}
}

func (m Move) String() string {
	return fmt.Sprintf("%s@%d", m.Player, m.Column)
}
