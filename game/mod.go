package game

import "fmt"

// Reference board geometry
const (
	Width  = 7
	Height = 6
	// Tokens in a row needed to win
	Connect = 4
)

// Cell is the content of a single board square.
type Cell int8

const (
	Empty Cell = iota
	PlayerA
	PlayerB
)

// Valid reports whether c identifies a player (not Empty).
func (c Cell) Valid() bool {
	return c == PlayerA || c == PlayerB
}

// Opponent returns the other player, or Empty if c is not a player.
func (c Cell) Opponent() Cell {
	switch c {
	case PlayerA:
		return PlayerB
	case PlayerB:
		return PlayerA
	default:
		return Empty
	}
}

func (c Cell) String() string {
	switch c {
	case PlayerA:
		return "A"
	case PlayerB:
		return "B"
	default:
		return "-"
	}
}

func (c Cell) symbol() byte {
	switch c {
	case PlayerA:
		return 'X'
	case PlayerB:
		return 'O'
	default:
		return '.'
	}
}

// Point addresses a cell by column (X) and row (Y), row 0 being the top.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

func inBounds(x, y int) bool {
	return x >= 0 && x < Width && y >= 0 && y < Height
}

// Evaluates a just-placed token at `at`, owned by player, to a score from that
// player's perspective. Higher is better.
type Evaluate func(b *Board, player Cell, at Point) int

// Evaluation strategies selectable by name
var evaluations = map[string]Evaluate{
	"placement": EvaluatePlacement,
	"lines":     EvaluateLines,
}

// LookupEvaluation returns the evaluation strategy registered under name.
func LookupEvaluation(name string) (Evaluate, bool) {
	evaluate, ok := evaluations[name]
	return evaluate, ok
}
