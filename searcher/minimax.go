package searcher

import (
	"connectfour/game"
	"slices"
)

// Negamax backs scores up through every populated node below id and returns
// the value of id for the player who made its move. Leaves keep their own score.
func Negamax(t *Tree[*game.Position], id NodeID) int {
	position, ok := t.Value(id)
	if !ok {
		return 0
	}

	best, found := 0, false
	for _, child := range t.Children(id) {
		if _, ok := t.Value(child); !ok {
			continue
		}
		value := Negamax(t, child)
		if !found || value > best {
			best, found = value, true
		}
	}
	if !found {
		return position.Score
	}
	return -best
}

// MinimaxValue returns the value of id for maximizer: nodes whose children are
// maximizer's moves take the largest child value, the others the smallest.
func MinimaxValue(t *Tree[*game.Position], id NodeID, maximizer game.Cell) int {
	position, ok := t.Value(id)
	if !ok {
		return 0
	}

	values := []int{}
	maximizing := false
	for _, child := range t.Children(id) {
		childPosition, ok := t.Value(child)
		if !ok {
			continue
		}
		maximizing = childPosition.Move.Player == maximizer
		values = append(values, MinimaxValue(t, child, maximizer))
	}

	if len(values) == 0 {
		if position.Move.Player == maximizer {
			return position.Score
		}
		return -position.Score
	}
	if maximizing {
		return slices.Max(values)
	}
	return slices.Min(values)
}
