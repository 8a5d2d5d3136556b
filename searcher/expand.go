package searcher

import (
	"connectfour/experiments/metrics"
	"connectfour/game"
)

// expansion is one pass over a subtree. It owns the tree until it returns and
// carries its own copy of everything it reads from the planner.
type expansion struct {
	tree     *Tree[*game.Position]
	horizon  int
	starting game.Cell
	evaluate game.Evaluate
	metrics  metrics.Collector
}

// mover returns the player whose move fills the children of id. Turns
// alternate from the starting player at the root.
func (e *expansion) mover(id NodeID) game.Cell {
	if e.tree.Depth(id)%2 == 0 {
		return e.starting
	}
	return e.starting.Opponent()
}

func (e *expansion) run(from NodeID) {
	e.metrics.Start(e.horizon)
	e.expand(from, 0)
}

// expand fills one child slot per column below id and recurses until depth
// reaches the horizon. Full columns leave an empty slot and are not explored.
// Existing positions are kept, and re-scored if their mover changed.
func (e *expansion) expand(id NodeID, depth int) {
	if depth >= e.horizon {
		return
	}
	parent, ok := e.tree.Value(id)
	if !ok {
		return
	}
	mover := e.mover(id)

	e.tree.Grow(id, game.Width)
	for column := 0; column < game.Width; column++ {
		child := e.tree.Child(id, column)
		if parent.Board.ColumnFull(column) {
			e.tree.Clear(child)
			e.tree.Detach(child)
			e.metrics.AddPruned()
			continue
		}

		position, ok := e.tree.Value(child)
		switch {
		case !ok:
			position = parent.Clone()
			position.ApplyMove(mover, column, e.evaluate)
			e.tree.Set(child, position)
			e.tree.Detach(child)
			e.metrics.AddCreated()
		case position.Move.Player != mover:
			position.Reassign(mover, e.evaluate)
			// Boards below still carry the old owner
			e.tree.Detach(child)
			e.metrics.AddRescored()
		default:
			e.metrics.AddReused()
		}

		if position.Stop {
			continue
		}
		e.expand(child, depth+1)
	}
}
