package searcher

import "errors"

var (
	// ErrBusy is returned while an expansion pass is still writing the tree.
	ErrBusy = errors.New("expansion pass in flight")
	// ErrNoCandidates means the current node had no scored child at selection time.
	ErrNoCandidates = errors.New("no scored child to select")
	// ErrDesync means the opponent played into a slot the tree never populated.
	ErrDesync = errors.New("opponent move not in search tree")
	// ErrInvalidColumn is returned for columns outside the board.
	ErrInvalidColumn = errors.New("invalid column")
	// ErrRoundOver is returned when asked to move on a finished board.
	ErrRoundOver = errors.New("round is over")
	// ErrStaleCompletion marks a completion computed against a discarded tree.
	ErrStaleCompletion = errors.New("completion from a discarded round")
)

// Selection picks how the planner ranks the children of the current node.
type Selection int

const (
	// Greedy takes the best immediate child score after one more pass.
	Greedy Selection = iota
	// Minimax backs leaf scores up through the whole tree below each child.
	Minimax
)

func (s Selection) String() string {
	switch s {
	case Minimax:
		return "minimax"
	default:
		return "greedy"
	}
}

// ParseSelection maps a configuration name to a Selection.
func ParseSelection(name string) (Selection, bool) {
	switch name {
	case "", "greedy":
		return Greedy, true
	case "minimax":
		return Minimax, true
	default:
		return Greedy, false
	}
}
