package searcher

import (
	"connectfour/experiments/metrics"
	"connectfour/game"
	"connectfour/task"
	"connectfour/utils"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

type Option func(p *Planner)

// Planner keeps a search tree of positions for one round and picks the
// computer's moves from it. The tree is deepened by background passes and
// walked as moves are played, never rebuilt mid-round.
//
// A Planner is owned by one goroutine: every method, including Tick, must be
// called from it. Only the expansion passes run elsewhere.
type Planner struct {
	depth        int
	evaluate     game.Evaluate
	selection    Selection
	rand         *rand.Rand
	newCollector func() metrics.Collector
	tasks        *task.Queue

	tree       *Tree[*game.Position]
	current    NodeID
	starting   game.Cell
	round      uint64
	busy       bool
	fresh      bool  // no move has been played on the tree yet
	fault      error // a pass failed and the tree can no longer be trusted
	lastMetric metrics.SearchMetric
}

func WithDepth(depth int) Option {
	return func(p *Planner) {
		p.depth = depth
	}
}

func WithSeed(seed uint64) Option {
	return func(p *Planner) {
		p.rand = rand.New(rand.NewSource(seed))
	}
}

func WithEvaluationFn(evaluate game.Evaluate) Option {
	return func(p *Planner) {
		if evaluate != nil {
			p.evaluate = evaluate
		}
	}
}

func WithSelection(selection Selection) Option {
	return func(p *Planner) {
		p.selection = selection
	}
}

func WithMetrics() Option {
	return func(p *Planner) {
		p.newCollector = metrics.NewCollector
	}
}

func NewPlanner(options ...Option) *Planner {
	p := &Planner{ // Default values
		depth:        DefaultDepth,
		evaluate:     game.EvaluatePlacement,
		selection:    Greedy,
		newCollector: metrics.NewDummyCollector,
		tasks:        task.NewQueue(queueCapacity),
	}
	for _, option := range options {
		option(p)
	}
	if p.depth < 1 {
		panic("Search depth must be at least one ply")
	}
	if p.rand == nil {
		p.rand = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	p.Reset(game.PlayerA)
	return p
}

// Reset discards the tree and starts a new round from an empty board. Passes
// still running against the old tree finish on their own; their completions
// are dropped by Tick.
func (p *Planner) Reset(starting game.Cell) {
	p.round++
	p.tree = NewTree(game.NewPosition())
	p.current = p.tree.Root()
	p.starting = starting
	p.busy = false
	p.fresh = true
	p.fault = nil
}

// Busy reports whether an expansion pass is writing the tree.
func (p *Planner) Busy() bool {
	return p.busy
}

// Round identifies the current tree; it changes on every Reset.
func (p *Planner) Round() uint64 {
	return p.round
}

// Tick runs the callbacks of finished passes for the current round and drops
// the rest. It returns how many callbacks ran.
func (p *Planner) Tick() int {
	ran, _ := p.tasks.Drain(func(tag task.Tag) bool {
		if uint64(tag) != p.round {
			log.Error().Err(ErrStaleCompletion).Uint64("tag", uint64(tag)).Uint64("round", p.round).Msg("dropping completion")
			return false
		}
		return true
	})
	return ran
}

// NotifyRoundStart prepares the tree for a round opened by starting and begins
// expanding it in the background. A tree nobody has played on yet is kept,
// even if it was built for the other starter.
func (p *Planner) NotifyRoundStart(starting game.Cell) error {
	if !starting.Valid() {
		return fmt.Errorf("invalid starting player %d", starting)
	}
	if p.busy {
		return ErrBusy
	}
	if p.fresh && p.current == p.tree.Root() && p.fault == nil {
		p.starting = starting
	} else {
		p.Reset(starting)
	}
	log.Debug().Uint64("round", p.round).Str("starting", starting.String()).Msg("round started")
	p.startPass(p.current, nil)
	return nil
}

// NotifyRoundEnd discards the tree and pre-builds the next one, assuming the
// other player opens the next round.
func (p *Planner) NotifyRoundEnd() {
	p.Reset(p.starting.Opponent())
	p.startPass(p.current, nil)
}

// NotifyOpponentMove is ApplyOpponentMove under the match layer's name.
func (p *Planner) NotifyOpponentMove(column int) error {
	return p.ApplyOpponentMove(column)
}

// RequestComputerMove is SelectMove under the match layer's name.
func (p *Planner) RequestComputerMove(onChosen func(column int, err error)) error {
	return p.SelectMove(onChosen)
}

// ApplyOpponentMove walks the current pointer into the child for column.
func (p *Planner) ApplyOpponentMove(column int) error {
	if err := p.ready(); err != nil {
		return err
	}
	if column < 0 || column >= game.Width {
		return fmt.Errorf("%w: %d", ErrInvalidColumn, column)
	}
	child := p.tree.Child(p.current, column)
	if _, ok := p.tree.Value(child); !ok {
		return fmt.Errorf("%w: column %d", ErrDesync, column)
	}
	p.current = child
	p.fresh = false
	return nil
}

// SelectMove deepens the tree below the current node in the background. When
// Tick delivers the finished pass, it picks the best child, advances to it and
// reports its column through onChosen. The planner may still be busy
// expanding replies when onChosen runs.
func (p *Planner) SelectMove(onChosen func(column int, err error)) error {
	if err := p.ready(); err != nil {
		return err
	}
	if p.terminal(p.current) {
		return ErrRoundOver
	}

	p.startPass(p.current, func(err error) {
		if err != nil {
			onChosen(-1, err)
			return
		}
		column, err := p.pick()
		if err != nil {
			p.fault = err
			onChosen(-1, err)
			return
		}
		// A move that filled its column was not expanded; the reply needs a ply
		if p.tree.IsLeaf(p.current) && !p.terminal(p.current) {
			p.startPass(p.current, nil)
		}
		onChosen(column, nil)
	})
	return nil
}

func (p *Planner) terminal(id NodeID) bool {
	position, ok := p.tree.Value(id)
	return !ok || position.Won || position.Board.CheckForStalemate()
}

func (p *Planner) ready() error {
	if p.busy {
		return ErrBusy
	}
	if p.fault != nil {
		return fmt.Errorf("tree unusable until reset: %w", p.fault)
	}
	return nil
}

func (p *Planner) startPass(from NodeID, then func(error)) {
	pass := &expansion{
		tree:     p.tree,
		horizon:  p.depth,
		starting: p.starting,
		evaluate: p.evaluate,
		metrics:  p.newCollector(),
	}
	p.busy = true
	p.tasks.RunAsync(task.Tag(p.round), func() error {
		pass.run(from)
		return nil
	}, func(err error) {
		p.busy = false
		p.lastMetric = pass.metrics.Complete()
		if err != nil {
			p.fault = err
			log.Error().Err(err).Uint64("round", p.round).Msg("expansion pass failed")
		}
		if then != nil {
			then(err)
		}
	})
}

// pick chooses among the populated children of the current node the one with
// the highest value, breaking ties uniformly at random.
func (p *Planner) pick() (int, error) {
	candidates := []NodeID{}
	values := []int{}
	for _, child := range p.tree.Children(p.current) {
		position, ok := p.tree.Value(child)
		if !ok {
			continue
		}
		candidates = append(candidates, child)
		switch p.selection {
		case Minimax:
			values = append(values, MinimaxValue(p.tree, child, position.Move.Player))
		default:
			values = append(values, position.Score)
		}
	}
	if len(candidates) == 0 {
		return -1, ErrNoCandidates
	}

	best := utils.MaxIndices(values)
	chosen := candidates[best[p.rand.Intn(len(best))]]
	position, _ := p.tree.Value(chosen)
	p.current = chosen
	p.fresh = false

	log.Debug().
		Int("column", position.Move.Column).
		Int("value", values[best[0]]).
		Int("ties", len(best)).
		Str("selection", p.selection.String()).
		Msg("move selected")
	return position.Move.Column, nil
}

// LastMetric returns the metrics of the most recently completed pass.
func (p *Planner) LastMetric() metrics.SearchMetric {
	return p.lastMetric
}

// String dumps the board at the current node.
func (p *Planner) String() string {
	position, ok := p.tree.Value(p.current)
	if !ok {
		return ""
	}
	return position.Board.String()
}
