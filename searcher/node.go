package searcher

// NodeID is a handle into a Tree's arena.
type NodeID int32

// NoNode is returned for slots that were never allocated.
const NoNode NodeID = -1

type node[T any] struct {
	value    T
	present  bool
	parent   NodeID
	children []NodeID
	depth    int
}

// Tree is a rose tree stored in an arena. Children are addressed positionally:
// slot i of a node always means the same thing (a column, for the planner),
// whether or not it holds a value. Parents are referenced by handle only.
type Tree[T any] struct {
	nodes []node[T]
}

// NewTree returns a tree whose root holds value.
func NewTree[T any](value T) *Tree[T] {
	return &Tree[T]{
		nodes: []node[T]{{value: value, present: true, parent: NoNode}},
	}
}

func (t *Tree[T]) Root() NodeID {
	return 0
}

// Len counts every node allocated in the arena, reachable or not.
func (t *Tree[T]) Len() int {
	return len(t.nodes)
}

func (t *Tree[T]) valid(id NodeID) bool {
	return id >= 0 && int(id) < len(t.nodes)
}

// Value returns the node's value; ok is false for empty slots and unknown ids.
func (t *Tree[T]) Value(id NodeID) (value T, ok bool) {
	if !t.valid(id) || !t.nodes[id].present {
		return value, false
	}
	return t.nodes[id].value, true
}

func (t *Tree[T]) Set(id NodeID, value T) {
	t.nodes[id].value = value
	t.nodes[id].present = true
}

// Clear empties the slot but keeps the node and its children allocated.
func (t *Tree[T]) Clear(id NodeID) {
	var zero T
	t.nodes[id].value = zero
	t.nodes[id].present = false
}

func (t *Tree[T]) Parent(id NodeID) NodeID {
	if !t.valid(id) {
		return NoNode
	}
	return t.nodes[id].parent
}

// Depth is the number of edges between id and the root.
func (t *Tree[T]) Depth(id NodeID) int {
	return t.nodes[id].depth
}

// Children returns the node's child slots. The slice must not be modified.
func (t *Tree[T]) Children(id NodeID) []NodeID {
	if !t.valid(id) {
		return nil
	}
	return t.nodes[id].children
}

// Child returns the node in the given slot, or NoNode if it was never allocated.
func (t *Tree[T]) Child(id NodeID, slot int) NodeID {
	children := t.Children(id)
	if slot < 0 || slot >= len(children) {
		return NoNode
	}
	return children[slot]
}

// AddChild allocates the next empty child slot of parent.
func (t *Tree[T]) AddChild(parent NodeID) NodeID {
	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, node[T]{parent: parent, depth: t.nodes[parent].depth + 1})
	t.nodes[parent].children = append(t.nodes[parent].children, id)
	return id
}

// Grow allocates empty child slots until the node has n of them.
func (t *Tree[T]) Grow(id NodeID, n int) {
	for len(t.nodes[id].children) < n {
		t.AddChild(id)
	}
}

// IsLeaf reports whether no child slot is allocated, regardless of values.
func (t *Tree[T]) IsLeaf(id NodeID) bool {
	return len(t.Children(id)) == 0
}

// Detach drops the node's child slots. The subtree stays in the arena, unreachable.
func (t *Tree[T]) Detach(id NodeID) {
	t.nodes[id].children = nil
}

// Walk visits id and its descendants depth first. Returning false from fn
// skips the node's subtree.
func (t *Tree[T]) Walk(id NodeID, fn func(NodeID) bool) {
	if !fn(id) {
		return
	}
	for _, child := range t.Children(id) {
		t.Walk(child, fn)
	}
}
