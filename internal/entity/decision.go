package entity

// DecisionNode is one visited position of a search trace. The root owns its
// whole subtree: children are stored by value, so the trace is a strict tree.
type DecisionNode struct {
	Board            Board
	Score            int
	IsTerminal       bool
	IsMaximizingTurn bool
	Children         []DecisionNode
}

// Size returns the number of nodes in the subtree rooted at the node.
func (n *DecisionNode) Size() int {
	size := 1
	for i := range n.Children {
		size += n.Children[i].Size()
	}
	return size
}
