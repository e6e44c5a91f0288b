package dto

import "github.com/rocketscienceinc/tictactoe-engine/internal/entity"

// Node is the JSON form of a decision tree node.
type Node struct {
	Board            []string `json:"board"`
	Score            int      `json:"score"`
	Children         []Node   `json:"children"`
	IsTerminal       bool     `json:"is_terminal"`
	IsMaximizingTurn bool     `json:"is_maximizing_turn"`
}

// NewNode converts a decision tree recursively. Children is never nil so
// leaves serialize as an empty list.
func NewNode(node *entity.DecisionNode) Node {
	children := make([]Node, 0, len(node.Children))
	for i := range node.Children {
		children = append(children, NewNode(&node.Children[i]))
	}

	return Node{
		Board:            FormatBoard(node.Board),
		Score:            node.Score,
		Children:         children,
		IsTerminal:       node.IsTerminal,
		IsMaximizingTurn: node.IsMaximizingTurn,
	}
}
