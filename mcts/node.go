package mcts

import (
	"github.com/DeepReal-Chess/Gomoku-Engine-Version0/board"
	"github.com/DeepReal-Chess/Gomoku-Engine-Version0/move"
	"github.com/DeepReal-Chess/Gomoku-Engine-Version0/stats"
)

// treeNode is one node of the per-search tree. A node owns its
// children; the parent link is a non-owning back reference. The whole
// tree is released when the search returns.
type treeNode struct {
	move     move.Move
	parent   *treeNode
	children []*treeNode
	untried  []move.Move

	visits     int
	totalValue float64
	// playerToMove is the side that moves next from this position.
	playerToMove board.CellState

	// winStats tracks rollout values from the root player's
	// perspective; only filled in for root children.
	winStats stats.Statistic
}

func newNode(m move.Move, parent *treeNode, playerToMove board.CellState) *treeNode {
	return &treeNode{move: m, parent: parent, playerToMove: playerToMove}
}

// qValue is the mean accumulated value, from the perspective stored by
// backpropagation.
func (n *treeNode) qValue() float64 {
	if n.visits == 0 {
		return 0.0
	}
	return n.totalValue / float64(n.visits)
}

func (n *treeNode) fullyExpanded() bool {
	return len(n.untried) == 0
}

func (n *treeNode) leaf() bool {
	return len(n.children) == 0
}
