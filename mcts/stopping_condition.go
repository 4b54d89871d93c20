package mcts

import (
	"github.com/DeepReal-Chess/Gomoku-Engine-Version0/stats"
)

// use stats to figure out when to stop searching.

// shouldStop reports whether the most visited root child's win
// statistic is separated from every other child at the configured
// confidence. It never fires while the root still has unexpanded
// moves.
func shouldStop(root *treeNode, sc StoppingCondition) bool {
	if len(root.untried) > 0 || len(root.children) < 2 {
		return false
	}

	var ci float64
	switch sc {
	case Stop95:
		ci = stats.Z95
	case Stop98:
		ci = stats.Z98
	case Stop99:
		ci = stats.Z99
	default:
		return false
	}

	var best *treeNode
	for _, child := range root.children {
		if best == nil || child.visits > best.visits {
			best = child
		}
	}
	if best.visits < 2 {
		return false
	}

	mu := best.winStats.Mean()
	e := best.winStats.StandardError(ci)
	for _, child := range root.children {
		if child == best {
			continue
		}
		if child.winStats.Iterations() < 2 {
			return false
		}
		if mu-e <= child.winStats.Mean()+child.winStats.StandardError(ci) {
			return false
		}
	}
	return true
}
