// Package heuristic scores candidate gomoku moves by local line-pattern
// recognition. It is a pure function of the board: nothing here mutates
// game state, which lets the search call it from the middle of a
// simulation without copying.
package heuristic

import (
	"sort"

	"github.com/samber/lo"

	"github.com/DeepReal-Chess/Gomoku-Engine-Version0/board"
	"github.com/DeepReal-Chess/Gomoku-Engine-Version0/move"
)

// Pattern scores. The ordering of magnitudes matters more than the
// absolute values: a win dwarfs an open four, which dwarfs everything
// else.
const (
	ScoreWin         = 1000000
	ScoreFourOpen    = 100000
	ScoreFourClosed  = 10000
	ScoreThreeOpen   = 5000
	ScoreThreeClosed = 500
	ScoreTwoOpen     = 200
	ScoreTwoClosed   = 20
	ScoreSpace       = 10 // per empty square around the move
	ScoreCluster     = 10 // per nearby stone, weighted by closeness
)

// ScoredMove carries a move with its heuristic score and the two
// tactical flags used for ordering.
type ScoredMove struct {
	Move       move.Move
	Score      int
	IsWinning  bool
	IsBlocking bool
}

// Better is the sort order: winning beats blocking beats raw score.
func (sm ScoredMove) Better(other ScoredMove) bool {
	if sm.IsWinning != other.IsWinning {
		return sm.IsWinning
	}
	if sm.IsBlocking != other.IsBlocking {
		return sm.IsBlocking
	}
	return sm.Score > other.Score
}

// Evaluator scores moves for the side to move. It holds no state; a
// single value can be shared by a search and its rollouts.
type Evaluator struct{}

// New creates an Evaluator.
func New() *Evaluator {
	return &Evaluator{}
}

// countConsecutive counts player stones strictly beyond (x, y) along
// (dx, dy) until a non-player square or the edge.
func (e *Evaluator) countConsecutive(b *board.GameBoard, x, y, dx, dy int, player board.CellState) int {
	count := 0
	nx, ny := x+dx, y+dy
	for move.InBounds(nx, ny) && b.GetCell(nx, ny) == player {
		count++
		nx += dx
		ny += dy
	}
	return count
}

// evaluateLine scores the pattern that placing a player stone at
// (x, y) would form along one direction.
func (e *Evaluator) evaluateLine(b *board.GameBoard, x, y, dx, dy int, player board.CellState) int {
	countPos := e.countConsecutive(b, x, y, dx, dy, player)
	countNeg := e.countConsecutive(b, x, y, -dx, -dy, player)
	total := countPos + countNeg

	if total >= 4 {
		return ScoreWin
	}

	// A line end is open if the square just past the run is empty.
	endPosX, endPosY := x+dx*(countPos+1), y+dy*(countPos+1)
	openPos := move.InBounds(endPosX, endPosY) && b.GetCell(endPosX, endPosY) == board.Empty

	endNegX, endNegY := x-dx*(countNeg+1), y-dy*(countNeg+1)
	openNeg := move.InBounds(endNegX, endNegY) && b.GetCell(endNegX, endNegY) == board.Empty

	openness := 0
	if openPos {
		openness++
	}
	if openNeg {
		openness++
	}

	// Stones past a single-square gap make X_XX / XX_X shapes.
	gapCount := 0
	if openPos && countPos < 4 {
		gx, gy := endPosX+dx, endPosY+dy
		for move.InBounds(gx, gy) && b.GetCell(gx, gy) == player {
			gapCount++
			gx += dx
			gy += dy
		}
	}
	gapCountNeg := 0
	if openNeg && countNeg < 4 {
		gx, gy := endNegX-dx, endNegY-dy
		for move.InBounds(gx, gy) && b.GetCell(gx, gy) == player {
			gapCountNeg++
			gx -= dx
			gy -= dy
		}
	}

	switch total {
	case 3:
		if openness == 2 {
			return ScoreFourOpen
		}
		if openness == 1 {
			return ScoreFourClosed
		}
	case 2:
		if (gapCount >= 1 || gapCountNeg >= 1) && openness >= 1 {
			return ScoreThreeOpen
		}
		if openness == 2 {
			return ScoreThreeOpen
		}
		if openness == 1 {
			return ScoreThreeClosed
		}
	case 1:
		if gapCount >= 2 || gapCountNeg >= 2 {
			return ScoreThreeClosed
		}
		if (gapCount >= 1 || gapCountNeg >= 1) && openness >= 1 {
			return ScoreTwoOpen
		}
		if openness == 2 {
			return ScoreTwoOpen
		}
		if openness == 1 {
			return ScoreTwoClosed
		}
	}
	return 0
}

// clusterBonus rewards playing near the action: every nearby stone
// (either color) adds weight by closeness, every empty square in the
// 5x5 window adds breathing room.
func (e *Evaluator) clusterBonus(b *board.GameBoard, m move.Move) int {
	bonus := 0
	emptyCount := 0
	for dx := -2; dx <= 2; dx++ {
		for dy := -2; dy <= 2; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx, ny := int(m.X)+dx, int(m.Y)+dy
			if !move.InBounds(nx, ny) {
				continue
			}
			if b.GetCell(nx, ny) != board.Empty {
				dist := max(abs(dx), abs(dy))
				bonus += ScoreCluster * (3 - dist)
			} else {
				emptyCount++
			}
		}
	}
	return bonus + emptyCount*ScoreSpace
}

// EvaluateMove returns the combined offensive + defensive + cluster
// score of m for the side to move. Defense is weighted slightly above
// offense so threats get blocked.
func (e *Evaluator) EvaluateMove(b *board.GameBoard, m move.Move) int {
	player := b.CurrentPlayer()
	opponent := player.Opponent()

	offensive, defensive := 0, 0
	for _, d := range board.Directions {
		offensive += e.evaluateLine(b, int(m.X), int(m.Y), d[0], d[1], player)
		defensive += e.evaluateLine(b, int(m.X), int(m.Y), d[0], d[1], opponent)
	}
	return offensive + int(float64(defensive)*1.1) + e.clusterBonus(b, m)
}

// ScoreMove is EvaluateMove plus the tactical flags.
func (e *Evaluator) ScoreMove(b *board.GameBoard, m move.Move) ScoredMove {
	sm := ScoredMove{Move: m}

	player := b.CurrentPlayer()
	opponent := player.Opponent()

	offensive, defensive := 0, 0
	for _, d := range board.Directions {
		offScore := e.evaluateLine(b, int(m.X), int(m.Y), d[0], d[1], player)
		defScore := e.evaluateLine(b, int(m.X), int(m.Y), d[0], d[1], opponent)

		if offScore >= ScoreWin {
			sm.IsWinning = true
		}
		if defScore >= ScoreFourOpen {
			sm.IsBlocking = true
		}
		offensive += offScore
		defensive += defScore
	}
	sm.Score = offensive + int(float64(defensive)*1.1) + e.clusterBonus(b, m)
	return sm
}

// ScoredMoves scores every legal move, sorted best first.
func (e *Evaluator) ScoredMoves(b *board.GameBoard) []ScoredMove {
	scored := lo.Map(b.LegalMoves(), func(m move.Move, _ int) ScoredMove {
		return e.ScoreMove(b, m)
	})
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Better(scored[j])
	})
	return scored
}

// FindWinningMove returns a legal move that completes five for the
// side to move, or the sentinel.
func (e *Evaluator) FindWinningMove(b *board.GameBoard) move.Move {
	player := b.CurrentPlayer()
	for _, m := range b.LegalMoves() {
		for _, d := range board.Directions {
			countPos := e.countConsecutive(b, int(m.X), int(m.Y), d[0], d[1], player)
			countNeg := e.countConsecutive(b, int(m.X), int(m.Y), -d[0], -d[1], player)
			if countPos+countNeg >= 4 {
				return m
			}
		}
	}
	return move.None
}

// FindBlockingMove returns a move that stops an opponent win in one,
// or failing that, the strongest block of an open-four-level threat.
// The sentinel means no threat of that magnitude exists.
func (e *Evaluator) FindBlockingMove(b *board.GameBoard) move.Move {
	opponent := b.CurrentPlayer().Opponent()
	moves := b.LegalMoves()

	for _, m := range moves {
		for _, d := range board.Directions {
			countPos := e.countConsecutive(b, int(m.X), int(m.Y), d[0], d[1], opponent)
			countNeg := e.countConsecutive(b, int(m.X), int(m.Y), -d[0], -d[1], opponent)
			if countPos+countNeg >= 4 {
				return m
			}
		}
	}

	bestBlock := move.None
	bestThreat := 0
	for _, m := range moves {
		for _, d := range board.Directions {
			threat := e.evaluateLine(b, int(m.X), int(m.Y), d[0], d[1], opponent)
			if threat >= ScoreFourOpen && threat > bestThreat {
				bestThreat = threat
				bestBlock = m
			}
		}
	}
	return bestBlock
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
