// Package board implements the gomoku game board: stone placement and
// removal, locality-restricted legal move generation, and incremental
// five-in-a-row detection on the last move played.
package board

import (
	"strconv"
	"strings"

	"github.com/DeepReal-Chess/Gomoku-Engine-Version0/move"
)

// CellState is the contents of one square. The two colors are
// opposite-signed so that negation switches sides.
type CellState int8

const (
	Empty CellState = 0
	Black CellState = 1
	White CellState = -1
)

func (c CellState) String() string {
	switch c {
	case Black:
		return "BLACK (X)"
	case White:
		return "WHITE (O)"
	}
	return "EMPTY"
}

// Opponent returns the other color.
func (c CellState) Opponent() CellState {
	return -c
}

// GameResult is the outcome of a finished (or ongoing) game.
type GameResult uint8

const (
	Ongoing GameResult = iota
	BlackWin
	WhiteWin
	Draw
)

func (r GameResult) String() string {
	switch r {
	case BlackWin:
		return "BLACK wins"
	case WhiteWin:
		return "WHITE wins"
	case Draw:
		return "Draw"
	}
	return "ongoing"
}

// LegalRadius is the Chebyshev distance around played stones within
// which empty squares are considered as candidate moves.
const LegalRadius = 2

// Directions are the four principal line directions; the reverse of
// each is probed separately.
var Directions = [4][2]int{
	{1, 0},  // horizontal
	{0, 1},  // vertical
	{1, 1},  // diagonal
	{1, -1}, // anti-diagonal
}

// center is the forced first move.
var center = move.New(7, 7)

// GameBoard holds a single gomoku position. The cell array is the
// source of truth; the bitboards are kept consistent with it so that
// occupancy and legality queries stay O(1).
type GameBoard struct {
	cells [move.BoardCells]CellState

	occupiedMask BitBoard
	blackMask    BitBoard
	whiteMask    BitBoard
	legalMask    BitBoard

	onTurn   CellState
	gameOver bool
	result   GameResult

	history []move.Move
}

// NewGameBoard creates an empty board with black to move.
func NewGameBoard() *GameBoard {
	b := &GameBoard{}
	b.Reset()
	return b
}

// Reset re-initializes to the empty-board state.
func (b *GameBoard) Reset() {
	for i := range b.cells {
		b.cells[i] = Empty
	}
	b.occupiedMask.Reset()
	b.blackMask.Reset()
	b.whiteMask.Reset()
	b.legalMask.Reset()
	b.onTurn = Black
	b.gameOver = false
	b.result = Ongoing
	b.history = b.history[:0]
}

// Apply places the current side's stone at m. The caller is expected
// to have checked Legal; applying to any empty in-bounds square is
// still well-defined and preserves all invariants.
func (b *GameBoard) Apply(m move.Move) {
	idx := m.Index()

	b.cells[idx] = b.onTurn
	b.occupiedMask.Set(idx)
	if b.onTurn == Black {
		b.blackMask.Set(idx)
	} else {
		b.whiteMask.Set(idx)
	}

	b.dilateLegalMask(m)
	b.legalMask.Clear(idx)

	b.history = append(b.history, m)

	if b.checkWin(m) {
		b.gameOver = true
		if b.onTurn == Black {
			b.result = BlackWin
		} else {
			b.result = WhiteWin
		}
	} else if b.legalMask.None() {
		b.gameOver = true
		b.result = Draw
	}

	// The side flips even on a terminal move, so "whose turn would be
	// next" stays well-defined.
	b.onTurn = -b.onTurn
}

// Undo removes the last move, which must equal m. The legal mask is
// rebuilt from the remaining history; search code copies boards rather
// than undoing inside the tree, so this is only on debug paths (perft).
func (b *GameBoard) Undo(m move.Move) {
	if len(b.history) == 0 {
		return
	}
	b.onTurn = -b.onTurn

	idx := m.Index()
	b.cells[idx] = Empty
	b.occupiedMask.Clear(idx)
	b.blackMask.Clear(idx)
	b.whiteMask.Clear(idx)

	b.gameOver = false
	b.result = Ongoing
	b.history = b.history[:len(b.history)-1]

	// On the empty board the mask stays empty; the first-move special
	// case in Legal/LegalMoves supplies the center.
	b.legalMask.Reset()
	for _, played := range b.history {
		b.dilateLegalMask(played)
	}
}

// dilateLegalMask marks every empty in-bounds square within the legal
// radius of m.
func (b *GameBoard) dilateLegalMask(m move.Move) {
	mx, my := int(m.X), int(m.Y)
	for dy := -LegalRadius; dy <= LegalRadius; dy++ {
		for dx := -LegalRadius; dx <= LegalRadius; dx++ {
			nx, ny := mx+dx, my+dy
			if !move.InBounds(nx, ny) {
				continue
			}
			nidx := ny*move.BoardDim + nx
			if !b.occupiedMask.Test(nidx) {
				b.legalMask.Set(nidx)
			}
		}
	}
}

// checkWin tests whether the stone just placed at m completed a run of
// five or more. At most 32 neighboring squares are probed.
func (b *GameBoard) checkWin(m move.Move) bool {
	x, y := int(m.X), int(m.Y)
	player := b.cells[m.Index()]

	for _, d := range Directions {
		count := 1 + b.countRun(x, y, d[0], d[1], player) +
			b.countRun(x, y, -d[0], -d[1], player)
		if count >= 5 {
			return true
		}
	}
	return false
}

// countRun counts consecutive player stones strictly beyond (x, y)
// along (dx, dy).
func (b *GameBoard) countRun(x, y, dx, dy int, player CellState) int {
	count := 0
	nx, ny := x+dx, y+dy
	for move.InBounds(nx, ny) && b.cells[ny*move.BoardDim+nx] == player {
		count++
		nx += dx
		ny += dy
	}
	return count
}

// Legal reports whether (x, y) may be played now. On the empty board
// only the center square is legal.
func (b *GameBoard) Legal(x, y int) bool {
	if !move.InBounds(x, y) {
		return false
	}
	if len(b.history) == 0 {
		return x == int(center.X) && y == int(center.Y)
	}
	idx := y*move.BoardDim + x
	return b.legalMask.Test(idx) && !b.occupiedMask.Test(idx)
}

// LegalMove is Legal for a Move value; the sentinel is never legal.
func (b *GameBoard) LegalMove(m move.Move) bool {
	if !m.Valid() {
		return false
	}
	return b.Legal(int(m.X), int(m.Y))
}

// LegalMoves enumerates the candidate squares. The empty board yields
// exactly the center.
func (b *GameBoard) LegalMoves() []move.Move {
	if len(b.history) == 0 {
		return []move.Move{center}
	}
	moves := make([]move.Move, 0, b.legalMask.Count())
	for idx := 0; idx < move.BoardCells; idx++ {
		if b.legalMask.Test(idx) {
			moves = append(moves, move.FromIndex(idx))
		}
	}
	return moves
}

// CountLegalMoves returns len(LegalMoves()) without allocating.
func (b *GameBoard) CountLegalMoves() int {
	if len(b.history) == 0 {
		return 1
	}
	return b.legalMask.Count()
}

// GetCell returns the contents of (x, y).
func (b *GameBoard) GetCell(x, y int) CellState {
	return b.cells[y*move.BoardDim+x]
}

// CurrentPlayer is the side to move (the side that would move next,
// even after a terminal position).
func (b *GameBoard) CurrentPlayer() CellState {
	return b.onTurn
}

// Terminal reports whether the game has ended.
func (b *GameBoard) Terminal() bool {
	return b.gameOver
}

// Result returns the game outcome tag.
func (b *GameBoard) Result() GameResult {
	return b.result
}

// Winner returns the winning color, or Empty for ongoing games and
// draws.
func (b *GameBoard) Winner() CellState {
	switch b.result {
	case BlackWin:
		return Black
	case WhiteWin:
		return White
	}
	return Empty
}

// History returns the moves in play order. The returned slice is the
// board's own; callers must not mutate it.
func (b *GameBoard) History() []move.Move {
	return b.history
}

// MoveCount returns the number of stones on the board.
func (b *GameBoard) MoveCount() int {
	return len(b.history)
}

// Copy returns an independent deep copy of the position.
func (b *GameBoard) Copy() *GameBoard {
	c := &GameBoard{}
	c.CopyFrom(b)
	return c
}

// CopyFrom overwrites this board with the contents of o, reusing the
// history allocation where possible.
func (b *GameBoard) CopyFrom(o *GameBoard) {
	b.cells = o.cells
	b.occupiedMask = o.occupiedMask
	b.blackMask = o.blackMask
	b.whiteMask = o.whiteMask
	b.legalMask = o.legalMask
	b.onTurn = o.onTurn
	b.gameOver = o.gameOver
	b.result = o.result
	b.history = append(b.history[:0], o.history...)
}

// ToDisplayText renders the position with column letters A..O and
// 1-indexed rows; X for black, O for white, . for empty.
func (b *GameBoard) ToDisplayText() string {
	var sb strings.Builder

	sb.WriteString("   ")
	for x := 0; x < move.BoardDim; x++ {
		sb.WriteByte(byte('A' + x))
		sb.WriteByte(' ')
	}
	sb.WriteByte('\n')

	for y := 0; y < move.BoardDim; y++ {
		if y < 9 {
			sb.WriteByte(' ')
		}
		sb.WriteString(strconv.Itoa(y + 1))
		sb.WriteByte(' ')
		for x := 0; x < move.BoardDim; x++ {
			switch b.cells[y*move.BoardDim+x] {
			case Black:
				sb.WriteString("X ")
			case White:
				sb.WriteString("O ")
			default:
				sb.WriteString(". ")
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
