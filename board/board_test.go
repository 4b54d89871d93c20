package board

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DeepReal-Chess/Gomoku-Engine-Version0/move"
)

func applyAll(t *testing.T, b *GameBoard, moves string) {
	t.Helper()
	for _, tok := range strings.Fields(moves) {
		m := move.FromString(tok)
		require.True(t, m.Valid(), "bad move in test: %v", tok)
		b.Apply(m)
	}
}

// checkInvariants verifies the universal board invariants.
func checkInvariants(t *testing.T, b *GameBoard) {
	t.Helper()
	for idx := 0; idx < move.BoardCells; idx++ {
		if b.occupiedMask.Test(idx) {
			assert.NotEqual(t, Empty, b.cells[idx])
			assert.NotEqual(t, b.blackMask.Test(idx), b.whiteMask.Test(idx))
		} else {
			assert.Equal(t, Empty, b.cells[idx])
			assert.False(t, b.blackMask.Test(idx))
			assert.False(t, b.whiteMask.Test(idx))
		}
		assert.False(t, b.legalMask.Test(idx) && b.occupiedMask.Test(idx))
	}
	assert.Equal(t, b.occupiedMask.Count(), len(b.history))
	assert.Equal(t, b.blackMask.Count()+b.whiteMask.Count(), b.occupiedMask.Count())
	if len(b.history)%2 == 0 {
		assert.Equal(t, Black, b.onTurn)
	} else {
		assert.Equal(t, White, b.onTurn)
	}
}

func TestFirstMoveCenter(t *testing.T) {
	b := NewGameBoard()
	assert.Equal(t, []move.Move{move.New(7, 7)}, b.LegalMoves())
	assert.Equal(t, 1, b.CountLegalMoves())
	assert.True(t, b.Legal(7, 7))
	assert.False(t, b.Legal(0, 0))
	assert.False(t, b.Legal(7, 8))
}

func TestLegalRadius(t *testing.T) {
	b := NewGameBoard()
	applyAll(t, b, "H8")

	assert.True(t, b.Legal(5, 5), "F6 within radius")
	assert.True(t, b.Legal(9, 9), "J10 within radius")
	assert.True(t, b.Legal(6, 6), "G7 within radius")
	assert.False(t, b.Legal(10, 7), "K8 outside radius")
	assert.False(t, b.Legal(4, 7), "E8 outside radius")
	assert.False(t, b.Legal(7, 7), "H8 occupied")

	// 5x5 window minus the occupied center.
	assert.Equal(t, 24, b.CountLegalMoves())
	assert.Len(t, b.LegalMoves(), 24)
	checkInvariants(t, b)
}

func TestHorizontalWin(t *testing.T) {
	b := NewGameBoard()
	applyAll(t, b, "D8 D9 E8 E9 F8 F9 G8 G9")
	assert.False(t, b.Terminal())
	applyAll(t, b, "H8")
	assert.True(t, b.Terminal())
	assert.Equal(t, Black, b.Winner())
	assert.Equal(t, BlackWin, b.Result())
	// the side flips even on the terminal move.
	assert.Equal(t, White, b.CurrentPlayer())
	checkInvariants(t, b)
}

func TestVerticalWin(t *testing.T) {
	b := NewGameBoard()
	applyAll(t, b, "H4 I4 H5 I5 H6 I6 H7 I7 H8")
	assert.True(t, b.Terminal())
	assert.Equal(t, Black, b.Winner())
}

func TestDiagonalWin(t *testing.T) {
	b := NewGameBoard()
	applyAll(t, b, "D4 D5 E5 E6 F6 F7 G7 G8 H8")
	assert.True(t, b.Terminal())
	assert.Equal(t, Black, b.Winner())
}

func TestAntiDiagonalWin(t *testing.T) {
	b := NewGameBoard()
	// black walks down-left from H4 while white stacks the I column.
	applyAll(t, b, "H4 I4 G5 I5 F6 I6 E7 I7 D8")
	assert.True(t, b.Terminal())
	assert.Equal(t, Black, b.Winner())
}

func TestWinInMiddleOfRun(t *testing.T) {
	b := NewGameBoard()
	// black fills D8 E8 G8 H8 and then the gap F8.
	applyAll(t, b, "D8 D9 E8 E9 G8 G9 H8 H9 F8")
	assert.True(t, b.Terminal())
	assert.Equal(t, Black, b.Winner())
}

func assertFreshEqual(t *testing.T, b *GameBoard) {
	t.Helper()
	fresh := NewGameBoard()
	assert.Equal(t, fresh.cells, b.cells)
	assert.Equal(t, fresh.occupiedMask, b.occupiedMask)
	assert.Equal(t, fresh.blackMask, b.blackMask)
	assert.Equal(t, fresh.whiteMask, b.whiteMask)
	assert.Equal(t, fresh.legalMask, b.legalMask)
	assert.Equal(t, fresh.onTurn, b.onTurn)
	assert.Equal(t, fresh.gameOver, b.gameOver)
	assert.Equal(t, fresh.result, b.result)
	assert.Empty(t, b.history)
}

func TestUndoRoundTrip(t *testing.T) {
	b := NewGameBoard()
	moves := "H8 I8 H9 I9 H10 I10 H11 I11 H12"
	applyAll(t, b, moves)
	require.True(t, b.Terminal())

	toks := strings.Fields(moves)
	for i := len(toks) - 1; i >= 0; i-- {
		b.Undo(move.FromString(toks[i]))
		checkInvariants(t, b)
	}
	assertFreshEqual(t, b)
	// the empty-board legality special case still holds after undo.
	assert.Equal(t, []move.Move{move.New(7, 7)}, b.LegalMoves())
}

func TestUndoRestoresLegality(t *testing.T) {
	b := NewGameBoard()
	applyAll(t, b, "H8 G7 J10")
	legalBefore := b.LegalMoves()

	m := move.New(11, 11) // L12
	require.True(t, b.LegalMove(m))
	b.Apply(m)
	b.Undo(m)
	assert.Equal(t, legalBefore, b.LegalMoves())
	checkInvariants(t, b)
}

func TestCopyIndependence(t *testing.T) {
	b := NewGameBoard()
	applyAll(t, b, "H8 G7")
	c := b.Copy()
	c.Apply(move.New(9, 9))
	assert.Equal(t, 2, b.MoveCount())
	assert.Equal(t, 3, c.MoveCount())
	assert.Equal(t, Empty, b.GetCell(9, 9))
}

func TestRenderIsPure(t *testing.T) {
	a := NewGameBoard()
	b := NewGameBoard()
	applyAll(t, a, "H8 G7 J10")
	applyAll(t, b, "H8 G7 J10")
	assert.Equal(t, a.ToDisplayText(), b.ToDisplayText())
}

func TestRenderLayout(t *testing.T) {
	b := NewGameBoard()
	applyAll(t, b, "H8 A1")
	text := b.ToDisplayText()
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	require.Len(t, lines, 16)
	assert.Equal(t, "   A B C D E F G H I J K L M N O ", lines[0])
	// A1 is white's stone in the top-left corner.
	assert.True(t, strings.HasPrefix(lines[1], " 1 O "))
	// H8 is black's stone on the middle row.
	assert.Contains(t, lines[8], "X")
	assert.True(t, strings.HasPrefix(lines[10], "10 "))
}

func TestHistoryAndAccessors(t *testing.T) {
	b := NewGameBoard()
	applyAll(t, b, "H8 G7")
	assert.Equal(t, 2, b.MoveCount())
	assert.Equal(t, []move.Move{move.New(7, 7), move.New(6, 6)}, b.History())
	assert.Equal(t, Black, b.GetCell(7, 7))
	assert.Equal(t, White, b.GetCell(6, 6))
	assert.Equal(t, Black, b.CurrentPlayer())
	assert.Equal(t, Ongoing, b.Result())
	assert.Equal(t, Empty, b.Winner())
}

func TestResetClearsEverything(t *testing.T) {
	b := NewGameBoard()
	applyAll(t, b, "D8 D9 E8 E9 F8 F9 G8 G9 H8")
	require.True(t, b.Terminal())
	b.Reset()
	assertFreshEqual(t, b)
}
