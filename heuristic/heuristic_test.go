package heuristic

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DeepReal-Chess/Gomoku-Engine-Version0/board"
	"github.com/DeepReal-Chess/Gomoku-Engine-Version0/move"
)

func boardFromMoves(t *testing.T, moves string) *board.GameBoard {
	t.Helper()
	b := board.NewGameBoard()
	for _, tok := range strings.Fields(moves) {
		m := move.FromString(tok)
		require.True(t, m.Valid(), "bad move in test: %v", tok)
		b.Apply(m)
	}
	return b
}

func TestFindWinningMove(t *testing.T) {
	e := New()
	// black holds F8 G8 H8 I8; E8 or J8 completes five.
	b := boardFromMoves(t, "F8 F9 G8 G9 H8 H9 I8 I9")
	require.Equal(t, board.Black, b.CurrentPlayer())

	winning := e.FindWinningMove(b)
	require.True(t, winning.Valid())
	assert.Contains(t, []move.Move{move.New(4, 7), move.New(9, 7)}, winning)
}

func TestFindWinningMoveNone(t *testing.T) {
	e := New()
	b := boardFromMoves(t, "H8 G7 J10")
	assert.Equal(t, move.None, e.FindWinningMove(b))
}

func TestFindBlockingMoveFourInARow(t *testing.T) {
	e := New()
	// black has an open four D8..G8; white to move must block C8 or H8.
	b := boardFromMoves(t, "D8 D9 E8 E9 F8 F9 G8")
	require.Equal(t, board.White, b.CurrentPlayer())

	assert.Equal(t, move.None, e.FindWinningMove(b))
	blocking := e.FindBlockingMove(b)
	require.True(t, blocking.Valid())
	assert.Contains(t, []move.Move{move.New(2, 7), move.New(7, 7)}, blocking)
}

func TestFindBlockingMoveCappedFour(t *testing.T) {
	e := New()
	// white has four at D8..G8, one end capped by black's H8; black must
	// still take C8.
	b := boardFromMoves(t, "H8 D8 H9 E8 H10 F8 K11 G8")
	require.Equal(t, board.Black, b.CurrentPlayer())

	blocking := e.FindBlockingMove(b)
	assert.Equal(t, move.New(2, 7), blocking)
}

func TestFindBlockingMoveOpenThree(t *testing.T) {
	e := New()
	// white has an open three E8 F8 G8; no four exists yet, so the
	// second pass must flag the open-four threat.
	b := boardFromMoves(t, "H12 E8 H13 F8 K11 G8")
	require.Equal(t, board.Black, b.CurrentPlayer())

	assert.Equal(t, move.None, e.FindWinningMove(b))
	blocking := e.FindBlockingMove(b)
	require.True(t, blocking.Valid())
	assert.Contains(t, []move.Move{move.New(3, 7), move.New(7, 7)}, blocking)
}

func TestFindBlockingMoveNone(t *testing.T) {
	e := New()
	b := boardFromMoves(t, "H8 G7")
	assert.Equal(t, move.None, e.FindBlockingMove(b))
}

func TestOpportunityPreference(t *testing.T) {
	e := New()
	// black's line through H8 I8 is capped on the left by G8; extending
	// right at J8 beats the boxed F8.
	b := boardFromMoves(t, "H8 G8 I8")
	require.Equal(t, board.White, b.CurrentPlayer())
	// score from black's point of view: apply a white move far away.
	b.Apply(move.New(6, 1)) // G2
	require.Equal(t, board.Black, b.CurrentPlayer())

	scoreRight := e.ScoreMove(b, move.New(9, 7))
	scoreLeft := e.ScoreMove(b, move.New(5, 7))
	assert.Greater(t, scoreRight.Score, scoreLeft.Score)
}

func TestScoreMoveWinningFlag(t *testing.T) {
	e := New()
	b := boardFromMoves(t, "F8 F9 G8 G9 H8 H9 I8 I9")

	sm := e.ScoreMove(b, move.New(4, 7))
	assert.True(t, sm.IsWinning)
	assert.GreaterOrEqual(t, sm.Score, ScoreWin)

	far := e.ScoreMove(b, move.New(10, 10))
	assert.False(t, far.IsWinning)
}

func TestScoreMoveBlockingFlag(t *testing.T) {
	e := New()
	// white to move; black holds an open four D8..G8 and threatens five.
	b := boardFromMoves(t, "D8 D9 E8 E9 F8 F9 G8")
	sm := e.ScoreMove(b, move.New(7, 7))
	assert.True(t, sm.IsBlocking)
}

func TestGappedThreeScoresAsThreat(t *testing.T) {
	e := New()
	// black D8 E8 _ G8: filling the gap at F8 makes an open four, so it
	// outscores a quiet square away from the stones.
	b := boardFromMoves(t, "D8 D12 E8 E12 G8 F12")
	require.Equal(t, board.Black, b.CurrentPlayer())

	gapFill := e.EvaluateMove(b, move.New(5, 7)) // F8
	quiet := e.EvaluateMove(b, move.New(10, 2))  // K3
	assert.Greater(t, gapFill, quiet)
}

func TestScoredMovesSorted(t *testing.T) {
	e := New()
	b := boardFromMoves(t, "H8 G7 J10 I9")

	scored := e.ScoredMoves(b)
	require.NotEmpty(t, scored)
	assert.Len(t, scored, b.CountLegalMoves())
	for i := 1; i < len(scored); i++ {
		assert.False(t, scored[i].Better(scored[i-1]),
			"scored moves out of order at %d", i)
	}
}

func TestEvaluateMoveMatchesScoreMove(t *testing.T) {
	e := New()
	b := boardFromMoves(t, "H8 G7 J10")
	for _, m := range b.LegalMoves() {
		assert.Equal(t, e.EvaluateMove(b, m), e.ScoreMove(b, m).Score)
	}
}
