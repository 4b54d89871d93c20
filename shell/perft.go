package shell

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/DeepReal-Chess/Gomoku-Engine-Version0/board"
)

// handlePerft counts leaf positions at the given depth via apply/undo
// on a copy of the current board. With "split" it also reports the
// per-root-move subtotals.
func (sc *ShellController) handlePerft(args []string) (string, error) {
	if len(args) < 1 {
		return "", errors.New("perft needs a depth")
	}
	depth, err := strconv.Atoi(args[0])
	if err != nil {
		return "", err
	}
	split := len(args) > 1 && args[1] == "split"

	b := sc.game.Copy()

	if !split {
		nodes := perft(b, depth)
		return fmt.Sprintf("perft %d: %d", depth, nodes), nil
	}

	var sb strings.Builder
	var total uint64
	for _, m := range b.LegalMoves() {
		b.Apply(m)
		n := perft(b, depth-1)
		b.Undo(m)
		total += n
		fmt.Fprintf(&sb, "%v: %d\n", m, n)
	}
	fmt.Fprintf(&sb, "perft %d: %d", depth, total)
	return sb.String(), nil
}

func perft(b *board.GameBoard, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	if b.Terminal() {
		return 0
	}
	var count uint64
	for _, m := range b.LegalMoves() {
		b.Apply(m)
		count += perft(b, depth-1)
		b.Undo(m)
	}
	return count
}
