// Package move contains the Move type for a 15x15 gomoku board, along
// with its user-visible text format (letter-number, e.g. H8).
package move

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const (
	// BoardDim is the number of columns (and rows) on the board.
	BoardDim = 15
	// BoardCells is the total number of squares.
	BoardCells = BoardDim * BoardDim
)

// Move is a single stone placement. The zero coordinates are a real
// square, so an explicit sentinel (None) marks "no move".
type Move struct {
	X int8
	Y int8
}

// None is the invalid-move sentinel. It renders as "none".
var None = Move{X: -1, Y: -1}

var reCoords *regexp.Regexp

func init() {
	reCoords = regexp.MustCompile(`^(?P<col>[A-Oa-o])(?P<row>[0-9]{1,2})$`)
}

// New creates a move from zero-indexed column and row.
func New(x, y int) Move {
	return Move{X: int8(x), Y: int8(y)}
}

// InBounds returns whether (x, y) is on the board.
func InBounds(x, y int) bool {
	return x >= 0 && x < BoardDim && y >= 0 && y < BoardDim
}

// Index returns the row-major cell index of this move.
func (m Move) Index() int {
	return int(m.Y)*BoardDim + int(m.X)
}

// FromIndex converts a row-major cell index back to a move.
func FromIndex(idx int) Move {
	return Move{X: int8(idx % BoardDim), Y: int8(idx / BoardDim)}
}

// Valid returns whether this is a real square rather than the sentinel.
func (m Move) Valid() bool {
	return m.X >= 0 && m.Y >= 0
}

// String returns the letter-number form (A..O, 1-based row), or "none"
// for the sentinel.
func (m Move) String() string {
	if !m.Valid() {
		return "none"
	}
	return fmt.Sprintf("%c%d", 'A'+m.X, m.Y+1)
}

// FromString parses letter-number notation (case-insensitive), or the
// numeric "x,y" form. Anything unparseable or out of bounds yields None.
func FromString(s string) Move {
	if matches := reCoords.FindStringSubmatch(s); matches != nil {
		col := strings.ToUpper(matches[1])
		x := int(col[0] - 'A')
		row, err := strconv.Atoi(matches[2])
		if err != nil {
			return None
		}
		y := row - 1
		if !InBounds(x, y) {
			return None
		}
		return New(x, y)
	}
	if before, after, found := strings.Cut(s, ","); found {
		x, err1 := strconv.Atoi(before)
		y, err2 := strconv.Atoi(after)
		if err1 != nil || err2 != nil || !InBounds(x, y) {
			return None
		}
		return New(x, y)
	}
	return None
}
