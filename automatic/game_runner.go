// Package automatic contains the self-play logic: the interactive demo
// game and headless bulk runs used to sanity-check engine strength.
package automatic

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/DeepReal-Chess/Gomoku-Engine-Version0/board"
	"github.com/DeepReal-Chess/Gomoku-Engine-Version0/config"
	"github.com/DeepReal-Chess/Gomoku-Engine-Version0/mcts"
	"github.com/DeepReal-Chess/Gomoku-Engine-Version0/move"
)

// GameRunner plays one engine-vs-engine game on its own board with its
// own solver, so multiple runners can play concurrently while each
// engine core stays single-threaded.
type GameRunner struct {
	game   *board.GameBoard
	solver *mcts.Solver

	moveTimeMS int
	moveList   []string
}

// NewGameRunner instantiates a runner from the loaded config.
func NewGameRunner(cfg *config.Config) *GameRunner {
	mcfg := cfg.MCTSConfig()
	return &GameRunner{
		game:       board.NewGameBoard(),
		solver:     mcts.NewSolver(mcfg),
		moveTimeMS: mcfg.MaxTimeMS,
	}
}

// PlayMove searches and applies one move, returning it with the search
// duration.
func (r *GameRunner) PlayMove() (move.Move, time.Duration) {
	start := time.Now()
	best := r.solver.SearchWithLimit(r.game, r.moveTimeMS)
	elapsed := time.Since(start)
	r.game.Apply(best)
	r.moveList = append(r.moveList, best.String())
	return best, elapsed
}

// Game exposes the runner's board for display.
func (r *GameRunner) Game() *board.GameBoard {
	return r.game
}

// MoveListText renders the numbered move list, e.g. "1.H8 I9 2.G7".
func (r *GameRunner) MoveListText() string {
	var sb strings.Builder
	for i, m := range r.moveList {
		if i > 0 {
			sb.WriteByte(' ')
		}
		if i%2 == 0 {
			fmt.Fprintf(&sb, "%d.", i/2+1)
		}
		sb.WriteString(m)
	}
	return sb.String()
}

// DemoGame plays a full self-play game with the given think time,
// rendering each position to stdout and appending a move-by-move
// record to a timestamped log file.
func DemoGame(cfg *config.Config, movetimeMS int) error {
	runner := NewGameRunner(cfg)
	runner.moveTimeMS = movetimeMS

	filename := fmt.Sprintf("game_%s.txt", time.Now().Format("20060102_150405"))
	logFile, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer logFile.Close()

	fmt.Println("=== Gomoku Demo Game ===")
	fmt.Printf("Search time: %dms per move\n", movetimeMS)
	fmt.Printf("Game log: %s\n", filename)
	fmt.Println("Press Ctrl+C to stop")
	fmt.Println()

	fmt.Fprintln(logFile, "========================================")
	fmt.Fprintln(logFile, "         GOMOKU GAME LOG")
	fmt.Fprintln(logFile, "========================================")
	fmt.Fprintf(logFile, "Date: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(logFile, "Search time: %dms per move\n", movetimeMS)
	fmt.Fprintln(logFile, "----------------------------------------")
	fmt.Fprintln(logFile)

	moveNum := 0
	for !runner.game.Terminal() {
		moveNum++
		playerName := runner.game.CurrentPlayer().String()
		best, elapsed := runner.PlayMove()

		fmt.Print("\033[2J\033[H")
		fmt.Println("=== Gomoku Demo Game ===")
		fmt.Println()
		fmt.Print(runner.game.ToDisplayText())
		fmt.Println()
		fmt.Printf("Move %d: %s plays %v (%dms, %d iterations)\n",
			moveNum, playerName, best, elapsed.Milliseconds(), runner.solver.Iterations())
		fmt.Println()
		fmt.Printf("Moves: %s\n", runner.MoveListText())

		fmt.Fprintf(logFile, "Move %3d: %10s -> %v (%dms)\n",
			moveNum, playerName, best, elapsed.Milliseconds())

		time.Sleep(500 * time.Millisecond)
	}

	resultStr := runner.game.Result().String()
	fmt.Println()
	fmt.Println("========================================")
	fmt.Printf("GAME OVER: %s\n", resultStr)
	fmt.Printf("Total moves: %d\n", moveNum)
	fmt.Println("========================================")

	fmt.Fprintln(logFile)
	fmt.Fprintln(logFile, "----------------------------------------")
	fmt.Fprintf(logFile, "RESULT: %s\n", resultStr)
	fmt.Fprintf(logFile, "Total moves: %d\n", moveNum)
	fmt.Fprintln(logFile, "----------------------------------------")
	fmt.Fprintln(logFile)
	fmt.Fprintln(logFile, "Final position:")
	fmt.Fprint(logFile, runner.game.ToDisplayText())
	fmt.Fprintln(logFile)
	fmt.Fprintf(logFile, "Move list: %s\n", runner.MoveListText())

	log.Info().Str("file", filename).Str("result", resultStr).Msg("game saved")
	fmt.Printf("\nGame saved to: %s\n", filename)
	return nil
}
