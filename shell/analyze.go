package shell

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/aybabtme/uniplot/histogram"

	"github.com/DeepReal-Chess/Gomoku-Engine-Version0/heuristic"
	"github.com/DeepReal-Chess/Gomoku-Engine-Version0/mcts"
)

func moveTableHeader() string {
	return "     Move       Score  Flags\n"
}

func moveTableRow(idx int, sm heuristic.ScoredMove) string {
	var flags []string
	if sm.IsWinning {
		flags = append(flags, "win")
	}
	if sm.IsBlocking {
		flags = append(flags, "block")
	}
	return fmt.Sprintf("%3d: %-10v%-7d%s", idx+1, sm.Move, sm.Score,
		strings.Join(flags, ","))
}

// handleGenMoves shows the heuristic's top moves for the current
// position.
func (sc *ShellController) handleGenMoves(args []string) (string, error) {
	numPlays := 15
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return "", err
		}
		numPlays = n
	}
	if sc.game.Terminal() {
		return "", errors.New("game is over")
	}

	scored := sc.evaluator.ScoredMoves(sc.game)
	if numPlays > len(scored) {
		numPlays = len(scored)
	}
	var sb strings.Builder
	sb.WriteString(moveTableHeader())
	for i := 0; i < numPlays; i++ {
		sb.WriteString(moveTableRow(i, scored[i]))
		sb.WriteByte('\n')
	}
	return strings.TrimRight(sb.String(), "\n"), nil
}

// handleHist prints the visit distribution over root children of the
// last search, plus the top plays with their win statistics.
func (sc *ShellController) handleHist() (string, error) {
	plays := sc.solver.RootPlays()
	if len(plays) == 0 {
		return "", errors.New("no tree search has run yet; try `go` first")
	}

	visits := make([]float64, len(plays))
	for i, p := range plays {
		visits[i] = float64(p.Visits)
	}

	var sb strings.Builder
	hist := histogram.Hist(9, visits)
	if err := histogram.Fprint(&sb, hist, histogram.Linear(40)); err != nil {
		return "", err
	}
	sb.WriteByte('\n')
	top := len(plays)
	if top > 10 {
		top = 10
	}
	for i := 0; i < top; i++ {
		p := plays[i]
		fmt.Fprintf(&sb, "%3d: %-10v visits %-6d win %.3f ± %.3f\n",
			i+1, p.Move, p.Visits, p.Mean, p.Stderr)
	}
	return strings.TrimRight(sb.String(), "\n"), nil
}

// handleSeed rebuilds the solver with a fixed seed so subsequent
// searches replay deterministically.
func (sc *ShellController) handleSeed(args []string) error {
	if len(args) != 1 {
		return errors.New("seed needs a value")
	}
	seed, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		return err
	}
	cfg := *sc.solver.Config()
	cfg.Seed = seed
	sc.solver = mcts.NewSolver(cfg)
	if sc.searchLog != nil {
		sc.solver.SetLogStream(sc.searchLog)
	}
	return nil
}
