// Package mcts implements the best-first search that picks the
// engine's moves: Monte-Carlo Tree Search with UCT selection,
// heuristic-guided expansion, and truncated rollouts. Immediate wins
// and forced blocks are answered before any tree is built, so the
// search can never miss a mate-in-one in either direction.
package mcts

import (
	"io"
	"math"
	"math/rand/v2"
	"sort"
	"time"

	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"

	"github.com/DeepReal-Chess/Gomoku-Engine-Version0/board"
	"github.com/DeepReal-Chess/Gomoku-Engine-Version0/heuristic"
	"github.com/DeepReal-Chess/Gomoku-Engine-Version0/move"
)

// rolloutPlyCap truncates simulations; a truncated rollout with no
// winner counts as a draw.
const rolloutPlyCap = 50

// stopCheckInterval is how often (in iterations) the optional
// early-stop condition is evaluated.
const stopCheckInterval = 128

// Solver runs searches. It owns its RNG, so two solvers constructed
// with the same non-zero seed produce identical trees on identical
// inputs. A Solver is not safe for concurrent use; the engine core is
// single-threaded by design.
type Solver struct {
	cfg       Config
	evaluator *heuristic.Evaluator
	rng       *rand.Rand

	iterations int
	rootPlays  []RootPlay

	logStream io.Writer

	// scratch boards reused across iterations.
	simBoard     *board.GameBoard
	rolloutBoard *board.GameBoard
}

// RootPlay is the post-search summary of one root child, for display
// and analysis.
type RootPlay struct {
	Move   move.Move
	Visits int
	Mean   float64
	Stderr float64
}

// LogIteration is one record of the optional iteration log stream,
// serialized as YAML.
type LogIteration struct {
	Iteration int     `yaml:"iteration"`
	Move      string  `yaml:"move"`
	Value     float64 `yaml:"value"`
}

// NewSolver creates a solver. A zero config seed draws seed material
// from the system CSPRNG; any other value replays deterministically.
func NewSolver(cfg Config) *Solver {
	seed := cfg.Seed
	if seed == 0 {
		seed = frand.Uint64n(math.MaxUint64) + 1
		log.Debug().Uint64("seed", seed).Msg("derived search seed")
	}
	return &Solver{
		cfg:          cfg,
		evaluator:    heuristic.New(),
		rng:          rand.New(rand.NewPCG(seed, 0)),
		simBoard:     board.NewGameBoard(),
		rolloutBoard: board.NewGameBoard(),
	}
}

// Config returns the mutable search configuration. Changing the seed
// after construction has no effect; the RNG is seeded once.
func (s *Solver) Config() *Config {
	return &s.cfg
}

// Iterations returns the number of iterations the last search ran.
func (s *Solver) Iterations() int {
	return s.iterations
}

// RootPlays returns the root-child summaries of the last tree search,
// most visited first. Empty when the last search was decided by a
// forced-move shortcut.
func (s *Solver) RootPlays() []RootPlay {
	return s.rootPlays
}

// SetLogStream directs per-iteration YAML records to w. Nil disables.
func (s *Solver) SetLogStream(w io.Writer) {
	s.logStream = w
}

// Search picks a move using the configured time budget.
func (s *Solver) Search(b *board.GameBoard) move.Move {
	return s.SearchWithLimit(b, s.cfg.MaxTimeMS)
}

// SearchWithLimit picks a move for the side to move on b within the
// given wall-time budget in milliseconds (<= 0 means no time limit).
// The caller's board is never mutated.
func (s *Solver) SearchWithLimit(b *board.GameBoard, timeLimitMS int) move.Move {
	s.iterations = 0
	s.rootPlays = nil

	if winning := s.evaluator.FindWinningMove(b); winning.Valid() {
		log.Debug().Str("move", winning.String()).Msg("immediate win found")
		return winning
	}
	if blocking := s.evaluator.FindBlockingMove(b); blocking.Valid() {
		log.Debug().Str("move", blocking.String()).Msg("forced block found")
		return blocking
	}

	root := newNode(move.None, nil, b.CurrentPlayer())
	root.untried = b.LegalMoves()

	if len(root.untried) == 1 {
		return root.untried[0]
	}

	start := time.Now()
	limit := time.Duration(timeLimitMS) * time.Millisecond

	for s.iterations < s.cfg.MaxIterations {
		if timeLimitMS > 0 && time.Since(start) >= limit {
			break
		}

		s.simBoard.CopyFrom(b)

		node := s.selectNode(root, s.simBoard)
		if len(node.untried) > 0 && !s.simBoard.Terminal() {
			node = s.expand(node, s.simBoard)
		}
		value := s.rollout(s.simBoard)
		s.backpropagate(node, value, b.CurrentPlayer())

		s.iterations++

		if s.logStream != nil {
			s.logIteration(root, node, value)
		}
		if s.cfg.StoppingCondition != StopNone &&
			s.iterations%stopCheckInterval == 0 && shouldStop(root, s.cfg.StoppingCondition) {
			log.Debug().Int("iterations", s.iterations).Msg("early stop: best move separated")
			break
		}
	}

	best := s.selectBestMove(root)
	s.recordRootPlays(root)
	return best
}

// selectNode descends from the root through fully expanded interior
// nodes, applying each chosen child's move to the scratch board.
func (s *Solver) selectNode(node *treeNode, b *board.GameBoard) *treeNode {
	for !node.leaf() && node.fullyExpanded() {
		var bestChild *treeNode
		bestUCT := math.Inf(-1)

		for _, child := range node.children {
			uct := s.uctValue(child, node.visits)
			if uct > bestUCT {
				bestUCT = uct
				bestChild = child
			}
		}
		if bestChild == nil {
			break
		}
		node = bestChild
		b.Apply(node.move)
	}
	return node
}

// uctValue scores a child for selection. The stored q is from the
// perspective of the player who moved into the child, so the parent
// maximizes -q plus the exploration bonus. Unvisited children sort
// first.
func (s *Solver) uctValue(node *treeNode, parentVisits int) float64 {
	if node.visits == 0 {
		return math.Inf(1)
	}
	exploitation := node.qValue()
	exploration := s.cfg.ExplorationConstant *
		math.Sqrt(math.Log(float64(parentVisits))/float64(node.visits))
	return -exploitation + exploration
}

// expand pops one untried move, applies it, and attaches the new
// child. With more than 3 untried moves a shuffled sample of up to 5
// is scored and the best taken; otherwise the pick is uniform.
func (s *Solver) expand(node *treeNode, b *board.GameBoard) *treeNode {
	if len(node.untried) == 0 {
		return node
	}

	var m move.Move
	if len(node.untried) > 3 {
		s.rng.Shuffle(len(node.untried), func(i, j int) {
			node.untried[i], node.untried[j] = node.untried[j], node.untried[i]
		})
		sampleSize := min(5, len(node.untried))

		bestIdx := 0
		bestScore := math.MinInt
		for i := 0; i < sampleSize; i++ {
			sm := s.evaluator.ScoreMove(b, node.untried[i])
			if sm.Score > bestScore {
				bestScore = sm.Score
				bestIdx = i
			}
		}
		m = node.untried[bestIdx]
		node.untried = append(node.untried[:bestIdx], node.untried[bestIdx+1:]...)
	} else {
		idx := s.rng.IntN(len(node.untried))
		m = node.untried[idx]
		node.untried = append(node.untried[:idx], node.untried[idx+1:]...)
	}

	b.Apply(m)
	child := newNode(m, node, b.CurrentPlayer())
	child.untried = b.LegalMoves()
	node.children = append(node.children, child)
	return child
}

// rollout estimates the value of the scratch position. An already
// terminal position scores +1 when the winner matches the side to
// move and -1 otherwise; the side flip on the winning move means the
// -1 branch is the one actually taken, and that asymmetry is relied
// on by the rest of the search.
func (s *Solver) rollout(b *board.GameBoard) float64 {
	if b.Terminal() {
		winner := b.Winner()
		if winner == board.Empty {
			return 0.0
		}
		if winner == b.CurrentPlayer() {
			return 1.0
		}
		return -1.0
	}

	total := 0.0
	count := 0
	if s.cfg.HeuristicRollouts {
		s.rolloutBoard.CopyFrom(b)
		total += s.heuristicRollout(s.rolloutBoard)
		count++
	}
	if s.cfg.RandomRollouts {
		s.rolloutBoard.CopyFrom(b)
		total += s.randomRollout(s.rolloutBoard)
		count++
	}
	if count == 0 {
		return 0.0
	}
	return total / float64(count)
}

// heuristicRollout plays up to rolloutPlyCap plies, picking uniformly
// among the top three scored moves each ply.
func (s *Solver) heuristicRollout(b *board.GameBoard) float64 {
	startPlayer := b.CurrentPlayer()

	for plies := rolloutPlyCap; !b.Terminal() && plies > 0; plies-- {
		scored := s.evaluator.ScoredMoves(b)
		if len(scored) == 0 {
			break
		}
		topN := min(3, len(scored))
		b.Apply(scored[s.rng.IntN(topN)].Move)
	}

	winner := b.Winner()
	if winner == board.Empty {
		return 0.0
	}
	if winner == startPlayer {
		return 1.0
	}
	return -1.0
}

// randomRollout is the same playout with uniform move selection.
func (s *Solver) randomRollout(b *board.GameBoard) float64 {
	startPlayer := b.CurrentPlayer()

	for plies := rolloutPlyCap; !b.Terminal() && plies > 0; plies-- {
		moves := b.LegalMoves()
		if len(moves) == 0 {
			break
		}
		b.Apply(moves[s.rng.IntN(len(moves))])
	}

	winner := b.Winner()
	if winner == board.Empty {
		return 0.0
	}
	if winner == startPlayer {
		return 1.0
	}
	return -1.0
}

// backpropagate walks parent links to the root. Every node stores its
// accumulated value from the root player's perspective, so the value
// is negated at nodes where the opponent is to move.
func (s *Solver) backpropagate(node *treeNode, value float64, rootPlayer board.CellState) {
	for node != nil {
		node.visits++
		adjusted := value
		if node.playerToMove != rootPlayer {
			adjusted = -value
		}
		node.totalValue += adjusted
		if node.parent != nil && node.parent.parent == nil {
			node.winStats.Push(adjusted)
		}
		node = node.parent
	}
}

// selectBestMove returns the most visited root child; ties keep the
// first child in insertion order. With no children (zero budget) the
// first untried move is the fallback.
func (s *Solver) selectBestMove(root *treeNode) move.Move {
	if len(root.children) == 0 {
		if len(root.untried) > 0 {
			return root.untried[0]
		}
		return move.None
	}

	var best *treeNode
	bestVisits := -1
	for _, child := range root.children {
		if child.visits > bestVisits {
			bestVisits = child.visits
			best = child
		}
	}
	if best == nil {
		return move.None
	}
	return best.move
}

func (s *Solver) recordRootPlays(root *treeNode) {
	if len(root.children) == 0 {
		return
	}
	plays := make([]RootPlay, 0, len(root.children))
	for _, child := range root.children {
		plays = append(plays, RootPlay{
			Move:   child.move,
			Visits: child.visits,
			Mean:   child.winStats.Mean(),
			Stderr: child.winStats.StandardError(1.0),
		})
	}
	sort.SliceStable(plays, func(i, j int) bool {
		return plays[i].Visits > plays[j].Visits
	})
	s.rootPlays = plays
}
