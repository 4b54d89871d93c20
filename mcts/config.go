package mcts

// StoppingCondition optionally ends a search early once the best root
// move is statistically separated from the runner-up.
type StoppingCondition int

const (
	StopNone StoppingCondition = iota
	Stop95
	Stop98
	Stop99
)

// Config holds the search knobs. It may be mutated between searches;
// only the seed is fixed at solver construction.
type Config struct {
	// ExplorationConstant is c in the UCT formula.
	ExplorationConstant float64
	// MaxIterations bounds the number of select/expand/simulate cycles.
	MaxIterations int
	// MaxTimeMS bounds wall time for Search; zero or negative means no
	// time limit, so iteration-capped searches are deterministic.
	MaxTimeMS int
	// Seed seeds the solver RNG. Zero means derive one at construction.
	Seed uint64
	// HeuristicRollouts and RandomRollouts enable the two rollout
	// policies; when both are on, their values are averaged.
	HeuristicRollouts bool
	RandomRollouts    bool
	// StoppingCondition enables the early-stop z-test. Off by default.
	StoppingCondition StoppingCondition
}

// DefaultConfig returns the standard engine settings.
func DefaultConfig() Config {
	return Config{
		ExplorationConstant: 1.2,
		MaxIterations:       10000,
		MaxTimeMS:           1000,
		Seed:                0,
		HeuristicRollouts:   true,
		RandomRollouts:      true,
		StoppingCondition:   StopNone,
	}
}
