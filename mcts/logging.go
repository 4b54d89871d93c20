package mcts

import (
	"gopkg.in/yaml.v3"

	"github.com/rs/zerolog/log"
)

// logIteration appends one YAML record to the configured log stream,
// attributing the iteration to the root child it descended through.
func (s *Solver) logIteration(root, node *treeNode, value float64) {
	rootChild := node
	for rootChild.parent != nil && rootChild.parent != root {
		rootChild = rootChild.parent
	}
	moveStr := "none"
	if rootChild != root {
		moveStr = rootChild.move.String()
	}
	out, err := yaml.Marshal([]LogIteration{{
		Iteration: s.iterations,
		Move:      moveStr,
		Value:     value,
	}})
	if err != nil {
		log.Err(err).Msg("marshalling log iteration")
		return
	}
	if _, err = s.logStream.Write(out); err != nil {
		log.Err(err).Msg("writing log stream")
		s.logStream = nil
	}
}
