package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DeepReal-Chess/Gomoku-Engine-Version0/mcts"
)

func TestDefaults(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, cfg.Load(nil))

	assert.False(t, cfg.GetBool("debug"))
	assert.Equal(t, 10000, cfg.GetInt("max-iterations"))
	assert.Equal(t, 1000, cfg.GetInt("move-time-ms"))
	assert.Equal(t, 1.2, cfg.GetFloat64("exploration-constant"))
	assert.True(t, cfg.GetBool("heuristic-rollouts"))
	assert.True(t, cfg.GetBool("random-rollouts"))

	mcfg := cfg.MCTSConfig()
	assert.Equal(t, mcts.DefaultConfig(), mcfg)
}

func TestFlagOverrides(t *testing.T) {
	cfg := &Config{}
	err := cfg.Load([]string{
		"--max-iterations", "123",
		"--move-time-ms", "0",
		"--seed", "99",
		"--random-rollouts=false",
		"--stopping-condition", "98",
		"demo", "250",
	})
	require.NoError(t, err)

	mcfg := cfg.MCTSConfig()
	assert.Equal(t, 123, mcfg.MaxIterations)
	assert.Equal(t, 0, mcfg.MaxTimeMS)
	assert.Equal(t, uint64(99), mcfg.Seed)
	assert.False(t, mcfg.RandomRollouts)
	assert.True(t, mcfg.HeuristicRollouts)
	assert.Equal(t, mcts.Stop98, mcfg.StoppingCondition)

	assert.Equal(t, []string{"demo", "250"}, cfg.Args())
}
