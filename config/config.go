// Package config loads engine settings from command-line flags and
// GOMOKU_-prefixed environment variables.
package config

import (
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/DeepReal-Chess/Gomoku-Engine-Version0/mcts"
)

type Config struct {
	v  *viper.Viper
	fs *pflag.FlagSet
}

// Load parses args and binds them, together with the environment, to
// this config. Positional arguments remain available via Args.
func (c *Config) Load(args []string) error {
	c.v = viper.New()
	c.fs = pflag.NewFlagSet("gomoku", pflag.ContinueOnError)

	c.fs.Bool("debug", false, "debug logging")
	c.fs.String("cpu-profile", "", "write a CPU profile to this path")
	c.fs.String("mem-profile", "", "write a heap profile to this path")
	c.fs.Float64("exploration-constant", 1.2, "c in the UCT formula")
	c.fs.Int("max-iterations", 10000, "search iteration cap")
	c.fs.Int("move-time-ms", 1000, "search time budget per move, in ms; 0 disables the time cap")
	c.fs.Uint64("seed", 0, "search RNG seed; 0 derives one")
	c.fs.Bool("heuristic-rollouts", true, "enable the heuristic rollout policy")
	c.fs.Bool("random-rollouts", true, "enable the uniform-random rollout policy")
	c.fs.Int("stopping-condition", 0, "early-stop confidence (95, 98 or 99); 0 disables")
	c.fs.String("search-log", "", "write per-iteration search records to this path")

	if err := c.fs.Parse(args); err != nil {
		return err
	}

	c.v.SetEnvPrefix("gomoku")
	c.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.v.AutomaticEnv()
	return c.v.BindPFlags(c.fs)
}

// Args returns the positional (non-flag) arguments.
func (c *Config) Args() []string {
	return c.fs.Args()
}

func (c *Config) GetBool(key string) bool {
	return c.v.GetBool(key)
}

func (c *Config) GetString(key string) string {
	return c.v.GetString(key)
}

func (c *Config) GetInt(key string) int {
	return c.v.GetInt(key)
}

func (c *Config) GetFloat64(key string) float64 {
	return c.v.GetFloat64(key)
}

func (c *Config) GetUint64(key string) uint64 {
	return c.v.GetUint64(key)
}

// MCTSConfig maps the loaded settings onto a search configuration.
func (c *Config) MCTSConfig() mcts.Config {
	cfg := mcts.DefaultConfig()
	cfg.ExplorationConstant = c.GetFloat64("exploration-constant")
	cfg.MaxIterations = c.GetInt("max-iterations")
	cfg.MaxTimeMS = c.GetInt("move-time-ms")
	cfg.Seed = c.GetUint64("seed")
	cfg.HeuristicRollouts = c.GetBool("heuristic-rollouts")
	cfg.RandomRollouts = c.GetBool("random-rollouts")
	switch c.GetInt("stopping-condition") {
	case 95:
		cfg.StoppingCondition = mcts.Stop95
	case 98:
		cfg.StoppingCondition = mcts.Stop98
	case 99:
		cfg.StoppingCondition = mcts.Stop99
	}
	return cfg
}
