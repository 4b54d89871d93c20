package main

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/DeepReal-Chess/Gomoku-Engine-Version0/automatic"
	"github.com/DeepReal-Chess/Gomoku-Engine-Version0/config"
	"github.com/DeepReal-Chess/Gomoku-Engine-Version0/shell"
)

var (
	GitVersion string
)

func main() {
	cfg := &config.Config{}
	if err := cfg.Load(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	output.FormatLevel = func(i interface{}) string {
		return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
	}
	output.FormatMessage = func(i interface{}) string {
		return fmt.Sprintf("%s", i)
	}
	output.FormatFieldName = func(i interface{}) string {
		return fmt.Sprintf("%s:", i)
	}

	var logger zerolog.Logger
	if cfg.GetBool("debug") {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		logger = zerolog.New(output).Level(zerolog.DebugLevel).With().Timestamp().Logger()
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		logger = zerolog.New(output).Level(zerolog.InfoLevel).With().Timestamp().Logger()
	}
	zerolog.DefaultContextLogger = &logger
	log.Logger = logger
	logger.Debug().Msg("Debug logging is on")

	if cfg.GetString("cpu-profile") != "" {
		f, err := os.Create(cfg.GetString("cpu-profile"))
		if err != nil {
			panic("could not create CPU profile: " + err.Error())
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			panic("could not start CPU profile: " + err.Error())
		}
		defer pprof.StopCPUProfile()
	}

	args := cfg.Args()
	switch {
	case len(args) == 0:
		sc := shell.NewShellController(cfg)
		sc.Loop()
		sc.Cleanup()
	case args[0] == "uci":
		shell.UCILoop(cfg)
	case args[0] == "demo":
		movetime := cfg.GetInt("move-time-ms")
		if len(args) > 1 {
			if ms, err := strconv.Atoi(args[1]); err == nil && ms > 0 {
				movetime = ms
			}
		}
		if err := automatic.DemoGame(cfg, movetime); err != nil {
			log.Fatal().Err(err).Msg("demo game failed")
		}
	case args[0] == "autoplay":
		n := 10
		if len(args) > 1 {
			if v, err := strconv.Atoi(args[1]); err == nil && v > 0 {
				n = v
			}
		}
		results, err := automatic.BulkPlay(context.Background(), cfg, n)
		if err != nil {
			log.Fatal().Err(err).Msg("bulk self-play failed")
		}
		fmt.Printf("games %d: black %d, white %d, draws %d\n",
			results.Games, results.BlackWins, results.WhiteWins, results.Draws)
	default:
		fmt.Fprintf(os.Stderr, "unknown mode: %v (expected uci, demo or autoplay)\n", args[0])
		os.Exit(1)
	}

	if cfg.GetString("mem-profile") != "" {
		f, err := os.Create(cfg.GetString("mem-profile"))
		if err != nil {
			panic("could not create memory profile: " + err.Error())
		}
		defer f.Close()
		memstats := &runtime.MemStats{}
		runtime.ReadMemStats(memstats)
		log.Info().Interface("memstats", memstats).Msg("memory-stats")
		if err := pprof.WriteHeapProfile(f); err != nil {
			panic("could not write memory profile: " + err.Error())
		}
		log.Info().Msg("wrote memory profile")
	}
}
