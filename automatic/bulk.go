package automatic

import (
	"context"
	"runtime"
	"sync/atomic"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/DeepReal-Chess/Gomoku-Engine-Version0/board"
	"github.com/DeepReal-Chess/Gomoku-Engine-Version0/config"
)

// BulkResults tallies the outcomes of a bulk self-play run.
type BulkResults struct {
	Games     int
	BlackWins int
	WhiteWins int
	Draws     int
}

// BulkPlay runs n self-play games across worker goroutines. Each game
// has its own board and solver; the engine core itself never shares
// state between threads.
func BulkPlay(ctx context.Context, cfg *config.Config, n int) (BulkResults, error) {
	var blackWins, whiteWins, draws atomic.Int64

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i := 0; i < n; i++ {
		gameIdx := i
		g.Go(func() error {
			runner := NewGameRunner(cfg)
			for !runner.game.Terminal() {
				select {
				case <-ctx.Done():
					return ctx.Err()
				default:
				}
				runner.PlayMove()
			}
			switch runner.game.Result() {
			case board.BlackWin:
				blackWins.Add(1)
			case board.WhiteWin:
				whiteWins.Add(1)
			default:
				draws.Add(1)
			}
			log.Debug().Int("game", gameIdx).
				Str("result", runner.game.Result().String()).
				Int("moves", runner.game.MoveCount()).Msg("bulk game done")
			return nil
		})
	}
	err := g.Wait()
	return BulkResults{
		Games:     n,
		BlackWins: int(blackWins.Load()),
		WhiteWins: int(whiteWins.Load()),
		Draws:     int(draws.Load()),
	}, err
}
