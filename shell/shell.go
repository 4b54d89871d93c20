// Package shell contains the engine's front ends: an interactive
// readline shell and a line-oriented UCI-style protocol loop. Both
// drive the engine core only through the public Board / Heuristic /
// Solver API.
package shell

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	shellquote "github.com/kballard/go-shellquote"
	"github.com/rs/zerolog/log"

	"github.com/DeepReal-Chess/Gomoku-Engine-Version0/board"
	"github.com/DeepReal-Chess/Gomoku-Engine-Version0/config"
	"github.com/DeepReal-Chess/Gomoku-Engine-Version0/heuristic"
	"github.com/DeepReal-Chess/Gomoku-Engine-Version0/mcts"
	"github.com/DeepReal-Chess/Gomoku-Engine-Version0/move"
)

type Mode int

const (
	StandardMode Mode = iota
	UCIMode
)

type shellcmd struct {
	cmd  string
	args []string
}

// ShellController owns the current game position and the solver, and
// translates commands into engine calls.
type ShellController struct {
	l   *readline.Instance
	cfg *config.Config

	game      *board.GameBoard
	solver    *mcts.Solver
	evaluator *heuristic.Evaluator

	curMode   Mode
	searchLog *os.File
	quitting  bool
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func showMessage(msg string, w io.Writer) {
	io.WriteString(w, msg)
	io.WriteString(w, "\n")
}

// NewShellController builds a controller with a fresh board and a
// solver configured from cfg.
func NewShellController(cfg *config.Config) *ShellController {
	sc := &ShellController{
		cfg:       cfg,
		game:      board.NewGameBoard(),
		solver:    mcts.NewSolver(cfg.MCTSConfig()),
		evaluator: heuristic.New(),
	}
	if path := cfg.GetString("search-log"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			log.Err(err).Str("path", path).Msg("cannot create search log")
		} else {
			sc.searchLog = f
			sc.solver.SetLogStream(f)
		}
	}
	return sc
}

// SetMode switches between the interactive and protocol dialogues.
func (sc *ShellController) SetMode(m Mode) {
	sc.curMode = m
}

// Loop runs the interactive readline shell until quit/EOF.
func (sc *ShellController) Loop() {
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[31mgomoku>\033[0m ",
		HistoryFile:     "/tmp/gomoku_readline.tmp",
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		panic(err)
	}
	sc.l = l
	defer l.Close()

	for !sc.quitting {
		line, err := l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				break
			}
			continue
		} else if err == io.EOF {
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		resp, err := sc.ProcessCommand(line)
		if err != nil {
			showMessage("error: "+err.Error(), l.Stderr())
			continue
		}
		if resp != "" {
			showMessage(resp, l.Stdout())
		}
	}
}

// Cleanup closes anything the controller opened.
func (sc *ShellController) Cleanup() {
	if sc.searchLog != nil {
		sc.searchLog.Close()
	}
}

func extractFields(line string) (*shellcmd, error) {
	fields, err := shellquote.Split(line)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, errors.New("no command entered")
	}
	return &shellcmd{
		cmd:  strings.ToLower(fields[0]),
		args: fields[1:],
	}, nil
}

// ProcessCommand executes one command line and returns the response
// text, which may be empty.
func (sc *ShellController) ProcessCommand(line string) (string, error) {
	cmd, err := extractFields(line)
	if err != nil {
		return "", err
	}
	switch cmd.cmd {
	case "uci":
		return "id name Gomoku MCTS\nid author DeepReal\nuciok", nil
	case "isready":
		return "readyok", nil
	case "ucinewgame":
		sc.game.Reset()
		return "", nil
	case "position":
		return "", sc.handlePosition(cmd.args)
	case "go":
		return sc.handleGo(cmd.args)
	case "stop":
		// search is synchronous; nothing to stop.
		return "", nil
	case "d", "display":
		return sc.displayText(), nil
	case "perft":
		return sc.handlePerft(cmd.args)
	case "play":
		return "", sc.handlePlay(cmd.args)
	case "genmoves":
		return sc.handleGenMoves(cmd.args)
	case "hist":
		return sc.handleHist()
	case "seed":
		return "", sc.handleSeed(cmd.args)
	case "help":
		return usage(), nil
	case "quit", "exit":
		sc.quitting = true
		return "", nil
	}
	if sc.curMode == UCIMode {
		// unknown protocol input is silently dropped.
		return "", nil
	}
	return "", fmt.Errorf("unknown command: %v", cmd.cmd)
}

func (sc *ShellController) handlePosition(args []string) error {
	if len(args) == 0 {
		return errors.New("position needs startpos")
	}
	idx := 0
	switch args[idx] {
	case "startpos":
		sc.game.Reset()
		idx++
	case "fen":
		// no FEN-like format is defined for gomoku; reset and skip
		// ahead to any move list.
		sc.game.Reset()
		for idx < len(args) && args[idx] != "moves" {
			idx++
		}
	default:
		return fmt.Errorf("unknown position token: %v", args[idx])
	}
	if idx < len(args) && args[idx] == "moves" {
		for _, tok := range args[idx+1:] {
			m := move.FromString(tok)
			if m.Valid() && sc.game.LegalMove(m) {
				sc.game.Apply(m)
			}
		}
	}
	return nil
}

func (sc *ShellController) handleGo(args []string) (string, error) {
	timeMS := sc.solver.Config().MaxTimeMS

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "movetime":
			if i+1 >= len(args) {
				return "", errors.New("movetime needs a value")
			}
			v, err := strconv.Atoi(args[i+1])
			if err != nil {
				return "", err
			}
			timeMS = v
			i++
		case "depth":
			if i+1 >= len(args) {
				return "", errors.New("depth needs a value")
			}
			v, err := strconv.Atoi(args[i+1])
			if err != nil {
				return "", err
			}
			sc.solver.Config().MaxIterations = v * 1000
			i++
		case "nodes":
			if i+1 >= len(args) {
				return "", errors.New("nodes needs a value")
			}
			v, err := strconv.Atoi(args[i+1])
			if err != nil {
				return "", err
			}
			sc.solver.Config().MaxIterations = v
			i++
		}
	}

	best := sc.solver.SearchWithLimit(sc.game, timeMS)
	log.Debug().Int("iterations", sc.solver.Iterations()).
		Str("move", best.String()).Msg("search done")
	return "bestmove " + strings.ToLower(best.String()), nil
}

func (sc *ShellController) displayText() string {
	var sb strings.Builder
	sb.WriteString(sc.game.ToDisplayText())
	sb.WriteString("\nCurrent player: ")
	sb.WriteString(sc.game.CurrentPlayer().String())
	sb.WriteString("\nMove count: ")
	sb.WriteString(strconv.Itoa(sc.game.MoveCount()))
	if sc.game.Terminal() {
		sb.WriteString("\nGame over: ")
		sb.WriteString(sc.game.Result().String())
	}
	return sb.String()
}

func (sc *ShellController) handlePlay(args []string) error {
	if len(args) != 1 {
		return errors.New("play needs a move, e.g. play h8")
	}
	m := move.FromString(args[0])
	if !m.Valid() {
		return fmt.Errorf("cannot parse move: %v", args[0])
	}
	if !sc.game.LegalMove(m) {
		return fmt.Errorf("illegal move: %v", m)
	}
	sc.game.Apply(m)
	return nil
}

func usage() string {
	return `commands:
uci | isready | ucinewgame - protocol handshake
position startpos [moves h8 i9 ...] - set up a position
go [movetime <ms>] [nodes <n>] [depth <d>] - search; prints bestmove
d | display - show the board
perft <depth> [split] - count leaf positions
play <move> - make a move on the current board
genmoves [n] - show the top n scored moves (default 15)
hist - histogram of root visits from the last search
seed <n> - reseed the solver deterministically
quit | exit`
}
