// Package shell is an interactive explorer for the counting engine:
// walk the game tree by hand, inspect legal moves and canonical forms,
// and run counts from any reachable position.
package shell

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"github.com/rs/zerolog/log"

	"github.com/domino14/uttt/board"
	"github.com/domino14/uttt/config"
	"github.com/domino14/uttt/counter"
	"github.com/domino14/uttt/movegen"
	"github.com/domino14/uttt/symmetry"
)

type ShellController struct {
	l   *readline.Instance
	cfg *config.Config

	counter *counter.Counter

	cur      board.Position
	played   []int
	history  []board.Position
	gameOver bool
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

func NewShellController(cfg *config.Config) (*ShellController, error) {
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[31muttt>\033[0m ",
		HistoryFile:     "/tmp/readline.tmp",
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",

		HistorySearchFold:   true,
		AutoComplete:        completer,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		return nil, err
	}
	sc := &ShellController{
		l:       l,
		cfg:     cfg,
		counter: counter.New(cfg),
		cur:     board.StartingPosition(),
	}
	return sc, nil
}

func (sc *ShellController) Loop() {
	defer sc.l.Close()
	for {
		line, err := sc.l.Readline()
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
		fields := strings.Fields(line)
		if fields[0] == "exit" || fields[0] == "bye" {
			break
		}
		if err := sc.handle(fields); err != nil {
			showMessage("error: "+err.Error(), sc.l.Stderr())
		}
	}
}

func (sc *ShellController) handle(fields []string) error {
	out := sc.l.Stdout()
	switch fields[0] {
	case "help":
		usage(sc.l.Stderr())

	case "new":
		sc.cur = board.StartingPosition()
		sc.played = nil
		sc.history = nil
		sc.gameOver = false
		showMessage(sc.cur.ToDisplayText(), out)

	case "show":
		showMessage(sc.cur.ToDisplayText(), out)
		if sc.gameOver {
			showMessage("game over", out)
		}

	case "moves":
		var cells []string
		for it := sc.cur.NextValid; !it.IsZero(); it = it.ClearLowest() {
			cells = append(cells, strconv.Itoa(it.LowestSetBit()))
		}
		showMessage(strings.Join(cells, " "), out)

	case "play":
		if len(fields) != 2 {
			return fmt.Errorf("play needs a cell index (0..80)")
		}
		cell, err := strconv.Atoi(fields[1])
		if err != nil || cell < 0 || cell >= board.NumCells {
			return fmt.Errorf("bad cell %q", fields[1])
		}
		return sc.play(cell)

	case "undo":
		if len(sc.history) == 0 {
			return fmt.Errorf("nothing to undo")
		}
		sc.cur = sc.history[len(sc.history)-1]
		sc.history = sc.history[:len(sc.history)-1]
		sc.played = sc.played[:len(sc.played)-1]
		sc.gameOver = false
		showMessage(sc.cur.ToDisplayText(), out)

	case "random":
		plies := 5
		if len(fields) == 2 {
			p, err := strconv.Atoi(fields[1])
			if err != nil || p < 1 {
				return fmt.Errorf("bad ply count %q", fields[1])
			}
			plies = p
		}
		if sc.gameOver {
			return fmt.Errorf("game is over")
		}
		for _, pos := range movegen.RandomPlayout(sc.cur, plies) {
			sc.history = append(sc.history, sc.cur)
			sc.played = append(sc.played, -1)
			sc.cur = pos
		}
		sc.gameOver = sc.cur.GameOver()
		showMessage(sc.cur.ToDisplayText(), out)

	case "canonical":
		showMessage(symmetry.Canonical(sc.cur).ToDisplayText(), out)

	case "count":
		if sc.gameOver {
			return fmt.Errorf("game is over; no sequences extend it")
		}
		depth := sc.cfg.MaxDepth
		if len(fields) == 2 {
			d, err := strconv.Atoi(fields[1])
			if err != nil || d < 0 {
				return fmt.Errorf("bad depth %q", fields[1])
			}
			depth = d
		}
		start := time.Now()
		total := sc.counter.CountFrom(context.Background(), sc.cur, depth)
		showMessage(fmt.Sprintf("result = %d, time = %dms", total,
			time.Since(start).Milliseconds()), out)

	case "threads":
		if len(fields) == 2 {
			n, err := strconv.Atoi(fields[1])
			if err != nil || n < 1 {
				return fmt.Errorf("bad thread count %q", fields[1])
			}
			sc.counter.SetThreads(n)
		}
		showMessage(fmt.Sprintf("threads = %d", sc.counter.Threads()), out)

	default:
		return fmt.Errorf("unknown command %q; try help", fields[0])
	}
	return nil
}

func (sc *ShellController) play(cell int) error {
	if sc.gameOver {
		return fmt.Errorf("game is over")
	}
	if !sc.cur.NextValid.Bit(cell) {
		return fmt.Errorf("cell %d is not a legal move", cell)
	}
	next, gameOver := movegen.Apply(sc.cur, cell)
	sc.history = append(sc.history, sc.cur)
	sc.played = append(sc.played, cell)
	sc.cur = next
	sc.gameOver = gameOver
	log.Debug().Int("cell", cell).Bool("gameOver", gameOver).Msg("played")
	showMessage(sc.cur.ToDisplayText(), sc.l.Stdout())
	if gameOver {
		showMessage("game over", sc.l.Stdout())
	}
	return nil
}
