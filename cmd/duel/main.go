// Command duel plays the champion duel in a terminal, either locally or
// against a running game server.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/pefman/champion-duel/internal/api"
	"github.com/pefman/champion-duel/internal/engine"
	"github.com/pefman/champion-duel/internal/game"
	"github.com/pefman/champion-duel/internal/models"
	"github.com/pefman/champion-duel/internal/stats"
	"github.com/pefman/champion-duel/internal/terminal"
)

func main() {
	seed := flag.Int64("seed", 0, "dice seed (0 = clock)")
	auto := flag.Bool("auto", false, "fight to the end without prompting")
	remote := flag.String("remote", "", "game server base URL, e.g. http://localhost:8081")
	color := flag.Bool("color", true, "bold emphasis with ANSI escapes")
	flag.Parse()

	out := terminal.NewRenderer(os.Stdout, *color)
	ctx := context.Background()

	var err error
	switch {
	case *remote != "":
		var d *remoteDriver
		d, err = newRemoteDriver(ctx, api.NewClient(*remote), out)
		if err == nil {
			err = play(ctx, os.Stdin, os.Stdout, d)
		}
	case *auto:
		autoFight(engine.NewRNG(*seed), out)
	default:
		err = play(ctx, os.Stdin, os.Stdout, newLocalDriver(engine.NewRNG(*seed), out))
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "duel: %v\n", err)
		os.Exit(1)
	}
}

// autoFight runs the whole battle in one go.
func autoFight(src engine.Source, out *terminal.Renderer) models.MatchState {
	state := models.NewMatchState()
	for _, msg := range game.IntroMessages(state) {
		out.LogMessage(msg)
	}
	out.RenderStats(state.Snapshot())
	board := stats.NewBoard()
	prev := state
	final, _ := game.Simulate(state, src, 0, func(s models.MatchState, t game.TurnOutcome) {
		board.RecordTurn("local", prev, t)
		prev = s
		for _, msg := range t.Messages {
			out.LogMessage(msg)
		}
		out.RenderStats(s.Snapshot())
	})
	out.PrintSummary(board.Summary())
	return final
}

type driver interface {
	Attack(ctx context.Context) error
	Reset(ctx context.Context) error
	AttackEnabled() bool
	Close(ctx context.Context)
}

// play reads commands until quit or EOF.
func play(ctx context.Context, in io.Reader, prompt io.Writer, d driver) error {
	defer d.Close(ctx)
	sc := bufio.NewScanner(in)
	for {
		if d.AttackEnabled() {
			fmt.Fprint(prompt, "[a]ttack, [r]eset, [q]uit > ")
		} else {
			fmt.Fprint(prompt, "[r]eset, [q]uit > ")
		}
		if !sc.Scan() {
			return sc.Err()
		}
		switch strings.ToLower(strings.TrimSpace(sc.Text())) {
		case "a", "attack", "":
			if err := d.Attack(ctx); err != nil {
				return err
			}
		case "r", "reset":
			if err := d.Reset(ctx); err != nil {
				return err
			}
		case "q", "quit", "exit":
			return nil
		default:
			fmt.Fprintln(prompt, "unknown command")
		}
	}
}

type localDriver struct {
	match *game.Match
	out   *terminal.Renderer
	board *stats.Board
}

func newLocalDriver(src engine.Source, out *terminal.Renderer) *localDriver {
	m := game.NewMatch(src, out)
	m.Start()
	return &localDriver{match: m, out: out, board: stats.NewBoard()}
}

func (d *localDriver) Attack(context.Context) error {
	before := d.match.State()
	d.board.RecordTurn("local", before, d.match.Attack())
	return nil
}

func (d *localDriver) Reset(context.Context) error {
	d.match.Reset()
	return nil
}

func (d *localDriver) AttackEnabled() bool { return d.out.AttackEnabled() }

func (d *localDriver) Close(context.Context) { d.out.PrintSummary(d.board.Summary()) }

type remoteDriver struct {
	client  *api.Client
	out     *terminal.Renderer
	id      string
	enabled bool
}

const remoteTimeout = 10 * time.Second

func newRemoteDriver(ctx context.Context, c *api.Client, out *terminal.Renderer) (*remoteDriver, error) {
	ctx, cancel := context.WithTimeout(ctx, remoteTimeout)
	defer cancel()
	s, err := c.CreateSession(ctx)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	d := &remoteDriver{client: c, out: out, id: s.ID}
	d.show(s)
	return d, nil
}

// show prints a whole session; its log arrives newest first.
func (d *remoteDriver) show(s api.Session) {
	for i := len(s.Log) - 1; i >= 0; i-- {
		d.out.LogMessage(s.Log[i])
	}
	d.out.RenderStats(s.State)
	d.enabled = s.State.AttackEnabled
}

func (d *remoteDriver) Attack(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, remoteTimeout)
	defer cancel()
	t, err := d.client.Attack(ctx, d.id)
	if err != nil {
		return fmt.Errorf("attack: %w", err)
	}
	for _, msg := range t.Outcome.Messages {
		d.out.LogMessage(msg)
	}
	if !t.Outcome.Rejected {
		d.out.RenderStats(t.Session.State)
	}
	d.enabled = t.Outcome.AttackEnabled
	return nil
}

func (d *remoteDriver) Reset(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, remoteTimeout)
	defer cancel()
	s, err := d.client.Reset(ctx, d.id)
	if err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	d.out.ClearLog()
	d.show(s)
	return nil
}

func (d *remoteDriver) AttackEnabled() bool { return d.enabled }

func (d *remoteDriver) Close(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, remoteTimeout)
	defer cancel()
	if sum, err := d.client.Stats(ctx); err == nil {
		d.out.PrintSummary(sum)
	}
	_ = d.client.DeleteSession(ctx, d.id)
}
