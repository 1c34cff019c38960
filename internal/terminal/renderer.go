// Package terminal renders a match as plain text lines.
package terminal

import (
	"io"
	"strings"
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/pefman/champion-duel/internal/game"
	"github.com/pefman/champion-duel/internal/models"
	"github.com/pefman/champion-duel/internal/stats"
)

const (
	bold  = "\x1b[1m"
	reset = "\x1b[0m"
)

// Renderer writes log lines as they arrive (a terminal cannot prepend) and
// a status line whenever the stats change.
type Renderer struct {
	mu      sync.Mutex
	w       io.Writer
	p       *message.Printer
	color   bool
	enabled bool
}

func NewRenderer(w io.Writer, color bool) *Renderer {
	return &Renderer{w: w, p: message.NewPrinter(language.English), color: color}
}

func (r *Renderer) format(msg string) string {
	if r.color {
		return game.Emphasize(msg, bold, reset)
	}
	return game.StripEmphasis(msg)
}

func (r *Renderer) RenderStats(s models.Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.p.Fprintf(r.w, "\nSTATUS: %s HP: %d/%d | %s HP: %d/%d\n\n",
		s.Player.Name, s.Player.Health, s.Player.MaxHealth,
		s.Enemy.Name, s.Enemy.Health, s.Enemy.MaxHealth)
}

func (r *Renderer) LogMessage(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.p.Fprintln(r.w, r.format(msg))
}

func (r *Renderer) SetAttackEnabled(enabled bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.enabled = enabled
}

// AttackEnabled reports the last state the match signalled.
func (r *Renderer) AttackEnabled() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.enabled
}

func (r *Renderer) ClearLog() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.p.Fprintln(r.w, strings.Repeat("=", 40))
}

// PrintSummary writes the battle tally with grouped numbers.
func (r *Renderer) PrintSummary(s stats.Summary) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.p.Fprintf(r.w, "rounds %d · victories %d · defeats %d · damage dealt %d · damage taken %d\n",
		s.Rounds, s.Victories, s.Defeats, s.DamageDealt, s.DamageTaken)
	if s.BiggestHit != nil {
		r.p.Fprintf(r.w, "biggest hit today: %s for %d\n", s.BiggestHit.Attacker, s.BiggestHit.Amount)
	}
}
