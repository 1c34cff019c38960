package game

import (
	"sync"

	"github.com/pefman/champion-duel/internal/engine"
	"github.com/pefman/champion-duel/internal/models"
)

// Renderer is the presentation side of a match.
type Renderer interface {
	RenderStats(s models.Snapshot)
	// LogMessage adds msg to the top of the visible history.
	LogMessage(msg string)
	SetAttackEnabled(enabled bool)
	ClearLog()
}

type nopRenderer struct{}

func (nopRenderer) RenderStats(models.Snapshot) {}
func (nopRenderer) LogMessage(string)           {}
func (nopRenderer) SetAttackEnabled(bool)       {}
func (nopRenderer) ClearLog()                   {}

// Match binds a duel to a random source and a renderer. Each call runs to
// completion before the next one starts.
type Match struct {
	mu      sync.Mutex
	state   models.MatchState
	history []string // newest first
	src     engine.Source
	out     Renderer
}

func NewMatch(src engine.Source, out Renderer) *Match {
	if out == nil {
		out = nopRenderer{}
	}
	return &Match{state: models.NewMatchState(), src: src, out: out}
}

// Start shows the opening stats and intro lines.
func (m *Match) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.begin()
}

func (m *Match) begin() {
	m.out.RenderStats(m.state.Snapshot())
	for _, msg := range IntroMessages(m.state) {
		m.log(msg)
	}
	m.out.SetAttackEnabled(true)
}

// Attack handles one attack trigger.
func (m *Match) Attack() TurnOutcome {
	m.mu.Lock()
	defer m.mu.Unlock()
	next, out := ResolveTurn(m.state, m.src)
	m.state = next
	for _, msg := range out.Messages {
		m.log(msg)
	}
	if !out.Rejected {
		m.out.RenderStats(m.state.Snapshot())
	}
	m.out.SetAttackEnabled(out.AttackEnabled)
	return out
}

// Reset rebuilds both combatants, wipes the history and starts over.
func (m *Match) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = ResetMatch()
	m.history = nil
	m.out.ClearLog()
	m.begin()
}

// Replay brings a newly attached renderer up to date.
func (m *Match) Replay(r Renderer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r.ClearLog()
	r.RenderStats(m.state.Snapshot())
	for i := len(m.history) - 1; i >= 0; i-- {
		r.LogMessage(m.history[i])
	}
	r.SetAttackEnabled(!m.state.Over())
}

func (m *Match) State() models.MatchState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *Match) Snapshot() models.Snapshot { return m.State().Snapshot() }

// History returns the log, newest first.
func (m *Match) History() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.history))
	copy(out, m.history)
	return out
}

func (m *Match) log(msg string) {
	m.history = append([]string{msg}, m.history...)
	m.out.LogMessage(msg)
}
