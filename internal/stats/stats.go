package stats

import (
	"sync"
	"time"

	"github.com/pefman/champion-duel/internal/game"
	"github.com/pefman/champion-duel/internal/models"
)

// Tally counts what happened across every session (in-memory only).
type Tally struct {
	Rounds      int `json:"rounds"`
	Victories   int `json:"victories"`
	Defeats     int `json:"defeats"`
	PlayerCrits int `json:"player_crits"`
	EnemyCrits  int `json:"enemy_crits"`
	DamageDealt int `json:"damage_dealt"`
	DamageTaken int `json:"damage_taken"`
}

type Board struct {
	mu    sync.Mutex
	tally Tally
	// biggest hit per day, keyed YYYY-MM-DD UTC
	dailyMax map[string]BiggestHit
	now      func() time.Time
}

func NewBoard() *Board {
	return &Board{dailyMax: map[string]BiggestHit{}, now: time.Now}
}

// RecordTurn folds one resolved round into the tally. Rejected turns are ignored.
func (b *Board) RecordTurn(session string, before models.MatchState, out game.TurnOutcome) {
	if out.Rejected {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.tally.Rounds++
	if r := out.PlayerRoll; r != nil {
		b.tally.DamageDealt += r.Amount
		if r.Critical {
			b.tally.PlayerCrits++
		}
		b.maybeBiggestHit(session, before.Player.Name, before.Enemy.Name, r.Amount, r.Critical)
	}
	if r := out.EnemyRoll; r != nil {
		b.tally.DamageTaken += r.Amount
		if r.Critical {
			b.tally.EnemyCrits++
		}
		b.maybeBiggestHit(session, before.Enemy.Name, before.Player.Name, r.Amount, r.Critical)
	}
	switch out.Result {
	case models.PlayerVictory:
		b.tally.Victories++
	case models.PlayerDefeat:
		b.tally.Defeats++
	}
}

func (b *Board) Tally() Tally {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.tally
}

// Summary is the payload served at /api/stats.
type Summary struct {
	Tally
	Date       string      `json:"date"`
	BiggestHit *BiggestHit `json:"biggest_hit,omitempty"`
}

func (b *Board) Summary() Summary {
	b.mu.Lock()
	defer b.mu.Unlock()
	s := Summary{Tally: b.tally, Date: b.dateKey()}
	if hit, ok := b.dailyMax[s.Date]; ok {
		s.BiggestHit = &hit
	}
	return s
}
