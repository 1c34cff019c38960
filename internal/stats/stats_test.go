package stats_test

import (
	"testing"
	"time"

	"github.com/pefman/champion-duel/internal/engine"
	"github.com/pefman/champion-duel/internal/game"
	"github.com/pefman/champion-duel/internal/models"
	"github.com/pefman/champion-duel/internal/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoard_RecordTurn(t *testing.T) {
	b := stats.NewBoard()
	before := models.NewMatchState()
	seq := engine.NewSequence(engine.DrawFor(12, 15), engine.Crit, engine.DrawFor(7, 10), engine.NoCrit)
	_, out := game.ResolveTurn(before, seq)

	b.RecordTurn("s1", before, out)

	assert.Equal(t, stats.Tally{Rounds: 1, PlayerCrits: 1, DamageDealt: 24, DamageTaken: 7}, b.Tally())
	hit, ok := b.BiggestHitToday()
	require.True(t, ok)
	assert.Equal(t, "The Champion", hit.Attacker)
	assert.Equal(t, 24, hit.Amount)
	assert.True(t, hit.Critical)
	assert.Equal(t, "s1", hit.Session)
}

func TestBoard_CountsResultsAndIgnoresRejected(t *testing.T) {
	b := stats.NewBoard()
	before := models.NewMatchState()
	before.Enemy.Health = 5
	after, out := game.ResolveTurn(before, engine.NewSequence(0.0, engine.NoCrit))
	b.RecordTurn("s", before, out)

	_, again := game.ResolveTurn(after, engine.NewSequence(0.5))
	b.RecordTurn("s", after, again)

	assert.Equal(t, 1, b.Tally().Victories)
	assert.Equal(t, 1, b.Tally().Rounds)
	assert.Zero(t, b.Tally().DamageTaken)
}

func TestBoard_BiggestHitIsPerDay(t *testing.T) {
	b := stats.NewBoard()
	day := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	b.SetClock(func() time.Time { return day })

	before := models.NewMatchState()
	_, big := game.ResolveTurn(before, engine.NewSequence(engine.DrawFor(15, 15), engine.NoCrit, engine.DrawFor(5, 10), engine.NoCrit))
	_, small := game.ResolveTurn(before, engine.NewSequence(engine.DrawFor(6, 15), engine.NoCrit, engine.DrawFor(5, 10), engine.NoCrit))
	b.RecordTurn("a", before, big)
	b.RecordTurn("b", before, small)

	s := b.Summary()
	assert.Equal(t, "2026-03-01", s.Date)
	require.NotNil(t, s.BiggestHit)
	assert.Equal(t, 15, s.BiggestHit.Amount)
	assert.Equal(t, "a", s.BiggestHit.Session)

	day = day.Add(24 * time.Hour)
	assert.Nil(t, b.Summary().BiggestHit)
	assert.Equal(t, 2, b.Summary().Rounds)

	b.Reset()
	assert.Equal(t, stats.Tally{}, b.Tally())
}
