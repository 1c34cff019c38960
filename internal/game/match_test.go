package game_test

import (
	"sync"
	"testing"

	"github.com/pefman/champion-duel/internal/engine"
	"github.com/pefman/champion-duel/internal/game"
	"github.com/pefman/champion-duel/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	stats   []models.Snapshot
	log     []string // newest first, like the page
	enabled []bool
	clears  int
}

func (r *recorder) RenderStats(s models.Snapshot) { r.stats = append(r.stats, s) }
func (r *recorder) LogMessage(msg string)         { r.log = append([]string{msg}, r.log...) }
func (r *recorder) SetAttackEnabled(on bool)      { r.enabled = append(r.enabled, on) }
func (r *recorder) ClearLog()                     { r.clears++; r.log = nil }

func (r *recorder) lastEnabled() bool { return r.enabled[len(r.enabled)-1] }

func TestMatch_StartLogsIntro(t *testing.T) {
	rec := &recorder{}
	m := game.NewMatch(engine.NewRNG(1), rec)
	m.Start()

	require.Len(t, rec.stats, 1)
	assert.Equal(t, 100, rec.stats[0].Player.Health)
	assert.Equal(t, []string{
		"You (**The Champion**) have **100** HP.",
		"A wild **chris_lionheart** appears! Get ready to fight!",
	}, rec.log)
	assert.Equal(t, rec.log, m.History())
	assert.True(t, rec.lastEnabled())
}

func TestMatch_AttackUntilOverDisablesTrigger(t *testing.T) {
	rec := &recorder{}
	m := game.NewMatch(engine.NewRNG(5), rec)
	m.Start()

	var out game.TurnOutcome
	for i := 0; i < 100 && !m.State().Over(); i++ {
		out = m.Attack()
	}
	require.True(t, m.State().Over())
	assert.False(t, rec.lastEnabled())
	assert.NotEqual(t, models.InProgress, out.Result)

	before := m.State()
	renders := len(rec.stats)
	out = m.Attack()
	assert.True(t, out.Rejected)
	assert.Equal(t, before, m.State())
	assert.Equal(t, "The battle is over!", rec.log[0])
	assert.Equal(t, renders, len(rec.stats))
	assert.False(t, rec.lastEnabled())
}

func TestMatch_HistoryIsNewestFirst(t *testing.T) {
	rec := &recorder{}
	seq := engine.NewSequence(engine.DrawFor(9, 15), engine.NoCrit, engine.DrawFor(5, 10), engine.NoCrit)
	m := game.NewMatch(seq, rec)
	m.Start()
	m.Attack()

	h := m.History()
	require.Len(t, h, 4)
	assert.Contains(t, h[0], "retaliates")
	assert.Contains(t, h[1], "**9**")
	assert.Contains(t, h[3], "appears")
	assert.Equal(t, h, rec.log)
	assert.Equal(t, 191, rec.stats[len(rec.stats)-1].Enemy.Health)
}

func TestMatch_ResetRestoresEverything(t *testing.T) {
	rec := &recorder{}
	m := game.NewMatch(engine.NewRNG(8), rec)
	m.Start()
	for !m.State().Over() {
		m.Attack()
	}

	m.Reset()

	assert.Equal(t, models.NewMatchState(), m.State())
	assert.Equal(t, 1, rec.clears)
	assert.Equal(t, game.IntroMessages(models.NewMatchState())[1], m.History()[0])
	assert.Len(t, m.History(), 2)
	assert.Equal(t, m.History(), rec.log)
	assert.True(t, rec.lastEnabled())
	assert.False(t, m.Attack().Rejected)
}

func TestMatch_ReplayCatchesUpLateRenderer(t *testing.T) {
	m := game.NewMatch(engine.NewRNG(2), nil)
	m.Start()
	m.Attack()
	m.Attack()

	late := &recorder{}
	m.Replay(late)

	assert.Equal(t, m.History(), late.log)
	assert.Equal(t, m.Snapshot(), late.stats[0])
	assert.Equal(t, !m.State().Over(), late.lastEnabled())
}

func TestMatch_ConcurrentTriggersStayConsistent(t *testing.T) {
	rec := &recorder{}
	m := game.NewMatch(engine.NewRNG(13), rec)
	m.Start()

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				if g == 0 && i%10 == 9 {
					m.Reset()
					continue
				}
				out := m.Attack()
				assert.NotEmpty(t, out.Messages)
			}
		}(g)
	}
	wg.Wait()

	state := m.State()
	assert.GreaterOrEqual(t, state.Player.Health, 0)
	assert.LessOrEqual(t, state.Player.Health, models.PlayerHealth)
	assert.GreaterOrEqual(t, state.Enemy.Health, 0)
	assert.LessOrEqual(t, state.Enemy.Health, models.EnemyHealth)

	// the renderer saw exactly what the match recorded, in the same order
	assert.Equal(t, m.History(), rec.log)
	assert.Equal(t, m.Snapshot(), rec.stats[len(rec.stats)-1])
	assert.Equal(t, !state.Over(), rec.lastEnabled())
	if state.Over() {
		assert.NotEqual(t, models.InProgress, state.Result())
	}
}
