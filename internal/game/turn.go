package game

import (
	"github.com/pefman/champion-duel/internal/engine"
	"github.com/pefman/champion-duel/internal/models"
)

// TurnOutcome captures what one attack trigger did.
type TurnOutcome struct {
	Messages      []string           `json:"messages"`
	Result        models.Result      `json:"result"`
	PlayerRoll    *engine.DamageRoll `json:"player_roll,omitempty"`
	EnemyRoll     *engine.DamageRoll `json:"enemy_roll,omitempty"`
	AttackEnabled bool               `json:"attack_enabled"`
	// Rejected is set when the match was already over and nothing happened.
	Rejected bool `json:"rejected,omitempty"`
}

// ResolveTurn plays one round: the player strikes, and if the enemy is still
// standing it strikes back. Once the match is over the call is a no-op that
// only reports so.
func ResolveTurn(state models.MatchState, src engine.Source) (models.MatchState, TurnOutcome) {
	if state.Over() {
		return state, TurnOutcome{
			Messages: []string{msgOver},
			Result:   state.Result(),
			Rejected: true,
		}
	}
	out := TurnOutcome{}

	// Player's turn
	hit := engine.RollDamage(src, state.Player.AttackPower)
	out.PlayerRoll = &hit
	state.Enemy.TakeDamage(hit.Amount)
	out.Messages = append(out.Messages, attackMessage(state.Player.Name, state.Enemy.Name, hit))

	if state.Enemy.Defeated() {
		out.Messages = append(out.Messages, msgVictory)
		out.Result = models.PlayerVictory
		return state, out
	}

	// Enemy's turn
	back := engine.RollDamage(src, state.Enemy.AttackPower)
	out.EnemyRoll = &back
	state.Player.TakeDamage(back.Amount)
	out.Messages = append(out.Messages, retaliateMessage(state.Enemy.Name, state.Player.Name, back))

	if state.Player.Defeated() {
		out.Messages = append(out.Messages, msgDefeat)
		out.Result = models.PlayerDefeat
		return state, out
	}

	out.Result = models.InProgress
	out.AttackEnabled = true
	return state, out
}

// ResetMatch hands back a freshly built match.
func ResetMatch() models.MatchState {
	return models.NewMatchState()
}
