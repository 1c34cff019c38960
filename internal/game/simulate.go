package game

import (
	"github.com/pefman/champion-duel/internal/engine"
	"github.com/pefman/champion-duel/internal/models"
)

// Simulate keeps resolving rounds until the match is over or maxRounds have
// been played (maxRounds <= 0 means no limit). each, if set, sees the state
// after every round.
func Simulate(state models.MatchState, src engine.Source, maxRounds int, each func(models.MatchState, TurnOutcome)) (models.MatchState, []TurnOutcome) {
	var turns []TurnOutcome
	for !state.Over() {
		if maxRounds > 0 && len(turns) >= maxRounds {
			break
		}
		var out TurnOutcome
		state, out = ResolveTurn(state, src)
		turns = append(turns, out)
		if each != nil {
			each(state, out)
		}
	}
	return state, turns
}
