package game

import (
	"fmt"
	"strings"

	"github.com/pefman/champion-duel/internal/engine"
	"github.com/pefman/champion-duel/internal/models"
)

// Log lines use **...** for emphasis; presentation layers decide how to show it.

const (
	msgOver    = "The battle is over!"
	msgVictory = "✨🏆 **VICTORY!** You defeated the enemy! 🏆✨"
	msgDefeat  = "💀 **GAME OVER!** You have been defeated. 💀"
)

func attackMessage(attacker, defender string, roll engine.DamageRoll) string {
	if roll.Critical {
		return fmt.Sprintf("💥 **CRITICAL HIT!** **%s** hits **%s** for **%d** damage!", attacker, defender, roll.Amount)
	}
	return fmt.Sprintf("⚔️ **%s** hits **%s** for **%d** damage!", attacker, defender, roll.Amount)
}

func retaliateMessage(attacker, defender string, roll engine.DamageRoll) string {
	if roll.Critical {
		return fmt.Sprintf("💥 **CRITICAL HIT!** **%s** retaliates, hitting **%s** for **%d** damage!", attacker, defender, roll.Amount)
	}
	return fmt.Sprintf("🤕 **%s** retaliates, hitting **%s** for **%d** damage!", attacker, defender, roll.Amount)
}

// IntroMessages are logged when a match starts or is reset, in log order.
func IntroMessages(s models.MatchState) []string {
	return []string{
		fmt.Sprintf("A wild **%s** appears! Get ready to fight!", s.Enemy.Name),
		fmt.Sprintf("You (**%s**) have **%d** HP.", s.Player.Name, s.Player.Health),
	}
}

// Emphasize swaps each **...** pair for open/close markers. An unpaired
// marker is left as-is.
func Emphasize(msg, open, close string) string {
	var b strings.Builder
	rest := msg
	for {
		i := strings.Index(rest, "**")
		if i < 0 {
			break
		}
		j := strings.Index(rest[i+2:], "**")
		if j < 0 {
			break
		}
		b.WriteString(rest[:i])
		b.WriteString(open)
		b.WriteString(rest[i+2 : i+2+j])
		b.WriteString(close)
		rest = rest[i+2+j+2:]
	}
	b.WriteString(rest)
	return b.String()
}

// StripEmphasis drops the emphasis markers.
func StripEmphasis(msg string) string { return Emphasize(msg, "", "") }
