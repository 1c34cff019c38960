package models

// ========================= Domain Models =========================

// Fixed participants. Reset rebuilds both from these values.
const (
	PlayerName        = "The Champion"
	PlayerHealth      = 100
	PlayerAttackPower = 15

	EnemyName        = "chris_lionheart"
	EnemyHealth      = 200
	EnemyAttackPower = 10
)

type Combatant struct {
	Name        string `json:"name"`
	Health      int    `json:"health"`
	MaxHealth   int    `json:"max_health"`
	AttackPower int    `json:"attack_power"`
}

func NewCombatant(name string, health, attackPower int) Combatant {
	return Combatant{Name: name, Health: health, MaxHealth: health, AttackPower: attackPower}
}

// TakeDamage subtracts amount and floors health at zero.
func (c *Combatant) TakeDamage(amount int) {
	if amount < 0 {
		amount = 0
	}
	c.Health -= amount
	if c.Health < 0 {
		c.Health = 0
	}
}

func (c Combatant) Defeated() bool { return c.Health <= 0 }

// Result of a match at a given point.
type Result string

const (
	InProgress    Result = "in_progress"
	PlayerVictory Result = "victory"
	PlayerDefeat  Result = "defeat"
)

// MatchState is the whole mutable state of a duel. It is passed by value
// into the resolver and handed back updated.
type MatchState struct {
	Player Combatant `json:"player"`
	Enemy  Combatant `json:"enemy"`
}

func NewMatchState() MatchState {
	return MatchState{
		Player: NewCombatant(PlayerName, PlayerHealth, PlayerAttackPower),
		Enemy:  NewCombatant(EnemyName, EnemyHealth, EnemyAttackPower),
	}
}

// Over is true once either side has no health left.
func (s MatchState) Over() bool {
	return s.Player.Health == 0 || s.Enemy.Health == 0
}

func (s MatchState) Result() Result {
	switch {
	case s.Enemy.Health == 0:
		return PlayerVictory
	case s.Player.Health == 0:
		return PlayerDefeat
	default:
		return InProgress
	}
}

// Snapshot is what the renderer receives after every change.
type Snapshot struct {
	Player        Combatant `json:"player"`
	Enemy         Combatant `json:"enemy"`
	Result        Result    `json:"result"`
	AttackEnabled bool      `json:"attack_enabled"`
}

func (s MatchState) Snapshot() Snapshot {
	return Snapshot{Player: s.Player, Enemy: s.Enemy, Result: s.Result(), AttackEnabled: !s.Over()}
}

// WebSocket message structure
type WsMsg struct {
	Type string      `json:"type"`
	Data interface{} `json:"data,omitempty"`
}

// Client -> server websocket message types.
const (
	MsgAttack = "attack"
	MsgReset  = "reset"
)

// Server -> client websocket message types.
const (
	MsgState         = "state"
	MsgLog           = "log"
	MsgClear         = "clear"
	MsgAttackEnabled = "attack_enabled"
	MsgError         = "error"
)
