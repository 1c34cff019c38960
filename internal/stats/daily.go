package stats

import "time"

// This file contains helpers around daily stats. It complements stats.go.

// BiggestHit is the largest single roll seen on a given day.
type BiggestHit struct {
	Attacker string `json:"attacker"`
	Defender string `json:"defender"`
	Amount   int    `json:"amount"`
	Critical bool   `json:"critical"`
	Session  string `json:"session,omitempty"`
	At       int64  `json:"at"`
}

func (b *Board) dateKey() string {
	return b.now().UTC().Format("2006-01-02")
}

// caller holds b.mu
func (b *Board) maybeBiggestHit(session, attacker, defender string, amount int, crit bool) {
	key := b.dateKey()
	cur, ok := b.dailyMax[key]
	if ok && amount <= cur.Amount {
		return
	}
	b.dailyMax[key] = BiggestHit{
		Attacker: attacker,
		Defender: defender,
		Amount:   amount,
		Critical: crit,
		Session:  session,
		At:       b.now().Unix(),
	}
}

// BiggestHitToday returns today's record, if any.
func (b *Board) BiggestHitToday() (BiggestHit, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	hit, ok := b.dailyMax[b.dateKey()]
	return hit, ok
}

// Reset clears the tally and the daily records.
// Intended for tests and dev convenience.
func (b *Board) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.tally = Tally{}
	for k := range b.dailyMax {
		delete(b.dailyMax, k)
	}
}

// SetClock swaps the time source. Intended for tests.
func (b *Board) SetClock(now func() time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.now = now
}
