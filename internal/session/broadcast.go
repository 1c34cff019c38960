package session

import (
	"sync"

	"github.com/pefman/champion-duel/internal/game"
	"github.com/pefman/champion-duel/internal/models"
)

// Broadcaster fans renderer calls out to every attached renderer, so a page
// opened in two tabs stays in step.
type Broadcaster struct {
	mu   sync.Mutex
	subs map[game.Renderer]struct{}
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{subs: map[game.Renderer]struct{}{}}
}

func (b *Broadcaster) Attach(r game.Renderer) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs[r] = struct{}{}
}

func (b *Broadcaster) Detach(r game.Renderer) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.subs, r)
}

func (b *Broadcaster) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// Failer is implemented by renderers whose output can break, such as a
// websocket. A failed renderer is detached after the call that broke it.
type Failer interface {
	Failed() bool
}

// each calls fn on a copy of the subscriber set so a slow renderer never
// blocks Attach or Detach.
func (b *Broadcaster) each(fn func(game.Renderer)) {
	b.mu.Lock()
	subs := make([]game.Renderer, 0, len(b.subs))
	for r := range b.subs {
		subs = append(subs, r)
	}
	b.mu.Unlock()

	for _, r := range subs {
		fn(r)
		if f, ok := r.(Failer); ok && f.Failed() {
			b.Detach(r)
		}
	}
}

func (b *Broadcaster) RenderStats(s models.Snapshot) {
	b.each(func(r game.Renderer) { r.RenderStats(s) })
}

func (b *Broadcaster) LogMessage(msg string) {
	b.each(func(r game.Renderer) { r.LogMessage(msg) })
}

func (b *Broadcaster) SetAttackEnabled(enabled bool) {
	b.each(func(r game.Renderer) { r.SetAttackEnabled(enabled) })
}

func (b *Broadcaster) ClearLog() {
	b.each(func(r game.Renderer) { r.ClearLog() })
}
