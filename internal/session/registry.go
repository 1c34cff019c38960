// Package session keeps one match per open page.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pefman/champion-duel/internal/engine"
	"github.com/pefman/champion-duel/internal/game"
)

var ErrNotFound = errors.New("session not found")

type Session struct {
	ID      string
	Match   *game.Match
	Hub     *Broadcaster
	Created time.Time

	mu       sync.Mutex
	lastSeen time.Time
}

// Attach subscribes r to the match and replays the current state to it.
func (s *Session) Attach(r game.Renderer) {
	s.Hub.Attach(r)
	s.Match.Replay(r)
}

func (s *Session) Detach(r game.Renderer) { s.Hub.Detach(r) }

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// SourceFunc builds the random source for a new session.
type SourceFunc func() engine.Source

// SeededSources hands out sources seeded seed, seed+1, ... so a run is
// reproducible. Seed 0 gives clock-seeded sources.
func SeededSources(seed int64) SourceFunc {
	var mu sync.Mutex
	next := seed
	return func() engine.Source {
		if seed == 0 {
			return engine.NewRNG(0)
		}
		mu.Lock()
		defer mu.Unlock()
		src := engine.NewRNG(next)
		next++
		return src
	}
}

type Registry struct {
	mu        sync.Mutex
	byID      map[string]*Session
	newSource SourceFunc
	now       func() time.Time
	log       *zap.Logger
}

func NewRegistry(newSource SourceFunc, log *zap.Logger) *Registry {
	if log == nil {
		log = zap.NewNop()
	}
	return &Registry{
		byID:      map[string]*Session{},
		newSource: newSource,
		now:       time.Now,
		log:       log,
	}
}

// Create starts a fresh match under a new id.
func (r *Registry) Create() *Session {
	now := r.now()
	hub := NewBroadcaster()
	s := &Session{
		ID:       uuid.NewString(),
		Match:    game.NewMatch(r.newSource(), hub),
		Hub:      hub,
		Created:  now,
		lastSeen: now,
	}
	s.Match.Start()
	r.mu.Lock()
	r.byID[s.ID] = s
	n := len(r.byID)
	r.mu.Unlock()
	r.log.Info("session created", zap.String("session", s.ID), zap.Int("open", n))
	return s
}

func (r *Registry) Get(id string) (*Session, error) {
	r.mu.Lock()
	s, ok := r.byID[id]
	r.mu.Unlock()
	if !ok {
		return nil, ErrNotFound
	}
	s.touch(r.now())
	return s, nil
}

func (r *Registry) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return ErrNotFound
	}
	delete(r.byID, id)
	r.log.Info("session deleted", zap.String("session", id))
	return nil
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byID)
}

// Sweep drops sessions idle for longer than ttl with nobody attached.
func (r *Registry) Sweep(ttl time.Duration) int {
	cutoff := r.now().Add(-ttl)
	r.mu.Lock()
	defer r.mu.Unlock()
	removed := 0
	for id, s := range r.byID {
		if s.Hub.Len() > 0 || s.idleSince().After(cutoff) {
			continue
		}
		delete(r.byID, id)
		removed++
	}
	if removed > 0 {
		r.log.Info("swept idle sessions", zap.Int("removed", removed), zap.Int("open", len(r.byID)))
	}
	return removed
}

// Run sweeps every interval until ctx is done.
func (r *Registry) Run(ctx context.Context, ttl, every time.Duration) {
	tick := time.NewTicker(every)
	defer tick.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-tick.C:
			r.Sweep(ttl)
		}
	}
}

// SetClock swaps the time source. Intended for tests.
func (r *Registry) SetClock(now func() time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.now = now
}
