package session_test

import (
	"sync"
	"testing"
	"time"

	"github.com/pefman/champion-duel/internal/models"
	"github.com/pefman/champion-duel/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// brokenRenderer stops working after failAfter log lines.
type brokenRenderer struct {
	recorder
	failAfter int
}

func (r *brokenRenderer) Failed() bool { return len(r.log) >= r.failAfter }

func TestBroadcaster_DetachesFailedRenderer(t *testing.T) {
	hub := session.NewBroadcaster()
	good, bad := &recorder{}, &brokenRenderer{failAfter: 1}
	hub.Attach(good)
	hub.Attach(bad)

	hub.LogMessage("one")
	assert.Equal(t, 1, hub.Len())

	hub.LogMessage("two")
	assert.Equal(t, []string{"two", "one"}, good.log)
	assert.Equal(t, []string{"one"}, bad.log)
}

// selfDetacher unsubscribes from inside a render call.
type selfDetacher struct {
	recorder
	hub *session.Broadcaster
}

func (r *selfDetacher) LogMessage(msg string) {
	r.recorder.LogMessage(msg)
	r.hub.Detach(r)
}

func TestBroadcaster_RendererMayDetachDuringCall(t *testing.T) {
	hub := session.NewBroadcaster()
	r := &selfDetacher{hub: hub}
	hub.Attach(r)

	done := make(chan struct{})
	go func() {
		hub.LogMessage("bye")
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("broadcast deadlocked")
	}
	assert.Zero(t, hub.Len())
	assert.Equal(t, []string{"bye"}, r.log)
}

// stalledRenderer blocks in LogMessage until released.
type stalledRenderer struct {
	recorder
	entered chan struct{}
	release chan struct{}
	once    sync.Once
}

func (r *stalledRenderer) LogMessage(msg string) {
	r.once.Do(func() { close(r.entered) })
	<-r.release
	r.recorder.LogMessage(msg)
}

func TestBroadcaster_StalledRendererDoesNotBlockAttach(t *testing.T) {
	hub := session.NewBroadcaster()
	slow := &stalledRenderer{entered: make(chan struct{}), release: make(chan struct{})}
	hub.Attach(slow)

	go hub.LogMessage("slow")
	<-slow.entered

	attached := make(chan struct{})
	go func() {
		hub.Attach(&recorder{})
		hub.Detach(slow)
		close(attached)
	}()
	select {
	case <-attached:
	case <-time.After(2 * time.Second):
		t.Fatal("Attach blocked behind a stalled renderer")
	}
	close(slow.release)
	assert.Equal(t, 1, hub.Len())
}

func TestSession_BrokenRendererLeavesMatchRunning(t *testing.T) {
	reg := session.NewRegistry(session.SeededSources(2), nil)
	s := reg.Create()
	bad := &brokenRenderer{failAfter: 3}
	s.Attach(bad)
	require.Equal(t, 1, s.Hub.Len())

	s.Match.Attack()
	assert.Zero(t, s.Hub.Len())
	s.Match.Attack()
	assert.Len(t, s.Match.History(), 6)
	assert.NotEqual(t, models.NewMatchState(), s.Match.State())
}
