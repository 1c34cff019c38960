package server

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/pefman/champion-duel/internal/models"
	"github.com/pefman/champion-duel/internal/session"
)

const writeWait = 5 * time.Second

// MsgSession tells the page which session it is bound to.
const MsgSession = "session"

// wsRenderer renders a match onto one websocket connection. After the first
// failed write it drops everything and closes the connection, which also
// ends the reader loop.
type wsRenderer struct {
	mu     sync.Mutex
	conn   *websocket.Conn
	log    *zap.Logger
	failed bool
}

func (r *wsRenderer) send(m models.WsMsg) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failed {
		return
	}
	_ = r.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := r.conn.WriteJSON(m); err != nil {
		r.log.Debug("ws: write failed", zap.String("type", m.Type), zap.Error(err))
		r.failed = true
		_ = r.conn.Close()
	}
}

func (r *wsRenderer) Failed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.failed
}

func (r *wsRenderer) RenderStats(s models.Snapshot) {
	r.send(models.WsMsg{Type: models.MsgState, Data: s})
}

func (r *wsRenderer) LogMessage(msg string) {
	r.send(models.WsMsg{Type: models.MsgLog, Data: msg})
}

func (r *wsRenderer) SetAttackEnabled(enabled bool) {
	r.send(models.WsMsg{Type: models.MsgAttackEnabled, Data: enabled})
}

func (r *wsRenderer) ClearLog() {
	r.send(models.WsMsg{Type: models.MsgClear})
}

type clientIn struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// handleWS binds a connection to ?session=<id>, or to a new session when the
// id is missing or unknown.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	var sess *session.Session
	if id := r.URL.Query().Get("session"); id != "" {
		sess, _ = s.sessions.Get(id)
	}
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("ws: upgrade failed", zap.Error(err))
		return
	}
	if sess == nil {
		sess = s.sessions.Create()
	}
	log := s.log.With(zap.String("session", sess.ID), zap.String("remote", r.RemoteAddr))
	log.Info("ws: connect")

	out := &wsRenderer{conn: conn, log: log}
	out.send(models.WsMsg{Type: MsgSession, Data: map[string]string{"id": sess.ID, "version": s.version}})
	sess.Attach(out)

	defer func() {
		sess.Detach(out)
		_ = conn.Close()
		log.Info("ws: closed")
	}()
	for {
		var in clientIn
		if err := conn.ReadJSON(&in); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn("ws: read error", zap.Error(err))
			}
			return
		}
		if _, err := s.sessions.Get(sess.ID); err != nil {
			out.send(models.WsMsg{Type: models.MsgError, Data: err.Error()})
			return
		}
		switch in.Type {
		case models.MsgAttack:
			s.attack(sess)
		case models.MsgReset:
			s.reset(sess)
		default:
			log.Debug("ws: unknown message", zap.String("type", in.Type))
			out.send(models.WsMsg{Type: models.MsgError, Data: "unknown message type " + in.Type})
		}
	}
}
