package web

import (
	"encoding/json"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/reindeer-rush/internal/games/rush"
)

const (
	writeWait      = 5 * time.Second
	maxMessageSize = 1024
)

// clientMessage is anything the page sends.
type clientMessage struct {
	Type  string  `json:"type"`            // pointer, key, restart, viewport
	Phase string  `json:"phase,omitempty"` // down, move, up, cancel
	Key   string  `json:"key,omitempty"`   // jump, dash, duck
	ID    int     `json:"id,omitempty"`
	X     float64 `json:"x,omitempty"`
	Y     float64 `json:"y,omitempty"`
	T     float64 `json:"t,omitempty"`
	W     float64 `json:"w,omitempty"`
	H     float64 `json:"h,omitempty"`
}

// frameMessage is pushed once per driver tick.
type frameMessage struct {
	Type     string         `json:"type"`
	Snapshot rush.Snapshot  `json:"snapshot"`
	State    rush.StateInfo `json:"state"`
	Cues     []rush.Cue     `json:"cues,omitempty"`
}

// endedMessage is pushed once when a run ends.
type endedMessage struct {
	Type     string               `json:"type"`
	GameID   string               `json:"gameId"`
	Distance float64              `json:"distance"`
	Reason   rush.CollisionReason `json:"reason"`
	Score    int                  `json:"score"`
}

// session owns one websocket and one simulation. The ticker goroutine is the
// only writer to the connection; the read loop only touches the simulation
// and the interpreter under mu.
type session struct {
	conn   *websocket.Conn
	logger *log.Logger
	fps    int

	mu       sync.Mutex
	sim      *rush.Simulation
	gestures *rush.Interpreter
	clockMs  float64
	ended    *endedMessage
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	seed := s.cfg.Seed
	if v := r.URL.Query().Get("seed"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			seed = n
		}
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}

	sess := newSession(conn, s, seed)
	s.logger.Info("session started", "remote", r.RemoteAddr, "seed", seed)
	sess.run()
	s.logger.Info("session ended", "remote", r.RemoteAddr)
}

func newSession(conn *websocket.Conn, srv *Server, seed int64) *session {
	sim := rush.NewSimulation(srv.cfg.Rush, rush.NewSeededRandom(seed))
	gestures := rush.NewInterpreter(sim.Config().Player.DuckMs)
	sim.SetIntentSource(gestures)

	sess := &session{
		conn:     conn,
		logger:   srv.logger,
		fps:      srv.cfg.FPS,
		sim:      sim,
		gestures: gestures,
	}
	// Called from Step, which already holds mu.
	sim.SetReporter(rush.ReporterFunc(func(distance float64, reason rush.CollisionReason) {
		sess.ended = &endedMessage{
			Type:     "ended",
			GameID:   rush.GameID,
			Distance: distance,
			Reason:   reason,
			Score:    sim.Score(),
		}
		srv.logger.Info("run ended", "distance", int(distance), "reason", reason, "score", sim.Score())
	}))
	sim.StartGame()
	return sess
}

// run blocks until the connection closes.
func (s *session) run() {
	defer s.conn.Close()

	done := make(chan struct{})
	go func() {
		defer close(done)
		s.readLoop()
	}()

	ticker := time.NewTicker(time.Second / time.Duration(s.fps))
	defer ticker.Stop()
	last := time.Now()

	for {
		select {
		case <-done:
			return
		case now := <-ticker.C:
			delta := float64(now.Sub(last)) / float64(time.Millisecond)
			last = now
			if err := s.frame(delta); err != nil {
				return
			}
		}
	}
}

// frame advances the run and pushes the result.
func (s *session) frame(deltaMs float64) error {
	s.mu.Lock()
	s.clockMs += deltaMs
	s.gestures.Advance(s.clockMs)
	cues := s.sim.Step(deltaMs)
	msg := frameMessage{
		Type:     "frame",
		Snapshot: s.sim.Snapshot(),
		State:    s.sim.State(),
		Cues:     cues,
	}
	ended := s.ended
	s.ended = nil
	s.mu.Unlock()

	if err := s.write(msg); err != nil {
		return err
	}
	if ended != nil {
		return s.write(ended)
	}
	return nil
}

func (s *session) write(v any) error {
	s.conn.SetWriteDeadline(time.Now().Add(writeWait)) //nolint:errcheck
	return s.conn.WriteJSON(v)
}

func (s *session) readLoop() {
	s.conn.SetReadLimit(maxMessageSize)
	for {
		_, payload, err := s.conn.ReadMessage()
		if err != nil {
			return
		}
		var msg clientMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			s.logger.Debug("discarding malformed message", "error", err)
			continue
		}
		s.apply(msg)
	}
}

// apply routes one client message into the interpreter or the run.
func (s *session) apply(msg clientMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ev := rush.PointerEvent{ID: msg.ID, X: msg.X, Y: msg.Y, TimeMs: msg.T}
	switch msg.Type {
	case "pointer":
		switch msg.Phase {
		case "down":
			s.gestures.PointerDown(ev)
		case "move":
			s.gestures.PointerMove(ev)
		case "up":
			s.gestures.PointerUp(ev)
		case "cancel":
			s.gestures.PointerCancel()
		}
	case "key":
		switch msg.Key {
		case "jump":
			s.gestures.KeyJump()
		case "dash":
			s.gestures.KeyDash()
		case "duck":
			s.gestures.KeyDuck(s.clockMs)
		}
	case "restart":
		if s.sim.RunState() != rush.StateRunning {
			s.sim.StartGame()
		}
	case "viewport":
		s.sim.SetViewport(msg.W, msg.H)
	}
}
