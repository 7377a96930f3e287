package web

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vovakirdan/reindeer-rush/internal/games/rush"
	"github.com/vovakirdan/reindeer-rush/internal/storage"
)

func newTestServer(t *testing.T, withStore bool) *httptest.Server {
	t.Helper()
	var store *storage.Store
	if withStore {
		var err error
		store, err = storage.Open(filepath.Join(t.TempDir(), "scores.db"))
		if err != nil {
			t.Fatalf("storage.Open() failed: %v", err)
		}
		t.Cleanup(func() { store.Close() })
	}

	cfg := DefaultConfig()
	cfg.Seed = 42
	cfg.FPS = 120
	srv := httptest.NewServer(NewServer(cfg, store, nil).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func dial(t *testing.T, baseURL string) *websocket.Conn {
	t.Helper()
	u, err := url.Parse(baseURL)
	if err != nil {
		t.Fatalf("failed to parse test server url: %v", err)
	}
	u.Scheme = "ws"
	u.Path = "/ws"

	conn, resp, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		t.Fatalf("failed to open websocket connection: %v", err)
	}
	t.Cleanup(func() {
		conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		conn.Close()
		if resp != nil {
			resp.Body.Close()
		}
	})
	return conn
}

// readUntil reads frames until match returns true or the deadline passes.
func readUntil(t *testing.T, conn *websocket.Conn, match func(map[string]json.RawMessage) bool) map[string]json.RawMessage {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("read failed: %v", err)
		}
		var msg map[string]json.RawMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			t.Fatalf("bad payload %s: %v", payload, err)
		}
		if match(msg) {
			return msg
		}
	}
}

func hasCue(msg map[string]json.RawMessage, c rush.Cue) bool {
	var cues []rush.Cue
	json.Unmarshal(msg["cues"], &cues)
	for _, got := range cues {
		if got == c {
			return true
		}
	}
	return false
}

func TestSessionStreamsFrames(t *testing.T) {
	srv := newTestServer(t, false)
	conn := dial(t, srv.URL)

	first := readUntil(t, conn, func(m map[string]json.RawMessage) bool { return true })
	if string(first["type"]) != `"frame"` {
		t.Fatalf("first message type %s", first["type"])
	}
	var snap rush.Snapshot
	if err := json.Unmarshal(first["snapshot"], &snap); err != nil {
		t.Fatalf("snapshot decode: %v", err)
	}
	if snap.State != rush.StateRunning.String() || len(snap.Platforms) == 0 {
		t.Errorf("unexpected snapshot state=%s platforms=%d", snap.State, len(snap.Platforms))
	}
	if !hasCue(first, rush.CueMusicStart) {
		t.Error("first frame should carry the music-start cue")
	}
}

func TestSessionTapJumps(t *testing.T) {
	srv := newTestServer(t, false)
	conn := dial(t, srv.URL)
	readUntil(t, conn, func(m map[string]json.RawMessage) bool { return true })

	for _, phase := range []string{"down", "up"} {
		msg := clientMessage{Type: "pointer", Phase: phase, ID: 1, X: 300, Y: 200, T: 100}
		if err := conn.WriteJSON(msg); err != nil {
			t.Fatalf("write failed: %v", err)
		}
	}

	readUntil(t, conn, func(m map[string]json.RawMessage) bool { return hasCue(m, rush.CueJump) })
}

func TestSessionKeyDash(t *testing.T) {
	srv := newTestServer(t, false)
	conn := dial(t, srv.URL)
	readUntil(t, conn, func(m map[string]json.RawMessage) bool { return true })

	conn.WriteJSON(clientMessage{Type: "key", Key: "dash"})
	readUntil(t, conn, func(m map[string]json.RawMessage) bool {
		var snap rush.Snapshot
		json.Unmarshal(m["snapshot"], &snap)
		return snap.Player.DashActive
	})
}

func TestScoresAPI(t *testing.T) {
	srv := newTestServer(t, true)

	post := func(game, body string) *http.Response {
		t.Helper()
		resp, err := http.Post(srv.URL+"/api/scores/"+game, "application/json", strings.NewReader(body))
		if err != nil {
			t.Fatalf("POST failed: %v", err)
		}
		t.Cleanup(func() { resp.Body.Close() })
		return resp
	}

	tests := []struct {
		name   string
		game   string
		body   string
		status int
	}{
		{"valid", "fjerde-advent", `{"name":"Emma","score":120}`, http.StatusOK},
		{"legacy id", "reindeer-rush", `{"name":"Klaus","score":90}`, http.StatusOK},
		{"lower score kept out", "fjerde-advent", `{"name":"Emma","score":10}`, http.StatusOK},
		{"bad json", "fjerde-advent", `{"name":`, http.StatusBadRequest},
		{"empty name", "fjerde-advent", `{"name":"  ","score":5}`, http.StatusBadRequest},
		{"negative", "fjerde-advent", `{"name":"Sara","score":-5}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if resp := post(tt.game, tt.body); resp.StatusCode != tt.status {
				t.Errorf("status = %d, expected %d", resp.StatusCode, tt.status)
			}
		})
	}

	resp, err := http.Get(srv.URL + "/api/scores/fjerde-advent")
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	defer resp.Body.Close()

	var board boardResponse
	if err := json.NewDecoder(resp.Body).Decode(&board); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if board.Game != "fjerde-advent" {
		t.Errorf("game = %q, expected fjerde-advent", board.Game)
	}
	want := []struct {
		rank  int
		name  string
		score int
	}{{1, "Emma", 120}, {2, "Klaus", 90}}
	if len(board.Scores) != len(want) {
		t.Fatalf("scores = %+v", board.Scores)
	}
	for i, w := range want {
		got := board.Scores[i]
		if got.Rank != w.rank || got.Name != w.name || got.Score != w.score {
			t.Errorf("row %d = %+v, expected %+v", i, got, w)
		}
		if _, err := time.Parse(time.RFC3339, got.CreatedAt); err != nil {
			t.Errorf("row %d created_at %q: %v", i, got.CreatedAt, err)
		}
	}
}

func TestScoresLegacyResponseShape(t *testing.T) {
	srv := newTestServer(t, true)

	resp, err := http.Post(srv.URL+"/api/scores/reindeer-rush", "application/json", strings.NewReader(`{"name":"elf-test","score":128}`))
	if err != nil {
		t.Fatalf("POST failed: %v", err)
	}
	var submit submitResponse
	err = json.NewDecoder(resp.Body).Decode(&submit)
	resp.Body.Close()
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !submit.Success || submit.Game != "fjerde-advent" || submit.Rank != 1 {
		t.Errorf("submit = %+v, expected success at rank 1 on fjerde-advent", submit)
	}

	resp, err = http.Get(srv.URL + "/api/scores/reindeer-rush")
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	defer resp.Body.Close()
	var raw map[string]json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		t.Fatalf("decode: %v", err)
	}
	var game string
	json.Unmarshal(raw["game"], &game)
	if game != "reindeer-rush" {
		t.Errorf("game = %q, expected the requested id", game)
	}
	var rows []map[string]any
	json.Unmarshal(raw["scores"], &rows)
	if len(rows) != 1 || rows[0]["name"] != "elf-test" || rows[0]["score"] != float64(128) {
		t.Fatalf("scores = %v", rows)
	}
	if _, ok := rows[0]["created_at"]; !ok {
		t.Error("score rows should carry created_at")
	}
}

func TestScoresUnavailableWithoutStore(t *testing.T) {
	srv := newTestServer(t, false)

	resp, err := http.Post(srv.URL+"/api/scores/fjerde-advent", "application/json", bytes.NewBufferString(`{"name":"a","score":1}`))
	if err != nil {
		t.Fatalf("POST failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("status = %d", resp.StatusCode)
	}
}

func TestGamesAndIndex(t *testing.T) {
	srv := newTestServer(t, false)

	resp, err := http.Get(srv.URL + "/api/games")
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	var games []storage.GameInfo
	json.NewDecoder(resp.Body).Decode(&games)
	resp.Body.Close()
	if len(games) != 4 || games[3].ID != "fjerde-advent" {
		t.Errorf("games = %+v", games)
	}

	resp, err = http.Get(srv.URL + "/")
	if err != nil {
		t.Fatalf("GET / failed: %v", err)
	}
	defer resp.Body.Close()
	var body bytes.Buffer
	body.ReadFrom(resp.Body)
	if resp.StatusCode != http.StatusOK || !strings.Contains(body.String(), "Reindeer Rush") {
		t.Errorf("index status %d", resp.StatusCode)
	}
}
