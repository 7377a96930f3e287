package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/vovakirdan/reindeer-rush/internal/storage"
)

// boardResponse echoes the requested game id, legacy ids included.
type boardResponse struct {
	Game   string     `json:"game"`
	Scores []scoreRow `json:"scores"`
}

type scoreRow struct {
	Rank      int    `json:"rank"`
	Name      string `json:"name"`
	Score     int    `json:"score"`
	CreatedAt string `json:"created_at"`
}

type submitRequest struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

type submitResponse struct {
	Success  bool   `json:"success"`
	Game     string `json:"game"`
	Best     int    `json:"best"`
	Improved bool   `json:"improved"`
	Rank     int    `json:"rank,omitempty"`
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func failure(msg string) errorResponse {
	return errorResponse{Error: msg}
}

func (s *Server) handleGames(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, storage.KnownGames)
}

func (s *Server) handleTopScores(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeJSON(w, http.StatusServiceUnavailable, failure("scores unavailable"))
		return
	}
	entries, err := s.store.TopScores(r.PathValue("game"), storage.LeaderboardLimit)
	if err != nil {
		s.logger.Error("cannot load scores", "game", r.PathValue("game"), "error", err)
		writeJSON(w, http.StatusInternalServerError, failure("cannot load scores"))
		return
	}

	rows := make([]scoreRow, 0, len(entries))
	for i, e := range entries {
		rows = append(rows, scoreRow{
			Rank:      i + 1,
			Name:      e.Name,
			Score:     e.Score,
			CreatedAt: e.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	writeJSON(w, http.StatusOK, boardResponse{Game: r.PathValue("game"), Scores: rows})
}

func (s *Server) handleSubmitScore(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeJSON(w, http.StatusServiceUnavailable, failure("scores unavailable"))
		return
	}

	var req submitRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 4096))
	if err := dec.Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, failure("invalid json"))
		return
	}
	if req.Score < 0 {
		writeJSON(w, http.StatusBadRequest, failure("score must not be negative"))
		return
	}

	gameID := storage.CanonicalGameID(r.PathValue("game"))
	res, err := s.store.SaveScore(gameID, req.Name, req.Score)
	switch {
	case errors.Is(err, storage.ErrEmptyName):
		writeJSON(w, http.StatusBadRequest, failure("name is required"))
		return
	case err != nil:
		s.logger.Error("cannot save score", "game", gameID, "error", err)
		writeJSON(w, http.StatusInternalServerError, failure("cannot save score"))
		return
	}

	s.logger.Info("score submitted", "game", gameID, "score", req.Score, "best", res.Best, "rank", res.Rank)
	writeJSON(w, http.StatusOK, submitResponse{
		Success:  true,
		Game:     gameID,
		Best:     res.Best,
		Improved: res.Improved,
		Rank:     res.Rank,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}
