// Package web serves the runner to browsers. Each websocket connection owns
// one simulation driven by a server-side ticker; the page renders the
// snapshots it receives and sends raw pointer and key events back.
package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/reindeer-rush/internal/config"
	"github.com/vovakirdan/reindeer-rush/internal/logging"
	"github.com/vovakirdan/reindeer-rush/internal/storage"
)

//go:embed static
var staticFiles embed.FS

// Config holds configuration for the web server.
type Config struct {
	// Address is the host:port to listen on.
	Address string

	// FPS is the frame driver rate per session.
	FPS int

	// Seed fixes every session's seed when non-zero.
	Seed int64

	// Rush is the runner config handed to every session.
	Rush config.RushConfig
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Address: ":8080",
		FPS:     60,
		Rush:    config.DefaultRushConfig(),
	}
}

// Server is the HTTP and websocket front end.
type Server struct {
	cfg      Config
	store    *storage.Store
	logger   *log.Logger
	upgrader websocket.Upgrader
	mux      *http.ServeMux
	http     *http.Server
}

// NewServer wires the routes. store may be nil, in which case the score
// endpoints answer 503.
func NewServer(cfg Config, store *storage.Store, logger *log.Logger) *Server {
	if cfg.FPS <= 0 {
		cfg.FPS = 60
	}
	if logger == nil {
		logger = logging.Discard()
	}

	s := &Server{
		cfg:    cfg,
		store:  store,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		mux: http.NewServeMux(),
	}

	static, _ := fs.Sub(staticFiles, "static")
	s.mux.Handle("GET /", http.FileServerFS(static))
	s.mux.HandleFunc("GET /ws", s.handleSession)
	s.mux.HandleFunc("GET /api/games", s.handleGames)
	s.mux.HandleFunc("GET /api/scores/{game}", s.handleTopScores)
	s.mux.HandleFunc("POST /api/scores/{game}", s.handleSubmitScore)
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	s.http = &http.Server{
		Addr:              s.cfg.Address,
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting web server", "address", s.cfg.Address)
		errCh <- s.http.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("web: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.http.Shutdown(shutdownCtx)
}
