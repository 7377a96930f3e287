package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/reindeer-rush/internal/platform/web"
)

var flagWebAddr string

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Serve the browser version",
	Long: `Serve the canvas client, one websocket run per tab, and the
leaderboard API.

Endpoints:
  GET  /                     - Browser client
  GET  /ws                   - Websocket run (?seed=N to fix the seed)
  GET  /api/games            - Advent leaderboards
  GET  /api/scores/{game}    - Top 10 for a game
  POST /api/scores/{game}    - Submit {"name": "...", "score": N}

Examples:
  rush web
  rush web --addr 127.0.0.1:9000 --difficulty hard`,
	Args: cobra.NoArgs,
	RunE: runWeb,
}

func init() {
	webCmd.Flags().StringVar(&flagWebAddr, "addr", ":8080", "HTTP listen address (host:port)")
}

func runWeb(cmd *cobra.Command, _ []string) error {
	logger, closer, err := newLogger("rush-web", false)
	if err != nil {
		return err
	}
	defer closer.Close()

	rushCfg, err := loadConfig()
	if err != nil {
		return err
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	cfg := web.DefaultConfig()
	cfg.Address = flagWebAddr
	cfg.FPS = flagFPS
	cfg.Seed = flagSeed
	cfg.Rush = rushCfg

	server := web.NewServer(cfg, store, logger)

	fmt.Printf("Open http://localhost:%s in a browser\n", portOf(flagWebAddr))
	fmt.Println("Press Ctrl+C to stop")

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return server.ListenAndServe(ctx)
}
