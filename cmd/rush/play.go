package main

import (
	"fmt"
	"os"
	"os/user"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/reindeer-rush/internal/core"
	"github.com/vovakirdan/reindeer-rush/internal/games/rush"
	"github.com/vovakirdan/reindeer-rush/internal/platform/sound"
	"github.com/vovakirdan/reindeer-rush/internal/platform/tui"
	"github.com/vovakirdan/reindeer-rush/internal/registry"
)

var (
	flagName    string
	flagNoSound bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Start a run in this terminal.

Controls:
  Space/Up/W       - Jump (again in the air for a double jump)
  Right/D          - Dash through snowmen
  Down/S           - Duck
  Mouse            - Click to jump, drag right to dash, drag down to duck
  Tab              - Leaderboards
  M                - Mute sound
  P/Esc            - Pause
  R                - Restart (after game over)
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - Gentle gap ramp, more room between snowmen
  normal - Default ramp
  hard   - Gaps ramp early and the run speeds up
  fixed  - No progression, stays at config's initial level

Examples:
  rush play
  rush play --name Emma
  rush play --difficulty easy --no-sound
  rush play --config ./my-rush.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagName, "name", "", "Leaderboard name (default: your user name)")
	playCmd.Flags().BoolVar(&flagNoSound, "no-sound", false, "Disable audio cues")
}

func runPlay(cmd *cobra.Command, args []string) error {
	logger, closer, err := newLogger("rush", true)
	if err != nil {
		return err
	}
	defer closer.Close()

	if _, err := loadConfig(); err != nil {
		return err
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}

	game, err := registry.Create(rush.GameID)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	opts := tui.Options{
		Runtime: core.RuntimeConfig{
			ScreenW:  width,
			ScreenH:  height,
			TickRate: flagFPS,
			Seed:     flagSeed,
		},
		Store:      store,
		PlayerName: playerName(),
		Logger:     logger,
	}

	if !flagNoSound {
		player := sound.NewPlayer()
		if err := player.Start(); err != nil {
			logger.Warn("audio unavailable", "error", err)
		} else {
			defer player.Stop()
			opts.Cues = player
		}
	}

	if err := tui.Run(game, opts); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}

func playerName() string {
	if flagName != "" {
		return flagName
	}
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return "reindeer"
}
