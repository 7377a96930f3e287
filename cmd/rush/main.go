// rush runs Reindeer Rush, the fourth advent game: an endless snowy runner.
//
// Usage:
//
//	rush play           - Play in this terminal
//	rush serve          - Start an SSH server for remote play
//	rush web            - Serve the browser version and the score API
//	rush scores [game]  - Show the top 10 for an advent game
//	rush games          - List the advent leaderboards
//	rush simulate       - Run headless and print the final state
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible runs
//	--db <path>           - Set database path (default: ~/.rush/scores.db)
//	--config <path>       - Custom runner config YAML
//	--difficulty <preset> - easy, normal, hard or fixed
//	--log-level <level>   - debug, info, warn, error
//	--log-file <path>     - Also write logs to a rolling file
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/reindeer-rush/internal/config"
	"github.com/vovakirdan/reindeer-rush/internal/games/rush"
	"github.com/vovakirdan/reindeer-rush/internal/logging"
	"github.com/vovakirdan/reindeer-rush/internal/storage"
)

var (
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
	flagLogFile    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "rush",
	Short: "Fjerde Advent — Reindeer Rush",
	Long: `Reindeer Rush is an endless runner: a reindeer races across snowy
islands, jumping the gaps and dashing through snowmen.

Available commands:
  play      - Play in this terminal
  serve     - Start SSH server for remote play
  web       - Serve the browser version and the score API
  scores    - View the top 10 for an advent game
  games     - List the advent leaderboards
  simulate  - Headless deterministic run

Examples:
  rush play
  rush play --difficulty hard
  rush serve --ssh :2222
  rush web --addr :8080
  rush scores reindeer-rush
  rush simulate --seed 7 --seconds 120 --autopilot`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if flagDifficulty != "" {
			if _, ok := config.ParsePreset(flagDifficulty); !ok {
				return fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", flagDifficulty)
			}
		}
		rush.SetConfigPath(flagConfig)
		rush.SetDifficultyPreset(flagDifficulty)
		return nil
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "~/.rush/scores.db", "Path to scores database")
	pf.StringVar(&flagConfig, "config", "", "Path to custom runner config YAML")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	pf.StringVar(&flagLogFile, "log-file", "", "Also write logs to this rolling file")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(webCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(gamesCmd)
	rootCmd.AddCommand(simulateCmd)
}

// newLogger builds the component logger from the global flags.
// quiet keeps the console clean for full-screen commands.
func newLogger(prefix string, quiet bool) (*log.Logger, io.Closer, error) {
	return logging.New(logging.Options{
		Level:  flagLogLevel,
		File:   flagLogFile,
		Prefix: prefix,
		Quiet:  quiet,
	})
}

// openStore opens the scores database, logging instead of failing.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database, scores will not be saved", "error", err)
		return nil
	}
	return store
}

// loadConfig loads the runner config with the global flags applied.
func loadConfig() (config.RushConfig, error) {
	cfg, err := rush.LoadConfig()
	if err != nil {
		return cfg, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}
