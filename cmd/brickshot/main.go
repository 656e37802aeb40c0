// brickshot is a volley brick breaker for the terminal.
//
// Usage:
//
//	brickshot list              - List game variants
//	brickshot play [variant]    - Play a variant (default: brickshot)
//	brickshot menu              - Pick variant and difficulty interactively
//	brickshot serve             - Start SSH server for remote play
//	brickshot watch [variant]   - Stream an autopilot game to websocket spectators
//	brickshot scores <variant>  - Show high scores and recent rounds
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible layouts
//	--db <path>          - Set database path (default: ~/.brickshot/scores.db)
//	--config <path>      - Use a custom game config YAML
//	--difficulty <name>  - Difficulty preset: easy, normal, hard, fixed
//	--log-file <path>    - Write game events to a log file
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/brickshot/internal/config"
	"github.com/vovakirdan/brickshot/internal/core"
	"github.com/vovakirdan/brickshot/internal/games/brickshot"
	"github.com/vovakirdan/brickshot/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogFile    string
	flagVerbose    bool
)

// logFile is closed after the command finishes.
var logFile *os.File

func main() {
	err := rootCmd.Execute()
	if logFile != nil {
		logFile.Close()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "brickshot",
	Short: "Brickshot - aim once, fire a volley, clear the bricks",
	Long: `Brickshot is a volley brick breaker for the terminal.

Aim from the launch point at the bottom, fire a stream of balls and wear
the bricks down before they reach the loss line. Every volley pushes the
bricks one row closer. Green + bricks add a ball to the next volley.

Available commands:
  list     - Show game variants
  play     - Play a variant directly
  menu     - Interactive picker with difficulty choice
  serve    - Start SSH server for remote play
  watch    - Stream an autopilot game over websocket
  scores   - View high scores and recent rounds

Examples:
  brickshot play
  brickshot play brickshot_classic --difficulty hard
  brickshot menu
  brickshot serve --ssh :2222
  brickshot watch --addr :8080
  brickshot scores brickshot`,
	SilenceUsage:      true,
	PersistentPreRunE: setupGlobals,
}

func init() {
	defaultDB := filepath.Join("~", config.AppDir, "scores.db")

	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", defaultDB, "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write game events to this file")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log every game event")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(scoresCmd)
}

// setupGlobals validates shared flags and hands them to the game package.
func setupGlobals(_ *cobra.Command, _ []string) error {
	if flagDifficulty != "" {
		if _, ok := config.ParsePreset(flagDifficulty); !ok {
			return fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", flagDifficulty)
		}
	}
	if flagFPS <= 0 {
		return fmt.Errorf("--fps must be positive, got %d", flagFPS)
	}

	brickshot.SetConfigPath(flagConfig)
	brickshot.SetDifficultyPreset(flagDifficulty)

	if flagLogFile == "" {
		return nil
	}
	f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("cannot open log file: %w", err)
	}
	logFile = f

	level := log.InfoLevel
	if flagVerbose {
		level = log.DebugLevel
	}
	brickshot.SetEventLogger(log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Level:           level,
		Prefix:          "brickshot",
	}))
	return nil
}

// runtimeConfig sizes the game to the terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// openStore opens the scores database, or returns nil with a warning.
// Games still work without storage.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		return nil
	}
	return store
}
