package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/brickshot/internal/platform/tui"
	"github.com/vovakirdan/brickshot/internal/registry"
)

const defaultGameID = "brickshot"

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play a variant",
	Long: `Start playing brickshot directly.

Variants:
  brickshot          - balls move by frame time, contacts are polled
  brickshot_classic  - fixed step per tick, event-driven contacts

Controls:
  Mouse click    - Aim at the clicked point and fire
  Left/Right     - Nudge the aim
  Space          - Fire along the current aim
  X              - Recall the volley
  Enter          - Continue after a round
  P              - Pause
  R              - Restart
  Q/Ctrl+C       - Quit
  Ctrl+S         - Save a screenshot

Difficulty options:
  easy   - More balls, softer bricks
  normal - Config defaults
  hard   - Fewer balls, tougher bricks
  fixed  - No progression between rounds

Examples:
  brickshot play
  brickshot play brickshot_classic
  brickshot play --difficulty hard
  brickshot play --config ./my-brickshot.yaml --seed 42`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := defaultGameID
	if len(args) == 1 {
		gameID = args[0]
	}
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown variant %q, run 'brickshot list' to see available variants", gameID)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	if err := tui.Run(game, store, runtimeConfig()); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
