package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/brickshot/internal/core"
	"github.com/vovakirdan/brickshot/internal/games/brickshot"
	"github.com/vovakirdan/brickshot/internal/platform/web"
	"github.com/vovakirdan/brickshot/internal/registry"
)

var (
	flagWebAddr    string
	flagFrameEvery int
)

var watchCmd = &cobra.Command{
	Use:   "watch [variant]",
	Short: "Stream an autopilot game to websocket spectators",
	Long: `Run a game played by the autopilot and stream it over websocket.

Spectators connect to /ws and receive a binary msgpack frame
{seq, game, data} every --frame-every ticks, where data is the full game
snapshot. /healthz reports the number of connected spectators.

Examples:
  brickshot watch
  brickshot watch brickshot_classic --addr :9000
  brickshot watch --fps 30 --frame-every 1`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&flagWebAddr, "addr", ":8080", "HTTP server address (host:port)")
	watchCmd.Flags().IntVar(&flagFrameEvery, "frame-every", 2, "Send a frame every n ticks")
}

func runWatch(_ *cobra.Command, args []string) error {
	gameID := defaultGameID
	if len(args) == 1 {
		gameID = args[0]
	}
	created, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}
	game, ok := created.(*brickshot.Game)
	if !ok {
		return fmt.Errorf("variant %q cannot be streamed", gameID)
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "brickshot-web",
	})
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	demo := brickshot.NewDemo(game, core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: flagFPS,
		Seed:     seed,
	})

	server := web.NewServer(web.ServerConfig{
		Address:    flagWebAddr,
		GameID:     gameID,
		TickRate:   flagFPS,
		FrameEvery: flagFrameEvery,
		Logger:     logger,
	}, demo)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Streaming %s on %s/ws (seed %d)\n", game.Title(), server.Addr(), seed)
	fmt.Println("Press Ctrl+C to stop")
	return server.ListenAndServe(ctx)
}
