package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"
)

// Feed is a simulation advanced one tick at a time.
type Feed interface {
	// Advance runs one tick.
	Advance()
	// Frame returns the msgpack-encodable state shown to spectators.
	Frame() any
}

// Frame is the envelope of every message on the stream.
type Frame struct {
	Seq  uint64 `msgpack:"seq"`
	Game string `msgpack:"game"`
	Data any    `msgpack:"data"`
}

// ServerConfig holds configuration for the spectator server.
type ServerConfig struct {
	// Address is the host:port to listen on (e.g., ":8080").
	Address string

	// GameID names the streamed game in every frame.
	GameID string

	// TickRate is the number of simulation ticks per second.
	TickRate int

	// FrameEvery sends a frame every n ticks.
	FrameEvery int

	// Logger receives server events. Nil logs to stderr.
	Logger *log.Logger
}

// DefaultServerConfig returns a config with sensible defaults.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Address:    ":8080",
		TickRate:   60,
		FrameEvery: 2,
	}
}

// Server runs one feed and streams it to every spectator.
type Server struct {
	config   ServerConfig
	hub      *Hub
	feed     Feed
	logger   *log.Logger
	upgrader websocket.Upgrader
	seq      uint64
}

// NewServer creates a spectator server for feed.
func NewServer(cfg ServerConfig, feed Feed) *Server {
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}
	if cfg.FrameEvery <= 0 {
		cfg.FrameEvery = 1
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "brickshot-web",
		})
	}

	return &Server{
		config: cfg,
		hub:    NewHub(),
		feed:   feed,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     sameOrigin,
		},
	}
}

// sameOrigin accepts non-browser clients and pages served by this host.
func sameOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return u.Host == r.Host
}

// Handler returns the HTTP routes: /ws for the stream and /healthz.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.serveWS)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		fmt.Fprintf(w, "ok %d\n", s.hub.ClientCount())
	})
	return mux
}

func (s *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "remote", r.RemoteAddr, "err", err)
		return
	}

	c := NewClient(s.hub, conn, s.logger)
	if !s.hub.Register(c) {
		conn.Close()
		return
	}
	s.logger.Info("spectator joined", "remote", r.RemoteAddr)

	go c.WritePump()
	go c.ReadPump()
}

// Start runs the hub and the simulation loop until ctx is done.
func (s *Server) Start(ctx context.Context) {
	go s.hub.Run(ctx)
	go s.loop(ctx)
}

// loop advances the feed at the configured rate and publishes frames.
func (s *Server) loop(ctx context.Context) {
	ticker := time.NewTicker(time.Second / time.Duration(s.config.TickRate))
	defer ticker.Stop()

	ticks := 0
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.feed.Advance()
			ticks++
			if ticks%s.config.FrameEvery != 0 {
				continue
			}
			frame, err := s.encode()
			if err != nil {
				s.logger.Error("encoding frame", "err", err)
				continue
			}
			s.hub.Broadcast(ctx, frame)
		}
	}
}

func (s *Server) encode() ([]byte, error) {
	s.seq++
	data, err := msgpack.Marshal(&Frame{Seq: s.seq, Game: s.config.GameID, Data: s.feed.Frame()})
	if err != nil {
		return nil, fmt.Errorf("web: encode frame %d: %w", s.seq, err)
	}
	return data, nil
}

// ListenAndServe serves spectators until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	s.Start(ctx)

	srv := &http.Server{
		Addr:              s.config.Address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("starting spectator server", "address", s.config.Address, "game", s.config.GameID)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("web: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down...")
	shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
	defer stop()
	return srv.Shutdown(shutdownCtx)
}

// Addr returns the server's listen address string.
func (s *Server) Addr() string {
	return s.config.Address
}

// Spectators returns the number of connected spectators.
func (s *Server) Spectators() int {
	return s.hub.ClientCount()
}
