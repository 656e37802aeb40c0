package brickshot

import "github.com/vovakirdan/brickshot/internal/core"

// Demo is a headless game played by the autopilot, restarting on its own
// after every loss.
type Demo struct {
	game  *Game
	pilot *Autopilot
}

// NewDemo resets g for runtime and attaches an autopilot seeded from it.
func NewDemo(g *Game, runtime core.RuntimeConfig) *Demo {
	g.Reset(runtime)
	pilot := NewAutopilot(runtime.Seed)
	pilot.Delay = 10
	return &Demo{game: g, pilot: pilot}
}

// Advance runs one tick at the nominal tick duration.
func (d *Demo) Advance() {
	d.game.Step(d.pilot.Next(d.game))
}

// Frame returns the current snapshot.
func (d *Demo) Frame() any {
	snap := d.game.Snapshot()
	return &snap
}

// Game returns the driven game.
func (d *Demo) Game() *Game {
	return d.game
}
