package brickshot

import (
	"math"

	"github.com/vovakirdan/brickshot/internal/config"
	"github.com/vovakirdan/brickshot/internal/core"
)

// Settings is the immutable geometry and tuning of a game, derived once from
// the loaded configuration.
type Settings struct {
	Bounds        Bounds
	BlockSize     float64
	BallSize      float64
	BallSpeed     float64
	EmitInterval  float64
	InitialCount  int
	TopOffsetRows int
	Cols          int
	Rows          int
}

// SettingsFromConfig derives Settings from a validated configuration.
func SettingsFromConfig(cfg config.BrickshotConfig) Settings {
	return Settings{
		Bounds: Bounds{
			Width:  cfg.Field.WindowWidth,
			Height: cfg.Field.WindowHeight,
		},
		BlockSize:     cfg.Field.BlockSize,
		BallSize:      cfg.Field.BallSize,
		BallSpeed:     cfg.Physics.BallSpeed,
		EmitInterval:  cfg.Shooter.EmitInterval,
		InitialCount:  cfg.Shooter.InitialCount,
		TopOffsetRows: cfg.Field.TopOffsetRows,
		Cols:          cfg.Field.Cols(),
		Rows:          cfg.Field.Rows(),
	}
}

// Session is the explicit context every system operates on: the world, the
// shooter and the per-game counters. Nothing in the simulation is global.
type Session struct {
	Settings Settings
	World    *World
	Shooter  *Shooter
	Emitter  Emitter

	Score   int
	Outcome Outcome
	Round   int // Layouts started in this game
	Volleys int // Volleys fired in this game

	Aim     core.Vec2  // Unit heading of the next volley
	Pointer *core.Vec2 // Last recorded pointer position, nil until the first click

	ballSpeed float64
	machine   *Machine
	events    []Event
	observers []Observer
}

func newSession(settings Settings, m *Machine) *Session {
	return &Session{
		Settings:  settings,
		World:     NewWorld(),
		Shooter:   NewShooter(settings.InitialCount),
		Emitter:   Emitter{Cadence: settings.EmitInterval},
		Aim:       core.V(0, -1),
		ballSpeed: settings.BallSpeed,
		machine:   m,
	}
}

// Phase returns the active phase.
func (s *Session) Phase() Phase {
	return s.machine.Current()
}

// Request queues a phase transition.
func (s *Session) Request(p Phase) {
	s.machine.Request(p)
}

// Origin returns the shooting origin.
func (s *Session) Origin() core.Vec2 {
	return s.Settings.Bounds.Origin(s.Settings.BallSize)
}

// LossLine is the y coordinate at which a block center can no longer descend.
func (s *Session) LossLine() float64 {
	return s.Settings.Bounds.Height - 2*s.Settings.BlockSize
}

// BallSpeed returns the speed given to balls of the current volley.
func (s *Session) BallSpeed() float64 {
	return s.ballSpeed
}

// Subscribe registers an observer for domain events.
func (s *Session) Subscribe(o Observer) {
	if o != nil {
		s.observers = append(s.observers, o)
	}
}

func (s *Session) emit(e Event) {
	s.events = append(s.events, e)
}

// flush delivers buffered events to observers in the order they were raised.
func (s *Session) flush() {
	if len(s.events) == 0 {
		return
	}
	events := s.events
	s.events = nil
	for _, e := range events {
		for _, o := range s.observers {
			o.OnEvent(e)
		}
	}
}

func (s *Session) ballBox(b *Ball) core.AABB {
	h := s.Settings.BallSize / 2
	return core.Box(b.Pos, h, h)
}

func (s *Session) blockBox(blk *Block) core.AABB {
	h := s.Settings.BlockSize / 2
	return core.Box(blk.Pos, h, h)
}

// cellCenter returns the world center of grid cell (col, row).
func (s *Session) cellCenter(col, row int) core.Vec2 {
	bs := s.Settings.BlockSize
	return core.V((float64(col)+0.5)*bs, (float64(row)+0.5)*bs)
}

func (s *Session) setOutcome(o Outcome) {
	s.Outcome = o
	s.emit(OutcomeDecided{Outcome: o, Score: s.Score})
}

func (s *Session) fire() {
	b, ok := s.World.SpawnBall(s.Origin(), s.Aim, s.ballSpeed)
	if !ok {
		return
	}
	s.Shooter.Emit()
	s.emit(BallSpawned{ID: b.ID, Pos: b.Pos, Dir: b.Dir})
}

func (s *Session) destroyBall(id EntityID) {
	if s.World.DespawnBall(id) {
		s.emit(BallDestroyed{ID: id})
	}
}

func (s *Session) destroyBlock(id EntityID) {
	if s.World.DespawnBlock(id) {
		s.Score++
		s.emit(BlockDestroyed{ID: id, Score: s.Score})
	}
}

func (s *Session) collectAddBall(id EntityID) {
	if s.World.DespawnBlock(id) {
		s.Shooter.Collect()
		s.emit(AddBallCollected{ID: id, Count: s.Shooter.Count})
	}
}

// hitBlock applies one qualifying contact to blk and reports whether the
// ball bounces off it.
func (s *Session) hitBlock(blk *Block) bool {
	if blk.Kind == BlockAddBall {
		s.collectAddBall(blk.ID)
		return false
	}
	if blk.Health > 1 {
		blk.Health--
		s.emit(BlockDamaged{ID: blk.ID, Health: blk.Health})
		return true
	}
	s.destroyBlock(blk.ID)
	return true
}

// minAimElevation is the sine of the flattest allowed aim angle.
const minAimElevation = 0.1

// aimFrom returns the heading from origin towards target.
// A target on the origin carries no direction and yields false.
func aimFrom(origin, target core.Vec2) (core.Vec2, bool) {
	dir, ok := target.Sub(origin).Normalize()
	if !ok {
		return core.Vec2{}, false
	}
	return clampAim(dir), true
}

// clampAim keeps a unit heading pointing upwards by at least minAimElevation.
func clampAim(dir core.Vec2) core.Vec2 {
	if -dir.Y >= minAimElevation {
		return dir
	}
	x := math.Sqrt(1 - minAimElevation*minAimElevation)
	if dir.X < 0 {
		x = -x
	}
	return core.V(x, -minAimElevation)
}

// rotateAim turns a heading by radians (positive is clockwise on screen)
// and keeps it inside the allowed cone.
func rotateAim(dir core.Vec2, radians float64) core.Vec2 {
	sin, cos := math.Sincos(radians)
	r := core.V(dir.X*cos-dir.Y*sin, dir.X*sin+dir.Y*cos)
	if unit, ok := r.Normalize(); ok {
		return clampAim(unit)
	}
	return dir
}
