package brickshot

import (
	"math"

	"github.com/vovakirdan/brickshot/internal/config"
	"github.com/vovakirdan/brickshot/internal/core"
)

// aimNudge is the keyboard aim step in radians (3 degrees).
const aimNudge = 3 * math.Pi / 180

// Input is the per-tick player intent in world terms.
type Input struct {
	Confirm bool       // Leave the outcome screen
	Fire    bool       // Fire along the current aim
	Recall  bool       // End the volley in flight
	Nudge   int        // -1 rotates the aim left, +1 right
	Pointer *core.Vec2 // Click position, nil if no click happened
}

// Tick is one step of simulated time.
type Tick struct {
	In Input
	DT float64 // Seconds since the previous tick
}

// Options selects the collaborators of a Simulation.
// Zero values fall back to TimeScaled movement, the polling resolver and a
// random layout seeded with 1.
type Options struct {
	Integrator Integrator
	Resolver   Resolver
	Layout     LayoutGenerator
	Difficulty *config.DifficultyManager
}

// Simulation runs the phase machine over a Session.
// It is single-threaded: Step must not be called concurrently.
type Simulation struct {
	session    *Session
	machine    *Machine
	integrator Integrator
	resolver   Resolver
	layout     LayoutGenerator
	difficulty *config.DifficultyManager
	ticks      uint64
}

// NewSimulation creates a simulation resting in PhaseInit with an empty field.
func NewSimulation(settings Settings, opts Options) *Simulation {
	sim := &Simulation{
		machine:    NewMachine(PhaseInit),
		integrator: opts.Integrator,
		resolver:   opts.Resolver,
		layout:     opts.Layout,
		difficulty: opts.Difficulty,
	}
	if sim.integrator == nil {
		sim.integrator = TimeScaled{MaxStep: DefaultMaxStep}
	}
	if sim.resolver == nil {
		sim.resolver = CollisionResolver{}
	}
	if sim.layout == nil {
		sim.layout = NewRandomLayout(config.DefaultBrickshotConfig().Layout, nil, 1)
	}

	sim.session = newSession(settings, sim.machine)
	sim.machine.OnChange(func(from, to Phase) {
		sim.session.emit(PhaseChanged{From: from, To: to})
	})

	sim.machine.Bind(PhaseInit, PhaseHooks{
		Enter:  sim.enterInit,
		Update: sim.updateInit,
		Exit:   sim.exitInit,
	})
	sim.machine.Bind(PhaseAiming, PhaseHooks{
		Update: sim.updateAiming,
	})
	sim.machine.Bind(PhaseShooting, PhaseHooks{
		Enter:  sim.enterShooting,
		Update: sim.updateShooting,
		Exit:   sim.exitShooting,
	})
	sim.machine.Bind(PhaseMovingBlocks, PhaseHooks{
		Enter: sim.enterMovingBlocks,
	})
	return sim
}

// Session returns the simulation context.
func (sim *Simulation) Session() *Session {
	return sim.session
}

// Phase returns the active phase.
func (sim *Simulation) Phase() Phase {
	return sim.machine.Current()
}

// Ticks returns the number of steps run.
func (sim *Simulation) Ticks() uint64 {
	return sim.ticks
}

// Subscribe registers an observer for domain events.
func (sim *Simulation) Subscribe(o Observer) {
	sim.session.Subscribe(o)
}

// Step advances the game by one tick: the active phase runs, queued
// transitions are applied, then buffered events reach the observers.
func (sim *Simulation) Step(t Tick) {
	sim.ticks++
	sim.machine.Update(sim.session, t)
	sim.session.flush()
}

func (sim *Simulation) enterInit(s *Session) {
	for _, id := range s.World.ClearBalls() {
		s.emit(BallDestroyed{ID: id})
	}
	for _, id := range s.World.ClearBlocks() {
		s.emit(BlockRemoved{ID: id})
	}
}

func (sim *Simulation) updateInit(s *Session, t Tick) {
	if t.In.Confirm || t.In.Fire || t.In.Pointer != nil {
		s.Request(PhaseAiming)
	}
}

// exitInit starts the next layout. After a win the game continues with
// its score and volley size; otherwise a new game begins.
func (sim *Simulation) exitInit(s *Session) {
	if s.Outcome != OutcomeWon {
		s.Score = 0
		s.Round = 0
		s.Volleys = 0
		s.Shooter = NewShooter(s.Settings.InitialCount)
		s.Aim = core.V(0, -1)
	}
	s.Outcome = OutcomeUnset
	s.Round++
	sim.spawnLayout(s)
}

func (sim *Simulation) spawnLayout(s *Session) {
	top := s.Settings.TopOffsetRows
	// Rows at or below the loss line stay empty.
	rows := s.Settings.Rows - 2 - top
	for _, spec := range sim.layout.Generate(s.Settings.Cols, rows, s.Round) {
		if spec.Col < 0 || spec.Col >= s.Settings.Cols || spec.Row < 0 || spec.Row >= rows {
			continue
		}
		var blk Block
		switch spec.Kind {
		case BrickStandard:
			blk = Block{Kind: BlockStandard, Health: max(spec.Health, 1)}
		case BrickAddBall:
			blk = Block{Kind: BlockAddBall}
		default:
			continue
		}
		blk.Col = spec.Col
		blk.Row = spec.Row + top
		blk.Pos = s.cellCenter(blk.Col, blk.Row)
		placed := s.World.SpawnBlock(blk)
		s.emit(BlockSpawned{ID: placed.ID, Kind: placed.Kind, Health: placed.Health, Col: placed.Col, Row: placed.Row})
	}
}

func (sim *Simulation) updateAiming(s *Session, t Tick) {
	if t.In.Nudge != 0 {
		s.Aim = rotateAim(s.Aim, float64(t.In.Nudge)*aimNudge)
	}
	if t.In.Pointer != nil {
		p := *t.In.Pointer
		s.Pointer = &p
		if dir, ok := aimFrom(s.Origin(), p); ok {
			s.Aim = dir
			s.Request(PhaseShooting)
		}
		return
	}
	if t.In.Fire {
		s.Request(PhaseShooting)
	}
}

func (sim *Simulation) enterShooting(s *Session) {
	s.Shooter.Reset()
	s.Emitter = Emitter{Cadence: s.Settings.EmitInterval}
	s.Emitter.Reset()
	s.ballSpeed = s.Settings.BallSpeed
	if sim.difficulty != nil {
		s.ballSpeed = sim.difficulty.Speed(s.Settings.BallSpeed, s.Score, s.Round)
	}
	s.Volleys++
}

func (sim *Simulation) updateShooting(s *Session, t Tick) {
	if t.In.Recall {
		s.Request(PhaseMovingBlocks)
		return
	}

	if !s.Shooter.Finished && s.Emitter.Tick(t.DT) {
		s.fire()
	}

	sim.move(s, t.DT)

	if fieldCleared(s.World) {
		s.setOutcome(OutcomeWon)
		s.Request(PhaseInit)
		return
	}
	if s.Shooter.Finished && s.World.BallCount() == 0 {
		s.Request(PhaseMovingBlocks)
	}
}

// move advances every ball by one frame, split into sub-steps no longer
// than half a ball so fast balls cannot tunnel through a block.
func (sim *Simulation) move(s *Session, dt float64) {
	balls := s.World.Balls()
	if len(balls) == 0 {
		return
	}

	dist := make(map[EntityID]float64, len(balls))
	n := 1
	for _, b := range balls {
		d := sim.integrator.Distance(b, dt)
		dist[b.ID] = d
		n = max(n, substeps(d, s.Settings.BallSize/2))
	}

	for i := 0; i < n; i++ {
		for _, b := range s.World.Balls() {
			advance(b, dist[b.ID]/float64(n))
		}
		resolveBounds(s)
		sim.resolver.Resolve(s)
		if s.World.BallCount() == 0 || fieldCleared(s.World) {
			return
		}
	}
}

func (sim *Simulation) exitShooting(s *Session) {
	for _, id := range s.World.ClearBalls() {
		s.emit(BallDestroyed{ID: id})
	}
	s.Shooter.Reset()
}

func (sim *Simulation) enterMovingBlocks(s *Session) {
	if !descendBlocks(s) {
		s.setOutcome(OutcomeLost)
		s.Request(PhaseInit)
		return
	}
	s.Request(PhaseAiming)
}
