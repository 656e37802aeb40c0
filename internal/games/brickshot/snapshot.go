package brickshot

import (
	"math"

	"github.com/vovakirdan/brickshot/internal/core"
)

// BallState is the serializable form of a Ball.
type BallState struct {
	ID    uint64  `msgpack:"id"`
	X     float64 `msgpack:"x"`
	Y     float64 `msgpack:"y"`
	DX    float64 `msgpack:"dx"`
	DY    float64 `msgpack:"dy"`
	Speed float64 `msgpack:"speed"`
}

// BlockState is the serializable form of a Block.
type BlockState struct {
	ID     uint64  `msgpack:"id"`
	X      float64 `msgpack:"x"`
	Y      float64 `msgpack:"y"`
	Kind   int     `msgpack:"kind"`
	Health uint    `msgpack:"health"`
	Col    int     `msgpack:"col"`
	Row    int     `msgpack:"row"`
}

// Snapshot contains the complete game state for replay, spectating and
// determinism checks. Field geometry is included so that remote viewers can
// draw the state without the config.
type Snapshot struct {
	Tick    uint64 `msgpack:"tick"`
	Phase   int    `msgpack:"phase"`
	Outcome int    `msgpack:"outcome"`
	Score   int    `msgpack:"score"`
	Round   int    `msgpack:"round"`
	Volleys int    `msgpack:"volleys"`
	Paused  bool   `msgpack:"paused"`

	ShooterCount    int     `msgpack:"shooter_count"`
	ShooterShot     int     `msgpack:"shooter_shot"`
	ShooterFinished bool    `msgpack:"shooter_finished"`
	EmitterAcc      float64 `msgpack:"emitter_acc"`
	EmitterStarted  bool    `msgpack:"emitter_started"`
	BallSpeed       float64 `msgpack:"ball_speed"`
	AimX            float64 `msgpack:"aim_x"`
	AimY            float64 `msgpack:"aim_y"`

	Width     float64 `msgpack:"width"`
	Height    float64 `msgpack:"height"`
	BlockSize float64 `msgpack:"block_size"`
	BallSize  float64 `msgpack:"ball_size"`

	Balls  []BallState  `msgpack:"balls"`
	Blocks []BlockState `msgpack:"blocks"`

	NextID   uint64 `msgpack:"next_id"`
	RNGState uint64 `msgpack:"rng_state"`
}

// Snapshot returns the current game state as a Snapshot.
func (g *Game) Snapshot() Snapshot {
	s := g.sim.Session()
	snap := Snapshot{
		Tick:    g.sim.Ticks(),
		Phase:   int(g.sim.Phase()),
		Outcome: int(s.Outcome),
		Score:   s.Score,
		Round:   s.Round,
		Volleys: s.Volleys,
		Paused:  g.paused,

		ShooterCount:    s.Shooter.Count,
		ShooterShot:     s.Shooter.Shot,
		ShooterFinished: s.Shooter.Finished,
		EmitterAcc:      s.Emitter.acc,
		EmitterStarted:  s.Emitter.started,
		BallSpeed:       s.ballSpeed,
		AimX:            s.Aim.X,
		AimY:            s.Aim.Y,

		Width:     g.settings.Bounds.Width,
		Height:    g.settings.Bounds.Height,
		BlockSize: g.settings.BlockSize,
		BallSize:  g.settings.BallSize,

		Balls:  make([]BallState, 0, s.World.BallCount()),
		Blocks: make([]BlockState, 0, s.World.BlockCount()),
		NextID: uint64(s.World.nextID),
	}

	for _, b := range s.World.Balls() {
		snap.Balls = append(snap.Balls, BallState{
			ID: uint64(b.ID), X: b.Pos.X, Y: b.Pos.Y, DX: b.Dir.X, DY: b.Dir.Y, Speed: b.Speed,
		})
	}
	for _, blk := range s.World.Blocks() {
		snap.Blocks = append(snap.Blocks, BlockState{
			ID: uint64(blk.ID), X: blk.Pos.X, Y: blk.Pos.Y, Kind: int(blk.Kind),
			Health: blk.Health, Col: blk.Col, Row: blk.Row,
		})
	}
	if g.layoutRNG != nil {
		snap.RNGState = g.layoutRNG.State()
	}
	return snap
}

// ApplySnapshot restores game state from a snapshot taken from a game with
// the same configuration. Observers are not notified, and tracked contacts
// of the classic mode start over empty.
func (g *Game) ApplySnapshot(snap Snapshot) {
	s := g.sim.Session()
	if _, ok := g.sim.resolver.(*ContactResolver); ok {
		g.sim.resolver = NewContactResolver()
	}

	g.sim.ticks = snap.Tick
	g.sim.machine.current = Phase(snap.Phase)
	g.sim.machine.pending = nil
	g.paused = snap.Paused

	s.Outcome = Outcome(snap.Outcome)
	s.Score = snap.Score
	s.Round = snap.Round
	s.Volleys = snap.Volleys
	s.Shooter = &Shooter{Count: snap.ShooterCount, Shot: snap.ShooterShot, Finished: snap.ShooterFinished}
	s.Emitter = Emitter{Cadence: g.settings.EmitInterval, acc: snap.EmitterAcc, started: snap.EmitterStarted}
	s.ballSpeed = snap.BallSpeed
	s.Aim = core.V(snap.AimX, snap.AimY)

	w := NewWorld()
	for _, b := range snap.Balls {
		ball := &Ball{ID: EntityID(b.ID), Pos: core.V(b.X, b.Y), Dir: core.V(b.DX, b.DY), Speed: b.Speed}
		w.balls[ball.ID] = ball
		w.ballOrder = append(w.ballOrder, ball.ID)
	}
	for _, b := range snap.Blocks {
		blk := &Block{
			ID: EntityID(b.ID), Pos: core.V(b.X, b.Y), Kind: BlockKind(b.Kind),
			Health: b.Health, Col: b.Col, Row: b.Row,
		}
		w.blocks[blk.ID] = blk
		w.blockOrder = append(w.blockOrder, blk.ID)
	}
	w.nextID = max(EntityID(snap.NextID), 1)
	s.World = w

	if g.layoutRNG != nil && snap.RNGState != 0 {
		g.layoutRNG.state = snap.RNGState
	}
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	mix := func(v uint64) { h = h*31 + v }
	mixInt := func(v int) { mix(uint64(v)) } //#nosec G115 -- hash computation
	mixF := func(v float64) { mix(math.Float64bits(v)) }
	mixBool := func(v bool) {
		if v {
			mix(1)
		} else {
			mix(0)
		}
	}

	mixInt(snap.Phase)
	mixInt(snap.Outcome)
	mixInt(snap.Score)
	mixInt(snap.Round)
	mixInt(snap.Volleys)
	mixBool(snap.Paused)
	mixInt(snap.ShooterCount)
	mixInt(snap.ShooterShot)
	mixBool(snap.ShooterFinished)
	mixF(snap.EmitterAcc)
	mixBool(snap.EmitterStarted)
	mixF(snap.BallSpeed)
	mixF(snap.AimX)
	mixF(snap.AimY)

	for _, b := range snap.Balls {
		mix(b.ID)
		mixF(b.X)
		mixF(b.Y)
		mixF(b.DX)
		mixF(b.DY)
		mixF(b.Speed)
	}
	for _, b := range snap.Blocks {
		mix(b.ID)
		mixF(b.X)
		mixF(b.Y)
		mixInt(b.Kind)
		mix(uint64(b.Health))
		mixInt(b.Col)
		mixInt(b.Row)
	}

	mix(snap.NextID)
	mix(snap.RNGState)
	return h
}
