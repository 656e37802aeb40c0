package brickshot

import (
	"math"
	"testing"

	"github.com/vovakirdan/brickshot/internal/core"
)

// A brick in the top-left corner, out of the straight-up path from the origin.
var cornerBrick = BrickSpec{Col: 0, Row: 0, Kind: BrickStandard, Health: 5}

func TestSimulationStartsInInit(t *testing.T) {
	sim, _ := newTestSim(cornerBrick)

	if sim.Phase() != PhaseInit {
		t.Errorf("Phase() = %v, expected init", sim.Phase())
	}
	stepSim(sim, Input{})
	if sim.Phase() != PhaseInit {
		t.Error("Init should wait for input")
	}
	if sim.Session().World.BlockCount() != 0 {
		t.Error("no layout should be spawned before the game starts")
	}

	stepSim(sim, Input{Confirm: true})
	if sim.Phase() != PhaseAiming {
		t.Fatalf("Phase() = %v, expected aiming", sim.Phase())
	}
	s := sim.Session()
	if s.World.BlockCount() != 1 || s.Round != 1 {
		t.Errorf("after start: blocks = %d, round = %d", s.World.BlockCount(), s.Round)
	}
	blk := s.World.Blocks()[0]
	if blk.Row != 1 || blk.Pos != core.V(20, 60) {
		t.Errorf("block placed at row %d %v, expected row 1 (20, 60)", blk.Row, blk.Pos)
	}
}

func TestSimulationVolley(t *testing.T) {
	sim, rec := newTestSim(cornerBrick)
	startVolley(t, sim)
	s := sim.Session()

	maxBalls := 0
	runUntil(t, sim, 500, func() bool {
		maxBalls = max(maxBalls, s.World.BallCount())
		for _, b := range s.World.Balls() {
			assertUnit(t, b.Dir)
		}
		return sim.Phase() != PhaseShooting
	})

	if sim.Phase() != PhaseAiming {
		t.Fatalf("Phase() = %v, expected aiming after the volley", sim.Phase())
	}
	if maxBalls != 3 {
		t.Errorf("max balls in flight = %d, expected 3", maxBalls)
	}
	if n := countOf[BallSpawned](rec.events); n != 3 {
		t.Errorf("BallSpawned events = %d, expected 3", n)
	}
	if n := countOf[BallDestroyed](rec.events); n != 3 {
		t.Errorf("BallDestroyed events = %d, expected 3", n)
	}
	if s.World.BallCount() != 0 {
		t.Errorf("BallCount() = %d, expected 0", s.World.BallCount())
	}
	if blk := s.World.Blocks()[0]; blk.Row != 2 || blk.Pos.Y != 100 {
		t.Errorf("block at row %d y=%v, expected one row down", blk.Row, blk.Pos.Y)
	}
	if s.Shooter.Shot != 0 || s.Shooter.Finished {
		t.Errorf("shooter not reset: %+v", *s.Shooter)
	}
	if s.Volleys != 1 {
		t.Errorf("Volleys = %d, expected 1", s.Volleys)
	}
}

func TestSimulationPhaseEvents(t *testing.T) {
	sim, rec := newTestSim(cornerBrick)
	startVolley(t, sim)
	runUntil(t, sim, 500, func() bool { return sim.Phase() == PhaseAiming })

	var changes []PhaseChanged
	for _, e := range rec.events {
		if pc, ok := e.(PhaseChanged); ok {
			changes = append(changes, pc)
		}
	}
	expected := []PhaseChanged{
		{From: PhaseInit, To: PhaseAiming},
		{From: PhaseAiming, To: PhaseShooting},
		{From: PhaseShooting, To: PhaseMovingBlocks},
		{From: PhaseMovingBlocks, To: PhaseAiming},
	}
	if len(changes) != len(expected) {
		t.Fatalf("phase changes = %v, expected %v", changes, expected)
	}
	for i := range expected {
		if changes[i] != expected[i] {
			t.Errorf("change %d = %v, expected %v", i, changes[i], expected[i])
		}
	}
}

func TestSimulationWinWithBallsInFlight(t *testing.T) {
	// A single weak brick straight above the origin.
	sim, rec := newTestSim(BrickSpec{Col: 7, Row: 0, Kind: BrickStandard, Health: 1})
	startVolley(t, sim)
	s := sim.Session()

	runUntil(t, sim, 200, func() bool { return sim.Phase() != PhaseShooting })

	if sim.Phase() != PhaseInit {
		t.Fatalf("Phase() = %v, expected init", sim.Phase())
	}
	if s.Outcome != OutcomeWon {
		t.Errorf("Outcome = %v, expected won", s.Outcome)
	}
	if s.Score != 1 {
		t.Errorf("Score = %d, expected 1", s.Score)
	}
	if s.World.BallCount() != 0 {
		t.Errorf("balls left after the win: %d", s.World.BallCount())
	}
	if n := countOf[OutcomeDecided](rec.events); n != 1 {
		t.Errorf("OutcomeDecided events = %d, expected 1", n)
	}
	if spawned, destroyed := countOf[BallSpawned](rec.events), countOf[BallDestroyed](rec.events); spawned != destroyed {
		t.Errorf("BallSpawned = %d, BallDestroyed = %d, expected every ball removed", spawned, destroyed)
	}

	// Continuing after a win keeps the score and starts round 2.
	stepSim(sim, Input{Confirm: true})
	if s.Score != 1 || s.Round != 2 || s.Outcome.Decided() {
		t.Errorf("after continue: score=%d round=%d outcome=%v", s.Score, s.Round, s.Outcome)
	}
	if s.World.BlockCount() != 1 {
		t.Errorf("BlockCount() = %d, expected a fresh layout", s.World.BlockCount())
	}
}

func TestSimulationLoss(t *testing.T) {
	// Row 16 sits one row above the loss line.
	sim, rec := newTestSim(BrickSpec{Col: 0, Row: 16, Kind: BrickStandard, Health: 9})
	startVolley(t, sim)
	s := sim.Session()

	stepSim(sim, Input{Recall: true})
	if sim.Phase() != PhaseAiming {
		t.Fatalf("Phase() = %v after the first recall, expected aiming", sim.Phase())
	}
	if s.Outcome.Decided() {
		t.Fatal("first descent should still fit")
	}

	s.Aim = core.V(0, -1)
	stepSim(sim, Input{Fire: true})
	stepSim(sim, Input{Recall: true})

	if sim.Phase() != PhaseInit {
		t.Fatalf("Phase() = %v, expected init", sim.Phase())
	}
	if s.Outcome != OutcomeLost {
		t.Errorf("Outcome = %v, expected lost", s.Outcome)
	}
	if s.World.BlockCount() != 0 {
		t.Errorf("entering init should clear the field, %d blocks left", s.World.BlockCount())
	}

	// Loss goes straight to Init without passing through Aiming.
	var last PhaseChanged
	for _, e := range rec.events {
		if pc, ok := e.(PhaseChanged); ok {
			last = pc
		}
	}
	if last != (PhaseChanged{From: PhaseMovingBlocks, To: PhaseInit}) {
		t.Errorf("last phase change = %#v, expected moving_blocks->init", last)
	}

	// A new game starts from scratch.
	stepSim(sim, Input{Confirm: true})
	if s.Round != 1 || s.Volleys != 0 || s.Score != 0 {
		t.Errorf("new game: round=%d volleys=%d score=%d", s.Round, s.Volleys, s.Score)
	}
}

func TestSimulationLossReportsRemovedBlocks(t *testing.T) {
	sim, rec := newTestSim(
		BrickSpec{Col: 0, Row: 16, Kind: BrickStandard, Health: 9},
		BrickSpec{Col: 5, Row: 2, Kind: BrickStandard, Health: 9},
		BrickSpec{Col: 6, Row: 4, Kind: BrickAddBall},
	)
	startVolley(t, sim)
	s := sim.Session()

	stepSim(sim, Input{Recall: true})
	s.Aim = core.V(0, -1)
	stepSim(sim, Input{Fire: true})
	stepSim(sim, Input{Recall: true})
	if s.Outcome != OutcomeLost {
		t.Fatalf("Outcome = %v, expected lost", s.Outcome)
	}

	spawned := countOf[BlockSpawned](rec.events)
	gone := countOf[BlockDestroyed](rec.events) + countOf[AddBallCollected](rec.events) + countOf[BlockRemoved](rec.events)
	if spawned-gone != s.World.BlockCount() {
		t.Errorf("spawned %d, gone %d, but %d blocks remain", spawned, gone, s.World.BlockCount())
	}
	if countOf[BlockRemoved](rec.events) == 0 {
		t.Error("clearing the field after a loss should report removed blocks")
	}
	if s.Score != countOf[BlockDestroyed](rec.events) {
		t.Errorf("Score = %d, removals must not score", s.Score)
	}
}

func TestDescendBlocksStopsAtLossLine(t *testing.T) {
	s := newTestSession()
	first := s.World.SpawnBlock(Block{Kind: BlockStandard, Health: 1, Pos: s.cellCenter(0, 5), Row: 5})
	low := s.World.SpawnBlock(Block{Kind: BlockStandard, Health: 1, Pos: s.cellCenter(1, 18), Row: 18})
	last := s.World.SpawnBlock(Block{Kind: BlockStandard, Health: 1, Pos: s.cellCenter(2, 3), Row: 3})

	if descendBlocks(s) {
		t.Fatal("descendBlocks() = true, expected false")
	}
	if first.Row != 6 {
		t.Errorf("block before the blocker should move, Row = %d", first.Row)
	}
	if low.Row != 18 {
		t.Errorf("blocker should stay, Row = %d", low.Row)
	}
	if last.Row != 3 {
		t.Errorf("blocks after the blocker should stay, Row = %d", last.Row)
	}
}

func TestSimulationRecallResetsShooter(t *testing.T) {
	sim, _ := newTestSim(cornerBrick)
	startVolley(t, sim)
	s := sim.Session()

	stepSim(sim, Input{})
	stepSim(sim, Input{})
	if s.World.BallCount() == 0 {
		t.Fatal("expected balls in flight")
	}

	stepSim(sim, Input{Recall: true})
	if s.World.BallCount() != 0 {
		t.Errorf("recall should remove balls, %d left", s.World.BallCount())
	}
	if s.Shooter.Shot != 0 || s.Shooter.Finished {
		t.Errorf("shooter after recall: %+v", *s.Shooter)
	}

	// The next volley fires the full count again.
	startVolley(t, sim)
	spawned := 0
	sim.Subscribe(ObserverFunc(func(e Event) {
		if _, ok := e.(BallSpawned); ok {
			spawned++
		}
	}))
	runUntil(t, sim, 500, func() bool { return sim.Phase() != PhaseShooting })
	if spawned != 3 {
		t.Errorf("second volley spawned %d balls, expected 3", spawned)
	}
}

func TestSimulationAimAtPointer(t *testing.T) {
	sim, _ := newTestSim(cornerBrick)
	stepSim(sim, Input{Confirm: true})
	s := sim.Session()

	// Clicking on the origin carries no direction.
	origin := s.Origin()
	stepSim(sim, Input{Pointer: &origin})
	if sim.Phase() != PhaseAiming {
		t.Errorf("click on the origin should not fire, Phase() = %v", sim.Phase())
	}

	target := core.V(600, 490)
	stepSim(sim, Input{Pointer: &target})
	if sim.Phase() != PhaseShooting {
		t.Fatalf("Phase() = %v, expected shooting", sim.Phase())
	}
	if !near(s.Aim, core.V(math.Sqrt2/2, -math.Sqrt2/2)) {
		t.Errorf("Aim = %v, expected 45 degrees up and right", s.Aim)
	}
	if s.Pointer == nil || *s.Pointer != target {
		t.Errorf("Pointer = %v, expected %v", s.Pointer, target)
	}
}

func TestSimulationNudge(t *testing.T) {
	sim, _ := newTestSim(cornerBrick)
	stepSim(sim, Input{Confirm: true})
	s := sim.Session()

	stepSim(sim, Input{Nudge: 1})
	if s.Aim.X <= 0 {
		t.Errorf("nudge right should turn the aim right, Aim = %v", s.Aim)
	}
	assertUnit(t, s.Aim)

	for i := 0; i < 200; i++ {
		stepSim(sim, Input{Nudge: -1})
	}
	if -s.Aim.Y < minAimElevation-1e-9 || s.Aim.X >= 0 {
		t.Errorf("aim should stop at the flattest left angle, Aim = %v", s.Aim)
	}
	if sim.Phase() != PhaseAiming {
		t.Error("nudging should not fire")
	}
}

func TestClampAim(t *testing.T) {
	tests := []struct {
		name string
		dir  core.Vec2
		left bool
	}{
		{"downwards right", core.V(0.6, 0.8), false},
		{"flat left", core.V(-1, 0), true},
		{"straight down", core.V(0, 1), false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := clampAim(tc.dir)
			assertUnit(t, got)
			if math.Abs(-got.Y-minAimElevation) > 1e-9 {
				t.Errorf("clampAim() = %v, expected elevation %v", got, minAimElevation)
			}
			if (got.X < 0) != tc.left {
				t.Errorf("clampAim() = %v kept the wrong side", got)
			}
		})
	}

	up := core.V(0.6, -0.8)
	if got := clampAim(up); got != up {
		t.Errorf("clampAim(%v) = %v, expected unchanged", up, got)
	}
}

func TestSimulationFixedStep(t *testing.T) {
	sim := NewSimulation(testSettings(), Options{
		Integrator: FixedStep{Step: 10},
		Resolver:   NewContactResolver(),
		Layout:     fixedLayout{{Col: 7, Row: 0, Kind: BrickStandard, Health: 2}},
	})
	startVolley(t, sim)

	runUntil(t, sim, 1000, func() bool { return sim.Phase() == PhaseInit })
	if sim.Session().Outcome != OutcomeWon {
		t.Errorf("Outcome = %v, expected won", sim.Session().Outcome)
	}
	if sim.Session().Score != 1 {
		t.Errorf("Score = %d, expected 1", sim.Session().Score)
	}
}

func TestSimulationEventsFlushAfterStep(t *testing.T) {
	sim, _ := newTestSim(cornerBrick)

	var phaseDuringEvent []Phase
	sim.Subscribe(ObserverFunc(func(Event) {
		phaseDuringEvent = append(phaseDuringEvent, sim.Phase())
	}))
	stepSim(sim, Input{Confirm: true})

	if len(phaseDuringEvent) == 0 {
		t.Fatal("expected events for the layout start")
	}
	for _, p := range phaseDuringEvent {
		if p != PhaseAiming {
			t.Errorf("observer ran during phase %v, expected after the transition", p)
		}
	}
}
