package brickshot

import (
	"math"
	"testing"

	"github.com/vovakirdan/brickshot/internal/core"
)

// testDT divides testSettings().EmitInterval exactly, so cadence math is exact.
const testDT = 0.0625

// testSettings is a 15x20 field whose shooting origin (300, 790) sits in the
// middle of column 7.
func testSettings() Settings {
	return Settings{
		Bounds:        Bounds{Width: 600, Height: 800},
		BlockSize:     40,
		BallSize:      10,
		BallSpeed:     600,
		EmitInterval:  0.125,
		InitialCount:  3,
		TopOffsetRows: 1,
		Cols:          15,
		Rows:          20,
	}
}

type fixedLayout []BrickSpec

func (l fixedLayout) Generate(_, _, _ int) []BrickSpec {
	return l
}

type recorder struct {
	events []Event
}

func (r *recorder) OnEvent(e Event) {
	r.events = append(r.events, e)
}

func countOf[T Event](events []Event) int {
	n := 0
	for _, e := range events {
		if _, ok := e.(T); ok {
			n++
		}
	}
	return n
}

func newTestSession() *Session {
	return newSession(testSettings(), NewMachine(PhaseShooting))
}

func newTestSim(bricks ...BrickSpec) (*Simulation, *recorder) {
	sim := NewSimulation(testSettings(), Options{Layout: fixedLayout(bricks)})
	rec := &recorder{}
	sim.Subscribe(rec)
	return sim, rec
}

func stepSim(sim *Simulation, in Input) {
	sim.Step(Tick{In: in, DT: testDT})
}

// startVolley leaves Init (or Aiming) and fires straight up.
func startVolley(t *testing.T, sim *Simulation) {
	t.Helper()
	if sim.Phase() == PhaseInit {
		stepSim(sim, Input{Confirm: true})
	}
	if sim.Phase() != PhaseAiming {
		t.Fatalf("Phase() = %v, expected aiming", sim.Phase())
	}
	sim.Session().Aim = core.V(0, -1)
	stepSim(sim, Input{Fire: true})
	if sim.Phase() != PhaseShooting {
		t.Fatalf("Phase() = %v, expected shooting", sim.Phase())
	}
}

// runUntil steps with no input until cond holds, failing after limit ticks.
func runUntil(t *testing.T, sim *Simulation, limit int, cond func() bool) int {
	t.Helper()
	for i := 1; i <= limit; i++ {
		stepSim(sim, Input{})
		if cond() {
			return i
		}
	}
	t.Fatalf("condition not reached after %d ticks (phase %v)", limit, sim.Phase())
	return limit
}

func assertUnit(t *testing.T, v core.Vec2) {
	t.Helper()
	if math.Abs(v.Len()-1) > 1e-9 {
		t.Fatalf("direction %v has length %f, expected 1", v, v.Len())
	}
}

func near(a, b core.Vec2) bool {
	return math.Abs(a.X-b.X) < 1e-9 && math.Abs(a.Y-b.Y) < 1e-9
}
