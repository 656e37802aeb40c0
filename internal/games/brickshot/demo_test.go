package brickshot

import (
	"testing"

	"github.com/vovakirdan/brickshot/internal/core"
)

func TestDemoPlaysOnItsOwn(t *testing.T) {
	d := NewDemo(New(), core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 9})

	volleys := 0
	for i := 0; i < 3000; i++ {
		d.Advance()
		volleys = max(volleys, d.Game().State().Volleys)
	}
	if volleys == 0 {
		t.Error("demo never fired a volley")
	}

	snap, ok := d.Frame().(*Snapshot)
	if !ok {
		t.Fatalf("Frame() = %T, expected *Snapshot", d.Frame())
	}
	if snap.Tick != 3000 {
		t.Errorf("Tick = %d, expected 3000", snap.Tick)
	}
	if snap.Round < 1 {
		t.Errorf("Round = %d, expected at least 1", snap.Round)
	}
}
