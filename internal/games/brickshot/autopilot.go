package brickshot

import (
	"github.com/vovakirdan/brickshot/internal/core"
)

// Autopilot plays the game through the same input frames a player sends.
// It aims at one of the lowest bricks, preferring add-ball bricks.
type Autopilot struct {
	rng   *SimpleRNG
	Delay int // Ticks to wait in Init and Aiming before acting
	wait  int
}

// NewAutopilot creates a seeded autopilot.
func NewAutopilot(seed int64) *Autopilot {
	return &Autopilot{rng: NewRNG(seed), Delay: 30}
}

// Next returns the input for the next tick of g.
func (a *Autopilot) Next(g *Game) core.InputFrame {
	in := core.NewInputFrame()

	phase := g.Phase()
	if phase != PhaseInit && phase != PhaseAiming {
		a.wait = 0
		return in
	}
	if a.wait < a.Delay {
		a.wait++
		return in
	}
	a.wait = 0

	if phase == PhaseInit {
		in.Set(core.ActionConfirm)
		return in
	}

	target, ok := a.pick(g.Session())
	if !ok {
		in.Set(core.ActionFire)
		return in
	}
	x, y := g.ScreenPos(target.Pos)
	in.SetClick(x, y)
	return in
}

func (a *Autopilot) pick(s *Session) (*Block, bool) {
	var lowest []*Block
	bottom := -1
	for _, blk := range s.World.Blocks() {
		switch {
		case blk.Kind == BlockAddBall:
			return blk, true
		case blk.Row > bottom:
			bottom = blk.Row
			lowest = append(lowest[:0], blk)
		case blk.Row == bottom:
			lowest = append(lowest, blk)
		}
	}
	if len(lowest) == 0 {
		return nil, false
	}
	return lowest[a.rng.Intn(len(lowest))], true
}
