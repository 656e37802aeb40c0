package brickshot

import "math"

// DefaultMaxStep is the longest frame, in seconds, the time-scaled
// integrator will simulate in one go.
const DefaultMaxStep = 0.2

// Integrator decides how far a ball travels in one frame.
type Integrator interface {
	// Distance returns the travel of b during a frame of dt seconds.
	Distance(b *Ball, dt float64) float64
}

// advance moves b dist units along its heading.
func advance(b *Ball, dist float64) {
	b.Pos = b.Pos.Add(b.Dir.Scale(dist))
}

// FixedStep moves every ball by the same distance each logic tick,
// regardless of frame time or ball speed.
type FixedStep struct {
	Step float64
}

// Distance implements Integrator.
func (f FixedStep) Distance(_ *Ball, _ float64) float64 {
	return f.Step
}

// TimeScaled moves a ball by speed * min(dt, MaxStep).
type TimeScaled struct {
	MaxStep float64
}

// Distance implements Integrator.
func (t TimeScaled) Distance(b *Ball, dt float64) float64 {
	return b.Speed * t.clamp(dt)
}

func (t TimeScaled) clamp(dt float64) float64 {
	if dt <= 0 || math.IsNaN(dt) {
		return 0
	}
	limit := t.MaxStep
	if limit <= 0 {
		limit = DefaultMaxStep
	}
	return math.Min(dt, limit)
}

// substeps returns how many slices a travel of dist must be split into so
// that no slice exceeds maxLen.
func substeps(dist, maxLen float64) int {
	if dist <= 0 || maxLen <= 0 {
		return 1
	}
	return max(int(math.Ceil(dist/maxLen)), 1)
}
