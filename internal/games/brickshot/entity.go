package brickshot

import (
	"github.com/vovakirdan/brickshot/internal/core"
)

// EntityID identifies a ball or block for its whole lifetime.
// IDs are never reused within a World, so a stale ID simply fails lookups.
type EntityID uint64

// BlockKind tags the behavior of a block on contact.
type BlockKind int

const (
	BlockStandard BlockKind = iota // Loses one health per hit, reflects the ball
	BlockAddBall                   // Removed on first touch, adds a ball to the volley
)

func (k BlockKind) String() string {
	switch k {
	case BlockStandard:
		return "standard"
	case BlockAddBall:
		return "add_ball"
	default:
		return "unknown"
	}
}

// Ball is a projectile of the current volley.
type Ball struct {
	ID    EntityID
	Pos   core.Vec2 // Center
	Dir   core.Vec2 // Unit length
	Speed float64   // World units per second
}

// newBall builds a ball heading along dir.
// A zero direction has no heading and is rejected.
func newBall(pos, dir core.Vec2, speed float64) (Ball, bool) {
	unit, ok := dir.Normalize()
	if !ok {
		return Ball{}, false
	}
	return Ball{Pos: pos, Dir: unit, Speed: speed}, true
}

// ReflectX mirrors the horizontal heading. Length is preserved.
func (b *Ball) ReflectX() {
	b.Dir.X = -b.Dir.X
}

// ReflectY mirrors the vertical heading. Length is preserved.
func (b *Ball) ReflectY() {
	b.Dir.Y = -b.Dir.Y
}

// Block is a brick on the field.
type Block struct {
	ID     EntityID
	Pos    core.Vec2 // Center
	Kind   BlockKind
	Health uint // Meaningful for BlockStandard only
	Col    int
	Row    int
}

// Bounds is the playfield: walls at x=0, x=Width and y=0, floor at y=Height.
type Bounds struct {
	Width  float64
	Height float64
}

// Origin is where every ball of a volley starts: bottom center, one ball
// size above the floor.
func (b Bounds) Origin(ballSize float64) core.Vec2 {
	return core.V(b.Width/2, b.Height-ballSize)
}
