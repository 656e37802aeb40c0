package brickshot

import (
	"github.com/vovakirdan/brickshot/internal/core"
)

// Side is the face of a block a ball touched.
type Side int

const (
	SideNone Side = iota
	SideLeft
	SideRight
	SideTop
	SideBottom
)

func (s Side) String() string {
	switch s {
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	case SideTop:
		return "top"
	case SideBottom:
		return "bottom"
	default:
		return "none"
	}
}

// Classify returns the face of block that ball overlaps, chosen by the axis
// of smallest penetration. Ties go to the vertical axis.
// SideNone means the boxes do not overlap.
func Classify(ball, block core.AABB) Side {
	px, py := ball.Penetration(block)
	if px <= 0 || py <= 0 {
		return SideNone
	}
	if px < py {
		if ball.Center.X < block.Center.X {
			return SideLeft
		}
		return SideRight
	}
	if ball.Center.Y < block.Center.Y {
		return SideTop
	}
	return SideBottom
}

// approaching reports whether a ball heading along dir moves into a block
// through side. Contacts from a ball already moving away do not count.
func approaching(side Side, dir core.Vec2) bool {
	switch side {
	case SideLeft:
		return dir.X > 0
	case SideRight:
		return dir.X < 0
	case SideTop:
		return dir.Y > 0
	case SideBottom:
		return dir.Y < 0
	default:
		return false
	}
}

// bounce mirrors the component of b's heading perpendicular to side.
func bounce(b *Ball, side Side) {
	switch side {
	case SideLeft, SideRight:
		b.ReflectX()
	case SideTop, SideBottom:
		b.ReflectY()
	}
}

// resolveBounds reflects balls off the walls and despawns balls that fell
// past the floor. A wall only reflects a ball moving towards it, so a ball
// that is still outside after a bounce is not flipped back.
func resolveBounds(s *Session) {
	half := s.Settings.BallSize / 2
	bounds := s.Settings.Bounds

	for _, b := range s.World.Balls() {
		if b.Pos.Y >= bounds.Height {
			s.destroyBall(b.ID)
			continue
		}
		if b.Pos.X-half <= 0 && b.Dir.X < 0 {
			b.ReflectX()
		}
		if b.Pos.X+half >= bounds.Width && b.Dir.X > 0 {
			b.ReflectX()
		}
		if b.Pos.Y-half <= 0 && b.Dir.Y < 0 {
			b.ReflectY()
		}
	}
}

// Resolver applies ball/block contacts after each movement sub-step.
type Resolver interface {
	Resolve(s *Session)
}

// CollisionResolver detects ball/block overlaps by polling every pair.
type CollisionResolver struct{}

// Resolve implements Resolver.
func (CollisionResolver) Resolve(s *Session) {
	for _, b := range s.World.Balls() {
		for _, blk := range s.World.Blocks() {
			if _, alive := s.World.Block(blk.ID); !alive {
				continue
			}
			side := Classify(s.ballBox(b), s.blockBox(blk))
			if !approaching(side, b.Dir) {
				continue
			}
			if s.hitBlock(blk) {
				bounce(b, side)
			}
		}
	}
}
