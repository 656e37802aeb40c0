package brickshot

import (
	"cmp"
	"slices"
)

// Layer tags the collision group of a contact participant.
type Layer uint8

const (
	LayerBall Layer = 1 << iota
	LayerBlockStandard
	LayerBlockAddBall
)

const layerBlock = LayerBlockStandard | LayerBlockAddBall

func layerOf(k BlockKind) Layer {
	if k == BlockAddBall {
		return LayerBlockAddBall
	}
	return LayerBlockStandard
}

// Participant is one side of a contact.
type Participant struct {
	ID    EntityID
	Layer Layer
}

// ContactKind tells whether two bodies started or stopped touching.
type ContactKind int

const (
	ContactStarted ContactKind = iota
	ContactStopped
)

// ContactEvent reports a change in contact between two bodies, in the shape
// a physics engine delivers it. Participant order is not significant.
type ContactEvent struct {
	Kind ContactKind
	A, B Participant
}

type contactPair struct {
	ball  EntityID
	block EntityID
}

func comparePairs(a, b contactPair) int {
	if c := cmp.Compare(a.ball, b.ball); c != 0 {
		return c
	}
	return cmp.Compare(a.block, b.block)
}

// ContactResolver applies contact events in two phases: Apply damages blocks
// for new contacts, Sweep removes blocks whose health reached zero.
// A pair already in contact ignores repeated Started events until its
// Stopped event arrives, so duplicate delivery never double-damages.
type ContactResolver struct {
	active   map[contactPair]struct{}
	touching map[contactPair]struct{}
}

// NewContactResolver creates a resolver with no active contacts.
func NewContactResolver() *ContactResolver {
	return &ContactResolver{
		active:   make(map[contactPair]struct{}),
		touching: make(map[contactPair]struct{}),
	}
}

// Active reports the number of pairs currently in contact.
func (c *ContactResolver) Active() int {
	return len(c.active)
}

// Resolve implements Resolver by detecting contacts from overlaps and
// applying both phases.
func (c *ContactResolver) Resolve(s *Session) {
	c.Apply(s, c.Detect(s))
	c.Sweep(s)
}

// Detect compares the current ball/block overlaps with those seen on the
// previous call and reports the differences as contact events.
func (c *ContactResolver) Detect(s *Session) []ContactEvent {
	var events []ContactEvent
	current := make(map[contactPair]struct{}, len(c.touching))

	for _, b := range s.World.Balls() {
		for _, blk := range s.World.Blocks() {
			if Classify(s.ballBox(b), s.blockBox(blk)) == SideNone {
				continue
			}
			pair := contactPair{ball: b.ID, block: blk.ID}
			current[pair] = struct{}{}
			if _, seen := c.touching[pair]; !seen {
				events = append(events, ContactEvent{
					Kind: ContactStarted,
					A:    Participant{ID: b.ID, Layer: LayerBall},
					B:    Participant{ID: blk.ID, Layer: layerOf(blk.Kind)},
				})
			}
		}
	}

	var stopped []contactPair
	for pair := range c.touching {
		if _, still := current[pair]; !still {
			stopped = append(stopped, pair)
		}
	}
	slices.SortFunc(stopped, comparePairs)
	for _, pair := range stopped {
		events = append(events, ContactEvent{
			Kind: ContactStopped,
			A:    Participant{ID: pair.ball, Layer: LayerBall},
			B:    Participant{ID: pair.block, Layer: layerBlock},
		})
	}

	c.touching = current
	return events
}

// split orders the participants of e as (ball, block).
// Events that are not exactly one ball and one block are rejected.
func split(e ContactEvent) (ball, block Participant, ok bool) {
	switch {
	case e.A.Layer&LayerBall != 0 && e.B.Layer&layerBlock != 0:
		return e.A, e.B, true
	case e.B.Layer&LayerBall != 0 && e.A.Layer&layerBlock != 0:
		return e.B, e.A, true
	default:
		return Participant{}, Participant{}, false
	}
}

// Apply runs the first phase for a batch of events.
// Standard blocks lose one health per new contact and the ball bounces with
// the same side classification the polling resolver uses. Add-ball blocks
// are collected and never bounce the ball. Stale IDs are ignored.
func (c *ContactResolver) Apply(s *Session, events []ContactEvent) {
	for _, e := range events {
		ballP, blockP, ok := split(e)
		if !ok {
			continue
		}
		pair := contactPair{ball: ballP.ID, block: blockP.ID}

		if e.Kind == ContactStopped {
			delete(c.active, pair)
			continue
		}
		if _, dup := c.active[pair]; dup {
			continue
		}
		c.active[pair] = struct{}{}

		blk, ok := s.World.Block(blockP.ID)
		if !ok {
			continue
		}
		if blk.Kind == BlockAddBall {
			s.collectAddBall(blk.ID)
			continue
		}

		if blk.Health > 0 {
			blk.Health--
			if blk.Health > 0 {
				s.emit(BlockDamaged{ID: blk.ID, Health: blk.Health})
			}
		}
		if b, ok := s.World.Ball(ballP.ID); ok {
			side := Classify(s.ballBox(b), s.blockBox(blk))
			if approaching(side, b.Dir) {
				bounce(b, side)
			}
		}
	}
}

// Sweep runs the second phase: standard blocks with no health left are
// destroyed and scored, in layout order.
func (c *ContactResolver) Sweep(s *Session) {
	for _, blk := range s.World.Blocks() {
		if blk.Kind == BlockStandard && blk.Health == 0 {
			s.destroyBlock(blk.ID)
		}
	}
}
