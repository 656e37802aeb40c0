package brickshot

import (
	"slices"

	"github.com/vovakirdan/brickshot/internal/core"
)

// World stores balls and blocks.
// Iteration order is spawn order, which keeps the simulation deterministic.
type World struct {
	nextID EntityID

	balls     map[EntityID]*Ball
	ballOrder []EntityID

	blocks     map[EntityID]*Block
	blockOrder []EntityID
}

// NewWorld creates an empty world.
func NewWorld() *World {
	return &World{
		nextID: 1,
		balls:  make(map[EntityID]*Ball),
		blocks: make(map[EntityID]*Block),
	}
}

func (w *World) allocID() EntityID {
	id := w.nextID
	w.nextID++
	return id
}

// SpawnBall adds a ball heading along dir.
// It returns false, and spawns nothing, when dir is zero.
func (w *World) SpawnBall(pos, dir core.Vec2, speed float64) (*Ball, bool) {
	b, ok := newBall(pos, dir, speed)
	if !ok {
		return nil, false
	}
	b.ID = w.allocID()
	w.balls[b.ID] = &b
	w.ballOrder = append(w.ballOrder, b.ID)
	return &b, true
}

// SpawnBlock adds a block. The ID field of blk is assigned by the world.
func (w *World) SpawnBlock(blk Block) *Block {
	blk.ID = w.allocID()
	w.blocks[blk.ID] = &blk
	w.blockOrder = append(w.blockOrder, blk.ID)
	return &blk
}

// Ball returns the live ball with the given ID.
func (w *World) Ball(id EntityID) (*Ball, bool) {
	b, ok := w.balls[id]
	return b, ok
}

// Block returns the live block with the given ID.
func (w *World) Block(id EntityID) (*Block, bool) {
	b, ok := w.blocks[id]
	return b, ok
}

// DespawnBall removes a ball. Unknown IDs are a no-op that returns false.
func (w *World) DespawnBall(id EntityID) bool {
	if _, ok := w.balls[id]; !ok {
		return false
	}
	delete(w.balls, id)
	w.ballOrder = slices.DeleteFunc(w.ballOrder, func(o EntityID) bool { return o == id })
	return true
}

// DespawnBlock removes a block. Unknown IDs are a no-op that returns false.
func (w *World) DespawnBlock(id EntityID) bool {
	if _, ok := w.blocks[id]; !ok {
		return false
	}
	delete(w.blocks, id)
	w.blockOrder = slices.DeleteFunc(w.blockOrder, func(o EntityID) bool { return o == id })
	return true
}

// Balls returns the live balls in spawn order.
// The slice is a fresh copy, so callers may despawn while ranging over it.
func (w *World) Balls() []*Ball {
	out := make([]*Ball, 0, len(w.ballOrder))
	for _, id := range w.ballOrder {
		out = append(out, w.balls[id])
	}
	return out
}

// Blocks returns the live blocks in layout order.
func (w *World) Blocks() []*Block {
	out := make([]*Block, 0, len(w.blockOrder))
	for _, id := range w.blockOrder {
		out = append(out, w.blocks[id])
	}
	return out
}

// BallCount returns the number of live balls.
func (w *World) BallCount() int {
	return len(w.ballOrder)
}

// BlockCount returns the number of live blocks.
func (w *World) BlockCount() int {
	return len(w.blockOrder)
}

// ClearBalls removes every ball and returns the removed IDs.
func (w *World) ClearBalls() []EntityID {
	ids := w.ballOrder
	w.ballOrder = nil
	clear(w.balls)
	return ids
}

// ClearBlocks removes every block and returns the removed IDs.
func (w *World) ClearBlocks() []EntityID {
	ids := w.blockOrder
	w.blockOrder = nil
	clear(w.blocks)
	return ids
}
