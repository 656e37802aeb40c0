package brickshot

import (
	"testing"

	"github.com/vovakirdan/brickshot/internal/core"
)

func TestWorldSpawnAndLookup(t *testing.T) {
	w := NewWorld()

	b, ok := w.SpawnBall(core.V(10, 10), core.V(3, -4), 100)
	if !ok {
		t.Fatal("SpawnBall() rejected a valid direction")
	}
	assertUnit(t, b.Dir)
	if !near(b.Dir, core.V(0.6, -0.8)) {
		t.Errorf("Dir = %v, expected (0.6, -0.8)", b.Dir)
	}

	blk := w.SpawnBlock(Block{Kind: BlockStandard, Health: 2})
	if blk.ID == b.ID {
		t.Error("balls and blocks must not share IDs")
	}

	if got, ok := w.Ball(b.ID); !ok || got != b {
		t.Error("Ball() should find the spawned ball")
	}
	if _, ok := w.Block(b.ID); ok {
		t.Error("Block() should not find a ball ID")
	}
}

func TestWorldRejectsZeroDirection(t *testing.T) {
	w := NewWorld()
	if _, ok := w.SpawnBall(core.V(0, 0), core.V(0, 0), 100); ok {
		t.Error("SpawnBall() with zero direction should fail")
	}
	if w.BallCount() != 0 {
		t.Errorf("BallCount() = %d, expected 0", w.BallCount())
	}
}

func TestWorldStaleIDs(t *testing.T) {
	w := NewWorld()
	blk := w.SpawnBlock(Block{Kind: BlockStandard, Health: 1})
	id := blk.ID

	if !w.DespawnBlock(id) {
		t.Fatal("DespawnBlock() should succeed once")
	}
	if w.DespawnBlock(id) {
		t.Error("DespawnBlock() on a stale ID should be a no-op")
	}
	if w.DespawnBall(12345) {
		t.Error("DespawnBall() on an unknown ID should be a no-op")
	}
	if _, ok := w.Block(id); ok {
		t.Error("stale ID should not resolve")
	}

	// IDs are never reused
	next := w.SpawnBlock(Block{Kind: BlockStandard, Health: 1})
	if next.ID == id {
		t.Error("despawned ID was reused")
	}
}

func TestWorldOrder(t *testing.T) {
	w := NewWorld()
	var ids []EntityID
	for i := 0; i < 5; i++ {
		ids = append(ids, w.SpawnBlock(Block{Col: i}).ID)
	}
	w.DespawnBlock(ids[2])

	blocks := w.Blocks()
	expected := []int{0, 1, 3, 4}
	if len(blocks) != len(expected) {
		t.Fatalf("Blocks() len = %d, expected %d", len(blocks), len(expected))
	}
	for i, blk := range blocks {
		if blk.Col != expected[i] {
			t.Errorf("Blocks()[%d].Col = %d, expected %d", i, blk.Col, expected[i])
		}
	}

	// Despawning while ranging over a snapshot is safe
	for _, blk := range w.Blocks() {
		w.DespawnBlock(blk.ID)
	}
	if w.BlockCount() != 0 {
		t.Errorf("BlockCount() = %d, expected 0", w.BlockCount())
	}
}

func TestWorldClear(t *testing.T) {
	w := NewWorld()
	w.SpawnBall(core.V(0, 0), core.V(0, -1), 1)
	w.SpawnBall(core.V(0, 0), core.V(1, -1), 1)
	w.SpawnBlock(Block{})

	if ids := w.ClearBalls(); len(ids) != 2 {
		t.Errorf("ClearBalls() removed %d, expected 2", len(ids))
	}
	if w.BallCount() != 0 || w.BlockCount() != 1 {
		t.Errorf("after ClearBalls: balls=%d blocks=%d", w.BallCount(), w.BlockCount())
	}
	w.ClearBlocks()
	if w.BlockCount() != 0 {
		t.Errorf("BlockCount() = %d after ClearBlocks", w.BlockCount())
	}
}
