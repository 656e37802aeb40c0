package brickshot

// Outcome is the result of the current layout.
type Outcome int

const (
	OutcomeUnset Outcome = iota // Still playing
	OutcomeWon                  // Field cleared
	OutcomeLost                 // A block reached the loss line
)

func (o Outcome) String() string {
	switch o {
	case OutcomeWon:
		return "won"
	case OutcomeLost:
		return "lost"
	default:
		return ""
	}
}

// Decided reports whether the layout has a result.
func (o Outcome) Decided() bool {
	return o != OutcomeUnset
}

// fieldCleared reports the win condition: no block is left.
func fieldCleared(w *World) bool {
	return w.BlockCount() == 0
}

// descendBlocks moves every block one row down, in layout order.
// A block already sitting on the loss line is not moved; it stops the
// descent and the function reports false. Blocks moved before it stay moved.
func descendBlocks(s *Session) bool {
	line := s.LossLine()
	for _, blk := range s.World.Blocks() {
		if blk.Pos.Y >= line {
			return false
		}
		blk.Pos.Y += s.Settings.BlockSize
		blk.Row++
	}
	return true
}
