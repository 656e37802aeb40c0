package brickshot

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/brickshot/internal/core"
)

// Event is a domain event raised by the simulation.
// Events are buffered during a tick and delivered to observers at its end.
type Event interface {
	brickshotEvent()
}

// BallSpawned is raised when a ball of the volley is emitted.
type BallSpawned struct {
	ID  EntityID
	Pos core.Vec2
	Dir core.Vec2
}

func (BallSpawned) brickshotEvent() {}

// BallDestroyed is raised when a ball falls past the floor.
type BallDestroyed struct {
	ID EntityID
}

func (BallDestroyed) brickshotEvent() {}

// BlockSpawned is raised for every block of a new layout.
type BlockSpawned struct {
	ID     EntityID
	Kind   BlockKind
	Health uint
	Col    int
	Row    int
}

func (BlockSpawned) brickshotEvent() {}

// BlockDamaged is raised when a standard block loses health but survives.
type BlockDamaged struct {
	ID     EntityID
	Health uint // Remaining health
}

func (BlockDamaged) brickshotEvent() {}

// BlockDestroyed is raised when a standard block runs out of health.
type BlockDestroyed struct {
	ID    EntityID
	Score int // Score after the destruction
}

func (BlockDestroyed) brickshotEvent() {}

// BlockRemoved is raised when a block leaves the field without scoring.
type BlockRemoved struct {
	ID EntityID
}

func (BlockRemoved) brickshotEvent() {}

// AddBallCollected is raised when a ball touches an add-ball block.
type AddBallCollected struct {
	ID    EntityID
	Count int // Balls per volley after the pickup
}

func (AddBallCollected) brickshotEvent() {}

// PhaseChanged is raised after every applied transition.
type PhaseChanged struct {
	From Phase
	To   Phase
}

func (PhaseChanged) brickshotEvent() {}

// OutcomeDecided is raised when the field is cleared or a block reaches the
// loss line.
type OutcomeDecided struct {
	Outcome Outcome
	Score   int
}

func (OutcomeDecided) brickshotEvent() {}

// Observer receives domain events, typically for presentation.
type Observer interface {
	OnEvent(Event)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(Event)

// OnEvent calls f(e).
func (f ObserverFunc) OnEvent(e Event) {
	f(e)
}

// LogObserver writes every event to a charmbracelet logger at debug level.
type LogObserver struct {
	Logger *log.Logger
}

// OnEvent logs e.
func (o LogObserver) OnEvent(e Event) {
	if o.Logger == nil {
		return
	}
	switch ev := e.(type) {
	case BallSpawned:
		o.Logger.Debug("ball spawned", "id", ev.ID, "x", ev.Pos.X, "y", ev.Pos.Y)
	case BallDestroyed:
		o.Logger.Debug("ball destroyed", "id", ev.ID)
	case BlockSpawned:
		o.Logger.Debug("block spawned", "id", ev.ID, "kind", ev.Kind, "health", ev.Health, "col", ev.Col, "row", ev.Row)
	case BlockDamaged:
		o.Logger.Debug("block damaged", "id", ev.ID, "health", ev.Health)
	case BlockDestroyed:
		o.Logger.Debug("block destroyed", "id", ev.ID, "score", ev.Score)
	case BlockRemoved:
		o.Logger.Debug("block removed", "id", ev.ID)
	case AddBallCollected:
		o.Logger.Debug("add-ball collected", "id", ev.ID, "count", ev.Count)
	case PhaseChanged:
		o.Logger.Debug("phase changed", "from", ev.From, "to", ev.To)
	case OutcomeDecided:
		o.Logger.Info("outcome decided", "outcome", ev.Outcome, "score", ev.Score)
	}
}
