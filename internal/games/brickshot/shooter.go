package brickshot

// DefaultVolley is the number of balls fired per volley at the start of a game.
const DefaultVolley = 40

// Shooter tracks the volley in progress.
type Shooter struct {
	Count    int  // Balls per volley, grows with every add-ball pickup
	Shot     int  // Balls fired so far in this volley
	Finished bool // All Count balls of the volley have been fired
}

// NewShooter returns a shooter firing count balls per volley.
func NewShooter(count int) *Shooter {
	if count < 1 {
		count = 1
	}
	return &Shooter{Count: count}
}

// Reset prepares the shooter for the next volley. Count is kept.
func (s *Shooter) Reset() {
	s.Shot = 0
	s.Finished = false
}

// Emit records one fired ball and reports whether it was allowed.
// Firing the Count-th ball finishes the volley and rewinds Shot to zero.
func (s *Shooter) Emit() bool {
	if s.Finished {
		return false
	}
	s.Shot++
	if s.Shot >= s.Count {
		s.Finished = true
		s.Shot = 0
	}
	return true
}

// Collect permanently adds one ball to the volley.
func (s *Shooter) Collect() {
	s.Count++
}

// Emitter spaces the balls of a volley in time.
type Emitter struct {
	Cadence float64 // Seconds between two balls
	acc     float64
	started bool
}

// Reset rewinds the emitter so that the next Tick fires immediately.
func (e *Emitter) Reset() {
	e.acc = 0
	e.started = false
}

// Tick advances the accumulator by dt and reports whether a ball is due.
// The first call after Reset always fires; at most one ball is due per call.
func (e *Emitter) Tick(dt float64) bool {
	if !e.started {
		e.started = true
		return true
	}
	if dt > 0 {
		e.acc += dt
	}
	if e.acc < e.Cadence {
		return false
	}
	// A long stall must not turn into a burst on the following frames.
	e.acc = min(e.acc-e.Cadence, e.Cadence)
	return true
}
