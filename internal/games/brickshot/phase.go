package brickshot

// Phase is the active state of the game loop.
type Phase int

const (
	PhaseInit         Phase = iota // Waiting for the player to start a layout
	PhaseAiming                    // Waiting for the aim click
	PhaseShooting                  // Volley in flight
	PhaseMovingBlocks              // Blocks descend one row
)

func (p Phase) String() string {
	switch p {
	case PhaseInit:
		return "init"
	case PhaseAiming:
		return "aiming"
	case PhaseShooting:
		return "shooting"
	case PhaseMovingBlocks:
		return "moving_blocks"
	default:
		return "unknown"
	}
}

const phaseCount = int(PhaseMovingBlocks) + 1

// maxTransitionsPerFlush bounds chains of enter hooks requesting further
// transitions.
const maxTransitionsPerFlush = 8

// PhaseHooks are the callbacks bound to one phase. Any of them may be nil.
type PhaseHooks struct {
	Enter  func(s *Session)
	Update func(s *Session, t Tick)
	Exit   func(s *Session)
}

// Machine is the phase state machine.
// Transitions are only requested while hooks run and are applied when the
// update hook returns.
type Machine struct {
	current  Phase
	hooks    [phaseCount]PhaseHooks
	pending  []Phase
	onChange func(from, to Phase)
}

// NewMachine creates a machine resting in initial. No enter hook runs.
func NewMachine(initial Phase) *Machine {
	return &Machine{current: initial}
}

// Bind installs the hooks of phase p.
func (m *Machine) Bind(p Phase, h PhaseHooks) {
	m.hooks[p] = h
}

// OnChange installs a callback invoked after every applied transition.
func (m *Machine) OnChange(fn func(from, to Phase)) {
	m.onChange = fn
}

// Current returns the active phase.
func (m *Machine) Current() Phase {
	return m.current
}

// Request queues a transition to the given phase.
// Requesting the phase the machine is already heading to is a no-op.
func (m *Machine) Request(to Phase) {
	target := m.current
	if n := len(m.pending); n > 0 {
		target = m.pending[n-1]
	}
	if to == target {
		return
	}
	m.pending = append(m.pending, to)
}

// Pending reports whether a transition is queued.
func (m *Machine) Pending() bool {
	return len(m.pending) > 0
}

// Update runs the update hook of the active phase, then applies the queued
// transitions.
func (m *Machine) Update(s *Session, t Tick) {
	if h := m.hooks[m.current].Update; h != nil {
		h(s, t)
	}
	m.Flush(s)
}

// Flush applies queued transitions: exit hook, phase change, enter hook.
// Enter hooks may queue further transitions, which are applied in turn.
func (m *Machine) Flush(s *Session) {
	for applied := 0; len(m.pending) > 0 && applied < maxTransitionsPerFlush; applied++ {
		to := m.pending[0]
		m.pending = m.pending[1:]
		if to == m.current {
			continue
		}

		from := m.current
		if h := m.hooks[from].Exit; h != nil {
			h(s)
		}
		m.current = to
		if m.onChange != nil {
			m.onChange(from, to)
		}
		if h := m.hooks[to].Enter; h != nil {
			h(s)
		}
	}
	m.pending = m.pending[:0]
}
