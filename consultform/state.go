package consultform

import (
	"errors"
	"sync"
	"time"
)

// ResetDelay is how long the success or error notice stays before the form returns to idle
const ResetDelay = 5 * time.Second

// ErrSubmissionInFlight is returned when a submit is attempted outside the idle state
var ErrSubmissionInFlight = errors.New("a submission is already in progress")

// State is the visible state of the consultation form
type State int

const (
	StateIdle State = iota
	StateLoading
	StateSuccess
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateSuccess:
		return "success"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// Machine tracks the form state: idle -> loading -> success|error -> idle.
// The return to idle is driven by a timer after resetDelay; a zero delay
// leaves the reset to the caller.
type Machine struct {
	mu         sync.Mutex
	state      State
	resetDelay time.Duration
	timer      *time.Timer
	onChange   func(State)
}

// NewMachine returns an idle machine. onChange, if set, is called after every
// transition, outside the lock.
func NewMachine(resetDelay time.Duration, onChange func(State)) *Machine {
	return &Machine{
		state:      StateIdle,
		resetDelay: resetDelay,
		onChange:   onChange,
	}
}

// State returns the current state
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Begin moves idle -> loading. Any other state rejects the submit.
func (m *Machine) Begin() error {
	m.mu.Lock()
	if m.state != StateIdle {
		m.mu.Unlock()
		return ErrSubmissionInFlight
	}
	m.state = StateLoading
	m.mu.Unlock()

	m.notify(StateLoading)
	return nil
}

// Succeed moves loading -> success and schedules the reset
func (m *Machine) Succeed() {
	m.finish(StateSuccess)
}

// Fail moves loading -> error and schedules the reset
func (m *Machine) Fail() {
	m.finish(StateError)
}

func (m *Machine) finish(next State) {
	m.mu.Lock()
	if m.state != StateLoading {
		m.mu.Unlock()
		return
	}
	m.state = next
	if m.resetDelay > 0 {
		m.timer = time.AfterFunc(m.resetDelay, m.Reset)
	}
	m.mu.Unlock()

	m.notify(next)
}

// Reset returns a finished form to idle. It does nothing while loading.
func (m *Machine) Reset() {
	m.mu.Lock()
	if m.state != StateSuccess && m.state != StateError {
		m.mu.Unlock()
		return
	}
	m.state = StateIdle
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
	m.mu.Unlock()

	m.notify(StateIdle)
}

// Stop cancels a pending automatic reset
func (m *Machine) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
}

func (m *Machine) notify(s State) {
	if m.onChange != nil {
		m.onChange(s)
	}
}
