package consultform

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateString(t *testing.T) {
	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "loading", StateLoading.String())
	assert.Equal(t, "success", StateSuccess.String())
	assert.Equal(t, "error", StateError.String())
	assert.Equal(t, "unknown", State(42).String())
}

func TestMachineTransitions(t *testing.T) {
	var (
		mu   sync.Mutex
		seen []State
	)
	m := NewMachine(0, func(s State) {
		mu.Lock()
		seen = append(seen, s)
		mu.Unlock()
	})

	assert.Equal(t, StateIdle, m.State())

	require.NoError(t, m.Begin())
	assert.Equal(t, StateLoading, m.State())

	// A second submit while loading is rejected
	assert.ErrorIs(t, m.Begin(), ErrSubmissionInFlight)

	// Reset is ignored while loading
	m.Reset()
	assert.Equal(t, StateLoading, m.State())

	m.Succeed()
	assert.Equal(t, StateSuccess, m.State())

	// Submitting from success is also rejected until the reset
	assert.ErrorIs(t, m.Begin(), ErrSubmissionInFlight)

	m.Reset()
	assert.Equal(t, StateIdle, m.State())

	require.NoError(t, m.Begin())
	m.Fail()
	assert.Equal(t, StateError, m.State())

	// Finishing twice does not move the state
	m.Succeed()
	assert.Equal(t, StateError, m.State())

	m.Reset()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []State{StateLoading, StateSuccess, StateIdle, StateLoading, StateError, StateIdle}, seen)
}

func TestMachineFinishOutsideLoading(t *testing.T) {
	m := NewMachine(0, nil)
	m.Succeed()
	assert.Equal(t, StateIdle, m.State())
	m.Fail()
	assert.Equal(t, StateIdle, m.State())
}

func TestMachineAutoReset(t *testing.T) {
	t.Run("Success returns to idle after the delay", func(t *testing.T) {
		m := NewMachine(20*time.Millisecond, nil)
		require.NoError(t, m.Begin())
		m.Succeed()
		assert.Equal(t, StateSuccess, m.State())

		assert.Eventually(t, func() bool {
			return m.State() == StateIdle
		}, time.Second, 5*time.Millisecond)
	})

	t.Run("Error returns to idle after the delay", func(t *testing.T) {
		m := NewMachine(20*time.Millisecond, nil)
		require.NoError(t, m.Begin())
		m.Fail()

		assert.Eventually(t, func() bool {
			return m.State() == StateIdle
		}, time.Second, 5*time.Millisecond)
	})

	t.Run("Stop cancels the pending reset", func(t *testing.T) {
		m := NewMachine(20*time.Millisecond, nil)
		require.NoError(t, m.Begin())
		m.Succeed()
		m.Stop()

		time.Sleep(60 * time.Millisecond)
		assert.Equal(t, StateSuccess, m.State())
	})

	t.Run("Default delay is five seconds", func(t *testing.T) {
		assert.Equal(t, 5*time.Second, ResetDelay)
		assert.Equal(t, ResetDelay, NewMachine(ResetDelay, nil).resetDelay)
	})
}

func TestMachineConcurrentBegin(t *testing.T) {
	m := NewMachine(0, nil)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		accepted int
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if m.Begin() == nil {
				mu.Lock()
				accepted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, accepted)
	assert.Equal(t, StateLoading, m.State())
}
