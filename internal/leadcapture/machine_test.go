package leadcapture

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArmRequiresAllowedPage(t *testing.T) {
	m := NewMachine(DefaultConfig(VariantScroll))

	assert.False(t, m.Arm("/dashboard", false, false))
	assert.Equal(t, StateIdle, m.State())

	assert.True(t, m.Arm("/blog", false, false))
	assert.Equal(t, StateArmed, m.State())
}

func TestArmBlockedForAuthenticatedVisitor(t *testing.T) {
	m := NewMachine(DefaultConfig(VariantScroll))

	assert.False(t, m.Arm("/", false, true))
	assert.Equal(t, StateIdle, m.State())
}

func TestArmBlockedWhenAlreadyShown(t *testing.T) {
	m := NewMachine(DefaultConfig(VariantScroll))

	assert.False(t, m.Arm("/", true, false))
	assert.Equal(t, StateIdle, m.State())
}

func TestScrollVariantThreshold(t *testing.T) {
	m := NewMachine(DefaultConfig(VariantScroll))
	m.Arm("/", false, false)

	assert.False(t, m.Trigger(SignalScroll, 50))
	assert.Equal(t, StateArmed, m.State())

	assert.True(t, m.Trigger(SignalScroll, 90))
	assert.Equal(t, StateShown, m.State())
	assert.Equal(t, SignalScroll, m.FiredBy())
}

func TestScrollVariantIgnoresOtherSignals(t *testing.T) {
	m := NewMachine(DefaultConfig(VariantScroll))
	m.Arm("/", false, false)

	assert.False(t, m.Trigger(SignalExitIntent, 0))
	assert.False(t, m.Trigger(SignalTimer, 0))
	assert.Equal(t, StateArmed, m.State())
}

func TestExitIntentVariant(t *testing.T) {
	m := NewMachine(DefaultConfig(VariantExitIntent))
	m.Arm("/", false, false)

	assert.False(t, m.Trigger(SignalScroll, 100))
	assert.True(t, m.Trigger(SignalExitIntent, 0))
}

func TestTimedVariant(t *testing.T) {
	m := NewMachine(DefaultConfig(VariantTimed))
	m.Arm("/", false, false)

	assert.False(t, m.Trigger(SignalExitIntent, 0))
	assert.True(t, m.Trigger(SignalTimer, 0))
}

// The multiple variant arms scroll and exit-intent together; whichever fires
// first wins and the other is ignored.
func TestMultipleVariantFirstSignalWins(t *testing.T) {
	m := NewMachine(DefaultConfig(VariantMultiple))
	m.Arm("/", false, false)

	assert.True(t, m.Trigger(SignalExitIntent, 0))
	assert.Equal(t, SignalExitIntent, m.FiredBy())

	assert.False(t, m.Trigger(SignalScroll, 100))
	assert.Equal(t, SignalExitIntent, m.FiredBy())
}

func TestTriggerOnlyOnce(t *testing.T) {
	m := NewMachine(DefaultConfig(VariantScroll))
	m.Arm("/", false, false)

	assert.True(t, m.Trigger(SignalScroll, 95))
	assert.False(t, m.Trigger(SignalScroll, 95))
}

func TestCloseFromShown(t *testing.T) {
	m := NewMachine(DefaultConfig(VariantScroll))
	m.Arm("/", false, false)
	m.Trigger(SignalScroll, 95)

	m.Close()
	assert.Equal(t, StateDone, m.State())

	// A close before showing is a no-op.
	m2 := NewMachine(DefaultConfig(VariantScroll))
	m2.Close()
	assert.Equal(t, StateIdle, m2.State())
}

func TestUnknownVariantNeverTriggers(t *testing.T) {
	m := NewMachine(DefaultConfig("banner"))
	m.Arm("/", false, false)

	assert.False(t, m.Trigger(SignalScroll, 100))
	assert.False(t, m.Trigger(SignalExitIntent, 0))
	assert.False(t, m.Trigger(SignalTimer, 0))
}
