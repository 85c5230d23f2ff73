package leadcapture

// Machine mirrors the popup trigger lifecycle:
// idle -> armed -> shown -> done. Arming requires an allow-listed page, an
// unauthenticated visitor and an unset session flag; whichever armed signal
// fires first shows the popup, and every later signal is ignored.

type State int

const (
	StateIdle State = iota
	StateArmed
	StateShown
	StateDone
)

type Signal string

const (
	SignalScroll     Signal = "scroll"
	SignalExitIntent Signal = "exit_intent"
	SignalTimer      Signal = "timer"
)

const (
	VariantScroll     = "scroll"
	VariantExitIntent = "exit-intent"
	VariantTimed      = "timed"
	// VariantMultiple arms scroll and exit-intent simultaneously.
	VariantMultiple = "multiple"
)

type Config struct {
	Variant         string
	ScrollThreshold float64 // percentage of page height, e.g. 85
	DelaySeconds    int     // for the timed variant
	AllowedPages    []string
}

func DefaultConfig(variant string) Config {
	return Config{
		Variant:         variant,
		ScrollThreshold: 85,
		DelaySeconds:    30,
		AllowedPages:    []string{"/", "/blog", "/services", "/contact"},
	}
}

func (c Config) pageAllowed(page string) bool {
	for _, p := range c.AllowedPages {
		if p == page {
			return true
		}
	}
	return false
}

func (c Config) signalArmed(sig Signal) bool {
	switch c.Variant {
	case VariantScroll:
		return sig == SignalScroll
	case VariantExitIntent:
		return sig == SignalExitIntent
	case VariantTimed:
		return sig == SignalTimer
	case VariantMultiple:
		return sig == SignalScroll || sig == SignalExitIntent
	default:
		return false
	}
}

type Machine struct {
	cfg     Config
	state   State
	firedBy Signal
}

func NewMachine(cfg Config) *Machine {
	return &Machine{cfg: cfg, state: StateIdle}
}

func (m *Machine) State() State {
	return m.state
}

// FiredBy reports which signal showed the popup.
func (m *Machine) FiredBy() Signal {
	return m.firedBy
}

// Arm moves idle -> armed. alreadyShown carries the per-session flag.
func (m *Machine) Arm(page string, alreadyShown, authenticated bool) bool {
	if m.state != StateIdle {
		return m.state == StateArmed
	}

	if alreadyShown || authenticated || !m.cfg.pageAllowed(page) {
		return false
	}

	m.state = StateArmed
	return true
}

// Trigger moves armed -> shown when the signal is armed for the variant and
// its condition holds. Returns true only on the transition that actually
// shows the popup; later signals return false.
func (m *Machine) Trigger(sig Signal, scrollPercent float64) bool {
	if m.state != StateArmed {
		return false
	}

	if !m.cfg.signalArmed(sig) {
		return false
	}

	if sig == SignalScroll && scrollPercent < m.cfg.ScrollThreshold {
		return false
	}

	m.state = StateShown
	m.firedBy = sig
	return true
}

// Close moves shown -> done for both dismissal and submission.
func (m *Machine) Close() {
	if m.state == StateShown {
		m.state = StateDone
	}
}
