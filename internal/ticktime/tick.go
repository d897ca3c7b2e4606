package ticktime

// Tick is the external time base of the registry: a monotonically
// non-decreasing counter supplied by the host environment, analogous to a
// block height. The registry never produces ticks, it only observes them.
type Tick uint64

// Clock supplies the current tick on demand. Implementations must be
// monotonically non-decreasing across calls.
type Clock interface {
	CurrentTick() Tick
}

// ManualClock is a Clock whose tick is set explicitly. It is used in tests
// and in tooling that replays recorded history.
type ManualClock struct {
	tick Tick
}

// NewManualClock creates a ManualClock positioned at the given tick.
func NewManualClock(tick Tick) *ManualClock {
	return &ManualClock{tick: tick}
}

func (c *ManualClock) CurrentTick() Tick {
	return c.tick
}

// Set moves the clock to the given tick. Moving backwards is not checked
// here; callers are responsible for monotonicity.
func (c *ManualClock) Set(tick Tick) {
	c.tick = tick
}

// Advance moves the clock forward by n ticks.
func (c *ManualClock) Advance(n Tick) {
	c.tick += n
}
