package ticktime

const (
	// TicksPerEpoch defines the width of an epoch in ticks. With the host
	// chain producing a tick roughly every 6 seconds this gives epochs of
	// about two hours.
	TicksPerEpoch = 1200

	// MinEpoch is the epoch containing the genesis tick. Every tick at or
	// before genesis maps to it.
	MinEpoch Epoch = 0

	// MaxEpoch is the last epoch the ledger will ever advance to. Epochs
	// computed beyond it never become current; the registry stays pinned
	// and its remaining per-epoch capacity is all that can ever be used.
	// 2^20 epochs of 1200 six-second ticks is roughly 239 years.
	MaxEpoch Epoch = 1 << 20
)
