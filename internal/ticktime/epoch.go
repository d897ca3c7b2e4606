package ticktime

import (
	"github.com/seekernet/registry/internal/safemath"
)

// Epoch indexes a contiguous range of TicksPerEpoch ticks, counted from the
// genesis tick captured at registry construction.
type Epoch uint64

// EpochAt returns the epoch a tick falls into, relative to genesis.
// Ticks at or before genesis all map to epoch 0; after that the mapping is
// floor((tick - genesis) / TicksPerEpoch). Pure function, never fails.
func EpochAt(tick, genesis Tick) Epoch {
	if tick <= genesis {
		return 0
	}
	return Epoch((tick - genesis) / TicksPerEpoch)
}

// EpochRange returns the first and last tick of an epoch relative to genesis.
// The range is inclusive on both ends. Fails only when the epoch start does
// not fit a Tick.
func EpochRange(e Epoch, genesis Tick) (Tick, Tick, error) {
	offset, ok := safemath.Mul64(uint64(e), TicksPerEpoch)
	if !ok {
		return 0, 0, safemath.ErrOverflow
	}
	start, ok := safemath.Add64(uint64(genesis), offset)
	if !ok {
		return 0, 0, safemath.ErrOverflow
	}
	end, ok := safemath.Add64(start, TicksPerEpoch-1)
	if !ok {
		return 0, 0, safemath.ErrOverflow
	}
	return Tick(start), Tick(end), nil
}

// Next returns the following epoch, capped at MaxEpoch.
func (e Epoch) Next() Epoch {
	if e >= MaxEpoch {
		return MaxEpoch
	}
	return e + 1
}
