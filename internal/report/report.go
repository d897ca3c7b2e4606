// Package report is the read-only reporting surface over a registry. It
// never mutates; everything here is derived from the registry's read
// accessors on demand.
package report

import (
	"github.com/seekernet/registry/internal/crypto"
	"github.com/seekernet/registry/internal/registry"
	"github.com/seekernet/registry/internal/ticktime"
)

type Reporter struct {
	reg *registry.Registry
}

func NewReporter(reg *registry.Registry) *Reporter {
	return &Reporter{reg: reg}
}

// Query returns the full record for an identifier.
func (r *Reporter) Query(id registry.QueryID) (registry.QueryRecord, bool) {
	return r.reg.GetQuery(id)
}

// QuerySummary returns the reduced record form for an identifier.
func (r *Reporter) QuerySummary(id registry.QueryID) (registry.QuerySummary, bool) {
	rec, ok := r.reg.GetQuery(id)
	if !ok {
		return registry.QuerySummary{}, false
	}
	return rec.Summary(), true
}

// Result returns the stored result reference for an identifier, if any.
func (r *Reporter) Result(id registry.QueryID) (crypto.Hash, bool) {
	return r.reg.GetResult(id)
}

// RankerSlot returns the slot at the given index.
func (r *Reporter) RankerSlot(slot int) (registry.RankerSlot, error) {
	return r.reg.Slot(slot)
}

// RankerIDs lists the ranker identity of every slot in table order,
// including inactive and never-attested slots.
func (r *Reporter) RankerIDs() []registry.RankerID {
	ids := make([]registry.RankerID, registry.RankerSlots)
	for i := range ids {
		slot, err := r.reg.Slot(i)
		if err != nil {
			continue // unreachable, index is in range
		}
		ids[i] = slot.RankerID
	}
	return ids
}

// ActiveRankers counts the currently active slots.
func (r *Reporter) ActiveRankers() int {
	var n int
	for i := 0; i < registry.RankerSlots; i++ {
		slot, err := r.reg.Slot(i)
		if err == nil && slot.Active {
			n++
		}
	}
	return n
}

// QueryIDs paginates the enumeration sequence. A negative limit means "to
// the end".
func (r *Reporter) QueryIDs(offset, limit int) []registry.QueryID {
	return r.reg.QueryIDs(offset, limit)
}

// CountInEpoch returns how many queries were registered in an epoch.
func (r *Reporter) CountInEpoch(e ticktime.Epoch) uint32 {
	return r.reg.CountInEpoch(e)
}

// QueriesInEpoch lists the identifiers registered in an epoch, in
// registration order. Linear in the total number of queries; acceptable for
// a reporting path, a per-epoch index would be needed at larger scale.
func (r *Reporter) QueriesInEpoch(e ticktime.Epoch) []registry.QueryID {
	var out []registry.QueryID
	for _, id := range r.reg.QueryIDs(0, -1) {
		if rec, ok := r.reg.GetQuery(id); ok && rec.Epoch == e {
			out = append(out, id)
		}
	}
	return out
}

// TierHistogram buckets all registered queries by tier.
func (r *Reporter) TierHistogram() [registry.MaxTier + 1]uint64 {
	var hist [registry.MaxTier + 1]uint64
	for _, id := range r.reg.QueryIDs(0, -1) {
		if rec, ok := r.reg.GetQuery(id); ok {
			hist[rec.Tier]++
		}
	}
	return hist
}

// EpochRange maps an epoch to its inclusive tick range.
func (r *Reporter) EpochRange(e ticktime.Epoch) (ticktime.Tick, ticktime.Tick, error) {
	return ticktime.EpochRange(e, r.reg.GenesisTick())
}

// Digest returns the current discovery digest.
func (r *Reporter) Digest() crypto.Hash {
	return r.reg.Digest()
}

// Snapshot is the aggregate config/state view served to operators.
type Snapshot struct {
	GenesisTick        ticktime.Tick  `json:"genesisTick"`
	TicksPerEpoch      uint64         `json:"ticksPerEpoch"`
	MaxEpoch           ticktime.Epoch `json:"maxEpoch"`
	MaxQueriesPerEpoch uint32         `json:"maxQueriesPerEpoch"`
	RankerSlots        int            `json:"rankerSlots"`
	CurrentEpoch       ticktime.Epoch `json:"currentEpoch"`
	TotalQueries       uint64         `json:"totalQueries"`
	PoolBalance        uint64         `json:"poolBalance"`
	ActiveRankers      int            `json:"activeRankers"`
	Digest             crypto.Hash    `json:"digest"`
}

// Snapshot assembles the aggregate view. The counters are read one by one,
// not under a single lock; a concurrent writer can move them between reads.
func (r *Reporter) Snapshot() Snapshot {
	return Snapshot{
		GenesisTick:        r.reg.GenesisTick(),
		TicksPerEpoch:      ticktime.TicksPerEpoch,
		MaxEpoch:           ticktime.MaxEpoch,
		MaxQueriesPerEpoch: registry.MaxQueriesPerEpoch,
		RankerSlots:        registry.RankerSlots,
		CurrentEpoch:       r.reg.CurrentEpoch(),
		TotalQueries:       r.reg.TotalQueries(),
		PoolBalance:        r.reg.PoolBalance(),
		ActiveRankers:      r.ActiveRankers(),
		Digest:             r.reg.Digest(),
	}
}
