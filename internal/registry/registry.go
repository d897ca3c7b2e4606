package registry

import (
	"errors"
	"fmt"
	"sync"

	"github.com/seekernet/registry/internal/crypto"
	"github.com/seekernet/registry/internal/safemath"
	"github.com/seekernet/registry/internal/ticktime"
)

// Registry is the capacity-bounded discovery registry. It owns all of its
// state; the only way in is one of the mutating operations below and the
// only way out is the read accessors consumed by the reporting layer.
//
// Every mutating operation holds the write lock from entry to exit on all
// paths, so operations are atomic with respect to each other and a nested
// call can never observe a half-applied transition.
type Registry struct {
	mu sync.RWMutex

	clock ticktime.Clock
	auth  Authorizer
	sink  EventSink

	genesis ticktime.Tick
	seed    crypto.Hash

	currentEpoch  ticktime.Epoch
	epochSeen     map[ticktime.Epoch]struct{}
	registrations map[ticktime.Epoch]uint32

	queries map[QueryID]*QueryRecord
	results map[QueryID]crypto.Hash
	order   []QueryID

	rankers [RankerSlots]RankerSlot

	totalQueries uint64
	poolBalance  uint64
}

// Config carries the collaborators and seed material captured once at
// construction.
type Config struct {
	// ChainID names the host chain the registry lives on.
	ChainID string
	// Beacon is a randomness beacon output sampled at deployment.
	Beacon crypto.Hash
	// RecentBlockHash is a recent block hash of the host chain sampled at
	// deployment.
	RecentBlockHash crypto.Hash

	Clock ticktime.Clock
	Auth  Authorizer
	// Sink receives every emitted event. Optional; nil means events are
	// dropped.
	Sink EventSink
}

// New constructs a registry, capturing the genesis tick and deriving the
// digest seed. Both are fixed for the registry's lifetime.
func New(cfg Config) (*Registry, error) {
	if cfg.Clock == nil {
		return nil, errors.New("registry: clock is required")
	}
	if cfg.Auth == nil {
		return nil, errors.New("registry: authorizer is required")
	}
	sink := cfg.Sink
	if sink == nil {
		sink = nopSink{}
	}

	return &Registry{
		clock:         cfg.Clock,
		auth:          cfg.Auth,
		sink:          sink,
		genesis:       cfg.Clock.CurrentTick(),
		seed:          deriveSeed(cfg),
		epochSeen:     make(map[ticktime.Epoch]struct{}),
		registrations: make(map[ticktime.Epoch]uint32),
		queries:       make(map[QueryID]*QueryRecord),
		results:       make(map[QueryID]crypto.Hash),
	}, nil
}

// advanceEpoch runs the epoch ledger transition against the given tick.
// It is a conditional no-op, never an error: the epoch advances only when
// the derived candidate is both ahead of the current epoch and within
// MaxEpoch. Candidates beyond MaxEpoch leave the ledger pinned; nothing
// regresses. Callers must hold the write lock.
func (r *Registry) advanceEpoch(now ticktime.Tick) {
	candidate := ticktime.EpochAt(now, r.genesis)
	if candidate <= r.currentEpoch || candidate > ticktime.MaxEpoch {
		return
	}

	previous := r.currentEpoch
	r.currentEpoch = candidate
	r.epochSeen[candidate] = struct{}{}

	r.sink.Append(EpochAdvanced{
		EventMeta: EventMeta{Tick: now, Epoch: candidate},
		Previous:  previous,
		Current:   candidate,
	})
}

// RegisterQuery records a new discovery query. Keeper only.
//
// The epoch ledger transition runs before the capacity and duplicate checks
// and is not rolled back when they fail; a rejected registration can still
// leave the epoch advanced. This mirrors the deployed behavior and is
// deliberate.
func (r *Registry) RegisterQuery(caller Identity, id QueryID, tier uint8, payloadRef crypto.Hash) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.auth.Authorize(caller, RoleKeeper) {
		return fmt.Errorf("registerQuery: %w", ErrUnauthorized)
	}
	if id.IsZero() {
		return fmt.Errorf("registerQuery: %w", ErrZeroIdentifier)
	}

	now := r.clock.CurrentTick()
	r.advanceEpoch(now)

	epoch := r.currentEpoch
	if r.registrations[epoch] >= MaxQueriesPerEpoch {
		return fmt.Errorf("registerQuery: epoch %d: %w", epoch, ErrSlotExhausted)
	}
	if rec, ok := r.queries[id]; ok && rec.RegisteredAtTick != 0 {
		return fmt.Errorf("registerQuery: %s: %w", id, ErrDuplicateIdentifier)
	}

	total, ok := safemath.Add64(r.totalQueries, 1)
	if !ok {
		return fmt.Errorf("registerQuery: total counter: %w", safemath.ErrOverflow)
	}

	tier = normalizeTier(tier)
	r.queries[id] = &QueryRecord{
		Submitter:        caller,
		Tier:             tier,
		Epoch:            epoch,
		RegisteredAtTick: now,
		PayloadRef:       payloadRef,
	}
	r.registrations[epoch]++
	r.totalQueries = total
	r.order = append(r.order, id)

	r.sink.Append(QueryRegistered{
		EventMeta:  EventMeta{Tick: now, Epoch: epoch},
		ID:         id,
		Submitter:  caller,
		Tier:       tier,
		PayloadRef: payloadRef,
	})
	return nil
}

// StoreResult attaches the result reference to a registered query, exactly
// once. Keeper only.
func (r *Registry) StoreResult(caller Identity, id QueryID, resultRef crypto.Hash) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.auth.Authorize(caller, RoleKeeper) {
		return fmt.Errorf("storeResult: %w", ErrUnauthorized)
	}
	if resultRef.IsZero() {
		return fmt.Errorf("storeResult: %w", ErrZeroResult)
	}
	rec, ok := r.queries[id]
	if !ok || rec.RegisteredAtTick == 0 {
		return fmt.Errorf("storeResult: %s: %w", id, ErrNotFound)
	}
	if rec.ResultStored {
		return fmt.Errorf("storeResult: %s: %w", id, ErrAlreadyStored)
	}

	rec.ResultStored = true
	r.results[id] = resultRef

	now := r.clock.CurrentTick()
	r.sink.Append(ResultStored{
		EventMeta: EventMeta{Tick: now, Epoch: r.currentEpoch},
		ID:        id,
		ResultRef: resultRef,
	})
	return nil
}

// AttestRanker overwrites a ranker slot and marks it active. Vault only.
// Re-attestation of any slot, active or not, is always permitted and simply
// replaces history.
func (r *Registry) AttestRanker(caller Identity, slot int, rankerID RankerID, configRef crypto.Hash) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.auth.Authorize(caller, RoleVault) {
		return fmt.Errorf("attestRanker: %w", ErrUnauthorized)
	}
	if slot < 0 || slot >= RankerSlots {
		return fmt.Errorf("attestRanker: slot %d: %w", slot, ErrSlotInvalid)
	}

	now := r.clock.CurrentTick()
	r.rankers[slot] = RankerSlot{
		RankerID:       rankerID,
		ConfigRef:      configRef,
		AttestedAtTick: now,
		Active:         true,
	}

	r.sink.Append(RankerAttested{
		EventMeta: EventMeta{Tick: now, Epoch: r.currentEpoch},
		Slot:      uint8(slot),
		RankerID:  rankerID,
		ConfigRef: configRef,
	})
	return nil
}

// DeactivateRankerSlot switches a slot off, retaining its identity, config
// and attestation tick for audit. Vault only.
func (r *Registry) DeactivateRankerSlot(caller Identity, slot int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.auth.Authorize(caller, RoleVault) {
		return fmt.Errorf("deactivateRankerSlot: %w", ErrUnauthorized)
	}
	if slot < 0 || slot >= RankerSlots {
		return fmt.Errorf("deactivateRankerSlot: slot %d: %w", slot, ErrSlotInvalid)
	}

	r.rankers[slot].Active = false

	now := r.clock.CurrentTick()
	r.sink.Append(RankerDeactivated{
		EventMeta: EventMeta{Tick: now, Epoch: r.currentEpoch},
		Slot:      uint8(slot),
	})
	return nil
}

// BumpEpoch runs the epoch ledger transition explicitly. Oracle only.
// Beyond the role check it cannot fail; when no advancement is due it is a
// no-op.
func (r *Registry) BumpEpoch(caller Identity) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.auth.Authorize(caller, RoleOracle) {
		return fmt.Errorf("bumpEpoch: %w", ErrUnauthorized)
	}

	r.advanceEpoch(r.clock.CurrentTick())
	return nil
}

// TopUp adds a contribution to the pool balance. Open to any caller. A zero
// amount is a silent no-op and emits nothing; overflow rejects the call
// without wrapping around.
func (r *Registry) TopUp(caller Identity, amount uint64) error {
	if amount == 0 {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	balance, ok := safemath.Add64(r.poolBalance, amount)
	if !ok {
		return fmt.Errorf("topUp: pool balance: %w", safemath.ErrOverflow)
	}
	r.poolBalance = balance

	now := r.clock.CurrentTick()
	r.sink.Append(PoolToppedUp{
		EventMeta:  EventMeta{Tick: now, Epoch: r.currentEpoch},
		Caller:     caller,
		Amount:     amount,
		NewBalance: balance,
	})
	return nil
}

// GetQuery returns the record for a query identifier, if registered.
func (r *Registry) GetQuery(id QueryID) (QueryRecord, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.queries[id]
	if !ok || rec.RegisteredAtTick == 0 {
		return QueryRecord{}, false
	}
	return *rec, true
}

// GetResult returns the stored result reference for a query, if any.
func (r *Registry) GetResult(id QueryID) (crypto.Hash, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ref, ok := r.results[id]
	return ref, ok
}

// Slot returns the ranker slot at the given index.
func (r *Registry) Slot(slot int) (RankerSlot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if slot < 0 || slot >= RankerSlots {
		return RankerSlot{}, fmt.Errorf("slot %d: %w", slot, ErrSlotInvalid)
	}
	return r.rankers[slot], nil
}

// QueryIDs returns a copy of the enumeration sequence starting at offset.
// A negative limit means "to the end".
func (r *Registry) QueryIDs(offset, limit int) []QueryID {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if offset < 0 || offset >= len(r.order) {
		return nil
	}
	rest := r.order[offset:]
	if limit >= 0 && limit < len(rest) {
		rest = rest[:limit]
	}
	out := make([]QueryID, len(rest))
	copy(out, rest)
	return out
}

// QueryCount returns the length of the enumeration sequence.
func (r *Registry) QueryCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

// CountInEpoch returns the number of registrations recorded in an epoch.
func (r *Registry) CountInEpoch(e ticktime.Epoch) uint32 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.registrations[e]
}

// EpochSeen reports whether the ledger ever crossed into the given epoch.
func (r *Registry) EpochSeen(e ticktime.Epoch) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.epochSeen[e]
	return ok
}

// CurrentEpoch returns the ledger's current epoch.
func (r *Registry) CurrentEpoch() ticktime.Epoch {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.currentEpoch
}

// GenesisTick returns the tick captured at construction.
func (r *Registry) GenesisTick() ticktime.Tick {
	return r.genesis
}

// TotalQueries returns the global registration counter.
func (r *Registry) TotalQueries() uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.totalQueries
}

// PoolBalance returns the accumulated contribution balance.
func (r *Registry) PoolBalance() uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.poolBalance
}
