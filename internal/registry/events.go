package registry

import (
	"github.com/rs/zerolog"

	"github.com/seekernet/registry/internal/crypto"
	"github.com/seekernet/registry/internal/ticktime"
)

// EventKind discriminates the event records emitted by mutating operations.
type EventKind uint8

const (
	EventEpochAdvanced EventKind = iota + 1
	EventQueryRegistered
	EventResultStored
	EventRankerAttested
	EventRankerDeactivated
	EventPoolToppedUp
)

func (k EventKind) String() string {
	switch k {
	case EventEpochAdvanced:
		return "epochAdvanced"
	case EventQueryRegistered:
		return "queryRegistered"
	case EventResultStored:
		return "resultStored"
	case EventRankerAttested:
		return "rankerAttested"
	case EventRankerDeactivated:
		return "rankerDeactivated"
	case EventPoolToppedUp:
		return "poolToppedUp"
	default:
		return "unknown"
	}
}

// Event is a structured record of a successful state change. Events are the
// registry's audit trail and the integration point for external indexers.
type Event interface {
	Kind() EventKind
}

// EventMeta stamps every event with the tick it was emitted at and the epoch
// current at that moment.
type EventMeta struct {
	Tick  ticktime.Tick  `json:"tick"`
	Epoch ticktime.Epoch `json:"epoch"`
}

// EpochAdvanced records an epoch ledger transition, whether triggered by a
// registration precheck or an explicit oracle bump.
type EpochAdvanced struct {
	EventMeta
	Previous ticktime.Epoch `json:"previous"`
	Current  ticktime.Epoch `json:"current"`
}

func (EpochAdvanced) Kind() EventKind { return EventEpochAdvanced }

// QueryRegistered records a successful query registration.
type QueryRegistered struct {
	EventMeta
	ID         QueryID     `json:"id"`
	Submitter  Identity    `json:"submitter"`
	Tier       uint8       `json:"tier"`
	PayloadRef crypto.Hash `json:"payloadRef"`
}

func (QueryRegistered) Kind() EventKind { return EventQueryRegistered }

// ResultStored records the one-time result attachment for a query.
type ResultStored struct {
	EventMeta
	ID        QueryID     `json:"id"`
	ResultRef crypto.Hash `json:"resultRef"`
}

func (ResultStored) Kind() EventKind { return EventResultStored }

// RankerAttested records a slot overwrite in the ranker table.
type RankerAttested struct {
	EventMeta
	Slot      uint8       `json:"slot"`
	RankerID  RankerID    `json:"rankerId"`
	ConfigRef crypto.Hash `json:"configRef"`
}

func (RankerAttested) Kind() EventKind { return EventRankerAttested }

// RankerDeactivated records a slot being switched off. The slot's identity
// and config remain in place as history.
type RankerDeactivated struct {
	EventMeta
	Slot uint8 `json:"slot"`
}

func (RankerDeactivated) Kind() EventKind { return EventRankerDeactivated }

// PoolToppedUp records a nonzero contribution to the pool balance.
type PoolToppedUp struct {
	EventMeta
	Caller     Identity `json:"caller"`
	Amount     uint64   `json:"amount"`
	NewBalance uint64   `json:"newBalance"`
}

func (PoolToppedUp) Kind() EventKind { return EventPoolToppedUp }

// EventSink receives every event the registry emits, in emission order.
// Sinks must not call back into the registry; delivery happens while the
// registry lock is held. Sink failures are the sink's concern, the state
// change that produced the event stands regardless.
type EventSink interface {
	Append(ev Event)
}

// MemorySink buffers events in memory. It is the sink of choice in tests.
type MemorySink struct {
	Events []Event
}

func (s *MemorySink) Append(ev Event) {
	s.Events = append(s.Events, ev)
}

type nopSink struct{}

func (nopSink) Append(Event) {}

// LogSink mirrors events into a structured logger. It is meant to run next
// to a durable sink, fanned out through MultiSink.
type LogSink struct {
	Log zerolog.Logger
}

func (s LogSink) Append(ev Event) {
	s.Log.Info().
		Str("event", ev.Kind().String()).
		Interface("data", ev).
		Msg("registry event")
}

// MultiSink delivers every event to each sink in order.
type MultiSink []EventSink

func (s MultiSink) Append(ev Event) {
	for _, sink := range s {
		sink.Append(ev)
	}
}
