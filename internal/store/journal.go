package store

import (
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/seekernet/registry/internal/registry"
	"github.com/seekernet/registry/pkg/db"
	"github.com/seekernet/registry/pkg/log"
)

// Journal is the durable audit trail: an append-only sequence of the events
// the registry emits, persisted through a KVStore. It implements
// registry.EventSink.
//
// Append runs while the registry holds its lock, so it must not fail the
// operation that produced the event; write errors are logged and the
// sequence number is not consumed.
type Journal struct {
	kv  db.KVStore
	log zerolog.Logger

	mu   sync.Mutex
	next uint64
}

// NewJournal opens a journal over the given store, resuming the sequence
// after the last persisted entry.
func NewJournal(kv db.KVStore) (*Journal, error) {
	j := &Journal{kv: kv, log: log.Store}

	iter, err := kv.NewIterator(makeEventKey(0), []byte{prefixEvent + 1})
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	defer iter.Close() //nolint:errcheck

	for iter.Next() {
		key := iter.Key()
		if len(key) == 9 {
			j.next = binary.BigEndian.Uint64(key[1:]) + 1
		}
	}
	return j, nil
}

// Append persists one event under the next sequence number.
func (j *Journal) Append(ev registry.Event) {
	j.mu.Lock()
	defer j.mu.Unlock()

	data, err := encodeEvent(ev)
	if err != nil {
		j.log.Error().Err(err).Str("kind", ev.Kind().String()).Msg("journal: drop unencodable event")
		return
	}
	if err := j.kv.Put(makeEventKey(j.next), data); err != nil {
		j.log.Error().Err(err).Uint64("seq", j.next).Msg("journal: write failed")
		return
	}
	j.next++
}

// Len returns the number of persisted entries.
func (j *Journal) Len() uint64 {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.next
}

// Replay streams persisted events in emission order, starting at the given
// sequence number. The callback may stop the replay by returning an error,
// which is passed through.
func (j *Journal) Replay(from uint64, fn func(seq uint64, ev registry.Event) error) error {
	iter, err := j.kv.NewIterator(makeEventKey(from), []byte{prefixEvent + 1})
	if err != nil {
		return fmt.Errorf("replay journal: %w", err)
	}
	defer iter.Close() //nolint:errcheck

	for iter.Next() {
		key := iter.Key()
		if len(key) != 9 {
			continue
		}
		seq := binary.BigEndian.Uint64(key[1:])

		data, err := iter.Value()
		if err != nil {
			return fmt.Errorf("replay journal: read seq %d: %w", seq, err)
		}
		ev, err := decodeEvent(data)
		if err != nil {
			return fmt.Errorf("replay journal: seq %d: %w", seq, err)
		}
		if err := fn(seq, ev); err != nil {
			return err
		}
	}
	return nil
}
