package store

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seekernet/registry/internal/registry"
	"github.com/seekernet/registry/internal/testutils"
	"github.com/seekernet/registry/internal/ticktime"
	"github.com/seekernet/registry/pkg/db/pebble"
)

func sampleEvents(t *testing.T) []registry.Event {
	return []registry.Event{
		registry.EpochAdvanced{
			EventMeta: registry.EventMeta{Tick: 1200, Epoch: 1},
			Previous:  0,
			Current:   1,
		},
		registry.QueryRegistered{
			EventMeta:  registry.EventMeta{Tick: 1201, Epoch: 1},
			ID:         testutils.RandomQueryID(t),
			Submitter:  testutils.RandomIdentity(t),
			Tier:       3,
			PayloadRef: testutils.RandomHash(t),
		},
		registry.ResultStored{
			EventMeta: registry.EventMeta{Tick: 1202, Epoch: 1},
			ID:        testutils.RandomQueryID(t),
			ResultRef: testutils.RandomHash(t),
		},
		registry.RankerAttested{
			EventMeta: registry.EventMeta{Tick: 1203, Epoch: 1},
			Slot:      15,
			RankerID:  testutils.RandomRankerID(t),
			ConfigRef: testutils.RandomHash(t),
		},
		registry.RankerDeactivated{
			EventMeta: registry.EventMeta{Tick: 1204, Epoch: 1},
			Slot:      15,
		},
		registry.PoolToppedUp{
			EventMeta:  registry.EventMeta{Tick: 1205, Epoch: 1},
			Caller:     testutils.RandomIdentity(t),
			Amount:     42,
			NewBalance: 42,
		},
	}
}

func TestJournalAppendReplay(t *testing.T) {
	kv, err := pebble.NewKVStore()
	require.NoError(t, err)
	defer kv.Close()

	journal, err := NewJournal(kv)
	require.NoError(t, err)

	events := sampleEvents(t)
	for _, ev := range events {
		journal.Append(ev)
	}
	require.Equal(t, uint64(len(events)), journal.Len())

	var got []registry.Event
	err = journal.Replay(0, func(seq uint64, ev registry.Event) error {
		require.Equal(t, uint64(len(got)), seq)
		got = append(got, ev)
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, events, got)
}

func TestJournalReplayFromOffset(t *testing.T) {
	kv, err := pebble.NewKVStore()
	require.NoError(t, err)
	defer kv.Close()

	journal, err := NewJournal(kv)
	require.NoError(t, err)

	events := sampleEvents(t)
	for _, ev := range events {
		journal.Append(ev)
	}

	var seqs []uint64
	err = journal.Replay(4, func(seq uint64, ev registry.Event) error {
		seqs = append(seqs, seq)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []uint64{4, 5}, seqs)
}

func TestJournalReplayStops(t *testing.T) {
	kv, err := pebble.NewKVStore()
	require.NoError(t, err)
	defer kv.Close()

	journal, err := NewJournal(kv)
	require.NoError(t, err)
	for _, ev := range sampleEvents(t) {
		journal.Append(ev)
	}

	stop := errors.New("stop")
	var n int
	err = journal.Replay(0, func(seq uint64, ev registry.Event) error {
		n++
		if n == 2 {
			return stop
		}
		return nil
	})
	require.ErrorIs(t, err, stop)
	assert.Equal(t, 2, n)
}

func TestJournalResumesSequence(t *testing.T) {
	kv, err := pebble.NewKVStore()
	require.NoError(t, err)
	defer kv.Close()

	journal, err := NewJournal(kv)
	require.NoError(t, err)
	for _, ev := range sampleEvents(t) {
		journal.Append(ev)
	}

	// A second journal over the same store picks up where the first left off.
	reopened, err := NewJournal(kv)
	require.NoError(t, err)
	require.Equal(t, journal.Len(), reopened.Len())

	reopened.Append(registry.PoolToppedUp{
		EventMeta:  registry.EventMeta{Tick: 9999, Epoch: 2},
		Amount:     1,
		NewBalance: 43,
	})
	require.Equal(t, journal.Len()+1, reopened.Len())

	var last registry.Event
	err = reopened.Replay(0, func(seq uint64, ev registry.Event) error {
		last = ev
		return nil
	})
	require.NoError(t, err)
	topped, ok := last.(registry.PoolToppedUp)
	require.True(t, ok)
	assert.Equal(t, ticktime.Tick(9999), topped.Tick)
}

func TestJournalAsRegistrySink(t *testing.T) {
	kv, err := pebble.NewKVStore()
	require.NoError(t, err)
	defer kv.Close()

	journal, err := NewJournal(kv)
	require.NoError(t, err)

	keeper := registry.Identity{0x01}
	clock := ticktime.NewManualClock(1)
	reg, err := registry.New(registry.Config{
		ChainID: "seekernet-test",
		Clock:   clock,
		Auth: registry.NewStaticAuthorizer(map[registry.Identity]registry.Role{
			keeper: registry.RoleKeeper,
		}),
		Sink: journal,
	})
	require.NoError(t, err)

	id := testutils.RandomQueryID(t)
	payload := testutils.RandomHash(t)
	require.NoError(t, reg.RegisterQuery(keeper, id, 2, payload))
	require.NoError(t, reg.TopUp(keeper, 7))

	var kinds []registry.EventKind
	err = journal.Replay(0, func(seq uint64, ev registry.Event) error {
		kinds = append(kinds, ev.Kind())
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []registry.EventKind{
		registry.EventQueryRegistered,
		registry.EventPoolToppedUp,
	}, kinds)
}

func TestDecodeRejectsMalformed(t *testing.T) {
	_, err := decodeEvent(nil)
	require.Error(t, err)

	_, err = decodeEvent([]byte{0xff, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0})
	require.Error(t, err)

	data, err := encodeEvent(registry.RankerDeactivated{Slot: 3})
	require.NoError(t, err)
	_, err = decodeEvent(data[:len(data)-1])
	require.Error(t, err)
}
