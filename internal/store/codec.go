package store

import (
	"encoding/binary"
	"fmt"

	"github.com/seekernet/registry/internal/crypto"
	"github.com/seekernet/registry/internal/registry"
	"github.com/seekernet/registry/internal/ticktime"
)

// Journal records use a fixed-width binary layout: one kind byte, the
// tick/epoch stamp, then the kind-specific fields in declaration order.
// All integers are little-endian.

func encodeEvent(ev registry.Event) ([]byte, error) {
	buf := []byte{byte(ev.Kind())}

	appendMeta := func(m registry.EventMeta) {
		buf = binary.LittleEndian.AppendUint64(buf, uint64(m.Tick))
		buf = binary.LittleEndian.AppendUint64(buf, uint64(m.Epoch))
	}

	switch e := ev.(type) {
	case registry.EpochAdvanced:
		appendMeta(e.EventMeta)
		buf = binary.LittleEndian.AppendUint64(buf, uint64(e.Previous))
		buf = binary.LittleEndian.AppendUint64(buf, uint64(e.Current))
	case registry.QueryRegistered:
		appendMeta(e.EventMeta)
		buf = append(buf, e.ID[:]...)
		buf = append(buf, e.Submitter[:]...)
		buf = append(buf, e.Tier)
		buf = append(buf, e.PayloadRef[:]...)
	case registry.ResultStored:
		appendMeta(e.EventMeta)
		buf = append(buf, e.ID[:]...)
		buf = append(buf, e.ResultRef[:]...)
	case registry.RankerAttested:
		appendMeta(e.EventMeta)
		buf = append(buf, e.Slot)
		buf = append(buf, e.RankerID[:]...)
		buf = append(buf, e.ConfigRef[:]...)
	case registry.RankerDeactivated:
		appendMeta(e.EventMeta)
		buf = append(buf, e.Slot)
	case registry.PoolToppedUp:
		appendMeta(e.EventMeta)
		buf = append(buf, e.Caller[:]...)
		buf = binary.LittleEndian.AppendUint64(buf, e.Amount)
		buf = binary.LittleEndian.AppendUint64(buf, e.NewBalance)
	default:
		return nil, fmt.Errorf("encode event: unknown kind %d", ev.Kind())
	}
	return buf, nil
}

func decodeEvent(data []byte) (registry.Event, error) {
	const metaSize = 16
	if len(data) < 1+metaSize {
		return nil, fmt.Errorf("decode event: record too short (%d bytes)", len(data))
	}
	kind := registry.EventKind(data[0])
	meta := registry.EventMeta{
		Tick:  ticktime.Tick(binary.LittleEndian.Uint64(data[1:])),
		Epoch: ticktime.Epoch(binary.LittleEndian.Uint64(data[9:])),
	}
	rest := data[1+metaSize:]

	fail := func() (registry.Event, error) {
		return nil, fmt.Errorf("decode event: malformed %s record (%d bytes)", kind, len(data))
	}

	switch kind {
	case registry.EventEpochAdvanced:
		if len(rest) != 16 {
			return fail()
		}
		return registry.EpochAdvanced{
			EventMeta: meta,
			Previous:  ticktime.Epoch(binary.LittleEndian.Uint64(rest[0:])),
			Current:   ticktime.Epoch(binary.LittleEndian.Uint64(rest[8:])),
		}, nil
	case registry.EventQueryRegistered:
		if len(rest) != 32+20+1+32 {
			return fail()
		}
		ev := registry.QueryRegistered{EventMeta: meta, Tier: rest[52]}
		copy(ev.ID[:], rest[0:32])
		copy(ev.Submitter[:], rest[32:52])
		copy(ev.PayloadRef[:], rest[53:])
		return ev, nil
	case registry.EventResultStored:
		if len(rest) != 64 {
			return fail()
		}
		ev := registry.ResultStored{EventMeta: meta}
		copy(ev.ID[:], rest[0:32])
		copy(ev.ResultRef[:], rest[32:])
		return ev, nil
	case registry.EventRankerAttested:
		if len(rest) != 1+32+crypto.HashSize {
			return fail()
		}
		ev := registry.RankerAttested{EventMeta: meta, Slot: rest[0]}
		copy(ev.RankerID[:], rest[1:33])
		copy(ev.ConfigRef[:], rest[33:])
		return ev, nil
	case registry.EventRankerDeactivated:
		if len(rest) != 1 {
			return fail()
		}
		return registry.RankerDeactivated{EventMeta: meta, Slot: rest[0]}, nil
	case registry.EventPoolToppedUp:
		if len(rest) != 20+16 {
			return fail()
		}
		ev := registry.PoolToppedUp{
			EventMeta:  meta,
			Amount:     binary.LittleEndian.Uint64(rest[20:]),
			NewBalance: binary.LittleEndian.Uint64(rest[28:]),
		}
		copy(ev.Caller[:], rest[0:20])
		return ev, nil
	default:
		return nil, fmt.Errorf("decode event: unknown kind %d", kind)
	}
}
