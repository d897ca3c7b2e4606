package store

import "encoding/binary"

// Prefix constants for all store types
const (
	prefixEvent byte = iota + 1
)

// makeEventKey creates a key for one journal entry. Sequence numbers are
// big-endian so that lexicographic key order is emission order.
func makeEventKey(seq uint64) []byte {
	key := make([]byte, 9)
	key[0] = prefixEvent
	binary.BigEndian.PutUint64(key[1:], seq)
	return key
}
