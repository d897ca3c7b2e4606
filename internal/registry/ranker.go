package registry

import (
	"encoding/hex"

	"github.com/seekernet/registry/internal/crypto"
	"github.com/seekernet/registry/internal/ticktime"
)

// RankerSlots is the fixed size of the ranker attestation table.
const RankerSlots = 16

// RankerID identifies a ranker. No uniqueness is enforced across slots: the
// same ranker may legitimately occupy several slots at once.
type RankerID [32]byte

func (id RankerID) String() string {
	return hex.EncodeToString(id[:])
}

func (id RankerID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// RankerSlot is one entry of the attestation table. Attestation overwrites
// the whole slot; deactivation clears only Active, leaving the rest in place
// for audit.
type RankerSlot struct {
	RankerID       RankerID
	ConfigRef      crypto.Hash
	AttestedAtTick ticktime.Tick
	Active         bool
}
