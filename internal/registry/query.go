package registry

import (
	"encoding/hex"

	"github.com/seekernet/registry/internal/crypto"
	"github.com/seekernet/registry/internal/ticktime"
)

const (
	// MaxQueriesPerEpoch bounds how many queries the keeper can register
	// within a single epoch.
	MaxQueriesPerEpoch = 256

	// MaxTier is the highest meaningful query tier. Supplied tiers above it
	// are normalized to 0 rather than rejected.
	MaxTier = 7
)

// QueryID identifies a discovery query. The all-zero value is invalid and
// rejected at registration.
type QueryID [32]byte

func (id QueryID) IsZero() bool {
	return id == QueryID{}
}

func (id QueryID) String() string {
	return hex.EncodeToString(id[:])
}

func (id QueryID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// QueryRecord is the registry's entry for one registered query. Records are
// immutable once created, except for ResultStored which flips false to true
// exactly once.
type QueryRecord struct {
	Submitter        Identity
	Tier             uint8
	Epoch            ticktime.Epoch
	RegisteredAtTick ticktime.Tick // 0 means the record does not exist
	PayloadRef       crypto.Hash
	ResultStored     bool
}

// QuerySummary is the reduced form served by the reporting layer.
type QuerySummary struct {
	Tier         uint8
	Epoch        ticktime.Epoch
	ResultStored bool
}

func (r QueryRecord) Summary() QuerySummary {
	return QuerySummary{
		Tier:         r.Tier,
		Epoch:        r.Epoch,
		ResultStored: r.ResultStored,
	}
}

// normalizeTier clamps out-of-range tiers to 0. Silent normalization, not a
// rejection.
func normalizeTier(tier uint8) uint8 {
	if tier > MaxTier {
		return 0
	}
	return tier
}
