package registry

import (
	"encoding/binary"
	"time"

	"github.com/seekernet/registry/internal/crypto"
	"github.com/seekernet/registry/internal/ticktime"
)

// digestDomain is the fixed 32-byte domain separation tag mixed into every
// discovery digest.
var digestDomain = crypto.HashData([]byte("seekernet.registry.discovery.v1"))

// seedDomain separates seed derivation from digest computation.
var seedDomain = crypto.HashData([]byte("seekernet.registry.seed.v1"))

// deriveSeed fixes the digest seed at construction time from the chain
// identity, a randomness beacon output, the wall clock and a recent block
// hash. It is captured exactly once and never recomputed.
func deriveSeed(cfg Config) crypto.Hash {
	buf := make([]byte, 0, 2*crypto.HashSize+len(cfg.ChainID)+crypto.HashSize+8)
	buf = append(buf, seedDomain[:]...)
	buf = append(buf, cfg.ChainID...)
	buf = append(buf, cfg.Beacon[:]...)
	buf = binary.LittleEndian.AppendUint64(buf, uint64(time.Now().UnixNano()))
	buf = append(buf, cfg.RecentBlockHash[:]...)
	return crypto.HashData(buf)
}

// Digest derives the discovery digest: a deterministic fingerprint of the
// registry's live counters under the fixed domain tag and the construction
// seed. It is recomputed on every call and never cached. The digest is
// informational; nothing inside the registry depends on it.
func (r *Registry) Digest() crypto.Hash {
	r.mu.RLock()
	defer r.mu.RUnlock()

	now := r.clock.CurrentTick()

	buf := make([]byte, 0, 2*crypto.HashSize+6*8)
	buf = append(buf, digestDomain[:]...)
	buf = append(buf, r.seed[:]...)
	buf = binary.LittleEndian.AppendUint64(buf, r.totalQueries)
	buf = binary.LittleEndian.AppendUint64(buf, uint64(r.currentEpoch))
	buf = binary.LittleEndian.AppendUint64(buf, uint64(ticktime.EpochAt(now, r.genesis)))
	buf = binary.LittleEndian.AppendUint64(buf, uint64(r.genesis))
	buf = binary.LittleEndian.AppendUint64(buf, uint64(now))
	buf = binary.LittleEndian.AppendUint64(buf, r.poolBalance)
	return crypto.HashData(buf)
}
