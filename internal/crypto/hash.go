package crypto

import (
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
)

const HashSize = 32

// Hash is a fixed-width blake2b-256 digest. The zero value doubles as the
// "absent" sentinel throughout the registry.
type Hash [HashSize]byte

// HashData hashes the input data using blake2b-256.
func HashData(data []byte) Hash {
	return blake2b.Sum256(data)
}

// IsZero reports whether the hash is the all-zero sentinel.
func (h Hash) IsZero() bool {
	return h == Hash{}
}

func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

// MarshalText renders the hash as lowercase hex, so JSON output carries
// hex strings instead of byte arrays.
func (h Hash) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

func (h *Hash) UnmarshalText(text []byte) error {
	b, err := hex.DecodeString(string(text))
	if err != nil {
		return err
	}
	if len(b) != HashSize {
		return hex.ErrLength
	}
	copy(h[:], b)
	return nil
}
