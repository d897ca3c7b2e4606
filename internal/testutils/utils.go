package testutils

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/seekernet/registry/internal/crypto"
	"github.com/seekernet/registry/internal/registry"
)

func RandomHash(t *testing.T) crypto.Hash {
	var hash crypto.Hash
	_, err := rand.Read(hash[:])
	require.NoError(t, err)
	return hash
}

func RandomQueryID(t *testing.T) registry.QueryID {
	var id registry.QueryID
	_, err := rand.Read(id[:])
	require.NoError(t, err)
	return id
}

func RandomRankerID(t *testing.T) registry.RankerID {
	var id registry.RankerID
	_, err := rand.Read(id[:])
	require.NoError(t, err)
	return id
}

func RandomIdentity(t *testing.T) registry.Identity {
	var id registry.Identity
	_, err := rand.Read(id[:])
	require.NoError(t, err)
	return id
}
