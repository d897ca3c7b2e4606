package pebble

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seekernet/registry/pkg/db"
)

func TestKVStore(t *testing.T) {
	tests := []struct {
		name string
		fn   func(t *testing.T, store db.KVStore)
	}{
		{
			name: "basic_put_get",
			fn:   testBasicPutGet,
		},
		{
			name: "missing_key",
			fn:   testMissingKey,
		},
		{
			name: "delete_operations",
			fn:   testDelete,
		},
		{
			name: "store_closure",
			fn:   testStoreClosure,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store, err := NewKVStore()
			require.NoError(t, err)
			defer store.Close()

			tc.fn(t, store)
		})
	}
}

func testBasicPutGet(t *testing.T, store db.KVStore) {
	key := []byte("test-key")
	value := []byte("test-value")

	err := store.Put(key, value)
	require.NoError(t, err)

	retrieved, err := store.Get(key)
	require.NoError(t, err)
	assert.Equal(t, value, retrieved)
}

func testMissingKey(t *testing.T, store db.KVStore) {
	_, err := store.Get([]byte("no-such-key"))
	require.ErrorIs(t, err, ErrNotFound)
}

func testDelete(t *testing.T, store db.KVStore) {
	key := []byte("test-key")
	value := []byte("test-value")

	require.NoError(t, store.Put(key, value))
	require.NoError(t, store.Delete(key))

	_, err := store.Get(key)
	require.ErrorIs(t, err, ErrNotFound)

	// Deleting a missing key is not an error.
	require.NoError(t, store.Delete([]byte("no-such-key")))
}

func testStoreClosure(t *testing.T, store db.KVStore) {
	require.NoError(t, store.Close())

	err := store.Put([]byte("k"), []byte("v"))
	require.ErrorIs(t, err, ErrClosed)

	_, err = store.Get([]byte("k"))
	require.ErrorIs(t, err, ErrClosed)

	// Closing twice is a no-op.
	require.NoError(t, store.Close())
}
