package pebble

import (
	"sync/atomic"

	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/vfs"
)

// KVStore is a pebble-backed implementation of db.KVStore.
type KVStore struct {
	db     *pebble.DB
	closed atomic.Bool
}

// NewKVStore opens an in-memory store. Used by tests and by tooling that
// does not need the data to survive the process.
func NewKVStore() (*KVStore, error) {
	db, err := pebble.Open("", &pebble.Options{FS: vfs.NewMem()})
	if err != nil {
		return nil, err
	}
	return &KVStore{db: db}, nil
}

// NewPersistentKVStore opens (or creates) an on-disk store at path.
func NewPersistentKVStore(path string) (*KVStore, error) {
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, err
	}
	return &KVStore{db: db}, nil
}

func (p *KVStore) Get(key []byte) ([]byte, error) {
	if p.closed.Load() {
		return nil, ErrClosed
	}
	value, closer, err := p.db.Get(key)
	if err == pebble.ErrNotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	defer closer.Close()

	result := make([]byte, len(value))
	copy(result, value)
	return result, nil
}

func (p *KVStore) Put(key, value []byte) error {
	if p.closed.Load() {
		return ErrClosed
	}
	return p.db.Set(key, value, pebble.Sync)
}

func (p *KVStore) Delete(key []byte) error {
	if p.closed.Load() {
		return ErrClosed
	}
	return p.db.Delete(key, pebble.Sync)
}

func (p *KVStore) Close() error {
	if !p.closed.CompareAndSwap(false, true) {
		return nil
	}
	return p.db.Close()
}
