package db

// KVStore is the key-value storage surface the registry's stores are built
// on. Implementations must be safe for concurrent use.
type KVStore interface {
	Writer
	Get(key []byte) ([]byte, error)
	Delete(key []byte) error
	NewBatch() Batch
	NewIterator(start, end []byte) (Iterator, error)
	Close() error
}

type Writer interface {
	Put(key []byte, value []byte) error
}

// Batch is an atomic group of writes. Nothing is visible until Commit.
type Batch interface {
	Writer
	Delete(key []byte) error
	Commit() error
	Close() error
}

// Iterator walks a key range in ascending key order. Iterators must be
// closed after use.
type Iterator interface {
	Next() bool
	Key() []byte
	Value() ([]byte, error)
	Valid() bool
	Close() error
}
