package pebble

import (
	"fmt"

	"github.com/cockroachdb/pebble"

	"github.com/seekernet/registry/pkg/db"
)

type Iterator struct {
	iter *pebble.Iterator

	// positioned distinguishes "not started" from "exhausted"; both leave
	// the underlying iterator invalid, but only the former may seek First.
	positioned bool
}

func (p *KVStore) NewIterator(start, end []byte) (db.Iterator, error) {
	iter, err := p.db.NewIter(&pebble.IterOptions{
		LowerBound: start,
		UpperBound: end,
	})
	if err != nil {
		return nil, fmt.Errorf(ErrInIteratorCreation, err)
	}
	return &Iterator{iter: iter}, nil
}

func (it *Iterator) Next() bool {
	// An un-positioned iterator starts at the first key
	if !it.positioned {
		it.positioned = true
		return it.iter.First()
	}
	return it.iter.Next()
}

func (it *Iterator) Key() []byte {
	key := it.iter.Key()
	result := make([]byte, len(key))
	copy(result, key)
	return result
}

func (it *Iterator) Value() ([]byte, error) {
	if !it.iter.Valid() {
		return nil, ErrIteratorInvalid
	}

	val, err := it.iter.ValueAndErr()
	if err != nil {
		return nil, fmt.Errorf(ErrIteratorValue, err)
	}

	result := make([]byte, len(val))
	copy(result, val)
	return result, nil
}

func (it *Iterator) Valid() bool {
	return it.iter.Valid()
}

func (it *Iterator) Close() error {
	return it.iter.Close()
}
