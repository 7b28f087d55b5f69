// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2022 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	ldb_util "github.com/syndtr/goleveldb/leveldb/util"
)

// poolHandle - one prefix range of the database
type poolHandle struct {
	prefix   byte
	limit    []byte
	database *leveldb.DB
}

// element - a binary data item
type element struct {
	Key   []byte
	Value []byte
}

// prepend the prefix onto the key
func (p *poolHandle) prefixKey(key []byte) []byte {
	prefixedKey := make([]byte, 1, len(key)+1)
	prefixedKey[0] = p.prefix
	return append(prefixedKey, key...)
}

// queue a key/value pair for writing
func (p *poolHandle) put(batch *leveldb.Batch, key []byte, value []byte) {
	batch.Put(p.prefixKey(key), value)
}

// read a value for a given key
//
// returns nil, nil if the key does not exist
func (p *poolHandle) get(key []byte) ([]byte, error) {
	value, err := p.database.Get(p.prefixKey(key), nil)
	if leveldb.ErrNotFound == err {
		return nil, nil
	}
	if nil != err {
		return nil, errors.Wrapf(err, "pool: %c get key: %x", p.prefix, key)
	}
	return value, nil
}

// check if a key exists
func (p *poolHandle) has(key []byte) (bool, error) {
	found, err := p.database.Has(p.prefixKey(key), nil)
	if nil != err {
		return false, errors.Wrapf(err, "pool: %c has key: %x", p.prefix, key)
	}
	return found, nil
}

// get the last element in a pool
func (p *poolHandle) lastElement() (element, bool, error) {
	maxRange := ldb_util.Range{
		Start: []byte{p.prefix}, // Start of key range, included in the range
		Limit: p.limit,          // Limit of key range, excluded from the range
	}

	iter := p.database.NewIterator(&maxRange, nil)

	found := false
	result := element{}
	if iter.Last() {

		// contents of the returned slice must not be modified, and are
		// only valid until the next call to Next
		key := iter.Key()
		value := iter.Value()

		dataKey := make([]byte, len(key)-1) // strip the prefix
		copy(dataKey, key[1:])              // ...

		dataValue := make([]byte, len(value))
		copy(dataValue, value)

		result.Key = dataKey
		result.Value = dataValue
		found = true
	}
	iter.Release()
	if err := iter.Error(); nil != err {
		return element{}, false, errors.Wrapf(err, "pool: %c last element", p.prefix)
	}
	return result, found, nil
}
