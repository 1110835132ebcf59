// SPDX-License-Identifier: ISC
// Copyright (c) 2026 Journalbase Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"

	"github.com/syndtr/goleveldb/leveldb"

	"github.com/journalbase/journald/fault"
)

// PoolHandle - represents a pool of key/value pairs on one prefix
type PoolHandle struct {
	prefix byte
}

// prepend the prefix onto the key
func (p *PoolHandle) prefixKey(key []byte) []byte {
	prefixedKey := make([]byte, 1, len(key)+1)
	prefixedKey[0] = p.prefix
	return append(prefixedKey, key...)
}

// Put - store a key/value bytes pair to the database
func (p *PoolHandle) Put(key []byte, value []byte) error {
	poolData.RLock()
	defer poolData.RUnlock()
	if nil == poolData.db {
		return fault.NotInitialised
	}
	err := poolData.db.Put(p.prefixKey(key), value, nil)
	if nil != err {
		return err
	}
	poolData.cache.Set(dbPut, string(p.prefixKey(key)), value)
	return nil
}

// Delete - remove a key from the database
func (p *PoolHandle) Delete(key []byte) error {
	poolData.RLock()
	defer poolData.RUnlock()
	if nil == poolData.db {
		return fault.NotInitialised
	}
	err := poolData.db.Delete(p.prefixKey(key), nil)
	if nil != err {
		return err
	}
	poolData.cache.Set(dbDelete, string(p.prefixKey(key)), nil)
	return nil
}

// Get - read a value for a given key
//
// returns nil if the key is not present
func (p *PoolHandle) Get(key []byte) ([]byte, error) {
	poolData.RLock()
	defer poolData.RUnlock()
	if nil == poolData.db {
		return nil, fault.NotInitialised
	}

	cacheKey := string(p.prefixKey(key))
	if value, found := poolData.cache.Get(cacheKey); found {
		return value, nil
	}

	value, err := poolData.db.Get(p.prefixKey(key), nil)
	if leveldb.ErrNotFound == err {
		return nil, nil
	} else if nil != err {
		return nil, err
	}
	poolData.cache.Set(dbPut, cacheKey, value)
	return value, nil
}

// GetN - read a record and decode first 8 bytes as big endian uint64
//
// second return is false if the record was not found
func (p *PoolHandle) GetN(key []byte) (uint64, bool, error) {
	buffer, err := p.Get(key)
	if nil != err {
		return 0, false, err
	}
	if nil == buffer {
		return 0, false, nil
	}
	if len(buffer) < 8 {
		return 0, false, fault.DataLengthMismatch
	}
	n := binary.BigEndian.Uint64(buffer[:8])
	return n, true, nil
}

// PutN - store an 8 byte big endian uint64 under a key
func (p *PoolHandle) PutN(key []byte, value uint64) error {
	buffer := make([]byte, 8)
	binary.BigEndian.PutUint64(buffer, value)
	return p.Put(key, buffer)
}

// Has - check if a key exists
func (p *PoolHandle) Has(key []byte) (bool, error) {
	poolData.RLock()
	defer poolData.RUnlock()
	if nil == poolData.db {
		return false, fault.NotInitialised
	}

	if _, found := poolData.cache.Get(string(p.prefixKey(key))); found {
		return true, nil
	}

	return poolData.db.Has(p.prefixKey(key), nil)
}

// batch forms of the above
//
// the batch is applied by applyBatch; the cache entries are only
// updated after a successful apply so a failed batch is invisible

func (p *PoolHandle) putToBatch(batch *leveldb.Batch, key []byte, value []byte) {
	batch.Put(p.prefixKey(key), value)
}

func (p *PoolHandle) putNToBatch(batch *leveldb.Batch, key []byte, value uint64) {
	buffer := make([]byte, 8)
	binary.BigEndian.PutUint64(buffer, value)
	batch.Put(p.prefixKey(key), buffer)
}

func (p *PoolHandle) deleteFromBatch(batch *leveldb.Batch, key []byte) {
	batch.Delete(p.prefixKey(key))
}

func (p *PoolHandle) cacheStore(key []byte, value []byte) {
	poolData.cache.Set(dbPut, string(p.prefixKey(key)), value)
}

func (p *PoolHandle) cacheStoreN(key []byte, value uint64) {
	buffer := make([]byte, 8)
	binary.BigEndian.PutUint64(buffer, value)
	p.cacheStore(key, buffer)
}

func (p *PoolHandle) cacheRemove(key []byte) {
	poolData.cache.Set(dbDelete, string(p.prefixKey(key)), nil)
}

// applyBatch - atomically commit a set of puts and deletes
func applyBatch(batch *leveldb.Batch) error {
	poolData.RLock()
	defer poolData.RUnlock()
	if nil == poolData.db {
		return fault.NotInitialised
	}
	return poolData.db.Write(batch, nil)
}
