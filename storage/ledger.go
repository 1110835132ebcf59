// SPDX-License-Identifier: ISC
// Copyright (c) 2026 Journalbase Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"sync"

	"github.com/syndtr/goleveldb/leveldb"

	"github.com/bitmark-inc/logger"

	"github.com/journalbase/journald/derivation"
	"github.com/journalbase/journald/fault"
	"github.com/journalbase/journald/identity"
	"github.com/journalbase/journald/ledger"
)

// Ledger - database backed ledger over the Entries and Funds pools
//
// a mutex serialises mutating operations; each mutation that touches
// both pools goes to the database as a single batch
type Ledger struct {
	sync.Mutex
	log *logger.L
}

// ensure the interface is satisfied
var _ ledger.Ledger = (*Ledger)(nil)

// NewLedger - create a ledger over the opened database
//
// storage.Initialise must have been called first
func NewLedger() *Ledger {
	return &Ledger{
		log: logger.New("storage"),
	}
}

func fundsKey(principal *identity.Identity) []byte {
	return principal.PublicKeyBytes()
}

// Exists - check for a record at an address
func (l *Ledger) Exists(address derivation.Address) bool {
	ok, err := Pool.Entries.Has(address[:])
	if nil != err {
		l.log.Errorf("exists: %x  error: %s", address, err)
		return false
	}
	return ok
}

// Data - fetch a copy of the stored bytes of a record
func (l *Ledger) Data(address derivation.Address) ([]byte, error) {
	data, err := Pool.Entries.Get(address[:])
	if nil != err {
		return nil, err
	}
	if nil == data {
		return nil, fault.RecordNotFound
	}
	result := make([]byte, len(data))
	copy(result, data)
	return result, nil
}

// Allocate - create a zero filled record funded by payer
func (l *Ledger) Allocate(address derivation.Address, size int, payer *identity.Identity) error {
	if nil == payer {
		return fault.InvalidItem
	}

	l.Lock()
	defer l.Unlock()

	exists, err := Pool.Entries.Has(address[:])
	if nil != err {
		return err
	}
	if exists {
		return fault.RecordAlreadyExists
	}

	balance, _, err := Pool.Funds.GetN(fundsKey(payer))
	if nil != err {
		return err
	}
	cost := ledger.LeaseCost(size)
	if balance < cost {
		return fault.PayerUnderfunded
	}

	data := make([]byte, size)

	batch := new(leveldb.Batch)
	Pool.Funds.putNToBatch(batch, fundsKey(payer), balance-cost)
	Pool.Entries.putToBatch(batch, address[:], data)
	err = applyBatch(batch)
	if nil != err {
		return err
	}

	Pool.Funds.cacheStoreN(fundsKey(payer), balance-cost)
	Pool.Entries.cacheStore(address[:], data)
	return nil
}

// Write - replace the record's bytes, size must be unchanged
func (l *Ledger) Write(address derivation.Address, data []byte) error {
	l.Lock()
	defer l.Unlock()

	current, err := Pool.Entries.Get(address[:])
	if nil != err {
		return err
	}
	if nil == current {
		return fault.RecordNotFound
	}
	if len(current) != len(data) {
		return fault.DataLengthMismatch
	}

	return Pool.Entries.Put(address[:], data)
}

// Resize - grow (zero filled) or shrink the record, adjusting the lease
func (l *Ledger) Resize(address derivation.Address, newSize int, funder *identity.Identity) error {
	if nil == funder {
		return fault.InvalidItem
	}

	l.Lock()
	defer l.Unlock()

	current, err := Pool.Entries.Get(address[:])
	if nil != err {
		return err
	}
	if nil == current {
		return fault.RecordNotFound
	}

	oldCost := ledger.LeaseCost(len(current))
	newCost := ledger.LeaseCost(newSize)

	balance, _, err := Pool.Funds.GetN(fundsKey(funder))
	if nil != err {
		return err
	}

	if newCost > oldCost {
		extra := newCost - oldCost
		if balance < extra {
			return fault.ResizeFailed
		}
		balance -= extra
	} else {
		balance += oldCost - newCost
	}

	// fresh buffer: any grown tail is zero before the store rewrites it
	resized := make([]byte, newSize)
	copy(resized, current)

	batch := new(leveldb.Batch)
	Pool.Funds.putNToBatch(batch, fundsKey(funder), balance)
	Pool.Entries.putToBatch(batch, address[:], resized)
	err = applyBatch(batch)
	if nil != err {
		return err
	}

	Pool.Funds.cacheStoreN(fundsKey(funder), balance)
	Pool.Entries.cacheStore(address[:], resized)
	return nil
}

// Release - remove the record and refund the whole lease
func (l *Ledger) Release(address derivation.Address, refundTo *identity.Identity) error {
	if nil == refundTo {
		return fault.InvalidItem
	}

	l.Lock()
	defer l.Unlock()

	current, err := Pool.Entries.Get(address[:])
	if nil != err {
		return err
	}
	if nil == current {
		return fault.RecordNotFound
	}

	balance, _, err := Pool.Funds.GetN(fundsKey(refundTo))
	if nil != err {
		return err
	}
	balance += ledger.LeaseCost(len(current))

	batch := new(leveldb.Batch)
	Pool.Funds.putNToBatch(batch, fundsKey(refundTo), balance)
	Pool.Entries.deleteFromBatch(batch, address[:])
	err = applyBatch(batch)
	if nil != err {
		return err
	}

	Pool.Funds.cacheStoreN(fundsKey(refundTo), balance)
	Pool.Entries.cacheRemove(address[:])
	return nil
}

// Balance - current funds of a principal
func (l *Ledger) Balance(principal *identity.Identity) uint64 {
	balance, _, err := Pool.Funds.GetN(fundsKey(principal))
	if nil != err {
		l.log.Errorf("balance: %x  error: %s", fundsKey(principal), err)
		return 0
	}
	return balance
}

// Deposit - add funds to a principal
func (l *Ledger) Deposit(principal *identity.Identity, amount uint64) {
	l.Lock()
	defer l.Unlock()

	balance, _, err := Pool.Funds.GetN(fundsKey(principal))
	if nil != err {
		l.log.Errorf("deposit read: %x  error: %s", fundsKey(principal), err)
		return
	}
	err = Pool.Funds.PutN(fundsKey(principal), balance+amount)
	if nil != err {
		l.log.Errorf("deposit write: %x  error: %s", fundsKey(principal), err)
	}
}
