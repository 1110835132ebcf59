// SPDX-License-Identifier: ISC
// Copyright (c) 2026 Journalbase Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"sync"

	"github.com/journalbase/journald/derivation"
	"github.com/journalbase/journald/fault"
	"github.com/journalbase/journald/identity"
)

// Memory - in-process reference ledger
//
// one mutex serialises every operation, which is exactly the host's
// per-address write lock collapsed to a single lock; good enough for
// tests and local single-node use
type Memory struct {
	sync.Mutex
	accounts map[derivation.Address][]byte
	funds    map[string]uint64
}

// NewMemory - create an empty in-memory ledger
func NewMemory() *Memory {
	return &Memory{
		accounts: make(map[derivation.Address][]byte),
		funds:    make(map[string]uint64),
	}
}

// Exists - check for a record at an address
func (m *Memory) Exists(address derivation.Address) bool {
	m.Lock()
	defer m.Unlock()
	_, ok := m.accounts[address]
	return ok
}

// Data - fetch a copy of the stored bytes of a record
func (m *Memory) Data(address derivation.Address) ([]byte, error) {
	m.Lock()
	defer m.Unlock()
	data, ok := m.accounts[address]
	if !ok {
		return nil, fault.RecordNotFound
	}
	result := make([]byte, len(data))
	copy(result, data)
	return result, nil
}

// Allocate - create a zero filled record funded by payer
func (m *Memory) Allocate(address derivation.Address, size int, payer *identity.Identity) error {
	if nil == payer {
		return fault.InvalidItem
	}

	m.Lock()
	defer m.Unlock()

	if _, ok := m.accounts[address]; ok {
		return fault.RecordAlreadyExists
	}

	cost := LeaseCost(size)
	key := fundsKey(payer)
	if m.funds[key] < cost {
		return fault.PayerUnderfunded
	}
	m.funds[key] -= cost
	m.accounts[address] = make([]byte, size)
	return nil
}

// Write - replace the record's bytes, size must be unchanged
func (m *Memory) Write(address derivation.Address, data []byte) error {
	m.Lock()
	defer m.Unlock()

	current, ok := m.accounts[address]
	if !ok {
		return fault.RecordNotFound
	}
	if len(current) != len(data) {
		return fault.DataLengthMismatch
	}

	stored := make([]byte, len(data))
	copy(stored, data)
	m.accounts[address] = stored
	return nil
}

// Resize - grow (zero filled) or shrink the record, adjusting the lease
func (m *Memory) Resize(address derivation.Address, newSize int, funder *identity.Identity) error {
	if nil == funder {
		return fault.InvalidItem
	}

	m.Lock()
	defer m.Unlock()

	current, ok := m.accounts[address]
	if !ok {
		return fault.RecordNotFound
	}

	oldCost := LeaseCost(len(current))
	newCost := LeaseCost(newSize)
	key := fundsKey(funder)

	if newCost > oldCost {
		extra := newCost - oldCost
		if m.funds[key] < extra {
			return fault.ResizeFailed
		}
		m.funds[key] -= extra
	} else {
		m.funds[key] += oldCost - newCost
	}

	// fresh buffer: any grown tail is zero before the store rewrites it
	resized := make([]byte, newSize)
	copy(resized, current)
	m.accounts[address] = resized
	return nil
}

// Release - remove the record and refund the whole lease
func (m *Memory) Release(address derivation.Address, refundTo *identity.Identity) error {
	if nil == refundTo {
		return fault.InvalidItem
	}

	m.Lock()
	defer m.Unlock()

	current, ok := m.accounts[address]
	if !ok {
		return fault.RecordNotFound
	}

	m.funds[fundsKey(refundTo)] += LeaseCost(len(current))
	delete(m.accounts, address)
	return nil
}

// Balance - current funds of a principal
func (m *Memory) Balance(principal *identity.Identity) uint64 {
	m.Lock()
	defer m.Unlock()
	return m.funds[fundsKey(principal)]
}

// Deposit - add funds to a principal
func (m *Memory) Deposit(principal *identity.Identity, amount uint64) {
	m.Lock()
	defer m.Unlock()
	m.funds[fundsKey(principal)] += amount
}

func fundsKey(principal *identity.Identity) string {
	return string(principal.PublicKeyBytes())
}
