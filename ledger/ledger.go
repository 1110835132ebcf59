// SPDX-License-Identifier: ISC
// Copyright (c) 2026 Journalbase Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ledger - the host runtime's account storage and funding
//
// The record store never talks to storage directly; it is handed a
// Ledger.  Allocation takes a lease deposit sized to the byte
// footprint, resize adjusts the deposit, release refunds it in full.
// Implementations must make each call atomic: a failed call leaves no
// partial state.
package ledger

import (
	"github.com/journalbase/journald/derivation"
	"github.com/journalbase/journald/identity"
)

// lease pricing: a flat charge plus a per byte charge
const (
	leaseBaseCost    = 1000
	leasePerByteCost = 10
)

// Ledger - injected host storage and funding interface
type Ledger interface {

	// Exists - check for a record at an address
	Exists(address derivation.Address) bool

	// Data - fetch the stored bytes of a record
	// fails with RecordNotFound if the address is vacant
	Data(address derivation.Address) ([]byte, error)

	// Allocate - create a record of exactly size bytes, zero filled,
	// funded by a lease debited from payer
	// fails with RecordAlreadyExists or PayerUnderfunded
	Allocate(address derivation.Address, size int, payer *identity.Identity) error

	// Write - replace the record's bytes; the length must equal the
	// currently allocated size
	// fails with RecordNotFound or DataLengthMismatch
	Write(address derivation.Address, data []byte) error

	// Resize - grow or shrink the record to exactly newSize bytes
	// growth is zero filled and the extra lease is debited from funder;
	// shrink refunds the excess lease to funder
	// fails with RecordNotFound or ResizeFailed
	Resize(address derivation.Address, newSize int, funder *identity.Identity) error

	// Release - remove the record and refund the whole lease to refundTo
	// fails with RecordNotFound
	Release(address derivation.Address, refundTo *identity.Identity) error

	// Balance - current funds of a principal
	Balance(principal *identity.Identity) uint64

	// Deposit - add funds to a principal
	Deposit(principal *identity.Identity, amount uint64)
}

// LeaseCost - the deposit required to hold size bytes
func LeaseCost(size int) uint64 {
	return leaseBaseCost + leasePerByteCost*uint64(size)
}
