// SPDX-License-Identifier: ISC
// Copyright (c) 2026 Journalbase Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package store - the journal record store
//
// every operation runs the same way: derive the record address from
// owner and title, check the required signature, then mutate the
// ledger; nothing is touched before authorization succeeds
package store

import (
	"github.com/bitmark-inc/logger"

	"github.com/journalbase/journald/derivation"
	"github.com/journalbase/journald/entryrecord"
	"github.com/journalbase/journald/fault"
	"github.com/journalbase/journald/identity"
	"github.com/journalbase/journald/ledger"
)

// Store - journal operations over an injected ledger
type Store struct {
	log    *logger.L
	ledger ledger.Ledger
}

// New - create a store over a ledger
func New(log *logger.L, l ledger.Ledger) *Store {
	return &Store{
		log:    log,
		ledger: l,
	}
}

// Create - allocate and write a new journal entry
//
// creation is idempotent: if a record already exists at the derived
// address the call succeeds without touching it, even if the incoming
// message differs from the stored one
func (s *Store) Create(instruction *entryrecord.EntryCreation) (derivation.Address, derivation.Nonce, error) {
	if nil == instruction || nil == instruction.Payer || nil == instruction.Owner {
		return derivation.Address{}, 0, fault.MissingParameters
	}

	address, nonce, err := derivation.Derive(instruction.Owner, instruction.Title)
	if nil != err {
		return derivation.Address{}, 0, err
	}

	base, err := instruction.Base()
	if nil != err {
		return derivation.Address{}, 0, err
	}
	err = Authorize(instruction.Payer, base, []Signer{{
		Identity:  instruction.Payer,
		Signature: instruction.Signature,
	}})
	if nil != err {
		return derivation.Address{}, 0, err
	}

	if s.ledger.Exists(address) {
		s.log.Infof("create noop: %q already stored at: %s", instruction.Title, address)
		return address, nonce, nil
	}

	record := entryrecord.JournalEntry{
		Owner:   instruction.Owner,
		Title:   instruction.Title,
		Message: instruction.Message,
	}
	packed, err := record.Pack()
	if nil != err {
		return derivation.Address{}, 0, err
	}

	err = s.ledger.Allocate(address, len(packed), instruction.Payer)
	if nil != err {
		return derivation.Address{}, 0, err
	}
	err = s.ledger.Write(address, packed)
	if nil != err {
		return derivation.Address{}, 0, err
	}

	s.log.Infof("create: %q message: %q at: %s size: %d", instruction.Title, instruction.Message, address, len(packed))
	return address, nonce, nil
}

// Update - replace the message of an existing entry
//
// the record is resized to fit the new message; growth that cannot be
// funded fails with ResizeFailed and leaves the record unchanged
func (s *Store) Update(instruction *entryrecord.EntryAmendment) (derivation.Address, derivation.Nonce, error) {
	if nil == instruction || nil == instruction.Owner {
		return derivation.Address{}, 0, fault.MissingParameters
	}

	address, nonce, err := derivation.Derive(instruction.Owner, instruction.Title)
	if nil != err {
		return derivation.Address{}, 0, err
	}

	base, err := instruction.Base()
	if nil != err {
		return derivation.Address{}, 0, err
	}
	err = Authorize(instruction.Owner, base, []Signer{{
		Identity:  instruction.Owner,
		Signature: instruction.Signature,
	}})
	if nil != err {
		return derivation.Address{}, 0, err
	}

	current, err := s.fetch(address)
	if nil != err {
		return derivation.Address{}, 0, err
	}
	if !current.Owner.Equal(instruction.Owner) {
		return derivation.Address{}, 0, fault.Unauthorized
	}

	record := entryrecord.JournalEntry{
		Owner:   current.Owner,
		Title:   current.Title,
		Message: instruction.Message,
	}
	packed, err := record.Pack()
	if nil != err {
		return derivation.Address{}, 0, err
	}

	err = s.ledger.Resize(address, len(packed), instruction.Owner)
	if nil != err {
		return derivation.Address{}, 0, err
	}
	err = s.ledger.Write(address, packed)
	if nil != err {
		return derivation.Address{}, 0, err
	}

	s.log.Infof("update: %q at: %s size: %d", instruction.Title, address, len(packed))
	return address, nonce, nil
}

// Delete - remove an entry and refund the whole lease to its owner
func (s *Store) Delete(instruction *entryrecord.EntryRemoval) (derivation.Address, derivation.Nonce, error) {
	if nil == instruction || nil == instruction.Owner {
		return derivation.Address{}, 0, fault.MissingParameters
	}

	address, nonce, err := derivation.Derive(instruction.Owner, instruction.Title)
	if nil != err {
		return derivation.Address{}, 0, err
	}

	base, err := instruction.Base()
	if nil != err {
		return derivation.Address{}, 0, err
	}
	err = Authorize(instruction.Owner, base, []Signer{{
		Identity:  instruction.Owner,
		Signature: instruction.Signature,
	}})
	if nil != err {
		return derivation.Address{}, 0, err
	}

	current, err := s.fetch(address)
	if nil != err {
		return derivation.Address{}, 0, err
	}
	if !current.Owner.Equal(instruction.Owner) {
		return derivation.Address{}, 0, fault.Unauthorized
	}

	err = s.ledger.Release(address, instruction.Owner)
	if nil != err {
		return derivation.Address{}, 0, err
	}

	s.log.Infof("delete: %q at: %s", instruction.Title, address)
	return address, nonce, nil
}

// Read - fetch a stored entry by owner and title
//
// no signature is required: stored entries are public data
func (s *Store) Read(owner *identity.Identity, title string) (*entryrecord.JournalEntry, derivation.Address, error) {
	address, _, err := derivation.Derive(owner, title)
	if nil != err {
		return nil, derivation.Address{}, err
	}

	record, err := s.fetch(address)
	if nil != err {
		return nil, derivation.Address{}, err
	}
	return record, address, nil
}

// fetch and unpack the record at an address
func (s *Store) fetch(address derivation.Address) (*entryrecord.JournalEntry, error) {
	data, err := s.ledger.Data(address)
	if nil != err {
		return nil, err
	}
	return entryrecord.Packed(data).Unpack()
}
