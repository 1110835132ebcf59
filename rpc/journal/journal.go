// SPDX-License-Identifier: ISC
// Copyright (c) 2026 Journalbase Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package journal - the client RPC surface of the record store
//
// all calls are rate limited; mutating calls carry a detached
// signature over the canonical instruction bytes
package journal

import (
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/journalbase/journald/derivation"
	"github.com/journalbase/journald/entryrecord"
	"github.com/journalbase/journald/fault"
	"github.com/journalbase/journald/identity"
	"github.com/journalbase/journald/rpc/ratelimit"
	"github.com/journalbase/journald/store"
)

const (
	rateLimitJournal = 200
	rateBurstJournal = 100
)

// Journal - type for RPC calls
type Journal struct {
	Log     *logger.L
	Limiter *rate.Limiter
	Store   *store.Store
}

// New - create the journal RPC handler
func New(log *logger.L, s *store.Store) *Journal {
	return &Journal{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitJournal, rateBurstJournal),
		Store:   s,
	}
}

// ---

// CreateArguments - arguments for creating a journal entry
type CreateArguments struct {
	Payer     *identity.Identity `json:"payer"`
	Owner     *identity.Identity `json:"owner"`
	Title     string             `json:"title"`
	Message   string             `json:"message"`
	Signature identity.Signature `json:"signature"`
}

// CreateReply - result of creating a journal entry
type CreateReply struct {
	Address derivation.Address `json:"address"`
	Nonce   derivation.Nonce   `json:"nonce"`
}

// Create - store a new journal entry
func (journal *Journal) Create(arguments *CreateArguments, reply *CreateReply) error {

	if err := ratelimit.Limit(journal.Limiter); nil != err {
		return err
	}

	if nil == arguments || nil == arguments.Payer || nil == arguments.Owner {
		return fault.MissingParameters
	}

	journal.Log.Infof("Journal.Create: %q", arguments.Title)

	address, nonce, err := journal.Store.Create(&entryrecord.EntryCreation{
		Payer:     arguments.Payer,
		Owner:     arguments.Owner,
		Title:     arguments.Title,
		Message:   arguments.Message,
		Signature: arguments.Signature,
	})
	if nil != err {
		return err
	}

	reply.Address = address
	reply.Nonce = nonce
	return nil
}

// ---

// UpdateArguments - arguments for replacing an entry's message
type UpdateArguments struct {
	Owner     *identity.Identity `json:"owner"`
	Title     string             `json:"title"`
	Message   string             `json:"message"`
	Signature identity.Signature `json:"signature"`
}

// UpdateReply - result of an update
type UpdateReply struct {
	Address derivation.Address `json:"address"`
	Nonce   derivation.Nonce   `json:"nonce"`
}

// Update - replace the message of an existing entry
func (journal *Journal) Update(arguments *UpdateArguments, reply *UpdateReply) error {

	if err := ratelimit.Limit(journal.Limiter); nil != err {
		return err
	}

	if nil == arguments || nil == arguments.Owner {
		return fault.MissingParameters
	}

	journal.Log.Infof("Journal.Update: %q", arguments.Title)

	address, nonce, err := journal.Store.Update(&entryrecord.EntryAmendment{
		Owner:     arguments.Owner,
		Title:     arguments.Title,
		Message:   arguments.Message,
		Signature: arguments.Signature,
	})
	if nil != err {
		return err
	}

	reply.Address = address
	reply.Nonce = nonce
	return nil
}

// ---

// DeleteArguments - arguments for removing an entry
type DeleteArguments struct {
	Owner     *identity.Identity `json:"owner"`
	Title     string             `json:"title"`
	Signature identity.Signature `json:"signature"`
}

// DeleteReply - result of a removal
type DeleteReply struct {
	Address derivation.Address `json:"address"`
}

// Delete - remove an entry, refunding the lease to its owner
func (journal *Journal) Delete(arguments *DeleteArguments, reply *DeleteReply) error {

	if err := ratelimit.Limit(journal.Limiter); nil != err {
		return err
	}

	if nil == arguments || nil == arguments.Owner {
		return fault.MissingParameters
	}

	journal.Log.Infof("Journal.Delete: %q", arguments.Title)

	address, _, err := journal.Store.Delete(&entryrecord.EntryRemoval{
		Owner:     arguments.Owner,
		Title:     arguments.Title,
		Signature: arguments.Signature,
	})
	if nil != err {
		return err
	}

	reply.Address = address
	return nil
}

// ---

// ReadArguments - arguments for fetching an entry
type ReadArguments struct {
	Owner *identity.Identity `json:"owner"`
	Title string             `json:"title"`
}

// ReadReply - a stored entry
type ReadReply struct {
	Address derivation.Address `json:"address"`
	Owner   *identity.Identity `json:"owner"`
	Title   string             `json:"title"`
	Message string             `json:"message"`
}

// Read - fetch a stored entry; no signature required
func (journal *Journal) Read(arguments *ReadArguments, reply *ReadReply) error {

	if err := ratelimit.Limit(journal.Limiter); nil != err {
		return err
	}

	if nil == arguments || nil == arguments.Owner {
		return fault.MissingParameters
	}

	record, address, err := journal.Store.Read(arguments.Owner, arguments.Title)
	if nil != err {
		return err
	}

	reply.Address = address
	reply.Owner = record.Owner
	reply.Title = record.Title
	reply.Message = record.Message
	return nil
}
