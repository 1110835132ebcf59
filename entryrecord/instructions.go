// SPDX-License-Identifier: ISC
// Copyright (c) 2026 Journalbase Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package entryrecord

import (
	"unicode/utf8"

	"github.com/journalbase/journald/fault"
	"github.com/journalbase/journald/identity"
	"github.com/journalbase/journald/util"
)

// TagType - type code for instructions
type TagType uint64

// enumerate the possible instruction record types
// this is encoded as Varint64 at start of "Packed"
const (
	// null marks beginning of list - not used as a record type
	NullTag = TagType(iota)

	// valid record types
	EntryCreationTag  = TagType(iota) // create a journal entry
	EntryAmendmentTag = TagType(iota) // replace the message of an entry
	EntryRemovalTag   = TagType(iota) // delete an entry

	// this item must be last
	InvalidTag = TagType(iota)
)

// Instruction - generic signed instruction interface
//
// Base returns the canonical unsigned bytes that the signature must
// cover; Pack verifies the signature against the signing identity and
// appends it last
type Instruction interface {
	Base() (Packed, error)
	Pack(signer *identity.Identity) (Packed, error)
}

// EntryCreation - create a journal entry, signed by the payer
//
// the payer funds the storage lease; the owner is only recorded and
// need not sign
type EntryCreation struct {
	Payer     *identity.Identity `json:"payer"`     // base58
	Owner     *identity.Identity `json:"owner"`     // base58
	Title     string             `json:"title"`     // utf-8
	Message   string             `json:"message"`   // utf-8
	Signature identity.Signature `json:"signature"` // hex: corresponds to payer
}

// EntryAmendment - replace the message of an entry, signed by the owner
type EntryAmendment struct {
	Owner     *identity.Identity `json:"owner"`     // base58
	Title     string             `json:"title"`     // utf-8
	Message   string             `json:"message"`   // utf-8: the replacement
	Signature identity.Signature `json:"signature"` // hex: corresponds to owner
}

// EntryRemoval - delete an entry, signed by the owner
type EntryRemoval struct {
	Owner     *identity.Identity `json:"owner"`     // base58
	Title     string             `json:"title"`     // utf-8
	Signature identity.Signature `json:"signature"` // hex: corresponds to owner
}

// Base - canonical unsigned bytes for an entry creation
//
// Varint64(tag) followed by fields in order as struct above
func (creation *EntryCreation) Base() (Packed, error) {
	if nil == creation.Payer || nil == creation.Owner {
		return nil, fault.InvalidItem
	}
	if err := checkTitle(creation.Title); nil != err {
		return nil, err
	}
	if err := checkMessage(creation.Message); nil != err {
		return nil, err
	}

	message := util.ToVarint64(uint64(EntryCreationTag))
	message = appendIdentity(message, creation.Payer)
	message = appendIdentity(message, creation.Owner)
	message = appendString(message, creation.Title)
	message = appendString(message, creation.Message)
	return message, nil
}

// Pack - pack an entry creation with signature last
//
// NOTE: returns the "unsigned" message on signature failure - for
//       debugging/testing
func (creation *EntryCreation) Pack(signer *identity.Identity) (Packed, error) {
	if len(creation.Signature) > maxSignatureLength {
		return nil, fault.SignatureTooLong
	}

	message, err := creation.Base()
	if nil != err {
		return nil, err
	}

	err = signer.CheckSignature(message, creation.Signature)
	if nil != err {
		return message, err
	}
	// Signature Last
	return appendBytes(message, creation.Signature), nil
}

// Base - canonical unsigned bytes for an entry amendment
func (amendment *EntryAmendment) Base() (Packed, error) {
	if nil == amendment.Owner {
		return nil, fault.InvalidItem
	}
	if err := checkTitle(amendment.Title); nil != err {
		return nil, err
	}
	if err := checkMessage(amendment.Message); nil != err {
		return nil, err
	}

	message := util.ToVarint64(uint64(EntryAmendmentTag))
	message = appendIdentity(message, amendment.Owner)
	message = appendString(message, amendment.Title)
	message = appendString(message, amendment.Message)
	return message, nil
}

// Pack - pack an entry amendment with signature last
//
// NOTE: returns the "unsigned" message on signature failure - for
//       debugging/testing
func (amendment *EntryAmendment) Pack(signer *identity.Identity) (Packed, error) {
	if len(amendment.Signature) > maxSignatureLength {
		return nil, fault.SignatureTooLong
	}

	message, err := amendment.Base()
	if nil != err {
		return nil, err
	}

	err = signer.CheckSignature(message, amendment.Signature)
	if nil != err {
		return message, err
	}
	// Signature Last
	return appendBytes(message, amendment.Signature), nil
}

// Base - canonical unsigned bytes for an entry removal
func (removal *EntryRemoval) Base() (Packed, error) {
	if nil == removal.Owner {
		return nil, fault.InvalidItem
	}
	if err := checkTitle(removal.Title); nil != err {
		return nil, err
	}

	message := util.ToVarint64(uint64(EntryRemovalTag))
	message = appendIdentity(message, removal.Owner)
	message = appendString(message, removal.Title)
	return message, nil
}

// Pack - pack an entry removal with signature last
//
// NOTE: returns the "unsigned" message on signature failure - for
//       debugging/testing
func (removal *EntryRemoval) Pack(signer *identity.Identity) (Packed, error) {
	if len(removal.Signature) > maxSignatureLength {
		return nil, fault.SignatureTooLong
	}

	message, err := removal.Base()
	if nil != err {
		return nil, err
	}

	err = signer.CheckSignature(message, removal.Signature)
	if nil != err {
		return message, err
	}
	// Signature Last
	return appendBytes(message, removal.Signature), nil
}

// RecordName - returns the name of an instruction record as a string
func RecordName(record interface{}) (string, bool) {
	switch record.(type) {
	case *EntryCreation, EntryCreation:
		return "EntryCreation", true

	case *EntryAmendment, EntryAmendment:
		return "EntryAmendment", true

	case *EntryRemoval, EntryRemoval:
		return "EntryRemoval", true

	default:
		return "*unknown*", false
	}
}

// the title is seed material so oversize and malformed titles are
// seed faults
func checkTitle(title string) error {
	if len(title) > MaxTitleLength {
		return fault.TitleTooLong
	}
	if !utf8.ValidString(title) {
		return fault.InvalidSeed
	}
	return nil
}

func checkMessage(message string) error {
	if len(message) > MaxMessageLength {
		return fault.MessageTooLong
	}
	return nil
}

// append a single field to a buffer
//
// the field is prefixed by Varint64(length)
func appendString(buffer Packed, s string) Packed {
	l := util.ToVarint64(uint64(len(s)))
	buffer = append(buffer, l...)
	return append(buffer, s...)
}

// append a variable length byte field to a buffer
//
// the field is prefixed by Varint64(length)
func appendBytes(buffer Packed, data []byte) Packed {
	l := util.ToVarint64(uint64(len(data)))
	buffer = append(buffer, l...)
	return append(buffer, data...)
}

// append an encoded identity to a buffer
//
// the field is prefixed by Varint64(length)
func appendIdentity(buffer Packed, id *identity.Identity) Packed {
	data := id.Bytes()
	l := util.ToVarint64(uint64(len(data)))
	buffer = append(buffer, l...)
	return append(buffer, data...)
}
