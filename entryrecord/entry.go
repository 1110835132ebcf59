// SPDX-License-Identifier: ISC
// Copyright (c) 2026 Journalbase Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package entryrecord - journal entry records and signed instructions
//
// The persisted record is fixed format, little endian:
//
//	[discriminator: 8 bytes][owner: 32 bytes]
//	[title_len: u32][title bytes][message_len: u32][message bytes]
//
// so the stored size is always exactly:
//
//	HeaderSize + len(title) + len(message)
package entryrecord

import (
	"encoding/binary"
	"unicode/utf8"

	"github.com/journalbase/journald/fault"
	"github.com/journalbase/journald/identity"
)

// byte sizes for the record fields
const (
	// MaxTitleLength - title limit, the title is also seed material
	MaxTitleLength = 50

	// MaxMessageLength - message limit
	MaxMessageLength = 1000

	// DiscriminatorLength - host bookkeeping prefix on every record
	DiscriminatorLength = 8

	// HeaderSize - fixed overhead of a packed record:
	// discriminator + owner key + two u32 length prefixes
	HeaderSize = DiscriminatorLength + identity.PublicKeySize + 4 + 4

	maxSignatureLength = 1024
)

// Discriminator - reserved 8 byte prefix identifying a journal entry
// record to the host runtime
var Discriminator = [DiscriminatorLength]byte{'j', 'r', 'n', 'l', 'e', 'n', 't', '1'}

// Packed - packed records are just a byte slice
type Packed []byte

// JournalEntry - the unpacked journal entry state
type JournalEntry struct {
	Owner   *identity.Identity `json:"owner"`   // base58
	Title   string             `json:"title"`   // utf-8, immutable
	Message string             `json:"message"` // utf-8
}

// Size - exact byte count of the packed record
func (entry *JournalEntry) Size() int {
	return HeaderSize + len(entry.Title) + len(entry.Message)
}

// Pack - pack a journal entry to its fixed persisted layout
func (entry *JournalEntry) Pack() (Packed, error) {
	if nil == entry.Owner || identity.PublicKeySize != len(entry.Owner.PublicKeyBytes()) {
		return nil, fault.InvalidItem
	}
	if len(entry.Title) > MaxTitleLength {
		return nil, fault.TitleTooLong
	}
	if !utf8.ValidString(entry.Title) {
		return nil, fault.InvalidSeed
	}
	if len(entry.Message) > MaxMessageLength {
		return nil, fault.MessageTooLong
	}

	buffer := make([]byte, 0, entry.Size())
	buffer = append(buffer, Discriminator[:]...)
	buffer = append(buffer, entry.Owner.PublicKeyBytes()...)
	buffer = appendUint32(buffer, uint32(len(entry.Title)))
	buffer = append(buffer, entry.Title...)
	buffer = appendUint32(buffer, uint32(len(entry.Message)))
	buffer = append(buffer, entry.Message...)
	return Packed(buffer), nil
}

// Unpack - turn a byte slice back into a journal entry
//
// the whole record must be consumed exactly; trailing bytes mean the
// stored size no longer matches the payload and the record is invalid
func (record Packed) Unpack() (*JournalEntry, error) {
	n := 0

	if len(record) < HeaderSize {
		return nil, fault.NotEntryRecord
	}

	for i := 0; i < DiscriminatorLength; i += 1 {
		if record[i] != Discriminator[i] {
			return nil, fault.NotEntryRecord
		}
	}
	n += DiscriminatorLength

	publicKey := make([]byte, identity.PublicKeySize)
	copy(publicKey, record[n:n+identity.PublicKeySize])
	n += identity.PublicKeySize

	titleLength := int(binary.LittleEndian.Uint32(record[n:]))
	n += 4
	if titleLength > MaxTitleLength || n+titleLength+4 > len(record) {
		return nil, fault.NotEntryRecord
	}
	title := string(record[n : n+titleLength])
	n += titleLength

	messageLength := int(binary.LittleEndian.Uint32(record[n:]))
	n += 4
	if messageLength > MaxMessageLength || n+messageLength != len(record) {
		return nil, fault.NotEntryRecord
	}
	message := string(record[n : n+messageLength])

	return &JournalEntry{
		Owner: &identity.Identity{
			PublicKey: publicKey,
		},
		Title:   title,
		Message: message,
	}, nil
}

// append a u32 little endian field to a buffer
func appendUint32(buffer []byte, value uint32) []byte {
	littleEndian := make([]byte, 4)
	binary.LittleEndian.PutUint32(littleEndian, value)
	return append(buffer, littleEndian...)
}
