// SPDX-License-Identifier: ISC
// Copyright (c) 2026 Journalbase Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package derivation

import (
	"encoding/hex"
	"fmt"

	"github.com/journalbase/journald/fault"
)

// AddressLength - number of bytes in a derived address
const AddressLength = 32

// Address - a derived storage address
//
// stored as a byte array
// represented as hex text for print and JSON encoding
// to convert to bytes just use a[:]
type Address [AddressLength]byte

// String - convert a binary address to hex string for use by the fmt package (for %s)
func (address Address) String() string {
	return hex.EncodeToString(address[:])
}

// GoString - convert a binary address to hex string for use by the fmt package (for %#v)
func (address Address) GoString() string {
	return "<address:" + hex.EncodeToString(address[:]) + ">"
}

// Scan - convert a hex representation to an address for use by the format package scan routines
func (address *Address) Scan(state fmt.ScanState, verb rune) error {
	token, err := state.Token(true, func(c rune) bool {
		if c >= '0' && c <= '9' {
			return true
		}
		if c >= 'A' && c <= 'F' {
			return true
		}
		if c >= 'a' && c <= 'f' {
			return true
		}
		return false
	})
	if nil != err {
		return err
	}
	if len(token) != hex.EncodedLen(AddressLength) {
		return fault.NotAnAddress
	}

	buffer := make([]byte, hex.DecodedLen(len(token)))
	byteCount, err := hex.Decode(buffer, token)
	if nil != err {
		return err
	}
	copy(address[:], buffer[:byteCount])
	return nil
}

// MarshalText - convert an address to its hex JSON form
func (address Address) MarshalText() ([]byte, error) {
	size := hex.EncodedLen(AddressLength)
	buffer := make([]byte, size)
	hex.Encode(buffer, address[:])
	return buffer, nil
}

// UnmarshalText - convert hex JSON form back to an address
func (address *Address) UnmarshalText(s []byte) error {
	if len(s) != hex.EncodedLen(AddressLength) {
		return fault.NotAnAddress
	}
	buffer := make([]byte, hex.DecodedLen(len(s)))
	_, err := hex.Decode(buffer, s)
	if nil != err {
		return err
	}
	copy(address[:], buffer)
	return nil
}
