// SPDX-License-Identifier: ISC
// Copyright (c) 2026 Journalbase Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package derivation - deterministic storage addresses
//
// A record's address is a pure function of (owner, title): SHA3-256
// over a domain separation tag, the title bytes, the owner public key
// and a single disambiguation nonce byte.  A digest that decodes as a
// valid ed25519 curve point would collide with the identity keyspace,
// so the nonce is stepped downward from 255 until the digest is off
// curve.  The address is the index: no lookup table exists anywhere.
package derivation

import (
	"time"
	"unicode/utf8"

	"filippo.io/edwards25519"
	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/crypto/sha3"

	"github.com/journalbase/journald/fault"
	"github.com/journalbase/journald/identity"
)

// MaxSeedLength - host limit on a single seed item, constrains the title
const MaxSeedLength = 50

// Nonce - disambiguation byte chosen by the derivation search
type Nonce uint8

// domain separation tag, changing this re-homes every record
var derivationTag = []byte("journal.entry.v1")

// memoised results; the curve check makes a fresh search mildly
// expensive and callers re-derive on every operation
var memo = gocache.New(10*time.Minute, 30*time.Minute)

type derived struct {
	address Address
	nonce   Nonce
}

// Derive - compute the storage address and nonce for (owner, title)
//
// deterministic: the same inputs always return the same pair
func Derive(owner *identity.Identity, title string) (Address, Nonce, error) {
	if nil == owner || identity.PublicKeySize != len(owner.PublicKeyBytes()) {
		return Address{}, 0, fault.InvalidItem
	}
	if len(title) > MaxSeedLength || !utf8.ValidString(title) {
		return Address{}, 0, fault.InvalidSeed
	}

	cacheKey := string(owner.PublicKeyBytes()) + "\x00" + title
	if item, ok := memo.Get(cacheKey); ok {
		d := item.(derived)
		return d.address, d.nonce, nil
	}

	for nonce := 255; nonce >= 0; nonce -= 1 {
		h := sha3.New256()
		h.Write(derivationTag)
		h.Write([]byte(title))
		h.Write(owner.PublicKeyBytes())
		h.Write([]byte{byte(nonce)})

		var address Address
		copy(address[:], h.Sum(nil))

		if offCurve(address) {
			memo.Set(cacheKey, derived{address: address, nonce: Nonce(nonce)}, gocache.DefaultExpiration)
			return address, Nonce(nonce), nil
		}
	}

	// every nonce collided with the identity keyspace
	return Address{}, 0, fault.InvalidSeed
}

// a digest is usable as an address only if it does not decode as an
// ed25519 curve point
func offCurve(address Address) bool {
	_, err := new(edwards25519.Point).SetBytes(address[:])
	return nil != err
}
