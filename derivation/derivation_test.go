// SPDX-License-Identifier: ISC
// Copyright (c) 2026 Journalbase Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package derivation_test

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/journalbase/journald/derivation"
	"github.com/journalbase/journald/fault"
	"github.com/journalbase/journald/identity"
)

func decodeHex(s string) []byte {
	b, err := hex.DecodeString(s)
	if nil != err {
		panic(err)
	}
	return b
}

var (
	ownerA = &identity.Identity{
		PublicKey: decodeHex("60b3c6e20cfff7091a86488b1656b96ec0a2f69907e2c035175918f42c37d72e"),
	}
	ownerB = &identity.Identity{
		PublicKey: decodeHex("731114267f15754a5fce4aaed8380b28aff25af7b378b011d92ef7b3f08910db"),
	}
)

// repeated derivation must return identical results
func TestDeriveDeterministic(t *testing.T) {
	address1, nonce1, err := derivation.Derive(ownerA, "Day 1")
	if nil != err {
		t.Fatalf("derive error: %s", err)
	}

	for i := 0; i < 10; i += 1 {
		address2, nonce2, err := derivation.Derive(ownerA, "Day 1")
		if nil != err {
			t.Fatalf("derive error: %s", err)
		}
		if address1 != address2 {
			t.Fatalf("%d: address: %s  expected: %s", i, address2, address1)
		}
		if nonce1 != nonce2 {
			t.Fatalf("%d: nonce: %d  expected: %d", i, nonce2, nonce1)
		}
	}
}

// different inputs must land on different addresses
func TestDeriveDistinct(t *testing.T) {
	a1, _, err := derivation.Derive(ownerA, "Day 1")
	if nil != err {
		t.Fatalf("derive error: %s", err)
	}
	a2, _, err := derivation.Derive(ownerA, "Day 2")
	if nil != err {
		t.Fatalf("derive error: %s", err)
	}
	a3, _, err := derivation.Derive(ownerB, "Day 1")
	if nil != err {
		t.Fatalf("derive error: %s", err)
	}

	if a1 == a2 {
		t.Errorf("same address for different titles: %s", a1)
	}
	if a1 == a3 {
		t.Errorf("same address for different owners: %s", a1)
	}
}

func TestDeriveTitleLimit(t *testing.T) {
	// exactly at the limit is allowed
	_, _, err := derivation.Derive(ownerA, strings.Repeat("x", derivation.MaxSeedLength))
	if nil != err {
		t.Fatalf("derive error: %s", err)
	}

	// one byte over fails
	_, _, err = derivation.Derive(ownerA, strings.Repeat("x", derivation.MaxSeedLength+1))
	if fault.InvalidSeed != err {
		t.Fatalf("error: %v  expected: %s", err, fault.InvalidSeed)
	}

	// multibyte runes count in bytes, not runes
	_, _, err = derivation.Derive(ownerA, strings.Repeat("日", 17)) // 51 bytes
	if fault.InvalidSeed != err {
		t.Fatalf("error: %v  expected: %s", err, fault.InvalidSeed)
	}
}

func TestDeriveInvalidUTF8(t *testing.T) {
	_, _, err := derivation.Derive(ownerA, string([]byte{0xff, 0xfe, 0xfd}))
	if fault.InvalidSeed != err {
		t.Fatalf("error: %v  expected: %s", err, fault.InvalidSeed)
	}
}

func TestDeriveNilOwner(t *testing.T) {
	_, _, err := derivation.Derive(nil, "Day 1")
	if fault.InvalidItem != err {
		t.Fatalf("error: %v  expected: %s", err, fault.InvalidItem)
	}
}

// address text forms must round trip
func TestAddressText(t *testing.T) {
	address, _, err := derivation.Derive(ownerA, "Day 1")
	if nil != err {
		t.Fatalf("derive error: %s", err)
	}

	text, err := address.MarshalText()
	if nil != err {
		t.Fatalf("marshal error: %s", err)
	}

	var recovered derivation.Address
	err = recovered.UnmarshalText(text)
	if nil != err {
		t.Fatalf("unmarshal error: %s", err)
	}
	if recovered != address {
		t.Fatalf("address: %s  expected: %s", recovered, address)
	}
}
