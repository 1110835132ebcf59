// SPDX-License-Identifier: ISC
// Copyright (c) 2026 Journalbase Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package identity_test

import (
	"encoding/hex"
	"encoding/json"
	"testing"

	"golang.org/x/crypto/ed25519"

	"github.com/journalbase/journald/fault"
	"github.com/journalbase/journald/identity"
)

// fixed test keys so failures are reproducible
const (
	publicKeyHex   = "60b3c6e20cfff7091a86488b1656b96ec0a2f69907e2c035175918f42c37d72e"
	privateSeedHex = "95b5a80b4cdbe61c0f3f72cc152d4a4f29bcfd39c9a67e2c7bc6e0e14ec7c7ba"
)

func decodeHex(s string) []byte {
	b, err := hex.DecodeString(s)
	if nil != err {
		panic(err)
	}
	return b
}

func makeIdentity(publicKey []byte) *identity.Identity {
	return &identity.Identity{
		PublicKey: publicKey,
	}
}

// text form must survive a round trip
func TestBase58RoundTrip(t *testing.T) {
	id := makeIdentity(decodeHex(publicKeyHex))

	text := id.String()
	if "" == text {
		t.Fatal("empty base58 identity")
	}

	recovered, err := identity.FromBase58(text)
	if nil != err {
		t.Fatalf("from base58 error: %s", err)
	}
	if !recovered.Equal(id) {
		t.Fatalf("identity mismatch: %v  expected: %v", recovered, id)
	}
}

func TestBytesRoundTrip(t *testing.T) {
	id := makeIdentity(decodeHex(publicKeyHex))

	recovered, err := identity.FromBytes(id.Bytes())
	if nil != err {
		t.Fatalf("from bytes error: %s", err)
	}
	if !recovered.Equal(id) {
		t.Fatalf("identity mismatch: %v  expected: %v", recovered, id)
	}
}

// a corrupted checksum must be detected
func TestChecksumMismatch(t *testing.T) {
	id := makeIdentity(decodeHex(publicKeyHex))

	text := id.String()
	tampered := text[:len(text)-1]
	if text[len(text)-1] == '1' {
		tampered += "2"
	} else {
		tampered += "1"
	}

	_, err := identity.FromBase58(tampered)
	if nil == err {
		t.Fatal("tampered identity unexpectedly decoded")
	}
}

func TestFromBytesRejectsShortKey(t *testing.T) {
	_, err := identity.FromBytes([]byte{0x11, 0x01, 0x02, 0x03})
	if fault.InvalidKeyLength != err {
		t.Fatalf("error: %s  expected: %s", err, fault.InvalidKeyLength)
	}
}

func TestCheckSignature(t *testing.T) {
	privateKey := ed25519.NewKeyFromSeed(decodeHex(privateSeedHex))
	id := makeIdentity(privateKey.Public().(ed25519.PublicKey))

	message := []byte("signed journal operation")
	signature := identity.Signature(ed25519.Sign(privateKey, message))

	if err := id.CheckSignature(message, signature); nil != err {
		t.Fatalf("check signature error: %s", err)
	}

	// wrong message
	if err := id.CheckSignature([]byte("different"), signature); fault.InvalidSignature != err {
		t.Fatalf("error: %v  expected: %s", err, fault.InvalidSignature)
	}

	// truncated signature
	if err := id.CheckSignature(message, signature[:16]); fault.InvalidSignature != err {
		t.Fatalf("error: %v  expected: %s", err, fault.InvalidSignature)
	}
}

func TestMarshalText(t *testing.T) {
	id := makeIdentity(decodeHex(publicKeyHex))

	b, err := json.Marshal(id)
	if nil != err {
		t.Fatalf("marshal error: %s", err)
	}

	var recovered identity.Identity
	err = json.Unmarshal(b, &recovered)
	if nil != err {
		t.Fatalf("unmarshal error: %s", err)
	}
	if !recovered.Equal(id) {
		t.Fatalf("identity mismatch: %v  expected: %v", &recovered, id)
	}
}
