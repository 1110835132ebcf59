// SPDX-License-Identifier: ISC
// Copyright (c) 2026 Journalbase Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package store_test

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"os"
	"strings"
	"testing"

	"golang.org/x/crypto/ed25519"

	"github.com/bitmark-inc/logger"

	"github.com/journalbase/journald/derivation"
	"github.com/journalbase/journald/entryrecord"
	"github.com/journalbase/journald/fault"
	"github.com/journalbase/journald/identity"
	"github.com/journalbase/journald/ledger"
	"github.com/journalbase/journald/store"
)

const (
	testingDirName = "testing"
)

func removeFiles() {
	_ = os.RemoveAll(testingDirName)
}

func TestMain(m *testing.M) {
	removeFiles()
	_ = os.Mkdir(testingDirName, 0700)

	logging := logger.Configuration{
		Directory: testingDirName,
		File:      "testing.log",
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}

	// start logging
	if err := logger.Initialise(logging); nil != err {
		panic(fmt.Sprintf("logger initialisation failed: %s", err))
	}

	rc := m.Run()

	logger.Finalise()
	removeFiles()
	os.Exit(rc)
}

func decodeHex(s string) []byte {
	b, err := hex.DecodeString(s)
	if nil != err {
		panic(err)
	}
	return b
}

// fixed keys so failures are reproducible
var (
	payerKey = ed25519.NewKeyFromSeed(decodeHex(
		"95b5a80b4cdbe61c0f3f72cc152d4a4f29bcfd39c9a67e2c7bc6e0e14ec7c7ba"))
	ownerKey = ed25519.NewKeyFromSeed(bytes.Repeat([]byte{0x42}, 32))
	otherKey = ed25519.NewKeyFromSeed(bytes.Repeat([]byte{0x99}, 32))

	payerID = &identity.Identity{PublicKey: payerKey.Public().(ed25519.PublicKey)}
	ownerID = &identity.Identity{PublicKey: ownerKey.Public().(ed25519.PublicKey)}
)

func newStore() (*store.Store, *ledger.Memory) {
	m := ledger.NewMemory()
	return store.New(logger.New("store"), m), m
}

func signedCreation(key ed25519.PrivateKey, title string, message string) *entryrecord.EntryCreation {
	r := &entryrecord.EntryCreation{
		Payer:   payerID,
		Owner:   ownerID,
		Title:   title,
		Message: message,
	}
	// an invalid instruction cannot be signed; the store must reject
	// it before ever checking a signature
	base, err := r.Base()
	if nil == err {
		r.Signature = ed25519.Sign(key, base)
	}
	return r
}

func signedAmendment(key ed25519.PrivateKey, title string, message string) *entryrecord.EntryAmendment {
	r := &entryrecord.EntryAmendment{
		Owner:   ownerID,
		Title:   title,
		Message: message,
	}
	base, err := r.Base()
	if nil != err {
		panic(err)
	}
	r.Signature = ed25519.Sign(key, base)
	return r
}

func signedRemoval(key ed25519.PrivateKey, title string) *entryrecord.EntryRemoval {
	r := &entryrecord.EntryRemoval{
		Owner: ownerID,
		Title: title,
	}
	base, err := r.Base()
	if nil != err {
		panic(err)
	}
	r.Signature = ed25519.Sign(key, base)
	return r
}

func TestCreateAndRead(t *testing.T) {
	s, m := newStore()
	m.Deposit(payerID, 1000000)

	address, _, err := s.Create(signedCreation(payerKey, "Day 1", "went hiking"))
	if nil != err {
		t.Fatalf("create error: %s", err)
	}

	// address must match direct derivation
	derived, _, err := derivation.Derive(ownerID, "Day 1")
	if nil != err {
		t.Fatalf("derive error: %s", err)
	}
	if address != derived {
		t.Fatalf("address: %s  expected: %s", address, derived)
	}

	record, readAddress, err := s.Read(ownerID, "Day 1")
	if nil != err {
		t.Fatalf("read error: %s", err)
	}
	if readAddress != address {
		t.Fatalf("read address: %s  expected: %s", readAddress, address)
	}
	if !record.Owner.Equal(ownerID) {
		t.Errorf("owner: %v  expected: %v", record.Owner, ownerID)
	}
	if "Day 1" != record.Title || "went hiking" != record.Message {
		t.Errorf("record: %q/%q", record.Title, record.Message)
	}

	// lease covers the exact byte footprint
	size := entryrecord.HeaderSize + len("Day 1") + len("went hiking")
	if balance := m.Balance(payerID); balance != 1000000-ledger.LeaseCost(size) {
		t.Fatalf("balance: %d  expected: %d", balance, 1000000-ledger.LeaseCost(size))
	}
}

// repeating a creation succeeds without touching the stored record,
// even when the repeat carries a different message
func TestCreateIdempotentKeepsOriginalMessage(t *testing.T) {
	s, m := newStore()
	m.Deposit(payerID, 1000000)

	if _, _, err := s.Create(signedCreation(payerKey, "Day 1", "original")); nil != err {
		t.Fatalf("create error: %s", err)
	}
	balance := m.Balance(payerID)

	address, _, err := s.Create(signedCreation(payerKey, "Day 1", "replacement"))
	if nil != err {
		t.Fatalf("repeat create error: %s", err)
	}

	derived, _, _ := derivation.Derive(ownerID, "Day 1")
	if address != derived {
		t.Fatalf("address: %s  expected: %s", address, derived)
	}

	record, _, err := s.Read(ownerID, "Day 1")
	if nil != err {
		t.Fatalf("read error: %s", err)
	}
	if "original" != record.Message {
		t.Fatalf("message: %q  expected: %q", record.Message, "original")
	}
	if m.Balance(payerID) != balance {
		t.Fatalf("repeat create changed the balance")
	}
}

func TestCreateUnauthorized(t *testing.T) {
	s, m := newStore()
	m.Deposit(payerID, 1000000)

	// signed by the wrong key
	_, _, err := s.Create(signedCreation(otherKey, "Day 1", "forged"))
	if fault.Unauthorized != err {
		t.Fatalf("error: %v  expected: %s", err, fault.Unauthorized)
	}

	if _, _, err = s.Read(ownerID, "Day 1"); fault.RecordNotFound != err {
		t.Fatalf("rejected create left a record: %v", err)
	}
	if 1000000 != m.Balance(payerID) {
		t.Fatalf("rejected create changed the balance")
	}
}

func TestCreateUnderfunded(t *testing.T) {
	s, m := newStore()
	m.Deposit(payerID, 10) // far below any lease

	_, _, err := s.Create(signedCreation(payerKey, "Day 1", "hello"))
	if fault.PayerUnderfunded != err {
		t.Fatalf("error: %v  expected: %s", err, fault.PayerUnderfunded)
	}
	if _, _, err = s.Read(ownerID, "Day 1"); fault.RecordNotFound != err {
		t.Fatalf("underfunded create left a record: %v", err)
	}
}

func TestCreateBadTitle(t *testing.T) {
	s, m := newStore()
	m.Deposit(payerID, 1000000)

	_, _, err := s.Create(signedCreation(payerKey, strings.Repeat("x", 51), "hello"))
	if fault.InvalidSeed != err {
		t.Fatalf("error: %v  expected: %s", err, fault.InvalidSeed)
	}
}

func TestUpdate(t *testing.T) {
	s, m := newStore()
	m.Deposit(payerID, 1000000)
	m.Deposit(ownerID, 1000000)

	if _, _, err := s.Create(signedCreation(payerKey, "Day 1", "short")); nil != err {
		t.Fatalf("create error: %s", err)
	}

	// grow
	before := m.Balance(ownerID)
	if _, _, err := s.Update(signedAmendment(ownerKey, "Day 1", "a much longer replacement")); nil != err {
		t.Fatalf("update error: %s", err)
	}
	record, _, err := s.Read(ownerID, "Day 1")
	if nil != err {
		t.Fatalf("read error: %s", err)
	}
	if "a much longer replacement" != record.Message {
		t.Fatalf("message: %q", record.Message)
	}
	extra := ledger.LeaseCost(len("a much longer replacement")) - ledger.LeaseCost(len("short"))
	if balance := m.Balance(ownerID); balance != before-extra {
		t.Fatalf("balance: %d  expected: %d", balance, before-extra)
	}

	// shrink
	before = m.Balance(ownerID)
	if _, _, err := s.Update(signedAmendment(ownerKey, "Day 1", "x")); nil != err {
		t.Fatalf("update error: %s", err)
	}
	record, _, err = s.Read(ownerID, "Day 1")
	if nil != err {
		t.Fatalf("read error: %s", err)
	}
	if "x" != record.Message {
		t.Fatalf("message: %q", record.Message)
	}
	refund := ledger.LeaseCost(len("a much longer replacement")) - ledger.LeaseCost(len("x"))
	if balance := m.Balance(ownerID); balance != before+refund {
		t.Fatalf("balance: %d  expected: %d", balance, before+refund)
	}
}

func TestUpdateMissingRecord(t *testing.T) {
	s, _ := newStore()

	_, _, err := s.Update(signedAmendment(ownerKey, "never created", "m"))
	if fault.RecordNotFound != err {
		t.Fatalf("error: %v  expected: %s", err, fault.RecordNotFound)
	}
}

// a rejected update must leave the stored record byte for byte intact
func TestUpdateUnauthorized(t *testing.T) {
	s, m := newStore()
	m.Deposit(payerID, 1000000)

	if _, _, err := s.Create(signedCreation(payerKey, "Day 1", "original")); nil != err {
		t.Fatalf("create error: %s", err)
	}

	_, _, err := s.Update(signedAmendment(otherKey, "Day 1", "defaced"))
	if fault.Unauthorized != err {
		t.Fatalf("error: %v  expected: %s", err, fault.Unauthorized)
	}

	record, _, err := s.Read(ownerID, "Day 1")
	if nil != err {
		t.Fatalf("read error: %s", err)
	}
	if "original" != record.Message {
		t.Fatalf("message: %q  expected: %q", record.Message, "original")
	}
}

func TestUpdateUnderfundedGrowth(t *testing.T) {
	s, m := newStore()
	m.Deposit(payerID, 1000000)
	// owner has no funds to cover growth

	if _, _, err := s.Create(signedCreation(payerKey, "Day 1", "short")); nil != err {
		t.Fatalf("create error: %s", err)
	}

	_, _, err := s.Update(signedAmendment(ownerKey, "Day 1", strings.Repeat("x", 900)))
	if fault.ResizeFailed != err {
		t.Fatalf("error: %v  expected: %s", err, fault.ResizeFailed)
	}

	record, _, err := s.Read(ownerID, "Day 1")
	if nil != err {
		t.Fatalf("read error: %s", err)
	}
	if "short" != record.Message {
		t.Fatalf("message: %q  expected: %q", record.Message, "short")
	}
}

func TestDelete(t *testing.T) {
	s, m := newStore()
	m.Deposit(payerID, 1000000)

	if _, _, err := s.Create(signedCreation(payerKey, "Day 1", "hello")); nil != err {
		t.Fatalf("create error: %s", err)
	}

	// whole lease is refunded to the owner, not the payer
	size := entryrecord.HeaderSize + len("Day 1") + len("hello")
	if _, _, err := s.Delete(signedRemoval(ownerKey, "Day 1")); nil != err {
		t.Fatalf("delete error: %s", err)
	}
	if balance := m.Balance(ownerID); balance != ledger.LeaseCost(size) {
		t.Fatalf("owner balance: %d  expected: %d", balance, ledger.LeaseCost(size))
	}

	if _, _, err := s.Read(ownerID, "Day 1"); fault.RecordNotFound != err {
		t.Fatalf("record survived delete: %v", err)
	}

	// a second delete finds nothing
	if _, _, err := s.Delete(signedRemoval(ownerKey, "Day 1")); fault.RecordNotFound != err {
		t.Fatalf("error: %v  expected: %s", err, fault.RecordNotFound)
	}
}

func TestDeleteUnauthorized(t *testing.T) {
	s, m := newStore()
	m.Deposit(payerID, 1000000)

	if _, _, err := s.Create(signedCreation(payerKey, "Day 1", "hello")); nil != err {
		t.Fatalf("create error: %s", err)
	}

	_, _, err := s.Delete(signedRemoval(otherKey, "Day 1"))
	if fault.Unauthorized != err {
		t.Fatalf("error: %v  expected: %s", err, fault.Unauthorized)
	}

	if _, _, err := s.Read(ownerID, "Day 1"); nil != err {
		t.Fatalf("record lost on rejected delete: %s", err)
	}
}

// full lifecycle: create, amend twice, remove; funds balance out exactly
func TestLifecycle(t *testing.T) {
	s, m := newStore()
	m.Deposit(payerID, 1000000)
	m.Deposit(ownerID, 1000000)

	if _, _, err := s.Create(signedCreation(payerKey, "Trip", "day one")); nil != err {
		t.Fatalf("create error: %s", err)
	}
	if _, _, err := s.Update(signedAmendment(ownerKey, "Trip", "day one, extended notes")); nil != err {
		t.Fatalf("update error: %s", err)
	}
	if _, _, err := s.Update(signedAmendment(ownerKey, "Trip", "done")); nil != err {
		t.Fatalf("update error: %s", err)
	}
	if _, _, err := s.Delete(signedRemoval(ownerKey, "Trip")); nil != err {
		t.Fatalf("delete error: %s", err)
	}

	// payer paid the initial lease and never gets it back
	initialSize := entryrecord.HeaderSize + len("Trip") + len("day one")
	if balance := m.Balance(payerID); balance != 1000000-ledger.LeaseCost(initialSize) {
		t.Fatalf("payer balance: %d", balance)
	}

	// owner funded the growth, was refunded the shrink and the final
	// release; the net is the initial lease flowing to the owner
	finalSize := entryrecord.HeaderSize + len("Trip") + len("done")
	expected := uint64(1000000) -
		(ledger.LeaseCost(initialSize+len(", extended notes")) - ledger.LeaseCost(initialSize)) + // grow
		(ledger.LeaseCost(initialSize+len(", extended notes")) - ledger.LeaseCost(finalSize)) + // shrink
		ledger.LeaseCost(finalSize) // release
	if balance := m.Balance(ownerID); balance != expected {
		t.Fatalf("owner balance: %d  expected: %d", balance, expected)
	}
}
