// SPDX-License-Identifier: ISC
// Copyright (c) 2026 Journalbase Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - maintain the on-disk data store
//
// a single LevelDB database holds every pool; each pool occupies a
// distinct one-byte key prefix:
//
//	E ⇒ journal entry records keyed by derived address
//	F ⇒ account funds keyed by public key, 8 byte big endian balance
//
// the Ledger implementation layered on the pools applies every
// multi-key mutation as one LevelDB batch so a failed operation
// leaves no partial state
package storage
