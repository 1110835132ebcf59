// SPDX-License-Identifier: ISC
// Copyright (c) 2026 Journalbase Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package rpc - this is to setup and handle all of the client RPC calls
//
// the available calls are:
//
//	Journal.Create - store a new journal entry
//	Journal.Update - replace the message of an entry
//	Journal.Delete - remove an entry and refund its lease
//	Journal.Read   - fetch a stored entry
//	Node.Info      - server version, uptime and connection count
//
// the server runs JSON RPC over TLS; clients connect with a
// certificate fingerprint obtained out of band
package rpc
