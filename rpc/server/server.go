// SPDX-License-Identifier: ISC
// Copyright (c) 2026 Journalbase Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package server

import (
	"net/rpc"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/journalbase/journald/counter"
	"github.com/journalbase/journald/rpc/journal"
	"github.com/journalbase/journald/rpc/node"
	"github.com/journalbase/journald/store"
)

// Create - make a server with the journal and node handlers registered
func Create(log *logger.L, version string, rpcCount *counter.Counter, s *store.Store) *rpc.Server {

	start := time.Now().UTC()

	server := rpc.NewServer()

	_ = server.Register(journal.New(log, s))
	_ = server.Register(node.New(log, start, version, rpcCount))

	return server
}
