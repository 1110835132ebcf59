// SPDX-License-Identifier: ISC
// Copyright (c) 2026 Journalbase Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package store

import (
	"github.com/journalbase/journald/fault"
	"github.com/journalbase/journald/identity"
)

// Signer - one identity that signed a request
type Signer struct {
	Identity  *identity.Identity
	Signature identity.Signature
}

// Authorize - check that the claimed identity actually signed the message
//
// the claimed identity must appear among the signers and its signature
// must verify over the message; any other signers are ignored
func Authorize(claimed *identity.Identity, message []byte, signers []Signer) error {
	if nil == claimed {
		return fault.Unauthorized
	}

	for _, signer := range signers {
		if nil == signer.Identity || !signer.Identity.Equal(claimed) {
			continue
		}
		if nil == signer.Identity.CheckSignature(message, signer.Signature) {
			return nil
		}
	}
	return fault.Unauthorized
}
