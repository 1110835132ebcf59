// SPDX-License-Identifier: ISC
// Copyright (c) 2026 Journalbase Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"github.com/mr-tron/base58"
)

// ToBase58 - encode a byte slice to its Base58 text form
func ToBase58(data []byte) string {
	return base58.Encode(data)
}

// FromBase58 - decode Base58 text to a byte slice
//
// returns an empty slice if the text is not valid Base58
func FromBase58(text string) []byte {
	data, err := base58.Decode(text)
	if nil != err {
		return []byte{}
	}
	return data
}
