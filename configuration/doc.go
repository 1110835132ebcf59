// SPDX-License-Identifier: ISC
// Copyright (c) 2026 Journalbase Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package configuration - parse a Lua configuration file
//
// most of base Lua is available such as reading files to set key data
// and getenv to extract environment supplied items; the last value on
// the Lua stack after the chunk runs is mapped onto the configuration
// structure using gluamapper tags
package configuration
