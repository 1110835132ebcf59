// SPDX-License-Identifier: ISC
// Copyright (c) 2026 Journalbase Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package identity - public key identities for journal principals
//
// An identity is the ed25519 public key of a principal (owner, payer
// or signer).  The text form is Base58 of: key variant byte, public
// key bytes, 4 byte SHA3-256 checksum.
package identity

import (
	"bytes"

	"golang.org/x/crypto/ed25519"
	"golang.org/x/crypto/sha3"

	"github.com/journalbase/journald/fault"
	"github.com/journalbase/journald/util"
)

// enumeration of supported key algorithms
const (
	// list of valid algorithms
	Nothing = iota // zero key type - never valid on a record
	ED25519 = iota
	// end of list (one greater than last item)
	algorithmLimit = iota
)

// miscellaneous constants
const (
	// PublicKeySize - raw byte count of an identity public key
	PublicKeySize = ed25519.PublicKeySize

	checksumLength = 4

	// bits in key variant starting from LSB
	publicKeyCode = 0x01

	algorithmShift = 4 // shift 4 bits to get algorithm
)

// Identity - an ed25519 public key identity
type Identity struct {
	PublicKey []byte
}

// FromBase58 - convert a Base58 encoded string to an identity
func FromBase58(identityBase58Encoded string) (*Identity, error) {
	decoded := util.FromBase58(identityBase58Encoded)
	if 0 == len(decoded) {
		return nil, fault.CannotDecodeIdentity
	}

	// checksum is the last 4 bytes
	if len(decoded) <= checksumLength {
		return nil, fault.CannotDecodeIdentity
	}
	checksumStart := len(decoded) - checksumLength
	checksum := sha3.Sum256(decoded[:checksumStart])
	if !bytes.Equal(checksum[:checksumLength], decoded[checksumStart:]) {
		return nil, fault.ChecksumMismatch
	}

	return FromBytes(decoded[:checksumStart])
}

// FromBytes - convert a byte encoded buffer to an identity
//
// the buffer is: key variant byte followed by the raw public key
func FromBytes(identityBytes []byte) (*Identity, error) {
	keyVariant, keyVariantLength := util.FromVarint64(identityBytes)
	if 0 == keyVariantLength || keyVariant&publicKeyCode != publicKeyCode {
		return nil, fault.NotPublicKey
	}

	keyAlgorithm := keyVariant >> algorithmShift
	if keyAlgorithm >= algorithmLimit || ED25519 != keyAlgorithm {
		return nil, fault.InvalidKeyType
	}

	keyLength := len(identityBytes) - keyVariantLength
	if PublicKeySize != keyLength {
		return nil, fault.InvalidKeyLength
	}

	publicKey := make([]byte, PublicKeySize)
	copy(publicKey, identityBytes[keyVariantLength:])
	return &Identity{
		PublicKey: publicKey,
	}, nil
}

// PublicKeyBytes - fetch the raw public key as a byte slice
func (identity *Identity) PublicKeyBytes() []byte {
	return identity.PublicKey[:]
}

// Equal - compare two identities by their public keys
func (identity *Identity) Equal(other *Identity) bool {
	if nil == identity || nil == other {
		return false
	}
	return bytes.Equal(identity.PublicKey, other.PublicKey)
}

// CheckSignature - check the signature of a message
func (identity *Identity) CheckSignature(message []byte, signature Signature) error {
	if ed25519.SignatureSize != len(signature) {
		return fault.InvalidSignature
	}
	if !ed25519.Verify(identity.PublicKey[:], message, signature) {
		return fault.InvalidSignature
	}
	return nil
}

// Bytes - byte slice for the encoded key: key variant then public key
func (identity *Identity) Bytes() []byte {
	keyVariant := byte(ED25519<<algorithmShift) | publicKeyCode
	return append([]byte{keyVariant}, identity.PublicKey[:]...)
}

// String - Base58 encoding of the encoded key with checksum
func (identity *Identity) String() string {
	buffer := identity.Bytes()
	checksum := sha3.Sum256(buffer)
	buffer = append(buffer, checksum[:checksumLength]...)
	return util.ToBase58(buffer)
}

// MarshalText - convert an identity to its Base58 JSON form
func (identity Identity) MarshalText() ([]byte, error) {
	return []byte(identity.String()), nil
}

// UnmarshalText - convert the Base58 JSON form back to an identity
func (identity *Identity) UnmarshalText(s []byte) error {
	i, err := FromBase58(string(s))
	if nil != err {
		return err
	}
	identity.PublicKey = i.PublicKey
	return nil
}
