// SPDX-License-Identifier: ISC
// Copyright (c) 2026 Journalbase Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type AccessError GenericError
type ExistsError GenericError
type InvalidError GenericError
type NotFoundError GenericError
type ProcessError GenericError

// common errors - keep in alphabetic order
var (
	AlreadyInitialised           = ProcessError("already initialised")
	CertificateFileAlreadyExists = ExistsError("certificate file already exists")
	ChecksumMismatch             = InvalidError("checksum mismatch")
	CannotDecodeIdentity         = InvalidError("cannot decode identity")
	DataLengthMismatch           = ProcessError("data length mismatch")
	InvalidCount                 = InvalidError("invalid count")
	InvalidIpAddress             = InvalidError("invalid ip Address")
	InvalidItem                  = InvalidError("invalid item")
	InvalidKeyLength             = InvalidError("invalid key length")
	InvalidKeyType               = InvalidError("invalid key type")
	InvalidSeed                  = InvalidError("invalid seed")
	InvalidSignature             = InvalidError("invalid signature")
	KeyFileAlreadyExists         = ExistsError("key file already exists")
	MessageTooLong               = InvalidError("message too long")
	MissingParameters            = InvalidError("missing parameters")
	NotAnAddress                 = InvalidError("not an address")
	NotEntryRecord               = InvalidError("not entry record")
	NotInitialised               = ProcessError("not initialised")
	NotPublicKey                 = InvalidError("not public key")
	PayerUnderfunded             = ProcessError("payer underfunded")
	RateLimiting                 = ProcessError("rate limiting")
	RecordAlreadyExists          = ExistsError("record already exists")
	RecordNotFound               = NotFoundError("record not found")
	ResizeFailed                 = ProcessError("resize failed")
	SignatureTooLong             = InvalidError("signature too long")
	TitleTooLong                 = InvalidError("title too long")
	Unauthorized                 = AccessError("unauthorized")
)

// Error - the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e AccessError) Error() string   { return string(e) }
func (e ExistsError) Error() string   { return string(e) }
func (e InvalidError) Error() string  { return string(e) }
func (e NotFoundError) Error() string { return string(e) }
func (e ProcessError) Error() string  { return string(e) }

// determine the class of an error
func IsErrAccess(e error) bool   { _, ok := e.(AccessError); return ok }
func IsErrExists(e error) bool   { _, ok := e.(ExistsError); return ok }
func IsErrInvalid(e error) bool  { _, ok := e.(InvalidError); return ok }
func IsErrNotFound(e error) bool { _, ok := e.(NotFoundError); return ok }
func IsErrProcess(e error) bool  { _, ok := e.(ProcessError); return ok }
