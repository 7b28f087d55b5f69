// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2022 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type AccountingError GenericError
type ExistsError GenericError
type InvalidError GenericError
type NotFoundError GenericError
type PolicyError GenericError
type ProcessError GenericError
type StructuralError GenericError

// common errors - keep in alphabetic order
var (
	ErrAlreadyInitialised    = ExistsError("already initialised")
	ErrAuthorResolution      = ProcessError("cannot resolve contract author")
	ErrBalanceOverflow       = AccountingError("balance overflow")
	ErrBlockNotFound         = NotFoundError("block not found")
	ErrChainExists           = ExistsError("chain already exists")
	ErrChainNotFound         = NotFoundError("chain not found")
	ErrConfigurationNotTable = InvalidError("configuration did not return a table")
	ErrDuplicateCurrency     = InvalidError("duplicate currency")
	ErrEmptyChain            = StructuralError("no blocks found")
	ErrFirstCellNotEmpty     = InvalidError("first cell of first row should be empty")
	ErrHashMismatch          = StructuralError("block hash link mismatch")
	ErrInsufficientBalance   = AccountingError("insufficient balance")
	ErrInvalidBlockNumber    = StructuralError("invalid block number")
	ErrInvalidDataDirectory  = InvalidError("invalid data directory")
	ErrInvalidDigest         = InvalidError("invalid digest")
	ErrInvalidExpiry         = InvalidError("invalid expiry")
	ErrInvalidFileName       = InvalidError("file name must not contain a path")
	ErrInvalidFingerprint    = InvalidError("invalid fingerprint")
	ErrInvalidKeyLength      = InvalidError("invalid key length")
	ErrInvalidLocation       = InvalidError("invalid location index")
	ErrInvalidParticipant    = InvalidError("invalid participant")
	ErrInvalidPrivateKeyFile = InvalidError("invalid private key file")
	ErrInvalidPublicKeyFile  = InvalidError("invalid public key file")
	ErrInvalidSignature      = StructuralError("invalid signature")
	ErrInvalidStructPointer  = InvalidError("invalid struct pointer")
	ErrInvalidTransition     = StructuralError("invalid transaction status transition")
	ErrKeyFileAlreadyExists  = ExistsError("key file already exists")
	ErrMalformedRow          = InvalidError("malformed trade matrix row")
	ErrMissingAuthors        = PolicyError("missing authors")
	ErrNonIntegerValue       = InvalidError("value is not an integer")
	ErrNonZeroSum            = InvalidError("trade matrix row has non-zero sum")
	ErrNotInitialised        = NotFoundError("not initialised")
	ErrNotParticipant        = StructuralError("not a participant in transaction")
	ErrNotRegistered         = StructuralError("transaction not registered by every participant")
	ErrTooFewColumns         = InvalidError("csv file should have at least 2 columns")
	ErrTooFewParticipants    = InvalidError("too few participants")
	ErrTransactionExpired    = StructuralError("transaction expired")
	ErrTransactionNotFound   = NotFoundError("transaction not found")
	ErrTruncatedPackedRecord = InvalidError("truncated packed record")
	ErrUnknownAction         = StructuralError("unknown action")
	ErrWrongBlockOwner       = StructuralError("block owner does not match chain owner")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e AccountingError) Error() string { return string(e) }
func (e ExistsError) Error() string     { return string(e) }
func (e InvalidError) Error() string    { return string(e) }
func (e NotFoundError) Error() string   { return string(e) }
func (e PolicyError) Error() string     { return string(e) }
func (e ProcessError) Error() string    { return string(e) }
func (e StructuralError) Error() string { return string(e) }

// determine the class of an error
func IsErrAccounting(e error) bool { _, ok := root(e).(AccountingError); return ok }
func IsErrExists(e error) bool     { _, ok := root(e).(ExistsError); return ok }
func IsErrInvalid(e error) bool    { _, ok := root(e).(InvalidError); return ok }
func IsErrNotFound(e error) bool   { _, ok := root(e).(NotFoundError); return ok }
func IsErrPolicy(e error) bool     { _, ok := root(e).(PolicyError); return ok }
func IsErrProcess(e error) bool    { _, ok := root(e).(ProcessError); return ok }
func IsErrStructural(e error) bool { _, ok := root(e).(StructuralError); return ok }

// follow the Unwrap chain down to the innermost error
//
// for a multiple error wrapper the first error is the one that
// decides the class
func root(e error) error {
	for {
		var next error
		switch u := e.(type) {
		case interface{ Unwrap() error }:
			next = u.Unwrap()
		case interface{ Unwrap() []error }:
			if errs := u.Unwrap(); len(errs) > 0 {
				next = errs[0]
			}
		}
		if nil == next {
			return e
		}
		e = next
	}
}
