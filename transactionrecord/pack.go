// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2022 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transactionrecord

import (
	"encoding/hex"

	"github.com/omcash/omcash/account"
	"github.com/omcash/omcash/fault"
	"github.com/omcash/omcash/util"
)

// Packed - packed records are just a byte slice
type Packed []byte

// type code at the start of every packed transaction
const transactionTag = uint64(1)

// Pack - canonical binary form of a transaction
//
// Varint64(tag) followed by:
//   participants: count, then index, root location, root path, owner
//   numLocations
//   expiry: signed Unix seconds, zero for no expiry
//   contracts: count, then path location, path, content hash,
//              authors (count, each), trade matrix rows in currency
//              order (count, then currency, value count, signed values)
//
// every party packing the same transaction gets the same bytes, so
// the digest of the packed form identifies the transaction
func (tx *Transaction) Pack() (Packed, error) {
	if err := tx.check(); nil != err {
		return nil, err
	}

	message := util.ToVarint64(transactionTag)

	message = appendUint64(message, uint64(len(tx.Participants)))
	for _, p := range tx.Participants {
		message = appendUint64(message, uint64(p.Index))
		message = appendUint64(message, p.Root.Location)
		message = appendString(message, p.Root.Path)
		message = appendString(message, p.Owner.String())
	}

	message = appendUint64(message, tx.NumLocations)

	expiry := int64(0)
	if !tx.Expiry.IsZero() {
		expiry = tx.Expiry.Unix()
	}
	message = append(message, util.ToSignedVarint64(expiry)...)

	message = appendUint64(message, uint64(len(tx.Contracts)))
	for _, c := range tx.Contracts {
		message = appendUint64(message, c.Path.Location)
		message = appendString(message, c.Path.Path)
		message = appendBytes(message, c.ContentHash[:])

		message = appendUint64(message, uint64(len(c.Authors)))
		for _, author := range c.Authors {
			message = appendString(message, author.String())
		}

		currencies := c.TradeMatrix.Currencies()
		message = appendUint64(message, uint64(len(currencies)))
		for _, currency := range currencies {
			values := c.TradeMatrix[currency]
			message = appendString(message, currency.String())
			message = appendUint64(message, uint64(len(values)))
			for _, v := range values {
				message = append(message, util.ToSignedVarint64(v)...)
			}
		}
	}

	return message, nil
}

// structural checks shared by pack and unpack
//
// the trade matrix itself is not validated here: a stored
// transaction with a bad matrix must still be readable so that
// replay can reject it at the right block
func (tx *Transaction) check() error {
	if 0 == len(tx.Participants) {
		return fault.ErrTooFewParticipants
	}
	if 0 == tx.NumLocations {
		return fault.ErrInvalidLocation
	}
	for i, p := range tx.Participants {
		if i != p.Index {
			return fault.ErrInvalidParticipant
		}
		if p.Owner.IsZero() {
			return fault.ErrInvalidFingerprint
		}
		if p.Root.Location >= tx.NumLocations {
			return fault.ErrInvalidLocation
		}
	}
	for _, c := range tx.Contracts {
		if c.Path.Location >= tx.NumLocations {
			return fault.ErrInvalidLocation
		}
		for _, author := range c.Authors {
			if author.IsZero() {
				return fault.ErrInvalidFingerprint
			}
		}
	}
	return nil
}

// MakeDigest - compute the identifier of a packed transaction
func (record Packed) MakeDigest() Digest {
	return NewDigest(record)
}

// MarshalText - convert a packed to its hex JSON form
func (record Packed) MarshalText() ([]byte, error) {
	size := hex.EncodedLen(len(record))
	b := make([]byte, size)
	hex.Encode(b, record)
	return b, nil
}

// UnmarshalText - convert a packed from its hex JSON form
func (record *Packed) UnmarshalText(s []byte) error {
	size := hex.DecodedLen(len(s))
	*record = make([]byte, size)
	_, err := hex.Decode(*record, s)
	return err
}

// append a single field to a buffer
func appendString(buffer []byte, s string) []byte {
	return append(buffer, util.ToVarint64Bytes([]byte(s))...)
}

func appendBytes(buffer []byte, data []byte) []byte {
	return append(buffer, util.ToVarint64Bytes(data)...)
}

func appendUint64(buffer []byte, value uint64) []byte {
	return append(buffer, util.ToVarint64(value)...)
}

// fingerprints are stored in their normalised text form
func fingerprintFromPacked(data []byte) account.Fingerprint {
	return account.Fingerprint(data)
}
