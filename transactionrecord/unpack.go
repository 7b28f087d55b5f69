// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2022 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transactionrecord

import (
	"time"

	"github.com/omcash/omcash/account"
	"github.com/omcash/omcash/fault"
	"github.com/omcash/omcash/tradematrix"
	"github.com/omcash/omcash/util"
)

// Unpack - turn a packed record back into a transaction
//
// the record must be exactly one transaction with no trailing bytes
func (record Packed) Unpack() (*Transaction, error) {
	u := &unpacker{buffer: record}

	if transactionTag != u.uint64() {
		return nil, fault.ErrTruncatedPackedRecord
	}

	tx := &Transaction{}

	participantCount := u.count()
	for i := 0; i < participantCount && nil == u.err; i += 1 {
		p := Participant{
			Index: int(u.uint64()),
			Root: PathRef{
				Location: u.uint64(),
				Path:     string(u.bytes()),
			},
			Owner: fingerprintFromPacked(u.bytes()),
		}
		tx.Participants = append(tx.Participants, p)
	}

	tx.NumLocations = u.uint64()

	if expiry := u.int64(); 0 != expiry {
		tx.Expiry = time.Unix(expiry, 0).UTC()
	}

	contractCount := u.count()
	for i := 0; i < contractCount && nil == u.err; i += 1 {
		c := Contract{
			Path: PathRef{
				Location: u.uint64(),
				Path:     string(u.bytes()),
			},
		}
		hash := u.bytes()
		if nil == u.err {
			if err := DigestFromBytes(&c.ContentHash, hash); nil != err {
				return nil, err
			}
		}

		authorCount := u.count()
		for j := 0; j < authorCount && nil == u.err; j += 1 {
			c.Authors = append(c.Authors, fingerprintFromPacked(u.bytes()))
		}

		rowCount := u.count()
		c.TradeMatrix = make(tradematrix.Matrix, rowCount)
		for j := 0; j < rowCount && nil == u.err; j += 1 {
			currency := account.Fingerprint(u.bytes())
			valueCount := u.count()
			values := make([]int64, 0, valueCount)
			for k := 0; k < valueCount && nil == u.err; k += 1 {
				values = append(values, u.int64())
			}
			if _, ok := c.TradeMatrix[currency]; ok && nil == u.err {
				return nil, fault.ErrDuplicateCurrency
			}
			c.TradeMatrix[currency] = values
		}

		tx.Contracts = append(tx.Contracts, c)
	}

	if nil != u.err {
		return nil, u.err
	}
	if u.n != len(record) {
		return nil, fault.ErrTruncatedPackedRecord
	}
	if err := tx.check(); nil != err {
		return nil, err
	}
	return tx, nil
}

// reads fields in order; the first failure sticks and all later
// reads return zero values
type unpacker struct {
	buffer []byte
	n      int
	err    error
}

func (u *unpacker) uint64() uint64 {
	if nil != u.err {
		return 0
	}
	value, count := util.FromVarint64(u.buffer[u.n:])
	if 0 == count {
		u.err = fault.ErrTruncatedPackedRecord
		return 0
	}
	u.n += count
	return value
}

func (u *unpacker) int64() int64 {
	if nil != u.err {
		return 0
	}
	value, count := util.FromSignedVarint64(u.buffer[u.n:])
	if 0 == count {
		u.err = fault.ErrTruncatedPackedRecord
		return 0
	}
	u.n += count
	return value
}

func (u *unpacker) bytes() []byte {
	if nil != u.err {
		return nil
	}
	data, count := util.FromVarint64Bytes(u.buffer[u.n:])
	if 0 == count {
		u.err = fault.ErrTruncatedPackedRecord
		return nil
	}
	u.n += count
	return data
}

// an element count can never exceed the bytes left, since every
// element takes at least one byte
func (u *unpacker) count() int {
	c := u.uint64()
	if nil != u.err {
		return 0
	}
	if c > uint64(len(u.buffer)-u.n) {
		u.err = fault.ErrTruncatedPackedRecord
		return 0
	}
	return int(c)
}
