// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2022 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package tradematrix

import (
	"bytes"
	"encoding/json"
	"math/big"
	"sort"
	"strconv"

	"github.com/omcash/omcash/account"
	"github.com/omcash/omcash/fault"
)

// Matrix - currency → one signed delta per participant index
//
// a negative value is a spend by that participant, a positive value
// is a receipt
type Matrix map[account.Fingerprint][]int64

// Currencies - the row keys in ascending order
//
// all iteration over a matrix goes through this so that every
// party replays rows in the same order
func (m Matrix) Currencies() []account.Fingerprint {
	currencies := make([]account.Fingerprint, 0, len(m))
	for currency := range m {
		currencies = append(currencies, currency)
	}
	sort.Slice(currencies, func(i, j int) bool {
		return currencies[i] < currencies[j]
	})
	return currencies
}

// Validate - check that a matrix is a zero-sum trade between
// numParticipants parties
//
// every row must have exactly one value per participant and its
// values must sum to exactly zero; the sum is computed without
// overflow
func Validate(numParticipants int, m Matrix) error {
	if numParticipants < 1 {
		return fault.ErrTooFewParticipants
	}

	for _, currency := range m.Currencies() {
		values := m[currency]
		if currency.IsZero() {
			return &fault.RowError{Currency: currency.String(), Values: values, Err: fault.ErrInvalidFingerprint}
		}
		if numParticipants != len(values) {
			return &fault.RowError{Currency: currency.String(), Values: values, Err: fault.ErrMalformedRow}
		}
		total := new(big.Int)
		for _, value := range values {
			total.Add(total, big.NewInt(value))
		}
		if 0 != total.Sign() {
			return &fault.RowError{Currency: currency.String(), Values: values, Err: fault.ErrNonZeroSum}
		}
	}
	return nil
}

// UnmarshalJSON - decode rows, rejecting any value that is not a whole number
func (m *Matrix) UnmarshalJSON(data []byte) error {
	raw := make(map[string][]json.Number)
	d := json.NewDecoder(bytes.NewReader(data))
	d.UseNumber()
	if err := d.Decode(&raw); nil != err {
		return err
	}

	result := make(Matrix, len(raw))
	for currency, numbers := range raw {
		values := make([]int64, len(numbers))
		for i, n := range numbers {
			v, err := parseValue(n.String())
			if nil != err {
				return &fault.RowError{Currency: currency, Values: values[:i], Err: err}
			}
			values[i] = v
		}
		result[account.Fingerprint(currency)] = values
	}
	*m = result
	return nil
}

// parse a single cell; anything that is not a whole number is
// rejected as a non-integer value
func parseValue(s string) (int64, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if nil != err {
		return 0, fault.ErrNonIntegerValue
	}
	return v, nil
}
