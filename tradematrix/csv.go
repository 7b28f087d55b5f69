// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2022 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package tradematrix

import (
	"encoding/csv"
	"io"

	"github.com/omcash/omcash/account"
	"github.com/omcash/omcash/fault"
)

// ReadCSV - read a multi-party trade description
//
// layout:
//
//   ,user0/pyom/,user1/pyom/,user2/pyom/
//   96184222620D63E9F0EE9D092A5D1800F9270BD8,-3,1,2
//   34494EA12F87A474B5028BC9D1C968A30BB32446,2,-6,4
//
// the first row is an empty cell followed by the root directory of
// each participant (the invoking party first), then one row per
// currency: the currency fingerprint and one value per participant
func ReadCSV(r io.Reader) ([]string, Matrix, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1 // lengths are checked below

	firstRow, err := reader.Read()
	if io.EOF == err {
		return nil, nil, fault.ErrTooFewColumns
	} else if nil != err {
		return nil, nil, err
	}

	n := len(firstRow)
	if n < 2 {
		return nil, nil, fault.ErrTooFewColumns
	}
	if "" != firstRow[0] {
		return nil, nil, fault.ErrFirstCellNotEmpty
	}
	roots := firstRow[1:]

	m := make(Matrix)
	for {
		row, err := reader.Read()
		if io.EOF == err {
			break
		} else if nil != err {
			return nil, nil, err
		}

		currency, err := account.ParseFingerprint(row[0])
		if nil != err {
			return nil, nil, &fault.RowError{Currency: row[0], Err: err}
		}
		if len(row) != n {
			return nil, nil, &fault.RowError{Currency: currency.String(), Err: fault.ErrMalformedRow}
		}
		if _, ok := m[currency]; ok {
			return nil, nil, &fault.RowError{Currency: currency.String(), Err: fault.ErrDuplicateCurrency}
		}

		values := make([]int64, 0, n-1)
		for _, cell := range row[1:] {
			v, err := parseValue(cell)
			if nil != err {
				return nil, nil, &fault.RowError{Currency: currency.String(), Values: values, Err: err}
			}
			values = append(values, v)
		}
		m[currency] = values
	}

	if err := Validate(len(roots), m); nil != err {
		return nil, nil, err
	}
	return roots, m, nil
}
