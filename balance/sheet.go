// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2022 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package balance

import (
	"fmt"
	"io"
	"math"
	"sort"

	"github.com/omcash/omcash/account"
	"github.com/omcash/omcash/fault"
)

// Sheet - per-currency balances as seen by one observer
//
// a currency that is absent has a balance of exactly zero
type Sheet struct {
	balances map[account.Fingerprint]int64
}

// New - an empty sheet
func New() *Sheet {
	return &Sheet{
		balances: make(map[account.Fingerprint]int64),
	}
}

// GetOrZero - balance of a currency, zero if never touched
func (s *Sheet) GetOrZero(currency account.Fingerprint) int64 {
	return s.balances[currency]
}

// Set - replace the balance of a currency
func (s *Sheet) Set(currency account.Fingerprint, value int64) {
	s.balances[currency] = value
}

// Len - number of currencies held
func (s *Sheet) Len() int {
	return len(s.balances)
}

// Currencies - all currencies on the sheet in ascending order
func (s *Sheet) Currencies() []account.Fingerprint {
	currencies := make([]account.Fingerprint, 0, len(s.balances))
	for currency := range s.balances {
		currencies = append(currencies, currency)
	}
	sort.Slice(currencies, func(i, j int) bool {
		return currencies[i] < currencies[j]
	})
	return currencies
}

// Map - a copy of the balances
func (s *Sheet) Map() map[account.Fingerprint]int64 {
	m := make(map[account.Fingerprint]int64, len(s.balances))
	for currency, value := range s.balances {
		m[currency] = value
	}
	return m
}

// Add - overflow checked sum of a balance and a delta
func Add(value int64, delta int64) (int64, error) {
	if delta > 0 && value > math.MaxInt64-delta {
		return 0, fault.ErrBalanceOverflow
	}
	if delta < 0 && value < math.MinInt64-delta {
		return 0, fault.ErrBalanceOverflow
	}
	return value + delta, nil
}

// Sub - overflow checked difference of a balance and a delta
func Sub(value int64, delta int64) (int64, error) {
	if delta < 0 && value > math.MaxInt64+delta {
		return 0, fault.ErrBalanceOverflow
	}
	if delta > 0 && value < math.MinInt64+delta {
		return 0, fault.ErrBalanceOverflow
	}
	return value - delta, nil
}

// WriteReport - one line per currency in currency order:
//
//   <currency>,<balance>,self
//   <currency>,<balance>,other
//
// "self" marks the currency issued by the owner of the sheet
func (s *Sheet) WriteReport(w io.Writer, self account.Fingerprint) error {
	for _, currency := range s.Currencies() {
		issuer := "other"
		if self == currency {
			issuer = "self"
		}
		if _, err := fmt.Fprintf(w, "%s,%d,%s\n", currency, s.balances[currency], issuer); nil != err {
			return err
		}
	}
	return nil
}
