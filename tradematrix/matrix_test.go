// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2022 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package tradematrix_test

import (
	"encoding/json"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omcash/omcash/account"
	"github.com/omcash/omcash/fault"
	"github.com/omcash/omcash/tradematrix"
)

const (
	currencyA = account.Fingerprint("96184222620D63E9F0EE9D092A5D1800F9270BD8")
	currencyB = account.Fingerprint("34494EA12F87A474B5028BC9D1C968A30BB32446")
)

func TestValidate(t *testing.T) {
	items := []struct {
		n   int
		m   tradematrix.Matrix
		err error
	}{
		{2, tradematrix.Matrix{currencyA: {-3, 3}}, nil},
		{3, tradematrix.Matrix{currencyA: {-3, 1, 2}, currencyB: {2, -6, 4}}, nil},
		{2, tradematrix.Matrix{}, nil},
		{1, tradematrix.Matrix{currencyA: {0}}, nil},
		{3, tradematrix.Matrix{currencyA: {math.MaxInt64, 1, math.MinInt64}}, nil},
		{2, tradematrix.Matrix{currencyA: {-3, 2}}, fault.ErrNonZeroSum},
		{3, tradematrix.Matrix{currencyA: {-3, 3}}, fault.ErrMalformedRow},
		{2, tradematrix.Matrix{"": {-3, 3}}, fault.ErrInvalidFingerprint},
		{0, tradematrix.Matrix{}, fault.ErrTooFewParticipants},
	}

	for i, item := range items {
		err := tradematrix.Validate(item.n, item.m)
		if nil == item.err {
			assert.Nil(t, err, "%d: unexpected error", i)
		} else {
			assert.True(t, errors.Is(err, item.err), "%d: error: %v  expected: %v", i, err, item.err)
		}
	}
}

func TestCurrenciesSorted(t *testing.T) {
	m := tradematrix.Matrix{currencyA: {0, 0}, currencyB: {0, 0}}
	assert.Equal(t, []account.Fingerprint{currencyB, currencyA}, m.Currencies())
}

func TestUnmarshalJSON(t *testing.T) {
	var m tradematrix.Matrix
	err := json.Unmarshal([]byte(`{"96184222620D63E9F0EE9D092A5D1800F9270BD8":[-7,7]}`), &m)
	require.Nil(t, err, "unmarshal")
	assert.Equal(t, tradematrix.Matrix{currencyA: {-7, 7}}, m)

	err = json.Unmarshal([]byte(`{"96184222620D63E9F0EE9D092A5D1800F9270BD8":[-7.5,7.5]}`), &m)
	assert.True(t, errors.Is(err, fault.ErrNonIntegerValue), "fraction accepted: %v", err)
}

func TestReadCSV(t *testing.T) {
	text := ",user0/pyom/, user1/pyom/, user2/pyom/\n" +
		"96184222620D63E9F0EE9D092A5D1800F9270BD8, -3, 1, 2\n" +
		"34494EA12F87A474B5028BC9D1C968A30BB32446,2,-6,4\n"

	roots, m, err := tradematrix.ReadCSV(strings.NewReader(text))
	require.Nil(t, err, "read csv")
	assert.Equal(t, []string{"user0/pyom/", "user1/pyom/", "user2/pyom/"}, roots, "roots")
	assert.Equal(t, tradematrix.Matrix{
		currencyA: {-3, 1, 2},
		currencyB: {2, -6, 4},
	}, m, "matrix")
}

func TestReadCSVErrors(t *testing.T) {
	a := currencyA.String()
	items := []struct {
		text string
		err  error
	}{
		{"", fault.ErrTooFewColumns},
		{",\n", nil},
		{"\n", fault.ErrTooFewColumns},
		{"x,user0/pyom/\n", fault.ErrFirstCellNotEmpty},
		{",a,b\n" + a + ",1\n", fault.ErrMalformedRow},
		{",a,b\n" + a + ",1,-1,0\n", fault.ErrMalformedRow},
		{",a,b\n" + a + ",1.5,-1.5\n", fault.ErrNonIntegerValue},
		{",a,b\n" + a + ",one,-1\n", fault.ErrNonIntegerValue},
		{",a,b\n" + a + ",1,1\n", fault.ErrNonZeroSum},
		{",a,b\n" + a + ",1,-1\n" + a + ",2,-2\n", fault.ErrDuplicateCurrency},
		{",a,b\n" + strings.ToLower(a) + ",1,-1\n" + a + ",2,-2\n", fault.ErrDuplicateCurrency},
		{",a,b\nC,1,-1\n", fault.ErrInvalidFingerprint},
		{",a,b\n" + a + "00,1,-1\n", fault.ErrInvalidFingerprint},
		{",a,b\n,1,-1\n", fault.ErrInvalidFingerprint},
	}

	for i, item := range items {
		_, _, err := tradematrix.ReadCSV(strings.NewReader(item.text))
		if nil == item.err {
			assert.Nil(t, err, "%d: unexpected error", i)
		} else {
			assert.True(t, errors.Is(err, item.err), "%d: error: %v  expected: %v", i, err, item.err)
		}
	}
}
