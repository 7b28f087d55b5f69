// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2022 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package cashverifier_test

import (
	"errors"
	"math"
	"os"
	"testing"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omcash/omcash/account"
	"github.com/omcash/omcash/cashverifier"
	"github.com/omcash/omcash/fault"
	"github.com/omcash/omcash/tradematrix"
	"github.com/omcash/omcash/transactionrecord"
)

const (
	owner0 = account.Fingerprint("0000000000000000000000000000000000000000")
	owner1 = account.Fingerprint("1111111111111111111111111111111111111111")
	owner2 = account.Fingerprint("2222222222222222222222222222222222222222")
	owner3 = account.Fingerprint("3333333333333333333333333333333333333333")

	authorX = account.Fingerprint("AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA")
	authorY = account.Fingerprint("BBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBB")
)

var owners = []account.Fingerprint{owner0, owner1, owner2, owner3}

// Test main entrypoint
func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "cashverifier")
	if nil != err {
		os.Exit(1)
	}

	logging := logger.Configuration{
		Directory: dir,
		File:      "testing.log",
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "trace",
		},
	}
	_ = logger.Initialise(logging)

	result := m.Run()

	logger.Finalise()
	os.RemoveAll(dir)
	os.Exit(result)
}

// a cash transaction between the first n owners
func makeTransaction(n int, authors []account.Fingerprint, m tradematrix.Matrix) *transactionrecord.Transaction {
	tx := &transactionrecord.Transaction{
		Contracts: []transactionrecord.Contract{
			{
				Path:        transactionrecord.PathRef{Location: 0, Path: "smart_contracts/pyomcash"},
				ContentHash: transactionrecord.CashContentHash,
				Authors:     authors,
				TradeMatrix: m,
			},
		},
		NumLocations: 1,
		Expiry:       time.Unix(1700000000, 0).UTC(),
	}
	for i := 0; i < n; i += 1 {
		tx.Participants = append(tx.Participants, transactionrecord.Participant{
			Index: i,
			Root:  transactionrecord.PathRef{Location: 0, Path: "user" + string(rune('0'+i)) + "/pyom"},
			Owner: owners[i],
		})
	}
	return tx
}

func newVerifier(self account.Fingerprint) *cashverifier.Verifier {
	return cashverifier.New(logger.New("cashverifier"), self, transactionrecord.CashContentHash)
}

func TestIssuerUnboundedSpend(t *testing.T) {
	v := newVerifier(owner0)
	tx := makeTransaction(2, []account.Fingerprint{authorX}, tradematrix.Matrix{owner0: {-1000000, 1000000}})

	err := v.Apply(transactionrecord.RegisterTransaction, tx)
	require.Nil(t, err, "issuer register")
	assert.Equal(t, int64(-1000000), v.Sheet().GetOrZero(owner0), "issuer balance")
}

func TestNonIssuerCannotGoNegative(t *testing.T) {
	v := newVerifier(owner1)
	tx := makeTransaction(2, []account.Fingerprint{authorX}, tradematrix.Matrix{owner0: {5, -5}})

	err := v.Apply(transactionrecord.RegisterTransaction, tx)
	var insufficient *fault.InsufficientBalanceError
	require.True(t, errors.As(err, &insufficient), "expected insufficient balance: %v", err)
	assert.Equal(t, owner0.String(), insufficient.Currency, "currency")
	assert.Equal(t, int64(0), insufficient.Balance, "balance")
	assert.Equal(t, uint64(5), insufficient.Spend, "spend")
	assert.Equal(t, "current balance of 0000000000000000000000000000000000000000 is 0, so you cannot spend 5", err.Error(), "message")

	assert.Equal(t, 0, v.Sheet().Len(), "sheet changed")
	assert.Equal(t, transactionrecord.StatusUnknown, v.Status(mustDigest(t, tx)), "status changed")
}

func TestInsufficientBalanceLargestSpend(t *testing.T) {
	v := newVerifier(owner1)
	tx := makeTransaction(3, []account.Fingerprint{authorX}, tradematrix.Matrix{owner0: {math.MaxInt64, math.MinInt64, 1}})

	err := v.Apply(transactionrecord.RegisterTransaction, tx)
	var insufficient *fault.InsufficientBalanceError
	require.True(t, errors.As(err, &insufficient), "expected insufficient balance: %v", err)
	assert.Equal(t, uint64(1)<<63, insufficient.Spend, "spend")
	assert.Equal(t, "current balance of 0000000000000000000000000000000000000000 is 0, so you cannot spend 9223372036854775808", err.Error(), "message")
}

func TestFailingRowLeavesSheetUnchanged(t *testing.T) {
	v := newVerifier(owner1)

	// owner1 issues its own currency first so that row is valid
	tx := makeTransaction(2, []account.Fingerprint{authorX}, tradematrix.Matrix{
		owner0: {5, -5},
		owner1: {1, -1},
	})
	err := v.Apply(transactionrecord.RegisterTransaction, tx)
	assert.True(t, errors.Is(err, fault.ErrInsufficientBalance), "expected insufficient balance: %v", err)
	assert.Equal(t, int64(0), v.Sheet().GetOrZero(owner1), "partial update committed")
	assert.Nil(t, v.Authors(), "author set committed")
}

func TestRegisterCancelRoundTrip(t *testing.T) {
	v := newVerifier(owner0)
	tx := makeTransaction(2, []account.Fingerprint{authorX}, tradematrix.Matrix{
		owner0: {-7, 7},
		owner1: {3, -3},
	})

	require.Nil(t, v.Apply(transactionrecord.RegisterTransaction, tx), "register")
	assert.Equal(t, int64(-7), v.Sheet().GetOrZero(owner0), "after register")
	assert.Equal(t, int64(0), v.Sheet().GetOrZero(owner1), "receipt applied on register")

	require.Nil(t, v.Apply(transactionrecord.CancelTransaction, tx), "cancel")
	assert.Equal(t, int64(0), v.Sheet().GetOrZero(owner0), "after cancel")
	assert.Equal(t, int64(0), v.Sheet().GetOrZero(owner1), "after cancel")
	assert.Equal(t, transactionrecord.StatusCancelled, v.Status(mustDigest(t, tx)), "status")

	// a cancelled transaction cannot be confirmed
	err := v.Apply(transactionrecord.ConfirmTransaction, tx)
	assert.Equal(t, fault.ErrInvalidTransition, err, "confirm after cancel")
}

func TestConfirmAnnulReinstate(t *testing.T) {
	tx := makeTransaction(2, []account.Fingerprint{authorX}, tradematrix.Matrix{
		owner0: {-7, 7},
		owner1: {3, -3},
	})

	// reference: register then confirm
	reference := newVerifier(owner0)
	require.Nil(t, reference.Apply(transactionrecord.RegisterTransaction, tx), "register")
	require.Nil(t, reference.Apply(transactionrecord.ConfirmTransaction, tx), "confirm")
	assert.Equal(t, map[account.Fingerprint]int64{owner0: -7, owner1: 3}, reference.Sheet().Map(), "after confirm")

	v := newVerifier(owner0)
	require.Nil(t, v.Apply(transactionrecord.RegisterTransaction, tx), "register")
	require.Nil(t, v.Apply(transactionrecord.ConfirmTransaction, tx), "confirm")
	require.Nil(t, v.Apply(transactionrecord.AnnulTransaction, tx), "annul")
	assert.Equal(t, int64(-7), v.Sheet().GetOrZero(owner0), "annul touched the spend")
	assert.Equal(t, int64(0), v.Sheet().GetOrZero(owner1), "annul did not remove receipt")

	require.Nil(t, v.Apply(transactionrecord.ReinstateTransaction, tx), "reinstate")
	assert.Equal(t, reference.Sheet().Map(), v.Sheet().Map(), "register→confirm→annul→reinstate differs from register→confirm")
	assert.Equal(t, transactionrecord.StatusConfirmed, v.Status(mustDigest(t, tx)), "status")
}

func TestConfirmWithoutRegister(t *testing.T) {
	v := newVerifier(owner1)
	tx := makeTransaction(2, []account.Fingerprint{authorX}, tradematrix.Matrix{owner0: {-7, 7}})

	err := v.Apply(transactionrecord.ConfirmTransaction, tx)
	assert.Equal(t, fault.ErrInvalidTransition, err, "confirm without register")
	assert.Equal(t, 0, v.Sheet().Len(), "confirm effects applied")
}

func TestUnknownActionFirst(t *testing.T) {
	v := newVerifier(owner0)

	// the transaction is not even looked at
	err := v.Apply(transactionrecord.InvalidAction, nil)
	assert.Equal(t, fault.ErrUnknownAction, err, "invalid action")
	err = v.Apply(transactionrecord.NullAction, nil)
	assert.Equal(t, fault.ErrUnknownAction, err, "null action")
}

func TestOtherLineageIgnored(t *testing.T) {
	v := newVerifier(owner0)
	tx := makeTransaction(2, []account.Fingerprint{authorX}, tradematrix.Matrix{owner0: {-7, 7}})
	tx.Contracts[0].ContentHash = transactionrecord.NewDigest([]byte("some other contract"))

	err := v.Apply(transactionrecord.RegisterTransaction, tx)
	assert.Nil(t, err, "other lineage")
	assert.Equal(t, 0, v.Sheet().Len(), "other lineage applied")
	assert.Equal(t, transactionrecord.StatusUnknown, v.Status(mustDigest(t, tx)), "status changed")
}

func TestNotParticipant(t *testing.T) {
	v := newVerifier(owner3)
	tx := makeTransaction(2, []account.Fingerprint{authorX}, tradematrix.Matrix{owner0: {-7, 7}})

	err := v.Apply(transactionrecord.RegisterTransaction, tx)
	assert.Equal(t, fault.ErrNotParticipant, err, "not a participant")
}

func TestInvalidMatrix(t *testing.T) {
	v := newVerifier(owner0)
	tx := makeTransaction(2, []account.Fingerprint{authorX}, tradematrix.Matrix{owner0: {-7, 6}})

	err := v.Apply(transactionrecord.RegisterTransaction, tx)
	assert.True(t, errors.Is(err, fault.ErrNonZeroSum), "expected non-zero sum: %v", err)

	tx = makeTransaction(2, []account.Fingerprint{authorX}, tradematrix.Matrix{owner0: {-7, 6, 1}})
	err = v.Apply(transactionrecord.RegisterTransaction, tx)
	assert.True(t, errors.Is(err, fault.ErrMalformedRow), "expected malformed row: %v", err)
}

func TestAuthorSetCannotShrink(t *testing.T) {
	v := newVerifier(owner0)

	tx1 := makeTransaction(2, []account.Fingerprint{authorX, authorY}, tradematrix.Matrix{owner0: {-1, 1}})
	require.Nil(t, v.Apply(transactionrecord.RegisterTransaction, tx1), "first")

	tx2 := makeTransaction(2, []account.Fingerprint{authorX}, tradematrix.Matrix{owner0: {-2, 2}})
	err := v.Apply(transactionrecord.RegisterTransaction, tx2)

	var missing *fault.MissingAuthorsError
	require.True(t, errors.As(err, &missing), "expected missing authors: %v", err)
	assert.Equal(t, []string{authorY.String()}, missing.Missing, "exactly the dropped author")
	assert.Equal(t, int64(-1), v.Sheet().GetOrZero(owner0), "sheet changed")

	// growing is fine
	tx3 := makeTransaction(2, []account.Fingerprint{authorY, owner3, authorX}, tradematrix.Matrix{owner0: {-2, 2}})
	require.Nil(t, v.Apply(transactionrecord.RegisterTransaction, tx3), "grow")
	assert.Equal(t, 3, len(v.Authors()), "author count")
}

// four parties each issue a currency and pay the others in one trade
func TestFourPartyTrade(t *testing.T) {
	tx := makeTransaction(4, []account.Fingerprint{authorX}, tradematrix.Matrix{
		owner0: {-3, 1, 1, 1},
		owner1: {2, -6, 2, 2},
		owner2: {3, 3, -9, 3},
		owner3: {4, 4, 4, -12},
	})

	sheets := make([]map[account.Fingerprint]int64, 0, 4)
	for _, owner := range owners {
		v := newVerifier(owner)
		require.Nil(t, v.Apply(transactionrecord.RegisterTransaction, tx), "%s: register", owner)
		require.Nil(t, v.Apply(transactionrecord.ConfirmTransaction, tx), "%s: confirm", owner)
		sheets = append(sheets, v.Sheet().Map())
	}

	assert.Equal(t, map[account.Fingerprint]int64{owner0: -3, owner1: 2, owner2: 3, owner3: 4}, sheets[0], "observer 0")
	assert.Equal(t, map[account.Fingerprint]int64{owner0: 1, owner1: -6, owner2: 3, owner3: 4}, sheets[1], "observer 1")

	for _, currency := range owners {
		total := int64(0)
		for _, sheet := range sheets {
			total += sheet[currency]
		}
		assert.Equal(t, int64(0), total, "%s: total over all observers", currency)
	}
}

// only two of four participants register before expiry
func TestTwoOfFourRegistered(t *testing.T) {
	tx := makeTransaction(4, []account.Fingerprint{authorX}, tradematrix.Matrix{
		owner0: {-3, 1, 1, 1},
		owner1: {2, -6, 2, 2},
		owner2: {3, 3, -9, 3},
		owner3: {4, 4, 4, -12},
	})

	registered := []*cashverifier.Verifier{newVerifier(owner0), newVerifier(owner1)}
	for _, v := range registered {
		require.Nil(t, v.Apply(transactionrecord.RegisterTransaction, tx), "%s: register", v.Owner())
	}

	// the others never registered so cannot confirm
	for _, owner := range []account.Fingerprint{owner2, owner3} {
		v := newVerifier(owner)
		err := v.Apply(transactionrecord.ConfirmTransaction, tx)
		assert.Equal(t, fault.ErrInvalidTransition, err, "%s: confirm without register", owner)
		assert.Equal(t, 0, v.Sheet().Len(), "%s: confirm effects applied", owner)
	}

	// after expiry the registered parties cancel and are restored
	for _, v := range registered {
		require.Nil(t, v.Apply(transactionrecord.CancelTransaction, tx), "%s: cancel", v.Owner())
		for _, currency := range owners {
			assert.Equal(t, int64(0), v.Sheet().GetOrZero(currency), "%s: %s after cancel", v.Owner(), currency)
		}
	}
}

func mustDigest(t *testing.T, tx *transactionrecord.Transaction) transactionrecord.Digest {
	d, err := tx.Digest()
	require.Nil(t, err, "digest")
	return d
}
