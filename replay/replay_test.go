// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2022 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package replay_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omcash/omcash/account"
	"github.com/omcash/omcash/cashverifier"
	"github.com/omcash/omcash/fault"
	"github.com/omcash/omcash/replay"
	"github.com/omcash/omcash/replay/mocks"
	"github.com/omcash/omcash/tradematrix"
	"github.com/omcash/omcash/transactionrecord"
)

const (
	owner0 = account.Fingerprint("0000000000000000000000000000000000000000")
	owner1 = account.Fingerprint("1111111111111111111111111111111111111111")
	author = account.Fingerprint("AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA")
)

// Test main entrypoint
func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "replay")
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

// owner0 pays n of its own currency to owner1
func makeTrade(t *testing.T, n int64) (*transactionrecord.Transaction, transactionrecord.Digest) {
	tx := &transactionrecord.Transaction{
		Participants: []transactionrecord.Participant{
			{Index: 0, Root: transactionrecord.PathRef{Path: "user0/pyom"}, Owner: owner0},
			{Index: 1, Root: transactionrecord.PathRef{Path: "user1/pyom"}, Owner: owner1},
		},
		Contracts: []transactionrecord.Contract{
			{
				Path:        transactionrecord.PathRef{Path: "smart_contracts/pyomcash"},
				ContentHash: transactionrecord.CashContentHash,
				Authors:     []account.Fingerprint{author},
				TradeMatrix: tradematrix.Matrix{owner0: {-n, n}},
			},
		},
		NumLocations: 1,
		Expiry:       time.Unix(1700000000, 0).UTC(),
	}
	d, err := tx.Digest()
	require.Nil(t, err, "digest")
	return tx, d
}

func TestEmptyChain(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	c := mocks.NewMockChain(ctl)
	c.EXPECT().Owner().Return(owner0).AnyTimes()
	c.EXPECT().NumBlocks().Return(uint64(0), nil).Times(1)

	_, err := replay.VerifyChain(c, transactionrecord.CashContentHash)
	assert.Equal(t, fault.ErrEmptyChain, err, "empty chain")
}

func TestReplay(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	tx, d := makeTrade(t, 5)

	c := mocks.NewMockChain(ctl)
	c.EXPECT().Owner().Return(owner1).AnyTimes()
	c.EXPECT().NumBlocks().Return(uint64(3), nil).Times(1)
	gomock.InOrder(
		c.EXPECT().VerifyBlock(uint64(0)).Return(nil),
		c.EXPECT().Actions(uint64(0)).Return(nil, nil),
		c.EXPECT().VerifyBlock(uint64(1)).Return(nil),
		c.EXPECT().Actions(uint64(1)).Return([]transactionrecord.Action{
			{Kind: transactionrecord.RegisterTransaction, Transaction: d},
		}, nil),
		c.EXPECT().VerifyBlock(uint64(2)).Return(nil),
		c.EXPECT().Actions(uint64(2)).Return([]transactionrecord.Action{
			{Kind: transactionrecord.ConfirmTransaction, Transaction: d},
		}, nil),
	)
	c.EXPECT().Transaction(d).Return(tx, nil).Times(2)

	sheet, err := replay.VerifyChain(c, transactionrecord.CashContentHash)
	require.Nil(t, err, "replay")
	assert.Equal(t, map[account.Fingerprint]int64{owner0: 5}, sheet.Map(), "sheet")
}

func TestReplayUnknownAction(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	tx, d := makeTrade(t, 5)

	c := mocks.NewMockChain(ctl)
	c.EXPECT().Owner().Return(owner0).AnyTimes()
	c.EXPECT().NumBlocks().Return(uint64(4), nil).Times(1)
	c.EXPECT().VerifyBlock(gomock.Any()).Return(nil).Times(3)
	c.EXPECT().Actions(uint64(0)).Return(nil, nil)
	c.EXPECT().Actions(uint64(1)).Return([]transactionrecord.Action{
		{Kind: transactionrecord.RegisterTransaction, Transaction: d},
	}, nil)
	c.EXPECT().Actions(uint64(2)).Return([]transactionrecord.Action{
		{Kind: transactionrecord.InvalidAction, Transaction: d},
	}, nil)
	c.EXPECT().Transaction(d).Return(tx, nil).Times(1)

	v := cashverifier.New(logger.New("cashverifier"), owner0, transactionrecord.CashContentHash)
	sheet, err := replay.Replay(c, v)
	assert.Nil(t, sheet, "sheet returned on failure")

	var blockErr *fault.BlockError
	require.True(t, errors.As(err, &blockErr), "expected block error: %v", err)
	assert.Equal(t, uint64(2), blockErr.Index, "block index")
	assert.Equal(t, fault.ErrUnknownAction, errors.Unwrap(err), "cause")

	// last consistent state is still available
	assert.Equal(t, int64(-5), v.Sheet().GetOrZero(owner0), "diagnostic sheet")
}

func TestReplayBadBlock(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	c := mocks.NewMockChain(ctl)
	c.EXPECT().Owner().Return(owner0).AnyTimes()
	c.EXPECT().NumBlocks().Return(uint64(2), nil).Times(1)
	c.EXPECT().VerifyBlock(uint64(0)).Return(nil)
	c.EXPECT().Actions(uint64(0)).Return(nil, nil)
	c.EXPECT().VerifyBlock(uint64(1)).Return(fault.ErrInvalidSignature)

	_, err := replay.VerifyChain(c, transactionrecord.CashContentHash)
	assert.Equal(t, "blockchain verification failed in block 1: invalid signature", err.Error(), "message")
	assert.True(t, errors.Is(err, fault.ErrInvalidSignature), "cause")
}

func TestReplayMissingTransaction(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	_, d := makeTrade(t, 5)

	c := mocks.NewMockChain(ctl)
	c.EXPECT().Owner().Return(owner0).AnyTimes()
	c.EXPECT().NumBlocks().Return(uint64(1), nil).Times(1)
	c.EXPECT().VerifyBlock(uint64(0)).Return(nil)
	c.EXPECT().Actions(uint64(0)).Return([]transactionrecord.Action{
		{Kind: transactionrecord.RegisterTransaction, Transaction: d},
	}, nil)
	c.EXPECT().Transaction(d).Return(nil, fault.ErrTransactionNotFound)

	_, err := replay.VerifyChain(c, transactionrecord.CashContentHash)
	assert.True(t, errors.Is(err, fault.ErrTransactionNotFound), "expected not found: %v", err)
}

func TestReplayAll(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	tx, d := makeTrade(t, 5)

	chains := make([]replay.Chain, 0, 2)
	for _, item := range []struct {
		owner   account.Fingerprint
		actions []transactionrecord.Action
	}{
		{owner0, []transactionrecord.Action{{Kind: transactionrecord.RegisterTransaction, Transaction: d}}},
		{owner1, []transactionrecord.Action{
			{Kind: transactionrecord.RegisterTransaction, Transaction: d},
			{Kind: transactionrecord.ConfirmTransaction, Transaction: d},
		}},
	} {
		c := mocks.NewMockChain(ctl)
		c.EXPECT().Owner().Return(item.owner).AnyTimes()
		c.EXPECT().NumBlocks().Return(uint64(1), nil)
		c.EXPECT().VerifyBlock(uint64(0)).Return(nil)
		c.EXPECT().Actions(uint64(0)).Return(item.actions, nil)
		c.EXPECT().Transaction(d).Return(tx, nil).AnyTimes()
		chains = append(chains, c)
	}

	sheets, err := replay.ReplayAll(context.Background(), chains, transactionrecord.CashContentHash)
	require.Nil(t, err, "replay all")
	require.Equal(t, 2, len(sheets), "sheet count")
	assert.Equal(t, int64(-5), sheets[0].GetOrZero(owner0), "owner0")
	assert.Equal(t, int64(5), sheets[1].GetOrZero(owner0), "owner1")
}

func TestReplayAllError(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	c := mocks.NewMockChain(ctl)
	c.EXPECT().Owner().Return(owner0).AnyTimes()
	c.EXPECT().NumBlocks().Return(uint64(0), nil)

	_, err := replay.ReplayAll(context.Background(), []replay.Chain{c}, transactionrecord.CashContentHash)
	assert.Equal(t, fault.ErrEmptyChain, err, "error not returned")
}
