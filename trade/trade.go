// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2022 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package trade

import (
	"sync"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/omcash/omcash/account"
	"github.com/omcash/omcash/fault"
	"github.com/omcash/omcash/tradematrix"
	"github.com/omcash/omcash/transactionrecord"
)

// logger channel, created on first use
var channel struct {
	sync.Once
	log *logger.L
}

func logChannel() *logger.L {
	channel.Do(func() {
		channel.log = logger.New("trade")
	})
	return channel.log
}

//go:generate mockgen -destination=mocks/chainlayer.go -package=mocks github.com/omcash/omcash/trade ChainLayer

// DefaultExpiry - how long the parties of a trade have to register it
const DefaultExpiry = 7 * 24 * time.Hour

// ChainLayer - the services a trade needs from the chain store
type ChainLayer interface {
	// fingerprint of the author key of the cash contract below root
	AuthorFingerprint(root string) (account.Fingerprint, error)

	// build the transaction and one unsigned block per participant
	CreateTransaction(participants []transactionrecord.ParticipantInit, expiry time.Duration, init transactionrecord.TransactionInit) ([]*transactionrecord.Protoblock, error)
}

// CreateTrade - propose a cash trade between the chains at roots
//
// roots[i] is the participant for column i of the matrix; the first
// root is the proposer and supplies the contract author
func CreateTrade(expiry time.Duration, roots []string, m tradematrix.Matrix, layer ChainLayer) ([]*transactionrecord.Protoblock, error) {
	log := logChannel()

	if err := tradematrix.Validate(len(roots), m); nil != err {
		log.Errorf("invalid trade matrix: %s", err)
		return nil, err
	}

	author, err := layer.AuthorFingerprint(roots[0])
	if nil != err {
		log.Errorf("author from: %q  error: %s", roots[0], err)
		return nil, &fault.AuthorResolutionError{Root: roots[0], Err: err}
	}

	contract := transactionrecord.Contract{
		Path: transactionrecord.PathRef{
			Location: 0,
			Path:     transactionrecord.CashContractDirectory,
		},
		ContentHash: transactionrecord.CashContentHash,
		Authors:     []account.Fingerprint{author},
		TradeMatrix: m,
	}

	init := transactionrecord.TransactionInit{
		NumLocations: 1,
		Contracts:    []transactionrecord.Contract{contract},
	}

	participants := make([]transactionrecord.ParticipantInit, len(roots))
	for i, root := range roots {
		participants[i] = transactionrecord.ParticipantInit{
			Root: root,
			LocationsInit: []transactionrecord.PathRef{
				{Location: 0, Path: "."},
			},
		}
	}

	protoblocks, err := layer.CreateTransaction(participants, expiry, init)
	if nil != err {
		log.Errorf("create transaction error: %s", err)
		return nil, err
	}

	log.Infof("proposed trade between: %d participants  currencies: %d", len(roots), len(m))
	return protoblocks, nil
}

// SimpleMatrix - two party trade: self gives n of its currency to
// other in exchange for m of other's currency
//
// if both parties are the same the rows are merged
func SimpleMatrix(self account.Fingerprint, other account.Fingerprint, n int64, m int64) tradematrix.Matrix {
	if self == other {
		return tradematrix.Matrix{
			self: {m - n, n - m},
		}
	}
	return tradematrix.Matrix{
		self:  {-n, n},
		other: {m, -m},
	}
}
