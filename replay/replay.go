// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2022 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package replay

import (
	"context"
	"sync"

	"github.com/bitmark-inc/logger"
	"golang.org/x/sync/errgroup"

	"github.com/omcash/omcash/account"
	"github.com/omcash/omcash/balance"
	"github.com/omcash/omcash/cashverifier"
	"github.com/omcash/omcash/fault"
	"github.com/omcash/omcash/transactionrecord"
)

// logger channels, created on first use since the logger must be
// initialised first
var channels struct {
	sync.Once
	replay   *logger.L
	verifier *logger.L
}

func logChannels() (*logger.L, *logger.L) {
	channels.Do(func() {
		channels.replay = logger.New("replay")
		channels.verifier = logger.New("cashverifier")
	})
	return channels.replay, channels.verifier
}

//go:generate mockgen -destination=mocks/chain.go -package=mocks github.com/omcash/omcash/replay Chain

// Chain - read access to one party's chain
//
// blocks are numbered from zero; VerifyBlock checks the signature and
// hash link of a block before its actions are trusted
type Chain interface {
	Owner() account.Fingerprint
	NumBlocks() (uint64, error)
	VerifyBlock(index uint64) error
	Actions(index uint64) ([]transactionrecord.Action, error)
	Transaction(digest transactionrecord.Digest) (*transactionrecord.Transaction, error)
}

// Replay - apply every action of a chain in block order
//
// any failure stops the replay and is returned as a *fault.BlockError
// giving the index of the failing block; the verifier keeps the sheet
// as it was before the failing action
func Replay(c Chain, v *cashverifier.Verifier) (*balance.Sheet, error) {
	log, _ := logChannels()

	n, err := c.NumBlocks()
	if nil != err {
		log.Errorf("%s: block count error: %s", c.Owner(), err)
		return nil, err
	}
	if 0 == n {
		log.Errorf("%s: %s", c.Owner(), fault.ErrEmptyChain)
		return nil, fault.ErrEmptyChain
	}

	for index := uint64(0); index < n; index += 1 {
		if err := replayBlock(c, v, index); nil != err {
			log.Errorf("%s: block: %d  error: %s", c.Owner(), index, err)
			return nil, &fault.BlockError{Index: index, Err: err}
		}
	}

	log.Infof("%s: replayed blocks: %d  currencies: %d", c.Owner(), n, v.Sheet().Len())
	return v.Sheet(), nil
}

func replayBlock(c Chain, v *cashverifier.Verifier, index uint64) error {
	if err := c.VerifyBlock(index); nil != err {
		return err
	}

	actions, err := c.Actions(index)
	if nil != err {
		return err
	}

	for _, action := range actions {
		if !action.Kind.Valid() {
			return fault.ErrUnknownAction
		}
		tx, err := c.Transaction(action.Transaction)
		if nil != err {
			return err
		}
		if err := v.Apply(action.Kind, tx); nil != err {
			return err
		}
	}
	return nil
}

// VerifyChain - replay a chain from the point of view of its owner
func VerifyChain(c Chain, lineage transactionrecord.Digest) (*balance.Sheet, error) {
	_, log := logChannels()
	v := cashverifier.New(log, c.Owner(), lineage)
	return Replay(c, v)
}

// ReplayAll - verify several independent chains in parallel
//
// each chain gets its own goroutine and verifier; results are in the
// same order as chains and the first error is returned
func ReplayAll(ctx context.Context, chains []Chain, lineage transactionrecord.Digest) ([]*balance.Sheet, error) {
	sheets := make([]*balance.Sheet, len(chains))

	g, ctx := errgroup.WithContext(ctx)
	for i, c := range chains {
		i, c := i, c
		g.Go(func() error {
			if err := ctx.Err(); nil != err {
				return err
			}
			sheet, err := VerifyChain(c, lineage)
			if nil != err {
				return err
			}
			sheets[i] = sheet
			return nil
		})
	}

	if err := g.Wait(); nil != err {
		return nil, err
	}
	return sheets, nil
}
