// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2022 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"encoding/binary"
	"encoding/json"
	"sort"

	"github.com/pkg/errors"

	"github.com/omcash/omcash/account"
	"github.com/omcash/omcash/fault"
	"github.com/omcash/omcash/transactionrecord"
)

// Owner - fingerprint of the chain owner
func (l *Ledger) Owner() account.Fingerprint {
	return l.owner.Fingerprint()
}

// NumBlocks - number of blocks including the genesis block
func (l *Ledger) NumBlocks() (uint64, error) {
	l.RLock()
	defer l.RUnlock()
	return l.numBlocks()
}

func (l *Ledger) numBlocks() (uint64, error) {
	if nil == l.database {
		return 0, fault.ErrNotInitialised
	}
	last, found, err := l.pool.Blocks.lastElement()
	if nil != err {
		return 0, err
	}
	if !found {
		return 0, nil
	}
	if 8 != len(last.Key) {
		return 0, fault.ErrInvalidBlockNumber
	}
	return binary.BigEndian.Uint64(last.Key) + 1, nil
}

// Block - read one block
func (l *Ledger) Block(number uint64) (*Block, error) {
	l.RLock()
	defer l.RUnlock()
	return l.block(number)
}

func (l *Ledger) block(number uint64) (*Block, error) {
	if nil == l.database {
		return nil, fault.ErrNotInitialised
	}
	value, err := l.pool.Blocks.get(blockKey(number))
	if nil != err {
		return nil, err
	}
	if nil == value {
		return nil, fault.ErrBlockNotFound
	}
	return decodeBlock(value)
}

// VerifyBlock - check number, owner, signature and hash link of a block
func (l *Ledger) VerifyBlock(number uint64) error {
	l.RLock()
	defer l.RUnlock()
	return l.verifyBlock(number)
}

func (l *Ledger) verifyBlock(number uint64) error {
	block, err := l.block(number)
	if nil != err {
		return err
	}
	if number != block.Number {
		return fault.ErrInvalidBlockNumber
	}
	if err := block.check(l.owner); nil != err {
		return err
	}

	expected := Link{}
	if number > 0 {
		previous, err := l.block(number - 1)
		if nil != err {
			return err
		}
		expected = previous.Link()
	}
	if expected != block.Previous {
		return fault.ErrHashMismatch
	}
	return nil
}

// Actions - the action list of a block
func (l *Ledger) Actions(number uint64) ([]transactionrecord.Action, error) {
	block, err := l.Block(number)
	if nil != err {
		return nil, err
	}
	return block.Actions, nil
}

// Transaction - look up a transaction referenced by this chain
//
// the packed record is checked against its digest before use
func (l *Ledger) Transaction(digest transactionrecord.Digest) (*transactionrecord.Transaction, error) {
	l.RLock()
	defer l.RUnlock()
	return l.transaction(digest)
}

func (l *Ledger) transaction(digest transactionrecord.Digest) (*transactionrecord.Transaction, error) {
	key := digest.String()
	if tx, found := l.transactions.Get(key); found {
		return tx.(*transactionrecord.Transaction), nil
	}

	if nil == l.database {
		return nil, fault.ErrNotInitialised
	}

	packed, err := l.pool.Transactions.get(digest[:])
	if nil != err {
		return nil, err
	}
	if nil == packed {
		return nil, fault.ErrTransactionNotFound
	}
	if digest != transactionrecord.Packed(packed).MakeDigest() {
		return nil, fault.ErrHashMismatch
	}
	tx, err := transactionrecord.Packed(packed).Unpack()
	if nil != err {
		return nil, errors.Wrapf(err, "unpack transaction: %s", digest)
	}

	l.transactions.SetDefault(key, tx)
	return tx, nil
}

// Status - lifecycle position of a transaction on this chain
func (l *Ledger) Status(digest transactionrecord.Digest) (transactionrecord.Status, error) {
	l.RLock()
	defer l.RUnlock()
	return l.status(digest)
}

func (l *Ledger) status(digest transactionrecord.Digest) (transactionrecord.Status, error) {
	if nil == l.database {
		return transactionrecord.StatusUnknown, fault.ErrNotInitialised
	}
	value, err := l.pool.Status.get(digest[:])
	if nil != err {
		return transactionrecord.StatusUnknown, err
	}
	if 1 != len(value) {
		return transactionrecord.StatusUnknown, nil
	}
	return transactionrecord.Status(value[0]), nil
}

func encodeBlock(block *Block) ([]byte, error) {
	value, err := json.Marshal(block)
	if nil != err {
		return nil, errors.Wrapf(err, "encode block: %d", block.Number)
	}
	return value, nil
}

func decodeBlock(value []byte) (*Block, error) {
	block := &Block{}
	if err := json.Unmarshal(value, block); nil != err {
		return nil, errors.Wrap(err, "decode block")
	}
	return block, nil
}

// Counterparties - sorted roots of the other participants in every
// transaction this chain has recorded
func (l *Ledger) Counterparties() ([]string, error) {
	n, err := l.NumBlocks()
	if nil != err {
		return nil, err
	}

	self := l.Owner()
	seen := make(map[string]struct{})
	for i := uint64(0); i < n; i += 1 {
		actions, err := l.Actions(i)
		if nil != err {
			return nil, err
		}
		for _, action := range actions {
			tx, err := l.Transaction(action.Transaction)
			if nil != err {
				return nil, err
			}
			for _, p := range tx.Participants {
				if self != p.Owner {
					seen[p.Root.Path] = struct{}{}
				}
			}
		}
	}

	roots := make([]string, 0, len(seen))
	for root := range seen {
		roots = append(roots, root)
	}
	sort.Strings(roots)
	return roots, nil
}
