// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2022 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"

	"github.com/omcash/omcash/account"
	"github.com/omcash/omcash/cashverifier"
	"github.com/omcash/omcash/fault"
	"github.com/omcash/omcash/replay"
	"github.com/omcash/omcash/tradematrix"
	"github.com/omcash/omcash/transactionrecord"
)

// Append - sign a proposed block and add it to the chain
//
// the transaction is stored if not already present and every action
// must be a valid lifecycle step for this chain; a confirm of an
// expired transaction, or of one that some other participant has not
// registered, is refused; the chain with the new block must still
// replay, so nothing is written that a later verification would reject
func (l *Ledger) Append(pb *transactionrecord.Protoblock, signer *account.PrivateKey) (*Block, error) {
	owner := l.Owner()
	if owner != pb.Owner || owner != signer.Account().Fingerprint() {
		return nil, fault.ErrWrongBlockOwner
	}

	// reads other chains so must not hold this chain's lock
	if err := l.checkRegistered(pb); nil != err {
		l.log.Errorf("confirm refused: %s", err)
		return nil, err
	}

	l.Lock()
	defer l.Unlock()

	if nil == l.database {
		return nil, fault.ErrNotInitialised
	}

	batch := new(leveldb.Batch)

	// transaction supplied with the proposal
	var proposed transactionrecord.Digest
	if nil != pb.Transaction {
		packed, err := pb.Transaction.Pack()
		if nil != err {
			return nil, err
		}
		proposed = packed.MakeDigest()

		found, err := l.pool.Transactions.has(proposed[:])
		if nil != err {
			return nil, err
		}
		if !found {
			l.pool.Transactions.put(batch, proposed[:], packed)
		}
	}

	// resolve each action against the proposal or the stored transactions
	lookup := func(d transactionrecord.Digest) (*transactionrecord.Transaction, error) {
		if nil != pb.Transaction && proposed == d {
			return pb.Transaction, nil
		}
		return l.transaction(d)
	}

	statuses := make(map[transactionrecord.Digest]transactionrecord.Status)
	for _, action := range pb.Actions {
		d := action.Transaction

		tx, err := lookup(d)
		if nil != err {
			return nil, err
		}

		if err := l.checkAction(action.Kind, tx); nil != err {
			l.log.Errorf("%s: %s  error: %s", action.Kind, d, err)
			return nil, err
		}

		current, ok := statuses[d]
		if !ok {
			s, err := l.status(d)
			if nil != err {
				return nil, err
			}
			current = s
		}
		next, err := current.Next(action.Kind)
		if nil != err {
			l.log.Errorf("%s: %s  from status: %s", action.Kind, d, current)
			return nil, err
		}
		statuses[d] = next
	}

	if err := l.dryRun(pb.Actions, lookup); nil != err {
		l.log.Errorf("block would not verify: %s", err)
		return nil, err
	}

	n, err := l.numBlocks()
	if nil != err {
		return nil, err
	}
	if 0 == n {
		return nil, fault.ErrEmptyChain
	}
	previous, err := l.block(n - 1)
	if nil != err {
		return nil, err
	}

	block := &Block{
		Number:    n,
		Previous:  previous.Link(),
		Timestamp: l.now().Unix(),
		Owner:     owner,
		Actions:   pb.Actions,
	}
	block.sign(signer)

	value, err := encodeBlock(block)
	if nil != err {
		return nil, err
	}
	l.pool.Blocks.put(batch, blockKey(n), value)
	for d, s := range statuses {
		l.pool.Status.put(batch, d[:], []byte{byte(s)})
	}

	if err := l.database.Write(batch, nil); nil != err {
		return nil, errors.Wrapf(err, "write block: %d", n)
	}

	l.log.Infof("appended block: %d  actions: %d", n, len(block.Actions))
	return block, nil
}

// AppendAction - add a block holding a single action on a transaction
// already known to this chain
func (l *Ledger) AppendAction(kind transactionrecord.ActionKind, digest transactionrecord.Digest, signer *account.PrivateKey) (*Block, error) {
	pb := &transactionrecord.Protoblock{
		Root:  l.root,
		Owner: l.Owner(),
		Actions: []transactionrecord.Action{
			{Kind: kind, Transaction: digest},
		},
	}
	return l.Append(pb, signer)
}

// structural checks before an action can be recorded
func (l *Ledger) checkAction(kind transactionrecord.ActionKind, tx *transactionrecord.Transaction) error {
	if !kind.Valid() {
		return fault.ErrUnknownAction
	}
	if _, ok := tx.ParticipantIndex(l.Owner()); !ok {
		return fault.ErrNotParticipant
	}
	for _, contract := range tx.Contracts {
		if err := tradematrix.Validate(len(tx.Participants), contract.TradeMatrix); nil != err {
			return err
		}
	}
	if transactionrecord.ConfirmTransaction == kind && tx.Expired(l.now()) {
		return fault.ErrTransactionExpired
	}
	return nil
}

// every other participant must have registered a transaction before
// it can be confirmed, otherwise the receipts would be credited
// without the matching spends
func (l *Ledger) checkRegistered(pb *transactionrecord.Protoblock) error {
	self := l.Owner()

	for _, action := range pb.Actions {
		if transactionrecord.ConfirmTransaction != action.Kind {
			continue
		}
		d := action.Transaction

		var tx *transactionrecord.Transaction
		if nil != pb.Transaction {
			digest, err := pb.Transaction.Digest()
			if nil != err {
				return err
			}
			if digest == d {
				tx = pb.Transaction
			}
		}
		if nil == tx {
			var err error
			tx, err = l.Transaction(d)
			if nil != err {
				return err
			}
		}

		for _, p := range tx.Participants {
			if self == p.Owner {
				continue
			}

			var status transactionrecord.Status
			err := withChain(p.Root.Path, l.contractDirectory, func(other *Ledger) error {
				if p.Owner != other.Owner() {
					return fault.ErrWrongBlockOwner
				}
				var err error
				status, err = other.Status(d)
				return err
			})
			if nil != err {
				return errors.Wrapf(err, "participant: %s  root: %q", p.Owner, p.Root.Path)
			}

			switch status {
			case transactionrecord.StatusRegistered, transactionrecord.StatusConfirmed, transactionrecord.StatusAnnulled:
			default:
				return errors.Wrapf(fault.ErrNotRegistered, "participant: %s  status: %s", p.Owner, status)
			}
		}
	}
	return nil
}

// replay the stored chain and then the new actions
func (l *Ledger) dryRun(actions []transactionrecord.Action, lookup func(transactionrecord.Digest) (*transactionrecord.Transaction, error)) error {
	v := cashverifier.New(l.log, l.Owner(), transactionrecord.CashContentHash)
	if _, err := replay.Replay(lockedChain{l}, v); nil != err {
		return err
	}

	for _, action := range actions {
		tx, err := lookup(action.Transaction)
		if nil != err {
			return err
		}
		if err := v.Apply(action.Kind, tx); nil != err {
			return err
		}
	}
	return nil
}

// replay view of a chain whose lock is already held by the caller
type lockedChain struct {
	l *Ledger
}

func (c lockedChain) Owner() account.Fingerprint {
	return c.l.Owner()
}

func (c lockedChain) NumBlocks() (uint64, error) {
	return c.l.numBlocks()
}

func (c lockedChain) VerifyBlock(number uint64) error {
	return c.l.verifyBlock(number)
}

func (c lockedChain) Actions(number uint64) ([]transactionrecord.Action, error) {
	block, err := c.l.block(number)
	if nil != err {
		return nil, err
	}
	return block.Actions, nil
}

func (c lockedChain) Transaction(digest transactionrecord.Digest) (*transactionrecord.Transaction, error) {
	return c.l.transaction(digest)
}
