// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2022 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"path/filepath"
	"time"

	"github.com/pkg/errors"

	"github.com/omcash/omcash/account"
	"github.com/omcash/omcash/fault"
	"github.com/omcash/omcash/transactionrecord"
)

// AuthorFingerprint - fingerprint of the contract author key below root
func (l *Ledger) AuthorFingerprint(root string) (account.Fingerprint, error) {
	author, err := account.ReadPublicKeyFile(filepath.Join(root, l.contractDirectory, AuthorPublicKeyFile))
	if nil != err {
		return "", err
	}
	return author.Fingerprint(), nil
}

// OwnerFingerprint - fingerprint of the owner of the chain at root
func OwnerFingerprint(root string) (account.Fingerprint, error) {
	owner, err := account.ReadPublicKeyFile(filepath.Join(root, OwnerPublicKeyFile))
	if nil != err {
		return "", errors.Wrapf(err, "owner key of: %q", root)
	}
	return owner.Fingerprint(), nil
}

// CreateTransaction - build a transaction and the register block
// proposal for every participant
//
// the transaction expires expiry after now, to the second; participant
// roots are stored as absolute paths
func (l *Ledger) CreateTransaction(participants []transactionrecord.ParticipantInit, expiry time.Duration, init transactionrecord.TransactionInit) ([]*transactionrecord.Protoblock, error) {
	if 0 == len(participants) {
		return nil, fault.ErrTooFewParticipants
	}

	tx := &transactionrecord.Transaction{
		Participants: make([]transactionrecord.Participant, len(participants)),
		Contracts:    init.Contracts,
		NumLocations: init.NumLocations,
		Expiry:       l.now().Add(expiry).UTC().Truncate(time.Second),
	}

	for i, p := range participants {
		if uint64(len(p.LocationsInit)) != init.NumLocations {
			return nil, fault.ErrInvalidLocation
		}
		root, err := filepath.Abs(p.Root)
		if nil != err {
			return nil, errors.Wrapf(err, "participant root: %q", p.Root)
		}
		owner, err := OwnerFingerprint(root)
		if nil != err {
			return nil, err
		}
		tx.Participants[i] = transactionrecord.Participant{
			Index: i,
			Root:  transactionrecord.PathRef{Location: 0, Path: root},
			Owner: owner,
		}
	}

	digest, err := tx.Digest()
	if nil != err {
		return nil, err
	}

	protoblocks := make([]*transactionrecord.Protoblock, len(participants))
	for i, p := range tx.Participants {
		protoblocks[i] = &transactionrecord.Protoblock{
			Root:        p.Root.Path,
			Owner:       p.Owner,
			Transaction: tx,
			Actions: []transactionrecord.Action{
				{Kind: transactionrecord.RegisterTransaction, Transaction: digest},
			},
		}
	}

	l.log.Infof("created transaction: %s  participants: %d  expiry: %s", digest, len(participants), tx.Expiry)
	return protoblocks, nil
}
