// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2022 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package cashverifier

import (
	"github.com/bitmark-inc/logger"

	"github.com/omcash/omcash/account"
	"github.com/omcash/omcash/authorpolicy"
	"github.com/omcash/omcash/balance"
	"github.com/omcash/omcash/fault"
	"github.com/omcash/omcash/tradematrix"
	"github.com/omcash/omcash/transactionrecord"
)

// Verifier - replays the actions of one chain into a balance sheet
//
// holds the state of a single replay and must not be shared between
// chains or goroutines
type Verifier struct {
	log     *logger.L
	self    account.Fingerprint
	lineage transactionrecord.Digest
	sheet   *balance.Sheet
	authors authorpolicy.Set
	status  map[transactionrecord.Digest]transactionrecord.Status
}

// New - verifier for the chain owned by self
//
// only contracts whose content hash equals lineage are interpreted
func New(log *logger.L, self account.Fingerprint, lineage transactionrecord.Digest) *Verifier {
	return &Verifier{
		log:     log,
		self:    self,
		lineage: lineage,
		sheet:   balance.New(),
		authors: nil,
		status:  make(map[transactionrecord.Digest]transactionrecord.Status),
	}
}

// Owner - the observer whose view is being built
func (v *Verifier) Owner() account.Fingerprint {
	return v.self
}

// Sheet - balances after the last successfully applied action
func (v *Verifier) Sheet() *balance.Sheet {
	return v.sheet
}

// Authors - the currently accepted author set
func (v *Verifier) Authors() authorpolicy.Set {
	return v.authors
}

// Status - lifecycle position of a transaction
func (v *Verifier) Status(digest transactionrecord.Digest) transactionrecord.Status {
	return v.status[digest]
}

// Apply - apply one action to the balance sheet
//
// each contract of the lineage is checked for participation, the
// author policy and a valid matrix, then this observer's column of
// every row is applied:
//
//   register:  v < 0  → balance += v  (non-issuer may not go negative)
//   confirm:   v ≥ 0  → balance += v
//   cancel:    v < 0  → balance -= v
//   annul:     v ≥ 0  → balance -= v
//   reinstate: v ≥ 0  → balance += v
//
// nothing is changed unless the whole action succeeds
func (v *Verifier) Apply(kind transactionrecord.ActionKind, tx *transactionrecord.Transaction) error {
	if !kind.Valid() {
		v.log.Errorf("unknown action: %d", kind)
		return fault.ErrUnknownAction
	}

	digest, err := tx.Digest()
	if nil != err {
		v.log.Errorf("%s: bad transaction: %s", kind, err)
		return err
	}

	authors := v.authors
	status := v.status[digest]
	transitioned := false
	updates := make(map[account.Fingerprint]int64)

	for _, contract := range tx.Contracts {
		if v.lineage != contract.ContentHash {
			continue
		}

		i, ok := tx.ParticipantIndex(v.self)
		if !ok {
			v.log.Errorf("%s: %s not a participant in: %s", kind, v.self, digest)
			return fault.ErrNotParticipant
		}
		column := tx.Participants[i].Index

		authors, err = authorpolicy.Accept(authors, contract.Authors)
		if nil != err {
			v.log.Errorf("%s: %s: %s", kind, digest, err)
			return err
		}

		if err := tradematrix.Validate(len(tx.Participants), contract.TradeMatrix); nil != err {
			v.log.Errorf("%s: %s: %s", kind, digest, err)
			return err
		}

		if !transitioned {
			status, err = status.Next(kind)
			if nil != err {
				v.log.Errorf("%s: %s from status: %s", kind, digest, v.status[digest])
				return err
			}
			transitioned = true
		}

		for _, currency := range contract.TradeMatrix.Currencies() {
			value := contract.TradeMatrix[currency][column]

			current, ok := updates[currency]
			if !ok {
				current = v.sheet.GetOrZero(currency)
			}

			next, changed, err := v.update(kind, currency, current, value)
			if nil != err {
				v.log.Errorf("%s: %s: %s", kind, digest, err)
				return err
			}
			if changed {
				updates[currency] = next
			}
		}
	}

	// commit
	v.authors = authors
	if transitioned {
		v.status[digest] = status
	}
	for currency, value := range updates {
		v.sheet.Set(currency, value)
	}

	v.log.Debugf("%s: %s  updates: %v", kind, digest, updates)
	return nil
}

// the effect of one matrix cell on one balance
func (v *Verifier) update(kind transactionrecord.ActionKind, currency account.Fingerprint, current int64, value int64) (int64, bool, error) {
	switch kind {

	case transactionrecord.RegisterTransaction:
		if value >= 0 {
			return current, false, nil
		}
		next, err := balance.Add(current, value)
		if nil != err {
			return 0, false, err
		}
		if v.self != currency && next < 0 {
			return 0, false, &fault.InsufficientBalanceError{
				Currency: currency.String(),
				Balance:  current,
				Spend:    magnitude(value),
			}
		}
		return next, true, nil

	case transactionrecord.CancelTransaction:
		if value >= 0 {
			return current, false, nil
		}
		next, err := balance.Sub(current, value)
		return next, nil == err, err

	case transactionrecord.ConfirmTransaction, transactionrecord.ReinstateTransaction:
		if value < 0 {
			return current, false, nil
		}
		next, err := balance.Add(current, value)
		return next, nil == err, err

	case transactionrecord.AnnulTransaction:
		if value < 0 {
			return current, false, nil
		}
		next, err := balance.Sub(current, value)
		return next, nil == err, err

	default:
		return 0, false, fault.ErrUnknownAction
	}
}

// absolute value of a negative cell, exact for math.MinInt64
func magnitude(value int64) uint64 {
	return uint64(-(value + 1)) + 1
}
