// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2022 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transactionrecord

import (
	"time"

	"github.com/omcash/omcash/account"
	"github.com/omcash/omcash/tradematrix"
)

// CashContractDirectory - where the cash contract lives below a chain root
const CashContractDirectory = "smart_contracts/pyomcash"

// PathRef - a path relative to one of the transaction's locations
//
// location 0 is the root of the participant's own chain
type PathRef struct {
	Location uint64 `json:"location"` // index into the locations table
	Path     string `json:"path"`     // utf-8, relative
}

// Participant - one party to a transaction
//
// Index is the participant's column in every trade matrix of the
// transaction and must equal its position in the participant list
type Participant struct {
	Index int                 `json:"index"`
	Root  PathRef             `json:"root"`  // chain root directory
	Owner account.Fingerprint `json:"owner"` // chain owner
}

// Contract - a smart contract instance within a transaction
type Contract struct {
	Path        PathRef               `json:"path"`        // contract directory
	ContentHash Digest                `json:"contentHash"` // lineage identifier
	Authors     []account.Fingerprint `json:"authors"`     // accepted contract authors
	TradeMatrix tradematrix.Matrix    `json:"tradeMatrix"` // currency → per participant delta
}

// Transaction - the definition shared by all participants
type Transaction struct {
	Participants []Participant `json:"participants"`
	Contracts    []Contract    `json:"contracts"`
	NumLocations uint64        `json:"numLocations"`
	Expiry       time.Time     `json:"expiry"`
}

// TransactionInit - the parts of a transaction chosen by the proposer
type TransactionInit struct {
	NumLocations uint64     `json:"numLocations"`
	Contracts    []Contract `json:"contracts"`
}

// ParticipantInit - how to reach one participant's chain
type ParticipantInit struct {
	Root          string    `json:"root"`
	LocationsInit []PathRef `json:"locationsInit"`
}

// Protoblock - an unsigned block proposed for one participant's chain
//
// carries the full transaction definition and the actions that
// reference it
type Protoblock struct {
	Root        string              `json:"root"`
	Owner       account.Fingerprint `json:"owner"`
	Transaction *Transaction        `json:"transaction"`
	Actions     []Action            `json:"actions"`
}

// ParticipantIndex - position of an owner in the participant list
func (tx *Transaction) ParticipantIndex(owner account.Fingerprint) (int, bool) {
	for i, p := range tx.Participants {
		if owner == p.Owner {
			return i, true
		}
	}
	return 0, false
}

// Expired - true if the transaction can no longer be confirmed
func (tx *Transaction) Expired(now time.Time) bool {
	return !tx.Expiry.IsZero() && now.After(tx.Expiry)
}

// Digest - the transaction identifier
func (tx *Transaction) Digest() (Digest, error) {
	packed, err := tx.Pack()
	if nil != err {
		return Digest{}, err
	}
	return packed.MakeDigest(), nil
}
