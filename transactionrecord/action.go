// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2022 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transactionrecord

import (
	"github.com/omcash/omcash/fault"
)

// ActionKind - type code for the actions that can appear in a block
type ActionKind uint64

// enumerate the possible actions
// this is encoded as a Varint64 when an action is packed
const (
	// null marks beginning of list - not used as an action
	NullAction = ActionKind(iota)

	// valid actions
	RegisterTransaction  = ActionKind(iota) // spend side of a trade
	ConfirmTransaction   = ActionKind(iota) // receive side of a trade
	CancelTransaction    = ActionKind(iota) // undo a registration
	AnnulTransaction     = ActionKind(iota) // undo a confirmation
	ReinstateTransaction = ActionKind(iota) // redo an annulled confirmation

	// this item must be last
	InvalidAction = ActionKind(iota)
)

var actionNames = map[ActionKind]string{
	RegisterTransaction:  "register_transaction",
	ConfirmTransaction:   "confirm_transaction",
	CancelTransaction:    "cancel_transaction",
	AnnulTransaction:     "annul_transaction",
	ReinstateTransaction: "reinstate_transaction",
}

// ActionKindFromString - convert a wire name to an action kind
//
// unrecognised names give InvalidAction so that the failure is
// reported when the action is applied, at the block containing it
func ActionKindFromString(s string) ActionKind {
	for kind, name := range actionNames {
		if name == s {
			return kind
		}
	}
	return InvalidAction
}

// Valid - true for the five defined actions
func (kind ActionKind) Valid() bool {
	return kind > NullAction && kind < InvalidAction
}

// String - the wire name
func (kind ActionKind) String() string {
	if name, ok := actionNames[kind]; ok {
		return name
	}
	return "*unknown*"
}

// MarshalText - convert to the wire name
func (kind ActionKind) MarshalText() ([]byte, error) {
	if !kind.Valid() {
		return nil, fault.ErrUnknownAction
	}
	return []byte(kind.String()), nil
}

// UnmarshalText - convert from the wire name
func (kind *ActionKind) UnmarshalText(s []byte) error {
	*kind = ActionKindFromString(string(s))
	return nil
}

// Action - one entry in a block's action list
//
// JSON: {"type": "register_transaction", "transaction": {"SHA-512": "…"}}
type Action struct {
	Kind        ActionKind `json:"type"`
	Transaction Digest     `json:"transaction"`
}
