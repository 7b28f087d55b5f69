// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2022 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transactionrecord

import (
	"github.com/omcash/omcash/fault"
)

// Status - position of a transaction in its lifecycle as seen by one observer
type Status uint8

// possible states
const (
	StatusUnknown Status = iota
	StatusRegistered
	StatusConfirmed
	StatusCancelled
	StatusAnnulled
)

func (s Status) String() string {
	switch s {
	case StatusUnknown:
		return "unknown"
	case StatusRegistered:
		return "registered"
	case StatusConfirmed:
		return "confirmed"
	case StatusCancelled:
		return "cancelled"
	case StatusAnnulled:
		return "annulled"
	default:
		return "*invalid*"
	}
}

// Next - the status after applying an action
//
//   register:  unknown    → registered
//   confirm:   registered → confirmed
//   cancel:    registered → cancelled
//   annul:     confirmed  → annulled
//   reinstate: annulled   → confirmed
//
// any other combination gives ErrInvalidTransition
func (s Status) Next(kind ActionKind) (Status, error) {
	switch {
	case RegisterTransaction == kind && StatusUnknown == s:
		return StatusRegistered, nil
	case ConfirmTransaction == kind && StatusRegistered == s:
		return StatusConfirmed, nil
	case CancelTransaction == kind && StatusRegistered == s:
		return StatusCancelled, nil
	case AnnulTransaction == kind && StatusConfirmed == s:
		return StatusAnnulled, nil
	case ReinstateTransaction == kind && StatusAnnulled == s:
		return StatusConfirmed, nil
	}
	if !kind.Valid() {
		return s, fault.ErrUnknownAction
	}
	return s, fault.ErrInvalidTransition
}
