// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2022 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

import (
	"fmt"
	"strings"
)

// RowError - a trade matrix row failed validation
type RowError struct {
	Currency string
	Values   []int64
	Err      error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("%s: currency: %s  values: %v", e.Err, e.Currency, e.Values)
}

func (e *RowError) Unwrap() error { return e.Err }

// MissingAuthorsError - the accepted author set would shrink
//
// Missing holds exactly the previously accepted authors that are
// absent from the new contract, in sorted order
type MissingAuthorsError struct {
	Missing []string
}

func (e *MissingAuthorsError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingAuthors, strings.Join(e.Missing, ", "))
}

func (e *MissingAuthorsError) Unwrap() error { return ErrMissingAuthors }

// InsufficientBalanceError - a non-issuer tried to spend more than it holds
type InsufficientBalanceError struct {
	Currency string
	Balance  int64
	Spend    uint64
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("current balance of %s is %d, so you cannot spend %d", e.Currency, e.Balance, e.Spend)
}

func (e *InsufficientBalanceError) Unwrap() error { return ErrInsufficientBalance }

// BlockError - any failure during chain replay, tagged with the block index
type BlockError struct {
	Index uint64
	Err   error
}

func (e *BlockError) Error() string {
	return fmt.Sprintf("blockchain verification failed in block %d: %s", e.Index, e.Err)
}

func (e *BlockError) Unwrap() error { return e.Err }

// AuthorResolutionError - the contract author key could not be read
type AuthorResolutionError struct {
	Root string
	Err  error
}

func (e *AuthorResolutionError) Error() string {
	return fmt.Sprintf("%s from: %q: %s", ErrAuthorResolution, e.Root, e.Err)
}

func (e *AuthorResolutionError) Unwrap() []error { return []error{ErrAuthorResolution, e.Err} }
