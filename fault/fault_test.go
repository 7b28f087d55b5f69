// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2022 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault_test

import (
	"errors"
	"testing"

	"github.com/omcash/omcash/fault"
)

var (
	ErrAccountingOne = fault.AccountingError("accounting one")
	ErrExistsOne     = fault.ExistsError("exists one")
	ErrInvalidOne    = fault.InvalidError("invalid one")
	ErrInvalidTwo    = fault.InvalidError("invalid two")
	ErrNotFoundOne   = fault.NotFoundError("not found one")
	ErrPolicyOne     = fault.PolicyError("policy one")
	ErrProcessOne    = fault.ProcessError("process one")
	ErrStructuralOne = fault.StructuralError("structural one")
)

// test that the various classes can be told apart
func TestClasses(t *testing.T) {
	errorList := []struct {
		err        error
		accounting bool
		exists     bool
		invalid    bool
		notFound   bool
		policy     bool
		process    bool
		structural bool
	}{
		{ErrAccountingOne, true, false, false, false, false, false, false},
		{ErrExistsOne, false, true, false, false, false, false, false},
		{ErrInvalidOne, false, false, true, false, false, false, false},
		{ErrInvalidTwo, false, false, true, false, false, false, false},
		{ErrNotFoundOne, false, false, false, true, false, false, false},
		{ErrPolicyOne, false, false, false, false, true, false, false},
		{ErrProcessOne, false, false, false, false, false, true, false},
		{ErrStructuralOne, false, false, false, false, false, false, true},

		// wrapped forms classify as their innermost error
		{&fault.MissingAuthorsError{Missing: []string{"A"}}, false, false, false, false, true, false, false},
		{&fault.InsufficientBalanceError{Currency: "A", Balance: 1, Spend: 2}, true, false, false, false, false, false, false},
		{&fault.BlockError{Index: 3, Err: fault.ErrUnknownAction}, false, false, false, false, false, false, true},
		{&fault.BlockError{Index: 3, Err: &fault.RowError{Currency: "A", Err: fault.ErrNonZeroSum}}, false, false, true, false, false, false, false},
		{&fault.AuthorResolutionError{Root: "/tmp", Err: ErrNotFoundOne}, false, false, false, false, false, true, false},
	}

	for i, e := range errorList {
		err := e.err
		if fault.IsErrAccounting(err) != e.accounting {
			t.Errorf("%d: expected 'accounting' == %v for err = %v", i, e.accounting, err)
		}
		if fault.IsErrExists(err) != e.exists {
			t.Errorf("%d: expected 'exists' == %v for err = %v", i, e.exists, err)
		}
		if fault.IsErrInvalid(err) != e.invalid {
			t.Errorf("%d: expected 'invalid' == %v for err = %v", i, e.invalid, err)
		}
		if fault.IsErrNotFound(err) != e.notFound {
			t.Errorf("%d: expected 'not found' == %v for err = %v", i, e.notFound, err)
		}
		if fault.IsErrPolicy(err) != e.policy {
			t.Errorf("%d: expected 'policy' == %v for err = %v", i, e.policy, err)
		}
		if fault.IsErrProcess(err) != e.process {
			t.Errorf("%d: expected 'process' == %v for err = %v", i, e.process, err)
		}
		if fault.IsErrStructural(err) != e.structural {
			t.Errorf("%d: expected 'structural' == %v for err = %v", i, e.structural, err)
		}
	}
}

func TestAuthorResolutionUnwrap(t *testing.T) {
	err := error(&fault.AuthorResolutionError{Root: "user0/pyom", Err: ErrNotFoundOne})
	if !errors.Is(err, fault.ErrAuthorResolution) {
		t.Errorf("expected errors.Is to find author resolution in: %v", err)
	}
	if !errors.Is(err, ErrNotFoundOne) {
		t.Errorf("expected errors.Is to find the cause in: %v", err)
	}
}

func TestBlockErrorUnwrap(t *testing.T) {
	cause := &fault.MissingAuthorsError{Missing: []string{"B", "C"}}
	err := error(&fault.BlockError{Index: 7, Err: cause})

	if !errors.Is(err, fault.ErrMissingAuthors) {
		t.Errorf("expected errors.Is to find missing authors in: %v", err)
	}

	var missing *fault.MissingAuthorsError
	if !errors.As(err, &missing) {
		t.Fatalf("expected errors.As to find *MissingAuthorsError in: %v", err)
	}
	if 2 != len(missing.Missing) {
		t.Errorf("missing: %v  expected 2 items", missing.Missing)
	}

	expected := "blockchain verification failed in block 7: missing authors: B, C"
	if err.Error() != expected {
		t.Errorf("message: %q  expected: %q", err.Error(), expected)
	}
}
