// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2022 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package authorpolicy - the author set of a contract lineage may
// only grow
//
// once a set of contract authors has been accepted, every later
// contract in the same lineage must be signed by at least those
// authors; new authors may be added but none may be dropped
package authorpolicy

import (
	"sort"

	"github.com/omcash/omcash/account"
	"github.com/omcash/omcash/fault"
)

// Set - sorted list of distinct author fingerprints
type Set []account.Fingerprint

// NewSet - sorted and de-duplicated copy of a list of authors
func NewSet(authors []account.Fingerprint) Set {
	s := make(Set, 0, len(authors))
	seen := make(map[account.Fingerprint]struct{}, len(authors))
	for _, a := range authors {
		if _, ok := seen[a]; ok {
			continue
		}
		seen[a] = struct{}{}
		s = append(s, a)
	}
	sort.Slice(s, func(i, j int) bool {
		return s[i] < s[j]
	})
	return s
}

// Contains - membership test
func (s Set) Contains(author account.Fingerprint) bool {
	i := sort.Search(len(s), func(i int) bool {
		return s[i] >= author
	})
	return i < len(s) && author == s[i]
}

// Accept - check a contract's authors against the accepted set
//
// returns the set that replaces current; current is not modified
//
// an empty current set accepts any authors; otherwise every member
// of current must appear in authors, and the error lists exactly
// the members that do not
func Accept(current Set, authors []account.Fingerprint) (Set, error) {
	next := NewSet(authors)
	if 0 == len(current) {
		return next, nil
	}

	missing := make([]string, 0)
	for _, a := range current {
		if !next.Contains(a) {
			missing = append(missing, a.String())
		}
	}
	if 0 != len(missing) {
		return current, &fault.MissingAuthorsError{Missing: missing}
	}
	return next, nil
}
