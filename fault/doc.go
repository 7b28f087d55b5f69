// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2022 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fault - error instances
//
// Provides a single instance of errors to allow easy comparison
// without having to resort to partial string matches.
//
// Errors that need to carry context (the failing block, the missing
// authors, the offending currency row) are small structs that unwrap
// to one of the single instances, so callers can always use
// errors.Is against the instances defined here.
package fault
