// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2022 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package configuration - parse a Lua configuration file
//
// most of base Lua is available such as reading files to set key data
// and getenv to extract environment supplied items.  The file must
// return a table, for example:
//
//   local M = {}
//   M.data_directory = arg[0]:match("(.*/)")
//   M.expiry_days = 14
//   M.logging = {
//       size = 1048576,
//       count = 10,
//       levels = { ledger = "debug" },
//   }
//   return M
package configuration
