// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2022 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ledger - a party's append-only signed chain on local disk
//
// Directory layout of a chain root:
//
//   owner.public                          - PUBLIC:<base58 ed25519 key>
//   owner.private                         - PRIVATE:<base58 ed25519 key> (0600)
//   smart_contracts/pyomcash/author.public - contract author key
//   chain.leveldb/                        - block and transaction store
//
// The LevelDB database is split into a series of pools. Each pool is
// defined by a prefix byte obtained from the prefix tag in the struct
// defining the available pools.
//
// Notes:
// 1. each separate pool has a single byte prefix
// 2. ++           = concatenation of byte data
// 3. block number = big endian uint64 (8 bytes)
// 4. txId         = transaction digest as 64 byte SHA-512(packed)
//
// Blocks:
//
//   B ++ block number          - block store
//                                data: JSON of the signed block
//
// Transactions:
//
//   T ++ txId                  - every transaction referenced by a block
//                                data: packed transaction
//
// Status:
//
//   S ++ txId                  - lifecycle of each transaction on this chain
//                                data: one status byte
//
// Block 0 is a genesis block with no actions so a set up chain is
// never empty.
package ledger
