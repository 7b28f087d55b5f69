// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2022 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"encoding/binary"
	"encoding/hex"

	"golang.org/x/crypto/sha3"

	"github.com/omcash/omcash/account"
	"github.com/omcash/omcash/fault"
	"github.com/omcash/omcash/transactionrecord"
	"github.com/omcash/omcash/util"
)

// LinkLength - number of bytes in a block link
const LinkLength = 32

// Link - SHA3-256 of the previous block's signed content
type Link [LinkLength]byte

// String - hex form for use by the fmt package (for %s)
func (link Link) String() string {
	return hex.EncodeToString(link[:])
}

// MarshalText - convert link to hex text
func (link Link) MarshalText() ([]byte, error) {
	buffer := make([]byte, hex.EncodedLen(LinkLength))
	hex.Encode(buffer, link[:])
	return buffer, nil
}

// UnmarshalText - convert hex text into a link
func (link *Link) UnmarshalText(s []byte) error {
	if LinkLength != hex.DecodedLen(len(s)) {
		return fault.ErrHashMismatch
	}
	_, err := hex.Decode(link[:], s)
	return err
}

// Signature - ed25519 signature, hex in JSON
type Signature []byte

// MarshalText - convert signature to hex text
func (signature Signature) MarshalText() ([]byte, error) {
	buffer := make([]byte, hex.EncodedLen(len(signature)))
	hex.Encode(buffer, signature)
	return buffer, nil
}

// UnmarshalText - convert hex text into a signature
func (signature *Signature) UnmarshalText(s []byte) error {
	buffer := make([]byte, hex.DecodedLen(len(s)))
	n, err := hex.Decode(buffer, s)
	if nil != err {
		return err
	}
	*signature = buffer[:n]
	return nil
}

// Block - one signed entry of a chain
type Block struct {
	Number    uint64                     `json:"number"`
	Previous  Link                       `json:"previous"`  // zero for block 0
	Timestamp int64                      `json:"timestamp"` // Unix seconds
	Owner     account.Fingerprint        `json:"owner"`
	Actions   []transactionrecord.Action `json:"actions"`
	Signature Signature                  `json:"signature"` // owner's signature over the packed block
}

// pack the signed part of a block
//
// Varint64(number) ++ previous ++ SignedVarint64(timestamp) ++
// owner ++ Varint64(count) ++ [ Varint64(kind) ++ txId ]
func (block *Block) pack() []byte {
	message := util.ToVarint64(block.Number)
	message = append(message, block.Previous[:]...)
	message = append(message, util.ToSignedVarint64(block.Timestamp)...)
	message = append(message, util.ToVarint64Bytes([]byte(block.Owner))...)
	message = append(message, util.ToVarint64(uint64(len(block.Actions)))...)
	for _, action := range block.Actions {
		message = append(message, util.ToVarint64(uint64(action.Kind))...)
		message = append(message, action.Transaction[:]...)
	}
	return message
}

// sign - set the signature field
func (block *Block) sign(privateKey *account.PrivateKey) {
	block.Signature = privateKey.Sign(block.pack())
}

// Link - the value the next block must carry as Previous
func (block *Block) Link() Link {
	return sha3.Sum256(append(block.pack(), block.Signature...))
}

// check - signature and ownership of a block
func (block *Block) check(owner *account.Account) error {
	if owner.Fingerprint() != block.Owner {
		return fault.ErrWrongBlockOwner
	}
	return owner.CheckSignature(block.pack(), block.Signature)
}

// big endian block number as database key
func blockKey(number uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, number)
	return key
}
