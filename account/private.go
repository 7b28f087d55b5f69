// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2022 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"crypto/rand"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/ed25519"

	"github.com/omcash/omcash/fault"
)

// PrivateKey - the signing half of an account
type PrivateKey struct {
	PrivateKey ed25519.PrivateKey
}

// NewPrivateKey - create a new random ed25519 key
func NewPrivateKey() (*PrivateKey, error) {
	_, privateKey, err := ed25519.GenerateKey(rand.Reader)
	if nil != err {
		return nil, err
	}
	return &PrivateKey{PrivateKey: privateKey}, nil
}

// PrivateKeyFromBase58 - decode a Base58 private key
func PrivateKeyFromBase58(s string) (*PrivateKey, error) {
	privateKey, err := base58.Decode(s)
	if nil != err {
		return nil, err
	}
	if ed25519.PrivateKeySize != len(privateKey) {
		return nil, fault.ErrInvalidKeyLength
	}
	return &PrivateKey{PrivateKey: privateKey}, nil
}

// Account - the public account of this key
func (privateKey *PrivateKey) Account() *Account {
	publicKey := privateKey.PrivateKey.Public().(ed25519.PublicKey)
	return &Account{PublicKey: publicKey}
}

// Sign - sign a message
func (privateKey *PrivateKey) Sign(message []byte) []byte {
	return ed25519.Sign(privateKey.PrivateKey, message)
}

// String - Base58 private key
func (privateKey *PrivateKey) String() string {
	return base58.Encode(privateKey.PrivateKey)
}
