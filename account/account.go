// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2022 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"github.com/mr-tron/base58"
	"golang.org/x/crypto/ed25519"

	"github.com/omcash/omcash/fault"
)

// Account - the public half of a signer
type Account struct {
	PublicKey ed25519.PublicKey
}

// AccountFromBase58 - decode a Base58 public key
func AccountFromBase58(s string) (*Account, error) {
	publicKey, err := base58.Decode(s)
	if nil != err {
		return nil, err
	}
	return AccountFromBytes(publicKey)
}

// AccountFromBytes - wrap a raw public key
func AccountFromBytes(publicKey []byte) (*Account, error) {
	if ed25519.PublicKeySize != len(publicKey) {
		return nil, fault.ErrInvalidKeyLength
	}
	k := make([]byte, ed25519.PublicKeySize)
	copy(k, publicKey)
	return &Account{PublicKey: k}, nil
}

// Fingerprint - identity of this account
func (account *Account) Fingerprint() Fingerprint {
	return FingerprintFromPublicKey(account.PublicKey)
}

// CheckSignature - verify a signature made by the matching private key
func (account *Account) CheckSignature(message []byte, signature []byte) error {
	if ed25519.SignatureSize != len(signature) {
		return fault.ErrInvalidSignature
	}
	if !ed25519.Verify(account.PublicKey, message, signature) {
		return fault.ErrInvalidSignature
	}
	return nil
}

// String - Base58 public key
func (account *Account) String() string {
	return base58.Encode(account.PublicKey)
}

// MarshalText - Base58 public key for JSON
func (account *Account) MarshalText() ([]byte, error) {
	return []byte(account.String()), nil
}

// UnmarshalText - Base58 public key from JSON
func (account *Account) UnmarshalText(s []byte) error {
	a, err := AccountFromBase58(string(s))
	if nil != err {
		return err
	}
	account.PublicKey = a.PublicKey
	return nil
}
