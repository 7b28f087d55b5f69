// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2022 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"os"
	"strings"

	"github.com/omcash/omcash/fault"
	"github.com/omcash/omcash/util"
)

const (
	taggedPublic  = "PUBLIC:"
	taggedPrivate = "PRIVATE:"
)

// MakeKeyPair - create a new key and write the public and private
// halves to separate files
func MakeKeyPair(publicKeyFileName string, privateKeyFileName string) (*PrivateKey, error) {
	if util.EnsureFileExists(publicKeyFileName) {
		return nil, fault.ErrKeyFileAlreadyExists
	}

	if util.EnsureFileExists(privateKeyFileName) {
		return nil, fault.ErrKeyFileAlreadyExists
	}

	privateKey, err := NewPrivateKey()
	if nil != err {
		return nil, err
	}

	if err := WritePublicKeyFile(publicKeyFileName, privateKey.Account()); nil != err {
		return nil, err
	}

	private := taggedPrivate + privateKey.String() + "\n"
	if err = os.WriteFile(privateKeyFileName, []byte(private), 0600); nil != err {
		os.Remove(publicKeyFileName)
		return nil, err
	}

	return privateKey, nil
}

// WritePublicKeyFile - save just the public half
func WritePublicKeyFile(publicKeyFileName string, account *Account) error {
	public := taggedPublic + account.String() + "\n"
	return os.WriteFile(publicKeyFileName, []byte(public), 0666)
}

// ReadPublicKeyFile - load an account from a public key file
func ReadPublicKeyFile(fileName string) (*Account, error) {
	data, err := os.ReadFile(fileName)
	if nil != err {
		return nil, err
	}
	s := strings.TrimSpace(string(data))
	if !strings.HasPrefix(s, taggedPublic) {
		return nil, fault.ErrInvalidPublicKeyFile
	}
	return AccountFromBase58(s[len(taggedPublic):])
}

// ReadPrivateKeyFile - load a private key file
func ReadPrivateKeyFile(fileName string) (*PrivateKey, error) {
	data, err := os.ReadFile(fileName)
	if nil != err {
		return nil, err
	}
	s := strings.TrimSpace(string(data))
	if !strings.HasPrefix(s, taggedPrivate) {
		return nil, fault.ErrInvalidPrivateKeyFile
	}
	return PrivateKeyFromBase58(s[len(taggedPrivate):])
}
