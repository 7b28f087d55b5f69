// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2022 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"

	"github.com/omcash/omcash/account"
	"github.com/omcash/omcash/ledger"
	"github.com/omcash/omcash/transactionrecord"
)

// open the chain in the data directory with its signing key
func openOwnChain(m *metadata, needKey bool) (*ledger.Ledger, *account.PrivateKey, error) {
	root := m.config.DataDirectory
	if m.verbose {
		fmt.Fprintf(m.e, "chain root: %s\n", root)
	}

	l, err := ledger.Open(root, m.config.ContractDirectory)
	if nil != err {
		return nil, nil, err
	}
	if !needKey {
		return l, nil, nil
	}

	signer, err := account.ReadPrivateKeyFile(filepath.Join(root, ledger.OwnerPrivateKeyFile))
	if nil != err {
		l.Close()
		return nil, nil, err
	}
	return l, signer, nil
}

func transactionDigest(s string) (transactionrecord.Digest, error) {
	if "" == s {
		return transactionrecord.Digest{}, fmt.Errorf("transaction digest is required")
	}
	return transactionrecord.ParseDigest(s)
}

func printJson(handle io.Writer, message interface{}) error {

	b, err := json.MarshalIndent(message, "", "  ")
	if nil != err {
		return err
	}

	fmt.Fprintf(handle, "%s\n", b)
	return nil
}
