// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2022 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/omcash/omcash/ledger"
)

type setupResult struct {
	Root      string `json:"root"`
	Owner     string `json:"owner"`
	Contracts string `json:"contracts"`
}

func runSetup(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	root := m.config.DataDirectory
	privateKey, err := ledger.Create(root, m.config.ContractDirectory, c.String("author-key"))
	if nil != err {
		return err
	}

	return printJson(m.w, &setupResult{
		Root:      root,
		Owner:     privateKey.Account().Fingerprint().String(),
		Contracts: m.config.ContractDirectory,
	})
}
