// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2022 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/omcash/omcash/replay"
	"github.com/omcash/omcash/transactionrecord"
)

func runBalance(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	l, _, err := openOwnChain(m, false)
	if nil != err {
		return err
	}
	defer l.Close()

	sheet, err := replay.VerifyChain(l, transactionrecord.CashContentHash)
	if nil != err {
		return err
	}

	return sheet.WriteReport(m.w, l.Owner())
}
