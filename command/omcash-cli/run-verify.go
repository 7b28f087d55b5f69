// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2022 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/urfave/cli"

	"github.com/omcash/omcash/ledger"
	"github.com/omcash/omcash/replay"
	"github.com/omcash/omcash/transactionrecord"
)

func runVerify(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	own, _, err := openOwnChain(m, false)
	if nil != err {
		return err
	}
	defer own.Close()

	roots := []string(c.Args())
	if 0 == len(roots) {
		roots, err = own.Counterparties()
		if nil != err {
			return err
		}
	}

	ledgers := []*ledger.Ledger{own}
	chains := []replay.Chain{own}
	for _, root := range roots {
		if m.verbose {
			fmt.Fprintf(m.e, "counterparty: %s\n", root)
		}
		l, err := ledger.Open(root, m.config.ContractDirectory)
		if nil != err {
			return fmt.Errorf("open chain: %q  error: %w", root, err)
		}
		defer l.Close()
		ledgers = append(ledgers, l)
		chains = append(chains, l)
	}

	sheets, err := replay.ReplayAll(context.Background(), chains, transactionrecord.CashContentHash)
	if nil != err {
		return err
	}

	for i, l := range ledgers {
		fmt.Fprintf(m.w, "%s %s  owner: %s\n", color.GreenString("verified"), l.Root(), l.Owner())
		if err := sheets[i].WriteReport(m.w, l.Owner()); nil != err {
			return err
		}
	}
	return nil
}
