// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2022 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/omcash/omcash/ledger"
	"github.com/omcash/omcash/transactionrecord"
)

type actionResult struct {
	Block       uint64                       `json:"block"`
	Action      transactionrecord.ActionKind `json:"action"`
	Transaction transactionrecord.Digest     `json:"transaction"`
	Status      string                       `json:"status"`
}

// copy a transaction from another participant's chain and register it
func runRegister(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	digest, err := transactionDigest(c.String("transaction"))
	if nil != err {
		return err
	}

	from := c.String("from")
	if "" == from {
		return fmt.Errorf("chain root of the proposer is required")
	}

	other, err := ledger.Open(from, m.config.ContractDirectory)
	if nil != err {
		return err
	}
	tx, err := other.Transaction(digest)
	other.Close()
	if nil != err {
		return err
	}

	l, signer, err := openOwnChain(m, true)
	if nil != err {
		return err
	}
	defer l.Close()

	pb := &transactionrecord.Protoblock{
		Root:        l.Root(),
		Owner:       l.Owner(),
		Transaction: tx,
		Actions: []transactionrecord.Action{
			{Kind: transactionrecord.RegisterTransaction, Transaction: digest},
		},
	}
	block, err := l.Append(pb, signer)
	if nil != err {
		return err
	}

	return printResult(m, l, block.Number, transactionrecord.RegisterTransaction, digest)
}

// append a single lifecycle action on a known transaction
func runLifecycle(kind transactionrecord.ActionKind) cli.ActionFunc {
	return func(c *cli.Context) error {

		m := c.App.Metadata["config"].(*metadata)

		digest, err := transactionDigest(c.String("transaction"))
		if nil != err {
			return err
		}

		l, signer, err := openOwnChain(m, true)
		if nil != err {
			return err
		}
		defer l.Close()

		block, err := l.AppendAction(kind, digest, signer)
		if nil != err {
			return err
		}

		return printResult(m, l, block.Number, kind, digest)
	}
}

func printResult(m *metadata, l *ledger.Ledger, number uint64, kind transactionrecord.ActionKind, digest transactionrecord.Digest) error {
	status, err := l.Status(digest)
	if nil != err {
		return err
	}
	return printJson(m.w, &actionResult{
		Block:       number,
		Action:      kind,
		Transaction: digest,
		Status:      status.String(),
	})
}
