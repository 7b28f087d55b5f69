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

type showAction struct {
	Kind        transactionrecord.ActionKind `json:"type"`
	Transaction transactionrecord.Digest     `json:"transaction"`
	CID         string                       `json:"cid"`
	Status      string                       `json:"status"`
}

type showBlock struct {
	*ledger.Block
	Link    ledger.Link  `json:"link"`
	Actions []showAction `json:"actions"`
}

func runShow(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	start := c.Uint64("start")
	count := c.Int("count")
	if count <= 0 {
		return fmt.Errorf("invalid count: %d", count)
	}

	l, _, err := openOwnChain(m, false)
	if nil != err {
		return err
	}
	defer l.Close()

	n, err := l.NumBlocks()
	if nil != err {
		return err
	}

	blocks := make([]showBlock, 0, count)
	for i := start; i < n && len(blocks) < count; i += 1 {
		block, err := l.Block(i)
		if nil != err {
			return err
		}

		actions := make([]showAction, len(block.Actions))
		for j, action := range block.Actions {
			status, err := l.Status(action.Transaction)
			if nil != err {
				return err
			}
			actions[j] = showAction{
				Kind:        action.Kind,
				Transaction: action.Transaction,
				CID:         action.Transaction.CID().String(),
				Status:      status.String(),
			}
		}
		blocks = append(blocks, showBlock{
			Block:   block,
			Link:    block.Link(),
			Actions: actions,
		})
	}

	return printJson(m.w, blocks)
}
