// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2022 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/bitmark-inc/logger"

	"github.com/omcash/omcash/account"
	"github.com/omcash/omcash/configuration"
	"github.com/omcash/omcash/ledger"
	"github.com/omcash/omcash/replay"
	"github.com/omcash/omcash/trade"
	"github.com/omcash/omcash/transactionrecord"
)

// <other_root> <n> <m>
func parseArguments(arguments []string) (string, int64, int64, error) {
	if 3 != len(arguments) {
		return "", 0, 0, fmt.Errorf("expected 3 arguments, %d were given", len(arguments))
	}
	n, err := strconv.ParseInt(arguments[1], 10, 64)
	if nil != err {
		return "", 0, 0, fmt.Errorf("n: %q is not an integer", arguments[1])
	}
	m, err := strconv.ParseInt(arguments[2], 10, 64)
	if nil != err {
		return "", 0, 0, fmt.Errorf("m: %q is not an integer", arguments[2])
	}
	return arguments[0], n, m, nil
}

// verify both chains then register a simple trade on the own chain
func propose(log *logger.L, conf *configuration.Configuration, otherRoot string, n int64, m int64) (transactionrecord.Digest, error) {
	root := conf.DataDirectory

	l, err := ledger.Open(root, conf.ContractDirectory)
	if nil != err {
		return transactionrecord.Digest{}, fmt.Errorf("open chain: %q  error: %w", root, err)
	}
	defer l.Close()

	signer, err := account.ReadPrivateKeyFile(filepath.Join(root, ledger.OwnerPrivateKeyFile))
	if nil != err {
		return transactionrecord.Digest{}, fmt.Errorf("owner key error: %w", err)
	}

	other, err := ledger.Open(otherRoot, conf.ContractDirectory)
	if nil != err {
		return transactionrecord.Digest{}, fmt.Errorf("open chain: %q  error: %w", otherRoot, err)
	}
	otherOwner := other.Owner()
	_, err = replay.ReplayAll(context.Background(), []replay.Chain{l, other}, transactionrecord.CashContentHash)
	other.Close()
	if nil != err {
		return transactionrecord.Digest{}, fmt.Errorf("verify chains error: %w", err)
	}

	matrix := trade.SimpleMatrix(l.Owner(), otherOwner, n, m)
	protoblocks, err := trade.CreateTrade(conf.Expiry(), []string{root, otherRoot}, matrix, l)
	if nil != err {
		return transactionrecord.Digest{}, fmt.Errorf("create trade error: %w", err)
	}

	block, err := l.Append(protoblocks[0], signer)
	if nil != err {
		return transactionrecord.Digest{}, fmt.Errorf("register error: %w", err)
	}

	digest := protoblocks[0].Actions[0].Transaction
	log.Infof("registered transaction: %s  in block: %d", digest, block.Number)
	return digest, nil
}
