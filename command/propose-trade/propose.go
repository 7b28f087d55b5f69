// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2022 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/omcash/omcash/account"
	"github.com/omcash/omcash/ledger"
	"github.com/omcash/omcash/replay"
	"github.com/omcash/omcash/trade"
	"github.com/omcash/omcash/tradematrix"
	"github.com/omcash/omcash/transactionrecord"
)

// <expiry_days> <matrix.csv>
func parseArguments(arguments []string) (time.Duration, string, error) {
	if 2 != len(arguments) {
		return 0, "", fmt.Errorf("expected 2 arguments, %d were given", len(arguments))
	}
	days, err := strconv.Atoi(arguments[0])
	if nil != err || days <= 0 {
		return 0, "", fmt.Errorf("expiry_days: %q is not a positive integer", arguments[0])
	}
	return time.Duration(days) * 24 * time.Hour, arguments[1], nil
}

func readMatrix(matrixFile string) ([]string, tradematrix.Matrix, error) {
	f, err := os.Open(matrixFile)
	if nil != err {
		return nil, nil, fmt.Errorf("open: %q  error: %w", matrixFile, err)
	}
	defer f.Close()

	roots, matrix, err := tradematrix.ReadCSV(f)
	if nil != err {
		return nil, nil, fmt.Errorf("matrix: %q  error: %w", matrixFile, err)
	}
	return roots, matrix, nil
}

// verify every participant chain then register the trade on the
// chain of the first participant
func propose(log *logger.L, contractDirectory string, expiry time.Duration, roots []string, matrix tradematrix.Matrix) (transactionrecord.Digest, error) {
	if 0 == len(roots) {
		return transactionrecord.Digest{}, fmt.Errorf("no participants")
	}
	root := roots[0]

	l, err := ledger.Open(root, contractDirectory)
	if nil != err {
		return transactionrecord.Digest{}, fmt.Errorf("open chain: %q  error: %w", root, err)
	}
	defer l.Close()

	signer, err := account.ReadPrivateKeyFile(filepath.Join(root, ledger.OwnerPrivateKeyFile))
	if nil != err {
		return transactionrecord.Digest{}, fmt.Errorf("owner key error: %w", err)
	}

	if err := verifyChains(l, roots[1:], contractDirectory); nil != err {
		return transactionrecord.Digest{}, err
	}

	protoblocks, err := trade.CreateTrade(expiry, roots, matrix, l)
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

// replay the own chain together with the other participants' chains
func verifyChains(own *ledger.Ledger, others []string, contractDirectory string) error {
	chains := []replay.Chain{own}
	for _, root := range others {
		l, err := ledger.Open(root, contractDirectory)
		if nil != err {
			return fmt.Errorf("open chain: %q  error: %w", root, err)
		}
		defer l.Close()
		chains = append(chains, l)
	}

	if _, err := replay.ReplayAll(context.Background(), chains, transactionrecord.CashContentHash); nil != err {
		return fmt.Errorf("verify chains error: %w", err)
	}
	return nil
}
