// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2022 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package trade

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogChannelCreatedOnce(t *testing.T) {
	log := logChannel()
	assert.NotNil(t, log, "trade channel")
	assert.Same(t, log, logChannel(), "trade channel recreated")
}
