// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2022 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/sha3"

	"github.com/omcash/omcash/fault"
)

// FingerprintLength - number of bytes in a key fingerprint
const FingerprintLength = 20

// Fingerprint - identity of a signer, also the identity of the
// currency that signer issues
//
// represented as upper case hex, the same shape as an OpenPGP
// v4 fingerprint
type Fingerprint string

// FingerprintFromPublicKey - first FingerprintLength bytes of SHA3-256(key)
func FingerprintFromPublicKey(publicKey []byte) Fingerprint {
	digest := sha3.Sum256(publicKey)
	return Fingerprint(strings.ToUpper(hex.EncodeToString(digest[:FingerprintLength])))
}

// ParseFingerprint - validate and normalise a fingerprint string
func ParseFingerprint(s string) (Fingerprint, error) {
	s = strings.TrimSpace(s)
	if hex.EncodedLen(FingerprintLength) != len(s) {
		return "", fault.ErrInvalidFingerprint
	}
	if _, err := hex.DecodeString(s); nil != err {
		return "", fault.ErrInvalidFingerprint
	}
	return Fingerprint(strings.ToUpper(s)), nil
}

// String - for the fmt package
func (f Fingerprint) String() string {
	return string(f)
}

// IsZero - true for the empty fingerprint
func (f Fingerprint) IsZero() bool {
	return "" == f
}
