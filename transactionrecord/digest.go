// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2022 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transactionrecord

import (
	"encoding/hex"
	"encoding/json"

	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"

	"github.com/omcash/omcash/fault"
)

// DigestLength - number of bytes in a SHA-512 digest
const DigestLength = 64

// Digest - SHA-512 hash identifying a transaction or contract content
//
// the JSON form is the hash-reference object: {"SHA-512": "<hex>"}
// the text form (used for map keys and command line arguments) is
// plain lower case hex
type Digest [DigestLength]byte

// the key used in the JSON hash-reference object
const digestAlgorithm = "SHA-512"

// CashContentHash - content hash of the cash contract definition
//
// only contracts carrying this hash are interpreted by the cash
// verifier; all others are ignored
var CashContentHash = mustParseDigest("0e66b143f19847febbdb3ed6641f183900093c02f18d48924ef515f5bb2c84994c0042b079a728d79111bf55e0932e8ea92ef5eecca11ce8dec10ce40e83f1b9")

// NewDigest - compute the SHA-512 digest of a byte slice
func NewDigest(record []byte) Digest {
	mh, err := multihash.Sum(record, multihash.SHA2_512, -1)
	if nil != err {
		// only possible for an unregistered hash function
		panic(err)
	}
	d, err := DigestFromMultihash(mh)
	if nil != err {
		panic(err)
	}
	return d
}

// DigestFromMultihash - extract a SHA-512 digest from a multihash
func DigestFromMultihash(mh multihash.Multihash) (Digest, error) {
	var digest Digest
	decoded, err := multihash.Decode(mh)
	if nil != err {
		return digest, err
	}
	if multihash.SHA2_512 != decoded.Code {
		return digest, fault.ErrInvalidDigest
	}
	return digest, DigestFromBytes(&digest, decoded.Digest)
}

// DigestFromBytes - convert and validate a binary byte slice to a digest
func DigestFromBytes(digest *Digest, buffer []byte) error {
	if DigestLength != len(buffer) {
		return fault.ErrInvalidDigest
	}
	copy(digest[:], buffer)
	return nil
}

// ParseDigest - convert a hex string to a digest
func ParseDigest(s string) (Digest, error) {
	var digest Digest
	err := digest.UnmarshalText([]byte(s))
	return digest, err
}

func mustParseDigest(s string) Digest {
	d, err := ParseDigest(s)
	if nil != err {
		panic(err)
	}
	return d
}

// IsZero - true for the unset digest
func (digest Digest) IsZero() bool {
	return Digest{} == digest
}

// Multihash - the self-describing form of the digest
func (digest Digest) Multihash() multihash.Multihash {
	mh, err := multihash.Encode(digest[:], multihash.SHA2_512)
	if nil != err {
		panic(err)
	}
	return mh
}

// CID - content identifier for the raw record that hashed to this digest
func (digest Digest) CID() cid.Cid {
	return cid.NewCidV1(cid.Raw, digest.Multihash())
}

// String - hex form for use by the fmt package (for %s)
func (digest Digest) String() string {
	return hex.EncodeToString(digest[:])
}

// GoString - for %#v
func (digest Digest) GoString() string {
	return "<" + digestAlgorithm + ":" + hex.EncodeToString(digest[:]) + ">"
}

// MarshalText - convert digest to hex text
func (digest Digest) MarshalText() ([]byte, error) {
	buffer := make([]byte, hex.EncodedLen(DigestLength))
	hex.Encode(buffer, digest[:])
	return buffer, nil
}

// UnmarshalText - convert hex text into a digest
func (digest *Digest) UnmarshalText(s []byte) error {
	if DigestLength != hex.DecodedLen(len(s)) {
		return fault.ErrInvalidDigest
	}
	buffer := make([]byte, DigestLength)
	if _, err := hex.Decode(buffer, s); nil != err {
		return fault.ErrInvalidDigest
	}
	copy(digest[:], buffer)
	return nil
}

type digestReference struct {
	SHA512 string `json:"SHA-512"`
}

// MarshalJSON - hash-reference object form
func (digest Digest) MarshalJSON() ([]byte, error) {
	return json.Marshal(digestReference{SHA512: digest.String()})
}

// UnmarshalJSON - read a hash-reference object
func (digest *Digest) UnmarshalJSON(data []byte) error {
	var ref digestReference
	if err := json.Unmarshal(data, &ref); nil != err {
		return err
	}
	return digest.UnmarshalText([]byte(ref.SHA512))
}
