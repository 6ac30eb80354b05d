// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package common

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

// HashLength is the expected length of the common.Hash type
const HashLength = 32

var errNoHexPrefix = errors.New("could not byteify non 0x prefixed string")

// EmptyHash is the zero value hash.
var EmptyHash = Hash{}

// Hash used to store a blake2b hash
type Hash [HashLength]byte

// NewHash casts a byte slice to a Hash.
// If the input is longer than 32 bytes, only the first 32 bytes are used.
func NewHash(in []byte) (res Hash) {
	copy(res[:], in)
	return res
}

// ToBytes turns a hash to a byte slice
func (h Hash) ToBytes() []byte {
	b := [HashLength]byte(h)
	return b[:]
}

// IsEmpty returns true if the hash is empty, false otherwise.
func (h Hash) IsEmpty() bool {
	return h == EmptyHash
}

// String returns the hex string for the hash
func (h Hash) String() string {
	return fmt.Sprintf("0x%x", h[:])
}

// Short returns the first 4 bytes and the last 4 bytes of the hex string for the hash
func (h Hash) Short() string {
	const nBytes = 4
	return fmt.Sprintf("0x%x...%x", h[:nBytes], h[len(h)-nBytes:])
}

// MarshalText encodes the hash as a 0x prefixed hex string.
func (h Hash) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

// UnmarshalText decodes a 0x prefixed hex string into the hash.
func (h *Hash) UnmarshalText(text []byte) (err error) {
	*h, err = HexToHash(string(text))
	return err
}

// HexToBytes turns a 0x prefixed hex string into a byte slice
func HexToBytes(in string) ([]byte, error) {
	if !strings.HasPrefix(in, "0x") {
		return nil, fmt.Errorf("%w: %q", errNoHexPrefix, in)
	}
	return hex.DecodeString(in[2:])
}

// MustHexToBytes turns a 0x prefixed hex string into a byte slice
// it panics if it cannot decode the string
func MustHexToBytes(in string) []byte {
	out, err := HexToBytes(in)
	if err != nil {
		panic(err)
	}
	return out
}

// HexToHash turns a 0x prefixed hex string into type Hash
func HexToHash(in string) (Hash, error) {
	out, err := HexToBytes(in)
	if err != nil {
		return EmptyHash, err
	}
	return NewHash(out), nil
}

// MustHexToHash turns a 0x prefixed hex string into type Hash
// it panics if it cannot turn the string into a Hash
func MustHexToHash(in string) Hash {
	h, err := HexToHash(in)
	if err != nil {
		panic(err)
	}
	return h
}
