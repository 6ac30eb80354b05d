// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package parachaintypes

import (
	"bytes"
	"fmt"

	"github.com/ChainSafe/candidate-agreement/lib/common"
	"github.com/ChainSafe/candidate-agreement/lib/crypto/sr25519"
	"github.com/centrifuge/go-substrate-rpc-client/v4/scale"
)

// ValidatorIndex is the index of a validator in the active validator set.
type ValidatorIndex uint32

// ParaID is the identifier of a parachain. Candidates are grouped by parachain.
type ParaID uint32

// SessionIndex is the index of a session.
type SessionIndex uint32

// ValidatorID is the sr25519 public key of a validator.
type ValidatorID [sr25519.PublicKeyLength]byte

// ValidatorSignature is the sr25519 signature of a validator.
type ValidatorSignature [sr25519.SignatureLength]byte

// String returns the hex string for the signature
func (v ValidatorSignature) String() string {
	return fmt.Sprintf("0x%x", v[:])
}

// CandidateHash makes it easy to enforce that a hash is a candidate hash on the type level.
type CandidateHash struct {
	Value common.Hash
}

// String returns the hex string for the candidate hash
func (ch CandidateHash) String() string {
	return ch.Value.String()
}

// CandidateDescriptor is a unique descriptor of the candidate receipt.
type CandidateDescriptor struct {
	// The ID of the para this is a candidate for.
	ParaID ParaID
	// The hash of the relay-chain block this is executed in the context of.
	RelayParent common.Hash
	// The blake2-256 hash of the persisted validation data.
	PersistedValidationDataHash common.Hash
	// The blake2-256 hash of the PoV.
	PovHash common.Hash
	// The root of a block's erasure encoding Merkle tree.
	ErasureRoot common.Hash
	// Hash of the para header that is being generated by this candidate.
	ParaHead common.Hash
}

// CandidateReceipt is a receipt for a parachain candidate.
type CandidateReceipt struct {
	// The descriptor of the candidate.
	Descriptor CandidateDescriptor
	// The hash of the encoded commitments made as a result of candidate execution.
	CommitmentsHash common.Hash
}

// Hash returns the blake2-256 hash of the SCALE encoded candidate receipt.
func (cr CandidateReceipt) Hash() (CandidateHash, error) {
	encoded, err := scaleEncode(cr)
	if err != nil {
		return CandidateHash{}, fmt.Errorf("encoding candidate receipt: %w", err)
	}

	hash, err := common.Blake2bHash(encoded)
	if err != nil {
		return CandidateHash{}, fmt.Errorf("hashing candidate receipt: %w", err)
	}
	return CandidateHash{Value: hash}, nil
}

// MustHash returns the candidate hash and panics if the receipt cannot be encoded.
func (cr CandidateReceipt) MustHash() CandidateHash {
	hash, err := cr.Hash()
	if err != nil {
		panic(err)
	}
	return hash
}

// CompareCandidateReceipts orders candidate receipts by para id, then by
// the bytes of their descriptor and commitments hashes.
func CompareCandidateReceipts(a, b CandidateReceipt) int {
	switch {
	case a.Descriptor.ParaID < b.Descriptor.ParaID:
		return -1
	case a.Descriptor.ParaID > b.Descriptor.ParaID:
		return 1
	}

	fields := [][2]common.Hash{
		{a.Descriptor.RelayParent, b.Descriptor.RelayParent},
		{a.Descriptor.PersistedValidationDataHash, b.Descriptor.PersistedValidationDataHash},
		{a.Descriptor.PovHash, b.Descriptor.PovHash},
		{a.Descriptor.ErasureRoot, b.Descriptor.ErasureRoot},
		{a.Descriptor.ParaHead, b.Descriptor.ParaHead},
		{a.CommitmentsHash, b.CommitmentsHash},
	}
	for _, pair := range fields {
		if c := bytes.Compare(pair[0][:], pair[1][:]); c != 0 {
			return c
		}
	}
	return 0
}

func scaleEncode(value interface{}) ([]byte, error) {
	buffer := bytes.NewBuffer(nil)
	err := scale.NewEncoder(buffer).Encode(value)
	if err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}
