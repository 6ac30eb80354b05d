// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package backing

import (
	parachaintypes "github.com/ChainSafe/candidate-agreement/dot/parachain/types"
	"github.com/ChainSafe/candidate-agreement/lib/crypto/sr25519"
	table "github.com/ChainSafe/candidate-agreement/pkg/statement-table"
	"golang.org/x/exp/slices"
)

var _ table.Context[
	parachaintypes.ValidatorIndex,
	parachaintypes.CandidateHash,
	parachaintypes.CandidateReceipt,
	parachaintypes.ParaID,
	parachaintypes.StatementSignature,
] = (*TableContext)(nil)

// TableContext represents the contextual information associated with validators and groups
// for a table under a relay-parent.
type TableContext struct {
	groups                 map[parachaintypes.ParaID][]parachaintypes.ValidatorIndex
	availabilityGuarantors map[parachaintypes.ParaID][]parachaintypes.ValidatorIndex
	validators             []parachaintypes.ValidatorID
	signingContext         parachaintypes.SigningContext
}

// NewTableContext creates a table context. Validators are indexed by their position
// in the validators slice.
func NewTableContext(
	signingContext parachaintypes.SigningContext,
	validators []parachaintypes.ValidatorID,
	groups map[parachaintypes.ParaID][]parachaintypes.ValidatorIndex,
	availabilityGuarantors map[parachaintypes.ParaID][]parachaintypes.ValidatorIndex,
) *TableContext {
	if groups == nil {
		groups = map[parachaintypes.ParaID][]parachaintypes.ValidatorIndex{}
	}
	if availabilityGuarantors == nil {
		availabilityGuarantors = map[parachaintypes.ParaID][]parachaintypes.ValidatorIndex{}
	}
	return &TableContext{
		groups:                 groups,
		availabilityGuarantors: availabilityGuarantors,
		validators:             validators,
		signingContext:         signingContext,
	}
}

// CandidateDigest returns the hash of the candidate receipt.
func (*TableContext) CandidateDigest(candidate parachaintypes.CandidateReceipt) parachaintypes.CandidateHash {
	return candidate.MustHash()
}

// CandidateGroup returns the para the candidate is for.
func (*TableContext) CandidateGroup(candidate parachaintypes.CandidateReceipt) parachaintypes.ParaID {
	return candidate.Descriptor.ParaID
}

// IsMemberOf returns true if the validator is assigned to back candidates of the para.
func (tc *TableContext) IsMemberOf(validator parachaintypes.ValidatorIndex, group parachaintypes.ParaID) bool {
	return slices.Contains(tc.groups[group], validator)
}

// IsAvailabilityGuarantorOf returns true if the validator guarantees availability of
// the candidates of the para.
func (tc *TableContext) IsAvailabilityGuarantorOf(
	validator parachaintypes.ValidatorIndex, group parachaintypes.ParaID) bool {
	return slices.Contains(tc.availabilityGuarantors[group], validator)
}

// StatementSigner verifies the signature of the statement against the public key of the
// validator it claims to come from.
func (tc *TableContext) StatementSigner(
	statement parachaintypes.SignedStatement) (parachaintypes.ValidatorIndex, bool) {
	index := statement.Signature.ValidatorIndex
	publicKey, ok := tc.validatorPublicKey(index)
	if !ok {
		return 0, false
	}

	payload, err := parachaintypes.SigningPayload(statement.Statement, tc.signingContext)
	if err != nil {
		return 0, false
	}

	verified, err := publicKey.Verify(payload, statement.Signature.Signature[:])
	if err != nil || !verified {
		return 0, false
	}
	return index, true
}

func (tc *TableContext) validatorPublicKey(index parachaintypes.ValidatorIndex) (*sr25519.PublicKey, bool) {
	if int(index) >= len(tc.validators) {
		return nil, false
	}
	publicKey, err := sr25519.NewPublicKey(tc.validators[index][:])
	if err != nil {
		return nil, false
	}
	return publicKey, true
}

// groupMembers returns the validators assigned to the para.
func (tc *TableContext) groupMembers(group parachaintypes.ParaID) []parachaintypes.ValidatorIndex {
	return tc.groups[group]
}

// verifiedContext hands the table a signer which has already been recovered.
type verifiedContext struct {
	*TableContext
	signer parachaintypes.ValidatorIndex
}

func (vc verifiedContext) StatementSigner(parachaintypes.SignedStatement) (parachaintypes.ValidatorIndex, bool) {
	return vc.signer, true
}
