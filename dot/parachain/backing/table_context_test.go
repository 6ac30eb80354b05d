// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package backing

import (
	"testing"

	parachaintypes "github.com/ChainSafe/candidate-agreement/dot/parachain/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableContext_membership(t *testing.T) {
	t.Parallel()

	_, validators := testValidators(t)
	tableContext := newTestTableContext(validators)

	assert.True(t, tableContext.IsMemberOf(0, 1))
	assert.True(t, tableContext.IsMemberOf(2, 1))
	assert.False(t, tableContext.IsMemberOf(3, 1))
	assert.True(t, tableContext.IsMemberOf(3, 2))
	assert.False(t, tableContext.IsMemberOf(5, 1))
	assert.False(t, tableContext.IsMemberOf(0, 3))

	assert.True(t, tableContext.IsAvailabilityGuarantorOf(5, 1))
	assert.True(t, tableContext.IsAvailabilityGuarantorOf(5, 2))
	assert.False(t, tableContext.IsAvailabilityGuarantorOf(0, 1))
}

func TestTableContext_candidate(t *testing.T) {
	t.Parallel()

	candidate := dummyCandidate(2, 7)
	tableContext := NewTableContext(testSigningContext, nil, nil, nil)

	assert.Equal(t, parachaintypes.ParaID(2), tableContext.CandidateGroup(candidate))
	assert.Equal(t, candidate.MustHash(), tableContext.CandidateDigest(candidate))
	assert.False(t, tableContext.IsMemberOf(0, 2))
}

func TestTableContext_StatementSigner(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	candidate := dummyCandidate(1, 10)
	signed := f.seconded(t, 1, candidate)

	testCases := map[string]struct {
		statement      func() parachaintypes.SignedStatement
		signingContext parachaintypes.SigningContext
		signer         parachaintypes.ValidatorIndex
		ok             bool
	}{
		"valid_signature": {
			statement:      func() parachaintypes.SignedStatement { return signed },
			signingContext: testSigningContext,
			signer:         1,
			ok:             true,
		},
		"claimed_by_another_validator": {
			statement: func() parachaintypes.SignedStatement {
				forged := signed
				forged.Signature.ValidatorIndex = 2
				return forged
			},
			signingContext: testSigningContext,
		},
		"validator_index_out_of_range": {
			statement: func() parachaintypes.SignedStatement {
				forged := signed
				forged.Signature.ValidatorIndex = testValidatorCount
				return forged
			},
			signingContext: testSigningContext,
		},
		"statement_changed": {
			statement: func() parachaintypes.SignedStatement {
				forged := signed
				forged.Statement = parachaintypes.NewValidStatement(candidate.MustHash())
				return forged
			},
			signingContext: testSigningContext,
		},
		"other_signing_context": {
			statement: func() parachaintypes.SignedStatement { return signed },
			signingContext: parachaintypes.SigningContext{
				SessionIndex: testSigningContext.SessionIndex + 1,
				ParentHash:   testSigningContext.ParentHash,
			},
		},
		"corrupted_signature": {
			statement: func() parachaintypes.SignedStatement {
				forged := signed
				forged.Signature.Signature[0] ^= 0xff
				return forged
			},
			signingContext: testSigningContext,
		},
		"empty_statement": {
			statement: func() parachaintypes.SignedStatement {
				forged := signed
				forged.Statement = parachaintypes.Statement{}
				return forged
			},
			signingContext: testSigningContext,
		},
	}

	for name, tc := range testCases {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			tableContext := NewTableContext(tc.signingContext, f.context.validators, nil, nil)
			signer, ok := tableContext.StatementSigner(tc.statement())
			require.Equal(t, tc.ok, ok)
			require.Equal(t, tc.signer, signer)
		})
	}
}
