// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package backing

import (
	"testing"

	parachaintypes "github.com/ChainSafe/candidate-agreement/dot/parachain/types"
	"github.com/ChainSafe/candidate-agreement/lib/common"
	"github.com/ChainSafe/candidate-agreement/lib/crypto/sr25519"
	"github.com/stretchr/testify/require"
)

const testValidatorCount = 6

var testSigningContext = parachaintypes.SigningContext{
	SessionIndex: 1,
	ParentHash:   parachaintypes.CandidateHash{Value: getDummyHash(0xaa)},
}

func getDummyHash(num byte) common.Hash {
	hash := common.Hash{}
	for i := range hash {
		hash[i] = num
	}
	return hash
}

func dummyCandidate(paraID parachaintypes.ParaID, head byte) parachaintypes.CandidateReceipt {
	return parachaintypes.CandidateReceipt{
		Descriptor: parachaintypes.CandidateDescriptor{
			ParaID:      paraID,
			RelayParent: testSigningContext.ParentHash.Value,
			PovHash:     getDummyHash(2),
			ErasureRoot: getDummyHash(3),
			ParaHead:    getDummyHash(head),
		},
		CommitmentsHash: getDummyHash(4),
	}
}

// testValidators returns a keystore holding the keys of every validator, and the
// validator set in index order.
func testValidators(t *testing.T) (*KeyStore, []parachaintypes.ValidatorID) {
	t.Helper()

	keystore := NewKeyStore()
	validators := make([]parachaintypes.ValidatorID, testValidatorCount)
	for i := range validators {
		seed := make([]byte, sr25519.SeedLength)
		seed[0] = byte(i + 1)
		keypair, err := sr25519.NewKeypairFromSeed(seed)
		require.NoError(t, err)
		validators[i] = keystore.Insert(keypair)
	}
	return keystore, validators
}

// newTestTableContext assigns validators 0, 1 and 2 to para 1, validators 3 and 4 to
// para 2, and validator 5 as availability guarantor of both paras.
func newTestTableContext(validators []parachaintypes.ValidatorID) *TableContext {
	return NewTableContext(testSigningContext, validators,
		map[parachaintypes.ParaID][]parachaintypes.ValidatorIndex{
			1: {2, 0, 1},
			2: {3, 4},
		},
		map[parachaintypes.ParaID][]parachaintypes.ValidatorIndex{
			1: {5},
			2: {5},
		},
	)
}

type fixture struct {
	signer  *Signer
	context *TableContext
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	keystore, validators := testValidators(t)
	return fixture{
		signer:  NewSigner(keystore, validators, testSigningContext),
		context: newTestTableContext(validators),
	}
}

func (f fixture) sign(t *testing.T, index parachaintypes.ValidatorIndex,
	statement parachaintypes.Statement) parachaintypes.SignedStatement {
	t.Helper()

	signed, err := f.signer.Sign(index, statement)
	require.NoError(t, err)
	return signed
}

func (f fixture) seconded(t *testing.T, index parachaintypes.ValidatorIndex,
	candidate parachaintypes.CandidateReceipt) parachaintypes.SignedStatement {
	t.Helper()
	return f.sign(t, index, parachaintypes.NewSecondedStatement(candidate))
}

func (f fixture) valid(t *testing.T, index parachaintypes.ValidatorIndex,
	candidate parachaintypes.CandidateReceipt) parachaintypes.SignedStatement {
	t.Helper()
	return f.sign(t, index, parachaintypes.NewValidStatement(candidate.MustHash()))
}

func (f fixture) invalid(t *testing.T, index parachaintypes.ValidatorIndex,
	candidate parachaintypes.CandidateReceipt) parachaintypes.SignedStatement {
	t.Helper()
	return f.sign(t, index, parachaintypes.NewInvalidStatement(candidate.MustHash()))
}

func (f fixture) available(t *testing.T, index parachaintypes.ValidatorIndex,
	candidate parachaintypes.CandidateReceipt) parachaintypes.SignedStatement {
	t.Helper()
	return f.sign(t, index, parachaintypes.NewAvailableStatement(candidate.MustHash()))
}
