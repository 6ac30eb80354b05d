// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package main

import (
	"os"
	"path/filepath"
	"testing"

	parachaintypes "github.com/ChainSafe/candidate-agreement/dot/parachain/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSeed = "0x0101010101010101010101010101010101010101010101010101010101010101"

func writeScenario(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "scenario.toml")
	err := os.WriteFile(path, []byte(content), 0600)
	require.NoError(t, err)
	return path
}

func Test_loadScenario(t *testing.T) {
	t.Parallel()

	s, err := loadScenario("testdata/scenario.toml")
	require.NoError(t, err)
	assert.Len(t, s.Validators, 6)
	assert.Len(t, s.Groups, 2)
	assert.Len(t, s.Candidates, 3)
	require.Len(t, s.Statements, 10)
	assert.Equal(t, scenarioStatement{Validator: 2, Kind: "valid", Candidate: "c", Forged: true}, s.Statements[9])
}

func Test_loadScenario_invalid(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		content    string
		errWrapped error
	}{
		"no_validators": {
			content:    "session-index = 1\n",
			errWrapped: errInvalidScenario,
		},
		"unknown_statement_kind": {
			content: `
[[validators]]
seed = "` + testSeed + `"

[[statements]]
validator = 0
kind = "approve"
candidate = "a"
`,
			errWrapped: errInvalidScenario,
		},
		"seed_not_hex": {
			content: `
[[validators]]
seed = "alice"
`,
			errWrapped: errInvalidScenario,
		},
	}

	for name, tc := range testCases {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := loadScenario(writeScenario(t, tc.content))
			require.ErrorIs(t, err, tc.errWrapped)
		})
	}
}

func Test_scenario_build(t *testing.T) {
	t.Parallel()

	s, err := loadScenario("testdata/scenario.toml")
	require.NoError(t, err)

	st, err := s.build()
	require.NoError(t, err)

	assert.Equal(t, parachaintypes.SessionIndex(1), st.signingContext.SessionIndex)
	assert.Len(t, st.validators, 6)
	assert.Equal(t, []parachaintypes.ValidatorIndex{0, 1, 2}, st.groups[1])
	assert.Equal(t, []parachaintypes.ValidatorIndex{5}, st.guarantors[2])
	require.Len(t, st.candidates, 3)
	assert.Equal(t, parachaintypes.ParaID(2), st.candidates[2].receipt.Descriptor.ParaID)
	assert.NotEqual(t, st.candidates[0].receipt.MustHash(), st.candidates[1].receipt.MustHash())
	require.Len(t, st.statements, 10)
	assert.Equal(t, parachaintypes.ValidatorIndex(4), st.statements[6].Signature.ValidatorIndex)
}

func Test_scenario_build_errors(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		scenario   scenario
		errWrapped error
		errMessage string
	}{
		"unknown_candidate": {
			scenario: scenario{
				Validators: []scenarioValidator{{Seed: testSeed}},
				Statements: []scenarioStatement{{Validator: 0, Kind: "valid", Candidate: "z"}},
			},
			errWrapped: errUnknownCandidate,
			errMessage: "statement 0: unknown candidate: z",
		},
		"unknown_validator": {
			scenario: scenario{
				Validators: []scenarioValidator{{Seed: testSeed}},
				Candidates: []scenarioCandidate{{Name: "a", ParaID: 1}},
				Statements: []scenarioStatement{{Validator: 1, Kind: "valid", Candidate: "a"}},
			},
			errWrapped: errUnknownValidator,
			errMessage: "statement 0: unknown validator: 1",
		},
		"short_seed": {
			scenario: scenario{
				Validators: []scenarioValidator{{Seed: "0x01"}},
			},
			errMessage: "deriving key of validator 0",
		},
	}

	for name, tc := range testCases {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := tc.scenario.build()
			if tc.errWrapped != nil {
				require.ErrorIs(t, err, tc.errWrapped)
			}
			require.ErrorContains(t, err, tc.errMessage)
		})
	}
}
