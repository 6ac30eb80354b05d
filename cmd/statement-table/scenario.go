// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ChainSafe/candidate-agreement/dot/parachain/backing"
	parachaintypes "github.com/ChainSafe/candidate-agreement/dot/parachain/types"
	"github.com/ChainSafe/candidate-agreement/lib/common"
	"github.com/ChainSafe/candidate-agreement/lib/crypto/sr25519"
	"github.com/go-playground/validator/v10"
	"github.com/naoina/toml"
)

var (
	errInvalidScenario  = errors.New("invalid scenario")
	errUnknownCandidate = errors.New("unknown candidate")
	errUnknownValidator = errors.New("unknown validator")
)

type scenario struct {
	SessionIndex uint32              `toml:"session-index"`
	ParentHash   string              `toml:"parent-hash" validate:"omitempty,hexadecimal"`
	Validators   []scenarioValidator `toml:"validators" validate:"required,dive"`
	Groups       []scenarioGroup     `toml:"groups" validate:"dive"`
	Candidates   []scenarioCandidate `toml:"candidates" validate:"dive"`
	Statements   []scenarioStatement `toml:"statements" validate:"dive"`
}

type scenarioValidator struct {
	Seed string `toml:"seed" validate:"required,hexadecimal"`
}

type scenarioGroup struct {
	ParaID     uint32   `toml:"para-id"`
	Validators []uint32 `toml:"validators" validate:"required"`
	Guarantors []uint32 `toml:"guarantors"`
}

type scenarioCandidate struct {
	Name     string `toml:"name" validate:"required"`
	ParaID   uint32 `toml:"para-id"`
	HeadData string `toml:"head-data"`
}

type scenarioStatement struct {
	Validator uint32 `toml:"validator"`
	Kind      string `toml:"kind" validate:"oneof=seconded valid invalid available"`
	Candidate string `toml:"candidate" validate:"required"`
	// Forged statements carry a corrupted signature.
	Forged bool `toml:"forged"`
}

func loadScenario(path string) (*scenario, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("reading scenario file: %w", err)
	}

	s := new(scenario)
	if err = toml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("decoding scenario file %s: %w", path, err)
	}

	if err = validator.New().Struct(s); err != nil {
		return nil, fmt.Errorf("%w: %s", errInvalidScenario, err)
	}
	return s, nil
}

// namedCandidate is a candidate receipt built from the scenario.
type namedCandidate struct {
	name    string
	receipt parachaintypes.CandidateReceipt
}

// setup is the validator set, groups and signed statements derived from a scenario.
type setup struct {
	signingContext parachaintypes.SigningContext
	validators     []parachaintypes.ValidatorID
	groups         map[parachaintypes.ParaID][]parachaintypes.ValidatorIndex
	guarantors     map[parachaintypes.ParaID][]parachaintypes.ValidatorIndex
	candidates     []namedCandidate
	statements     []parachaintypes.SignedStatement
}

func (s *scenario) build() (*setup, error) {
	st := &setup{
		groups:     map[parachaintypes.ParaID][]parachaintypes.ValidatorIndex{},
		guarantors: map[parachaintypes.ParaID][]parachaintypes.ValidatorIndex{},
	}

	st.signingContext.SessionIndex = parachaintypes.SessionIndex(s.SessionIndex)
	if s.ParentHash != "" {
		parentHash, err := common.HexToHash(s.ParentHash)
		if err != nil {
			return nil, fmt.Errorf("parsing parent hash: %w", err)
		}
		st.signingContext.ParentHash = parachaintypes.CandidateHash{Value: parentHash}
	}

	keystore := backing.NewKeyStore()
	for i, v := range s.Validators {
		seed, err := common.HexToBytes(v.Seed)
		if err != nil {
			return nil, fmt.Errorf("parsing seed of validator %d: %w", i, err)
		}
		keypair, err := sr25519.NewKeypairFromSeed(seed)
		if err != nil {
			return nil, fmt.Errorf("deriving key of validator %d: %w", i, err)
		}
		st.validators = append(st.validators, keystore.Insert(keypair))
	}

	for _, group := range s.Groups {
		paraID := parachaintypes.ParaID(group.ParaID)
		for _, index := range group.Validators {
			st.groups[paraID] = append(st.groups[paraID], parachaintypes.ValidatorIndex(index))
		}
		for _, index := range group.Guarantors {
			st.guarantors[paraID] = append(st.guarantors[paraID], parachaintypes.ValidatorIndex(index))
		}
	}

	byName := make(map[string]parachaintypes.CandidateReceipt, len(s.Candidates))
	for _, c := range s.Candidates {
		head, err := common.Blake2bHash([]byte(c.HeadData))
		if err != nil {
			return nil, fmt.Errorf("hashing head data of candidate %s: %w", c.Name, err)
		}
		receipt := parachaintypes.CandidateReceipt{
			Descriptor: parachaintypes.CandidateDescriptor{
				ParaID:      parachaintypes.ParaID(c.ParaID),
				RelayParent: st.signingContext.ParentHash.Value,
				ParaHead:    head,
			},
		}
		byName[c.Name] = receipt
		st.candidates = append(st.candidates, namedCandidate{name: c.Name, receipt: receipt})
	}

	signer := backing.NewSigner(keystore, st.validators, st.signingContext)
	for i, stmt := range s.Statements {
		if int(stmt.Validator) >= len(st.validators) {
			return nil, fmt.Errorf("statement %d: %w: %d", i, errUnknownValidator, stmt.Validator)
		}
		candidate, ok := byName[stmt.Candidate]
		if !ok {
			return nil, fmt.Errorf("statement %d: %w: %s", i, errUnknownCandidate, stmt.Candidate)
		}

		signed, err := signer.Sign(parachaintypes.ValidatorIndex(stmt.Validator), newStatement(stmt.Kind, candidate))
		if err != nil {
			return nil, fmt.Errorf("statement %d: %w", i, err)
		}
		if stmt.Forged {
			signed.Signature.Signature[0] ^= 0xff
		}
		st.statements = append(st.statements, signed)
	}

	return st, nil
}

func newStatement(kind string, candidate parachaintypes.CandidateReceipt) parachaintypes.Statement {
	switch kind {
	case "seconded":
		return parachaintypes.NewSecondedStatement(candidate)
	case "valid":
		return parachaintypes.NewValidStatement(candidate.MustHash())
	case "invalid":
		return parachaintypes.NewInvalidStatement(candidate.MustHash())
	default:
		return parachaintypes.NewAvailableStatement(candidate.MustHash())
	}
}
