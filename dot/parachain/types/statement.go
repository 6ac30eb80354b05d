// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package parachaintypes

import (
	"errors"
	"fmt"

	table "github.com/ChainSafe/candidate-agreement/pkg/statement-table"
	"github.com/centrifuge/go-substrate-rpc-client/v4/scale"
)

var errEmptyStatement = errors.New("statement holds no value")

// StatementSignature binds a validator signature to the index of the validator
// which claims to have produced it.
type StatementSignature struct {
	ValidatorIndex ValidatorIndex
	Signature      ValidatorSignature
}

// Statement is a statement about a parachain candidate.
type Statement = table.Statement[CandidateReceipt, CandidateHash]

// SignedStatement is a statement about a parachain candidate and its signature.
type SignedStatement = table.SignedStatement[CandidateReceipt, CandidateHash, StatementSignature]

// Misbehaviour is the proof of a misbehaviour detected on parachain statements.
type Misbehaviour = table.Misbehavior[CandidateReceipt, CandidateHash, StatementSignature]

// NewSecondedStatement returns the statement proposing the candidate.
func NewSecondedStatement(candidate CandidateReceipt) Statement {
	return table.NewStatement[CandidateReceipt, CandidateHash](table.Candidate[CandidateReceipt]{Candidate: candidate})
}

// NewValidStatement returns the statement attesting the candidate is valid.
func NewValidStatement(hash CandidateHash) Statement {
	return table.NewStatement[CandidateReceipt, CandidateHash](table.Valid[CandidateHash]{Digest: hash})
}

// NewInvalidStatement returns the statement attesting the candidate is invalid.
func NewInvalidStatement(hash CandidateHash) Statement {
	return table.NewStatement[CandidateReceipt, CandidateHash](table.Invalid[CandidateHash]{Digest: hash})
}

// NewAvailableStatement returns the statement attesting the candidate data is available.
func NewAvailableStatement(hash CandidateHash) Statement {
	return table.NewStatement[CandidateReceipt, CandidateHash](table.Available[CandidateHash]{Digest: hash})
}

// SigningContext is the context a statement is signed in.
type SigningContext struct {
	// Current session index.
	SessionIndex SessionIndex
	// Hash of the parent.
	ParentHash CandidateHash
}

// compactStatement is the form of a statement which is signed: proposals are
// signed over the candidate hash rather than the full receipt.
type compactStatement struct {
	kind byte
	hash CandidateHash
}

// Encode implements scale.Encodeable.
func (cs compactStatement) Encode(encoder scale.Encoder) error {
	err := encoder.Write(backingStatementMagic[:])
	if err != nil {
		return err
	}
	err = encoder.PushByte(cs.kind)
	if err != nil {
		return err
	}
	return encoder.Encode(cs.hash)
}

var backingStatementMagic = [4]byte{'B', 'K', 'N', 'G'}

const (
	compactSeconded byte = iota + 1
	compactValid
	compactInvalid
	compactAvailable
)

func toCompactStatement(statement Statement) (compactStatement, error) {
	switch s := statement.Value().(type) {
	case table.Candidate[CandidateReceipt]:
		hash, err := s.Candidate.Hash()
		if err != nil {
			return compactStatement{}, err
		}
		return compactStatement{kind: compactSeconded, hash: hash}, nil
	case table.Valid[CandidateHash]:
		return compactStatement{kind: compactValid, hash: s.Digest}, nil
	case table.Invalid[CandidateHash]:
		return compactStatement{kind: compactInvalid, hash: s.Digest}, nil
	case table.Available[CandidateHash]:
		return compactStatement{kind: compactAvailable, hash: s.Digest}, nil
	default:
		return compactStatement{}, errEmptyStatement
	}
}

// SigningPayload returns the bytes a validator signs for the statement in the
// given signing context.
func SigningPayload(statement Statement, signingContext SigningContext) ([]byte, error) {
	compact, err := toCompactStatement(statement)
	if err != nil {
		return nil, fmt.Errorf("compacting statement: %w", err)
	}

	encoded, err := scaleEncode(struct {
		Statement      compactStatement
		SigningContext SigningContext
	}{compact, signingContext})
	if err != nil {
		return nil, fmt.Errorf("encoding signing payload: %w", err)
	}
	return encoded, nil
}
