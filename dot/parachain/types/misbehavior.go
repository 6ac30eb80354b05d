// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package parachaintypes

import (
	"fmt"

	table "github.com/ChainSafe/candidate-agreement/pkg/statement-table"
)

// ValidityDoubleVote misbehaviour: voting both ways on candidate validity.
type ValidityDoubleVote = table.ValidityDoubleVote[CandidateHash, StatementSignature]

// MultipleCandidates misbehaviour: declaring multiple candidates.
type MultipleCandidates = table.MultipleCandidates[CandidateReceipt, StatementSignature]

// UnauthorizedStatement misbehaviour: submitted statement for wrong group.
type UnauthorizedStatement = table.UnauthorizedStatement[CandidateReceipt, CandidateHash, StatementSignature]

// ProvisionableDataMisbehaviorReport is a misbehaviour report for a validator,
// ready to be handed over for punishment.
type ProvisionableDataMisbehaviorReport struct {
	ValidatorIndex ValidatorIndex
	Misbehaviour   Misbehaviour
}

func (r ProvisionableDataMisbehaviorReport) String() string {
	switch m := r.Misbehaviour.Value().(type) {
	case ValidityDoubleVote:
		return fmt.Sprintf("validator %d voted both ways on candidate %s", r.ValidatorIndex, m.Digest)
	case MultipleCandidates:
		first := m.First.Candidate.MustHash()
		second := m.Second.Candidate.MustHash()
		return fmt.Sprintf("validator %d seconded candidates %s and %s", r.ValidatorIndex, first, second)
	case UnauthorizedStatement:
		return fmt.Sprintf("validator %d issued %s without authority", r.ValidatorIndex, m.Statement.Statement)
	default:
		return fmt.Sprintf("validator %d: unknown misbehaviour", r.ValidatorIndex)
	}
}
