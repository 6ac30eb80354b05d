// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package table

// ValidityDoubleVote misbehaviour: voting both ways on candidate validity.
type ValidityDoubleVote[D, S comparable] struct {
	// The candidate digest
	Digest D
	// The signature on the true vote.
	TSignature S
	// The signature on the false vote.
	FSignature S
}

// CandidateSignature is a candidate together with the signature of its proposer.
type CandidateSignature[C, S comparable] struct {
	Candidate C
	Signature S
}

// MultipleCandidates misbehaviour: declaring multiple candidates.
type MultipleCandidates[C, S comparable] struct {
	// The first candidate seen.
	First CandidateSignature[C, S]
	// The second candidate seen.
	Second CandidateSignature[C, S]
}

// UnauthorizedStatement misbehaviour: submitted statement for wrong group.
type UnauthorizedStatement[C, D, S comparable] struct {
	// A signed statement which was submitted without proper authority.
	Statement SignedStatement[C, D, S]
}

// Misbehaviors is the interface constraint for the values a `Misbehavior` can hold.
type Misbehaviors[C, D, S comparable] interface {
	ValidityDoubleVote[D, S] | MultipleCandidates[C, S] | UnauthorizedStatement[C, D, S]
}

// Misbehavior holds one of the kinds of misbehavior. All of these kinds of malicious
// misbehavior are easily provable and extremely disincentivized.
type Misbehavior[C, D, S comparable] struct {
	value any
}

// NewMisbehavior creates a misbehavior holding the given proof.
func NewMisbehavior[C, D, S comparable, T Misbehaviors[C, D, S]](val T) Misbehavior[C, D, S] {
	return Misbehavior[C, D, S]{value: val}
}

// Value returns the proof held by the misbehavior, constrained by `Misbehaviors`.
func (m Misbehavior[C, D, S]) Value() any {
	return m.value
}

// Kind returns a short name for the kind of misbehavior.
func (m Misbehavior[C, D, S]) Kind() string {
	switch m.value.(type) {
	case ValidityDoubleVote[D, S]:
		return "validity_double_vote"
	case MultipleCandidates[C, S]:
		return "multiple_candidates"
	case UnauthorizedStatement[C, D, S]:
		return "unauthorized_statement"
	default:
		return "unknown"
	}
}
