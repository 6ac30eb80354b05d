// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package table

import "fmt"

// Candidate is broadcast by a validator to indicate that this is its candidate for
// inclusion.
//
// Broadcasting two different candidate messages per round is not allowed.
type Candidate[C any] struct {
	Candidate C
}

// Valid is broadcast by a validator to attest that the candidate with given digest
// is valid.
type Valid[D any] struct {
	Digest D
}

// Available is broadcast by a validator to attest that the auxiliary data for a candidate
// with given digest is available.
type Available[D any] struct {
	Digest D
}

// Invalid is broadcast by a validator to attest that the candidate with given digest
// is invalid.
type Invalid[D any] struct {
	Digest D
}

// Statements is the interface constraint for the values a `Statement` can hold.
type Statements[C, D any] interface {
	Candidate[C] | Valid[D] | Available[D] | Invalid[D]
}

// Statement is a statement circulated among peers. It holds exactly one of
// `Candidate`, `Valid`, `Available` or `Invalid`.
type Statement[C, D comparable] struct {
	value any
}

// NewStatement creates a statement holding the given value.
func NewStatement[C, D comparable, T Statements[C, D]](val T) Statement[C, D] {
	return Statement[C, D]{value: val}
}

// Value returns the value held by the statement, constrained by `Statements`.
// It is nil for the zero statement.
func (s Statement[C, D]) Value() any {
	return s.value
}

func (s Statement[C, D]) String() string {
	switch v := s.value.(type) {
	case Candidate[C]:
		return fmt.Sprintf("Candidate(%v)", v.Candidate)
	case Valid[D]:
		return fmt.Sprintf("Valid(%v)", v.Digest)
	case Available[D]:
		return fmt.Sprintf("Available(%v)", v.Digest)
	case Invalid[D]:
		return fmt.Sprintf("Invalid(%v)", v.Digest)
	default:
		return "Statement(<nil>)"
	}
}

// validityStatement returns the `Valid` or `Invalid` statement on the digest
// depending on the vote.
func validityStatement[C, D comparable](digest D, valid bool) Statement[C, D] {
	if valid {
		return NewStatement[C, D](Valid[D]{Digest: digest})
	}
	return NewStatement[C, D](Invalid[D]{Digest: digest})
}

// SignedStatement is a statement together with its signature. The signer is not
// carried inline; it is recovered from the statement and signature by the `Context`.
type SignedStatement[C, D, S comparable] struct {
	// The statement.
	Statement Statement[C, D]
	// The signature.
	Signature S
}
