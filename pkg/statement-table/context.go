// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package table

// Context for the statement table. It supplies the digest and group of candidates,
// the authority of validators within groups and signature recovery.
//
// The table never implements any of these itself; all cryptographic and
// group-membership policy lives behind this interface.
type Context[ID, D, C, G, S comparable] interface {
	// CandidateDigest gets the digest of a candidate.
	CandidateDigest(candidate C) D
	// CandidateGroup gets the group of a candidate.
	CandidateGroup(candidate C) G
	// IsMemberOf returns whether a validator is a member of a group.
	// Members are meant to submit candidates and vote on validity.
	IsMemberOf(validator ID, group G) bool
	// IsAvailabilityGuarantorOf returns whether a validator is an availability guarantor
	// of a group. Guarantors are meant to vote on availability for candidates submitted
	// in a group.
	IsAvailabilityGuarantorOf(validator ID, group G) bool
	// StatementSigner recovers the signer of a statement. It returns false when the
	// signature is invalid or the signer cannot be recovered.
	StatementSigner(statement SignedStatement[C, D, S]) (ID, bool)
}
