// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package table

import (
	"golang.org/x/exp/slices"
)

type ValidatorID uint

type GroupID uint

// group, body
type TestCandidate struct {
	Group uint
	Body  uint
}

type Digest uint

// Signature carries the signer so it can be recovered by the test context.
// Forged signatures cannot be recovered.
type Signature struct {
	Signer ValidatorID
	Nonce  uint
	Forged bool
}

type testTable = Table[ValidatorID, Digest, TestCandidate, GroupID, Signature]

type testStatement = SignedStatement[TestCandidate, Digest, Signature]

type testMisbehavior = Misbehavior[TestCandidate, Digest, Signature]

type testContext struct {
	// validator -> groups it is a member of
	members map[ValidatorID][]GroupID
	// validator -> groups it guarantees availability for
	guarantors map[ValidatorID][]GroupID
}

var _ Context[ValidatorID, Digest, TestCandidate, GroupID, Signature] = testContext{}

func (testContext) CandidateDigest(candidate TestCandidate) Digest {
	return Digest(candidate.Body)
}

func (testContext) CandidateGroup(candidate TestCandidate) GroupID {
	return GroupID(candidate.Group)
}

func (c testContext) IsMemberOf(validator ValidatorID, group GroupID) bool {
	return slices.Contains(c.members[validator], group)
}

func (c testContext) IsAvailabilityGuarantorOf(validator ValidatorID, group GroupID) bool {
	return slices.Contains(c.guarantors[validator], group)
}

func (testContext) StatementSigner(statement testStatement) (ValidatorID, bool) {
	if statement.Signature.Forged {
		return 0, false
	}
	return statement.Signature.Signer, true
}

func sig(signer ValidatorID, nonce uint) Signature {
	return Signature{Signer: signer, Nonce: nonce}
}

func candidateStatement(candidate TestCandidate, signature Signature) testStatement {
	return testStatement{
		Statement: NewStatement[TestCandidate, Digest](Candidate[TestCandidate]{Candidate: candidate}),
		Signature: signature,
	}
}

func validStatement(digest Digest, signature Signature) testStatement {
	return testStatement{
		Statement: NewStatement[TestCandidate, Digest](Valid[Digest]{Digest: digest}),
		Signature: signature,
	}
}

func invalidStatement(digest Digest, signature Signature) testStatement {
	return testStatement{
		Statement: NewStatement[TestCandidate, Digest](Invalid[Digest]{Digest: digest}),
		Signature: signature,
	}
}

func availableStatement(digest Digest, signature Signature) testStatement {
	return testStatement{
		Statement: NewStatement[TestCandidate, Digest](Available[Digest]{Digest: digest}),
		Signature: signature,
	}
}

func unauthorized(statement testStatement) testMisbehavior {
	return NewMisbehavior[TestCandidate, Digest, Signature](
		UnauthorizedStatement[TestCandidate, Digest, Signature]{Statement: statement},
	)
}

func newTestTable() *testTable {
	return New[ValidatorID, Digest, TestCandidate, GroupID, Signature]()
}

// newTestContext returns a context where validators 1 to 3 are members of group 2
// and guarantors of group 455, validator 4 is a member of groups 2 and 3,
// and validators 5 and 6 only guarantee availability for group 2.
func newTestContext() testContext {
	return testContext{
		members: map[ValidatorID][]GroupID{
			1: {2},
			2: {2},
			3: {2},
			4: {2, 3},
		},
		guarantors: map[ValidatorID][]GroupID{
			1: {455},
			2: {455},
			3: {455},
			5: {2},
			6: {2},
		},
	}
}
