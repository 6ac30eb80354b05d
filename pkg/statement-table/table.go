// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

// Package table stores the statements validators issue about candidates.
//
// These statements are used to create a proposal submitted to a BFT consensus process.
// Proposals are formed of sets of candidates which have the requisite number of
// validity and availability votes.
//
// Each group is associated with two sets of validators: those which can propose and
// attest to validity of candidates, and those who can only attest to availability.
package table

type digestSignature[D, S comparable] struct {
	digest    D
	signature S
}

// Table stores votes on candidates and the misbehavior detected while importing them.
//
// A Table is not safe for concurrent use; callers must serialise calls to
// ImportStatement against a single table.
type Table[ID, D, C, G, S comparable] struct {
	proposedCandidates  map[ID]digestSignature[D, S]
	detectedMisbehavior map[ID]Misbehavior[C, D, S]
	candidateVotes      map[D]*candidateData[ID, C, G, S]
}

// New creates a new, empty statement table.
func New[ID, D, C, G, S comparable]() *Table[ID, D, C, G, S] {
	return &Table[ID, D, C, G, S]{
		proposedCandidates:  make(map[ID]digestSignature[D, S]),
		detectedMisbehavior: make(map[ID]Misbehavior[C, D, S]),
		candidateVotes:      make(map[D]*candidateData[ID, C, G, S]),
	}
}

// ImportStatement imports a signed statement. Statements whose signer cannot be
// recovered are ignored. Any misbehavior detected is recorded for the signer,
// replacing what was previously recorded for it.
func (t *Table[ID, D, C, G, S]) ImportStatement(ctx Context[ID, D, C, G, S], statement SignedStatement[C, D, S]) {
	signer, ok := ctx.StatementSigner(statement)
	if !ok {
		return
	}

	var misbehavior *Misbehavior[C, D, S]
	switch s := statement.Statement.Value().(type) {
	case Candidate[C]:
		misbehavior = t.importCandidate(ctx, signer, s.Candidate, statement.Signature)
	case Valid[D]:
		misbehavior = t.validityVote(ctx, signer, s.Digest, true, statement.Signature)
	case Invalid[D]:
		misbehavior = t.validityVote(ctx, signer, s.Digest, false, statement.Signature)
	case Available[D]:
		misbehavior = t.availabilityVote(ctx, signer, s.Digest, statement.Signature)
	default:
		return
	}

	if misbehavior != nil {
		// all misbehavior in agreement is provable and actively malicious.
		// punishments are not cumulative.
		t.detectedMisbehavior[signer] = *misbehavior
	}
}

func (t *Table[ID, D, C, G, S]) importCandidate(
	ctx Context[ID, D, C, G, S],
	from ID,
	candidate C,
	signature S,
) *Misbehavior[C, D, S] {
	group := ctx.CandidateGroup(candidate)
	if !ctx.IsMemberOf(from, group) {
		misbehavior := NewMisbehavior[C, D, S](UnauthorizedStatement[C, D, S]{
			Statement: SignedStatement[C, D, S]{
				Statement: NewStatement[C, D](Candidate[C]{Candidate: candidate}),
				Signature: signature,
			},
		})
		return &misbehavior
	}

	// check that validator hasn't already specified another candidate.
	digest := ctx.CandidateDigest(candidate)

	existing, ok := t.proposedCandidates[from]
	if ok {
		if existing.digest == digest {
			return nil
		}

		// if digest is different, fetch candidate and note misbehavior.
		// proposals and their votes entry are always written together below,
		// so a missing entry cannot happen and is treated as nothing to report.
		old, ok := t.candidateVotes[existing.digest]
		if !ok {
			return nil
		}

		misbehavior := NewMisbehavior[C, D, S](MultipleCandidates[C, S]{
			First:  CandidateSignature[C, S]{Candidate: old.candidate, Signature: existing.signature},
			Second: CandidateSignature[C, S]{Candidate: candidate, Signature: signature},
		})
		return &misbehavior
	}

	t.proposedCandidates[from] = digestSignature[D, S]{digest: digest, signature: signature}
	if _, ok := t.candidateVotes[digest]; !ok {
		t.candidateVotes[digest] = newCandidateData[ID, C, G, S](group, candidate)
	}
	return nil
}

func (t *Table[ID, D, C, G, S]) validityVote(
	ctx Context[ID, D, C, G, S],
	from ID,
	digest D,
	valid bool,
	signature S,
) *Misbehavior[C, D, S] {
	// votes on candidates which were never proposed are dropped rather than queued,
	// so they cannot be used to grow the table without bound.
	votes, ok := t.candidateVotes[digest]
	if !ok {
		return nil
	}

	// check that this validator actually can vote in this group.
	if !ctx.IsMemberOf(from, votes.groupID) {
		misbehavior := NewMisbehavior[C, D, S](UnauthorizedStatement[C, D, S]{
			Statement: SignedStatement[C, D, S]{
				Statement: validityStatement[C, D](digest, valid),
				Signature: signature,
			},
		})
		return &misbehavior
	}

	// check for double votes.
	existing, ok := votes.validityVotes[from]
	if !ok {
		votes.validityVotes[from] = validityVote[S]{valid: valid, signature: signature}
		// every first vote is noted here, whichever way it went.
		votes.indicatedBadBy = append(votes.indicatedBadBy, from)
		return nil
	}

	if existing.valid == valid {
		return nil
	}

	tSignature, fSignature := existing.signature, signature
	if valid {
		tSignature, fSignature = signature, existing.signature
	}

	misbehavior := NewMisbehavior[C, D, S](ValidityDoubleVote[D, S]{
		Digest:     digest,
		TSignature: tSignature,
		FSignature: fSignature,
	})
	return &misbehavior
}

func (t *Table[ID, D, C, G, S]) availabilityVote(
	ctx Context[ID, D, C, G, S],
	from ID,
	digest D,
	signature S,
) *Misbehavior[C, D, S] {
	votes, ok := t.candidateVotes[digest]
	if !ok {
		return nil
	}

	// check that this validator actually can vote in this group.
	if !ctx.IsAvailabilityGuarantorOf(from, votes.groupID) {
		misbehavior := NewMisbehavior[C, D, S](UnauthorizedStatement[C, D, S]{
			Statement: SignedStatement[C, D, S]{
				Statement: NewStatement[C, D](Available[D]{Digest: digest}),
				Signature: signature,
			},
		})
		return &misbehavior
	}

	votes.availabilityVotes[from] = struct{}{}
	return nil
}
