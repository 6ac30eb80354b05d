// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package table

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Summary represents the votes accumulated for a candidate.
type Summary[D, G comparable] struct {
	// The digest of the candidate referenced.
	Candidate D
	// The group that the candidate is in.
	GroupID G
	// How many validity votes are currently witnessed, either way.
	ValidityVotes int
	// How many of the validity votes attest the candidate is valid.
	PositiveValidityVotes int
	// How many availability votes are currently witnessed.
	AvailabilityVotes int
}

// Candidate returns the candidate with the given digest and its group.
func (t *Table[ID, D, C, G, S]) Candidate(digest D) (candidate C, group G, ok bool) {
	data, ok := t.candidateVotes[digest]
	if !ok {
		return candidate, group, false
	}
	return data.candidate, data.groupID, true
}

// Summary returns the summary of votes on the candidate with the given digest.
func (t *Table[ID, D, C, G, S]) Summary(digest D) (*Summary[D, G], bool) {
	data, ok := t.candidateVotes[digest]
	if !ok {
		return nil, false
	}
	return &Summary[D, G]{
		Candidate:             digest,
		GroupID:               data.groupID,
		ValidityVotes:         len(data.validityVotes),
		PositiveValidityVotes: data.positiveValidityVotes(),
		AvailabilityVotes:     len(data.availabilityVotes),
	}, true
}

// ValidityVotes returns the number of validity votes, either way, on the digest.
func (t *Table[ID, D, C, G, S]) ValidityVotes(digest D) int {
	data, ok := t.candidateVotes[digest]
	if !ok {
		return 0
	}
	return len(data.validityVotes)
}

// AvailabilityVotes returns the number of availability votes on the digest.
func (t *Table[ID, D, C, G, S]) AvailabilityVotes(digest D) int {
	data, ok := t.candidateVotes[digest]
	if !ok {
		return 0
	}
	return len(data.availabilityVotes)
}

// ValidityVote returns the validity vote the validator recorded on the digest.
func (t *Table[ID, D, C, G, S]) ValidityVote(digest D, validator ID) (valid bool, signature S, ok bool) {
	data, ok := t.candidateVotes[digest]
	if !ok {
		return false, signature, false
	}
	vote, ok := data.validityVotes[validator]
	return vote.valid, vote.signature, ok
}

// HasAvailabilityVote returns whether the validator attested availability of the digest.
func (t *Table[ID, D, C, G, S]) HasAvailabilityVote(digest D, validator ID) bool {
	data, ok := t.candidateVotes[digest]
	if !ok {
		return false
	}
	_, ok = data.availabilityVotes[validator]
	return ok
}

// IndicatedBadBy returns the validators noted against the digest, in the order
// their first validity vote was imported.
func (t *Table[ID, D, C, G, S]) IndicatedBadBy(digest D) []ID {
	data, ok := t.candidateVotes[digest]
	if !ok {
		return nil
	}
	return slices.Clone(data.indicatedBadBy)
}

// ProposedCandidate returns the digest and signature of the candidate proposed by
// the validator.
func (t *Table[ID, D, C, G, S]) ProposedCandidate(validator ID) (digest D, signature S, ok bool) {
	proposal, ok := t.proposedCandidates[validator]
	return proposal.digest, proposal.signature, ok
}

// Misbehavior returns the misbehavior currently recorded for the validator.
func (t *Table[ID, D, C, G, S]) Misbehavior(validator ID) (Misbehavior[C, D, S], bool) {
	misbehavior, ok := t.detectedMisbehavior[validator]
	return misbehavior, ok
}

// DetectedMisbehavior returns a copy of all misbehavior currently recorded.
func (t *Table[ID, D, C, G, S]) DetectedMisbehavior() map[ID]Misbehavior[C, D, S] {
	return maps.Clone(t.detectedMisbehavior)
}

// DrainMisbehavior returns all misbehavior recorded so far and clears it from the table.
func (t *Table[ID, D, C, G, S]) DrainMisbehavior() map[ID]Misbehavior[C, D, S] {
	drained := t.detectedMisbehavior
	t.detectedMisbehavior = make(map[ID]Misbehavior[C, D, S])
	return drained
}

// Includable returns whether the candidate with the given digest has at least
// validityThreshold votes attesting it valid and at least availabilityThreshold
// availability votes.
func (t *Table[ID, D, C, G, S]) Includable(digest D, validityThreshold, availabilityThreshold int) bool {
	data, ok := t.candidateVotes[digest]
	if !ok {
		return false
	}
	return data.includable(validityThreshold, availabilityThreshold)
}

// IncludableCandidates returns all includable candidates, ordered by cmp.
func (t *Table[ID, D, C, G, S]) IncludableCandidates(
	validityThreshold, availabilityThreshold int,
	cmp func(a, b C) int,
) []C {
	var candidates []C
	for _, data := range t.candidateVotes {
		if data.includable(validityThreshold, availabilityThreshold) {
			candidates = append(candidates, data.candidate)
		}
	}
	slices.SortFunc(candidates, cmp)
	return candidates
}
