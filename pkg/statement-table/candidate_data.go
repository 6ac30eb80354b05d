// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package table

type validityVote[S comparable] struct {
	valid     bool
	signature S
}

// candidateData holds the votes on a specific candidate.
type candidateData[ID, C, G, S comparable] struct {
	groupID           G
	candidate         C
	validityVotes     map[ID]validityVote[S]
	availabilityVotes map[ID]struct{}
	indicatedBadBy    []ID
}

func newCandidateData[ID, C, G, S comparable](group G, candidate C) *candidateData[ID, C, G, S] {
	return &candidateData[ID, C, G, S]{
		groupID:           group,
		candidate:         candidate,
		validityVotes:     make(map[ID]validityVote[S]),
		availabilityVotes: make(map[ID]struct{}),
	}
}

// positiveValidityVotes counts the validity votes which attest the candidate is valid.
func (cd *candidateData[ID, C, G, S]) positiveValidityVotes() (count int) {
	for _, vote := range cd.validityVotes {
		if vote.valid {
			count++
		}
	}
	return count
}

func (cd *candidateData[ID, C, G, S]) includable(validityThreshold, availabilityThreshold int) bool {
	return cd.positiveValidityVotes() >= validityThreshold &&
		len(cd.availabilityVotes) >= availabilityThreshold
}
