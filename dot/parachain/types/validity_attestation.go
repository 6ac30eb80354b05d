// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package parachaintypes

// ValidityAttestation is an explicit attestation to the validity of a parachain
// candidate by a member of its group.
type ValidityAttestation struct {
	ValidatorIndex ValidatorIndex
	Signature      ValidatorSignature
}
