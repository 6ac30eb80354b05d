// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package backing

import (
	"errors"
	"fmt"
	"sync"

	parachaintypes "github.com/ChainSafe/candidate-agreement/dot/parachain/types"
	"github.com/ChainSafe/candidate-agreement/lib/crypto/sr25519"
)

var (
	errValidatorIndexOutOfRange = errors.New("validator index out of range")
	errKeyNotFound              = errors.New("key not found in keystore")
)

// KeyStore holds the sr25519 keypairs of local validators.
type KeyStore struct {
	mutex    sync.RWMutex
	keypairs map[parachaintypes.ValidatorID]*sr25519.Keypair
}

// NewKeyStore creates an empty keystore.
func NewKeyStore() *KeyStore {
	return &KeyStore{
		keypairs: map[parachaintypes.ValidatorID]*sr25519.Keypair{},
	}
}

// Insert adds the keypair to the keystore and returns its validator id.
func (ks *KeyStore) Insert(keypair *sr25519.Keypair) parachaintypes.ValidatorID {
	id := parachaintypes.ValidatorID(keypair.Public().Encode())

	ks.mutex.Lock()
	defer ks.mutex.Unlock()
	ks.keypairs[id] = keypair
	return id
}

// Keypair returns the keypair of the validator id.
func (ks *KeyStore) Keypair(id parachaintypes.ValidatorID) (*sr25519.Keypair, bool) {
	ks.mutex.RLock()
	defer ks.mutex.RUnlock()
	keypair, ok := ks.keypairs[id]
	return keypair, ok
}

// Signer signs statements on behalf of the local validators of a validator set.
type Signer struct {
	keystore       *KeyStore
	validators     []parachaintypes.ValidatorID
	signingContext parachaintypes.SigningContext
}

// NewSigner creates a signer for the validator set in the given signing context.
func NewSigner(keystore *KeyStore, validators []parachaintypes.ValidatorID,
	signingContext parachaintypes.SigningContext) *Signer {
	return &Signer{
		keystore:       keystore,
		validators:     validators,
		signingContext: signingContext,
	}
}

// Sign signs the statement as the validator at the given index.
func (s *Signer) Sign(index parachaintypes.ValidatorIndex, statement parachaintypes.Statement) (
	signed parachaintypes.SignedStatement, err error) {
	if int(index) >= len(s.validators) {
		return signed, fmt.Errorf("%w: %d", errValidatorIndexOutOfRange, index)
	}

	keypair, ok := s.keystore.Keypair(s.validators[index])
	if !ok {
		return signed, fmt.Errorf("%w: validator %d", errKeyNotFound, index)
	}

	payload, err := parachaintypes.SigningPayload(statement, s.signingContext)
	if err != nil {
		return signed, fmt.Errorf("getting signing payload: %w", err)
	}

	signature, err := keypair.Sign(payload)
	if err != nil {
		return signed, fmt.Errorf("signing statement: %w", err)
	}

	signed.Statement = statement
	signed.Signature.ValidatorIndex = index
	copy(signed.Signature.Signature[:], signature)
	return signed, nil
}
