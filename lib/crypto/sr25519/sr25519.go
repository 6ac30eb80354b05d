// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package sr25519

import (
	"errors"
	"fmt"

	sr25519 "github.com/ChainSafe/go-schnorrkel"
	"github.com/gtank/merlin"
)

const (
	// PublicKeyLength is the expected public key length for sr25519.
	PublicKeyLength = 32
	// SeedLength is the expected seed length for sr25519.
	SeedLength = 32
	// SignatureLength is the expected signature length for sr25519.
	SignatureLength = 64
)

// SigningContext is the context for signatures used or created with substrate
var SigningContext = []byte("substrate")

var (
	errInvalidSeedLength      = errors.New("cannot generate key from seed: seed is not 32 bytes long")
	errInvalidPublicKeyLength = errors.New("cannot create public key: input is not 32 bytes")
	errInvalidSignatureLength = errors.New("invalid signature length")
)

// Keypair is a sr25519 public-private keypair
type Keypair struct {
	public  *PublicKey
	private *PrivateKey
}

// PublicKey holds reference to a sr25519.PublicKey
type PublicKey struct {
	key *sr25519.PublicKey
}

// PrivateKey holds reference to a sr25519.SecretKey
type PrivateKey struct {
	key *sr25519.SecretKey
}

// NewKeypairFromSeed returns a new sr25519 Keypair given a 32 byte mini secret key
func NewKeypairFromSeed(seed []byte) (*Keypair, error) {
	if len(seed) != SeedLength {
		return nil, errInvalidSeedLength
	}

	buf := [SeedLength]byte{}
	copy(buf[:], seed)
	msc, err := sr25519.NewMiniSecretKeyFromRaw(buf)
	if err != nil {
		return nil, fmt.Errorf("creating mini secret key: %w", err)
	}

	return &Keypair{
		public:  &PublicKey{key: msc.Public()},
		private: &PrivateKey{key: msc.ExpandEd25519()},
	}, nil
}

// GenerateKeypair returns a new sr25519 keypair
func GenerateKeypair() (*Keypair, error) {
	priv, pub, err := sr25519.GenerateKeypair()
	if err != nil {
		return nil, err
	}

	return &Keypair{
		public:  &PublicKey{key: pub},
		private: &PrivateKey{key: priv},
	}, nil
}

// Sign uses the keypair to sign the message using the sr25519 signature algorithm
func (kp *Keypair) Sign(msg []byte) ([]byte, error) {
	return kp.private.Sign(msg)
}

// Public returns the public key corresponding to this keypair
func (kp *Keypair) Public() *PublicKey {
	return kp.public
}

// Sign uses the private key to sign the message using the sr25519 signature algorithm
func (k *PrivateKey) Sign(msg []byte) ([]byte, error) {
	sig, err := k.key.Sign(signingTranscript(msg))
	if err != nil {
		return nil, err
	}
	enc := sig.Encode()
	return enc[:], nil
}

// NewPublicKey returns a sr25519 public key from 32 byte input
func NewPublicKey(in []byte) (*PublicKey, error) {
	if len(in) != PublicKeyLength {
		return nil, errInvalidPublicKeyLength
	}

	buf := [PublicKeyLength]byte{}
	copy(buf[:], in)
	pub := &sr25519.PublicKey{}
	err := pub.Decode(buf)
	if err != nil {
		return nil, fmt.Errorf("decoding public key: %w", err)
	}
	return &PublicKey{key: pub}, nil
}

// Verify uses the sr25519 signature algorithm to verify that the message was signed by
// this public key; it returns true if this key created the signature for the message
func (k *PublicKey) Verify(msg, sig []byte) (bool, error) {
	if len(sig) != SignatureLength {
		return false, errInvalidSignatureLength
	}

	buf := [SignatureLength]byte{}
	copy(buf[:], sig)
	s := &sr25519.Signature{}
	err := s.Decode(buf)
	if err != nil {
		return false, fmt.Errorf("decoding signature: %w", err)
	}

	return k.key.Verify(s, signingTranscript(msg))
}

// Encode returns the 32 byte encoding of the public key
func (k *PublicKey) Encode() [PublicKeyLength]byte {
	return k.key.Encode()
}

func signingTranscript(msg []byte) *merlin.Transcript {
	return sr25519.NewSigningContext(SigningContext, msg)
}
