/*
Copyright SecureKey Technologies Inc. All Rights Reserved.
SPDX-License-Identifier: Apache-2.0
*/

package ed25519signature2020

import (
	"crypto/ed25519"
	"errors"
	"fmt"

	"github.com/trustbloc/dataintegrity-ed25519-go/doc/signature/api"
)

// ErrSignatureMismatch is returned when a signature does not verify against the message.
var ErrSignatureMismatch = errors.New("ed25519: invalid signature")

// Ed25519Algorithm signs with Ed25519 as defined in RFC 8032.
type Ed25519Algorithm struct{}

// NewEd25519Algorithm returns the Ed25519 primitive.
func NewEd25519Algorithm() *Ed25519Algorithm {
	return &Ed25519Algorithm{}
}

// Sign accepts a 32 byte seed or a 64 byte private key.
func (a *Ed25519Algorithm) Sign(privateKey, message []byte) ([]byte, error) {
	var key ed25519.PrivateKey

	switch len(privateKey) {
	case ed25519.SeedSize:
		key = ed25519.NewKeyFromSeed(privateKey)
	case ed25519.PrivateKeySize:
		key = ed25519.PrivateKey(privateKey)
	default:
		return nil, fmt.Errorf("ed25519: %w: private key of %d bytes", api.ErrKeyLength, len(privateKey))
	}

	return ed25519.Sign(key, message), nil
}

// Verify checks an Ed25519 signature.
func (a *Ed25519Algorithm) Verify(publicKey, signature, message []byte) error {
	if len(publicKey) != ed25519.PublicKeySize {
		return fmt.Errorf("ed25519: %w: public key of %d bytes", api.ErrKeyLength, len(publicKey))
	}

	if !ed25519.Verify(publicKey, message, signature) {
		return ErrSignatureMismatch
	}

	return nil
}

// PublicKeyOf returns the public key of a seed or private key.
func PublicKeyOf(privateKey []byte) ([]byte, error) {
	switch len(privateKey) {
	case ed25519.SeedSize:
		pub, ok := ed25519.NewKeyFromSeed(privateKey).Public().(ed25519.PublicKey)
		if !ok {
			return nil, errors.New("ed25519: unexpected public key type")
		}

		return pub, nil
	case ed25519.PrivateKeySize:
		return append([]byte(nil), privateKey[ed25519.SeedSize:]...), nil
	default:
		return nil, fmt.Errorf("ed25519: %w: private key of %d bytes", api.ErrKeyLength, len(privateKey))
	}
}
