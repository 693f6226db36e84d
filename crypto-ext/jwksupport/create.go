/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package jwksupport

import (
	"crypto/ed25519"
	"fmt"

	"github.com/go-jose/go-jose/v3"

	"github.com/trustbloc/dataintegrity-ed25519-go/doc/fingerprint"
	"github.com/trustbloc/dataintegrity-ed25519-go/doc/jose/jwk"
)

// JWKFromKey creates a JWK from an opaque key, e.g. ed25519.PublicKey or ed25519.PrivateKey.
func JWKFromKey(opaqueKey interface{}) (*jwk.JWK, error) {
	key := &jwk.JWK{
		JSONWebKey: jose.JSONWebKey{
			Key: opaqueKey,
		},
	}

	// marshal/unmarshal to get all JWK's fields other than Key filled.
	keyBytes, err := key.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("create JWK: %w", err)
	}

	err = key.UnmarshalJSON(keyBytes)
	if err != nil {
		return nil, fmt.Errorf("create JWK: %w", err)
	}

	return key, nil
}

// FromEdPublicKey creates jwk from ed25519 key.
func FromEdPublicKey(pub ed25519.PublicKey) (*jwk.JWK, error) {
	if len(pub) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("%w: ed25519 public key of %d bytes", jwk.ErrInvalidKey, len(pub))
	}

	return JWKFromKey(pub)
}

// FromEdPrivateKey creates jwk from ed25519 key.
func FromEdPrivateKey(priv ed25519.PrivateKey) (*jwk.JWK, error) {
	if len(priv) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("%w: ed25519 private key of %d bytes", jwk.ErrInvalidKey, len(priv))
	}

	return JWKFromKey(priv)
}

// CreateDIDKeyByJwk creates a did:key ID using the multicodec key fingerprint as per the did:key format spec found at:
// https://w3c-ccg.github.io/did-method-key/#format.
func CreateDIDKeyByJwk(jsonWebKey *jwk.JWK) (string, string, error) {
	if jsonWebKey == nil {
		return "", "", fmt.Errorf("jsonWebKey is required")
	}

	keyData, err := ToED25519PublicKeyBytes(jsonWebKey)
	if err != nil {
		return "", "", err
	}

	didKey, keyID := fingerprint.CreateDIDKey(keyData)

	return didKey, keyID, nil
}
