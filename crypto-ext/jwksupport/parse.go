/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package jwksupport

import (
	"crypto/ed25519"
	"fmt"

	"github.com/trustbloc/dataintegrity-ed25519-go/doc/jose/jwk"
)

// ToED25519PublicKeyBytes convert jwk to ed25519 pub key bytes.
func ToED25519PublicKeyBytes(key *jwk.JWK) ([]byte, error) {
	if key.Key == nil {
		return nil, fmt.Errorf("invalid Ed key, missing x value")
	}

	publicKey, err := key.PublicKeyBytes()
	if err != nil {
		return nil, err
	}

	if len(publicKey) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("%w: ed25519 public key of %d bytes", jwk.ErrInvalidKey, len(publicKey))
	}

	return publicKey, nil
}
