/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package jwk

import (
	"crypto/ed25519"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/trustbloc/dataintegrity-ed25519-go/crypto-ext/jwksupport"
	"github.com/trustbloc/dataintegrity-ed25519-go/doc/jose/jwk"
)

// Create returns the did:jwk DID of an Ed25519 public key and the id of its verification method.
func Create(pub ed25519.PublicKey) (string, string, error) {
	key, err := jwksupport.FromEdPublicKey(pub)
	if err != nil {
		return "", "", fmt.Errorf("error creating DID: %w", err)
	}

	didJWK, err := CreateDID(key)
	if err != nil {
		return "", "", fmt.Errorf("error creating DID: %w", err)
	}

	return didJWK, didJWK + "#" + fragment, nil
}

// CreateDID encodes the public part of key as a did:jwk DID.
func CreateDID(key *jwk.JWK) (string, error) {
	if key == nil {
		return "", fmt.Errorf("missing JWK")
	}

	if !key.IsPublic() {
		public := key.Public()
		key = &jwk.JWK{JSONWebKey: public, Kty: key.Kty, Crv: key.Crv}
	}

	m, err := key.Map()
	if err != nil {
		return "", fmt.Errorf("marshal key: %w", err)
	}

	// map keys marshal in lexicographic order
	canonicalBytes, err := json.Marshal(m)
	if err != nil {
		return "", fmt.Errorf("marshal canonical: %w", err)
	}

	didJWK := fmt.Sprintf("did:%s:%s", DIDMethod, base64.RawURLEncoding.EncodeToString(canonicalBytes))

	return didJWK, nil
}
