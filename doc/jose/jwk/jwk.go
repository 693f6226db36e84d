/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package jwk

import (
	"crypto/ed25519"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-jose/go-jose/v3"
)

const (
	// OKPKty is the key type of octet key pairs.
	OKPKty = "OKP"
	// Ed25519Crv is the curve name of Ed25519 keys.
	Ed25519Crv = "Ed25519"
)

// ErrInvalidKey is returned when passed JWK is invalid.
var ErrInvalidKey = errors.New("invalid JWK")

// JWK (JSON Web Key) is a JSON data structure that represents a cryptographic key.
type JWK struct {
	jose.JSONWebKey

	Kty string
	Crv string
}

// PublicKeyBytes returns the raw Ed25519 public key.
func (j *JWK) PublicKeyBytes() ([]byte, error) {
	if j.Kty != OKPKty || j.Crv != Ed25519Crv {
		return nil, fmt.Errorf("%w: unsupported kty %q and crv %q combination", ErrInvalidKey, j.Kty, j.Crv)
	}

	switch key := j.Key.(type) {
	case ed25519.PublicKey:
		return append([]byte(nil), key...), nil
	case ed25519.PrivateKey:
		return append([]byte(nil), key.Public().(ed25519.PublicKey)...), nil
	default:
		return nil, fmt.Errorf("%w: unexpected key %T", ErrInvalidKey, j.Key)
	}
}

// PrivateKeyBytes returns the raw Ed25519 private key (seed and public key), or nil for a public JWK.
func (j *JWK) PrivateKeyBytes() []byte {
	if key, ok := j.Key.(ed25519.PrivateKey); ok {
		return append([]byte(nil), key...)
	}

	return nil
}

// UnmarshalJSON reads a key from JSON.
func (j *JWK) UnmarshalJSON(jwkBytes []byte) error {
	var header struct {
		Kty string `json:"kty"`
		Crv string `json:"crv"`
	}

	if err := json.Unmarshal(jwkBytes, &header); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidKey, err)
	}

	if err := j.JSONWebKey.UnmarshalJSON(jwkBytes); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidKey, err)
	}

	j.Kty = header.Kty
	j.Crv = header.Crv

	return nil
}

// MarshalJSON writes the key as JSON.
func (j *JWK) MarshalJSON() ([]byte, error) {
	return j.JSONWebKey.MarshalJSON()
}

// Map returns the JSON object form of the key.
func (j *JWK) Map() (map[string]interface{}, error) {
	raw, err := j.MarshalJSON()
	if err != nil {
		return nil, err
	}

	var m map[string]interface{}

	if err = json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}

	return m, nil
}

// FromMap parses the JSON object form of a key.
func FromMap(m map[string]interface{}) (*JWK, error) {
	raw, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidKey, err)
	}

	key := &JWK{}

	if err = key.UnmarshalJSON(raw); err != nil {
		return nil, err
	}

	return key, nil
}
