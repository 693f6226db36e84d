/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package jwk derives verification methods from did:jwk identifiers.
package jwk

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/trustbloc/dataintegrity-ed25519-go/crypto-ext/jwksupport"
	"github.com/trustbloc/dataintegrity-ed25519-go/doc/jose/jwk"
	"github.com/trustbloc/dataintegrity-ed25519-go/doc/signature/api"
	"github.com/trustbloc/dataintegrity-ed25519-go/method/resolver"
)

const (
	// DIDMethod did method.
	DIDMethod = "jwk"

	// jsonWebKey2020 is the type of the single did:jwk verification method.
	jsonWebKey2020 = "JsonWebKey2020"

	fragment = "0"
	prefix   = "did:" + DIDMethod + ":"
)

// Provider decodes the key embedded in a did:jwk identifier. It performs no network access.
type Provider struct{}

// New returns a did:jwk provider.
func New() *Provider {
	return &Provider{}
}

// VerificationMethod decodes the Ed25519 key of id. The only method of a did:jwk DID has fragment "0".
func (p *Provider) VerificationMethod(_ context.Context, id string) (*api.VerificationMethod, error) {
	did, frag, hasFragment := strings.Cut(id, "#")

	if hasFragment && frag != fragment {
		return nil, api.Invalid("verificationMethod", fmt.Errorf("unknown method fragment %q", frag))
	}

	key, err := parseDID(did)
	if err != nil {
		return nil, api.Invalid("verificationMethod", err)
	}

	pub, err := jwksupport.ToED25519PublicKeyBytes(key)
	if err != nil {
		return nil, api.Invalid("verificationMethod", err)
	}

	return &api.VerificationMethod{
		ID:         did + "#" + fragment,
		Type:       jsonWebKey2020,
		Controller: did,
		PublicKey:  pub,
	}, nil
}

func parseDID(did string) (*jwk.JWK, error) {
	if !strings.HasPrefix(did, prefix) {
		return nil, fmt.Errorf("not a did:jwk DID: %s", did)
	}

	raw, err := base64.RawURLEncoding.DecodeString(strings.TrimPrefix(did, prefix))
	if err != nil {
		return nil, fmt.Errorf("decode did:jwk: %w", err)
	}

	key := &jwk.JWK{}

	if err = key.UnmarshalJSON(raw); err != nil {
		return nil, err
	}

	if !key.IsPublic() {
		return nil, fmt.Errorf("%w: did:jwk carries private key material", jwk.ErrInvalidKey)
	}

	return key, nil
}

// Predicate matches did:jwk identifiers.
func Predicate() resolver.Predicate {
	return resolver.DIDMethodIs(DIDMethod)
}

var _ resolver.Provider = (*Provider)(nil)
