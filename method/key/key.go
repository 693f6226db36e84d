/*
Copyright SecureKey Technologies Inc. All Rights Reserved.
SPDX-License-Identifier: Apache-2.0
*/

// Package key derives verification methods from did:key identifiers.
package key

import (
	"context"
	"fmt"
	"strings"

	"github.com/trustbloc/dataintegrity-ed25519-go/doc/codec"
	"github.com/trustbloc/dataintegrity-ed25519-go/doc/fingerprint"
	"github.com/trustbloc/dataintegrity-ed25519-go/doc/signature/api"
	"github.com/trustbloc/dataintegrity-ed25519-go/doc/signature/suite/ed25519signature2020"
	"github.com/trustbloc/dataintegrity-ed25519-go/method/resolver"
)

// DIDMethod is the did:key method name.
const DIDMethod = "key"

// Provider derives the Ed25519 key embedded in a did:key identifier. It performs no network access.
type Provider struct{}

// New returns a did:key provider.
func New() *Provider {
	return &Provider{}
}

// VerificationMethod decodes the key of id. The fragment, when present, must repeat the key fingerprint.
func (p *Provider) VerificationMethod(_ context.Context, id string) (*api.VerificationMethod, error) {
	methodID, err := fingerprint.MethodIDFromDIDKey(id)
	if err != nil {
		return nil, api.Invalid("verificationMethod", err)
	}

	did, _, _ := strings.Cut(id, "#")

	pub, _, err := fingerprint.PubKeyFromDIDKey(did)
	if err != nil {
		return nil, api.Invalid("verificationMethod", err)
	}

	if !codec.Ed25519PublicKey.ValidLength(len(pub)) {
		return nil, api.Invalid("verificationMethod", fmt.Errorf("unexpected key length %d", len(pub)))
	}

	return &api.VerificationMethod{
		ID:         did + "#" + methodID,
		Type:       ed25519signature2020.VerificationKeyType,
		Controller: did,
		PublicKey:  pub,
	}, nil
}

// Predicate matches did:key identifiers.
func Predicate() resolver.Predicate {
	return resolver.DIDMethodIs(DIDMethod)
}

var _ resolver.Provider = (*Provider)(nil)
