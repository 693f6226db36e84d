/*
Copyright SecureKey Technologies Inc. All Rights Reserved.
SPDX-License-Identifier: Apache-2.0
*/

package verifier

import (
	"fmt"

	"github.com/trustbloc/dataintegrity-ed25519-go/doc/ld/proof"
	"github.com/trustbloc/dataintegrity-ed25519-go/doc/signature/api"
)

// Params holds the values a proof is expected to carry. A nil value matches anything.
type Params struct {
	Purpose   *string
	Domain    *string
	Challenge *string
	Nonce     *string
}

// ParamOpt sets an expected proof value.
type ParamOpt func(p *Params)

// WithPurpose expects the proof purpose, given as a term or an IRI.
func WithPurpose(purpose string) ParamOpt {
	return func(p *Params) {
		p.Purpose = &purpose
	}
}

// WithDomain expects the proof domain.
func WithDomain(domain string) ParamOpt {
	return func(p *Params) {
		p.Domain = &domain
	}
}

// WithChallenge expects the proof challenge.
func WithChallenge(challenge string) ParamOpt {
	return func(p *Params) {
		p.Challenge = &challenge
	}
}

// WithNonce expects the proof nonce.
func WithNonce(nonce string) ParamOpt {
	return func(p *Params) {
		p.Nonce = &nonce
	}
}

func newParams(opts []ParamOpt) *Params {
	p := &Params{}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

func (e *Params) check(p *proof.Proof) error {
	if e.Purpose != nil && proof.CompactPurpose(*e.Purpose) != proof.CompactPurpose(p.Purpose) {
		return mismatch("proofPurpose", *e.Purpose, p.Purpose)
	}

	checks := []struct {
		attribute string
		expected  *string
		actual    string
	}{
		{"domain", e.Domain, p.Domain},
		{"challenge", e.Challenge, p.Challenge},
		{"nonce", e.Nonce, p.Nonce},
	}

	for _, c := range checks {
		if c.expected != nil && *c.expected != c.actual {
			return mismatch(c.attribute, *c.expected, c.actual)
		}
	}

	return nil
}

func mismatch(attribute, expected, actual string) error {
	return api.Invalid(attribute, fmt.Errorf("expected %q, got %q", expected, actual))
}
