/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package proof

import (
	"errors"
	"fmt"
	"time"

	"github.com/trustbloc/dataintegrity-ed25519-go/doc/ld/material"
	"github.com/trustbloc/dataintegrity-ed25519-go/doc/ld/processor"
	"github.com/trustbloc/dataintegrity-ed25519-go/doc/signature/api"
)

// Compacted term names of a proof.
const (
	// jsonldProof is the document property holding proofs.
	jsonldProof = "proof"

	jsonldID                 = "id"
	jsonldType               = "type"
	jsonldCreated            = "created"
	jsonldExpires            = "expires"
	jsonldProofPurpose       = "proofPurpose"
	jsonldVerificationMethod = "verificationMethod"
	jsonldDomain             = "domain"
	jsonldChallenge          = "challenge"
	jsonldNonce              = "nonce"
	jsonldProofValue         = "proofValue"
)

// Vocabulary IRIs of the expanded proof form.
const (
	SecurityVocab = "https://w3id.org/security#"

	ProofIRI              = SecurityVocab + "proof"
	CreatedIRI            = "http://purl.org/dc/terms/created"
	ExpiresIRI            = SecurityVocab + "expiration"
	ProofPurposeIRI       = SecurityVocab + "proofPurpose"
	VerificationMethodIRI = SecurityVocab + "verificationMethod"
	DomainIRI             = SecurityVocab + "domain"
	ChallengeIRI          = SecurityVocab + "challenge"
	NonceIRI              = SecurityVocab + "nonce"
	ProofValueIRI         = SecurityVocab + "proofValue"
	// PreviousProofIRI has no term in the suite context, so it is written as a full IRI.
	PreviousProofIRI = SecurityVocab + "previousProof"
)

const (
	// DateTimeFormat is the xsd:dateTime layout of created and expires.
	DateTimeFormat = time.RFC3339

	// AssertionMethod is the default proof purpose.
	AssertionMethod = "assertionMethod"
)

// Compacted term names, exported for suites and signers.
const (
	TermProof      = jsonldProof
	TermProofValue = jsonldProofValue
)

// ErrProofNotFound is returned when a document carries no proof.
var ErrProofNotFound = errors.New("proof is not found")

//nolint:gochecknoglobals
var purposeIRIs = map[string]string{
	AssertionMethod:        SecurityVocab + "assertionMethod",
	"authentication":       SecurityVocab + "authenticationMethod",
	"capabilityInvocation": SecurityVocab + "capabilityInvocationMethod",
	"capabilityDelegation": SecurityVocab + "capabilityDelegationMethod",
	"keyAgreement":         SecurityVocab + "keyAgreementMethod",
}

// CompactPurpose maps a purpose IRI of the security vocabulary to its term. Other values are returned as is.
func CompactPurpose(purpose string) string {
	for term, iri := range purposeIRIs {
		if purpose == iri || purpose == SecurityVocab+term {
			return term
		}
	}

	return purpose
}

// ExpandPurpose maps a purpose term to its IRI. Other values are returned as is.
func ExpandPurpose(purpose string) string {
	if iri, ok := purposeIRIs[purpose]; ok {
		return iri
	}

	return purpose
}

// Proof is a proof attached to a document. Its compacted and expanded forms are held in a Material built
// against the document's contexts. A Proof is never modified: signing or stripping the value returns a copy.
type Proof struct {
	ID            string
	Type          string
	Purpose       string
	Method        *api.VerificationMethod
	Created       time.Time
	Expires       *time.Time
	Domain        string
	Challenge     string
	Nonce         string
	PreviousProof string
	Value         []byte

	material *material.Material
}

// WithMaterial returns a copy of p bound to the given forms.
func (p *Proof) WithMaterial(m *material.Material) *Proof {
	cp := *p
	cp.material = m

	return &cp
}

// Material returns the proof forms; nil for a proof that was never built or read.
func (p *Proof) Material() *material.Material {
	return p.material
}

// IsSigned reports whether the proof carries a signature value.
func (p *Proof) IsSigned() bool {
	return len(p.Value) > 0
}

// Compacted returns the compacted proof without its @context, ready to be embedded into a document.
func (p *Proof) Compacted() map[string]interface{} {
	if p.material == nil {
		return nil
	}

	c := p.material.Compacted()
	delete(c, "@context")

	return c
}

// WithValue returns a signed copy carrying the raw signature and its encoded form.
func (p *Proof) WithValue(signature []byte, encoded string, opts ...processor.Opts) (*Proof, error) {
	if p.material == nil {
		return nil, errors.New("proof has no document form")
	}

	m, err := p.material.With(jsonldProofValue, encoded, opts...)
	if err != nil {
		return nil, fmt.Errorf("attach proof value: %w", err)
	}

	cp := p.WithMaterial(m)
	cp.Value = append([]byte(nil), signature...)

	return cp, nil
}

// Unsigned returns a copy with the signature removed from both forms.
func (p *Proof) Unsigned(opts ...processor.Opts) (*Proof, error) {
	if p.material == nil {
		return nil, errors.New("proof has no document form")
	}

	m, err := p.material.Without([]string{jsonldProofValue}, opts...)
	if err != nil {
		return nil, fmt.Errorf("remove proof value: %w", err)
	}

	cp := p.WithMaterial(m)
	cp.Value = nil

	return cp, nil
}

// FormatDateTime formats t as an xsd:dateTime in UTC.
func FormatDateTime(t time.Time) string {
	return t.UTC().Format(DateTimeFormat)
}

// ParseDateTime parses an xsd:dateTime value.
func ParseDateTime(s string) (time.Time, error) {
	return time.Parse(DateTimeFormat, s)
}

// GetProofs returns the compacted proofs of a document; a single proof object and a proof set are both accepted.
func GetProofs(doc map[string]interface{}) ([]map[string]interface{}, error) {
	entry, ok := doc[jsonldProof]
	if !ok || entry == nil {
		return nil, ErrProofNotFound
	}

	switch p := entry.(type) {
	case map[string]interface{}:
		return []map[string]interface{}{p}, nil
	case []interface{}:
		if len(p) == 0 {
			return nil, ErrProofNotFound
		}

		proofs := make([]map[string]interface{}, 0, len(p))

		for _, item := range p {
			m, ok := item.(map[string]interface{})
			if !ok {
				return nil, fmt.Errorf("proof entry is not an object: %T", item)
			}

			proofs = append(proofs, m)
		}

		return proofs, nil
	default:
		return nil, fmt.Errorf("proof is not an object: %T", entry)
	}
}

// AddProof returns the proof property value after adding proof to what the document already carries.
func AddProof(existing interface{}, proof map[string]interface{}) interface{} {
	switch p := existing.(type) {
	case nil:
		return proof
	case []interface{}:
		return append(append([]interface{}{}, p...), proof)
	default:
		return []interface{}{p, proof}
	}
}
