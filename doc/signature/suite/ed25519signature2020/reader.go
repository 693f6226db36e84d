/*
Copyright SecureKey Technologies Inc. All Rights Reserved.
SPDX-License-Identifier: Apache-2.0
*/

package ed25519signature2020

import (
	"fmt"
	"time"

	"github.com/trustbloc/dataintegrity-ed25519-go/doc/ld/material"
	"github.com/trustbloc/dataintegrity-ed25519-go/doc/ld/proof"
	"github.com/trustbloc/dataintegrity-ed25519-go/doc/signature/api"
)

// ReadProof reads a signed proof from the expanded form of its material.
func (s *Suite) ReadProof(m *material.Material) (*proof.Proof, error) {
	node, err := m.Node()
	if err != nil {
		return nil, api.Invalid("proof", err)
	}

	if node == nil {
		return nil, api.Missing("proof")
	}

	if !s.acceptsNode(node) {
		return nil, api.Invalid("type", fmt.Errorf("%w: %v", api.ErrUnsupportedSuite, proof.NodeTypes(node)))
	}

	p := &proof.Proof{Type: SignatureType}

	if id, ok := node["@id"].(string); ok {
		p.ID = id
	}

	if p.Created, err = readTime(node, proof.CreatedIRI, "created"); err != nil {
		return nil, err
	}

	if p.Created.IsZero() {
		return nil, api.Missing("created")
	}

	expires, err := readTime(node, proof.ExpiresIRI, "expires")
	if err != nil {
		return nil, err
	}

	if !expires.IsZero() {
		p.Expires = &expires
	}

	purpose, ok, err := proof.NodeID(node, proof.ProofPurposeIRI)
	if err != nil {
		return nil, api.Invalid("proofPurpose", err)
	}

	if !ok || purpose == "" {
		return nil, api.Missing("proofPurpose")
	}

	p.Purpose = proof.CompactPurpose(purpose)

	if p.Method, err = readMethod(node); err != nil {
		return nil, err
	}

	if p.Domain, err = readString(node, proof.DomainIRI, "domain"); err != nil {
		return nil, err
	}

	if p.Challenge, err = readString(node, proof.ChallengeIRI, "challenge"); err != nil {
		return nil, err
	}

	if p.Nonce, err = readString(node, proof.NonceIRI, "nonce"); err != nil {
		return nil, err
	}

	previous, _, err := proof.NodeID(node, proof.PreviousProofIRI)
	if err != nil {
		return nil, api.Invalid("previousProof", err)
	}

	p.PreviousProof = previous

	value, err := readString(node, proof.ProofValueIRI, proof.TermProofValue)
	if err != nil {
		return nil, err
	}

	if value == "" {
		return nil, api.Missing(proof.TermProofValue)
	}

	if p.Value, err = s.DecodeProofValue(value); err != nil {
		return nil, err
	}

	return p.WithMaterial(m), nil
}

func (s *Suite) acceptsNode(node map[string]interface{}) bool {
	for _, t := range proof.NodeTypes(node) {
		if s.Accept(t) {
			return true
		}
	}

	return false
}

// readMethod reads the verification method reference. Key material embedded in the proof is ignored:
// keys are always resolved by ID.
func readMethod(node map[string]interface{}) (*api.VerificationMethod, error) {
	obj, ok, err := proof.NodeObject(node, proof.VerificationMethodIRI)
	if err != nil {
		return nil, api.Invalid("verificationMethod", err)
	}

	if !ok {
		return nil, api.Missing("verificationMethod")
	}

	id, _ := obj["@id"].(string) //nolint:errcheck
	if id == "" {
		return nil, api.Missing("verificationMethod")
	}

	vm := &api.VerificationMethod{ID: id}

	if types := proof.NodeTypes(obj); len(types) > 0 {
		vm.Type = types[0]
	}

	if controller, _, err := proof.NodeID(obj, proof.SecurityVocab+"controller"); err == nil {
		vm.Controller = controller
	}

	return vm, nil
}

func readString(node map[string]interface{}, iri, term string) (string, error) {
	v, _, err := proof.NodeValue(node, iri)
	if err != nil {
		return "", api.Invalid(term, err)
	}

	return v, nil
}

func readTime(node map[string]interface{}, iri, term string) (time.Time, error) {
	v, err := readString(node, iri, term)
	if err != nil || v == "" {
		return time.Time{}, err
	}

	t, err := proof.ParseDateTime(v)
	if err != nil {
		return time.Time{}, api.Invalid(term, err)
	}

	return t, nil
}
