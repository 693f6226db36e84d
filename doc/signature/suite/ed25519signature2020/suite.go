/*
Copyright SecureKey Technologies Inc. All Rights Reserved.
SPDX-License-Identifier: Apache-2.0
*/

// Package ed25519signature2020 implements the Ed25519Signature2020 Data Integrity suite.
// It uses the RDF Dataset Normalization Algorithm (URDNA2015) to transform documents into their canonical form,
// SHA-256 as the message digest algorithm and Ed25519 as the signature algorithm. Signatures and keys are
// encoded as multibase base58btc.
package ed25519signature2020

import (
	"fmt"

	"github.com/trustbloc/dataintegrity-ed25519-go/doc/codec"
	"github.com/trustbloc/dataintegrity-ed25519-go/doc/ld/context/embed"
	"github.com/trustbloc/dataintegrity-ed25519-go/doc/ld/processor"
	"github.com/trustbloc/dataintegrity-ed25519-go/doc/ld/proof"
	"github.com/trustbloc/dataintegrity-ed25519-go/doc/signature/api"
	"github.com/trustbloc/dataintegrity-ed25519-go/doc/signature/cryptosuite"
)

const (
	// SignatureType is the compacted proof type.
	SignatureType = "Ed25519Signature2020"
	// VerificationKeyType is the type of a public key document.
	VerificationKeyType = "Ed25519VerificationKey2020"
	// KeyPairType is the type of a key document carrying a private key.
	KeyPairType = "Ed25519KeyPair2020"
	// ContextURL is the context defining the suite terms.
	ContextURL = embed.Ed25519Signature2020ContextURL
	// ProofValueLength is the byte length of an Ed25519 signature.
	ProofValueLength = 64

	// SignatureTypeIRI is the expanded proof type.
	SignatureTypeIRI = proof.SecurityVocab + SignatureType
	// VerificationKeyTypeIRI is the expanded verification key type.
	VerificationKeyTypeIRI = proof.SecurityVocab + VerificationKeyType

	rdfDataSetAlg = "URDNA2015"
)

// Suite implements the Ed25519Signature2020 suite. It is immutable and may be shared.
type Suite struct {
	crypto     *cryptosuite.CryptoSuite
	derivesKey bool
}

type suiteOpts struct {
	canonicalizer api.Canonicalizer
	algorithm     api.SignatureAlgorithm
}

// Opt configures a Suite.
type Opt func(opts *suiteOpts)

// WithCanonicalizer replaces the URDNA2015 canonicalizer.
func WithCanonicalizer(c api.Canonicalizer) Opt {
	return func(opts *suiteOpts) {
		opts.canonicalizer = c
	}
}

// WithSignatureAlgorithm replaces the Ed25519 primitive, e.g. with a remote signer.
func WithSignatureAlgorithm(a api.SignatureAlgorithm) Opt {
	return func(opts *suiteOpts) {
		opts.algorithm = a
	}
}

// New creates an instance of the suite.
func New(opts ...Opt) *Suite {
	o := &suiteOpts{
		canonicalizer: processor.NewProcessor(rdfDataSetAlg),
		algorithm:     NewEd25519Algorithm(),
	}

	for _, opt := range opts {
		opt(o)
	}

	_, derivesKey := o.algorithm.(*Ed25519Algorithm)

	return &Suite{
		crypto:     cryptosuite.New(SignatureType, o.canonicalizer, cryptosuite.SHA256(), o.algorithm, ProofValueLength),
		derivesKey: derivesKey,
	}
}

// CheckKeyPair verifies vm can sign with this suite. The public key is matched against the private key unless
// the signature algorithm was replaced, in which case the private key may be an opaque handle.
func (s *Suite) CheckKeyPair(vm *api.VerificationMethod) error {
	if !s.derivesKey {
		if vm == nil || vm.ID == "" {
			return api.Missing("verificationMethod")
		}

		if len(vm.PrivateKey) == 0 {
			return api.Missing("privateKey")
		}

		return nil
	}

	return CheckKeyPair(vm)
}

// CryptoSuite returns the canonicalization, digest and signature configuration.
func (s *Suite) CryptoSuite() *cryptosuite.CryptoSuite {
	return s.crypto
}

// Accept reports whether t names this suite's proof type, compacted or expanded.
func (s *Suite) Accept(t string) bool {
	return t == SignatureType || t == SignatureTypeIRI
}

// ProofType returns the compacted proof type.
func (s *Suite) ProofType() string {
	return SignatureType
}

// ContextURL returns the suite context.
func (s *Suite) ContextURL() string {
	return ContextURL
}

// WriteMethod returns the verificationMethod value of a proof: the method ID, or an embedded
// Ed25519VerificationKey2020 document when embedded is set.
func (s *Suite) WriteMethod(vm *api.VerificationMethod, embedded bool) (interface{}, error) {
	if vm == nil || vm.ID == "" {
		return nil, api.Missing("verificationMethod")
	}

	if !embedded {
		return vm.ID, nil
	}

	doc, err := s.WriteKeyDocument(vm.VerificationKey())
	if err != nil {
		return nil, api.Invalid("verificationMethod", err)
	}

	return doc, nil
}

// EncodeProofValue encodes a raw signature as the proofValue text.
func (s *Suite) EncodeProofValue(sig []byte) (string, error) {
	text, err := codec.EncodeSignature(sig, ProofValueLength)
	if err != nil {
		return "", api.NewError(api.ErrProofGeneration, proof.TermProofValue, err)
	}

	return text, nil
}

// DecodeProofValue decodes the proofValue text.
func (s *Suite) DecodeProofValue(text string) ([]byte, error) {
	sig, err := codec.DecodeSignature(text, ProofValueLength)
	if err != nil {
		return nil, api.Invalid(proof.TermProofValue, fmt.Errorf("decode proof value: %w", err))
	}

	return sig, nil
}

var _ proof.Writer = (*Suite)(nil)
