/*
Copyright SecureKey Technologies Inc. All Rights Reserved.
SPDX-License-Identifier: Apache-2.0
*/

package signer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hyperledger/aries-framework-go/component/log"
	"github.com/opentracing/opentracing-go"
	"github.com/piprate/json-gold/ld"

	"github.com/trustbloc/dataintegrity-ed25519-go/doc/ld/documentloader"
	"github.com/trustbloc/dataintegrity-ed25519-go/doc/ld/material"
	"github.com/trustbloc/dataintegrity-ed25519-go/doc/ld/processor"
	"github.com/trustbloc/dataintegrity-ed25519-go/doc/ld/proof"
	"github.com/trustbloc/dataintegrity-ed25519-go/doc/ld/validator"
	"github.com/trustbloc/dataintegrity-ed25519-go/doc/signature/api"
	"github.com/trustbloc/dataintegrity-ed25519-go/doc/signature/cryptosuite"
	"github.com/trustbloc/dataintegrity-ed25519-go/doc/util/maphelpers"
)

var logger = log.New("dataintegrity-ed25519/signer")

// SignatureSuite encapsulates signature suite methods required for signing documents.
type SignatureSuite interface {
	proof.Writer

	// CryptoSuite returns the canonicalization, digest and signature configuration.
	CryptoSuite() *cryptosuite.CryptoSuite
	// EncodeProofValue encodes a raw signature as proofValue text.
	EncodeProofValue(sig []byte) (string, error)
	// CheckKeyPair reports whether the key pair is usable for signing.
	CheckKeyPair(keyPair *api.VerificationMethod) error
}

// DocumentSigner implements signing of JSON-LD documents.
type DocumentSigner struct {
	suite      SignatureSuite
	loader     ld.DocumentLoader
	strict     bool
	now        func() time.Time
	newProofID func() string
}

type signerOpts struct {
	loader     ld.DocumentLoader
	strict     bool
	now        func() time.Time
	newProofID func() string
}

// Opt configures a DocumentSigner.
type Opt func(opts *signerOpts)

// WithDocumentLoader sets the loader used to resolve contexts. By default only the embedded contexts are served.
func WithDocumentLoader(loader ld.DocumentLoader) Opt {
	return func(opts *signerOpts) {
		opts.loader = loader
	}
}

// WithStrictValidation enables or disables the undefined term check on documents and proofs. Enabled by default.
func WithStrictValidation(strict bool) Opt {
	return func(opts *signerOpts) {
		opts.strict = strict
	}
}

// WithClock sets the time source for the created attribute.
func WithClock(now func() time.Time) Opt {
	return func(opts *signerOpts) {
		opts.now = now
	}
}

// WithProofIDGenerator assigns generated IDs to proofs whose draft has none.
func WithProofIDGenerator(newID func() string) Opt {
	return func(opts *signerOpts) {
		opts.newProofID = newID
	}
}

// URNUUID returns a random urn:uuid identifier.
func URNUUID() string {
	return uuid.New().URN()
}

// New returns new instance of document signer.
func New(suite SignatureSuite, opts ...Opt) (*DocumentSigner, error) {
	o := &signerOpts{strict: true, now: time.Now}

	for _, opt := range opts {
		opt(o)
	}

	if o.loader == nil {
		loader, err := documentloader.NewInMemory()
		if err != nil {
			return nil, fmt.Errorf("new signer: %w", err)
		}

		o.loader = loader
	}

	return &DocumentSigner{
		suite:      suite,
		loader:     o.loader,
		strict:     o.strict,
		now:        o.now,
		newProofID: o.newProofID,
	}, nil
}

// Sign adds a proof made with keyPair to document. The document is not modified; the signed document is
// returned in both compacted and expanded forms. Proofs already present are not signed over and are kept
// next to the new one as a proof set. Nothing is returned unless every step succeeds.
func (s *DocumentSigner) Sign(ctx context.Context, document map[string]interface{}, draft *proof.Draft,
	keyPair *api.VerificationMethod) (*material.Material, error) {
	span, _ := opentracing.StartSpanFromContext(ctx, "dataintegrity.Sign")
	defer span.Finish()

	signed, err := s.sign(document, draft, keyPair)
	if err != nil {
		span.SetTag("error", true)
		span.LogKV("event", "error", "message", err.Error())

		return nil, err
	}

	return signed, nil
}

func (s *DocumentSigner) sign(document map[string]interface{}, draft *proof.Draft,
	keyPair *api.VerificationMethod) (*material.Material, error) {
	d, err := s.prepareDraft(draft, keyPair)
	if err != nil {
		return nil, err
	}

	procOpts := []processor.Opts{processor.WithDocumentLoader(s.loader)}

	existing, doc, err := s.unsignedDocument(document, procOpts)
	if err != nil {
		return nil, err
	}

	p, err := d.Build(doc.Context(), s.suite, proof.WithDocumentLoader(s.loader),
		proof.WithStrictValidation(s.strict), proof.WithClock(s.now))
	if err != nil {
		return nil, err
	}

	cs := s.suite.CryptoSuite()

	message, err := cs.HashData(p.Material().Expanded(), doc.Expanded(), procOpts...)
	if err != nil {
		return nil, err
	}

	sig, err := cs.Sign(keyPair.PrivateKey, message)
	if err != nil {
		return nil, err
	}

	encoded, err := s.suite.EncodeProofValue(sig)
	if err != nil {
		return nil, err
	}

	p, err = p.WithValue(sig, encoded, procOpts...)
	if err != nil {
		return nil, api.NewError(api.ErrProofGeneration, proof.TermProofValue, err)
	}

	signed, err := doc.With(proof.TermProof, proof.AddProof(existing, p.Compacted()), procOpts...)
	if err != nil {
		return nil, api.NewError(api.ErrProofGeneration, proof.TermProof, err)
	}

	logger.Debugf("signed document with %s proof by %s", s.suite.ProofType(), d.Method.ID)

	return signed, nil
}

// prepareDraft copies draft, binds it to the key pair and assigns a proof ID when configured.
func (s *DocumentSigner) prepareDraft(draft *proof.Draft, keyPair *api.VerificationMethod) (*proof.Draft, error) {
	if keyPair == nil || keyPair.ID == "" {
		return nil, api.Missing("verificationMethod")
	}

	if len(keyPair.PrivateKey) == 0 {
		return nil, api.Missing("privateKey")
	}

	if err := s.suite.CheckKeyPair(keyPair); err != nil {
		return nil, api.NewError(api.ErrProofGeneration, api.AttributeOf(err), err)
	}

	if draft == nil {
		draft = proof.NewDraft(nil)
	}

	d := *draft

	if d.Method != nil && d.Method.ID != "" && d.Method.ID != keyPair.ID {
		return nil, api.Invalid("verificationMethod",
			fmt.Errorf("draft method %s does not match key pair %s", d.Method.ID, keyPair.ID))
	}

	d.Method = keyPair.VerificationKey()

	if d.ID == "" && s.newProofID != nil {
		d.ID = s.newProofID()
	}

	return &d, nil
}

// unsignedDocument returns the proofs already on document and the document without them, extended with the
// suite context.
func (s *DocumentSigner) unsignedDocument(document map[string]interface{},
	procOpts []processor.Opts) (interface{}, *material.Material, error) {
	if document == nil {
		return nil, nil, api.Missing("document")
	}

	doc, err := maphelpers.NormalizeMap(document)
	if err != nil {
		return nil, nil, api.Invalid("document", err)
	}

	existing := doc[proof.TermProof]

	delete(doc, proof.TermProof)

	m, err := material.New(doc, procOpts...)
	if err != nil {
		return nil, nil, api.Invalid("document", err)
	}

	m, err = m.WithContext([]string{s.suite.ContextURL()}, procOpts...)
	if err != nil {
		return nil, nil, api.Invalid("document", err)
	}

	if s.strict {
		err = validator.ValidateJSONLDMap(m.Compacted(), validator.WithDocumentLoader(s.loader),
			validator.WithJSONLDIncludeDetailedStructureDiffOnError())
		if err != nil {
			return nil, nil, api.Invalid("document", err)
		}
	}

	if existing != nil {
		if _, err = proof.GetProofs(map[string]interface{}{proof.TermProof: existing}); err != nil &&
			!errors.Is(err, proof.ErrProofNotFound) {
			return nil, nil, api.Invalid(proof.TermProof, err)
		}
	}

	return existing, m, nil
}
