/*
Copyright SecureKey Technologies Inc. All Rights Reserved.
SPDX-License-Identifier: Apache-2.0
*/

package verifier

import (
	"context"
	"errors"
	"fmt"
	"time"

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

var logger = log.New("dataintegrity-ed25519/verifier")

// SignatureSuite encapsulates signature suite methods required for signature verification.
type SignatureSuite interface {
	// Accept reports whether the suite handles the (compacted or expanded) proof type.
	Accept(proofType string) bool
	// ContextURL returns the context defining the suite terms.
	ContextURL() string
	// CryptoSuite returns the canonicalization, digest and signature configuration.
	CryptoSuite() *cryptosuite.CryptoSuite
	// ReadProof reads a signed proof from its material.
	ReadProof(m *material.Material) (*proof.Proof, error)
}

// Verified is the outcome of a successful proof verification.
type Verified struct {
	// Proof is the verified proof, signature included.
	Proof *proof.Proof
	// Method is the resolved verification method.
	Method *api.VerificationMethod
}

// DocumentVerifier implements JSON-LD document proof verification.
type DocumentVerifier struct {
	signatureSuites []SignatureSuite
	resolver        api.VerificationMethodProvider
	loader          ld.DocumentLoader
	strict          bool
	now             func() time.Time
}

type verifierOpts struct {
	loader ld.DocumentLoader
	strict bool
	now    func() time.Time
}

// Opt configures a DocumentVerifier.
type Opt func(opts *verifierOpts)

// WithDocumentLoader sets the loader used to resolve contexts. By default only the embedded contexts are served.
func WithDocumentLoader(loader ld.DocumentLoader) Opt {
	return func(opts *verifierOpts) {
		opts.loader = loader
	}
}

// WithStrictValidation enables or disables the undefined term check on documents. Enabled by default.
func WithStrictValidation(strict bool) Opt {
	return func(opts *verifierOpts) {
		opts.strict = strict
	}
}

// WithClock sets the time source for the created and expires checks.
func WithClock(now func() time.Time) Opt {
	return func(opts *verifierOpts) {
		opts.now = now
	}
}

// New returns new instance of document verifier.
func New(resolver api.VerificationMethodProvider, suites []SignatureSuite, opts ...Opt) (*DocumentVerifier, error) {
	if len(suites) == 0 {
		return nil, errors.New("at least one suite must be provided")
	}

	if resolver == nil {
		return nil, errors.New("verification method provider must be provided")
	}

	o := &verifierOpts{strict: true, now: time.Now}

	for _, opt := range opts {
		opt(o)
	}

	if o.loader == nil {
		loader, err := documentloader.NewInMemory()
		if err != nil {
			return nil, fmt.Errorf("new verifier: %w", err)
		}

		o.loader = loader
	}

	return &DocumentVerifier{
		signatureSuites: append([]SignatureSuite{}, suites...),
		resolver:        resolver,
		loader:          o.loader,
		strict:          o.strict,
		now:             o.now,
	}, nil
}

// Verify verifies every proof of document and checks them against the expected parameters.
// The first failure aborts verification.
func (dv *DocumentVerifier) Verify(ctx context.Context, document map[string]interface{},
	params ...ParamOpt) ([]*Verified, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "dataintegrity.Verify")
	defer span.Finish()

	verified, err := dv.verify(ctx, document, newParams(params))
	if err != nil {
		span.SetTag("error", true)
		span.LogKV("event", "error", "message", err.Error())

		return nil, err
	}

	span.SetTag("proofs", len(verified))

	return verified, nil
}

func (dv *DocumentVerifier) verify(ctx context.Context, document map[string]interface{},
	expected *Params) ([]*Verified, error) {
	if document == nil {
		return nil, api.Missing("document")
	}

	document, err := maphelpers.NormalizeMap(document)
	if err != nil {
		return nil, api.Invalid("document", err)
	}

	proofs, err := proof.GetProofs(document)
	if errors.Is(err, proof.ErrProofNotFound) {
		return nil, api.Missing(proof.TermProof)
	}

	if err != nil {
		return nil, api.Invalid(proof.TermProof, err)
	}

	procOpts := []processor.Opts{processor.WithDocumentLoader(dv.loader)}

	doc, err := dv.protectedDocument(document, procOpts)
	if err != nil {
		return nil, err
	}

	result := make([]*Verified, 0, len(proofs))

	for _, compacted := range proofs {
		v, err := dv.verifyProof(ctx, compacted, doc, expected, procOpts)
		if err != nil {
			return nil, err
		}

		result = append(result, v)
	}

	return result, nil
}

// protectedDocument returns the forms of document without its proofs.
func (dv *DocumentVerifier) protectedDocument(document map[string]interface{},
	procOpts []processor.Opts) (*material.Material, error) {
	doc := maphelpers.CopyMap(document)
	delete(doc, proof.TermProof)

	if dv.strict {
		err := validator.ValidateJSONLDMap(doc, validator.WithDocumentLoader(dv.loader),
			validator.WithJSONLDIncludeDetailedStructureDiffOnError())
		if err != nil {
			return nil, api.Invalid("document", err)
		}
	}

	m, err := material.New(doc, procOpts...)
	if err != nil {
		return nil, api.Invalid("document", err)
	}

	return m, nil
}

func (dv *DocumentVerifier) verifyProof(ctx context.Context, compacted map[string]interface{},
	doc *material.Material, expected *Params, procOpts []processor.Opts) (*Verified, error) {
	suite, m, err := dv.proofMaterial(compacted, doc.Context(), procOpts)
	if err != nil {
		return nil, err
	}

	p, err := suite.ReadProof(m)
	if err != nil {
		return nil, err
	}

	unsigned, err := p.Unsigned(procOpts...)
	if err != nil {
		return nil, api.Invalid(proof.TermProof, err)
	}

	cs := suite.CryptoSuite()

	message, err := cs.HashData(unsigned.Material().Expanded(), doc.Expanded(), procOpts...)
	if err != nil {
		return nil, err
	}

	vm, err := dv.resolve(ctx, p.Method.ID)
	if err != nil {
		return nil, err
	}

	if err = cs.Verify(vm.PublicKey, p.Value, message); err != nil {
		return nil, err
	}

	if err = dv.checkTime(p); err != nil {
		return nil, err
	}

	if err = expected.check(p); err != nil {
		return nil, err
	}

	logger.Debugf("verified %s proof by %s", p.Type, vm.ID)

	return &Verified{Proof: p, Method: vm}, nil
}

// proofMaterial expands the proof against the document contexts and selects the suite claiming its type.
func (dv *DocumentVerifier) proofMaterial(compacted map[string]interface{}, documentContext []interface{},
	procOpts []processor.Opts) (SignatureSuite, *material.Material, error) {
	var types []string

	for _, suite := range dv.signatureSuites {
		c := maphelpers.CopyMap(compacted)
		c["@context"] = proof.ReconcileContext(documentContext, suite.ContextURL())

		m, err := material.New(c, procOpts...)
		if err != nil {
			return nil, nil, api.Invalid(proof.TermProof, err)
		}

		node, err := m.Node()
		if err != nil {
			return nil, nil, api.Invalid(proof.TermProof, err)
		}

		if node == nil {
			return nil, nil, api.Missing(proof.TermProof)
		}

		types = proof.NodeTypes(node)

		for _, t := range types {
			if suite.Accept(t) {
				return suite, m, nil
			}
		}
	}

	return nil, nil, api.Invalid("type", fmt.Errorf("%w: %v", api.ErrUnsupportedSuite, types))
}

func (dv *DocumentVerifier) resolve(ctx context.Context, id string) (*api.VerificationMethod, error) {
	vm, err := dv.resolver.VerificationMethod(ctx, id)
	if err != nil {
		var docErr *api.DocumentError
		if errors.As(err, &docErr) {
			return nil, err
		}

		return nil, api.Invalid("verificationMethod", fmt.Errorf("resolve %s: %w", id, err))
	}

	if vm == nil || len(vm.PublicKey) == 0 {
		return nil, api.Invalid("verificationMethod", fmt.Errorf("no public key for %s", id))
	}

	return vm, nil
}

func (dv *DocumentVerifier) checkTime(p *proof.Proof) error {
	now := dv.now()

	if p.Created.After(now) {
		return api.Invalid("created", fmt.Errorf("created %s is in the future", proof.FormatDateTime(p.Created)))
	}

	if p.Expires != nil && p.Expires.Before(now) {
		return api.NewError(api.ErrExpired, "expires",
			fmt.Errorf("proof expired at %s", proof.FormatDateTime(*p.Expires)))
	}

	return nil
}
