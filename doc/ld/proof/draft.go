/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package proof

import (
	"fmt"
	"time"

	"github.com/piprate/json-gold/ld"

	"github.com/trustbloc/dataintegrity-ed25519-go/doc/ld/material"
	"github.com/trustbloc/dataintegrity-ed25519-go/doc/ld/processor"
	"github.com/trustbloc/dataintegrity-ed25519-go/doc/ld/validator"
	"github.com/trustbloc/dataintegrity-ed25519-go/doc/signature/api"
)

// Writer serializes the suite specific parts of a proof.
type Writer interface {
	// ProofType returns the compacted proof type, e.g. Ed25519Signature2020.
	ProofType() string
	// ContextURL returns the context defining the proof terms.
	ContextURL() string
	// WriteMethod returns the compacted verificationMethod value: an IRI or an embedded key document.
	WriteMethod(vm *api.VerificationMethod, embedded bool) (interface{}, error)
}

// Draft accumulates proof attributes before signing. It belongs to the caller until Build, which works on a copy.
type Draft struct {
	ID      string
	Purpose string
	Method  *api.VerificationMethod
	// Embedded writes the method as a key document instead of a reference.
	Embedded      bool
	Created       time.Time
	Expires       *time.Time
	Domain        string
	Challenge     string
	Nonce         string
	PreviousProof string
}

// NewDraft returns a draft for an assertion proof made with the given method.
func NewDraft(method *api.VerificationMethod) *Draft {
	return &Draft{Purpose: AssertionMethod, Method: method}
}

// Validate checks the draft attributes.
func (d *Draft) Validate() error {
	if d.Purpose == "" {
		return api.Missing(jsonldProofPurpose)
	}

	if d.Method == nil || d.Method.ID == "" {
		return api.Missing(jsonldVerificationMethod)
	}

	if !d.Created.IsZero() && d.Expires != nil && d.Created.After(*d.Expires) {
		return api.Invalid(jsonldExpires,
			fmt.Errorf("created %s is after expires %s", FormatDateTime(d.Created), FormatDateTime(*d.Expires)))
	}

	return nil
}

type buildOpts struct {
	loader ld.DocumentLoader
	strict bool
	now    func() time.Time
}

// BuildOpt configures Draft.Build.
type BuildOpt func(opts *buildOpts)

// WithDocumentLoader sets the loader used to resolve contexts.
func WithDocumentLoader(loader ld.DocumentLoader) BuildOpt {
	return func(opts *buildOpts) {
		opts.loader = loader
	}
}

// WithStrictValidation enables or disables the undefined term check. Enabled by default.
func WithStrictValidation(strict bool) BuildOpt {
	return func(opts *buildOpts) {
		opts.strict = strict
	}
}

// WithClock sets the time source used for a missing created attribute.
func WithClock(now func() time.Time) BuildOpt {
	return func(opts *buildOpts) {
		opts.now = now
	}
}

// Build materializes the unsigned proof. The suite context is appended to the document contexts when missing, and
// the resulting proof is expanded against them.
func (d *Draft) Build(documentContext []interface{}, w Writer, opts ...BuildOpt) (*Proof, error) {
	o := &buildOpts{strict: true, now: time.Now}

	for _, opt := range opts {
		opt(o)
	}

	if err := d.Validate(); err != nil {
		return nil, err
	}

	p := d.proof(w.ProofType(), o.now)

	method, err := w.WriteMethod(p.Method, d.Embedded)
	if err != nil {
		return nil, err
	}

	compacted := p.compact(method)
	compacted["@context"] = ReconcileContext(documentContext, w.ContextURL())

	var procOpts []processor.Opts

	if o.loader != nil {
		procOpts = append(procOpts, processor.WithDocumentLoader(o.loader))
	}

	if o.strict {
		err = validator.ValidateJSONLDMap(compacted, validator.WithDocumentLoader(o.loader),
			validator.WithJSONLDIncludeDetailedStructureDiffOnError())
		if err != nil {
			return nil, api.Invalid(jsonldProof, err)
		}
	}

	m, err := material.New(compacted, procOpts...)
	if err != nil {
		return nil, api.Invalid(jsonldProof, err)
	}

	return p.WithMaterial(m), nil
}

func (d *Draft) proof(proofType string, now func() time.Time) *Proof {
	created := d.Created
	if created.IsZero() {
		created = now()
	}

	p := &Proof{
		ID:            d.ID,
		Type:          proofType,
		Purpose:       CompactPurpose(d.Purpose),
		Created:       created.UTC().Truncate(time.Second),
		Domain:        d.Domain,
		Challenge:     d.Challenge,
		Nonce:         d.Nonce,
		PreviousProof: d.PreviousProof,
	}

	if d.Method != nil {
		m := *d.Method
		p.Method = &m
	}

	if d.Expires != nil {
		expires := d.Expires.UTC().Truncate(time.Second)
		p.Expires = &expires
	}

	return p
}

func (p *Proof) compact(method interface{}) map[string]interface{} {
	c := map[string]interface{}{
		jsonldType:               p.Type,
		jsonldCreated:            FormatDateTime(p.Created),
		jsonldProofPurpose:       p.Purpose,
		jsonldVerificationMethod: method,
	}

	if p.ID != "" {
		c[jsonldID] = p.ID
	}

	if p.Expires != nil {
		c[jsonldExpires] = FormatDateTime(*p.Expires)
	}

	optional := map[string]string{
		jsonldDomain:    p.Domain,
		jsonldChallenge: p.Challenge,
		jsonldNonce:     p.Nonce,
	}

	for term, v := range optional {
		if v != "" {
			c[term] = v
		}
	}

	if p.PreviousProof != "" {
		c[PreviousProofIRI] = map[string]interface{}{"@id": p.PreviousProof}
	}

	return c
}

// ReconcileContext returns the document contexts followed by the suite context when the document lacks it.
func ReconcileContext(documentContext []interface{}, suiteContext string) []interface{} {
	context := append([]interface{}{}, documentContext...)

	for _, c := range context {
		if s, ok := c.(string); ok && s == suiteContext {
			return context
		}
	}

	return append(context, suiteContext)
}
