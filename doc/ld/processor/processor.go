/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package processor

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hyperledger/aries-framework-go/component/log"
	"github.com/piprate/json-gold/ld"
)

const (
	format             = "application/n-quads"
	defaultAlgorithm   = "URDNA2015"
	handleNormalizeErr = "error while parsing N-Quads; invalid quad. line:"
)

var logger = log.New("dataintegrity-ed25519/json-ld-processor")

// ErrInvalidRDFFound is returned when normalized view contains invalid RDF.
var ErrInvalidRDFFound = errors.New("invalid JSON-LD context")

// ErrUnprocessable is returned when json-gold fails on a value outside the JSON data model.
var ErrUnprocessable = errors.New("unprocessable JSON-LD value")

// processorOpts holds options for canonicalization of JSON LD docs.
type processorOpts struct {
	removeInvalidRDF bool
	validateRDF      bool
	documentLoader   ld.DocumentLoader
	externalContexts []string
}

// Opts are the options for JSON LD operations on docs (like canonicalization or compacting).
type Opts func(opts *processorOpts)

// WithRemoveAllInvalidRDF option for removing all invalid RDF dataset from normalize document.
func WithRemoveAllInvalidRDF() Opts {
	return func(opts *processorOpts) {
		opts.removeInvalidRDF = true
	}
}

// WithDocumentLoader option is for passing custom JSON-LD document loader.
func WithDocumentLoader(loader ld.DocumentLoader) Opts {
	return func(opts *processorOpts) {
		opts.documentLoader = loader
	}
}

// WithExternalContext option is for definition of external context when doing JSON-LD operations.
func WithExternalContext(context ...string) Opts {
	return func(opts *processorOpts) {
		opts.externalContexts = context
	}
}

// WithValidateRDF option validates result view and fails if any invalid RDF dataset found.
// This option will take precedence when used in conjunction with 'WithRemoveAllInvalidRDF' option.
func WithValidateRDF() Opts {
	return func(opts *processorOpts) {
		opts.validateRDF = true
	}
}

// Processor is JSON-LD processor.
// processing mode JSON-LD 1.1 {RFC: https://www.w3.org/TR/json-ld11}
type Processor struct {
	algorithm string
}

// NewProcessor returns new JSON-LD processor.
func NewProcessor(algorithm string) *Processor {
	if algorithm == "" {
		return Default()
	}

	return &Processor{algorithm}
}

// Default returns new JSON-LD processor with default RDF dataset algorithm.
func Default() *Processor {
	return &Processor{defaultAlgorithm}
}

// Algorithm returns the RDF dataset canonicalization algorithm name.
func (p *Processor) Algorithm() string {
	return p.algorithm
}

// GetCanonicalDocument returns canonized document of given json ld. The input may be compacted (a map carrying
// its @context) or already expanded.
func (p *Processor) GetCanonicalDocument(doc interface{}, opts ...Opts) (_ []byte, err error) {
	defer recoverProcessing(&err)

	procOptions := prepareOpts(opts)

	ldOptions := p.ldOptions(procOptions)
	ldOptions.Algorithm = p.algorithm

	if m, ok := doc.(map[string]interface{}); ok && len(procOptions.externalContexts) > 0 {
		doc = withContext(m, AppendExternalContexts(m["@context"], procOptions.externalContexts...))
	}

	view, err := ld.NewJsonLdProcessor().Normalize(doc, ldOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to normalize JSON-LD document: %w", err)
	}

	result, ok := view.(string)
	if !ok {
		return nil, fmt.Errorf("failed to normalize JSON-LD document, invalid view")
	}

	result, err = p.removeMatchingInvalidRDFs(result, procOptions)
	if err != nil {
		return nil, err
	}

	return []byte(result), nil
}

// Expand expands given json ld object.
func (p *Processor) Expand(doc map[string]interface{}, opts ...Opts) (_ []interface{}, err error) {
	defer recoverProcessing(&err)

	procOptions := prepareOpts(opts)

	if len(procOptions.externalContexts) > 0 {
		doc = withContext(doc, AppendExternalContexts(doc["@context"], procOptions.externalContexts...))
	}

	expanded, err := ld.NewJsonLdProcessor().Expand(doc, p.ldOptions(procOptions))
	if err != nil {
		return nil, fmt.Errorf("failed to expand JSON-LD document: %w", err)
	}

	return expanded, nil
}

// Compact compacts given json ld object. A nil context compacts the input against its own @context.
func (p *Processor) Compact(input, context map[string]interface{},
	opts ...Opts) (_ map[string]interface{}, err error) {
	defer recoverProcessing(&err)

	procOptions := prepareOpts(opts)

	if context == nil {
		inputContext := input["@context"]

		if len(procOptions.externalContexts) > 0 {
			inputContext = AppendExternalContexts(inputContext, procOptions.externalContexts...)
			input = withContext(input, inputContext)
		}

		context = map[string]interface{}{"@context": inputContext}
	}

	return ld.NewJsonLdProcessor().Compact(input, context, p.ldOptions(procOptions))
}

// recoverProcessing turns a json-gold panic into ErrUnprocessable.
func recoverProcessing(err *error) {
	if r := recover(); r != nil {
		logger.Debugf("recovered JSON-LD processor panic: %v", r)

		*err = fmt.Errorf("%w: %v", ErrUnprocessable, r)
	}
}

func (p *Processor) ldOptions(procOptions *processorOpts) *ld.JsonLdOptions {
	ldOptions := ld.NewJsonLdOptions("")
	ldOptions.ProcessingMode = ld.JsonLd_1_1
	ldOptions.Format = format
	ldOptions.ProduceGeneralizedRdf = true

	if procOptions.documentLoader != nil {
		ldOptions.DocumentLoader = procOptions.documentLoader
	}

	return ldOptions
}

// AppendExternalContexts appends external context(s) to the JSON-LD context which can have one
// or several contexts already.
func AppendExternalContexts(context interface{}, extraContexts ...string) []interface{} {
	contexts := ContextList(context)

	for i := range extraContexts {
		contexts = append(contexts, extraContexts[i])
	}

	return contexts
}

// ContextList normalizes a @context value into a list of context declarations.
func ContextList(context interface{}) []interface{} {
	var contexts []interface{}

	switch c := context.(type) {
	case nil:
	case []interface{}:
		contexts = append(contexts, c...)
	case []string:
		for _, s := range c {
			contexts = append(contexts, s)
		}
	default:
		contexts = append(contexts, c)
	}

	return contexts
}

// withContext returns a shallow copy of doc with @context replaced, leaving the caller's map untouched.
func withContext(doc map[string]interface{}, context interface{}) map[string]interface{} {
	cp := make(map[string]interface{}, len(doc)+1)

	for k, v := range doc {
		cp[k] = v
	}

	cp["@context"] = context

	return cp
}

func prepareOpts(opts []Opts) *processorOpts {
	procOpts := &processorOpts{}

	for _, opt := range opts {
		opt(procOpts)
	}

	return procOpts
}

// removeMatchingInvalidRDFs validates normalized view to find any invalid RDF and
// returns filtered view after removing all invalid data.
// [Note : handling invalid RDF data, by following pattern https://github.com/digitalbazaar/jsonld.js/issues/199]
func (p *Processor) removeMatchingInvalidRDFs(view string, opts *processorOpts) (string, error) {
	if !opts.removeInvalidRDF && !opts.validateRDF {
		return view, nil
	}

	views := strings.Split(view, "\n")

	var filteredViews []string

	var foundInvalid bool

	for _, v := range views {
		_, err := ld.ParseNQuads(v)
		if err != nil {
			if !strings.Contains(err.Error(), handleNormalizeErr) {
				return "", err
			}

			foundInvalid = true

			continue
		}

		filteredViews = append(filteredViews, v)
	}

	if !foundInvalid {
		// clean RDF view, no need to regenerate
		return view, nil
	} else if opts.validateRDF {
		return "", ErrInvalidRDFFound
	}

	filteredView := strings.Join(filteredViews, "\n")

	logger.Debugf("Found invalid RDF dataset, Canonicalizing JSON-LD again after removing invalid data ")

	// all invalid RDF dataset from view are removed, re-generate
	return p.normalizeFilteredDataset(filteredView)
}

// normalizeFilteredDataset recreates json-ld from RDF view and
// returns normalized RDF dataset from recreated json-ld.
func (p *Processor) normalizeFilteredDataset(view string) (string, error) {
	ldOptions := ld.NewJsonLdOptions("")
	ldOptions.ProcessingMode = ld.JsonLd_1_1
	ldOptions.Algorithm = p.algorithm
	ldOptions.Format = format

	proc := ld.NewJsonLdProcessor()

	filteredJSONLd, err := proc.FromRDF(view, ldOptions)
	if err != nil {
		return "", err
	}

	result, err := proc.Normalize(filteredJSONLd, ldOptions)
	if err != nil {
		return "", err
	}

	return result.(string), nil
}
