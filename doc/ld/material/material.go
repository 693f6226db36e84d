/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package material holds a JSON-LD document as a context, a compacted form and an expanded form kept in sync.
package material

import (
	"fmt"

	"github.com/trustbloc/dataintegrity-ed25519-go/doc/ld/processor"
	"github.com/trustbloc/dataintegrity-ed25519-go/doc/util/maphelpers"
)

const contextKey = "@context"

// Material is an immutable view of a document. The expanded form is always derived from the compacted
// form and the context, so every transformation returns a new Material.
type Material struct {
	context   []interface{}
	compacted map[string]interface{}
	expanded  []interface{}
}

// New expands the compacted document against its own @context. Go typed values are converted to their JSON
// equivalents first.
func New(compacted map[string]interface{}, opts ...processor.Opts) (*Material, error) {
	if compacted == nil {
		return nil, fmt.Errorf("nil document")
	}

	doc, err := maphelpers.NormalizeMap(compacted)
	if err != nil {
		return nil, err
	}

	context := processor.ContextList(doc[contextKey])

	if len(context) > 0 {
		doc[contextKey] = context
	}

	expanded, err := processor.Default().Expand(doc, opts...)
	if err != nil {
		return nil, err
	}

	return &Material{context: context, compacted: doc, expanded: expanded}, nil
}

// Context returns the context declarations.
func (m *Material) Context() []interface{} {
	return maphelpers.CopySlice(m.context)
}

// HasContext reports whether the context declarations include the given URL.
func (m *Material) HasContext(url string) bool {
	for _, c := range m.context {
		if s, ok := c.(string); ok && s == url {
			return true
		}
	}

	return false
}

// Compacted returns a copy of the compacted form, including @context.
func (m *Material) Compacted() map[string]interface{} {
	return maphelpers.CopyMap(m.compacted)
}

// Expanded returns a copy of the expanded form.
func (m *Material) Expanded() []interface{} {
	return maphelpers.CopySlice(m.expanded)
}

// Node returns the single top level node of the expanded form, or nil when the document is empty.
func (m *Material) Node() (map[string]interface{}, error) {
	switch len(m.expanded) {
	case 0:
		return nil, nil
	case 1:
		node, ok := m.expanded[0].(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("expanded document is not a node object")
		}

		return maphelpers.CopyMap(node), nil
	default:
		return nil, fmt.Errorf("expanded document has %d top level nodes", len(m.expanded))
	}
}

// Get returns a copy of the compacted value of term.
func (m *Material) Get(term string) (interface{}, bool) {
	v, ok := m.compacted[term]

	return maphelpers.CopyValue(v), ok
}

// WithContext returns a Material whose context declarations end with the given URLs. URLs already present are
// not repeated.
func (m *Material) WithContext(urls []string, opts ...processor.Opts) (*Material, error) {
	doc := m.Compacted()
	context := m.Context()

	for _, u := range urls {
		if !m.HasContext(u) {
			context = append(context, u)
		}
	}

	doc[contextKey] = context

	return New(doc, opts...)
}

// With returns a Material with term set to value.
func (m *Material) With(term string, value interface{}, opts ...processor.Opts) (*Material, error) {
	doc := m.Compacted()
	doc[term] = maphelpers.CopyValue(value)

	return New(doc, opts...)
}

// Without returns a Material with the given terms removed.
func (m *Material) Without(terms []string, opts ...processor.Opts) (*Material, error) {
	doc := m.Compacted()

	for _, term := range terms {
		delete(doc, term)
	}

	return New(doc, opts...)
}
