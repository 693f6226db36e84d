/*
Copyright SecureKey Technologies Inc. All Rights Reserved.
SPDX-License-Identifier: Apache-2.0
*/

// Package remote dereferences verification methods through a JSON-LD document loader.
package remote

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/piprate/json-gold/ld"

	"github.com/trustbloc/dataintegrity-ed25519-go/doc/signature/api"
	"github.com/trustbloc/dataintegrity-ed25519-go/method/resolver"
)

// Provider fetches the document addressed by a method identifier and reads the method from it.
type Provider struct {
	loader ld.DocumentLoader
	reader resolver.KeyReader
}

// New returns a provider loading documents with loader and reading keys with reader.
func New(loader ld.DocumentLoader, reader resolver.KeyReader) *Provider {
	return &Provider{loader: loader, reader: reader}
}

// VerificationMethod loads the document of id, without its fragment, and reads the method from it.
func (p *Provider) VerificationMethod(_ context.Context, id string) (*api.VerificationMethod, error) {
	address := id
	if i := strings.IndexByte(id, '#'); i >= 0 {
		address = id[:i]
	}

	rd, err := p.loader.LoadDocument(address)
	if err != nil {
		return nil, api.NewError(api.ErrNotFound, "verificationMethod", fmt.Errorf("load %s: %w", address, err))
	}

	doc, ok := rd.Document.(map[string]interface{})
	if !ok {
		return nil, api.Invalid("verificationMethod", fmt.Errorf("document at %s is not an object", address))
	}

	vm, err := resolver.MethodFromDocument(doc, id, p.reader)
	if errors.Is(err, api.ErrMissing) {
		return nil, api.Invalid("verificationMethod", err)
	}

	return vm, err
}

var _ resolver.Provider = (*Provider)(nil)
