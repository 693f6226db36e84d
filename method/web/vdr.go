/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package web resolves verification methods of did:web DIDs over HTTPS.
package web

import (
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/trustbloc/dataintegrity-ed25519-go/method/resolver"
)

const (
	namespace = "web"
)

// Provider fetches did:web documents and reads verification methods from them.
type Provider struct {
	client  *http.Client
	useHTTP bool
	reader  resolver.KeyReader
}

// Option configures the did:web provider.
type Option func(p *Provider)

// New returns a did:web provider reading keys with reader.
func New(reader resolver.KeyReader, opts ...Option) *Provider {
	p := &Provider{
		client: &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)},
		reader: reader,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// WithHTTPClient sets the client fetching DID documents.
func WithHTTPClient(client *http.Client) Option {
	return func(p *Provider) {
		p.client = client
	}
}

// WithTimeout sets the timeout of the client fetching DID documents.
func WithTimeout(timeout time.Duration) Option {
	return func(p *Provider) {
		p.client.Timeout = timeout
	}
}

// WithHTTP fetches DID documents over plain HTTP.
func WithHTTP() Option {
	return func(p *Provider) {
		p.useHTTP = true
	}
}

// Predicate matches did:web identifiers.
func Predicate() resolver.Predicate {
	return resolver.DIDMethodIs(namespace)
}

var _ resolver.Provider = (*Provider)(nil)
