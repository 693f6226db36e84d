/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package httpbinding resolves verification methods through DID resolvers exposing the HTTP(S) binding.
package httpbinding

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hyperledger/aries-framework-go/component/log"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/trustbloc/dataintegrity-ed25519-go/method/lb"
	"github.com/trustbloc/dataintegrity-ed25519-go/method/resolver"
)

var logger = log.New("dataintegrity-ed25519/httpbinding")

type authTokenProvider interface {
	AuthToken() (string, error)
}

// Provider resolves DIDs via HTTP(s) resolver endpoints, chosen in round-robin order.
type Provider struct {
	endpointURLs      []string
	balancer          *lb.RoundRobin
	client            *http.Client
	accept            Accept
	reader            resolver.KeyReader
	resolveAuthToken  string
	authTokenProvider authTokenProvider
}

// Accept is method to accept did method.
type Accept func(method string) bool

// New creates a provider resolving through endpointURLs and reading keys with reader.
func New(reader resolver.KeyReader, endpointURLs []string, opts ...Option) (*Provider, error) {
	if len(endpointURLs) == 0 {
		return nil, fmt.Errorf("at least one resolver endpoint is required")
	}

	p := &Provider{
		client:   &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)},
		accept:   func(method string) bool { return true },
		balancer: lb.NewRoundRobin(),
		reader:   reader,
	}

	for _, opt := range opts {
		opt(p)
	}

	for _, endpointURL := range endpointURLs {
		// Validate host
		if _, err := url.ParseRequestURI(endpointURL); err != nil {
			return nil, fmt.Errorf("base URL invalid: %w", err)
		}
	}

	p.endpointURLs = append([]string(nil), endpointURLs...)

	return p, nil
}

// Predicate matches DIDs whose method is accepted by the provider.
func (p *Provider) Predicate() resolver.Predicate {
	return func(id string) bool {
		parts := strings.SplitN(id, ":", 3)

		return len(parts) == 3 && parts[0] == "did" && parts[2] != "" && p.accept(parts[1])
	}
}

// Option configures the http binding provider.
type Option func(opts *Provider)

// WithTimeout option is for definition of HTTP(s) timeout value of DID Resolver.
func WithTimeout(timeout time.Duration) Option {
	return func(opts *Provider) {
		opts.client.Timeout = timeout
	}
}

// WithHTTPClient option is for custom http client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(opts *Provider) {
		opts.client = httpClient
	}
}

// WithAccept option is for accept did method.
func WithAccept(accept Accept) Option {
	return func(opts *Provider) {
		opts.accept = accept
	}
}

// WithResolveAuthToken add auth token for resolve.
func WithResolveAuthToken(authToken string) Option {
	return func(opts *Provider) {
		opts.resolveAuthToken = "Bearer " + authToken
	}
}

// WithResolveAuthTokenProvider add auth token provider.
func WithResolveAuthTokenProvider(p authTokenProvider) Option {
	return func(opts *Provider) {
		opts.authTokenProvider = p
	}
}

func closeResponseBody(respBody io.Closer) {
	e := respBody.Close()
	if e != nil {
		logger.Warnf("Failed to close response body: %v", e)
	}
}
