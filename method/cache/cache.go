/*
Copyright SecureKey Technologies Inc. All Rights Reserved.
SPDX-License-Identifier: Apache-2.0
*/

// Package cache caches resolved verification methods in front of any provider.
package cache

import (
	"context"
	"errors"
	"time"

	"github.com/bluele/gcache"
	"github.com/hyperledger/aries-framework-go/component/log"
	"golang.org/x/sync/singleflight"

	"github.com/trustbloc/dataintegrity-ed25519-go/doc/signature/api"
	"github.com/trustbloc/dataintegrity-ed25519-go/method/resolver"
)

var logger = log.New("dataintegrity-ed25519/cache")

const (
	defaultSize = 100
	defaultTTL  = 10 * time.Minute
)

// Provider serves verification methods from an LRU cache, fetching misses from the wrapped provider.
// Concurrent misses for one identifier share a single fetch. Failures are not cached.
type Provider struct {
	next  resolver.Provider
	cache gcache.Cache
	group singleflight.Group
}

type options struct {
	size int
	ttl  time.Duration
}

// Option configures the cache.
type Option func(opts *options)

// WithSize sets the maximum number of cached methods. Sizes below one keep the default.
func WithSize(size int) Option {
	return func(opts *options) {
		opts.size = size
	}
}

// WithTTL sets how long a method stays cached. Zero keeps methods until evicted.
func WithTTL(ttl time.Duration) Option {
	return func(opts *options) {
		opts.ttl = ttl
	}
}

// New wraps next in a cache.
func New(next resolver.Provider, opts ...Option) *Provider {
	o := &options{size: defaultSize, ttl: defaultTTL}

	for _, opt := range opts {
		opt(o)
	}

	if o.size < 1 {
		logger.Warnf("cache size %d is not positive, using %d", o.size, defaultSize)

		o.size = defaultSize
	}

	builder := gcache.New(o.size).LRU()
	if o.ttl > 0 {
		builder = builder.Expiration(o.ttl)
	}

	return &Provider{next: next, cache: builder.Build()}
}

// VerificationMethod returns the cached method of id, resolving it through the wrapped provider on a miss.
func (p *Provider) VerificationMethod(ctx context.Context, id string) (*api.VerificationMethod, error) {
	if v, err := p.cache.Get(id); err == nil {
		logger.Debugf("cache hit for %s", id)

		return v.(*api.VerificationMethod).VerificationKey(), nil //nolint:forcetypeassert
	} else if !errors.Is(err, gcache.KeyNotFoundError) {
		return nil, err
	}

	v, err, _ := p.group.Do(id, func() (interface{}, error) {
		vm, err := p.next.VerificationMethod(ctx, id)
		if err != nil {
			return nil, err
		}

		if err = p.cache.Set(id, vm.VerificationKey()); err != nil {
			logger.Warnf("failed to cache %s: %v", id, err)
		}

		return vm, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*api.VerificationMethod).VerificationKey(), nil //nolint:forcetypeassert
}

// Purge drops every cached method.
func (p *Provider) Purge() {
	p.cache.Purge()
}

var _ resolver.Provider = (*Provider)(nil)
