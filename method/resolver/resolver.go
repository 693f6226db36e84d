/*
Copyright SecureKey Technologies Inc. All Rights Reserved.
SPDX-License-Identifier: Apache-2.0
*/

// Package resolver selects a verification method provider from an ordered list of rules.
package resolver

import (
	"context"
	"fmt"

	"github.com/hyperledger/aries-framework-go/component/log"

	"github.com/trustbloc/dataintegrity-ed25519-go/doc/signature/api"
)

var logger = log.New("dataintegrity-ed25519/resolver")

// Provider produces a verification method for an identifier.
type Provider = api.VerificationMethodProvider

// ProviderFunc adapts a function to a Provider.
type ProviderFunc func(ctx context.Context, id string) (*api.VerificationMethod, error)

// VerificationMethod calls f.
func (f ProviderFunc) VerificationMethod(ctx context.Context, id string) (*api.VerificationMethod, error) {
	return f(ctx, id)
}

// Predicate reports whether a rule applies to a method identifier.
type Predicate func(id string) bool

// Rule pairs a predicate with the provider serving the identifiers it matches.
type Rule struct {
	Predicate Predicate
	Provider  Provider
}

// Resolver evaluates its rules in order. The provider of the first matching rule serves the identifier.
type Resolver struct {
	rules []Rule
}

// New returns a resolver over rules. Rules with a nil predicate or provider are rejected.
func New(rules ...Rule) (*Resolver, error) {
	for i, r := range rules {
		if r.Predicate == nil || r.Provider == nil {
			return nil, fmt.Errorf("rule %d: predicate and provider are required", i)
		}
	}

	return &Resolver{rules: append([]Rule(nil), rules...)}, nil
}

// VerificationMethod resolves id through the first matching rule.
func (r *Resolver) VerificationMethod(ctx context.Context, id string) (*api.VerificationMethod, error) {
	for i, rule := range r.rules {
		if !rule.Predicate(id) {
			continue
		}

		logger.Debugf("rule %d selected for %s", i, id)

		return rule.Provider.VerificationMethod(ctx, id)
	}

	return nil, api.NewError(api.ErrNotFound, "verificationMethod", fmt.Errorf("no rule matches %s", id))
}

var _ Provider = (*Resolver)(nil)
