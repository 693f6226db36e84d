/*
Copyright SecureKey Technologies Inc. All Rights Reserved.
SPDX-License-Identifier: Apache-2.0
*/

package resolver_test

import (
	"bytes"
	"context"
	"crypto/ed25519"
	"errors"
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/trustbloc/dataintegrity-ed25519-go/doc/codec"
	"github.com/trustbloc/dataintegrity-ed25519-go/doc/fingerprint"
	"github.com/trustbloc/dataintegrity-ed25519-go/doc/signature/api"
	"github.com/trustbloc/dataintegrity-ed25519-go/doc/signature/suite/ed25519signature2020"
	"github.com/trustbloc/dataintegrity-ed25519-go/method/resolver"
)

type recorder struct {
	name  string
	calls []string
}

func (r *recorder) VerificationMethod(_ context.Context, id string) (*api.VerificationMethod, error) {
	r.calls = append(r.calls, id)

	return &api.VerificationMethod{ID: id, Type: r.name}, nil
}

func TestResolver_Selection(t *testing.T) {
	pub := ed25519.NewKeyFromSeed(bytes.Repeat([]byte{1}, ed25519.SeedSize)).Public().(ed25519.PublicKey)
	_, didKeyID := fingerprint.CreateDIDKey(pub)

	remote := &recorder{name: "remote"}
	algorithmic := &recorder{name: "algorithmic"}

	r, err := resolver.New(
		resolver.Rule{Predicate: resolver.SchemeIs("https"), Provider: remote},
		resolver.Rule{Predicate: resolver.SelfCertifying, Provider: algorithmic},
	)
	require.NoError(t, err)

	t.Run("self-certifying identifier", func(t *testing.T) {
		vm, err := r.VerificationMethod(context.Background(), didKeyID)
		require.NoError(t, err)
		require.Equal(t, "algorithmic", vm.Type)
		require.Empty(t, remote.calls)
		require.Equal(t, []string{didKeyID}, algorithmic.calls)
	})

	t.Run("https identifier", func(t *testing.T) {
		vm, err := r.VerificationMethod(context.Background(), "HTTPS://example.com/keys/1")
		require.NoError(t, err)
		require.Equal(t, "remote", vm.Type)
	})

	t.Run("no rule matches", func(t *testing.T) {
		_, err := r.VerificationMethod(context.Background(), "did:web:example.com#key-1")
		require.ErrorIs(t, err, api.ErrNotFound)
		require.Equal(t, "verificationMethod", api.AttributeOf(err))

		_, err = r.VerificationMethod(context.Background(), "http://example.com/keys/1")
		require.ErrorIs(t, err, api.ErrNotFound)
	})

	t.Run("first match wins", func(t *testing.T) {
		first := &recorder{name: "first"}

		ordered, err := resolver.New(
			resolver.Rule{Predicate: resolver.HasPrefix("did:"), Provider: first},
			resolver.Rule{Predicate: resolver.DIDMethodIs("key"), Provider: algorithmic},
		)
		require.NoError(t, err)

		vm, err := ordered.VerificationMethod(context.Background(), didKeyID)
		require.NoError(t, err)
		require.Equal(t, "first", vm.Type)
	})

	t.Run("composition", func(t *testing.T) {
		outer, err := resolver.New(resolver.Rule{Predicate: resolver.HasPrefix(""), Provider: r})
		require.NoError(t, err)

		vm, err := outer.VerificationMethod(context.Background(), didKeyID)
		require.NoError(t, err)
		require.Equal(t, "algorithmic", vm.Type)
	})

	t.Run("provider errors pass through", func(t *testing.T) {
		failing, err := resolver.New(resolver.Rule{
			Predicate: resolver.HasPrefix("urn:"),
			Provider: resolver.ProviderFunc(func(context.Context, string) (*api.VerificationMethod, error) {
				return nil, errors.New("offline")
			}),
		})
		require.NoError(t, err)

		_, err = failing.VerificationMethod(context.Background(), "urn:key:1")
		require.EqualError(t, err, "offline")
	})
}

func TestNew(t *testing.T) {
	_, err := resolver.New(resolver.Rule{Provider: &recorder{}})
	require.EqualError(t, err, "rule 0: predicate and provider are required")

	_, err = resolver.New(resolver.Rule{Predicate: resolver.HasPrefix("did:")})
	require.Error(t, err)

	r, err := resolver.New()
	require.NoError(t, err)

	_, err = r.VerificationMethod(context.Background(), "did:key:z6Mk")
	require.ErrorIs(t, err, api.ErrNotFound)
}

func TestPredicates(t *testing.T) {
	tests := []struct {
		name      string
		predicate resolver.Predicate
		match     []string
		noMatch   []string
	}{
		{
			name:      "scheme",
			predicate: resolver.SchemeIs("https"),
			match:     []string{"https://example.com/key", "Https://example.com"},
			noMatch:   []string{"http://example.com", "did:web:example.com", "::"},
		},
		{
			name:      "did method",
			predicate: resolver.DIDMethodIs("web"),
			match:     []string{"did:web:example.com", "did:web:example.com#key-1"},
			noMatch:   []string{"did:web:", "did:webs:example.com", "did:key:z6Mk"},
		},
		{
			name:      "regexp",
			predicate: resolver.Matches(regexp.MustCompile(`^urn:uuid:`)),
			match:     []string{"urn:uuid:1234"},
			noMatch:   []string{"urn:example:1234"},
		},
		{
			name:      "any of",
			predicate: resolver.AnyOf(resolver.DIDMethodIs("web"), resolver.SchemeIs("https")),
			match:     []string{"did:web:example.com", "https://example.com"},
			noMatch:   []string{"did:key:z6Mk", "urn:uuid:1"},
		},
		{
			name:      "self-certifying",
			predicate: resolver.SelfCertifying,
			match: []string{
				"did:key:z6MkhaXgBZDvotDkL5257faiztiGiC2QtKLGpbnnEGta2doK",
				"did:key:z6MkhaXgBZDvotDkL5257faiztiGiC2QtKLGpbnnEGta2doK#z6MkhaXgBZDvotDkL5257faiztiGiC2QtKLGpbnnEGta2doK",
			},
			noMatch: []string{"did:key:", "did:key:abc", "did:web:example.com"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			for _, id := range tc.match {
				require.True(t, tc.predicate(id), id)
			}

			for _, id := range tc.noMatch {
				require.False(t, tc.predicate(id), id)
			}
		})
	}
}

func TestMethodFromDocument(t *testing.T) {
	suite := ed25519signature2020.New()
	pub := ed25519.NewKeyFromSeed(bytes.Repeat([]byte{2}, ed25519.SeedSize)).Public().(ed25519.PublicKey)

	encoded, err := codec.EncodeKey(pub, codec.Ed25519PublicKey)
	require.NoError(t, err)

	controllerDoc := map[string]interface{}{
		"id": "did:web:example.com",
		"verificationMethod": []interface{}{
			"did:web:example.com#ignored",
			map[string]interface{}{
				"id":                 "#key-1",
				"type":               ed25519signature2020.VerificationKeyType,
				"publicKeyMultibase": encoded,
			},
		},
		"assertionMethod": []interface{}{
			map[string]interface{}{
				"id":                 "did:web:example.com#key-2",
				"type":               ed25519signature2020.VerificationKeyType,
				"controller":         "did:web:other.example.com",
				"publicKeyMultibase": encoded,
			},
		},
	}

	t.Run("relative id in controller document", func(t *testing.T) {
		vm, err := resolver.MethodFromDocument(controllerDoc, "did:web:example.com#key-1", suite)
		require.NoError(t, err)
		require.Equal(t, "did:web:example.com#key-1", vm.ID)
		require.Equal(t, "did:web:example.com", vm.Controller)
		require.Equal(t, []byte(pub), vm.PublicKey)
	})

	t.Run("absolute id in relationship", func(t *testing.T) {
		vm, err := resolver.MethodFromDocument(controllerDoc, "did:web:example.com#key-2", suite)
		require.NoError(t, err)
		require.Equal(t, "did:web:other.example.com", vm.Controller)
	})

	t.Run("key document", func(t *testing.T) {
		keyDoc := map[string]interface{}{
			"id":                 "https://example.com/keys/1",
			"type":               ed25519signature2020.VerificationKeyType,
			"controller":         "https://example.com/issuer",
			"publicKeyMultibase": encoded,
		}

		vm, err := resolver.MethodFromDocument(keyDoc, "https://example.com/keys/1", suite)
		require.NoError(t, err)
		require.Equal(t, "https://example.com/issuer", vm.Controller)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := resolver.MethodFromDocument(controllerDoc, "did:web:example.com#key-3", suite)
		require.ErrorIs(t, err, api.ErrNotFound)
	})

	t.Run("unusable key", func(t *testing.T) {
		doc := map[string]interface{}{
			"id": "did:web:example.com",
			"verificationMethod": []interface{}{map[string]interface{}{
				"id":   "#key-1",
				"type": "RsaVerificationKey2018",
			}},
		}

		_, err := resolver.MethodFromDocument(doc, "did:web:example.com#key-1", suite)
		require.ErrorIs(t, err, api.ErrInvalid)
		require.ErrorIs(t, err, api.ErrUnsupportedSuite)
	})
}
