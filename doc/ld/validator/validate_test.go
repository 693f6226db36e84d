/*
Copyright SecureKey Technologies Inc. All Rights Reserved.
SPDX-License-Identifier: Apache-2.0
*/

package validator

import (
	"testing"

	"github.com/stretchr/testify/require"

	ldcontext "github.com/trustbloc/dataintegrity-ed25519-go/doc/ld/context"
	"github.com/trustbloc/dataintegrity-ed25519-go/doc/ld/documentloader"
)

const exampleContextURL = "https://example.org/contexts/person/v1"

func createTestDocumentLoader(t *testing.T, extraContexts ...ldcontext.Document) *documentloader.DocumentLoader {
	t.Helper()

	loader, err := documentloader.NewInMemory(documentloader.WithExtraContexts(extraContexts...))
	require.NoError(t, err)

	return loader
}

func Test_ValidateJSONLD(t *testing.T) {
	loader := createTestDocumentLoader(t, ldcontext.Document{
		URL:     exampleContextURL,
		Content: []byte(`{"@context": {"name": "https://schema.org/name", "knows": {"@id": "https://schema.org/knows", "@type": "@id"}}}`),
	})

	t.Run("proof with suite terms only", func(t *testing.T) {
		err := ValidateJSONLD(`{
			"@context": "https://w3id.org/security/suites/ed25519-2020/v1",
			"type": "Ed25519Signature2020",
			"created": "2020-01-01T00:00:00Z",
			"proofPurpose": "assertionMethod",
			"verificationMethod": "did:example:123#key-1",
			"domain": "example.org",
			"challenge": "abc",
			"nonce": "xyz",
			"https://w3id.org/security#previousProof": {"@id": "urn:uuid:1"}
		}`, WithDocumentLoader(loader))
		require.NoError(t, err)
	})

	t.Run("embedded verification method", func(t *testing.T) {
		err := ValidateJSONLD(`{
			"@context": "https://w3id.org/security/suites/ed25519-2020/v1",
			"type": "Ed25519Signature2020",
			"created": "2020-01-01T00:00:00Z",
			"proofPurpose": "assertionMethod",
			"verificationMethod": {
				"id": "did:example:123#key-1",
				"type": "Ed25519VerificationKey2020",
				"controller": "did:example:123",
				"publicKeyMultibase": "z6MkhaXgBZDvotDkL5257faiztiGiC2QtKLGpbnnEGta2doK"
			}
		}`, WithDocumentLoader(loader))
		require.NoError(t, err)
	})

	t.Run("document with extra context", func(t *testing.T) {
		err := ValidateJSONLD(`{
			"@context": ["https://example.org/contexts/person/v1", "https://w3id.org/security/suites/ed25519-2020/v1"],
			"id": "urn:example:alice",
			"name": "Alice",
			"knows": "urn:example:bob"
		}`, WithDocumentLoader(loader))
		require.NoError(t, err)
	})

	t.Run("undefined term is rejected", func(t *testing.T) {
		doc := `{
			"@context": "https://w3id.org/security/suites/ed25519-2020/v1",
			"type": "Ed25519Signature2020",
			"created": "2020-01-01T00:00:00Z",
			"favoriteColor": "blue"
		}`

		err := ValidateJSONLD(doc, WithDocumentLoader(loader))
		require.ErrorIs(t, err, ErrUndefinedTerms)

		err = ValidateJSONLD(doc, WithDocumentLoader(loader), WithJSONLDIncludeDetailedStructureDiffOnError())
		require.ErrorIs(t, err, ErrUndefinedTerms)
		require.ErrorContains(t, err, "favoriteColor")

		require.NoError(t, ValidateJSONLD(doc, WithDocumentLoader(loader), WithStrictValidation(false)))
	})

	t.Run("undefined nested term is rejected", func(t *testing.T) {
		err := ValidateJSONLD(`{
			"@context": ["https://example.org/contexts/person/v1", "https://w3id.org/security/suites/ed25519-2020/v1"],
			"id": "urn:example:alice",
			"name": "Alice",
			"knows": {"id": "urn:example:bob", "nickname": "B"}
		}`, WithDocumentLoader(loader))
		require.ErrorIs(t, err, ErrUndefinedTerms)
	})

	t.Run("external context", func(t *testing.T) {
		err := ValidateJSONLD(`{"name": "Alice"}`, WithDocumentLoader(loader),
			WithExternalContext([]string{exampleContextURL}))
		require.NoError(t, err)
	})
}

func Test_ValidateJSONLD_CornerErrorCases(t *testing.T) {
	t.Run("Invalid JSON input", func(t *testing.T) {
		err := ValidateJSONLD("not a json")
		require.ErrorContains(t, err, "convert JSON-LD doc to map")
	})

	t.Run("JSON-LD compact error", func(t *testing.T) {
		err := ValidateJSONLD(`{"@context": "https://example.org/unknown/v1", "name": "Alice"}`,
			WithDocumentLoader(createTestDocumentLoader(t)))
		require.ErrorContains(t, err, "compact JSON-LD document")
	})
}

func TestCompactValue(t *testing.T) {
	require.Equal(t, "urn:a", compactValue(map[string]interface{}{"@id": "urn:a"}))
	require.Equal(t, "urn:a", compactValue(map[string]interface{}{"id": "urn:a"}))
	require.Equal(t, "x", compactValue([]interface{}{"x"}))
}
