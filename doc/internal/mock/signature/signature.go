/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package signature

import (
	"context"

	"github.com/trustbloc/dataintegrity-ed25519-go/doc/ld/processor"
	"github.com/trustbloc/dataintegrity-ed25519-go/doc/signature/api"
)

// MockCanonicalizer mocks api.Canonicalizer.
type MockCanonicalizer struct {
	GetCanonicalDocumentVal []byte
	GetCanonicalDocumentErr error
}

// GetCanonicalDocument returns GetCanonicalDocumentVal, GetCanonicalDocumentErr.
func (m *MockCanonicalizer) GetCanonicalDocument(doc interface{}, opts ...processor.Opts) ([]byte, error) {
	return m.GetCanonicalDocumentVal, m.GetCanonicalDocumentErr
}

var _ api.Canonicalizer = &MockCanonicalizer{}

// MockDigester mocks api.Digester.
type MockDigester struct {
	DigestVal []byte
	DigestErr error
}

// Digest returns DigestVal, DigestErr.
func (m *MockDigester) Digest(data []byte) ([]byte, error) {
	return m.DigestVal, m.DigestErr
}

var _ api.Digester = &MockDigester{}

// MockAlgorithm mocks api.SignatureAlgorithm.
type MockAlgorithm struct {
	SignVal   []byte
	SignErr   error
	VerifyErr error
}

// Sign returns SignVal, SignErr.
func (m *MockAlgorithm) Sign(privateKey, message []byte) ([]byte, error) {
	return m.SignVal, m.SignErr
}

// Verify returns VerifyErr.
func (m *MockAlgorithm) Verify(publicKey, signature, message []byte) error {
	return m.VerifyErr
}

var _ api.SignatureAlgorithm = &MockAlgorithm{}

// MockProvider mocks a verification method provider.
type MockProvider struct {
	Methods map[string]*api.VerificationMethod
	Err     error
	Calls   []string
}

// VerificationMethod returns the method registered under id, Err, or a not found error.
func (m *MockProvider) VerificationMethod(_ context.Context, id string) (*api.VerificationMethod, error) {
	m.Calls = append(m.Calls, id)

	if m.Err != nil {
		return nil, m.Err
	}

	vm, ok := m.Methods[id]
	if !ok {
		return nil, api.NewError(api.ErrNotFound, "verificationMethod", nil)
	}

	return vm, nil
}

var _ api.VerificationMethodProvider = &MockProvider{}
