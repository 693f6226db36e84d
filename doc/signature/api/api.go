/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package api

import (
	"context"

	"github.com/trustbloc/dataintegrity-ed25519-go/doc/ld/processor"
)

// VerificationMethod is an identified key usable to verify a proof. A method carrying both
// public and private keys is a key pair and can also create proofs.
type VerificationMethod struct {
	ID         string
	Type       string
	Controller string
	PublicKey  []byte
	PrivateKey []byte
}

// IsKeyPair reports whether the method can be used for signing.
func (m *VerificationMethod) IsKeyPair() bool {
	return m != nil && len(m.PublicKey) > 0 && len(m.PrivateKey) > 0
}

// VerificationKey returns a copy of the method without private key material.
func (m *VerificationMethod) VerificationKey() *VerificationMethod {
	if m == nil {
		return nil
	}

	return &VerificationMethod{
		ID:         m.ID,
		Type:       m.Type,
		Controller: m.Controller,
		PublicKey:  append([]byte(nil), m.PublicKey...),
	}
}

// Canonicalizer produces the canonical byte form of a JSON-LD document.
type Canonicalizer interface {
	// GetCanonicalDocument returns the normalized view of the (compacted or expanded) document.
	GetCanonicalDocument(doc interface{}, opts ...processor.Opts) ([]byte, error)
}

// Digester hashes canonical bytes.
type Digester interface {
	// Digest returns the hash of data.
	Digest(data []byte) ([]byte, error)
}

// SignatureAlgorithm signs and verifies raw messages.
type SignatureAlgorithm interface {
	// Sign signs message with the given private key.
	Sign(privateKey, message []byte) ([]byte, error)

	// Verify checks signature of message against the public key.
	Verify(publicKey, signature, message []byte) error
}

// VerificationMethodProvider produces the key material of a verification method identifier.
type VerificationMethodProvider interface {
	// VerificationMethod returns the method identified by id. A provider that cannot serve id returns an error
	// of kind ErrNotFound or ErrInvalid.
	VerificationMethod(ctx context.Context, id string) (*VerificationMethod, error)
}
