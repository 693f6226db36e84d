/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package peer keeps verification methods of locally known peers in a key registry.
package peer

import (
	"fmt"

	"github.com/hyperledger/aries-framework-go/spi/storage"

	"github.com/trustbloc/dataintegrity-ed25519-go/doc/signature/api"
	"github.com/trustbloc/dataintegrity-ed25519-go/method/resolver"
)

const (
	// StoreNamespace store name space for the key registry.
	StoreNamespace = "peer"
	// DIDMethod did method.
	DIDMethod = "peer"
)

// KeyDocumentCodec reads and writes compacted key documents.
type KeyDocumentCodec interface {
	resolver.KeyReader
	WriteKeyDocument(vm *api.VerificationMethod) (map[string]interface{}, error)
}

// Registry stores key documents by verification method id.
type Registry struct {
	store storage.Store
	codec KeyDocumentCodec
}

// New return new instance of the peer key registry.
func New(s storage.Provider, codec KeyDocumentCodec) (*Registry, error) {
	store, err := s.OpenStore(StoreNamespace)
	if err != nil {
		return nil, fmt.Errorf("open store : %w", err)
	}

	return &Registry{store: store, codec: codec}, nil
}

// Predicate matches did:peer identifiers.
func Predicate() resolver.Predicate {
	return resolver.DIDMethodIs(DIDMethod)
}

var _ resolver.Provider = (*Registry)(nil)
