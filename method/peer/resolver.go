/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package peer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hyperledger/aries-framework-go/spi/storage"

	"github.com/trustbloc/dataintegrity-ed25519-go/doc/signature/api"
)

// Register stores vm under its id, replacing any previous entry. A key pair keeps its private key.
func (r *Registry) Register(vm *api.VerificationMethod) error {
	if vm == nil || vm.ID == "" {
		return api.Missing("verificationMethod")
	}

	doc, err := r.codec.WriteKeyDocument(vm)
	if err != nil {
		return err
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal key document: %w", err)
	}

	if err = r.store.Put(vm.ID, raw); err != nil {
		return fmt.Errorf("store key document: %w", err)
	}

	return nil
}

// Remove deletes the method stored under id.
func (r *Registry) Remove(id string) error {
	return r.store.Delete(id)
}

// VerificationMethod returns the public part of the method stored under id.
func (r *Registry) VerificationMethod(_ context.Context, id string) (*api.VerificationMethod, error) {
	vm, err := r.get(id)
	if err != nil {
		return nil, err
	}

	return vm.VerificationKey(), nil
}

// KeyPair returns the key pair stored under id, for signing.
func (r *Registry) KeyPair(id string) (*api.VerificationMethod, error) {
	vm, err := r.get(id)
	if err != nil {
		return nil, err
	}

	if !vm.IsKeyPair() {
		return nil, api.Missing("privateKey")
	}

	return vm, nil
}

func (r *Registry) get(id string) (*api.VerificationMethod, error) {
	// get the document from the store
	raw, err := r.store.Get(id)
	if errors.Is(err, storage.ErrDataNotFound) {
		return nil, api.NewError(api.ErrNotFound, "verificationMethod", fmt.Errorf("%s: %w", id, err))
	}

	if err != nil {
		return nil, fmt.Errorf("fetching data from store failed: %w", err)
	}

	var doc map[string]interface{}

	if err = json.Unmarshal(raw, &doc); err != nil {
		return nil, api.Invalid("verificationMethod", fmt.Errorf("unmarshal key document: %w", err))
	}

	return r.codec.ReadKeyDocument(doc)
}
