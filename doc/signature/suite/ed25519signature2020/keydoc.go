/*
Copyright SecureKey Technologies Inc. All Rights Reserved.
SPDX-License-Identifier: Apache-2.0
*/

package ed25519signature2020

import (
	"errors"
	"fmt"

	"github.com/trustbloc/dataintegrity-ed25519-go/crypto-ext/jwksupport"
	"github.com/trustbloc/dataintegrity-ed25519-go/doc/codec"
	"github.com/trustbloc/dataintegrity-ed25519-go/doc/jose/jwk"
	"github.com/trustbloc/dataintegrity-ed25519-go/doc/signature/api"
)

// Key document terms.
const (
	TermID                  = "id"
	TermType                = "type"
	TermController          = "controller"
	TermPublicKeyMultibase  = "publicKeyMultibase"
	TermPrivateKeyMultibase = "privateKeyMultibase"
	TermSecretKeyMultibase  = "secretKeyMultibase"
	TermPublicKeyJwk        = "publicKeyJwk"
)

// ReadKeyDocument reads a compacted Ed25519VerificationKey2020 or Ed25519KeyPair2020 document.
// The public key comes from publicKeyMultibase or publicKeyJwk; a key pair may carry privateKeyMultibase,
// with secretKeyMultibase accepted as an alias.
func (s *Suite) ReadKeyDocument(doc map[string]interface{}) (*api.VerificationMethod, error) {
	keyType, _ := doc[TermType].(string) //nolint:errcheck
	switch keyType {
	case VerificationKeyType, VerificationKeyTypeIRI, KeyPairType:
	case "":
		return nil, api.Missing(TermType)
	default:
		return nil, api.Invalid(TermType, fmt.Errorf("%w: key type %q", api.ErrUnsupportedSuite, keyType))
	}

	id, _ := doc[TermID].(string) //nolint:errcheck
	if id == "" {
		return nil, api.Missing(TermID)
	}

	controller, _ := doc[TermController].(string) //nolint:errcheck

	vm := &api.VerificationMethod{ID: id, Type: keyType, Controller: controller}

	var err error

	if vm.PublicKey, err = readPublicKey(doc); err != nil {
		return nil, err
	}

	if vm.PrivateKey, err = readPrivateKey(doc); err != nil {
		return nil, err
	}

	if vm.PrivateKey == nil && keyType == KeyPairType {
		return nil, api.Missing(TermPrivateKeyMultibase)
	}

	return vm, nil
}

func readPublicKey(doc map[string]interface{}) ([]byte, error) {
	if raw, ok := doc[TermPublicKeyMultibase]; ok {
		text, isString := raw.(string)
		if !isString {
			return nil, api.Invalid(TermPublicKeyMultibase, fmt.Errorf("unexpected value %T", raw))
		}

		key, err := codec.DecodeKey(text, codec.Ed25519PublicKey)
		if err != nil {
			return nil, api.Invalid(TermPublicKeyMultibase, err)
		}

		return key, nil
	}

	if raw, ok := doc[TermPublicKeyJwk]; ok {
		m, isMap := raw.(map[string]interface{})
		if !isMap {
			return nil, api.Invalid(TermPublicKeyJwk, fmt.Errorf("unexpected value %T", raw))
		}

		key, err := jwk.FromMap(m)
		if err != nil {
			return nil, api.Invalid(TermPublicKeyJwk, err)
		}

		pub, err := jwksupport.ToED25519PublicKeyBytes(key)
		if err != nil {
			return nil, api.Invalid(TermPublicKeyJwk, err)
		}

		return pub, nil
	}

	return nil, api.Missing(TermPublicKeyMultibase)
}

func readPrivateKey(doc map[string]interface{}) ([]byte, error) {
	for _, term := range []string{TermPrivateKeyMultibase, TermSecretKeyMultibase} {
		raw, ok := doc[term]
		if !ok {
			continue
		}

		text, isString := raw.(string)
		if !isString {
			return nil, api.Invalid(term, fmt.Errorf("unexpected value %T", raw))
		}

		key, err := codec.DecodeKey(text, codec.Ed25519PrivateKey)
		if err != nil {
			return nil, api.Invalid(term, err)
		}

		return key, nil
	}

	return nil, nil
}

// WriteKeyDocument writes vm as a compacted key document: an Ed25519VerificationKey2020 for a verification key,
// an Ed25519KeyPair2020 when the method carries a private key.
func (s *Suite) WriteKeyDocument(vm *api.VerificationMethod) (map[string]interface{}, error) {
	if vm == nil || vm.ID == "" {
		return nil, api.Missing(TermID)
	}

	if len(vm.PublicKey) == 0 {
		return nil, api.Missing(TermPublicKeyMultibase)
	}

	pub, err := codec.EncodeKey(vm.PublicKey, codec.Ed25519PublicKey)
	if err != nil {
		return nil, api.Invalid(TermPublicKeyMultibase, err)
	}

	doc := map[string]interface{}{
		TermID:                 vm.ID,
		TermType:               VerificationKeyType,
		TermPublicKeyMultibase: pub,
	}

	if vm.Controller != "" {
		doc[TermController] = vm.Controller
	}

	if len(vm.PrivateKey) > 0 {
		priv, err := codec.EncodeKey(vm.PrivateKey, codec.Ed25519PrivateKey)
		if err != nil {
			return nil, api.Invalid(TermPrivateKeyMultibase, err)
		}

		doc[TermType] = KeyPairType
		doc[TermPrivateKeyMultibase] = priv
	}

	return doc, nil
}

// KeyPair builds a key pair method from a 32 byte seed or a 64 byte private key.
func KeyPair(id, controller string, privateKey []byte) (*api.VerificationMethod, error) {
	pub, err := PublicKeyOf(privateKey)
	if err != nil {
		return nil, api.Invalid(TermPrivateKeyMultibase, err)
	}

	if id == "" {
		return nil, api.Missing(TermID)
	}

	return &api.VerificationMethod{
		ID:         id,
		Type:       KeyPairType,
		Controller: controller,
		PublicKey:  pub,
		PrivateKey: append([]byte(nil), privateKey...),
	}, nil
}

// ErrKeyMismatch is returned when a key pair's public key does not belong to its private key.
var ErrKeyMismatch = errors.New("public key does not match private key")

// CheckKeyPair verifies vm is a usable signing key.
func CheckKeyPair(vm *api.VerificationMethod) error {
	if vm == nil || vm.ID == "" {
		return api.Missing("verificationMethod")
	}

	if len(vm.PrivateKey) == 0 {
		return api.Missing("privateKey")
	}

	pub, err := PublicKeyOf(vm.PrivateKey)
	if err != nil {
		return api.Invalid("privateKey", err)
	}

	if len(vm.PublicKey) > 0 && string(pub) != string(vm.PublicKey) {
		return api.Invalid("publicKey", ErrKeyMismatch)
	}

	return nil
}
