/*
Copyright SecureKey Technologies Inc. All Rights Reserved.
SPDX-License-Identifier: Apache-2.0
*/

package ed25519signature2020_test

import (
	"bytes"
	"crypto/ed25519"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/trustbloc/dataintegrity-ed25519-go/crypto-ext/jwksupport"
	"github.com/trustbloc/dataintegrity-ed25519-go/doc/codec"
	"github.com/trustbloc/dataintegrity-ed25519-go/doc/fingerprint"
	"github.com/trustbloc/dataintegrity-ed25519-go/doc/ld/documentloader"
	"github.com/trustbloc/dataintegrity-ed25519-go/doc/ld/material"
	"github.com/trustbloc/dataintegrity-ed25519-go/doc/ld/processor"
	"github.com/trustbloc/dataintegrity-ed25519-go/doc/ld/proof"
	"github.com/trustbloc/dataintegrity-ed25519-go/doc/signature/api"
	"github.com/trustbloc/dataintegrity-ed25519-go/doc/signature/suite/ed25519signature2020"
)

func seed() []byte {
	return bytes.Repeat([]byte{7}, ed25519.SeedSize)
}

func keyPair(t *testing.T) *api.VerificationMethod {
	t.Helper()

	pub, err := ed25519signature2020.PublicKeyOf(seed())
	require.NoError(t, err)

	controller, keyID := fingerprint.CreateDIDKey(pub)

	vm, err := ed25519signature2020.KeyPair(keyID, controller, seed())
	require.NoError(t, err)

	return vm
}

func TestEd25519Algorithm(t *testing.T) {
	alg := ed25519signature2020.NewEd25519Algorithm()
	msg := []byte("test message")

	sig, err := alg.Sign(seed(), msg)
	require.NoError(t, err)
	require.Len(t, sig, ed25519signature2020.ProofValueLength)

	full := ed25519.NewKeyFromSeed(seed())

	sig2, err := alg.Sign(full, msg)
	require.NoError(t, err)
	require.Equal(t, sig, sig2)

	pub, err := ed25519signature2020.PublicKeyOf(seed())
	require.NoError(t, err)
	require.NoError(t, alg.Verify(pub, sig, msg))

	pubFromFull, err := ed25519signature2020.PublicKeyOf(full)
	require.NoError(t, err)
	require.Equal(t, pub, pubFromFull)

	require.ErrorIs(t, alg.Verify(pub, sig, []byte("other message")), ed25519signature2020.ErrSignatureMismatch)
	require.ErrorIs(t, alg.Verify(make([]byte, 57), sig, msg), api.ErrKeyLength)

	_, err = alg.Sign(make([]byte, 10), msg)
	require.ErrorIs(t, err, api.ErrKeyLength)

	_, err = ed25519signature2020.PublicKeyOf(make([]byte, 10))
	require.Error(t, err)
}

func TestSuite_Basics(t *testing.T) {
	s := ed25519signature2020.New()

	require.True(t, s.Accept("Ed25519Signature2020"))
	require.True(t, s.Accept("https://w3id.org/security#Ed25519Signature2020"))
	require.False(t, s.Accept("Ed25519Signature2018"))
	require.Equal(t, "https://w3id.org/security/suites/ed25519-2020/v1", s.ContextURL())
	require.Equal(t, "Ed25519Signature2020", s.CryptoSuite().Name())
	require.Equal(t, 64, s.CryptoSuite().ProofValueLength())

	sig := bytes.Repeat([]byte{1}, 64)

	text, err := s.EncodeProofValue(sig)
	require.NoError(t, err)
	require.Equal(t, byte('z'), text[0])

	decoded, err := s.DecodeProofValue(text)
	require.NoError(t, err)
	require.Equal(t, sig, decoded)

	_, err = s.EncodeProofValue(sig[:63])
	require.ErrorIs(t, err, api.ErrProofGeneration)

	_, err = s.DecodeProofValue("u" + text[1:])
	require.ErrorIs(t, err, api.ErrInvalid)
	require.Equal(t, "proofValue", api.AttributeOf(err))

	short, err := codec.EncodeSignature(sig[:32], 32)
	require.NoError(t, err)

	_, err = s.DecodeProofValue(short)
	require.ErrorIs(t, err, api.ErrInvalid)
}

func TestSuite_WriteMethod(t *testing.T) {
	s := ed25519signature2020.New()
	vm := keyPair(t)

	ref, err := s.WriteMethod(vm, false)
	require.NoError(t, err)
	require.Equal(t, vm.ID, ref)

	embedded, err := s.WriteMethod(vm, true)
	require.NoError(t, err)

	doc, ok := embedded.(map[string]interface{})
	require.True(t, ok)
	require.Equal(t, ed25519signature2020.VerificationKeyType, doc["type"])
	require.NotContains(t, doc, "privateKeyMultibase")
	require.Equal(t, vm.Controller, doc["controller"])

	_, err = s.WriteMethod(&api.VerificationMethod{}, false)
	require.ErrorIs(t, err, api.ErrMissing)

	_, err = s.WriteMethod(&api.VerificationMethod{ID: vm.ID}, true)
	require.ErrorIs(t, err, api.ErrInvalid)
}

func TestSuite_KeyDocument(t *testing.T) {
	s := ed25519signature2020.New()
	vm := keyPair(t)

	t.Run("key pair round trip", func(t *testing.T) {
		doc, err := s.WriteKeyDocument(vm)
		require.NoError(t, err)
		require.Equal(t, ed25519signature2020.KeyPairType, doc["type"])
		require.Contains(t, doc["publicKeyMultibase"], "z6Mk")
		require.True(t, strings.HasPrefix(doc["privateKeyMultibase"].(string), "z3u2"))

		read, err := s.ReadKeyDocument(doc)
		require.NoError(t, err)
		require.True(t, read.IsKeyPair())
		require.Equal(t, vm.PublicKey, read.PublicKey)
		require.Equal(t, vm.PrivateKey, read.PrivateKey)
		require.Equal(t, vm.Controller, read.Controller)
	})

	t.Run("verification key", func(t *testing.T) {
		doc, err := s.WriteKeyDocument(vm.VerificationKey())
		require.NoError(t, err)
		require.Equal(t, ed25519signature2020.VerificationKeyType, doc["type"])

		read, err := s.ReadKeyDocument(doc)
		require.NoError(t, err)
		require.False(t, read.IsKeyPair())
		require.Equal(t, vm.PublicKey, read.PublicKey)
	})

	t.Run("secret key alias", func(t *testing.T) {
		priv, err := codec.EncodeKey(ed25519.NewKeyFromSeed(seed()), codec.Ed25519PrivateKey)
		require.NoError(t, err)

		pub, err := codec.EncodeKey(vm.PublicKey, codec.Ed25519PublicKey)
		require.NoError(t, err)

		read, err := s.ReadKeyDocument(map[string]interface{}{
			"id":                 vm.ID,
			"type":               ed25519signature2020.KeyPairType,
			"publicKeyMultibase": pub,
			"secretKeyMultibase": priv,
		})
		require.NoError(t, err)
		require.Len(t, read.PrivateKey, 64)
		require.NoError(t, ed25519signature2020.CheckKeyPair(read))
	})

	t.Run("public key lengths", func(t *testing.T) {
		for _, n := range []int{32, 57, 114} {
			pub, err := codec.EncodeKey(make([]byte, n), codec.Ed25519PublicKey)
			require.NoError(t, err)

			read, err := s.ReadKeyDocument(map[string]interface{}{
				"id":                 vm.ID,
				"type":               ed25519signature2020.VerificationKeyType,
				"publicKeyMultibase": pub,
			})
			require.NoError(t, err)
			require.Len(t, read.PublicKey, n)
		}
	})

	t.Run("public key jwk", func(t *testing.T) {
		key, err := jwksupport.FromEdPublicKey(vm.PublicKey)
		require.NoError(t, err)

		m, err := key.Map()
		require.NoError(t, err)

		read, err := s.ReadKeyDocument(map[string]interface{}{
			"id":           vm.ID,
			"type":         ed25519signature2020.VerificationKeyType,
			"publicKeyJwk": m,
		})
		require.NoError(t, err)
		require.Equal(t, vm.PublicKey, read.PublicKey)
	})

	t.Run("errors", func(t *testing.T) {
		pub, err := codec.EncodeKey(vm.PublicKey, codec.Ed25519PublicKey)
		require.NoError(t, err)

		tests := []struct {
			name string
			doc  map[string]interface{}
			kind error
			attr string
		}{
			{
				name: "wrong type",
				doc:  map[string]interface{}{"id": vm.ID, "type": "JsonWebKey2020", "publicKeyMultibase": pub},
				kind: api.ErrInvalid,
				attr: "type",
			},
			{
				name: "no type",
				doc:  map[string]interface{}{"id": vm.ID, "publicKeyMultibase": pub},
				kind: api.ErrMissing,
				attr: "type",
			},
			{
				name: "no id",
				doc:  map[string]interface{}{"type": ed25519signature2020.VerificationKeyType, "publicKeyMultibase": pub},
				kind: api.ErrMissing,
				attr: "id",
			},
			{
				name: "no key",
				doc:  map[string]interface{}{"id": vm.ID, "type": ed25519signature2020.VerificationKeyType},
				kind: api.ErrMissing,
				attr: "publicKeyMultibase",
			},
			{
				name: "bad length",
				doc: map[string]interface{}{
					"id": vm.ID, "type": ed25519signature2020.VerificationKeyType,
					"publicKeyMultibase": "z" + pub[4:],
				},
				kind: api.ErrInvalid,
				attr: "publicKeyMultibase",
			},
			{
				name: "not a string",
				doc: map[string]interface{}{
					"id": vm.ID, "type": ed25519signature2020.VerificationKeyType, "publicKeyMultibase": 1,
				},
				kind: api.ErrInvalid,
				attr: "publicKeyMultibase",
			},
			{
				name: "bad jwk",
				doc: map[string]interface{}{
					"id": vm.ID, "type": ed25519signature2020.VerificationKeyType,
					"publicKeyJwk": map[string]interface{}{"kty": "OKP"},
				},
				kind: api.ErrInvalid,
				attr: "publicKeyJwk",
			},
			{
				name: "key pair without private key",
				doc:  map[string]interface{}{"id": vm.ID, "type": ed25519signature2020.KeyPairType, "publicKeyMultibase": pub},
				kind: api.ErrMissing,
				attr: "privateKeyMultibase",
			},
			{
				name: "private key with public codec",
				doc: map[string]interface{}{
					"id": vm.ID, "type": ed25519signature2020.KeyPairType,
					"publicKeyMultibase": pub, "privateKeyMultibase": pub,
				},
				kind: api.ErrInvalid,
				attr: "privateKeyMultibase",
			},
		}

		for _, tc := range tests {
			t.Run(tc.name, func(t *testing.T) {
				_, err := s.ReadKeyDocument(tc.doc)
				require.ErrorIs(t, err, tc.kind)
				require.Equal(t, tc.attr, api.AttributeOf(err))
			})
		}

		_, err = s.WriteKeyDocument(&api.VerificationMethod{ID: vm.ID, PublicKey: make([]byte, 31)})
		require.ErrorIs(t, err, api.ErrInvalid)

		_, err = s.WriteKeyDocument(&api.VerificationMethod{ID: vm.ID})
		require.ErrorIs(t, err, api.ErrMissing)
	})
}

func TestCheckKeyPair(t *testing.T) {
	vm := keyPair(t)
	require.NoError(t, ed25519signature2020.CheckKeyPair(vm))

	err := ed25519signature2020.CheckKeyPair(vm.VerificationKey())
	require.ErrorIs(t, err, api.ErrMissing)
	require.Equal(t, "privateKey", api.AttributeOf(err))

	other := *vm
	other.PublicKey = make([]byte, 32)
	require.ErrorIs(t, ed25519signature2020.CheckKeyPair(&other), ed25519signature2020.ErrKeyMismatch)

	other = *vm
	other.PrivateKey = []byte{1}
	require.ErrorIs(t, ed25519signature2020.CheckKeyPair(&other), api.ErrInvalid)

	require.ErrorIs(t, ed25519signature2020.CheckKeyPair(nil), api.ErrMissing)

	_, err = ed25519signature2020.KeyPair("", "", seed())
	require.ErrorIs(t, err, api.ErrMissing)
}

func TestSuite_ReadProof(t *testing.T) {
	loader, err := documentloader.NewInMemory()
	require.NoError(t, err)

	s := ed25519signature2020.New()
	vm := keyPair(t)
	documentContext := []interface{}{map[string]interface{}{"@vocab": "https://example.org/vocab#"}}
	created := time.Date(2022, 3, 4, 5, 6, 7, 0, time.UTC)
	expires := created.Add(24 * time.Hour)
	sig := bytes.Repeat([]byte{9}, 64)

	d := proof.NewDraft(vm)
	d.Created = created
	d.Expires = &expires
	d.Domain = "example.com"
	d.Challenge = "c-1"
	d.Nonce = "n-1"
	d.PreviousProof = "urn:uuid:1e1b7a47-d2e4-4b4d-9a3f-2ab7bc1a8f41"
	d.Purpose = "authentication"

	unsigned, err := d.Build(documentContext, s, proof.WithDocumentLoader(loader))
	require.NoError(t, err)

	text, err := s.EncodeProofValue(sig)
	require.NoError(t, err)

	signed, err := unsigned.WithValue(sig, text, processor.WithDocumentLoader(loader))
	require.NoError(t, err)

	t.Run("success", func(t *testing.T) {
		read, err := s.ReadProof(signed.Material())
		require.NoError(t, err)
		require.Equal(t, ed25519signature2020.SignatureType, read.Type)
		require.Equal(t, created, read.Created)
		require.Equal(t, expires, *read.Expires)
		require.Equal(t, "authentication", read.Purpose)
		require.Equal(t, vm.ID, read.Method.ID)
		require.Empty(t, read.Method.PublicKey)
		require.Equal(t, "example.com", read.Domain)
		require.Equal(t, "c-1", read.Challenge)
		require.Equal(t, "n-1", read.Nonce)
		require.Equal(t, d.PreviousProof, read.PreviousProof)
		require.Equal(t, sig, read.Value)
		require.Equal(t, signed.Material().Compacted(), read.Material().Compacted())
	})

	t.Run("embedded method is read by reference", func(t *testing.T) {
		embedded := proof.NewDraft(vm)
		embedded.Embedded = true

		p, err := embedded.Build(documentContext, s, proof.WithDocumentLoader(loader))
		require.NoError(t, err)

		p, err = p.WithValue(sig, text, processor.WithDocumentLoader(loader))
		require.NoError(t, err)

		read, err := s.ReadProof(p.Material())
		require.NoError(t, err)
		require.Equal(t, vm.ID, read.Method.ID)
		require.Equal(t, ed25519signature2020.VerificationKeyTypeIRI, read.Method.Type)
		require.Equal(t, vm.Controller, read.Method.Controller)
		require.Empty(t, read.Method.PublicKey)
	})

	t.Run("unsigned proof", func(t *testing.T) {
		_, err := s.ReadProof(unsigned.Material())
		require.ErrorIs(t, err, api.ErrMissing)
		require.Equal(t, "proofValue", api.AttributeOf(err))
	})

	readCompacted := func(t *testing.T, term string, value interface{}) error {
		t.Helper()

		var (
			m   *material.Material
			err error
		)

		if value == nil {
			m, err = signed.Material().Without([]string{term}, processor.WithDocumentLoader(loader))
		} else {
			m, err = signed.Material().With(term, value, processor.WithDocumentLoader(loader))
		}

		require.NoError(t, err)

		_, err = s.ReadProof(m)

		return err
	}

	t.Run("errors", func(t *testing.T) {
		tests := []struct {
			term  string
			value interface{}
			kind  error
		}{
			{term: "created", kind: api.ErrMissing},
			{term: "created", value: "yesterday", kind: api.ErrInvalid},
			{term: "expires", value: "tomorrow", kind: api.ErrInvalid},
			{term: "proofPurpose", kind: api.ErrMissing},
			{term: "verificationMethod", kind: api.ErrMissing},
			{term: "verificationMethod", value: []interface{}{"did:example:a", "did:example:b"}, kind: api.ErrInvalid},
			{term: "proofValue", value: "zzz", kind: api.ErrInvalid},
			{term: "domain", value: []interface{}{"a.example", "b.example"}, kind: api.ErrInvalid},
		}

		for _, tc := range tests {
			t.Run(tc.term, func(t *testing.T) {
				err := readCompacted(t, tc.term, tc.value)
				require.ErrorIs(t, err, tc.kind)
				require.Equal(t, tc.term, api.AttributeOf(err))
			})
		}
	})

	t.Run("other proof type", func(t *testing.T) {
		m, err := material.New(map[string]interface{}{
			"@context": []interface{}{map[string]interface{}{"@vocab": "https://example.org/vocab#", "type": "@type"}},
			"type":     "Ed25519Signature2018",
			"created":  "2022-03-04T05:06:07Z",
		}, processor.WithDocumentLoader(loader))
		require.NoError(t, err)

		_, err = s.ReadProof(m)
		require.ErrorIs(t, err, api.ErrInvalid)
		require.ErrorIs(t, err, api.ErrUnsupportedSuite)
		require.Equal(t, "type", api.AttributeOf(err))
	})

	t.Run("empty proof", func(t *testing.T) {
		m, err := material.New(map[string]interface{}{"@context": ed25519signature2020.ContextURL},
			processor.WithDocumentLoader(loader))
		require.NoError(t, err)

		_, err = s.ReadProof(m)
		require.ErrorIs(t, err, api.ErrMissing)
	})
}
