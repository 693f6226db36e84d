/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package cryptosuite binds a canonicalization algorithm, a digest algorithm and a signature algorithm into
// one named configuration.
package cryptosuite

import (
	"errors"
	"fmt"

	"github.com/multiformats/go-multihash"

	"github.com/trustbloc/dataintegrity-ed25519-go/doc/ld/processor"
	"github.com/trustbloc/dataintegrity-ed25519-go/doc/signature/api"
)

// CryptoSuite is immutable once created and safe for concurrent use.
type CryptoSuite struct {
	name             string
	canonicalizer    api.Canonicalizer
	digester         api.Digester
	algorithm        api.SignatureAlgorithm
	proofValueLength int
}

// New creates a CryptoSuite. proofValueLength is the exact byte length of every signature the suite accepts.
func New(name string, canonicalizer api.Canonicalizer, digester api.Digester, algorithm api.SignatureAlgorithm,
	proofValueLength int) *CryptoSuite {
	return &CryptoSuite{
		name:             name,
		canonicalizer:    canonicalizer,
		digester:         digester,
		algorithm:        algorithm,
		proofValueLength: proofValueLength,
	}
}

// Name returns the suite name.
func (s *CryptoSuite) Name() string {
	return s.name
}

// ProofValueLength returns the signature length in bytes.
func (s *CryptoSuite) ProofValueLength() int {
	return s.proofValueLength
}

// Canonicalize returns the canonical form of a compacted or expanded document.
func (s *CryptoSuite) Canonicalize(doc interface{}, opts ...processor.Opts) ([]byte, error) {
	canonical, err := s.canonicalizer.GetCanonicalDocument(doc, opts...)
	if err != nil {
		return nil, api.Invalid("", fmt.Errorf("canonicalize: %w", err))
	}

	return canonical, nil
}

// Digest hashes canonical bytes.
func (s *CryptoSuite) Digest(data []byte) ([]byte, error) {
	digest, err := s.digester.Digest(data)
	if err != nil {
		return nil, fmt.Errorf("digest: %w", err)
	}

	return digest, nil
}

// HashData returns the message signed by a proof: the digest of the canonical proof options followed by the
// digest of the canonical document.
func (s *CryptoSuite) HashData(proofOptions, document interface{}, opts ...processor.Opts) ([]byte, error) {
	proofHash, err := s.canonicalDigest(proofOptions, opts)
	if err != nil {
		return nil, fmt.Errorf("proof options: %w", err)
	}

	docHash, err := s.canonicalDigest(document, opts)
	if err != nil {
		return nil, fmt.Errorf("document: %w", err)
	}

	return append(proofHash, docHash...), nil
}

func (s *CryptoSuite) canonicalDigest(doc interface{}, opts []processor.Opts) ([]byte, error) {
	canonical, err := s.Canonicalize(doc, opts...)
	if err != nil {
		return nil, err
	}

	return s.Digest(canonical)
}

// Sign signs message with the private key.
func (s *CryptoSuite) Sign(privateKey, message []byte) ([]byte, error) {
	if len(privateKey) == 0 {
		return nil, api.NewError(api.ErrProofGeneration, "privateKey", errors.New("private key is missing"))
	}

	sig, err := s.algorithm.Sign(privateKey, message)
	if err != nil {
		return nil, api.NewError(api.ErrProofGeneration, "", err)
	}

	if len(sig) != s.proofValueLength {
		return nil, api.NewError(api.ErrProofGeneration, "",
			fmt.Errorf("signature of %d bytes, %d expected", len(sig), s.proofValueLength))
	}

	return sig, nil
}

// Verify checks the signature of message. A key the algorithm cannot use is invalid; any other failure is
// reported as an invalid signature.
func (s *CryptoSuite) Verify(publicKey, signature, message []byte) error {
	if len(publicKey) == 0 {
		return api.Missing("publicKey")
	}

	if len(signature) != s.proofValueLength {
		return api.NewError(api.ErrInvalidSignature, "proofValue",
			fmt.Errorf("signature of %d bytes, %d expected", len(signature), s.proofValueLength))
	}

	if err := s.algorithm.Verify(publicKey, signature, message); err != nil {
		if errors.Is(err, api.ErrKeyLength) {
			return api.Invalid("publicKey", err)
		}

		return api.NewError(api.ErrInvalidSignature, "", err)
	}

	return nil
}

// MultihashDigester digests data with a multihash function and returns the bare digest.
type MultihashDigester struct {
	code uint64
}

// NewMultihashDigester returns a digester for the multihash code, e.g. multihash.SHA2_256.
func NewMultihashDigester(code uint64) *MultihashDigester {
	return &MultihashDigester{code: code}
}

// SHA256 returns the SHA2-256 digester.
func SHA256() *MultihashDigester {
	return NewMultihashDigester(multihash.SHA2_256)
}

// Digest implements api.Digester.
func (d *MultihashDigester) Digest(data []byte) ([]byte, error) {
	mh, err := multihash.Sum(data, d.code, -1)
	if err != nil {
		return nil, err
	}

	decoded, err := multihash.Decode(mh)
	if err != nil {
		return nil, err
	}

	return decoded.Digest, nil
}
