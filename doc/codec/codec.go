/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package codec encodes key and signature bytes as multibase text, with keys tagged by their multicodec code.
package codec

import (
	"errors"
	"fmt"

	"github.com/multiformats/go-multibase"
	"github.com/multiformats/go-varint"

	"github.com/trustbloc/dataintegrity-ed25519-go/doc/signature/api"
)

// Multicodec codes, see https://github.com/multiformats/multicodec/blob/master/table.csv.
const (
	Ed25519PubKeyMultiCodec  = 0xed
	Ed25519PrivKeyMultiCodec = 0x1300
)

var (
	// ErrEncoding is returned when text is not base58btc multibase.
	ErrEncoding = errors.New("unsupported multibase encoding")
	// ErrCodec is returned when the multicodec tag does not match the expected key kind.
	ErrCodec = errors.New("unexpected multicodec")
	// ErrLength is returned when decoded bytes violate the fixed-length rule.
	ErrLength = errors.New("invalid length")
)

// KeyCodec describes a multicodec key kind and the byte lengths it accepts.
type KeyCodec struct {
	Name    string
	Code    uint64
	Lengths []int
}

// Ed25519PublicKey accepts the raw sizes of the Edwards curve family (Ed25519, Ed448 and its prehash form).
var Ed25519PublicKey = KeyCodec{ //nolint:gochecknoglobals
	Name:    "ed25519-pub",
	Code:    Ed25519PubKeyMultiCodec,
	Lengths: []int{32, 57, 114},
}

// Ed25519PrivateKey accepts a 32 byte seed or a 64 byte seed and public key pair.
var Ed25519PrivateKey = KeyCodec{ //nolint:gochecknoglobals
	Name:    "ed25519-priv",
	Code:    Ed25519PrivKeyMultiCodec,
	Lengths: []int{32, 64},
}

// ValidLength reports whether n is one of the sanctioned lengths.
func (c KeyCodec) ValidLength(n int) bool {
	for _, l := range c.Lengths {
		if n == l {
			return true
		}
	}

	return false
}

// EncodeKey returns multibase(base58btc, varint(code) || raw).
func EncodeKey(raw []byte, c KeyCodec) (string, error) {
	if !c.ValidLength(len(raw)) {
		return "", api.Invalid("", fmt.Errorf("%s key of %d bytes: %w", c.Name, len(raw), ErrLength))
	}

	prefix := varint.ToUvarint(c.Code)

	buf := make([]byte, 0, len(prefix)+len(raw))
	buf = append(buf, prefix...)
	buf = append(buf, raw...)

	return encode(buf)
}

// DecodeKey reverses EncodeKey, checking the tag against c.
func DecodeKey(text string, c KeyCodec) ([]byte, error) {
	data, err := decode(text)
	if err != nil {
		return nil, err
	}

	code, n, err := varint.FromUvarint(data)
	if err != nil {
		return nil, api.Invalid("", fmt.Errorf("read multicodec: %w", err))
	}

	if code != c.Code {
		return nil, api.Invalid("", fmt.Errorf("%w 0x%x, %s expected", ErrCodec, code, c.Name))
	}

	raw := data[n:]
	if !c.ValidLength(len(raw)) {
		return nil, api.Invalid("", fmt.Errorf("%s key of %d bytes: %w", c.Name, len(raw), ErrLength))
	}

	return raw, nil
}

// EncodeSignature returns multibase(base58btc, sig); sig must be exactly length bytes.
func EncodeSignature(sig []byte, length int) (string, error) {
	if len(sig) != length {
		return "", api.Invalid("", fmt.Errorf("signature of %d bytes, %d expected: %w", len(sig), length, ErrLength))
	}

	return encode(sig)
}

// DecodeSignature reverses EncodeSignature.
func DecodeSignature(text string, length int) ([]byte, error) {
	sig, err := decode(text)
	if err != nil {
		return nil, err
	}

	if len(sig) != length {
		return nil, api.Invalid("", fmt.Errorf("signature of %d bytes, %d expected: %w", len(sig), length, ErrLength))
	}

	return sig, nil
}

func encode(data []byte) (string, error) {
	text, err := multibase.Encode(multibase.Base58BTC, data)
	if err != nil {
		return "", api.Invalid("", err)
	}

	return text, nil
}

func decode(text string) ([]byte, error) {
	enc, data, err := multibase.Decode(text)
	if err != nil {
		return nil, api.Invalid("", fmt.Errorf("decode multibase: %w", err))
	}

	if enc != multibase.Base58BTC {
		return nil, api.Invalid("", fmt.Errorf("%w %q", ErrEncoding, text[:1]))
	}

	return data, nil
}
