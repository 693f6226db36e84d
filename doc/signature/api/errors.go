/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package api

import (
	"errors"
)

// Error kinds reported by issuing and verification. Use errors.Is to test for a kind.
var (
	// ErrMissing is returned when a required attribute is absent.
	ErrMissing = errors.New("missing")
	// ErrInvalid is returned when an attribute is present but malformed or not acceptable.
	ErrInvalid = errors.New("invalid")
	// ErrExpired is returned when a proof is past its expiration.
	ErrExpired = errors.New("expired")
	// ErrNotFound is returned when no resolution rule matches a verification method.
	ErrNotFound = errors.New("not found")
	// ErrInvalidSignature is returned when the signature does not verify.
	ErrInvalidSignature = errors.New("invalid signature")
	// ErrProofGeneration is returned when a proof cannot be created.
	ErrProofGeneration = errors.New("proof generation")
)

// ErrUnsupportedSuite is the cause reported when no suite accepts a proof or key type.
var ErrUnsupportedSuite = errors.New("unsupported suite")

// ErrKeyLength is the cause reported by signature algorithms for a key they cannot use.
var ErrKeyLength = errors.New("bad key length")

// DocumentError is a typed failure naming the offending attribute.
type DocumentError struct {
	Kind      error
	Attribute string
	Err       error
}

// NewError creates a DocumentError of the given kind.
func NewError(kind error, attribute string, cause error) error {
	return &DocumentError{Kind: kind, Attribute: attribute, Err: cause}
}

// Missing reports an absent attribute.
func Missing(attribute string) error {
	return NewError(ErrMissing, attribute, nil)
}

// Invalid reports a malformed attribute.
func Invalid(attribute string, cause error) error {
	return NewError(ErrInvalid, attribute, cause)
}

func (e *DocumentError) Error() string {
	msg := e.Kind.Error()

	if e.Attribute != "" {
		msg += " " + e.Attribute
	}

	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}

	return msg
}

// Unwrap exposes both the kind and the underlying cause.
func (e *DocumentError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}

	return []error{e.Kind, e.Err}
}

// AttributeOf returns the first attribute named by a DocumentError in err's chain.
func AttributeOf(err error) string {
	for err != nil {
		var docErr *DocumentError

		if !errors.As(err, &docErr) {
			return ""
		}

		if docErr.Attribute != "" {
			return docErr.Attribute
		}

		err = docErr.Err
	}

	return ""
}
