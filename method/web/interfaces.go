/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package web

import "net/http"

//go:generate mockgen -destination interfaces_mocks_test.go -package web -source=interfaces.go

// roundTripper is mocked to serve DID documents without a server.
type roundTripper interface { //nolint
	http.RoundTripper
}
