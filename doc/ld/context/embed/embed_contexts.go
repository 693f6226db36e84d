/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package embed

import (
	_ "embed" //nolint:gci // required for go:embed

	ldcontext "github.com/trustbloc/dataintegrity-ed25519-go/doc/ld/context"
)

// Ed25519Signature2020ContextURL is the URL of the suite context.
const Ed25519Signature2020ContextURL = "https://w3id.org/security/suites/ed25519-2020/v1"

// nolint:gochecknoglobals // required for go:embed
var (
	//go:embed third_party/w3id.org/ed25519-signature-2020-v1.jsonld
	ed255192020 []byte
)

// Contexts contains JSON-LD contexts embedded into a Go binary.
var Contexts = []ldcontext.Document{ //nolint:gochecknoglobals
	{
		URL:         Ed25519Signature2020ContextURL,
		DocumentURL: "https://digitalbazaar.github.io/ed25519-signature-2020-context/contexts/ed25519-signature-2020-v1.jsonld", //nolint: lll
		Content:     ed255192020,
	},
}
