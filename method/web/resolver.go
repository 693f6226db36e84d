/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package web

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/hyperledger/aries-framework-go/component/log"

	"github.com/trustbloc/dataintegrity-ed25519-go/doc/signature/api"
	"github.com/trustbloc/dataintegrity-ed25519-go/method/resolver"
)

var logger = log.New("dataintegrity-ed25519/web")

// VerificationMethod fetches the DID document of id and reads the method id from it.
func (p *Provider) VerificationMethod(ctx context.Context, id string) (*api.VerificationMethod, error) {
	didID, _, _ := strings.Cut(id, "#")

	doc, err := p.read(ctx, didID)
	if err != nil {
		return nil, err
	}

	return resolver.MethodFromDocument(doc, id, p.reader)
}

func (p *Provider) read(ctx context.Context, didID string) (map[string]interface{}, error) {
	address, _, err := parseDIDWeb(didID, p.useHTTP)
	if err != nil {
		return nil, api.Invalid("verificationMethod",
			fmt.Errorf("error resolving did:web did --> could not parse did:web did --> %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, address, nil)
	if err != nil {
		return nil, api.Invalid("verificationMethod", fmt.Errorf("error resolving did:web did --> %w", err))
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, api.NewError(api.ErrNotFound, "verificationMethod",
			fmt.Errorf("error resolving did:web did --> http request unsuccessful --> %w", err))
	}

	defer closeResponseBody(resp.Body)

	if resp.StatusCode == http.StatusNotFound {
		return nil, api.NewError(api.ErrNotFound, "verificationMethod", fmt.Errorf("did document %s not found", address))
	}

	if resp.StatusCode != http.StatusOK {
		return nil, api.Invalid("verificationMethod",
			fmt.Errorf("http server returned status code [%d]", resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, api.Invalid("verificationMethod",
			fmt.Errorf("error resolving did:web did --> error reading http response body --> %w", err))
	}

	var doc map[string]interface{}

	if err = json.Unmarshal(body, &doc); err != nil {
		return nil, api.Invalid("verificationMethod",
			fmt.Errorf("error resolving did:web did --> error parsing did doc --> %w", err))
	}

	if doc["id"] != didID {
		return nil, api.Invalid("verificationMethod", fmt.Errorf("did id %v not matching did %s", doc["id"], didID))
	}

	logger.Debugf("resolved did document %s from %s", didID, address)

	return doc, nil
}

func closeResponseBody(respBody io.Closer) {
	e := respBody.Close()
	if e != nil {
		logger.Warnf("Failed to close response body: %v", e)
	}
}
