/*
Copyright SecureKey Technologies Inc. All Rights Reserved.
SPDX-License-Identifier: Apache-2.0
*/

package httpbinding

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/trustbloc/dataintegrity-ed25519-go/doc/signature/api"
	"github.com/trustbloc/dataintegrity-ed25519-go/method/resolver"
)

const (
	didLDJson         = "application/did+ld+json"
	didResolutionJSON = "application/ld+json;profile=\"https://w3id.org/did-resolution\""
)

// VerificationMethod resolves the DID of id through a resolver endpoint and reads the method from its document.
func (p *Provider) VerificationMethod(ctx context.Context, id string) (*api.VerificationMethod, error) {
	didID, _, _ := strings.Cut(id, "#")

	endpointURL, err := p.balancer.Choose(p.endpointURLs)
	if err != nil {
		return nil, api.NewError(api.ErrNotFound, "verificationMethod", err)
	}

	reqURL, err := url.ParseRequestURI(endpointURL)
	if err != nil {
		return nil, api.Invalid("verificationMethod", fmt.Errorf("url parse request uri failed: %w", err))
	}

	reqURL.Path = path.Join(reqURL.Path, didID)

	data, err := p.resolveDID(ctx, reqURL.String())
	if err != nil {
		return nil, err
	}

	doc, err := documentOf(data)
	if err != nil {
		return nil, api.Invalid("verificationMethod", err)
	}

	return resolver.MethodFromDocument(doc, id, p.reader)
}

// resolveDID makes DID resolution via HTTP.
func (p *Provider) resolveDID(ctx context.Context, uri string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return nil, api.Invalid("verificationMethod", fmt.Errorf("HTTP create get request failed: %w", err))
	}

	req.Header.Add("Accept", didLDJson)
	req.Header.Add("Accept", didResolutionJSON)

	authToken := p.resolveAuthToken

	if p.authTokenProvider != nil {
		v, errToken := p.authTokenProvider.AuthToken()
		if errToken != nil {
			return nil, api.Invalid("verificationMethod", fmt.Errorf("auth token: %w", errToken))
		}

		authToken = "Bearer " + v
	}

	if authToken != "" {
		req.Header.Add("Authorization", authToken)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, api.NewError(api.ErrNotFound, "verificationMethod", fmt.Errorf("HTTP Get request failed: %w", err))
	}

	defer closeResponseBody(resp.Body)

	gotBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, api.Invalid("verificationMethod", fmt.Errorf("reading response body failed: %w", err))
	}

	contentType := resp.Header.Get("Content-type")

	switch {
	case resp.StatusCode == http.StatusOK && isJSONLD(contentType) && len(gotBody) > 0:
		logger.Debugf("resolved %s", uri)

		return gotBody, nil
	case resp.StatusCode == http.StatusNotFound, resp.StatusCode == http.StatusOK && len(gotBody) == 0:
		return nil, api.NewError(api.ErrNotFound, "verificationMethod", fmt.Errorf("DID not found at %s", uri))
	}

	return nil, api.Invalid("verificationMethod", fmt.Errorf(
		"unsupported response from DID resolver [%v] header [%s] body [%s]", resp.StatusCode, contentType, gotBody))
}

func isJSONLD(contentType string) bool {
	return strings.Contains(contentType, didLDJson) || strings.Contains(contentType, "application/ld+json")
}

// documentOf returns the DID document of a resolution result, or data itself when it is a bare document.
func documentOf(data []byte) (map[string]interface{}, error) {
	var raw map[string]interface{}

	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse document resolution: %w", err)
	}

	if doc, ok := raw["didDocument"]; ok {
		m, ok := doc.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("did document is not an object: %T", doc)
		}

		return m, nil
	}

	return raw, nil
}
