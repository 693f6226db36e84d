/*
Copyright SecureKey Technologies Inc. All Rights Reserved.
SPDX-License-Identifier: Apache-2.0
*/

package resolver

import (
	"fmt"
	"strings"

	"github.com/trustbloc/dataintegrity-ed25519-go/doc/signature/api"
	"github.com/trustbloc/dataintegrity-ed25519-go/doc/util/maphelpers"
)

// KeyReader reads a compacted key document.
type KeyReader interface {
	ReadKeyDocument(doc map[string]interface{}) (*api.VerificationMethod, error)
}

// verification relationships searched for embedded methods, in order.
var methodSections = []string{"verificationMethod", "assertionMethod", "authentication", "publicKey"}

// MethodFromDocument finds the method identified by id in doc and reads it through reader.
// doc is either the key document itself or a controller document listing it. Relative method ids
// are resolved against the controller id, and the controller defaults to it.
func MethodFromDocument(doc map[string]interface{}, id string, reader KeyReader) (*api.VerificationMethod, error) {
	docID, _ := doc["id"].(string) //nolint:errcheck

	if docID == id {
		if _, ok := doc["type"]; ok {
			return reader.ReadKeyDocument(doc)
		}
	}

	for _, section := range methodSections {
		entries, ok := doc[section].([]interface{})
		if !ok {
			continue
		}

		for _, entry := range entries {
			m, ok := entry.(map[string]interface{})
			if !ok {
				continue
			}

			entryID, _ := m["id"].(string) //nolint:errcheck
			if absoluteID(docID, entryID) != id {
				continue
			}

			method := maphelpers.CopyMap(m)
			method["id"] = id

			if _, ok := method["controller"]; !ok && docID != "" {
				method["controller"] = docID
			}

			return reader.ReadKeyDocument(method)
		}
	}

	return nil, api.NewError(api.ErrNotFound, "verificationMethod",
		fmt.Errorf("method %s not found in document %s", id, docID))
}

func absoluteID(docID, id string) string {
	if strings.HasPrefix(id, "#") {
		return docID + id
	}

	return id
}
