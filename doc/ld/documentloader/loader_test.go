/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package documentloader_test

import (
	"errors"
	"testing"

	"github.com/hyperledger/aries-framework-go/component/storageutil/mem"
	"github.com/hyperledger/aries-framework-go/spi/storage"
	"github.com/piprate/json-gold/ld"
	"github.com/stretchr/testify/require"

	ldcontext "github.com/trustbloc/dataintegrity-ed25519-go/doc/ld/context"
	"github.com/trustbloc/dataintegrity-ed25519-go/doc/ld/context/embed"
	"github.com/trustbloc/dataintegrity-ed25519-go/doc/ld/documentloader"
)

const exampleContextURL = "https://example.org/contexts/v1"

func TestDocumentLoader_LoadDocument(t *testing.T) {
	t.Run("embedded suite context is served without network", func(t *testing.T) {
		loader, err := documentloader.NewInMemory()
		require.NoError(t, err)

		rd, err := loader.LoadDocument(embed.Ed25519Signature2020ContextURL)
		require.NoError(t, err)
		require.NotNil(t, rd.Document)

		doc, ok := rd.Document.(map[string]interface{})
		require.True(t, ok)
		require.Contains(t, doc, "@context")
	})

	t.Run("extra context", func(t *testing.T) {
		loader, err := documentloader.NewInMemory(documentloader.WithExtraContexts(ldcontext.Document{
			URL:     exampleContextURL,
			Content: []byte(`{"@context": {"name": "https://schema.org/name"}}`),
		}))
		require.NoError(t, err)

		rd, err := loader.LoadDocument(exampleContextURL)
		require.NoError(t, err)
		require.NotNil(t, rd.Document)
	})

	t.Run("unknown context without remote loader", func(t *testing.T) {
		loader, err := documentloader.NewInMemory()
		require.NoError(t, err)

		_, err = loader.LoadDocument(exampleContextURL)
		require.ErrorIs(t, err, documentloader.ErrContextNotFound)
	})

	t.Run("remote loader result is stored", func(t *testing.T) {
		remote := &mockLoader{docs: map[string]interface{}{
			exampleContextURL: map[string]interface{}{"@context": map[string]interface{}{}},
		}}

		loader, err := documentloader.NewInMemory(documentloader.WithRemoteDocumentLoader(remote))
		require.NoError(t, err)

		for i := 0; i < 2; i++ {
			rd, err := loader.LoadDocument(exampleContextURL)
			require.NoError(t, err)
			require.NotNil(t, rd.Document)
		}

		require.Equal(t, 1, remote.calls)
	})

	t.Run("remote loader failure", func(t *testing.T) {
		loader, err := documentloader.NewInMemory(documentloader.WithRemoteDocumentLoader(&mockLoader{}))
		require.NoError(t, err)

		_, err = loader.LoadDocument(exampleContextURL)
		require.ErrorContains(t, err, "load remote context document")
	})

	t.Run("invalid extra context", func(t *testing.T) {
		_, err := documentloader.NewInMemory(documentloader.WithExtraContexts(ldcontext.Document{
			URL:     exampleContextURL,
			Content: []byte(`{`),
		}))
		require.ErrorContains(t, err, "document from reader")
	})

	t.Run("open store failure", func(t *testing.T) {
		_, err := documentloader.New(&failingProvider{Provider: mem.NewProvider()})
		require.ErrorContains(t, err, "new document loader")
	})
}

type mockLoader struct {
	docs  map[string]interface{}
	calls int
}

func (m *mockLoader) LoadDocument(u string) (*ld.RemoteDocument, error) {
	m.calls++

	doc, ok := m.docs[u]
	if !ok {
		return nil, errors.New("not reachable")
	}

	return &ld.RemoteDocument{DocumentURL: u, Document: doc}, nil
}

type failingProvider struct {
	*mem.Provider
}

func (p *failingProvider) OpenStore(string) (storage.Store, error) {
	return nil, errors.New("open failed")
}
