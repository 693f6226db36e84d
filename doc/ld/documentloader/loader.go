/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package documentloader

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hyperledger/aries-framework-go/component/storageutil/mem"
	"github.com/hyperledger/aries-framework-go/spi/storage"
	"github.com/piprate/json-gold/ld"

	ldcontext "github.com/trustbloc/dataintegrity-ed25519-go/doc/ld/context"
	"github.com/trustbloc/dataintegrity-ed25519-go/doc/ld/context/embed"
)

// ContextsDBName is a name of DB for storing JSON-LD contexts.
const ContextsDBName = "jsonldContexts"

// ErrContextNotFound is returned when JSON-LD context document is not found in the underlying storage.
var ErrContextNotFound = errors.New("context document not found")

// DocumentLoader is an implementation of ld.DocumentLoader backed by storage.
type DocumentLoader struct {
	store                storage.Store
	remoteDocumentLoader ld.DocumentLoader
}

// New returns a new DocumentLoader instance.
//
// Embedded contexts are always preloaded into the underlying storage, so the suite context never
// leaves the process. Additional contexts can be set using WithExtraContexts() option.
//
// By default, missing contexts are not fetched from the remote URL. Use WithRemoteDocumentLoader() option
// to specify a custom loader that can resolve context documents from the network.
func New(storageProvider storage.Provider, opts ...Opts) (*DocumentLoader, error) {
	options := &documentLoaderOpts{}

	for i := range opts {
		opts[i](options)
	}

	store, err := storageProvider.OpenStore(ContextsDBName)
	if err != nil {
		return nil, fmt.Errorf("new document loader: %w", err)
	}

	contexts := append(append([]ldcontext.Document{}, embed.Contexts...), options.extraContexts...)

	// preload context documents into the underlying storage
	if err = save(store, contexts); err != nil {
		return nil, fmt.Errorf("save context documents: %w", err)
	}

	return &DocumentLoader{
		store:                store,
		remoteDocumentLoader: options.remoteDocumentLoader,
	}, nil
}

// NewInMemory returns a DocumentLoader backed by an in-memory store.
func NewInMemory(opts ...Opts) (*DocumentLoader, error) {
	return New(mem.NewProvider(), opts...)
}

func save(store storage.Store, docs []ldcontext.Document) error {
	var ops []storage.Operation

	for _, doc := range docs {
		content, err := ld.DocumentFromReader(bytes.NewReader(doc.Content))
		if err != nil {
			return fmt.Errorf("document from reader: %w", err)
		}

		rd := ld.RemoteDocument{
			DocumentURL: doc.DocumentURL,
			Document:    content,
		}

		b, err := json.Marshal(rd)
		if err != nil {
			return fmt.Errorf("marshal remote document: %w", err)
		}

		ops = append(ops, storage.Operation{Key: doc.URL, Value: b})
	}

	if err := store.Batch(ops); err != nil {
		return fmt.Errorf("store batch of contexts: %w", err)
	}

	return nil
}

// LoadDocument resolves JSON-LD context document by document URL (u) either from storage or from remote URL.
// If document is not found in the storage and remote DocumentLoader is not specified, ErrContextNotFound is returned.
func (l *DocumentLoader) LoadDocument(u string) (*ld.RemoteDocument, error) {
	b, err := l.store.Get(u)
	if err != nil {
		if !errors.Is(err, storage.ErrDataNotFound) {
			return nil, fmt.Errorf("get context from store: %w", err)
		}

		if l.remoteDocumentLoader == nil { // fetching from the remote URL is disabled
			return nil, fmt.Errorf("%w: %s", ErrContextNotFound, u)
		}

		return l.loadDocumentFromURL(u)
	}

	var rd ld.RemoteDocument

	if err := json.Unmarshal(b, &rd); err != nil {
		return nil, fmt.Errorf("unmarshal context document: %w", err)
	}

	return &rd, nil
}

func (l *DocumentLoader) loadDocumentFromURL(u string) (*ld.RemoteDocument, error) {
	rd, err := l.remoteDocumentLoader.LoadDocument(u)
	if err != nil {
		return nil, fmt.Errorf("load remote context document: %w", err)
	}

	b, err := json.Marshal(rd)
	if err != nil {
		return nil, fmt.Errorf("marshal remote document: %w", err)
	}

	if err := l.store.Put(u, b); err != nil {
		return nil, fmt.Errorf("save remote document: %w", err)
	}

	return rd, nil
}

type documentLoaderOpts struct {
	remoteDocumentLoader ld.DocumentLoader
	extraContexts        []ldcontext.Document
}

// Opts configures DocumentLoader during creation.
type Opts func(opts *documentLoaderOpts)

// WithExtraContexts sets the extra contexts (in addition to embedded) for preloading into the underlying storage.
func WithExtraContexts(contexts ...ldcontext.Document) Opts {
	return func(opts *documentLoaderOpts) {
		opts.extraContexts = append(opts.extraContexts, contexts...)
	}
}

// WithRemoteDocumentLoader specifies loader for fetching JSON-LD context documents from remote URLs.
// Documents are fetched with this loader only if they are not found in the underlying storage.
func WithRemoteDocumentLoader(loader ld.DocumentLoader) Opts {
	return func(opts *documentLoaderOpts) {
		opts.remoteDocumentLoader = loader
	}
}
