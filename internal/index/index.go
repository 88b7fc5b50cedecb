// Package index encodes the document collection as the JSON data file read
// by the front end.
package index

import (
	"bytes"
	"encoding/json"

	"git.home.luguber.info/inful/blogindex/internal/docmodel"
	ferrors "git.home.luguber.info/inful/blogindex/internal/foundation/errors"
	"git.home.luguber.info/inful/blogindex/internal/storage"
)

// Encode renders docs as a pretty-printed JSON array. Non-ASCII text and
// HTML-significant characters are written literally.
func Encode(docs []*docmodel.Document) ([]byte, error) {
	if docs == nil {
		docs = []*docmodel.Document{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(docs); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode parses an index previously produced by Encode.
func Decode(data []byte) ([]*docmodel.Document, error) {
	var docs []*docmodel.Document
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// WriteAtomic encodes docs and replaces path in one step.
func WriteAtomic(provider storage.Provider, path string, docs []*docmodel.Document) error {
	data, err := Encode(docs)
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryBuild, "encode index").Build()
	}
	if err := provider.WriteFileAtomic(path, data); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "write index").
			WithContext("path", path).
			Build()
	}
	return nil
}

// ReadFile loads and decodes the index at path.
func ReadFile(provider storage.Provider, path string) ([]*docmodel.Document, error) {
	data, err := provider.ReadText(path)
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryFileSystem, "read index").
			WithContext("path", path).
			Build()
	}
	docs, err := Decode([]byte(data))
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryValidation, "decode index").
			WithContext("path", path).
			Build()
	}
	return docs, nil
}
