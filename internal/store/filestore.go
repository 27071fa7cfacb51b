package store

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// FileStore keeps every collection inside a single JSON document on
// disk, one top-level key per collection. Each Write re-reads the full
// document, swaps one collection and writes the whole document back.
type FileStore struct {
	path string
	mu   sync.Mutex
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (f *FileStore) Read(collection string, out any) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	doc, err := f.readDocument()
	if err != nil {
		return err
	}

	raw, ok := doc[collection]
	if !ok {
		raw = json.RawMessage("[]")
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode collection %q: %w", collection, err)
	}
	return nil
}

func (f *FileStore) Write(collection string, records any) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	doc, err := f.readDocument()
	if err != nil {
		return err
	}

	raw, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode collection %q: %w", collection, err)
	}
	doc[collection] = raw

	blob, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return fmt.Errorf("encode data file: %w", err)
	}
	if err := os.WriteFile(f.path, blob, 0644); err != nil {
		return fmt.Errorf("write data file %s: %w", f.path, err)
	}
	return nil
}

func (f *FileStore) readDocument() (map[string]json.RawMessage, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("read data file %s: %w", f.path, err)
	}

	doc := make(map[string]json.RawMessage)
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse data file %s: %w", f.path, err)
	}
	return doc, nil
}
