// Copyright (c) 2026 Silo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package document

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// # File Storage

// FileStore persists uploaded bytes. The service only ever refers to files
// by their generated stored name, never by a client-controlled path.
type FileStore interface {
	Save(name string, reader io.Reader) (int64, error)
	Open(name string) (io.ReadSeekCloser, error)
	Remove(name string) error
}

// DiskStore implements [FileStore] on a local directory.
type DiskStore struct {
	root string
}

// NewDiskStore creates the upload directory if needed and returns a store
// rooted there.
func NewDiskStore(root string) (*DiskStore, error) {
	if err := os.MkdirAll(root, 0o750); err != nil {
		return nil, fmt.Errorf("document: create upload directory: %w", err)
	}
	return &DiskStore{root: root}, nil
}

// Save streams reader into a new file and returns the byte count.
func (store *DiskStore) Save(name string, reader io.Reader) (int64, error) {
	file, err := os.Create(filepath.Join(store.root, name))
	if err != nil {
		return 0, fmt.Errorf("document: create file: %w", err)
	}
	defer file.Close()

	written, err := io.Copy(file, reader)
	if err != nil {
		// Leave no partial files behind.
		os.Remove(file.Name())
		return 0, fmt.Errorf("document: write file: %w", err)
	}

	return written, nil
}

// Open returns a seekable reader over a stored file.
func (store *DiskStore) Open(name string) (io.ReadSeekCloser, error) {
	file, err := os.Open(filepath.Join(store.root, name))
	if err != nil {
		return nil, fmt.Errorf("document: open file: %w", err)
	}
	return file, nil
}

// Remove deletes a stored file. A file already gone is not an error; the
// metadata row is the source of truth.
func (store *DiskStore) Remove(name string) error {
	err := os.Remove(filepath.Join(store.root, name))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("document: remove file: %w", err)
	}
	return nil
}
