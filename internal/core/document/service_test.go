// Copyright (c) 2026 Silo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package document

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/silo/internal/platform/apperr"
	"github.com/taibuivan/silo/internal/platform/dberr"
)

// # Fakes

type fakeRepository struct {
	documents map[int]*Document
	nextID    int
	createErr error
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{documents: map[int]*Document{}, nextID: 1}
}

func (repo *fakeRepository) List(_ context.Context, itemID *int) ([]*Document, error) {
	documents := make([]*Document, 0)
	for _, document := range repo.documents {
		if itemID != nil && (document.ItemID == nil || *document.ItemID != *itemID) {
			continue
		}
		documents = append(documents, document)
	}
	return documents, nil
}

func (repo *fakeRepository) FindByID(_ context.Context, id int) (*Document, error) {
	document, ok := repo.documents[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	return document, nil
}

func (repo *fakeRepository) Create(_ context.Context, document *Document) error {
	if repo.createErr != nil {
		return repo.createErr
	}
	document.ID = repo.nextID
	repo.nextID++
	repo.documents[document.ID] = document
	return nil
}

func (repo *fakeRepository) Delete(_ context.Context, id int) error {
	if _, ok := repo.documents[id]; !ok {
		return dberr.ErrNotFound
	}
	delete(repo.documents, id)
	return nil
}

type memoryReadSeekCloser struct {
	*bytes.Reader
}

func (memoryReadSeekCloser) Close() error { return nil }

// memoryFileStore keeps stored files in a map so tests can assert on
// what survived an upload.
type memoryFileStore struct {
	files map[string][]byte
}

func newMemoryFileStore() *memoryFileStore {
	return &memoryFileStore{files: map[string][]byte{}}
}

func (store *memoryFileStore) Save(name string, reader io.Reader) (int64, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return 0, err
	}
	store.files[name] = data
	return int64(len(data)), nil
}

func (store *memoryFileStore) Open(name string) (io.ReadSeekCloser, error) {
	data, ok := store.files[name]
	if !ok {
		return nil, errors.New("file missing")
	}
	return memoryReadSeekCloser{bytes.NewReader(data)}, nil
}

func (store *memoryFileStore) Remove(name string) error {
	delete(store.files, name)
	return nil
}

func newTestService(repo *fakeRepository, files *memoryFileStore, maxFileSize int64) *Service {
	return NewService(repo, files, maxFileSize, slog.New(slog.DiscardHandler))
}

// # Tests

func TestService_Upload(testing *testing.T) {
	repo := newFakeRepository()
	files := newMemoryFileStore()
	service := newTestService(repo, files, 64)

	document := &Document{Filename: "manual.PDF", Title: "Manual", MimeType: "application/pdf"}
	err := service.Upload(context.Background(), document, strings.NewReader("hello world"))
	require.NoError(testing, err)

	assert.NotZero(testing, document.ID)
	assert.Equal(testing, int64(11), document.FileSize)
	assert.NotEmpty(testing, document.FilePath)
	assert.True(testing, strings.HasSuffix(document.FilePath, ".pdf"),
		"stored name should carry the lowercased extension, got %q", document.FilePath)
	assert.NotEqual(testing, document.Filename, document.FilePath,
		"client filename must never be used as the stored name")

	stored, ok := files.files[document.FilePath]
	require.True(testing, ok)
	assert.Equal(testing, "hello world", string(stored))
}

func TestService_Upload_FileTooLarge(testing *testing.T) {
	repo := newFakeRepository()
	files := newMemoryFileStore()
	service := newTestService(repo, files, 8)

	document := &Document{Filename: "big.bin"}
	err := service.Upload(context.Background(), document, strings.NewReader("way past the limit"))
	require.Error(testing, err)

	appError := apperr.As(err)
	require.NotNil(testing, appError)
	assert.Equal(testing, 413, appError.HTTPStatus)
	assert.Equal(testing, "FILE_TOO_LARGE", appError.Code)

	assert.Empty(testing, files.files, "oversized upload must not leave a partial file")
	assert.Empty(testing, repo.documents)
}

func TestService_Upload_MetadataFailureRemovesFile(testing *testing.T) {
	repo := newFakeRepository()
	repo.createErr = apperr.Unprocessable("A referenced record does not exist")
	files := newMemoryFileStore()
	service := newTestService(repo, files, 64)

	document := &Document{Filename: "photo.jpg"}
	err := service.Upload(context.Background(), document, strings.NewReader("jpeg bytes"))
	require.Error(testing, err)

	assert.Empty(testing, files.files, "a failed insert must not orphan the stored file")
}

func TestService_Upload_Validation(t *testing.T) {
	service := newTestService(newFakeRepository(), newMemoryFileStore(), 64)

	tests := []struct {
		name     string
		document *Document
	}{
		{name: "missing_filename", document: &Document{}},
		{name: "filename_too_long", document: &Document{Filename: strings.Repeat("a", 256)}},
		{name: "title_too_long", document: &Document{Filename: "a.txt", Title: strings.Repeat("t", 201)}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := service.Upload(context.Background(), test.document, strings.NewReader("x"))
			require.Error(t, err)

			appError := apperr.As(err)
			require.NotNil(t, appError)
			assert.Equal(t, 400, appError.HTTPStatus)
		})
	}
}

func TestService_OpenDocument(testing *testing.T) {
	repo := newFakeRepository()
	files := newMemoryFileStore()
	service := newTestService(repo, files, 64)

	uploaded := &Document{Filename: "notes.txt", MimeType: "text/plain"}
	require.NoError(testing, service.Upload(context.Background(), uploaded, strings.NewReader("contents")))

	document, reader, err := service.OpenDocument(context.Background(), uploaded.ID)
	require.NoError(testing, err)
	defer reader.Close()

	data, err := io.ReadAll(reader)
	require.NoError(testing, err)
	assert.Equal(testing, "contents", string(data))
	assert.Equal(testing, "notes.txt", document.Filename)
}

func TestService_OpenDocument_FileMissing(testing *testing.T) {
	repo := newFakeRepository()
	files := newMemoryFileStore()
	service := newTestService(repo, files, 64)

	uploaded := &Document{Filename: "gone.txt"}
	require.NoError(testing, service.Upload(context.Background(), uploaded, strings.NewReader("x")))
	delete(files.files, uploaded.FilePath)

	_, _, err := service.OpenDocument(context.Background(), uploaded.ID)
	require.Error(testing, err)

	appError := apperr.As(err)
	require.NotNil(testing, appError)
	assert.Equal(testing, 500, appError.HTTPStatus)
}

func TestService_DeleteDocument(testing *testing.T) {
	repo := newFakeRepository()
	files := newMemoryFileStore()
	service := newTestService(repo, files, 64)

	uploaded := &Document{Filename: "old.txt"}
	require.NoError(testing, service.Upload(context.Background(), uploaded, strings.NewReader("x")))

	require.NoError(testing, service.DeleteDocument(context.Background(), uploaded.ID))
	assert.Empty(testing, repo.documents)
	assert.Empty(testing, files.files)

	err := service.DeleteDocument(context.Background(), uploaded.ID)
	require.Error(testing, err)
	assert.ErrorIs(testing, err, dberr.ErrNotFound)
}
