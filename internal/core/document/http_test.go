// Copyright (c) 2026 Silo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package document

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/silo/internal/platform/ctxutil"
	"github.com/taibuivan/silo/internal/platform/sec"
)

func newTestHandler(maxFileSize int64) (*Handler, *fakeRepository, *memoryFileStore) {
	repo := newFakeRepository()
	files := newMemoryFileStore()
	return NewHandler(newTestService(repo, files, maxFileSize)), repo, files
}

func multipartUpload(t *testing.T, filename, contents string, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = io.WriteString(part, contents)
	require.NoError(t, err)

	for field, value := range fields {
		require.NoError(t, writer.WriteField(field, value))
	}
	require.NoError(t, writer.Close())

	return body, writer.FormDataContentType()
}

/*
TestHandler_Upload verifies the uploader is taken from the session and the
metadata record carries the generated stored name.
*/
func TestHandler_Upload(t *testing.T) {
	handler, repo, files := newTestHandler(1 << 20)

	body, contentType := multipartUpload(t, "invoice.pdf", "pdf bytes", map[string]string{
		"title":   "Invoice 2026-03",
		"item_id": "7",
	})

	request := httptest.NewRequest(http.MethodPost, "/", body)
	request.Header.Set("Content-Type", contentType)
	request = request.WithContext(ctxutil.WithPrincipal(request.Context(), &sec.Principal{
		UserID:   42,
		Username: "jdoe",
	}))

	recorder := httptest.NewRecorder()
	handler.Routes().ServeHTTP(recorder, request)

	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())

	stored := repo.documents[1]
	require.NotNil(t, stored)
	assert.Equal(t, "invoice.pdf", stored.Filename)
	assert.Equal(t, "Invoice 2026-03", stored.Title)
	require.NotNil(t, stored.ItemID)
	assert.Equal(t, 7, *stored.ItemID)
	require.NotNil(t, stored.UserID)
	assert.Equal(t, 42, *stored.UserID)
	assert.Len(t, files.files, 1)
}

/*
TestHandler_Upload_MissingFile rejects multipart bodies without a file part.
*/
func TestHandler_Upload_MissingFile(t *testing.T) {
	handler, repo, _ := newTestHandler(1 << 20)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	require.NoError(t, writer.WriteField("title", "no file here"))
	require.NoError(t, writer.Close())

	request := httptest.NewRequest(http.MethodPost, "/", body)
	request.Header.Set("Content-Type", writer.FormDataContentType())
	recorder := httptest.NewRecorder()
	handler.Routes().ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Empty(t, repo.documents)
}

/*
TestHandler_Upload_TooLarge maps the size limit to 413.
*/
func TestHandler_Upload_TooLarge(t *testing.T) {
	handler, repo, files := newTestHandler(4)

	body, contentType := multipartUpload(t, "big.bin", "way over the limit", nil)
	request := httptest.NewRequest(http.MethodPost, "/", body)
	request.Header.Set("Content-Type", contentType)
	recorder := httptest.NewRecorder()
	handler.Routes().ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusRequestEntityTooLarge, recorder.Code)
	assert.Empty(t, repo.documents)
	assert.Empty(t, files.files)
}

/*
TestHandler_Download streams the bytes with the original filename.
*/
func TestHandler_Download(t *testing.T) {
	handler, _, _ := newTestHandler(1 << 20)

	body, contentType := multipartUpload(t, "notes.txt", "remember the cables", nil)
	upload := httptest.NewRequest(http.MethodPost, "/", body)
	upload.Header.Set("Content-Type", contentType)
	uploadRecorder := httptest.NewRecorder()
	handler.Routes().ServeHTTP(uploadRecorder, upload)
	require.Equal(t, http.StatusCreated, uploadRecorder.Code)

	request := httptest.NewRequest(http.MethodGet, "/1/download", nil)
	recorder := httptest.NewRecorder()
	handler.Routes().ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "remember the cables", recorder.Body.String())
	assert.Contains(t, recorder.Header().Get("Content-Disposition"), `filename="notes.txt"`)
}

/*
TestHandler_List filters by item_id when present.
*/
func TestHandler_List(t *testing.T) {
	handler, repo, _ := newTestHandler(1 << 20)
	itemID := 3
	repo.documents[1] = &Document{ID: 1, Filename: "a.txt", ItemID: &itemID}
	repo.documents[2] = &Document{ID: 2, Filename: "b.txt"}
	repo.nextID = 3

	request := httptest.NewRequest(http.MethodGet, "/?item_id=3", nil)
	recorder := httptest.NewRecorder()
	handler.Routes().ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)

	var envelope struct {
		Data []Document `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data, 1)
	assert.Equal(t, "a.txt", envelope.Data[0].Filename)
}
