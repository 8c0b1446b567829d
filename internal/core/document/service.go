// Copyright (c) 2026 Silo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package document

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/taibuivan/silo/internal/platform/apperr"
	"github.com/taibuivan/silo/internal/platform/validate"
	"github.com/taibuivan/silo/pkg/uuidv7"
)

// # Service Layer

// Service orchestrates document uploads, downloads, and deletion.
type Service struct {
	repo        Repository
	files       FileStore
	maxFileSize int64
	logger      *slog.Logger
}

// NewService constructs a new document [Service].
func NewService(repo Repository, files FileStore, maxFileSize int64, logger *slog.Logger) *Service {
	return &Service{
		repo:        repo,
		files:       files,
		maxFileSize: maxFileSize,
		logger:      logger,
	}
}

// MaxFileSize returns the configured upload limit in bytes.
func (service *Service) MaxFileSize() int64 {
	return service.maxFileSize
}

/*
ListDocuments returns document records, optionally filtered to one item.
*/
func (service *Service) ListDocuments(context context.Context, itemID *int) ([]*Document, error) {
	return service.repo.List(context, itemID)
}

/*
GetDocument retrieves a document record by primary key.
*/
func (service *Service) GetDocument(context context.Context, id int) (*Document, error) {
	return service.repo.FindByID(context, id)
}

/*
Upload stores a file and its metadata record.

Description: The bytes are streamed to the file store under a fresh
UUIDv7 name carrying the original extension. Reading stops one byte past
the size limit, so an oversized upload is rejected without buffering it;
the partial file is removed. If the metadata insert fails afterwards, the
stored file is removed too — orphaned rows are worse than orphaned files,
and the row is the source of truth.

Returns:
  - error: Validation failures, 413 when the file exceeds the limit,
    Unprocessable when the referenced item is missing
*/
func (service *Service) Upload(context context.Context, document *Document, reader io.Reader) error {
	validator := &validate.Validator{}
	validator.Required("filename", document.Filename).MaxLen("filename", document.Filename, 255)
	validator.MaxLen("title", document.Title, 200)
	if err := validator.Err(); err != nil {
		return err
	}

	storedName := uuidv7.New() + strings.ToLower(filepath.Ext(filepath.Base(document.Filename)))

	written, err := service.files.Save(storedName, io.LimitReader(reader, service.maxFileSize+1))
	if err != nil {
		return apperr.Internal(err)
	}
	if written > service.maxFileSize {
		_ = service.files.Remove(storedName)
		return &apperr.AppError{
			Code:       "FILE_TOO_LARGE",
			Message:    "File exceeds the maximum allowed size",
			HTTPStatus: http.StatusRequestEntityTooLarge,
		}
	}

	document.FilePath = storedName
	document.FileSize = written

	if err := service.repo.Create(context, document); err != nil {
		_ = service.files.Remove(storedName)
		return err
	}

	service.logger.Info("document_uploaded",
		slog.Int("document_id", document.ID),
		slog.String("filename", document.Filename),
		slog.Int64("size", written),
	)

	return nil
}

/*
OpenDocument returns a document's metadata and a reader over its bytes.

The caller must close the reader.

Returns:
  - *Document: The metadata record
  - io.ReadSeekCloser: The stored bytes
  - error: ErrNotFound if the record is missing, Internal when the file
    disappeared from disk
*/
func (service *Service) OpenDocument(context context.Context, id int) (*Document, io.ReadSeekCloser, error) {
	document, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, nil, err
	}

	reader, err := service.files.Open(document.FilePath)
	if err != nil {
		return nil, nil, apperr.Internal(err)
	}

	return document, reader, nil
}

/*
DeleteDocument removes a document's metadata and stored file.

Returns:
  - error: ErrNotFound if missing
*/
func (service *Service) DeleteDocument(context context.Context, id int) error {
	document, err := service.repo.FindByID(context, id)
	if err != nil {
		return err
	}

	if err := service.repo.Delete(context, id); err != nil {
		return err
	}

	if err := service.files.Remove(document.FilePath); err != nil {
		// The row is gone; log the stray file instead of failing the request.
		service.logger.Warn("document_file_remove_failed",
			slog.Int("document_id", id),
			slog.String("error", err.Error()),
		)
	}

	service.logger.Info("document_deleted", slog.Int("document_id", id))

	return nil
}
