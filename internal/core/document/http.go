// Copyright (c) 2026 Silo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package document

import (
	"fmt"
	"mime"
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/silo/internal/platform/request"
	"github.com/taibuivan/silo/internal/platform/respond"
	"github.com/taibuivan/silo/internal/platform/validate"
	"github.com/taibuivan/silo/pkg/convert"
	"github.com/taibuivan/silo/pkg/pointer"
)

// multipartMemoryLimit bounds how much of an upload is held in memory
// before spilling to a temp file.
const multipartMemoryLimit = 8 << 20

// # Handler Implementation

// Handler implements the HTTP layer for document management.
type Handler struct {
	service *Service
}

// NewHandler constructs a new document [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] with the document endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listDocuments)
	router.Post("/", handler.uploadDocument)

	router.Route("/{id}", func(subRouter chi.Router) {
		subRouter.Get("/", handler.getDocument)
		subRouter.Get("/download", handler.downloadDocument)
		subRouter.Delete("/", handler.deleteDocument)
	})

	return router
}

// # Document Endpoints

/*
GET /api/v1/document?item_id={itemID}.

Description: Lists document records, newest first. Without item_id, all
documents are returned.

Response:
  - 200: []Document: Success
*/
func (handler *Handler) listDocuments(writer http.ResponseWriter, request *http.Request) {
	var itemID *int
	if raw := request.URL.Query().Get("item_id"); raw != "" {
		itemID = pointer.To(convert.ToInt(raw))
	}

	documents, err := handler.service.ListDocuments(request.Context(), itemID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, documents)
}

/*
GET /api/v1/document/{id}.

Description: Retrieves a document's metadata.

Response:
  - 200: Document: Success
  - 404: 404: ErrNotFound: Document not found
*/
func (handler *Handler) getDocument(writer http.ResponseWriter, request *http.Request) {
	document, err := handler.service.GetDocument(request.Context(), requestutil.IntParam(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, document)
}

/*
POST /api/v1/document.

Description: Uploads a file with metadata as multipart form data. The
uploader is the authenticated caller.

Request (Multipart):
  - file: binary (required)
  - title: string
  - description: string
  - item_id: int (optional attachment target)

Response:
  - 201: Document: Created metadata record
  - 400: 400: Validation: Missing file part
  - 413: 413: FileTooLarge: File exceeds the configured limit
  - 422: 422: Unprocessable: Item does not exist
*/
func (handler *Handler) uploadDocument(writer http.ResponseWriter, request *http.Request) {

	// Cap the whole request body; the service enforces the precise
	// per-file limit.
	request.Body = http.MaxBytesReader(writer, request.Body, handler.service.MaxFileSize()+multipartMemoryLimit)

	if err := request.ParseMultipartForm(multipartMemoryLimit); err != nil {
		respond.Error(writer, request, validate.RequiredError("file", "Malformed multipart body"))
		return
	}

	file, header, err := request.FormFile("file")
	if err != nil {
		respond.Error(writer, request, validate.RequiredError("file", "A file part is required"))
		return
	}
	defer file.Close()

	document := &Document{
		Filename:    filepath.Base(header.Filename),
		Title:       request.FormValue("title"),
		Description: request.FormValue("description"),
		MimeType:    detectMimeType(header.Filename, header.Header.Get("Content-Type")),
	}

	if raw := request.FormValue("item_id"); raw != "" {
		document.ItemID = pointer.To(convert.ToInt(raw))
	}
	if principal := requestutil.Principal(request); principal != nil {
		document.UserID = &principal.UserID
	}

	if err := handler.service.Upload(request.Context(), document, file); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, document)
}

/*
GET /api/v1/document/{id}/download.

Description: Streams the stored bytes with the original filename in the
Content-Disposition header.

Response:
  - 200: binary: The file contents
  - 404: 404: ErrNotFound: Document not found
*/
func (handler *Handler) downloadDocument(writer http.ResponseWriter, request *http.Request) {
	document, reader, err := handler.service.OpenDocument(request.Context(), requestutil.IntParam(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	defer reader.Close()

	writer.Header().Set("Content-Type", document.MimeType)
	writer.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", document.Filename))

	http.ServeContent(writer, request, document.Filename, document.CreatedAt, reader)
}

/*
DELETE /api/v1/document/{id}.

Description: Deletes a document's metadata and its stored file.

Response:
  - 204: No Content: Success
  - 404: 404: ErrNotFound: Document not found
*/
func (handler *Handler) deleteDocument(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeleteDocument(request.Context(), requestutil.IntParam(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// detectMimeType prefers the client-declared type and falls back to the
// extension, then to a generic binary type.
func detectMimeType(filename, declared string) string {
	if declared != "" && declared != "application/octet-stream" {
		return declared
	}
	if byExtension := mime.TypeByExtension(filepath.Ext(filename)); byExtension != "" {
		return byExtension
	}
	return "application/octet-stream"
}
