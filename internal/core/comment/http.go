// Copyright (c) 2026 Silo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/silo/internal/platform/request"
	"github.com/taibuivan/silo/internal/platform/respond"
	"github.com/taibuivan/silo/internal/platform/validate"
	"github.com/taibuivan/silo/pkg/convert"
)

// Handler implements the HTTP layer for item comments.
type Handler struct {
	service *Service
}

// NewHandler constructs a new comment [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] with the comment endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listComments)
	router.Post("/", handler.createComment)
	router.Delete("/{id}", handler.deleteComment)

	return router
}

/*
GET /api/v1/comment?item_id={itemID}.

Description: Lists an item's comments, oldest first.

Request:
  - item_id: int (required)

Response:
  - 200: []Comment: Success
  - 400: 400: Validation: item_id missing
*/
func (handler *Handler) listComments(writer http.ResponseWriter, request *http.Request) {
	itemID := convert.ToInt(request.URL.Query().Get("item_id"))
	if itemID <= 0 {
		respond.Error(writer, request, validate.RequiredError("item_id", "This query parameter is required"))
		return
	}

	comments, err := handler.service.ListByItem(request.Context(), itemID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, comments)
}

/*
POST /api/v1/comment.

Description: Creates a comment on an item. The author is the
authenticated caller.

Request (Body):
  - { "comment": "string", "item_id": int }

Response:
  - 201: Comment: Created object
  - 400: 400: ErrInvalidJSON/Validation: Invalid input data
  - 422: 422: Unprocessable: Item does not exist
*/
func (handler *Handler) createComment(writer http.ResponseWriter, request *http.Request) {
	var input Comment
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// The author always comes from the session, never from the payload.
	if principal := requestutil.Principal(request); principal != nil {
		input.UserID = &principal.UserID
		input.Username = &principal.Username
	} else {
		input.UserID = nil
		input.Username = nil
	}

	if err := handler.service.CreateComment(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, input)
}

/*
DELETE /api/v1/comment/{id}.

Description: Deletes a comment.

Response:
  - 204: No Content: Success
  - 404: 404: ErrNotFound: Comment not found
*/
func (handler *Handler) deleteComment(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeleteComment(request.Context(), requestutil.IntParam(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
