// Copyright (c) 2026 Silo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package item

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/silo/internal/platform/request"
	"github.com/taibuivan/silo/internal/platform/respond"
	"github.com/taibuivan/silo/pkg/convert"
	"github.com/taibuivan/silo/pkg/pagination"
	"github.com/taibuivan/silo/pkg/pointer"
	"github.com/taibuivan/silo/pkg/query"
)

// # Handler Implementation

// Handler implements the HTTP layer for items and item types.
type Handler struct {
	service *Service
}

// NewHandler constructs a new item [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] with the item endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listItems)
	router.Post("/", handler.createItem)

	router.Route("/{id}", func(subRouter chi.Router) {
		subRouter.Get("/", handler.getItem)
		subRouter.Put("/", handler.updateItem)
		subRouter.Delete("/", handler.deleteItem)
		subRouter.Post("/tags/{tagID}", handler.attachTag)
		subRouter.Delete("/tags/{tagID}", handler.detachTag)
	})

	return router
}

// TypeRoutes returns a [chi.Router] with the item type endpoints,
// mounted separately under /item_type.
func (handler *Handler) TypeRoutes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listTypes)
	router.Post("/", handler.createType)
	router.Get("/{id}", handler.getType)
	router.Put("/{id}", handler.updateType)
	router.Delete("/{id}", handler.deleteType)

	return router
}

// # Item Endpoints

/*
GET /api/v1/item.

Description: Retrieves a paginated list of items. Supports searching by
name or identifier and filtering by type, pool, and tag.

Request:
  - q: string (Matches name, silo ID, serial number, inventory number)
  - type_id: int
  - pool_id: int
  - tag_id: int (repeatable; items must carry every listed tag)
  - include_deleted: bool
  - limit: int
  - page: int

Response:
  - 200: []Item: Paginated list
*/
func (handler *Handler) listItems(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)
	queryParams := request.URL.Query()

	filter := Filter{
		Query:          queryParams.Get("q"),
		IncludeDeleted: queryParams.Get("include_deleted") == "true",
	}

	if raw := queryParams.Get("type_id"); raw != "" {
		filter.TypeID = pointer.To(convert.ToInt(raw))
	}
	if raw := queryParams.Get("pool_id"); raw != "" {
		filter.PoolID = pointer.To(convert.ToInt(raw))
	}
	// tag_id may repeat; an item must carry every listed tag to match.
	filter.TagIDs = query.IntSlice(queryParams["tag_id"])

	items, total, err := handler.service.ListItems(request.Context(), filter,
		paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, items,
		pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
GET /api/v1/item/{id}.

Description: Retrieves a single item with its tags. Soft-deleted items
are still readable.

Request:
  - id: int (Item primary key)

Response:
  - 200: Item: Success
  - 404: 404: ErrNotFound: Item not found
*/
func (handler *Handler) getItem(writer http.ResponseWriter, request *http.Request) {
	item, err := handler.service.GetItem(request.Context(), requestutil.IntParam(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, item)
}

/*
POST /api/v1/item.

Description: Creates an item. The silo ID is generated server-side from
the referenced type and pool names plus the next sequence number.

Request (Body):
  - { "name": "string", "type_id": int, "pool_id": int, "quantity": int, ... }

Response:
  - 201: Item: Created object including the generated silo_id
  - 400: 400: ErrInvalidJSON/Validation: Invalid input data
  - 422: 422: Unprocessable: Referenced type or pool does not exist
*/
func (handler *Handler) createItem(writer http.ResponseWriter, request *http.Request) {
	var input Item
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.CreateItem(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, input)
}

/*
PUT /api/v1/item/{id}.

Description: Replaces an item's mutable fields. Type, pool, and silo ID
cannot change.

Request:
  - id: int (Item primary key)
  - body: Item JSON

Response:
  - 204: No Content: Success
  - 400: 400: ErrInvalidJSON/Validation: Invalid input data
  - 404: 404: ErrNotFound: Item not found
*/
func (handler *Handler) updateItem(writer http.ResponseWriter, request *http.Request) {
	var input Item
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	input.ID = requestutil.IntParam(request, "id")

	if err := handler.service.UpdateItem(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
DELETE /api/v1/item/{id}.

Description: Soft-deletes an item. The silo ID stays reserved.

Request:
  - id: int (Item primary key)

Response:
  - 204: No Content: Success
  - 404: 404: ErrNotFound: Item not found or already deleted
*/
func (handler *Handler) deleteItem(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeleteItem(request.Context(), requestutil.IntParam(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// # Tag Endpoints

/*
POST /api/v1/item/{id}/tags/{tagID}.

Description: Attaches a tag to an item and returns the updated item.

Response:
  - 200: Item: Updated item with the new tag
  - 404: 404: ErrNotFound: Item or Tag not found
  - 409: 409: Conflict: Item already has this tag
*/
func (handler *Handler) attachTag(writer http.ResponseWriter, request *http.Request) {
	itemID := requestutil.IntParam(request, "id")
	tagID := requestutil.IntParam(request, "tagID")

	if err := handler.service.AttachTag(request.Context(), itemID, tagID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	item, err := handler.service.GetItem(request.Context(), itemID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, item)
}

/*
DELETE /api/v1/item/{id}/tags/{tagID}.

Description: Detaches a tag from an item.

Response:
  - 204: No Content: Success
  - 404: 404: ErrNotFound: Link not found
*/
func (handler *Handler) detachTag(writer http.ResponseWriter, request *http.Request) {
	itemID := requestutil.IntParam(request, "id")
	tagID := requestutil.IntParam(request, "tagID")

	if err := handler.service.DetachTag(request.Context(), itemID, tagID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// # Item Type Endpoints

/*
GET /api/v1/item_type.

Description: Lists all item types.

Response:
  - 200: []ItemType: Success
*/
func (handler *Handler) listTypes(writer http.ResponseWriter, request *http.Request) {
	types, err := handler.service.ListTypes(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, types)
}

/*
GET /api/v1/item_type/{id}.

Description: Retrieves a single item type.

Response:
  - 200: ItemType: Success
  - 404: 404: ErrNotFound: Item type not found
*/
func (handler *Handler) getType(writer http.ResponseWriter, request *http.Request) {
	itemType, err := handler.service.GetType(request.Context(), requestutil.IntParam(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, itemType)
}

/*
POST /api/v1/item_type.

Description: Creates an item type. The name must contain at least one
alphanumeric character because it becomes part of the silo ID label.

Response:
  - 201: ItemType: Created object
  - 400: 400: ErrInvalidJSON/Validation: Invalid input data
  - 409: 409: Conflict: Name already exists
*/
func (handler *Handler) createType(writer http.ResponseWriter, request *http.Request) {
	var input ItemType
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.CreateType(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, input)
}

/*
PUT /api/v1/item_type/{id}.

Description: Replaces an item type's name and description.

Response:
  - 204: No Content: Success
  - 400: 400: ErrInvalidJSON/Validation: Invalid input data
  - 404: 404: ErrNotFound: Item type not found
*/
func (handler *Handler) updateType(writer http.ResponseWriter, request *http.Request) {
	var input ItemType
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	input.ID = requestutil.IntParam(request, "id")

	if err := handler.service.UpdateType(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
DELETE /api/v1/item_type/{id}.

Description: Deletes an item type that no items reference.

Response:
  - 204: No Content: Success
  - 404: 404: ErrNotFound: Item type not found
  - 422: 422: Unprocessable: Items still reference this type
*/
func (handler *Handler) deleteType(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeleteType(request.Context(), requestutil.IntParam(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
