// Copyright (c) 2026 Silo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package role

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/silo/internal/platform/request"
	"github.com/taibuivan/silo/internal/platform/respond"
)

// # Handler Implementation

// Handler implements the HTTP layer for role administration.
type Handler struct {
	service *Service
}

// NewHandler constructs a new role [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] with the role endpoints.
//
// All routes sit behind the authentication middleware; in practice only
// the admin role's wildcard grant reaches them.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listRoles)
	router.Post("/", handler.createRole)

	router.Route("/{id}", func(subRouter chi.Router) {
		subRouter.Get("/", handler.getRole)
		subRouter.Put("/", handler.updateRole)
		subRouter.Delete("/", handler.deleteRole)
	})

	return router
}

// # Role Endpoints

/*
GET /api/v1/role.

Description: Lists all roles with their permission maps.

Response:
  - 200: []Role: Success
*/
func (handler *Handler) listRoles(writer http.ResponseWriter, request *http.Request) {
	roles, err := handler.service.ListRoles(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, roles)
}

/*
GET /api/v1/role/{id}.

Description: Retrieves a single role.

Request:
  - id: int (Role primary key)

Response:
  - 200: Role: Success
  - 404: 404: ErrNotFound: Role not found
*/
func (handler *Handler) getRole(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.IntParam(request, "id")

	role, err := handler.service.GetRole(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, role)
}

/*
POST /api/v1/role.

Description: Creates a new role from a name and permission map.

Request (Body):
  - { "name": "string", "permissions": { "pattern": ["GET", ...] } }

Response:
  - 201: Role: Created object
  - 400: 400: ErrInvalidJSON/Validation: Invalid input data
  - 409: 409: Conflict: Role name already exists
*/
func (handler *Handler) createRole(writer http.ResponseWriter, request *http.Request) {
	var input Role
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.CreateRole(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, input)
}

/*
PUT /api/v1/role/{id}.

Description: Replaces a role's name and permission map.

Request:
  - id: int (Role primary key)
  - body: Role JSON

Response:
  - 204: No Content: Success
  - 400: 400: ErrInvalidJSON/Validation: Invalid input data
  - 404: 404: ErrNotFound: Role not found
*/
func (handler *Handler) updateRole(writer http.ResponseWriter, request *http.Request) {
	var input Role
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	input.ID = requestutil.IntParam(request, "id")

	if err := handler.service.UpdateRole(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
DELETE /api/v1/role/{id}.

Description: Deletes a role. Assignments to users are removed by cascade.

Request:
  - id: int (Role primary key)

Response:
  - 204: No Content: Success
  - 404: 404: ErrNotFound: Role not found
*/
func (handler *Handler) deleteRole(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.IntParam(request, "id")

	if err := handler.service.DeleteRole(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
