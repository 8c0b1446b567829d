// Copyright (c) 2026 Silo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package user

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/silo/internal/platform/request"
	"github.com/taibuivan/silo/internal/platform/respond"
)

// # Handler Implementation

// Handler implements the HTTP layer for account management.
type Handler struct {
	service *Service
}

// NewHandler constructs a new user [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] with the user endpoints.
//
// The "myinfo" route is the one endpoint the default role can reach; the
// rest effectively require the admin wildcard.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listUsers)
	router.Post("/", handler.createUser)
	router.Get("/myinfo", handler.myInfo)

	router.Route("/{id}", func(subRouter chi.Router) {
		subRouter.Get("/", handler.getUser)
		subRouter.Put("/", handler.updateUser)
		subRouter.Delete("/", handler.deleteUser)
		subRouter.Post("/roles/{roleID}", handler.assignRole)
	})

	return router
}

// # User Endpoints

/*
GET /api/v1/user.

Description: Lists all accounts with their roles.

Response:
  - 200: []User: Success
*/
func (handler *Handler) listUsers(writer http.ResponseWriter, request *http.Request) {
	users, err := handler.service.ListUsers(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, users)
}

/*
GET /api/v1/user/myinfo.

Description: Returns the authenticated caller's own account, roles
included. This is the single endpoint granted to the default role.

Response:
  - 200: User: Success
  - 401: 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) myInfo(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	account, err := handler.service.GetUser(request.Context(), principal.UserID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, account)
}

/*
GET /api/v1/user/{id}.

Description: Retrieves a single account.

Request:
  - id: int (User primary key)

Response:
  - 200: User: Success
  - 404: 404: ErrNotFound: User not found
*/
func (handler *Handler) getUser(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.IntParam(request, "id")

	account, err := handler.service.GetUser(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, account)
}

/*
POST /api/v1/user.

Description: Creates an account ahead of its first directory login, e.g.
to pre-assign roles. The directory still owns the password.

Request (Body):
  - { "username": "string", "email": "string", "full_name": "string", "is_active": bool }

Response:
  - 201: User: Created object
  - 400: 400: ErrInvalidJSON/Validation: Invalid input data
  - 409: 409: Conflict: Username already exists
*/
func (handler *Handler) createUser(writer http.ResponseWriter, request *http.Request) {
	var input User
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.CreateUser(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, input)
}

/*
PUT /api/v1/user/{id}.

Description: Replaces an account's email, full name, and active flag.
The username is immutable.

Request:
  - id: int (User primary key)
  - body: User JSON

Response:
  - 204: No Content: Success
  - 400: 400: ErrInvalidJSON/Validation: Invalid input data
  - 404: 404: ErrNotFound: User not found
*/
func (handler *Handler) updateUser(writer http.ResponseWriter, request *http.Request) {
	var input User
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	input.ID = requestutil.IntParam(request, "id")

	if err := handler.service.UpdateUser(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
DELETE /api/v1/user/{id}.

Description: Deletes an account and its role assignments.

Request:
  - id: int (User primary key)

Response:
  - 204: No Content: Success
  - 404: 404: ErrNotFound: User not found
*/
func (handler *Handler) deleteUser(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.IntParam(request, "id")

	if err := handler.service.DeleteUser(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
POST /api/v1/user/{id}/roles/{roleID}.

Description: Grants a role to an account and returns the updated account.

Request:
  - id: int (User primary key)
  - roleID: int (Role primary key)

Response:
  - 200: User: Updated account with the new role
  - 404: 404: ErrNotFound: User or Role not found
  - 409: 409: Conflict: User already has this role
*/
func (handler *Handler) assignRole(writer http.ResponseWriter, request *http.Request) {
	userID := requestutil.IntParam(request, "id")
	roleID := requestutil.IntParam(request, "roleID")

	if err := handler.service.AssignRole(request.Context(), userID, roleID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	account, err := handler.service.GetUser(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, account)
}
