// Copyright (c) 2026 Silo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package storage

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/silo/internal/platform/request"
	"github.com/taibuivan/silo/internal/platform/respond"
)

// Handler implements the HTTP layer for the location hierarchy.
//
// Each resource gets its own router so main.go can mount them at their
// classic paths (/room, /pool, /storage_type, /storage_furniture,
// /storage_area). The handlers are uniform CRUD: list and get respond
// 200, create 201, update and delete 204.
type Handler struct {
	service *Service
}

// NewHandler constructs a new storage [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// # Rooms

func (handler *Handler) RoomRoutes() chi.Router {
	router := chi.NewRouter()
	router.Get("/", handler.listRooms)
	router.Post("/", handler.createRoom)
	router.Get("/{id}", handler.getRoom)
	router.Put("/{id}", handler.updateRoom)
	router.Delete("/{id}", handler.deleteRoom)
	return router
}

func (handler *Handler) listRooms(writer http.ResponseWriter, request *http.Request) {
	rooms, err := handler.service.ListRooms(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, rooms)
}

func (handler *Handler) getRoom(writer http.ResponseWriter, request *http.Request) {
	room, err := handler.service.GetRoom(request.Context(), requestutil.IntParam(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, room)
}

func (handler *Handler) createRoom(writer http.ResponseWriter, request *http.Request) {
	var input Room
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	if err := handler.service.CreateRoom(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

func (handler *Handler) updateRoom(writer http.ResponseWriter, request *http.Request) {
	var input Room
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	input.ID = requestutil.IntParam(request, "id")
	if err := handler.service.UpdateRoom(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) deleteRoom(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeleteRoom(request.Context(), requestutil.IntParam(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// # Pools

func (handler *Handler) PoolRoutes() chi.Router {
	router := chi.NewRouter()
	router.Get("/", handler.listPools)
	router.Post("/", handler.createPool)
	router.Get("/{id}", handler.getPool)
	router.Put("/{id}", handler.updatePool)
	router.Delete("/{id}", handler.deletePool)
	return router
}

func (handler *Handler) listPools(writer http.ResponseWriter, request *http.Request) {
	pools, err := handler.service.ListPools(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, pools)
}

func (handler *Handler) getPool(writer http.ResponseWriter, request *http.Request) {
	pool, err := handler.service.GetPool(request.Context(), requestutil.IntParam(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, pool)
}

func (handler *Handler) createPool(writer http.ResponseWriter, request *http.Request) {
	var input Pool
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	if err := handler.service.CreatePool(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

func (handler *Handler) updatePool(writer http.ResponseWriter, request *http.Request) {
	var input Pool
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	input.ID = requestutil.IntParam(request, "id")
	if err := handler.service.UpdatePool(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) deletePool(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeletePool(request.Context(), requestutil.IntParam(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// # Storage Types

func (handler *Handler) StorageTypeRoutes() chi.Router {
	router := chi.NewRouter()
	router.Get("/", handler.listStorageTypes)
	router.Post("/", handler.createStorageType)
	router.Get("/{id}", handler.getStorageType)
	router.Put("/{id}", handler.updateStorageType)
	router.Delete("/{id}", handler.deleteStorageType)
	return router
}

func (handler *Handler) listStorageTypes(writer http.ResponseWriter, request *http.Request) {
	types, err := handler.service.ListStorageTypes(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, types)
}

func (handler *Handler) getStorageType(writer http.ResponseWriter, request *http.Request) {
	storageType, err := handler.service.GetStorageType(request.Context(), requestutil.IntParam(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, storageType)
}

func (handler *Handler) createStorageType(writer http.ResponseWriter, request *http.Request) {
	var input StorageType
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	if err := handler.service.CreateStorageType(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

func (handler *Handler) updateStorageType(writer http.ResponseWriter, request *http.Request) {
	var input StorageType
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	input.ID = requestutil.IntParam(request, "id")
	if err := handler.service.UpdateStorageType(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) deleteStorageType(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeleteStorageType(request.Context(), requestutil.IntParam(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// # Storage Furniture

func (handler *Handler) FurnitureRoutes() chi.Router {
	router := chi.NewRouter()
	router.Get("/", handler.listFurniture)
	router.Post("/", handler.createFurniture)
	router.Get("/{id}", handler.getFurniture)
	router.Put("/{id}", handler.updateFurniture)
	router.Delete("/{id}", handler.deleteFurniture)
	return router
}

func (handler *Handler) listFurniture(writer http.ResponseWriter, request *http.Request) {
	furniture, err := handler.service.ListFurniture(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, furniture)
}

func (handler *Handler) getFurniture(writer http.ResponseWriter, request *http.Request) {
	piece, err := handler.service.GetFurniture(request.Context(), requestutil.IntParam(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, piece)
}

func (handler *Handler) createFurniture(writer http.ResponseWriter, request *http.Request) {
	var input StorageFurniture
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	if err := handler.service.CreateFurniture(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

func (handler *Handler) updateFurniture(writer http.ResponseWriter, request *http.Request) {
	var input StorageFurniture
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	input.ID = requestutil.IntParam(request, "id")
	if err := handler.service.UpdateFurniture(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) deleteFurniture(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeleteFurniture(request.Context(), requestutil.IntParam(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// # Storage Areas

func (handler *Handler) AreaRoutes() chi.Router {
	router := chi.NewRouter()
	router.Get("/", handler.listAreas)
	router.Post("/", handler.createArea)
	router.Get("/{id}", handler.getArea)
	router.Put("/{id}", handler.updateArea)
	router.Delete("/{id}", handler.deleteArea)
	return router
}

func (handler *Handler) listAreas(writer http.ResponseWriter, request *http.Request) {
	areas, err := handler.service.ListAreas(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, areas)
}

func (handler *Handler) getArea(writer http.ResponseWriter, request *http.Request) {
	area, err := handler.service.GetArea(request.Context(), requestutil.IntParam(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, area)
}

func (handler *Handler) createArea(writer http.ResponseWriter, request *http.Request) {
	var input StorageArea
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	if err := handler.service.CreateArea(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

func (handler *Handler) updateArea(writer http.ResponseWriter, request *http.Request) {
	var input StorageArea
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	input.ID = requestutil.IntParam(request, "id")
	if err := handler.service.UpdateArea(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) deleteArea(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeleteArea(request.Context(), requestutil.IntParam(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
