// Copyright (c) 2026 Silo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package storage

import (
	"context"
	"log/slog"
	"strings"

	"github.com/taibuivan/silo/internal/platform/apperr"
	"github.com/taibuivan/silo/internal/platform/validate"
	"github.com/taibuivan/silo/pkg/slug"
)

// # Service Layer

// Service orchestrates business rules for the location hierarchy.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a new storage [Service].
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

/*
PoolName resolves a pool's name by ID.

The item service calls this when minting silo IDs; it lives here so the
item package never touches the location schema directly.

Returns:
  - string: The pool name
  - error: ErrNotFound if missing
*/
func (service *Service) PoolName(context context.Context, id int) (string, error) {
	pool, err := service.repo.FindPoolByID(context, id)
	if err != nil {
		return "", err
	}
	return pool.Name, nil
}

// # Rooms

func (service *Service) ListRooms(context context.Context) ([]*Room, error) {
	return service.repo.ListRooms(context)
}

func (service *Service) GetRoom(context context.Context, id int) (*Room, error) {
	return service.repo.FindRoomByID(context, id)
}

func (service *Service) CreateRoom(context context.Context, room *Room) error {
	if err := requireName(room.Name); err != nil {
		return err
	}
	if err := service.repo.CreateRoom(context, room); err != nil {
		return err
	}
	service.logger.Info("room_created", slog.Int("room_id", room.ID), slog.String("name", room.Name))
	return nil
}

func (service *Service) UpdateRoom(context context.Context, room *Room) error {
	if err := requireName(room.Name); err != nil {
		return err
	}
	return service.repo.UpdateRoom(context, room)
}

func (service *Service) DeleteRoom(context context.Context, id int) error {
	return service.repo.DeleteRoom(context, id)
}

// # Pools

func (service *Service) ListPools(context context.Context) ([]*Pool, error) {
	return service.repo.ListPools(context)
}

func (service *Service) GetPool(context context.Context, id int) (*Pool, error) {
	return service.repo.FindPoolByID(context, id)
}

/*
CreatePool validates and persists a pool.

Like item type names, a pool name must survive slugging because it becomes
part of every silo ID minted for the pool.
*/
func (service *Service) CreatePool(context context.Context, pool *Pool) error {
	if err := requireLabelName(pool.Name); err != nil {
		return err
	}
	if err := service.repo.CreatePool(context, pool); err != nil {
		return err
	}
	service.logger.Info("pool_created", slog.Int("pool_id", pool.ID), slog.String("name", pool.Name))
	return nil
}

// UpdatePool replaces a pool's name and description. Existing silo IDs
// keep the label they were minted with.
func (service *Service) UpdatePool(context context.Context, pool *Pool) error {
	if err := requireLabelName(pool.Name); err != nil {
		return err
	}
	return service.repo.UpdatePool(context, pool)
}

// DeletePool removes a pool. Items referencing it block the delete
// through the foreign key, surfaced as Unprocessable.
func (service *Service) DeletePool(context context.Context, id int) error {
	return service.repo.DeletePool(context, id)
}

// # Storage Types

func (service *Service) ListStorageTypes(context context.Context) ([]*StorageType, error) {
	return service.repo.ListStorageTypes(context)
}

func (service *Service) GetStorageType(context context.Context, id int) (*StorageType, error) {
	return service.repo.FindStorageTypeByID(context, id)
}

func (service *Service) CreateStorageType(context context.Context, storageType *StorageType) error {
	if err := requireName(storageType.Name); err != nil {
		return err
	}
	return service.repo.CreateStorageType(context, storageType)
}

func (service *Service) UpdateStorageType(context context.Context, storageType *StorageType) error {
	if err := requireName(storageType.Name); err != nil {
		return err
	}
	return service.repo.UpdateStorageType(context, storageType)
}

func (service *Service) DeleteStorageType(context context.Context, id int) error {
	return service.repo.DeleteStorageType(context, id)
}

// # Storage Furniture

func (service *Service) ListFurniture(context context.Context) ([]*StorageFurniture, error) {
	return service.repo.ListFurniture(context)
}

func (service *Service) GetFurniture(context context.Context, id int) (*StorageFurniture, error) {
	return service.repo.FindFurnitureByID(context, id)
}

/*
CreateFurniture validates the references and persists a furniture piece.

Returns:
  - error: Validation failures, Unprocessable when the room or storage
    type is missing, Conflict on a duplicate (name, room, type) triple
*/
func (service *Service) CreateFurniture(context context.Context, furniture *StorageFurniture) error {
	if err := service.validateFurniture(context, furniture); err != nil {
		return err
	}
	return service.repo.CreateFurniture(context, furniture)
}

func (service *Service) UpdateFurniture(context context.Context, furniture *StorageFurniture) error {
	if err := service.validateFurniture(context, furniture); err != nil {
		return err
	}
	return service.repo.UpdateFurniture(context, furniture)
}

func (service *Service) DeleteFurniture(context context.Context, id int) error {
	return service.repo.DeleteFurniture(context, id)
}

// # Storage Areas

func (service *Service) ListAreas(context context.Context) ([]*StorageArea, error) {
	return service.repo.ListAreas(context)
}

func (service *Service) GetArea(context context.Context, id int) (*StorageArea, error) {
	return service.repo.FindAreaByID(context, id)
}

func (service *Service) CreateArea(context context.Context, area *StorageArea) error {
	if err := requireName(area.Name); err != nil {
		return err
	}
	return service.repo.CreateArea(context, area)
}

func (service *Service) UpdateArea(context context.Context, area *StorageArea) error {
	if err := requireName(area.Name); err != nil {
		return err
	}
	return service.repo.UpdateArea(context, area)
}

func (service *Service) DeleteArea(context context.Context, id int) error {
	return service.repo.DeleteArea(context, id)
}

// # Helpers

func (service *Service) validateFurniture(context context.Context, furniture *StorageFurniture) error {
	validator := &validate.Validator{}
	validator.Required("name", furniture.Name).MaxLen("name", furniture.Name, 100)
	validator.Positive("room_id", furniture.RoomID)
	validator.Positive("storage_type_id", furniture.StorageTypeID)
	if err := validator.Err(); err != nil {
		return err
	}

	if _, err := service.repo.FindRoomByID(context, furniture.RoomID); err != nil {
		return apperr.Unprocessable("Room does not exist")
	}
	if _, err := service.repo.FindStorageTypeByID(context, furniture.StorageTypeID); err != nil {
		return apperr.Unprocessable("Storage type does not exist")
	}

	return nil
}

func requireName(name string) error {
	validator := &validate.Validator{}
	validator.Required("name", name).MaxLen("name", name, 100)
	return validator.Err()
}

// requireLabelName additionally demands the name survive slugging.
func requireLabelName(name string) error {
	validator := &validate.Validator{}
	validator.Required("name", name).MaxLen("name", name, 100)
	if strings.TrimSpace(name) != "" {
		validator.Custom("name", slug.Label(name) == "",
			"Must contain at least one alphanumeric character")
	}
	return validator.Err()
}
