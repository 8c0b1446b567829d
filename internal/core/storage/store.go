// Copyright (c) 2026 Silo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package storage

import "context"

// Repository defines the data access contract for the location hierarchy.
//
// Each resource follows the same shape: list ordered by name, find by
// primary key (ErrNotFound if missing), create (Conflict on duplicates),
// update, delete.
type Repository interface {
	ListRooms(context context.Context) ([]*Room, error)
	FindRoomByID(context context.Context, id int) (*Room, error)
	CreateRoom(context context.Context, room *Room) error
	UpdateRoom(context context.Context, room *Room) error
	DeleteRoom(context context.Context, id int) error

	ListPools(context context.Context) ([]*Pool, error)
	FindPoolByID(context context.Context, id int) (*Pool, error)
	CreatePool(context context.Context, pool *Pool) error
	UpdatePool(context context.Context, pool *Pool) error
	DeletePool(context context.Context, id int) error

	ListStorageTypes(context context.Context) ([]*StorageType, error)
	FindStorageTypeByID(context context.Context, id int) (*StorageType, error)
	CreateStorageType(context context.Context, storageType *StorageType) error
	UpdateStorageType(context context.Context, storageType *StorageType) error
	DeleteStorageType(context context.Context, id int) error

	ListFurniture(context context.Context) ([]*StorageFurniture, error)
	FindFurnitureByID(context context.Context, id int) (*StorageFurniture, error)
	CreateFurniture(context context.Context, furniture *StorageFurniture) error
	UpdateFurniture(context context.Context, furniture *StorageFurniture) error
	DeleteFurniture(context context.Context, id int) error

	ListAreas(context context.Context) ([]*StorageArea, error)
	FindAreaByID(context context.Context, id int) (*StorageArea, error)
	CreateArea(context context.Context, area *StorageArea) error
	UpdateArea(context context.Context, area *StorageArea) error
	DeleteArea(context context.Context, id int) error
}
