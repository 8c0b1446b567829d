// Copyright (c) 2026 Silo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package storage

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/silo/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed location store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// # Rooms

func (repository *PostgresRepository) ListRooms(context context.Context) ([]*Room, error) {
	const query = `SELECT id, name, description FROM room ORDER BY name ASC`
	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_rooms")
	}
	defer rows.Close()

	rooms := make([]*Room, 0)
	for rows.Next() {
		room := &Room{}
		if err := rows.Scan(&room.ID, &room.Name, &room.Description); err != nil {
			return nil, dberr.Wrap(err, "scan_room")
		}
		rooms = append(rooms, room)
	}
	return rooms, nil
}

func (repository *PostgresRepository) FindRoomByID(context context.Context, id int) (*Room, error) {
	const query = `SELECT id, name, description FROM room WHERE id = $1`
	room := &Room{}
	err := repository.db.QueryRow(context, query, id).Scan(&room.ID, &room.Name, &room.Description)
	if err != nil {
		return nil, dberr.Wrap(err, "get_room_by_id")
	}
	return room, nil
}

func (repository *PostgresRepository) CreateRoom(context context.Context, room *Room) error {
	const query = `INSERT INTO room (name, description) VALUES ($1, $2) RETURNING id`
	err := repository.db.QueryRow(context, query, room.Name, room.Description).Scan(&room.ID)
	return dberr.Wrap(err, "create_room")
}

func (repository *PostgresRepository) UpdateRoom(context context.Context, room *Room) error {
	const query = `UPDATE room SET name = $2, description = $3 WHERE id = $1`
	return repository.exec(context, query, "update_room", room.ID, room.Name, room.Description)
}

func (repository *PostgresRepository) DeleteRoom(context context.Context, id int) error {
	return repository.exec(context, `DELETE FROM room WHERE id = $1`, "delete_room", id)
}

// # Pools

func (repository *PostgresRepository) ListPools(context context.Context) ([]*Pool, error) {
	const query = `SELECT id, name, description FROM pool ORDER BY name ASC`
	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_pools")
	}
	defer rows.Close()

	pools := make([]*Pool, 0)
	for rows.Next() {
		pool := &Pool{}
		if err := rows.Scan(&pool.ID, &pool.Name, &pool.Description); err != nil {
			return nil, dberr.Wrap(err, "scan_pool")
		}
		pools = append(pools, pool)
	}
	return pools, nil
}

func (repository *PostgresRepository) FindPoolByID(context context.Context, id int) (*Pool, error) {
	const query = `SELECT id, name, description FROM pool WHERE id = $1`
	pool := &Pool{}
	err := repository.db.QueryRow(context, query, id).Scan(&pool.ID, &pool.Name, &pool.Description)
	if err != nil {
		return nil, dberr.Wrap(err, "get_pool_by_id")
	}
	return pool, nil
}

func (repository *PostgresRepository) CreatePool(context context.Context, pool *Pool) error {
	const query = `INSERT INTO pool (name, description) VALUES ($1, $2) RETURNING id`
	err := repository.db.QueryRow(context, query, pool.Name, pool.Description).Scan(&pool.ID)
	return dberr.Wrap(err, "create_pool")
}

func (repository *PostgresRepository) UpdatePool(context context.Context, pool *Pool) error {
	const query = `UPDATE pool SET name = $2, description = $3 WHERE id = $1`
	return repository.exec(context, query, "update_pool", pool.ID, pool.Name, pool.Description)
}

func (repository *PostgresRepository) DeletePool(context context.Context, id int) error {
	return repository.exec(context, `DELETE FROM pool WHERE id = $1`, "delete_pool", id)
}

// # Storage Types

func (repository *PostgresRepository) ListStorageTypes(context context.Context) ([]*StorageType, error) {
	const query = `SELECT id, name FROM storage_type ORDER BY name ASC`
	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_storage_types")
	}
	defer rows.Close()

	types := make([]*StorageType, 0)
	for rows.Next() {
		storageType := &StorageType{}
		if err := rows.Scan(&storageType.ID, &storageType.Name); err != nil {
			return nil, dberr.Wrap(err, "scan_storage_type")
		}
		types = append(types, storageType)
	}
	return types, nil
}

func (repository *PostgresRepository) FindStorageTypeByID(context context.Context, id int) (*StorageType, error) {
	const query = `SELECT id, name FROM storage_type WHERE id = $1`
	storageType := &StorageType{}
	err := repository.db.QueryRow(context, query, id).Scan(&storageType.ID, &storageType.Name)
	if err != nil {
		return nil, dberr.Wrap(err, "get_storage_type_by_id")
	}
	return storageType, nil
}

func (repository *PostgresRepository) CreateStorageType(context context.Context, storageType *StorageType) error {
	const query = `INSERT INTO storage_type (name) VALUES ($1) RETURNING id`
	err := repository.db.QueryRow(context, query, storageType.Name).Scan(&storageType.ID)
	return dberr.Wrap(err, "create_storage_type")
}

func (repository *PostgresRepository) UpdateStorageType(context context.Context, storageType *StorageType) error {
	const query = `UPDATE storage_type SET name = $2 WHERE id = $1`
	return repository.exec(context, query, "update_storage_type", storageType.ID, storageType.Name)
}

func (repository *PostgresRepository) DeleteStorageType(context context.Context, id int) error {
	return repository.exec(context, `DELETE FROM storage_type WHERE id = $1`, "delete_storage_type", id)
}

// # Storage Furniture

func (repository *PostgresRepository) ListFurniture(context context.Context) ([]*StorageFurniture, error) {
	const query = `
		SELECT id, name, room_id, storage_type_id
		FROM storage_furniture
		ORDER BY name ASC
	`
	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_furniture")
	}
	defer rows.Close()

	furniture := make([]*StorageFurniture, 0)
	for rows.Next() {
		piece := &StorageFurniture{}
		if err := rows.Scan(&piece.ID, &piece.Name, &piece.RoomID, &piece.StorageTypeID); err != nil {
			return nil, dberr.Wrap(err, "scan_furniture")
		}
		furniture = append(furniture, piece)
	}
	return furniture, nil
}

func (repository *PostgresRepository) FindFurnitureByID(context context.Context, id int) (*StorageFurniture, error) {
	const query = `
		SELECT id, name, room_id, storage_type_id
		FROM storage_furniture
		WHERE id = $1
	`
	piece := &StorageFurniture{}
	err := repository.db.QueryRow(context, query, id).
		Scan(&piece.ID, &piece.Name, &piece.RoomID, &piece.StorageTypeID)
	if err != nil {
		return nil, dberr.Wrap(err, "get_furniture_by_id")
	}
	return piece, nil
}

func (repository *PostgresRepository) CreateFurniture(context context.Context, furniture *StorageFurniture) error {
	const query = `
		INSERT INTO storage_furniture (name, room_id, storage_type_id)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	err := repository.db.QueryRow(context, query,
		furniture.Name, furniture.RoomID, furniture.StorageTypeID).Scan(&furniture.ID)
	return dberr.Wrap(err, "create_furniture")
}

func (repository *PostgresRepository) UpdateFurniture(context context.Context, furniture *StorageFurniture) error {
	const query = `
		UPDATE storage_furniture
		SET name = $2, room_id = $3, storage_type_id = $4
		WHERE id = $1
	`
	return repository.exec(context, query, "update_furniture",
		furniture.ID, furniture.Name, furniture.RoomID, furniture.StorageTypeID)
}

func (repository *PostgresRepository) DeleteFurniture(context context.Context, id int) error {
	return repository.exec(context, `DELETE FROM storage_furniture WHERE id = $1`, "delete_furniture", id)
}

// # Storage Areas

func (repository *PostgresRepository) ListAreas(context context.Context) ([]*StorageArea, error) {
	const query = `SELECT id, name, description FROM storage_area ORDER BY name ASC`
	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_areas")
	}
	defer rows.Close()

	areas := make([]*StorageArea, 0)
	for rows.Next() {
		area := &StorageArea{}
		if err := rows.Scan(&area.ID, &area.Name, &area.Description); err != nil {
			return nil, dberr.Wrap(err, "scan_area")
		}
		areas = append(areas, area)
	}
	return areas, nil
}

func (repository *PostgresRepository) FindAreaByID(context context.Context, id int) (*StorageArea, error) {
	const query = `SELECT id, name, description FROM storage_area WHERE id = $1`
	area := &StorageArea{}
	err := repository.db.QueryRow(context, query, id).Scan(&area.ID, &area.Name, &area.Description)
	if err != nil {
		return nil, dberr.Wrap(err, "get_area_by_id")
	}
	return area, nil
}

func (repository *PostgresRepository) CreateArea(context context.Context, area *StorageArea) error {
	const query = `INSERT INTO storage_area (name, description) VALUES ($1, $2) RETURNING id`
	err := repository.db.QueryRow(context, query, area.Name, area.Description).Scan(&area.ID)
	return dberr.Wrap(err, "create_area")
}

func (repository *PostgresRepository) UpdateArea(context context.Context, area *StorageArea) error {
	const query = `UPDATE storage_area SET name = $2, description = $3 WHERE id = $1`
	return repository.exec(context, query, "update_area", area.ID, area.Name, area.Description)
}

func (repository *PostgresRepository) DeleteArea(context context.Context, id int) error {
	return repository.exec(context, `DELETE FROM storage_area WHERE id = $1`, "delete_area", id)
}

// exec runs a mutation and maps zero affected rows to ErrNotFound.
func (repository *PostgresRepository) exec(context context.Context, query, action string, args ...any) error {
	result, err := repository.db.Exec(context, query, args...)
	if err != nil {
		return dberr.Wrap(err, action)
	}
	if result.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
