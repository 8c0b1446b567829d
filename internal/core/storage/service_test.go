// Copyright (c) 2026 Silo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package storage

import (
	"context"
	"log/slog"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/silo/internal/platform/apperr"
	"github.com/taibuivan/silo/internal/platform/dberr"
)

// fakeRepository covers only the lookups the service layer consults;
// everything else records the call and succeeds.
type fakeRepository struct {
	pools map[int]*Pool
	rooms map[int]*Room
	types map[int]*StorageType

	createdFurniture []*StorageFurniture
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		pools: make(map[int]*Pool),
		rooms: make(map[int]*Room),
		types: make(map[int]*StorageType),
	}
}

func (f *fakeRepository) ListRooms(context.Context) ([]*Room, error) { return nil, nil }

func (f *fakeRepository) FindRoomByID(_ context.Context, id int) (*Room, error) {
	room, ok := f.rooms[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	return room, nil
}

func (f *fakeRepository) CreateRoom(_ context.Context, room *Room) error { return nil }
func (f *fakeRepository) UpdateRoom(_ context.Context, room *Room) error { return nil }
func (f *fakeRepository) DeleteRoom(context.Context, int) error          { return nil }

func (f *fakeRepository) ListPools(context.Context) ([]*Pool, error) { return nil, nil }

func (f *fakeRepository) FindPoolByID(_ context.Context, id int) (*Pool, error) {
	pool, ok := f.pools[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	return pool, nil
}

func (f *fakeRepository) CreatePool(_ context.Context, pool *Pool) error { return nil }
func (f *fakeRepository) UpdatePool(_ context.Context, pool *Pool) error { return nil }
func (f *fakeRepository) DeletePool(context.Context, int) error          { return nil }

func (f *fakeRepository) ListStorageTypes(context.Context) ([]*StorageType, error) { return nil, nil }

func (f *fakeRepository) FindStorageTypeByID(_ context.Context, id int) (*StorageType, error) {
	storageType, ok := f.types[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	return storageType, nil
}

func (f *fakeRepository) CreateStorageType(_ context.Context, t *StorageType) error { return nil }
func (f *fakeRepository) UpdateStorageType(_ context.Context, t *StorageType) error { return nil }
func (f *fakeRepository) DeleteStorageType(context.Context, int) error              { return nil }

func (f *fakeRepository) ListFurniture(context.Context) ([]*StorageFurniture, error) {
	return nil, nil
}

func (f *fakeRepository) FindFurnitureByID(context.Context, int) (*StorageFurniture, error) {
	return nil, dberr.ErrNotFound
}

func (f *fakeRepository) CreateFurniture(_ context.Context, furniture *StorageFurniture) error {
	f.createdFurniture = append(f.createdFurniture, furniture)
	return nil
}

func (f *fakeRepository) UpdateFurniture(_ context.Context, furniture *StorageFurniture) error {
	return nil
}

func (f *fakeRepository) DeleteFurniture(context.Context, int) error { return nil }

func (f *fakeRepository) ListAreas(context.Context) ([]*StorageArea, error) { return nil, nil }

func (f *fakeRepository) FindAreaByID(context.Context, int) (*StorageArea, error) {
	return nil, dberr.ErrNotFound
}

func (f *fakeRepository) CreateArea(_ context.Context, area *StorageArea) error { return nil }
func (f *fakeRepository) UpdateArea(_ context.Context, area *StorageArea) error { return nil }
func (f *fakeRepository) DeleteArea(context.Context, int) error                 { return nil }

func newTestService() (*Service, *fakeRepository) {
	repo := newFakeRepository()
	repo.rooms[1] = &Room{ID: 1, Name: "Lab 2"}
	repo.types[1] = &StorageType{ID: 1, Name: "Shelf"}
	repo.pools[1] = &Pool{ID: 1, Name: "Loan"}

	return NewService(repo, slog.New(slog.DiscardHandler)), repo
}

/*
TestService_PoolName covers the seam the item service uses for silo ID
generation.
*/
func TestService_PoolName(t *testing.T) {
	service, _ := newTestService()

	name, err := service.PoolName(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Loan", name)

	_, err = service.PoolName(context.Background(), 99)
	assert.Error(t, err)
}

/*
TestService_CreatePool_LabelRule pins that pool names must yield a
printable silo ID label.
*/
func TestService_CreatePool_LabelRule(t *testing.T) {
	service, _ := newTestService()

	assert.NoError(t, service.CreatePool(context.Background(), &Pool{Name: "Leihgeräte"}))

	err := service.CreatePool(context.Background(), &Pool{Name: "***"})
	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, http.StatusBadRequest, appError.HTTPStatus)
}

/*
TestService_CreateFurniture_References checks both referenced resources
must exist.
*/
func TestService_CreateFurniture_References(t *testing.T) {
	tests := []struct {
		name       string
		furniture  *StorageFurniture
		wantStatus int
	}{
		{"valid", &StorageFurniture{Name: "Shelf A", RoomID: 1, StorageTypeID: 1}, 0},
		{"missing_name", &StorageFurniture{RoomID: 1, StorageTypeID: 1}, http.StatusBadRequest},
		{"unknown_room", &StorageFurniture{Name: "Shelf A", RoomID: 9, StorageTypeID: 1}, http.StatusUnprocessableEntity},
		{"unknown_type", &StorageFurniture{Name: "Shelf A", RoomID: 1, StorageTypeID: 9}, http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, repo := newTestService()
			err := service.CreateFurniture(context.Background(), tt.furniture)

			if tt.wantStatus == 0 {
				assert.NoError(t, err)
				assert.Len(t, repo.createdFurniture, 1)
				return
			}

			appError := apperr.As(err)
			require.NotNil(t, appError)
			assert.Equal(t, tt.wantStatus, appError.HTTPStatus)
			assert.Empty(t, repo.createdFurniture)
		})
	}
}
