// Copyright (c) 2026 Silo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package item

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/silo/internal/core/tag"
	"github.com/taibuivan/silo/internal/platform/apperr"
	"github.com/taibuivan/silo/internal/platform/dberr"
)

// # Test Doubles

// fakeRepository mirrors the store's sequence semantics in memory: the next
// sequence number per (type, pool) is max+1, and soft-deleted items keep
// their number.
type fakeRepository struct {
	items  map[int]*Item
	types  map[int]*ItemType
	links  map[int][]int
	nextID int
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		items:  make(map[int]*Item),
		types:  make(map[int]*ItemType),
		links:  make(map[int][]int),
		nextID: 1,
	}
}

func (f *fakeRepository) List(_ context.Context, filter Filter, limit, offset int) ([]*Item, int, error) {
	matches := make([]*Item, 0)
	for _, item := range f.items {
		if item.Deleted && !filter.IncludeDeleted {
			continue
		}
		matches = append(matches, item)
	}
	return matches, len(matches), nil
}

func (f *fakeRepository) FindByID(_ context.Context, id int) (*Item, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	hydrated := *item
	hydrated.Tags = nil
	for _, tagID := range f.links[id] {
		hydrated.Tags = append(hydrated.Tags, tag.Tag{ID: tagID})
	}
	return &hydrated, nil
}

func (f *fakeRepository) Create(_ context.Context, item *Item, labelPrefix string) error {
	sequence := 0
	for _, existing := range f.items {
		if existing.TypeID == item.TypeID && existing.PoolID == item.PoolID && existing.SequenceNum > sequence {
			sequence = existing.SequenceNum
		}
	}
	item.SequenceNum = sequence + 1
	item.SiloID = fmt.Sprintf("%s-%04d", labelPrefix, item.SequenceNum)
	item.ID = f.nextID
	item.CreatedAt = time.Now()
	f.nextID++
	f.items[item.ID] = item
	return nil
}

func (f *fakeRepository) Update(_ context.Context, item *Item) error {
	if _, ok := f.items[item.ID]; !ok {
		return dberr.ErrNotFound
	}
	f.items[item.ID] = item
	return nil
}

func (f *fakeRepository) SoftDelete(_ context.Context, id int) error {
	item, ok := f.items[id]
	if !ok || item.Deleted {
		return dberr.ErrNotFound
	}
	item.Deleted = true
	return nil
}

func (f *fakeRepository) AttachTag(_ context.Context, itemID, tagID int) error {
	f.links[itemID] = append(f.links[itemID], tagID)
	return nil
}

func (f *fakeRepository) DetachTag(_ context.Context, itemID, tagID int) error {
	for i, linked := range f.links[itemID] {
		if linked == tagID {
			f.links[itemID] = append(f.links[itemID][:i], f.links[itemID][i+1:]...)
			return nil
		}
	}
	return dberr.ErrNotFound
}

func (f *fakeRepository) ListTypes(context.Context) ([]*ItemType, error) { return nil, nil }

func (f *fakeRepository) FindTypeByID(_ context.Context, id int) (*ItemType, error) {
	itemType, ok := f.types[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	return itemType, nil
}

func (f *fakeRepository) CreateType(_ context.Context, itemType *ItemType) error {
	itemType.ID = f.nextID
	f.nextID++
	f.types[itemType.ID] = itemType
	return nil
}

func (f *fakeRepository) UpdateType(_ context.Context, itemType *ItemType) error { return nil }
func (f *fakeRepository) DeleteType(context.Context, int) error                  { return nil }

// fakePools maps pool IDs to names.
type fakePools struct {
	names map[int]string
}

func (f *fakePools) PoolName(_ context.Context, id int) (string, error) {
	name, ok := f.names[id]
	if !ok {
		return "", dberr.ErrNotFound
	}
	return name, nil
}

// fakeTags knows a fixed set of tag IDs.
type fakeTags struct {
	known map[int]bool
}

func (f *fakeTags) GetTag(_ context.Context, id int) (*tag.Tag, error) {
	if !f.known[id] {
		return nil, dberr.ErrNotFound
	}
	return &tag.Tag{ID: id, Name: "fragile"}, nil
}

// newTestService seeds one "Laptop" type (id 1) and two pools:
// "Loan" (id 1) and "Leihgeräte" (id 2).
func newTestService() (*Service, *fakeRepository) {
	repo := newFakeRepository()
	repo.types[1] = &ItemType{ID: 1, Name: "Laptop"}

	pools := &fakePools{names: map[int]string{1: "Loan", 2: "Leihgeräte"}}
	tags := &fakeTags{known: map[int]bool{7: true}}

	return NewService(repo, pools, tags, slog.New(slog.DiscardHandler)), repo
}

// # Silo ID Generation Tests

/*
TestService_CreateItem_SiloID pins the generated identifier format and the
per-(type, pool) sequence behavior.
*/
func TestService_CreateItem_SiloID(t *testing.T) {
	service, _ := newTestService()

	first := &Item{Name: "ThinkPad X1", TypeID: 1, PoolID: 1}
	require.NoError(t, service.CreateItem(context.Background(), first))
	assert.Equal(t, "LAPTOP-LOAN-0001", first.SiloID)
	assert.Equal(t, 1, first.SequenceNum)
	assert.Equal(t, 1, first.Quantity, "quantity defaults to one")

	second := &Item{Name: "ThinkPad X2", TypeID: 1, PoolID: 1}
	require.NoError(t, service.CreateItem(context.Background(), second))
	assert.Equal(t, "LAPTOP-LOAN-0002", second.SiloID)

	// A different pool starts its own sequence, and non-ASCII pool names
	// are flattened for the label printer.
	otherPool := &Item{Name: "ThinkPad X3", TypeID: 1, PoolID: 2}
	require.NoError(t, service.CreateItem(context.Background(), otherPool))
	assert.Equal(t, "LAPTOP-LEIHGERATE-0001", otherPool.SiloID)
}

/*
TestService_CreateItem_SequenceNotReused verifies a soft-deleted item keeps
its sequence number claimed.
*/
func TestService_CreateItem_SequenceNotReused(t *testing.T) {
	service, _ := newTestService()

	first := &Item{Name: "ThinkPad X1", TypeID: 1, PoolID: 1}
	require.NoError(t, service.CreateItem(context.Background(), first))
	require.NoError(t, service.DeleteItem(context.Background(), first.ID))

	second := &Item{Name: "ThinkPad X2", TypeID: 1, PoolID: 1}
	require.NoError(t, service.CreateItem(context.Background(), second))

	assert.Equal(t, "LAPTOP-LOAN-0002", second.SiloID,
		"deleted items must keep their silo ID reserved")
}

/*
TestService_CreateItem_Failures covers validation and missing references.
*/
func TestService_CreateItem_Failures(t *testing.T) {
	tests := []struct {
		name       string
		item       *Item
		wantStatus int
	}{
		{"missing_name", &Item{TypeID: 1, PoolID: 1}, http.StatusBadRequest},
		{"missing_type", &Item{Name: "X1", PoolID: 1}, http.StatusBadRequest},
		{"missing_pool", &Item{Name: "X1", TypeID: 1}, http.StatusBadRequest},
		{"negative_quantity", &Item{Name: "X1", TypeID: 1, PoolID: 1, Quantity: -1}, http.StatusBadRequest},
		{"unknown_type", &Item{Name: "X1", TypeID: 99, PoolID: 1}, http.StatusUnprocessableEntity},
		{"unknown_pool", &Item{Name: "X1", TypeID: 1, PoolID: 99}, http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, repo := newTestService()
			err := service.CreateItem(context.Background(), tt.item)

			appError := apperr.As(err)
			require.NotNil(t, appError)
			assert.Equal(t, tt.wantStatus, appError.HTTPStatus)
			assert.Empty(t, repo.items)
		})
	}
}

// # Tag Attachment Tests

/*
TestService_AttachTag checks the failure taxonomy of tag attachment.
*/
func TestService_AttachTag(t *testing.T) {
	service, _ := newTestService()

	item := &Item{Name: "ThinkPad X1", TypeID: 1, PoolID: 1}
	require.NoError(t, service.CreateItem(context.Background(), item))

	t.Run("success", func(t *testing.T) {
		require.NoError(t, service.AttachTag(context.Background(), item.ID, 7))
	})

	t.Run("duplicate_link", func(t *testing.T) {
		err := service.AttachTag(context.Background(), item.ID, 7)

		appError := apperr.As(err)
		require.NotNil(t, appError)
		assert.Equal(t, http.StatusConflict, appError.HTTPStatus)
	})

	t.Run("unknown_item", func(t *testing.T) {
		err := service.AttachTag(context.Background(), 999, 7)

		appError := apperr.As(err)
		require.NotNil(t, appError)
		assert.Equal(t, "Item not found", appError.Message)
	})

	t.Run("unknown_tag", func(t *testing.T) {
		err := service.AttachTag(context.Background(), item.ID, 999)

		appError := apperr.As(err)
		require.NotNil(t, appError)
		assert.Equal(t, "Tag not found", appError.Message)
	})

	t.Run("detach", func(t *testing.T) {
		require.NoError(t, service.DetachTag(context.Background(), item.ID, 7))

		err := service.DetachTag(context.Background(), item.ID, 7)
		assert.Error(t, err, "detaching a missing link fails")
	})
}

// # Item Type Tests

/*
TestService_CreateType_Validation pins the label rule: a type name must
survive slugging or no item of that type could ever get a silo ID.
*/
func TestService_CreateType_Validation(t *testing.T) {
	tests := []struct {
		name     string
		typeName string
		wantErr  bool
	}{
		{"valid", "Laptop", false},
		{"valid_accents", "Löt-Station", false},
		{"empty", "", true},
		{"punctuation_only", "***", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, _ := newTestService()
			err := service.CreateType(context.Background(), &ItemType{Name: tt.typeName})

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
