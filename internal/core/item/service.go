// Copyright (c) 2026 Silo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package item

import (
	"context"
	"log/slog"
	"strings"

	"github.com/taibuivan/silo/internal/core/tag"
	"github.com/taibuivan/silo/internal/platform/apperr"
	"github.com/taibuivan/silo/internal/platform/validate"
	"github.com/taibuivan/silo/pkg/slug"
)

// # Collaborator Seams

// PoolDirectory resolves pool names for silo ID generation. Implemented by
// the storage service.
type PoolDirectory interface {
	PoolName(context context.Context, id int) (string, error)
}

// TagLookup resolves tags for attachment. Implemented by the tag service.
type TagLookup interface {
	GetTag(context context.Context, id int) (*tag.Tag, error)
}

// # Service Layer

// Service orchestrates business rules for inventory items and item types.
type Service struct {
	repo   Repository
	pools  PoolDirectory
	tags   TagLookup
	logger *slog.Logger
}

// NewService constructs a new item [Service].
func NewService(repo Repository, pools PoolDirectory, tags TagLookup, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		pools:  pools,
		tags:   tags,
		logger: logger,
	}
}

// # Item Management

/*
ListItems retrieves a paginated and filtered list of items.

Returns:
  - []*Item: Matching items with their tags
  - int: Total matching count
  - error: Retrieval failures
*/
func (service *Service) ListItems(context context.Context, filter Filter, limit, offset int) ([]*Item, int, error) {
	return service.repo.List(context, filter, limit, offset)
}

/*
GetItem retrieves an item by its primary key.

Returns:
  - *Item: Hydrated item entity
  - error: ErrNotFound if missing
*/
func (service *Service) GetItem(context context.Context, id int) (*Item, error) {
	return service.repo.FindByID(context, id)
}

/*
CreateItem validates a new item, resolves its silo ID label prefix from
the item type and pool names, and persists it.

Description: The label prefix is "TYPE-POOL" where both fields are the
slugged, upper-cased names with hyphens stripped ("Löt-Station" becomes
"LOTSTATION"). The store appends the zero-padded sequence number.

Returns:
  - error: Validation failures, Unprocessable when type or pool is
    missing, Conflict when a concurrent create wins the sequence race
*/
func (service *Service) CreateItem(context context.Context, item *Item) error {
	validator := &validate.Validator{}
	validator.Required("name", item.Name).MaxLen("name", item.Name, 200)
	validator.Positive("type_id", item.TypeID)
	validator.Positive("pool_id", item.PoolID)
	validator.Custom("quantity", item.Quantity < 0, "Must not be negative")
	if err := validator.Err(); err != nil {
		return err
	}

	if item.Quantity == 0 {
		item.Quantity = 1
	}

	labelPrefix, err := service.labelPrefix(context, item.TypeID, item.PoolID)
	if err != nil {
		return err
	}

	if err := service.repo.Create(context, item, labelPrefix); err != nil {
		return err
	}

	service.logger.Info("item_created",
		slog.Int("item_id", item.ID),
		slog.String("silo_id", item.SiloID),
	)

	return nil
}

/*
UpdateItem replaces an item's mutable fields. Type, pool, and silo ID are
immutable; the printed label must stay valid for the item's lifetime.

Returns:
  - error: Validation failures, ErrNotFound if missing
*/
func (service *Service) UpdateItem(context context.Context, item *Item) error {
	validator := &validate.Validator{}
	validator.Required("name", item.Name).MaxLen("name", item.Name, 200)
	validator.Custom("quantity", item.Quantity < 0, "Must not be negative")
	if err := validator.Err(); err != nil {
		return err
	}

	if err := service.repo.Update(context, item); err != nil {
		return err
	}

	service.logger.Info("item_updated", slog.Int("item_id", item.ID))

	return nil
}

/*
DeleteItem soft-deletes an item. The sequence number stays claimed so the
silo ID is never minted twice.

Returns:
  - error: ErrNotFound if missing or already deleted
*/
func (service *Service) DeleteItem(context context.Context, id int) error {
	if err := service.repo.SoftDelete(context, id); err != nil {
		return err
	}

	service.logger.Info("item_deleted", slog.Int("item_id", id))

	return nil
}

// # Tag Attachment

/*
AttachTag links a tag to an item.

Returns:
  - error: NotFound for either side, Conflict on a duplicate link
*/
func (service *Service) AttachTag(context context.Context, itemID, tagID int) error {
	item, err := service.repo.FindByID(context, itemID)
	if err != nil {
		return apperr.NotFound("Item")
	}

	attached, err := service.tags.GetTag(context, tagID)
	if err != nil {
		return apperr.NotFound("Tag")
	}

	for _, existing := range item.Tags {
		if existing.ID == attached.ID {
			return apperr.Conflict("Item already has this tag")
		}
	}

	return service.repo.AttachTag(context, itemID, tagID)
}

/*
DetachTag removes a tag link from an item.

Returns:
  - error: ErrNotFound when the link does not exist
*/
func (service *Service) DetachTag(context context.Context, itemID, tagID int) error {
	return service.repo.DetachTag(context, itemID, tagID)
}

// # Item Type Management

/*
ListTypes returns every item type.
*/
func (service *Service) ListTypes(context context.Context) ([]*ItemType, error) {
	return service.repo.ListTypes(context)
}

/*
GetType retrieves an item type by its primary key.
*/
func (service *Service) GetType(context context.Context, id int) (*ItemType, error) {
	return service.repo.FindTypeByID(context, id)
}

/*
CreateType validates and persists a new item type.

The name must yield a non-empty silo ID label, otherwise items of this
type could never be created.

Returns:
  - error: Validation failures, Conflict on a duplicate name
*/
func (service *Service) CreateType(context context.Context, itemType *ItemType) error {
	if err := validateTypeName(itemType.Name); err != nil {
		return err
	}

	if err := service.repo.CreateType(context, itemType); err != nil {
		return err
	}

	service.logger.Info("item_type_created",
		slog.Int("type_id", itemType.ID),
		slog.String("name", itemType.Name),
	)

	return nil
}

/*
UpdateType replaces an item type's name and description. Existing silo
IDs keep the label they were minted with.

Returns:
  - error: Validation failures, ErrNotFound if missing
*/
func (service *Service) UpdateType(context context.Context, itemType *ItemType) error {
	if err := validateTypeName(itemType.Name); err != nil {
		return err
	}
	return service.repo.UpdateType(context, itemType)
}

/*
DeleteType removes an item type.

Returns:
  - error: ErrNotFound if missing, Unprocessable while items reference it
*/
func (service *Service) DeleteType(context context.Context, id int) error {
	return service.repo.DeleteType(context, id)
}

// # Helpers

// labelPrefix builds the "TYPE-POOL" half of a silo ID from the referenced
// type and pool names.
func (service *Service) labelPrefix(context context.Context, typeID, poolID int) (string, error) {
	itemType, err := service.repo.FindTypeByID(context, typeID)
	if err != nil {
		return "", apperr.Unprocessable("Item type does not exist")
	}

	poolName, err := service.pools.PoolName(context, poolID)
	if err != nil {
		return "", apperr.Unprocessable("Pool does not exist")
	}

	return slug.Label(itemType.Name) + "-" + slug.Label(poolName), nil
}

func validateTypeName(name string) error {
	validator := &validate.Validator{}
	validator.Required("name", name).MaxLen("name", name, 100)
	if strings.TrimSpace(name) != "" {
		validator.Custom("name", slug.Label(name) == "",
			"Must contain at least one alphanumeric character")
	}
	return validator.Err()
}
