// Copyright (c) 2026 Silo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package item

import "context"

// # Item Data Access

// Repository defines the data access contract for items and item types.
type Repository interface {

	/*
		List returns a filtered, paginated slice of items with their tags.

		Returns:
		  - []*Item: Matching items ordered by silo ID
		  - int: Total matching count (before pagination)
		  - error: Database retrieval failures
	*/
	List(context context.Context, filter Filter, limit, offset int) ([]*Item, int, error)

	/*
		FindByID retrieves an item with its tags by primary key.
		Soft-deleted items are still found; callers decide whether that
		matters.

		Returns:
		  - *Item: Hydrated entity
		  - error: ErrNotFound if missing
	*/
	FindByID(context context.Context, id int) (*Item, error)

	/*
		Create persists a new item, atomically assigning the next
		sequence number for its (type, pool) combination and deriving
		the silo ID as "<labelPrefix>-NNNN". The generated ID, sequence
		number, silo ID, and timestamps are written back.

		Returns:
		  - error: Conflict when a concurrent create won the sequence race
	*/
	Create(context context.Context, item *Item, labelPrefix string) error

	/*
		Update replaces the mutable fields (name, description, quantity,
		weight, serial number, inventory number). Type, pool, sequence,
		and silo ID never change.

		Returns:
		  - error: ErrNotFound if missing
	*/
	Update(context context.Context, item *Item) error

	/*
		SoftDelete marks an item as deleted without freeing its sequence
		number.

		Returns:
		  - error: ErrNotFound if missing or already deleted
	*/
	SoftDelete(context context.Context, id int) error

	/*
		AttachTag links a tag to an item.

		Returns:
		  - error: Conflict on a duplicate link, Unprocessable when the
		    tag does not exist
	*/
	AttachTag(context context.Context, itemID, tagID int) error

	/*
		DetachTag removes a tag link.

		Returns:
		  - error: ErrNotFound when the link does not exist
	*/
	DetachTag(context context.Context, itemID, tagID int) error

	// ## Item Types

	ListTypes(context context.Context) ([]*ItemType, error)
	FindTypeByID(context context.Context, id int) (*ItemType, error)
	CreateType(context context.Context, itemType *ItemType) error
	UpdateType(context context.Context, itemType *ItemType) error
	DeleteType(context context.Context, id int) error
}
