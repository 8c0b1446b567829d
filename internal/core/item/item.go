// Copyright (c) 2026 Silo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package item manages the inventory items and item types of Silo.

Every item carries a human-readable silo ID of the form "TYPE-POOL-0001":
the labels of its item type and pool plus a sequence number that counts up
independently per (type, pool) combination. The silo ID is generated at
creation time, printed on the physical asset label, and never changes —
which is also why an item's type and pool are immutable after creation.

Items are soft-deleted: the row stays for audit purposes and the sequence
number is never reused.
*/
package item

import (
	"time"

	"github.com/taibuivan/silo/internal/core/tag"
)

// Item is a tracked inventory asset.
type Item struct {
	ID              int        `json:"id"`
	SiloID          string     `json:"silo_id"`
	TypeID          int        `json:"type_id"`
	PoolID          int        `json:"pool_id"`
	Name            string     `json:"name"`
	Description     string     `json:"description"`
	Quantity        int        `json:"quantity"`
	SequenceNum     int        `json:"sequence_num"`
	Weight          *float64   `json:"weight,omitempty"`
	SerialNumber    *string    `json:"serial_number,omitempty"`
	InventoryNumber *string    `json:"inventory_number,omitempty"`
	Deleted         bool       `json:"deleted"`
	Tags            []tag.Tag  `json:"tags"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       *time.Time `json:"updated_at,omitempty"`
}

// ItemType is a category of items ("Laptop", "Cable", ...). Its label forms
// the first field of the silo ID.
type ItemType struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Filter narrows item listings.
type Filter struct {
	// Query matches against name, silo ID, serial number, and inventory
	// number.
	Query string

	TypeID *int
	PoolID *int

	// TagIDs narrows the result to items carrying every listed tag.
	TagIDs []int

	// IncludeDeleted also returns soft-deleted items.
	IncludeDeleted bool
}
