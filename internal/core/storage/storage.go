// Copyright (c) 2026 Silo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package storage manages the physical location hierarchy of the inventory.

Rooms contain storage furniture (a shelf, a cabinet) of a given storage
type; storage areas subdivide furniture. Pools are organizational rather
than physical: an item belongs to a pool ("Loan", "Lab"), and the pool
label forms the second field of the item's silo ID.
*/
package storage

// Room is a physical room.
type Room struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Pool groups items organizationally. Its label is part of the silo ID,
// so a pool name must contain at least one alphanumeric character.
type Pool struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// StorageType classifies furniture ("Shelf", "Cabinet", "Drawer").
type StorageType struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// StorageFurniture is a concrete piece of furniture in a room. The
// (name, room, storage type) triple is unique.
type StorageFurniture struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	RoomID        int    `json:"room_id"`
	StorageTypeID int    `json:"storage_type_id"`
}

// StorageArea subdivides furniture ("top shelf", "compartment B").
type StorageArea struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}
