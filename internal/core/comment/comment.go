// Copyright (c) 2026 Silo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package comment manages free-text notes attached to inventory items.
package comment

import "time"

// Comment is a note on an item. UserID is nil when the author's account
// was deleted after the fact; the comment itself stays.
type Comment struct {
	ID        int       `json:"id"`
	Comment   string    `json:"comment"`
	ItemID    int       `json:"item_id"`
	UserID    *int      `json:"user_id,omitempty"`
	Username  *string   `json:"username,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
