// Copyright (c) 2026 Silo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package document manages files attached to inventory items.

Uploaded bytes live on disk under the configured upload directory; only
metadata goes to PostgreSQL. Files are stored under a generated UUIDv7
name, never under the client-supplied filename, so uploads cannot collide
or traverse paths. The original filename is kept as metadata for the
Content-Disposition header on download.
*/
package document

import "time"

// Document is the metadata record of an uploaded file.
type Document struct {
	ID          int       `json:"id"`
	Filename    string    `json:"filename"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	FileSize    int64     `json:"file_size"`
	MimeType    string    `json:"mime_type"`
	ItemID      *int      `json:"item_id,omitempty"`
	UserID      *int      `json:"user_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`

	// FilePath is the stored name relative to the upload directory. It is
	// server-internal and never serialized.
	FilePath string `json:"-"`
}
