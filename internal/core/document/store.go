// Copyright (c) 2026 Silo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package document

import "context"

// Repository defines the data access contract for document metadata.
type Repository interface {

	/*
		List returns document records, optionally filtered to one item.

		Returns:
		  - []*Document: Matching records, newest first
		  - error: Database retrieval failures
	*/
	List(context context.Context, itemID *int) ([]*Document, error)

	/*
		FindByID retrieves a document record by primary key.

		Returns:
		  - *Document: Hydrated entity including the stored file path
		  - error: ErrNotFound if missing
	*/
	FindByID(context context.Context, id int) (*Document, error)

	/*
		Create persists a document record. ID and timestamp are written
		back.

		Returns:
		  - error: Unprocessable when the referenced item is missing
	*/
	Create(context context.Context, document *Document) error

	/*
		Delete removes a document record. The caller removes the file.

		Returns:
		  - error: ErrNotFound if missing
	*/
	Delete(context context.Context, id int) error
}
