// Copyright (c) 2026 Silo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import "context"

// Repository defines the data access contract for comments.
type Repository interface {

	/*
		ListByItem returns an item's comments, oldest first, with the
		author's username joined in where the account still exists.

		Returns:
		  - []*Comment: The item's comments
		  - error: Database retrieval failures
	*/
	ListByItem(context context.Context, itemID int) ([]*Comment, error)

	/*
		FindByID retrieves a comment by primary key.

		Returns:
		  - *Comment: Hydrated entity
		  - error: ErrNotFound if missing
	*/
	FindByID(context context.Context, id int) (*Comment, error)

	/*
		Create persists a comment. ID and timestamp are written back.

		Returns:
		  - error: Unprocessable when the item does not exist
	*/
	Create(context context.Context, comment *Comment) error

	/*
		Delete removes a comment.

		Returns:
		  - error: ErrNotFound if missing
	*/
	Delete(context context.Context, id int) error
}
