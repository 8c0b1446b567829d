// Copyright (c) 2026 Silo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import (
	"context"
	"log/slog"

	"github.com/taibuivan/silo/internal/platform/validate"
)

// Service orchestrates business rules for item comments.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a new comment [Service].
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// ListByItem returns an item's comments, oldest first.
func (service *Service) ListByItem(context context.Context, itemID int) ([]*Comment, error) {
	return service.repo.ListByItem(context, itemID)
}

/*
CreateComment validates and persists a comment.

Returns:
  - error: Validation failures, Unprocessable when the item is missing
*/
func (service *Service) CreateComment(context context.Context, comment *Comment) error {
	validator := &validate.Validator{}
	validator.Required("comment", comment.Comment).MaxLen("comment", comment.Comment, 2000)
	validator.Positive("item_id", comment.ItemID)
	if err := validator.Err(); err != nil {
		return err
	}

	if err := service.repo.Create(context, comment); err != nil {
		return err
	}

	service.logger.Info("comment_created",
		slog.Int("comment_id", comment.ID),
		slog.Int("item_id", comment.ItemID),
	)

	return nil
}

// DeleteComment removes a comment.
func (service *Service) DeleteComment(context context.Context, id int) error {
	return service.repo.Delete(context, id)
}
