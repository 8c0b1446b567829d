// Copyright (c) 2026 Silo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/silo/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed comment store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// ListByItem returns an item's comments, oldest first.
func (repository *PostgresRepository) ListByItem(context context.Context, itemID int) ([]*Comment, error) {
	const query = `
		SELECT c.id, c.comment, c.item_id, c.user_id, u.username, c.created_at
		FROM comment c
		LEFT JOIN "user" u ON u.id = c.user_id
		WHERE c.item_id = $1
		ORDER BY c.created_at ASC
	`
	rows, err := repository.db.Query(context, query, itemID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_comments")
	}
	defer rows.Close()

	comments := make([]*Comment, 0)
	for rows.Next() {
		comment := &Comment{}
		err := rows.Scan(&comment.ID, &comment.Comment, &comment.ItemID,
			&comment.UserID, &comment.Username, &comment.CreatedAt)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_comment")
		}
		comments = append(comments, comment)
	}

	return comments, nil
}

// FindByID retrieves a comment by primary key.
func (repository *PostgresRepository) FindByID(context context.Context, id int) (*Comment, error) {
	const query = `
		SELECT c.id, c.comment, c.item_id, c.user_id, u.username, c.created_at
		FROM comment c
		LEFT JOIN "user" u ON u.id = c.user_id
		WHERE c.id = $1
	`
	comment := &Comment{}
	err := repository.db.QueryRow(context, query, id).Scan(
		&comment.ID, &comment.Comment, &comment.ItemID,
		&comment.UserID, &comment.Username, &comment.CreatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_comment_by_id")
	}
	return comment, nil
}

// Create persists a comment.
func (repository *PostgresRepository) Create(context context.Context, comment *Comment) error {
	const query = `
		INSERT INTO comment (comment, item_id, user_id, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING id, created_at
	`
	err := repository.db.QueryRow(context, query,
		comment.Comment, comment.ItemID, comment.UserID,
	).Scan(&comment.ID, &comment.CreatedAt)
	return dberr.Wrap(err, "create_comment")
}

// Delete removes a comment.
func (repository *PostgresRepository) Delete(context context.Context, id int) error {
	const query = `DELETE FROM comment WHERE id = $1`
	result, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_comment")
	}
	if result.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
