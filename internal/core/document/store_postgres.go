// Copyright (c) 2026 Silo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package document

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/silo/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed document store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const documentColumns = `id, filename, title, description, file_size, mime_type,
		file_path, item_id, user_id, created_at`

// List returns document records, optionally filtered to one item.
func (repository *PostgresRepository) List(context context.Context, itemID *int) ([]*Document, error) {
	query := `
		SELECT ` + documentColumns + `
		FROM document
	`
	args := []any{}
	if itemID != nil {
		query += ` WHERE item_id = $1`
		args = append(args, *itemID)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "list_documents")
	}
	defer rows.Close()

	documents := make([]*Document, 0)
	for rows.Next() {
		document := &Document{}
		err := rows.Scan(
			&document.ID, &document.Filename, &document.Title, &document.Description,
			&document.FileSize, &document.MimeType, &document.FilePath,
			&document.ItemID, &document.UserID, &document.CreatedAt,
		)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_document")
		}
		documents = append(documents, document)
	}

	return documents, nil
}

// FindByID retrieves a document record by primary key.
func (repository *PostgresRepository) FindByID(context context.Context, id int) (*Document, error) {
	const query = `
		SELECT ` + documentColumns + `
		FROM document
		WHERE id = $1
	`
	document := &Document{}
	err := repository.db.QueryRow(context, query, id).Scan(
		&document.ID, &document.Filename, &document.Title, &document.Description,
		&document.FileSize, &document.MimeType, &document.FilePath,
		&document.ItemID, &document.UserID, &document.CreatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_document_by_id")
	}
	return document, nil
}

// Create persists a document record.
func (repository *PostgresRepository) Create(context context.Context, document *Document) error {
	const query = `
		INSERT INTO document (
			filename, title, description, file_size, mime_type,
			file_path, item_id, user_id, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		RETURNING id, created_at
	`
	err := repository.db.QueryRow(context, query,
		document.Filename, document.Title, document.Description,
		document.FileSize, document.MimeType, document.FilePath,
		document.ItemID, document.UserID,
	).Scan(&document.ID, &document.CreatedAt)
	return dberr.Wrap(err, "create_document")
}

// Delete removes a document record.
func (repository *PostgresRepository) Delete(context context.Context, id int) error {
	const query = `DELETE FROM document WHERE id = $1`
	result, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_document")
	}
	if result.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
