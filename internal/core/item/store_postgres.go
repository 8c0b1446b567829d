// Copyright (c) 2026 Silo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package item

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/silo/internal/core/tag"
	"github.com/taibuivan/silo/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed item store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const itemColumns = `id, silo_id, type_id, pool_id, name, description, quantity,
		sequence_num, weight, serial_number, inventory_number, deleted,
		created_at, updated_at`

// # Item Retrieval

/*
List returns a filtered and paginated list of items.

Description: Uses ILIKE over the searchable identifier columns and
COUNT(*) OVER() for total metadata, then hydrates tags for the whole page
in a single follow-up query.
*/
func (repository *PostgresRepository) List(context context.Context, filter Filter, limit, offset int) ([]*Item, int, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`
		SELECT ` + itemColumns + `,
			COUNT(*) OVER() AS total
		FROM item
		WHERE 1=1
	`)

	args := []any{}
	argID := 1

	if !filter.IncludeDeleted {
		queryBuilder.WriteString(" AND deleted = FALSE")
	}

	if filter.Query != "" {
		queryBuilder.WriteString(fmt.Sprintf(
			" AND (name ILIKE $%d OR silo_id ILIKE $%d OR serial_number ILIKE $%d OR inventory_number ILIKE $%d)",
			argID, argID, argID, argID))
		args = append(args, "%"+filter.Query+"%")
		argID++
	}

	if filter.TypeID != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND type_id = $%d", argID))
		args = append(args, *filter.TypeID)
		argID++
	}

	if filter.PoolID != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND pool_id = $%d", argID))
		args = append(args, *filter.PoolID)
		argID++
	}

	if len(filter.TagIDs) > 0 {
		queryBuilder.WriteString(fmt.Sprintf(
			" AND $%d::int[] <@ (SELECT array_agg(ita.tag_id) FROM item_tag_association ita WHERE ita.item_id = item.id)",
			argID))
		args = append(args, filter.TagIDs)
		argID++
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY silo_id ASC LIMIT $%d OFFSET $%d", argID, argID+1))
	args = append(args, limit, offset)

	rows, err := repository.db.Query(context, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_items")
	}
	defer rows.Close()

	items := make([]*Item, 0)
	ids := make([]int, 0)
	var total int
	for rows.Next() {
		item := &Item{}
		err := rows.Scan(
			&item.ID, &item.SiloID, &item.TypeID, &item.PoolID, &item.Name,
			&item.Description, &item.Quantity, &item.SequenceNum, &item.Weight,
			&item.SerialNumber, &item.InventoryNumber, &item.Deleted,
			&item.CreatedAt, &item.UpdatedAt, &total,
		)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_item")
		}
		items = append(items, item)
		ids = append(ids, item.ID)
	}
	rows.Close()

	attachments, err := repository.loadTags(context, ids)
	if err != nil {
		return nil, 0, err
	}
	for _, item := range items {
		item.Tags = attachments[item.ID]
	}

	return items, total, nil
}

// FindByID retrieves an item with its tags by primary key.
func (repository *PostgresRepository) FindByID(context context.Context, id int) (*Item, error) {
	const query = `
		SELECT ` + itemColumns + `
		FROM item
		WHERE id = $1
	`
	item := &Item{}
	err := repository.db.QueryRow(context, query, id).Scan(
		&item.ID, &item.SiloID, &item.TypeID, &item.PoolID, &item.Name,
		&item.Description, &item.Quantity, &item.SequenceNum, &item.Weight,
		&item.SerialNumber, &item.InventoryNumber, &item.Deleted,
		&item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_item_by_id")
	}

	attachments, err := repository.loadTags(context, []int{item.ID})
	if err != nil {
		return nil, err
	}
	item.Tags = attachments[item.ID]

	return item, nil
}

// # Item Mutation

/*
Create inserts an item and assigns its silo ID.

Description: Runs in a transaction. The next sequence number is the current
per-(type, pool) maximum plus one; soft-deleted rows keep their number so
sequences are never reused. The UNIQUE(type_id, pool_id, sequence_num)
constraint turns a lost race between concurrent creates into a Conflict
the service can retry.
*/
func (repository *PostgresRepository) Create(context context.Context, item *Item, labelPrefix string) error {
	transaction, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_create_item_tx")
	}
	defer transaction.Rollback(context)

	// Step 1: Claim the next sequence number for this (type, pool).
	const sequenceQuery = `
		SELECT COALESCE(MAX(sequence_num), 0) + 1
		FROM item
		WHERE type_id = $1 AND pool_id = $2
	`
	if err := transaction.QueryRow(context, sequenceQuery, item.TypeID, item.PoolID).Scan(&item.SequenceNum); err != nil {
		return dberr.Wrap(err, "next_item_sequence")
	}

	item.SiloID = fmt.Sprintf("%s-%04d", labelPrefix, item.SequenceNum)

	// Step 2: Persist the item under the claimed identity.
	const insertQuery = `
		INSERT INTO item (
			silo_id, type_id, pool_id, name, description, quantity,
			sequence_num, weight, serial_number, inventory_number, deleted, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, FALSE, NOW())
		RETURNING id, created_at
	`
	err = transaction.QueryRow(context, insertQuery,
		item.SiloID, item.TypeID, item.PoolID, item.Name, item.Description,
		item.Quantity, item.SequenceNum, item.Weight, item.SerialNumber,
		item.InventoryNumber,
	).Scan(&item.ID, &item.CreatedAt)
	if err != nil {
		return dberr.Wrap(err, "create_item")
	}

	return transaction.Commit(context)
}

// Update replaces the mutable item fields.
func (repository *PostgresRepository) Update(context context.Context, item *Item) error {
	const query = `
		UPDATE item
		SET name = $2, description = $3, quantity = $4, weight = $5,
			serial_number = $6, inventory_number = $7, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`
	err := repository.db.QueryRow(context, query,
		item.ID, item.Name, item.Description, item.Quantity, item.Weight,
		item.SerialNumber, item.InventoryNumber,
	).Scan(&item.UpdatedAt)
	return dberr.Wrap(err, "update_item")
}

// SoftDelete flags an item as deleted, keeping its sequence number claimed.
func (repository *PostgresRepository) SoftDelete(context context.Context, id int) error {
	const query = `
		UPDATE item
		SET deleted = TRUE, updated_at = NOW()
		WHERE id = $1 AND deleted = FALSE
	`
	result, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_item")
	}
	if result.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

// # Tag Links

// AttachTag links a tag to an item.
func (repository *PostgresRepository) AttachTag(context context.Context, itemID, tagID int) error {
	const query = `
		INSERT INTO item_tag_association (item_id, tag_id)
		VALUES ($1, $2)
	`
	_, err := repository.db.Exec(context, query, itemID, tagID)
	return dberr.Wrap(err, "attach_tag")
}

// DetachTag removes a tag link.
func (repository *PostgresRepository) DetachTag(context context.Context, itemID, tagID int) error {
	const query = `DELETE FROM item_tag_association WHERE item_id = $1 AND tag_id = $2`
	result, err := repository.db.Exec(context, query, itemID, tagID)
	if err != nil {
		return dberr.Wrap(err, "detach_tag")
	}
	if result.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

// loadTags fetches the tags for a set of items in one query.
func (repository *PostgresRepository) loadTags(context context.Context, itemIDs []int) (map[int][]tag.Tag, error) {
	attachments := make(map[int][]tag.Tag, len(itemIDs))
	if len(itemIDs) == 0 {
		return attachments, nil
	}

	const query = `
		SELECT ita.item_id, t.id, t.name, t.color_hex, t.text_dark
		FROM item_tag_association ita
		JOIN tag t ON t.id = ita.tag_id
		WHERE ita.item_id = ANY($1)
		ORDER BY t.name ASC
	`
	rows, err := repository.db.Query(context, query, itemIDs)
	if err != nil {
		return nil, dberr.Wrap(err, "load_item_tags")
	}
	defer rows.Close()

	for rows.Next() {
		var itemID int
		var attached tag.Tag
		err := rows.Scan(&itemID, &attached.ID, &attached.Name,
			&attached.ColorHex, &attached.TextDark)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_item_tag")
		}
		attachments[itemID] = append(attachments[itemID], attached)
	}

	return attachments, nil
}

// # Item Types

// ListTypes returns every item type ordered by name.
func (repository *PostgresRepository) ListTypes(context context.Context) ([]*ItemType, error) {
	const query = `
		SELECT id, name, description
		FROM item_type
		ORDER BY name ASC
	`
	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_item_types")
	}
	defer rows.Close()

	types := make([]*ItemType, 0)
	for rows.Next() {
		itemType := &ItemType{}
		if err := rows.Scan(&itemType.ID, &itemType.Name, &itemType.Description); err != nil {
			return nil, dberr.Wrap(err, "scan_item_type")
		}
		types = append(types, itemType)
	}

	return types, nil
}

// FindTypeByID retrieves an item type by primary key.
func (repository *PostgresRepository) FindTypeByID(context context.Context, id int) (*ItemType, error) {
	const query = `
		SELECT id, name, description
		FROM item_type
		WHERE id = $1
	`
	itemType := &ItemType{}
	err := repository.db.QueryRow(context, query, id).
		Scan(&itemType.ID, &itemType.Name, &itemType.Description)
	if err != nil {
		return nil, dberr.Wrap(err, "get_item_type_by_id")
	}
	return itemType, nil
}

// CreateType persists a new item type.
func (repository *PostgresRepository) CreateType(context context.Context, itemType *ItemType) error {
	const query = `
		INSERT INTO item_type (name, description)
		VALUES ($1, $2)
		RETURNING id
	`
	err := repository.db.QueryRow(context, query, itemType.Name, itemType.Description).Scan(&itemType.ID)
	return dberr.Wrap(err, "create_item_type")
}

// UpdateType replaces an item type's name and description.
//
// Existing silo IDs keep the label they were minted with.
func (repository *PostgresRepository) UpdateType(context context.Context, itemType *ItemType) error {
	const query = `
		UPDATE item_type
		SET name = $2, description = $3
		WHERE id = $1
	`
	result, err := repository.db.Exec(context, query, itemType.ID, itemType.Name, itemType.Description)
	if err != nil {
		return dberr.Wrap(err, "update_item_type")
	}
	if result.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

// DeleteType removes an item type. Items referencing it block the delete
// through the foreign key, surfaced as Unprocessable.
func (repository *PostgresRepository) DeleteType(context context.Context, id int) error {
	const query = `DELETE FROM item_type WHERE id = $1`
	result, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_item_type")
	}
	if result.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
