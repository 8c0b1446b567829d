package tag

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/silo/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) List(context context.Context) ([]*Tag, error) {
	const query = `
		SELECT id, name, color_hex, text_dark
		FROM tag
		ORDER BY name ASC
	`
	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_tags")
	}
	defer rows.Close()

	tags := make([]*Tag, 0)
	for rows.Next() {
		tag := &Tag{}
		if err := rows.Scan(&tag.ID, &tag.Name, &tag.ColorHex, &tag.TextDark); err != nil {
			return nil, dberr.Wrap(err, "scan_tag")
		}
		tags = append(tags, tag)
	}

	return tags, nil
}

func (repository *PostgresRepository) FindByID(context context.Context, id int) (*Tag, error) {
	const query = `
		SELECT id, name, color_hex, text_dark
		FROM tag
		WHERE id = $1
	`
	tag := &Tag{}
	err := repository.db.QueryRow(context, query, id).
		Scan(&tag.ID, &tag.Name, &tag.ColorHex, &tag.TextDark)
	if err != nil {
		return nil, dberr.Wrap(err, "get_tag_by_id")
	}
	return tag, nil
}

func (repository *PostgresRepository) Create(context context.Context, tag *Tag) error {
	const query = `
		INSERT INTO tag (name, color_hex, text_dark)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	err := repository.db.QueryRow(context, query, tag.Name, tag.ColorHex, tag.TextDark).Scan(&tag.ID)
	return dberr.Wrap(err, "create_tag")
}

func (repository *PostgresRepository) Update(context context.Context, tag *Tag) error {
	const query = `
		UPDATE tag
		SET name = $2, color_hex = $3, text_dark = $4
		WHERE id = $1
	`
	result, err := repository.db.Exec(context, query, tag.ID, tag.Name, tag.ColorHex, tag.TextDark)
	if err != nil {
		return dberr.Wrap(err, "update_tag")
	}
	if result.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) Delete(context context.Context, id int) error {
	const query = `DELETE FROM tag WHERE id = $1`
	result, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_tag")
	}
	if result.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
