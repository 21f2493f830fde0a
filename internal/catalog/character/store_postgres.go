// Copyright (c) 2026 Marvelis. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package character PostgreSQL implementation of the data access layer.

The repository keeps queries flat and explicit:
  - Window Functions: COUNT(*) OVER() delivers list totals without a second query.
  - Idempotent Links: ON CONFLICT DO NOTHING makes association writes re-runnable.
  - Cascaded Cleanup: Join rows disappear with the character via FK ON DELETE CASCADE.
*/
package character

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/marvelis/internal/platform/constants"
	"github.com/taibuivan/marvelis/internal/platform/database/schema"
	"github.com/taibuivan/marvelis/internal/platform/dberr"
	"github.com/taibuivan/marvelis/internal/platform/media"
)

// # PostgreSQL Repository

// repository implements the [Repository] interface using pgx.
type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed character store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

/*
List returns a page of character previews plus the catalog-wide total.

Description: Uses the COUNT(*) OVER() window function to retrieve the total
record count in the same round-trip as the page itself. The sort column is
resolved through [sortColumn] and never interpolated from raw client input.

Parameters:
  - ctx: context.Context
  - sortField: string ("name"; unknown values fall back to name)
  - limit: int
  - offset: int

Returns:
  - []*Preview: slice of character previews with resolved portrait paths
  - int: total character count
  - error: wrapped database execution errors
*/
func (repository *repository) List(ctx context.Context, sortField string, limit, offset int) ([]*Preview, int, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, COUNT(*) OVER() AS total_count
		FROM %s
		ORDER BY %s ASC, %s ASC
		LIMIT $1 OFFSET $2
	`,
		schema.Characters.ID,
		schema.Characters.Name,
		schema.Characters.Portrait,
		schema.Characters.Table,
		sortColumn(sortField),
		schema.Characters.ID,
	)

	rows, err := repository.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list characters")
	}
	defer rows.Close()

	var previews []*Preview
	var totalCount int

	for rows.Next() {
		preview := &Preview{}
		var portraitFile string

		if err := rows.Scan(&preview.ID, &preview.Name, &portraitFile, &totalCount); err != nil {
			return nil, 0, dberr.Wrap(err, "scan character preview")
		}

		preview.Portrait = media.Path(constants.CharacterDir, preview.ID, portraitFile)
		previews = append(previews, preview)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "iterate characters")
	}

	return previews, totalCount, nil
}

/*
FindByID retrieves a full character row by its primary key.

Returns:
  - *Character: the hydrated entity with its resolved portrait path
  - error: [dberr.ErrNotFound] when the row does not exist
*/
func (repository *repository) FindByID(ctx context.Context, id int64) (*Character, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
	`,
		schema.Characters.ID,
		schema.Characters.Name,
		schema.Characters.CreateDate,
		schema.Characters.Portrait,
		schema.Characters.Description,
		schema.Characters.Biography,
		schema.Characters.Table,
		schema.Characters.ID,
	)

	character := &Character{}
	err := repository.pool.QueryRow(ctx, query, id).Scan(
		&character.ID,
		&character.Name,
		&character.CreateDate,
		&character.PortraitFile,
		&character.Description,
		&character.Biography,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "find character by id")
	}

	character.ResolveMedia()
	return character, nil
}

// Exists reports whether a character row with the given id is present.
func (repository *repository) Exists(ctx context.Context, id int64) (bool, error) {
	query := fmt.Sprintf(
		"SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)",
		schema.Characters.Table, schema.Characters.ID,
	)

	var exists bool
	if err := repository.pool.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "check character exists")
	}
	return exists, nil
}

/*
Create inserts a new character row and assigns the generated id.

The id column is always server-generated; whatever the caller put in the
entity's ID field is overwritten by the RETURNING clause.
*/
func (repository *repository) Create(ctx context.Context, character *Character) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING %s
	`,
		schema.Characters.Table,
		schema.Characters.Name,
		schema.Characters.CreateDate,
		schema.Characters.Portrait,
		schema.Characters.Description,
		schema.Characters.Biography,
		schema.Characters.ID,
	)

	err := repository.pool.QueryRow(ctx, query,
		character.Name,
		character.CreateDate,
		character.PortraitFile,
		character.Description,
		character.Biography,
	).Scan(&character.ID)
	if err != nil {
		return dberr.Wrap(err, "create character")
	}

	return nil
}

// Update replaces every mutable column of an existing row. A zero row count
// maps to [dberr.ErrNotFound].
func (repository *repository) Update(ctx context.Context, character *Character) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6
		WHERE %s = $1
	`,
		schema.Characters.Table,
		schema.Characters.Name,
		schema.Characters.CreateDate,
		schema.Characters.Portrait,
		schema.Characters.Description,
		schema.Characters.Biography,
		schema.Characters.ID,
	)

	result, err := repository.pool.Exec(ctx, query,
		character.ID,
		character.Name,
		character.CreateDate,
		character.PortraitFile,
		character.Description,
		character.Biography,
	)
	if err != nil {
		return dberr.Wrap(err, "update character")
	}
	if result.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	return nil
}

// SetPortrait stores the portrait filename for an existing row.
func (repository *repository) SetPortrait(ctx context.Context, id int64, filename string) error {
	query := fmt.Sprintf(
		"UPDATE %s SET %s = $2 WHERE %s = $1",
		schema.Characters.Table, schema.Characters.Portrait, schema.Characters.ID,
	)

	if _, err := repository.pool.Exec(ctx, query, id, filename); err != nil {
		return dberr.Wrap(err, "set character portrait")
	}
	return nil
}

// Delete removes the row and its association records (FK cascade). It reports
// whether a row actually existed.
func (repository *repository) Delete(ctx context.Context, id int64) (bool, error) {
	query := fmt.Sprintf(
		"DELETE FROM %s WHERE %s = $1",
		schema.Characters.Table, schema.Characters.ID,
	)

	result, err := repository.pool.Exec(ctx, query, id)
	if err != nil {
		return false, dberr.Wrap(err, "delete character")
	}
	return result.RowsAffected() > 0, nil
}

/*
ListComics returns previews of every comic the character appears in.

The association is stored in one direction only (comics_has_character), so a
single join resolves the character's comics.
*/
func (repository *repository) ListComics(ctx context.Context, characterID int64) ([]*ComicsPreview, error) {
	query := fmt.Sprintf(`
		SELECT c.%s, c.%s, c.%s
		FROM %s c
		JOIN %s link ON link.%s = c.%s
		WHERE link.%s = $1
		ORDER BY c.%s ASC
	`,
		schema.Comics.ID,
		schema.Comics.Title,
		schema.Comics.Cover,
		schema.Comics.Table,
		schema.ComicsHasCharacter.Table,
		schema.ComicsHasCharacter.ComicsID, schema.Comics.ID,
		schema.ComicsHasCharacter.CharacterID,
		schema.Comics.ID,
	)

	rows, err := repository.pool.Query(ctx, query, characterID)
	if err != nil {
		return nil, dberr.Wrap(err, "list character comics")
	}
	defer rows.Close()

	var previews []*ComicsPreview
	for rows.Next() {
		preview := &ComicsPreview{}
		var coverFile string

		if err := rows.Scan(&preview.ID, &preview.Title, &coverFile); err != nil {
			return nil, dberr.Wrap(err, "scan comics preview")
		}

		preview.Cover = media.Path(constants.ComicsDir, preview.ID, coverFile)
		previews = append(previews, preview)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "iterate character comics")
	}

	return previews, nil
}

// Link records the character's appearance in a comic, idempotently.
func (repository *repository) Link(ctx context.Context, characterID, comicsID int64) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`,
		schema.ComicsHasCharacter.Table,
		schema.ComicsHasCharacter.ComicsID,
		schema.ComicsHasCharacter.CharacterID,
	)

	if _, err := repository.pool.Exec(ctx, query, comicsID, characterID); err != nil {
		return dberr.Wrap(err, "link character to comic")
	}
	return nil
}

// Unlink removes the appearance record. Absent pairs are a no-op.
func (repository *repository) Unlink(ctx context.Context, characterID, comicsID int64) error {
	query := fmt.Sprintf(
		"DELETE FROM %s WHERE %s = $1 AND %s = $2",
		schema.ComicsHasCharacter.Table,
		schema.ComicsHasCharacter.ComicsID,
		schema.ComicsHasCharacter.CharacterID,
	)

	if _, err := repository.pool.Exec(ctx, query, comicsID, characterID); err != nil {
		return dberr.Wrap(err, "unlink character from comic")
	}
	return nil
}

// sortColumn maps a client sort field onto a whitelisted column name. The
// character catalog only sorts by name; anything else falls back to it.
func sortColumn(sortField string) string {
	switch sortField {
	case FieldName:
		return schema.Characters.Name
	default:
		return schema.Characters.Name
	}
}
