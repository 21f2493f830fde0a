// Copyright (c) 2026 Marvelis. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package comics PostgreSQL implementation of the data access layer.

The repository keeps queries flat and explicit:
  - Window Functions: COUNT(*) OVER() delivers list totals without a second query.
  - Ordinal Paging: OFFSET/LIMIT over the reading order resolves the n-th page
    of a comic in one query.
  - Cascaded Cleanup: Page and join rows disappear with the comic via FK
    ON DELETE CASCADE.
*/
package comics

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
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

// NewRepository constructs a PostgreSQL backed comics store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

/*
List returns a page of comic previews plus the catalog-wide total.

Description: Uses the COUNT(*) OVER() window function to retrieve the total
record count in the same round-trip as the page itself. The sort column is
resolved through [sortColumn] and never interpolated from raw client input.

Parameters:
  - ctx: context.Context
  - sortField: string ("title" or "release"; unknown values fall back to title)
  - limit: int
  - offset: int

Returns:
  - []*Preview: slice of comic previews with resolved cover paths
  - int: total comic count
  - error: wrapped database execution errors
*/
func (repository *repository) List(ctx context.Context, sortField string, limit, offset int) ([]*Preview, int, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, COUNT(*) OVER() AS total_count
		FROM %s
		ORDER BY %s ASC, %s ASC
		LIMIT $1 OFFSET $2
	`,
		schema.Comics.ID,
		schema.Comics.Title,
		schema.Comics.Cover,
		schema.Comics.Table,
		sortColumn(sortField),
		schema.Comics.ID,
	)

	rows, err := repository.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list comics")
	}
	defer rows.Close()

	var previews []*Preview
	var totalCount int

	for rows.Next() {
		preview := &Preview{}
		var coverFile string

		if err := rows.Scan(&preview.ID, &preview.Title, &coverFile, &totalCount); err != nil {
			return nil, 0, dberr.Wrap(err, "scan comic preview")
		}

		preview.Cover = media.Path(constants.ComicsDir, preview.ID, coverFile)
		previews = append(previews, preview)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "iterate comics")
	}

	return previews, totalCount, nil
}

/*
FindByID retrieves a full comic row by its primary key.

Returns:
  - *Comic: the hydrated entity with its resolved cover path
  - error: [dberr.ErrNotFound] when the row does not exist
*/
func (repository *repository) FindByID(ctx context.Context, id int64) (*Comic, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
	`,
		schema.Comics.ID,
		schema.Comics.Title,
		schema.Comics.Release,
		schema.Comics.Cover,
		schema.Comics.Table,
		schema.Comics.ID,
	)

	comic := &Comic{}
	err := repository.pool.QueryRow(ctx, query, id).Scan(
		&comic.ID,
		&comic.Title,
		&comic.Release,
		&comic.CoverFile,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "find comic by id")
	}

	comic.ResolveMedia()
	return comic, nil
}

// Exists reports whether a comic row with the given id is present.
func (repository *repository) Exists(ctx context.Context, id int64) (bool, error) {
	query := fmt.Sprintf(
		"SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)",
		schema.Comics.Table, schema.Comics.ID,
	)

	var exists bool
	if err := repository.pool.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "check comic exists")
	}
	return exists, nil
}

/*
Create inserts a new comic row and assigns the generated id.

The id column is always server-generated; whatever the caller put in the
entity's ID field is overwritten by the RETURNING clause.
*/
func (repository *repository) Create(ctx context.Context, comic *Comic) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s)
		VALUES ($1, $2, $3)
		RETURNING %s
	`,
		schema.Comics.Table,
		schema.Comics.Title,
		schema.Comics.Release,
		schema.Comics.Cover,
		schema.Comics.ID,
	)

	err := repository.pool.QueryRow(ctx, query,
		comic.Title,
		comic.Release,
		comic.CoverFile,
	).Scan(&comic.ID)
	if err != nil {
		return dberr.Wrap(err, "create comic")
	}

	return nil
}

// Update replaces every mutable column of an existing row. A zero row count
// maps to [dberr.ErrNotFound].
func (repository *repository) Update(ctx context.Context, comic *Comic) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4
		WHERE %s = $1
	`,
		schema.Comics.Table,
		schema.Comics.Title,
		schema.Comics.Release,
		schema.Comics.Cover,
		schema.Comics.ID,
	)

	result, err := repository.pool.Exec(ctx, query,
		comic.ID,
		comic.Title,
		comic.Release,
		comic.CoverFile,
	)
	if err != nil {
		return dberr.Wrap(err, "update comic")
	}
	if result.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	return nil
}

// SetCover stores the cover filename for an existing row.
func (repository *repository) SetCover(ctx context.Context, id int64, filename string) error {
	query := fmt.Sprintf(
		"UPDATE %s SET %s = $2 WHERE %s = $1",
		schema.Comics.Table, schema.Comics.Cover, schema.Comics.ID,
	)

	if _, err := repository.pool.Exec(ctx, query, id, filename); err != nil {
		return dberr.Wrap(err, "set comic cover")
	}
	return nil
}

// Delete removes the row. Page and association rows follow via FK cascade.
// It reports whether a row actually existed.
func (repository *repository) Delete(ctx context.Context, id int64) (bool, error) {
	query := fmt.Sprintf(
		"DELETE FROM %s WHERE %s = $1",
		schema.Comics.Table, schema.Comics.ID,
	)

	result, err := repository.pool.Exec(ctx, query, id)
	if err != nil {
		return false, dberr.Wrap(err, "delete comic")
	}
	return result.RowsAffected() > 0, nil
}

/*
ListCharacters returns previews of every character appearing in the comic.

The association is stored in one direction only (comics_has_character), so a
single join resolves the comic's cast.
*/
func (repository *repository) ListCharacters(ctx context.Context, comicsID int64) ([]*CharacterPreview, error) {
	query := fmt.Sprintf(`
		SELECT ch.%s, ch.%s, ch.%s
		FROM %s ch
		JOIN %s link ON link.%s = ch.%s
		WHERE link.%s = $1
		ORDER BY ch.%s ASC
	`,
		schema.Characters.ID,
		schema.Characters.Name,
		schema.Characters.Portrait,
		schema.Characters.Table,
		schema.ComicsHasCharacter.Table,
		schema.ComicsHasCharacter.CharacterID, schema.Characters.ID,
		schema.ComicsHasCharacter.ComicsID,
		schema.Characters.Name,
	)

	rows, err := repository.pool.Query(ctx, query, comicsID)
	if err != nil {
		return nil, dberr.Wrap(err, "list comic characters")
	}
	defer rows.Close()

	var previews []*CharacterPreview
	for rows.Next() {
		preview := &CharacterPreview{}
		var portraitFile string

		if err := rows.Scan(&preview.ID, &preview.Name, &portraitFile); err != nil {
			return nil, dberr.Wrap(err, "scan character preview")
		}

		preview.Portrait = media.Path(constants.CharacterDir, preview.ID, portraitFile)
		previews = append(previews, preview)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "iterate comic characters")
	}

	return previews, nil
}

// # Page Sub-Resource

/*
PageByOrdinal returns the n-th page of a comic in reading order.

Ordinals are 1-based. Reading order is the order column ascending with the
stored filename as tiebreaker, so duplicate order values still yield a
stable sequence. A comic with fewer pages yields nil, not an error; the
service falls back to the full comic record.
*/
func (repository *repository) PageByOrdinal(ctx context.Context, comicsID int64, ordinal int) (*Page, error) {
	if ordinal < 1 {
		return nil, nil
	}

	query := fmt.Sprintf(`
		SELECT %s, %s, %s
		FROM %s
		WHERE %s = $1
		ORDER BY %s ASC, %s ASC
		OFFSET $2 LIMIT 1
	`,
		schema.ComicsPage.PathFile,
		schema.ComicsPage.Order,
		schema.ComicsPage.ComicsID,
		schema.ComicsPage.Table,
		schema.ComicsPage.ComicsID,
		schema.ComicsPage.Order,
		schema.ComicsPage.PathFile,
	)

	page := &Page{}
	err := repository.pool.QueryRow(ctx, query, comicsID, ordinal-1).Scan(
		&page.PathFile,
		&page.Order,
		&page.ComicsID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, dberr.Wrap(err, "find page by ordinal")
	}

	return page, nil
}

// CreatePage inserts one page row.
func (repository *repository) CreatePage(ctx context.Context, page *Page) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s)
		VALUES ($1, $2, $3)
	`,
		schema.ComicsPage.Table,
		schema.ComicsPage.PathFile,
		schema.ComicsPage.Order,
		schema.ComicsPage.ComicsID,
	)

	if _, err := repository.pool.Exec(ctx, query, page.PathFile, page.Order, page.ComicsID); err != nil {
		return dberr.Wrap(err, "create page")
	}
	return nil
}

// FindPageByFile returns the page owning the stored filename, or nil when no
// such page exists.
func (repository *repository) FindPageByFile(ctx context.Context, filename string) (*Page, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s
		FROM %s
		WHERE %s = $1
	`,
		schema.ComicsPage.PathFile,
		schema.ComicsPage.Order,
		schema.ComicsPage.ComicsID,
		schema.ComicsPage.Table,
		schema.ComicsPage.PathFile,
	)

	page := &Page{}
	err := repository.pool.QueryRow(ctx, query, filename).Scan(
		&page.PathFile,
		&page.Order,
		&page.ComicsID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, dberr.Wrap(err, "find page by file")
	}

	return page, nil
}

// DeletePage removes one page row by stored filename. Absent rows are a no-op.
func (repository *repository) DeletePage(ctx context.Context, filename string) error {
	query := fmt.Sprintf(
		"DELETE FROM %s WHERE %s = $1",
		schema.ComicsPage.Table, schema.ComicsPage.PathFile,
	)

	if _, err := repository.pool.Exec(ctx, query, filename); err != nil {
		return dberr.Wrap(err, "delete page")
	}
	return nil
}

// sortColumn maps a client sort field onto a whitelisted column name.
func sortColumn(sortField string) string {
	switch sortField {
	case SortRelease:
		return schema.Comics.Release
	case SortTitle:
		return schema.Comics.Title
	default:
		return schema.Comics.Title
	}
}
