// Copyright (c) 2026 Marvelis. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comics

import (
	"context"

	"github.com/taibuivan/marvelis/internal/platform/media"
)

// # Storage Contracts

// Repository defines the persistence operations of the comics domain,
// including the page sub-resource managed through the same aggregate.
//
// Implementations live in store_postgres.go; tests substitute in-memory fakes.
type Repository interface {
	// List returns a page of comic previews ordered by the given sort
	// column plus the total number of comics in the catalog.
	List(ctx context.Context, sortField string, limit, offset int) ([]*Preview, int, error)

	// FindByID returns the full comic row or [dberr.ErrNotFound].
	FindByID(ctx context.Context, id int64) (*Comic, error)

	// Exists reports whether a comic row with the given id is present.
	Exists(ctx context.Context, id int64) (bool, error)

	// Create inserts a new row and assigns the generated id to the entity.
	Create(ctx context.Context, comic *Comic) error

	// Update replaces every mutable column of an existing row.
	Update(ctx context.Context, comic *Comic) error

	// SetCover stores the cover filename for an existing row.
	SetCover(ctx context.Context, id int64, filename string) error

	// Delete removes the row with its pages and association records. It
	// reports whether a row actually existed.
	Delete(ctx context.Context, id int64) (bool, error)

	// ListCharacters returns previews of every character appearing in the comic.
	ListCharacters(ctx context.Context, comicsID int64) ([]*CharacterPreview, error)

	// PageByOrdinal returns the n-th page (1-based) in reading order, or
	// nil when the comic has fewer pages.
	PageByOrdinal(ctx context.Context, comicsID int64, ordinal int) (*Page, error)

	// CreatePage inserts one page row.
	CreatePage(ctx context.Context, page *Page) error

	// FindPageByFile returns the page owning the stored filename, or nil
	// when no such page exists.
	FindPageByFile(ctx context.Context, filename string) (*Page, error)

	// DeletePage removes one page row by stored filename.
	DeletePage(ctx context.Context, filename string) error
}

// MediaStore is the blob-store surface used for covers and page images.
type MediaStore interface {
	Save(ctx context.Context, dir string, ownerID int64, upload *media.Upload) (string, error)
	Remove(ctx context.Context, dir string, ownerID int64, filename string) bool
	RemoveAll(ctx context.Context, dir string, ownerID int64) bool
}
