// Copyright (c) 2026 Marvelis. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package character

import (
	"context"

	"github.com/taibuivan/marvelis/internal/platform/media"
)

// # Storage Contracts

// Repository defines the persistence operations of the character domain.
//
// Implementations live in store_postgres.go; tests substitute in-memory fakes.
type Repository interface {
	// List returns a page of character previews ordered by the given sort
	// column plus the total number of characters in the catalog.
	List(ctx context.Context, sortField string, limit, offset int) ([]*Preview, int, error)

	// FindByID returns the full character row or [dberr.ErrNotFound].
	FindByID(ctx context.Context, id int64) (*Character, error)

	// Exists reports whether a character row with the given id is present.
	Exists(ctx context.Context, id int64) (bool, error)

	// Create inserts a new row and assigns the generated id to the entity.
	Create(ctx context.Context, character *Character) error

	// Update replaces every mutable column of an existing row.
	Update(ctx context.Context, character *Character) error

	// SetPortrait stores the portrait filename for an existing row.
	SetPortrait(ctx context.Context, id int64, filename string) error

	// Delete removes the row. It reports whether a row actually existed;
	// deleting an absent id is not an error.
	Delete(ctx context.Context, id int64) (bool, error)

	// ListComics returns previews of every comic the character appears in.
	ListComics(ctx context.Context, characterID int64) ([]*ComicsPreview, error)

	// Link records the character's appearance in a comic. Relinking an
	// existing pair is a no-op.
	Link(ctx context.Context, characterID, comicsID int64) error

	// Unlink removes the appearance record. Unlinking an absent pair is a no-op.
	Unlink(ctx context.Context, characterID, comicsID int64) error
}

// ComicsDirectory is the narrow view of the comics domain the character
// service needs: existence checks before writing association rows. Keeping it
// an interface here avoids a package dependency between the two domains.
type ComicsDirectory interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

// MediaStore is the blob-store surface used for portrait files.
type MediaStore interface {
	Save(ctx context.Context, dir string, ownerID int64, upload *media.Upload) (string, error)
	Remove(ctx context.Context, dir string, ownerID int64, filename string) bool
	RemoveAll(ctx context.Context, dir string, ownerID int64) bool
}
