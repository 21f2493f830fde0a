// Copyright (c) 2026 Marvelis. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package comics service layer: orchestration of validation, persistence
and media for the comics domain.

Write operations follow a strict order: validate, persist rows, then store
images and record their filenames. Uploads complete before the operation
returns, so a reader that immediately requests a freshly added page always
finds it.
*/
package comics

import (
	"context"
	"errors"
	"log/slog"

	"github.com/taibuivan/marvelis/internal/platform/apperr"
	"github.com/taibuivan/marvelis/internal/platform/constants"
	"github.com/taibuivan/marvelis/internal/platform/dberr"
	"github.com/taibuivan/marvelis/internal/platform/media"
	"github.com/taibuivan/marvelis/internal/platform/validate"
)

// maxTitleLen bounds the comic title column.
const maxTitleLen = 250

// Service implements the business logic of the comics domain.
type Service struct {
	repo   Repository
	files  MediaStore
	logger *slog.Logger
}

// NewService constructs the comics [Service] with its dependencies.
func NewService(repo Repository, files MediaStore, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		files:  files,
		logger: logger,
	}
}

// # Read Operations

/*
List returns a page of comic previews.

Parameters:
  - ctx: context.Context
  - sortField: string ("title" or "release"; unknown values sort by title)
  - limit: int (already clamped by the pagination layer)
  - offset: int

Returns:
  - []*Preview: the page of previews
  - int: total comic count for pagination metadata
  - error: storage errors
*/
func (service *Service) List(ctx context.Context, sortField string, limit, offset int) ([]*Preview, int, error) {
	return service.repo.List(ctx, sortField, limit, offset)
}

/*
Get returns either the full comic record or a single page of it.

A pageOrdinal of zero or less means "the comic itself". A positive ordinal
selects the n-th page (1-based) in reading order; when the comic has fewer
pages the full record is returned instead of an error, so readers paging
past the end land back on the issue.

Returns:
  - View: tagged result carrying either the comic or the page projection
  - error: NOT_FOUND naming the id when the comic does not exist
*/
func (service *Service) Get(ctx context.Context, id int64, pageOrdinal int) (View, error) {
	comic, err := service.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return View{}, apperr.NotFoundID("Comics", id)
		}
		return View{}, err
	}

	if pageOrdinal < 1 {
		return View{Comic: comic}, nil
	}

	page, err := service.repo.PageByOrdinal(ctx, id, pageOrdinal)
	if err != nil {
		return View{}, err
	}
	if page == nil {
		// Out-of-range ordinal: fall back to the issue record.
		return View{Comic: comic}, nil
	}

	return View{Page: &PageView{
		ID:    comic.ID,
		Title: comic.Title,
		Image: media.Path(constants.ComicsDir, comic.ID, page.PathFile),
	}}, nil
}

/*
ListCharacters returns previews of every character appearing in the comic.

The parent is checked first: an unknown comic id yields NOT_FOUND rather
than an empty list.
*/
func (service *Service) ListCharacters(ctx context.Context, id int64) ([]*CharacterPreview, error) {
	exists, err := service.repo.Exists(ctx, id)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.NotFoundID("Comics", id)
	}

	return service.repo.ListCharacters(ctx, id)
}

// # Write Operations

/*
Create validates and persists a new comic, optionally with a cover.

Any client-supplied id is discarded; identity is always server-assigned. The
cover upload, when present, is written to the blob store after the row
exists and its filename recorded on the row before the call returns.

Parameters:
  - ctx: context.Context
  - comic: *Comic carrying the validated payload fields
  - cover: *media.Upload (nil when no image part was sent)

Returns:
  - *Comic: the stored entity with assigned id and resolved cover path
  - error: VALIDATION_ERROR on bad input, storage or media faults otherwise
*/
func (service *Service) Create(ctx context.Context, comic *Comic, cover *media.Upload) (*Comic, error) {
	if err := service.validate(comic); err != nil {
		return nil, err
	}

	// Identity and cover are server-managed.
	comic.ID = 0
	comic.CoverFile = ""

	if err := service.repo.Create(ctx, comic); err != nil {
		return nil, err
	}

	if cover != nil {
		stored, err := service.files.Save(ctx, constants.ComicsDir, comic.ID, cover)
		if err != nil {
			return nil, err
		}
		if err := service.repo.SetCover(ctx, comic.ID, stored); err != nil {
			return nil, err
		}
		comic.CoverFile = stored
	}

	comic.ResolveMedia()

	service.logger.InfoContext(ctx, "comic_created",
		slog.Int64("comics_id", comic.ID),
		slog.String("title", comic.Title),
	)

	return comic, nil
}

/*
Update replaces the full comic row.

Every mutable column takes the incoming value; fields omitted from the
payload arrive as zero values and blank their columns. The cover is
server-managed and survives unless a new image part replaces it. Unlike the
character portrait, a replaced cover file is left on disk; the page reader
may still reference it in cached URLs.

Returns:
  - *Comic: the stored entity with resolved cover path
  - error: NOT_FOUND naming the id when the row does not exist
*/
func (service *Service) Update(ctx context.Context, comic *Comic, cover *media.Upload) (*Comic, error) {
	if err := service.validate(comic); err != nil {
		return nil, err
	}

	previous, err := service.repo.FindByID(ctx, comic.ID)
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return nil, apperr.NotFoundID("Comics", comic.ID)
		}
		return nil, err
	}

	comic.CoverFile = previous.CoverFile
	if cover != nil {
		stored, err := service.files.Save(ctx, constants.ComicsDir, comic.ID, cover)
		if err != nil {
			return nil, err
		}
		comic.CoverFile = stored
	}

	if err := service.repo.Update(ctx, comic); err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return nil, apperr.NotFoundID("Comics", comic.ID)
		}
		return nil, err
	}

	comic.ResolveMedia()

	service.logger.InfoContext(ctx, "comic_updated",
		slog.Int64("comics_id", comic.ID),
	)

	return comic, nil
}

/*
Delete removes a comic, its pages, its association rows and its media
directory.

Deletion is idempotent: an unknown id succeeds without touching storage.
Media cleanup is best-effort and never fails the call.
*/
func (service *Service) Delete(ctx context.Context, id int64) error {
	deleted, err := service.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return nil
	}

	service.files.RemoveAll(ctx, constants.ComicsDir, id)

	service.logger.InfoContext(ctx, "comic_deleted",
		slog.Int64("comics_id", id),
	)
	return nil
}

// # Associations

// LinkCharacter is declared by the comics contract but not built out; the
// association is managed from the character side. Explicit 501, never a
// silent no-op.
func (service *Service) LinkCharacter(ctx context.Context, comicsID, characterID int64) error {
	return apperr.NotImplemented("Linking characters from the comics side")
}

// UnlinkCharacter mirrors [Service.LinkCharacter].
func (service *Service) UnlinkCharacter(ctx context.Context, comicsID, characterID int64) error {
	return apperr.NotImplemented("Unlinking characters from the comics side")
}

// validate applies the field rules shared by Create and Update.
func (service *Service) validate(comic *Comic) error {
	v := &validate.Validator{}
	v.Required(FieldTitle, comic.Title).
		MaxLen(FieldTitle, comic.Title, maxTitleLen)

	return v.Err()
}
