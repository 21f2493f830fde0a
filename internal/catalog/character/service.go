// Copyright (c) 2026 Marvelis. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package character service layer: orchestration of validation, persistence
and media for the character domain.

Write operations follow a strict order: validate, persist the row, then store
the image and record its filename. Uploads complete before the operation
returns, so a client that immediately re-reads the entity always sees the
image path it was just given.
*/
package character

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

// maxNameLen bounds the character name column.
const maxNameLen = 250

// Service implements the business logic of the character domain.
type Service struct {
	repo   Repository
	comics ComicsDirectory
	files  MediaStore
	logger *slog.Logger
}

// NewService constructs the character [Service] with its dependencies.
func NewService(repo Repository, comics ComicsDirectory, files MediaStore, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		comics: comics,
		files:  files,
		logger: logger,
	}
}

// # Read Operations

/*
List returns a page of character previews sorted by name.

Parameters:
  - ctx: context.Context
  - sortField: string (only "name" is meaningful; unknown values sort by name)
  - limit: int (already clamped by the pagination layer)
  - offset: int

Returns:
  - []*Preview: the page of previews
  - int: total character count for pagination metadata
  - error: storage errors
*/
func (service *Service) List(ctx context.Context, sortField string, limit, offset int) ([]*Preview, int, error) {
	return service.repo.List(ctx, sortField, limit, offset)
}

/*
Get returns the full character record.

Returns:
  - *Character: the entity with resolved portrait path
  - error: NOT_FOUND naming the id when the row does not exist
*/
func (service *Service) Get(ctx context.Context, id int64) (*Character, error) {
	character, err := service.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return nil, apperr.NotFoundID("Character", id)
		}
		return nil, err
	}
	return character, nil
}

/*
ListComics returns previews of every comic the character appears in.

The parent is checked first: an unknown character id yields NOT_FOUND rather
than an empty list.
*/
func (service *Service) ListComics(ctx context.Context, id int64) ([]*ComicsPreview, error) {
	exists, err := service.repo.Exists(ctx, id)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.NotFoundID("Character", id)
	}

	return service.repo.ListComics(ctx, id)
}

// # Write Operations

/*
Create validates and persists a new character, optionally with a portrait.

Any client-supplied id is discarded; identity is always server-assigned. The
portrait upload, when present, is written to the blob store after the row
exists (the store keys files by the generated id) and its filename recorded
on the row before the call returns.

Parameters:
  - ctx: context.Context
  - character: *Character carrying the validated payload fields
  - portrait: *media.Upload (nil when no image part was sent)

Returns:
  - *Character: the stored entity with assigned id and resolved portrait path
  - error: VALIDATION_ERROR on bad input, storage or media faults otherwise
*/
func (service *Service) Create(ctx context.Context, character *Character, portrait *media.Upload) (*Character, error) {
	if err := service.validate(character); err != nil {
		return nil, err
	}

	normalized, err := NormalizeCreateDate(character.CreateDate)
	if err != nil {
		return nil, err
	}
	character.CreateDate = normalized

	// Identity and portrait are server-managed.
	character.ID = 0
	character.PortraitFile = ""

	if err := service.repo.Create(ctx, character); err != nil {
		return nil, err
	}

	if portrait != nil {
		stored, err := service.files.Save(ctx, constants.CharacterDir, character.ID, portrait)
		if err != nil {
			return nil, err
		}
		if err := service.repo.SetPortrait(ctx, character.ID, stored); err != nil {
			return nil, err
		}
		character.PortraitFile = stored
	}

	character.ResolveMedia()

	service.logger.InfoContext(ctx, "character_created",
		slog.Int64("character_id", character.ID),
		slog.String("name", character.Name),
	)

	return character, nil
}

/*
Update replaces the full character row.

Every mutable column takes the incoming value; fields omitted from the
payload arrive as zero values and blank their columns. The portrait is the
exception: it is server-managed and survives unless a new image part
replaces it, in which case the previous file is removed first (best-effort,
using the pre-update filename).

Returns:
  - *Character: the stored entity with resolved portrait path
  - error: NOT_FOUND naming the id when the row does not exist
*/
func (service *Service) Update(ctx context.Context, character *Character, portrait *media.Upload) (*Character, error) {
	if err := service.validate(character); err != nil {
		return nil, err
	}

	normalized, err := NormalizeCreateDate(character.CreateDate)
	if err != nil {
		return nil, err
	}
	character.CreateDate = normalized

	previous, err := service.repo.FindByID(ctx, character.ID)
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return nil, apperr.NotFoundID("Character", character.ID)
		}
		return nil, err
	}

	character.PortraitFile = previous.PortraitFile
	if portrait != nil {
		service.files.Remove(ctx, constants.CharacterDir, character.ID, previous.PortraitFile)

		stored, err := service.files.Save(ctx, constants.CharacterDir, character.ID, portrait)
		if err != nil {
			return nil, err
		}
		character.PortraitFile = stored
	}

	if err := service.repo.Update(ctx, character); err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return nil, apperr.NotFoundID("Character", character.ID)
		}
		return nil, err
	}

	character.ResolveMedia()

	service.logger.InfoContext(ctx, "character_updated",
		slog.Int64("character_id", character.ID),
	)

	return character, nil
}

/*
Delete removes a character, its association rows and its media directory.

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

	service.files.RemoveAll(ctx, constants.CharacterDir, id)

	service.logger.InfoContext(ctx, "character_deleted",
		slog.Int64("character_id", id),
	)
	return nil
}

// # Associations

/*
LinkComic records the character's appearance in a comic.

Both endpoints must exist; a missing character or comic yields BAD_REQUEST
rather than silently writing a dangling association. Relinking an existing
pair succeeds without effect.
*/
func (service *Service) LinkComic(ctx context.Context, characterID, comicsID int64) error {
	characterExists, err := service.repo.Exists(ctx, characterID)
	if err != nil {
		return err
	}
	comicExists, err := service.comics.Exists(ctx, comicsID)
	if err != nil {
		return err
	}
	if !characterExists || !comicExists {
		return apperr.BadRequest("Both character and comic must exist to be linked")
	}

	if err := service.repo.Link(ctx, characterID, comicsID); err != nil {
		return err
	}

	service.logger.InfoContext(ctx, "character_comic_linked",
		slog.Int64("character_id", characterID),
		slog.Int64("comics_id", comicsID),
	)
	return nil
}

/*
UnlinkComic removes the appearance record.

The character must exist, else BAD_REQUEST, mirroring [Service.LinkComic].
The pair itself may be absent, in which case the call succeeds without
effect.
*/
func (service *Service) UnlinkComic(ctx context.Context, characterID, comicsID int64) error {
	exists, err := service.repo.Exists(ctx, characterID)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.BadRequest("Character must exist to be unlinked")
	}

	return service.repo.Unlink(ctx, characterID, comicsID)
}

// validate applies the field rules shared by Create and Update.
func (service *Service) validate(character *Character) error {
	v := &validate.Validator{}
	v.Required(FieldName, character.Name).
		MaxLen(FieldName, character.Name, maxNameLen)

	return v.Err()
}
