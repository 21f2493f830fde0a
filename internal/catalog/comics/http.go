// Copyright (c) 2026 Marvelis. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package comics HTTP interface for the comics catalog and page reader.

Creation and update are multipart endpoints: the entity travels as a JSON
string in the "comics" form field next to an optional "img" file part. Page
batches POST to the comic resource itself with one or more "images" parts.
The handler translates between the web layer and the domain [Service].
*/
package comics

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/marvelis/internal/platform/request"
	"github.com/taibuivan/marvelis/internal/platform/respond"
	"github.com/taibuivan/marvelis/pkg/pagination"
)

// # Handler Implementation

// Handler implements the HTTP layer for comic management and reading.
type Handler struct {
	service *Service
}

// NewHandler constructs a new comics [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with the comics endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listComics)
	router.Get("/{id}", handler.getComic)
	router.Get("/{id}/characters", handler.listComicCharacters)

	router.Post("/", handler.createComic)
	router.Put("/{id}", handler.updateComic)
	router.Delete("/{id}", handler.deleteComic)

	// Page batches post to the comic resource itself.
	router.Post("/{id}", handler.addPages)

	// Declared by the contract, managed from the character side.
	router.Post("/{id}/characters", handler.linkCharacter)
	router.Delete("/{id}/characters", handler.unlinkCharacter)

	return router
}

// # Request Payloads

// comicRequest defines the inbound JSON schema for creation and update.
// An id in the payload is accepted and discarded; identity comes from the
// server on create and from the URL on update.
type comicRequest struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	Release string `json:"release"`
}

// entity maps the payload onto a domain entity with the given id.
func (payload comicRequest) entity(id int64) *Comic {
	return &Comic{
		ID:      id,
		Title:   payload.Title,
		Release: payload.Release,
	}
}

// # Read Endpoints

/*
GET /api/v1/comics.

Description: Retrieves a paginated list of comic previews.

Request:
  - sort: string (title | release, default title)
  - limit: int (1..20, default 20)
  - offset: int (default 0)

Response:
  - 200: []Preview: Paginated list with total count metadata
*/
func (handler *Handler) listComics(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)
	sortField := request.URL.Query().Get("sort")

	previews, total, err := handler.service.List(request.Context(), sortField, paginationParams.Limit, paginationParams.Offset)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, previews, pagination.NewMeta(paginationParams.Limit, paginationParams.Offset, total))
}

/*
GET /api/v1/comics/{id}?page={ordinal}.

Description: Without a page parameter (or with page <= 0) returns the full
comic record. With a positive ordinal returns the n-th page in reading
order; ordinals past the last page fall back to the comic record.

Response:
  - 200: Comic | PageView
  - 404: NOT_FOUND: Unknown comic id (message names the id)
*/
func (handler *Handler) getComic(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	pageOrdinal := int(requestutil.QueryInt64(request, FieldPageQuery, 0))

	view, err := handler.service.Get(request.Context(), id, pageOrdinal)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, view.Body())
}

/*
GET /api/v1/comics/{id}/characters.

Description: Lists previews of every character appearing in the comic. An
unknown comic id is a 404, not an empty list.

Response:
  - 200: []CharacterPreview
  - 404: NOT_FOUND: Unknown comic id
*/
func (handler *Handler) listComicCharacters(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	previews, err := handler.service.ListCharacters(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, previews)
}

// # Mutation Endpoints

/*
POST /api/v1/comics.

Description: Creates a comic from a multipart form. The "comics" field
carries the entity JSON; an optional "img" part carries the cover.

Response:
  - 201: Comic: Created record with server-assigned id
  - 400: VALIDATION_ERROR: Malformed form, JSON, or failed field rules
*/
func (handler *Handler) createComic(writer http.ResponseWriter, request *http.Request) {
	var payload comicRequest
	if err := requestutil.DecodeMultipartJSON(request, "comics", &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	cover, closeCover, err := requestutil.FormUpload(request, "img")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	defer closeCover()

	comic, err := handler.service.Create(request.Context(), payload.entity(0), cover)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, comic)
}

/*
PUT /api/v1/comics/{id}.

Description: Full replacement of the comic row. Fields omitted from the JSON
payload become empty. A new "img" part replaces the stored cover.

Response:
  - 200: Comic: Updated record
  - 400: VALIDATION_ERROR
  - 404: NOT_FOUND: Unknown id
*/
func (handler *Handler) updateComic(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var payload comicRequest
	if err := requestutil.DecodeMultipartJSON(request, "comics", &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	cover, closeCover, err := requestutil.FormUpload(request, "img")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	defer closeCover()

	comic, err := handler.service.Update(request.Context(), payload.entity(id), cover)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, comic)
}

/*
DELETE /api/v1/comics/{id}?file={filename}.

Description: Without a file parameter, removes the comic with its pages,
associations, and media files (idempotent; unknown ids succeed). With a
file parameter, removes only the named page; unknown filenames succeed.

Response:
  - 204: No Content
*/
func (handler *Handler) deleteComic(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if filename := request.URL.Query().Get(FieldFile); filename != "" {
		if err := handler.service.DeletePage(request.Context(), filename); err != nil {
			respond.Error(writer, request, err)
			return
		}
		respond.NoContent(writer)
		return
	}

	if err := handler.service.Delete(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// # Page Endpoints

/*
POST /api/v1/comics/{id}?order={baseOrder}.

Description: Appends a batch of page images carried in "images" file parts.
The first file lands on the given order slot, subsequent files on the
following slots.

Response:
  - 204: No Content
  - 404: NOT_FOUND: Unknown comic id
*/
func (handler *Handler) addPages(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	baseOrder := requestutil.QueryInt64(request, FieldOrder, 0)

	uploads, closeUploads, err := requestutil.FormUploads(request, "images")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	defer closeUploads()

	if err := handler.service.AddPages(request.Context(), id, baseOrder, uploads); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// # Association Endpoints

/*
POST /api/v1/comics/{id}/characters?character_id={characterID}.

Description: Declared by the contract; the association is managed from the
character side.

Response:
  - 501: NOT_IMPLEMENTED
*/
func (handler *Handler) linkCharacter(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	characterID := requestutil.QueryInt64(request, FieldCharacterID, 0)

	respond.Error(writer, request, handler.service.LinkCharacter(request.Context(), id, characterID))
}

/*
DELETE /api/v1/comics/{id}/characters?character_id={characterID}.

Description: Declared by the contract; the association is managed from the
character side.

Response:
  - 501: NOT_IMPLEMENTED
*/
func (handler *Handler) unlinkCharacter(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	characterID := requestutil.QueryInt64(request, FieldCharacterID, 0)

	respond.Error(writer, request, handler.service.UnlinkCharacter(request.Context(), id, characterID))
}
