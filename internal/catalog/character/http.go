// Copyright (c) 2026 Marvelis. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package character HTTP interface for the character catalog.

Creation and update are multipart endpoints: the entity travels as a JSON
string in the "character" form field next to an optional "img" file part.
The handler translates between the web layer and the domain [Service].
*/
package character

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/marvelis/internal/platform/request"
	"github.com/taibuivan/marvelis/internal/platform/respond"
	"github.com/taibuivan/marvelis/pkg/pagination"
)

// # Handler Implementation

// Handler implements the HTTP layer for character management.
type Handler struct {
	service *Service
}

// NewHandler constructs a new character [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with the character endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listCharacters)
	router.Get("/{id}", handler.getCharacter)
	router.Get("/{id}/comics", handler.listCharacterComics)

	router.Post("/", handler.createCharacter)
	router.Put("/{id}", handler.updateCharacter)
	router.Delete("/{id}", handler.deleteCharacter)

	// Associations are managed from the character side.
	router.Post("/{id}/comics", handler.linkComic)
	router.Delete("/{id}/comics", handler.unlinkComic)

	return router
}

// # Request Payloads

// characterRequest defines the inbound JSON schema for creation and update.
// An id in the payload is accepted and discarded; identity comes from the
// server on create and from the URL on update.
type characterRequest struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	CreateDate  string `json:"createDate"`
	Description string `json:"description"`
	Biography   string `json:"biography"`
}

// entity maps the payload onto a domain entity with the given id.
func (payload characterRequest) entity(id int64) *Character {
	return &Character{
		ID:          id,
		Name:        payload.Name,
		CreateDate:  payload.CreateDate,
		Description: payload.Description,
		Biography:   payload.Biography,
	}
}

// # Read Endpoints

/*
GET /api/v1/characters.

Description: Retrieves a paginated list of character previews sorted by name.

Request:
  - limit: int (1..20, default 20)
  - offset: int (default 0)

Response:
  - 200: []Preview: Paginated list with total count metadata
*/
func (handler *Handler) listCharacters(writer http.ResponseWriter, request *http.Request) {
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
GET /api/v1/characters/{id}.

Response:
  - 200: Character: Full record with resolved portrait path
  - 404: NOT_FOUND: Unknown id (message names the id)
*/
func (handler *Handler) getCharacter(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	character, err := handler.service.Get(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, character)
}

/*
GET /api/v1/characters/{id}/comics.

Description: Lists previews of every comic the character appears in. An
unknown character id is a 404, not an empty list.

Response:
  - 200: []ComicsPreview
  - 404: NOT_FOUND: Unknown character id
*/
func (handler *Handler) listCharacterComics(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	previews, err := handler.service.ListComics(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, previews)
}

// # Mutation Endpoints

/*
POST /api/v1/characters.

Description: Creates a character from a multipart form. The "character" field
carries the entity JSON; an optional "img" part carries the portrait.

Response:
  - 201: Character: Created record with server-assigned id
  - 400: VALIDATION_ERROR: Malformed form, JSON, or failed field rules
*/
func (handler *Handler) createCharacter(writer http.ResponseWriter, request *http.Request) {
	var payload characterRequest
	if err := requestutil.DecodeMultipartJSON(request, "character", &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	portrait, closePortrait, err := requestutil.FormUpload(request, "img")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	defer closePortrait()

	character, err := handler.service.Create(request.Context(), payload.entity(0), portrait)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, character)
}

/*
PUT /api/v1/characters/{id}.

Description: Full replacement of the character row. Fields omitted from the
JSON payload become empty. A new "img" part replaces the stored portrait.

Response:
  - 200: Character: Updated record
  - 400: VALIDATION_ERROR
  - 404: NOT_FOUND: Unknown id
*/
func (handler *Handler) updateCharacter(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var payload characterRequest
	if err := requestutil.DecodeMultipartJSON(request, "character", &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	portrait, closePortrait, err := requestutil.FormUpload(request, "img")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	defer closePortrait()

	character, err := handler.service.Update(request.Context(), payload.entity(id), portrait)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, character)
}

/*
DELETE /api/v1/characters/{id}.

Description: Removes the character, its associations, and its media files.
Idempotent; unknown ids succeed.

Response:
  - 204: No Content
*/
func (handler *Handler) deleteCharacter(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// # Association Endpoints

/*
POST /api/v1/characters/{id}/comics?comics_id={comicsID}.

Description: Records the character's appearance in a comic. Relinking an
existing pair succeeds without effect.

Response:
  - 204: No Content
  - 400: BAD_REQUEST: Either endpoint of the association does not exist
*/
func (handler *Handler) linkComic(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	comicsID, err := requestutil.RequiredQueryInt64(request, FieldComicsID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.LinkComic(request.Context(), id, comicsID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
DELETE /api/v1/characters/{id}/comics?comics_id={comicsID}.

Description: Removes the appearance record. Unlinking an absent pair succeeds.

Response:
  - 204: No Content
  - 400: BAD_REQUEST: Unknown character id
*/
func (handler *Handler) unlinkComic(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	comicsID, err := requestutil.RequiredQueryInt64(request, FieldComicsID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.UnlinkComic(request.Context(), id, comicsID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
