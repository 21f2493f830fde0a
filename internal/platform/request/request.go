// Copyright (c) 2026 Marvelis. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction, JSON body
decoding, and the multipart conventions of the catalog API (a JSON part
carrying the entity plus optional image file parts), ensuring consistent
error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/marvelis/internal/platform/constants"
	"github.com/taibuivan/marvelis/internal/platform/media"
	"github.com/taibuivan/marvelis/internal/platform/validate"
)

/*
DecodeJSON reads the request body and decodes it into the target structure.

Parameters:
  - request: *http.Request
  - target: interface{} (Pointer to the destination struct)

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(request *http.Request, target interface{}) error {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
DecodeMultipartJSON parses the multipart form and decodes the named JSON
part into the target structure.

The catalog creation/update endpoints carry the entity as a JSON string in a
form field ("character" or "comics") next to optional binary file parts.

Returns:
  - error: validate.ErrInvalidJSON when the form cannot be parsed, the part
    is absent, or the JSON is malformed
*/
func DecodeMultipartJSON(request *http.Request, field string, target interface{}) error {
	if err := request.ParseMultipartForm(constants.MaxUploadMemory); err != nil {
		return validate.ErrInvalidJSON
	}

	raw := request.FormValue(field)
	if raw == "" {
		return validate.ErrInvalidJSON
	}

	if err := json.Unmarshal([]byte(raw), target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
FormUpload extracts a single optional file part from a multipart request.

Returns:
  - *media.Upload: nil when the part is absent (optional images are the norm)
  - func(): closer releasing the underlying file handle; always non-nil
  - error: validate.ErrInvalidJSON when the form cannot be parsed
*/
func FormUpload(request *http.Request, field string) (*media.Upload, func(), error) {
	noop := func() {}

	if err := request.ParseMultipartForm(constants.MaxUploadMemory); err != nil {
		return nil, noop, validate.ErrInvalidJSON
	}

	file, header, err := request.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, noop, nil
	}
	if err != nil {
		return nil, noop, validate.ErrInvalidJSON
	}

	upload := &media.Upload{
		Filename: header.Filename,
		Content:  file,
	}
	return upload, func() { _ = file.Close() }, nil
}

/*
FormUploads extracts every file attached under the named part of a multipart
request, in arrival order. Used by the page-batch endpoint.

Returns:
  - []*media.Upload: empty when no files were attached
  - func(): closer releasing all file handles; always non-nil
  - error: validate.ErrInvalidJSON when the form cannot be parsed or a part
    cannot be opened
*/
func FormUploads(request *http.Request, field string) ([]*media.Upload, func(), error) {
	noop := func() {}

	if err := request.ParseMultipartForm(constants.MaxUploadMemory); err != nil {
		return nil, noop, validate.ErrInvalidJSON
	}

	form := request.MultipartForm
	if form == nil {
		return nil, noop, nil
	}

	headers := form.File[field]
	uploads := make([]*media.Upload, 0, len(headers))
	closers := make([]func() error, 0, len(headers))
	closeAll := func() {
		for _, close := range closers {
			_ = close()
		}
	}

	for _, header := range headers {
		file, err := header.Open()
		if err != nil {
			closeAll()
			return nil, noop, validate.ErrInvalidJSON
		}
		closers = append(closers, file.Close)
		uploads = append(uploads, &media.Upload{
			Filename: header.Filename,
			Content:  file,
		})
	}

	return uploads, closeAll, nil
}

/*
ID retrieves a named int64 URL parameter from the request.

Returns:
  - int64: the parsed id
  - error: a VALIDATION_ERROR when the parameter is not a valid integer
*/
func ID(request *http.Request, name string) (int64, error) {
	raw := chi.URLParam(request, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, validate.RequiredError(name, "Must be an integer id")
	}
	return id, nil
}

/*
QueryInt64 parses an int64 query parameter, returning the fallback when the
parameter is absent or malformed.
*/
func QueryInt64(request *http.Request, name string, fallback int64) int64 {
	raw := request.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}

	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fallback
	}
	return value
}

/*
RequiredQueryInt64 parses a mandatory int64 query parameter.

Returns:
  - int64: the parsed value
  - error: a VALIDATION_ERROR when the parameter is absent or malformed
*/
func RequiredQueryInt64(request *http.Request, name string) (int64, error) {
	raw := request.URL.Query().Get(name)
	if raw == "" {
		return 0, validate.RequiredError(name, "This query parameter is required")
	}

	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, validate.RequiredError(name, "Must be an integer id")
	}
	return value, nil
}
