// Copyright (c) 2026 Marvelis. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package comics defines the comics side of the Marvelis catalog.

It manages comic issues, their cover image, and the ordered set of page
images that make an issue readable, plus the character associations shared
with the character domain.

Core Responsibility:

  - Catalog: Comic CRUD with server-assigned integer identity.
  - Reader: Ordered page storage and ordinal-based single-page retrieval.
  - Media: Cover and page images through the blob store.
*/
package comics

import (
	"github.com/taibuivan/marvelis/internal/platform/constants"
	"github.com/taibuivan/marvelis/internal/platform/media"
)

// # Core Entities

// Comic is the aggregate root of the comics domain.
//
// CoverFile holds the stored filename only; Cover carries the resolved
// display path /comics/{id}/{filename} and is recomputed via
// [Comic.ResolveMedia] before the entity leaves the service layer.
type Comic struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`

	// Release is the publication date as an opaque display string. It is
	// stored and emitted verbatim; the catalog never parses it.
	Release string `json:"release"`

	CoverFile string `json:"-"`
	Cover     string `json:"cover"`
}

// ResolveMedia recomputes the display path for the comic's cover.
func (c *Comic) ResolveMedia() {
	c.Cover = media.Path(constants.ComicsDir, c.ID, c.CoverFile)
}

// Page is one stored page image of a comic. The stored filename is the
// primary key; the order column drives reading order.
type Page struct {
	PathFile string
	Order    int64
	ComicsID int64
}

// # Projections

// Preview is the short-form projection of a [Comic] used in list views.
type Preview struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Cover string `json:"cover"`
}

// CharacterPreview is the short-form projection of an associated character.
//
// Declared here rather than imported so the two catalog domains stay
// independent of each other's packages.
type CharacterPreview struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Portrait string `json:"portrait"`
}

// PageView is the reader projection of a single page: the parent comic's
// identity plus the resolved image path.
type PageView struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Image string `json:"image"`
}

// View is the tagged result of a comic lookup: exactly one of Comic or Page
// is set, depending on whether a page ordinal resolved.
type View struct {
	Comic *Comic
	Page  *PageView
}

// Body returns the JSON payload of the view.
func (v View) Body() interface{} {
	if v.Page != nil {
		return v.Page
	}
	return v.Comic
}

// # Field Identifiers

// Global field names for validation and dynamic query mapping.
const (
	FieldID          = "id"
	FieldTitle       = "title"
	FieldRelease     = "release"
	FieldCover       = "cover"
	FieldOrder       = "order"
	FieldFile        = "file"
	FieldPageQuery   = "page"
	FieldCharacterID = "character_id"
)

// Sort fields accepted by the list endpoint.
const (
	SortTitle   = "title"
	SortRelease = "release"
)
