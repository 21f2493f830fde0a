// Copyright (c) 2026 Marvelis. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package character defines the character side of the Marvelis catalog.

It manages the lifecycle of comic-book characters: identity, portrait image,
free-text description and biography, and membership in comics (a shared
many-to-many association with the comics domain).

Core Responsibility:

  - Catalog: Character CRUD with server-assigned integer identity.
  - Media: Portrait upload/replacement through the blob store.
  - Association: Linking and unlinking the comics a character appears in.
*/
package character

import (
	"time"

	"github.com/taibuivan/marvelis/internal/platform/constants"
	"github.com/taibuivan/marvelis/internal/platform/media"
	"github.com/taibuivan/marvelis/internal/platform/validate"
)

// # Core Entity

// Character is the aggregate root of the character domain.
//
// PortraitFile holds the stored filename only; Portrait carries the resolved
// display path /character/{id}/{filename} and is recomputed via
// [Character.ResolveMedia] before the entity leaves the service layer. An
// absent portrait still resolves to the deterministic /character/{id}/ prefix
// with an empty filename suffix.
type Character struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`

	// CreateDate is the first-appearance date as a display string (d-MM-yyyy).
	// Input arrives in the wire format d.MM.yyyy and is normalized on write.
	CreateDate string `json:"createDate"`

	PortraitFile string `json:"-"`
	Portrait     string `json:"portrait"`

	Description string `json:"description"`
	Biography   string `json:"biography"`
}

// ResolveMedia recomputes the display path for the character's portrait.
func (c *Character) ResolveMedia() {
	c.Portrait = media.Path(constants.CharacterDir, c.ID, c.PortraitFile)
}

// # Projections

// Preview is the short-form projection of a [Character] used in list views.
type Preview struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Portrait string `json:"portrait"`
}

// ComicsPreview is the short-form projection of an associated comic.
//
// Declared here rather than imported so the two catalog domains stay
// independent of each other's packages.
type ComicsPreview struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Cover string `json:"cover"`
}

// # Dates

// NormalizeCreateDate converts a wire-format date (d.MM.yyyy) into the stored
// display format (d-MM-yyyy). Empty input is allowed and stays empty.
func NormalizeCreateDate(input string) (string, error) {
	if input == "" {
		return "", nil
	}

	parsed, err := time.Parse(constants.DateLayoutInput, input)
	if err != nil {
		return "", validate.RequiredError(FieldCreateDate, "Must be a date in the form d.MM.yyyy")
	}

	return parsed.Format(constants.DateLayoutDisplay), nil
}

// # Field Identifiers

// Global field names for validation and dynamic query mapping.
const (
	FieldID          = "id"
	FieldName        = "name"
	FieldCreateDate  = "createDate"
	FieldPortrait    = "portrait"
	FieldDescription = "description"
	FieldBiography   = "biography"
	FieldComicsID    = "comics_id"
)
