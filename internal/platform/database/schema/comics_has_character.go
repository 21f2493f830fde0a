// Copyright (c) 2026 Marvelis. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// ComicsHasCharacterTable represents the 'comics_has_character' join table
type ComicsHasCharacterTable struct {
	Table       string
	ComicsID    string
	CharacterID string
}

// ComicsHasCharacter is the schema definition for 'comics_has_character'.
// It is the single persisted direction of the character↔comics association.
var ComicsHasCharacter = ComicsHasCharacterTable{
	Table:       "comics_has_character",
	ComicsID:    "comics_id",
	CharacterID: "character_id",
}
