// Copyright (c) 2026 Marvelis. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package schema centralizes table and column identifiers for the catalog
// database so that repository queries never embed raw string literals.
package schema

// CharactersTable represents the 'characters' table
type CharactersTable struct {
	Table       string
	ID          string
	Name        string
	CreateDate  string
	Portrait    string
	Description string
	Biography   string
}

// Characters is the schema definition for 'characters'
var Characters = CharactersTable{
	Table:       "characters",
	ID:          "id",
	Name:        "name",
	CreateDate:  "create_date",
	Portrait:    "portrait",
	Description: "description",
	Biography:   "biography",
}

func (t CharactersTable) Columns() []string {
	return []string{t.ID, t.Name, t.CreateDate, t.Portrait, t.Description, t.Biography}
}
