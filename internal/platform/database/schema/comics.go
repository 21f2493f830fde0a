// Copyright (c) 2026 Marvelis. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// ComicsTable represents the 'comics' table
type ComicsTable struct {
	Table   string
	ID      string
	Title   string
	Release string
	Cover   string
}

// Comics is the schema definition for 'comics'.
// The release column is named release_date because RELEASE is a reserved word.
var Comics = ComicsTable{
	Table:   "comics",
	ID:      "id",
	Title:   "title",
	Release: "release_date",
	Cover:   "cover",
}

func (t ComicsTable) Columns() []string {
	return []string{t.ID, t.Title, t.Release, t.Cover}
}
