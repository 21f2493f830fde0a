// Copyright (c) 2026 Marvelis. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// ComicsPageTable represents the 'comics_page' table
type ComicsPageTable struct {
	Table    string
	PathFile string
	Order    string
	ComicsID string
}

// ComicsPage is the schema definition for 'comics_page'.
// The sort key column is named order_page because ORDER is a reserved word.
var ComicsPage = ComicsPageTable{
	Table:    "comics_page",
	PathFile: "path_file",
	Order:    "order_page",
	ComicsID: "comics_id",
}

func (t ComicsPageTable) Columns() []string {
	return []string{t.PathFile, t.Order, t.ComicsID}
}
