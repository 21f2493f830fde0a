// Copyright (c) 2026 Marvelis. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pagination_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/marvelis/pkg/pagination"
)

/*
TestClampLimit verifies the limit window: anything outside [1, 20] collapses
to the default of 20, anything inside passes through unchanged.
*/
func TestClampLimit(t *testing.T) {
	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{"negative", -5, 20},
		{"zero", 0, 20},
		{"lower_bound", 1, 1},
		{"inside_range", 13, 13},
		{"upper_bound", 20, 20},
		{"just_above", 21, 20},
		{"huge", 1000000, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pagination.ClampLimit(tt.limit))
		})
	}
}

/*
TestClampOffset verifies negative offsets collapse to zero.
*/
func TestClampOffset(t *testing.T) {
	assert.Equal(t, 0, pagination.ClampOffset(-1))
	assert.Equal(t, 0, pagination.ClampOffset(0))
	assert.Equal(t, 7, pagination.ClampOffset(7))
}

/*
TestFromRequest exercises query-string parsing plus clamping together.
*/
func TestFromRequest(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantLimit  int
		wantOffset int
	}{
		{"absent_params", "", 20, 0},
		{"valid_params", "?limit=5&offset=10", 5, 10},
		{"excessive_limit", "?limit=500", 20, 0},
		{"negative_both", "?limit=-1&offset=-3", 20, 0},
		{"non_numeric", "?limit=abc&offset=xyz", 20, 0},
		{"zero_limit", "?limit=0", 20, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest("GET", "/characters"+tt.query, nil)
			params := pagination.FromRequest(request)

			assert.Equal(t, tt.wantLimit, params.Limit)
			assert.Equal(t, tt.wantOffset, params.Offset)
		})
	}
}

/*
TestNewMeta checks the metadata block passed to the response envelope.
*/
func TestNewMeta(t *testing.T) {
	meta := pagination.NewMeta(20, 40, 113)

	assert.Equal(t, 20, meta.Limit)
	assert.Equal(t, 40, meta.Offset)
	assert.Equal(t, 113, meta.Total)
}
