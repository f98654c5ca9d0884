package utils

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPage(t *testing.T) {
	tests := []struct {
		name            string
		totalCount      int64
		pageNumber      int
		pageSize        int
		wantTotalPages  int
		wantHasPrevious bool
		wantHasNext     bool
	}{
		{"first page of many", 45, 1, 20, 3, false, true},
		{"middle page", 45, 2, 20, 3, true, true},
		{"last partial page", 45, 3, 20, 3, true, false},
		{"exact fit", 40, 2, 20, 2, true, false},
		{"empty result", 0, 1, 20, 0, false, false},
		{"single item", 1, 1, 20, 1, false, false},
		{"page beyond end", 10, 5, 20, 1, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPage(nil, tt.totalCount, tt.pageNumber, tt.pageSize)
			assert.Equal(t, tt.totalCount, p.TotalCount)
			assert.Equal(t, tt.wantTotalPages, p.TotalPages)
			assert.Equal(t, tt.wantHasPrevious, p.HasPreviousPage)
			assert.Equal(t, tt.wantHasNext, p.HasNextPage)
		})
	}
}

func TestNewPageNormalizesBadInput(t *testing.T) {
	p := NewPage(nil, 10, 0, 0)
	assert.Equal(t, 1, p.PageNumber)
	assert.Equal(t, 1, p.PageSize)

	p = NewPage(nil, 10, -3, -5)
	assert.Equal(t, 1, p.PageNumber)
	assert.Equal(t, 1, p.PageSize)
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{ErrNotFound, http.StatusNotFound},
		{ErrValidation, http.StatusBadRequest},
		{ErrConflict, http.StatusBadRequest},
		{ErrVersionConflict, http.StatusBadRequest},
		{ErrCategoryInUse, http.StatusBadRequest},
		{ErrCategoryCycle, http.StatusBadRequest},
		{ErrInvalidCredentials, http.StatusUnauthorized},
		{ErrInvalidToken, http.StatusUnauthorized},
		{fmt.Errorf("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, HTTPStatus(tt.err), "error %v", tt.err)
	}
}

func TestHTTPStatusUnwrapsWrappedErrors(t *testing.T) {
	wrapped := fmt.Errorf("get product abc: %w", ErrNotFound)
	assert.Equal(t, http.StatusNotFound, HTTPStatus(wrapped))

	doubly := fmt.Errorf("handler: %w", fmt.Errorf("update: %w", ErrVersionConflict))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(doubly))
}
