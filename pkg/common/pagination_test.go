package common_test

import (
	"testing"

	"fraudgraph/pkg/common"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePage(t *testing.T) {
	tests := []struct {
		name         string
		page         int
		pageSize     int
		wantPage     int
		wantPageSize int
	}{
		{name: "zero values get defaults", page: 0, pageSize: 0, wantPage: 1, wantPageSize: 20},
		{name: "negative values get defaults", page: -3, pageSize: -1, wantPage: 1, wantPageSize: 20},
		{name: "valid values pass through", page: 4, pageSize: 25, wantPage: 4, wantPageSize: 25},
		{name: "oversized page size caps", page: 1, pageSize: 500, wantPage: 1, wantPageSize: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, pageSize := common.NormalizePage(tt.page, tt.pageSize)
			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantPageSize, pageSize)
		})
	}
}

func TestCalculateTotalPages(t *testing.T) {
	assert.Equal(t, 0, common.CalculateTotalPages(10, 0))
	assert.Equal(t, 1, common.CalculateTotalPages(10, 10))
	assert.Equal(t, 2, common.CalculateTotalPages(11, 10))
	assert.Equal(t, 0, common.CalculateTotalPages(0, 10))
}

func TestNewPaginatedResult(t *testing.T) {
	result := common.NewPaginatedResult([]string{"a", "b"}, 2, 2, 5)

	assert.Equal(t, 2, result.Pagination.Page)
	assert.Equal(t, 5, result.Pagination.Total)
	assert.Equal(t, 3, result.Pagination.TotalPages)
	assert.True(t, result.Pagination.HasNext)
	assert.True(t, result.Pagination.HasPrev)
}
