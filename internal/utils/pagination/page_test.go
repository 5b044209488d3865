package pagination_test

import (
	"testing"

	"github.com/finbooks-app/finbooks_backend/internal/utils/pagination"
	"github.com/stretchr/testify/assert"
)

func TestClampLimit(t *testing.T) {
	assert.Equal(t, pagination.DefaultLimit, pagination.ClampLimit(0))
	assert.Equal(t, pagination.DefaultLimit, pagination.ClampLimit(-5))
	assert.Equal(t, 50, pagination.ClampLimit(50))
	assert.Equal(t, pagination.MaxLimit, pagination.ClampLimit(10000))
}

func TestClampPage(t *testing.T) {
	assert.Equal(t, 1, pagination.ClampPage(0))
	assert.Equal(t, 1, pagination.ClampPage(-3))
	assert.Equal(t, 7, pagination.ClampPage(7))
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, pagination.Offset(1, 20))
	assert.Equal(t, 20, pagination.Offset(2, 20))
	assert.Equal(t, 0, pagination.Offset(0, 20))
	assert.Equal(t, 180, pagination.Offset(10, 20))
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, pagination.TotalPages(0, 20))
	assert.Equal(t, 1, pagination.TotalPages(1, 20))
	assert.Equal(t, 1, pagination.TotalPages(20, 20))
	assert.Equal(t, 2, pagination.TotalPages(21, 20))
	assert.Equal(t, 13, pagination.TotalPages(250, 20))
}
