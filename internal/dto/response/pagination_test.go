package response

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPaginatedResponse(t *testing.T) {
	t.Run("middle page", func(t *testing.T) {
		p := NewPaginatedResponse([]int{6, 7, 8, 9, 10}, 2, 5, 12)
		assert.Equal(t, 3, p.Pagination.TotalPages)
		require.NotNil(t, p.Pagination.NextPage)
		require.NotNil(t, p.Pagination.PreviousPage)
		assert.Equal(t, 3, *p.Pagination.NextPage)
		assert.Equal(t, 1, *p.Pagination.PreviousPage)
	})

	t.Run("single page", func(t *testing.T) {
		p := NewPaginatedResponse([]int{1}, 1, 5, 1)
		assert.Equal(t, 1, p.Pagination.TotalPages)
		assert.Nil(t, p.Pagination.NextPage)
		assert.Nil(t, p.Pagination.PreviousPage)
	})

	t.Run("nil data encodes as empty list", func(t *testing.T) {
		p := NewPaginatedResponse[string](nil, 1, 5, 0)
		assert.NotNil(t, p.Data)
		assert.Empty(t, p.Data)
		assert.Equal(t, 0, p.Pagination.TotalPages)
	})
}
