package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/allisson/taskhub/internal/errors"
)

func TestNewParams(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		params := NewParams(0, 0)
		assert.Equal(t, DefaultPage, params.Page)
		assert.Equal(t, DefaultLimit, params.Limit)
		assert.Equal(t, SortOrderDesc, params.SortOrder)
	})

	t.Run("ExplicitValues", func(t *testing.T) {
		params := NewParams(3, 25)
		assert.Equal(t, 3, params.Page)
		assert.Equal(t, 25, params.Limit)
	})
}

func TestParams_Validate(t *testing.T) {
	tests := []struct {
		name    string
		params  Params
		wantErr bool
	}{
		{"Valid", Params{Page: 1, Limit: 50, SortOrder: "desc"}, false},
		{"ValidAsc", Params{Page: 2, Limit: 10, SortOrder: "asc"}, false},
		{"ZeroPage", Params{Page: 0, Limit: 50, SortOrder: "desc"}, true},
		{"NegativePage", Params{Page: -1, Limit: 50, SortOrder: "desc"}, true},
		{"ZeroLimit", Params{Page: 1, Limit: 0, SortOrder: "desc"}, true},
		{"LimitAboveMax", Params{Page: 1, Limit: 101, SortOrder: "desc"}, true},
		{"InvalidSortOrder", Params{Page: 1, Limit: 50, SortOrder: "sideways"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Validate()
			if tt.wantErr {
				assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParams_Offset(t *testing.T) {
	tests := []struct {
		page     int
		limit    int
		expected int
	}{
		{1, 5, 0},
		{2, 5, 5},
		{3, 3, 6},
		{10, 50, 450},
	}

	for _, tt := range tests {
		params := Params{Page: tt.page, Limit: tt.limit}
		assert.Equal(t, tt.expected, params.Offset())
	}
}

func TestNewMeta(t *testing.T) {
	t.Run("FirstPageOfThree", func(t *testing.T) {
		meta := NewMeta(1, 5, 15)
		assert.Equal(t, 15, meta.Total)
		assert.Equal(t, 3, meta.TotalPages)
		assert.True(t, meta.HasNext)
		assert.False(t, meta.HasPrev)
	})

	t.Run("LastPartialPage", func(t *testing.T) {
		meta := NewMeta(3, 3, 7)
		assert.Equal(t, 3, meta.TotalPages)
		assert.False(t, meta.HasNext)
		assert.True(t, meta.HasPrev)
	})

	t.Run("EmptyResultSet", func(t *testing.T) {
		meta := NewMeta(1, 5, 0)
		assert.Equal(t, 0, meta.Total)
		assert.Equal(t, 0, meta.TotalPages)
		assert.False(t, meta.HasNext)
		assert.False(t, meta.HasPrev)
	})

	t.Run("PageBeyondEnd", func(t *testing.T) {
		meta := NewMeta(5, 5, 15)
		assert.Equal(t, 3, meta.TotalPages)
		assert.False(t, meta.HasNext)
		assert.True(t, meta.HasPrev)
	})

	t.Run("ExactMultiple", func(t *testing.T) {
		meta := NewMeta(2, 5, 10)
		assert.Equal(t, 2, meta.TotalPages)
		assert.False(t, meta.HasNext)
		assert.True(t, meta.HasPrev)
	})
}
