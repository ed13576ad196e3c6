package pagination

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaginationParams_Validate(t *testing.T) {
	tests := []struct {
		name        string
		in          PaginationParams
		wantPage    int
		wantPerPage int
	}{
		{"zero_values", PaginationParams{}, 1, 15},
		{"too_large", PaginationParams{Page: 3, PerPage: 500}, 3, 100},
		{"negative_page", PaginationParams{Page: -2, PerPage: 10}, 1, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.in
			p.Validate()
			assert.Equal(t, tt.wantPage, p.Page)
			assert.Equal(t, tt.wantPerPage, p.PerPage)
		})
	}
}

func TestNewPagination(t *testing.T) {
	p := NewPagination(2, 10, 35)
	assert.Equal(t, 4, p.TotalPages)
	assert.True(t, p.HasNext)
	assert.True(t, p.HasPrev)

	last := NewPagination(4, 10, 35)
	assert.False(t, last.HasNext)

	assert.Equal(t, 20, NewPaginationParams(3, 10).Offset())
}

func TestCursorRoundTrip(t *testing.T) {
	at := time.Date(2025, 5, 12, 13, 36, 7, 120, time.FixedZone("WAT", 3600))
	params := &CursorParams{Cursor: EncodeCursor("abc", at)}

	c, err := params.DecodeCursor()
	require.NoError(t, err)
	assert.Equal(t, "abc", c.ID)
	assert.True(t, c.CreatedAt.Equal(at))
	_, offset := c.CreatedAt.Zone()
	assert.Equal(t, 3600, offset)

	for _, bad := range []string{"%%%", "not-a-cursor", Cursor{CreatedAt: at}.Encode()} {
		_, err = (&CursorParams{Cursor: bad}).DecodeCursor()
		assert.ErrorIs(t, err, ErrInvalidCursor, bad)
	}

	none, err := (&CursorParams{}).DecodeCursor()
	require.NoError(t, err)
	assert.Nil(t, none)
}

type rec struct {
	id string
	at time.Time
}

func recKey(r rec) Cursor { return Cursor{ID: r.id, CreatedAt: r.at} }

func TestKeyset_Forward(t *testing.T) {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	rows := []rec{{"a", base}, {"b", base.Add(time.Second)}, {"c", base.Add(2 * time.Second)}}

	page := Keyset(rows, &CursorParams{Limit: 2}, recKey)
	require.Len(t, page.Items, 2)
	assert.True(t, page.Pagination.HasNext)
	assert.False(t, page.Pagination.HasPrev)
	require.NotNil(t, page.Pagination.NextCursor)

	next, err := ParseCursor(*page.Pagination.NextCursor)
	require.NoError(t, err)
	assert.Equal(t, "b", next.ID)
}

func TestKeyset_Backwards(t *testing.T) {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	// newest first, as a backwards query returns them
	rows := []rec{{"c", base.Add(2 * time.Second)}, {"b", base.Add(time.Second)}}
	params := &CursorParams{Cursor: EncodeCursor("d", base.Add(3*time.Second)), Direction: CursorDirectionPrev, Limit: 2}

	page := Keyset(rows, params, recKey)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "b", page.Items[0].id)
	assert.Equal(t, "c", page.Items[1].id)
	assert.False(t, page.Pagination.HasPrev)
	assert.True(t, page.Pagination.HasNext)

	prev, err := ParseCursor(*page.Pagination.PrevCursor)
	require.NoError(t, err)
	assert.Equal(t, "b", prev.ID)
}

func TestCursorParams_Validate(t *testing.T) {
	p := &CursorParams{Direction: "sideways", Limit: 1000}
	p.Validate()
	assert.Equal(t, CursorDirectionNext, p.Direction)
	assert.Equal(t, MaxPerPage, p.Limit)
	assert.False(t, (&CursorParams{Direction: CursorDirectionPrev}).Backwards())
}
