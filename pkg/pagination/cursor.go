package pagination

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"
)

// CursorDirection is the way a keyset listing walks from its cursor
type CursorDirection string

const (
	CursorDirectionNext CursorDirection = "next"
	CursorDirectionPrev CursorDirection = "prev"
)

// ErrInvalidCursor is returned for a cursor that EncodeCursor did not produce
var ErrInvalidCursor = errors.New("invalid cursor")

// Cursor is the (created_at, id) key of a row. Keyset listings are ordered by
// that pair, so it identifies a position even when timestamps collide.
type Cursor struct {
	ID        string
	CreatedAt time.Time
}

// Encode returns the opaque, URL-safe form of c. The timestamp keeps its zone
// offset so it compares equal to the stored value.
func (c Cursor) Encode() string {
	raw := c.CreatedAt.Format(time.RFC3339Nano) + "|" + c.ID
	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

// EncodeCursor is Cursor{ID: id, CreatedAt: createdAt}.Encode()
func EncodeCursor(id string, createdAt time.Time) string {
	return Cursor{ID: id, CreatedAt: createdAt}.Encode()
}

// ParseCursor reverses Encode
func ParseCursor(s string) (*Cursor, error) {
	raw, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCursor, err)
	}
	at, id, ok := strings.Cut(string(raw), "|")
	if !ok || id == "" {
		return nil, ErrInvalidCursor
	}
	createdAt, err := time.Parse(time.RFC3339Nano, at)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCursor, err)
	}
	return &Cursor{ID: id, CreatedAt: createdAt}, nil
}

// CursorParams is the cursor/direction/limit triple of a keyset request
type CursorParams struct {
	Cursor    string          `form:"cursor" json:"cursor"`
	Direction CursorDirection `form:"direction" json:"direction"`
	Limit     int             `form:"limit" json:"limit"`
}

func DefaultCursorParams() *CursorParams {
	return &CursorParams{Direction: CursorDirectionNext, Limit: DefaultPerPage}
}

// Validate clamps the limit and treats anything but "prev" as "next"
func (c *CursorParams) Validate() {
	if c.Limit < 1 {
		c.Limit = DefaultPerPage
	}
	c.Limit = min(c.Limit, MaxPerPage)
	if c.Direction != CursorDirectionPrev {
		c.Direction = CursorDirectionNext
	}
}

// Backwards reports whether the listing walks from the cursor towards older
// rows. Without a cursor there is nothing to walk back from.
func (c *CursorParams) Backwards() bool {
	return c.Cursor != "" && c.Direction == CursorDirectionPrev
}

// DecodeCursor returns nil when no cursor was sent
func (c *CursorParams) DecodeCursor() (*Cursor, error) {
	if c.Cursor == "" {
		return nil, nil
	}
	return ParseCursor(c.Cursor)
}

// CursorPagination tells the client how to fetch the neighbouring pages
type CursorPagination struct {
	NextCursor *string `json:"next_cursor,omitempty"`
	PrevCursor *string `json:"prev_cursor,omitempty"`
	HasNext    bool    `json:"has_next"`
	HasPrev    bool    `json:"has_prev"`
	Limit      int     `json:"limit"`
}

// CursorPaginatedResult is one keyset page of T
type CursorPaginatedResult[T any] struct {
	Items      []T               `json:"items"`
	Pagination *CursorPagination `json:"pagination"`
}

// Keyset turns the rows of a keyset query into a page. rows holds up to
// Limit+1 entries: ascending when walking forward, descending when walking
// backwards. The extra row only signals that more rows exist past the page.
// The returned items are always ascending.
func Keyset[T any](rows []T, params *CursorParams, key func(T) Cursor) *CursorPaginatedResult[T] {
	more := len(rows) > params.Limit
	if more {
		rows = rows[:params.Limit]
	}

	pag := &CursorPagination{Limit: params.Limit}
	if params.Backwards() {
		for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
			rows[i], rows[j] = rows[j], rows[i]
		}
		pag.HasPrev = more
		pag.HasNext = true
	} else {
		pag.HasNext = more
		pag.HasPrev = params.Cursor != ""
	}

	if len(rows) > 0 {
		first := key(rows[0]).Encode()
		last := key(rows[len(rows)-1]).Encode()
		pag.PrevCursor = &first
		pag.NextCursor = &last
	}

	return &CursorPaginatedResult[T]{Items: rows, Pagination: pag}
}
