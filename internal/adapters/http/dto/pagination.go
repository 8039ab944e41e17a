package dto

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"slices"

	"github.com/jsamuelsen/quotedash/internal/domain"
)

// DefaultLimit is the page size when none is requested.
const DefaultLimit = 20

// MaxLimit is the largest page served.
const MaxLimit = 100

var (
	// ErrInvalidCursor is returned when a cursor cannot be decoded.
	ErrInvalidCursor = domain.NewValidationError("cursor", "invalid cursor")

	// ErrNoCursor signals a first page request.
	ErrNoCursor = errors.New("no cursor provided")
)

// PaginationRequest carries the page parameters.
type PaginationRequest struct {
	// Cursor is the opaque NextCursor of a previous page.
	Cursor string `form:"cursor"`
	Limit  int    `form:"limit" validate:"omitempty,gte=1,lte=100"`
}

// GetLimit returns the limit with defaults applied.
func (p *PaginationRequest) GetLimit() int {
	switch {
	case p.Limit <= 0:
		return DefaultLimit
	case p.Limit > MaxLimit:
		return MaxLimit
	default:
		return p.Limit
	}
}

// PaginatedResponse is one page of an ordered list.
type PaginatedResponse[T any] struct {
	Items      []T    `json:"items"`
	NextCursor string `json:"nextCursor,omitempty"`
	HasMore    bool   `json:"hasMore"`
	Total      int    `json:"total"`
}

// CursorData is the position after which the next page starts. The cached
// list keeps its order between requests, so the id of the last item served
// is enough.
type CursorData struct {
	ID string `json:"id"`
}

// EncodeCursor encodes cursor data to a base64 string.
func EncodeCursor(data *CursorData) string {
	if data == nil {
		return ""
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return ""
	}

	return base64.URLEncoding.EncodeToString(raw)
}

// DecodeCursor decodes a base64 cursor. An empty string is ErrNoCursor.
func DecodeCursor(encoded string) (*CursorData, error) {
	if encoded == "" {
		return nil, ErrNoCursor
	}

	raw, err := base64.URLEncoding.DecodeString(encoded)
	if err != nil {
		return nil, ErrInvalidCursor
	}

	var data CursorData
	if err := json.Unmarshal(raw, &data); err != nil || data.ID == "" {
		return nil, ErrInvalidCursor
	}

	return &data, nil
}

// Paginate serves the page of items after the cursor in p. A cursor whose
// item has since disappeared is reported as invalid.
func Paginate[T any](items []T, p PaginationRequest, id func(T) string) (*PaginatedResponse[T], error) {
	start := 0

	cursor, err := DecodeCursor(p.Cursor)
	switch {
	case errors.Is(err, ErrNoCursor):
	case err != nil:
		return nil, err
	default:
		i := slices.IndexFunc(items, func(v T) bool { return id(v) == cursor.ID })
		if i < 0 {
			return nil, ErrInvalidCursor
		}

		start = i + 1
	}

	limit := p.GetLimit()
	end := min(start+limit, len(items))
	page := items[start:end]

	resp := &PaginatedResponse[T]{
		Items:   append([]T{}, page...),
		HasMore: end < len(items),
		Total:   len(items),
	}

	if resp.HasMore && len(page) > 0 {
		resp.NextCursor = EncodeCursor(&CursorData{ID: id(page[len(page)-1])})
	}

	return resp, nil
}
