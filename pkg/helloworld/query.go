package helloworld

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/4chain-ag/go-overlay-helloworld/pkg/helloworld/storage"
)

const (
	// DefaultLimit is the page size used when a query does not set one.
	DefaultLimit = 50
	// DefaultSortOrder is the ordering used when a query does not set one.
	DefaultSortOrder = storage.SortDescending
)

// dateLayouts are the accepted startDate / endDate formats, tried in order.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Query is the wire form of an ls_helloworld lookup query.
type Query struct {
	Message   *string `json:"message,omitempty"`
	Limit     *int    `json:"limit,omitempty"`
	Skip      *int    `json:"skip,omitempty"`
	StartDate *string `json:"startDate,omitempty"`
	EndDate   *string `json:"endDate,omitempty"`
	SortOrder string  `json:"sortOrder,omitempty"`
}

// ParsedQuery is a validated Query with defaults applied.
type ParsedQuery struct {
	Message string
	Page    storage.Page
	From    *time.Time
	To      *time.Time
}

// ParseQuery decodes and validates a raw JSON query. An empty or null query
// selects every record with the default page.
func ParseQuery(raw json.RawMessage) (*ParsedQuery, error) {
	var q Query
	if trimmed := bytes.TrimSpace(raw); len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null")) {
		if err := json.Unmarshal(trimmed, &q); err != nil {
			return nil, fmt.Errorf("%w: malformed query: %w", ErrInvalidQuery, err)
		}
	}
	return q.Parse()
}

// Parse validates q and applies defaults.
func (q Query) Parse() (*ParsedQuery, error) {
	parsed := &ParsedQuery{
		Page: storage.Page{Limit: DefaultLimit, Order: DefaultSortOrder},
	}
	if q.Message != nil {
		parsed.Message = *q.Message
	}
	if q.Limit != nil {
		if *q.Limit < 0 {
			return nil, fmt.Errorf("%w: limit must be a non-negative number", ErrInvalidQuery)
		}
		parsed.Page.Limit = *q.Limit
	}
	if q.Skip != nil {
		if *q.Skip < 0 {
			return nil, fmt.Errorf("%w: skip must be a non-negative number", ErrInvalidQuery)
		}
		parsed.Page.Skip = *q.Skip
	}

	switch storage.SortOrder(q.SortOrder) {
	case "":
	case storage.SortAscending, storage.SortDescending:
		parsed.Page.Order = storage.SortOrder(q.SortOrder)
	default:
		return nil, fmt.Errorf("%w: sortOrder must be %q or %q", ErrInvalidQuery, storage.SortAscending, storage.SortDescending)
	}

	var err error
	if parsed.From, err = parseDate("startDate", q.StartDate); err != nil {
		return nil, err
	}
	if parsed.To, err = parseDate("endDate", q.EndDate); err != nil {
		return nil, err
	}
	return parsed, nil
}

func parseDate(name string, value *string) (*time.Time, error) {
	if value == nil {
		return nil, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, *value); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, fmt.Errorf("%w: invalid %s format %q", ErrInvalidQuery, name, *value)
}
