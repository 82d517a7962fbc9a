// Package storage persists HelloWorld message records and answers the queries
// the lookup service needs: substring search on the message and date-range
// listing, both ordered by creation time and paginated.
package storage

import (
	"context"
	"sort"
	"time"
)

// SortOrder is the creation-time ordering of query results.
type SortOrder string

const (
	SortDescending SortOrder = "desc"
	SortAscending  SortOrder = "asc"
)

// Page selects a window of query results.
type Page struct {
	Limit int
	Skip  int
	Order SortOrder
}

func (p Page) empty() bool { return p.Limit <= 0 }

func (p Page) skip() int { return max(p.Skip, 0) }

// MessageRecord is a single indexed HelloWorld message.
type MessageRecord struct {
	Txid        string    `json:"txid"`
	OutputIndex uint32    `json:"outputIndex"`
	Message     string    `json:"message"`
	CreatedAt   time.Time `json:"createdAt"`
}

// RecordStore keeps at most one record per (txid, outputIndex).
//
// StoreRecord replaces any existing record for the key with a brand-new one.
// DeleteRecord is idempotent. Query results are ordered by CreatedAt according
// to Page.Order, with ties broken by insertion order ascending.
type RecordStore interface {
	StoreRecord(ctx context.Context, txid string, outputIndex uint32, message string) error
	DeleteRecord(ctx context.Context, txid string, outputIndex uint32) error
	// FindByMessage matches records whose message contains message, ignoring case.
	FindByMessage(ctx context.Context, message string, page Page) ([]MessageRecord, error)
	// FindAll matches records created within [from, to]. A nil bound is open.
	FindAll(ctx context.Context, page Page, from, to *time.Time) ([]MessageRecord, error)
}

// Option configures a record store.
type Option func(*options)

type options struct {
	clock func() time.Time
}

// WithClock overrides the clock used to stamp CreatedAt.
func WithClock(clock func() time.Time) Option {
	return func(o *options) {
		if clock != nil {
			o.clock = clock
		}
	}
}

func newOptions(opts []Option) options {
	o := options{clock: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (o options) now() time.Time {
	return o.clock().UTC()
}

// sequenced is a record together with its insertion sequence.
type sequenced struct {
	record MessageRecord
	seq    int64
}

func sortSequenced(records []sequenced, order SortOrder) {
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if !a.record.CreatedAt.Equal(b.record.CreatedAt) {
			if order == SortAscending {
				return a.record.CreatedAt.Before(b.record.CreatedAt)
			}
			return a.record.CreatedAt.After(b.record.CreatedAt)
		}
		return a.seq < b.seq
	})
}

func paginate(records []sequenced, page Page) []MessageRecord {
	result := []MessageRecord{}
	if page.empty() || page.skip() >= len(records) {
		return result
	}
	end := min(page.skip()+page.Limit, len(records))
	for _, r := range records[page.skip():end] {
		result = append(result, r.record)
	}
	return result
}

func withinRange(createdAt time.Time, from, to *time.Time) bool {
	if from != nil && createdAt.Before(*from) {
		return false
	}
	if to != nil && createdAt.After(*to) {
		return false
	}
	return true
}
