package storage_test

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/4chain-ag/go-overlay-helloworld/pkg/helloworld/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)

// steppingClock returns baseTime advanced by one second on every call.
func steppingClock() func() time.Time {
	var mu sync.Mutex
	calls := 0
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		calls++
		return baseTime.Add(time.Duration(calls) * time.Second)
	}
}

func fixedClock() func() time.Time {
	return func() time.Time { return baseTime }
}

type storeFactory func(t *testing.T, opts ...storage.Option) storage.RecordStore

func factories() map[string]storeFactory {
	return map[string]storeFactory{
		"memory": func(_ *testing.T, opts ...storage.Option) storage.RecordStore {
			return storage.NewMemoryStorage(opts...)
		},
		"sqlite": func(t *testing.T, opts ...storage.Option) storage.RecordStore {
			t.Helper()
			s, err := storage.NewSQLiteStorage(filepath.Join(t.TempDir(), "records.db"), opts...)
			require.NoError(t, err)
			t.Cleanup(func() { require.NoError(t, s.Close()) })
			return s
		},
	}
}

func messages(records []storage.MessageRecord) []string {
	result := make([]string, 0, len(records))
	for _, r := range records {
		result = append(result, r.Message)
	}
	return result
}

func all(order storage.SortOrder) storage.Page {
	return storage.Page{Limit: 50, Order: order}
}

func TestRecordStore_StoreRecord_ShouldReplaceExistingKey(t *testing.T) {
	for name, newStore := range factories() {
		t.Run(name, func(t *testing.T) {
			// given:
			ctx := context.Background()
			store := newStore(t, storage.WithClock(steppingClock()))
			require.NoError(t, store.StoreRecord(ctx, "aa", 0, "Hello"))
			require.NoError(t, store.StoreRecord(ctx, "bb", 0, "Other"))

			// when:
			require.NoError(t, store.StoreRecord(ctx, "aa", 0, "Hello again"))

			// then:
			records, err := store.FindAll(ctx, all(storage.SortDescending), nil, nil)
			require.NoError(t, err)
			require.Equal(t, []string{"Hello again", "Other"}, messages(records))
			require.Equal(t, baseTime.Add(3*time.Second), records[0].CreatedAt)
			require.Equal(t, "aa", records[0].Txid)
			require.Equal(t, uint32(0), records[0].OutputIndex)
		})
	}
}

func TestRecordStore_DeleteRecord_ShouldBeIdempotent(t *testing.T) {
	for name, newStore := range factories() {
		t.Run(name, func(t *testing.T) {
			// given:
			ctx := context.Background()
			store := newStore(t)
			require.NoError(t, store.StoreRecord(ctx, "aa", 0, "Hello"))
			require.NoError(t, store.StoreRecord(ctx, "aa", 1, "World"))

			// when:
			require.NoError(t, store.DeleteRecord(ctx, "aa", 0))
			require.NoError(t, store.DeleteRecord(ctx, "aa", 0))
			require.NoError(t, store.DeleteRecord(ctx, "never-stored", 9))

			// then:
			records, err := store.FindAll(ctx, all(storage.SortDescending), nil, nil)
			require.NoError(t, err)
			require.Equal(t, []string{"World"}, messages(records))
		})
	}
}

func TestRecordStore_FindByMessage_ShouldMatchSubstringIgnoringCase(t *testing.T) {
	for name, newStore := range factories() {
		t.Run(name, func(t *testing.T) {
			// given:
			ctx := context.Background()
			store := newStore(t, storage.WithClock(steppingClock()))
			require.NoError(t, store.StoreRecord(ctx, "aa", 0, "Hello world"))
			require.NoError(t, store.StoreRecord(ctx, "bb", 0, "say HELLO"))
			require.NoError(t, store.StoreRecord(ctx, "cc", 0, "goodbye"))
			require.NoError(t, store.StoreRecord(ctx, "dd", 0, "100% sure_thing"))

			tests := map[string]struct {
				query    string
				expected []string
			}{
				"case-insensitive substring":   {query: "hello", expected: []string{"say HELLO", "Hello world"}},
				"no match":                     {query: "nothing", expected: []string{}},
				"percent is literal":           {query: "0%", expected: []string{"100% sure_thing"}},
				"underscore is literal":        {query: "e_t", expected: []string{"100% sure_thing"}},
				"regex characters are literal": {query: "hello.*", expected: []string{}},
			}

			for caseName, tc := range tests {
				t.Run(caseName, func(t *testing.T) {
					// when:
					records, err := store.FindByMessage(ctx, tc.query, all(storage.SortDescending))

					// then:
					require.NoError(t, err)
					require.Equal(t, tc.expected, messages(records))
				})
			}
		})
	}
}

func TestRecordStore_FindAll_ShouldFilterByInclusiveDateRange(t *testing.T) {
	for name, newStore := range factories() {
		t.Run(name, func(t *testing.T) {
			// given:
			ctx := context.Background()
			store := newStore(t, storage.WithClock(steppingClock()))
			for i := 1; i <= 4; i++ {
				require.NoError(t, store.StoreRecord(ctx, fmt.Sprintf("tx%d", i), 0, fmt.Sprintf("message %d", i)))
			}
			from := baseTime.Add(2 * time.Second)
			to := baseTime.Add(3 * time.Second)

			// when:
			bounded, err := store.FindAll(ctx, all(storage.SortAscending), &from, &to)
			require.NoError(t, err)
			openEnded, err := store.FindAll(ctx, all(storage.SortAscending), &from, nil)
			require.NoError(t, err)
			openStart, err := store.FindAll(ctx, all(storage.SortAscending), nil, &to)
			require.NoError(t, err)

			// then:
			require.Equal(t, []string{"message 2", "message 3"}, messages(bounded))
			require.Equal(t, []string{"message 2", "message 3", "message 4"}, messages(openEnded))
			require.Equal(t, []string{"message 1", "message 2", "message 3"}, messages(openStart))
		})
	}
}

func TestRecordStore_ShouldOrderByCreatedAtAndBreakTiesByInsertion(t *testing.T) {
	for name, newStore := range factories() {
		t.Run(name, func(t *testing.T) {
			// given:
			ctx := context.Background()
			store := newStore(t, storage.WithClock(fixedClock()))
			require.NoError(t, store.StoreRecord(ctx, "aa", 0, "first"))
			require.NoError(t, store.StoreRecord(ctx, "bb", 0, "second"))
			require.NoError(t, store.StoreRecord(ctx, "cc", 0, "third"))

			// when:
			desc, err := store.FindAll(ctx, all(storage.SortDescending), nil, nil)
			require.NoError(t, err)
			asc, err := store.FindAll(ctx, all(storage.SortAscending), nil, nil)
			require.NoError(t, err)

			// then:
			require.Equal(t, []string{"first", "second", "third"}, messages(desc))
			require.Equal(t, []string{"first", "second", "third"}, messages(asc))
		})
	}
}

func TestRecordStore_ShouldPaginateWithDisjointPages(t *testing.T) {
	for name, newStore := range factories() {
		t.Run(name, func(t *testing.T) {
			// given:
			ctx := context.Background()
			store := newStore(t, storage.WithClock(steppingClock()))
			for i := 1; i <= 5; i++ {
				require.NoError(t, store.StoreRecord(ctx, fmt.Sprintf("tx%d", i), 0, fmt.Sprintf("hello %d", i)))
			}

			// when:
			first, err := store.FindByMessage(ctx, "hello", storage.Page{Limit: 2, Skip: 0})
			require.NoError(t, err)
			second, err := store.FindByMessage(ctx, "hello", storage.Page{Limit: 2, Skip: 2})
			require.NoError(t, err)
			last, err := store.FindByMessage(ctx, "hello", storage.Page{Limit: 2, Skip: 4})
			require.NoError(t, err)
			beyond, err := store.FindByMessage(ctx, "hello", storage.Page{Limit: 2, Skip: 10})
			require.NoError(t, err)
			zero, err := store.FindAll(ctx, storage.Page{Limit: 0}, nil, nil)
			require.NoError(t, err)

			// then:
			require.Equal(t, []string{"hello 5", "hello 4"}, messages(first))
			require.Equal(t, []string{"hello 3", "hello 2"}, messages(second))
			require.Equal(t, []string{"hello 1"}, messages(last))
			require.NotNil(t, beyond)
			require.Empty(t, beyond)
			require.NotNil(t, zero)
			require.Empty(t, zero)
		})
	}
}

func TestRecordStore_ShouldBeSafeForConcurrentUse(t *testing.T) {
	for name, newStore := range factories() {
		t.Run(name, func(t *testing.T) {
			// given:
			ctx := context.Background()
			store := newStore(t)
			const writers = 8

			// when:
			var wg sync.WaitGroup
			for i := 0; i < writers; i++ {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					txid := fmt.Sprintf("tx%d", i)
					assert.NoError(t, store.StoreRecord(ctx, txid, 0, "Hello"))
					assert.NoError(t, store.StoreRecord(ctx, txid, 0, "Hello again"))
					_, err := store.FindByMessage(ctx, "hello", all(storage.SortDescending))
					assert.NoError(t, err)
				}(i)
			}
			wg.Wait()

			// then:
			records, err := store.FindAll(ctx, all(storage.SortDescending), nil, nil)
			require.NoError(t, err)
			require.Len(t, records, writers)
			for _, r := range records {
				require.Equal(t, "Hello again", r.Message)
			}
		})
	}
}
