package helloworld_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/4chain-ag/go-overlay-helloworld/pkg/core/engine"
	"github.com/4chain-ag/go-overlay-helloworld/pkg/core/pushdrop"
	"github.com/4chain-ag/go-overlay-helloworld/pkg/helloworld"
	"github.com/4chain-ag/go-overlay-helloworld/pkg/helloworld/storage"
	"github.com/4chain-ag/go-overlay-helloworld/pkg/helloworld/testabilities"
	"github.com/bsv-blockchain/go-sdk/chainhash"
	"github.com/bsv-blockchain/go-sdk/overlay/lookup"
	"github.com/stretchr/testify/require"
)

var errStoreDown = errors.New("store down")

type fakeRecordStore struct {
	storeRecordFunc   func(ctx context.Context, txid string, outputIndex uint32, message string) error
	deleteRecordFunc  func(ctx context.Context, txid string, outputIndex uint32) error
	findByMessageFunc func(ctx context.Context, message string, page storage.Page) ([]storage.MessageRecord, error)
	findAllFunc       func(ctx context.Context, page storage.Page, from, to *time.Time) ([]storage.MessageRecord, error)
}

func (f fakeRecordStore) StoreRecord(ctx context.Context, txid string, outputIndex uint32, message string) error {
	if f.storeRecordFunc != nil {
		return f.storeRecordFunc(ctx, txid, outputIndex, message)
	}
	panic("func not defined")
}

func (f fakeRecordStore) DeleteRecord(ctx context.Context, txid string, outputIndex uint32) error {
	if f.deleteRecordFunc != nil {
		return f.deleteRecordFunc(ctx, txid, outputIndex)
	}
	panic("func not defined")
}

func (f fakeRecordStore) FindByMessage(ctx context.Context, message string, page storage.Page) ([]storage.MessageRecord, error) {
	if f.findByMessageFunc != nil {
		return f.findByMessageFunc(ctx, message, page)
	}
	panic("func not defined")
}

func (f fakeRecordStore) FindAll(ctx context.Context, page storage.Page, from, to *time.Time) ([]storage.MessageRecord, error) {
	if f.findAllFunc != nil {
		return f.findAllFunc(ctx, page, from, to)
	}
	panic("func not defined")
}

type sinkRecorder struct {
	operations []string
	errs       []error
}

func (s *sinkRecorder) sink(_ context.Context, operation string, _ *engine.Outpoint, err error) {
	s.operations = append(s.operations, operation)
	s.errs = append(s.errs, err)
}

func helloOutput(t *testing.T, topic, message string) *engine.Output {
	t.Helper()
	return &engine.Output{
		Outpoint: engine.Outpoint{Txid: chainhash.DoubleHashH([]byte(message)), OutputIndex: 0},
		Topic:    topic,
		Script:   testabilities.MessageLock(t, message),
		Satoshis: 1,
	}
}

func question(t *testing.T, query any) *lookup.LookupQuestion {
	t.Helper()
	raw, err := json.Marshal(query)
	require.NoError(t, err)
	return &lookup.LookupQuestion{Service: helloworld.ServiceName, Query: raw}
}

func answerRecords(t *testing.T, answer *lookup.LookupAnswer) []storage.MessageRecord {
	t.Helper()
	require.Equal(t, lookup.AnswerTypeFreeform, answer.Type)
	records, ok := answer.Result.([]storage.MessageRecord)
	require.True(t, ok, "unexpected result type %T", answer.Result)
	return records
}

func TestLookupService_OutputAdded_ShouldStoreMessage(t *testing.T) {
	// given:
	store := storage.NewMemoryStorage()
	sut := helloworld.NewLookupService(store)
	output := helloOutput(t, helloworld.TopicName, "Hello")

	// when:
	err := sut.OutputAdded(context.Background(), output)

	// then:
	require.NoError(t, err)
	records, err := store.FindAll(context.Background(), storage.Page{Limit: 10}, nil, nil)
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, output.Outpoint.Txid.String(), records[0].Txid)
	require.Equal(t, uint32(0), records[0].OutputIndex)
	require.Equal(t, "Hello", records[0].Message)
}

func TestLookupService_OutputAdded_ShouldIgnoreOtherTopics(t *testing.T) {
	// given:
	sut := helloworld.NewLookupService(fakeRecordStore{})

	// when:
	err := sut.OutputAdded(context.Background(), helloOutput(t, "tm_other", "Hello"))

	// then:
	require.NoError(t, err)
}

func TestLookupService_OutputAdded_ShouldReportFailuresToErrorSink(t *testing.T) {
	tests := map[string]struct {
		output      func(t *testing.T) *engine.Output
		store       storage.RecordStore
		expectedErr error
	}{
		"non pushdrop script": {
			output: func(t *testing.T) *engine.Output {
				out := helloOutput(t, helloworld.TopicName, "Hello")
				out.Script = testabilities.P2PKHLike(t)
				return out
			},
			store:       fakeRecordStore{},
			expectedErr: pushdrop.ErrDecode,
		},
		"message too short": {
			output: func(t *testing.T) *engine.Output {
				return helloOutput(t, helloworld.TopicName, "H")
			},
			store:       fakeRecordStore{},
			expectedErr: helloworld.ErrInvalidMessage,
		},
		"store failure": {
			output: func(t *testing.T) *engine.Output {
				return helloOutput(t, helloworld.TopicName, "Hello")
			},
			store: fakeRecordStore{
				storeRecordFunc: func(context.Context, string, uint32, string) error { return errStoreDown },
			},
			expectedErr: helloworld.ErrStorage,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			// given:
			recorder := &sinkRecorder{}
			sut := helloworld.NewLookupService(tc.store, helloworld.WithErrorSink(recorder.sink))

			// when:
			err := sut.OutputAdded(context.Background(), tc.output(t))

			// then:
			require.NoError(t, err)
			require.Equal(t, []string{helloworld.OperationOutputAdded}, recorder.operations)
			require.ErrorIs(t, recorder.errs[0], tc.expectedErr)
		})
	}
}

func TestLookupService_OutputSpentAndDeleted_ShouldRemoveRecord(t *testing.T) {
	notifications := map[string]func(sut *helloworld.LookupService, outpoint *engine.Outpoint, topic string) error{
		"spent": func(sut *helloworld.LookupService, outpoint *engine.Outpoint, topic string) error {
			return sut.OutputSpent(context.Background(), outpoint, topic)
		},
		"deleted": func(sut *helloworld.LookupService, outpoint *engine.Outpoint, topic string) error {
			return sut.OutputDeleted(context.Background(), outpoint, topic)
		},
	}

	for name, notify := range notifications {
		t.Run(name, func(t *testing.T) {
			// given:
			store := storage.NewMemoryStorage()
			sut := helloworld.NewLookupService(store)
			output := helloOutput(t, helloworld.TopicName, "Hello")
			require.NoError(t, sut.OutputAdded(context.Background(), output))

			// when:
			require.NoError(t, notify(sut, &output.Outpoint, "tm_other"))
			kept, err := store.FindAll(context.Background(), storage.Page{Limit: 10}, nil, nil)
			require.NoError(t, err)
			require.NoError(t, notify(sut, &output.Outpoint, helloworld.TopicName))
			require.NoError(t, notify(sut, &output.Outpoint, helloworld.TopicName))

			// then:
			require.Len(t, kept, 1)
			records, err := store.FindAll(context.Background(), storage.Page{Limit: 10}, nil, nil)
			require.NoError(t, err)
			require.Empty(t, records)
		})
	}
}

func TestLookupService_OutputSpent_ShouldReportStoreFailure(t *testing.T) {
	// given:
	recorder := &sinkRecorder{}
	store := fakeRecordStore{
		deleteRecordFunc: func(context.Context, string, uint32) error { return errStoreDown },
	}
	sut := helloworld.NewLookupService(store, helloworld.WithErrorSink(recorder.sink))

	// when:
	err := sut.OutputSpent(context.Background(), &engine.Outpoint{}, helloworld.TopicName)

	// then:
	require.NoError(t, err)
	require.Equal(t, []string{helloworld.OperationOutputSpent}, recorder.operations)
	require.ErrorIs(t, recorder.errs[0], errStoreDown)
}

func TestLookupService_Lookup_ShouldRejectInvalidQuestions(t *testing.T) {
	tests := map[string]*lookup.LookupQuestion{
		"nil question":       nil,
		"wrong service":      {Service: "ls_other", Query: json.RawMessage(`{}`)},
		"malformed json":     {Service: helloworld.ServiceName, Query: json.RawMessage(`{"limit":`)},
		"limit wrong type":   {Service: helloworld.ServiceName, Query: json.RawMessage(`{"limit":"ten"}`)},
		"negative limit":     {Service: helloworld.ServiceName, Query: json.RawMessage(`{"limit":-1}`)},
		"negative skip":      {Service: helloworld.ServiceName, Query: json.RawMessage(`{"skip":-5}`)},
		"invalid start date": {Service: helloworld.ServiceName, Query: json.RawMessage(`{"startDate":"not-a-date"}`)},
		"invalid end date":   {Service: helloworld.ServiceName, Query: json.RawMessage(`{"endDate":"31/12/2024"}`)},
		"unknown sort order": {Service: helloworld.ServiceName, Query: json.RawMessage(`{"sortOrder":"sideways"}`)},
	}

	for name, q := range tests {
		t.Run(name, func(t *testing.T) {
			// given:
			sut := helloworld.NewLookupService(fakeRecordStore{})

			// when:
			answer, err := sut.Lookup(context.Background(), q)

			// then:
			require.ErrorIs(t, err, helloworld.ErrInvalidQuery)
			require.Nil(t, answer)
		})
	}
}

func TestLookupService_Lookup_ShouldRouteToStoreWithDefaults(t *testing.T) {
	startDate := "2024-01-01"
	message := "hello"
	limit, skip := 5, 10

	tests := map[string]struct {
		query          any
		expectedSearch string
		expectedPage   storage.Page
		expectedFrom   *time.Time
	}{
		"empty query lists all with defaults": {
			query:        map[string]any{},
			expectedPage: storage.Page{Limit: helloworld.DefaultLimit, Skip: 0, Order: storage.SortDescending},
		},
		"null query lists all with defaults": {
			query:        nil,
			expectedPage: storage.Page{Limit: helloworld.DefaultLimit, Skip: 0, Order: storage.SortDescending},
		},
		"message searches by substring": {
			query:          helloworld.Query{Message: &message, Limit: &limit, Skip: &skip, SortOrder: "asc"},
			expectedSearch: "hello",
			expectedPage:   storage.Page{Limit: 5, Skip: 10, Order: storage.SortAscending},
		},
		"date range lists all": {
			query:        helloworld.Query{StartDate: &startDate},
			expectedPage: storage.Page{Limit: helloworld.DefaultLimit, Order: storage.SortDescending},
			expectedFrom: ptrTime(time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)),
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			// given:
			var searched string
			var page storage.Page
			var from *time.Time
			store := fakeRecordStore{
				findByMessageFunc: func(ctx context.Context, message string, p storage.Page) ([]storage.MessageRecord, error) {
					_, hasDeadline := ctx.Deadline()
					require.True(t, hasDeadline)
					searched, page = message, p
					return nil, nil
				},
				findAllFunc: func(ctx context.Context, p storage.Page, f, _ *time.Time) ([]storage.MessageRecord, error) {
					_, hasDeadline := ctx.Deadline()
					require.True(t, hasDeadline)
					page, from = p, f
					return nil, nil
				},
			}
			sut := helloworld.NewLookupService(store, helloworld.WithStorageTimeout(time.Second))

			// when:
			answer, err := sut.Lookup(context.Background(), question(t, tc.query))

			// then:
			require.NoError(t, err)
			records := answerRecords(t, answer)
			require.NotNil(t, records)
			require.Empty(t, records)
			require.Equal(t, tc.expectedSearch, searched)
			require.Equal(t, tc.expectedPage, page)
			require.Equal(t, tc.expectedFrom, from)
		})
	}
}

func TestLookupService_Lookup_ShouldWrapStoreFailures(t *testing.T) {
	// given:
	store := fakeRecordStore{
		findAllFunc: func(context.Context, storage.Page, *time.Time, *time.Time) ([]storage.MessageRecord, error) {
			return nil, errStoreDown
		},
	}
	sut := helloworld.NewLookupService(store)

	// when:
	answer, err := sut.Lookup(context.Background(), question(t, map[string]any{}))

	// then:
	require.ErrorIs(t, err, helloworld.ErrStorage)
	require.ErrorIs(t, err, errStoreDown)
	require.Nil(t, answer)
}

func TestLookupService_ShouldDescribeItself(t *testing.T) {
	// given:
	sut := helloworld.NewLookupService(storage.NewMemoryStorage())

	// when:
	meta := sut.GetMetaData()
	doc := sut.GetDocumentation()

	// then:
	require.Equal(t, "HelloWorld Lookup Service", meta.Name)
	require.Equal(t, "Find messages on-chain.", meta.Description)
	require.Contains(t, doc, "`ls_helloworld`")
}

func TestNewLookupService_ShouldPanic_WhenStoreIsNil(t *testing.T) {
	require.Panics(t, func() { helloworld.NewLookupService(nil) })
}

func ptrTime(t time.Time) *time.Time { return &t }
