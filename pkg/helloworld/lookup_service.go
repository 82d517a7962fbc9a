package helloworld

import (
	"context"
	"fmt"
	"time"

	"github.com/4chain-ag/go-overlay-helloworld/pkg/core/engine"
	"github.com/4chain-ag/go-overlay-helloworld/pkg/core/pushdrop"
	"github.com/4chain-ag/go-overlay-helloworld/pkg/helloworld/storage"
	"github.com/bsv-blockchain/go-sdk/overlay"
	"github.com/bsv-blockchain/go-sdk/overlay/lookup"
	"github.com/gookit/slog"
)

// ServiceName is the name under which the lookup service is registered.
const ServiceName = "ls_helloworld"

// DefaultStorageTimeout bounds every record store call made by the lookup service.
const DefaultStorageTimeout = 5 * time.Second

// Notification operations reported to an ErrorSink.
const (
	OperationOutputAdded   = "output-added"
	OperationOutputSpent   = "output-spent"
	OperationOutputDeleted = "output-deleted"
)

// ErrorSink receives failures of the notification handlers, which never
// propagate them to the caller.
type ErrorSink func(ctx context.Context, operation string, outpoint *engine.Outpoint, err error)

// LogErrorSink reports notification failures through the logger.
func LogErrorSink(_ context.Context, operation string, outpoint *engine.Outpoint, err error) {
	fields := slog.M{"operation": operation, "service": ServiceName}
	if outpoint != nil {
		fields["txid"] = outpoint.Txid.String()
		fields["outputIndex"] = outpoint.OutputIndex
	}
	slog.WithFields(fields).Errorf("notification failed: %v", err)
}

// LookupServiceOption configures a LookupService.
type LookupServiceOption func(*LookupService)

// WithStorageTimeout overrides DefaultStorageTimeout.
func WithStorageTimeout(timeout time.Duration) LookupServiceOption {
	return func(l *LookupService) {
		if timeout > 0 {
			l.storageTimeout = timeout
		}
	}
}

// WithErrorSink overrides LogErrorSink.
func WithErrorSink(sink ErrorSink) LookupServiceOption {
	return func(l *LookupService) {
		if sink != nil {
			l.errorSink = sink
		}
	}
}

// LookupService indexes admitted HelloWorld messages and answers queries over them.
type LookupService struct {
	store          storage.RecordStore
	storageTimeout time.Duration
	errorSink      ErrorSink
}

func NewLookupService(store storage.RecordStore, opts ...LookupServiceOption) *LookupService {
	if store == nil {
		panic("helloworld lookup service: record store is nil")
	}
	l := &LookupService{
		store:          store,
		storageTimeout: DefaultStorageTimeout,
		errorSink:      LogErrorSink,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// OutputAdded stores the message carried by an output admitted into tm_helloworld.
func (l *LookupService) OutputAdded(ctx context.Context, output *engine.Output) error {
	if output == nil || output.Topic != TopicName {
		return nil
	}

	token, err := pushdrop.Decode(output.Script)
	if err != nil {
		l.errorSink(ctx, OperationOutputAdded, &output.Outpoint, err)
		return nil
	}
	message, err := tokenMessage(token)
	if err != nil {
		l.errorSink(ctx, OperationOutputAdded, &output.Outpoint, err)
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, l.storageTimeout)
	defer cancel()
	if err := l.store.StoreRecord(ctx, output.Outpoint.Txid.String(), output.Outpoint.OutputIndex, message); err != nil {
		l.errorSink(ctx, OperationOutputAdded, &output.Outpoint, fmt.Errorf("%w: %w", ErrStorage, err))
	}
	return nil
}

// OutputSpent removes the record of a spent tm_helloworld output.
func (l *LookupService) OutputSpent(ctx context.Context, outpoint *engine.Outpoint, topic string) error {
	l.deleteRecord(ctx, OperationOutputSpent, outpoint, topic)
	return nil
}

// OutputDeleted removes the record of an evicted tm_helloworld output.
func (l *LookupService) OutputDeleted(ctx context.Context, outpoint *engine.Outpoint, topic string) error {
	l.deleteRecord(ctx, OperationOutputDeleted, outpoint, topic)
	return nil
}

func (l *LookupService) deleteRecord(ctx context.Context, operation string, outpoint *engine.Outpoint, topic string) {
	if outpoint == nil || topic != TopicName {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, l.storageTimeout)
	defer cancel()
	if err := l.store.DeleteRecord(ctx, outpoint.Txid.String(), outpoint.OutputIndex); err != nil {
		l.errorSink(ctx, operation, outpoint, fmt.Errorf("%w: %w", ErrStorage, err))
	}
}

// Lookup answers an ls_helloworld question with the matching message records.
// A non-empty message searches by substring, otherwise records are listed
// within the optional date range.
func (l *LookupService) Lookup(ctx context.Context, question *lookup.LookupQuestion) (*lookup.LookupAnswer, error) {
	if question == nil {
		return nil, fmt.Errorf("%w: a valid question must be provided", ErrInvalidQuery)
	}
	if question.Service != ServiceName {
		return nil, fmt.Errorf("%w: lookup service %q is not supported", ErrInvalidQuery, question.Service)
	}

	query, err := ParseQuery(question.Query)
	if err != nil {
		return nil, err
	}

	records, err := l.find(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorage, err)
	}
	if records == nil {
		records = []storage.MessageRecord{}
	}
	return &lookup.LookupAnswer{
		Type:   lookup.AnswerTypeFreeform,
		Result: records,
	}, nil
}

func (l *LookupService) find(ctx context.Context, query *ParsedQuery) ([]storage.MessageRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, l.storageTimeout)
	defer cancel()

	if query.Message != "" {
		return l.store.FindByMessage(ctx, query.Message, query.Page)
	}
	return l.store.FindAll(ctx, query.Page, query.From, query.To)
}

func (l *LookupService) GetDocumentation() string {
	return LookupServiceDocumentation
}

func (l *LookupService) GetMetaData() *overlay.MetaData {
	return &overlay.MetaData{
		Name:        "HelloWorld Lookup Service",
		Description: "Find messages on-chain.",
	}
}

var _ engine.LookupService = (*LookupService)(nil)
