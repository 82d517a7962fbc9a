package engine

import (
	"context"

	"github.com/bsv-blockchain/go-sdk/overlay"
	"github.com/bsv-blockchain/go-sdk/overlay/lookup"
)

// LookupService maintains an index over outputs admitted by topic managers.
//
// Every notification carries the topic under which the output was admitted.
// Implementations ignore topics they are not bound to.
type LookupService interface {
	// OutputAdded is invoked when a topic manager admits a new output.
	OutputAdded(ctx context.Context, output *Output) error

	// OutputSpent is invoked when a previously admitted output is spent.
	OutputSpent(ctx context.Context, outpoint *Outpoint, topic string) error

	// OutputDeleted is invoked when a previously admitted output is evicted
	// without being spent.
	OutputDeleted(ctx context.Context, outpoint *Outpoint, topic string) error

	Lookup(ctx context.Context, question *lookup.LookupQuestion) (*lookup.LookupAnswer, error)
	GetDocumentation() string
	GetMetaData() *overlay.MetaData
}
