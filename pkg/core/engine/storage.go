package engine

import (
	"context"

	"github.com/bsv-blockchain/go-sdk/overlay"
)

// Storage keeps track of the outputs admitted into each topic.
type Storage interface {
	// Adds a new output to storage
	InsertOutput(ctx context.Context, utxo *Output) error

	// Finds an output admitted into topic. Returns nil when no such output exists.
	FindOutput(ctx context.Context, outpoint *Outpoint, topic string, spent *bool) (*Output, error)

	// Updates an output as spent
	MarkUTXOAsSpent(ctx context.Context, outpoint *Outpoint, topic string) error

	// Deletes an output from storage
	DeleteOutput(ctx context.Context, outpoint *Outpoint, topic string) error

	// Inserts record of the applied transaction
	InsertAppliedTransaction(ctx context.Context, tx *overlay.AppliedTransaction) error

	// Checks if a duplicate transaction exists
	DoesAppliedTransactionExist(ctx context.Context, tx *overlay.AppliedTransaction) (bool, error)
}
