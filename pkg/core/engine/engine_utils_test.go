package engine_test

import (
	"context"
	"testing"

	"github.com/4chain-ag/go-overlay-helloworld/pkg/core/engine"
	"github.com/bsv-blockchain/go-sdk/chainhash"
	"github.com/bsv-blockchain/go-sdk/overlay"
	"github.com/bsv-blockchain/go-sdk/overlay/lookup"
	"github.com/bsv-blockchain/go-sdk/script"
	"github.com/bsv-blockchain/go-sdk/transaction"
	"github.com/stretchr/testify/require"
)

type fakeManager struct {
	identifyAdmissibleOutputsFunc func(ctx context.Context, beef []byte, previousCoins []uint32) (overlay.AdmittanceInstructions, error)
	getDocumentationFunc          func() string
	getMetaDataFunc               func() *overlay.MetaData
}

func (f fakeManager) IdentifyAdmissibleOutputs(ctx context.Context, beef []byte, previousCoins []uint32) (overlay.AdmittanceInstructions, error) {
	if f.identifyAdmissibleOutputsFunc != nil {
		return f.identifyAdmissibleOutputsFunc(ctx, beef, previousCoins)
	}
	panic("func not defined")
}

func (f fakeManager) GetDocumentation() string {
	if f.getDocumentationFunc != nil {
		return f.getDocumentationFunc()
	}
	panic("func not defined")
}

func (f fakeManager) GetMetaData() *overlay.MetaData {
	if f.getMetaDataFunc != nil {
		return f.getMetaDataFunc()
	}
	panic("func not defined")
}

type fakeLookupService struct {
	outputAddedFunc      func(ctx context.Context, output *engine.Output) error
	outputSpentFunc      func(ctx context.Context, outpoint *engine.Outpoint, topic string) error
	outputDeletedFunc    func(ctx context.Context, outpoint *engine.Outpoint, topic string) error
	lookupFunc           func(ctx context.Context, question *lookup.LookupQuestion) (*lookup.LookupAnswer, error)
	getDocumentationFunc func() string
	getMetaDataFunc      func() *overlay.MetaData
}

func (f fakeLookupService) OutputAdded(ctx context.Context, output *engine.Output) error {
	if f.outputAddedFunc != nil {
		return f.outputAddedFunc(ctx, output)
	}
	panic("func not defined")
}

func (f fakeLookupService) OutputSpent(ctx context.Context, outpoint *engine.Outpoint, topic string) error {
	if f.outputSpentFunc != nil {
		return f.outputSpentFunc(ctx, outpoint, topic)
	}
	panic("func not defined")
}

func (f fakeLookupService) OutputDeleted(ctx context.Context, outpoint *engine.Outpoint, topic string) error {
	if f.outputDeletedFunc != nil {
		return f.outputDeletedFunc(ctx, outpoint, topic)
	}
	panic("func not defined")
}

func (f fakeLookupService) Lookup(ctx context.Context, question *lookup.LookupQuestion) (*lookup.LookupAnswer, error) {
	if f.lookupFunc != nil {
		return f.lookupFunc(ctx, question)
	}
	panic("func not defined")
}

func (f fakeLookupService) GetDocumentation() string {
	if f.getDocumentationFunc != nil {
		return f.getDocumentationFunc()
	}
	panic("func not defined")
}

func (f fakeLookupService) GetMetaData() *overlay.MetaData {
	if f.getMetaDataFunc != nil {
		return f.getMetaDataFunc()
	}
	panic("func not defined")
}

// lookupRecorder is a lookup service that records every notification it receives.
type lookupRecorder struct {
	added   []*engine.Output
	spent   []engine.Outpoint
	deleted []engine.Outpoint
}

func (r *lookupRecorder) service() fakeLookupService {
	return fakeLookupService{
		outputAddedFunc: func(_ context.Context, output *engine.Output) error {
			r.added = append(r.added, output)
			return nil
		},
		outputSpentFunc: func(_ context.Context, outpoint *engine.Outpoint, _ string) error {
			r.spent = append(r.spent, *outpoint)
			return nil
		},
		outputDeletedFunc: func(_ context.Context, outpoint *engine.Outpoint, _ string) error {
			r.deleted = append(r.deleted, *outpoint)
			return nil
		},
	}
}

// admitAll returns a topic manager admitting every output and retaining the given coins.
func admitAll(outputs int, retain ...uint32) fakeManager {
	return fakeManager{
		identifyAdmissibleOutputsFunc: func(_ context.Context, _ []byte, _ []uint32) (overlay.AdmittanceInstructions, error) {
			admit := make([]uint32, 0, outputs)
			for i := 0; i < outputs; i++ {
				admit = append(admit, uint32(i)) //nolint:gosec // test index
			}
			return overlay.AdmittanceInstructions{OutputsToAdmit: admit, CoinsToRetain: retain}, nil
		},
	}
}

// createRawTx serializes a transaction spending source with one OP_TRUE output per satoshi amount.
func createRawTx(t *testing.T, source chainhash.Hash, sourceIndex uint32, satoshis ...uint64) ([]byte, *chainhash.Hash) {
	t.Helper()

	tx := &transaction.Transaction{
		Version: 1,
		Inputs: []*transaction.TransactionInput{{
			SourceTXID:       &source,
			SourceTxOutIndex: sourceIndex,
			UnlockingScript:  &script.Script{},
			SequenceNumber:   0xffffffff,
		}},
	}
	for _, sats := range satoshis {
		tx.Outputs = append(tx.Outputs, &transaction.TransactionOutput{
			Satoshis:      sats,
			LockingScript: &script.Script{script.OpTRUE},
		})
	}

	raw := tx.Bytes()
	require.NotEmpty(t, raw)
	return raw, tx.TxID()
}

func fundingTxID() chainhash.Hash {
	return chainhash.DoubleHashH([]byte("funding"))
}
