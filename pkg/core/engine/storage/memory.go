package storage

import (
	"context"
	"sync"

	"github.com/4chain-ag/go-overlay-helloworld/pkg/core/engine"
	"github.com/bsv-blockchain/go-sdk/overlay"
)

type outputKey struct {
	outpoint engine.Outpoint
	topic    string
}

// MemoryStorage is an in-process engine output ledger.
type MemoryStorage struct {
	mu      sync.RWMutex
	outputs map[outputKey]engine.Output
	applied map[string]struct{}
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		outputs: make(map[outputKey]engine.Output),
		applied: make(map[string]struct{}),
	}
}

func (m *MemoryStorage) InsertOutput(_ context.Context, utxo *engine.Output) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := outputKey{outpoint: utxo.Outpoint, topic: utxo.Topic}
	if _, ok := m.outputs[key]; !ok {
		m.outputs[key] = *utxo
	}
	return nil
}

func (m *MemoryStorage) FindOutput(_ context.Context, outpoint *engine.Outpoint, topic string, spent *bool) (*engine.Output, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	output, ok := m.outputs[outputKey{outpoint: *outpoint, topic: topic}]
	if !ok || (spent != nil && output.Spent != *spent) {
		return nil, nil
	}
	return &output, nil
}

func (m *MemoryStorage) MarkUTXOAsSpent(_ context.Context, outpoint *engine.Outpoint, topic string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := outputKey{outpoint: *outpoint, topic: topic}
	if output, ok := m.outputs[key]; ok {
		output.Spent = true
		m.outputs[key] = output
	}
	return nil
}

func (m *MemoryStorage) DeleteOutput(_ context.Context, outpoint *engine.Outpoint, topic string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.outputs, outputKey{outpoint: *outpoint, topic: topic})
	return nil
}

func (m *MemoryStorage) InsertAppliedTransaction(_ context.Context, tx *overlay.AppliedTransaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.applied[appliedKey(tx)] = struct{}{}
	return nil
}

func (m *MemoryStorage) DoesAppliedTransactionExist(_ context.Context, tx *overlay.AppliedTransaction) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.applied[appliedKey(tx)]
	return ok, nil
}

func appliedKey(tx *overlay.AppliedTransaction) string {
	return tx.Txid.String() + ":" + tx.Topic
}
