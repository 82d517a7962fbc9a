package storage

import (
	"context"
	"strings"
	"sync"
	"time"
)

// MemoryStorage is an in-process RecordStore.
type MemoryStorage struct {
	mu      sync.RWMutex
	opts    options
	records []sequenced
	seq     int64
}

func NewMemoryStorage(opts ...Option) *MemoryStorage {
	return &MemoryStorage{opts: newOptions(opts)}
}

func (m *MemoryStorage) StoreRecord(_ context.Context, txid string, outputIndex uint32, message string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.remove(txid, outputIndex)
	m.seq++
	m.records = append(m.records, sequenced{
		record: MessageRecord{
			Txid:        txid,
			OutputIndex: outputIndex,
			Message:     message,
			CreatedAt:   m.opts.now(),
		},
		seq: m.seq,
	})
	return nil
}

func (m *MemoryStorage) DeleteRecord(_ context.Context, txid string, outputIndex uint32) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.remove(txid, outputIndex)
	return nil
}

func (m *MemoryStorage) remove(txid string, outputIndex uint32) {
	kept := m.records[:0]
	for _, r := range m.records {
		if r.record.Txid != txid || r.record.OutputIndex != outputIndex {
			kept = append(kept, r)
		}
	}
	m.records = kept
}

func (m *MemoryStorage) FindByMessage(_ context.Context, message string, page Page) ([]MessageRecord, error) {
	needle := strings.ToLower(message)
	return m.find(page, func(r MessageRecord) bool {
		return strings.Contains(strings.ToLower(r.Message), needle)
	}), nil
}

func (m *MemoryStorage) FindAll(_ context.Context, page Page, from, to *time.Time) ([]MessageRecord, error) {
	return m.find(page, func(r MessageRecord) bool {
		return withinRange(r.CreatedAt, from, to)
	}), nil
}

func (m *MemoryStorage) find(page Page, match func(MessageRecord) bool) []MessageRecord {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var matched []sequenced
	for _, r := range m.records {
		if match(r.record) {
			matched = append(matched, r)
		}
	}
	sortSequenced(matched, page.Order)
	return paginate(matched, page)
}
