package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/4chain-ag/go-overlay-helloworld/pkg/internal/sqlitedb"
)

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS hello_world_records(
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		txid TEXT NOT NULL,
		output_index INTEGER NOT NULL,
		message TEXT NOT NULL,
		created_at INTEGER NOT NULL,
		UNIQUE(txid, output_index)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_hello_world_records_created_at ON hello_world_records(created_at)`,
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// SQLiteStorage is a RecordStore backed by SQLite. CreatedAt is stored as Unix
// nanoseconds and the AUTOINCREMENT id is the insertion sequence.
type SQLiteStorage struct {
	db   *sqlitedb.DB
	opts options
}

func NewSQLiteStorage(conn string, opts ...Option) (*SQLiteStorage, error) {
	db, err := sqlitedb.Open(conn, sqliteSchema...)
	if err != nil {
		return nil, err
	}
	return &SQLiteStorage{db: db, opts: newOptions(opts)}, nil
}

func (s *SQLiteStorage) StoreRecord(ctx context.Context, txid string, outputIndex uint32, message string) error {
	_, err := s.db.W.ExecContext(ctx, `
		INSERT OR REPLACE INTO hello_world_records(txid, output_index, message, created_at)
		VALUES(?, ?, ?, ?)`,
		txid,
		outputIndex,
		message,
		s.opts.now().UnixNano(),
	)
	return err
}

func (s *SQLiteStorage) DeleteRecord(ctx context.Context, txid string, outputIndex uint32) error {
	_, err := s.db.W.ExecContext(ctx, `
		DELETE FROM hello_world_records WHERE txid = ? AND output_index = ?`,
		txid,
		outputIndex,
	)
	return err
}

func (s *SQLiteStorage) FindByMessage(ctx context.Context, message string, page Page) ([]MessageRecord, error) {
	return s.find(ctx, page, `message LIKE ? ESCAPE '\'`, "%"+likeEscaper.Replace(message)+"%")
}

func (s *SQLiteStorage) FindAll(ctx context.Context, page Page, from, to *time.Time) ([]MessageRecord, error) {
	var conditions []string
	var args []interface{}
	if from != nil {
		conditions = append(conditions, "created_at >= ?")
		args = append(args, from.UnixNano())
	}
	if to != nil {
		conditions = append(conditions, "created_at <= ?")
		args = append(args, to.UnixNano())
	}
	if len(conditions) == 0 {
		conditions = append(conditions, "1 = 1")
	}
	return s.find(ctx, page, strings.Join(conditions, " AND "), args...)
}

func (s *SQLiteStorage) find(ctx context.Context, page Page, where string, args ...interface{}) ([]MessageRecord, error) {
	records := []MessageRecord{}
	if page.empty() {
		return records, nil
	}

	direction := "DESC"
	if page.Order == SortAscending {
		direction = "ASC"
	}
	query := fmt.Sprintf(`SELECT txid, output_index, message, created_at
		FROM hello_world_records
		WHERE %s
		ORDER BY created_at %s, id ASC
		LIMIT ? OFFSET ?`, where, direction)
	args = append(args, page.Limit, page.skip())

	rows, err := s.db.R.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var record MessageRecord
		var createdAt int64
		if err := rows.Scan(&record.Txid, &record.OutputIndex, &record.Message, &createdAt); err != nil {
			return nil, err
		}
		record.CreatedAt = time.Unix(0, createdAt).UTC()
		records = append(records, record)
	}
	return records, rows.Err()
}

func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

var _ RecordStore = (*SQLiteStorage)(nil)
var _ RecordStore = (*MemoryStorage)(nil)
