package storage

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/4chain-ag/go-overlay-helloworld/pkg/core/engine"
	"github.com/4chain-ag/go-overlay-helloworld/pkg/internal/sqlitedb"
	"github.com/bsv-blockchain/go-sdk/overlay"
	"github.com/bsv-blockchain/go-sdk/script"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS outputs(
		outpoint TEXT NOT NULL,
		topic TEXT NOT NULL,
		satoshis BIGINT NOT NULL,
		script BLOB NOT NULL,
		spent BOOL NOT NULL DEFAULT false,
		created_at TEXT NOT NULL DEFAULT current_timestamp,
		updated_at TEXT NOT NULL DEFAULT current_timestamp,
		PRIMARY KEY(outpoint, topic)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_outputs_topic ON outputs(topic)`,
	`CREATE TABLE IF NOT EXISTS applied_transactions(
		txid TEXT NOT NULL,
		topic TEXT NOT NULL,
		created_at TEXT NOT NULL DEFAULT current_timestamp,
		PRIMARY KEY(txid, topic)
	)`,
}

// SQLiteStorage is the engine output ledger backed by SQLite.
type SQLiteStorage struct {
	db *sqlitedb.DB
}

func NewSQLiteStorage(conn string) (*SQLiteStorage, error) {
	db, err := sqlitedb.Open(conn, schema...)
	if err != nil {
		return nil, err
	}
	return &SQLiteStorage{db: db}, nil
}

func (s *SQLiteStorage) InsertOutput(ctx context.Context, utxo *engine.Output) error {
	lockingScript := []byte{}
	if utxo.Script != nil {
		lockingScript = *utxo.Script
	}
	_, err := s.db.W.ExecContext(ctx, `
		INSERT INTO outputs(topic, outpoint, satoshis, script, spent)
		VALUES(?, ?, ?, ?, ?)
		ON CONFLICT(outpoint, topic) DO NOTHING`,
		utxo.Topic,
		utxo.Outpoint.String(),
		utxo.Satoshis,
		lockingScript,
		utxo.Spent,
	)
	return err
}

func (s *SQLiteStorage) FindOutput(ctx context.Context, outpoint *engine.Outpoint, topic string, spent *bool) (*engine.Output, error) {
	var query strings.Builder
	query.WriteString(`SELECT satoshis, script, spent FROM outputs WHERE outpoint = ? AND topic = ? `)
	args := []interface{}{outpoint.String(), topic}
	if spent != nil {
		query.WriteString("AND spent = ? ")
		args = append(args, *spent)
	}

	output := &engine.Output{Outpoint: *outpoint, Topic: topic}
	var lockingScript []byte
	err := s.db.R.QueryRowContext(ctx, query.String(), args...).Scan(
		&output.Satoshis,
		&lockingScript,
		&output.Spent,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	output.Script = script.NewFromBytes(lockingScript)
	return output, nil
}

func (s *SQLiteStorage) MarkUTXOAsSpent(ctx context.Context, outpoint *engine.Outpoint, topic string) error {
	_, err := s.db.W.ExecContext(ctx, `
		UPDATE outputs SET spent = true, updated_at = current_timestamp
		WHERE outpoint = ? AND topic = ?`,
		outpoint.String(),
		topic,
	)
	return err
}

func (s *SQLiteStorage) DeleteOutput(ctx context.Context, outpoint *engine.Outpoint, topic string) error {
	_, err := s.db.W.ExecContext(ctx, `
		DELETE FROM outputs WHERE outpoint = ? AND topic = ?`,
		outpoint.String(),
		topic,
	)
	return err
}

func (s *SQLiteStorage) InsertAppliedTransaction(ctx context.Context, tx *overlay.AppliedTransaction) error {
	_, err := s.db.W.ExecContext(ctx, `
		INSERT INTO applied_transactions(txid, topic)
		VALUES(?, ?)
		ON CONFLICT(txid, topic) DO NOTHING`,
		tx.Txid.String(),
		tx.Topic,
	)
	return err
}

func (s *SQLiteStorage) DoesAppliedTransactionExist(ctx context.Context, tx *overlay.AppliedTransaction) (bool, error) {
	var exists bool
	err := s.db.R.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM applied_transactions WHERE txid = ? AND topic = ?)`,
		tx.Txid.String(),
		tx.Topic,
	).Scan(&exists)
	return exists, err
}

func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}
