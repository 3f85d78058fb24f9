package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/veridata-labs/airlens-cli/internal/pipeline"
)

// PostgresStore keeps results in a single table with the payload as JSONB.
type PostgresStore struct {
	db *sqlx.DB
}

const resultsSchema = `
	CREATE TABLE IF NOT EXISTS results (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		payload    JSONB NOT NULL
	)`

// OpenPostgres connects and ensures the results table exists.
func OpenPostgres(ctx context.Context, dsn string) (*PostgresStore, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if _, err := db.ExecContext(ctx, resultsSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}

func (s *PostgresStore) Save(ctx context.Context, name string, res *pipeline.ProcessedResult) (*SavedResult, error) {
	saved := &SavedResult{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
		Result:    res,
	}
	payload, err := json.Marshal(res)
	if err != nil {
		return nil, fmt.Errorf("marshal result: %w", err)
	}
	const query = `INSERT INTO results (id, name, created_at, payload) VALUES ($1, $2, $3, $4)`
	if _, err := s.db.ExecContext(ctx, query, saved.ID, saved.Name, saved.CreatedAt, payload); err != nil {
		return nil, fmt.Errorf("insert result: %w", err)
	}
	return saved, nil
}

type resultRow struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
	Payload   []byte    `db:"payload"`
}

func (s *PostgresStore) Load(ctx context.Context, id string) (*SavedResult, error) {
	const query = `SELECT id, name, created_at, payload FROM results WHERE id = $1`
	var row resultRow
	if err := s.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("query result: %w", err)
	}
	return row.toSaved()
}

func (s *PostgresStore) List(ctx context.Context) ([]SavedResult, error) {
	const query = `SELECT id, name, created_at, payload FROM results ORDER BY created_at DESC`
	var rows []resultRow
	if err := s.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}
	out := make([]SavedResult, 0, len(rows))
	for _, row := range rows {
		saved, err := row.toSaved()
		if err != nil {
			return nil, err
		}
		out = append(out, *saved)
	}
	return out, nil
}

func (r resultRow) toSaved() (*SavedResult, error) {
	var res pipeline.ProcessedResult
	if err := json.Unmarshal(r.Payload, &res); err != nil {
		return nil, fmt.Errorf("parse payload: %w", err)
	}
	return &SavedResult{ID: r.ID, Name: r.Name, CreatedAt: r.CreatedAt, Result: &res}, nil
}
