package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/Kaiwei0323/web-steve/internal/domain"
)

// PostgresStore keeps the document collections in a single JSONB table,
// for deployments standardized on the relational stack. The identifier
// lives in its own column; the stored JSONB never contains "_id".
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// EnsureSchema creates the documents table when it does not exist yet.
// Called by the wiring code, not the constructor, so unit tests can mock
// the queries without replaying DDL.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	const create = `
		CREATE TABLE IF NOT EXISTS documents (
			collection TEXT NOT NULL,
			doc_id     TEXT NOT NULL,
			doc        JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			PRIMARY KEY (collection, doc_id)
		)`
	if _, err := s.db.ExecContext(ctx, create); err != nil {
		return fmt.Errorf("failed to create documents table: %w", err)
	}
	const index = `CREATE INDEX IF NOT EXISTS idx_documents_collection ON documents (collection, created_at)`
	if _, err := s.db.ExecContext(ctx, index); err != nil {
		return fmt.Errorf("failed to create documents index: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindAll(ctx context.Context, collection string) ([]domain.Document, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT doc_id, doc FROM documents WHERE collection = $1 ORDER BY created_at, doc_id`,
		collection)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", collection, err)
	}
	defer rows.Close()

	out := []domain.Document{}
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", collection, err)
		}
		out = append(out, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", collection, err)
	}
	return out, nil
}

func (s *PostgresStore) FindOne(ctx context.Context, collection string, filter domain.Document) (domain.Document, error) {
	query := `SELECT doc_id, doc FROM documents WHERE collection = $1`
	args := []any{collection}

	rest := make(domain.Document, len(filter))
	for k, v := range filter {
		rest[k] = v
	}
	if id, ok := rest["_id"].(string); ok {
		delete(rest, "_id")
		args = append(args, id)
		query += fmt.Sprintf(" AND doc_id = $%d", len(args))
	}
	if len(rest) > 0 {
		b, err := json.Marshal(rest)
		if err != nil {
			return nil, fmt.Errorf("failed to encode filter: %w", err)
		}
		args = append(args, b)
		query += fmt.Sprintf(" AND doc @> $%d", len(args))
	}
	query += " ORDER BY created_at, doc_id LIMIT 1"

	row := s.db.QueryRowContext(ctx, query, args...)
	doc, err := scanDocument(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", collection, err)
	}
	return doc, nil
}

func (s *PostgresStore) InsertOne(ctx context.Context, collection string, doc domain.Document) (string, error) {
	stored := make(domain.Document, len(doc))
	for k, v := range doc {
		stored[k] = v
	}
	id, _ := stored["_id"].(string)
	if id == "" {
		id = uuid.NewString()
	}
	delete(stored, "_id")

	b, err := json.Marshal(stored)
	if err != nil {
		return "", fmt.Errorf("failed to encode document: %w", err)
	}
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO documents (collection, doc_id, doc) VALUES ($1, $2, $3)`,
		collection, id, b); err != nil {
		return "", fmt.Errorf("failed to insert into %s: %w", collection, err)
	}
	return id, nil
}

func (s *PostgresStore) DeleteAll(ctx context.Context, collection string) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE collection = $1`, collection)
	if err != nil {
		return 0, fmt.Errorf("failed to clear %s: %w", collection, err)
	}
	return res.RowsAffected()
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *PostgresStore) Close(context.Context) error {
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(row rowScanner) (domain.Document, error) {
	var id string
	var raw []byte
	if err := row.Scan(&id, &raw); err != nil {
		return nil, err
	}
	doc := domain.Document{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	doc["_id"] = id
	return doc, nil
}
