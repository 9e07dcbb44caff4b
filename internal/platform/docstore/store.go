package docstore

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
)

// ErrNotFound is returned when a document does not exist in its collection.
var ErrNotFound = errors.New("document not found")

// Document is one schemaless record inside a named collection.
type Document struct {
	ID   string
	Data map[string]any
}

// PostgresStore keeps documents as JSONB rows keyed by collection and id.
type PostgresStore struct {
	db *sqlx.DB
}

type documentRow struct {
	ID   string `db:"id"`
	Data []byte `db:"data"`
}

// NewPostgresStore connects to Postgres and creates the documents table.
func NewPostgresStore(dataSourceName string) (*PostgresStore, error) {
	db, err := sqlx.Connect("postgres", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS documents (
		collection TEXT NOT NULL,
		id TEXT NOT NULL,
		data JSONB NOT NULL DEFAULT '{}'::jsonb,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		PRIMARY KEY (collection, id)
	);
	`
	if _, err = db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to create documents table: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

// Close releases the underlying connection pool.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

// Ping checks that the database is reachable.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// FetchAll returns every document in the collection, oldest first.
func (s *PostgresStore) FetchAll(ctx context.Context, collection string) ([]Document, error) {
	var rows []documentRow
	err := s.db.SelectContext(ctx, &rows,
		"SELECT id, data FROM documents WHERE collection = $1 ORDER BY created_at, id",
		collection,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", collection, err)
	}

	docs := make([]Document, 0, len(rows))
	for _, row := range rows {
		doc, err := row.decode()
		if err != nil {
			return nil, fmt.Errorf("failed to decode %s/%s: %w", collection, row.ID, err)
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// Get returns one document or ErrNotFound.
func (s *PostgresStore) Get(ctx context.Context, collection, id string) (*Document, error) {
	var row documentRow
	err := s.db.GetContext(ctx, &row,
		"SELECT id, data FROM documents WHERE collection = $1 AND id = $2",
		collection, id,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get %s/%s: %w", collection, id, err)
	}

	doc, err := row.decode()
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s/%s: %w", collection, id, err)
	}
	return &doc, nil
}

// MergeField sets one top-level field of a document, creating the document
// when it does not exist yet. Other fields are left untouched.
func (s *PostgresStore) MergeField(ctx context.Context, collection, id, field string, value any) error {
	valueJSON, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", field, err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO documents (collection, id, data) VALUES ($1, $2, jsonb_build_object($3::text, $4::jsonb))
		ON CONFLICT (collection, id) DO UPDATE SET data = documents.data || jsonb_build_object($3::text, $4::jsonb), updated_at = now()`,
		collection, id, field, valueJSON,
	)
	if err != nil {
		return fmt.Errorf("failed to merge %s into %s/%s: %w", field, collection, id, err)
	}
	return nil
}

// MergeFields sets several top-level fields in one statement, creating the
// document when it does not exist yet.
func (s *PostgresStore) MergeFields(ctx context.Context, collection, id string, fields map[string]any) error {
	patch, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("failed to marshal fields: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO documents (collection, id, data) VALUES ($1, $2, $3::jsonb)
		ON CONFLICT (collection, id) DO UPDATE SET data = documents.data || $3::jsonb, updated_at = now()`,
		collection, id, patch,
	)
	if err != nil {
		return fmt.Errorf("failed to merge fields into %s/%s: %w", collection, id, err)
	}
	return nil
}

// Insert stores a new document under a generated id.
func (s *PostgresStore) Insert(ctx context.Context, collection string, data map[string]any) (string, error) {
	id := uuid.NewString()
	dataJSON, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("failed to marshal document: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		"INSERT INTO documents (collection, id, data) VALUES ($1, $2, $3)",
		collection, id, dataJSON,
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert into %s: %w", collection, err)
	}
	return id, nil
}

// InsertBatch stores all documents in a single transaction; either every
// document is written or none is.
func (s *PostgresStore) InsertBatch(ctx context.Context, collection string, docs []map[string]any) ([]string, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PreparexContext(ctx, "INSERT INTO documents (collection, id, data, created_at) VALUES ($1, $2, $3, $4)")
	if err != nil {
		return nil, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	// Spread creation times so FetchAll keeps the batch order.
	base := time.Now()
	ids := make([]string, 0, len(docs))
	for i, data := range docs {
		dataJSON, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal document %d: %w", i, err)
		}
		id := uuid.NewString()
		if _, err := stmt.ExecContext(ctx, collection, id, dataJSON, base.Add(time.Duration(i)*time.Microsecond)); err != nil {
			return nil, fmt.Errorf("failed to insert document %d: %w", i, err)
		}
		ids = append(ids, id)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit batch: %w", err)
	}
	return ids, nil
}

func (r documentRow) decode() (Document, error) {
	data := map[string]any{}
	if len(r.Data) > 0 {
		if err := json.Unmarshal(r.Data, &data); err != nil {
			return Document{}, err
		}
	}
	return Document{ID: r.ID, Data: data}, nil
}
