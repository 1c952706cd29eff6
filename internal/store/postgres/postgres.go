package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/quizdeck/quizdeck-backend/internal/store"
)

// Store is the PostgreSQL document store: one JSONB row per document, keyed
// by (collection, id). Filter field names come from code constants, never
// from request input, so they are interpolated while values stay
// parameterized.
type Store struct {
	pool *pgxpool.Pool
}

// New creates a Store on top of an existing connection pool.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func (s *Store) Get(ctx context.Context, collection, id string, out interface{}) error {
	var doc []byte
	err := s.pool.QueryRow(ctx,
		`SELECT doc FROM documents WHERE collection = $1 AND id = $2`,
		collection, id,
	).Scan(&doc)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return store.ErrNotFound
		}
		return fmt.Errorf("get %s/%s: %w", collection, id, err)
	}
	return json.Unmarshal(doc, out)
}

func (s *Store) Query(ctx context.Context, collection string, filters []store.Filter, out interface{}) error {
	query := `SELECT doc FROM documents WHERE collection = $1`
	args := []interface{}{collection}

	for _, f := range filters {
		switch f.Op {
		case store.OpEq:
			match, err := json.Marshal(map[string]interface{}{f.Field: f.Value})
			if err != nil {
				return fmt.Errorf("marshal filter %s: %w", f.Field, err)
			}
			args = append(args, match)
			query += fmt.Sprintf(` AND doc @> $%d::jsonb`, len(args))
		case store.OpGt:
			// doc_timestamptz is the IMMUTABLE cast helper from the schema
			// migration; using it here keeps the window indexes applicable.
			args = append(args, f.Value)
			query += fmt.Sprintf(` AND doc_timestamptz(doc->>'%s') > $%d`, f.Field, len(args))
		default:
			return fmt.Errorf("unsupported filter op %q", f.Op)
		}
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("query %s: %w", collection, err)
	}
	defer rows.Close()

	var docs []json.RawMessage
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return fmt.Errorf("scan %s: %w", collection, err)
		}
		docs = append(docs, json.RawMessage(doc))
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("query %s: %w", collection, err)
	}

	return decodeDocs(docs, out)
}

func (s *Store) Add(ctx context.Context, collection string, doc interface{}) (string, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("marshal doc: %w", err)
	}
	var fields map[string]interface{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return "", fmt.Errorf("doc is not an object: %w", err)
	}

	id := uuid.New().String()
	fields["id"] = id
	raw, err = json.Marshal(fields)
	if err != nil {
		return "", fmt.Errorf("marshal doc: %w", err)
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO documents (collection, id, doc) VALUES ($1, $2, $3)`,
		collection, id, raw)
	if err != nil {
		return "", fmt.Errorf("add to %s: %w", collection, err)
	}
	return id, nil
}

func (s *Store) Update(ctx context.Context, collection, id string, fields map[string]interface{}) error {
	patch, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("marshal patch: %w", err)
	}

	tag, err := s.pool.Exec(ctx,
		`UPDATE documents SET doc = doc || $3::jsonb WHERE collection = $1 AND id = $2`,
		collection, id, patch)
	if err != nil {
		return fmt.Errorf("update %s/%s: %w", collection, id, err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, collection, id string) error {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM documents WHERE collection = $1 AND id = $2`,
		collection, id)
	if err != nil {
		return fmt.Errorf("delete %s/%s: %w", collection, id, err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) IncrementField(ctx context.Context, collection, id, field string, delta int64) error {
	if strings.ContainsAny(field, `'"{}`) {
		return fmt.Errorf("invalid field name %q", field)
	}
	tag, err := s.pool.Exec(ctx,
		fmt.Sprintf(
			`UPDATE documents
			 SET doc = jsonb_set(doc, '{%s}', to_jsonb(COALESCE((doc->>'%s')::bigint, 0) + $3))
			 WHERE collection = $1 AND id = $2`, field, field),
		collection, id, delta)
	if err != nil {
		return fmt.Errorf("increment %s/%s.%s: %w", collection, id, field, err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

// decodeDocs funnels raw documents through a single JSON array so that out
// can be any pointer-to-slice of document structs.
func decodeDocs(docs []json.RawMessage, out interface{}) error {
	if docs == nil {
		docs = []json.RawMessage{}
	}
	arr, err := json.Marshal(docs)
	if err != nil {
		return err
	}
	return json.Unmarshal(arr, out)
}
