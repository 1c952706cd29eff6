package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/quizdeck/quizdeck-backend/internal/store"
)

// Store is an in-memory document store used by unit tests and local
// development. Documents are held as decoded JSON objects so that reads
// behave exactly like a round-trip through a real backend.
type Store struct {
	mu   sync.RWMutex
	data map[string]map[string]map[string]interface{}

	// Fail, when set, is consulted before every operation; a non-nil result
	// aborts the call with that error. Lets tests exercise store-failure
	// propagation paths.
	Fail func(op, collection string) error
}

// New creates an empty Store.
func New() *Store {
	return &Store{data: make(map[string]map[string]map[string]interface{})}
}

func (s *Store) failure(op, collection string) error {
	if s.Fail != nil {
		return s.Fail(op, collection)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, collection, id string, out interface{}) error {
	if err := s.failure("get", collection); err != nil {
		return err
	}

	s.mu.RLock()
	doc, ok := s.data[collection][id]
	s.mu.RUnlock()
	if !ok {
		return store.ErrNotFound
	}
	return reencode(doc, out)
}

func (s *Store) Query(ctx context.Context, collection string, filters []store.Filter, out interface{}) error {
	if err := s.failure("query", collection); err != nil {
		return err
	}

	s.mu.RLock()
	var docs []map[string]interface{}
	for _, doc := range s.data[collection] {
		if matchesAll(doc, filters) {
			docs = append(docs, doc)
		}
	}
	s.mu.RUnlock()

	if docs == nil {
		docs = []map[string]interface{}{}
	}
	return reencode(docs, out)
}

func (s *Store) Add(ctx context.Context, collection string, doc interface{}) (string, error) {
	if err := s.failure("add", collection); err != nil {
		return "", err
	}

	var fields map[string]interface{}
	if err := reencode(doc, &fields); err != nil {
		return "", fmt.Errorf("doc is not an object: %w", err)
	}
	id := uuid.New().String()
	fields["id"] = id

	s.mu.Lock()
	if s.data[collection] == nil {
		s.data[collection] = make(map[string]map[string]interface{})
	}
	s.data[collection][id] = fields
	s.mu.Unlock()
	return id, nil
}

func (s *Store) Update(ctx context.Context, collection, id string, fields map[string]interface{}) error {
	if err := s.failure("update", collection); err != nil {
		return err
	}

	var patch map[string]interface{}
	if err := reencode(fields, &patch); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.data[collection][id]
	if !ok {
		return store.ErrNotFound
	}
	for k, v := range patch {
		doc[k] = v
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, collection, id string) error {
	if err := s.failure("delete", collection); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data[collection][id]; !ok {
		return store.ErrNotFound
	}
	delete(s.data[collection], id)
	return nil
}

func (s *Store) IncrementField(ctx context.Context, collection, id, field string, delta int64) error {
	if err := s.failure("increment", collection); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.data[collection][id]
	if !ok {
		return store.ErrNotFound
	}
	current := int64(0)
	if v, ok := doc[field].(float64); ok {
		current = int64(v)
	}
	doc[field] = float64(current + delta)
	return nil
}

// Count returns the number of documents in a collection. Test helper.
func (s *Store) Count(collection string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data[collection])
}

func matchesAll(doc map[string]interface{}, filters []store.Filter) bool {
	for _, f := range filters {
		value, ok := doc[f.Field]
		if !ok || value == nil {
			return false
		}
		switch f.Op {
		case store.OpEq:
			if !jsonEqual(value, f.Value) {
				return false
			}
		case store.OpGt:
			stored, ok := asTime(value)
			if !ok {
				return false
			}
			bound, ok := asTime(f.Value)
			if !ok || !stored.After(bound) {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// jsonEqual compares two values by their canonical JSON encoding, so that
// e.g. int 5 from a filter matches float64 5 from a decoded document.
func jsonEqual(a, b interface{}) bool {
	ja, err := json.Marshal(a)
	if err != nil {
		return false
	}
	jb, err := json.Marshal(b)
	if err != nil {
		return false
	}
	return string(ja) == string(jb)
}

func asTime(v interface{}) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case string:
		parsed, err := time.Parse(time.RFC3339Nano, t)
		if err != nil {
			return time.Time{}, false
		}
		return parsed, true
	}
	return time.Time{}, false
}

func reencode(in, out interface{}) error {
	raw, err := json.Marshal(in)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}
