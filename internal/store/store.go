package store

import (
	"context"
	"errors"
)

// Collection names. Field names inside documents are camelCase and must
// round-trip exactly against data written by earlier clients.
const (
	CollectionQuizzes       = "quizzes"
	CollectionQuizResults   = "quizResults"
	CollectionTemplates     = "templates"
	CollectionClasses       = "classes"
	CollectionTemplateUsage = "templateUsage"
	CollectionQuizRequests  = "quizRequests"
)

// ErrNotFound is returned by Get, Update and Delete when no document with the
// given id exists in the collection.
var ErrNotFound = errors.New("document not found")

// Op is a filter comparison operator.
type Op string

const (
	OpEq Op = "=="
	OpGt Op = ">"
)

// Filter is one query predicate on a top-level document field. OpGt is only
// meaningful for timestamp fields (trailing rate-limit windows).
type Filter struct {
	Field string
	Op    Op
	Value interface{}
}

// Eq builds an equality filter.
func Eq(field string, value interface{}) Filter {
	return Filter{Field: field, Op: OpEq, Value: value}
}

// Gt builds a greater-than filter.
func Gt(field string, value interface{}) Filter {
	return Filter{Field: field, Op: OpGt, Value: value}
}

// Store is the narrow document-store interface the core depends on:
// per-document CRUD, equality/range filtering, and atomic numeric increment.
// There are no multi-document transactions; callers that need cross-document
// invariants get best-effort read-then-write semantics only.
type Store interface {
	// Get loads the document with the given id into out.
	Get(ctx context.Context, collection, id string, out interface{}) error
	// Query loads every document matching all filters into out, which must be
	// a pointer to a slice. Ordering is unspecified.
	Query(ctx context.Context, collection string, filters []Filter, out interface{}) error
	// Add persists doc under a freshly generated id and returns that id. The
	// id is also written into the document under the "id" key.
	Add(ctx context.Context, collection string, doc interface{}) (string, error)
	// Update merges fields into an existing document.
	Update(ctx context.Context, collection, id string, fields map[string]interface{}) error
	// Delete removes a document.
	Delete(ctx context.Context, collection, id string) error
	// IncrementField atomically adds delta to a numeric field, treating an
	// absent field as zero.
	IncrementField(ctx context.Context, collection, id, field string, delta int64) error
}
