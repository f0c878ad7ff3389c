// Package store provides persistence for render history.
//
// The HTTP server records each successful render so clients can list and
// re-fetch recent results. Two backends implement the Store interface:
//   - memory: In-memory storage for development/testing
//   - mongo: MongoDB-backed storage for production deployments
//
// # Usage
//
// Create a store:
//
//	// Development
//	st := store.NewMemoryStore()
//
//	// Production
//	st, err := store.NewMongoStore(ctx, store.MongoConfig{
//	    URI: "mongodb://localhost:27017",
//	})
//
// Record and query renders:
//
//	rec := store.NewRender(source, doc)
//	if err := st.Save(ctx, rec); err != nil {
//	    return err
//	}
//	recent, err := st.Recent(ctx, 20)
package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/laneviz/laneviz/pkg/errors"
	"github.com/laneviz/laneviz/pkg/model"
)

// Render is a persisted render record. SVG holds the rendered artifact
// when one was produced; listing endpoints omit it to keep payloads small.
type Render struct {
	ID        string          `json:"id" bson:"_id"`
	Source    string          `json:"source" bson:"source"`
	Document  *model.Document `json:"document" bson:"document"`
	SVG       []byte          `json:"svg,omitempty" bson:"svg,omitempty"`
	CreatedAt time.Time       `json:"created_at" bson:"created_at"`
}

// NewRender creates a render record with a fresh ID and timestamp.
func NewRender(source string, doc *model.Document) *Render {
	return &Render{
		ID:        uuid.NewString(),
		Source:    source,
		Document:  doc,
		CreatedAt: time.Now().UTC(),
	}
}

// Store is the interface for render history backends.
type Store interface {
	// Save persists a render record.
	Save(ctx context.Context, r *Render) error

	// Get retrieves a render by ID.
	// Returns a NOT_FOUND error when the ID is unknown.
	Get(ctx context.Context, id string) (*Render, error)

	// Recent returns up to limit records, newest first.
	Recent(ctx context.Context, limit int) ([]*Render, error)

	// Close releases backend resources.
	Close(ctx context.Context) error
}

// MemoryStore is an in-memory store for development and testing.
type MemoryStore struct {
	mu      sync.RWMutex
	renders map[string]*Render
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{renders: make(map[string]*Render)}
}

// Save stores a render record.
func (s *MemoryStore) Save(ctx context.Context, r *Render) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.renders[r.ID] = r
	return nil
}

// Get retrieves a render by ID.
func (s *MemoryStore) Get(ctx context.Context, id string) (*Render, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.renders[id]
	if !ok {
		return nil, errors.New(errors.ErrCodeNotFound, "render not found: %s", id)
	}
	return r, nil
}

// Recent returns up to limit records, newest first.
func (s *MemoryStore) Recent(ctx context.Context, limit int) ([]*Render, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]*Render, 0, len(s.renders))
	for _, r := range s.renders {
		slim := *r
		slim.SVG = nil
		all = append(all, &slim)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

// Close does nothing for the memory store.
func (s *MemoryStore) Close(ctx context.Context) error { return nil }

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
