package store

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore is an in-memory Store seeded at construction. Queries are
// processed one at a time by the REPL, but the LLM tools share the instance
// within a turn, so access is guarded anyway.
type MemoryStore struct {
	mu      sync.RWMutex
	data    map[ResourceType]map[string]Document
	prompts map[string]PromptFunc
}

// NewMemoryStore builds a store from seed data. Collections for every known
// resource type exist even when the seed omits them, so upserts into an empty
// collection work. Seed entries for unknown types are rejected by LoadSeed
// before they get here; the constructor copies the top-level maps so the
// caller's seed value is not aliased.
func NewMemoryStore(seed map[ResourceType]map[string]Document) *MemoryStore {
	data := make(map[ResourceType]map[string]Document, len(knownTypes))
	for _, typ := range knownTypes {
		coll := make(map[string]Document, len(seed[typ]))
		for id, doc := range seed[typ] {
			coll[id] = doc
		}
		data[typ] = coll
	}
	return &MemoryStore{data: data, prompts: make(map[string]PromptFunc)}
}

func (s *MemoryStore) collection(typ ResourceType) (map[string]Document, error) {
	coll, ok := s.data[typ]
	if !ok {
		return nil, NotFoundError{Type: string(typ)}
	}
	return coll, nil
}

// ListIDs returns a fresh type->ids mapping with ids sorted per type.
func (s *MemoryStore) ListIDs(ctx context.Context) (map[ResourceType][]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[ResourceType][]string, len(s.data))
	for typ, coll := range s.data {
		ids := make([]string, 0, len(coll))
		for id := range coll {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		out[typ] = ids
	}
	return out, nil
}

// Read returns the document stored for (typ, id).
func (s *MemoryStore) Read(ctx context.Context, typ ResourceType, id string) (Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	coll, err := s.collection(typ)
	if err != nil {
		return nil, err
	}
	doc, ok := coll[id]
	if !ok {
		return nil, NotFoundError{Type: string(typ), ID: id}
	}
	return doc, nil
}

// Upsert replaces the entire content for (typ, id) and returns the stored
// document. Partial merges are a caller concern.
func (s *MemoryStore) Upsert(ctx context.Context, typ ResourceType, id string, content Document, createIfMissing bool) (Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	coll, err := s.collection(typ)
	if err != nil {
		return nil, err
	}
	if _, ok := coll[id]; !ok && !createIfMissing {
		return nil, NotFoundError{Type: string(typ), ID: id}
	}
	if content == nil {
		content = Document{}
	}
	coll[id] = content
	return content, nil
}
