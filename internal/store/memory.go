// File: internal/store/memory.go
package store

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore is an in-memory Store used by unit tests. List preserves
// insertion order.
type MemoryStore struct {
	mu    sync.Mutex
	docs  map[string]Document
	order map[string][]string // collection path -> doc ids in insertion order
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		docs:  make(map[string]Document),
		order: make(map[string][]string),
	}
}

func (s *MemoryStore) Get(ctx context.Context, path string) (Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[path]
	if !ok {
		return nil, ErrNotFound
	}
	out := cloneDoc(doc)
	out[IDField] = docIDOf(path)
	return out, nil
}

func (s *MemoryStore) Set(ctx context.Context, path string, doc Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.put(path, doc)
	return nil
}

func (s *MemoryStore) Create(ctx context.Context, path string, doc Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.docs[path]; exists {
		return ErrAlreadyExists
	}
	s.put(path, doc)
	return nil
}

func (s *MemoryStore) Add(ctx context.Context, collectionPath string, doc Document) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.NewString()
	s.put(collectionPath+"/"+id, doc)
	return id, nil
}

func (s *MemoryStore) List(ctx context.Context, collectionPath string) ([]Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := s.order[collectionPath]
	if len(ids) == 0 {
		return nil, nil
	}
	docs := make([]Document, 0, len(ids))
	for _, id := range ids {
		doc := cloneDoc(s.docs[collectionPath+"/"+id])
		doc[IDField] = id
		docs = append(docs, doc)
	}
	return docs, nil
}

func (s *MemoryStore) Delete(ctx context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.docs[path]; !exists {
		return nil
	}
	delete(s.docs, path)
	parent, id := parentOf(path), docIDOf(path)
	ids := s.order[parent]
	for i, existing := range ids {
		if existing == id {
			s.order[parent] = append(ids[:i:i], ids[i+1:]...)
			break
		}
	}
	return nil
}

// put assumes the lock is held.
func (s *MemoryStore) put(path string, doc Document) {
	stored := cloneDoc(doc)
	delete(stored, IDField)
	if _, exists := s.docs[path]; !exists {
		parent := parentOf(path)
		s.order[parent] = append(s.order[parent], docIDOf(path))
	}
	s.docs[path] = stored
}

func cloneDoc(doc Document) Document {
	out := make(Document, len(doc)+1)
	for k, v := range doc {
		out[k] = v
	}
	return out
}

// Len reports the number of documents under a collection; test helper.
func (s *MemoryStore) Len(collectionPath string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for path := range s.docs {
		if parentOf(path) == collectionPath {
			n++
		}
	}
	return n
}
