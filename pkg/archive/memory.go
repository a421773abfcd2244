package archive

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// Ensure MemoryStore implements Store
var _ Store = (*MemoryStore)(nil)

// MemoryStore keeps submissions in process memory. It is used when no
// database is configured.
type MemoryStore struct {
	mu   sync.RWMutex
	subs map[uuid.UUID]Submission
}

// NewMemoryStore creates an empty MemoryStore
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{subs: make(map[uuid.UUID]Submission)}
}

func (s *MemoryStore) Save(ctx context.Context, sub *Submission) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs[sub.ID] = *sub
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, id uuid.UUID) (*Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sub, ok := s.subs[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &sub, nil
}

func (s *MemoryStore) List(ctx context.Context, limit int) ([]Submission, error) {
	s.mu.RLock()
	out := make([]Submission, 0, len(s.subs))
	for _, sub := range s.subs {
		sub.Content = ""
		out = append(out, sub)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID.String() < out[j].ID.String()
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *MemoryStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.subs[id]; !ok {
		return ErrNotFound
	}
	delete(s.subs, id)
	return nil
}

func (s *MemoryStore) CheckConnectivity(ctx context.Context) error {
	return nil
}
