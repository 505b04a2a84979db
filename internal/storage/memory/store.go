// internal/storage/memory/store.go
package memory

import (
	"sync"

	"flex_reviews/internal/domain"
)

// Store holds the normalized reviews for the process lifetime. A single
// RWMutex is enough at this size: reads (All/FindByID) run concurrently,
// approval toggles take the write lock one at a time.
type Store struct {
	mu      sync.RWMutex
	reviews []domain.Review
	byID    map[int64]int // id -> index into reviews
}

func New(reviews []domain.Review) *Store {
	s := &Store{
		reviews: make([]domain.Review, len(reviews)),
		byID:    make(map[int64]int, len(reviews)),
	}
	copy(s.reviews, reviews)
	for i, r := range s.reviews {
		s.byID[r.ID] = i
	}
	return s
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.reviews)
}

// All returns a snapshot copy; the caller owns the returned slice.
func (s *Store) All() []domain.Review {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Review, len(s.reviews))
	copy(out, s.reviews)
	return out
}

func (s *Store) FindByID(id int64) (domain.Review, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.byID[id]
	if !ok {
		return domain.Review{}, false
	}
	return s.reviews[i], true
}

// ToggleApproval is the only mutation the store supports. Unknown ids
// leave the collection untouched.
func (s *Store) ToggleApproval(id int64) (domain.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.byID[id]
	if !ok {
		return domain.Review{}, domain.ErrNotFound
	}
	s.reviews[i].Approved = !s.reviews[i].Approved
	return s.reviews[i], nil
}
