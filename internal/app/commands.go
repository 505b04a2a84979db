package app

import (
	"context"

	"flex_reviews/internal/domain"
)

// ToggleApproval flips the approval flag of one review and returns the
// updated entity. It is the only mutation path in the service. A miss
// returns domain.ErrNotFound and leaves both store and cache untouched;
// a hit evicts the listing's public cache entry before returning so the
// next public read recomputes from the store.
func (s *ReviewService) ToggleApproval(ctx context.Context, id int64) (domain.Review, error) {
	rv, err := s.store.ToggleApproval(id)
	if err != nil {
		return domain.Review{}, err
	}
	if s.cache != nil {
		_ = s.cache.Del(ctx, publicCacheKey(rv.Listing))
	}
	return rv, nil
}
