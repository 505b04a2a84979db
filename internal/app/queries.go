package app

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"flex_reviews/internal/domain"
)

// ReviewService is the query and moderation engine over the in-memory
// store. The cache is optional (nil disables it) and only ever holds
// public-listing responses; toggles evict synchronously so a cached
// public page can never show a stale approval state.
type ReviewService struct {
	store    domain.ReviewStore
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewReviewService(s domain.ReviewStore, c domain.Cache, ttl time.Duration) *ReviewService {
	return &ReviewService{store: s, cache: c, cacheTTL: ttl}
}

// List returns the manager view: every supplied predicate is ANDed,
// then the result is sorted by the requested field. Contradictory
// bounds (minRating > maxRating) simply produce an empty result.
func (s *ReviewService) List(ctx context.Context, q domain.ListQuery) []domain.Review {
	reviews := s.store.All()

	out := reviews[:0]
	for _, r := range reviews {
		if matches(r, q) {
			out = append(out, r)
		}
	}
	sortReviews(out, q.SortBy, q.SortOrder)
	return out
}

// PublicByListing is the published view: approved reviews of one
// listing, newest first. The ordering is fixed on purpose.
func (s *ReviewService) PublicByListing(ctx context.Context, listing string) []domain.Review {
	key := publicCacheKey(listing)
	if s.cache != nil {
		var cached []domain.Review
		if ok, _ := s.cache.Get(ctx, key, &cached); ok {
			return cached
		}
	}

	var out []domain.Review
	for _, r := range s.store.All() {
		if r.Approved && r.Listing == listing {
			out = append(out, r)
		}
	}
	sortReviews(out, domain.SortByDate, domain.SortDesc)

	if s.cache != nil {
		_ = s.cache.Set(ctx, key, out, int(s.cacheTTL.Seconds()))
	}
	return out
}

// Analytics recomputes the snapshot from the full store on every call;
// it is deliberately never cached so a toggle is reflected by the very
// next read.
func (s *ReviewService) Analytics(ctx context.Context) domain.AnalyticsSnapshot {
	reviews := s.store.All()

	snap := domain.AnalyticsSnapshot{
		ByListing:        make(map[string]int),
		ByMonth:          make(map[string]int),
		CategoryAverages: make(map[string]float64),
	}
	snap.Totals.Total = len(reviews)

	catSums := make(map[string]float64)
	catCounts := make(map[string]int)
	ratingSum := 0.0

	for _, r := range reviews {
		if r.Approved {
			snap.Totals.Approved++
		}
		ratingSum += r.OverallRating
		snap.ByListing[r.Listing]++
		snap.ByMonth[r.YearMonth]++
		for cat, rating := range r.Categories {
			catSums[cat] += rating
			catCounts[cat]++
		}
	}
	snap.Totals.Pending = snap.Totals.Total - snap.Totals.Approved

	// Empty store: a well-formed zero, not a division fault.
	if snap.Totals.Total > 0 {
		snap.AverageRating = round2(ratingSum / float64(snap.Totals.Total))
	}
	// Categories average independently: a review that omits a category
	// does not count toward that category's denominator.
	for cat, sum := range catSums {
		snap.CategoryAverages[cat] = sum / float64(catCounts[cat])
	}
	return snap
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

func publicCacheKey(listing string) string {
	return fmt.Sprintf("public:%s", listing)
}

func matches(r domain.Review, q domain.ListQuery) bool {
	if q.MinRating != nil && r.OverallRating < *q.MinRating {
		return false
	}
	if q.MaxRating != nil && r.OverallRating > *q.MaxRating {
		return false
	}
	if q.Listing != nil && r.Listing != *q.Listing {
		return false
	}
	if q.Approved != nil && r.Approved != *q.Approved {
		return false
	}
	if q.StartDate != nil && r.SubmittedAt.Before(*q.StartDate) {
		return false
	}
	if q.EndDate != nil && r.SubmittedAt.After(*q.EndDate) {
		return false
	}
	return true
}

// sortReviews orders in place. Guest names compare case-insensitively.
// Equal keys fall back to id ascending so the order is deterministic.
func sortReviews(rs []domain.Review, by domain.SortField, order domain.SortOrder) {
	asc := order == domain.SortAsc
	sort.Slice(rs, func(i, j int) bool {
		a, b := rs[i], rs[j]
		var less, eq bool
		switch by {
		case domain.SortByRating:
			less, eq = a.OverallRating < b.OverallRating, a.OverallRating == b.OverallRating
		case domain.SortByGuest:
			ga, gb := strings.ToLower(a.GuestName), strings.ToLower(b.GuestName)
			less, eq = ga < gb, ga == gb
		default: // date
			less, eq = a.SubmittedAt.Before(b.SubmittedAt), a.SubmittedAt.Equal(b.SubmittedAt)
		}
		if eq {
			return a.ID < b.ID
		}
		if asc {
			return less
		}
		return !less
	})
}
