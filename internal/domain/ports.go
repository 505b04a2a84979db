package domain

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned when a review id has no match in the
	// store. Handlers map it to a 404, never a generic 500.
	ErrNotFound = errors.New("review not found")

	// ErrMalformedRecord marks a raw record that cannot be normalized
	// (empty category list, unparseable timestamp). Startup concern.
	ErrMalformedRecord = errors.New("malformed review record")
)

type ReviewStore interface {
	// All returns a snapshot copy of the collection; callers may sort
	// and filter it freely without affecting store order.
	All() []Review
	FindByID(id int64) (Review, bool)
	// ToggleApproval flips the approved flag of one review and returns
	// the post-mutation entity. ErrNotFound on unknown id, in which
	// case nothing is mutated.
	ToggleApproval(id int64) (Review, error)
}

// ReviewSource supplies the raw export consumed once at startup.
type ReviewSource interface {
	FetchReviews(ctx context.Context) ([]RawReview, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}
