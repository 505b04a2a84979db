package app

import (
	"bytes"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"flex_reviews/internal/adapters/observability"
	"flex_reviews/internal/domain"
)

// Hostaway exports timestamps as "2020-08-21 22:45:14" (UTC, no zone).
// RFC3339 and a bare date are accepted as fallbacks.
var submittedAtLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02",
}

const channelHostaway = "hostaway"

var jsonTrue = []byte("true")

// NormalizeReviews converts a raw Hostaway export into canonical
// reviews, preserving input order. Records that cannot be normalized
// are skipped with a warning rather than failing the whole startup, so
// one bad export row cannot take the dashboard down; the skip is
// counted so it stays visible.
func NormalizeReviews(raws []domain.RawReview) []domain.Review {
	out := make([]domain.Review, 0, len(raws))
	for _, raw := range raws {
		rv, err := normalizeReview(raw)
		if err != nil {
			observability.NormalizeSkips.Inc()
			log.Warn().Int64("id", raw.ID).Err(err).Msg("skipping malformed review record")
			continue
		}
		out = append(out, rv)
	}
	return out
}

func normalizeReview(raw domain.RawReview) (domain.Review, error) {
	if len(raw.ReviewCategory) == 0 {
		return domain.Review{}, fmt.Errorf("%w: id %d has no category ratings", domain.ErrMalformedRecord, raw.ID)
	}

	categories := make(map[string]float64, len(raw.ReviewCategory))
	sum := 0.0
	for _, c := range raw.ReviewCategory {
		categories[c.Category] = c.Rating
		sum += c.Rating
	}

	submitted, err := parseSubmittedAt(raw.SubmittedAt)
	if err != nil {
		return domain.Review{}, fmt.Errorf("%w: id %d: %v", domain.ErrMalformedRecord, raw.ID, err)
	}

	return domain.Review{
		ID:            raw.ID,
		Listing:       raw.ListingName,
		GuestName:     raw.GuestName,
		Comment:       raw.PublicReview,
		Categories:    categories,
		OverallRating: sum / float64(len(raw.ReviewCategory)),
		SubmittedAt:   submitted,
		YearMonth:     submitted.UTC().Format("2006-01"),
		Channel:       channelHostaway,
		Type:          raw.Type,
		Status:        raw.Status,
		// Strict boolean equality: the source flag is only honored when
		// it is the literal JSON `true`. Strings, numbers, null and an
		// absent field all start the review unapproved.
		Approved: bytes.Equal(bytes.TrimSpace(raw.Approved), jsonTrue),
	}, nil
}

func parseSubmittedAt(s string) (time.Time, error) {
	for _, layout := range submittedAtLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable timestamp %q", s)
}
