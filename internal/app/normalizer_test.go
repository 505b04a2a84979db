package app_test

import (
	"encoding/json"
	"testing"

	"flex_reviews/internal/app"
	"flex_reviews/internal/domain"
)

func rawReview(id int64, cats ...domain.RawCategory) domain.RawReview {
	return domain.RawReview{
		ID:             id,
		ListingName:    "2B N1 A - 29 Shoreditch Heights",
		GuestName:      "Shane Finkelstein",
		PublicReview:   "Would stay again",
		ReviewCategory: cats,
		SubmittedAt:    "2024-01-12 14:30:00",
		Type:           "guest-to-host",
		Status:         "published",
	}
}

func TestNormalize_OverallRatingIsCategoryMean(t *testing.T) {
	raw := rawReview(1,
		domain.RawCategory{Category: "cleanliness", Rating: 8},
		domain.RawCategory{Category: "communication", Rating: 10},
	)
	out := app.NormalizeReviews([]domain.RawReview{raw})
	if len(out) != 1 {
		t.Fatalf("expected 1 review, got %d", len(out))
	}
	if out[0].OverallRating != 9.0 {
		t.Fatalf("overallRating = %v, want 9.0", out[0].OverallRating)
	}
	if out[0].Categories["cleanliness"] != 8 || out[0].Categories["communication"] != 10 {
		t.Fatalf("unexpected categories: %+v", out[0].Categories)
	}
	if out[0].Channel != "hostaway" {
		t.Fatalf("channel = %q", out[0].Channel)
	}
}

func TestNormalize_StrictApprovalFlag(t *testing.T) {
	cases := []struct {
		name string
		flag json.RawMessage
		want bool
	}{
		{"literal true", json.RawMessage(`true`), true},
		{"literal false", json.RawMessage(`false`), false},
		{"absent", nil, false},
		{"null", json.RawMessage(`null`), false},
		{"string true", json.RawMessage(`"true"`), false},
		{"string yes", json.RawMessage(`"yes"`), false},
		{"number one", json.RawMessage(`1`), false},
		{"padded true", json.RawMessage(` true `), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			raw := rawReview(1, domain.RawCategory{Category: "cleanliness", Rating: 10})
			raw.Approved = tc.flag
			out := app.NormalizeReviews([]domain.RawReview{raw})
			if len(out) != 1 {
				t.Fatalf("expected 1 review, got %d", len(out))
			}
			if out[0].Approved != tc.want {
				t.Fatalf("approved = %v, want %v", out[0].Approved, tc.want)
			}
		})
	}
}

func TestNormalize_TimestampAndYearMonth(t *testing.T) {
	raw := rawReview(1, domain.RawCategory{Category: "value", Rating: 7})
	raw.SubmittedAt = "2024-02-18 19:45:30"
	out := app.NormalizeReviews([]domain.RawReview{raw})
	if len(out) != 1 {
		t.Fatalf("expected 1 review, got %d", len(out))
	}
	if got := out[0].SubmittedAt.Format("2006-01-02T15:04:05Z"); got != "2024-02-18T19:45:30Z" {
		t.Fatalf("submittedAt = %s", got)
	}
	if out[0].YearMonth != "2024-02" {
		t.Fatalf("yearMonth = %q, want 2024-02", out[0].YearMonth)
	}

	// RFC3339 also accepted
	raw.SubmittedAt = "2024-03-15T10:30:00Z"
	out = app.NormalizeReviews([]domain.RawReview{raw})
	if len(out) != 1 || out[0].YearMonth != "2024-03" {
		t.Fatalf("RFC3339 timestamp not accepted: %+v", out)
	}
}

func TestNormalize_SkipsMalformedRecords(t *testing.T) {
	good := rawReview(1, domain.RawCategory{Category: "cleanliness", Rating: 9})
	noCategories := rawReview(2)
	badTimestamp := rawReview(3, domain.RawCategory{Category: "value", Rating: 5})
	badTimestamp.SubmittedAt = "not-a-date"

	out := app.NormalizeReviews([]domain.RawReview{noCategories, good, badTimestamp})
	if len(out) != 1 {
		t.Fatalf("expected only the valid record, got %d", len(out))
	}
	if out[0].ID != 1 {
		t.Fatalf("wrong survivor: %+v", out[0])
	}
}

func TestNormalize_PreservesInputOrder(t *testing.T) {
	raws := []domain.RawReview{
		rawReview(3, domain.RawCategory{Category: "value", Rating: 5}),
		rawReview(1, domain.RawCategory{Category: "value", Rating: 6}),
		rawReview(2, domain.RawCategory{Category: "value", Rating: 7}),
	}
	out := app.NormalizeReviews(raws)
	if len(out) != 3 {
		t.Fatalf("expected 3 reviews, got %d", len(out))
	}
	for i, want := range []int64{3, 1, 2} {
		if out[i].ID != want {
			t.Fatalf("order not preserved: pos %d = id %d, want %d", i, out[i].ID, want)
		}
	}
}
