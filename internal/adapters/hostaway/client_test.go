package hostaway_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"flex_reviews/internal/adapters/hostaway"
)

const envelope = `{
  "status": "success",
  "result": [
    {
      "id": 7453,
      "type": "guest-to-host",
      "status": "published",
      "submittedAt": "2024-01-12 14:30:00",
      "guestName": "Shane Finkelstein",
      "listingName": "2B N1 A - 29 Shoreditch Heights",
      "publicReview": "Would stay again",
      "reviewCategory": [{"category": "cleanliness", "rating": 10}],
      "approved": true
    }
  ]
}`

func TestClient_FetchReviews_RetriesThenSuccess(t *testing.T) {
	var hits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("missing bearer auth, got %q", got)
		}
		switch atomic.AddInt32(&hits, 1) {
		case 1, 2:
			// two transient failures
			w.WriteHeader(500)
		default:
			w.WriteHeader(200)
			_, _ = w.Write([]byte(envelope))
		}
	}))
	defer ts.Close()

	cl, err := hostaway.New(ts.URL, "test-key", 100) // high RPS for tests
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	got, err := cl.FetchReviews(ctx)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got) != 1 || got[0].ID != 7453 || got[0].GuestName != "Shane Finkelstein" {
		t.Fatalf("unexpected payload: %+v", got)
	}
	if len(got[0].ReviewCategory) != 1 || got[0].ReviewCategory[0].Rating != 10 {
		t.Fatalf("unexpected categories: %+v", got[0].ReviewCategory)
	}
	if atomic.LoadInt32(&hits) < 3 {
		t.Fatalf("expected at least 3 calls due to retries, got %d", hits)
	}
}

func TestClient_FetchReviews_404(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	defer ts.Close()

	cl, err := hostaway.New(ts.URL, "test-key", 100)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if _, err := cl.FetchReviews(ctx); err != hostaway.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestClient_RequiresKey(t *testing.T) {
	if _, err := hostaway.New("http://x", "", 5); err == nil {
		t.Fatalf("expected error for empty key")
	}
}

func TestSeedReviews_BundledExport(t *testing.T) {
	raws, err := hostaway.SeedReviews("")
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if len(raws) == 0 {
		t.Fatalf("bundled export is empty")
	}
	seen := make(map[int64]bool, len(raws))
	for _, r := range raws {
		if seen[r.ID] {
			t.Fatalf("duplicate id %d in bundled export", r.ID)
		}
		seen[r.ID] = true
		if len(r.ReviewCategory) == 0 {
			t.Fatalf("record %d has no categories", r.ID)
		}
	}
}

func TestSeedReviews_MissingOverrideFile(t *testing.T) {
	if _, err := hostaway.SeedReviews("/does/not/exist.json"); err == nil {
		t.Fatalf("expected error for missing override file")
	}
}
