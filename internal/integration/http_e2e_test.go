//go:build integration

package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/redis/go-redis/v9"

	httpserver "flex_reviews/internal/adapters/http_server"
	"flex_reviews/internal/adapters/hostaway"
	redisad "flex_reviews/internal/adapters/redis"
	"flex_reviews/internal/app"
	"flex_reviews/internal/domain"
	"flex_reviews/internal/storage/memory"
)

// Spins a real Redis, seeds the store from the bundled export and walks
// the public flow: read (fills cache), toggle (evicts), read again
// (must reflect the toggle).
func TestHTTP_EndToEnd_PublicFlow(t *testing.T) {
	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("dockertest: %v", err)
	}
	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "redis",
		Tag:        "7-alpine",
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("run redis: %v", err)
	}
	t.Cleanup(func() { _ = pool.Purge(resource) })

	addr := fmt.Sprintf("127.0.0.1:%s", resource.GetPort("6379/tcp"))
	if err := pool.Retry(func() error {
		c := redis.NewClient(&redis.Options{Addr: addr})
		defer c.Close()
		return c.Ping(context.Background()).Err()
	}); err != nil {
		t.Fatalf("connect redis: %v", err)
	}

	raws, err := hostaway.SeedReviews("")
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	store := memory.New(app.NormalizeReviews(raws))
	svc := app.NewReviewService(store, redisad.New(addr, "", 0), time.Minute)

	srv := httpserver.New(httpserver.Options{AllowedOrigins: []string{"http://localhost:5173"}})
	srv.MountHandlers(&httpserver.Handlers{Svc: svc})
	ts := httptest.NewServer(srv.Mux())
	defer ts.Close()

	const listing = "2B N1 A - 29 Shoreditch Heights"
	publicURL := ts.URL + "/api/reviews/public/" + url.PathEscape(listing)

	fetchPublic := func() (int, []domain.Review) {
		t.Helper()
		res, err := http.Get(publicURL)
		if err != nil {
			t.Fatalf("GET public: %v", err)
		}
		defer res.Body.Close()
		var body struct {
			Total   int             `json:"total"`
			Reviews []domain.Review `json:"reviews"`
		}
		if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
			t.Fatalf("decode public: %v", err)
		}
		return body.Total, body.Reviews
	}

	before, reviews := fetchPublic()
	if before == 0 {
		t.Fatalf("expected approved seed reviews for %q", listing)
	}
	// warm read again: served from the Redis cache, same answer
	again, _ := fetchPublic()
	if again != before {
		t.Fatalf("cached read differs: %d vs %d", again, before)
	}

	// unapprove the newest public review
	target := reviews[0].ID
	req, _ := http.NewRequest(http.MethodPatch, fmt.Sprintf("%s/api/reviews/%d/approve", ts.URL, target), nil)
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("PATCH approve: %v", err)
	}
	res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("toggle status %d", res.StatusCode)
	}

	after, _ := fetchPublic()
	if after != before-1 {
		t.Fatalf("public view stale after toggle: before=%d after=%d", before, after)
	}
}
