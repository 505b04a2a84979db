// internal/adapters/http_server/handlers.go
package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"flex_reviews/internal/adapters/observability"
	"flex_reviews/internal/app"
	"flex_reviews/internal/domain"
)

type Handlers struct{ Svc *app.ReviewService }

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/api/reviews/hostaway", h.listReviews)
	s.mux.Get("/api/reviews/analytics", h.analytics)
	s.mux.Patch("/api/reviews/{id}/approve", h.toggleApproval)
	s.mux.Get("/api/reviews/public/{listing}", h.publicByListing)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

// writeCachedJSON handles the ETag/304 dance shared by the GET endpoints.
func writeCachedJSON(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag) // include ETag on 304
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write response body")
	}
}

type listResponse struct {
	Source  string            `json:"source"`
	Total   int               `json:"total"`
	Reviews []domain.Review   `json:"reviews"`
	Filters map[string]string `json:"filters"`
}

// Accepted date shapes for startDate/endDate. A bare date means
// midnight UTC, matching the original dashboard's behavior.
var dateLayouts = []string{"2006-01-02", time.RFC3339}

func parseDateParam(s string) (time.Time, error) {
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t.UTC(), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// listReviews is the manager dashboard: every filter dimension is
// optional, the legacy listing=all sentinel means "unfiltered".
func (h *Handlers) listReviews(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	q := domain.ListQuery{SortBy: domain.SortByDate, SortOrder: domain.SortDesc}
	filters := map[string]string{}

	if v := params.Get("minRating"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			writeProblem(w, http.StatusBadRequest, "Invalid minRating", "minRating must be a number")
			return
		}
		q.MinRating = &f
		filters["minRating"] = v
	}
	if v := params.Get("maxRating"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			writeProblem(w, http.StatusBadRequest, "Invalid maxRating", "maxRating must be a number")
			return
		}
		q.MaxRating = &f
		filters["maxRating"] = v
	}
	if v := params.Get("listing"); v != "" {
		filters["listing"] = v
		if v != "all" {
			listing := v
			q.Listing = &listing
		}
	}
	if v := params.Get("approved"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			writeProblem(w, http.StatusBadRequest, "Invalid approved", `approved must be "true" or "false"`)
			return
		}
		q.Approved = &b
		filters["approved"] = v
	}
	if v := params.Get("startDate"); v != "" {
		t, err := parseDateParam(v)
		if err != nil {
			writeProblem(w, http.StatusBadRequest, "Invalid startDate", "startDate must be an ISO date")
			return
		}
		q.StartDate = &t
		filters["startDate"] = v
	}
	if v := params.Get("endDate"); v != "" {
		t, err := parseDateParam(v)
		if err != nil {
			writeProblem(w, http.StatusBadRequest, "Invalid endDate", "endDate must be an ISO date")
			return
		}
		q.EndDate = &t
		filters["endDate"] = v
	}
	// Unknown sort values fall back to the defaults, like the original
	// dashboard did.
	switch params.Get("sortBy") {
	case "rating":
		q.SortBy = domain.SortByRating
	case "guest":
		q.SortBy = domain.SortByGuest
	}
	if params.Get("sortBy") != "" {
		filters["sortBy"] = params.Get("sortBy")
	}
	if params.Get("sortOrder") == "asc" {
		q.SortOrder = domain.SortAsc
	}
	if params.Get("sortOrder") != "" {
		filters["sortOrder"] = params.Get("sortOrder")
	}

	reviews := h.Svc.List(r.Context(), q)
	if reviews == nil {
		reviews = []domain.Review{}
	}
	writeCachedJSON(w, r, listResponse{
		Source:  "hostaway",
		Total:   len(reviews),
		Reviews: reviews,
		Filters: filters,
	})
}

func (h *Handlers) analytics(w http.ResponseWriter, r *http.Request) {
	writeCachedJSON(w, r, h.Svc.Analytics(r.Context()))
}

type toggleResponse struct {
	Message string        `json:"message"`
	Review  domain.Review `json:"review"`
}

func (h *Handlers) toggleApproval(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a number")
		return
	}

	rv, err := h.Svc.ToggleApproval(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			observability.ObserveToggle("not_found")
			writeProblem(w, http.StatusNotFound, "Not Found", "review not found")
			return
		}
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "toggle failed")
		return
	}
	if rv.Approved {
		observability.ObserveToggle("approved")
	} else {
		observability.ObserveToggle("unapproved")
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(toggleResponse{Message: "Review approval updated", Review: rv}); err != nil {
		log.Error().Err(err).Msg("write toggle response failed")
	}
}

type publicResponse struct {
	Listing string          `json:"listing"`
	Total   int             `json:"total"`
	Reviews []domain.Review `json:"reviews"`
}

func (h *Handlers) publicByListing(w http.ResponseWriter, r *http.Request) {
	listing := chi.URLParam(r, "listing")
	if un, err := url.PathUnescape(listing); err == nil {
		listing = un
	}

	reviews := h.Svc.PublicByListing(r.Context(), listing)
	if reviews == nil {
		reviews = []domain.Review{}
	}
	writeCachedJSON(w, r, publicResponse{
		Listing: listing,
		Total:   len(reviews),
		Reviews: reviews,
	})
}
