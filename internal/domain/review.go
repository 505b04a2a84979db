package domain

import (
	"encoding/json"
	"time"
)

// RawReview is one entry of a Hostaway reviews export, as delivered by
// the API (or the bundled static export). Approved is kept raw because
// the source is not trustworthy about its type: it may be absent, a
// string, a number or an actual boolean.
type RawReview struct {
	ID             int64           `json:"id"`
	ListingName    string          `json:"listingName"`
	GuestName      string          `json:"guestName"`
	PublicReview   string          `json:"publicReview"`
	ReviewCategory []RawCategory   `json:"reviewCategory"`
	SubmittedAt    string          `json:"submittedAt"`
	Type           string          `json:"type"`
	Status         string          `json:"status"`
	Approved       json.RawMessage `json:"approved,omitempty"`
}

type RawCategory struct {
	Category string  `json:"category"`
	Rating   float64 `json:"rating"`
}

// Review is the canonical moderation unit. All fields except Approved
// are fixed at normalization time; Approved is flipped exclusively via
// the store's ToggleApproval.
type Review struct {
	ID            int64              `json:"id"`
	Listing       string             `json:"listing"`
	GuestName     string             `json:"guestName"`
	Comment       string             `json:"comment"`
	Categories    map[string]float64 `json:"categories"`
	OverallRating float64            `json:"overallRating"` // mean of Categories, 0-10 scale
	SubmittedAt   time.Time          `json:"submittedAt"`
	YearMonth     string             `json:"yearMonth"` // YYYY-MM bucket of SubmittedAt
	Channel       string             `json:"channel"`
	Type          string             `json:"type"`
	Status        string             `json:"status"`
	Approved      bool               `json:"approved"`
}

type SortField string

type SortOrder string

const (
	SortByDate   SortField = "date"
	SortByRating SortField = "rating"
	SortByGuest  SortField = "guest"

	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// ListQuery describes the manager-dashboard listing. Nil pointer means
// "dimension not filtered"; there is no magic sentinel at this level
// (the HTTP layer translates the legacy listing=all into a nil Listing).
type ListQuery struct {
	MinRating *float64
	MaxRating *float64
	Listing   *string
	Approved  *bool
	StartDate *time.Time
	EndDate   *time.Time
	SortBy    SortField
	SortOrder SortOrder
}

type Totals struct {
	Total    int `json:"total"`
	Approved int `json:"approved"`
	Pending  int `json:"pending"`
}

// AnalyticsSnapshot is recomputed from the full store on every request
// so approval toggles are visible immediately.
type AnalyticsSnapshot struct {
	Totals           Totals             `json:"totals"`
	AverageRating    float64            `json:"averageRating"`
	ByListing        map[string]int     `json:"byListing"`
	ByMonth          map[string]int     `json:"byMonth"`
	CategoryAverages map[string]float64 `json:"categoryAverages"`
}
