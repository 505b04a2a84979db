// Package google documents how Google Reviews could be pulled in as a
// second channel. It serves static findings only; there is no Places
// API integration behind it.
package google

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"
)

type Findings struct {
	Feasibility         string   `json:"feasibility"`
	Method              string   `json:"method"`
	Requirements        []string `json:"requirements"`
	Limitations         []string `json:"limitations"`
	ImplementationSteps []string `json:"implementationSteps"`
	SampleRequest       string   `json:"sampleRequest"`
}

func exploreFindings() Findings {
	return Findings{
		Feasibility: "Possible with limitations",
		Method:      "Google Places API (Text Search or Place Details)",
		Requirements: []string{
			"Google Cloud Platform account",
			"Places API enabled",
			"API key with billing enabled",
			"Place IDs for each property",
		},
		Limitations: []string{
			"Limited to 5 reviews per request without pagination token",
			"No ability to filter by date via API",
			"Cannot post or respond to reviews via API (need Business Profile)",
			"Cost: $0.032 per request after free tier",
		},
		ImplementationSteps: []string{
			"1. Get Google Place ID for each property address",
			"2. Store Place IDs alongside listings",
			"3. Schedule a daily fetch of reviews",
			"4. Normalize Google data to the canonical review shape",
			"5. Tag entries with channel \"google\" to distinguish the source",
		},
		SampleRequest: "https://maps.googleapis.com/maps/api/place/details/json?place_id=ChIJN1t_tDeuEmsRUsoyG83frY4&fields=reviews&key=YOUR_API_KEY",
	}
}

// ExploreHandler serves the integration study as-is.
func ExploreHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(exploreFindings()); err != nil {
			log.Error().Err(err).Msg("write google explore response failed")
		}
	}
}
