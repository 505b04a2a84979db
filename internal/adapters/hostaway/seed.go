package hostaway

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"flex_reviews/internal/domain"
)

// The bundled export mirrors the shape of GET /reviews, so the live API
// and the fallback feed the exact same normalization path.
//
//go:embed seed_reviews.json
var seedJSON []byte

// SeedReviews returns the bundled static export. When path is non-empty
// the file at path is read instead, which lets deployments swap the
// dataset without rebuilding.
func SeedReviews(path string) ([]domain.RawReview, error) {
	data := seedJSON
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read review export %s: %w", path, err)
		}
		data = b
	}
	var env reviewsEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decode review export: %w", err)
	}
	return env.Result, nil
}
