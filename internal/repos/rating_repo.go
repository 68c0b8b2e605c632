package repos

import (
	"context"
	"encoding/json"
	"fmt"

	"bargainbay/internal/domain"
)

// RatingsKey is the fixed storage key of the ratings mapping.
const RatingsKey = "product_ratings"

// RatingRepo keeps the product -> rating mapping as one JSON document.
type RatingRepo struct{ kv KV }

func NewRatingRepo(kv KV) *RatingRepo { return &RatingRepo{kv: kv} }

// Load always returns a usable map: a missing, unreadable or malformed
// record yields an empty mapping (plus the error, for logging).
func (r *RatingRepo) Load(ctx context.Context) (map[string]domain.RatingRecord, error) {
	out := map[string]domain.RatingRecord{}
	raw, ok, err := r.kv.Get(ctx, RatingsKey)
	if err != nil {
		return out, fmt.Errorf("read %s: %w", RatingsKey, err)
	}
	if !ok || raw == "" {
		return out, nil
	}
	var parsed map[string]domain.RatingRecord
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return out, fmt.Errorf("decode %s: %w", RatingsKey, err)
	}
	for id, rec := range parsed {
		out[id] = rec
	}
	return out, nil
}

func (r *RatingRepo) Save(ctx context.Context, all map[string]domain.RatingRecord) error {
	b, err := json.Marshal(all)
	if err != nil {
		return err
	}
	return r.kv.Set(ctx, RatingsKey, string(b))
}

func (r *RatingRepo) Clear(ctx context.Context) error {
	return r.kv.Delete(ctx, RatingsKey)
}
