package services

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"sync"

	"bargainbay/internal/domain"
	applog "bargainbay/internal/log"
)

var ErrStarsOutOfRange = errors.New("rating must be between 1 and 5 stars")

// RatingStore persists the whole product -> record mapping as one value.
type RatingStore interface {
	Load(ctx context.Context) (map[string]domain.RatingRecord, error)
	Save(ctx context.Context, all map[string]domain.RatingRecord) error
	Clear(ctx context.Context) error
}

// Ratings keeps a running average per product plus the caller's last rating.
// There is a single "my rating" slot per product, so re-rating adds another
// vote to the average instead of replacing the earlier one.
type Ratings struct {
	mu    sync.Mutex
	store RatingStore
	all   map[string]domain.RatingRecord
}

// NewRatings reads the persisted mapping. An unreadable store starts empty.
func NewRatings(ctx context.Context, store RatingStore) *Ratings {
	all, err := store.Load(ctx)
	if err != nil {
		applog.Error(nil, "ratings.load.fail", err, nil)
	}
	if err != nil || all == nil {
		all = map[string]domain.RatingRecord{}
	}
	return &Ratings{store: store, all: all}
}

// Rate folds stars into the product's aggregate and persists the mapping.
// A failed write is logged; the in-memory aggregate still advances.
func (r *Ratings) Rate(ctx context.Context, productID string, stars int) (domain.RatingRecord, error) {
	const op = "Ratings.Rate"
	if stars < 1 || stars > 5 {
		return domain.RatingRecord{}, fmt.Errorf("%s: %w", op, ErrStarsOutOfRange)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	cur := r.all[productID]
	n := cur.Count + 1
	rec := domain.RatingRecord{
		Average:    (cur.Average*float64(cur.Count) + float64(stars)) / float64(n),
		Count:      n,
		UserRating: stars,
	}
	r.all[productID] = rec

	if err := r.store.Save(ctx, maps.Clone(r.all)); err != nil {
		applog.Error(nil, "ratings.save.fail", err, map[string]any{"product": productID})
	}
	return rec, nil
}

func (r *Ratings) Get(productID string) (domain.RatingRecord, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.all[productID]
	return rec, ok
}

// All returns a snapshot of every record.
func (r *Ratings) All() map[string]domain.RatingRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	return maps.Clone(r.all)
}

// Reset forgets every record, in memory and in the store.
func (r *Ratings) Reset(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.all = map[string]domain.RatingRecord{}
	return r.store.Clear(ctx)
}

// StarView is what a product card shows: filled stars for the caller's
// rating and, once rated, the "4.5 (2)" summary.
type StarView struct {
	Filled  int    `json:"filled"`
	Summary string `json:"summary,omitempty"`
}

func (r *Ratings) Stars(productID string) StarView {
	rec, ok := r.Get(productID)
	if !ok {
		return StarView{}
	}
	return StarView{Filled: rec.UserRating, Summary: fmt.Sprintf("%.1f (%d)", rec.Average, rec.Count)}
}
