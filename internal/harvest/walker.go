package harvest

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/stationone-hq/stationone-menu/internal/domain"
	"github.com/stationone-hq/stationone-menu/internal/logger"
)

// Snapshot is everything one walk saw on a deployment.
type Snapshot struct {
	Categories []domain.Category `json:"categories"`
	// SubCategories are keyed by parent category id.
	SubCategories map[string][]domain.SubCategory `json:"subcategories"`
	Products      []domain.Product                `json:"products"`
	Offers        []domain.Offer                  `json:"offers"`
	// ProductsBySubCategory and ProductsByCategory hold the product ids each
	// listing returned, keyed by the id the listing was requested with.
	ProductsBySubCategory map[string][]string `json:"productsBySubCategory"`
	ProductsByCategory    map[string][]string `json:"productsByCategory"`
}

// Walker reads the whole menu tree the way a guest would browse it:
// categories, their subcategories, the products of each, then offers.
type Walker struct {
	src   Source
	delay time.Duration
	log   logger.Logger
}

// NewWalker builds a walker. delay throttles consecutive API calls.
func NewWalker(src Source, delay time.Duration, log logger.Logger) *Walker {
	if log == nil {
		log = &logger.NopLogger{}
	}
	return &Walker{src: src, delay: delay, log: log}
}

// Walk returns the snapshot and the failures of individual branches. Only a
// failure to list categories aborts the walk.
func (w *Walker) Walk(ctx context.Context) (Snapshot, error) {
	if w == nil || w.src == nil {
		return Snapshot{}, fmt.Errorf("walker is not initialized")
	}

	cats, err := w.src.ListCategories(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("list categories: %w", err)
	}

	snap := Snapshot{
		Categories:            cats,
		SubCategories:         make(map[string][]domain.SubCategory, len(cats)),
		ProductsBySubCategory: make(map[string][]string),
		ProductsByCategory:    make(map[string][]string),
	}
	seen := make(map[string]struct{})
	var errs []error

	addProducts := func(listing map[string][]string, listingID string, products []domain.Product) {
		ids := make([]string, 0, len(products))
		for _, p := range products {
			if p.ID == "" {
				continue
			}
			ids = append(ids, p.ID)
			if _, dup := seen[p.ID]; dup {
				continue
			}
			seen[p.ID] = struct{}{}
			snap.Products = append(snap.Products, p)
		}
		listing[listingID] = ids
	}

	for _, cat := range cats {
		if err := w.pause(ctx); err != nil {
			return snap, err
		}
		subs, err := w.src.ListSubCategoriesByCategory(ctx, cat.ID)
		if err != nil {
			errs = append(errs, fmt.Errorf("list subcategories of %s: %w", cat.ID, err))
			continue
		}
		snap.SubCategories[cat.ID] = subs

		if len(subs) == 0 {
			// Categories without subcategories list their products directly.
			if err := w.pause(ctx); err != nil {
				return snap, err
			}
			env, err := w.src.ListProductsByCategory(ctx, cat.ID)
			if err != nil {
				errs = append(errs, fmt.Errorf("list products of category %s: %w", cat.ID, err))
				continue
			}
			addProducts(snap.ProductsByCategory, cat.ID, env.Data)
			continue
		}

		for _, sc := range subs {
			if err := w.pause(ctx); err != nil {
				return snap, err
			}
			env, err := w.src.ListProductsBySubCategory(ctx, sc.ID)
			if err != nil {
				errs = append(errs, fmt.Errorf("list products of subcategory %s: %w", sc.ID, err))
				continue
			}
			addProducts(snap.ProductsBySubCategory, sc.ID, env.Data)
		}
	}

	offers, err := w.src.ListOffers(ctx)
	if err != nil {
		errs = append(errs, fmt.Errorf("list offers: %w", err))
		return snap, errors.Join(errs...)
	}
	for _, o := range offers {
		if err := w.pause(ctx); err != nil {
			return snap, err
		}
		detail, err := w.src.GetOfferDetails(ctx, o.ID)
		if err != nil {
			w.log.WarnObj("offer details unavailable; using summary", "offer_error", map[string]any{
				"offer_id": o.ID,
				"error":    err.Error(),
			})
			errs = append(errs, fmt.Errorf("get offer details %s: %w", o.ID, err))
			detail = o
		}
		snap.Offers = append(snap.Offers, detail)
	}

	return snap, errors.Join(errs...)
}

func (w *Walker) pause(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if w.delay <= 0 {
		return nil
	}
	timer := time.NewTimer(w.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
