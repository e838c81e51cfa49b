package harvest

import (
	"context"

	"github.com/stationone-hq/stationone-menu/pkg/menuapi"
	"github.com/stationone-hq/stationone-menu/pkg/publishers"
)

// Source is the part of the menu API a walk reads.
type Source interface {
	menuapi.CategoryLister
	menuapi.SubCategoryLister
	menuapi.ProductsBySubCategoryLister
	menuapi.ProductsByCategoryLister
	menuapi.OfferLister
	menuapi.OfferGetter
	menuapi.ImageResolver
}

// EventPublisher publishes menu change events downstream and reports how
// many sinks accepted the event.
type EventPublisher interface {
	Publish(ctx context.Context, evt publishers.Event) (int, error)
}

// ChangeStore remembers fingerprints of published items.
type ChangeStore interface {
	Changed(key, fingerprint string) (bool, error)
	Remember(key, fingerprint string) error
}
