package menuapi

import (
	"context"
	"encoding/json"

	"github.com/stationone-hq/stationone-menu/internal/domain"
)

// Each capability maps to one endpoint so consumers can depend on exactly
// what they call and tests can substitute a fixed dataset.

type CategoryLister interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
}

type CategoryGetter interface {
	GetCategory(ctx context.Context, id string) (domain.Envelope[domain.Category], error)
}

type OfferLister interface {
	ListOffers(ctx context.Context) ([]domain.Offer, error)
}

type OfferGetter interface {
	GetOfferDetails(ctx context.Context, id string) (domain.Offer, error)
}

type SubCategoryLister interface {
	ListSubCategoriesByCategory(ctx context.Context, categoryID string) ([]domain.SubCategory, error)
}

type SubCategoryGetter interface {
	GetSubCategory(ctx context.Context, id string) (domain.Envelope[domain.SubCategory], error)
}

type ProductsBySubCategoryLister interface {
	ListProductsBySubCategory(ctx context.Context, subCategoryID string) (domain.Envelope[[]domain.Product], error)
}

type ProductsByCategoryLister interface {
	ListProductsByCategory(ctx context.Context, categoryID string) (domain.Envelope[[]domain.Product], error)
}

type ProductGetter interface {
	GetProduct(ctx context.Context, id string) (domain.Envelope[domain.Product], error)
}

type ReviewSubmitter interface {
	SubmitReview(ctx context.Context, review domain.Review) (domain.Envelope[json.RawMessage], error)
}

// ImageResolver turns a relative image field into a fetchable URL.
type ImageResolver interface {
	ImageURL(path string) string
}

// API is the full set of menu operations.
type API interface {
	CategoryLister
	CategoryGetter
	OfferLister
	OfferGetter
	SubCategoryLister
	SubCategoryGetter
	ProductsBySubCategoryLister
	ProductsByCategoryLister
	ProductGetter
	ReviewSubmitter
	ImageResolver
}

// Logger defines the logging surface the client relies on.
type Logger interface {
	InfoObj(msg, key string, obj interface{})
	DebugObj(msg, key string, obj interface{})
	WarnObj(msg, key string, obj interface{})
	ErrorObj(msg, key string, obj interface{})
}

type noopLogger struct{}

func (noopLogger) InfoObj(string, string, interface{})  {}
func (noopLogger) DebugObj(string, string, interface{}) {}
func (noopLogger) WarnObj(string, string, interface{})  {}
func (noopLogger) ErrorObj(string, string, interface{}) {}
