package menuapi

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/stationone-hq/stationone-menu/internal/domain"
)

// Static serves a fixed in-memory menu through the API interface. Lookups of
// unknown ids fail with a 404 RequestError, the way the live backend does.
type Static struct {
	Categories    []domain.Category
	SubCategories []domain.SubCategory
	Products      []domain.Product
	Offers        []domain.Offer
	ImageBaseURL  string

	// ReviewErr, when set, is returned by SubmitReview instead of recording.
	ReviewErr error

	mu      sync.Mutex
	reviews []domain.Review
}

var _ API = (*Static)(nil)

func (s *Static) ImageURL(path string) string {
	return Config{ImageBaseURL: s.ImageBaseURL}.ImageURL(path)
}

func (s *Static) ListCategories(context.Context) ([]domain.Category, error) {
	return append([]domain.Category{}, s.Categories...), nil
}

func (s *Static) GetCategory(_ context.Context, id string) (domain.Envelope[domain.Category], error) {
	for _, c := range s.Categories {
		if c.ID == id {
			return domain.Envelope[domain.Category]{Data: c}, nil
		}
	}
	return domain.Envelope[domain.Category]{}, notFound("get category", id)
}

func (s *Static) ListOffers(context.Context) ([]domain.Offer, error) {
	out := make([]domain.Offer, 0, len(s.Offers))
	for _, o := range s.Offers {
		o.Items = nil
		out = append(out, o)
	}
	return out, nil
}

func (s *Static) GetOfferDetails(_ context.Context, id string) (domain.Offer, error) {
	for _, o := range s.Offers {
		if o.ID == id {
			return o, nil
		}
	}
	return domain.Offer{}, notFound("get offer details", id)
}

func (s *Static) ListSubCategoriesByCategory(_ context.Context, categoryID string) ([]domain.SubCategory, error) {
	out := []domain.SubCategory{}
	for _, sc := range s.SubCategories {
		if sc.Category.ID() == categoryID {
			out = append(out, sc)
		}
	}
	return out, nil
}

func (s *Static) GetSubCategory(_ context.Context, id string) (domain.Envelope[domain.SubCategory], error) {
	for _, sc := range s.SubCategories {
		if sc.ID == id {
			return domain.Envelope[domain.SubCategory]{Data: sc}, nil
		}
	}
	return domain.Envelope[domain.SubCategory]{}, notFound("get subcategory", id)
}

func (s *Static) ListProductsBySubCategory(_ context.Context, subCategoryID string) (domain.Envelope[[]domain.Product], error) {
	return s.filterProducts(func(p domain.Product) bool { return p.SubCategory.ID() == subCategoryID }), nil
}

func (s *Static) ListProductsByCategory(_ context.Context, categoryID string) (domain.Envelope[[]domain.Product], error) {
	return s.filterProducts(func(p domain.Product) bool { return p.Category.ID() == categoryID }), nil
}

func (s *Static) GetProduct(_ context.Context, id string) (domain.Envelope[domain.Product], error) {
	for _, p := range s.Products {
		if p.ID == id {
			return domain.Envelope[domain.Product]{Data: p}, nil
		}
	}
	return domain.Envelope[domain.Product]{}, notFound("get product", id)
}

func (s *Static) SubmitReview(_ context.Context, review domain.Review) (domain.Envelope[json.RawMessage], error) {
	if s.ReviewErr != nil {
		return domain.Envelope[json.RawMessage]{}, s.ReviewErr
	}
	s.mu.Lock()
	s.reviews = append(s.reviews, review)
	s.mu.Unlock()
	return domain.Envelope[json.RawMessage]{Message: "Review submitted"}, nil
}

// Reviews returns the reviews recorded so far.
func (s *Static) Reviews() []domain.Review {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Review(nil), s.reviews...)
}

func (s *Static) filterProducts(keep func(domain.Product) bool) domain.Envelope[[]domain.Product] {
	out := []domain.Product{}
	for _, p := range s.Products {
		if keep(p) {
			out = append(out, p)
		}
	}
	return domain.Envelope[[]domain.Product]{Data: out}
}

func notFound(op, id string) error {
	return &RequestError{
		Op:         op,
		Method:     http.MethodGet,
		URL:        "static://" + id,
		StatusCode: http.StatusNotFound,
		Message:    "Not found",
		Err:        ErrStatus,
	}
}
