package view

import (
	"context"
	"fmt"
	"strings"

	"github.com/stationone-hq/stationone-menu/internal/domain"
	"github.com/stationone-hq/stationone-menu/pkg/menuapi"
)

// ingredientPreview is how many ingredients an offer item lists before "+N more".
const ingredientPreview = 4

// IngredientLabels returns the display names of a product's ingredients,
// skipping entries that carry no name.
func IngredientLabels(p domain.Product) []string {
	out := make([]string, 0, len(p.Ingredients))
	for _, ing := range p.Ingredients {
		if label := strings.TrimSpace(ing.Label()); label != "" {
			out = append(out, label)
		}
	}
	return out
}

// IngredientPreview lists at most the first few ingredients followed by a
// "+N more" marker.
func IngredientPreview(p domain.Product) string {
	labels := IngredientLabels(p)
	if len(labels) <= ingredientPreview {
		return strings.Join(labels, ", ")
	}
	return fmt.Sprintf("%s +%d more", strings.Join(labels[:ingredientPreview], ", "), len(labels)-ingredientPreview)
}

// Unavailable reports whether the backend explicitly marked the product as
// unavailable. A missing flag means available.
func Unavailable(p domain.Product) bool {
	return p.Available != nil && !*p.Available
}

// ParentCategoryID returns the category a subcategory belongs to, whether the
// reference came back as an id or a populated object.
func ParentCategoryID(sc domain.SubCategory) string {
	return sc.Category.ID()
}

// ProductsSource is what a product listing needs from the menu API.
type ProductsSource interface {
	menuapi.CategoryGetter
	menuapi.SubCategoryGetter
	menuapi.ProductsByCategoryLister
	menuapi.ProductsBySubCategoryLister
}

// Listing is a product page: a heading, where "back" leads, and the products.
type Listing struct {
	Title            string
	Description      string
	ParentCategoryID string
	Products         []domain.Product
}

// ProductsFor lists the products of a category when only categoryID is set,
// otherwise those of the subcategory. The heading comes from the matching
// category or subcategory; failing to load it is not fatal.
func ProductsFor(ctx context.Context, api ProductsSource, categoryID, subCategoryID string) (Listing, error) {
	mainCategory := categoryID != "" && subCategoryID == ""
	if !mainCategory && subCategoryID == "" {
		return Listing{}, fmt.Errorf("a category or subcategory id is required")
	}

	var (
		listing Listing
		env     domain.Envelope[[]domain.Product]
		err     error
	)
	if mainCategory {
		listing.ParentCategoryID = categoryID
		if cat, herr := api.GetCategory(ctx, categoryID); herr == nil {
			listing.Title, listing.Description = cat.Data.Title, cat.Data.Description
		}
		env, err = api.ListProductsByCategory(ctx, categoryID)
	} else {
		if sc, herr := api.GetSubCategory(ctx, subCategoryID); herr == nil {
			listing.Title, listing.Description = sc.Data.Title, sc.Data.Description
			listing.ParentCategoryID = ParentCategoryID(sc.Data)
		}
		env, err = api.ListProductsBySubCategory(ctx, subCategoryID)
	}
	if err != nil {
		return Listing{}, err
	}

	listing.Products = env.Data
	if listing.Products == nil {
		listing.Products = []domain.Product{}
	}
	return listing, nil
}
