package view

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stationone-hq/stationone-menu/internal/domain"
	"github.com/stationone-hq/stationone-menu/pkg/menuapi"
)

func ptr[T any](v T) *T { return &v }

func TestPlainText(t *testing.T) {
	cases := map[string]string{
		"  plain   text ":                        "plain text",
		"<p>Fresh <b>mint</b></p><p>and lime</p>": "Fresh mint and lime",
		"Fish &amp; chips":                       "Fish & chips",
		"line<br>break":                          "line break",
	}
	for in, want := range cases {
		if got := PlainText(in); got != want {
			t.Fatalf("PlainText(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("abcdefgh", 6); got != "abc..." {
		t.Fatalf("Truncate = %q", got)
	}
	if got := Truncate("abc", 6); got != "abc" {
		t.Fatalf("Truncate short = %q", got)
	}
}

func TestNewPriceTag(t *testing.T) {
	if tag := NewPriceTag(domain.Product{}); tag.Shown {
		t.Fatalf("product without price should show no tag")
	}
	tag := NewPriceTag(domain.Product{Price: 120})
	if !tag.Shown || tag.OnSale || tag.String() != "120 EG" {
		t.Fatalf("unexpected tag %+v %q", tag, tag.String())
	}
	tag = NewPriceTag(domain.Product{Price: 120, PriceAfterDiscount: ptr(99.5)})
	if !tag.OnSale || tag.Current != 99.5 || tag.Original != 120 {
		t.Fatalf("unexpected sale tag %+v", tag)
	}
	if got := tag.String(); got != "99.5 EG (was 120 EG) SALE" {
		t.Fatalf("sale tag string = %q", got)
	}
}

func TestOfferStatusAndPrice(t *testing.T) {
	if OfferStatus(domain.Offer{}) != "" {
		t.Fatalf("unknown status should render empty")
	}
	if OfferStatus(domain.Offer{IsActive: ptr(false)}) != "Offer Expired" {
		t.Fatalf("inactive offer should render as expired")
	}
	if OfferPrice(domain.Offer{PriceAfterDiscount: ptr(200.0)}) != "200 EG" {
		t.Fatalf("unexpected offer price")
	}
}

func TestIngredientLabelsAndPreview(t *testing.T) {
	var p domain.Product
	raw := `{"_id":"p1","ingredients":["Milk",{"title":"Espresso"},{"name":"Sugar"},{},"Ice","Foam"]}`
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	labels := IngredientLabels(p)
	if strings.Join(labels, ",") != "Milk,Espresso,Sugar,Ice,Foam" {
		t.Fatalf("labels = %v", labels)
	}
	if got := IngredientPreview(p); got != "Milk, Espresso, Sugar, Ice +1 more" {
		t.Fatalf("preview = %q", got)
	}
}

func TestParentCategoryID(t *testing.T) {
	var byID, populated domain.SubCategory
	_ = json.Unmarshal([]byte(`{"_id":"s1","category":"c1"}`), &byID)
	_ = json.Unmarshal([]byte(`{"_id":"s2","category":{"_id":"c2","title":"Drinks"}}`), &populated)

	if ParentCategoryID(byID) != "c1" || ParentCategoryID(populated) != "c2" {
		t.Fatalf("unexpected parents %q %q", ParentCategoryID(byID), ParentCategoryID(populated))
	}
	if ParentCategoryID(domain.SubCategory{}) != "" {
		t.Fatalf("missing ref should give empty parent")
	}
}

func testMenu() *menuapi.Static {
	return &menuapi.Static{
		Categories:    []domain.Category{{ID: "c1", Title: "Drinks"}},
		SubCategories: []domain.SubCategory{{ID: "s1", Title: "Coffee", Category: domain.NewRef("c1")}},
		Products: []domain.Product{
			{ID: "p1", Title: "Latte", Price: 45, Category: domain.NewRef("c1"), SubCategory: domain.NewRef("s1")},
			{ID: "p2", Title: "Lemonade", Price: 30, Category: domain.NewRef("c1"), Available: ptr(false)},
		},
		ImageBaseURL: "https://img.example.com/uploads/",
	}
}

func TestProductsForMainCategory(t *testing.T) {
	listing, err := ProductsFor(context.Background(), testMenu(), "c1", "")
	if err != nil {
		t.Fatalf("ProductsFor: %v", err)
	}
	if listing.Title != "Drinks" || listing.ParentCategoryID != "c1" || len(listing.Products) != 2 {
		t.Fatalf("unexpected listing %+v", listing)
	}
}

func TestProductsForSubCategory(t *testing.T) {
	listing, err := ProductsFor(context.Background(), testMenu(), "c1", "s1")
	if err != nil {
		t.Fatalf("ProductsFor: %v", err)
	}
	if listing.Title != "Coffee" || listing.ParentCategoryID != "c1" {
		t.Fatalf("unexpected heading %+v", listing)
	}
	if len(listing.Products) != 1 || listing.Products[0].ID != "p1" {
		t.Fatalf("unexpected products %+v", listing.Products)
	}
}

func TestProductsForUnknownSubCategoryStillLists(t *testing.T) {
	listing, err := ProductsFor(context.Background(), testMenu(), "", "missing")
	if err != nil {
		t.Fatalf("ProductsFor: %v", err)
	}
	if listing.Title != "" || listing.Products == nil || len(listing.Products) != 0 {
		t.Fatalf("expected empty listing without heading, got %+v", listing)
	}
}

func TestProductsForRequiresID(t *testing.T) {
	if _, err := ProductsFor(context.Background(), testMenu(), "", ""); err == nil {
		t.Fatalf("expected error without ids")
	}
}

func TestRenderProductAndOffer(t *testing.T) {
	menu := testMenu()
	p := domain.Product{
		ID: "p1", Title: "Latte", Price: 45, PriceAfterDiscount: ptr(40.0), Image: "latte.png",
		Description: "<p>Double shot</p>",
		Extras:      []domain.Extra{{Name: "Oat milk", Price: 10}},
		Ingredients: []domain.Ingredient{domain.NewIngredient("Milk")},
	}
	var buf bytes.Buffer
	if err := Product(&buf, menu, p); err != nil {
		t.Fatalf("Product: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Latte", "40 EG (was 45 EG) SALE", "Double shot", "Ingredients: Milk", "Oat milk  +10 EG", "https://img.example.com/uploads/latte.png"} {
		if !strings.Contains(out, want) {
			t.Fatalf("product output missing %q:\n%s", want, out)
		}
	}

	buf.Reset()
	offer := domain.Offer{ID: "o1", Title: "Combo", IsActive: ptr(true), Items: []domain.Product{p, {ID: "p2", Title: "Cookie", Available: ptr(false)}}}
	if err := Offer(&buf, menu, offer); err != nil {
		t.Fatalf("Offer: %v", err)
	}
	out = buf.String()
	for _, want := range []string{"Combo", "Active Offer", "Items Included (2)", "Cookie  (Unavailable)"} {
		if !strings.Contains(out, want) {
			t.Fatalf("offer output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderEmptyLists(t *testing.T) {
	var buf bytes.Buffer
	_ = Categories(&buf, nil)
	_ = SubCategories(&buf, "", nil)
	_ = Offers(&buf, nil)
	out := buf.String()
	for _, want := range []string{"No categories available", "Subcategories", "No subcategories available in this category", "No offers available"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}
